package dataset

// CacheLatency is one reachable cache of an endpoint with its latency in msec.
type CacheLatency struct {
	Cache   int
	Latency int
}

// Endpoint is one user group with its datacenter latency and the caches it
// can reach. Caches absent from CacheLatencies are not connected at all.
type Endpoint struct {
	ID        int
	DCLatency int
	// CacheLatencies maps a reachable cache id to its latency in msec.
	CacheLatencies map[int]int
	// Nearest lists the reachable caches from the lowest latency up.
	Nearest []CacheLatency
}

// Demand is one request description row.
type Demand struct {
	Video    int
	Endpoint int
	Requests int
}

// Problem is one parsed dataset.
type Problem struct {
	Name          string
	Fingerprint   string
	VideoCount    int
	EndpointCount int
	DemandCount   int
	CacheCount    int
	// CacheCapacity is the capacity of every cache in MB.
	CacheCapacity int
	// VideoSizes is indexed by video id, sizes in MB.
	VideoSizes []int
	Endpoints  []*Endpoint
	Demands    []Demand
}

// TotalRequests sums requests over all demand rows.
func (p *Problem) TotalRequests() (n int64) {
	for _, d := range p.Demands {
		n += int64(d.Requests)
	}
	return
}

// VideoDemands groups demand row indexes by video id.
func (p *Problem) VideoDemands() [][]int {
	rows := make([][]int, p.VideoCount)
	for i, d := range p.Demands {
		rows[d.Video] = append(rows[d.Video], i)
	}
	return rows
}

type byLatency []CacheLatency

func (b byLatency) Len() int      { return len(b) }
func (b byLatency) Swap(i, j int) { b[i], b[j] = b[j], b[i] }
func (b byLatency) Less(i, j int) bool {
	if b[i].Latency != b[j].Latency {
		return b[i].Latency < b[j].Latency
	}
	return b[i].Cache < b[j].Cache
}
