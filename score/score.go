package score

import (
	"vodplace/dataset"
)

// CacheStat is the serving share of one cache.
type CacheStat struct {
	Cache     int
	Videos    int
	UsedMB    int
	Requests  int64
	SavedMs   int64
	TrafficMB int64
}

// Result is the outcome of scoring one placement.
type Result struct {
	// Score is saved msec times 1000 over total requests, floored.
	Score          int64
	SavedMs        int64
	TotalRequests  int64
	ServedRequests int64
	OriginRequests int64
	// MeanBefore and MeanAfter are request weighted mean latencies in msec.
	MeanBefore float64
	MeanAfter  float64
	PerCache   []CacheStat
}

// Evaluate scores pl against p. Every request row is served at the lowest
// latency between the datacenter and the connected caches holding the
// video, so any placement read back from disk is scoreable, even ones a
// solver would never emit.
func Evaluate(p *dataset.Problem, pl *dataset.Placement) *Result {
	r := &Result{PerCache: make([]CacheStat, p.CacheCount)}
	var beforeMs, afterMs int64
	for _, d := range p.Demands {
		ep := p.Endpoints[d.Endpoint]
		n := int64(d.Requests)
		r.TotalRequests += n
		beforeMs += int64(ep.DCLatency) * n
		lat := ep.DCLatency
		hit := -1
		// Nearest is latency ascending, the first holder is the best one.
		for _, cl := range ep.Nearest {
			if pl.Has(cl.Cache, d.Video) {
				if cl.Latency < lat {
					lat = cl.Latency
					hit = cl.Cache
				}
				break
			}
		}
		afterMs += int64(lat) * n
		if hit >= 0 {
			r.ServedRequests += n
			cs := &r.PerCache[hit]
			cs.Requests += n
			cs.SavedMs += int64(ep.DCLatency-lat) * n
			cs.TrafficMB += n * int64(p.VideoSizes[d.Video])
		} else {
			r.OriginRequests += n
		}
	}
	r.SavedMs = beforeMs - afterMs
	if r.TotalRequests > 0 {
		r.Score = r.SavedMs * 1000 / r.TotalRequests
		r.MeanBefore = float64(beforeMs) / float64(r.TotalRequests)
		r.MeanAfter = float64(afterMs) / float64(r.TotalRequests)
	}
	for c := range r.PerCache {
		r.PerCache[c].Cache = c
		r.PerCache[c].Videos = len(pl.Videos(c))
		r.PerCache[c].UsedMB = pl.Used(c)
	}
	return r
}
