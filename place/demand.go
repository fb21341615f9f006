package place

import (
	"sort"

	"vodplace/dataset"
)

// demand runs a stats pass over the request rows first, then hands the
// most demanded videos the first pick and puts each into the connected
// cache with the best gain times demand score. Score ties go to the cache
// with more room left.
type demand struct{}

func (demand) Name() string { return "demand" }

type videoStats struct {
	demand    int64
	potential int64
	endpoints []int
}

// demandStats aggregates per video demand, endpoint fanout and latency
// headroom, the headroom of a row being datacenter latency minus the
// nearest cache of its endpoint.
func demandStats(p *dataset.Problem) []videoStats {
	stats := make([]videoStats, p.VideoCount)
	for _, d := range p.Demands {
		st := &stats[d.Video]
		st.demand += int64(d.Requests)
		ep := p.Endpoints[d.Endpoint]
		if len(ep.Nearest) > 0 {
			st.potential += int64(ep.DCLatency-ep.Nearest[0].Latency) * int64(d.Requests)
		}
		st.endpoints = append(st.endpoints, d.Endpoint)
	}
	for v := range stats {
		st := &stats[v]
		if len(st.endpoints) < 2 {
			continue
		}
		sort.Ints(st.endpoints)
		uniq := st.endpoints[:1]
		for _, e := range st.endpoints[1:] {
			if e != uniq[len(uniq)-1] {
				uniq = append(uniq, e)
			}
		}
		st.endpoints = uniq
	}
	return stats
}

func (demand) Place(p *dataset.Problem) (*dataset.Placement, error) {
	pl := dataset.NewPlacement(p)
	stats := demandStats(p)
	order := make([]int, p.VideoCount)
	for i := range order {
		order[i] = i
	}
	sort.Sort(&byPriority{order: order, stats: stats, sizes: p.VideoSizes})
	for _, v := range order {
		st := &stats[v]
		if len(st.endpoints) == 0 {
			continue
		}
		best := int64(-1)
		bestCache := -1
		for _, e := range st.endpoints {
			ep := p.Endpoints[e]
			for _, cl := range ep.Nearest {
				if !pl.Fits(cl.Cache, v) {
					continue
				}
				score := int64(ep.DCLatency-cl.Latency) * st.demand
				if score > best || (score == best && bestCache >= 0 && pl.Free(cl.Cache) > pl.Free(bestCache)) {
					best = score
					bestCache = cl.Cache
				}
			}
		}
		if bestCache < 0 {
			continue
		}
		if err := pl.Assign(bestCache, v); err != nil {
			return nil, err
		}
	}
	return pl, nil
}

type byPriority struct {
	order []int
	stats []videoStats
	sizes []int
}

func (b *byPriority) Len() int      { return len(b.order) }
func (b *byPriority) Swap(i, j int) { b.order[i], b.order[j] = b.order[j], b.order[i] }
func (b *byPriority) Less(i, j int) bool {
	vi, vj := b.order[i], b.order[j]
	si, sj := &b.stats[vi], &b.stats[vj]
	if si.demand != sj.demand {
		return si.demand > sj.demand
	}
	if si.potential != sj.potential {
		return si.potential > sj.potential
	}
	if b.sizes[vi] != b.sizes[vj] {
		return b.sizes[vi] < b.sizes[vj]
	}
	return vi < vj
}
