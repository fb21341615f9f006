package place

import (
	"vodplace/dataset"
)

// gainFit walks videos in impact order but ranks the candidate caches of
// each video by the total latency gain they would deliver over its demand
// rows, taking the best ranked one with room. A video with no cache
// beating the datacenter stays out instead of wasting space.
type gainFit struct{}

func (gainFit) Name() string { return "gainfit" }

func (gainFit) Place(p *dataset.Problem) (*dataset.Placement, error) {
	pl := dataset.NewPlacement(p)
	byVideo := p.VideoDemands()
	for _, v := range impactOrder(p) {
		if len(byVideo[v]) == 0 {
			continue
		}
		for _, cw := range rankGains(cacheGains(p, byVideo[v])) {
			if pl.Assign(cw.cache, v) == nil {
				break
			}
		}
	}
	return pl, nil
}
