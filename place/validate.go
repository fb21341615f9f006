package place

import (
	"fmt"

	"vodplace/dataset"
)

// Validate checks a placement against every submission rule and returns
// the full list of broken ones, not just the first: negative video sizes,
// per cache capacity overruns, videos held by several caches, duplicate
// rows inside one cache and unknown video ids. An empty list means the
// placement is submittable.
func Validate(p *dataset.Problem, pl *dataset.Placement) []string {
	var vs []string
	for v, s := range p.VideoSizes {
		if s < 0 {
			vs = append(vs, fmt.Sprintf("video %d has negative size %d", v, s))
		}
	}
	seen := make(map[int]int, p.VideoCount)
	for c := 0; c < pl.CacheCount; c++ {
		var total int
		inCache := make(map[int]bool)
		for _, v := range pl.Videos(c) {
			if v < 0 || v >= p.VideoCount {
				vs = append(vs, fmt.Sprintf("cache %d holds unknown video %d", c, v))
				continue
			}
			total += p.VideoSizes[v]
			if inCache[v] {
				vs = append(vs, fmt.Sprintf("cache %d lists video %d twice", c, v))
				continue
			}
			inCache[v] = true
			if prev, ok := seen[v]; ok {
				vs = append(vs, fmt.Sprintf("video %d in caches %d and %d", v, prev, c))
				continue
			}
			seen[v] = c
		}
		if total > pl.Capacity {
			vs = append(vs, fmt.Sprintf("cache %d over capacity %d/%dMB", c, total, pl.Capacity))
		}
	}
	return vs
}
