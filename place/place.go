// Package place builds cache placements for parsed datasets. Strategies
// are greedy single pass heuristics, Refine polishes any placement with
// local moves and Portfolio races strategies against each other.
package place

import (
	errs "errors"
	"sort"

	"github.com/pkg/errors"

	"vodplace/dataset"
)

// errors of strategy lookup, refining and validating.
var (
	ErrUnknownStrategy = errs.New("unknown place strategy")
	ErrMultiHomed      = errs.New("video held by more than one cache")
	ErrNoPlacement     = errs.New("no strategy produced a placement")
	ErrInvalid         = errs.New("placement failed validation")
)

// Strategy builds a placement for a problem. Implementations place every
// video at most once.
type Strategy interface {
	Name() string
	Place(p *dataset.Problem) (*dataset.Placement, error)
}

var strategies = make(map[string]Strategy)

func register(s Strategy) {
	strategies[s.Name()] = s
}

func init() {
	register(sizeFirst{})
	register(impact{})
	register(gainFit{})
	register(demand{})
}

// Get returns the strategy registered under name.
func Get(name string) (Strategy, error) {
	s, ok := strategies[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownStrategy, "%q", name)
	}
	return s, nil
}

// Names lists the registered strategies sorted by name.
func Names() []string {
	ns := make([]string, 0, len(strategies))
	for n := range strategies {
		ns = append(ns, n)
	}
	sort.Strings(ns)
	return ns
}

// videoRequests sums requests per video.
func videoRequests(p *dataset.Problem) []int64 {
	reqs := make([]int64, p.VideoCount)
	for _, d := range p.Demands {
		reqs[d.Video] += int64(d.Requests)
	}
	return reqs
}

// impactOrder ranks videos by requests per stored MB descending, ties by
// id. Compared as cross products so huge datasets stay exact.
func impactOrder(p *dataset.Problem) []int {
	order := make([]int, p.VideoCount)
	for i := range order {
		order[i] = i
	}
	sort.Sort(&byImpact{order: order, reqs: videoRequests(p), sizes: p.VideoSizes})
	return order
}

type byImpact struct {
	order []int
	reqs  []int64
	sizes []int
}

func (b *byImpact) Len() int      { return len(b.order) }
func (b *byImpact) Swap(i, j int) { b.order[i], b.order[j] = b.order[j], b.order[i] }
func (b *byImpact) Less(i, j int) bool {
	vi, vj := b.order[i], b.order[j]
	zi := b.sizes[vi] == 0 || b.reqs[vi] == 0
	zj := b.sizes[vj] == 0 || b.reqs[vj] == 0
	if zi || zj {
		if zi == zj {
			return vi < vj
		}
		return zj
	}
	ri := b.reqs[vi] * int64(b.sizes[vj])
	rj := b.reqs[vj] * int64(b.sizes[vi])
	if ri != rj {
		return ri > rj
	}
	return vi < vj
}

// firstFit drops each video into the first cache with room, in order.
func firstFit(p *dataset.Problem, order []int) *dataset.Placement {
	pl := dataset.NewPlacement(p)
	for _, v := range order {
		for c := 0; c < p.CacheCount; c++ {
			if pl.Assign(c, v) == nil {
				break
			}
		}
	}
	return pl
}

type cacheWeight struct {
	cache  int
	weight int64
}

type byWeight []cacheWeight

func (b byWeight) Len() int      { return len(b) }
func (b byWeight) Swap(i, j int) { b[i], b[j] = b[j], b[i] }
func (b byWeight) Less(i, j int) bool {
	if b[i].weight != b[j].weight {
		return b[i].weight > b[j].weight
	}
	return b[i].cache < b[j].cache
}

// cacheGains sums requests times latency gain per connected cache over the
// demand rows of one video. Only caches beating the datacenter appear, so
// the weight of a cache equals the msec the video would save stored there
// alone.
func cacheGains(p *dataset.Problem, rows []int) map[int]int64 {
	w := make(map[int]int64)
	for _, ri := range rows {
		d := p.Demands[ri]
		ep := p.Endpoints[d.Endpoint]
		for cid, lat := range ep.CacheLatencies {
			if gain := ep.DCLatency - lat; gain > 0 {
				w[cid] += int64(d.Requests) * int64(gain)
			}
		}
	}
	return w
}

func rankGains(w map[int]int64) []cacheWeight {
	ranked := make([]cacheWeight, 0, len(w))
	for cid, weight := range w {
		ranked = append(ranked, cacheWeight{cache: cid, weight: weight})
	}
	sort.Sort(byWeight(ranked))
	return ranked
}
