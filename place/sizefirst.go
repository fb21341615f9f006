package place

import (
	"sort"

	"vodplace/dataset"
)

// sizeFirst drops videos into the first cache with room, smallest video
// first. The baseline everything else gets measured against.
type sizeFirst struct{}

func (sizeFirst) Name() string { return "sizefirst" }

func (sizeFirst) Place(p *dataset.Problem) (*dataset.Placement, error) {
	order := make([]int, p.VideoCount)
	for i := range order {
		order[i] = i
	}
	sort.Sort(&bySize{order: order, sizes: p.VideoSizes})
	return firstFit(p, order), nil
}

type bySize struct {
	order []int
	sizes []int
}

func (b *bySize) Len() int      { return len(b.order) }
func (b *bySize) Swap(i, j int) { b.order[i], b.order[j] = b.order[j], b.order[i] }
func (b *bySize) Less(i, j int) bool {
	vi, vj := b.order[i], b.order[j]
	if b.sizes[vi] != b.sizes[vj] {
		return b.sizes[vi] < b.sizes[vj]
	}
	return vi < vj
}
