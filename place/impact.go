package place

import (
	"vodplace/dataset"
)

// impact fills caches first come first served but hands the hottest videos
// the first pick, hotness being requests per stored MB.
type impact struct{}

func (impact) Name() string { return "impact" }

func (impact) Place(p *dataset.Problem) (*dataset.Placement, error) {
	return firstFit(p, impactOrder(p)), nil
}
