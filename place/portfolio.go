package place

import (
	"sync"

	"vodplace/dataset"
	"vodplace/pkg/log"
	"vodplace/score"
)

// PortfolioResult is the outcome of one strategy inside a portfolio run.
type PortfolioResult struct {
	Strategy string
	Score    int64
	Moves    int
	Err      error
}

// Portfolio runs the named strategies concurrently, refines each result
// when refine is not nil, scores them all and returns the best placement
// with the per strategy outcomes. An empty names list means every
// registered strategy. Score ties go to the first name in the list.
func Portfolio(p *dataset.Problem, names []string, refine *RefineOptions) (*dataset.Placement, string, []PortfolioResult, error) {
	if len(names) == 0 {
		names = Names()
	}
	sts := make([]Strategy, len(names))
	for i, n := range names {
		s, err := Get(n)
		if err != nil {
			return nil, "", nil, err
		}
		sts[i] = s
	}
	results := make([]PortfolioResult, len(names))
	placements := make([]*dataset.Placement, len(names))
	var wg sync.WaitGroup
	for i := range sts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r := &results[i]
			r.Strategy = sts[i].Name()
			pl, err := sts[i].Place(p)
			if err != nil {
				r.Err = err
				return
			}
			if refine != nil {
				if r.Moves, err = Refine(p, pl, *refine); err != nil {
					r.Err = err
					return
				}
			}
			placements[i] = pl
			r.Score = score.Evaluate(p, pl).Score
		}(i)
	}
	wg.Wait()
	best := -1
	for i := range results {
		r := &results[i]
		if r.Err != nil {
			log.Errorf("portfolio strategy %s failed: %v", r.Strategy, r.Err)
			continue
		}
		log.Infof("portfolio strategy %s scored %d with %d refine moves", r.Strategy, r.Score, r.Moves)
		if best < 0 || r.Score > results[best].Score {
			best = i
		}
	}
	if best < 0 {
		return nil, "", results, ErrNoPlacement
	}
	return placements[best], results[best].Strategy, results, nil
}
