package place

import (
	"time"

	"github.com/pkg/errors"

	"vodplace/dataset"
)

// RefineOptions bounds one refine pass. Zero values mean unbounded.
type RefineOptions struct {
	// MaxMoves stops refining after this many applied moves.
	MaxMoves int
	// Budget is a soft wall clock bound, checked every couple thousand
	// candidate steps.
	Budget time.Duration
}

// Refine improves a single homed placement in place. It sweeps videos in
// id order trying to move each into a cache where it would save more,
// evicting a colder resident when the move still pays for the loss, and
// keeps sweeping until a full sweep applies nothing. Every applied move
// strictly raises the total saved msec, so it always terminates. Returns
// the number of applied moves.
func Refine(p *dataset.Problem, pl *dataset.Placement, opt RefineOptions) (moves int, err error) {
	where := make([]int, p.VideoCount)
	for v := range where {
		where[v] = -1
	}
	for c := 0; c < pl.CacheCount; c++ {
		for _, v := range pl.Videos(c) {
			if where[v] >= 0 {
				return 0, errors.Wrapf(ErrMultiHomed, "video %d in caches %d and %d", v, where[v], c)
			}
			where[v] = c
		}
	}
	byVideo := p.VideoDemands()
	contrib := make([]map[int]int64, p.VideoCount)
	cands := make([][]cacheWeight, p.VideoCount)
	for v := 0; v < p.VideoCount; v++ {
		if len(byVideo[v]) == 0 {
			continue
		}
		contrib[v] = cacheGains(p, byVideo[v])
		cands[v] = rankGains(contrib[v])
	}

	var deadline time.Time
	if opt.Budget > 0 {
		deadline = time.Now().Add(opt.Budget)
	}
	step := 0
	for improved := true; improved; {
		improved = false
		for v := 0; v < p.VideoCount; v++ {
			if len(cands[v]) == 0 {
				continue
			}
			var cur int64
			if where[v] >= 0 {
				cur = contrib[v][where[v]]
			}
			for _, cw := range cands[v] {
				step++
				if step&2047 == 0 && !deadline.IsZero() && time.Now().After(deadline) {
					return moves, nil
				}
				if cw.weight <= cur {
					// candidates come sorted, nothing down the list pays,
					// the current cache included
					break
				}
				victim := -1
				if !pl.Fits(cw.cache, v) {
					var loss int64
					victim, loss = pickVictim(p, pl, contrib, cw.cache, p.VideoSizes[v]-pl.Free(cw.cache))
					if victim < 0 || cw.weight-cur-loss <= 0 {
						continue
					}
				}
				if err = applyMove(pl, where, v, cw.cache, victim); err != nil {
					return
				}
				moves++
				improved = true
				if opt.MaxMoves > 0 && moves >= opt.MaxMoves {
					return
				}
				break
			}
		}
	}
	return
}

// pickVictim selects the resident of cache whose eviction frees at least
// need MB at the lowest saved msec loss. Returns -1 when no single
// resident is big enough.
func pickVictim(p *dataset.Problem, pl *dataset.Placement, contrib []map[int]int64, cache, need int) (victim int, loss int64) {
	victim = -1
	for _, u := range pl.Videos(cache) {
		if p.VideoSizes[u] < need {
			continue
		}
		l := contrib[u][cache]
		if victim < 0 || l < loss || (l == loss && u < victim) {
			victim, loss = u, l
		}
	}
	return
}

func applyMove(pl *dataset.Placement, where []int, v, to, victim int) error {
	if victim >= 0 {
		if err := pl.Unassign(to, victim); err != nil {
			return err
		}
		where[victim] = -1
	}
	if where[v] >= 0 {
		if err := pl.Unassign(where[v], v); err != nil {
			return err
		}
	}
	if err := pl.Assign(to, v); err != nil {
		return err
	}
	where[v] = to
	return nil
}
