package job

import (
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"

	"vodplace/dataset"
	"vodplace/pkg/dir"
	"vodplace/pkg/log"
	"vodplace/pkg/prom"
	"vodplace/place"
	"vodplace/score"
)

// StrategyAuto races every registered strategy and keeps the winner.
const StrategyAuto = "auto"

// Options carries the knobs of one solve run.
type Options struct {
	Strategy     string
	Refine       bool
	RefineBudget time.Duration
	// WorkDir holds the per-dataset lock files so that concurrent
	// solvers of the same dataset serialize. Empty disables locking.
	WorkDir string
	// OutputPath names the submission file target. Empty keeps the
	// placement in memory only.
	OutputPath string
	OnState    func(StateType)
}

// Result bundles what one executed pipeline produced.
type Result struct {
	Strategy  string
	Placement *dataset.Placement
	Score     *score.Result
	Moves     int
	Elapsed   time.Duration
}

// Execute runs the pipeline on one parsed problem: place with the
// configured strategy (or race all of them), optionally refine,
// validate, score and write the submission file.
func Execute(p *dataset.Problem, opt *Options) (res *Result, err error) {
	start := time.Now()
	state := func(s StateType) {
		if opt.OnState != nil {
			opt.OnState(s)
		}
	}

	if opt.WorkDir != "" {
		if err = dir.MkDirAll(opt.WorkDir); err != nil {
			return
		}
		locker := flock.New(filepath.Join(opt.WorkDir, p.Fingerprint+".lock"))
		if err = locker.Lock(); err != nil {
			err = errors.Wrapf(err, "lock workdir for %s", p.Name)
			return
		}
		defer func() {
			if suberr := locker.Unlock(); suberr != nil {
				log.Errorf("unlock workdir for %s error:%v", p.Name, suberr)
			}
		}()
	}

	var (
		pl       *dataset.Placement
		strategy = opt.Strategy
		moves    int
	)
	state(StatePlacing)
	if strategy == "" || strategy == StrategyAuto {
		var ropt *place.RefineOptions
		if opt.Refine {
			ropt = &place.RefineOptions{Budget: opt.RefineBudget}
		}
		var results []place.PortfolioResult
		if pl, strategy, results, err = place.Portfolio(p, place.Names(), ropt); err != nil {
			prom.ErrIncr(p.Name, "place", "portfolio")
			return
		}
		for _, r := range results {
			if r.Strategy == strategy {
				moves = r.Moves
			}
		}
	} else {
		var s place.Strategy
		if s, err = place.Get(strategy); err != nil {
			prom.ErrIncr(p.Name, "place", "strategy")
			return
		}
		if pl, err = s.Place(p); err != nil {
			prom.ErrIncr(p.Name, "place", "place")
			err = errors.Wrapf(err, "place %s with %s", p.Name, strategy)
			return
		}
		if opt.Refine {
			state(StateRefining)
			if moves, err = place.Refine(p, pl, place.RefineOptions{Budget: opt.RefineBudget}); err != nil {
				prom.ErrIncr(p.Name, "refine", "refine")
				err = errors.Wrapf(err, "refine %s", p.Name)
				return
			}
		}
	}
	if opt.Refine {
		prom.RefineAdd(strategy, int64(moves))
	}

	if faults := place.Validate(p, pl); len(faults) != 0 {
		prom.ErrIncr(p.Name, "validate", "invalid")
		err = errors.Wrapf(place.ErrInvalid, "%s: %s", p.Name, faults[0])
		return
	}

	state(StateScoring)
	r := score.Evaluate(p, pl)
	elapsed := time.Since(start)
	prom.SolveTime(p.Name, strategy, int64(elapsed/time.Millisecond))
	prom.ScoreSet(p.Name, strategy, r.Score)

	if opt.OutputPath != "" {
		if err = dataset.WriteSolutionFile(opt.OutputPath, pl); err != nil {
			prom.ErrIncr(p.Name, "write", "solution")
			return
		}
	}
	res = &Result{Strategy: strategy, Placement: pl, Score: r, Moves: moves, Elapsed: elapsed}
	return
}

// Apply executes the pipeline for one job record and folds the outcome
// back into it. The caller owns the pending gauge: Apply only moves it.
func Apply(j *Job, p *dataset.Problem, opt *Options) (res *Result) {
	move := func(s StateType) {
		prom.JobDecr(j.State)
		j.SetState(s)
		prom.JobIncr(s)
	}
	inner := opt.OnState
	o := *opt
	o.OnState = func(s StateType) {
		move(s)
		if inner != nil {
			inner(s)
		}
	}

	res, err := Execute(p, &o)
	if err != nil {
		j.Err = err.Error()
		move(StateFail)
		if inner != nil {
			inner(StateFail)
		}
		log.Errorf("job %s on dataset %s fail:%v", j.ID, j.Dataset, err)
		return
	}
	j.Strategy = res.Strategy
	j.Score = res.Score.Score
	j.Moves = res.Moves
	j.Elapsed = int64(res.Elapsed / time.Millisecond)
	move(StateDone)
	if inner != nil {
		inner(StateDone)
	}
	log.Infof("job %s on dataset %s done: strategy %s score %d", j.ID, j.Dataset, j.Strategy, j.Score)
	return
}
