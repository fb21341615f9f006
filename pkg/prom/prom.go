package prom

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	statJobs  = "vodplace_jobs"
	statErr   = "vodplace_err"
	statScore = "vodplace_score"

	statSolveTimer  = "vodplace_solve_timer"
	statRefineMoves = "vodplace_refine_moves"
)

var (
	jobs        *prometheus.GaugeVec
	gerr        *prometheus.GaugeVec
	scores      *prometheus.GaugeVec
	solveTimer  *prometheus.HistogramVec
	refineMoves *prometheus.CounterVec

	stateLabels           = []string{"state"}
	datasetErrLabels      = []string{"dataset", "op", "error"}
	datasetStrategyLabels = []string{"dataset", "strategy"}
	strategyLabels        = []string{"strategy"}
	// On Prom switch
	On = true
)

// Init init prometheus.
func Init() {
	jobs = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: statJobs,
			Help: statJobs,
		}, stateLabels)
	prometheus.MustRegister(jobs)
	gerr = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: statErr,
			Help: statErr,
		}, datasetErrLabels)
	prometheus.MustRegister(gerr)
	scores = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: statScore,
			Help: statScore,
		}, datasetStrategyLabels)
	prometheus.MustRegister(scores)
	solveTimer = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    statSolveTimer,
			Help:    statSolveTimer,
			Buckets: []float64{100, 1000, 5000, 30000, 120000},
		}, datasetStrategyLabels)
	prometheus.MustRegister(solveTimer)
	refineMoves = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: statRefineMoves,
			Help: statRefineMoves,
		}, strategyLabels)
	prometheus.MustRegister(refineMoves)
	// metrics
	metrics()
}

func metrics() {
	http.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		h := promhttp.Handler()
		h.ServeHTTP(w, r)
	})
}

// SolveTime log solve timing information (in milliseconds).
func SolveTime(dataset, strategy string, ts int64) {
	if solveTimer == nil {
		return
	}
	solveTimer.WithLabelValues(dataset, strategy).Observe(float64(ts))
}

// ScoreSet sets the latest score of one dataset and strategy.
func ScoreSet(dataset, strategy string, score int64) {
	if scores == nil {
		return
	}
	scores.WithLabelValues(dataset, strategy).Set(float64(score))
}

// RefineAdd adds accepted refine moves of one strategy.
func RefineAdd(strategy string, moves int64) {
	if refineMoves == nil {
		return
	}
	refineMoves.WithLabelValues(strategy).Add(float64(moves))
}

// ErrIncr increments one stat error counter.
func ErrIncr(dataset, op, err string) {
	if gerr == nil {
		return
	}
	gerr.WithLabelValues(dataset, op, err).Inc()
}

// JobIncr increments jobs of one state.
func JobIncr(state string) {
	if jobs == nil {
		return
	}
	jobs.WithLabelValues(state).Inc()
}

// JobDecr decrements jobs of one state.
func JobDecr(state string) {
	if jobs == nil {
		return
	}
	jobs.WithLabelValues(state).Dec()
}
