package bnb

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/katalvlaran/pckp/flow"
	"github.com/katalvlaran/pckp/metrics"
)

var (
	// ErrInvalidOptions is returned for negative budgets or tolerances.
	ErrInvalidOptions = errors.New("bnb: invalid options")
)

// summationSlack is the relative capacity allowance for a 0/1 selection.
// It absorbs float rounding in Σ w·x and nothing more.
const summationSlack = 1e-12

// Node outcomes, used as metric labels and in Stats.
const (
	OutcomeBranched            = "branched"
	OutcomeLeaf                = "leaf"
	OutcomePrunedInfeasible    = "pruned_infeasible"
	OutcomePrunedBound         = "pruned_bound"
	OutcomePrunedContradiction = "pruned_contradiction"
)

// Options configures a search.
type Options struct {
	// Eps is the absolute tolerance for integrality and pruning inside the
	// relaxation. Returned selections respect capacity without it.
	Eps float64

	// TimeLimit bounds wall time; 0 disables it. The context deadline, if
	// earlier, applies as well.
	TimeLimit time.Duration

	// MaxNodes bounds the number of evaluated nodes; 0 disables it.
	MaxNodes int

	// Workers is the number of concurrent workers; values below 1 mean 1.
	Workers int

	// GapTolerance prunes nodes whose bound exceeds the incumbent by at
	// most GapTolerance·|incumbent|. 0 keeps the search exact.
	GapTolerance float64

	// Heuristic offers the rounded root relaxation as an incumbent.
	Heuristic bool

	// FlowAlgorithm is passed to every relaxation solver.
	FlowAlgorithm flow.Algorithm

	// Logger receives debug lines. Nil discards them.
	Logger *log.Logger

	// Recorder receives node and incumbent counts. Nil disables metrics.
	Recorder *metrics.Recorder
}

// DefaultOptions returns an exact single-worker search with the rounding
// heuristic enabled and no budgets.
func DefaultOptions() Options {
	return Options{
		Eps:       1e-7,
		Workers:   1,
		Heuristic: true,
	}
}

// validate checks the options and fills defaults in place.
func (o *Options) validate() error {
	if o.Eps < 0 || o.TimeLimit < 0 || o.MaxNodes < 0 || o.GapTolerance < 0 {
		return ErrInvalidOptions
	}
	if o.Eps == 0 {
		o.Eps = 1e-7
	}
	if o.Workers < 1 {
		o.Workers = 1
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// Stats counts search events.
type Stats struct {
	Evaluated           int // relaxations solved
	Branched            int
	Leaves              int // integral relaxations
	PrunedInfeasible    int
	PrunedBound         int // includes nodes dropped at pop time
	PrunedContradiction int
	IncumbentUpdates    int
	MaxDepth            int
	Cuts                int // min-cut problems across all relaxations
}

// Result is the outcome of Run.
type Result struct {
	// Found is false only when no feasible selection exists.
	Found bool

	// X is the best selection found, 0 or 1 per item.
	X []float64

	// Objective is Σ p_i X_i.
	Objective float64

	// Bound is an upper bound on the optimum. It equals Objective when the
	// search completed without gap pruning.
	Bound float64

	// Limited reports that optimality was not proven: a budget ran out or
	// gap pruning was used.
	Limited bool

	Stats Stats
}
