package pckp

import (
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/pckp/bnb"
)

// Result is the outcome of Solve.
type Result struct {
	// RunID identifies the solve in logs.
	RunID uuid.UUID `json:"run_id"`

	Status Status `json:"status"`

	// Selection holds one value per item: 0 or 1 in exact mode, the
	// relaxation optimum in [0,1] with WithLPRelax. All zero when
	// Infeasible.
	Selection []float64 `json:"selection"`

	// Rounded is a feasible 0/1 selection. In exact mode it equals
	// Selection; with WithLPRelax it is Selection rounded by bnb.Round.
	Rounded []float64 `json:"rounded"`

	// Objective is the total profit of Selection.
	Objective float64 `json:"objective"`

	// Bound is an upper bound on the exact optimum. It may be +Inf when a
	// budget ran out before the root relaxation finished.
	Bound float64 `json:"-"`

	Stats   bnb.Stats     `json:"stats"`
	Elapsed time.Duration `json:"elapsed"`
}

// Tuple returns the selection vector and the numeric status code.
func (r *Result) Tuple() ([]float64, int) {
	return r.Selection, int(r.Status)
}

// Weight returns the total weight of sel under weight.
func Weight(weight, sel []float64) float64 {
	var s float64
	for i, x := range sel {
		s += weight[i] * x
	}

	return s
}
