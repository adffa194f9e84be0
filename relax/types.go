package relax

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/pckp/flow"
)

var (
	// ErrShapeMismatch is returned when profits, weights, bounds and the
	// precedence graph disagree on the number of items.
	ErrShapeMismatch = errors.New("relax: shape mismatch")

	// ErrNilGraph is returned when Problem.Graph is nil.
	ErrNilGraph = errors.New("relax: nil precedence graph")

	// ErrFractionalBound is returned by BoundsFromInterval for an interval
	// other than [0,1], [0,0] or [1,1].
	ErrFractionalBound = errors.New("relax: bound interval is not integral")
)

// DefaultEpsilon is the absolute tolerance for integrality and constraint
// checks.
const DefaultEpsilon = 1e-7

// Bound is the admissible range of one selection variable.
type Bound uint8

const (
	// Free is the interval [0, 1].
	Free Bound = iota
	// Zero is the interval [0, 0].
	Zero
	// One is the interval [1, 1].
	One
)

// String returns the interval notation.
func (b Bound) String() string {
	switch b {
	case Free:
		return "[0,1]"
	case Zero:
		return "[0,0]"
	case One:
		return "[1,1]"
	default:
		return fmt.Sprintf("bound(%d)", uint8(b))
	}
}

// Lo returns the lower end of the interval.
func (b Bound) Lo() float64 {
	if b == One {
		return 1
	}
	return 0
}

// Hi returns the upper end of the interval.
func (b Bound) Hi() float64 {
	if b == Zero {
		return 0
	}
	return 1
}

// BoundsFromInterval converts per-item [lo, hi] pairs to Bounds. Values
// within eps of 0 or 1 are accepted.
func BoundsFromInterval(lo, hi []float64, eps float64) ([]Bound, error) {
	if len(lo) != len(hi) {
		return nil, ErrShapeMismatch
	}
	near := func(x, y float64) bool { return math.Abs(x-y) <= eps }
	out := make([]Bound, len(lo))
	for i := range lo {
		switch {
		case near(lo[i], 0) && near(hi[i], 1):
			out[i] = Free
		case near(lo[i], 0) && near(hi[i], 0):
			out[i] = Zero
		case near(lo[i], 1) && near(hi[i], 1):
			out[i] = One
		default:
			return nil, fmt.Errorf("item %d [%g,%g]: %w", i, lo[i], hi[i], ErrFractionalBound)
		}
	}

	return out, nil
}

// Status is the outcome of one relaxation solve.
type Status int

const (
	// Optimal means X is an optimal point of the relaxation.
	Optimal Status = iota
	// Infeasible means no point satisfies the bounds, precedence and capacity.
	Infeasible
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Optimal:
		return "optimal"
	case Infeasible:
		return "infeasible"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Solution is the result of a relaxation solve.
type Solution struct {
	// Status is Optimal or Infeasible. Other fields are zero when Infeasible.
	Status Status

	// Objective is Σ p_i x_i at X.
	Objective float64

	// Bound is the smallest Lagrangian dual value λC' + max-closure(λ)
	// seen (plus the fixed profit). It is a valid upper bound on the
	// relaxation, and equals Objective within tolerance at convergence.
	Bound float64

	// X is the optimal point, one value per item.
	X []float64

	// Lambda is the capacity multiplier at which X was assembled.
	Lambda float64

	// Fractional lists, ascending, the items whose X is farther than eps
	// from both 0 and 1.
	Fractional []int

	// Cuts is the number of min-cut problems solved.
	Cuts int
}

// Integral reports whether every coordinate of X is within eps of 0 or 1.
func (s *Solution) Integral() bool { return len(s.Fractional) == 0 }

// Option configures a Solver.
type Option func(*config)

type config struct {
	eps     float64
	algo    flow.Algorithm
	maxCuts int
	flowRel float64 // residual threshold relative to the largest reduced profit
}

func defaultConfig() config {
	return config{
		eps:     DefaultEpsilon,
		algo:    flow.AlgoDinic,
		flowRel: 1e-12,
	}
}

// WithEpsilon sets the absolute tolerance. Non-positive values are ignored.
func WithEpsilon(eps float64) Option {
	return func(c *config) {
		if eps > 0 {
			c.eps = eps
		}
	}
}

// WithFlowAlgorithm selects the max-flow routine used for cuts.
func WithFlowAlgorithm(a flow.Algorithm) Option {
	return func(c *config) { c.algo = a }
}

// WithMaxCuts caps the number of cut problems per solve (0 = 4n + 64).
func WithMaxCuts(k int) Option {
	return func(c *config) {
		if k >= 0 {
			c.maxCuts = k
		}
	}
}
