package flow

import (
	"errors"
	"fmt"
)

// ErrSourceNotFound is returned when the source index is outside the network.
var ErrSourceNotFound = fmt.Errorf("flow: %w", errSourceNotFound)
var errSourceNotFound = errors.New("source vertex not found")

// ErrSinkNotFound is returned when the sink index is outside the network.
var ErrSinkNotFound = fmt.Errorf("flow: %w", errSinkNotFound)
var errSinkNotFound = errors.New("sink vertex not found")

// ErrNodeOutOfRange is returned by AddArc for endpoints outside the network.
var ErrNodeOutOfRange = errors.New("flow: node index out of range")

// ErrUnbounded is returned when an infinite-capacity path joins source and sink.
var ErrUnbounded = errors.New("flow: unbounded flow")

// EdgeError is returned when an arc has a negative or NaN capacity.
type EdgeError struct {
	From, To int
	Cap      float64
}

func (e EdgeError) Error() string {
	return fmt.Sprintf("flow: invalid capacity on arc %d→%d: %g", e.From, e.To, e.Cap)
}

// DefaultEpsilon is the residual threshold used when FlowOptions.Epsilon is negative.
const DefaultEpsilon = 1e-9

// FlowOptions configures all max-flow algorithms.
//   - Epsilon: residual capacities ≤ Epsilon count as zero (default 1e-9).
//   - LevelRebuildInterval: for Dinic, rebuild the level graph every N
//     augmentations (0 = only when the blocking flow is exhausted).
type FlowOptions struct {
	Epsilon              float64
	LevelRebuildInterval int
}

// DefaultOptions returns FlowOptions with Epsilon = DefaultEpsilon.
func DefaultOptions() FlowOptions {
	return FlowOptions{Epsilon: DefaultEpsilon}
}

func (o *FlowOptions) normalize() {
	if o.Epsilon < 0 {
		o.Epsilon = DefaultEpsilon
	}
	if o.LevelRebuildInterval < 0 {
		o.LevelRebuildInterval = 0
	}
}

// Algorithm names a max-flow routine.
type Algorithm int

const (
	// AlgoDinic selects Dinic.
	AlgoDinic Algorithm = iota
	// AlgoEdmondsKarp selects Edmonds–Karp.
	AlgoEdmondsKarp
	// AlgoFordFulkerson selects DFS Ford–Fulkerson.
	AlgoFordFulkerson
)

// String returns the algorithm name.
func (a Algorithm) String() string {
	switch a {
	case AlgoDinic:
		return "dinic"
	case AlgoEdmondsKarp:
		return "edmonds-karp"
	case AlgoFordFulkerson:
		return "ford-fulkerson"
	default:
		return fmt.Sprintf("algorithm(%d)", int(a))
	}
}

// ParseAlgorithm maps an algorithm name back to its value.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch s {
	case "", "dinic":
		return AlgoDinic, nil
	case "edmonds-karp":
		return AlgoEdmondsKarp, nil
	case "ford-fulkerson":
		return AlgoFordFulkerson, nil
	default:
		return 0, fmt.Errorf("flow: unknown algorithm %q", s)
	}
}
