package precedence

import (
	"errors"
	"fmt"
)

var (
	// ErrNegativeSize is returned when the item count is negative.
	ErrNegativeSize = errors.New("precedence: negative item count")

	// ErrItemOutOfRange indicates an edge endpoint outside [0, n).
	ErrItemOutOfRange = errors.New("precedence: item index out of range")

	// ErrSelfLoop indicates an edge whose endpoints coincide.
	ErrSelfLoop = errors.New("precedence: self-loop edge")

	// ErrCyclicPrecedence indicates that the precedence relation contains a
	// cycle and therefore cannot represent a consistent selection order.
	ErrCyclicPrecedence = errors.New("precedence: cyclic precedence")
)

// CycleError reports one cycle found while validating the relation.
// Cycle lists item indices in edge order; the last item requires the first.
type CycleError struct {
	Cycle []int
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("precedence: cyclic precedence through items %v", e.Cycle)
}

// Unwrap lets errors.Is(err, ErrCyclicPrecedence) match.
func (e *CycleError) Unwrap() error { return ErrCyclicPrecedence }

// Edge is an ordered pair of item indices. Its meaning depends on the
// Convention the graph is built with.
type Edge struct {
	U, V int
}

// Convention selects how an Edge is read.
type Convention int

const (
	// PredecessorFirst reads (u, v) as "v requires u".
	PredecessorFirst Convention = iota

	// DependentFirst reads (u, v) as "u requires v".
	DependentFirst
)

// String returns the lower-case convention name.
func (c Convention) String() string {
	switch c {
	case PredecessorFirst:
		return "predecessor-first"
	case DependentFirst:
		return "dependent-first"
	default:
		return fmt.Sprintf("convention(%d)", int(c))
	}
}

// ParseConvention maps a convention name back to its value. The empty
// string selects PredecessorFirst.
func ParseConvention(s string) (Convention, error) {
	switch s {
	case "", "predecessor-first":
		return PredecessorFirst, nil
	case "dependent-first":
		return DependentFirst, nil
	default:
		return 0, fmt.Errorf("precedence: unknown convention %q", s)
	}
}

// Option configures Graph construction.
type Option func(*options)

type options struct {
	convention Convention
}

// WithConvention selects the edge orientation. Unknown values are ignored.
func WithConvention(c Convention) Option {
	return func(o *options) {
		if c == PredecessorFirst || c == DependentFirst {
			o.convention = c
		}
	}
}
