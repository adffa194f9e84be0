package pckp

import "fmt"

// Status is the terminal outcome of a solve.
type Status int

const (
	// Optimal means the selection is a proven optimum.
	Optimal Status = iota

	// Infeasible means no selection satisfies capacity and precedence.
	Infeasible

	// SuboptimalLimitReached means a budget or the gap tolerance ended the
	// search early; the selection is feasible but not proven optimal.
	SuboptimalLimitReached
)

// String returns the status name used in logs and metric labels.
func (s Status) String() string {
	switch s {
	case Optimal:
		return "optimal"
	case Infeasible:
		return "infeasible"
	case SuboptimalLimitReached:
		return "limit_reached"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText decodes a status name.
func (s *Status) UnmarshalText(b []byte) error {
	switch string(b) {
	case "optimal":
		*s = Optimal
	case "infeasible":
		*s = Infeasible
	case "limit_reached":
		*s = SuboptimalLimitReached
	default:
		return fmt.Errorf("pckp: unknown status %q", b)
	}

	return nil
}
