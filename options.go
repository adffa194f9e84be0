package pckp

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/katalvlaran/pckp/flow"
	"github.com/katalvlaran/pckp/metrics"
	"github.com/katalvlaran/pckp/precedence"
)

// Option configures Solve.
type Option func(*config)

type config struct {
	lpRelax    bool
	timeLimit  time.Duration
	maxNodes   int
	workers    int
	gap        float64
	eps        float64
	heuristic  bool
	algo       flow.Algorithm
	convention precedence.Convention
	logger     *log.Logger
	recorder   *metrics.Recorder

	err error // first invalid option
}

func defaultConfig() config {
	return config{
		workers:   1,
		eps:       1e-7,
		heuristic: true,
		logger:    log.NewWithOptions(io.Discard, log.Options{}),
	}
}

func (c *config) fail(format string, args ...interface{}) {
	if c.err == nil {
		c.err = fmt.Errorf("%w: %s", ErrInvalidOption, fmt.Sprintf(format, args...))
	}
}

// WithLPRelax returns the optimum of the linear relaxation instead of an
// exact 0/1 selection.
func WithLPRelax(on bool) Option {
	return func(c *config) { c.lpRelax = on }
}

// WithTimeLimit bounds wall time; 0 means no limit.
func WithTimeLimit(d time.Duration) Option {
	return func(c *config) {
		if d < 0 {
			c.fail("time limit %v is negative", d)
			return
		}
		c.timeLimit = d
	}
}

// WithMaxNodes bounds the number of branch-and-bound nodes; 0 means no limit.
func WithMaxNodes(n int) Option {
	return func(c *config) {
		if n < 0 {
			c.fail("max nodes %d is negative", n)
			return
		}
		c.maxNodes = n
	}
}

// WithWorkers sets the number of concurrent branch-and-bound workers.
func WithWorkers(n int) Option {
	return func(c *config) {
		if n < 1 {
			c.fail("workers %d is below 1", n)
			return
		}
		c.workers = n
	}
}

// WithGapTolerance accepts an incumbent within gap·|incumbent| of the
// bound. Results that relied on it report SuboptimalLimitReached.
func WithGapTolerance(gap float64) Option {
	return func(c *config) {
		if gap < 0 || math.IsNaN(gap) || math.IsInf(gap, 0) {
			c.fail("gap tolerance %g out of range", gap)
			return
		}
		c.gap = gap
	}
}

// WithEpsilon sets the absolute numeric tolerance.
func WithEpsilon(eps float64) Option {
	return func(c *config) {
		if !(eps > 0) || math.IsInf(eps, 0) {
			c.fail("epsilon %g must be positive", eps)
			return
		}
		c.eps = eps
	}
}

// WithHeuristic toggles seeding the incumbent from the rounded root
// relaxation.
func WithHeuristic(on bool) Option {
	return func(c *config) { c.heuristic = on }
}

// WithFlowAlgorithm selects the max-flow routine behind the relaxation.
func WithFlowAlgorithm(a flow.Algorithm) Option {
	return func(c *config) { c.algo = a }
}

// WithConvention sets how edges are read.
func WithConvention(conv precedence.Convention) Option {
	return func(c *config) { c.convention = conv }
}

// WithLogger routes debug output to l. Nil keeps the discard logger.
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRecorder records solver metrics on r.
func WithRecorder(r *metrics.Recorder) Option {
	return func(c *config) { c.recorder = r }
}
