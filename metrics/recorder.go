package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ErrInvalidConfig is returned for an unusable Config.
	ErrInvalidConfig = errors.New("metrics: invalid configuration")

	// ErrRegistrationFailed wraps a collector registration error.
	ErrRegistrationFailed = errors.New("metrics: registration failed")
)

// Config controls collector naming and registration.
type Config struct {
	// Namespace and Subsystem prefix every series. Both are required.
	Namespace string
	Subsystem string

	// Registry receives the collectors. Nil means prometheus.DefaultRegisterer.
	Registry prometheus.Registerer

	// DurationBuckets for solve wall time, in seconds. Nil means defaults.
	DurationBuckets []float64

	// CutBuckets for min-cut counts per relaxation. Nil means defaults.
	CutBuckets []float64
}

// DefaultConfig returns the configuration used by the pckp binary.
func DefaultConfig() *Config {
	return &Config{
		Namespace:       "pckp",
		Subsystem:       "solver",
		DurationBuckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		CutBuckets:      []float64{1, 2, 4, 8, 16, 32, 64, 128, 256},
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.Namespace == "" {
		return fmt.Errorf("%w: namespace is required", ErrInvalidConfig)
	}
	if c.Subsystem == "" {
		return fmt.Errorf("%w: subsystem is required", ErrInvalidConfig)
	}

	return nil
}

// Recorder records solver activity. All methods are safe for concurrent use
// and are no-ops on a nil receiver.
type Recorder struct {
	solves     *prometheus.CounterVec
	nodes      *prometheus.CounterVec
	incumbents prometheus.Counter
	duration   prometheus.Histogram
	cuts       prometheus.Histogram

	registry   prometheus.Registerer
	collectors []prometheus.Collector
}

// NewRecorder builds the collectors described by cfg and registers them.
func NewRecorder(cfg *Config) (*Recorder, error) {
	if cfg == nil {
		return nil, ErrInvalidConfig
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := *cfg
	if c.DurationBuckets == nil {
		c.DurationBuckets = DefaultConfig().DurationBuckets
	}
	if c.CutBuckets == nil {
		c.CutBuckets = DefaultConfig().CutBuckets
	}
	reg := c.Registry
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	r := &Recorder{registry: reg}
	r.solves = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: c.Namespace,
		Subsystem: c.Subsystem,
		Name:      "solves_total",
		Help:      "Finished solves by status.",
	}, []string{"status"})
	r.nodes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: c.Namespace,
		Subsystem: c.Subsystem,
		Name:      "nodes_total",
		Help:      "Branch-and-bound nodes by outcome.",
	}, []string{"outcome"})
	r.incumbents = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: c.Namespace,
		Subsystem: c.Subsystem,
		Name:      "incumbent_updates_total",
		Help:      "Improving feasible solutions found.",
	})
	r.duration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: c.Namespace,
		Subsystem: c.Subsystem,
		Name:      "solve_duration_seconds",
		Help:      "Wall time per solve.",
		Buckets:   c.DurationBuckets,
	})
	r.cuts = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: c.Namespace,
		Subsystem: c.Subsystem,
		Name:      "relaxation_cuts",
		Help:      "Min-cut problems solved per relaxation.",
		Buckets:   c.CutBuckets,
	})

	for _, col := range []prometheus.Collector{r.solves, r.nodes, r.incumbents, r.duration, r.cuts} {
		if err := reg.Register(col); err != nil {
			r.Unregister()
			return nil, fmt.Errorf("%w: %v", ErrRegistrationFailed, err)
		}
		r.collectors = append(r.collectors, col)
	}

	return r, nil
}

// Unregister removes every collector this Recorder registered.
func (r *Recorder) Unregister() {
	if r == nil {
		return
	}
	for _, col := range r.collectors {
		r.registry.Unregister(col)
	}
	r.collectors = nil
}

// ObserveSolve counts one finished solve and its wall time.
func (r *Recorder) ObserveSolve(status string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.solves.WithLabelValues(status).Inc()
	r.duration.Observe(elapsed.Seconds())
}

// Node counts one node outcome.
func (r *Recorder) Node(outcome string) {
	if r == nil {
		return
	}
	r.nodes.WithLabelValues(outcome).Inc()
}

// Incumbent counts one incumbent improvement.
func (r *Recorder) Incumbent() {
	if r == nil {
		return
	}
	r.incumbents.Inc()
}

// Relaxation records the number of cuts one relaxation solve needed.
func (r *Recorder) Relaxation(cuts int) {
	if r == nil {
		return
	}
	r.cuts.Observe(float64(cuts))
}
