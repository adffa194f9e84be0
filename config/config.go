// Package config loads solver settings for the pckp binary from TOML.
//
//	[solver]
//	lp_relax = false
//	time_limit = "30s"
//	max_nodes = 0
//	workers = 4
//	gap_tolerance = 0.0
//	epsilon = 1e-7
//	heuristic = true
//	flow_algorithm = "dinic"
//	convention = "predecessor-first"
//
//	[metrics]
//	namespace = "pckp"
//	subsystem = "solver"
//
//	[log]
//	level = "info"
//
// Missing keys keep their Default values; unknown keys are rejected.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"

	"github.com/katalvlaran/pckp"
	"github.com/katalvlaran/pckp/flow"
	"github.com/katalvlaran/pckp/metrics"
	"github.com/katalvlaran/pckp/precedence"
)

var (
	// ErrUnknownKey is returned when the file sets a key Config does not have.
	ErrUnknownKey = errors.New("config: unknown key")

	// ErrInvalid wraps validation failures.
	ErrInvalid = errors.New("config: invalid value")
)

var validate = validator.New()

// Config is the full file.
type Config struct {
	Solver  Solver  `toml:"solver"`
	Metrics Metrics `toml:"metrics"`
	Log     Log     `toml:"log"`
}

// Solver mirrors the pckp.Solve options.
type Solver struct {
	LPRelax       bool          `toml:"lp_relax"`
	TimeLimit     time.Duration `toml:"time_limit" validate:"gte=0"`
	MaxNodes      int           `toml:"max_nodes" validate:"gte=0"`
	Workers       int           `toml:"workers" validate:"gte=1,lte=256"`
	GapTolerance  float64       `toml:"gap_tolerance" validate:"gte=0,lte=1"`
	Epsilon       float64       `toml:"epsilon" validate:"gt=0,lt=0.01"`
	Heuristic     bool          `toml:"heuristic"`
	FlowAlgorithm string        `toml:"flow_algorithm" validate:"oneof=dinic edmonds-karp ford-fulkerson"`
	Convention    string        `toml:"convention" validate:"omitempty,oneof=predecessor-first dependent-first"`
}

// Metrics names the Prometheus series.
type Metrics struct {
	Namespace string `toml:"namespace" validate:"required,alphanum"`
	Subsystem string `toml:"subsystem" validate:"required,alphanum"`
}

// Log sets the CLI log level.
type Log struct {
	Level string `toml:"level" validate:"oneof=debug info warn error"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Solver: Solver{
			Workers:       1,
			Epsilon:       1e-7,
			Heuristic:     true,
			FlowAlgorithm: flow.AlgoDinic.String(),
		},
		Metrics: Metrics{Namespace: "pckp", Subsystem: "solver"},
		Log:     Log{Level: "info"},
	}
}

// Load decodes the file at path over Default and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Decode(string(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Decode parses TOML text over Default and validates the result.
func Decode(text string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return Config{}, err
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(names, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks every field against its tag.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s fails %q", ErrInvalid, fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	return nil
}

// Options converts the solver section into pckp options.
func (c *Config) Options() ([]pckp.Option, error) {
	algo, err := flow.ParseAlgorithm(c.Solver.FlowAlgorithm)
	if err != nil {
		return nil, err
	}
	conv, err := precedence.ParseConvention(c.Solver.Convention)
	if err != nil {
		return nil, err
	}

	return []pckp.Option{
		pckp.WithLPRelax(c.Solver.LPRelax),
		pckp.WithTimeLimit(c.Solver.TimeLimit),
		pckp.WithMaxNodes(c.Solver.MaxNodes),
		pckp.WithWorkers(c.Solver.Workers),
		pckp.WithGapTolerance(c.Solver.GapTolerance),
		pckp.WithEpsilon(c.Solver.Epsilon),
		pckp.WithHeuristic(c.Solver.Heuristic),
		pckp.WithFlowAlgorithm(algo),
		pckp.WithConvention(conv),
	}, nil
}

// MetricsConfig returns a metrics.Config for the metrics section.
func (c *Config) MetricsConfig() *metrics.Config {
	mc := metrics.DefaultConfig()
	mc.Namespace = c.Metrics.Namespace
	mc.Subsystem = c.Metrics.Subsystem

	return mc
}

// LogLevel parses the log section.
func (c *Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}

	return lvl
}
