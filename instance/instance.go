package instance

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/pckp/precedence"
)

var (
	// ErrUnknownFormat is returned for a path whose extension is not
	// .yaml, .yml or .json.
	ErrUnknownFormat = errors.New("instance: unknown file format")

	// ErrMalformed is returned when an instance's arrays disagree.
	ErrMalformed = errors.New("instance: malformed instance")
)

// Instance is one problem as stored on disk.
type Instance struct {
	Name       string    `yaml:"name,omitempty" json:"name,omitempty"`
	Profit     []float64 `yaml:"profit" json:"profit"`
	Weight     []float64 `yaml:"weight" json:"weight"`
	Edges      [][2]int  `yaml:"edges,omitempty" json:"edges,omitempty"`
	MaxWeight  float64   `yaml:"max_weight" json:"max_weight"`
	Convention string    `yaml:"convention,omitempty" json:"convention,omitempty"`
}

// Len returns the number of items.
func (in *Instance) Len() int { return len(in.Profit) }

// EdgeList converts Edges to precedence edges.
func (in *Instance) EdgeList() []precedence.Edge {
	out := make([]precedence.Edge, len(in.Edges))
	for i, e := range in.Edges {
		out[i] = precedence.Edge{U: e[0], V: e[1]}
	}

	return out
}

// EdgeConvention parses Convention.
func (in *Instance) EdgeConvention() (precedence.Convention, error) {
	return precedence.ParseConvention(in.Convention)
}

// TotalWeight returns Σ weight.
func (in *Instance) TotalWeight() float64 {
	var s float64
	for _, w := range in.Weight {
		s += w
	}

	return s
}

// Validate checks array lengths and the convention name. Value ranges and
// edge indices are checked by the solver.
func (in *Instance) Validate() error {
	if len(in.Profit) != len(in.Weight) {
		return fmt.Errorf("%w: %d profits, %d weights", ErrMalformed, len(in.Profit), len(in.Weight))
	}
	if _, err := in.EdgeConvention(); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	return nil
}

// Load reads an instance from path.
func Load(path string) (*Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	in, err := Decode(data, format(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return in, nil
}

// Save writes in to path, creating or truncating it.
func Save(path string, in *Instance) error {
	data, err := Encode(in, format(path))
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// Decode parses data in the given format ("yaml" or "json").
func Decode(data []byte, format string) (*Instance, error) {
	var in Instance
	switch format {
	case "yaml":
		if err := yaml.Unmarshal(data, &in); err != nil {
			return nil, err
		}
	case "json":
		if err := json.Unmarshal(data, &in); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	return &in, nil
}

// Encode renders in in the given format ("yaml" or "json").
func Encode(in *Instance, format string) ([]byte, error) {
	switch format {
	case "yaml":
		return yaml.Marshal(in)
	case "json":
		return json.MarshalIndent(in, "", "  ")
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	default:
		return filepath.Ext(path)
	}
}
