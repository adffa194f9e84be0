package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pckp/instance"
)

// execute runs the root command with args and returns stdout and the log.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	c := New(&out, &logs, log.DebugLevel)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetErr(&logs)
	err := root.ExecuteContext(context.Background())

	return out.String(), logs.String(), err
}

func writeSmall(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, instance.Save(path, &instance.Instance{
		Name:      "small",
		Profit:    []float64{1, 4, 1},
		Weight:    []float64{1, 2, 3},
		MaxWeight: 2.1,
	}))

	return path
}

func TestSolve_JSON(t *testing.T) {
	path := writeSmall(t, "small.yaml")

	out, logs, err := execute(t, "solve", path, "--json")
	require.NoError(t, err)
	var v resultView
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, 0, v.Code)
	assert.Equal(t, []float64{0, 1, 0}, v.Selection)
	assert.Equal(t, "small", v.Instance)
	require.NotNil(t, v.Bound)
	assert.InDelta(t, 4.0, *v.Bound, 1e-9)
	assert.Contains(t, logs, "solve started")
	assert.Contains(t, logs, "items=3")
	assert.Contains(t, logs, "status=optimal")

	out, _, err = execute(t, "solve", path, "--json", "--lp-relax")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.InDeltaSlice(t, []float64{0.1, 1, 0}, v.Selection, 1e-6)
	assert.Equal(t, []float64{0, 1, 0}, v.Rounded)
}

func TestSolve_Summary(t *testing.T) {
	out, _, err := execute(t, "solve", writeSmall(t, "small.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "optimal")
	assert.Contains(t, out, "Objective")
	assert.Contains(t, out, "Selection")
}

func TestSolve_ConfigAndFlags(t *testing.T) {
	path := writeSmall(t, "small.yaml")
	cfgPath := filepath.Join(t.TempDir(), "pckp.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[solver]\nlp_relax = true\n"), 0o644))

	out, _, err := execute(t, "solve", path, "--json", "--config", cfgPath)
	require.NoError(t, err)
	var v resultView
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.InDelta(t, 0.1, v.Selection[0], 1e-6, "config enables the relaxation")

	out, _, err = execute(t, "solve", path, "--json", "--config", cfgPath, "--lp-relax=false")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, []float64{0, 1, 0}, v.Selection, "flag overrides config")

	_, _, err = execute(t, "solve", path, "--workers", "0")
	assert.Error(t, err)
}

func TestSolve_Errors(t *testing.T) {
	_, _, err := execute(t, "solve", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "cycle.yaml")
	require.NoError(t, instance.Save(path, &instance.Instance{
		Profit: []float64{1, 1}, Weight: []float64{1, 1},
		Edges: [][2]int{{0, 1}, {1, 0}}, MaxWeight: 1,
	}))
	_, _, err = execute(t, "solve", path)
	assert.ErrorContains(t, err, "cyclic")
}

func TestGenerateThenSolve(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dag.json")
	out, _, err := execute(t, "generate", "dag", "--n", "15", "--p", "0.1", "--seed", "4", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	in, err := instance.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 15, in.Len())

	out, _, err = execute(t, "solve", path, "--json")
	require.NoError(t, err)
	var v resultView
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, 0, v.Code)
	assert.LessOrEqual(t, v.Weight, v.Capacity)

	_, _, err = execute(t, "generate", "ring", "-o", path)
	assert.Error(t, err)
	_, _, err = execute(t, "generate", "tree")
	assert.Error(t, err, "output is required")
}

func TestBench(t *testing.T) {
	out, _, err := execute(t, "bench", "--n", "200", "--runs", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "pckp_solver_solves_total{status=optimal} 3")
	assert.Contains(t, out, "pckp_solver_solve_duration_seconds count=3")

	_, _, err = execute(t, "bench", "--runs", "0")
	assert.Error(t, err)
}

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, log.InfoLevel)
	l.Debug("hidden")
	assert.Empty(t, buf.String())
	l.Info("shown")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "pckp")
}

func TestPhaseFinish(t *testing.T) {
	var buf bytes.Buffer
	c := &CLI{Logger: newLogger(&buf, log.DebugLevel), out: &buf}
	ph := c.startPhase("bench", "runs", 2)
	ph.finish("failed", 0)

	logs := buf.String()
	assert.Contains(t, logs, "bench started")
	assert.Contains(t, logs, "runs=2")
	assert.Contains(t, logs, "failed=0")
	assert.Contains(t, logs, "elapsed=")
}

func TestSelectionString(t *testing.T) {
	assert.Equal(t, "1 3", selectionString([]float64{0, 1, 0, 1}, 0))
	assert.Equal(t, "0:0.500 1:1.000", selectionString([]float64{0.5, 1, 0}, 0))
	assert.Contains(t, selectionString([]float64{1, 1, 1}, 2), "1 more")
}
