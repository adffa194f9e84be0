package bnb_test

import (
	"bytes"
	"context"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pckp/bnb"
	"github.com/katalvlaran/pckp/instance"
	"github.com/katalvlaran/pckp/metrics"
	"github.com/katalvlaran/pckp/precedence"
	"github.com/katalvlaran/pckp/relax"
)

const tol = 1e-6

func problem(t *testing.T, profit, weight []float64, capacity float64, edges []precedence.Edge) *relax.Problem {
	t.Helper()
	g, err := precedence.New(len(profit), edges)
	require.NoError(t, err)

	return &relax.Problem{Profit: profit, Weight: weight, Capacity: capacity, Graph: g}
}

func randomProblem(t *testing.T, rng *rand.Rand, n int, density float64) *relax.Problem {
	t.Helper()
	profit := make([]float64, n)
	weight := make([]float64, n)
	var total float64
	for i := 0; i < n; i++ {
		profit[i] = float64(rng.Intn(15) - 3)
		weight[i] = float64(rng.Intn(9))
		total += weight[i]
	}
	var edges []precedence.Edge
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if rng.Float64() < density {
				edges = append(edges, precedence.Edge{U: i, V: j})
			}
		}
	}

	return problem(t, profit, weight, math.Floor(rng.Float64()*total), edges)
}

// bruteForce returns the best objective over closed subsets within capacity.
func bruteForce(p *relax.Problem) float64 {
	n := p.Len()
	best := math.Inf(-1)
	for m := 0; m < 1<<n; m++ {
		closed := true
		for _, e := range p.Graph.Edges() {
			if m&(1<<e.V) != 0 && m&(1<<e.U) == 0 {
				closed = false
				break
			}
		}
		if !closed {
			continue
		}
		var pw, ww float64
		for i := 0; i < n; i++ {
			if m&(1<<i) != 0 {
				pw += p.Profit[i]
				ww += p.Weight[i]
			}
		}
		if ww <= p.Capacity && pw > best {
			best = pw
		}
	}

	return best
}

func assertFeasible(t *testing.T, p *relax.Problem, x []float64) {
	t.Helper()
	require.Len(t, x, p.Len())
	var load float64
	for i, v := range x {
		require.True(t, v == 0 || v == 1, "x[%d] = %g", i, v)
		load += p.Weight[i] * v
	}
	assert.LessOrEqual(t, load, p.Capacity+1e-9)
	assert.True(t, p.Graph.IsClosed(x, 0))
}

func TestRun_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 80; trial++ {
		p := randomProblem(t, rng, 1+rng.Intn(12), 0.15)
		res, err := bnb.Run(context.Background(), p, bnb.DefaultOptions())
		require.NoError(t, err)
		require.True(t, res.Found)
		assert.False(t, res.Limited)
		assertFeasible(t, p, res.X)
		assert.InDelta(t, bruteForce(p), res.Objective, tol, "trial %d", trial)
		assert.InDelta(t, res.Objective, res.Bound, tol)
	}
}

func TestRun_ThreeItemScenarios(t *testing.T) {
	profit := []float64{1, 4, 1}
	weight := []float64{1, 2, 3}
	cases := []struct {
		capacity float64
		want     []float64
	}{
		{0, []float64{0, 0, 0}},
		{2.1, []float64{0, 1, 0}},
		{3, []float64{1, 1, 0}},
		{6, []float64{1, 1, 1}},
	}
	for _, tc := range cases {
		res, err := bnb.Run(context.Background(), problem(t, profit, weight, tc.capacity, nil), bnb.DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, tc.want, res.X, "C=%g", tc.capacity)
		assert.False(t, res.Limited)
	}
}

func TestRun_KnapsackWithoutEdgesMatchesDP(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	for trial := 0; trial < 10; trial++ {
		n := 20
		profit := make([]float64, n)
		weight := make([]float64, n)
		wi := make([]int, n)
		for i := range profit {
			profit[i] = float64(1 + rng.Intn(30))
			wi[i] = 1 + rng.Intn(15)
			weight[i] = float64(wi[i])
		}
		capacity := 40 + rng.Intn(40)

		dp := make([]float64, capacity+1)
		for i := 0; i < n; i++ {
			for c := capacity; c >= wi[i]; c-- {
				dp[c] = math.Max(dp[c], dp[c-wi[i]]+profit[i])
			}
		}

		p := problem(t, profit, weight, float64(capacity), nil)
		res, err := bnb.Run(context.Background(), p, bnb.DefaultOptions())
		require.NoError(t, err)
		assertFeasible(t, p, res.X)
		assert.InDelta(t, dp[capacity], res.Objective, tol, "trial %d", trial)
	}
}

func TestRun_WorkersAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	for trial := 0; trial < 10; trial++ {
		p := randomProblem(t, rng, 30, 0.05)
		seq, err := bnb.Run(context.Background(), p, bnb.DefaultOptions())
		require.NoError(t, err)

		opts := bnb.DefaultOptions()
		opts.Workers = 4
		par, err := bnb.Run(context.Background(), p, opts)
		require.NoError(t, err)
		assertFeasible(t, p, par.X)
		assert.InDelta(t, seq.Objective, par.Objective, tol, "trial %d", trial)
		assert.False(t, par.Limited)
	}
}

func TestRun_HeuristicDoesNotChangeOptimum(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	for trial := 0; trial < 20; trial++ {
		p := randomProblem(t, rng, 10, 0.2)
		on, err := bnb.Run(context.Background(), p, bnb.DefaultOptions())
		require.NoError(t, err)
		opts := bnb.DefaultOptions()
		opts.Heuristic = false
		off, err := bnb.Run(context.Background(), p, opts)
		require.NoError(t, err)
		assert.InDelta(t, on.Objective, off.Objective, tol)
	}
}

func TestRun_NodeBudget(t *testing.T) {
	p := problem(t, []float64{1, 4, 1}, []float64{1, 2, 3}, 2.1, nil)
	opts := bnb.DefaultOptions()
	opts.MaxNodes = 1
	res, err := bnb.Run(context.Background(), p, opts)
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.True(t, res.Limited)
	assert.Equal(t, 1, res.Stats.Evaluated)
	assert.Equal(t, []float64{0, 1, 0}, res.X, "rounded root seeds the incumbent")
	assert.InDelta(t, 4.1, res.Bound, tol)
}

func TestRun_GapTolerance(t *testing.T) {
	p := problem(t, []float64{1, 4, 1}, []float64{1, 2, 3}, 2.1, nil)
	opts := bnb.DefaultOptions()
	opts.GapTolerance = 0.05
	res, err := bnb.Run(context.Background(), p, opts)
	require.NoError(t, err)
	assert.True(t, res.Limited)
	assert.InDelta(t, 4.0, res.Objective, tol)
	assert.InDelta(t, 4.1, res.Bound, tol)
	assert.Equal(t, 0, res.Stats.Branched)
}

func TestRun_NegativeCapacityIsInfeasible(t *testing.T) {
	p := problem(t, []float64{1, 2}, []float64{1, 1}, -1, nil)
	res, err := bnb.Run(context.Background(), p, bnb.DefaultOptions())
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.False(t, res.Limited)
	assert.Equal(t, 1, res.Stats.PrunedInfeasible)
}

func TestRun_CapacityHasNoEpsAllowance(t *testing.T) {
	p := problem(t, []float64{1}, []float64{1 + 5e-8}, 1, nil)
	res, err := bnb.Run(context.Background(), p, bnb.DefaultOptions())
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.False(t, res.Limited)
	assert.Equal(t, []float64{0}, res.X)
	assert.Equal(t, 0.0, res.Objective)
	assert.Equal(t, 1, res.Stats.Branched)

	p = problem(t, []float64{3, 2}, []float64{0.6 + 5e-8, 0.4}, 1, []precedence.Edge{{U: 1, V: 0}})
	res, err = bnb.Run(context.Background(), p, bnb.DefaultOptions())
	require.NoError(t, err)
	assertFeasible(t, p, res.X)
	assert.Equal(t, []float64{0, 1}, res.X)
	assert.InDelta(t, 2.0, res.Objective, tol)

	p = problem(t, []float64{1}, []float64{1}, -5e-8, nil)
	res, err = bnb.Run(context.Background(), p, bnb.DefaultOptions())
	require.NoError(t, err)
	assert.False(t, res.Found, "the empty selection does not fit a negative capacity")
}

func TestRun_TimeLimitCutsRootRelaxation(t *testing.T) {
	in := instance.RandomTree(20000, 5)
	g, err := precedence.New(in.Len(), in.EdgeList())
	require.NoError(t, err)
	p := &relax.Problem{Profit: in.Profit, Weight: in.Weight, Capacity: in.MaxWeight, Graph: g}

	opts := bnb.DefaultOptions()
	opts.TimeLimit = time.Nanosecond
	res, err := bnb.Run(context.Background(), p, opts)
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.True(t, res.Limited)
	assert.Zero(t, res.Stats.Leaves+res.Stats.Branched, "the root never completes")
	assert.Equal(t, make([]float64, in.Len()), res.X)
	assert.True(t, math.IsInf(res.Bound, 1))
}

func TestRun_NodeBudgetWithDominatedQueueIsProven(t *testing.T) {
	// Root x = [0.5, 0.5]; the first child finds a leaf worth the root
	// bound, which dominates its sibling when the budget runs out.
	p := problem(t, []float64{1, 1}, []float64{1, 1}, 1, nil)
	opts := bnb.DefaultOptions()
	opts.Heuristic = false
	opts.MaxNodes = 2
	res, err := bnb.Run(context.Background(), p, opts)
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.False(t, res.Limited)
	assert.Equal(t, 2, res.Stats.Evaluated)
	assert.Equal(t, 1, res.Stats.PrunedBound)
	assert.Equal(t, []float64{1, 0}, res.X)
	assert.InDelta(t, 1.0, res.Bound, tol)
}

func TestRun_Empty(t *testing.T) {
	res, err := bnb.Run(context.Background(), problem(t, nil, nil, 0, nil), bnb.DefaultOptions())
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Empty(t, res.X)
	assert.Equal(t, 0.0, res.Objective)
}

func TestRun_InvalidOptions(t *testing.T) {
	p := problem(t, []float64{1}, []float64{1}, 1, nil)
	for _, mutate := range []func(*bnb.Options){
		func(o *bnb.Options) { o.Eps = -1 },
		func(o *bnb.Options) { o.MaxNodes = -1 },
		func(o *bnb.Options) { o.TimeLimit = -time.Second },
		func(o *bnb.Options) { o.GapTolerance = -0.1 },
	} {
		opts := bnb.DefaultOptions()
		mutate(&opts)
		_, err := bnb.Run(context.Background(), p, opts)
		assert.ErrorIs(t, err, bnb.ErrInvalidOptions)
	}

	_, err := bnb.Run(context.Background(), &relax.Problem{}, bnb.DefaultOptions())
	assert.ErrorIs(t, err, relax.ErrNilGraph)
}

func TestRun_Cancelled(t *testing.T) {
	p := problem(t, []float64{1, 4, 1}, []float64{1, 2, 3}, 2.1, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := bnb.Run(ctx, p, bnb.DefaultOptions())
	assert.ErrorIs(t, err, context.Canceled)

	opts := bnb.DefaultOptions()
	opts.Workers = 3
	_, err = bnb.Run(ctx, p, opts)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_ExpiredDeadlineKeepsSeed(t *testing.T) {
	p := problem(t, []float64{1, 4, 1}, []float64{1, 2, 3}, 2.1, nil)
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	res, err := bnb.Run(ctx, p, bnb.DefaultOptions())
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.True(t, res.Limited)
	assert.Equal(t, []float64{0, 0, 0}, res.X)
	assert.True(t, math.IsInf(res.Bound, 1))
}

func TestRun_MetricsAndLogging(t *testing.T) {
	reg := prometheus.NewRegistry()
	cfg := metrics.DefaultConfig()
	cfg.Registry = reg
	rec, err := metrics.NewRecorder(cfg)
	require.NoError(t, err)

	var buf bytes.Buffer
	opts := bnb.DefaultOptions()
	opts.Recorder = rec
	opts.Logger = log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	p := problem(t, []float64{1, 4, 1, 3}, []float64{1, 2, 3, 2}, 4.5, []precedence.Edge{{U: 1, V: 3}})
	res, err := bnb.Run(context.Background(), p, opts)
	require.NoError(t, err)

	n, err := testutil.GatherAndCount(reg, "pckp_solver_nodes_total")
	require.NoError(t, err)
	assert.Positive(t, n)
	assert.Contains(t, buf.String(), "root relaxation")
	assert.Contains(t, buf.String(), "search finished")
	assert.Positive(t, res.Stats.IncumbentUpdates)
}
