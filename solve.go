package pckp

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/katalvlaran/pckp/bnb"
	"github.com/katalvlaran/pckp/precedence"
	"github.com/katalvlaran/pckp/relax"
)

// Solve maximizes Σ profit_i·x_i subject to Σ weight_i·x_i ≤ maxWeight and
// the precedence edges.
//
// Validation happens before any search and yields an error, never a status:
//   - ErrLengthMismatch, ErrInvalidWeight, ErrInvalidProfit,
//     ErrInvalidCapacity, ErrInvalidOption;
//   - precedence.ErrItemOutOfRange, precedence.ErrSelfLoop and
//     *precedence.CycleError (matches precedence.ErrCyclicPrecedence).
//
// A negative maxWeight is accepted and reported as Infeasible. Context
// deadlines behave like WithTimeLimit; cancellation returns ctx.Err().
func Solve(
	ctx context.Context,
	profit, weight []float64,
	edges []precedence.Edge,
	maxWeight float64,
	opts ...Option,
) (*Result, error) {
	start := time.Now()
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}
	if err := validate(profit, weight, maxWeight); err != nil {
		return nil, err
	}
	g, err := precedence.New(len(profit), edges, precedence.WithConvention(cfg.convention))
	if err != nil {
		return nil, err
	}

	res := &Result{RunID: uuid.New()}
	logger := cfg.logger.With("run", res.RunID.String())
	logger.Debug("solve",
		"items", len(profit),
		"edges", g.NumEdges(),
		"capacity", maxWeight,
		"lp_relax", cfg.lpRelax,
	)
	p := &relax.Problem{Profit: profit, Weight: weight, Capacity: maxWeight, Graph: g}

	if cfg.lpRelax {
		err = solveRelaxed(ctx, p, &cfg, res)
	} else {
		err = solveExact(ctx, p, &cfg, logger, res)
	}
	if err != nil {
		return nil, err
	}

	res.Elapsed = time.Since(start)
	cfg.recorder.ObserveSolve(res.Status.String(), res.Elapsed)
	logger.Debug("solved",
		"status", res.Status,
		"objective", res.Objective,
		"elapsed", res.Elapsed,
	)

	return res, nil
}

func validate(profit, weight []float64, maxWeight float64) error {
	if len(profit) != len(weight) {
		return fmt.Errorf("%w: %d profits, %d weights", ErrLengthMismatch, len(profit), len(weight))
	}
	for i := range profit {
		if math.IsNaN(profit[i]) || math.IsInf(profit[i], 0) {
			return fmt.Errorf("item %d: %w", i, ErrInvalidProfit)
		}
		if !(weight[i] >= 0) || math.IsInf(weight[i], 0) {
			return fmt.Errorf("item %d: %w", i, ErrInvalidWeight)
		}
	}
	if math.IsNaN(maxWeight) || math.IsInf(maxWeight, 0) {
		return ErrInvalidCapacity
	}

	return nil
}

// solveRelaxed runs the relaxation once on [0,1] bounds.
func solveRelaxed(ctx context.Context, p *relax.Problem, cfg *config, res *Result) error {
	if cfg.timeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeLimit)
		defer cancel()
	}
	solver := relax.NewSolver(p, relax.WithEpsilon(cfg.eps), relax.WithFlowAlgorithm(cfg.algo))
	sol, err := solver.Solve(ctx, nil)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		res.Status = SuboptimalLimitReached
		res.Selection = make([]float64, p.Len())
		res.Rounded = make([]float64, p.Len())
		res.Bound = math.Inf(1)
		return nil
	case err != nil:
		return err
	}
	res.Stats = bnb.Stats{Evaluated: 1, Cuts: sol.Cuts}
	cfg.recorder.Relaxation(sol.Cuts)

	if sol.Status == relax.Infeasible {
		res.Status = Infeasible
		res.Selection = make([]float64, p.Len())
		res.Rounded = make([]float64, p.Len())
		return nil
	}
	res.Status = Optimal
	res.Selection = sol.X
	res.Objective = sol.Objective
	res.Bound = sol.Bound
	res.Rounded = bnb.Round(p, sol.X, cfg.eps)

	return nil
}

// solveExact runs branch-and-bound.
func solveExact(ctx context.Context, p *relax.Problem, cfg *config, logger *log.Logger, res *Result) error {
	out, err := bnb.Run(ctx, p, bnb.Options{
		Eps:           cfg.eps,
		TimeLimit:     cfg.timeLimit,
		MaxNodes:      cfg.maxNodes,
		Workers:       cfg.workers,
		GapTolerance:  cfg.gap,
		Heuristic:     cfg.heuristic,
		FlowAlgorithm: cfg.algo,
		Logger:        logger,
		Recorder:      cfg.recorder,
	})
	if err != nil {
		return err
	}
	res.Stats = out.Stats

	switch {
	case !out.Found:
		res.Status = Infeasible
		res.Selection = make([]float64, p.Len())
	case out.Limited:
		res.Status = SuboptimalLimitReached
		res.Selection = out.X
	default:
		res.Status = Optimal
		res.Selection = out.X
	}
	res.Objective = out.Objective
	res.Bound = out.Bound
	res.Rounded = append([]float64(nil), res.Selection...)

	return nil
}
