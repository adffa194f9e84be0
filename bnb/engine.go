package bnb

import (
	"container/heap"
	"context"
	"errors"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/pckp/relax"
)

// search holds the state shared by all workers. Every field below mu is
// guarded by it.
type search struct {
	p     *relax.Problem
	opts  Options
	slack float64 // capacity allowance for summation rounding

	mu     sync.Mutex
	cond   *sync.Cond
	queue  nodeQueue
	seq    uint64
	active int // workers currently evaluating a node
	stop   bool

	found  bool
	best   []float64
	bestOb float64

	stats     Stats
	budgetHit bool
	gapPruned bool
	lost      float64 // largest bound among nodes dropped without proof
}

// Run searches for an optimal 0/1 selection of p.
//
// A nil error with Result.Found == false means p has no feasible
// selection. Every returned X satisfies Σ w·x ≤ Capacity up to float
// summation rounding; Eps does not widen the capacity. Budgets and a
// context deadline end the search with Result.Limited set, unless every
// open node is already dominated. Cancellation returns ctx.Err().
//
// Errors:
//   - ErrInvalidOptions for negative budgets or tolerances.
//   - relax.ErrNilGraph, relax.ErrShapeMismatch for malformed problems.
func Run(ctx context.Context, p *relax.Problem, opts Options) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	if err := opts.validate(); err != nil {
		return Result{}, err
	}

	s := &search{
		p:     p,
		opts:  opts,
		slack: summationSlack * math.Max(1, math.Abs(p.Capacity)),
		lost:  math.Inf(-1),
	}
	s.cond = sync.NewCond(&s.mu)
	if opts.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.TimeLimit)
		defer cancel()
	}

	if zero := make([]float64, p.Len()); !s.overweight(zero) {
		s.offer(zero, 0)
	}
	s.push(&node{bounds: make([]relax.Bound, p.Len()), bound: math.Inf(1)})

	var err error
	if opts.Workers == 1 {
		err = s.worker(ctx, s.newSolver())
	} else {
		g, gctx := errgroup.WithContext(ctx)
		for w := 0; w < opts.Workers; w++ {
			solver := s.newSolver()
			g.Go(func() error { return s.worker(gctx, solver) })
		}
		err = g.Wait()
	}
	if err != nil {
		return Result{}, err
	}

	res := s.result()
	opts.Logger.Debug("search finished",
		"objective", res.Objective,
		"bound", res.Bound,
		"limited", res.Limited,
		"nodes", res.Stats.Evaluated,
		"cuts", res.Stats.Cuts,
	)

	return res, nil
}

func (s *search) newSolver() *relax.Solver {
	return relax.NewSolver(s.p,
		relax.WithEpsilon(s.opts.Eps),
		relax.WithFlowAlgorithm(s.opts.FlowAlgorithm),
	)
}

// worker pops and evaluates nodes until the heap is empty and no other
// worker can refill it, or until the search is stopped.
func (s *search) worker(ctx context.Context, solver *relax.Solver) error {
	for {
		s.mu.Lock()
		for s.queue.Len() == 0 && s.active > 0 && !s.stop {
			s.cond.Wait()
		}
		if s.stop || s.queue.Len() == 0 {
			s.halt()
			s.mu.Unlock()
			return nil
		}
		if err := s.checkBudget(ctx); err != nil {
			s.halt()
			s.mu.Unlock()
			return err
		}
		if s.stop {
			s.mu.Unlock()
			return nil
		}
		if s.queue.Len() == 0 {
			// Budget ran out but every open node was dominated.
			s.mu.Unlock()
			continue
		}
		n := heap.Pop(&s.queue).(*node)
		if s.dominated(n.bound) {
			s.count(OutcomePrunedBound)
			s.mu.Unlock()
			continue
		}
		s.active++
		s.stats.Evaluated++
		if n.depth > s.stats.MaxDepth {
			s.stats.MaxDepth = n.depth
		}
		s.mu.Unlock()

		sol, err := solver.Solve(ctx, n.bounds)

		s.mu.Lock()
		s.active--
		if err != nil {
			if s.stop {
				// Another worker ended the search and cancelled ctx.
				s.mu.Unlock()
				return nil
			}
			s.lost = math.Max(s.lost, n.bound)
			if errors.Is(err, context.DeadlineExceeded) {
				s.budgetHit = true
				s.halt()
				s.mu.Unlock()
				return nil
			}
			s.halt()
			s.mu.Unlock()
			return err
		}
		s.settle(n, sol)
		s.cond.Broadcast()
		s.mu.Unlock()
	}
}

// checkBudget stops the search when the deadline has passed or MaxNodes
// nodes were evaluated. Open nodes that the incumbent already dominates
// are pruned first; the search only counts as limited if some remain.
// It returns a non-nil error only for cancellation. Caller holds mu.
func (s *search) checkBudget(ctx context.Context) error {
	switch err := ctx.Err(); {
	case err != nil && !errors.Is(err, context.DeadlineExceeded):
		return err
	case err != nil:
	case s.opts.MaxNodes > 0 && s.stats.Evaluated >= s.opts.MaxNodes:
	default:
		return nil
	}

	s.dropDominated()
	if s.queue.Len() > 0 {
		s.budgetHit = true
		s.halt()
	}

	return nil
}

// dropDominated prunes open nodes from the top of the heap while the
// incumbent dominates them. Caller holds mu.
func (s *search) dropDominated() {
	for s.queue.Len() > 0 && s.dominated(s.queue[0].bound) {
		heap.Pop(&s.queue)
		s.count(OutcomePrunedBound)
	}
}

// halt marks the search as stopped and wakes every waiting worker.
// Caller holds mu.
func (s *search) halt() {
	s.stop = true
	s.cond.Broadcast()
}

// settle classifies an evaluated node and pushes its children.
// Caller holds mu.
func (s *search) settle(n *node, sol relax.Solution) {
	s.stats.Cuts += sol.Cuts
	s.opts.Recorder.Relaxation(sol.Cuts)

	if sol.Status == relax.Infeasible {
		s.count(OutcomePrunedInfeasible)
		return
	}
	if n.depth == 0 {
		s.opts.Logger.Debug("root relaxation",
			"objective", sol.Objective,
			"bound", sol.Bound,
			"fractional", len(sol.Fractional),
			"cuts", sol.Cuts,
		)
		if s.opts.Heuristic && !sol.Integral() {
			if x := Round(s.p, sol.X, s.opts.Eps); !s.overweight(x) {
				s.offer(x, objective(s.p, x))
			}
		}
	}

	ub := math.Min(n.bound, sol.Bound)
	if s.dominated(ub) {
		s.count(OutcomePrunedBound)
		return
	}
	var j int
	switch {
	case sol.Integral() && !s.overweight(sol.X):
		s.count(OutcomeLeaf)
		s.offer(sol.X, sol.Objective)
		return
	case sol.Integral():
		// Within Eps of capacity but over it: split on a free chosen item.
		if j = s.heaviestFree(n.bounds, sol.X); j < 0 {
			s.count(OutcomePrunedInfeasible)
			return
		}
	default:
		j = s.pick(sol)
	}

	s.count(OutcomeBranched)
	if b, ok := s.fixOne(n.bounds, j); ok {
		s.push(&node{bounds: b, bound: ub, depth: n.depth + 1})
	} else {
		s.count(OutcomePrunedContradiction)
	}
	if b, ok := s.fixZero(n.bounds, j); ok {
		s.push(&node{bounds: b, bound: ub, depth: n.depth + 1})
	} else {
		s.count(OutcomePrunedContradiction)
	}
}

// dominated reports whether a subtree bounded by ub cannot improve the
// incumbent. Caller holds mu.
func (s *search) dominated(ub float64) bool {
	if !s.found {
		return false
	}
	if ub <= s.bestOb+s.opts.Eps {
		return true
	}
	if ub <= s.bestOb+s.opts.GapTolerance*math.Abs(s.bestOb) {
		s.gapPruned = true
		s.lost = math.Max(s.lost, ub)
		return true
	}

	return false
}

// offer installs x as the incumbent if it improves on it by more than Eps.
// Caller holds mu (or is the only goroutine).
func (s *search) offer(x []float64, obj float64) {
	if s.found && obj <= s.bestOb+s.opts.Eps {
		return
	}
	s.best = append(s.best[:0], x...)
	s.bestOb = obj
	s.found = true
	s.stats.IncumbentUpdates++
	s.opts.Recorder.Incumbent()
	s.opts.Logger.Debug("incumbent", "objective", obj, "nodes", s.stats.Evaluated)
}

// push assigns a sequence number and adds n to the heap.
func (s *search) push(n *node) {
	n.seq = s.seq
	s.seq++
	heap.Push(&s.queue, n)
}

func (s *search) count(outcome string) {
	switch outcome {
	case OutcomeBranched:
		s.stats.Branched++
	case OutcomeLeaf:
		s.stats.Leaves++
	case OutcomePrunedInfeasible:
		s.stats.PrunedInfeasible++
	case OutcomePrunedBound:
		s.stats.PrunedBound++
	case OutcomePrunedContradiction:
		s.stats.PrunedContradiction++
	}
	s.opts.Recorder.Node(outcome)
}

// pick returns the most fractional item; ties go to the higher
// profit/weight ratio, then to the lower index.
func (s *search) pick(sol relax.Solution) int {
	const tie = 1e-12
	best := -1
	var bestDist, bestRatio float64
	for _, i := range sol.Fractional {
		d := math.Abs(sol.X[i] - 0.5)
		r := s.p.Profit[i] / (s.p.Weight[i] + 1e-10)
		switch {
		case best < 0, d < bestDist-tie:
		case d <= bestDist+tie && r > bestRatio:
		default:
			continue
		}
		best, bestDist, bestRatio = i, d, r
	}

	return best
}

// heaviestFree returns the heaviest chosen item that bounds leave Free,
// or -1 when every chosen item is fixed.
func (s *search) heaviestFree(bounds []relax.Bound, x []float64) int {
	best := -1
	for i, v := range x {
		if v < 0.5 || bounds[i] != relax.Free {
			continue
		}
		if best < 0 || s.p.Weight[i] > s.p.Weight[best] {
			best = i
		}
	}

	return best
}

// overweight reports whether the 0/1 point x exceeds capacity by more than
// summation rounding.
func (s *search) overweight(x []float64) bool {
	var load float64
	for i, v := range x {
		load += s.p.Weight[i] * v
	}

	return load > s.p.Capacity+s.slack
}

// fixOne returns a copy of bounds with j and all its ancestors set to One.
func (s *search) fixOne(bounds []relax.Bound, j int) ([]relax.Bound, bool) {
	out := append([]relax.Bound(nil), bounds...)
	out[j] = relax.One
	anc := s.p.Graph.Ancestors(j)
	for k, ok := anc.NextSet(0); ok; k, ok = anc.NextSet(k + 1) {
		if out[k] == relax.Zero {
			return nil, false
		}
		out[k] = relax.One
	}

	return out, true
}

// fixZero returns a copy of bounds with j and all its descendants set to Zero.
func (s *search) fixZero(bounds []relax.Bound, j int) ([]relax.Bound, bool) {
	out := append([]relax.Bound(nil), bounds...)
	out[j] = relax.Zero
	desc := s.p.Graph.Descendants(j)
	for k, ok := desc.NextSet(0); ok; k, ok = desc.NextSet(k + 1) {
		if out[k] == relax.One {
			return nil, false
		}
		out[k] = relax.Zero
	}

	return out, true
}

// result assembles the final Result. Called after all workers returned.
func (s *search) result() Result {
	res := Result{
		Found:   s.found,
		Limited: s.budgetHit || s.gapPruned,
		Stats:   s.stats,
	}
	if !s.found {
		return res
	}
	res.X = append([]float64(nil), s.best...)
	res.Objective = s.bestOb
	res.Bound = s.bestOb
	if res.Limited {
		res.Bound = math.Max(res.Bound, s.lost)
		if top, ok := s.queue.top(); ok {
			res.Bound = math.Max(res.Bound, top)
		}
	}

	return res
}
