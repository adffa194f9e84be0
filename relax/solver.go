package relax

import (
	"context"
	"math"

	"github.com/katalvlaran/pckp/flow"
	"github.com/katalvlaran/pckp/precedence"
)

// Problem is one knapsack-with-precedence instance as seen by the
// relaxation. Profit, Weight and Graph must agree on the item count.
type Problem struct {
	Profit   []float64
	Weight   []float64
	Capacity float64
	Graph    *precedence.Graph
}

// Len returns the number of items.
func (p *Problem) Len() int { return len(p.Profit) }

// Validate checks that the problem is well shaped.
func (p *Problem) Validate() error {
	if p.Graph == nil {
		return ErrNilGraph
	}
	if len(p.Weight) != len(p.Profit) || p.Graph.Len() != len(p.Profit) {
		return ErrShapeMismatch
	}

	return nil
}

// Solver solves relaxations of one Problem under varying bounds, reusing
// its working arrays between calls. A Solver is not safe for concurrent
// use; give each goroutine its own.
type Solver struct {
	p   *Problem
	cfg config
	net *flow.Network

	fix   []Bound // bounds after precedence propagation
	local []int   // item → free-item index, -1 when fixed
	items []int   // free-item index → item
}

// NewSolver returns a Solver for p.
func NewSolver(p *Problem, opts ...Option) *Solver {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	n := p.Len()

	return &Solver{
		p:     p,
		cfg:   cfg,
		net:   flow.NewNetwork(n + 2),
		fix:   make([]Bound, n),
		local: make([]int, n),
		items: make([]int, 0, n),
	}
}

// closureSet is a closed set of free items with its totals.
type closureSet struct {
	in     []bool // indexed by free-item index
	profit float64
	weight float64
}

// value is the Lagrangian line of the set at multiplier lambda.
func (c closureSet) value(lambda float64) float64 { return c.profit - lambda*c.weight }

// Solve returns an optimal point of the relaxation under bounds (nil means
// every item is Free). Bounds are first closed under precedence: One
// spreads to ancestors and Zero to descendants; a clash is Infeasible.
//
// Errors are limited to shape problems and ctx cancellation.
func (s *Solver) Solve(ctx context.Context, bounds []Bound) (Solution, error) {
	if err := s.p.Validate(); err != nil {
		return Solution{}, err
	}
	n := s.p.Len()
	if bounds != nil && len(bounds) != n {
		return Solution{}, ErrShapeMismatch
	}
	eps := s.cfg.eps

	if !s.propagate(bounds) {
		return Solution{Status: Infeasible}, nil
	}

	// 1) Split fixed and free items.
	var fixedProfit, fixedWeight float64
	s.items = s.items[:0]
	for i := 0; i < n; i++ {
		switch s.fix[i] {
		case One:
			fixedProfit += s.p.Profit[i]
			fixedWeight += s.p.Weight[i]
			s.local[i] = -1
		case Zero:
			s.local[i] = -1
		default:
			s.local[i] = len(s.items)
			s.items = append(s.items, i)
		}
	}
	residual := s.p.Capacity - fixedWeight
	if residual < -eps {
		return Solution{Status: Infeasible}, nil
	}

	sol := Solution{Status: Optimal, X: make([]float64, n)}
	for i := 0; i < n; i++ {
		if s.fix[i] == One {
			sol.X[i] = 1
		}
	}
	if len(s.items) == 0 {
		sol.Objective, sol.Bound = fixedProfit, fixedProfit
		return sol, nil
	}

	// 2) λ = 0: the unconstrained max closure. If it fits, it is optimal.
	heavy, err := s.closure(ctx, 0, false)
	if err != nil {
		return Solution{}, err
	}
	sol.Cuts++
	dual := heavy.profit
	if heavy.weight <= residual+eps {
		s.assemble(&sol, heavy, heavy, 1, 0, fixedProfit)
		sol.Bound = fixedProfit + dual
		return sol, nil
	}

	// 3) λ = ∞: only zero-weight items whose ancestors are zero-weight.
	light, err := s.closure(ctx, 0, true)
	if err != nil {
		return Solution{}, err
	}
	sol.Cuts++

	// 4) Newton search on the dual.
	maxCuts := s.cfg.maxCuts
	if maxCuts == 0 {
		maxCuts = 4*len(s.items) + 64
	}
	var lambda float64
	for sol.Cuts < maxCuts {
		lambda = (heavy.profit - light.profit) / (heavy.weight - light.weight)
		if lambda < 0 || math.IsNaN(lambda) {
			lambda = 0
		}
		next, err := s.closure(ctx, lambda, false)
		if err != nil {
			return Solution{}, err
		}
		sol.Cuts++

		v := next.value(lambda)
		if d := lambda*residual + v; d < dual {
			dual = d
		}
		if math.Abs(next.weight-residual) <= eps {
			// Optimal at λ and exactly full: complementary slackness holds.
			heavy, light = next, next
			break
		}
		line := math.Max(heavy.value(lambda), light.value(lambda))
		if v <= line+eps*(1+math.Abs(line)) {
			break
		}
		if next.weight > residual+eps {
			heavy = next
		} else {
			light = next
		}
	}

	// 5) Convex combination meeting capacity.
	theta := 1.0
	if heavy.weight > light.weight {
		theta = (residual - light.weight) / (heavy.weight - light.weight)
	}
	switch {
	case theta <= eps:
		theta = 0
	case theta >= 1-eps && heavy.weight <= residual+eps:
		theta = 1
	case theta > 1:
		theta = 1
	}
	s.assemble(&sol, heavy, light, theta, lambda, fixedProfit)
	sol.Bound = fixedProfit + dual

	return sol, nil
}

// propagate copies bounds into s.fix and closes them under precedence.
// It reports false on a 0/1 clash.
func (s *Solver) propagate(bounds []Bound) bool {
	g := s.p.Graph
	for i := range s.fix {
		s.fix[i] = Free
		if bounds != nil {
			s.fix[i] = bounds[i]
		}
	}
	order := g.TopologicalOrder()

	// One spreads to ancestors: walk dependents before their requirements.
	for k := len(order) - 1; k >= 0; k-- {
		v := order[k]
		if s.fix[v] != One {
			continue
		}
		for _, u := range g.Predecessors(v) {
			if s.fix[u] == Zero {
				return false
			}
			s.fix[u] = One
		}
	}
	// Zero spreads to descendants.
	for _, u := range order {
		if s.fix[u] != Zero {
			continue
		}
		for _, v := range g.Successors(u) {
			if s.fix[v] == One {
				return false
			}
			s.fix[v] = Zero
		}
	}

	return true
}

// closure solves the max-weight closure over free items with reduced
// profits p − λw. With atInfinity, positive-weight items get −∞.
func (s *Solver) closure(ctx context.Context, lambda float64, atInfinity bool) (closureSet, error) {
	k := len(s.items)
	src, snk := k, k+1
	s.net.Reset(k + 2)

	var largest float64
	for li, i := range s.items {
		r := s.p.Profit[i] - lambda*s.p.Weight[i]
		if atInfinity && s.p.Weight[i] > 0 {
			r = math.Inf(-1)
		}
		var err error
		switch {
		case r > 0:
			_, err = s.net.AddArc(src, li, r)
			largest = math.Max(largest, r)
		case r < 0:
			_, err = s.net.AddArc(li, snk, -r)
			if !math.IsInf(r, 0) {
				largest = math.Max(largest, -r)
			}
		}
		if err != nil {
			return closureSet{}, err
		}
	}
	for _, e := range s.p.Graph.Edges() {
		lu, lv := s.local[e.U], s.local[e.V]
		if lu < 0 || lv < 0 {
			continue
		}
		// Keeping v on the source side forces u there too.
		if _, err := s.net.AddArc(lv, lu, math.Inf(1)); err != nil {
			return closureSet{}, err
		}
	}

	opts := flow.FlowOptions{Epsilon: s.cfg.flowRel * math.Max(1, largest)}
	if _, err := s.net.MaxFlow(ctx, s.cfg.algo, src, snk, opts); err != nil {
		return closureSet{}, err
	}
	side := s.net.SourceSide(src, opts.Epsilon)

	set := closureSet{in: make([]bool, k)}
	for li, i := range s.items {
		if side[li] {
			set.in[li] = true
			set.profit += s.p.Profit[i]
			set.weight += s.p.Weight[i]
		}
	}

	return set, nil
}

// assemble writes θ·1_heavy + (1−θ)·1_light into sol.X for free items.
func (s *Solver) assemble(sol *Solution, heavy, light closureSet, theta, lambda, fixedProfit float64) {
	obj := fixedProfit
	for li, i := range s.items {
		var x float64
		switch {
		case heavy.in[li] && light.in[li]:
			x = 1
		case heavy.in[li]:
			x = theta
		case light.in[li]:
			x = 1 - theta
		}
		sol.X[i] = x
		obj += s.p.Profit[i] * x
		if x > 0 && x < 1 {
			sol.Fractional = append(sol.Fractional, i)
		}
	}
	sol.Objective = obj
	sol.Lambda = lambda
}
