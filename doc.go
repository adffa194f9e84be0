// Package pckp solves the knapsack problem with precedence constraints:
// given items with profits and weights, a capacity and a set of
// precedence edges, choose a subset of maximum total profit whose weight
// fits the capacity and which, for every edge, selects the dependent only
// together with its predecessor.
//
// Solve is the single entry point. By default it returns a proven optimal
// 0/1 selection found by branch-and-bound (package bnb) over the linear
// relaxation (package relax). WithLPRelax returns the optimum of the
// relaxation instead, where each selection value lies in [0,1].
//
// Outcomes are reported as a Status, never as errors:
//
//	0  Optimal                 proven optimum (or exact relaxation optimum)
//	1  Infeasible              no selection fits, e.g. negative capacity
//	2  SuboptimalLimitReached  a node/time budget or gap tolerance stopped
//	                           the search; the best selection found is kept
//
// Errors are reserved for inputs that prevent a solve from starting
// (length mismatch, non-finite values, out-of-range or cyclic edges, bad
// options) and for context cancellation.
//
// Edge orientation follows precedence.PredecessorFirst: (u, v) means v
// requires u. WithConvention(precedence.DependentFirst) reads edges the
// other way round.
//
// Example:
//
//	res, err := pckp.Solve(ctx,
//		[]float64{1, 4, 1}, []float64{1, 2, 3},
//		[]precedence.Edge{{U: 0, V: 2}}, 3)
//	sel, status := res.Tuple() // [1 1 0], 0
package pckp
