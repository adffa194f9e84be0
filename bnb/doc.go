// Package bnb finds exact 0/1 selections for the knapsack problem with
// precedence constraints by best-bound-first branch-and-bound over the
// relaxation in package relax.
//
// Search outline:
//  1. The incumbent starts as the empty selection, which is feasible
//     whenever capacity is non-negative. With Options.Heuristic the
//     rounded root relaxation is offered as a second seed.
//  2. Open nodes sit in a max-heap keyed by their parent's relaxation
//     bound; equal bounds pop in creation order.
//  3. Evaluating a node solves its relaxation. The node is pruned when
//     infeasible or when its bound cannot beat the incumbent by more than
//     the tolerance. An integral relaxation within capacity is a feasible
//     leaf; one that only fits within the tolerance is split on its
//     heaviest free chosen item.
//  4. Otherwise the most fractional item j is branched on. The 0-child
//     fixes j and every descendant of j to zero, the 1-child fixes j and
//     every ancestor of j to one. A child whose fixings clash is dropped
//     without solving anything.
//
// Budgets (node count, wall time, context deadline) stop the search early;
// wall time also interrupts a running relaxation. Open nodes the incumbent
// already dominates are pruned, and if any others remain the best
// incumbent is returned with Result.Limited set. Pruning that
// relied on Options.GapTolerance also sets Limited, since optimality is no
// longer proven.
//
// With Options.Workers > 1 several workers share the open heap and the
// incumbent under one mutex. Each worker owns a relax.Solver, so only the
// relaxation solves run concurrently.
//
// Complexity:
//   - Worst case exponential in n; each node costs one relaxation
//     (a handful of min cuts) plus O(n) for bound copies.
//   - Memory: O(n) per open node.
package bnb
