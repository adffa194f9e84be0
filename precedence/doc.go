// Package precedence validates and indexes the precedence relation of a
// precedence-constrained knapsack instance.
//
// What:
//
//   - Graph: an immutable DAG over item indices 0..n-1, built from an edge
//     list. An edge (u, v) means "v requires u": v may be selected only if
//     u is selected as well (x_v ≤ x_u).
//   - Validation: endpoint range, self-loops, and cycles are rejected at
//     construction time. A cycle is reported as *CycleError carrying one
//     offending cycle, so callers can show it.
//   - Indexes: direct predecessors/successors (arena-indexed slices), a
//     deterministic topological order, and lazily memoised ancestor and
//     descendant closures stored as bitsets.
//
// Why:
//
//   - Branch-and-bound propagation needs "force 1 on every ancestor" and
//     "force 0 on every descendant" in O(n/64) per query instead of a graph
//     walk per branching step.
//   - The relaxation solver needs predecessor adjacency to build its cut
//     network.
//
// Conventions:
//
//   - PredecessorFirst (default): (u, v) = v requires u.
//   - DependentFirst: (u, v) = u requires v, i.e. pairs read as
//     "item, then what it needs".
//
// Complexity:
//
//   - New:          O(n + m log m) (edge dedup + three-colour DFS)
//   - Ancestors(i): O(|anc(i)| · n/64) on first call, O(1) afterwards
//   - Memory:       O(n + m), plus n bits per materialised closure
//
// Errors:
//
//   - ErrNegativeSize      n < 0
//   - ErrItemOutOfRange    an edge endpoint outside [0, n)
//   - ErrSelfLoop          an edge (i, i)
//   - ErrCyclicPrecedence  the relation is not acyclic (see CycleError)
package precedence
