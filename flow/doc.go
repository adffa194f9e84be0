// Package flow implements maximum-flow / minimum-cut algorithms on an
// arena-indexed residual network.
//
// Nodes are dense integers 0..n-1 and arcs live in flat slices (head/next/
// to/cap), with every arc a stored next to its reverse arc a^1. This keeps
// the hot loops allocation-free, which matters because the knapsack
// relaxation solves one cut problem per dual iteration per search node.
//
// The algorithms offered are:
//
//   - Ford–Fulkerson
//
//   - Method: depth-first search for any augmenting path.
//
//   - Time:   O(E · F) on integral networks.
//
//   - Dinic
//
//   - Method: BFS level graph + blocking flow via DFS with current-arc pointers.
//
//   - Time:   O(V² · E) in general, far better in practice.
//
//   - Edmonds–Karp
//
//   - Method: BFS shortest augmenting paths.
//
//   - Time:   O(V · E²).
//
// # Capacities
//
// Capacities are float64. math.Inf(1) is allowed and models "uncuttable"
// arcs; a path of infinite arcs from source to sink yields ErrUnbounded.
// Residual capacities ≤ FlowOptions.Epsilon are treated as saturated.
//
// # Cuts
//
// After a max-flow call, SourceSide returns the nodes reachable from the
// source in the residual network: the source side of the minimum cut that
// is minimal by inclusion.
//
// # Errors
//
//	ErrSourceNotFound / ErrSinkNotFound - terminal index outside the network
//	ErrNodeOutOfRange                   - AddArc endpoint outside the network
//	EdgeError                           - negative or NaN capacity
//	ErrUnbounded                        - infinite-capacity source→sink path
//	context.Canceled / DeadlineExceeded - ctx done during the search
package flow
