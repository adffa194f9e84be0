package precedence

import (
	"fmt"
	"sort"
	"sync"

	"github.com/bits-and-blooms/bitset"
)

// Graph is a validated, immutable precedence relation over items 0..n-1.
// Edges are stored normalised as (required, dependent) regardless of the
// Convention used at construction.
//
// A Graph is safe for concurrent use by multiple goroutines.
type Graph struct {
	n     int
	edges []Edge  // normalised (U required by V), sorted, deduplicated
	preds [][]int // preds[v]: items v requires directly, ascending
	succs [][]int // succs[u]: items requiring u directly, ascending
	order []int   // topological order: every item after its predecessors

	mu   sync.Mutex
	anc  []*bitset.BitSet // lazily materialised ancestor closures
	desc []*bitset.BitSet // lazily materialised descendant closures
}

// New validates edges over n items and builds the indexes.
//
// Errors: ErrNegativeSize, ErrItemOutOfRange, ErrSelfLoop (both wrapped with
// the offending edge), or a *CycleError wrapping ErrCyclicPrecedence.
func New(n int, edges []Edge, opts ...Option) (*Graph, error) {
	if n < 0 {
		return nil, fmt.Errorf("n=%d: %w", n, ErrNegativeSize)
	}
	var cfg options
	for _, opt := range opts {
		opt(&cfg)
	}

	// 1) Range and self-loop checks, normalising orientation on the way.
	norm := make([]Edge, 0, len(edges))
	for k, e := range edges {
		if e.U < 0 || e.U >= n || e.V < 0 || e.V >= n {
			return nil, fmt.Errorf("edge %d (%d,%d): %w", k, e.U, e.V, ErrItemOutOfRange)
		}
		if e.U == e.V {
			return nil, fmt.Errorf("edge %d (%d,%d): %w", k, e.U, e.V, ErrSelfLoop)
		}
		if cfg.convention == DependentFirst {
			e = Edge{U: e.V, V: e.U}
		}
		norm = append(norm, e)
	}

	// 2) Deterministic order and duplicate collapse.
	sort.Slice(norm, func(i, j int) bool {
		if norm[i].U == norm[j].U {
			return norm[i].V < norm[j].V
		}
		return norm[i].U < norm[j].U
	})
	uniq := norm[:0]
	for _, e := range norm {
		if len(uniq) > 0 && e == uniq[len(uniq)-1] {
			continue
		}
		uniq = append(uniq, e)
	}

	g := &Graph{
		n:     n,
		edges: uniq,
		preds: make([][]int, n),
		succs: make([][]int, n),
		anc:   make([]*bitset.BitSet, n),
		desc:  make([]*bitset.BitSet, n),
	}
	for _, e := range uniq {
		g.succs[e.U] = append(g.succs[e.U], e.V) // ascending V per U by sort
		g.preds[e.V] = append(g.preds[e.V], e.U)
	}
	for v := 0; v < n; v++ {
		sort.Ints(g.preds[v])
	}

	// 3) Cycle detection + topological order in a single DFS pass.
	order, err := topologicalSort(n, g.succs)
	if err != nil {
		return nil, err
	}
	g.order = order

	return g, nil
}

// Len returns the number of items.
func (g *Graph) Len() int { return g.n }

// NumEdges returns the number of distinct precedence pairs.
func (g *Graph) NumEdges() int { return len(g.edges) }

// Edges returns the normalised edge list: each Edge{U, V} means V requires U.
// The slice is shared and must not be modified.
func (g *Graph) Edges() []Edge { return g.edges }

// Predecessors returns the items i requires directly, in ascending order.
// The slice is shared and must not be modified.
func (g *Graph) Predecessors(i int) []int { return g.preds[i] }

// Successors returns the items that require i directly, in ascending order.
// The slice is shared and must not be modified.
func (g *Graph) Successors(i int) []int { return g.succs[i] }

// TopologicalOrder returns every item exactly once, each after all of its
// predecessors. The slice is shared and must not be modified.
func (g *Graph) TopologicalOrder() []int { return g.order }

// IsClosed reports whether the assignment x respects every precedence pair
// within tolerance eps, i.e. x[v] ≤ x[u] + eps for each edge (u, v).
// It returns false when len(x) differs from Len().
func (g *Graph) IsClosed(x []float64, eps float64) bool {
	if len(x) != g.n {
		return false
	}
	for _, e := range g.edges {
		if x[e.V] > x[e.U]+eps {
			return false
		}
	}

	return true
}
