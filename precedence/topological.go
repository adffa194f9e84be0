package precedence

// Visitation states of the three-colour DFS.
const (
	white = iota // not visited yet
	gray         // on the current DFS path
	black        // fully explored
)

// topoSorter holds the state of one three-colour DFS over succ adjacency.
type topoSorter struct {
	succs [][]int
	state []uint8
	path  []int // current DFS path, used to reconstruct a cycle
	order []int // post-order
}

// topologicalSort returns a topological order of 0..n-1 under succs, or a
// *CycleError describing the first back edge found. Roots are explored in
// ascending index order and successors in ascending order, so the result
// is deterministic.
func topologicalSort(n int, succs [][]int) ([]int, error) {
	t := &topoSorter{
		succs: succs,
		state: make([]uint8, n),
		path:  make([]int, 0, 16),
		order: make([]int, 0, n),
	}
	for v := 0; v < n; v++ {
		if t.state[v] == white {
			if err := t.visit(v); err != nil {
				return nil, err
			}
		}
	}
	// Reverse post-order.
	for i, j := 0, len(t.order)-1; i < j; i, j = i+1, j-1 {
		t.order[i], t.order[j] = t.order[j], t.order[i]
	}

	return t.order, nil
}

func (t *topoSorter) visit(v int) error {
	t.state[v] = gray
	t.path = append(t.path, v)

	for _, w := range t.succs[v] {
		switch t.state[w] {
		case gray:
			return &CycleError{Cycle: t.cycleFrom(w)}
		case white:
			if err := t.visit(w); err != nil {
				return err
			}
		}
	}

	t.path = t.path[:len(t.path)-1]
	t.state[v] = black
	t.order = append(t.order, v)

	return nil
}

// cycleFrom copies the suffix of the current path starting at w.
func (t *topoSorter) cycleFrom(w int) []int {
	i := len(t.path) - 1
	for i > 0 && t.path[i] != w {
		i--
	}
	cycle := make([]int, len(t.path)-i)
	copy(cycle, t.path[i:])

	return cycle
}
