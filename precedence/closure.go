package precedence

import "github.com/bits-and-blooms/bitset"

// Ancestors returns the set of items that i requires directly or
// transitively (i itself excluded). The closure is computed on first use
// and memoised; the returned bitset is shared and must not be modified.
func (g *Graph) Ancestors(i int) *bitset.BitSet {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.closure(i, g.anc, g.preds)
}

// Descendants returns the set of items requiring i directly or
// transitively (i itself excluded). Same sharing rules as Ancestors.
func (g *Graph) Descendants(i int) *bitset.BitSet {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.closure(i, g.desc, g.succs)
}

// closure computes memo[i] = ∪_{j ∈ adj[i]} ({j} ∪ memo[j]).
// Caller holds g.mu. Recursion depth is bounded by the longest path,
// and the relation is acyclic so it terminates.
func (g *Graph) closure(i int, memo []*bitset.BitSet, adj [][]int) *bitset.BitSet {
	if memo[i] != nil {
		return memo[i]
	}
	set := bitset.New(uint(g.n))
	for _, j := range adj[i] {
		set.Set(uint(j))
		set.InPlaceUnion(g.closure(j, memo, adj))
	}
	memo[i] = set

	return set
}

// AncestorList is Ancestors as an ascending index slice.
func (g *Graph) AncestorList(i int) []int { return members(g.Ancestors(i)) }

// DescendantList is Descendants as an ascending index slice.
func (g *Graph) DescendantList(i int) []int { return members(g.Descendants(i)) }

func members(set *bitset.BitSet) []int {
	out := make([]int, 0, set.Count())
	for j, ok := set.NextSet(0); ok; j, ok = set.NextSet(j + 1) {
		out = append(out, int(j))
	}

	return out
}
