package precedence_test

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pckp/precedence"
)

// naiveReach walks adj from i and returns the reachable set (i excluded).
func naiveReach(i int, adj func(int) []int) map[int]bool {
	seen := map[int]bool{}
	stack := []int{i}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, w := range adj(v) {
			if !seen[w] {
				seen[w] = true
				stack = append(stack, w)
			}
		}
	}

	return seen
}

func randomDAG(rng *rand.Rand, n int, p float64) []precedence.Edge {
	var edges []precedence.Edge
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if rng.Float64() < p {
				edges = append(edges, precedence.Edge{U: i, V: j})
			}
		}
	}

	return edges
}

func TestClosure_Diamond(t *testing.T) {
	g, err := precedence.New(5, []precedence.Edge{{U: 0, V: 1}, {U: 0, V: 2}, {U: 1, V: 3}, {U: 2, V: 3}})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2}, g.AncestorList(3))
	assert.Equal(t, []int{1, 2, 3}, g.DescendantList(0))
	assert.Empty(t, g.AncestorList(0))
	assert.Empty(t, g.DescendantList(4))
	assert.False(t, g.Ancestors(3).Test(3), "closure excludes the item itself")
}

func TestClosure_MatchesNaiveWalk(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 20; trial++ {
		n := 5 + rng.Intn(30)
		g, err := precedence.New(n, randomDAG(rng, n, 0.15))
		require.NoError(t, err)

		for i := 0; i < n; i++ {
			anc := naiveReach(i, g.Predecessors)
			desc := naiveReach(i, g.Successors)
			assert.Equal(t, uint(len(anc)), g.Ancestors(i).Count())
			assert.Equal(t, uint(len(desc)), g.Descendants(i).Count())
			for j := range anc {
				assert.True(t, g.Ancestors(i).Test(uint(j)))
			}
			for j := range desc {
				assert.True(t, g.Descendants(i).Test(uint(j)))
			}
		}
	}
}

func TestClosure_ConcurrentReaders(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	const n = 200
	g, err := precedence.New(n, randomDAG(rng, n, 0.05))
	require.NoError(t, err)

	var wg sync.WaitGroup
	counts := make([][]uint, 8)
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			counts[w] = make([]uint, n)
			for i := n - 1; i >= 0; i-- {
				counts[w][i] = g.Ancestors(i).Count() + g.Descendants(i).Count()
			}
		}(w)
	}
	wg.Wait()
	for w := 1; w < 8; w++ {
		assert.Equal(t, counts[0], counts[w])
	}
}
