package bnb

import (
	"math"
	"sort"

	"github.com/katalvlaran/pckp/relax"
)

// Round turns a relaxation point into a feasible 0/1 selection.
//
// Items are visited by increasing distance of x from its nearest integer
// (measured at 1e-6 resolution), then by decreasing profit/weight, then by
// index. An item whose x rounds to 1 is taken while the running weight
// stays within capacity + eps. A final pass in topological order drops any
// taken item with an untaken predecessor, so the result is closed.
//
// Round returns a zero selection when capacity is below -eps.
func Round(p *relax.Problem, x []float64, eps float64) []float64 {
	n := p.Len()
	out := make([]float64, n)
	if p.Capacity < -eps || len(x) != n {
		return out
	}

	type key struct {
		gap   int64
		ratio float64
		i     int
	}
	keys := make([]key, n)
	for i := 0; i < n; i++ {
		keys[i] = key{
			gap:   int64(math.Round(math.Abs(math.Round(x[i])-x[i]) * 1e6)),
			ratio: p.Profit[i] / (p.Weight[i] + 1e-10),
			i:     i,
		}
	}
	sort.Slice(keys, func(a, b int) bool {
		if keys[a].gap != keys[b].gap {
			return keys[a].gap < keys[b].gap
		}
		if keys[a].ratio != keys[b].ratio {
			return keys[a].ratio > keys[b].ratio
		}
		return keys[a].i < keys[b].i
	})

	var load float64
	for _, k := range keys {
		if math.Round(x[k.i]) < 1 {
			continue
		}
		if load+p.Weight[k.i] <= p.Capacity+eps {
			out[k.i] = 1
			load += p.Weight[k.i]
		}
	}

	for _, v := range p.Graph.TopologicalOrder() {
		if out[v] == 0 {
			continue
		}
		for _, u := range p.Graph.Predecessors(v) {
			if out[u] == 0 {
				out[v] = 0
				break
			}
		}
	}

	return out
}

// objective returns Σ p_i x_i.
func objective(p *relax.Problem, x []float64) float64 {
	var s float64
	for i, v := range x {
		s += p.Profit[i] * v
	}

	return s
}
