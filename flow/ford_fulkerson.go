package flow

import (
	"context"
	"math"
)

// FordFulkerson computes the maximum flow from source to sink using
// depth-first augmenting paths (iterative DFS, no recursion).
//
// Complexity: O(E · F) on integral networks; prefer Dinic otherwise.
func FordFulkerson(ctx context.Context, net *Network, source, sink int, opts FlowOptions) (float64, error) {
	opts.normalize()
	if err := net.checkTerminals(source, sink); err != nil {
		return 0, err
	}
	if source == sink {
		return 0, nil
	}

	var (
		eps       = opts.Epsilon
		parentArc = make([]int, net.n)
		bottle    = make([]float64, net.n)
		stack     = make([]int, 0, net.n)
		maxFlow   float64
	)
	for {
		if err := ctx.Err(); err != nil {
			return maxFlow, err
		}

		// Iterative DFS from source recording the arc used to reach each node.
		for i := range parentArc {
			parentArc[i] = -1
		}
		stack = stack[:0]
		stack = append(stack, source)
		bottle[source] = math.Inf(1)
		found := false
		for len(stack) > 0 && !found {
			u := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for a := net.head[u]; a != -1; a = net.next[a] {
				v := net.to[a]
				if v == source || parentArc[v] != -1 || net.cap[a] <= eps {
					continue
				}
				parentArc[v] = a
				bottle[v] = math.Min(bottle[u], net.cap[a])
				if v == sink {
					found = true
					break
				}
				stack = append(stack, v)
			}
		}
		if !found {
			break
		}

		delta := bottle[sink]
		if math.IsInf(delta, 1) {
			return maxFlow, ErrUnbounded
		}
		net.augment(parentArc, source, sink, delta)
		maxFlow += delta
	}

	return maxFlow, nil
}
