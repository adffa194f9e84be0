package flow

import (
	"context"
	"math"
)

// EdmondsKarp computes the maximum flow from source to sink by repeatedly
// augmenting along a shortest (fewest-arc) residual path found with BFS.
//
// Complexity: O(V · E²) time, O(V) memory.
func EdmondsKarp(ctx context.Context, net *Network, source, sink int, opts FlowOptions) (float64, error) {
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
		queue     = make([]int, 0, net.n)
		maxFlow   float64
	)
	for {
		if err := ctx.Err(); err != nil {
			return maxFlow, err
		}
		delta := net.bfsAugmentingPath(source, sink, parentArc, bottle, queue, eps)
		if delta == 0 {
			break
		}
		if math.IsInf(delta, 1) {
			return maxFlow, ErrUnbounded
		}
		net.augment(parentArc, source, sink, delta)
		maxFlow += delta
	}

	return maxFlow, nil
}

// bfsAugmentingPath finds the shortest residual path source→sink, records
// it in parentArc and returns its bottleneck (0 when none exists).
func (net *Network) bfsAugmentingPath(source, sink int, parentArc []int, bottle []float64, queue []int, eps float64) float64 {
	for i := range parentArc {
		parentArc[i] = -1
	}
	queue = queue[:0]
	queue = append(queue, source)
	bottle[source] = math.Inf(1)
	for i := 0; i < len(queue); i++ {
		u := queue[i]
		for a := net.head[u]; a != -1; a = net.next[a] {
			v := net.to[a]
			if v == source || parentArc[v] != -1 || net.cap[a] <= eps {
				continue
			}
			parentArc[v] = a
			bottle[v] = math.Min(bottle[u], net.cap[a])
			if v == sink {
				return bottle[v]
			}
			queue = append(queue, v)
		}
	}

	return 0
}
