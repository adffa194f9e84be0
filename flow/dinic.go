package flow

import (
	"context"
	"math"
)

// Dinic computes the maximum flow from source to sink using Dinic's
// algorithm (level graph + blocking flows), mutating net's residual
// capacities in place.
//
// Steps:
//  1. Normalize options and validate terminals (O(1)).
//  2. Repeat until sink is unreachable:
//     a. Check for cancellation (O(1)).
//     b. BFS over arcs with residual > Epsilon to assign levels (O(V + E)).
//     c. If the sink has no level, stop.
//     d. Push blocking flow with DFS along level+1 arcs, advancing a
//     per-node current-arc pointer past dead arcs, optionally breaking
//     every LevelRebuildInterval augmentations.
//
// Complexity:
//
//	Time:   O(V² · E); each phase strictly increases the sink level.
//	Memory: O(V) for level, current-arc and queue slices.
func Dinic(ctx context.Context, net *Network, source, sink int, opts FlowOptions) (float64, error) {
	opts.normalize()
	if err := net.checkTerminals(source, sink); err != nil {
		return 0, err
	}
	if source == sink {
		return 0, nil
	}

	var (
		eps     = opts.Epsilon
		level   = make([]int, net.n)
		iter    = make([]int, net.n)
		queue   = make([]int, 0, net.n)
		maxFlow float64
		augment int
	)
	for {
		if err := ctx.Err(); err != nil {
			return maxFlow, err
		}
		if !net.buildLevels(source, sink, level, queue, eps) {
			break
		}
		copy(iter, net.head)

		for {
			pushed := net.dinicPush(source, sink, math.Inf(1), level, iter, eps)
			if pushed == 0 {
				break
			}
			if math.IsInf(pushed, 1) {
				return maxFlow, ErrUnbounded
			}
			maxFlow += pushed
			augment++
			if augment&1023 == 0 {
				if err := ctx.Err(); err != nil {
					return maxFlow, err
				}
			}
			if opts.LevelRebuildInterval > 0 && augment%opts.LevelRebuildInterval == 0 {
				break
			}
		}
	}

	return maxFlow, nil
}

// buildLevels runs BFS from source over residual arcs; reports whether the
// sink was reached.
func (net *Network) buildLevels(source, sink int, level, queue []int, eps float64) bool {
	for i := range level {
		level[i] = -1
	}
	queue = queue[:0]
	queue = append(queue, source)
	level[source] = 0
	for i := 0; i < len(queue); i++ {
		u := queue[i]
		for a := net.head[u]; a != -1; a = net.next[a] {
			v := net.to[a]
			if level[v] < 0 && net.cap[a] > eps {
				level[v] = level[u] + 1
				queue = append(queue, v)
			}
		}
	}

	return level[sink] >= 0
}

// dinicPush sends up to avail units from u toward sink along the level
// graph and returns the amount sent. iter[u] is only advanced past arcs
// that can carry nothing more in this phase.
func (net *Network) dinicPush(u, sink int, avail float64, level, iter []int, eps float64) float64 {
	if u == sink {
		return avail
	}
	for ; iter[u] != -1; iter[u] = net.next[iter[u]] {
		a := iter[u]
		v := net.to[a]
		if net.cap[a] <= eps || level[v] != level[u]+1 {
			continue
		}
		send := avail
		if net.cap[a] < send {
			send = net.cap[a]
		}
		pushed := net.dinicPush(v, sink, send, level, iter, eps)
		if pushed > 0 {
			if !math.IsInf(pushed, 1) {
				net.cap[a] -= pushed
				net.cap[a^1] += pushed
			}

			return pushed
		}
	}

	return 0
}
