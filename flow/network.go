package flow

import (
	"context"
	"math"
)

// Network is a residual flow network over nodes 0..n-1.
// Arc a and its reverse a^1 are always allocated together.
// A Network is not safe for concurrent use.
type Network struct {
	n    int
	head []int     // head[u]: first arc leaving u, -1 if none
	next []int     // next[a]: next arc leaving the same tail, -1 terminates
	to   []int     // to[a]: arc head
	cap  []float64 // cap[a]: residual capacity
	base []float64 // base[a]: capacity at insertion (0 for reverse arcs)
}

// NewNetwork returns an empty network with n nodes.
func NewNetwork(n int) *Network {
	net := &Network{}
	net.Reset(n)

	return net
}

// Reset drops all arcs and resizes the network to n nodes, keeping the
// allocated backing arrays for reuse.
func (net *Network) Reset(n int) {
	if n < 0 {
		n = 0
	}
	net.n = n
	if cap(net.head) >= n {
		net.head = net.head[:n]
	} else {
		net.head = make([]int, n)
	}
	for i := range net.head {
		net.head[i] = -1
	}
	net.next = net.next[:0]
	net.to = net.to[:0]
	net.cap = net.cap[:0]
	net.base = net.base[:0]
}

// Len returns the number of nodes.
func (net *Network) Len() int { return net.n }

// NumArcs returns the number of forward arcs added.
func (net *Network) NumArcs() int { return len(net.to) / 2 }

// AddArc inserts u→v with capacity c and its zero-capacity reverse arc,
// returning the forward arc index. Parallel arcs are allowed.
func (net *Network) AddArc(u, v int, c float64) (int, error) {
	if u < 0 || u >= net.n || v < 0 || v >= net.n {
		return -1, ErrNodeOutOfRange
	}
	if c < 0 || math.IsNaN(c) {
		return -1, EdgeError{From: u, To: v, Cap: c}
	}
	a := len(net.to)
	net.to = append(net.to, v, u)
	net.cap = append(net.cap, c, 0)
	net.base = append(net.base, c, 0)
	net.next = append(net.next, net.head[u], net.head[v])
	net.head[u] = a
	net.head[v] = a + 1

	return a, nil
}

// Residual returns the residual capacity of arc a.
func (net *Network) Residual(a int) float64 { return net.cap[a] }

// Flow returns the flow currently carried by forward arc a.
func (net *Network) Flow(a int) float64 { return net.cap[a^1] }

// Restore discards all flow, returning every arc to its inserted capacity.
func (net *Network) Restore() {
	copy(net.cap, net.base)
}

// SourceSide marks the nodes reachable from s through arcs with residual
// capacity above eps. After a maximum flow this is the inclusion-minimal
// source side of a minimum cut.
func (net *Network) SourceSide(s int, eps float64) []bool {
	side := make([]bool, net.n)
	if s < 0 || s >= net.n {
		return side
	}
	queue := make([]int, 0, net.n)
	queue = append(queue, s)
	side[s] = true
	for i := 0; i < len(queue); i++ {
		u := queue[i]
		for a := net.head[u]; a != -1; a = net.next[a] {
			v := net.to[a]
			if !side[v] && net.cap[a] > eps {
				side[v] = true
				queue = append(queue, v)
			}
		}
	}

	return side
}

// CutCapacity sums the inserted capacities of forward arcs leaving side.
func (net *Network) CutCapacity(side []bool) float64 {
	var total float64
	for a := 0; a < len(net.to); a += 2 {
		u, v := net.to[a+1], net.to[a]
		if side[u] && !side[v] {
			total += net.base[a]
		}
	}

	return total
}

// MaxFlow dispatches to the selected algorithm.
func (net *Network) MaxFlow(ctx context.Context, algo Algorithm, s, t int, opts FlowOptions) (float64, error) {
	switch algo {
	case AlgoEdmondsKarp:
		return EdmondsKarp(ctx, net, s, t, opts)
	case AlgoFordFulkerson:
		return FordFulkerson(ctx, net, s, t, opts)
	default:
		return Dinic(ctx, net, s, t, opts)
	}
}

// checkTerminals validates source and sink indices.
func (net *Network) checkTerminals(s, t int) error {
	if s < 0 || s >= net.n {
		return ErrSourceNotFound
	}
	if t < 0 || t >= net.n {
		return ErrSinkNotFound
	}

	return nil
}

// augment pushes delta along the arcs recorded in parentArc from t back to s.
func (net *Network) augment(parentArc []int, s, t int, delta float64) {
	for v := t; v != s; {
		a := parentArc[v]
		net.cap[a] -= delta
		net.cap[a^1] += delta
		v = net.to[a^1]
	}
}
