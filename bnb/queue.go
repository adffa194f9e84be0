package bnb

import "github.com/katalvlaran/pckp/relax"

// node is one open subproblem.
type node struct {
	bounds []relax.Bound
	bound  float64 // upper bound inherited from the parent relaxation
	depth  int
	seq    uint64
}

// nodeQueue is a max-heap of *node by bound, FIFO among equal bounds.
type nodeQueue []*node

// Len returns the number of open nodes.
func (q nodeQueue) Len() int { return len(q) }

// Less orders by bound descending, then by creation order.
func (q nodeQueue) Less(i, j int) bool {
	if q[i].bound != q[j].bound {
		return q[i].bound > q[j].bound
	}
	return q[i].seq < q[j].seq
}

// Swap swaps two nodes.
func (q nodeQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

// Push appends a node; used by container/heap.
func (q *nodeQueue) Push(x interface{}) { *q = append(*q, x.(*node)) }

// Pop removes the last node; used by container/heap.
func (q *nodeQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]

	return item
}

// top returns the largest open bound; ok is false on an empty queue.
func (q nodeQueue) top() (float64, bool) {
	if len(q) == 0 {
		return 0, false
	}
	return q[0].bound, true
}
