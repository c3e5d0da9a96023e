// SPDX-License-Identifier: MIT

package mst

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/idpnet/core"
)

// Prim computes the MST of an undirected graph by growing from root.
//
// Steps:
//  1. Validate: g != nil, undirected, root in range. Order 1 → empty tree.
//  2. Push root's edges; repeatedly pop the lightest edge to an unvisited
//     node, take it, and push that node's edges.
//  3. Fewer than n-1 edges → ErrDisconnected.
//
// Errors: ErrInvalidGraph, ErrDisconnected, core.ErrIndexOutOfRange.
// Complexity: O(E log V) time, O(V + E) memory.
func Prim(g *core.Graph, root int) ([]core.Edge, float64, error) {
	if g == nil || g.Directed() {
		return nil, 0, ErrInvalidGraph
	}
	n := g.Order()
	if n == 0 {
		return nil, 0, ErrDisconnected
	}
	if root < 0 || root >= n {
		return nil, 0, fmt.Errorf("Prim: root %d: %w", root, core.ErrIndexOutOfRange)
	}
	if n == 1 {
		return []core.Edge{}, 0, nil
	}

	visited := make([]bool, n)
	mst := make([]core.Edge, 0, n-1)
	var total float64
	pq := &edgePQ{}

	visit := func(u int) {
		visited[u] = true
		for _, e := range g.Neighbors(u) {
			if !visited[e.To] {
				heap.Push(pq, e)
			}
		}
	}
	visit(root)
	for pq.Len() > 0 && len(mst) < n-1 {
		e := heap.Pop(pq).(*core.Edge)
		if visited[e.To] {
			continue
		}
		mst = append(mst, *e)
		total += e.Weight
		visit(e.To)
	}
	if len(mst) < n-1 {
		return nil, 0, ErrDisconnected
	}

	return mst, total, nil
}

// edgePQ is a min-heap of *core.Edge ordered by (Weight, From, To).
type edgePQ []*core.Edge

func (pq edgePQ) Len() int { return len(pq) }

func (pq edgePQ) Less(i, j int) bool {
	a, b := pq[i], pq[j]
	if a.Weight != b.Weight {
		return a.Weight < b.Weight
	}
	if a.From != b.From {
		return a.From < b.From
	}
	return a.To < b.To
}

func (pq edgePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *edgePQ) Push(x interface{}) { *pq = append(*pq, x.(*core.Edge)) }

func (pq *edgePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	e := old[n-1]
	*pq = old[:n-1]

	return e
}
