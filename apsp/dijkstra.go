// SPDX-License-Identifier: MIT
//
// Repeated single-source Dijkstra behind the same Table contract.
//
// Notes on implementation choices:
//   - Lazy decrease-key: duplicates are pushed and stale entries skipped.
//   - Priority is lexicographic (distance, hops). Among equal-cost paths the
//     tree keeps the one with fewest hops, so for m = pred[j] the shortest
//     m→j path is the direct edge and midpoint recursion always terminates.

package apsp

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/idpnet/matrix"
)

const opBuildSparse = "BuildSparse"

// BuildSparse computes a Table by running Dijkstra from every node.
// next[i][j] is the predecessor of j in i's shortest-path tree, or -1 when
// that predecessor is i itself.
//
// Errors: ErrNilGraph, ErrNegativeWeight.
// Complexity: O(n·(E+V)·log V) time, O(n²) space.
func BuildSparse(g SparseGraph) (*Table, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	n := g.Order()
	dist, err := matrix.NewDistance(n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opBuildSparse, err)
	}
	data := dist.Data()
	next := make([]int32, n*n)

	r := newRunner(g)
	for src := 0; src < n; src++ {
		if err = r.run(src); err != nil {
			return nil, fmt.Errorf("%s: %w", opBuildSparse, err)
		}
		base := src * n
		copy(data[base:base+n], r.dist)
		for j := 0; j < n; j++ {
			p := r.pred[j]
			if p < 0 || p == src {
				next[base+j] = matrix.NoHop
			} else {
				next[base+j] = int32(p)
			}
		}
	}

	return &Table{n: n, dist: dist, next: next}, nil
}

// ShortestPathTree runs a single Dijkstra from src and returns fresh
// distance and predecessor slices (pred[src] = pred[unreachable] = -1).
func ShortestPathTree(g SparseGraph, src int) (dist []float64, pred []int, err error) {
	if g == nil {
		return nil, nil, ErrNilGraph
	}
	if src < 0 || src >= g.Order() {
		panic(fmt.Sprintf("apsp: source %d out of range [0,%d)", src, g.Order()))
	}
	r := newRunner(g)
	if err = r.run(src); err != nil {
		return nil, nil, err
	}

	return r.dist, r.pred, nil
}

// runner holds reusable per-source state.
type runner struct {
	g       SparseGraph
	dist    []float64
	hops    []int
	pred    []int
	visited []bool
	pq      nodePQ
}

func newRunner(g SparseGraph) *runner {
	n := g.Order()

	return &runner{
		g:       g,
		dist:    make([]float64, n),
		hops:    make([]int, n),
		pred:    make([]int, n),
		visited: make([]bool, n),
		pq:      make(nodePQ, 0, n),
	}
}

// run resets state and computes the tree rooted at src.
func (r *runner) run(src int) error {
	inf := math.Inf(1)
	for i := range r.dist {
		r.dist[i] = inf
		r.hops[i] = 0
		r.pred[i] = -1
		r.visited[i] = false
	}
	r.pq = r.pq[:0]
	r.dist[src] = 0
	heap.Push(&r.pq, &nodeItem{id: src})

	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		u := item.id
		if r.visited[u] {
			continue
		}
		r.visited[u] = true

		for _, v := range r.g.Successors(u) {
			if v == u || r.visited[v] {
				continue
			}
			w, ok := r.g.Weight(u, v)
			if !ok {
				continue
			}
			if w < 0 {
				return fmt.Errorf("%w: edge %d→%d weight=%g", ErrNegativeWeight, u, v, w)
			}
			nd, nh := r.dist[u]+w, r.hops[u]+1
			if nd < r.dist[v] || (nd == r.dist[v] && nh < r.hops[v]) {
				r.dist[v], r.hops[v], r.pred[v] = nd, nh, u
				heap.Push(&r.pq, &nodeItem{id: v, dist: nd, hops: nh})
			}
		}
	}

	return nil
}

// nodeItem is a heap entry ordered by (dist, hops).
type nodeItem struct {
	id   int
	dist float64
	hops int
}

// nodePQ is a min-heap of *nodeItem.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].hops < pq[j].hops
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
