// SPDX-License-Identifier: MIT

package mst

import (
	"sort"

	"github.com/katalvlaran/idpnet/core"
)

// Kruskal computes the MST of an undirected graph.
//
// Steps:
//  1. Validate: g != nil and undirected. Order 0 → ErrDisconnected,
//     order 1 → empty tree.
//  2. Sort g.Edges() by weight (stable, so (From, To) breaks ties).
//  3. Take each edge whose endpoints lie in different sets; stop at n-1.
//  4. Fewer than n-1 edges → ErrDisconnected.
//
// Complexity: O(E log E + α(V)·E). Memory: O(E + V).
func Kruskal(g *core.Graph) ([]core.Edge, float64, error) {
	if g == nil || g.Directed() {
		return nil, 0, ErrInvalidGraph
	}
	n := g.Order()
	if n == 0 {
		return nil, 0, ErrDisconnected
	}
	if n == 1 {
		return []core.Edge{}, 0, nil
	}

	edges := g.Edges()
	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].Weight < edges[j].Weight
	})

	ds := newDisjointSet(n)
	mst := make([]core.Edge, 0, n-1)
	var total float64
	for _, e := range edges {
		if !ds.union(e.From, e.To) {
			continue
		}
		mst = append(mst, *e)
		total += e.Weight
		if len(mst) == n-1 {
			break
		}
	}
	if len(mst) < n-1 {
		return nil, 0, ErrDisconnected
	}

	return mst, total, nil
}

// disjointSet is a union-find forest over 0..n-1.
type disjointSet struct {
	parent []int
	rank   []int
}

func newDisjointSet(n int) *disjointSet {
	ds := &disjointSet{parent: make([]int, n), rank: make([]int, n)}
	for i := range ds.parent {
		ds.parent[i] = i
	}

	return ds
}

// find returns the root of u, halving the path as it walks.
func (ds *disjointSet) find(u int) int {
	for ds.parent[u] != u {
		ds.parent[u] = ds.parent[ds.parent[u]]
		u = ds.parent[u]
	}

	return u
}

// union merges the sets of u and v by rank and reports whether they were
// disjoint.
func (ds *disjointSet) union(u, v int) bool {
	ru, rv := ds.find(u), ds.find(v)
	if ru == rv {
		return false
	}
	switch {
	case ds.rank[ru] < ds.rank[rv]:
		ds.parent[ru] = rv
	case ds.rank[ru] > ds.rank[rv]:
		ds.parent[rv] = ru
	default:
		ds.parent[rv] = ru
		ds.rank[ru]++
	}

	return true
}
