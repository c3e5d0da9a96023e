// SPDX-License-Identifier: MIT
//
// File: api.go
// Role: Read-only getters, Clone and Stats.

package core

// Order returns the number of nodes n; valid indices are 0..n-1.
func (g *Graph) Order() int { return g.n }

// Directed reports whether edges are one-way.
func (g *Graph) Directed() bool { return g.directed }

// CloneEmpty returns a graph of the same order and directedness with no edges.
func (g *Graph) CloneEmpty() *Graph {
	return NewGraph(g.n, WithDirected(g.directed))
}

// Clone returns a deep copy: fresh Edge records carrying Weight and Info.
// Complexity: O(n + E).
func (g *Graph) Clone() *Graph {
	out := g.CloneEmpty()
	g.mu.RLock()
	defer g.mu.RUnlock()
	for from, row := range g.adj {
		if len(row) == 0 {
			continue
		}
		cp := make(map[int]*Edge, len(row))
		for to, e := range row {
			c := *e
			cp[to] = &c
		}
		out.adj[from] = cp
	}
	out.edges = g.edges

	return out
}

// Stats returns a deterministic summary of the graph. Complexity: O(n + E).
func (g *Graph) Stats() *GraphStats {
	g.mu.RLock()
	defer g.mu.RUnlock()

	s := &GraphStats{Order: g.n, Directed: g.directed, EdgeCount: g.edges}
	for from, row := range g.adj {
		if len(row) > s.MaxOutDeg {
			s.MaxOutDeg = len(row)
		}
		if len(row) == 0 {
			s.Isolated++
		}
		for to, e := range row {
			if !g.directed && to < from {
				continue
			}
			s.TotalWeight += e.Weight
		}
	}

	return s
}
