// SPDX-License-Identifier: MIT
//
// File: methods_edges.go
// Role: Edge lifecycle & queries: AddEdge/RemoveEdge/HasEdge/Edge/Weight,
//       Successors/Neighbors/Edges and degree counters.
// Determinism:
//   - Successors and Neighbors are sorted by target index.
//   - Edges is sorted by (From, To).
// Concurrency:
//   - Mutations under the write lock, queries under the read lock.

package core

import (
	"fmt"
	"math"
	"sort"
)

// checkIndex reports ErrIndexOutOfRange for i outside 0..n-1.
func (g *Graph) checkIndex(i int) error {
	if i < 0 || i >= g.n {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, i, g.n)
	}

	return nil
}

// validateWeight enforces the ingestion policy: finite and non-negative.
func validateWeight(w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return ErrNaNWeight
	}
	if w < 0 {
		return ErrNegativeWeight
	}

	return nil
}

// AddEdge inserts (or overwrites) the edge from→to with weight w.
// In undirected graphs the mirror to→from is written as well.
//
// Errors: ErrIndexOutOfRange, ErrLoopNotAllowed, ErrNegativeWeight, ErrNaNWeight.
// Complexity: O(1) amortised.
func (g *Graph) AddEdge(from, to int, w float64) error {
	if err := g.checkIndex(from); err != nil {
		return fmt.Errorf("AddEdge: %w", err)
	}
	if err := g.checkIndex(to); err != nil {
		return fmt.Errorf("AddEdge: %w", err)
	}
	if from == to {
		return fmt.Errorf("AddEdge(%d,%d): %w", from, to, ErrLoopNotAllowed)
	}
	if err := validateWeight(w); err != nil {
		return fmt.Errorf("AddEdge(%d,%d,%g): %w", from, to, w, err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.set(from, to, w) {
		g.edges++
	}
	if !g.directed {
		g.set(to, from, w)
	}

	return nil
}

// set writes adj[from][to] and reports whether the edge already existed.
// Caller holds the write lock.
func (g *Graph) set(from, to int, w float64) bool {
	row := g.adj[from]
	if row == nil {
		row = make(map[int]*Edge)
		g.adj[from] = row
	}
	if e, ok := row[to]; ok {
		e.Weight = w
		return true
	}
	row[to] = &Edge{From: from, To: to, Weight: w}

	return false
}

// RemoveEdge deletes from→to (and its mirror in undirected graphs).
// Returns ErrEdgeNotFound when absent.
func (g *Graph) RemoveEdge(from, to int) error {
	if err := g.checkIndex(from); err != nil {
		return fmt.Errorf("RemoveEdge: %w", err)
	}
	if err := g.checkIndex(to); err != nil {
		return fmt.Errorf("RemoveEdge: %w", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.adj[from][to]; !ok {
		return fmt.Errorf("RemoveEdge(%d,%d): %w", from, to, ErrEdgeNotFound)
	}
	delete(g.adj[from], to)
	if !g.directed {
		delete(g.adj[to], from)
	}
	g.edges--

	return nil
}

// HasEdge reports whether from→to exists. Out-of-range indices report false.
func (g *Graph) HasEdge(from, to int) bool {
	_, ok := g.Edge(from, to)
	return ok
}

// Edge returns the stored record for from→to. The pointer is live: callers
// may edit Info (the simplifier does) but must not change From/To.
func (g *Graph) Edge(from, to int) (*Edge, bool) {
	if from < 0 || from >= g.n {
		return nil, false
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	e, ok := g.adj[from][to]

	return e, ok
}

// Weight is the adjacency lookup used by the shortest-path engine:
// it returns the weight of from→to, or (0,false) if there is no edge.
// Complexity: O(1).
func (g *Graph) Weight(from, to int) (float64, bool) {
	e, ok := g.Edge(from, to)
	if !ok {
		return 0, false
	}

	return e.Weight, true
}

// SetWeight overwrites the weight of an existing edge (and its mirror).
func (g *Graph) SetWeight(from, to int, w float64) error {
	if err := validateWeight(w); err != nil {
		return fmt.Errorf("SetWeight(%d,%d,%g): %w", from, to, w, err)
	}
	if !g.HasEdge(from, to) {
		return fmt.Errorf("SetWeight(%d,%d): %w", from, to, ErrEdgeNotFound)
	}

	return g.AddEdge(from, to, w)
}

// Successors returns the sorted target indices of i's outgoing edges.
func (g *Graph) Successors(i int) []int {
	if i < 0 || i >= g.n {
		return nil
	}
	g.mu.RLock()
	out := make([]int, 0, len(g.adj[i]))
	for to := range g.adj[i] {
		out = append(out, to)
	}
	g.mu.RUnlock()
	sort.Ints(out)

	return out
}

// Neighbors returns i's outgoing edge records sorted by To.
func (g *Graph) Neighbors(i int) []*Edge {
	if i < 0 || i >= g.n {
		return nil
	}
	g.mu.RLock()
	out := make([]*Edge, 0, len(g.adj[i]))
	for _, e := range g.adj[i] {
		out = append(out, e)
	}
	g.mu.RUnlock()
	sort.Slice(out, func(a, b int) bool { return out[a].To < out[b].To })

	return out
}

// OutDegree returns the number of outgoing edges of i.
func (g *Graph) OutDegree(i int) int {
	if i < 0 || i >= g.n {
		return 0
	}
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.adj[i])
}

// Edges returns every logical edge sorted by (From, To). For undirected
// graphs each pair is reported once, as the record with From < To.
// Complexity: O(E log E).
func (g *Graph) Edges() []*Edge {
	g.mu.RLock()
	out := make([]*Edge, 0, g.edges)
	for from, row := range g.adj {
		for to, e := range row {
			if !g.directed && to < from {
				continue
			}
			out = append(out, e)
		}
	}
	g.mu.RUnlock()
	sort.Slice(out, func(a, b int) bool {
		if out[a].From != out[b].From {
			return out[a].From < out[b].From
		}
		return out[a].To < out[b].To
	})

	return out
}

// Records returns every stored record, including both halves of undirected
// pairs. Used by passes that must touch each direction (rescale/unscale).
func (g *Graph) Records() []*Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]*Edge, 0, 2*g.edges)
	for _, row := range g.adj {
		for _, e := range row {
			out = append(out, e)
		}
	}

	return out
}

// EdgeCount returns the number of logical edges.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.edges
}
