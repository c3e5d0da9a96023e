// SPDX-License-Identifier: MIT
//
// File: view.go
// Role: Non-mutating graph views. A view reads through to the live graph.

package core

// InfoView adapts g so that Weight(i,j) returns the stashed Edge.Info instead
// of Edge.Weight. The shortest-path engine consumes it during simplification.
type InfoView struct {
	g *Graph
}

// NewInfoView wraps g. The view does not copy edges.
func NewInfoView(g *Graph) InfoView { return InfoView{g: g} }

// Order returns the order of the underlying graph.
func (v InfoView) Order() int { return v.g.Order() }

// Weight returns Info for from→to, or (0,false) when the edge is absent.
func (v InfoView) Weight(from, to int) (float64, bool) {
	e, ok := v.g.Edge(from, to)
	if !ok {
		return 0, false
	}

	return e.Info, true
}

// Successors forwards to the underlying graph.
func (v InfoView) Successors(i int) []int { return v.g.Successors(i) }
