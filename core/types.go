// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Graph, Edge, GraphOption and sentinel errors.

package core

import (
	"errors"
	"sync"
)

// Sentinel errors for core graph operations.
var (
	// ErrIndexOutOfRange indicates a node index outside 0..Order()-1.
	ErrIndexOutOfRange = errors.New("core: node index out of range")

	// ErrNegativeWeight indicates an attempt to store a negative edge weight.
	ErrNegativeWeight = errors.New("core: negative edge weight")

	// ErrNaNWeight indicates an attempt to store a NaN or +Inf edge weight.
	ErrNaNWeight = errors.New("core: NaN or Inf edge weight")

	// ErrLoopNotAllowed indicates a self-loop was attempted.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrEdgeNotFound indicates an operation referenced a non-existent edge.
	ErrEdgeNotFound = errors.New("core: edge not found")

	// ErrBadOrder indicates a negative graph order.
	ErrBadOrder = errors.New("core: graph order must be >= 0")

	// ErrIndexMismatch indicates a Node whose Index does not match its slot
	// in the catalogue.
	ErrIndexMismatch = errors.New("core: node index does not match position")
)

// Edge is a directed, weighted connection between two node indices.
//
// Info is scratch space used transiently by the network simplifier to stash a
// transformed weight without touching Weight.
type Edge struct {
	From   int
	To     int
	Weight float64
	Info   float64
}

// GraphOption configures a Graph before creation.
type GraphOption func(g *Graph)

// WithDirected sets whether edges are one-way (true) or mirrored (false).
func WithDirected(directed bool) GraphOption {
	return func(g *Graph) { g.directed = directed }
}

// Graph is a fixed-order, index-addressed weighted graph.
//
// adj[from][to] holds the outgoing edge record; for undirected graphs both
// adj[a][b] and adj[b][a] are populated with distinct records.
type Graph struct {
	mu       sync.RWMutex
	directed bool
	n        int
	adj      []map[int]*Edge
	edges    int // number of logical edges (undirected pairs count once)
}

// NewGraph creates an empty Graph of order n (nodes 0..n-1, no edges).
// By default the graph is undirected. Panics if n < 0: a negative order is a
// programming error, never user input.
// Complexity: O(n).
func NewGraph(n int, opts ...GraphOption) *Graph {
	if n < 0 {
		panic(ErrBadOrder)
	}
	g := &Graph{n: n, adj: make([]map[int]*Edge, n)}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// GraphStats is a read-only summary of a Graph.
type GraphStats struct {
	Order       int
	Directed    bool
	EdgeCount   int
	MaxOutDeg   int
	Isolated    int
	TotalWeight float64
}
