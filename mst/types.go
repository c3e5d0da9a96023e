// SPDX-License-Identifier: MIT

package mst

import (
	"errors"

	"github.com/katalvlaran/idpnet/core"
)

// ErrInvalidGraph indicates that MST algorithms require an undirected graph.
var ErrInvalidGraph = errors.New("mst: MST requires a non-nil undirected graph")

// ErrDisconnected indicates that no spanning tree covers every node.
var ErrDisconnected = errors.New("mst: graph is disconnected")

// Method selects the MST algorithm.
type Method string

const (
	// MethodKruskal sorts all edges and merges components.
	MethodKruskal Method = "kruskal"

	// MethodPrim grows the tree from a root.
	MethodPrim Method = "prim"
)

// Valid reports whether m names a known algorithm.
func (m Method) Valid() bool { return m == MethodKruskal || m == MethodPrim }

// Options configures Compute.
//
//	Method – MethodKruskal (default) or MethodPrim.
//	Root   – start node for Prim; ignored by Kruskal.
type Options struct {
	Method Method
	Root   int
}

// Option configures Options.
type Option func(*Options)

// WithMethod sets the algorithm.
func WithMethod(m Method) Option {
	return func(o *Options) { o.Method = m }
}

// WithRoot sets Prim's start node.
func WithRoot(root int) Option {
	return func(o *Options) { o.Root = root }
}

// DefaultOptions selects Kruskal.
func DefaultOptions() Options {
	return Options{Method: MethodKruskal}
}

// Compute dispatches on the configured method.
// An unknown method yields ErrInvalidGraph.
func Compute(g *core.Graph, opts ...Option) ([]core.Edge, float64, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	switch o.Method {
	case MethodKruskal:
		return Kruskal(g)
	case MethodPrim:
		return Prim(g, o.Root)
	default:
		return nil, 0, ErrInvalidGraph
	}
}
