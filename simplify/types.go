// SPDX-License-Identifier: MIT

package simplify

import (
	"errors"
	"log/slog"

	"github.com/katalvlaran/idpnet/apsp"
	"github.com/katalvlaran/idpnet/core"
)

// Sentinel errors.
var (
	// ErrBadExponent indicates an exponent that is not a finite positive real.
	ErrBadExponent = errors.New("simplify: exponent must be finite and > 0")

	// ErrNilGraph indicates a nil input graph.
	ErrNilGraph = errors.New("simplify: graph is nil")
)

// Options configures a Simplifier.
//
// Keep   – selects the nodes retained by contraction (default: all).
// Logger – receives Debug summaries of each pass.
// Sparse – build the final table with repeated Dijkstra instead of
//
//	Floyd–Warshall.
//
// Builder – overrides the table build entirely (e.g. a caching builder);
//
//	takes precedence over Sparse.
type Options struct {
	Keep    func(i int) bool
	Logger  *slog.Logger
	Sparse  bool
	Builder func(g *core.Graph) (*apsp.Table, error)
}

// Option represents a functional option for configuring a Simplifier.
type Option func(*Options)

// WithKeep restricts the simplified node set. Panics on nil.
func WithKeep(keep func(i int) bool) Option {
	return func(o *Options) {
		if keep == nil {
			panic("simplify: WithKeep(nil)")
		}
		o.Keep = keep
	}
}

// WithLogger sets the logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l == nil {
			panic("simplify: WithLogger(nil)")
		}
		o.Logger = l
	}
}

// WithSparse selects apsp.BuildSparse for the final table.
func WithSparse() Option {
	return func(o *Options) {
		o.Sparse = true
	}
}

// WithBuilder routes the final table build through b. Panics on nil.
func WithBuilder(b func(g *core.Graph) (*apsp.Table, error)) Option {
	return func(o *Options) {
		if b == nil {
			panic("simplify: WithBuilder(nil)")
		}
		o.Builder = b
	}
}

// DefaultOptions keeps every node and logs to slog.Default().
func DefaultOptions() Options {
	return Options{
		Keep:   func(int) bool { return true },
		Logger: slog.Default(),
	}
}

// Network is a simplified graph with its shortest-path table.
// Graph shares the index space of the input road network.
type Network struct {
	Graph    *core.Graph
	Table    *apsp.Table
	Exponent float64
}
