// SPDX-License-Identifier: MIT

package sim

import (
	"log/slog"
	"math/rand"

	"github.com/katalvlaran/idpnet/apsp"
	"github.com/katalvlaran/idpnet/selector"
	"github.com/katalvlaran/idpnet/spatial"
)

// TableCache persists shortest-path tables between runs. Get returns an
// error wrapping apsp.ErrFormat for an unusable entry and any other error
// for a miss.
type TableCache interface {
	Get(key string, n int) (*apsp.Table, error)
	Put(key string, t *apsp.Table) error
}

// Options configures a Simulation.
type Options struct {
	Logger      *slog.Logger
	Rand        selector.Rand
	Cache       TableCache
	Distance    spatial.Func
	SparseAbove int
}

// Option represents a functional option for configuring a Simulation.
type Option func(*Options)

// WithLogger sets the logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l == nil {
			panic("sim: WithLogger(nil)")
		}
		o.Logger = l
	}
}

// WithRand injects the random source shared by every selector. Panics on nil.
func WithRand(r selector.Rand) Option {
	return func(o *Options) {
		if r == nil {
			panic("sim: WithRand(nil)")
		}
		o.Rand = r
	}
}

// WithSeed seeds a math/rand source.
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.Rand = rand.New(rand.NewSource(seed))
	}
}

// WithCache enables the path-table cache.
func WithCache(c TableCache) Option {
	return func(o *Options) {
		o.Cache = c
	}
}

// WithDistance sets the centroid distance. Panics on nil.
func WithDistance(f spatial.Func) Option {
	return func(o *Options) {
		if f == nil {
			panic("sim: WithDistance(nil)")
		}
		o.Distance = f
	}
}

// WithSparseAbove switches table builds to repeated Dijkstra for graphs
// with more than n nodes. Panics on n < 0.
func WithSparseAbove(n int) Option {
	return func(o *Options) {
		if n < 0 {
			panic("sim: WithSparseAbove: n must be >= 0")
		}
		o.SparseAbove = n
	}
}

// DefaultOptions: slog.Default, seed 1, no cache, planar distance,
// Dijkstra above 512 nodes.
func DefaultOptions() Options {
	return Options{
		Logger:      slog.Default(),
		Rand:        rand.New(rand.NewSource(1)),
		Distance:    spatial.Planar,
		SparseAbove: 512,
	}
}
