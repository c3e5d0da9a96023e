// SPDX-License-Identifier: MIT

// Package scenario generates synthetic worlds: a catalogue of cities and
// junctions, a connected road network and a triangulated city pair list.
//
// Populations come from a layered simplex noise field, so neighbouring
// cities have similar sizes. Roads are a minimum spanning tree over all
// nodes plus each node's nearest neighbours, which keeps the network
// connected while adding realistic shortcuts.
package scenario

import (
	"errors"

	"github.com/katalvlaran/idpnet/core"
	"github.com/katalvlaran/idpnet/mst"
	"github.com/katalvlaran/idpnet/spatial"
)

// Sentinel errors for scenario generation and snapshots.
var (
	// ErrDisconnected indicates the generated roads did not form one component.
	ErrDisconnected = errors.New("scenario: road network is disconnected")

	// ErrSnapshot indicates a malformed snapshot stream.
	ErrSnapshot = errors.New("scenario: invalid snapshot")
)

// World is one generated scenario.
type World struct {
	Nodes core.Nodes
	Roads *core.Graph
	TIN   [][2]int
}

// Options configures Generate.
//
//	Seed          – noise and placement seed (default 1).
//	Cities        – number of population centres (default 24).
//	Junctions     – number of pure road vertices (default 8).
//	Extent        – side of the square map in planar units (default 100).
//	Neighbours    – nearest neighbours linked per node (default 3).
//	CapacityRatio – refugee capacity per inhabitant (default 0.05).
//	Skeleton      – spanning-tree algorithm for the road skeleton (default
//	                Kruskal). Prim grows the tree from the most populous city.
//	Distance      – road length and neighbour ranking (default planar).
//	                With Geodesic, Extent is in degrees from (0, 0).
type Options struct {
	Seed          int64
	Cities        int
	Junctions     int
	Extent        float64
	Neighbours    int
	CapacityRatio float64
	Skeleton      mst.Method
	Distance      spatial.Func
}

// Option represents a functional option for configuring Generate.
type Option func(*Options)

// WithSeed sets the generator seed.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithCities sets the number of cities. Panics on n < 1.
func WithCities(n int) Option {
	return func(o *Options) {
		if n < 1 {
			panic("scenario: WithCities: n must be >= 1")
		}
		o.Cities = n
	}
}

// WithJunctions sets the number of junctions. Panics on n < 0.
func WithJunctions(n int) Option {
	return func(o *Options) {
		if n < 0 {
			panic("scenario: WithJunctions: n must be >= 0")
		}
		o.Junctions = n
	}
}

// WithExtent sets the map side length. Panics on a non-positive extent.
func WithExtent(extent float64) Option {
	return func(o *Options) {
		if !(extent > 0) {
			panic("scenario: WithExtent: extent must be > 0")
		}
		o.Extent = extent
	}
}

// WithNeighbours sets how many nearest neighbours each node links to.
// Panics on k < 0.
func WithNeighbours(k int) Option {
	return func(o *Options) {
		if k < 0 {
			panic("scenario: WithNeighbours: k must be >= 0")
		}
		o.Neighbours = k
	}
}

// WithCapacityRatio sets capacity per inhabitant. Panics on r <= 0.
func WithCapacityRatio(r float64) Option {
	return func(o *Options) {
		if !(r > 0) {
			panic("scenario: WithCapacityRatio: ratio must be > 0")
		}
		o.CapacityRatio = r
	}
}

// WithSkeleton selects the road skeleton algorithm. Panics on an unknown
// method.
func WithSkeleton(m mst.Method) Option {
	return func(o *Options) {
		if !m.Valid() {
			panic("scenario: WithSkeleton: unknown method " + string(m))
		}
		o.Skeleton = m
	}
}

// WithDistance sets the road length function. Panics on nil.
func WithDistance(f spatial.Func) Option {
	return func(o *Options) {
		if f == nil {
			panic("scenario: WithDistance(nil)")
		}
		o.Distance = f
	}
}

// DefaultOptions returns the settings described on Options.
func DefaultOptions() Options {
	return Options{
		Seed:          1,
		Cities:        24,
		Junctions:     8,
		Extent:        100,
		Neighbours:    3,
		CapacityRatio: 0.05,
		Skeleton:      mst.MethodKruskal,
		Distance:      spatial.Planar,
	}
}
