// SPDX-License-Identifier: MIT

// Package spatial provides straight-line distances between node centroids.
package spatial

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/idpnet/core"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
)

// ErrUnknownDistance indicates a distance name other than planar or geodesic.
var ErrUnknownDistance = errors.New("spatial: unknown distance")

// Names accepted by ByName.
const (
	NamePlanar   = "planar"
	NameGeodesic = "geodesic"
)

// Func measures the straight-line distance between two centroids.
type Func func(a, b orb.Point) float64

// Planar is the Euclidean distance in the centroids' own units.
func Planar(a, b orb.Point) float64 { return planar.Distance(a, b) }

// Geodesic is the great-circle distance in kilometres between two
// (lon, lat) centroids.
func Geodesic(a, b orb.Point) float64 { return geo.Distance(a, b) / 1000 }

// ByName returns Planar or Geodesic.
func ByName(name string) (Func, error) {
	switch name {
	case NamePlanar:
		return Planar, nil
	case NameGeodesic:
		return Geodesic, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDistance, name)
	}
}

// Between applies f to the centroids of a and b.
func Between(f Func, a, b *core.Node) float64 { return f(a.Centroid, b.Centroid) }

// Bound returns the bounding box of all centroids. An empty catalogue
// yields the zero Bound.
func Bound(nodes core.Nodes) orb.Bound {
	if len(nodes) == 0 {
		return orb.Bound{}
	}
	mp := make(orb.MultiPoint, len(nodes))
	for i, n := range nodes {
		mp[i] = n.Centroid
	}

	return mp.Bound()
}
