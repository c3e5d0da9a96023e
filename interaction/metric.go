// SPDX-License-Identifier: MIT

package interaction

import (
	"math"

	"github.com/katalvlaran/idpnet/core"
	"github.com/katalvlaran/idpnet/spatial"
)

// Metric returns the non-negative interaction strength from a to b.
type Metric func(a, b *core.Node) float64

// gravity divides mass by d^decay. Coincident centroids yield 0.
func gravity(decay float64, dist spatial.Func, mass func(a, b *core.Node) float64) Metric {
	return func(a, b *core.Node) float64 {
		d := spatial.Between(dist, a, b)
		if d <= 0 {
			return 0
		}

		return mass(a, b) / math.Pow(d, decay)
	}
}

// PopulationGravity is Pa·Pb / d^decay.
func PopulationGravity(decay float64, dist spatial.Func) Metric {
	return gravity(decay, dist, func(a, b *core.Node) float64 {
		return a.Population * b.Population
	})
}

// CapacityGravity is Ca·Cb / d^decay.
func CapacityGravity(decay float64, dist spatial.Func) Metric {
	return gravity(decay, dist, func(a, b *core.Node) float64 {
		return a.Capacity * b.Capacity
	})
}

// AggregateCapacityGravity is (Ca+Cb)·Pb / d^decay: the pair's joint
// capacity scaled by the attracting city's population.
func AggregateCapacityGravity(decay float64, dist spatial.Func) Metric {
	return gravity(decay, dist, func(a, b *core.Node) float64 {
		return (a.Capacity + b.Capacity) * b.Population
	})
}

// Distance weights a pair by raw centroid distance.
func Distance(dist spatial.Func) Metric {
	return func(a, b *core.Node) float64 { return spatial.Between(dist, a, b) }
}
