// SPDX-License-Identifier: MIT

package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/idpnet/interaction"
	"github.com/katalvlaran/idpnet/selector"
)

// ErrConfiguration indicates an out-of-range parameter. It is reported when
// the parameter is set, never deferred to the next rebuild.
var ErrConfiguration = errors.New("sim: invalid configuration")

// Params is the configuration surface of the simulation.
type Params struct {
	MinLinksPerCity               int                  `yaml:"min_links_per_city" json:"min_links_per_city"`
	MaxLinksPerCity               int                  `yaml:"max_links_per_city" json:"max_links_per_city"`
	ThresholdLinks                float64              `yaml:"threshold_links" json:"threshold_links"`
	SpatialDecayExponent          float64              `yaml:"spatial_decay_exponent" json:"spatial_decay_exponent"`
	SimplifyRoadsDistanceExponent float64              `yaml:"simplify_roads_distance_exponent" json:"simplify_roads_distance_exponent"`
	Strategy                      selector.Strategy    `yaml:"destination_selection_strategy" json:"destination_selection_strategy"`
	Formation                     interaction.Method   `yaml:"network_formation_method" json:"network_formation_method"`
	Working                       selector.WorkingKind `yaml:"working_network" json:"working_network"`
	GroupSizeFraction             float64              `yaml:"group_size_fraction" json:"group_size_fraction"`
}

// DefaultParams returns a five-link population-gravity network, squared
// distance penalties, distance-weighted selection over the simplified
// weighted roads and 10% groups.
func DefaultParams() Params {
	return Params{
		MinLinksPerCity:               1,
		MaxLinksPerCity:               5,
		ThresholdLinks:                0.8,
		SpatialDecayExponent:          2,
		SimplifyRoadsDistanceExponent: 2,
		Strategy:                      selector.DistanceWeightedSpareCapacity,
		Formation:                     interaction.MethodPopulation,
		Working:                       selector.WorkingSimplifiedWeighted,
		GroupSizeFraction:             0.1,
	}
}

// Links returns the interaction pruning parameters.
func (p Params) Links() interaction.Params {
	return interaction.Params{
		MinLinks:  p.MinLinksPerCity,
		MaxLinks:  p.MaxLinksPerCity,
		Threshold: p.ThresholdLinks,
	}
}

func positiveFinite(v float64) bool { return v > 0 && !math.IsInf(v, 1) }

// Validate reports the first invalid field. Every error satisfies
// errors.Is(err, ErrConfiguration).
func (p Params) Validate() error {
	if err := p.Links().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	switch {
	case !positiveFinite(p.SpatialDecayExponent):
		return fmt.Errorf("%w: spatialDecayExponent=%g must be > 0", ErrConfiguration, p.SpatialDecayExponent)
	case !positiveFinite(p.SimplifyRoadsDistanceExponent):
		return fmt.Errorf("%w: simplifyRoadsDistanceExponent=%g must be > 0", ErrConfiguration, p.SimplifyRoadsDistanceExponent)
	case !p.Strategy.Valid():
		return fmt.Errorf("%w: %w: %v", ErrConfiguration, selector.ErrUnknownStrategy, p.Strategy)
	case p.Formation > interaction.MethodTriangulated:
		return fmt.Errorf("%w: %w: %v", ErrConfiguration, interaction.ErrUnknownMethod, p.Formation)
	case !p.Working.Valid():
		return fmt.Errorf("%w: %w: %v", ErrConfiguration, selector.ErrUnknownWorking, p.Working)
	case !(p.GroupSizeFraction > 0 && p.GroupSizeFraction <= 1):
		return fmt.Errorf("%w: groupSizeFraction=%g not in (0,1]", ErrConfiguration, p.GroupSizeFraction)
	}

	return nil
}
