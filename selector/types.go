// SPDX-License-Identifier: MIT

package selector

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"

	"github.com/katalvlaran/idpnet/apsp"
	"github.com/katalvlaran/idpnet/core"
	"github.com/katalvlaran/idpnet/spatial"
)

// Sentinel errors.
var (
	// ErrUnknownStrategy indicates an unrecognised strategy value or name.
	ErrUnknownStrategy = errors.New("selector: unknown strategy")

	// ErrUnknownWorking indicates an unrecognised working-network name.
	ErrUnknownWorking = errors.New("selector: unknown working network")
)

// Strategy enumerates the destination heuristics.
type Strategy uint8

const (
	SpareCapacity                 Strategy = iota // max spare capacity among neighbours
	DistanceWeightedSpareCapacity                 // sample ∝ spare / d^γ
	NearestViableCity                             // nearest city that fits a group
	Roads                                         // sample over working-network edges
	HybridTIN                                     // weighted target, first hop
	HybridRoads                                   // weighted target by path length, first hop
)

var strategyNames = [...]string{
	"spare-capacity",
	"distance-weighted-spare-capacity",
	"nearest-viable-city",
	"roads",
	"hybrid-tin",
	"hybrid-roads",
}

// String returns the configuration name of s.
func (s Strategy) String() string {
	if int(s) < len(strategyNames) {
		return strategyNames[s]
	}

	return fmt.Sprintf("Strategy(%d)", uint8(s))
}

// Valid reports whether s names one of the six strategies.
func (s Strategy) Valid() bool { return int(s) < len(strategyNames) }

// ParseStrategy maps a configuration name (case-insensitive) to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range strategyNames {
		if key == n {
			return Strategy(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(b []byte) error {
	v, err := ParseStrategy(string(b))
	if err != nil {
		return err
	}
	*s = v

	return nil
}

// WorkingKind names which precomputed network is active for path queries.
type WorkingKind uint8

const (
	WorkingRaw                WorkingKind = iota // road network as built
	WorkingSimplified                            // contracted with exponent 1
	WorkingSimplifiedWeighted                    // contracted with the configured exponent
)

var workingNames = [...]string{"raw", "simplified", "simplified-weighted"}

// String returns the configuration name of k.
func (k WorkingKind) String() string {
	if int(k) < len(workingNames) {
		return workingNames[k]
	}

	return fmt.Sprintf("WorkingKind(%d)", uint8(k))
}

// Valid reports whether k is a known working network.
func (k WorkingKind) Valid() bool { return int(k) < len(workingNames) }

// ParseWorking maps a configuration name to a WorkingKind.
func ParseWorking(name string) (WorkingKind, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range workingNames {
		if key == n {
			return WorkingKind(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownWorking, name)
}

// MarshalText implements encoding.TextMarshaler.
func (k WorkingKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *WorkingKind) UnmarshalText(b []byte) error {
	v, err := ParseWorking(string(b))
	if err != nil {
		return err
	}
	*k = v

	return nil
}

// Working is the active network for path queries: a graph and the
// shortest-path table built from it.
type Working struct {
	Kind  WorkingKind
	Graph *core.Graph
	Table *apsp.Table
}

// Network bundles everything a selection reads. It is passed explicitly on
// every call; the selector keeps no reference to it.
type Network struct {
	Nodes       core.Nodes
	Interaction *core.Graph
	Working     *Working
}

// Rand is the injectable random source used for weighted sampling.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Options configures a Selector.
//
// Decay         – spatial decay exponent γ (> 0).
// GroupFraction – share of a city's refugees moving as one group, in (0,1].
// Rand          – random source for weighted sampling.
// Distance      – straight-line distance between centroids.
// Logger        – receives Info records for "no destination" outcomes.
type Options struct {
	Decay         float64
	GroupFraction float64
	Rand          Rand
	Distance      spatial.Func
	Logger        *slog.Logger
}

// Option represents a functional option for configuring a Selector.
type Option func(*Options)

// WithDecay sets γ. Panics unless γ is finite and > 0.
func WithDecay(decay float64) Option {
	return func(o *Options) {
		if !(decay > 0) || math.IsInf(decay, 1) {
			panic(fmt.Sprintf("selector: WithDecay(%g): must be finite and > 0", decay))
		}
		o.Decay = decay
	}
}

// WithGroupFraction sets the group share. Panics outside (0,1].
func WithGroupFraction(f float64) Option {
	return func(o *Options) {
		if !(f > 0 && f <= 1) {
			panic(fmt.Sprintf("selector: WithGroupFraction(%g): must be in (0,1]", f))
		}
		o.GroupFraction = f
	}
}

// WithRand injects the random source. Panics on nil.
func WithRand(r Rand) Option {
	return func(o *Options) {
		if r == nil {
			panic("selector: WithRand(nil)")
		}
		o.Rand = r
	}
}

// WithSeed uses a math/rand source seeded with seed.
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.Rand = rand.New(rand.NewSource(seed))
	}
}

// WithDistance sets the centroid distance. Panics on nil.
func WithDistance(f spatial.Func) Option {
	return func(o *Options) {
		if f == nil {
			panic("selector: WithDistance(nil)")
		}
		o.Distance = f
	}
}

// WithLogger sets the logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l == nil {
			panic("selector: WithLogger(nil)")
		}
		o.Logger = l
	}
}

// DefaultOptions returns γ = 1, a 10% group share, seed 1, planar distance
// and slog.Default().
func DefaultOptions() Options {
	return Options{
		Decay:         1,
		GroupFraction: 0.1,
		Rand:          rand.New(rand.NewSource(1)),
		Distance:      spatial.Planar,
		Logger:        slog.Default(),
	}
}
