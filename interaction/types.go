// SPDX-License-Identifier: MIT

package interaction

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Sentinel errors.
var (
	// ErrConfiguration indicates an out-of-range formation parameter.
	ErrConfiguration = errors.New("interaction: invalid configuration")

	// ErrBadMetric indicates a metric value that is negative, NaN or +Inf.
	ErrBadMetric = errors.New("interaction: metric returned a non-finite or negative value")

	// ErrUnknownMethod indicates an unrecognised formation method name.
	ErrUnknownMethod = errors.New("interaction: unknown formation method")
)

// Params bounds the per-city link budget.
//
// MinLinks  – links kept regardless of the threshold (≥ 0).
// MaxLinks  – hard cap on links per city (≥ MinLinks).
// Threshold – fraction of a city's total outgoing interaction mass the kept
//
//	links must cover, in [0,1].
type Params struct {
	MinLinks  int     `yaml:"min_links" json:"min_links"`
	MaxLinks  int     `yaml:"max_links" json:"max_links"`
	Threshold float64 `yaml:"threshold" json:"threshold"`
}

// Validate reports the first out-of-range field wrapped in ErrConfiguration.
func (p Params) Validate() error {
	switch {
	case p.MinLinks < 0:
		return fmt.Errorf("%w: minLinksPerCity=%d < 0", ErrConfiguration, p.MinLinks)
	case p.MaxLinks < p.MinLinks:
		return fmt.Errorf("%w: maxLinksPerCity=%d < minLinksPerCity=%d", ErrConfiguration, p.MaxLinks, p.MinLinks)
	case math.IsNaN(p.Threshold) || p.Threshold < 0 || p.Threshold > 1:
		return fmt.Errorf("%w: thresholdLinks=%g not in [0,1]", ErrConfiguration, p.Threshold)
	}

	return nil
}

// Method selects how the interaction network is formed.
type Method uint8

const (
	// MethodPopulation weights pairs by population gravity.
	MethodPopulation Method = iota
	// MethodCapacity weights pairs by refugee-capacity gravity.
	MethodCapacity
	// MethodAggregateCapacity weights pairs by joint capacity times the
	// target's population.
	MethodAggregateCapacity
	// MethodTriangulated takes edges from a triangulated network.
	MethodTriangulated
)

var methodNames = [...]string{"population", "capacity", "aggregate-capacity", "triangulated"}

// String returns the configuration name of m.
func (m Method) String() string {
	if int(m) < len(methodNames) {
		return methodNames[m]
	}

	return fmt.Sprintf("Method(%d)", uint8(m))
}

// ParseMethod maps a configuration name (case-insensitive) to a Method.
func ParseMethod(s string) (Method, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, name := range methodNames {
		if key == name {
			return Method(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Method) UnmarshalText(b []byte) error {
	v, err := ParseMethod(string(b))
	if err != nil {
		return err
	}
	*m = v

	return nil
}
