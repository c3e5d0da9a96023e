// SPDX-License-Identifier: MIT
//
// File: nodes.go
// Role: Population-centre catalogue shared by every network.

package core

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// NodeKind distinguishes population centres from pure road vertices.
type NodeKind uint8

const (
	// KindCity is a population centre (city, town, village).
	KindCity NodeKind = iota
	// KindJunction is a road-network vertex that hosts no population.
	KindJunction
)

// String implements fmt.Stringer.
func (k NodeKind) String() string {
	switch k {
	case KindCity:
		return "city"
	case KindJunction:
		return "junction"
	default:
		return fmt.Sprintf("NodeKind(%d)", uint8(k))
	}
}

// Node is a population centre (or junction) in the migration graph.
//
// Index is stable for the lifetime of one catalogue; it is NOT guaranteed to
// survive a rebuild that inserts nodes in a different order.
type Node struct {
	Index    int
	Name     string
	Kind     NodeKind
	Centroid orb.Point

	Population float64 // urbanite count
	Capacity   float64 // refugee capacity, derived from population
	Refugees   float64 // current refugee load
	Grouped    float64 // refugees already organised into movement groups
}

// IsCity reports whether n is a population centre.
func (n *Node) IsCity() bool { return n.Kind == KindCity }

// Spare returns Capacity − Refugees. Negative when overloaded.
func (n *Node) Spare() float64 { return n.Capacity - n.Refugees }

// Excess returns the refugee count above capacity, or 0.
func (n *Node) Excess() float64 { return math.Max(0, n.Refugees-n.Capacity) }

// Nodes is the catalogue indexed by Node.Index.
type Nodes []*Node

// Validate checks that every slot is non-nil and carries its own index.
// Complexity: O(n).
func (ns Nodes) Validate() error {
	for i, n := range ns {
		if n == nil {
			return fmt.Errorf("Nodes.Validate: slot %d is nil: %w", i, ErrIndexMismatch)
		}
		if n.Index != i {
			return fmt.Errorf("Nodes.Validate: slot %d holds index %d: %w", i, n.Index, ErrIndexMismatch)
		}
	}

	return nil
}

// Cities returns the indices of population centres in ascending order.
func (ns Nodes) Cities() []int {
	out := make([]int, 0, len(ns))
	for _, n := range ns {
		if n.IsCity() {
			out = append(out, n.Index)
		}
	}

	return out
}

// Clone deep-copies the catalogue so a simulation can mutate refugee counts
// without touching the caller's slice.
func (ns Nodes) Clone() Nodes {
	out := make(Nodes, len(ns))
	for i, n := range ns {
		c := *n
		out[i] = &c
	}

	return out
}

// TotalRefugees sums Refugees over the catalogue.
func (ns Nodes) TotalRefugees() float64 {
	var sum float64
	for _, n := range ns {
		sum += n.Refugees
	}

	return sum
}
