// SPDX-License-Identifier: MIT

package sim

import (
	"github.com/katalvlaran/idpnet/core"
	"github.com/katalvlaran/idpnet/selector"
)

// Order returns the node count.
func (s *Simulation) Order() int { return len(s.nodes) }

// Tick returns the last tick processed.
func (s *Simulation) Tick() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.tick
}

// Nodes returns a copy of the catalogue.
func (s *Simulation) Nodes() core.Nodes {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.nodes.Clone()
}

// Roads returns the road network. Callers must not mutate it.
func (s *Simulation) Roads() *core.Graph { return s.roads }

// Interaction returns the current interaction network.
func (s *Simulation) Interaction() *core.Graph {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.net.interaction
}

// Working returns the active working network.
func (s *Simulation) Working() *selector.Working {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.net.working[s.params.Working]
}

// WorkingOf returns one of the precomputed working networks.
func (s *Simulation) WorkingOf(kind selector.WorkingKind) (*selector.Working, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.net.working[kind]

	return w, ok
}

// PathLength returns the working-network distance from i to j.
// Panics on out-of-range indices.
func (s *Simulation) PathLength(i, j int) float64 {
	return s.Working().Table.PathLength(i, j)
}

// Path returns the intermediates of the working-network shortest path.
// Panics on out-of-range indices.
func (s *Simulation) Path(i, j int) ([]int, bool) {
	return s.Working().Table.Path(i, j)
}

// Select runs the configured strategy for src against the current state
// without moving anyone. Panics on an out-of-range src.
func (s *Simulation) Select(src int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sel.Select(s.view(), src)
}
