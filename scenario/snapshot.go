// SPDX-License-Identifier: MIT

package scenario

import (
	"encoding/gob"
	"fmt"
	"io"

	"github.com/katalvlaran/idpnet/core"
)

// snapshot is the gob wire form of a World.
type snapshot struct {
	Nodes    []core.Node
	Edges    []core.Edge
	Directed bool
	TIN      [][2]int
}

// Save writes w to out as a gob snapshot.
func (w *World) Save(out io.Writer) error {
	s := snapshot{
		Nodes:    make([]core.Node, len(w.Nodes)),
		Directed: w.Roads.Directed(),
		TIN:      w.TIN,
	}
	for i, n := range w.Nodes {
		s.Nodes[i] = *n
	}
	for _, e := range w.Roads.Edges() {
		s.Edges = append(s.Edges, core.Edge{From: e.From, To: e.To, Weight: e.Weight})
	}

	return gob.NewEncoder(out).Encode(&s)
}

// Load reads a World written by Save.
// Errors: ErrSnapshot for undecodable or inconsistent data.
func Load(in io.Reader) (*World, error) {
	var s snapshot
	if err := gob.NewDecoder(in).Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSnapshot, err)
	}

	nodes := make(core.Nodes, len(s.Nodes))
	for i := range s.Nodes {
		n := s.Nodes[i]
		nodes[i] = &n
	}
	if err := nodes.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSnapshot, err)
	}

	roads := core.NewGraph(len(nodes), core.WithDirected(s.Directed))
	for _, e := range s.Edges {
		if err := roads.AddEdge(e.From, e.To, e.Weight); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSnapshot, err)
		}
	}
	for _, pr := range s.TIN {
		if pr[0] < 0 || pr[0] >= len(nodes) || pr[1] < 0 || pr[1] >= len(nodes) {
			return nil, fmt.Errorf("%w: TIN pair %v: %w", ErrSnapshot, pr, core.ErrIndexOutOfRange)
		}
	}

	return &World{Nodes: nodes, Roads: roads, TIN: s.TIN}, nil
}
