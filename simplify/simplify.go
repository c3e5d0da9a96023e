// SPDX-License-Identifier: MIT

package simplify

import (
	"fmt"
	"math"
	"time"

	"github.com/katalvlaran/idpnet/apsp"
	"github.com/katalvlaran/idpnet/core"
)

// Simplifier runs Rescale/Unscale with a fixed exponent.
type Simplifier struct {
	exponent float64
	opts     Options
}

// New validates exponent and applies opts.
// Errors: ErrBadExponent.
func New(exponent float64, opts ...Option) (*Simplifier, error) {
	if !validExponent(exponent) {
		return nil, fmt.Errorf("%w: got %g", ErrBadExponent, exponent)
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Simplifier{exponent: exponent, opts: o}, nil
}

func validExponent(e float64) bool {
	return e > 0 && !math.IsInf(e, 0) && !math.IsNaN(e)
}

// Exponent returns the configured exponent.
func (s *Simplifier) Exponent() float64 { return s.exponent }

// Rescale stashes Weight^e in every edge's Info field of g (Weight is left
// untouched) and returns the contracted graph over the kept nodes, weighted
// in transformed units.
//
// Errors: ErrNilGraph, or a core error when a transformed cost overflows.
func (s *Simplifier) Rescale(g *core.Graph) (*core.Graph, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	for _, e := range g.Records() {
		e.Info = math.Pow(e.Weight, s.exponent)
	}

	n := g.Order()
	view := core.NewInfoView(g)
	out := g.CloneEmpty()
	for a := 0; a < n; a++ {
		if !s.opts.Keep(a) {
			continue
		}
		dist, pred, err := apsp.ShortestPathTree(view, a)
		if err != nil {
			return nil, fmt.Errorf("Rescale: %w", err)
		}
		for b := 0; b < n; b++ {
			if b == a || !s.opts.Keep(b) || math.IsInf(dist[b], 1) {
				continue
			}
			// Undirected pairs are decided once, from the lower index.
			if !g.Directed() && b < a {
				continue
			}
			if s.passesKept(pred, a, b) {
				continue
			}
			if err = out.AddEdge(a, b, dist[b]); err != nil {
				return nil, fmt.Errorf("Rescale: %w", err)
			}
		}
	}

	return out, nil
}

// passesKept reports whether the tree path a→b visits a kept node strictly
// between its endpoints.
func (s *Simplifier) passesKept(pred []int, a, b int) bool {
	for v := pred[b]; v != a && v >= 0; v = pred[v] {
		if s.opts.Keep(v) {
			return true
		}
	}

	return false
}

// Unscale replaces every weight w in g with w^(1/exponent).
func (s *Simplifier) Unscale(g *core.Graph) error {
	return Unscale(g, s.exponent)
}

// Unscale replaces every weight w in g with w^(1/exponent), returning
// distances to real units. In undirected graphs each pair is written once
// and mirrored.
// Errors: ErrNilGraph, ErrBadExponent.
func Unscale(g *core.Graph, exponent float64) error {
	if g == nil {
		return ErrNilGraph
	}
	if !validExponent(exponent) {
		return fmt.Errorf("%w: got %g", ErrBadExponent, exponent)
	}
	inv := 1 / exponent
	for _, e := range g.Edges() {
		if err := g.SetWeight(e.From, e.To, math.Pow(e.Weight, inv)); err != nil {
			return fmt.Errorf("Unscale: %w", err)
		}
	}

	return nil
}

// Simplify runs Rescale then Unscale and builds the shortest-path table of
// the result.
func (s *Simplifier) Simplify(g *core.Graph) (*Network, error) {
	start := time.Now()
	out, err := s.Rescale(g)
	if err != nil {
		return nil, err
	}
	if err = s.Unscale(out); err != nil {
		return nil, err
	}

	var tab *apsp.Table
	switch {
	case s.opts.Builder != nil:
		tab, err = s.opts.Builder(out)
	case s.opts.Sparse:
		tab, err = apsp.BuildSparse(out)
	default:
		tab, err = apsp.Build(out)
	}
	if err != nil {
		return nil, fmt.Errorf("Simplify: %w", err)
	}
	s.opts.Logger.Debug("network simplified",
		"exponent", s.exponent,
		"nodes", out.Order(),
		"road_edges", g.EdgeCount(),
		"edges", out.EdgeCount(),
		"elapsed", time.Since(start))

	return &Network{Graph: out, Table: tab, Exponent: s.exponent}, nil
}
