// SPDX-License-Identifier: MIT

package interaction

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/idpnet/core"
	"github.com/katalvlaran/idpnet/spatial"
)

type candidate struct {
	to int
	w  float64
}

// BuildFromMetric returns a directed graph over the city nodes of nodes
// (junctions stay isolated) with each source pruned to its link budget.
//
// Errors: ErrConfiguration, ErrBadMetric, core.ErrIndexMismatch.
// Complexity: O(C² log C) for C cities.
func BuildFromMetric(nodes core.Nodes, p Params, metric Metric) (*core.Graph, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := nodes.Validate(); err != nil {
		return nil, err
	}

	g := core.NewGraph(len(nodes), core.WithDirected(true))
	cities := nodes.Cities()
	cands := make([]candidate, 0, len(cities))
	for _, s := range cities {
		cands = cands[:0]
		var total float64
		for _, t := range cities {
			if t == s {
				continue
			}
			w := metric(nodes[s], nodes[t])
			if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
				return nil, fmt.Errorf("%w: metric(%d,%d)=%g", ErrBadMetric, s, t, w)
			}
			cands = append(cands, candidate{to: t, w: w})
			total += w
		}
		sort.SliceStable(cands, func(i, j int) bool { return cands[i].w > cands[j].w })

		for _, c := range cands[:keepCount(cands, total, p)] {
			if err := g.AddEdge(s, c.to, c.w); err != nil {
				return nil, fmt.Errorf("BuildFromMetric: %w", err)
			}
		}
	}

	return g, nil
}

// keepCount returns how many of the sorted candidates survive pruning; the
// survivors are always a prefix.
//
// The threshold test for rank r only sees the weights of ranks before r, so
// the edge whose weight carries the running sum past total·Threshold is
// kept. This reproduces the established model; flagged for domain review
// against the stricter variant that drops it.
func keepCount(sorted []candidate, total float64, p Params) int {
	target := total * p.Threshold
	var running float64
	for rank, c := range sorted {
		if (running >= target && rank >= p.MinLinks) || rank >= p.MaxLinks {
			return rank
		}
		running += c.w
	}

	return len(sorted)
}

// BuildFromEdgeList returns an undirected graph with one edge per pair,
// weighted by weight (Build passes Distance). No pruning is applied.
//
// metric is evaluated for every pair and its value discarded in favour of
// weight. This matches the established triangulated-network model but
// looks like a latent inconsistency; flagged for domain review.
//
// Errors: core.ErrIndexOutOfRange, core.ErrLoopNotAllowed, core.ErrIndexMismatch.
func BuildFromEdgeList(nodes core.Nodes, pairs [][2]int, metric, weight Metric) (*core.Graph, error) {
	if err := nodes.Validate(); err != nil {
		return nil, err
	}
	g := core.NewGraph(len(nodes))
	for _, pr := range pairs {
		a, b := pr[0], pr[1]
		if a < 0 || a >= len(nodes) || b < 0 || b >= len(nodes) {
			return nil, fmt.Errorf("BuildFromEdgeList(%d,%d): %w", a, b, core.ErrIndexOutOfRange)
		}
		if metric != nil {
			_ = metric(nodes[a], nodes[b])
		}
		if err := g.AddEdge(a, b, weight(nodes[a], nodes[b])); err != nil {
			return nil, fmt.Errorf("BuildFromEdgeList: %w", err)
		}
	}

	return g, nil
}

// Build dispatches on method. decay is the spatial decay exponent of the
// gravity metrics; tin is consulted only by MethodTriangulated, which
// evaluates population gravity alongside each pair.
//
// Errors: ErrConfiguration for a bad decay or unknown method, plus those of
// the selected builder.
func Build(method Method, nodes core.Nodes, p Params, decay float64, dist spatial.Func, tin [][2]int) (*core.Graph, error) {
	if !(decay > 0) || math.IsInf(decay, 0) {
		return nil, fmt.Errorf("%w: spatialDecayExponent=%g must be > 0", ErrConfiguration, decay)
	}
	switch method {
	case MethodPopulation:
		return BuildFromMetric(nodes, p, PopulationGravity(decay, dist))
	case MethodCapacity:
		return BuildFromMetric(nodes, p, CapacityGravity(decay, dist))
	case MethodAggregateCapacity:
		return BuildFromMetric(nodes, p, AggregateCapacityGravity(decay, dist))
	case MethodTriangulated:
		return BuildFromEdgeList(nodes, tin, PopulationGravity(decay, dist), Distance(dist))
	default:
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, method)
	}
}
