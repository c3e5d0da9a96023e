// SPDX-License-Identifier: MIT

package selector

import (
	"fmt"
	"math"

	"github.com/katalvlaran/idpnet/core"
)

// Selector dispatches SelectDestination to one strategy.
// It is not safe for concurrent use: the random source is shared.
type Selector struct {
	strategy Strategy
	opts     Options
}

// New returns a Selector for strategy.
// Errors: ErrUnknownStrategy.
func New(strategy Strategy, opts ...Option) (*Selector, error) {
	if !strategy.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownStrategy, strategy)
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Selector{strategy: strategy, opts: o}, nil
}

// Strategy returns the configured strategy.
func (s *Selector) Strategy() Strategy { return s.strategy }

// GroupSize returns the refugee count a city needs room for to receive one
// group from src.
func (s *Selector) GroupSize(src *core.Node) float64 {
	return src.Refugees * s.opts.GroupFraction
}

// Select returns the destination for refugees leaving src, or false when
// they should stay. Panics if src is not a valid index of net.Nodes.
func (s *Selector) Select(net Network, src int) (int, bool) {
	if src < 0 || src >= len(net.Nodes) {
		panic(fmt.Sprintf("selector: source %d out of range [0,%d)", src, len(net.Nodes)))
	}

	var (
		dest   int
		ok     bool
		reason string
	)
	switch s.strategy {
	case SpareCapacity:
		dest, ok = s.spareCapacity(net, src)
		reason = "no interaction neighbours"
	case DistanceWeightedSpareCapacity:
		dest, ok = s.weightedNeighbour(net, src, s.straightLine(net))
		reason = "no interaction neighbours with positive weight"
	case NearestViableCity:
		dest, ok, reason = s.nearestViable(net, src)
	case Roads:
		dest, ok = s.roads(net, src)
		reason = "no working-network edges with positive weight"
	case HybridTIN:
		dest, ok, reason = s.hybrid(net, src, s.straightLine(net))
	case HybridRoads:
		dest, ok, reason = s.hybrid(net, src, s.pathLength(net))
	}
	if !ok {
		s.opts.Logger.Info("no destination; refugees stay",
			"strategy", s.strategy.String(), "city", src, "reason", reason)
		return -1, false
	}

	return dest, true
}

// spareCapacity picks the interaction neighbour with maximum spare capacity;
// ties keep the lowest index.
func (s *Selector) spareCapacity(net Network, src int) (int, bool) {
	if net.Interaction == nil {
		return -1, false
	}
	best, bestSpare := -1, math.Inf(-1)
	for _, e := range net.Interaction.Neighbors(src) {
		if sp := net.Nodes[e.To].Spare(); sp > bestSpare {
			best, bestSpare = e.To, sp
		}
	}

	return best, best >= 0
}

// distFunc measures the decay distance from src to t.
type distFunc func(src, t int) float64

func (s *Selector) straightLine(net Network) distFunc {
	return func(src, t int) float64 {
		return s.opts.Distance(net.Nodes[src].Centroid, net.Nodes[t].Centroid)
	}
}

func (s *Selector) pathLength(net Network) distFunc {
	return func(src, t int) float64 {
		if net.Working == nil || net.Working.Table == nil {
			return math.Inf(1)
		}
		return net.Working.Table.PathLength(src, t)
	}
}

// decayWeight is spare / d^γ. A zero distance applies no decay.
func (s *Selector) decayWeight(spare, d float64) float64 {
	if d <= 0 {
		return spare
	}

	return spare / math.Pow(d, s.opts.Decay)
}

// weightedNeighbour samples an interaction neighbour of src.
func (s *Selector) weightedNeighbour(net Network, src int, dist distFunc) (int, bool) {
	if net.Interaction == nil {
		return -1, false
	}
	edges := net.Interaction.Neighbors(src)
	cand := make([]int, len(edges))
	w := make([]float64, len(edges))
	for k, e := range edges {
		cand[k] = e.To
		w[k] = s.decayWeight(net.Nodes[e.To].Spare(), dist(src, e.To))
	}

	return s.sample(cand, w)
}

// roads samples a working-network neighbour, using the edge weight as d.
func (s *Selector) roads(net Network, src int) (int, bool) {
	if net.Working == nil || net.Working.Graph == nil {
		return -1, false
	}
	edges := net.Working.Graph.Neighbors(src)
	cand := make([]int, len(edges))
	w := make([]float64, len(edges))
	for k, e := range edges {
		cand[k] = e.To
		w[k] = s.decayWeight(net.Nodes[e.To].Spare(), e.Weight)
	}

	return s.sample(cand, w)
}

// sample shifts negative weights up and draws one candidate.
func (s *Selector) sample(cand []int, w []float64) (int, bool) {
	ShiftNonNegative(w)
	k, ok := ChooseWeighted(s.opts.Rand, w)
	if !ok {
		return -1, false
	}

	return cand[k], true
}

// nearestViable picks the straight-line nearest city that can absorb one
// group from src, then steps to the first hop towards it.
func (s *Selector) nearestViable(net Network, src int) (int, bool, string) {
	need := s.GroupSize(net.Nodes[src])
	origin := net.Nodes[src].Centroid
	target, best := -1, math.Inf(1)
	for _, n := range net.Nodes {
		if n.Index == src || !n.IsCity() || n.Spare() < need {
			continue
		}
		if d := s.opts.Distance(origin, n.Centroid); d < best {
			target, best = n.Index, d
		}
	}
	if target < 0 {
		return -1, false, "no viable city"
	}

	return s.firstHop(net, src, target)
}

// hybrid picks a distance-weighted target and steps to the first hop.
func (s *Selector) hybrid(net Network, src int, dist distFunc) (int, bool, string) {
	target, ok := s.weightedNeighbour(net, src, dist)
	if !ok {
		return -1, false, "no weighted target"
	}

	return s.firstHop(net, src, target)
}

func (s *Selector) firstHop(net Network, src, target int) (int, bool, string) {
	if net.Working == nil || net.Working.Table == nil {
		return -1, false, "no working network"
	}
	hop, ok := net.Working.Table.FirstHop(src, target)
	if !ok {
		return -1, false, fmt.Sprintf("no path to %d", target)
	}

	return hop, true, ""
}
