// SPDX-License-Identifier: MIT

package sim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/katalvlaran/idpnet/apsp"
	"github.com/katalvlaran/idpnet/bfs"
	"github.com/katalvlaran/idpnet/core"
	"github.com/katalvlaran/idpnet/interaction"
	"github.com/katalvlaran/idpnet/selector"
	"github.com/katalvlaran/idpnet/simplify"
)

// networks is one immutable rebuild result. weightedExp records the
// exponent the simplified-weighted network was built with.
type networks struct {
	interaction *core.Graph
	working     map[selector.WorkingKind]*selector.Working
	weightedExp float64
}

// Simulation is the explicit simulation context. Query methods are safe for
// concurrent use with OnTick.
type Simulation struct {
	tickMu sync.Mutex // serialises OnTick

	mu       sync.Mutex
	nodes    core.Nodes
	roads    *core.Graph
	tin      [][2]int
	params   Params
	dirty    bool
	tick     uint64
	rebuilds int
	net      *networks
	sel      *selector.Selector

	opts Options
}

// New validates params, copies nodes and builds every network.
//
// roads must have one node per catalogue entry. tin is the triangulated
// city pair list used by interaction.MethodTriangulated; it may be nil for
// other methods.
//
// Errors: ErrConfiguration (also for a roads/nodes order mismatch), plus any
// build error.
func New(nodes core.Nodes, roads *core.Graph, tin [][2]int, params Params, opts ...Option) (*Simulation, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := nodes.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if roads == nil || roads.Order() != len(nodes) {
		return nil, fmt.Errorf("%w: road network must have %d nodes", ErrConfiguration, len(nodes))
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := &Simulation{
		nodes:  nodes.Clone(),
		roads:  roads.Clone(),
		tin:    append([][2]int(nil), tin...),
		params: params,
		opts:   o,
	}
	net, err := s.rebuild(params, nil)
	if err != nil {
		return nil, err
	}
	s.install(params, net)

	return s, nil
}

// SetParams validates p and schedules a rebuild for the next tick.
// Errors: ErrConfiguration; the current parameters stay in force.
func (s *Simulation) SetParams(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.params = p
	s.dirty = true
	s.mu.Unlock()
	s.opts.Logger.Info("parameters updated; rebuild scheduled",
		"strategy", p.Strategy.String(), "formation", p.Formation.String(), "working", p.Working.String())

	return nil
}

// Params returns the current parameters.
func (s *Simulation) Params() Params {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.params
}

// Dirty reports whether a rebuild is pending.
func (s *Simulation) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.dirty
}

// Rebuilds returns how many rebuilds have completed, including the initial one.
func (s *Simulation) Rebuilds() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rebuilds
}

// Move records one group relocation.
type Move struct {
	From  int     `json:"from"`
	To    int     `json:"to"`
	Count float64 `json:"count"`
}

// TickReport summarises one OnTick call.
type TickReport struct {
	Tick     uint64        `json:"tick"`
	Rebuilt  bool          `json:"rebuilt"`
	Moves    []Move        `json:"moves"`
	Stayed   int           `json:"stayed"`
	Moved    float64       `json:"moved"`
	Duration time.Duration `json:"duration"`
}

// OnTick is the scheduler callback. It rebuilds if dirty (clearing the flag
// first), then relocates one group from every node that starts the tick
// with at least one refugee above capacity, in index order.
//
// A failed rebuild leaves the previous networks in place, marks the context
// dirty again and returns the error.
func (s *Simulation) OnTick(ctx context.Context, tick uint64) (*TickReport, error) {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()

	return s.step(ctx, tick)
}

// Advance runs the tick after the last completed one. Concurrent callers
// are serialised, so every successful call reports a distinct, increasing
// tick number.
func (s *Simulation) Advance(ctx context.Context) (*TickReport, error) {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()

	return s.step(ctx, s.Tick()+1)
}

// step runs one tick. Caller holds tickMu.
func (s *Simulation) step(ctx context.Context, tick uint64) (*TickReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	rep := &TickReport{Tick: tick}

	s.mu.Lock()
	dirty, params, prev := s.dirty, s.params, s.net
	s.dirty = false
	s.mu.Unlock()

	if dirty {
		net, err := s.rebuild(params, prev)
		if err != nil {
			s.mu.Lock()
			s.dirty = true
			s.mu.Unlock()
			return nil, fmt.Errorf("tick %d: rebuild: %w", tick, err)
		}
		s.install(params, net)
		rep.Rebuilt = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tick = tick
	view := s.view()
	// The overloaded set is fixed at tick start, so a group moves at most
	// once per tick. Junctions only hold refugees in transit along the raw
	// road network.
	var overloaded []int
	for i, n := range s.nodes {
		n.Grouped = 0
		if n.Excess() >= 1 {
			overloaded = append(overloaded, i)
		}
	}
	for _, i := range overloaded {
		src := s.nodes[i]
		excess := src.Excess()
		if excess < 1 {
			continue
		}
		dest, ok := s.sel.Select(view, i)
		if !ok || dest == i {
			rep.Stayed++
			continue
		}
		n := groupSize(excess, src.Refugees, s.params.GroupSizeFraction)
		src.Refugees -= n
		src.Grouped = n
		s.nodes[dest].Refugees += n
		rep.Moves = append(rep.Moves, Move{From: i, To: dest, Count: n})
		rep.Moved += n
	}
	rep.Duration = time.Since(start)
	s.opts.Logger.Debug("tick complete",
		"tick", tick, "rebuilt", rep.Rebuilt, "moves", len(rep.Moves), "stayed", rep.Stayed, "moved", rep.Moved)

	return rep, nil
}

// groupSize is min(excess, refugees·fraction) rounded down, at least 1.
func groupSize(excess, refugees, fraction float64) float64 {
	n := math.Floor(math.Min(excess, refugees*fraction))
	if n < 1 {
		n = 1
	}

	return n
}

// view assembles the selector input. Caller holds mu.
func (s *Simulation) view() selector.Network {
	return selector.Network{
		Nodes:       s.nodes,
		Interaction: s.net.interaction,
		Working:     s.net.working[s.params.Working],
	}
}

// install swaps in a finished rebuild and the matching selector.
func (s *Simulation) install(p Params, net *networks) {
	sel, err := selector.New(p.Strategy,
		selector.WithDecay(p.SpatialDecayExponent),
		selector.WithGroupFraction(p.GroupSizeFraction),
		selector.WithRand(s.opts.Rand),
		selector.WithDistance(s.opts.Distance),
		selector.WithLogger(s.opts.Logger))
	if err != nil {
		// p was validated before it was stored.
		panic(err)
	}
	s.mu.Lock()
	s.net, s.sel = net, sel
	s.rebuilds++
	s.mu.Unlock()
}

// rebuild derives every network for p without touching live state. The
// road network never changes, so the raw and simplified networks of prev
// are reused, and so is its weighted network when the exponent is
// unchanged. The interaction network is always rebuilt.
func (s *Simulation) rebuild(p Params, prev *networks) (*networks, error) {
	start := time.Now()
	log := s.opts.Logger

	inter, err := interaction.Build(p.Formation, s.nodes, p.Links(), p.SpatialDecayExponent, s.opts.Distance, s.tin)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	net := &networks{
		interaction: inter,
		working:     make(map[selector.WorkingKind]*selector.Working, 3),
		weightedExp: p.SimplifyRoadsDistanceExponent,
	}

	if prev != nil {
		net.working[selector.WorkingRaw] = prev.working[selector.WorkingRaw]
		net.working[selector.WorkingSimplified] = prev.working[selector.WorkingSimplified]
		if prev.weightedExp == p.SimplifyRoadsDistanceExponent {
			net.working[selector.WorkingSimplifiedWeighted] = prev.working[selector.WorkingSimplifiedWeighted]
		}
	} else {
		rawTable, err := s.table(s.roads, selector.WorkingRaw)
		if err != nil {
			return nil, err
		}
		net.working[selector.WorkingRaw] = &selector.Working{Kind: selector.WorkingRaw, Graph: s.roads, Table: rawTable}
		if net.working[selector.WorkingSimplified], err = s.simplified(selector.WorkingSimplified, 1); err != nil {
			return nil, err
		}
	}
	if net.working[selector.WorkingSimplifiedWeighted] == nil {
		if net.working[selector.WorkingSimplifiedWeighted], err = s.simplified(selector.WorkingSimplifiedWeighted, p.SimplifyRoadsDistanceExponent); err != nil {
			return nil, err
		}
	}

	active := net.working[p.Working]
	comps := bfs.Components(active.Graph)
	if len(comps) > 1 {
		log.Warn("working network is disconnected",
			"working", p.Working.String(), "components", len(comps), "largest", largest(comps))
	}
	log.Info("networks rebuilt",
		"formation", p.Formation.String(),
		"interaction_edges", inter.EdgeCount(),
		"working", p.Working.String(),
		"working_edges", active.Graph.EdgeCount(),
		"elapsed", time.Since(start))

	return net, nil
}

// simplified contracts the roads onto cities with the given exponent.
func (s *Simulation) simplified(kind selector.WorkingKind, exp float64) (*selector.Working, error) {
	simp, err := simplify.New(exp,
		simplify.WithKeep(func(i int) bool { return s.nodes[i].IsCity() }),
		simplify.WithLogger(s.opts.Logger),
		simplify.WithBuilder(func(g *core.Graph) (*apsp.Table, error) { return s.table(g, kind) }))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	// Rescale writes Info on every edge; work on a private copy.
	res, err := simp.Simplify(s.roads.Clone())
	if err != nil {
		return nil, fmt.Errorf("simplify %v: %w", kind, err)
	}

	return &selector.Working{Kind: kind, Graph: res.Graph, Table: res.Table}, nil
}

func largest(comps [][]int) int {
	best := 0
	for _, c := range comps {
		if len(c) > best {
			best = len(c)
		}
	}

	return best
}

// table returns the shortest-path table of g, consulting the cache first.
// A cache entry that fails to decode is logged and rebuilt.
func (s *Simulation) table(g *core.Graph, kind selector.WorkingKind) (*apsp.Table, error) {
	log := s.opts.Logger
	key := apsp.Fingerprint(g)
	if c := s.opts.Cache; c != nil {
		t, err := c.Get(key, g.Order())
		switch {
		case err == nil:
			log.Debug("path table cache hit", "working", kind.String(), "nodes", g.Order())
			return t, nil
		case errors.Is(err, apsp.ErrFormat):
			log.Warn("cached path table unusable; rebuilding", "working", kind.String(), "err", err)
		default:
			log.Debug("path table cache miss", "working", kind.String(), "err", err)
		}
	}

	var (
		t   *apsp.Table
		err error
	)
	if g.Order() > s.opts.SparseAbove {
		t, err = apsp.BuildSparse(g)
	} else {
		t, err = apsp.Build(g)
	}
	if err != nil {
		return nil, fmt.Errorf("path table %v: %w", kind, err)
	}
	if c := s.opts.Cache; c != nil {
		if err = c.Put(key, t); err != nil {
			log.Warn("path table not cached", "working", kind.String(), "err", err)
		}
	}

	return t, nil
}
