// SPDX-License-Identifier: MIT

package scenario

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	opensimplex "github.com/ojrac/opensimplex-go"
	"github.com/paulmach/orb"

	"github.com/katalvlaran/idpnet/bfs"
	"github.com/katalvlaran/idpnet/core"
	"github.com/katalvlaran/idpnet/mst"
	"github.com/katalvlaran/idpnet/spatial"
)

const (
	minPopulation = 500
	maxPopulation = 250000
)

// Generate builds a World. Cities occupy indices 0..Cities-1 and junctions
// follow. The same options always yield the same World.
//
// Errors: ErrDisconnected (never for valid options), core edge errors.
// Complexity: O(n² log n) for n = Cities + Junctions.
func Generate(opts ...Option) (*World, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	rng := rand.New(rand.NewSource(o.Seed))
	noise := opensimplex.NewNormalized(o.Seed)

	n := o.Cities + o.Junctions
	nodes := make(core.Nodes, n)
	for i := range nodes {
		p := orb.Point{rng.Float64() * o.Extent, rng.Float64() * o.Extent}
		node := &core.Node{Index: i, Centroid: p}
		if i < o.Cities {
			node.Kind = core.KindCity
			node.Name = fmt.Sprintf("city-%02d", i)
			v := octaveNoise(noise, p[0]/o.Extent, p[1]/o.Extent, 4, 2, 0.5)
			node.Population = math.Round(minPopulation + v*v*(maxPopulation-minPopulation))
			node.Capacity = math.Round(node.Population * o.CapacityRatio)
			node.Refugees = math.Round(node.Capacity * 2 * rng.Float64())
		} else {
			node.Kind = core.KindJunction
			node.Name = fmt.Sprintf("junction-%02d", i-o.Cities)
		}
		nodes[i] = node
	}

	roads, err := buildRoads(nodes, o.Neighbours, o.Skeleton, o.Distance)
	if err != nil {
		return nil, err
	}

	return &World{Nodes: nodes, Roads: roads, TIN: nearestPairs(nodes, nodes.Cities(), o.Neighbours, o.Distance)}, nil
}

// buildRoads links every node through a minimum spanning tree of the
// complete distance graph, then adds each node's k nearest neighbours.
func buildRoads(nodes core.Nodes, k int, skeleton mst.Method, dist spatial.Func) (*core.Graph, error) {
	n := len(nodes)
	complete := core.NewGraph(n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if err := complete.AddEdge(i, j, spatial.Between(dist, nodes[i], nodes[j])); err != nil {
				return nil, err
			}
		}
	}

	roads := core.NewGraph(n)
	if n > 1 {
		tree, _, err := mst.Compute(complete, mst.WithMethod(skeleton), mst.WithRoot(capital(nodes)))
		if err != nil {
			return nil, fmt.Errorf("scenario: road skeleton: %w", err)
		}
		for _, e := range tree {
			if err := roads.AddEdge(e.From, e.To, e.Weight); err != nil {
				return nil, err
			}
		}
	}

	all := make([]int, n)
	for i := range all {
		all[i] = i
	}
	for _, pr := range nearestPairs(nodes, all, k, dist) {
		w, _ := complete.Weight(pr[0], pr[1])
		if err := roads.AddEdge(pr[0], pr[1], w); err != nil {
			return nil, err
		}
	}

	res, err := bfs.BFS(roads, 0)
	if err != nil {
		return nil, err
	}
	if len(res.Order) < n {
		return nil, fmt.Errorf("%w: %d of %d nodes unreachable", ErrDisconnected, n-len(res.Order), n)
	}

	return roads, nil
}

// capital returns the most populous node, lowest index on ties.
func capital(nodes core.Nodes) int {
	best := 0
	for i, n := range nodes {
		if n.Population > nodes[best].Population {
			best = i
		}
	}

	return best
}

// nearestPairs links each member of set to its k nearest other members.
// Pairs are returned once, as (low, high), sorted.
func nearestPairs(nodes core.Nodes, set []int, k int, dist spatial.Func) [][2]int {
	seen := make(map[[2]int]bool)
	out := make([][2]int, 0, len(set)*k)
	others := make([]int, 0, len(set))
	for _, a := range set {
		others = others[:0]
		for _, b := range set {
			if b != a {
				others = append(others, b)
			}
		}
		sort.SliceStable(others, func(x, y int) bool {
			return spatial.Between(dist, nodes[a], nodes[others[x]]) <
				spatial.Between(dist, nodes[a], nodes[others[y]])
		})
		for _, b := range others[:min(k, len(others))] {
			pr := [2]int{min(a, b), max(a, b)}
			if !seen[pr] {
				seen[pr] = true
				out = append(out, pr)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][0] != out[j][0] {
			return out[i][0] < out[j][0]
		}
		return out[i][1] < out[j][1]
	})

	return out
}

// octaveNoise layers several noise frequencies into a value in [0, 1].
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
