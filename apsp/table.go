// SPDX-License-Identifier: MIT

package apsp

import (
	"fmt"
	"math"

	"github.com/katalvlaran/idpnet/matrix"
)

const opBuild = "Build"

// Table is an immutable all-pairs shortest-path result.
type Table struct {
	n    int
	dist *matrix.Dense
	next []int32
}

// Build computes a Table with Floyd–Warshall.
//
// Steps:
//  1. distance = 0 on the diagonal, edge weight where an edge exists, +Inf
//     elsewhere; next = -1 everywhere.
//  2. For k = 0..n-1, i, j: relax through k on strict improvement and record
//     next[i][j] = k (never for i == j).
//
// Negative weights are not validated; with them the result is undefined.
// Complexity: O(n³) time, O(n²) space.
func Build(g Graph) (*Table, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	n := g.Order()
	dist, err := matrix.NewDistance(n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opBuild, err)
	}
	seed(g, n, dist.Data())

	next := make([]int32, n*n)
	if err = matrix.FloydWarshallNext(dist, next); err != nil {
		return nil, fmt.Errorf("%s: %w", opBuild, err)
	}

	return &Table{n: n, dist: dist, next: next}, nil
}

// seed writes direct edge weights into the flat distance buffer. Sparse
// graphs are walked by successor list; others by the O(n²) lookup.
func seed(g Graph, n int, data []float64) {
	if sg, ok := g.(SparseGraph); ok {
		for i := 0; i < n; i++ {
			for _, j := range sg.Successors(i) {
				if j == i {
					continue
				}
				if w, ok := g.Weight(i, j); ok && w < data[i*n+j] {
					data[i*n+j] = w
				}
			}
		}
		return
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if w, ok := g.Weight(i, j); ok && w < data[i*n+j] {
				data[i*n+j] = w
			}
		}
	}
}

// Order returns n, the node count at build time.
func (t *Table) Order() int { return t.n }

// check panics on an out-of-range index.
func (t *Table) check(i int) {
	if i < 0 || i >= t.n {
		panic(fmt.Sprintf("apsp: index %d out of range [0,%d)", i, t.n))
	}
}

// PathLength returns distance[i][j]; +Inf when j is unreachable from i.
// Complexity: O(1).
func (t *Table) PathLength(i, j int) float64 {
	t.check(i)
	t.check(j)

	return t.dist.Data()[i*t.n+j]
}

// Reachable reports whether distance[i][j] is finite.
func (t *Table) Reachable(i, j int) bool {
	return !math.IsInf(t.PathLength(i, j), 1)
}

// Next returns the raw midpoint next[i][j] (-1 when none).
func (t *Table) Next(i, j int) int {
	t.check(i)
	t.check(j)

	return int(t.next[i*t.n+j])
}

// Path returns the intermediate nodes of a shortest i→j path, excluding both
// endpoints. ok is false when j is unreachable from i. i == j yields an
// empty, reachable path.
//
// Reconstruction recurses on next: Path(i,m) + [m] + Path(m,j).
// Recursion depth is bounded by the hop count of the path.
func (t *Table) Path(i, j int) (path []int, ok bool) {
	if !t.Reachable(i, j) {
		return nil, false
	}
	path = make([]int, 0, 4)
	budget := t.n
	path = t.expand(i, j, path, &budget)

	return path, true
}

// expand appends the intermediates of i→j to path. budget counts the
// intermediates still allowed; a shortest path has at most n-2 of them.
func (t *Table) expand(i, j int, path []int, budget *int) []int {
	m := t.next[i*t.n+j]
	if m == matrix.NoHop {
		return path
	}
	*budget--
	if *budget < 0 {
		panic(ErrCorruptNext)
	}
	path = t.expand(i, int(m), path, budget)
	path = append(path, int(m))

	return t.expand(int(m), j, path, budget)
}

// FirstHop returns the node following i on a shortest i→j path: the first
// intermediate if there is one, else j itself. ok is false when unreachable.
// Complexity: O(hops) without allocating the full path.
func (t *Table) FirstHop(i, j int) (int, bool) {
	if !t.Reachable(i, j) {
		return -1, false
	}
	target := j
	for steps := 0; ; steps++ {
		m := t.next[i*t.n+target]
		if m == matrix.NoHop {
			return target, true
		}
		if steps > t.n {
			panic(ErrCorruptNext)
		}
		target = int(m)
	}
}

// Distances returns a copy of the distance matrix.
func (t *Table) Distances() *matrix.Dense { return t.dist.Clone() }

// Equal reports bit-identical distance and next matrices.
func (t *Table) Equal(o *Table) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.n != o.n || !t.dist.Equal(o.dist) {
		return false
	}
	for idx, v := range t.next {
		if o.next[idx] != v {
			return false
		}
	}

	return true
}
