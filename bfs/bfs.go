// SPDX-License-Identifier: MIT

package bfs

import (
	"fmt"
	"sort"
)

type queueItem struct {
	id    int
	depth int
}

// walker encapsulates mutable BFS state. Depth doubles as the visited set,
// so one walker can be seeded repeatedly without revisiting nodes.
type walker struct {
	graph Graph
	opts  Options
	queue []queueItem
	res   *Result
}

func newWalker(g Graph, o Options) *walker {
	n := g.Order()
	w := &walker{
		graph: g,
		opts:  o,
		queue: make([]queueItem, 0, n),
		res: &Result{
			Order: make([]int, 0, n),
			Depth: make([]int, n),
		},
	}
	for i := range w.res.Depth {
		w.res.Depth[i] = -1
	}

	return w
}

// BFS runs breadth-first search on g from start.
// Returns ErrGraphNil, ErrStartOutOfRange or any OnVisit error.
func BFS(g Graph, start int, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	n := g.Order()
	if start < 0 || start >= n {
		return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrStartOutOfRange, start, n)
	}

	w := newWalker(g, o)
	w.enqueue(start, 0)

	return w.res, w.loop()
}

func (w *walker) enqueue(id, d int) {
	w.res.Depth[id] = d
	w.queue = append(w.queue, queueItem{id: id, depth: d})
}

// loop processes the queue until empty or error.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		item := w.queue[0]
		w.queue = w.queue[1:]
		w.res.Order = append(w.res.Order, item.id)
		if err := w.opts.OnVisit(item.id, item.depth); err != nil {
			return fmt.Errorf("bfs: OnVisit error at %d: %w", item.id, err)
		}

		for _, nbr := range w.graph.Successors(item.id) {
			if w.res.Depth[nbr] < 0 {
				w.enqueue(nbr, item.depth+1)
			}
		}
	}

	return nil
}

// undirected mirrors every edge of a graph so traversal ignores direction.
type undirected [][]int

func (u undirected) Order() int             { return len(u) }
func (u undirected) Successors(i int) []int { return u[i] }

func mirror(g Graph) undirected {
	n := g.Order()
	u := make(undirected, n)
	for i := 0; i < n; i++ {
		for _, j := range g.Successors(i) {
			u[i] = append(u[i], j)
			u[j] = append(u[j], i)
		}
	}

	return u
}

// Components returns the weakly connected components of g: edge direction
// is ignored. Each component is sorted, and components are ordered by their
// smallest member.
// Complexity: O(V + E) for the walk, plus sorting each component.
func Components(g Graph) [][]int {
	var (
		out     [][]int
		members []int
	)
	w := newWalker(mirror(g), Options{OnVisit: func(i, _ int) error {
		members = append(members, i)
		return nil
	}})
	for s := range w.res.Depth {
		if w.res.Depth[s] >= 0 {
			continue
		}
		members = nil
		w.enqueue(s, 0)
		_ = w.loop() // the collecting hook never fails
		sort.Ints(members)
		out = append(out, members)
	}

	return out
}
