// SPDX-License-Identifier: MIT

package bfs

import (
	"errors"
)

// Sentinel errors for BFS execution.
var (
	// ErrStartOutOfRange is returned when the start index is not a node.
	ErrStartOutOfRange = errors.New("bfs: start index out of range")

	// ErrGraphNil is returned if a nil graph is passed.
	ErrGraphNil = errors.New("bfs: graph is nil")
)

// Graph is the traversal contract: dense indices and sorted successors.
type Graph interface {
	Order() int
	Successors(i int) []int
}

// Option configures BFS behavior via functional arguments.
type Option func(*Options)

// Options holds callbacks to customize BFS execution.
type Options struct {
	// OnVisit is called when visiting a node. If it returns an error,
	// BFS aborts and propagates that error.
	OnVisit func(i, depth int) error
}

// DefaultOptions returns a no-op visit hook.
func DefaultOptions() Options {
	return Options{
		OnVisit: func(int, int) error { return nil },
	}
}

// WithOnVisit registers a callback to run on visit; returning an error
// from it stops the BFS.
func WithOnVisit(fn func(i, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// Result holds the outcome of a traversal:
//   - Order: nodes visited, in visit sequence.
//   - Depth: hop count from the start, -1 when not reached.
type Result struct {
	Order []int
	Depth []int
}
