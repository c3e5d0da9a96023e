// SPDX-License-Identifier: MIT

package apsp

import (
	"errors"
	"fmt"
)

// Graph is the input contract: dense indices 0..Order()-1 and an
// adjacency-matrix-style lookup returning the edge weight or false.
type Graph interface {
	Order() int
	Weight(from, to int) (float64, bool)
}

// SparseGraph additionally enumerates outgoing neighbours, which the
// Dijkstra-based builder needs to stay sub-cubic.
type SparseGraph interface {
	Graph
	Successors(i int) []int
}

// Sentinel errors.
var (
	// ErrNilGraph indicates a nil graph was passed to a builder.
	ErrNilGraph = errors.New("apsp: graph is nil")

	// ErrNegativeWeight indicates a negative weight seen by BuildSparse.
	ErrNegativeWeight = errors.New("apsp: negative edge weight")

	// ErrFormat indicates a serialized table that cannot be decoded:
	// bad magic, unsupported version, truncation, checksum or range failure.
	ErrFormat = errors.New("apsp: malformed path table")

	// ErrSizeMismatch indicates a serialized table whose order differs from
	// the live graph. errors.Is(err, ErrFormat) also holds.
	ErrSizeMismatch = errors.New("apsp: path table order mismatch")

	// ErrCorruptNext indicates a next matrix whose midpoints do not converge.
	// Reconstruction panics with it; it is never returned.
	ErrCorruptNext = errors.New("apsp: next matrix does not terminate")
)

// sizeMismatchError makes ErrSizeMismatch satisfy errors.Is(err, ErrFormat).
type sizeMismatchError struct {
	got, want int
}

func (e *sizeMismatchError) Error() string {
	return fmt.Sprintf("%v: file has n=%d, graph has n=%d", ErrSizeMismatch, e.got, e.want)
}

func (e *sizeMismatchError) Is(target error) bool {
	return target == ErrSizeMismatch || target == ErrFormat
}
