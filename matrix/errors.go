// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// Callers match with errors.Is; context is attached with %w at the call site.

package matrix

import "errors"

var (
	// ErrInvalidDimensions indicates non-positive (or negative, for distance
	// matrices) requested dimensions.
	ErrInvalidDimensions = errors.New("matrix: invalid dimensions")

	// ErrOutOfRange indicates that an index is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrNonSquare signals that a square matrix was required.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrNilMatrix indicates a nil *Dense argument.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrNaNInf signals a NaN, -Inf, or (outside distance matrices) +Inf value.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNextShape signals a next-hop buffer whose length is not n*n.
	ErrNextShape = errors.New("matrix: next-hop buffer has wrong length")
)
