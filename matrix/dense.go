// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// denseErrorf wraps err with the method name and coordinates.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a row-major float64 matrix.
//   - r,c hold dimensions.
//   - data has length r*c (offset i*c + j).
//   - allowInf permits +Inf in Set (distance matrices only).
type Dense struct {
	r, c     int
	data     []float64
	allowInf bool
}

// NewDense creates an r×c zero matrix.
// Errors: ErrInvalidDimensions when r<=0 or c<=0.
// Complexity: O(r*c).
func NewDense(r, c int) (*Dense, error) {
	if r <= 0 || c <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{r: r, c: c, data: make([]float64, r*c)}, nil
}

// NewDistance creates the n×n initial distance matrix: 0 on the diagonal and
// +Inf elsewhere. n == 0 is legal and yields an empty matrix.
// Errors: ErrInvalidDimensions when n < 0.
// Complexity: O(n²).
func NewDistance(n int) (*Dense, error) {
	if n < 0 {
		return nil, ErrInvalidDimensions
	}
	d := &Dense{r: n, c: n, data: make([]float64, n*n), allowInf: true}
	inf := math.Inf(1)
	for i := range d.data {
		d.data[i] = inf
	}
	for i := 0; i < n; i++ {
		d.data[i*n+i] = 0
	}

	return d, nil
}

// FromRowMajor wraps an existing buffer as an n×n distance matrix without
// copying. Used by deserialisation.
func FromRowMajor(n int, data []float64) (*Dense, error) {
	if n < 0 || len(data) != n*n {
		return nil, ErrInvalidDimensions
	}

	return &Dense{r: n, c: n, data: data, allowInf: true}, nil
}

// Rows returns the row count.
func (d *Dense) Rows() int { return d.r }

// Cols returns the column count.
func (d *Dense) Cols() int { return d.c }

// At returns the value at (i,j), or ErrOutOfRange.
func (d *Dense) At(i, j int) (float64, error) {
	if i < 0 || i >= d.r || j < 0 || j >= d.c {
		return 0, denseErrorf("At", i, j, ErrOutOfRange)
	}

	return d.data[i*d.c+j], nil
}

// Set writes v at (i,j) under the numeric policy.
func (d *Dense) Set(i, j int, v float64) error {
	if i < 0 || i >= d.r || j < 0 || j >= d.c {
		return denseErrorf("Set", i, j, ErrOutOfRange)
	}
	if math.IsNaN(v) || math.IsInf(v, -1) || (math.IsInf(v, 1) && !d.allowInf) {
		return denseErrorf("Set", i, j, ErrNaNInf)
	}
	d.data[i*d.c+j] = v

	return nil
}

// Data exposes the flat buffer. Callers must treat it as read-only unless
// they own the matrix.
func (d *Dense) Data() []float64 { return d.data }

// Clone returns a deep copy.
func (d *Dense) Clone() *Dense {
	cp := make([]float64, len(d.data))
	copy(cp, d.data)

	return &Dense{r: d.r, c: d.c, data: cp, allowInf: d.allowInf}
}

// Equal reports bit-exact equality of shape and contents (+Inf == +Inf).
func (d *Dense) Equal(o *Dense) bool {
	if d == nil || o == nil {
		return d == o
	}
	if d.r != o.r || d.c != o.c {
		return false
	}
	for i, v := range d.data {
		if math.Float64bits(v) != math.Float64bits(o.data[i]) {
			return false
		}
	}

	return true
}

// String renders the matrix row by row.
func (d *Dense) String() string {
	var sb strings.Builder
	for i := 0; i < d.r; i++ {
		sb.WriteString("[")
		for j := 0; j < d.c; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%g", d.data[i*d.c+j])
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}
