// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Canonical dense APSP (Floyd–Warshall) with deterministic loop order.
//   - FloydWarshallNext additionally records the intermediate vertex k that
//     produced each improvement, enabling divide-and-conquer reconstruction.
//
// Contract:
//   - Square matrix; +Inf means "no path"; diagonal must be 0 before calling.
//   - Weights are assumed non-negative; negative cycles are not detected.

package matrix

import (
	"fmt"
	"math"
)

const (
	opFloydWarshall     = "FloydWarshall"
	opFloydWarshallNext = "FloydWarshallNext"
)

// NoHop is the next-matrix sentinel: no intermediate vertex is known for the
// pair (direct edge, same node, or unreachable).
const NoHop int32 = -1

// FloydWarshall computes all-pairs shortest distances in-place on d.
//
// Loop order is fixed (k → i → j); relaxation only on strict improvement.
// Complexity: Time O(n³), extra space O(1).
func FloydWarshall(d *Dense) error {
	if err := ValidateSquare(d); err != nil {
		return fmt.Errorf("%s: %w", opFloydWarshall, err)
	}
	floydWarshallInPlace(d, nil)

	return nil
}

// FloydWarshallNext computes all-pairs shortest distances in-place on d and
// fills next (row-major, length n*n) with midpoint indices:
//
//	next[i*n+j] = k  if the last strict improvement of d[i][j] went through k,
//	next[i*n+j] = -1 otherwise.
//
// next is reset to -1 before the sweep. next[i*n+i] is never written.
// Complexity: Time O(n³), extra space O(1).
func FloydWarshallNext(d *Dense, next []int32) error {
	if err := ValidateSquare(d); err != nil {
		return fmt.Errorf("%s: %w", opFloydWarshallNext, err)
	}
	if len(next) != d.r*d.r {
		return fmt.Errorf("%s: len(next)=%d, want %d: %w", opFloydWarshallNext, len(next), d.r*d.r, ErrNextShape)
	}
	for idx := range next {
		next[idx] = NoHop
	}
	floydWarshallInPlace(d, next)

	return nil
}

// floydWarshallInPlace is the single source of truth for the dense sweep.
// When next is nil only distances are updated.
func floydWarshallInPlace(d *Dense, next []int32) {
	n := d.r
	data := d.data

	var (
		k, i, j      int
		baseK, baseI int
		ik, kj, cand float64
	)

	for k = 0; k < n; k++ {
		baseK = k * n

		for i = 0; i < n; i++ {
			if i == k {
				// d[k][k] == 0, so row k cannot improve via k.
				continue
			}
			ik = data[i*n+k]
			if math.IsInf(ik, 1) {
				continue
			}
			baseI = i * n

			for j = 0; j < n; j++ {
				if j == i || j == k {
					continue
				}
				kj = data[baseK+j]
				if math.IsInf(kj, 1) {
					continue
				}
				cand = ik + kj
				if cand < data[baseI+j] {
					data[baseI+j] = cand
					if next != nil {
						next[baseI+j] = int32(k)
					}
				}
			}
		}
	}
}
