// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - One canonical place for the shape checks shared by the kernels.
//  - Return sentinel errors wrapped with the validator tag.

package matrix

import "fmt"

func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateSquare checks that d is non-nil and square.
// Complexity: O(1).
func ValidateSquare(d *Dense) error {
	if d == nil {
		return validatorErrorf("ValidateSquare", ErrNilMatrix)
	}
	if d.r != d.c {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateNext checks that next is an n*n buffer whose entries are -1 or a
// valid index in 0..n-1.
// Complexity: O(n²).
func ValidateNext(n int, next []int32) error {
	if len(next) != n*n {
		return validatorErrorf("ValidateNext", ErrNextShape)
	}
	for idx, v := range next {
		if v < -1 || int(v) >= n {
			return validatorErrorf(fmt.Sprintf("ValidateNext[%d]=%d", idx, v), ErrOutOfRange)
		}
	}

	return nil
}
