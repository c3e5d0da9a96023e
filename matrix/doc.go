// Package matrix provides the dense, row-major float64 storage behind the
// shortest-path tables, and the canonical Floyd–Warshall kernels.
//
// Storage: a flat buffer of length r*c addressed as i*c + j. Public accessors
// (At/Set) return sentinel errors instead of panicking; hot kernels operate on
// the flat buffer directly.
//
// Numeric policy: NaN and -Inf are always rejected by Set. +Inf is accepted
// only by distance matrices (NewDistance), where it means "no path".
//
// Determinism: kernels use the fixed loop order k → i → j and relax only on
// strict improvement, so repeated runs over identical input are bit-identical.
//
// Complexity quicksheet:
//
//	NewDense / NewDistance  O(r*c)
//	At / Set                O(1)
//	FloydWarshall*          O(n³) time, O(1) extra space
package matrix
