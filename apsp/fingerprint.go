// SPDX-License-Identifier: MIT

package apsp

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
)

// Fingerprint returns a hex SHA-256 digest of g's order and every edge
// (from, to, weight bits) in row-major order. Two graphs with equal
// fingerprints produce identical tables, so it serves as a cache key.
// Complexity: O(E) for SparseGraph, O(n²) otherwise.
func Fingerprint(g Graph) string {
	h := sha256.New()
	n := g.Order()
	var rec [16]byte
	binary.LittleEndian.PutUint64(rec[:8], uint64(n))
	h.Write(rec[:8])

	emit := func(i, j int) {
		w, ok := g.Weight(i, j)
		if !ok || i == j {
			return
		}
		binary.LittleEndian.PutUint32(rec[0:4], uint32(i))
		binary.LittleEndian.PutUint32(rec[4:8], uint32(j))
		binary.LittleEndian.PutUint64(rec[8:16], math.Float64bits(w))
		h.Write(rec[:])
	}
	if sg, ok := g.(SparseGraph); ok {
		for i := 0; i < n; i++ {
			for _, j := range sg.Successors(i) {
				emit(i, j)
			}
		}
	} else {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				emit(i, j)
			}
		}
	}

	return hex.EncodeToString(h.Sum(nil))
}
