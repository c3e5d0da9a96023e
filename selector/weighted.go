// SPDX-License-Identifier: MIT

package selector

import "math"

// ShiftNonNegative adds |min| to every weight when the minimum is negative,
// so the smallest becomes 0. NaN entries become 0 first.
func ShiftNonNegative(w []float64) {
	lo := 0.0
	for k, v := range w {
		if math.IsNaN(v) {
			w[k] = 0
			continue
		}
		if v < lo {
			lo = v
		}
	}
	if lo < 0 {
		for k := range w {
			w[k] -= lo
		}
	}
}

// ChooseWeighted returns an index drawn with probability proportional to
// w[k]. Negative entries count as zero. ok is false for an empty slice or a
// non-positive total. The draw consumes exactly one r.Float64(), so a fixed
// source and fixed weights give a fixed answer.
// Complexity: O(len(w)).
func ChooseWeighted(r Rand, w []float64) (int, bool) {
	var total float64
	last := -1
	for k, v := range w {
		if v > 0 {
			total += v
			last = k
		}
	}
	if last < 0 || !(total > 0) || math.IsInf(total, 1) {
		return -1, false
	}

	x := r.Float64() * total
	var cum float64
	for k, v := range w {
		if v <= 0 {
			continue
		}
		cum += v
		if x < cum {
			return k, true
		}
	}

	return last, true
}
