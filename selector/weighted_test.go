package selector_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/idpnet/selector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChooseWeighted_None(t *testing.T) {
	t.Parallel()
	r := fixedRand(0.5)
	_, ok := selector.ChooseWeighted(r, nil)
	assert.False(t, ok)
	_, ok = selector.ChooseWeighted(r, []float64{0, 0, 0})
	assert.False(t, ok)
	_, ok = selector.ChooseWeighted(r, []float64{-1, 0})
	assert.False(t, ok)
}

func TestChooseWeighted_SkipsZeros(t *testing.T) {
	t.Parallel()
	for _, r := range []float64{0, 0.25, 0.75, 0.9999} {
		k, ok := selector.ChooseWeighted(fixedRand(r), []float64{0, 2, 0})
		require.True(t, ok)
		assert.Equal(t, 1, k)
	}
}

func TestChooseWeighted_Boundaries(t *testing.T) {
	t.Parallel()
	w := []float64{1, 1, 2}
	cases := map[float64]int{0: 0, 0.24: 0, 0.25: 1, 0.49: 1, 0.5: 2, 0.99: 2}
	for r, want := range cases {
		k, ok := selector.ChooseWeighted(fixedRand(r), w)
		require.True(t, ok)
		assert.Equal(t, want, k, "r=%g", r)
	}
}

func TestChooseWeighted_Proportional(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(17))
	w := []float64{1, 3}
	hits := [2]int{}
	const draws = 20000
	for i := 0; i < draws; i++ {
		k, _ := selector.ChooseWeighted(rng, w)
		hits[k]++
	}
	assert.InDelta(t, 0.75, float64(hits[1])/draws, 0.02)
}

func TestShiftNonNegative(t *testing.T) {
	t.Parallel()
	w := []float64{-2, 3, 1}
	selector.ShiftNonNegative(w)
	assert.Equal(t, []float64{0, 5, 3}, w)

	w = []float64{math.NaN(), 4}
	selector.ShiftNonNegative(w)
	assert.Equal(t, []float64{0, 4}, w)

	w = []float64{1, 2}
	selector.ShiftNonNegative(w)
	assert.Equal(t, []float64{1, 2}, w)
}
