package apsp_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/idpnet/apsp"
	"github.com/katalvlaran/idpnet/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// negGraph is a minimal SparseGraph that admits a negative weight.
type negGraph struct{}

func (negGraph) Order() int { return 2 }
func (negGraph) Weight(from, to int) (float64, bool) {
	if from == 0 && to == 1 {
		return -1, true
	}
	return 0, false
}
func (negGraph) Successors(i int) []int {
	if i == 0 {
		return []int{1}
	}
	return nil
}

func TestBuildSparse_MatchesFloydWarshall(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 5; round++ {
		g := randomGraph(rng, 30, 0.12, round%2 == 1)
		dense, err := apsp.Build(g)
		require.NoError(t, err)
		sparse, err := apsp.BuildSparse(g)
		require.NoError(t, err)

		for i := 0; i < 30; i++ {
			for j := 0; j < 30; j++ {
				require.Equal(t, dense.PathLength(i, j), sparse.PathLength(i, j), "(%d,%d)", i, j)
				path, ok := sparse.Path(i, j)
				require.Equal(t, dense.Reachable(i, j), ok)
				if ok {
					assert.InDelta(t, sparse.PathLength(i, j), pathCost(t, g, i, path, j), 1e-9)
				}
			}
		}
	}
}

func TestBuildSparse_Chain(t *testing.T) {
	t.Parallel()
	tab, err := apsp.BuildSparse(chain(t))
	require.NoError(t, err)

	path, ok := tab.Path(A, D)
	require.True(t, ok)
	assert.Equal(t, []int{B, C}, path)
	hop, _ := tab.FirstHop(A, D)
	assert.Equal(t, B, hop)
	assert.False(t, tab.Reachable(A, E))
}

func TestBuildSparse_ZeroWeightTies(t *testing.T) {
	t.Parallel()
	// 0–1–2 all zero-cost plus a direct zero-cost 0–2.
	g := core.NewGraph(3)
	require.NoError(t, g.AddEdge(0, 1, 0))
	require.NoError(t, g.AddEdge(1, 2, 0))
	require.NoError(t, g.AddEdge(0, 2, 0))

	tab, err := apsp.BuildSparse(g)
	require.NoError(t, err)
	path, ok := tab.Path(0, 2)
	require.True(t, ok)
	assert.Empty(t, path)
}

func TestBuildSparse_NegativeWeight(t *testing.T) {
	t.Parallel()
	_, err := apsp.BuildSparse(negGraph{})
	assert.ErrorIs(t, err, apsp.ErrNegativeWeight)
}

func TestShortestPathTree(t *testing.T) {
	t.Parallel()
	dist, pred, err := apsp.ShortestPathTree(chain(t), A)
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 1, 2, 3, math.Inf(1)}, dist)
	assert.Equal(t, []int{-1, A, B, C, -1}, pred)
	assert.Panics(t, func() { _, _, _ = apsp.ShortestPathTree(chain(t), 7) })
}
