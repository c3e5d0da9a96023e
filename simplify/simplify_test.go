package simplify_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/idpnet/apsp"
	"github.com/katalvlaran/idpnet/core"
	"github.com/katalvlaran/idpnet/simplify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_BadExponent(t *testing.T) {
	t.Parallel()
	for _, e := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := simplify.New(e)
		assert.ErrorIs(t, err, simplify.ErrBadExponent, "e=%g", e)
	}
	assert.Panics(t, func() { _, _ = simplify.New(2, simplify.WithKeep(nil)) })
	assert.Panics(t, func() { _, _ = simplify.New(2, simplify.WithLogger(nil)) })
}

func TestSimplify_IsolatedEdgeRoundTrip(t *testing.T) {
	t.Parallel()
	for _, e := range []float64{0.5, 1, 1.7, 3} {
		g := core.NewGraph(2)
		require.NoError(t, g.AddEdge(0, 1, 42.5))

		s, err := simplify.New(e)
		require.NoError(t, err)
		net, err := s.Simplify(g)
		require.NoError(t, err)

		w, ok := net.Graph.Weight(0, 1)
		require.True(t, ok)
		assert.InDelta(t, 42.5, w, 1e-9, "e=%g", e)
		assert.InDelta(t, 42.5, net.Table.PathLength(0, 1), 1e-9)
	}
}

func TestRescale_StashesInfoKeepsWeight(t *testing.T) {
	t.Parallel()
	g := core.NewGraph(2)
	require.NoError(t, g.AddEdge(0, 1, 3))
	s, err := simplify.New(2)
	require.NoError(t, err)

	out, err := s.Rescale(g)
	require.NoError(t, err)

	for _, pair := range [][2]int{{0, 1}, {1, 0}} {
		e, ok := g.Edge(pair[0], pair[1])
		require.True(t, ok)
		assert.Equal(t, 3.0, e.Weight)
		assert.Equal(t, 9.0, e.Info)
	}
	w, _ := out.Weight(0, 1)
	assert.Equal(t, 9.0, w)
}

// Cities 0 and 3 are linked by a chain of short roads through junctions
// 1 and 2, and by one long direct road.
func junctionRoads(t *testing.T) (*core.Graph, func(int) bool) {
	t.Helper()
	g := core.NewGraph(4)
	require.NoError(t, g.AddEdge(0, 1, 4))
	require.NoError(t, g.AddEdge(1, 2, 4))
	require.NoError(t, g.AddEdge(2, 3, 4))
	require.NoError(t, g.AddEdge(0, 3, 10))

	return g, func(i int) bool { return i == 0 || i == 3 }
}

func TestSimplify_PenalisesLongEdges(t *testing.T) {
	t.Parallel()
	g, keep := junctionRoads(t)

	// e = 1: direct 10 < 12 via junctions.
	s1, err := simplify.New(1, simplify.WithKeep(keep))
	require.NoError(t, err)
	n1, err := s1.Simplify(g)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, n1.Table.PathLength(0, 3), 1e-9)

	// e = 2: 3·16 = 48 < 100, the short hops win; unscaled to sqrt(48).
	s2, err := simplify.New(2, simplify.WithKeep(keep))
	require.NoError(t, err)
	n2, err := s2.Simplify(g)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(48), n2.Table.PathLength(0, 3), 1e-9)
	assert.Equal(t, 1, n2.Graph.EdgeCount())
	assert.False(t, n2.Graph.HasEdge(0, 1))
}

func TestRescale_ContractionSkipsKeptIntermediates(t *testing.T) {
	t.Parallel()
	// 0 – 1 – 2 in a line, all kept: 0→2 passes kept 1, so no 0–2 edge.
	g := core.NewGraph(3)
	require.NoError(t, g.AddEdge(0, 1, 1))
	require.NoError(t, g.AddEdge(1, 2, 1))

	s, err := simplify.New(1)
	require.NoError(t, err)
	net, err := s.Simplify(g)
	require.NoError(t, err)

	assert.True(t, net.Graph.HasEdge(0, 1))
	assert.True(t, net.Graph.HasEdge(1, 2))
	assert.False(t, net.Graph.HasEdge(0, 2))
	assert.Equal(t, 2.0, net.Table.PathLength(0, 2))
	path, ok := net.Table.Path(0, 2)
	require.True(t, ok)
	assert.Equal(t, []int{1}, path)
}

func TestSimplify_SparseMatchesDense(t *testing.T) {
	t.Parallel()
	g, keep := junctionRoads(t)
	dense, err := simplify.New(1.5, simplify.WithKeep(keep))
	require.NoError(t, err)
	sparse, err := simplify.New(1.5, simplify.WithKeep(keep), simplify.WithSparse())
	require.NoError(t, err)

	a, err := dense.Simplify(g)
	require.NoError(t, err)
	b, err := sparse.Simplify(g)
	require.NoError(t, err)
	assert.InDelta(t, a.Table.PathLength(0, 3), b.Table.PathLength(0, 3), 1e-12)
}

func TestUnscale_Errors(t *testing.T) {
	t.Parallel()
	assert.ErrorIs(t, simplify.Unscale(nil, 2), simplify.ErrNilGraph)
	assert.ErrorIs(t, simplify.Unscale(core.NewGraph(1), 0), simplify.ErrBadExponent)

	s, err := simplify.New(2)
	require.NoError(t, err)
	_, err = s.Rescale(nil)
	assert.ErrorIs(t, err, simplify.ErrNilGraph)
}

func TestSimplify_DisconnectedStaysUnreachable(t *testing.T) {
	t.Parallel()
	g := core.NewGraph(4)
	require.NoError(t, g.AddEdge(0, 1, 2))
	require.NoError(t, g.AddEdge(2, 3, 2))

	s, err := simplify.New(2)
	require.NoError(t, err)
	net, err := s.Simplify(g)
	require.NoError(t, err)
	assert.False(t, net.Table.Reachable(0, 3))
	assert.Equal(t, 2, net.Graph.EdgeCount())
}

func TestSimplify_CustomBuilder(t *testing.T) {
	t.Parallel()
	g, keep := junctionRoads(t)
	calls := 0
	s, err := simplify.New(2, simplify.WithKeep(keep), simplify.WithBuilder(func(g *core.Graph) (*apsp.Table, error) {
		calls++
		return apsp.BuildSparse(g)
	}))
	require.NoError(t, err)

	net, err := s.Simplify(g)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.InDelta(t, math.Sqrt(48), net.Table.PathLength(0, 3), 1e-9)
}
