package bfs_test

import (
	"errors"
	"testing"

	"github.com/katalvlaran/idpnet/bfs"
	"github.com/katalvlaran/idpnet/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoIslands: 0–1–2–3 path and 4–5 pair; 6 isolated.
func twoIslands(t *testing.T) *core.Graph {
	t.Helper()
	g := core.NewGraph(7)
	require.NoError(t, g.AddEdge(0, 1, 1))
	require.NoError(t, g.AddEdge(1, 2, 1))
	require.NoError(t, g.AddEdge(2, 3, 1))
	require.NoError(t, g.AddEdge(4, 5, 1))

	return g
}

func TestBFS_OrderDepth(t *testing.T) {
	t.Parallel()
	res, err := bfs.BFS(twoIslands(t), 1)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 0, 2, 3}, res.Order)
	assert.Equal(t, []int{1, 0, 1, 2, -1, -1, -1}, res.Depth)
}

func TestBFS_Directed(t *testing.T) {
	t.Parallel()
	g := core.NewGraph(3, core.WithDirected(true))
	require.NoError(t, g.AddEdge(0, 1, 1))
	require.NoError(t, g.AddEdge(2, 1, 1))

	res, err := bfs.BFS(g, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, res.Order)

	res, err = bfs.BFS(g, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, res.Order)
}

func TestBFS_Errors(t *testing.T) {
	t.Parallel()
	_, err := bfs.BFS(nil, 0)
	assert.ErrorIs(t, err, bfs.ErrGraphNil)

	_, err = bfs.BFS(twoIslands(t), 9)
	assert.ErrorIs(t, err, bfs.ErrStartOutOfRange)

	stop := errors.New("stop")
	var seen []int
	_, err = bfs.BFS(twoIslands(t), 0, bfs.WithOnVisit(func(i, _ int) error {
		seen = append(seen, i)
		if i == 2 {
			return stop
		}
		return nil
	}))
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, []int{0, 1, 2}, seen)
}

func TestComponents(t *testing.T) {
	t.Parallel()
	assert.Equal(t, [][]int{{0, 1, 2, 3}, {4, 5}, {6}}, bfs.Components(twoIslands(t)))

	// Direction is ignored, including edges into a lower-indexed seed.
	g := core.NewGraph(4, core.WithDirected(true))
	require.NoError(t, g.AddEdge(2, 0, 1))
	require.NoError(t, g.AddEdge(3, 2, 1))
	assert.Equal(t, [][]int{{0, 2, 3}, {1}}, bfs.Components(g))

	assert.Empty(t, bfs.Components(core.NewGraph(0)))
}

func TestComponents_SortedMembers(t *testing.T) {
	t.Parallel()
	// BFS from 0 visits 0, 5, 3, 1 in that order; the component is sorted.
	g := core.NewGraph(6)
	require.NoError(t, g.AddEdge(0, 5, 1))
	require.NoError(t, g.AddEdge(5, 3, 1))
	require.NoError(t, g.AddEdge(3, 1, 1))
	assert.Equal(t, [][]int{{0, 1, 3, 5}, {2}, {4}}, bfs.Components(g))
}
