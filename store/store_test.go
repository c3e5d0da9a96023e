package store_test

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/idpnet/apsp"
	"github.com/katalvlaran/idpnet/core"
	"github.com/katalvlaran/idpnet/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "cache.db"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func square(t *testing.T) (*core.Graph, *apsp.Table) {
	t.Helper()
	g := core.NewGraph(4)
	require.NoError(t, g.AddEdge(0, 1, 1))
	require.NoError(t, g.AddEdge(1, 2, 1))
	require.NoError(t, g.AddEdge(2, 3, 1))
	require.NoError(t, g.AddEdge(3, 0, 10))
	tab, err := apsp.Build(g)
	require.NoError(t, err)

	return g, tab
}

func TestStore_PutGet(t *testing.T) {
	t.Parallel()
	s := openStore(t)
	g, tab := square(t)
	key := apsp.Fingerprint(g)

	require.NoError(t, s.Put(key, tab))
	got, err := s.Get(key, 4)
	require.NoError(t, err)
	assert.True(t, tab.Equal(got))

	_, err = s.Get(key, 5)
	assert.ErrorIs(t, err, apsp.ErrSizeMismatch)
	assert.ErrorIs(t, err, apsp.ErrFormat)

	_, err = s.Get("nope", 4)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_UpsertListDelete(t *testing.T) {
	t.Parallel()
	s := openStore(t)
	_, tab := square(t)

	require.NoError(t, s.Put("k1", tab))
	require.NoError(t, s.Put("k1", tab))
	require.NoError(t, s.Put("k2", tab))

	list, err := s.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, e := range list {
		assert.Equal(t, 4, e.Nodes)
		assert.Equal(t, apsp.EncodedSize(4), e.Bytes)
		assert.Len(t, e.ID, 36)
		assert.False(t, e.Created().IsZero())
	}

	total, err := s.TotalBytes()
	require.NoError(t, err)
	assert.Equal(t, 2*apsp.EncodedSize(4), total)

	require.NoError(t, s.Delete("k1"))
	assert.ErrorIs(t, s.Delete("k1"), store.ErrNotFound)
	list, err = s.List()
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestStore_Reopen(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "cache.db")
	_, tab := square(t)

	s, err := store.Open(path, nil)
	require.NoError(t, err)
	require.NoError(t, s.Put("k", tab))
	require.NoError(t, s.Close())

	s, err = store.Open(path, nil)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Get("k", 4)
	require.NoError(t, err)
	assert.True(t, tab.Equal(got))
}

func TestStore_EmptyTotal(t *testing.T) {
	t.Parallel()
	total, err := openStore(t).TotalBytes()
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestShortKey(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "0123456789ab", store.ShortKey("0123456789abcdef"))
	assert.Equal(t, "abc", store.ShortKey("abc"))
}
