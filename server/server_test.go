package server_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/katalvlaran/idpnet/core"
	"github.com/katalvlaran/idpnet/selector"
	"github.com/katalvlaran/idpnet/server"
	"github.com/katalvlaran/idpnet/sim"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func init() { gin.SetMode(gin.TestMode) }

// fixture: 0 ─1─ 3 ─1─ 1 ─1─ 2, junction 3, city 4 off the road network.
func fixture(t *testing.T) *sim.Simulation {
	t.Helper()
	nodes := core.Nodes{
		{Index: 0, Name: "a", Kind: core.KindCity, Centroid: orb.Point{0, 0}, Population: 1000, Capacity: 10, Refugees: 100},
		{Index: 1, Name: "b", Kind: core.KindCity, Centroid: orb.Point{1, 0}, Population: 500, Capacity: 50},
		{Index: 2, Name: "c", Kind: core.KindCity, Centroid: orb.Point{2, 0}, Population: 500, Capacity: 50},
		{Index: 3, Name: "j", Kind: core.KindJunction, Centroid: orb.Point{0.5, 0.5}},
		{Index: 4, Name: "d", Kind: core.KindCity, Centroid: orb.Point{9, 9}, Population: 50, Capacity: 5},
	}
	roads := core.NewGraph(5)
	require.NoError(t, roads.AddEdge(0, 3, 1))
	require.NoError(t, roads.AddEdge(3, 1, 1))
	require.NoError(t, roads.AddEdge(1, 2, 1))

	p := sim.DefaultParams()
	p.Strategy = selector.SpareCapacity
	p.Working = selector.WorkingSimplified
	p.ThresholdLinks = 1
	s, err := sim.New(nodes, roads, nil, p, sim.WithLogger(quiet))
	require.NoError(t, err)

	return s
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())

	return v
}

func TestHealthAndNodes(t *testing.T) {
	t.Parallel()
	h := server.New(fixture(t), quiet).Handler()

	rec := do(t, h, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	health := decode[map[string]any](t, rec)
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, 5.0, health["nodes"])
	assert.Equal(t, map[string]any{"min": []any{0.0, 0.0}, "max": []any{9.0, 9.0}}, health["bounds"])

	rec = do(t, h, http.MethodGet, "/nodes", "")
	require.Equal(t, http.StatusOK, rec.Code)
	nodes := decode[[]server.NodeView](t, rec)
	require.Len(t, nodes, 5)
	assert.Equal(t, "junction", nodes[3].Kind)
	assert.Equal(t, -90.0, nodes[0].Spare)
	assert.Equal(t, [2]float64{9, 9}, nodes[4].Centroid)
}

func TestDistanceAndPath(t *testing.T) {
	t.Parallel()
	h := server.New(fixture(t), quiet).Handler()

	rec := do(t, h, http.MethodGet, "/distance?from=0&to=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rv := decode[server.RouteView](t, rec)
	assert.True(t, rv.Reachable)
	require.NotNil(t, rv.Distance)
	assert.Equal(t, 2.0, *rv.Distance)
	assert.Empty(t, rv.Path)

	rv = decode[server.RouteView](t, do(t, h, http.MethodGet, "/path?from=0&to=2", ""))
	assert.True(t, rv.Reachable)
	assert.Equal(t, []int{0, 1, 2}, rv.Path)
	assert.Equal(t, 3.0, *rv.Distance)

	rv = decode[server.RouteView](t, do(t, h, http.MethodGet, "/path?from=2&to=2", ""))
	assert.Equal(t, []int{2}, rv.Path)
	assert.Equal(t, 0.0, *rv.Distance)

	rv = decode[server.RouteView](t, do(t, h, http.MethodGet, "/path?from=0&to=4", ""))
	assert.False(t, rv.Reachable)
	assert.Nil(t, rv.Distance)
	assert.Empty(t, rv.Path)
	assert.Contains(t, do(t, h, http.MethodGet, "/path?from=0&to=4", "").Body.String(), `"reachable":false`)
}

func TestBadIndices(t *testing.T) {
	t.Parallel()
	h := server.New(fixture(t), quiet).Handler()

	for _, target := range []string{
		"/distance?from=x&to=1",
		"/distance?from=0",
		"/path?from=0&to=5",
		"/path?from=-1&to=0",
		"/select/7",
		"/select/abc",
	} {
		rec := do(t, h, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Contains(t, rec.Body.String(), "error", target)
	}
}

func TestSelect(t *testing.T) {
	t.Parallel()
	s := fixture(t)
	h := server.New(s, quiet).Handler()

	sv := decode[server.SelectView](t, do(t, h, http.MethodGet, "/select/0", ""))
	assert.Equal(t, 0, sv.City)
	require.True(t, sv.Found)
	require.NotNil(t, sv.Destination)
	assert.NotEqual(t, 0, *sv.Destination)

	// Selecting does not move anyone.
	assert.Equal(t, 100.0, s.Nodes()[0].Refugees)
}

func TestTick(t *testing.T) {
	t.Parallel()
	s := fixture(t)
	h := server.New(s, quiet).Handler()

	rec := do(t, h, http.MethodPost, "/tick", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rep := decode[sim.TickReport](t, rec)
	assert.Equal(t, uint64(1), rep.Tick)
	require.NotEmpty(t, rep.Moves)
	assert.Equal(t, 0, rep.Moves[0].From)

	rep = decode[sim.TickReport](t, do(t, h, http.MethodPost, "/tick", ""))
	assert.Equal(t, uint64(2), rep.Tick)
	assert.Equal(t, uint64(2), s.Tick())
	assert.Equal(t, 100.0, s.Nodes().TotalRefugees())
}

func TestTick_InterleavesWithEngine(t *testing.T) {
	t.Parallel()
	s := fixture(t)
	h := server.New(s, quiet).Handler()

	require.NoError(t, sim.NewEngine(s, quiet).Run(context.Background(), 3))
	rep := decode[sim.TickReport](t, do(t, h, http.MethodPost, "/tick", ""))
	assert.Equal(t, uint64(4), rep.Tick)

	e := sim.NewEngine(s, quiet)
	require.NoError(t, e.Run(context.Background(), 2))
	assert.Equal(t, uint64(6), e.Tick)
	assert.Equal(t, uint64(6), s.Tick())
}

func TestSetParams(t *testing.T) {
	t.Parallel()
	s := fixture(t)
	h := server.New(s, quiet).Handler()

	rec := do(t, h, http.MethodPut, "/params", `{"destination_selection_strategy":"nearest-viable-city"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, s.Dirty())
	assert.Equal(t, selector.NearestViableCity, s.Params().Strategy)
	assert.Equal(t, selector.WorkingSimplified, s.Params().Working, "omitted fields are kept")

	cases := map[string]struct {
		body string
		code int
	}{
		"threshold out of range": {`{"threshold_links":3}`, http.StatusUnprocessableEntity},
		"unknown strategy":       {`{"destination_selection_strategy":"teleport"}`, http.StatusUnprocessableEntity},
		"unknown working":        {`{"working_network":"tunnels"}`, http.StatusUnprocessableEntity},
		"unknown formation":      {`{"network_formation_method":"magic"}`, http.StatusUnprocessableEntity},
		"malformed":              {`{"threshold_links":`, http.StatusBadRequest},
		"wrong type":             {`{"max_links_per_city":"five"}`, http.StatusBadRequest},
	}
	for name, tc := range cases {
		rec := do(t, h, http.MethodPut, "/params", tc.body)
		assert.Equal(t, tc.code, rec.Code, name)
	}
	assert.Equal(t, selector.NearestViableCity, s.Params().Strategy, "rejected updates leave params untouched")
}

func TestCORS(t *testing.T) {
	t.Parallel()
	h := server.New(fixture(t), quiet).Handler()

	req := httptest.NewRequest(http.MethodOptions, "/params", nil)
	req.Header.Set("Origin", "http://client.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
