// Package server exposes a running simulation over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/katalvlaran/idpnet/interaction"
	"github.com/katalvlaran/idpnet/selector"
	"github.com/katalvlaran/idpnet/sim"
	"github.com/katalvlaran/idpnet/spatial"
)

// Server routes HTTP requests to one Simulation.
type Server struct {
	sim    *sim.Simulation
	log    *slog.Logger
	router *gin.Engine
}

// NodeView is the JSON form of a catalogue entry.
type NodeView struct {
	Index      int        `json:"index"`
	Name       string     `json:"name"`
	Kind       string     `json:"kind"`
	Centroid   [2]float64 `json:"centroid"`
	Population float64    `json:"population"`
	Capacity   float64    `json:"capacity"`
	Refugees   float64    `json:"refugees"`
	Spare      float64    `json:"spare"`
}

// RouteView answers /distance and /path. Distance is null when the
// destination is unreachable.
type RouteView struct {
	From      int      `json:"from"`
	To        int      `json:"to"`
	Reachable bool     `json:"reachable"`
	Distance  *float64 `json:"distance"`
	Path      []int    `json:"path,omitempty"`
}

// SelectView answers /select/:city.
type SelectView struct {
	City        int  `json:"city"`
	Found       bool `json:"found"`
	Destination *int `json:"destination"`
}

// New builds the router. A nil logger means slog.Default().
func New(s *sim.Simulation, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	srv := &Server{sim: s, log: logger, router: gin.New()}

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	srv.router.Use(gin.Recovery(), srv.logRequests, cors.New(config))

	r := srv.router
	r.GET("/health", srv.health)
	r.GET("/nodes", srv.nodes)
	r.GET("/distance", srv.distance)
	r.GET("/path", srv.path)
	r.GET("/select/:city", srv.selectDestination)
	r.POST("/tick", srv.tick)
	r.PUT("/params", srv.setParams)

	return srv
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	hs := &http.Server{Addr: addr, Handler: s.router, ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()
	s.log.Info("server listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hs.Shutdown(shutdownCtx); err != nil {
			return err
		}
		s.log.Info("server stopped")
		return nil
	}
}

func (s *Server) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.log.Debug("request",
		"method", c.Request.Method, "path", c.FullPath(), "status", c.Writer.Status(), "elapsed", time.Since(start))
}

// BoundView is the bounding box of all centroids.
type BoundView struct {
	Min [2]float64 `json:"min"`
	Max [2]float64 `json:"max"`
}

func (s *Server) health(c *gin.Context) {
	b := spatial.Bound(s.sim.Nodes())
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"tick":     s.sim.Tick(),
		"nodes":    s.sim.Order(),
		"rebuilds": s.sim.Rebuilds(),
		"dirty":    s.sim.Dirty(),
		"bounds":   BoundView{Min: [2]float64{b.Min[0], b.Min[1]}, Max: [2]float64{b.Max[0], b.Max[1]}},
	})
}

func (s *Server) nodes(c *gin.Context) {
	nodes := s.sim.Nodes()
	out := make([]NodeView, len(nodes))
	for i, n := range nodes {
		out[i] = NodeView{
			Index:      n.Index,
			Name:       n.Name,
			Kind:       n.Kind.String(),
			Centroid:   [2]float64{n.Centroid[0], n.Centroid[1]},
			Population: n.Population,
			Capacity:   n.Capacity,
			Refugees:   n.Refugees,
			Spare:      n.Spare(),
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) distance(c *gin.Context) {
	from, to, ok := s.pair(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.route(from, to, false))
}

func (s *Server) path(c *gin.Context) {
	from, to, ok := s.pair(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.route(from, to, true))
}

func (s *Server) route(from, to int, withPath bool) RouteView {
	rv := RouteView{From: from, To: to}
	d := s.sim.PathLength(from, to)
	if math.IsInf(d, 1) {
		return rv
	}
	rv.Reachable = true
	rv.Distance = &d
	if withPath {
		mid, _ := s.sim.Path(from, to)
		rv.Path = append(append([]int{from}, mid...), to)
		if from == to {
			rv.Path = []int{from}
		}
	}

	return rv
}

func (s *Server) selectDestination(c *gin.Context) {
	city, err := s.index(c.Param("city"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dest, ok := s.sim.Select(city)
	sv := SelectView{City: city, Found: ok}
	if ok {
		sv.Destination = &dest
	}
	c.JSON(http.StatusOK, sv)
}

func (s *Server) tick(c *gin.Context) {
	rep, err := s.sim.Advance(c.Request.Context())
	if err != nil {
		s.log.Error("tick failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rep)
}

// setParams applies a partial update: omitted fields keep their values.
func (s *Server) setParams(c *gin.Context) {
	p := s.sim.Params()
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	if err := s.sim.SetParams(p); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, sim.ErrConfiguration),
		errors.Is(err, selector.ErrUnknownStrategy),
		errors.Is(err, selector.ErrUnknownWorking),
		errors.Is(err, interaction.ErrUnknownMethod):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

func (s *Server) pair(c *gin.Context) (int, int, bool) {
	from, err := s.index(c.Query("from"))
	if err == nil {
		var to int
		if to, err = s.index(c.Query("to")); err == nil {
			return from, to, true
		}
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	return 0, 0, false
}

func (s *Server) index(raw string) (int, error) {
	i, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("node index %q: not an integer", raw)
	}
	if i < 0 || i >= s.sim.Order() {
		return 0, fmt.Errorf("node index %d: out of range [0,%d)", i, s.sim.Order())
	}

	return i, nil
}
