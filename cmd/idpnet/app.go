package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/katalvlaran/idpnet/config"
	"github.com/katalvlaran/idpnet/scenario"
	"github.com/katalvlaran/idpnet/sim"
	"github.com/katalvlaran/idpnet/store"
)

// app carries state shared by every subcommand.
type app struct {
	cfgPath *string
	envPath *string

	cfg *config.Config
	log *slog.Logger
}

// setup loads the environment and configuration and installs the logger.
func (a *app) setup() error {
	if err := config.LoadEnv(*a.envPath); err != nil {
		return err
	}
	cfg, err := config.Load(*a.cfgPath)
	if err != nil {
		return err
	}
	lvl, err := cfg.Log.SlogLevel()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(a.log)

	return nil
}

// world loads the configured snapshot or generates a fresh scenario.
func (a *app) world() (*scenario.World, error) {
	if path := a.cfg.Scenario.Snapshot; path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening snapshot: %w", err)
		}
		defer f.Close()
		w, err := scenario.Load(f)
		if err != nil {
			return nil, err
		}
		a.log.Info("scenario loaded", "path", path, "nodes", len(w.Nodes))
		return w, nil
	}
	w, err := scenario.Generate(a.cfg.ScenarioOptions()...)
	if err != nil {
		return nil, err
	}
	a.log.Info("scenario generated", "seed", a.cfg.Seed, "nodes", len(w.Nodes), "roads", w.Roads.EdgeCount())

	return w, nil
}

// simulation builds a Simulation over the configured world, attaching the
// table cache when one is configured. The returned close func releases it.
func (a *app) simulation() (*sim.Simulation, func(), error) {
	w, err := a.world()
	if err != nil {
		return nil, nil, err
	}
	opts := []sim.Option{sim.WithLogger(a.log), sim.WithSeed(a.cfg.Seed), sim.WithDistance(a.cfg.DistanceFunc())}
	closer := func() {}
	if path := a.cfg.Cache.Path; path != "" {
		st, err := store.Open(path, a.log)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, sim.WithCache(st))
		closer = func() {
			if err := st.Close(); err != nil {
				a.log.Warn("closing table cache", "error", err)
			}
		}
	}
	s, err := sim.New(w.Nodes, w.Roads, w.TIN, a.cfg.Params(), opts...)
	if err != nil {
		closer()
		return nil, nil, err
	}

	return s, closer, nil
}
