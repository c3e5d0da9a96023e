// Package config loads the idpnet binary configuration from YAML, a .env
// file and IDPNET_* environment variables, in that order of precedence
// (environment wins).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/idpnet/mst"
	"github.com/katalvlaran/idpnet/scenario"
	"github.com/katalvlaran/idpnet/sim"
	"github.com/katalvlaran/idpnet/spatial"
)

// Environment variables consulted by Load.
const (
	EnvCache    = "IDPNET_CACHE"
	EnvAddr     = "IDPNET_ADDR"
	EnvLogLevel = "IDPNET_LOG_LEVEL"
	EnvSeed     = "IDPNET_SEED"
)

// Config is the full binary configuration. Distance is planar or
// geodesic; with geodesic, centroids are (lon, lat) degrees and lengths are
// kilometres.
type Config struct {
	Simulation sim.Params     `yaml:"simulation"`
	Scenario   ScenarioConfig `yaml:"scenario"`
	Cache      CacheConfig    `yaml:"cache"`
	Server     ServerConfig   `yaml:"server"`
	Log        LogConfig      `yaml:"log"`
	Ticks      int            `yaml:"ticks"`
	Seed       int64          `yaml:"seed"`
	Distance   string         `yaml:"distance"`
}

// ScenarioConfig sizes the generated world. Snapshot, when set, names a
// gob file to load instead of generating.
type ScenarioConfig struct {
	Cities        int        `yaml:"cities"`
	Junctions     int        `yaml:"junctions"`
	Extent        float64    `yaml:"extent"`
	Neighbours    int        `yaml:"neighbours"`
	CapacityRatio float64    `yaml:"capacity_ratio"`
	Skeleton      mst.Method `yaml:"skeleton"`
	Snapshot      string     `yaml:"snapshot"`
}

// CacheConfig locates the path-table cache. An empty Path disables it.
type CacheConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig holds the HTTP listen address.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LogConfig holds the slog level name (debug, info, warn, error).
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	so := scenario.DefaultOptions()
	return Config{
		Simulation: sim.DefaultParams(),
		Scenario: ScenarioConfig{
			Cities:        so.Cities,
			Junctions:     so.Junctions,
			Extent:        so.Extent,
			Neighbours:    so.Neighbours,
			CapacityRatio: so.CapacityRatio,
			Skeleton:      so.Skeleton,
		},
		Server:   ServerConfig{Addr: ":8080"},
		Log:      LogConfig{Level: "info"},
		Ticks:    10,
		Seed:     1,
		Distance: spatial.NamePlanar,
	}
}

// LoadEnv reads .env style files into the process environment. Missing
// files are ignored.
func LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading env file: %w", err)
	}

	return nil
}

// Load reads path on top of Default, applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config YAML: %w", err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvCache); ok {
		c.Cache.Path = v
	}
	if v, ok := lookup(EnvAddr); ok {
		c.Server.Addr = v
	}
	if v, ok := lookup(EnvLogLevel); ok {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvSeed); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", sim.ErrConfiguration, EnvSeed, v, err)
		}
		c.Seed = seed
	}

	return nil
}

// Validate reports the first invalid field. Every error satisfies
// errors.Is(err, sim.ErrConfiguration).
func (c *Config) Validate() error {
	if err := c.Simulation.Validate(); err != nil {
		return err
	}
	s := c.Scenario
	switch {
	case c.Ticks < 0:
		return fmt.Errorf("%w: ticks must be >= 0, got %d", sim.ErrConfiguration, c.Ticks)
	case s.Cities < 1:
		return fmt.Errorf("%w: scenario.cities must be >= 1, got %d", sim.ErrConfiguration, s.Cities)
	case s.Junctions < 0:
		return fmt.Errorf("%w: scenario.junctions must be >= 0, got %d", sim.ErrConfiguration, s.Junctions)
	case !(s.Extent > 0):
		return fmt.Errorf("%w: scenario.extent must be > 0, got %g", sim.ErrConfiguration, s.Extent)
	case s.Neighbours < 0:
		return fmt.Errorf("%w: scenario.neighbours must be >= 0, got %d", sim.ErrConfiguration, s.Neighbours)
	case !(s.CapacityRatio > 0):
		return fmt.Errorf("%w: scenario.capacity_ratio must be > 0, got %g", sim.ErrConfiguration, s.CapacityRatio)
	case !s.Skeleton.Valid():
		return fmt.Errorf("%w: scenario.skeleton must be kruskal or prim, got %q", sim.ErrConfiguration, s.Skeleton)
	}
	if _, err := spatial.ByName(c.Distance); err != nil {
		return fmt.Errorf("%w: distance: %w", sim.ErrConfiguration, err)
	}
	if c.Distance == spatial.NameGeodesic && s.Extent > 90 {
		return fmt.Errorf("%w: scenario.extent %g exceeds 90 degrees with geodesic distance", sim.ErrConfiguration, s.Extent)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}

	return nil
}

// Params returns the simulation parameters.
func (c *Config) Params() sim.Params { return c.Simulation }

// DistanceFunc returns the configured centroid distance.
// Call Validate first: an unknown name yields Planar.
func (c *Config) DistanceFunc() spatial.Func {
	f, err := spatial.ByName(c.Distance)
	if err != nil {
		return spatial.Planar
	}

	return f
}

// ScenarioOptions translates the scenario block into generator options.
// Call Validate first: the options panic on out-of-range values.
func (c *Config) ScenarioOptions() []scenario.Option {
	s := c.Scenario
	return []scenario.Option{
		scenario.WithSeed(c.Seed),
		scenario.WithCities(s.Cities),
		scenario.WithJunctions(s.Junctions),
		scenario.WithExtent(s.Extent),
		scenario.WithNeighbours(s.Neighbours),
		scenario.WithCapacityRatio(s.CapacityRatio),
		scenario.WithSkeleton(s.Skeleton),
		scenario.WithDistance(c.DistanceFunc()),
	}
}

// SlogLevel parses Level. An empty level means info.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if l.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("%w: log.level: %w", sim.ErrConfiguration, err)
	}

	return lvl, nil
}
