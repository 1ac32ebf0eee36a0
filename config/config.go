// Package config loads engine settings from a TOML file: simulation and
// force parameters plus the render surface. Missing fields keep their
// defaults; out-of-range values are rejected before any simulation starts.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/TFMV/forcegraph/models"
	"github.com/TFMV/forcegraph/physics"
)

// RenderConfig selects the output backend and surface size.
type RenderConfig struct {
	Kind   string  `toml:"kind"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// Config is the full file shape.
type Config struct {
	Simulation physics.Options `toml:"simulation"`
	Render     RenderConfig    `toml:"render"`
	Seed       int64           `toml:"seed"`
}

// Default returns the stock configuration: default physics, SVG at 800x600.
func Default() Config {
	return Config{
		Simulation: physics.DefaultOptions(),
		Render:     RenderConfig{Kind: "svg", Width: 800, Height: 600},
	}
}

// Load reads path and merges it over the defaults. A missing file is not an
// error; a malformed or out-of-range file is.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects parameter values the engine cannot run with.
func (c Config) Validate() error {
	s := c.Simulation
	if s.AlphaMin <= 0 || s.AlphaMin >= 1 {
		return models.NewError(models.ErrCodeInvalidValue, "alpha_min %g must be in (0, 1)", s.AlphaMin)
	}
	if s.AlphaDecay <= 0 || s.AlphaDecay >= 1 {
		return models.NewError(models.ErrCodeInvalidValue, "alpha_decay %g must be in (0, 1)", s.AlphaDecay)
	}
	if s.VelocityDecay <= 0 || s.VelocityDecay > 1 {
		return models.NewError(models.ErrCodeInvalidValue, "velocity_decay %g must be in (0, 1]", s.VelocityDecay)
	}
	if s.Repulsion.Theta < 0 || s.Repulsion.Theta > 1 {
		return models.NewError(models.ErrCodeInvalidValue, "repulsion theta %g must be in [0, 1]", s.Repulsion.Theta)
	}
	if s.Repulsion.DistanceMin <= 0 {
		return models.NewError(models.ErrCodeInvalidValue, "repulsion distance_min must be positive")
	}
	if s.Repulsion.DistanceMax < 0 {
		return models.NewError(models.ErrCodeInvalidValue, "repulsion distance_max must be zero or positive")
	}
	if s.Collision.Radius <= 0 {
		return models.NewError(models.ErrCodeInvalidValue, "collision radius must be positive")
	}
	if s.Collision.Iterations < 1 || s.Attraction.Iterations < 1 {
		return models.NewError(models.ErrCodeInvalidValue, "iterations must be at least 1")
	}
	switch c.Render.Kind {
	case "svg", "ascii":
	default:
		return models.NewError(models.ErrCodeInvalidValue, "unknown renderer kind %q", c.Render.Kind)
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return models.NewError(models.ErrCodeInvalidValue, "render dimensions must be positive")
	}
	return nil
}
