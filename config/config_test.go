package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/TFMV/forcegraph/models"
	"github.com/TFMV/forcegraph/physics"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "forcegraph.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Render.Kind != "svg" || cfg.Render.Width != 800 || cfg.Render.Height != 600 {
		t.Errorf("render defaults = %+v", cfg.Render)
	}
	if cfg.Simulation.AlphaDecay != physics.DefaultAlphaDecay {
		t.Errorf("alpha_decay = %v, want %v", cfg.Simulation.AlphaDecay, physics.DefaultAlphaDecay)
	}
	if !cfg.Simulation.Repulsion.Enabled || cfg.Simulation.Noise.Enabled {
		t.Error("defaults should enable repulsion and disable noise")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[render]
kind = "ascii"
width = 120
height = 40

[simulation]
alpha_decay = 0.05

[simulation.repulsion]
enabled = true
strength = 1.0
charge = -60
theta = 0.5
distance_min = 1.0
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Render.Kind != "ascii" || cfg.Render.Width != 120 {
		t.Errorf("render = %+v, want ascii 120x40", cfg.Render)
	}
	if cfg.Simulation.AlphaDecay != 0.05 {
		t.Errorf("alpha_decay = %v, want 0.05", cfg.Simulation.AlphaDecay)
	}
	if cfg.Simulation.Repulsion.Charge != -60 || cfg.Simulation.Repulsion.Theta != 0.5 {
		t.Errorf("repulsion = %+v", cfg.Simulation.Repulsion)
	}
	// Sections absent from the file keep their defaults.
	if cfg.Simulation.Collision.Radius != physics.DefaultCollisionRadius {
		t.Errorf("collision radius = %v, want default", cfg.Simulation.Collision.Radius)
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := writeConfig(t, `kind = [unclosed`)
	if _, err := Load(path); err == nil {
		t.Error("Load() should fail on malformed TOML")
	}
}

func TestValidate(t *testing.T) {
	mutate := func(f func(*Config)) Config {
		cfg := Default()
		f(&cfg)
		return cfg
	}

	tests := []struct {
		name string
		cfg  Config
	}{
		{"theta above 1", mutate(func(c *Config) { c.Simulation.Repulsion.Theta = 1.5 })},
		{"negative theta", mutate(func(c *Config) { c.Simulation.Repulsion.Theta = -0.1 })},
		{"alpha_min out of range", mutate(func(c *Config) { c.Simulation.AlphaMin = 2 })},
		{"alpha_decay zero", mutate(func(c *Config) { c.Simulation.AlphaDecay = 0 })},
		{"velocity_decay above 1", mutate(func(c *Config) { c.Simulation.VelocityDecay = 1.5 })},
		{"distance_min zero", mutate(func(c *Config) { c.Simulation.Repulsion.DistanceMin = 0 })},
		{"collision radius zero", mutate(func(c *Config) { c.Simulation.Collision.Radius = 0 })},
		{"zero iterations", mutate(func(c *Config) { c.Simulation.Collision.Iterations = 0 })},
		{"unknown renderer", mutate(func(c *Config) { c.Render.Kind = "webgl" })},
		{"zero width", mutate(func(c *Config) { c.Render.Width = 0 })},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if !models.IsCode(err, models.ErrCodeInvalidValue) {
				t.Errorf("Validate() error = %v, want INVALID_VALUE", err)
			}
		})
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}
