package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/broadside/internal/animation"
	"chosenoffset.com/broadside/internal/dock"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Expected defaults to validate, got %v", err)
	}

	anchors := cfg.Anchors()
	if len(anchors) != 3 {
		t.Fatalf("Expected 3 anchors, got %d", len(anchors))
	}
	for i, want := range dock.DefaultAnchors() {
		if anchors[i].ID != want.ID || anchors[i].Offset != want.Offset {
			t.Errorf("Anchor %d: expected %v %v, got %v %v", i, want.ID, want.Offset, anchors[i].ID, anchors[i].Offset)
		}
	}

	set := cfg.AnimationSet()
	for _, r := range animation.Roles {
		if set.Clip(r) == "" {
			t.Errorf("Expected a clip for role %s", r)
		}
		if _, ok := cfg.Animation.Durations[set.Clip(r)]; !ok {
			t.Errorf("Expected a duration for clip %s", set.Clip(r))
		}
	}
}

func TestParseMergesOverDefaults(t *testing.T) {
	data := []byte(`
debug: true
dock:
  capture_radius: 1.5
  hold: 750ms
ship:
  speed: 3
  start: [10, 0, -5]
boundary:
  countdown: 5
animation:
  durations:
    Wave: 2.5
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Expected parse to succeed, got %v", err)
	}

	if !cfg.Debug {
		t.Error("Expected debug from file")
	}
	if cfg.Dock.CaptureRadius != 1.5 {
		t.Errorf("Expected capture radius 1.5, got %f", cfg.Dock.CaptureRadius)
	}
	if cfg.Dock.Hold != 750*time.Millisecond {
		t.Errorf("Expected hold 750ms, got %v", cfg.Dock.Hold)
	}
	if cfg.Ship.Start.Mgl() != (mgl64.Vec3{10, 0, -5}) {
		t.Errorf("Expected ship start (10,0,-5), got %v", cfg.Ship.Start)
	}
	if cfg.SteeringSettings().Speed != 3 {
		t.Errorf("Expected ship speed 3, got %f", cfg.Ship.Speed)
	}
	if cfg.BoundarySettings().Countdown != 5 {
		t.Errorf("Expected countdown 5, got %d", cfg.Boundary.Countdown)
	}

	// Untouched values keep their defaults.
	if cfg.Ship.TurnRate != 0.4 {
		t.Errorf("Expected default turn rate, got %f", cfg.Ship.TurnRate)
	}
	if len(cfg.Dock.Anchors) != 3 {
		t.Errorf("Expected default anchors, got %d", len(cfg.Dock.Anchors))
	}
	if cfg.Animation.Durations["Wave"] != 2.5 || cfg.Animation.Durations["Idle"] != 2.0 {
		t.Errorf("Expected merged durations, got %v", cfg.Animation.Durations)
	}
}

func TestLoadFileMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Expected defaults, got %v", err)
	}
	if cfg.Boundary.Limit != 50 {
		t.Errorf("Expected default limit, got %f", cfg.Boundary.Limit)
	}
}

func TestLoadFileBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("ship: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("Expected a parse error")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvDebug:    "true",
		EnvLogLevel: "debug",
		EnvTPS:      "30",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatalf("Expected env to apply, got %v", err)
	}
	if !cfg.Debug || cfg.LogLevel != "debug" || cfg.Window.TPS != 30 {
		t.Errorf("Expected overrides, got debug=%v level=%s tps=%d", cfg.Debug, cfg.LogLevel, cfg.Window.TPS)
	}
	if cfg.Physics.Timestep != 1.0/30 {
		t.Errorf("Expected timestep 1/30 to follow the TPS override, got %f", cfg.Physics.Timestep)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected the overridden config to validate, got %v", err)
	}

	env[EnvTPS] = "fast"
	if err := DefaultConfig().ApplyEnv(lookup); err == nil {
		t.Error("Expected error for a non-numeric TPS")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero radius", func(c *Config) { c.Dock.CaptureRadius = 0 }},
		{"negative timestep", func(c *Config) { c.Physics.Timestep = -1 }},
		{"zero steps", func(c *Config) { c.Cannon.Steps = 0 }},
		{"timestep not 1/tps", func(c *Config) { c.Window.TPS = 30 }},
		{"zero countdown", func(c *Config) { c.Boundary.Countdown = 0 }},
		{"unknown anchor", func(c *Config) { c.Dock.Anchors[0].ID = "bow" }},
		{"duplicate anchor", func(c *Config) { c.Dock.Anchors[1].ID = "right" }},
		{"unknown role", func(c *Config) { c.Animation.Clips["dance"] = "Dance" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	const key = "BROADSIDE_TEST_FROM_DOTENV"
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(key+"=yes\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv(key) })

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("Expected env file to load, got %v", err)
	}
	if os.Getenv(key) != "yes" {
		t.Errorf("Expected %s=yes, got %q", key, os.Getenv(key))
	}

	if err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("Expected a missing env file to be ignored, got %v", err)
	}
}

func TestLoadUsesEnvPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broadside.yaml")
	if err := os.WriteFile(path, []byte("boundary:\n  limit: 80\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvConfig, path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Expected load to succeed, got %v", err)
	}
	if cfg.Boundary.Limit != 80 {
		t.Errorf("Expected limit 80 from $%s, got %f", EnvConfig, cfg.Boundary.Limit)
	}
}
