// Package config loads the game configuration. Values come from the built-in
// defaults, then an optional YAML file, then environment overrides.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"chosenoffset.com/broadside/internal/animation"
	"chosenoffset.com/broadside/internal/boundary"
	"chosenoffset.com/broadside/internal/character"
	"chosenoffset.com/broadside/internal/core/spatial"
	"chosenoffset.com/broadside/internal/dock"
	"chosenoffset.com/broadside/internal/input"
	"chosenoffset.com/broadside/internal/steering"
	"chosenoffset.com/broadside/internal/trajectory"
	"chosenoffset.com/broadside/internal/ui/hud"
)

// Environment variables read by Load.
const (
	EnvConfig   = "BROADSIDE_CONFIG"
	EnvDebug    = "BROADSIDE_DEBUG"
	EnvLogLevel = "BROADSIDE_LOG_LEVEL"
	EnvTPS      = "BROADSIDE_TPS"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Vec3 is a YAML-friendly vector written as [x, y, z].
type Vec3 [3]float64

// Mgl converts v to an mgl64 vector.
func (v Vec3) Mgl() mgl64.Vec3 { return mgl64.Vec3(v) }

// Config holds every tunable of the game
type Config struct {
	Debug    bool   `yaml:"debug"`
	LogLevel string `yaml:"log_level"`

	// Window and loop
	Window WindowConfig `yaml:"window"`

	// World simulation
	Physics PhysicsConfig `yaml:"physics"`

	// Docking points and trigger
	Dock DockConfig `yaml:"dock"`

	// Ship motion
	Ship ShipConfig `yaml:"ship"`

	// Play area
	Boundary BoundaryConfig `yaml:"boundary"`

	// Cannon arc preview
	Cannon CannonConfig `yaml:"cannon"`

	// Player character
	Character CharacterConfig `yaml:"character"`

	// Animation clips
	Animation AnimationConfig `yaml:"animation"`

	// Heads-up display
	HUD hud.HUDConfig `yaml:"hud"`
}

// WindowConfig defines the window and update rate
type WindowConfig struct {
	Title  string  `yaml:"title"`
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	TPS    int     `yaml:"tps"`   // Updates per second
	Scale  float64 `yaml:"scale"` // Pixels per world unit
}

// PhysicsConfig defines the world integration parameters
type PhysicsConfig struct {
	Gravity  Vec3    `yaml:"gravity"`
	Timestep float64 `yaml:"timestep"` // Seconds per step
}

// AnchorConfig defines one docking point in ship-local space
type AnchorConfig struct {
	ID     string  `yaml:"id"` // "right", "left" or "center"
	Offset Vec3    `yaml:"offset"`
	YawDeg float64 `yaml:"yaw_deg"` // Character facing while docked
}

// DockConfig defines docking rules
type DockConfig struct {
	CaptureRadius float64        `yaml:"capture_radius"`
	Hold          time.Duration  `yaml:"hold"`           // How long to hold the dock key
	GamepadButton int            `yaml:"gamepad_button"` // Raw button index that toggles docking
	Anchors       []AnchorConfig `yaml:"anchors"`
}

// ShipConfig defines ship motion
type ShipConfig struct {
	Start        Vec3    `yaml:"start"`
	Speed        float64 `yaml:"speed"`
	TurnRate     float64 `yaml:"turn_rate"` // Radians per second at the rudder
	LocalForward Vec3    `yaml:"local_forward"`
	DeckHeight   float64 `yaml:"deck_height"`
}

// BoundaryConfig defines the play area
type BoundaryConfig struct {
	Limit        float64       `yaml:"limit"`     // Half-extent on X and Z
	Countdown    int           `yaml:"countdown"` // Ticks before teleport
	TickInterval time.Duration `yaml:"tick_interval"`
}

// CannonConfig defines the trajectory preview
type CannonConfig struct {
	Steps         int     `yaml:"steps"`
	Speed         float64 `yaml:"speed"`
	ElevationDeg  float64 `yaml:"elevation_deg"`
	Drop          float64 `yaml:"drop"`
	RibbonWidth   float64 `yaml:"ribbon_width"`
	MuzzleForward Vec3    `yaml:"muzzle_forward"`
	PowerCycle    bool    `yaml:"power_cycle"`
}

// CharacterConfig defines character movement
type CharacterConfig struct {
	Start          Vec3    `yaml:"start"` // Ship-local spawn point
	WalkSpeed      float64 `yaml:"walk_speed"`
	RunSpeed       float64 `yaml:"run_speed"`
	JumpVelocity   float64 `yaml:"jump_velocity"`
	FallSpeed      float64 `yaml:"fall_speed"`
	DeckHalfLength float64 `yaml:"deck_half_length"`
	DeckHalfWidth  float64 `yaml:"deck_half_width"`
}

// AnimationConfig maps roles to clips and clips to durations
type AnimationConfig struct {
	FadeSeconds float64            `yaml:"fade_seconds"`
	Clips       map[string]string  `yaml:"clips"`     // Role name to clip name
	Durations   map[string]float64 `yaml:"durations"` // Clip name to seconds
}

// DefaultConfig returns the stock game configuration
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Window: WindowConfig{
			Title:  "Broadside",
			Width:  1024,
			Height: 768,
			TPS:    60,
			Scale:  24,
		},
		Physics: PhysicsConfig{
			Gravity:  Vec3{0, -9.81, 0},
			Timestep: 1.0 / 60.0,
		},
		Dock: DockConfig{
			CaptureRadius: 1.0,
			Hold:          500 * time.Millisecond,
			GamepadButton: 5,
			Anchors: []AnchorConfig{
				{ID: "right", Offset: Vec3{-0.1, 1.801, -0.7}, YawDeg: 35},
				{ID: "left", Offset: Vec3{0.1, 1.801, 0.7}, YawDeg: 145},
				{ID: "center", Offset: Vec3{2.9, 1.801, 0}, YawDeg: 90},
			},
		},
		Ship: ShipConfig{
			Start:        Vec3{0, 0, 0},
			Speed:        2.0,
			TurnRate:     0.4,
			LocalForward: Vec3{-1, 0, 0},
			DeckHeight:   1.801,
		},
		Boundary: BoundaryConfig{
			Limit:        50,
			Countdown:    20,
			TickInterval: time.Second,
		},
		Cannon: CannonConfig{
			Steps:         200,
			Speed:         25,
			ElevationDeg:  10,
			Drop:          0.3,
			RibbonWidth:   0.4,
			MuzzleForward: Vec3{0, 0, -1},
			PowerCycle:    true,
		},
		Character: CharacterConfig{
			Start:          Vec3{1.5, 1.801, 0},
			WalkSpeed:      2.5,
			RunSpeed:       5.0,
			JumpVelocity:   3.25,
			FallSpeed:      6.0,
			DeckHalfLength: 3.4,
			DeckHalfWidth:  1.1,
		},
		Animation: AnimationConfig{
			FadeSeconds: 0.2,
			Clips: map[string]string{
				"idle":     "Idle",
				"walk":     "Walk",
				"run":      "Run",
				"jump":     "Jump",
				"jumpIdle": "Jump_Idle",
				"jumpLand": "Jump_Land",
				"fall":     "Duck",
				"action1":  "Sword",
				"action2":  "Death",
				"action3":  "HitReact",
				"action4":  "Wave",
			},
			Durations: map[string]float64{
				"Idle":      2.0,
				"Walk":      1.0,
				"Run":       0.7,
				"Jump":      0.5,
				"Jump_Idle": 1.0,
				"Jump_Land": 0.4,
				"Duck":      1.0,
				"Sword":     1.0,
				"Death":     1.6,
				"HitReact":  0.6,
				"Wave":      1.4,
			},
		},
		HUD: *hud.DefaultConfig(),
	}
}

// Load reads the configuration. An empty path falls back to $BROADSIDE_CONFIG;
// a missing file yields the defaults. A .env file in the working directory is
// loaded first and never overrides variables already set.
func Load(path string) (*Config, error) {
	if err := LoadEnvFile(".env"); err != nil {
		return nil, err
	}
	if path == "" {
		path = os.Getenv(EnvConfig)
	}

	config, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadEnvFile loads variables from a dotenv file if it exists.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// LoadFile loads config from a YAML file over the defaults
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		// Return defaults if file doesn't exist
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults.
func Parse(data []byte) (*Config, error) {
	config := DefaultConfig() // Start with defaults
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return config, nil
}

// ApplyEnv applies environment overrides using lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvDebug); ok && v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDebug, err)
		}
		c.Debug = debug
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvTPS); ok && v != "" {
		tps, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTPS, err)
		}
		c.Window.TPS = tps
		if tps > 0 {
			c.Physics.Timestep = 1 / float64(tps)
		}
	}
	return nil
}

// timestepTolerance is the relative error allowed between physics.timestep
// and 1/window.tps.
const timestepTolerance = 1e-6

// Validate rejects values the game cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Window.TPS <= 0:
		return fmt.Errorf("%w: window.tps must be positive", ErrInvalid)
	case c.Window.Scale <= 0:
		return fmt.Errorf("%w: window.scale must be positive", ErrInvalid)
	case c.Physics.Timestep <= 0:
		return fmt.Errorf("%w: physics.timestep must be positive", ErrInvalid)
	case c.Dock.CaptureRadius <= 0:
		return fmt.Errorf("%w: dock.capture_radius must be positive", ErrInvalid)
	case len(c.Dock.Anchors) == 0:
		return fmt.Errorf("%w: dock.anchors is empty", ErrInvalid)
	case c.Boundary.Limit <= 0:
		return fmt.Errorf("%w: boundary.limit must be positive", ErrInvalid)
	case c.Boundary.Countdown <= 0:
		return fmt.Errorf("%w: boundary.countdown must be positive", ErrInvalid)
	case c.Boundary.TickInterval <= 0:
		return fmt.Errorf("%w: boundary.tick_interval must be positive", ErrInvalid)
	case c.Cannon.Steps <= 0:
		return fmt.Errorf("%w: cannon.steps must be positive", ErrInvalid)
	case math.Abs(c.Physics.Timestep*float64(c.Window.TPS)-1) > timestepTolerance:
		// The world steps once per update.
		return fmt.Errorf("%w: physics.timestep %g must equal 1/window.tps (%d)", ErrInvalid, c.Physics.Timestep, c.Window.TPS)
	}

	seen := map[dock.AnchorID]bool{}
	for _, a := range c.Dock.Anchors {
		id, ok := dock.ParseAnchorID(a.ID)
		if !ok {
			return fmt.Errorf("%w: unknown anchor id %q", ErrInvalid, a.ID)
		}
		if seen[id] {
			return fmt.Errorf("%w: duplicate anchor %q", ErrInvalid, a.ID)
		}
		seen[id] = true
	}
	for role := range c.Animation.Clips {
		if !knownRole(role) {
			return fmt.Errorf("%w: unknown animation role %q", ErrInvalid, role)
		}
	}
	return nil
}

func knownRole(name string) bool {
	for _, r := range animation.Roles {
		if string(r) == name {
			return true
		}
	}
	return false
}

// Anchors converts the anchor list. Call after Validate.
func (c *Config) Anchors() []dock.Anchor {
	anchors := make([]dock.Anchor, 0, len(c.Dock.Anchors))
	for _, a := range c.Dock.Anchors {
		id, ok := dock.ParseAnchorID(a.ID)
		if !ok {
			continue
		}
		anchors = append(anchors, dock.Anchor{ID: id, Offset: a.Offset.Mgl(), Lock: spatial.Yaw(a.YawDeg)})
	}
	return anchors
}

// AnimationSet returns the role to clip mapping.
func (c *Config) AnimationSet() animation.Set {
	set := make(animation.Set, len(c.Animation.Clips))
	for role, clip := range c.Animation.Clips {
		set[animation.Role(role)] = clip
	}
	return set
}

// InputSettings returns the dock trigger settings.
func (c *Config) InputSettings() input.Config {
	return input.Config{DockHold: c.Dock.Hold, GamepadButton: c.Dock.GamepadButton}
}

// SteeringSettings returns the ship steering settings.
func (c *Config) SteeringSettings() steering.Config {
	return steering.Config{Speed: c.Ship.Speed, TurnRate: c.Ship.TurnRate, LocalForward: c.Ship.LocalForward.Mgl()}
}

// BoundarySettings returns the play-area settings.
func (c *Config) BoundarySettings() boundary.Config {
	return boundary.Config{Limit: c.Boundary.Limit, Countdown: c.Boundary.Countdown, TickInterval: c.Boundary.TickInterval}
}

// TrajectorySettings returns the cannon preview settings.
func (c *Config) TrajectorySettings() trajectory.Config {
	return trajectory.Config{
		Steps:         c.Cannon.Steps,
		Speed:         c.Cannon.Speed,
		ElevationDeg:  c.Cannon.ElevationDeg,
		Drop:          c.Cannon.Drop,
		RibbonWidth:   c.Cannon.RibbonWidth,
		MuzzleForward: c.Cannon.MuzzleForward.Mgl(),
		PowerCycle:    c.Cannon.PowerCycle,
	}
}

// CharacterSettings returns the character movement settings.
func (c *Config) CharacterSettings() character.Config {
	return character.Config{
		WalkSpeed:      c.Character.WalkSpeed,
		RunSpeed:       c.Character.RunSpeed,
		JumpVelocity:   c.Character.JumpVelocity,
		FallSpeed:      c.Character.FallSpeed,
		DeckHalfLength: c.Character.DeckHalfLength,
		DeckHalfWidth:  c.Character.DeckHalfWidth,
	}
}
