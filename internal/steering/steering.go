// Package steering drives the ship: constant forward thrust and, when the
// character mans the rudder, yaw from the left/right input.
package steering

import (
	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/broadside/internal/core/gamestate"
	"chosenoffset.com/broadside/internal/core/spatial"
	"chosenoffset.com/broadside/internal/dock"
)

// Config holds the ship's motion parameters.
type Config struct {
	Speed        float64
	TurnRate     float64
	LocalForward mgl64.Vec3
}

// DefaultConfig returns the ship defaults.
func DefaultConfig() Config {
	return Config{
		Speed:        2.0,
		TurnRate:     0.4,
		LocalForward: mgl64.Vec3{-1, 0, 0},
	}
}

// Controller applies steering to the ship body in the game state.
type Controller struct {
	cfg      Config
	state    *gamestate.GameState
	resolver *dock.Resolver
}

// NewController creates a steering controller.
func NewController(cfg Config, state *gamestate.GameState, resolver *dock.Resolver) *Controller {
	return &Controller{cfg: cfg, state: state, resolver: resolver}
}

// AtRudder reports whether the character is docked at the rudder.
func (c *Controller) AtRudder() bool {
	return dock.AtRudder(c.state.Joint(), c.resolver)
}

// Update sets the ship's angular and linear velocity. Call it once per
// frame after the physics step.
func (c *Controller) Update(left, right bool) {
	ship := c.state.Ship()
	if ship == nil {
		return
	}

	ship.SetAngvel(c.YawRate(left, right), true)

	forward := spatial.Forward(ship.Rotation(), c.cfg.LocalForward)
	forward[1] = 0
	forward = spatial.NormalizeOr(forward, mgl64.Vec3{})
	ship.SetLinvel(forward.Mul(c.cfg.Speed), true)
}

// YawRate returns the angular velocity the inputs produce right now.
func (c *Controller) YawRate(left, right bool) mgl64.Vec3 {
	if !c.AtRudder() || left == right {
		return mgl64.Vec3{}
	}
	if left {
		return mgl64.Vec3{0, c.cfg.TurnRate, 0}
	}
	return mgl64.Vec3{0, -c.cfg.TurnRate, 0}
}
