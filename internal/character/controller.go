// Package character moves the player character around the deck and turns
// its motion into animation events.
package character

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/broadside/internal/animation"
	"chosenoffset.com/broadside/internal/core/gamestate"
	"chosenoffset.com/broadside/internal/core/spatial"
	"chosenoffset.com/broadside/internal/input"
)

// Config holds movement tuning.
type Config struct {
	WalkSpeed    float64
	RunSpeed     float64
	JumpVelocity float64
	// FallSpeed is the downward speed past which the fall clip plays.
	FallSpeed float64
	// DeckHalfLength and DeckHalfWidth bound the walkable deck in the ship
	// frame along X and Z.
	DeckHalfLength float64
	DeckHalfWidth  float64
}

// DefaultConfig returns the movement defaults.
func DefaultConfig() Config {
	return Config{
		WalkSpeed:      2.5,
		RunSpeed:       5.0,
		JumpVelocity:   3.25,
		FallSpeed:      6.0,
		DeckHalfLength: 3.4,
		DeckHalfWidth:  1.1,
	}
}

// Body is the character body the controller drives.
type Body interface {
	Translation() mgl64.Vec3
	Linvel() mgl64.Vec3
	SetLinvel(v mgl64.Vec3, wake bool)
	SetRotation(q mgl64.Quat, wake bool)
	Grounded() bool
}

type motion int

const (
	standing motion = iota
	walking
	running
	airborne
	falling
)

// Controller applies input to the character body.
type Controller struct {
	cfg     Config
	state   *gamestate.GameState
	body    Body
	machine *animation.Machine

	motion motion
}

// NewController creates a controller for body.
func NewController(cfg Config, state *gamestate.GameState, body Body, machine *animation.Machine) *Controller {
	return &Controller{cfg: cfg, state: state, body: body, machine: machine}
}

// Enabled reports whether the controller accepts input. It is disabled while
// the character is docked.
func (c *Controller) Enabled() bool {
	return c.body != nil && !c.state.HasJoint()
}

// Update applies one frame of input.
func (c *Controller) Update(in input.Snapshot) {
	if !c.Enabled() {
		c.motion = standing
		return
	}

	dir := moveDirection(in)
	speed := c.cfg.WalkSpeed
	if in.Held(input.Run) {
		speed = c.cfg.RunSpeed
	}

	vel := c.body.Linvel()
	horizontal := dir.Mul(speed)
	horizontal = c.keepOnDeck(horizontal)
	vel[0], vel[2] = horizontal.X(), horizontal.Z()

	if dir.Len() > 0 {
		c.body.SetRotation(mgl64.QuatRotate(math.Atan2(-dir.X(), -dir.Z()), spatial.WorldUp), true)
	}

	grounded := c.body.Grounded()
	if grounded && in.JustPressed(input.Jump) {
		vel[1] = c.cfg.JumpVelocity
		c.body.SetLinvel(vel, true)
		c.machine.Jump()
		c.motion = airborne
		return
	}
	c.body.SetLinvel(vel, true)

	if !grounded {
		c.updateAirborne(vel)
		return
	}

	next := standing
	if dir.Len() > 0 {
		next = walking
		if in.Held(input.Run) {
			next = running
		}
	}
	// A blocked event leaves motion unchanged so it is retried next frame.
	if next != c.motion {
		var fired bool
		switch next {
		case standing:
			fired = c.machine.Idle()
		case walking:
			fired = c.machine.Walk()
		case running:
			fired = c.machine.Run()
		}
		if fired {
			c.motion = next
		}
	}

	for i, a := range []input.Action{input.Action1, input.Action2, input.Action3, input.Action4} {
		if in.JustPressed(a) {
			c.machine.Fire(actionRoles[i])
		}
	}
}

var actionRoles = [4]animation.Role{animation.Action1, animation.Action2, animation.Action3, animation.Action4}

func (c *Controller) updateAirborne(vel mgl64.Vec3) {
	if vel.Y() < -c.cfg.FallSpeed {
		if c.motion != falling {
			c.machine.Fall()
			c.motion = falling
		}
		return
	}
	c.machine.JumpIdle()
	c.motion = airborne
}

// keepOnDeck removes the part of v that would carry the character past the
// deck edge.
func (c *Controller) keepOnDeck(v mgl64.Vec3) mgl64.Vec3 {
	ship := c.state.Ship()
	if ship == nil {
		return v
	}
	local := spatial.WorldToLocal(ship, c.body.Translation())
	lv := ship.Rotation().Inverse().Rotate(v)
	if (local.X() >= c.cfg.DeckHalfLength && lv.X() > 0) || (local.X() <= -c.cfg.DeckHalfLength && lv.X() < 0) {
		lv[0] = 0
	}
	if (local.Z() >= c.cfg.DeckHalfWidth && lv.Z() > 0) || (local.Z() <= -c.cfg.DeckHalfWidth && lv.Z() < 0) {
		lv[2] = 0
	}
	return ship.Rotation().Rotate(lv)
}

// moveDirection returns the unit XZ direction of the movement keys. Up on
// screen is -Z.
func moveDirection(in input.Snapshot) mgl64.Vec3 {
	var d mgl64.Vec3
	if in.Held(input.Forward) {
		d[2]--
	}
	if in.Held(input.Backward) {
		d[2]++
	}
	if in.Held(input.Leftward) {
		d[0]--
	}
	if in.Held(input.Rightward) {
		d[0]++
	}
	return spatial.NormalizeOr(d, mgl64.Vec3{})
}
