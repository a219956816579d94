// Package trajectory predicts the cannonball arc from the anchor the
// character is manning.
package trajectory

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/broadside/internal/core/gamestate"
	"chosenoffset.com/broadside/internal/core/spatial"
	"chosenoffset.com/broadside/internal/dock"
	"chosenoffset.com/broadside/internal/physics"
)

// Config holds the launch and sampling parameters.
type Config struct {
	Steps        int
	Speed        float64
	ElevationDeg float64
	Drop         float64
	RibbonWidth  float64
	// MuzzleForward is the firing direction in the anchor lock frame.
	MuzzleForward mgl64.Vec3
	// PowerCycle scales the launch speed by 0.5 + (t mod 1).
	PowerCycle bool
}

// DefaultConfig returns the cannon defaults.
func DefaultConfig() Config {
	return Config{
		Steps:         200,
		Speed:         25,
		ElevationDeg:  10,
		Drop:          0.3,
		RibbonWidth:   0.4,
		MuzzleForward: mgl64.Vec3{0, 0, -1},
		PowerCycle:    true,
	}
}

// fallbackAxis is used when the direction is parallel to world up.
var fallbackAxis = mgl64.Vec3{1, 0, 0}

// Integrate fills dst with steps positions of a body launched from origin
// with vel under gravity, using explicit Euler (v += g*dt; p += v*dt). The
// first point is origin. dst is grown when too small and returned.
func Integrate(origin, vel, gravity mgl64.Vec3, dt float64, steps int, dst []mgl64.Vec3) []mgl64.Vec3 {
	if steps <= 0 {
		return dst[:0]
	}
	if cap(dst) < steps {
		dst = make([]mgl64.Vec3, steps)
	}
	dst = dst[:steps]

	pos, v := origin, vel
	for i := 0; i < steps; i++ {
		dst[i] = pos
		v = v.Add(gravity.Mul(dt))
		pos = pos.Add(v.Mul(dt))
	}
	return dst
}

// RightOf returns the horizontal right vector of dir (dir x up), or the
// fallback axis when dir is vertical or zero.
func RightOf(dir mgl64.Vec3) mgl64.Vec3 {
	return spatial.NormalizeOr(dir.Cross(spatial.WorldUp), fallbackAxis)
}

// Elevate pitches dir up by deg degrees around its right vector, keeping
// its length.
func Elevate(dir mgl64.Vec3, deg float64) mgl64.Vec3 {
	if deg == 0 {
		return dir
	}
	length := dir.Len()
	unit := spatial.NormalizeOr(dir, mgl64.Vec3{})
	q := mgl64.QuatRotate(mgl64.DegToRad(deg), RightOf(unit))
	return spatial.NormalizeOr(q.Rotate(unit), mgl64.Vec3{}).Mul(length)
}

// PowerScale returns the speed multiplier of the power cycle at time t.
func PowerScale(t float64) float64 {
	m := math.Mod(t, 1)
	if m < 0 {
		m++
	}
	return 0.5 + m
}

// Prediction is the current arc. Slices are owned by the Predictor and
// overwritten on the next call.
type Prediction struct {
	Active   bool
	Origin   mgl64.Vec3
	Velocity mgl64.Vec3
	Points   []mgl64.Vec3
	Left     []mgl64.Vec3
	Right    []mgl64.Vec3
}

// Predictor computes the arc each frame into reused buffers.
type Predictor struct {
	cfg      Config
	state    *gamestate.GameState
	world    physics.Settings
	resolver *dock.Resolver

	points, left, right []mgl64.Vec3
}

// NewPredictor creates a predictor that reads gravity and timestep from world.
func NewPredictor(cfg Config, state *gamestate.GameState, world physics.Settings, resolver *dock.Resolver) *Predictor {
	return &Predictor{
		cfg:      cfg,
		state:    state,
		world:    world,
		resolver: resolver,
		points:   make([]mgl64.Vec3, 0, cfg.Steps),
		left:     make([]mgl64.Vec3, 0, cfg.Steps),
		right:    make([]mgl64.Vec3, 0, cfg.Steps),
	}
}

// LaunchVelocity returns the launch velocity for a joint on the given ship
// pose, before the power cycle is applied.
func (p *Predictor) LaunchVelocity(ship spatial.Transform, joint physics.Joint) mgl64.Vec3 {
	local := joint.Frame1().Rotate(p.cfg.MuzzleForward)
	dir := spatial.NormalizeOr(spatial.DirectionToWorld(ship, local), fallbackAxis)
	return Elevate(dir.Mul(p.cfg.Speed), p.cfg.ElevationDeg)
}

// Predict returns the arc at loop time t (seconds). It is inactive when the
// character is not docked, is at the rudder, or the ship is missing.
func (p *Predictor) Predict(t float64) Prediction {
	joint := p.state.Joint()
	ship := p.state.Ship()
	if joint == nil || ship == nil || dock.AtRudder(joint, p.resolver) {
		return Prediction{}
	}

	origin := spatial.LocalToWorld(ship, joint.Anchor2())
	origin[1] -= p.cfg.Drop

	vel := p.LaunchVelocity(ship, joint)
	if p.cfg.PowerCycle {
		vel = vel.Mul(PowerScale(t))
	}

	p.points = Integrate(origin, vel, p.world.GravityVector(), p.world.TimestepSeconds(), p.cfg.Steps, p.points)

	right := RightOf(vel).Mul(p.cfg.RibbonWidth / 2)
	p.left = p.left[:0]
	p.right = p.right[:0]
	for _, pt := range p.points {
		p.left = append(p.left, pt.Sub(right))
		p.right = append(p.right, pt.Add(right))
	}

	return Prediction{
		Active:   true,
		Origin:   origin,
		Velocity: vel,
		Points:   p.points,
		Left:     p.left,
		Right:    p.right,
	}
}
