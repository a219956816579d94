package physics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/broadside/internal/core/spatial"
)

// BodyType selects how a body is integrated.
type BodyType int

const (
	// Dynamic bodies receive gravity and integrate their velocities.
	Dynamic BodyType = iota
	// Kinematic bodies integrate velocities but ignore gravity.
	Kinematic
	// Fixed bodies never move on their own.
	Fixed
)

// BodyDesc configures a new body.
type BodyDesc struct {
	Name         string
	Type         BodyType
	Position     mgl64.Vec3
	Rotation     mgl64.Quat
	GravityScale float64
	// LockTranslation zeroes the matching linear velocity components.
	LockTranslation [3]bool
	// LockRotation zeroes the matching angular velocity components.
	LockRotation [3]bool
}

// RigidBody is the world's Body implementation.
type RigidBody struct {
	world *World
	desc  BodyDesc

	pos    mgl64.Vec3
	rot    mgl64.Quat
	linvel mgl64.Vec3
	angvel mgl64.Vec3

	sleeping bool

	carrier  *RigidBody
	deckY    float64
	grounded bool
	joint    *FixedJoint
}

// Name returns the body's descriptive name.
func (b *RigidBody) Name() string { return b.desc.Name }

// Translation implements Body.
func (b *RigidBody) Translation() mgl64.Vec3 { return b.pos }

// Rotation implements Body.
func (b *RigidBody) Rotation() mgl64.Quat { return b.rot }

// Linvel implements Body.
func (b *RigidBody) Linvel() mgl64.Vec3 { return b.linvel }

// Angvel implements Body.
func (b *RigidBody) Angvel() mgl64.Vec3 { return b.angvel }

// SetTranslation implements Body.
func (b *RigidBody) SetTranslation(v mgl64.Vec3, wake bool) {
	b.pos = v
	b.wake(wake)
}

// SetRotation implements Body.
func (b *RigidBody) SetRotation(q mgl64.Quat, wake bool) {
	b.rot = q.Normalize()
	b.wake(wake)
}

// SetLinvel implements Body.
func (b *RigidBody) SetLinvel(v mgl64.Vec3, wake bool) {
	b.linvel = mask(v, b.desc.LockTranslation)
	b.wake(wake)
}

// SetAngvel implements Body.
func (b *RigidBody) SetAngvel(v mgl64.Vec3, wake bool) {
	b.angvel = mask(v, b.desc.LockRotation)
	b.wake(wake)
}

// Sleep stops integration until a setter is called with wake=true.
func (b *RigidBody) Sleep() { b.sleeping = true }

// Sleeping reports whether the body is asleep.
func (b *RigidBody) Sleeping() bool { return b.sleeping }

// RideOn makes b travel with carrier, resting no lower than deckY in the
// carrier's local frame. Pass nil to stop riding.
func (b *RigidBody) RideOn(carrier *RigidBody, deckY float64) {
	b.carrier = carrier
	b.deckY = deckY
}

// Grounded reports whether the body touched its deck during the last step.
func (b *RigidBody) Grounded() bool { return b.grounded }

func (b *RigidBody) wake(wake bool) {
	if wake {
		b.sleeping = false
	}
}

func mask(v mgl64.Vec3, locked [3]bool) mgl64.Vec3 {
	for i := range locked {
		if locked[i] {
			v[i] = 0
		}
	}
	return v
}

// FixedJoint is the world's Joint implementation.
type FixedJoint struct {
	params FixedJointParams
	b1, b2 *RigidBody
}

// Body1 implements Joint.
func (j *FixedJoint) Body1() Body { return j.b1 }

// Body2 implements Joint.
func (j *FixedJoint) Body2() Body { return j.b2 }

// Anchor1 implements Joint.
func (j *FixedJoint) Anchor1() mgl64.Vec3 { return j.params.Anchor1 }

// Anchor2 implements Joint.
func (j *FixedJoint) Anchor2() mgl64.Vec3 { return j.params.Anchor2 }

// Frame1 implements Joint.
func (j *FixedJoint) Frame1() mgl64.Quat { return j.params.Frame1 }

// Frame2 implements Joint.
func (j *FixedJoint) Frame2() mgl64.Quat { return j.params.Frame2 }

// World owns bodies and joints and advances them by a fixed timestep.
type World struct {
	Gravity  mgl64.Vec3
	Timestep float64

	bodies []*RigidBody
	joints []*FixedJoint
}

// NewWorld creates an empty world.
func NewWorld(gravity mgl64.Vec3, timestep float64) *World {
	if timestep <= 0 {
		timestep = 1.0 / 60.0
	}
	return &World{Gravity: gravity, Timestep: timestep}
}

// GravityVector implements Settings.
func (w *World) GravityVector() mgl64.Vec3 { return w.Gravity }

// TimestepSeconds implements Settings.
func (w *World) TimestepSeconds() float64 { return w.Timestep }

// NewBody adds a body to the world.
func (w *World) NewBody(desc BodyDesc) *RigidBody {
	if desc.Rotation == (mgl64.Quat{}) {
		desc.Rotation = mgl64.QuatIdent()
	}
	b := &RigidBody{
		world: w,
		desc:  desc,
		pos:   desc.Position,
		rot:   desc.Rotation.Normalize(),
	}
	w.bodies = append(w.bodies, b)
	return b
}

// Bodies returns the bodies in creation order.
func (w *World) Bodies() []*RigidBody { return w.bodies }

// JointCount returns the number of live joints.
func (w *World) JointCount() int { return len(w.joints) }

// CreateFixedJoint implements JointFactory. b1 is the attached body, b2 the
// body it is fixed to.
func (w *World) CreateFixedJoint(params FixedJointParams, b1, b2 Body, wake bool) (Joint, error) {
	rb1, err := w.own(b1)
	if err != nil {
		return nil, err
	}
	rb2, err := w.own(b2)
	if err != nil {
		return nil, err
	}
	if rb1.joint != nil {
		return nil, fmt.Errorf("%w: %s", ErrBodyJointed, rb1.desc.Name)
	}
	if params.Frame1 == (mgl64.Quat{}) {
		params.Frame1 = mgl64.QuatIdent()
	}
	if params.Frame2 == (mgl64.Quat{}) {
		params.Frame2 = mgl64.QuatIdent()
	}

	j := &FixedJoint{params: params, b1: rb1, b2: rb2}
	rb1.joint = j
	w.joints = append(w.joints, j)
	rb1.wake(wake)
	rb2.wake(wake)
	return j, nil
}

// RemoveJoint implements JointFactory. Unknown joints are ignored.
func (w *World) RemoveJoint(j Joint, wake bool) {
	for i, fj := range w.joints {
		if Joint(fj) != j {
			continue
		}
		fj.b1.joint = nil
		fj.b1.wake(wake)
		fj.b2.wake(wake)
		w.joints = append(w.joints[:i], w.joints[i+1:]...)
		return
	}
}

func (w *World) own(b Body) (*RigidBody, error) {
	rb, ok := b.(*RigidBody)
	if !ok || rb == nil || rb.world != w {
		return nil, ErrForeignBody
	}
	return rb, nil
}

// Step advances the world by one timestep: free bodies first, then riders
// relative to their carrier's new pose, then joints.
func (w *World) Step() {
	dt := w.Timestep

	type riderState struct {
		body    *RigidBody
		local   mgl64.Vec3
		carrier spatial.Pose
	}
	var riders []riderState
	for _, b := range w.bodies {
		if b.joint == nil && b.carrier != nil && !b.sleeping {
			riders = append(riders, riderState{
				body:    b,
				local:   spatial.WorldToLocal(b.carrier, b.pos),
				carrier: spatial.PoseOf(b.carrier),
			})
		}
	}

	for _, b := range w.bodies {
		if b.sleeping || b.joint != nil || b.carrier != nil || b.desc.Type == Fixed {
			continue
		}
		if b.desc.Type == Dynamic {
			b.linvel = mask(b.linvel.Add(w.Gravity.Mul(b.desc.GravityScale*dt)), b.desc.LockTranslation)
		}
		b.pos = b.pos.Add(b.linvel.Mul(dt))
		b.rot = integrateRotation(b.rot, b.angvel, dt)
	}

	for _, r := range riders {
		w.stepRider(r.body, r.local, r.carrier, dt)
	}

	for _, j := range w.joints {
		j.solve()
	}
}

func (w *World) stepRider(b *RigidBody, local mgl64.Vec3, before spatial.Pose, dt float64) {
	if b.desc.Type == Dynamic {
		b.linvel = mask(b.linvel.Add(w.Gravity.Mul(b.desc.GravityScale*dt)), b.desc.LockTranslation)
	}
	after := spatial.PoseOf(b.carrier)

	local = local.Add(after.Orientation.Inverse().Rotate(b.linvel.Mul(dt)))
	b.grounded = false
	if local.Y() <= b.deckY {
		local[1] = b.deckY
		b.grounded = true
		if b.linvel.Y() < 0 {
			b.linvel[1] = 0
		}
	}

	b.pos = spatial.LocalToWorld(after, local)
	delta := after.Orientation.Mul(before.Orientation.Inverse())
	b.rot = integrateRotation(delta.Mul(b.rot).Normalize(), b.angvel, dt)
}

// solve places body 1 so both joint frames coincide in world space.
func (j *FixedJoint) solve() {
	rot2 := j.b2.rot
	rot1 := rot2.Mul(j.params.Frame2).Mul(j.params.Frame1.Inverse()).Normalize()
	world := spatial.LocalToWorld(j.b2, j.params.Anchor2)
	j.b1.rot = rot1
	j.b1.pos = world.Sub(rot1.Rotate(j.params.Anchor1))
	j.b1.linvel = j.b2.linvel
	j.b1.angvel = j.b2.angvel
	j.b1.grounded = true
}

func integrateRotation(q mgl64.Quat, angvel mgl64.Vec3, dt float64) mgl64.Quat {
	speed := angvel.Len()
	if speed == 0 {
		return q
	}
	step := mgl64.QuatRotate(speed*dt, angvel.Mul(1/speed))
	return step.Mul(q).Normalize()
}
