// Package physics provides the rigid-body and joint handles consumed by the
// gameplay systems, plus a small kinematic world that serves them.
//
// The world is not a general physics engine: it integrates velocities, keeps
// riders on a carrier's deck and snaps fixed joints, which is all the ship
// and character need.
package physics

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrForeignBody is returned when a body does not belong to the world.
	ErrForeignBody = errors.New("physics: body does not belong to this world")
	// ErrBodyJointed is returned when the first body already has a joint.
	ErrBodyJointed = errors.New("physics: body already has a joint")
)

// Body is a rigid-body handle.
type Body interface {
	Translation() mgl64.Vec3
	Rotation() mgl64.Quat
	Linvel() mgl64.Vec3
	Angvel() mgl64.Vec3
	SetTranslation(v mgl64.Vec3, wake bool)
	SetRotation(q mgl64.Quat, wake bool)
	SetLinvel(v mgl64.Vec3, wake bool)
	SetAngvel(v mgl64.Vec3, wake bool)
}

// Joint is a fixed coupling between two bodies. Anchor1/Frame1 are local to
// Body1, Anchor2/Frame2 local to Body2.
type Joint interface {
	Body1() Body
	Body2() Body
	Anchor1() mgl64.Vec3
	Anchor2() mgl64.Vec3
	Frame1() mgl64.Quat
	Frame2() mgl64.Quat
}

// FixedJointParams describes the two local frames a fixed joint keeps coincident.
type FixedJointParams struct {
	Anchor1 mgl64.Vec3
	Frame1  mgl64.Quat
	Anchor2 mgl64.Vec3
	Frame2  mgl64.Quat
}

// JointFactory creates and removes joints.
type JointFactory interface {
	CreateFixedJoint(params FixedJointParams, b1, b2 Body, wake bool) (Joint, error)
	RemoveJoint(j Joint, wake bool)
}

// Settings exposes the world's integration parameters.
type Settings interface {
	GravityVector() mgl64.Vec3
	TimestepSeconds() float64
}
