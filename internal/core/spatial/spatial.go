// Package spatial converts between ship-local and world coordinates and
// compares vectors and quaternions with an absolute tolerance.
package spatial

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultEpsilon is the tolerance used for anchor identity checks.
const DefaultEpsilon = 1e-6

// WorldUp is the +Y axis.
var WorldUp = mgl64.Vec3{0, 1, 0}

// Transform is anything with a world pose, e.g. a rigid body handle.
type Transform interface {
	Translation() mgl64.Vec3
	Rotation() mgl64.Quat
}

// Pose is a plain position and orientation pair.
type Pose struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

// Translation implements Transform.
func (p Pose) Translation() mgl64.Vec3 { return p.Position }

// Rotation implements Transform.
func (p Pose) Rotation() mgl64.Quat { return p.Orientation }

// PoseOf snapshots the pose of t.
func PoseOf(t Transform) Pose {
	return Pose{Position: t.Translation(), Orientation: t.Rotation()}
}

// LocalToWorld returns rot*local + pos for the given frame.
func LocalToWorld(frame Transform, local mgl64.Vec3) mgl64.Vec3 {
	return frame.Rotation().Rotate(local).Add(frame.Translation())
}

// WorldToLocal is the inverse of LocalToWorld.
func WorldToLocal(frame Transform, world mgl64.Vec3) mgl64.Vec3 {
	return frame.Rotation().Inverse().Rotate(world.Sub(frame.Translation()))
}

// DirectionToWorld rotates a local direction into world space, ignoring translation.
func DirectionToWorld(frame Transform, local mgl64.Vec3) mgl64.Vec3 {
	return frame.Rotation().Rotate(local)
}

// Forward returns the unit vector obtained by rotating localForward by q.
// A zero result stays zero.
func Forward(q mgl64.Quat, localForward mgl64.Vec3) mgl64.Vec3 {
	return NormalizeOr(q.Rotate(localForward), mgl64.Vec3{})
}

// NormalizeOr normalizes v, or returns fallback when v has no length.
func NormalizeOr(v, fallback mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l == 0 || math.IsNaN(l) {
		return fallback
	}
	return v.Mul(1 / l)
}

// Yaw builds a rotation of deg degrees about +Y.
func Yaw(deg float64) mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(deg), WorldUp)
}

// HeadingTo returns the angle in radians of the XZ-plane direction from
// `from` to `to`, measured from +X towards +Z. Returns 0 when the points
// coincide on the plane.
func HeadingTo(from, to mgl64.Vec3) float64 {
	dx := to.X() - from.X()
	dz := to.Z() - from.Z()
	if dx == 0 && dz == 0 {
		return 0
	}
	return math.Atan2(dz, dx)
}

// AlmostEqual reports whether |a-b| < eps.
func AlmostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// VectorsClose compares each component with AlmostEqual.
func VectorsClose(a, b mgl64.Vec3, eps float64) bool {
	return AlmostEqual(a[0], b[0], eps) &&
		AlmostEqual(a[1], b[1], eps) &&
		AlmostEqual(a[2], b[2], eps)
}

// QuatsClose compares each quaternion component with AlmostEqual.
// q and -q are treated as different.
func QuatsClose(a, b mgl64.Quat, eps float64) bool {
	return AlmostEqual(a.W, b.W, eps) && VectorsClose(a.V, b.V, eps)
}
