package game

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Camera tracks the viewport centre in world XZ and the zoom.
type Camera struct {
	X, Z  float64 // World point at the centre of the screen
	Scale float64 // Pixels per world unit
}

// Follow centres the camera on p.
func (c *Camera) Follow(p mgl64.Vec3) {
	c.X = p.X()
	c.Z = p.Z()
}

// ToScreen projects a world point onto the screen, looking down the Y axis.
func (c Camera) ToScreen(p mgl64.Vec3, width, height int) (float32, float32) {
	x := (p.X()-c.X)*c.Scale + float64(width)/2
	y := (p.Z()-c.Z)*c.Scale + float64(height)/2
	return float32(x), float32(y)
}

// ToWorld is the inverse of ToScreen on the y=0 plane.
func (c Camera) ToWorld(sx, sy float32, width, height int) mgl64.Vec3 {
	x := (float64(sx)-float64(width)/2)/c.Scale + c.X
	z := (float64(sy)-float64(height)/2)/c.Scale + c.Z
	return mgl64.Vec3{x, 0, z}
}

// hullOutline is the ship deck in ship-local XZ, bow first. Forward is -X.
var hullOutline = []mgl64.Vec3{
	{-3.6, 0, 0},
	{-2.4, 0, -1.2},
	{3.4, 0, -1.2},
	{3.6, 0, 0},
	{3.4, 0, 1.2},
	{-2.4, 0, 1.2},
}
