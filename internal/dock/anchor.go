// Package dock resolves which ship anchor the character may dock at and
// manages the single fixed joint that holds the character there.
package dock

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/broadside/internal/core/spatial"
)

// ErrOutOfRange is returned when no anchor lies within the capture radius.
var ErrOutOfRange = errors.New("dock: too far from every docking point")

// AnchorID names a docking point. The numeric order is the tie-break order.
type AnchorID int

const (
	RightCannon AnchorID = iota
	LeftCannon
	CenterRudder
)

func (id AnchorID) String() string {
	switch id {
	case RightCannon:
		return "right cannon"
	case LeftCannon:
		return "left cannon"
	case CenterRudder:
		return "center rudder"
	default:
		return "unknown"
	}
}

// Anchor is a ship-local docking point and the rotation the character is
// locked to while docked there.
type Anchor struct {
	ID     AnchorID
	Offset mgl64.Vec3
	Lock   mgl64.Quat
}

// DefaultAnchors returns the three anchors of the ship model, in tie-break order.
func DefaultAnchors() []Anchor {
	return []Anchor{
		{ID: RightCannon, Offset: mgl64.Vec3{-0.1, 1.801, -0.7}, Lock: spatial.Yaw(35)},
		{ID: LeftCannon, Offset: mgl64.Vec3{0.1, 1.801, 0.7}, Lock: spatial.Yaw(180 - 35)},
		{ID: CenterRudder, Offset: mgl64.Vec3{2.9, 1.801, 0}, Lock: spatial.Yaw(90)},
	}
}

// Match is the result of a successful resolution.
type Match struct {
	Anchor   Anchor
	World    mgl64.Vec3
	Distance float64
}

// Resolver picks the nearest anchor within CaptureRadius.
type Resolver struct {
	Anchors       []Anchor
	CaptureRadius float64
}

// NewResolver creates a resolver. Anchors are sorted into tie-break order.
func NewResolver(anchors []Anchor, captureRadius float64) *Resolver {
	sorted := make([]Anchor, len(anchors))
	copy(sorted, anchors)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].ID < sorted[j-1].ID; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	return &Resolver{Anchors: sorted, CaptureRadius: captureRadius}
}

// Resolve returns the anchor nearest to characterPos for the given ship pose.
// Equal distances keep the anchor that comes first (right, left, center).
func (r *Resolver) Resolve(ship spatial.Transform, characterPos mgl64.Vec3) (Match, error) {
	best := Match{Distance: math.Inf(1)}
	found := false
	for _, a := range r.Anchors {
		world := spatial.LocalToWorld(ship, a.Offset)
		d := characterPos.Sub(world).Len()
		if d < best.Distance {
			best = Match{Anchor: a, World: world, Distance: d}
			found = true
		}
	}
	if !found || best.Distance > r.CaptureRadius {
		return best, ErrOutOfRange
	}
	return best, nil
}

// Identify returns the anchor whose offset equals localOffset within eps.
func (r *Resolver) Identify(localOffset mgl64.Vec3, eps float64) (Anchor, bool) {
	for _, a := range r.Anchors {
		if spatial.VectorsClose(a.Offset, localOffset, eps) {
			return a, true
		}
	}
	return Anchor{}, false
}

// Anchor returns the configured anchor with the given id.
func (r *Resolver) Anchor(id AnchorID) (Anchor, bool) {
	for _, a := range r.Anchors {
		if a.ID == id {
			return a, true
		}
	}
	return Anchor{}, false
}

// ParseAnchorID accepts "right", "left" or "center".
func ParseAnchorID(s string) (AnchorID, bool) {
	switch s {
	case "right":
		return RightCannon, true
	case "left":
		return LeftCannon, true
	case "center", "centre":
		return CenterRudder, true
	default:
		return 0, false
	}
}
