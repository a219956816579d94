package dock

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/broadside/internal/core/gamestate"
	"chosenoffset.com/broadside/internal/core/spatial"
	"chosenoffset.com/broadside/internal/physics"
)

type resetCounter struct{ resets int }

func (r *resetCounter) Reset() { r.resets++ }

type fixture struct {
	world     *physics.World
	state     *gamestate.GameState
	ship      *physics.RigidBody
	character *physics.RigidBody
	anim      *resetCounter
	binder    *Binder
}

func newFixture(shipPose spatial.Pose) *fixture {
	world := physics.NewWorld(mgl64.Vec3{0, -9.81, 0}, 1.0/60.0)
	ship := world.NewBody(physics.BodyDesc{
		Name:     "ship",
		Type:     physics.Kinematic,
		Position: shipPose.Position,
		Rotation: shipPose.Orientation,
	})
	character := world.NewBody(physics.BodyDesc{Name: "character", Type: physics.Dynamic, GravityScale: 1})

	state := gamestate.New()
	state.SetShip(ship)
	state.SetCharacter(character)

	anim := &resetCounter{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	binder := NewBinder(state, world, NewResolver(DefaultAnchors(), 1.0), anim, logger)
	return &fixture{world: world, state: state, ship: ship, character: character, anim: anim, binder: binder}
}

func TestResolveExactAnchor(t *testing.T) {
	pose := spatial.Pose{Position: mgl64.Vec3{10, 0, -4}, Orientation: spatial.Yaw(30)}
	r := NewResolver(DefaultAnchors(), 1.0)

	for _, a := range DefaultAnchors() {
		world := spatial.LocalToWorld(pose, a.Offset)
		m, err := r.Resolve(pose, world)
		if err != nil {
			t.Fatalf("Expected %s to resolve, got %v", a.ID, err)
		}
		if m.Anchor.ID != a.ID {
			t.Errorf("Expected anchor %s, got %s", a.ID, m.Anchor.ID)
		}
		if m.Distance > 1e-9 {
			t.Errorf("Expected zero distance for %s, got %f", a.ID, m.Distance)
		}
	}
}

func TestResolveOutOfRange(t *testing.T) {
	pose := spatial.Pose{Orientation: mgl64.QuatIdent()}
	r := NewResolver(DefaultAnchors(), 1.0)

	rudder := mgl64.Vec3{2.9, 1.801, 0}
	tests := []struct {
		name    string
		pos     mgl64.Vec3
		wantErr bool
	}{
		{"on anchor", rudder, false},
		{"just inside", rudder.Add(mgl64.Vec3{0.99, 0, 0}), false},
		{"just outside", rudder.Add(mgl64.Vec3{1.01, 0, 0}), true},
		{"far away", mgl64.Vec3{40, 0, 40}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve(pose, tt.pos)
			if tt.wantErr && !errors.Is(err, ErrOutOfRange) {
				t.Errorf("Expected ErrOutOfRange, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Expected success, got %v", err)
			}
		})
	}
}

func TestResolveTieBreak(t *testing.T) {
	pose := spatial.Pose{Orientation: mgl64.QuatIdent()}
	// Midway between the two cannons.
	mid := mgl64.Vec3{0, 1.801, 0}

	// Reverse order must not change the winner.
	anchors := DefaultAnchors()
	reversed := []Anchor{anchors[2], anchors[1], anchors[0]}
	r := NewResolver(reversed, 1.0)

	m, err := r.Resolve(pose, mid)
	if err != nil {
		t.Fatalf("Expected a match, got %v", err)
	}
	if m.Anchor.ID != RightCannon {
		t.Errorf("Expected right cannon on a tie, got %s", m.Anchor.ID)
	}
}

func TestDockCreatesJoint(t *testing.T) {
	f := newFixture(spatial.Pose{Position: mgl64.Vec3{5, 0, 5}, Orientation: spatial.Yaw(90)})
	rudder := DefaultAnchors()[2]
	f.character.SetTranslation(spatial.LocalToWorld(f.ship, rudder.Offset).Add(mgl64.Vec3{0.2, 0, 0}), true)

	a, err := f.binder.Dock()
	if err != nil {
		t.Fatalf("Expected dock to succeed, got %v", err)
	}
	if a.ID != CenterRudder {
		t.Errorf("Expected center rudder, got %s", a.ID)
	}
	if !f.state.HasJoint() {
		t.Fatal("Expected a joint in the game state")
	}
	if f.world.JointCount() != 1 {
		t.Errorf("Expected 1 joint in the world, got %d", f.world.JointCount())
	}
	if f.anim.resets != 1 {
		t.Errorf("Expected animation reset once, got %d", f.anim.resets)
	}

	j := f.state.Joint()
	if j.Anchor1() != (mgl64.Vec3{}) {
		t.Errorf("Expected character-local origin, got %v", j.Anchor1())
	}
	if !spatial.VectorsClose(j.Anchor2(), rudder.Offset, spatial.DefaultEpsilon) {
		t.Errorf("Expected anchor2 %v, got %v", rudder.Offset, j.Anchor2())
	}
	if !spatial.QuatsClose(j.Frame1(), rudder.Lock, 1e-9) {
		t.Errorf("Expected frame1 to be the anchor lock")
	}

	got, ok := f.binder.DockedAnchor()
	if !ok || got.ID != CenterRudder {
		t.Errorf("Expected docked anchor center rudder, got %v (%v)", got.ID, ok)
	}
	if !AtRudder(j, f.binder.Resolver()) {
		t.Error("Expected AtRudder to be true")
	}
}

func TestDockTwiceKeepsOneJoint(t *testing.T) {
	f := newFixture(spatial.Pose{Orientation: mgl64.QuatIdent()})
	f.character.SetTranslation(mgl64.Vec3{-0.1, 1.801, -0.7}, true)

	if _, err := f.binder.Dock(); err != nil {
		t.Fatalf("Expected first dock to succeed, got %v", err)
	}
	if _, err := f.binder.Dock(); !errors.Is(err, ErrAlreadyDocked) {
		t.Errorf("Expected ErrAlreadyDocked, got %v", err)
	}
	if f.world.JointCount() != 1 {
		t.Errorf("Expected 1 joint, got %d", f.world.JointCount())
	}
}

func TestDockOutOfRangeLeavesState(t *testing.T) {
	f := newFixture(spatial.Pose{Orientation: mgl64.QuatIdent()})
	f.character.SetTranslation(mgl64.Vec3{20, 0, 20}, true)

	err := f.binder.Toggle()
	if !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Expected ErrOutOfRange, got %v", err)
	}
	if f.state.HasJoint() {
		t.Error("Expected no joint after failed dock")
	}
	if f.anim.resets != 0 {
		t.Errorf("Expected no animation reset, got %d", f.anim.resets)
	}
}

func TestToggle(t *testing.T) {
	f := newFixture(spatial.Pose{Orientation: mgl64.QuatIdent()})
	f.character.SetTranslation(mgl64.Vec3{0.1, 1.801, 0.7}, true)

	if err := f.binder.Toggle(); err != nil {
		t.Fatalf("Expected dock, got %v", err)
	}
	a, ok := f.binder.DockedAnchor()
	if !ok || a.ID != LeftCannon {
		t.Errorf("Expected left cannon, got %v", a.ID)
	}
	if AtRudder(f.state.Joint(), f.binder.Resolver()) {
		t.Error("Expected cannon anchor not to count as rudder")
	}

	if err := f.binder.Toggle(); err != nil {
		t.Fatalf("Expected undock, got %v", err)
	}
	if f.state.HasJoint() || f.world.JointCount() != 0 {
		t.Errorf("Expected no joints after undock, state=%v world=%d", f.state.HasJoint(), f.world.JointCount())
	}
	if err := f.binder.Undock(); !errors.Is(err, ErrNotDocked) {
		t.Errorf("Expected ErrNotDocked, got %v", err)
	}
}

func TestDockMissingBodies(t *testing.T) {
	world := physics.NewWorld(mgl64.Vec3{}, 1.0/60.0)
	state := gamestate.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	b := NewBinder(state, world, NewResolver(DefaultAnchors(), 1.0), nil, logger)

	if err := b.Toggle(); !errors.Is(err, ErrMissingBody) {
		t.Errorf("Expected ErrMissingBody, got %v", err)
	}
	if _, ok := b.DockedAnchor(); ok {
		t.Error("Expected no docked anchor")
	}
}

func TestDockedCharacterFollowsShip(t *testing.T) {
	f := newFixture(spatial.Pose{Orientation: mgl64.QuatIdent()})
	f.character.SetTranslation(mgl64.Vec3{2.9, 1.801, 0}, true)
	if _, err := f.binder.Dock(); err != nil {
		t.Fatalf("Expected dock, got %v", err)
	}

	f.ship.SetLinvel(mgl64.Vec3{-2, 0, 0}, true)
	for i := 0; i < 60; i++ {
		f.world.Step()
	}

	want := spatial.LocalToWorld(f.ship, mgl64.Vec3{2.9, 1.801, 0})
	if !spatial.VectorsClose(f.character.Translation(), want, 1e-6) {
		t.Errorf("Expected character at %v, got %v", want, f.character.Translation())
	}
}
