package dock

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/broadside/internal/core/gamestate"
	"chosenoffset.com/broadside/internal/core/spatial"
	"chosenoffset.com/broadside/internal/physics"
)

var (
	// ErrAlreadyDocked is returned by Dock while a joint exists.
	ErrAlreadyDocked = errors.New("dock: character is already docked")
	// ErrNotDocked is returned by Undock when no joint exists.
	ErrNotDocked = errors.New("dock: character is not docked")
	// ErrMissingBody is returned when the character or ship is not mounted.
	ErrMissingBody = errors.New("dock: character or ship body missing")
)

// AnimationResetter is the part of the animation machine the binder drives.
type AnimationResetter interface {
	Reset()
}

// Binder creates and removes the fixed joint between character and ship.
type Binder struct {
	state    *gamestate.GameState
	joints   physics.JointFactory
	resolver *Resolver
	anim     AnimationResetter
	logger   *slog.Logger
}

// NewBinder creates a binder. anim and logger may be nil.
func NewBinder(state *gamestate.GameState, joints physics.JointFactory, resolver *Resolver, anim AnimationResetter, logger *slog.Logger) *Binder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Binder{
		state:    state,
		joints:   joints,
		resolver: resolver,
		anim:     anim,
		logger:   logger,
	}
}

// Resolver returns the anchor resolver the binder uses.
func (b *Binder) Resolver() *Resolver { return b.resolver }

// Docked reports whether a joint exists.
func (b *Binder) Docked() bool { return b.state.HasJoint() }

// Toggle docks when detached and undocks when docked. Failures are logged
// and leave the state untouched.
func (b *Binder) Toggle() error {
	var err error
	if b.state.HasJoint() {
		err = b.Undock()
	} else {
		_, err = b.Dock()
	}
	switch {
	case err == nil:
	case errors.Is(err, ErrOutOfRange):
		b.logger.Info("too far from docking points")
	default:
		b.logger.Warn("dock toggle ignored", "error", err)
	}
	return err
}

// Dock attaches the character to the nearest anchor within range.
func (b *Binder) Dock() (Anchor, error) {
	if b.state.HasJoint() {
		return Anchor{}, ErrAlreadyDocked
	}
	character, ship := b.state.Character(), b.state.Ship()
	if character == nil || ship == nil {
		return Anchor{}, ErrMissingBody
	}

	match, err := b.resolver.Resolve(ship, character.Translation())
	if err != nil {
		return Anchor{}, err
	}

	params := physics.FixedJointParams{
		Anchor1: mgl64.Vec3{},
		Frame1:  match.Anchor.Lock,
		Anchor2: match.Anchor.Offset,
		Frame2:  mgl64.QuatIdent(),
	}
	joint, err := b.joints.CreateFixedJoint(params, character, ship, true)
	if err != nil {
		return Anchor{}, fmt.Errorf("dock at %s: %w", match.Anchor.ID, err)
	}
	b.state.SetJoint(joint)
	if b.anim != nil {
		b.anim.Reset()
	}

	b.logger.Debug("docked", "anchor", match.Anchor.ID.String(), "distance", match.Distance)
	return match.Anchor, nil
}

// Undock removes the active joint.
func (b *Binder) Undock() error {
	joint := b.state.Joint()
	if joint == nil {
		return ErrNotDocked
	}
	b.joints.RemoveJoint(joint, true)
	b.state.SetJoint(nil)
	b.logger.Debug("undocked")
	return nil
}

// DockedAnchor identifies the anchor of the active joint.
func (b *Binder) DockedAnchor() (Anchor, bool) {
	return AnchorOf(b.state.Joint(), b.resolver)
}

// AnchorOf identifies the anchor a joint was created at by comparing its
// ship-local anchor with the configured offsets.
func AnchorOf(joint physics.Joint, r *Resolver) (Anchor, bool) {
	if joint == nil || r == nil {
		return Anchor{}, false
	}
	return r.Identify(joint.Anchor2(), spatial.DefaultEpsilon)
}

// AtRudder reports whether the joint holds the character at the rudder.
func AtRudder(joint physics.Joint, r *Resolver) bool {
	a, ok := AnchorOf(joint, r)
	return ok && a.ID == CenterRudder
}
