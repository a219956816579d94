// Package gamestate holds the session state shared by the gameplay systems:
// body handles, the active joint, UI flags and the animation state.
// It is passed explicitly to every system instead of living in a global.
package gamestate

import (
	"fmt"
	"sync"

	"chosenoffset.com/broadside/internal/animation"
	"chosenoffset.com/broadside/internal/physics"
)

// GameState holds all session data. Mutate it only through its setters.
type GameState struct {
	mu sync.RWMutex

	character physics.Body
	ship      physics.Body
	joint     physics.Joint

	debug           bool
	paused          bool
	boundaryWarning bool

	curAnimation string
	animationSet animation.Set
}

// New creates an empty GameState.
func New() *GameState {
	return &GameState{animationSet: animation.Set{}}
}

// --- Body handles ---

// Character returns the character body, or nil before it is mounted.
func (gs *GameState) Character() physics.Body {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.character
}

// SetCharacter stores the character body.
func (gs *GameState) SetCharacter(b physics.Body) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.character = b
}

// Ship returns the ship body, or nil before it is mounted.
func (gs *GameState) Ship() physics.Body {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.ship
}

// SetShip stores the ship body.
func (gs *GameState) SetShip(b physics.Body) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.ship = b
}

// --- Joint ---

// Joint returns the active joint, or nil when detached.
func (gs *GameState) Joint() physics.Joint {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.joint
}

// SetJoint stores the active joint. Pass nil when the joint is removed.
func (gs *GameState) SetJoint(j physics.Joint) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.joint = j
}

// HasJoint reports whether a joint is active.
func (gs *GameState) HasJoint() bool {
	return gs.Joint() != nil
}

// --- Flags ---

// Debug returns the debug flag.
func (gs *GameState) Debug() bool {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.debug
}

// SetDebug sets the debug flag.
func (gs *GameState) SetDebug(debug bool) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.debug = debug
}

// ToggleDebug flips the debug flag and returns the new value.
func (gs *GameState) ToggleDebug() bool {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.debug = !gs.debug
	return gs.debug
}

// Paused returns the paused flag.
func (gs *GameState) Paused() bool {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.paused
}

// SetPaused sets the paused flag.
func (gs *GameState) SetPaused(paused bool) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.paused = paused
}

// BoundaryWarning returns the out-of-bounds warning flag.
func (gs *GameState) BoundaryWarning() bool {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.boundaryWarning
}

// SetBoundaryWarning sets the out-of-bounds warning flag.
func (gs *GameState) SetBoundaryWarning(warning bool) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.boundaryWarning = warning
}

// --- Animation ---

// CurrentAnimation implements animation.Store.
func (gs *GameState) CurrentAnimation() string {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.curAnimation
}

// SetCurrentAnimation implements animation.Store.
func (gs *GameState) SetCurrentAnimation(name string) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.curAnimation = name
}

// AnimationSet implements animation.Store. The returned set must not be modified.
func (gs *GameState) AnimationSet() animation.Set {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.animationSet
}

// InitializeAnimationSet stores set unless a non-empty set is already
// present. It reports whether set was stored.
func (gs *GameState) InitializeAnimationSet(set animation.Set) bool {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	if !gs.animationSet.Empty() {
		return false
	}
	gs.animationSet = set.Clone()
	return true
}

// Reset clears the joint, the paused and boundary-warning flags and returns
// the clip to idle. The body handles and the animation set live as long as
// the loaded scene, and the debug flag is a user preference, so all three
// are kept.
func (gs *GameState) Reset() {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.joint = nil
	gs.paused = false
	gs.boundaryWarning = false
	gs.curAnimation = gs.animationSet.Clip(animation.Idle)
}

// String returns a one-line summary for debug output.
func (gs *GameState) String() string {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return fmt.Sprintf("GameState{character: %t, ship: %t, joint: %t, debug: %t, paused: %t, warning: %t, animation: %q}",
		gs.character != nil, gs.ship != nil, gs.joint != nil, gs.debug, gs.paused, gs.boundaryWarning, gs.curAnimation)
}
