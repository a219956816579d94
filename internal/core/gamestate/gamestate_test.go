package gamestate

import (
	"strings"
	"testing"

	"chosenoffset.com/broadside/internal/animation"
)

func TestInitializeAnimationSetFirstWriterWins(t *testing.T) {
	gs := New()

	first := animation.Set{animation.Idle: "Idle", animation.Walk: "Walk"}
	second := animation.Set{animation.Idle: "Other"}

	if !gs.InitializeAnimationSet(first) {
		t.Fatal("Expected first initialization to succeed")
	}
	if gs.InitializeAnimationSet(second) {
		t.Error("Expected second initialization to be ignored")
	}
	if got := gs.AnimationSet().Clip(animation.Idle); got != "Idle" {
		t.Errorf("Expected idle clip 'Idle', got '%s'", got)
	}

	// The stored set is a copy.
	first[animation.Idle] = "Mutated"
	if got := gs.AnimationSet().Clip(animation.Idle); got != "Idle" {
		t.Errorf("Expected stored set to be unaffected, got '%s'", got)
	}
}

func TestInitializeAnimationSetEmptyDoesNotBlock(t *testing.T) {
	gs := New()
	gs.InitializeAnimationSet(animation.Set{})
	if !gs.InitializeAnimationSet(animation.Set{animation.Idle: "Idle"}) {
		t.Error("Expected empty set not to count as initialized")
	}
}

func TestFlags(t *testing.T) {
	gs := New()

	if gs.Debug() || gs.Paused() || gs.BoundaryWarning() {
		t.Fatal("Expected all flags false on a new state")
	}
	gs.SetBoundaryWarning(true)
	if !gs.BoundaryWarning() {
		t.Error("Expected boundary warning true")
	}
	if !gs.ToggleDebug() {
		t.Error("Expected ToggleDebug to return true")
	}
	if gs.ToggleDebug() {
		t.Error("Expected second ToggleDebug to return false")
	}
	gs.SetPaused(true)
	if !gs.Paused() {
		t.Error("Expected paused")
	}
}

func TestResetKeepsHandlesAndSet(t *testing.T) {
	gs := New()
	gs.InitializeAnimationSet(animation.Set{animation.Idle: "Idle", animation.Run: "Run"})
	gs.SetCurrentAnimation("Run")
	gs.SetBoundaryWarning(true)
	gs.SetPaused(true)
	gs.SetDebug(true)

	gs.Reset()

	if !gs.Debug() {
		t.Error("Expected debug flag to survive reset")
	}

	if gs.CurrentAnimation() != "Idle" {
		t.Errorf("Expected idle after reset, got '%s'", gs.CurrentAnimation())
	}
	if gs.BoundaryWarning() || gs.Paused() || gs.HasJoint() {
		t.Error("Expected flags and joint cleared after reset")
	}
	if gs.AnimationSet().Clip(animation.Run) != "Run" {
		t.Error("Expected animation set to survive reset")
	}
}

func TestString(t *testing.T) {
	gs := New()
	s := gs.String()
	if !strings.Contains(s, "joint: false") {
		t.Errorf("Expected summary to mention joint, got %s", s)
	}
}
