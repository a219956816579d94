// Package input maps keyboard and gamepad state to named game actions.
package input

import (
	"time"

	"chosenoffset.com/broadside/internal/render"
)

// Action is a named control.
type Action int

const (
	Forward Action = iota
	Backward
	Leftward
	Rightward
	Jump
	Run
	Action1
	Action2
	Action3
	Action4
	Pause
	Debug
	Dock
	numActions
)

var actionNames = [numActions]string{
	"forward", "backward", "leftward", "rightward", "jump", "run",
	"action1", "action2", "action3", "action4", "pause", "debug", "dock",
}

func (a Action) String() string {
	if a < 0 || a >= numActions {
		return "unknown"
	}
	return actionNames[a]
}

// ParseAction returns the action with the given name.
func ParseAction(name string) (Action, bool) {
	for i, n := range actionNames {
		if n == name {
			return Action(i), true
		}
	}
	return 0, false
}

// Bindings maps each action to the keys that trigger it.
type Bindings map[Action][]render.Key

// DefaultBindings returns the standard keyboard layout.
func DefaultBindings() Bindings {
	return Bindings{
		Forward:   {render.KeyUp, render.KeyW},
		Backward:  {render.KeyDown, render.KeyS},
		Leftward:  {render.KeyLeft, render.KeyA},
		Rightward: {render.KeyRight, render.KeyD},
		Jump:      {render.KeySpace},
		Run:       {render.KeyShift},
		Action1:   {render.Key1},
		Action2:   {render.Key2},
		Action3:   {render.Key3},
		Action4:   {render.KeyF},
		Pause:     {render.KeyEscape, render.KeyP},
		Debug:     {render.KeyF1},
		Dock:      {render.KeyE},
	}
}

// JustPressed reports whether any key bound to a went down this frame.
func (b Bindings) JustPressed(im render.InputManager, a Action) bool {
	for _, k := range b[a] {
		if im.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// Config controls the dock trigger.
type Config struct {
	DockHold      time.Duration
	GamepadButton int
}

// DefaultConfig returns the dock trigger defaults.
func DefaultConfig() Config {
	return Config{DockHold: 500 * time.Millisecond, GamepadButton: 5}
}

// Snapshot is the input state for one frame.
type Snapshot struct {
	held [numActions]bool
	just [numActions]bool
	// DockTriggered is true on the frame the dock key hold completes or the
	// gamepad dock button goes down.
	DockTriggered bool
}

// Press marks a as held, and as just pressed when just is true. Used to
// build snapshots without a device.
func (s *Snapshot) Press(a Action, just bool) {
	if a < 0 || a >= numActions {
		return
	}
	s.held[a] = true
	s.just[a] = s.just[a] || just
}

// Held reports whether any key bound to a is down.
func (s Snapshot) Held(a Action) bool {
	return a >= 0 && a < numActions && s.held[a]
}

// JustPressed reports whether a key bound to a went down this frame.
func (s Snapshot) JustPressed(a Action) bool {
	return a >= 0 && a < numActions && s.just[a]
}

// Poller reads an InputManager once per frame.
type Poller struct {
	im       render.InputManager
	bindings Bindings
	cfg      Config

	hold    *HoldDetector
	padDown bool
}

// NewPoller creates a poller with the given bindings.
func NewPoller(im render.InputManager, bindings Bindings, cfg Config) *Poller {
	if bindings == nil {
		bindings = DefaultBindings()
	}
	return &Poller{
		im:       im,
		bindings: bindings,
		cfg:      cfg,
		hold:     NewHoldDetector(cfg.DockHold),
	}
}

// Poll samples the devices. dt is the time since the previous poll.
func (p *Poller) Poll(dt time.Duration) Snapshot {
	var s Snapshot
	for a, keys := range p.bindings {
		if a < 0 || a >= numActions {
			continue
		}
		for _, k := range keys {
			if p.im.IsKeyPressed(k) {
				s.held[a] = true
			}
			if p.im.IsKeyJustPressed(k) {
				s.just[a] = true
			}
		}
	}

	held := p.hold.Update(s.held[Dock], dt)

	padDown := false
	for _, id := range p.im.GamepadIDs() {
		if p.im.IsGamepadButtonPressed(id, p.cfg.GamepadButton) {
			padDown = true
			break
		}
	}
	pad := padDown && !p.padDown
	p.padDown = padDown

	s.DockTriggered = held || pad
	return s
}

// HoldDetector fires once when a button has been held for a duration.
type HoldDetector struct {
	duration time.Duration
	held     time.Duration
	fired    bool
}

// NewHoldDetector creates a detector for the given hold time.
func NewHoldDetector(d time.Duration) *HoldDetector {
	return &HoldDetector{duration: d}
}

// Update advances the detector. It returns true exactly once per hold.
func (h *HoldDetector) Update(pressed bool, dt time.Duration) bool {
	if !pressed {
		h.held = 0
		h.fired = false
		return false
	}
	h.held += dt
	if h.fired || h.held < h.duration {
		return false
	}
	h.fired = true
	return true
}

// Progress returns how far the current hold is towards firing, from 0 to 1.
func (h *HoldDetector) Progress() float64 {
	if h.fired || h.duration <= 0 {
		if h.held > 0 {
			return 1
		}
		return 0
	}
	p := float64(h.held) / float64(h.duration)
	if p > 1 {
		p = 1
	}
	return p
}

// Bindings returns the poller's key bindings.
func (p *Poller) Bindings() Bindings {
	return p.bindings
}

// DockHoldProgress returns the dock key hold progress for the HUD.
func (p *Poller) DockHoldProgress() float64 {
	return p.hold.Progress()
}
