package animation

import "log/slog"

// DefaultFade is the cross-fade duration in seconds.
const DefaultFade = 0.2

// Animator plays whatever clip the Machine currently names. It keeps exactly
// one finished subscription, on the active clip, and removes it before
// switching clips.
type Animator struct {
	machine *Machine
	store   Store
	actions ActionSource
	fade    float64
	logger  *slog.Logger

	suspended   bool
	started     bool
	activeClip  string
	active      Action
	unsubscribe func()
}

// NewAnimator creates an animator. A nil logger uses slog.Default().
func NewAnimator(machine *Machine, store Store, actions ActionSource, logger *slog.Logger) *Animator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Animator{
		machine: machine,
		store:   store,
		actions: actions,
		fade:    DefaultFade,
		logger:  logger,
	}
}

// SetFade changes the cross-fade duration.
func (a *Animator) SetFade(seconds float64) {
	a.fade = seconds
}

// Suspend stops (or resumes) driving clips. While suspended the active clip
// keeps its last pose and state changes are not applied.
func (a *Animator) Suspend(suspended bool) {
	a.suspended = suspended
}

// Suspended reports whether driving is suspended.
func (a *Animator) Suspended() bool {
	return a.suspended
}

// ActiveClip returns the clip currently being played.
func (a *Animator) ActiveClip() string {
	return a.activeClip
}

// Sync starts the machine's current clip if it differs from the active one.
func (a *Animator) Sync() {
	if a.suspended {
		return
	}

	set := a.store.AnimationSet()
	clip := a.machine.Current()
	if clip == "" {
		clip = set.Clip(JumpIdle)
	}
	if a.started && clip == a.activeClip {
		return
	}

	a.stopActive()
	a.started = true
	a.activeClip = clip

	action, ok := a.actions.Action(clip)
	if !ok {
		a.logger.Debug("no action for clip", "clip", clip)
		return
	}

	action.Reset().FadeIn(a.fade)
	role, _ := set.RoleOf(clip)
	if IsOneShot(role) {
		action.SetLoop(LoopOnce, 0).SetClampWhenFinished(true)
	} else {
		action.SetLoop(LoopRepeat, 0).SetClampWhenFinished(false)
	}
	action.Play()

	a.active = action
	a.unsubscribe = action.OnFinished(func() {
		if a.activeClip == clip {
			a.machine.Finish()
		}
	})
}

// Close fades out the active clip and drops its subscription.
func (a *Animator) Close() {
	a.stopActive()
	a.started = false
	a.activeClip = ""
}

func (a *Animator) stopActive() {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
	if a.active != nil {
		a.active.FadeOut(a.fade)
		a.active = nil
	}
}
