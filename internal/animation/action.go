package animation

// LoopMode selects how a clip repeats.
type LoopMode int

const (
	// LoopRepeat restarts the clip when it ends.
	LoopRepeat LoopMode = iota
	// LoopOnce plays the clip a single time and emits finished.
	LoopOnce
)

// Action is a playback handle for one clip.
type Action interface {
	Reset() Action
	FadeIn(seconds float64) Action
	FadeOut(seconds float64) Action
	Play() Action
	SetLoop(mode LoopMode, repetitions int) Action
	SetClampWhenFinished(clamp bool) Action
	// OnFinished subscribes fn to the finished event and returns the
	// function that removes the subscription.
	OnFinished(fn func()) (unsubscribe func())
}

// ActionSource looks up the action for a clip name.
type ActionSource interface {
	Action(clip string) (Action, bool)
}
