package animation

import (
	"math"
	"sort"
)

// Mixer owns one Clip per clip name and advances them with the frame delta.
type Mixer struct {
	clips map[string]*Clip
}

// NewMixer creates clips from a name-to-duration table (seconds).
func NewMixer(durations map[string]float64) *Mixer {
	m := &Mixer{clips: make(map[string]*Clip, len(durations))}
	for name, d := range durations {
		m.clips[name] = newClip(name, d)
	}
	return m
}

// Action implements ActionSource.
func (m *Mixer) Action(clip string) (Action, bool) {
	c, ok := m.clips[clip]
	if !ok {
		return nil, false
	}
	return c, true
}

// Clip returns the concrete clip for inspection.
func (m *Mixer) Clip(name string) (*Clip, bool) {
	c, ok := m.clips[name]
	return c, ok
}

// Update advances every enabled clip by dt seconds. Finished events are
// delivered after all clips have advanced, in clip-name order.
func (m *Mixer) Update(dt float64) {
	names := make([]string, 0, len(m.clips))
	for name := range m.clips {
		names = append(names, name)
	}
	sort.Strings(names)

	var finished []*Clip
	for _, name := range names {
		c := m.clips[name]
		if c.advance(dt) {
			finished = append(finished, c)
		}
	}
	for _, c := range finished {
		c.emitFinished()
	}
}

// Clip is a minimal animation action: a playhead, a weight and a loop mode.
type Clip struct {
	name     string
	duration float64

	time     float64
	weight   float64
	fadeRate float64 // weight change per second, signed
	loop     LoopMode
	reps     int
	loops    int
	clamp    bool
	enabled  bool
	playing  bool

	nextID    int
	listeners map[int]func()
}

func newClip(name string, duration float64) *Clip {
	if duration <= 0 {
		duration = 1
	}
	return &Clip{name: name, duration: duration, loop: LoopRepeat, reps: math.MaxInt, listeners: map[int]func(){}}
}

// Name returns the clip name.
func (c *Clip) Name() string { return c.name }

// Time returns the playhead in seconds.
func (c *Clip) Time() float64 { return c.time }

// Weight returns the blend weight in [0, 1].
func (c *Clip) Weight() float64 { return c.weight }

// Playing reports whether the playhead is moving.
func (c *Clip) Playing() bool { return c.playing }

// Listeners returns the number of finished subscribers.
func (c *Clip) Listeners() int { return len(c.listeners) }

// Reset implements Action.
func (c *Clip) Reset() Action {
	c.time = 0
	c.loops = 0
	c.enabled = true
	c.fadeRate = 0
	return c
}

// FadeIn implements Action.
func (c *Clip) FadeIn(seconds float64) Action {
	c.enabled = true
	if seconds <= 0 {
		c.weight = 1
		c.fadeRate = 0
		return c
	}
	c.weight = 0
	c.fadeRate = 1 / seconds
	return c
}

// FadeOut implements Action.
func (c *Clip) FadeOut(seconds float64) Action {
	if seconds <= 0 {
		c.weight = 0
		c.fadeRate = 0
		c.enabled = false
		c.playing = false
		return c
	}
	c.fadeRate = -1 / seconds
	return c
}

// Play implements Action.
func (c *Clip) Play() Action {
	c.enabled = true
	c.playing = true
	return c
}

// SetLoop implements Action. For LoopOnce repetitions is ignored.
func (c *Clip) SetLoop(mode LoopMode, repetitions int) Action {
	c.loop = mode
	if repetitions <= 0 {
		repetitions = math.MaxInt
	}
	c.reps = repetitions
	return c
}

// SetClampWhenFinished implements Action.
func (c *Clip) SetClampWhenFinished(clamp bool) Action {
	c.clamp = clamp
	return c
}

// OnFinished implements Action.
func (c *Clip) OnFinished(fn func()) func() {
	c.nextID++
	id := c.nextID
	c.listeners[id] = fn
	return func() { delete(c.listeners, id) }
}

// advance moves the clip forward and reports whether it just finished.
func (c *Clip) advance(dt float64) bool {
	if !c.enabled {
		return false
	}
	if c.fadeRate != 0 {
		c.weight += c.fadeRate * dt
		switch {
		case c.weight >= 1:
			c.weight = 1
			c.fadeRate = 0
		case c.weight <= 0:
			c.weight = 0
			c.fadeRate = 0
			c.enabled = false
			c.playing = false
			return false
		}
	}
	if !c.playing {
		return false
	}

	c.time += dt
	if c.time < c.duration {
		return false
	}

	if c.loop == LoopRepeat && c.loops+1 < c.reps {
		c.loops++
		c.time = math.Mod(c.time, c.duration)
		return false
	}

	c.playing = false
	if c.clamp {
		c.time = c.duration
	} else {
		c.time = 0
		c.enabled = false
	}
	return true
}

func (c *Clip) emitFinished() {
	ids := make([]int, 0, len(c.listeners))
	for id := range c.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := c.listeners[id]; ok {
			fn()
		}
	}
}
