package animation

// Store holds the current clip and the animation set. GameState implements it.
type Store interface {
	CurrentAnimation() string
	SetCurrentAnimation(name string)
	AnimationSet() Set
}

// Machine applies gameplay events to the current clip in a Store.
type Machine struct {
	store Store
}

// NewMachine creates a state machine over store.
func NewMachine(store Store) *Machine {
	return &Machine{store: store}
}

// Current returns the current clip name.
func (m *Machine) Current() string {
	return m.store.CurrentAnimation()
}

// CurrentRole returns the role of the current clip, if any.
func (m *Machine) CurrentRole() (Role, bool) {
	return m.store.AnimationSet().RoleOf(m.store.CurrentAnimation())
}

// Fire applies event and reports whether the transition was allowed.
func (m *Machine) Fire(event Role) bool {
	next, ok := Next(m.store.AnimationSet(), m.store.CurrentAnimation(), event)
	if !ok {
		return false
	}
	m.store.SetCurrentAnimation(next)
	return true
}

// Reset unconditionally returns to idle.
func (m *Machine) Reset() {
	m.store.SetCurrentAnimation(m.store.AnimationSet().Clip(Idle))
}

// Finish is called when a one-shot clip completes.
func (m *Machine) Finish() {
	set := m.store.AnimationSet()
	if is(set, m.store.CurrentAnimation(), JumpIdle) {
		m.store.SetCurrentAnimation(set.Clip(JumpLand))
		return
	}
	m.Reset()
}

// Idle fires the idle event.
func (m *Machine) Idle() bool { return m.Fire(Idle) }

// Walk fires the walk event.
func (m *Machine) Walk() bool { return m.Fire(Walk) }

// Run fires the run event.
func (m *Machine) Run() bool { return m.Fire(Run) }

// Jump fires the jump event.
func (m *Machine) Jump() bool { return m.Fire(Jump) }

// JumpIdle fires the jumpIdle event.
func (m *Machine) JumpIdle() bool { return m.Fire(JumpIdle) }

// JumpLand fires the jumpLand event.
func (m *Machine) JumpLand() bool { return m.Fire(JumpLand) }

// Fall fires the fall event.
func (m *Machine) Fall() bool { return m.Fire(Fall) }

// Next computes the clip after event given the current clip. The bool is
// false when the current clip blocks the event.
func Next(set Set, current string, event Role) (string, bool) {
	allowed := false
	switch event {
	case Idle:
		if is(set, current, JumpIdle) {
			return set.Clip(JumpLand), true
		}
		allowed = !is(set, current, Action1) && !is(set, current, Action2) &&
			!is(set, current, Action3) && !is(set, current, Action4)
	case Walk, Run:
		allowed = !is(set, current, Action4)
	case Jump, Fall:
		allowed = true
	case JumpIdle:
		allowed = is(set, current, Jump)
	case JumpLand:
		allowed = is(set, current, JumpIdle)
	case Action1, Action2, Action3:
		allowed = is(set, current, Idle)
	case Action4:
		allowed = is(set, current, Idle) || is(set, current, Walk) || is(set, current, Run)
	}
	if !allowed {
		return current, false
	}
	return set.Clip(event), true
}

// is reports whether current is the clip of role r. Unassigned roles never match.
func is(set Set, current string, r Role) bool {
	clip := set.Clip(r)
	return clip != "" && clip == current
}
