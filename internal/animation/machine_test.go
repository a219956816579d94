package animation

import "testing"

type memStore struct {
	current string
	set     Set
}

func (s *memStore) CurrentAnimation() string        { return s.current }
func (s *memStore) SetCurrentAnimation(name string) { s.current = name }
func (s *memStore) AnimationSet() Set               { return s.set }

func fullSet() Set {
	set := Set{}
	for _, r := range Roles {
		set[r] = "clip_" + string(r)
	}
	return set
}

func TestTransitionTable(t *testing.T) {
	set := fullSet()
	c := func(r Role) string { return set.Clip(r) }

	tests := []struct {
		current  Role
		event    Role
		expected Role
	}{
		// idle
		{Idle, Idle, Idle},
		{Walk, Idle, Idle},
		{Run, Idle, Idle},
		{Jump, Idle, Idle},
		{JumpIdle, Idle, JumpLand},
		{JumpLand, Idle, Idle},
		{Fall, Idle, Idle},
		{Action1, Idle, Action1},
		{Action2, Idle, Action2},
		{Action3, Idle, Action3},
		{Action4, Idle, Action4},
		// walk / run
		{Idle, Walk, Walk},
		{Run, Walk, Walk},
		{Action1, Walk, Walk},
		{Action4, Walk, Action4},
		{Idle, Run, Run},
		{Walk, Run, Run},
		{Action4, Run, Action4},
		// jump / fall
		{Idle, Jump, Jump},
		{Action4, Jump, Jump},
		{JumpIdle, Jump, Jump},
		{Walk, Fall, Fall},
		{Action2, Fall, Fall},
		// jumpIdle / jumpLand
		{Jump, JumpIdle, JumpIdle},
		{Idle, JumpIdle, Idle},
		{Fall, JumpIdle, Fall},
		{JumpIdle, JumpLand, JumpLand},
		{Jump, JumpLand, Jump},
		{Idle, JumpLand, Idle},
		// action1..3
		{Idle, Action1, Action1},
		{Walk, Action1, Walk},
		{Run, Action2, Run},
		{Idle, Action2, Action2},
		{Idle, Action3, Action3},
		{Jump, Action3, Jump},
		{Action1, Action2, Action1},
		// action4
		{Idle, Action4, Action4},
		{Walk, Action4, Action4},
		{Run, Action4, Action4},
		{Jump, Action4, Jump},
		{Action1, Action4, Action1},
		{Fall, Action4, Fall},
	}

	for _, tt := range tests {
		t.Run(string(tt.current)+"_"+string(tt.event), func(t *testing.T) {
			store := &memStore{current: c(tt.current), set: set}
			m := NewMachine(store)
			m.Fire(tt.event)
			if store.current != c(tt.expected) {
				t.Errorf("(%s, %s) -> %s, expected %s", tt.current, tt.event, store.current, c(tt.expected))
			}
		})
	}
}

func TestFireReportsBlockedTransitions(t *testing.T) {
	store := &memStore{current: "clip_walk", set: fullSet()}
	m := NewMachine(store)
	if m.Fire(Action1) {
		t.Error("Expected action1 from walk to be blocked")
	}
	if !m.Fire(Action4) {
		t.Error("Expected action4 from walk to be allowed")
	}
}

func TestMissingRolesNeverMatch(t *testing.T) {
	// action1 and action4 unassigned, current clip empty.
	set := Set{Idle: "Idle", Walk: "Walk", JumpIdle: "JumpIdle", JumpLand: "JumpLand"}
	store := &memStore{set: set}
	m := NewMachine(store)

	if !m.Idle() {
		t.Fatal("Expected idle from empty clip to be allowed")
	}
	if store.current != "Idle" {
		t.Errorf("Expected 'Idle', got '%s'", store.current)
	}
	if !m.Walk() {
		t.Error("Expected walk allowed when action4 is unassigned")
	}
}

func TestResetAndFinish(t *testing.T) {
	set := fullSet()
	store := &memStore{current: set.Clip(Action2), set: set}
	m := NewMachine(store)

	m.Finish()
	if store.current != set.Clip(Idle) {
		t.Errorf("Expected idle after finish, got %s", store.current)
	}

	store.current = set.Clip(JumpIdle)
	m.Finish()
	if store.current != set.Clip(JumpLand) {
		t.Errorf("Expected jumpLand after finishing from jumpIdle, got %s", store.current)
	}

	store.current = set.Clip(Action4)
	m.Reset()
	if store.current != set.Clip(Idle) {
		t.Errorf("Expected reset to force idle, got %s", store.current)
	}
}

func TestCurrentRole(t *testing.T) {
	set := fullSet()
	m := NewMachine(&memStore{current: set.Clip(Run), set: set})
	role, ok := m.CurrentRole()
	if !ok || role != Run {
		t.Errorf("Expected role run, got %s (%v)", role, ok)
	}
}
