// Package animation maps gameplay events to named animation clips and drives
// clip playback, including one-shot clips that reset themselves when done.
package animation

// Role is a logical animation slot.
type Role string

// Animation roles.
const (
	Idle     Role = "idle"
	Walk     Role = "walk"
	Run      Role = "run"
	Jump     Role = "jump"
	JumpIdle Role = "jumpIdle"
	JumpLand Role = "jumpLand"
	Fall     Role = "fall"
	Action1  Role = "action1"
	Action2  Role = "action2"
	Action3  Role = "action3"
	Action4  Role = "action4"
)

// Roles lists every role in a stable order.
var Roles = []Role{Idle, Walk, Run, Jump, JumpIdle, JumpLand, Fall, Action1, Action2, Action3, Action4}

// Set maps roles to clip names. Missing roles map to "".
type Set map[Role]string

// Clip returns the clip for r.
func (s Set) Clip(r Role) string {
	return s[r]
}

// Empty reports whether no role has a clip.
func (s Set) Empty() bool {
	for _, clip := range s {
		if clip != "" {
			return false
		}
	}
	return true
}

// Clone copies the set.
func (s Set) Clone() Set {
	c := make(Set, len(s))
	for r, clip := range s {
		c[r] = clip
	}
	return c
}

// RoleOf returns the first role (in Roles order) whose clip is name.
func (s Set) RoleOf(name string) (Role, bool) {
	if name == "" {
		return "", false
	}
	for _, r := range Roles {
		if s[r] == name {
			return r, true
		}
	}
	return "", false
}

// IsOneShot reports whether clips in role r play once and clamp.
func IsOneShot(r Role) bool {
	switch r {
	case Jump, JumpLand, Action1, Action2, Action3, Action4:
		return true
	}
	return false
}
