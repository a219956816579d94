package boundary

import (
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/broadside/internal/core/clock"
	"chosenoffset.com/broadside/internal/core/gamestate"
	"chosenoffset.com/broadside/internal/physics"
)

func setup(pos mgl64.Vec3) (*Monitor, *clock.Scheduler, *physics.RigidBody) {
	world := physics.NewWorld(mgl64.Vec3{}, 1.0/60.0)
	ship := world.NewBody(physics.BodyDesc{Name: "ship", Type: physics.Kinematic, Position: pos})
	state := gamestate.New()
	state.SetShip(ship)
	sched := clock.NewScheduler()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewMonitor(DefaultConfig(), state, sched, logger), sched, ship
}

func TestWarningFlag(t *testing.T) {
	tests := []struct {
		name string
		pos  mgl64.Vec3
		want bool
	}{
		{"centre", mgl64.Vec3{0, 3, 0}, false},
		{"inside corner", mgl64.Vec3{49, 3, 49}, false},
		{"on the edge", mgl64.Vec3{50, 3, -50}, false},
		{"past x", mgl64.Vec3{51, 3, 0}, true},
		{"past negative z", mgl64.Vec3{0, 3, -50.5}, true},
		{"y is ignored", mgl64.Vec3{0, 500, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _, _ := setup(tt.pos)
			if got := m.Update(); got != tt.want {
				t.Errorf("Expected warning %v, got %v", tt.want, got)
			}
			if m.Warning() != tt.want {
				t.Errorf("Expected state flag %v, got %v", tt.want, m.Warning())
			}
		})
	}
}

func TestCountdownTeleports(t *testing.T) {
	m, sched, ship := setup(mgl64.Vec3{51, 3, 0})
	ship.SetLinvel(mgl64.Vec3{2, 0, 0}, true)
	ship.SetAngvel(mgl64.Vec3{0, 0.4, 0}, true)

	var teleportedFrom mgl64.Vec3
	m.SetOnTeleport(func(from mgl64.Vec3) { teleportedFrom = from })

	m.Update()
	if !m.Counting() {
		t.Fatal("Expected countdown to start on the warning edge")
	}

	for i := 0; i < 19; i++ {
		sched.Advance(time.Second)
		m.Update()
	}
	if m.TimeLeft() != 1 {
		t.Errorf("Expected 1 tick left, got %d", m.TimeLeft())
	}
	if ship.Translation().X() != 51 {
		t.Errorf("Expected ship not yet moved, got %v", ship.Translation())
	}

	sched.Advance(time.Second)
	if got := ship.Translation(); got != (mgl64.Vec3{0, 3, 0}) {
		t.Errorf("Expected ship at (0,3,0), got %v", got)
	}
	if ship.Linvel() != (mgl64.Vec3{}) || ship.Angvel() != (mgl64.Vec3{}) {
		t.Errorf("Expected zero velocities, got %v %v", ship.Linvel(), ship.Angvel())
	}
	if m.Warning() {
		t.Error("Expected warning cleared after teleport")
	}
	if m.Counting() || sched.Len() != 0 {
		t.Errorf("Expected interval cancelled, scheduled=%d", sched.Len())
	}
	if m.Update() {
		t.Error("Expected no warning at the centre")
	}
	if teleportedFrom != (mgl64.Vec3{51, 3, 0}) {
		t.Errorf("Expected teleport callback from (51,3,0), got %v", teleportedFrom)
	}
}

func TestReturningCancelsCountdown(t *testing.T) {
	m, sched, ship := setup(mgl64.Vec3{60, 0, 0})
	m.Update()
	for i := 0; i < 5; i++ {
		sched.Advance(time.Second)
	}
	if m.TimeLeft() != 15 {
		t.Errorf("Expected 15 ticks left, got %d", m.TimeLeft())
	}

	ship.SetTranslation(mgl64.Vec3{10, 0, 0}, true)
	m.Update()
	if m.Counting() || sched.Len() != 0 {
		t.Error("Expected countdown cancelled after returning")
	}
	if m.TimeLeft() != 20 {
		t.Errorf("Expected countdown reset to 20, got %d", m.TimeLeft())
	}

	for i := 0; i < 30; i++ {
		sched.Advance(time.Second)
	}
	if ship.Translation().X() != 10 {
		t.Errorf("Expected no teleport after cancel, got %v", ship.Translation())
	}
}

func TestLeavingAgainRestarts(t *testing.T) {
	m, sched, ship := setup(mgl64.Vec3{60, 0, 0})
	m.Update()
	for i := 0; i < 10; i++ {
		sched.Advance(time.Second)
	}

	ship.SetTranslation(mgl64.Vec3{0, 0, 0}, true)
	m.Update()
	ship.SetTranslation(mgl64.Vec3{0, 0, -70}, true)
	m.Update()

	if m.TimeLeft() != 20 {
		t.Errorf("Expected fresh countdown of 20, got %d", m.TimeLeft())
	}
	if sched.Len() != 1 {
		t.Errorf("Expected exactly one interval, got %d", sched.Len())
	}
}

func TestHeadingToCenter(t *testing.T) {
	m, _, _ := setup(mgl64.Vec3{60, 0, 0})
	got, ok := m.HeadingToCenter()
	if !ok {
		t.Fatal("Expected a heading")
	}
	if math.Abs(got-math.Pi) > 1e-9 {
		t.Errorf("Expected heading pi, got %f", got)
	}

	empty := NewMonitor(DefaultConfig(), gamestate.New(), clock.NewScheduler(), nil)
	if _, ok := empty.HeadingToCenter(); ok {
		t.Error("Expected no heading without a ship")
	}
	if empty.Update() {
		t.Error("Expected no warning without a ship")
	}
}

func TestTickWithoutCountdownIsIgnored(t *testing.T) {
	m, _, ship := setup(mgl64.Vec3{51, 3, 0})

	for i := 0; i < 25; i++ {
		m.Tick()
	}
	if got := m.TimeLeft(); got != 20 {
		t.Errorf("Expected countdown to stay at 20, got %d", got)
	}
	if got := ship.Translation(); got != (mgl64.Vec3{51, 3, 0}) {
		t.Errorf("Expected ship not to move, got %v", got)
	}
}
