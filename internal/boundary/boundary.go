// Package boundary warns when the ship leaves the play area and brings it
// back to the centre when the countdown runs out.
package boundary

import (
	"log/slog"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/broadside/internal/core/clock"
	"chosenoffset.com/broadside/internal/core/gamestate"
	"chosenoffset.com/broadside/internal/core/spatial"
)

// Config holds the play-area size and countdown.
type Config struct {
	// Limit is the half-extent of the square play area on X and Z.
	Limit float64
	// Countdown is the number of ticks before the ship is teleported.
	Countdown int
	// TickInterval is the loop time between ticks.
	TickInterval time.Duration
}

// DefaultConfig returns the play-area defaults.
func DefaultConfig() Config {
	return Config{Limit: 50, Countdown: 20, TickInterval: time.Second}
}

// Monitor tracks the warning flag and runs the countdown on a loop scheduler.
type Monitor struct {
	cfg    Config
	state  *gamestate.GameState
	sched  *clock.Scheduler
	logger *slog.Logger

	timeLeft   int
	interval   clock.Handle
	onTeleport func(from mgl64.Vec3)
}

// NewMonitor creates a boundary monitor. logger may be nil.
func NewMonitor(cfg Config, state *gamestate.GameState, sched *clock.Scheduler, logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{cfg: cfg, state: state, sched: sched, logger: logger, timeLeft: cfg.Countdown}
}

// SetOnTeleport registers fn to run after the ship is returned to the centre.
func (m *Monitor) SetOnTeleport(fn func(from mgl64.Vec3)) {
	m.onTeleport = fn
}

// OutOfBounds reports whether pos lies outside the play area.
func (m *Monitor) OutOfBounds(pos mgl64.Vec3) bool {
	return math.Abs(pos.X()) > m.cfg.Limit || math.Abs(pos.Z()) > m.cfg.Limit
}

// Update recomputes the warning flag from the ship position and starts or
// cancels the countdown on an edge. Returns the current flag.
func (m *Monitor) Update() bool {
	ship := m.state.Ship()
	if ship == nil {
		return false
	}

	was := m.state.BoundaryWarning()
	now := m.OutOfBounds(ship.Translation())
	switch {
	case now && !was:
		m.timeLeft = m.cfg.Countdown
		m.interval.Cancel()
		m.interval = m.sched.Every(m.cfg.TickInterval, m.Tick)
		m.logger.Info("ship left the play area", "countdown", m.timeLeft)
	case !now && was:
		m.stop()
		m.logger.Info("ship back in the play area")
	}
	m.state.SetBoundaryWarning(now)
	return now
}

// Tick decrements the countdown and teleports the ship once it reaches zero.
// It does nothing unless a countdown is scheduled.
func (m *Monitor) Tick() {
	if !m.interval.Active() {
		return
	}
	m.timeLeft--
	if m.timeLeft > 0 || !m.state.BoundaryWarning() {
		return
	}

	ship := m.state.Ship()
	if ship == nil {
		m.state.SetBoundaryWarning(false)
		m.stop()
		return
	}
	pos := ship.Translation()
	ship.SetLinvel(mgl64.Vec3{}, true)
	ship.SetAngvel(mgl64.Vec3{}, true)
	ship.SetTranslation(mgl64.Vec3{0, pos.Y(), 0}, true)
	m.state.SetBoundaryWarning(false)
	m.stop()

	m.logger.Info("ship returned to the centre", "from", pos)
	if m.onTeleport != nil {
		m.onTeleport(pos)
	}
}

// TimeLeft returns the remaining countdown ticks.
func (m *Monitor) TimeLeft() int {
	return m.timeLeft
}

// Warning returns the current warning flag.
func (m *Monitor) Warning() bool {
	return m.state.BoundaryWarning()
}

// Counting reports whether the countdown interval is scheduled.
func (m *Monitor) Counting() bool {
	return m.interval.Active()
}

// HeadingToCenter returns the XZ-plane angle from the ship to the world
// origin, used by the HUD arrow.
func (m *Monitor) HeadingToCenter() (float64, bool) {
	ship := m.state.Ship()
	if ship == nil {
		return 0, false
	}
	return spatial.HeadingTo(ship.Translation(), mgl64.Vec3{}), true
}

func (m *Monitor) stop() {
	m.interval.Cancel()
	m.interval = clock.Handle{}
	m.timeLeft = m.cfg.Countdown
}
