package game

import (
	"image/color"

	"chosenoffset.com/broadside/internal/input"
	"chosenoffset.com/broadside/internal/render"
)

// State is the top-level mode of the manager.
type State int

const (
	StatePlaying State = iota
	StatePaused
)

const pausedText = "PAUSED - press Esc to resume"

var pauseShade = color.RGBA{0, 0, 0, 140}

// Manager handles the overall game state, including pausing.
type Manager struct {
	ScreenWidth  int
	ScreenHeight int
	State        State
	Game         *Game
	Renderer     render.Renderer
	InputMgr     render.InputManager
}

// NewManager creates a new game manager around g.
func NewManager(g *Game) *Manager {
	return &Manager{
		ScreenWidth:  g.ScreenWidth,
		ScreenHeight: g.ScreenHeight,
		State:        StatePlaying,
		Game:         g,
		Renderer:     g.Renderer,
		InputMgr:     g.InputMgr,
	}
}

// Update updates the game state.
func (m *Manager) Update() error {
	pause := m.Game.Input.Bindings().JustPressed(m.InputMgr, input.Pause)

	switch m.State {
	case StatePlaying:
		if pause {
			m.setState(StatePaused)
			return nil
		}
		return m.Game.Update()
	case StatePaused:
		if pause {
			m.setState(StatePlaying)
		}
	}
	return nil
}

func (m *Manager) setState(s State) {
	m.State = s
	m.Game.GameState.SetPaused(s == StatePaused)
	m.Game.Logger.Debug("state changed", "paused", s == StatePaused)
}

// Draw draws the current state.
func (m *Manager) Draw(screen render.Image) {
	m.Game.Draw(screen)
	if m.State != StatePaused || m.Renderer == nil {
		return
	}
	w, h := screen.Size()
	m.Renderer.FillRect(screen, 0, 0, float32(w), float32(h), pauseShade)
	tw, th := m.Renderer.MeasureText(pausedText, 1)
	m.Renderer.DrawText(screen, pausedText, (w-tw)/2, (h-th)/2, color.White, 1)
}

// Layout returns the game's logical screen size.
func (m *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	if m.ScreenWidth != outsideWidth || m.ScreenHeight != outsideHeight {
		m.ScreenWidth, m.ScreenHeight = outsideWidth, outsideHeight
		m.Game.ScreenWidth, m.Game.ScreenHeight = outsideWidth, outsideHeight
		m.Game.GameHUD.SetScreenSize(outsideWidth, outsideHeight)
	}
	return m.ScreenWidth, m.ScreenHeight
}
