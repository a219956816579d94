// Package hud draws the heads-up display: the out-of-bounds warning with its
// countdown and homing arrow, the dock hint, transient messages and the
// debug readout.
package hud

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/broadside/internal/core/spatial"
	"chosenoffset.com/broadside/internal/render"
)

// WarningText is the headline of the out-of-bounds panel.
const WarningText = "Off the map, matey!"

// HUDConfig defines what to display in the HUD
type HUDConfig struct {
	ShowHints      bool          `yaml:"show_hints"`      // Show the dock hint
	ArrowSmoothing float64       `yaml:"arrow_smoothing"` // Slerp factor per frame (0-1]
	MessageTTL     time.Duration `yaml:"message_ttl"`     // How long messages stay up
	MaxMessages    int           `yaml:"max_messages"`    // Older messages are dropped
	Opacity        float64       `yaml:"opacity"`         // Background opacity (0-1)
}

// DefaultConfig returns a sensible default HUD configuration
func DefaultConfig() *HUDConfig {
	return &HUDConfig{
		ShowHints:      true,
		ArrowSmoothing: 0.18,
		MessageTTL:     3 * time.Second,
		MaxMessages:    4,
		Opacity:        0.7,
	}
}

// Frame is the per-frame data the HUD displays.
type Frame struct {
	Warning  bool
	TimeLeft int
	// Heading is the XZ angle from the ship to the world centre.
	Heading   float64
	HasTarget bool

	Hint         string
	HoldProgress float64

	Debug []string
}

type message struct {
	text string
	ttl  time.Duration
}

// HUD manages the heads-up display
type HUD struct {
	config       *HUDConfig
	screenWidth  int
	screenHeight int

	frame    Frame
	arrow    mgl64.Quat
	arrowSet bool
	messages []message
}

// New creates a new HUD with the given configuration
func New(config *HUDConfig, screenWidth, screenHeight int) *HUD {
	if config == nil {
		config = DefaultConfig()
	}
	return &HUD{
		config:       config,
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
		arrow:        mgl64.QuatIdent(),
	}
}

// SetScreenSize updates the screen dimensions
func (h *HUD) SetScreenSize(width, height int) {
	h.screenWidth = width
	h.screenHeight = height
}

// Push shows a transient message.
func (h *HUD) Push(text string) {
	h.messages = append(h.messages, message{text: text, ttl: h.config.MessageTTL})
	if h.config.MaxMessages > 0 && len(h.messages) > h.config.MaxMessages {
		h.messages = h.messages[len(h.messages)-h.config.MaxMessages:]
	}
}

// Messages returns the visible messages, oldest first.
func (h *HUD) Messages() []string {
	out := make([]string, len(h.messages))
	for i, m := range h.messages {
		out[i] = m.text
	}
	return out
}

// Update stores the frame data, ages messages and eases the arrow towards
// the current heading.
func (h *HUD) Update(f Frame, dt time.Duration) {
	h.frame = f

	live := h.messages[:0]
	for _, m := range h.messages {
		m.ttl -= dt
		if m.ttl > 0 {
			live = append(live, m)
		}
	}
	h.messages = live

	if !f.HasTarget {
		return
	}
	target := headingQuat(f.Heading)
	if !h.arrowSet {
		h.arrow = target
		h.arrowSet = true
		return
	}
	h.arrow = slerp(h.arrow, target, h.config.ArrowSmoothing)
}

// ArrowAngle returns the smoothed arrow direction as an XZ angle.
func (h *HUD) ArrowAngle() float64 {
	v := h.arrow.Rotate(mgl64.Vec3{1, 0, 0})
	return math.Atan2(v.Z(), v.X())
}

// headingQuat maps an XZ angle (from +X towards +Z) to a rotation about Y.
func headingQuat(angle float64) mgl64.Quat {
	return mgl64.QuatRotate(-angle, spatial.WorldUp)
}

// slerp interpolates along the shorter arc.
func slerp(from, to mgl64.Quat, t float64) mgl64.Quat {
	if from.Dot(to) < 0 {
		to = to.Scale(-1)
	}
	return mgl64.QuatSlerp(from, to, t).Normalize()
}

// Draw renders the HUD to the screen
func (h *HUD) Draw(r render.Renderer, screen render.Image) {
	if h.frame.Warning {
		h.drawWarning(r, screen)
	}
	if h.config.ShowHints && h.frame.Hint != "" {
		h.drawHint(r, screen)
	}
	h.drawMessages(r, screen)
	if len(h.frame.Debug) > 0 {
		h.drawDebug(r, screen)
	}
}

// drawWarning draws the centred warning panel with countdown and arrow
func (h *HUD) drawWarning(r render.Renderer, screen render.Image) {
	const panelWidth, panelHeight = 220, 110
	x := float32(h.screenWidth-panelWidth) / 2
	y := float32(24)

	alpha := uint8(h.config.Opacity * 255)
	r.FillRect(screen, x, y, panelWidth, panelHeight, color.RGBA{90, 20, 20, alpha})
	r.StrokeRect(screen, x, y, panelWidth, panelHeight, 2, color.RGBA{220, 160, 60, 255})

	h.drawCentered(r, screen, WarningText, int(y)+10)
	h.drawCentered(r, screen, fmt.Sprintf("Back to the centre in %d", h.frame.TimeLeft), int(y)+28)

	// Arrow towards the centre
	cx := x + panelWidth/2
	cy := y + 76
	angle := h.ArrowAngle()
	dx, dy := float32(math.Cos(angle)), float32(math.Sin(angle))
	const length = 22
	tipX, tipY := cx+dx*length, cy+dy*length
	tailX, tailY := cx-dx*length, cy-dy*length
	gold := color.RGBA{240, 200, 80, 255}
	r.StrokeLine(screen, tailX, tailY, tipX, tipY, 3, gold)
	for _, side := range []float64{2.5, -2.5} {
		wx := float32(math.Cos(angle+side)) * 10
		wy := float32(math.Sin(angle+side)) * 10
		r.StrokeLine(screen, tipX, tipY, tipX+wx, tipY+wy, 3, gold)
	}
}

// drawHint draws the dock hint and hold progress at the bottom
func (h *HUD) drawHint(r render.Renderer, screen render.Image) {
	y := h.screenHeight - 48
	h.drawCentered(r, screen, h.frame.Hint, y)

	if h.frame.HoldProgress <= 0 {
		return
	}
	const barWidth, barHeight = 120, 6
	x := float32(h.screenWidth-barWidth) / 2
	by := float32(y + 20)
	r.FillRect(screen, x, by, barWidth, barHeight, color.RGBA{40, 40, 50, 200})
	r.FillRect(screen, x, by, float32(barWidth*math.Min(h.frame.HoldProgress, 1)), barHeight, color.RGBA{120, 200, 120, 255})
}

// drawMessages draws transient messages in the bottom-left corner
func (h *HUD) drawMessages(r render.Renderer, screen render.Image) {
	y := h.screenHeight - 16*len(h.messages) - 80
	for _, m := range h.messages {
		h.drawText(r, screen, m.text, 10, y)
		y += 16
	}
}

// drawDebug draws the debug readout in the top-left corner
func (h *HUD) drawDebug(r render.Renderer, screen render.Image) {
	width := 0
	for _, line := range h.frame.Debug {
		if w, _ := r.MeasureText(line, 1); w > width {
			width = w
		}
	}
	height := 16*len(h.frame.Debug) + 8
	alpha := uint8(h.config.Opacity * 255)
	r.FillRect(screen, 6, 6, float32(width+12), float32(height), color.RGBA{20, 20, 30, alpha})

	y := 10
	for _, line := range h.frame.Debug {
		h.drawText(r, screen, line, 12, y)
		y += 16
	}
}

func (h *HUD) drawCentered(r render.Renderer, screen render.Image, text string, y int) {
	w, _ := r.MeasureText(text, 1)
	h.drawText(r, screen, text, (h.screenWidth-w)/2, y)
}

// drawText draws text with a shadow for readability
func (h *HUD) drawText(r render.Renderer, screen render.Image, text string, x, y int) {
	r.DrawText(screen, text, x+1, y+1, color.Black, 1)
	r.DrawText(screen, text, x, y, color.White, 1)
}
