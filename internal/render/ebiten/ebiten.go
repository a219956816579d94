package ebiten

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"chosenoffset.com/broadside/internal/render"
)

// EbitenRenderer implements the Renderer interface using Ebiten.
type EbitenRenderer struct{}

// NewRenderer creates a new Ebiten-based render.
func NewRenderer() render.Renderer {
	return &EbitenRenderer{}
}

// NewImage creates a new image with the given dimensions.
func (r *EbitenRenderer) NewImage(width, height int) render.Image {
	return &EbitenImage{img: ebiten.NewImage(width, height)}
}

// FillCircle draws a filled circle on the destination image.
func (r *EbitenRenderer) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {
	vector.DrawFilledCircle(unwrap(dst), x, y, radius, clr, true)
}

// StrokeCircle draws a circle outline on the destination image.
func (r *EbitenRenderer) StrokeCircle(dst render.Image, x, y, radius float32, strokeWidth float32, clr color.Color) {
	vector.StrokeCircle(unwrap(dst), x, y, radius, strokeWidth, clr, true)
}

// StrokeLine draws a line segment on the destination image.
func (r *EbitenRenderer) StrokeLine(dst render.Image, x0, y0, x1, y1 float32, strokeWidth float32, clr color.Color) {
	vector.StrokeLine(unwrap(dst), x0, y0, x1, y1, strokeWidth, clr, true)
}

// FillRect draws a filled rectangle on the destination image.
func (r *EbitenRenderer) FillRect(dst render.Image, x, y, width, height float32, clr color.Color) {
	vector.DrawFilledRect(unwrap(dst), x, y, width, height, clr, false)
}

// StrokeRect draws a rectangle outline on the destination image.
func (r *EbitenRenderer) StrokeRect(dst render.Image, x, y, width, height float32, strokeWidth float32, clr color.Color) {
	vector.StrokeRect(unwrap(dst), x, y, width, height, strokeWidth, clr, false)
}

// DrawText draws text on the destination image using the debug font.
// The debug font is always white, so clr and scale are ignored.
func (r *EbitenRenderer) DrawText(dst render.Image, str string, x, y int, clr color.Color, scale float64) {
	ebitenutil.DebugPrintAt(unwrap(dst), str, x, y)
}

// MeasureText measures the width and height of text with the given scale.
// This is an approximation based on the debug font's character size.
func (r *EbitenRenderer) MeasureText(str string, scale float64) (width, height int) {
	// Debug font is approximately 6x16 pixels per character
	charWidth := 6.0
	charHeight := 16.0
	return int(float64(len(str)) * charWidth * scale), int(charHeight * scale)
}

// EbitenImage wraps an ebiten.Image to implement the render.Image interface.
type EbitenImage struct {
	img *ebiten.Image
}

func unwrap(i render.Image) *ebiten.Image {
	return i.(*EbitenImage).img
}

// Bounds returns the bounds of the image.
func (i *EbitenImage) Bounds() image.Rectangle {
	return i.img.Bounds()
}

// Size returns the width and height of the image.
func (i *EbitenImage) Size() (width, height int) {
	return i.img.Bounds().Dx(), i.img.Bounds().Dy()
}

// Fill fills the entire image with the given color.
func (i *EbitenImage) Fill(clr color.Color) {
	i.img.Fill(clr)
}

// Clear clears the image to transparent.
func (i *EbitenImage) Clear() {
	i.img.Clear()
}

// Dispose releases the image resources.
func (i *EbitenImage) Dispose() {
	if i.img != nil {
		i.img.Dispose()
	}
}

// DrawTriangles draws triangles on this image using the provided vertices.
func (i *EbitenImage) DrawTriangles(vertices []render.Vertex, indices []uint16, img render.Image, opts *render.DrawTrianglesOptions) {
	// Convert render.Vertex to ebiten.Vertex
	ebitenVertices := make([]ebiten.Vertex, len(vertices))
	for j, v := range vertices {
		ebitenVertices[j] = ebiten.Vertex{
			DstX:   v.DstX,
			DstY:   v.DstY,
			SrcX:   v.SrcX,
			SrcY:   v.SrcY,
			ColorR: v.ColorR,
			ColorG: v.ColorG,
			ColorB: v.ColorB,
			ColorA: v.ColorA,
		}
	}

	if opts == nil {
		i.img.DrawTriangles(ebitenVertices, indices, unwrap(img), nil)
		return
	}

	ebitenOpts := &ebiten.DrawTrianglesOptions{
		AntiAlias: opts.AntiAlias,
	}

	i.img.DrawTriangles(ebitenVertices, indices, unwrap(img), ebitenOpts)
}

// WrapEbitenImage wraps an existing ebiten.Image as a render.Image.
func WrapEbitenImage(img *ebiten.Image) render.Image {
	return &EbitenImage{img: img}
}

// EbitenInputManager implements the InputManager interface using Ebiten.
type EbitenInputManager struct {
	gamepads []ebiten.GamepadID
}

// NewInputManager creates a new Ebiten-based input manager.
func NewInputManager() render.InputManager {
	return &EbitenInputManager{}
}

// IsKeyPressed returns whether the specified key is currently pressed.
func (m *EbitenInputManager) IsKeyPressed(key render.Key) bool {
	k, ok := keyToEbitenKey(key)
	return ok && ebiten.IsKeyPressed(k)
}

// IsKeyJustPressed returns whether the specified key was just pressed this frame.
func (m *EbitenInputManager) IsKeyJustPressed(key render.Key) bool {
	k, ok := keyToEbitenKey(key)
	return ok && inpututil.IsKeyJustPressed(k)
}

// GetCursorPosition returns the current cursor position.
func (m *EbitenInputManager) GetCursorPosition() (x, y int) {
	return ebiten.CursorPosition()
}

// IsMouseButtonPressed returns whether the specified mouse button is currently pressed.
func (m *EbitenInputManager) IsMouseButtonPressed(button render.MouseButton) bool {
	return ebiten.IsMouseButtonPressed(mouseButtonToEbiten(button))
}

// GamepadIDs returns the connected gamepads.
func (m *EbitenInputManager) GamepadIDs() []render.GamepadID {
	m.gamepads = ebiten.AppendGamepadIDs(m.gamepads[:0])
	ids := make([]render.GamepadID, len(m.gamepads))
	for i, id := range m.gamepads {
		ids[i] = render.GamepadID(id)
	}
	return ids
}

// IsGamepadButtonPressed returns whether a raw gamepad button is held.
func (m *EbitenInputManager) IsGamepadButtonPressed(id render.GamepadID, button int) bool {
	return ebiten.IsGamepadButtonPressed(ebiten.GamepadID(id), ebiten.GamepadButton(button))
}

// keyToEbitenKey converts a render.Key to an ebiten.Key.
func keyToEbitenKey(key render.Key) (ebiten.Key, bool) {
	switch key {
	case render.KeyW:
		return ebiten.KeyW, true
	case render.KeyA:
		return ebiten.KeyA, true
	case render.KeyS:
		return ebiten.KeyS, true
	case render.KeyD:
		return ebiten.KeyD, true
	case render.KeyE:
		return ebiten.KeyE, true
	case render.KeyF:
		return ebiten.KeyF, true
	case render.KeyP:
		return ebiten.KeyP, true
	case render.Key1:
		return ebiten.KeyDigit1, true
	case render.Key2:
		return ebiten.KeyDigit2, true
	case render.Key3:
		return ebiten.KeyDigit3, true
	case render.KeyUp:
		return ebiten.KeyArrowUp, true
	case render.KeyDown:
		return ebiten.KeyArrowDown, true
	case render.KeyLeft:
		return ebiten.KeyArrowLeft, true
	case render.KeyRight:
		return ebiten.KeyArrowRight, true
	case render.KeySpace:
		return ebiten.KeySpace, true
	case render.KeyShift:
		return ebiten.KeyShift, true
	case render.KeyEscape:
		return ebiten.KeyEscape, true
	case render.KeyF1:
		return ebiten.KeyF1, true
	default:
		return 0, false
	}
}

// mouseButtonToEbiten converts a render.MouseButton to an ebiten.MouseButton.
func mouseButtonToEbiten(button render.MouseButton) ebiten.MouseButton {
	switch button {
	case render.MouseButtonLeft:
		return ebiten.MouseButtonLeft
	case render.MouseButtonRight:
		return ebiten.MouseButtonRight
	case render.MouseButtonMiddle:
		return ebiten.MouseButtonMiddle
	default:
		return ebiten.MouseButtonLeft
	}
}

// EbitenEngine implements the Engine interface using Ebiten.
type EbitenEngine struct{}

// NewEngine creates a new Ebiten-based game engine.
func NewEngine() render.Engine {
	return &EbitenEngine{}
}

// SetWindowSize sets the window size in pixels.
func (e *EbitenEngine) SetWindowSize(width, height int) {
	ebiten.SetWindowSize(width, height)
}

// SetWindowTitle sets the window title.
func (e *EbitenEngine) SetWindowTitle(title string) {
	ebiten.SetWindowTitle(title)
}

// SetWindowResizable enables or disables window resizing.
func (e *EbitenEngine) SetWindowResizable(resizable bool) {
	if resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	}
}

// SetTPS sets the number of Update calls per second.
func (e *EbitenEngine) SetTPS(tps int) {
	ebiten.SetTPS(tps)
}

// RunGame runs the game loop with the provided game.
func (e *EbitenEngine) RunGame(game render.Game) error {
	return ebiten.RunGame(&gameAdapter{game: game})
}

// gameAdapter adapts a render.Game to ebiten.Game interface.
type gameAdapter struct {
	game render.Game
}

// Update implements ebiten.Game.
func (a *gameAdapter) Update() error {
	return a.game.Update()
}

// Draw implements ebiten.Game.
func (a *gameAdapter) Draw(screen *ebiten.Image) {
	a.game.Draw(&EbitenImage{img: screen})
}

// Layout implements ebiten.Game.
func (a *gameAdapter) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.game.Layout(outsideWidth, outsideHeight)
}
