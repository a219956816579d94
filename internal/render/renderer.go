package render

import (
	"image"
	"image/color"
)

// Renderer is the main rendering interface that abstracts the underlying
// graphics engine. This allows swapping rendering backends without changing
// game logic.
type Renderer interface {
	// Image operations
	NewImage(width, height int) Image

	// Vector operations (for drawing shapes)
	FillCircle(dst Image, x, y, radius float32, clr color.Color)
	StrokeCircle(dst Image, x, y, radius float32, strokeWidth float32, clr color.Color)
	StrokeLine(dst Image, x0, y0, x1, y1 float32, strokeWidth float32, clr color.Color)
	FillRect(dst Image, x, y, width, height float32, clr color.Color)
	StrokeRect(dst Image, x, y, width, height float32, strokeWidth float32, clr color.Color)

	// Text operations
	DrawText(dst Image, text string, x, y int, clr color.Color, scale float64)
	MeasureText(text string, scale float64) (width, height int)
}

// Image represents a renderable image surface that can be drawn to or drawn from.
// It abstracts the underlying image implementation.
type Image interface {
	// Properties
	Bounds() image.Rectangle
	Size() (width, height int)

	// Fill operations
	Fill(clr color.Color)
	Clear()

	// Drawing operations
	DrawTriangles(vertices []Vertex, indices []uint16, img Image, opts *DrawTrianglesOptions)

	// Resource management
	Dispose()
}

// DrawTrianglesOptions contains options for drawing triangles.
type DrawTrianglesOptions struct {
	AntiAlias bool
}

// Vertex represents a vertex for triangle rendering.
type Vertex struct {
	DstX   float32
	DstY   float32
	SrcX   float32
	SrcY   float32
	ColorR float32
	ColorG float32
	ColorB float32
	ColorA float32
}

// InputManager handles input from the user (keyboard, mouse, gamepad).
type InputManager interface {
	IsKeyPressed(key Key) bool
	IsKeyJustPressed(key Key) bool
	GetCursorPosition() (x, y int)
	IsMouseButtonPressed(button MouseButton) bool

	// GamepadIDs returns the connected gamepads.
	GamepadIDs() []GamepadID
	IsGamepadButtonPressed(id GamepadID, button int) bool
}

// Key represents a keyboard key.
type Key int

// Key constants for the keys the game binds
const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyE // Dock key
	KeyF
	KeyP
	Key1
	Key2
	Key3
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeySpace
	KeyShift
	KeyEscape
	KeyF1
)

// MouseButton represents a mouse button.
type MouseButton int

// Mouse button constants
const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// GamepadID identifies a connected gamepad.
type GamepadID int

// Game represents the game interface that the engine will call.
// This is typically implemented by the main game struct.
type Game interface {
	// Update updates the game logic. It is called every tick (typically 60 times per second).
	Update() error

	// Draw draws the game screen. It is called every frame.
	Draw(screen Image)

	// Layout accepts the outside size (e.g., window size) and returns the logical screen size.
	// The logical screen size is used for rendering and input coordinates.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine represents the game engine that manages the game loop and window.
type Engine interface {
	// SetWindowSize sets the window size in pixels.
	SetWindowSize(width, height int)

	// SetWindowTitle sets the window title.
	SetWindowTitle(title string)

	// SetWindowResizable enables or disables window resizing.
	SetWindowResizable(resizable bool)

	// SetTPS sets the number of Update calls per second.
	SetTPS(tps int)

	// RunGame runs the game loop with the provided game.
	// This is a blocking call that runs until the game ends.
	RunGame(game Game) error
}
