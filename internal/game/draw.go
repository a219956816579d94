package game

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/broadside/internal/core/spatial"
	"chosenoffset.com/broadside/internal/render"
)

var (
	whiteColor  = color.RGBA{255, 255, 255, 255}
	waterColor  = color.RGBA{24, 58, 94, 255}
	gridColor   = color.RGBA{40, 80, 120, 255}
	edgeColor   = color.RGBA{200, 60, 60, 255}
	anchorColor = color.RGBA{220, 30, 30, 255}
	crewColor   = color.RGBA{240, 200, 120, 255}
	crewDocked  = color.RGBA{120, 220, 140, 255}
)

// Hull and ribbon colours as premultiplied vertex components.
var (
	hullRGBA   = [4]float32{0.45, 0.30, 0.16, 1}
	ribbonRGBA = [4]float32{0.95, 0.85, 0.35, 0.6}
)

const gridSpacing = 5.0

// Draw renders the game to the screen.
func (g *Game) Draw(screen render.Image) {
	if g.Renderer == nil {
		return
	}
	w, h := screen.Size()
	screen.Fill(waterColor)

	g.drawGrid(screen, w, h)
	g.drawPlayArea(screen, w, h)
	g.drawHull(screen, w, h)
	g.drawAnchors(screen, w, h)
	g.drawTrajectory(screen, w, h)
	g.drawCharacter(screen, w, h)

	g.GameHUD.Draw(g.Renderer, screen)
}

func (g *Game) drawGrid(screen render.Image, w, h int) {
	if g.Camera.Scale <= 0 {
		return
	}
	topLeft := g.Camera.ToWorld(0, 0, w, h)
	bottomRight := g.Camera.ToWorld(float32(w), float32(h), w, h)

	for x := float64(int(topLeft.X()/gridSpacing)) * gridSpacing; x <= bottomRight.X(); x += gridSpacing {
		sx, _ := g.Camera.ToScreen(mgl64.Vec3{x, 0, 0}, w, h)
		g.Renderer.StrokeLine(screen, sx, 0, sx, float32(h), 1, gridColor)
	}
	for z := float64(int(topLeft.Z()/gridSpacing)) * gridSpacing; z <= bottomRight.Z(); z += gridSpacing {
		_, sy := g.Camera.ToScreen(mgl64.Vec3{0, 0, z}, w, h)
		g.Renderer.StrokeLine(screen, 0, sy, float32(w), sy, 1, gridColor)
	}
}

func (g *Game) drawPlayArea(screen render.Image, w, h int) {
	limit := g.Config.Boundary.Limit
	x0, y0 := g.Camera.ToScreen(mgl64.Vec3{-limit, 0, -limit}, w, h)
	x1, y1 := g.Camera.ToScreen(mgl64.Vec3{limit, 0, limit}, w, h)
	g.Renderer.StrokeRect(screen, x0, y0, x1-x0, y1-y0, 2, edgeColor)
}

// drawHull fans the deck outline from its first vertex.
func (g *Game) drawHull(screen render.Image, w, h int) {
	if g.WhiteImg == nil {
		return
	}
	vertices := make([]render.Vertex, 0, len(hullOutline))
	for _, p := range hullOutline {
		sx, sy := g.Camera.ToScreen(spatial.LocalToWorld(g.ShipBody, p), w, h)
		vertices = append(vertices, vertex(sx, sy, hullRGBA))
	}
	indices := make([]uint16, 0, 3*(len(hullOutline)-2))
	for i := 1; i+1 < len(hullOutline); i++ {
		indices = append(indices, 0, uint16(i), uint16(i+1))
	}
	screen.DrawTriangles(vertices, indices, g.WhiteImg, &render.DrawTrianglesOptions{AntiAlias: true})
}

func (g *Game) drawAnchors(screen render.Image, w, h int) {
	const size = 4
	for _, a := range g.Binder.Resolver().Anchors {
		sx, sy := g.Camera.ToScreen(spatial.LocalToWorld(g.ShipBody, a.Offset), w, h)
		g.Renderer.StrokeLine(screen, sx-size, sy-size, sx+size, sy+size, 2, anchorColor)
		g.Renderer.StrokeLine(screen, sx-size, sy+size, sx+size, sy-size, 2, anchorColor)
	}
}

// drawTrajectory renders the arc as a strip of quads between the ribbon edges.
func (g *Game) drawTrajectory(screen render.Image, w, h int) {
	p := g.Prediction
	if !p.Active || g.WhiteImg == nil || len(p.Left) < 2 || len(p.Left) != len(p.Right) {
		return
	}
	n := len(p.Left)
	vertices := make([]render.Vertex, 0, 2*n)
	for i := 0; i < n; i++ {
		lx, ly := g.Camera.ToScreen(p.Left[i], w, h)
		rx, ry := g.Camera.ToScreen(p.Right[i], w, h)
		vertices = append(vertices, vertex(lx, ly, ribbonRGBA), vertex(rx, ry, ribbonRGBA))
	}
	indices := make([]uint16, 0, 6*(n-1))
	for i := 0; i < n-1; i++ {
		a := uint16(2 * i)
		indices = append(indices, a, a+1, a+2, a+2, a+1, a+3)
	}
	screen.DrawTriangles(vertices, indices, g.WhiteImg, &render.DrawTrianglesOptions{AntiAlias: true})
}

func (g *Game) drawCharacter(screen render.Image, w, h int) {
	pos := g.CharacterBody.Translation()
	sx, sy := g.Camera.ToScreen(pos, w, h)
	radius := float32(0.3 * g.Camera.Scale)
	clr := crewColor
	if g.GameState.HasJoint() {
		clr = crewDocked
	}
	g.Renderer.FillCircle(screen, sx, sy, radius, clr)

	facing := spatial.DirectionToWorld(g.CharacterBody, mgl64.Vec3{0, 0, -1})
	fx, fy := g.Camera.ToScreen(pos.Add(facing.Mul(0.5)), w, h)
	g.Renderer.StrokeLine(screen, sx, sy, fx, fy, 2, color.Black)
}

func vertex(x, y float32, c [4]float32) render.Vertex {
	return render.Vertex{
		DstX: x, DstY: y,
		SrcX: 1, SrcY: 1,
		ColorR: c[0] * c[3], ColorG: c[1] * c[3], ColorB: c[2] * c[3], ColorA: c[3],
	}
}
