//go:build ebiten

package app

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"spacecol/internal/core"
	"spacecol/internal/geom"
	"spacecol/internal/render"
	"spacecol/internal/sim"
	"spacecol/internal/ui"
)

// SpawnTool selects what a click places in the world.
type SpawnTool int

const (
	ToolRoot SpawnTool = iota
	ToolRect
	ToolOval
	ToolRing
	toolCount
)

func (t SpawnTool) String() string {
	switch t {
	case ToolRoot:
		return "root"
	case ToolRect:
		return "rect cloud"
	case ToolOval:
		return "oval cloud"
	case ToolRing:
		return "ring cloud"
	}
	return "?"
}

// Game adapts a sim.Engine to the ebiten.Game interface: fixed-cadence
// ticking, camera control, click-to-spawn tools, and the HUD.
type Game struct {
	engine  *sim.Engine
	cam     *render.Camera
	painter *render.Painter
	hud     *ui.HUD
	fixed   *core.FixedStep

	width  int
	height int

	paused   bool
	tickOnce bool
	tool     SpawnTool

	// highlight maps recently grown node ids to an age in [0,1] used to
	// fade the new-node color.
	highlight map[int]float64

	dragging  bool
	lastDragX int
	lastDragY int
}

// New constructs a Game around the provided engine.
func New(engine *sim.Engine, opts *Options) *Game {
	cam := render.NewCamera()
	g := &Game{
		engine:    engine,
		cam:       cam,
		painter:   render.NewPainter(cam),
		fixed:     core.NewFixedStep(opts.TPS),
		width:     opts.Width,
		height:    opts.Height,
		paused:    true,
		highlight: map[int]float64{},
	}
	g.hud = ui.NewHUD(engine, engine.ParameterControls())
	return g
}

// ResetWorld rebuilds the default scenario: one root at the origin and an
// oval attractor cloud above it.
func (g *Game) ResetWorld() {
	cfg := g.engine.Config()
	g.engine.Reset([]geom.Vec2{geom.V(0, 0)}, &sim.SpawnRequest{
		Shape:  sim.ShapeOval,
		Center: geom.V(0, 120),
		Radii:  cfg.SpawnOvalRadii,
		Count:  cfg.SpawnCount,
	})
	clear(g.highlight)
	g.paused = true
}

// Update handles per-frame input and advances the simulation on cadence.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
		if !g.paused {
			g.fixed.Reset()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.ResetWorld()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.engine.Clear()
		clear(g.highlight)
		g.paused = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.engine.RequestStop()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.engine.ClearTerminal()
		g.paused = false
		g.fixed.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.tool = (g.tool + 1) % toolCount
	}

	g.hud.Update()
	g.handleMouse()

	if g.tickOnce || (!g.paused && g.fixed.ShouldStep()) {
		summary := g.engine.RunTick()
		g.tickOnce = false
		g.ageHighlights()
		for _, id := range summary.NodesAdded {
			g.highlight[id] = 0
		}
		if summary.Terminal != sim.TerminalNone {
			g.paused = true
		}
	}
	return nil
}

func (g *Game) handleMouse() {
	cx, cy := ebiten.CursorPosition()

	// Right-button drag pans; the left button is reserved for spawning.
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		if g.dragging {
			g.cam.Pan = g.cam.Pan.Add(geom.V(float64(cx-g.lastDragX), float64(cy-g.lastDragY)))
		}
		g.dragging = true
		g.lastDragX, g.lastDragY = cx, cy
	} else {
		g.dragging = false
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		factor := 1 + wy*0.1
		g.cam.ZoomAround(factor, geom.V(float64(cx), float64(cy)), g.width, g.height)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && cx < g.width-ui.PanelWidth {
		world := g.cam.ScreenToWorld(geom.V(float64(cx), float64(cy)), g.width, g.height)
		g.spawnAt(world)
	}
}

func (g *Game) spawnAt(world geom.Vec2) {
	cfg := g.engine.Config()
	switch g.tool {
	case ToolRoot:
		g.engine.SpawnRoot(world)
	case ToolRect:
		g.engine.SpawnAttractors(sim.SpawnRequest{
			Shape:       sim.ShapeRect,
			Center:      world,
			HalfExtents: cfg.SpawnRectHalfExtents,
			Count:       cfg.SpawnCount,
		})
	case ToolOval:
		g.engine.SpawnAttractors(sim.SpawnRequest{
			Shape:  sim.ShapeOval,
			Center: world,
			Radii:  cfg.SpawnOvalRadii,
			Count:  cfg.SpawnCount,
		})
	case ToolRing:
		g.engine.SpawnAttractors(sim.SpawnRequest{
			Shape:  sim.ShapeRing,
			Center: world,
			Inner:  cfg.SpawnRingInner,
			Outer:  cfg.SpawnRingOuter,
			Count:  cfg.SpawnCount,
		})
	}
}

func (g *Game) ageHighlights() {
	for id, age := range g.highlight {
		age += 0.2
		if age >= 1 {
			delete(g.highlight, id)
			continue
		}
		g.highlight[id] = age
	}
}

// Draw renders the current simulation state plus the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Draw(screen, g.engine.Snapshot(), g.highlight)
	g.drawToolHint(screen)
	g.hud.Draw(screen, g.width, g.height, g.paused, g.tool.String())
}

// drawToolHint outlines the footprint the active spawn tool would cover at
// the cursor position.
func (g *Game) drawToolHint(screen *ebiten.Image) {
	cx, cy := ebiten.CursorPosition()
	if cx < 0 || cy < 0 || cx >= g.width-ui.PanelWidth || cy >= g.height {
		return
	}
	x, y := float32(cx), float32(cy)
	cfg := g.engine.Config()
	z := g.cam.Zoom

	switch g.tool {
	case ToolRoot:
		vector.StrokeCircle(screen, x, y, 4, 1, render.ColorToolHint, true)
	case ToolRect:
		hw := float32(cfg.SpawnRectHalfExtents.X * z)
		hh := float32(cfg.SpawnRectHalfExtents.Y * z)
		vector.StrokeRect(screen, x-hw, y-hh, 2*hw, 2*hh, 1, render.ColorToolHint, true)
	case ToolOval:
		strokeEllipse(screen, x, y, float32(cfg.SpawnOvalRadii.X*z), float32(cfg.SpawnOvalRadii.Y*z))
	case ToolRing:
		vector.StrokeCircle(screen, x, y, float32(cfg.SpawnRingInner*z), 1, render.ColorToolHint, true)
		vector.StrokeCircle(screen, x, y, float32(cfg.SpawnRingOuter*z), 1, render.ColorToolHint, true)
	}
}

func strokeEllipse(screen *ebiten.Image, cx, cy, rx, ry float32) {
	const segments = 48
	px := cx + rx
	py := cy
	for i := 1; i <= segments; i++ {
		theta := 2 * math.Pi * float64(i) / segments
		nx := cx + rx*float32(math.Cos(theta))
		ny := cy + ry*float32(math.Sin(theta))
		vector.StrokeLine(screen, px, py, nx, ny, 1, render.ColorToolHint, true)
		px, py = nx, ny
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
