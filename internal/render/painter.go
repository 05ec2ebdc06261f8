//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"spacecol/internal/sim"
)

// Painter draws an engine snapshot through a camera.
type Painter struct {
	cam *Camera
}

// NewPainter constructs a painter using the provided camera.
func NewPainter(cam *Camera) *Painter { return &Painter{cam: cam} }

// Draw renders edges, nodes and alive attractors. Node ids present in
// highlight are drawn in the new-node color, fading back to the base color
// as their age approaches 1.
func (p *Painter) Draw(screen *ebiten.Image, snap sim.Snapshot, highlight map[int]float64) {
	w := screen.Bounds().Dx()
	h := screen.Bounds().Dy()
	screen.Fill(ColorBackdrop)

	// Edges first so nodes draw on top. Every non-root node has exactly
	// one incoming edge from its parent.
	for i := range snap.Nodes {
		n := &snap.Nodes[i]
		if n.Parent == sim.NoParent {
			continue
		}
		a := p.cam.WorldToScreen(snap.Nodes[n.Parent].Pos, w, h)
		b := p.cam.WorldToScreen(n.Pos, w, h)
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1, ColorEdge, true)
	}

	for i := range snap.Nodes {
		n := &snap.Nodes[i]
		pos := p.cam.WorldToScreen(n.Pos, w, h)
		r := float32(n.Radius * p.cam.Zoom)
		if r < 2 {
			r = 2
		}
		col := ColorNode
		if age, ok := highlight[i]; ok {
			col = NewNodeColor(age)
		}
		vector.DrawFilledCircle(screen, float32(pos.X), float32(pos.Y), r, col, true)
	}

	for i := range snap.Attractors {
		a := &snap.Attractors[i]
		if !a.Alive {
			continue
		}
		pos := p.cam.WorldToScreen(a.Pos, w, h)
		vector.DrawFilledCircle(screen, float32(pos.X), float32(pos.Y), 2, ColorAttractor, false)
	}
}
