//go:build ebiten

package ui

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"spacecol/internal/core"
	"spacecol/internal/render"
	"spacecol/internal/sim"
)

// PanelWidth is the width in pixels of the HUD panel on the right edge.
const PanelWidth = 260

// HUD renders run statistics and a keyboard-driven parameter panel.
// Up/Down selects a control, Left/Right nudges it by its step (Shift for
// ten steps at once).
type HUD struct {
	engine   *sim.Engine
	controls []core.ParameterControl
	selected int
}

// NewHUD constructs a HUD for the provided engine.
func NewHUD(engine *sim.Engine, controls []core.ParameterControl) *HUD {
	return &HUD{engine: engine, controls: controls}
}

// Update handles parameter panel input.
func (h *HUD) Update() {
	if len(h.controls) == 0 {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		h.selected = (h.selected + len(h.controls) - 1) % len(h.controls)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		h.selected = (h.selected + 1) % len(h.controls)
	}

	dir := 0
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		dir = -1
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) {
		dir = 1
	}
	if dir == 0 {
		return
	}
	steps := 1
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		steps = 10
	}
	h.nudge(h.controls[h.selected], dir*steps)
}

func (h *HUD) nudge(ctrl core.ParameterControl, steps int) {
	current, ok := h.currentValue(ctrl.Key)
	if !ok {
		return
	}
	next := current + ctrl.Step*float64(steps)
	if ctrl.HasMin && next < ctrl.Min {
		next = ctrl.Min
	}
	if ctrl.HasMax && next > ctrl.Max {
		next = ctrl.Max
	}
	if ctrl.Type == core.ParamTypeInt {
		h.engine.SetIntParameter(ctrl.Key, int(next))
		return
	}
	h.engine.SetFloatParameter(ctrl.Key, next)
}

func (h *HUD) currentValue(key string) (float64, bool) {
	snapshot := h.engine.Parameters()
	for _, group := range snapshot.Groups {
		for _, param := range group.Params {
			if param.Key != key {
				continue
			}
			var v float64
			if _, err := fmt.Sscanf(param.Value, "%g", &v); err != nil {
				return 0, false
			}
			return v, true
		}
	}
	return 0, false
}

// Draw renders the panel on the right edge of the screen.
func (h *HUD) Draw(screen *ebiten.Image, width, height int, paused bool, tool string) {
	x := width - PanelWidth
	vector.DrawFilledRect(screen, float32(x), 0, PanelWidth, float32(height), render.ColorBackdrop, false)

	stats := h.engine.Stats()
	var b strings.Builder
	state := "running"
	if paused {
		state = "paused"
	}
	if stats.Terminal != sim.TerminalNone {
		state = stats.Terminal.String()
	}
	fmt.Fprintf(&b, " %s\n", state)
	fmt.Fprintf(&b, " tool: %s\n", tool)
	fmt.Fprintf(&b, " nodes: %d\n", stats.Nodes)
	fmt.Fprintf(&b, " attractors: %d/%d alive\n", stats.AttractorsAlive, stats.Attractors)
	fmt.Fprintf(&b, " ticks: %d\n", stats.Ticks)
	b.WriteString("\n")

	for i, ctrl := range h.controls {
		marker := "  "
		if i == h.selected {
			marker = " >"
		}
		value := "--"
		if v, ok := h.currentValue(ctrl.Key); ok {
			if ctrl.Type == core.ParamTypeInt {
				value = fmt.Sprintf("%d", int(v))
			} else {
				value = fmt.Sprintf("%.2f", v)
			}
		}
		fmt.Fprintf(&b, "%s%-14s %s\n", marker, ctrl.Label, value)
	}

	b.WriteString("\n space pause  n tick  r reset\n")
	b.WriteString(" c clear  s stop  enter resume\n")
	b.WriteString(" tab tool  q quit\n")

	ebitenutil.DebugPrintAt(screen, b.String(), x+4, 8)
}
