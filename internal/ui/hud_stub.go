//go:build !ebiten

package ui

import (
	"spacecol/internal/core"
	"spacecol/internal/sim"
)

// PanelWidth is the width in pixels of the HUD panel on the right edge.
const PanelWidth = 260

// HUD is a no-op placeholder for headless builds.
type HUD struct{}

// NewHUD returns a stub HUD in the headless build.
func NewHUD(*sim.Engine, []core.ParameterControl) *HUD { return &HUD{} }

// Update is a no-op in the headless build.
func (h *HUD) Update() {}

// Draw is a no-op placeholder to satisfy the interface shape.
func (h *HUD) Draw(any, int, int, bool, string) {}
