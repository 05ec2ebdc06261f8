package render

import "image/color"

// Palette for the forest view. Freshly grown nodes flash and decay back to
// the base node color over a few frames.
var (
	ColorEdge      = color.RGBA{R: 120, G: 220, B: 140, A: 255}
	ColorNode      = color.RGBA{R: 140, G: 190, B: 240, A: 255}
	ColorNewNode   = color.RGBA{R: 240, G: 80, B: 70, A: 255}
	ColorAttractor = color.RGBA{R: 235, G: 120, B: 110, A: 200}
	ColorToolHint  = color.RGBA{R: 200, G: 200, B: 210, A: 90}
	ColorBackdrop  = color.RGBA{R: 16, G: 18, B: 22, A: 255}
)

// NewNodeColor fades from the highlight color back to the base node color
// as age goes from 0 to 1.
func NewNodeColor(age float64) color.RGBA {
	return lerpRGBA(ColorNewNode, ColorNode, clamp01(age))
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	return color.RGBA{
		R: lerpComponent(a.R, b.R, t),
		G: lerpComponent(a.G, b.G, t),
		B: lerpComponent(a.B, b.B, t),
		A: lerpComponent(a.A, b.A, t),
	}
}

func lerpComponent(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
