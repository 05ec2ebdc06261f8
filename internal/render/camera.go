package render

import "spacecol/internal/geom"

// Camera maps world coordinates to screen pixels. World y points up; screen
// y points down, so the y-axis flips around the viewport center.
type Camera struct {
	Zoom float64
	// Pan is a screen-space offset in pixels.
	Pan geom.Vec2
}

// NewCamera returns a camera with a moderate default zoom and no pan.
func NewCamera() *Camera { return &Camera{Zoom: 3} }

// WorldToScreen converts a world position to screen pixels for a viewport
// of the given size.
func (c *Camera) WorldToScreen(p geom.Vec2, w, h int) geom.Vec2 {
	return geom.V(
		float64(w)/2+p.X*c.Zoom+c.Pan.X,
		float64(h)/2-p.Y*c.Zoom+c.Pan.Y,
	)
}

// ScreenToWorld inverts WorldToScreen for the same viewport size.
func (c *Camera) ScreenToWorld(p geom.Vec2, w, h int) geom.Vec2 {
	return geom.V(
		(p.X-float64(w)/2-c.Pan.X)/c.Zoom,
		(float64(h)/2-p.Y+c.Pan.Y)/c.Zoom,
	)
}

// ZoomAround scales the zoom by factor while keeping the world point under
// the given screen position fixed, clamping zoom to a sane range.
func (c *Camera) ZoomAround(factor float64, cursor geom.Vec2, w, h int) {
	world := c.ScreenToWorld(cursor, w, h)
	z := c.Zoom * factor
	if z < 0.1 {
		z = 0.1
	}
	if z > 10 {
		z = 10
	}
	c.Zoom = z
	after := c.WorldToScreen(world, w, h)
	c.Pan = c.Pan.Add(cursor.Sub(after))
}
