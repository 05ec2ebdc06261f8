package sim

import "spacecol/internal/geom"

// InfluenceBuffer accumulates directional pull per node for the current
// attraction pass. Entry i holds the sum of unit vectors contributed to node
// i and how many attractors contributed. The buffer is scratch state: it is
// resized and zeroed at the start of every attraction pass and is never
// carried across ticks.
type InfluenceBuffer struct {
	dir   []geom.Vec2
	count []int
}

// NewInfluenceBuffer returns a zeroed buffer with storage for n nodes.
func NewInfluenceBuffer(n int) *InfluenceBuffer {
	return &InfluenceBuffer{dir: make([]geom.Vec2, n), count: make([]int, n)}
}

// Len reports the number of node slots.
func (b *InfluenceBuffer) Len() int { return len(b.count) }

// EnsureLen resizes the buffer to exactly n slots and zeroes every entry,
// whether or not the size changed.
func (b *InfluenceBuffer) EnsureLen(n int) {
	if cap(b.dir) < n {
		b.dir = make([]geom.Vec2, n)
		b.count = make([]int, n)
		return
	}
	b.dir = b.dir[:n]
	b.count = b.count[:n]
	b.Clear()
}

// Clear zeroes every entry without changing the length.
func (b *InfluenceBuffer) Clear() {
	for i := range b.dir {
		b.dir[i] = geom.Vec2{}
		b.count[i] = 0
	}
}

// Add records one directional contribution for node id.
func (b *InfluenceBuffer) Add(id int, dir geom.Vec2) {
	b.dir[id] = b.dir[id].Add(dir)
	b.count[id]++
}

// Count reports how many contributions node id has received.
func (b *InfluenceBuffer) Count(id int) int { return b.count[id] }

// AvgDir returns the mean contributed direction for node id, or the zero
// vector when nothing contributed.
func (b *InfluenceBuffer) AvgDir(id int) geom.Vec2 {
	c := b.count[id]
	if c == 0 {
		return geom.Vec2{}
	}
	return b.dir[id].Scale(1 / float64(c))
}

// Influenced appends the indices of all nodes with at least one contribution
// to dst and returns the extended slice, in ascending index order.
func (b *InfluenceBuffer) Influenced(dst []int) []int {
	for id, c := range b.count {
		if c > 0 {
			dst = append(dst, id)
		}
	}
	return dst
}
