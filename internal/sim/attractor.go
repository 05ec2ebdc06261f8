package sim

import (
	"math"
	"math/rand"

	"spacecol/internal/geom"
)

// NoOwner marks an attractor that no node currently claims.
const NoOwner = -1

// Attractor is a point in space that biases growth toward itself until a
// node gets close enough to kill it. Alive is monotonic: once false it never
// becomes true again. Owner is recomputed by every attraction pass and
// carries no meaning across ticks.
type Attractor struct {
	Pos   geom.Vec2
	Alive bool
	Owner int
}

// AttractorSet is an insertion-ordered collection of attractors. Dead
// attractors stay in storage as tombstones so indices remain stable for
// external holders.
type AttractorSet struct {
	points []Attractor
}

// NewAttractorSet returns an empty set.
func NewAttractorSet() *AttractorSet { return &AttractorSet{} }

// FromPositions builds a set of alive, unowned attractors.
func FromPositions(positions []geom.Vec2) *AttractorSet {
	s := &AttractorSet{points: make([]Attractor, 0, len(positions))}
	for _, pos := range positions {
		s.Append(pos)
	}
	return s
}

// Len reports the number of stored attractors, dead ones included.
func (s *AttractorSet) Len() int { return len(s.points) }

// At returns a pointer to the attractor with the given index.
func (s *AttractorSet) At(i int) *Attractor { return &s.points[i] }

// Append adds one alive attractor and returns its index.
func (s *AttractorSet) Append(pos geom.Vec2) int {
	s.points = append(s.points, Attractor{Pos: pos, Alive: true, Owner: NoOwner})
	return len(s.points) - 1
}

// AnyAlive reports whether at least one attractor is still alive.
func (s *AttractorSet) AnyAlive() bool {
	for i := range s.points {
		if s.points[i].Alive {
			return true
		}
	}
	return false
}

// AliveCount counts the attractors that are still alive.
func (s *AttractorSet) AliveCount() int {
	n := 0
	for i := range s.points {
		if s.points[i].Alive {
			n++
		}
	}
	return n
}

// Clear removes every attractor.
func (s *AttractorSet) Clear() { s.points = s.points[:0] }

// SpawnRect appends count attractors uniformly distributed over an
// axis-aligned rectangle described by its center and half extents.
func (s *AttractorSet) SpawnRect(center, halfExtents geom.Vec2, count int, rng *rand.Rand) {
	for i := 0; i < count; i++ {
		x := center.X + (rng.Float64()*2-1)*halfExtents.X
		y := center.Y + (rng.Float64()*2-1)*halfExtents.Y
		s.Append(geom.V(x, y))
	}
}

// SpawnOval appends count attractors uniformly distributed over an ellipse
// with the given semi-axes, via rejection sampling in the unit disc.
func (s *AttractorSet) SpawnOval(center, radii geom.Vec2, count int, rng *rand.Rand) {
	for i := 0; i < count; i++ {
		var x, y float64
		for {
			x = rng.Float64()*2 - 1
			y = rng.Float64()*2 - 1
			if x*x+y*y <= 1 {
				break
			}
		}
		s.Append(geom.V(center.X+x*radii.X, center.Y+y*radii.Y))
	}
}

// SpawnRing appends count attractors uniformly distributed over an annulus
// with the given inner and outer radii. Area-correct sampling: the radius is
// drawn from the square-root distribution so density is even across the ring.
func (s *AttractorSet) SpawnRing(center geom.Vec2, inner, outer float64, count int, rng *rand.Rand) {
	if inner < 0 {
		inner = 0
	}
	if outer < inner {
		outer = inner
	}
	in2 := inner * inner
	out2 := outer * outer
	for i := 0; i < count; i++ {
		r := math.Sqrt(in2 + rng.Float64()*(out2-in2))
		theta := rng.Float64() * 2 * math.Pi
		s.Append(geom.V(center.X+r*math.Cos(theta), center.Y+r*math.Sin(theta)))
	}
}
