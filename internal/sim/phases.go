package sim

import (
	"slices"

	"spacecol/internal/geom"
)

// The engine advances in phase-cycles of attraction → growth → kill. Each
// phase is a total function over (Tree, AttractorSet, Config): no phase
// suspends, and kill runs after growth so that nodes grown this cycle can
// immediately consume the attractors they reach.

// AttractionPhase accumulates pull from every alive attractor onto its
// k-th-nearest node. The influence buffer is resized and zeroed first, so
// each pass is independent of the previous one.
//
// For an attractor whose chosen node lies strictly inside the influence
// radius, the unit vector from node to attractor is added to that node's
// buffer slot and the node is recorded as the attractor's owner. A node at
// exactly the radius is out of range. Otherwise the owner is
// cleared; the attractor stays alive either way. With cfg.LocalInfluence set
// the query ranks only in-radius nodes instead of the whole arena.
func AttractionPhase(t *Tree, attractors *AttractorSet, cfg *Config, acc *InfluenceBuffer) {
	r2 := cfg.InfluenceRadius * cfg.InfluenceRadius
	acc.EnsureLen(t.Len())

	for i := 0; i < attractors.Len(); i++ {
		a := attractors.At(i)
		if !a.Alive {
			continue
		}

		var (
			id int
			d2 float64
			ok bool
		)
		if cfg.LocalInfluence {
			id, d2, ok = t.KthNearestWithin(a.Pos, cfg.AttractFromKN, r2)
		} else {
			id, d2, ok = t.KthNearest(a.Pos, cfg.AttractFromKN)
		}
		if !ok || d2 >= r2 {
			a.Owner = NoOwner
			continue
		}

		a.Owner = id
		dir := a.Pos.Sub(t.At(id).Pos).Normalized()
		if dir.IsZero() {
			// Attractor sits exactly on the node; no usable direction.
			continue
		}
		acc.Add(id, dir)
	}
}

type growthCandidate struct {
	parent int
	pos    geom.Vec2
}

// GrowthPhase appends one child per influenced node and returns the new
// node indices in commit order.
//
// The direction is the normalized average of the accumulated pulls, biased
// by tropism and normalized again. A degenerate result (perfect symmetric
// cancellation with no tropism to break it) skips the node for this cycle.
// Candidates landing within MinSpacing of an existing sibling are dropped.
// Surviving candidates are committed in ascending parent-index order, which
// pins down index assignment independent of buffer iteration order.
func GrowthPhase(t *Tree, acc *InfluenceBuffer, cfg *Config) []int {
	var candidates []growthCandidate

	for _, id := range acc.Influenced(nil) {
		dir := acc.AvgDir(id)
		if !dir.IsZero() {
			dir = dir.Normalized()
		}
		dir = dir.Add(cfg.Tropism).Normalized()
		if dir.IsZero() {
			continue
		}

		pos := t.At(id).Pos.Add(dir.Scale(cfg.StepLen))
		if t.HasChildNear(id, pos, cfg.MinSpacing) {
			continue
		}
		candidates = append(candidates, growthCandidate{parent: id, pos: pos})
	}

	slices.SortStableFunc(candidates, func(a, b growthCandidate) int {
		return a.parent - b.parent
	})

	newIDs := make([]int, 0, len(candidates))
	for _, c := range candidates {
		radius := t.At(c.parent).Radius
		newIDs = append(newIDs, t.AddChild(c.parent, c.pos, radius))
	}
	return newIDs
}

// KillPhase marks every alive attractor whose k-th-nearest node lies
// strictly inside the kill radius as dead, permanently. A node at exactly
// the radius does not kill. It returns the number of kills.
func KillPhase(t *Tree, attractors *AttractorSet, cfg *Config) int {
	r2 := cfg.KillRadius * cfg.KillRadius
	killed := 0
	for i := 0; i < attractors.Len(); i++ {
		a := attractors.At(i)
		if !a.Alive {
			continue
		}
		if _, d2, ok := t.KthNearest(a.Pos, cfg.KillFromKN); ok && d2 < r2 {
			a.Alive = false
			killed++
		}
	}
	return killed
}
