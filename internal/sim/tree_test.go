package sim

import (
	"testing"

	"spacecol/internal/geom"
)

func TestAddChildLinksAndOrdersIndices(t *testing.T) {
	tree := NewTree()
	root := tree.AddRoot(geom.V(0, 0), 1)
	if root != 0 {
		t.Fatalf("first root should get index 0, got %d", root)
	}
	if tree.At(root).Parent != NoParent {
		t.Fatalf("root parent should be NoParent, got %d", tree.At(root).Parent)
	}

	a := tree.AddChild(root, geom.V(1, 0), 1)
	b := tree.AddChild(root, geom.V(0, 1), 1)
	c := tree.AddChild(a, geom.V(2, 0), 1)

	for _, id := range []int{a, b, c} {
		parent := tree.At(id).Parent
		if id <= parent {
			t.Fatalf("child index %d must exceed parent index %d", id, parent)
		}
	}

	children := tree.At(root).Children
	if len(children) != 2 || children[0] != a || children[1] != b {
		t.Fatalf("root children should be [%d %d] in append order, got %v", a, b, children)
	}
	if got := tree.At(a).Children; len(got) != 1 || got[0] != c {
		t.Fatalf("node %d children should be [%d], got %v", a, c, got)
	}
}

func TestKthNearestRanksByDistance(t *testing.T) {
	tree := NewTree()
	tree.AddRoot(geom.V(3, 0), 1) // d2 = 9
	tree.AddRoot(geom.V(1, 0), 1) // d2 = 1
	tree.AddRoot(geom.V(2, 0), 1) // d2 = 4

	cases := []struct {
		k      int
		wantID int
		wantD2 float64
	}{
		{1, 1, 1},
		{2, 2, 4},
		{3, 0, 9},
	}
	for _, tc := range cases {
		id, d2, ok := tree.KthNearest(geom.V(0, 0), tc.k)
		if !ok {
			t.Fatalf("k=%d: expected a result", tc.k)
		}
		if id != tc.wantID || d2 != tc.wantD2 {
			t.Fatalf("k=%d: got node %d at d2=%g, want node %d at d2=%g", tc.k, id, d2, tc.wantID, tc.wantD2)
		}
	}
}

func TestKthNearestTieBreaksLowerIndex(t *testing.T) {
	tree := NewTree()
	tree.AddRoot(geom.V(1, 0), 1)
	tree.AddRoot(geom.V(-1, 0), 1)

	id, d2, ok := tree.KthNearest(geom.V(0, 0), 1)
	if !ok || d2 != 1 {
		t.Fatalf("expected a result at d2=1, got ok=%v d2=%g", ok, d2)
	}
	if id != 0 {
		t.Fatalf("equidistant nodes must resolve to the lower index, got %d", id)
	}

	// The second rank of the tie is the higher index.
	id, _, _ = tree.KthNearest(geom.V(0, 0), 2)
	if id != 1 {
		t.Fatalf("second rank of a tie should be the higher index, got %d", id)
	}
}

func TestKthNearestClampsToFarthest(t *testing.T) {
	tree := NewTree()
	tree.AddRoot(geom.V(1, 0), 1)
	tree.AddRoot(geom.V(5, 0), 1)

	id, d2, ok := tree.KthNearest(geom.V(0, 0), 99)
	if !ok {
		t.Fatal("oversized k must clamp, not fail")
	}
	if id != 1 || d2 != 25 {
		t.Fatalf("oversized k should return the farthest node 1 at d2=25, got node %d at d2=%g", id, d2)
	}
}

func TestKthNearestEmptyTree(t *testing.T) {
	tree := NewTree()
	if _, _, ok := tree.KthNearest(geom.V(0, 0), 1); ok {
		t.Fatal("empty tree must report no result")
	}
}

func TestKthNearestWithinRestrictsCandidates(t *testing.T) {
	tree := NewTree()
	tree.AddRoot(geom.V(1, 0), 1)  // in radius
	tree.AddRoot(geom.V(50, 0), 1) // out of radius

	// Global ranking at k=2 reaches the far node.
	id, _, ok := tree.KthNearest(geom.V(0, 0), 2)
	if !ok || id != 1 {
		t.Fatalf("global k=2 should select the far node, got %d", id)
	}

	// Local ranking clamps to the farthest in-radius node instead.
	id, d2, ok := tree.KthNearestWithin(geom.V(0, 0), 2, 16)
	if !ok {
		t.Fatal("expected an in-radius result")
	}
	if id != 0 || d2 != 1 {
		t.Fatalf("local k=2 should clamp to node 0 at d2=1, got node %d at d2=%g", id, d2)
	}

	if _, _, ok := tree.KthNearestWithin(geom.V(100, 100), 1, 1); ok {
		t.Fatal("no node in radius must report no result")
	}
}

func TestHasChildNear(t *testing.T) {
	tree := NewTree()
	root := tree.AddRoot(geom.V(0, 0), 1)
	tree.AddChild(root, geom.V(2, 0), 1)

	if !tree.HasChildNear(root, geom.V(2.05, 0), 0.1) {
		t.Fatal("candidate within spacing of an existing child must be detected")
	}
	if tree.HasChildNear(root, geom.V(2.5, 0), 0.1) {
		t.Fatal("candidate outside spacing must not be detected")
	}
	// Other nodes' children do not count.
	if tree.HasChildNear(root, geom.V(0.05, 0), 0.1) {
		t.Fatal("the parent itself is not a child")
	}
}
