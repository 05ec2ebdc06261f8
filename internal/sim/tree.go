package sim

import (
	"slices"

	"spacecol/internal/geom"
)

// NoParent is the parent index of a root node.
const NoParent = -1

// Node is one element of the tree arena. Nodes are append-only: position,
// radius and parent never change after creation, only the child list grows.
type Node struct {
	Pos      geom.Vec2
	Radius   float64
	Parent   int
	Children []int
}

// Tree is a flat, growable arena of nodes forming a forest. A node's index
// is its identity: indices increase monotonically, are never reused, and a
// child's index is always strictly greater than its parent's, so index order
// is a valid topological order.
type Tree struct {
	nodes []Node
}

// NewTree returns an empty tree.
func NewTree() *Tree { return &Tree{} }

// Len reports the number of nodes in the arena.
func (t *Tree) Len() int { return len(t.nodes) }

// At returns a pointer to the node with the given index.
func (t *Tree) At(id int) *Node { return &t.nodes[id] }

// AddRoot appends a parentless node and returns its index. The tree is a
// forest, so any number of roots may coexist.
func (t *Tree) AddRoot(pos geom.Vec2, radius float64) int {
	id := len(t.nodes)
	t.nodes = append(t.nodes, Node{Pos: pos, Radius: radius, Parent: NoParent})
	return id
}

// AddChild appends a node linked under parent and returns its index.
func (t *Tree) AddChild(parent int, pos geom.Vec2, radius float64) int {
	id := len(t.nodes)
	t.nodes = append(t.nodes, Node{Pos: pos, Radius: radius, Parent: parent})
	t.nodes[parent].Children = append(t.nodes[parent].Children, id)
	return id
}

// Clear removes every node.
func (t *Tree) Clear() { t.nodes = t.nodes[:0] }

// HasChildNear reports whether parent already has a child within spacing of
// pos. Growth uses this to suppress visually redundant stacked nodes.
func (t *Tree) HasChildNear(parent int, pos geom.Vec2, spacing float64) bool {
	s2 := spacing * spacing
	for _, child := range t.nodes[parent].Children {
		if t.nodes[child].Pos.DistSq(pos) < s2 {
			return true
		}
	}
	return false
}

type nodeDist struct {
	id int
	d2 float64
}

// rankNodeDist orders candidates by squared distance, breaking ties by the
// lower node index so queries are deterministic.
func rankNodeDist(a, b nodeDist) int {
	switch {
	case a.d2 < b.d2:
		return -1
	case a.d2 > b.d2:
		return 1
	case a.id < b.id:
		return -1
	case a.id > b.id:
		return 1
	}
	return 0
}

// KthNearest returns the index and squared distance of the node whose
// distance to pos ranks k-th smallest over the whole arena (k=1 is the
// nearest). When k exceeds the node count the farthest node is returned.
// The boolean is false only when the tree is empty.
func (t *Tree) KthNearest(pos geom.Vec2, k int) (int, float64, bool) {
	return kthNearestOf(collectDists(t.nodes, pos, nil), k)
}

// KthNearestWithin is the local-evaluation variant: only nodes with squared
// distance strictly below maxDistSq participate in the ranking, and k clamps
// to the farthest in-radius node. The boolean is false when no node is in
// range.
func (t *Tree) KthNearestWithin(pos geom.Vec2, k int, maxDistSq float64) (int, float64, bool) {
	dists := collectDists(t.nodes, pos, func(d2 float64) bool { return d2 < maxDistSq })
	return kthNearestOf(dists, k)
}

func collectDists(nodes []Node, pos geom.Vec2, keep func(float64) bool) []nodeDist {
	dists := make([]nodeDist, 0, len(nodes))
	for id := range nodes {
		d2 := nodes[id].Pos.DistSq(pos)
		if keep != nil && !keep(d2) {
			continue
		}
		dists = append(dists, nodeDist{id: id, d2: d2})
	}
	return dists
}

func kthNearestOf(dists []nodeDist, k int) (int, float64, bool) {
	if len(dists) == 0 {
		return 0, 0, false
	}
	if k < 1 {
		k = 1
	}
	if k > len(dists) {
		k = len(dists)
	}
	slices.SortFunc(dists, rankNodeDist)
	best := dists[k-1]
	return best.id, best.d2, true
}
