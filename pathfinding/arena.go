package pathfinding

import "crowdpath/core"

// NodeID is a stable handle to a SearchNode within one search run.
type NodeID int32

// NoParent marks the start node.
const NoParent NodeID = -1

// SearchNode represents one discovered grid cell during a search.
type SearchNode struct {
	Point  core.Point
	GCost  int    // Best known cost from start
	HCost  int    // Heuristic cost to goal, fixed at creation
	Parent NodeID // Back-reference used only for path reconstruction
	seq    int    // Discovery order, secondary key for frontier ordering
}

// FCost returns GCost + HCost.
func (n *SearchNode) FCost() int {
	return n.GCost + n.HCost
}

// nodeArena owns every SearchNode allocated during one run. Parent links are
// indices into the arena, so nodes are released together when the run ends.
type nodeArena struct {
	nodes []SearchNode
}

// alloc stores a new node and returns its handle.
func (a *nodeArena) alloc(p core.Point, g, h int, parent NodeID) NodeID {
	id := NodeID(len(a.nodes))
	a.nodes = append(a.nodes, SearchNode{
		Point:  p,
		GCost:  g,
		HCost:  h,
		Parent: parent,
		seq:    int(id),
	})
	return id
}

// get returns the node for id. The pointer is only valid until the next alloc.
func (a *nodeArena) get(id NodeID) *SearchNode {
	return &a.nodes[id]
}

// len returns the number of nodes allocated so far.
func (a *nodeArena) len() int {
	return len(a.nodes)
}
