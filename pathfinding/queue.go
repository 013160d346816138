package pathfinding

import (
	"container/heap"
	"crowdpath/core"
)

// queueItem is a frontier entry in the priority queue.
type queueItem struct {
	id    NodeID
	point core.Point
	fCost int
	seq   int
	index int // Index in the heap
}

// nodeQueue is a priority queue ordered by F cost, then by discovery order.
type nodeQueue []*queueItem

func (nq nodeQueue) Len() int { return len(nq) }
func (nq nodeQueue) Less(i, j int) bool {
	if nq[i].fCost != nq[j].fCost {
		return nq[i].fCost < nq[j].fCost
	}
	// Earlier discoveries win ties so output is reproducible
	return nq[i].seq < nq[j].seq
}
func (nq nodeQueue) Swap(i, j int) {
	nq[i], nq[j] = nq[j], nq[i]
	nq[i].index = i
	nq[j].index = j
}

func (nq *nodeQueue) Push(x interface{}) {
	item := x.(*queueItem)
	item.index = len(*nq)
	*nq = append(*nq, item)
}

func (nq *nodeQueue) Pop() interface{} {
	old := *nq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // avoid memory leak
	item.index = -1 // for safety
	*nq = old[0 : n-1]
	return item
}

// openSet is the frontier: discovered, not yet finalized nodes.
// The members map gives O(1) lookups for the relaxation check.
type openSet struct {
	queue   nodeQueue
	members map[core.Point]*queueItem
}

func newOpenSet() *openSet {
	return &openSet{members: make(map[core.Point]*queueItem)}
}

// push adds a newly discovered node.
func (o *openSet) push(node *SearchNode, id NodeID) {
	item := &queueItem{id: id, point: node.Point, fCost: node.FCost(), seq: node.seq}
	heap.Push(&o.queue, item)
	o.members[node.Point] = item
}

// lookup returns the handle of the open node at p.
func (o *openSet) lookup(p core.Point) (NodeID, bool) {
	item, ok := o.members[p]
	if !ok {
		return 0, false
	}
	return item.id, true
}

// update re-orders the node at p after its cost was lowered.
func (o *openSet) update(node *SearchNode) {
	item := o.members[node.Point]
	item.fCost = node.FCost()
	heap.Fix(&o.queue, item.index)
}

// peek returns the handle of the lowest-cost node without removing it.
func (o *openSet) peek() NodeID {
	return o.queue[0].id
}

// popMin removes and returns the lowest-cost node.
func (o *openSet) popMin() NodeID {
	item := heap.Pop(&o.queue).(*queueItem)
	delete(o.members, item.point)
	return item.id
}

func (o *openSet) len() int {
	return o.queue.Len()
}

// points returns the coordinates currently in the frontier.
func (o *openSet) points() []core.Point {
	points := make([]core.Point, 0, len(o.members))
	for p := range o.members {
		points = append(points, p)
	}
	return points
}

// closedSet holds finalized nodes. Once closed, a coordinate is never
// expanded or reopened again during the run.
type closedSet map[core.Point]NodeID

func (c closedSet) add(p core.Point, id NodeID) { c[p] = id }

func (c closedSet) contains(p core.Point) bool {
	_, ok := c[p]
	return ok
}

func (c closedSet) points() []core.Point {
	points := make([]core.Point, 0, len(c))
	for p := range c {
		points = append(points, p)
	}
	return points
}
