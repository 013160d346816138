package pathfinding

import "crowdpath/core"

// CostModel computes g and h costs for candidate nodes and records cell usage.
//
// Because StepCost reads a counter that grows while the search runs, the
// heuristic is not admissible against the final cost landscape. Paths are
// congestion-aware approximations, not provably optimal.
type CostModel struct {
	costs PathCost
	usage *UsageCounter
}

// NewCostModel creates a cost model backed by the given usage counter.
func NewCostModel(costs PathCost, usage *UsageCounter) CostModel {
	return CostModel{costs: costs, usage: usage}
}

// StepCost returns the accumulated cost of reaching neighbor from current.
func (c CostModel) StepCost(current *SearchNode, neighbor core.Point) int {
	return current.GCost + c.costs.StepCost + c.costs.UsageWeight*c.usage.Count(neighbor)
}

// Heuristic returns the Manhattan distance between a and b scaled by the base
// step cost. It is symmetric and never mutates state.
func (c CostModel) Heuristic(a, b core.Point) int {
	return ManhattanDistance(a, b) * c.costs.StepCost
}

// RecordUsage increments the usage count of p.
func (c CostModel) RecordUsage(p core.Point) {
	c.usage.Record(p)
}
