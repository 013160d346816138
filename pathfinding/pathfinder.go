// Package pathfinding finds shortest-cost paths between two cells of a grid
// using A* with a congestion-aware cost model.
//
// Every time a search discovers a cell as a neighbour, the cell's usage count
// grows, and entering it becomes more expensive for the rest of the search
// (and for later searches that share the same UsageCounter). Paths therefore
// spread away from heavily explored routes.
//
// The search is single-threaded and synchronous. A SearchContext owns all
// state for one run; nothing but the caller-supplied UsageCounter outlives it.
package pathfinding

import (
	"crowdpath/core"
	"fmt"
	"strings"
)

// GridMap is the passability oracle the search runs over.
// IsPassable is only ever called for points inside Bounds.
type GridMap interface {
	Bounds() core.Bounds
	IsPassable(p core.Point) bool
}

// PathCost defines the cost model for the search.
type PathCost struct {
	StepCost    int `json:"step_cost"`    // Base cost for entering a cell
	UsageWeight int `json:"usage_weight"` // Surcharge per recorded use of the entered cell
}

// Validate reports whether every move costs at least 1 and usage never
// lowers a cost, which keeps g-costs non-negative and the heuristic
// admissible.
func (c PathCost) Validate() error {
	if c.StepCost < 1 {
		return fmt.Errorf("%w: step cost %d, must be at least 1", ErrInvalidPathCost, c.StepCost)
	}
	if c.UsageWeight < 0 {
		return fmt.Errorf("%w: usage weight %d, must not be negative", ErrInvalidPathCost, c.UsageWeight)
	}
	return nil
}

// DefaultPathCost charges 1 per step plus 1 per prior use of the cell.
var DefaultPathCost = PathCost{
	StepCost:    1,
	UsageWeight: 1,
}

// expansionOrder is the fixed neighbour order used by the expander.
// Changing it changes tie-breaking between equal-cost routes.
var expansionOrder = [4]core.Direction{core.West, core.East, core.North, core.South}

// ManhattanDistance calculates the Manhattan distance between two points.
func ManhattanDistance(p1, p2 core.Point) int {
	return abs(p1.X-p2.X) + abs(p1.Y-p2.Y)
}

// IsContiguous reports whether every consecutive pair of points in the path
// is one orthogonal step apart.
func IsContiguous(path core.Path) bool {
	for i := 1; i < len(path.Points); i++ {
		if ManhattanDistance(path.Points[i-1], path.Points[i]) != 1 {
			return false
		}
	}
	return true
}

// PathToString converts a path to a string representation for debugging.
func PathToString(path core.Path) string {
	if path.IsEmpty() {
		return "empty path"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Path (cost=%d): ", path.Cost)
	for i, p := range path.Points {
		if i > 0 {
			sb.WriteString(" -> ")
		}
		fmt.Fprintf(&sb, "(%d,%d)", p.X, p.Y)
	}
	return sb.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
