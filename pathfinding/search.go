package pathfinding

import (
	"crowdpath/core"
	"errors"
	"fmt"
)

// Precondition errors. Exhausting the frontier is not an error: it is
// reported as State Exhausted with an empty path.
var (
	// ErrOutOfBounds is returned when start or goal lies outside the grid.
	ErrOutOfBounds = errors.New("point out of bounds")

	// ErrImpassableEndpoint is returned when start or goal is blocked.
	ErrImpassableEndpoint = errors.New("endpoint is not passable")

	// ErrInvalidPathCost is returned when the finder's PathCost would allow
	// negative or zero step costs.
	ErrInvalidPathCost = errors.New("invalid path cost")
)

// State is the search driver state.
type State int

const (
	Running State = iota
	Succeeded
	Exhausted
)

// String returns the string representation of a State.
func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Succeeded:
		return "succeeded"
	case Exhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// SearchContext holds all state of one A* run. It is created per search and
// must not be shared between goroutines.
type SearchContext struct {
	grid  GridMap
	costs CostModel
	start core.Point
	goal  core.Point

	arena  nodeArena
	open   *openSet
	closed closedSet

	state      State
	current    NodeID
	expansions int
}

// newSearchContext validates the endpoints and seeds the frontier with the
// start node.
func newSearchContext(grid GridMap, costs CostModel, start, goal core.Point) (*SearchContext, error) {
	if err := checkEndpoint(grid, "start", start); err != nil {
		return nil, err
	}
	if err := checkEndpoint(grid, "goal", goal); err != nil {
		return nil, err
	}

	sc := &SearchContext{
		grid:    grid,
		costs:   costs,
		start:   start,
		goal:    goal,
		open:    newOpenSet(),
		closed:  make(closedSet),
		state:   Running,
		current: NoParent,
	}
	id := sc.arena.alloc(start, 0, costs.Heuristic(start, goal), NoParent)
	sc.open.push(sc.arena.get(id), id)
	return sc, nil
}

func checkEndpoint(grid GridMap, name string, p core.Point) error {
	if !grid.Bounds().Contains(p) {
		return fmt.Errorf("%w: %s %v", ErrOutOfBounds, name, p)
	}
	if !grid.IsPassable(p) {
		return fmt.Errorf("%w: %s %v", ErrImpassableEndpoint, name, p)
	}
	return nil
}

// step runs one iteration of the driver and returns the resulting state.
func (sc *SearchContext) step() State {
	if sc.state != Running {
		return sc.state
	}
	if sc.open.len() == 0 {
		sc.state = Exhausted
		sc.current = NoParent
		return sc.state
	}

	id := sc.open.peek()
	sc.current = id
	if sc.arena.get(id).Point == sc.goal {
		sc.state = Succeeded
		return sc.state
	}

	sc.open.popMin()
	sc.closed.add(sc.arena.get(id).Point, id)
	sc.expansions++
	sc.expand(id)
	return sc.state
}

// run drives the search until it terminates.
func (sc *SearchContext) run() State {
	for sc.step() == Running {
	}
	return sc.state
}

// expand examines the orthogonal neighbours of the node in expansionOrder,
// inserting new nodes into the frontier or relaxing existing ones.
func (sc *SearchContext) expand(id NodeID) {
	from := sc.arena.get(id).Point
	bounds := sc.grid.Bounds()

	for _, dir := range expansionOrder {
		neighbor := from.Add(dir)

		if !bounds.Contains(neighbor) || !sc.grid.IsPassable(neighbor) {
			continue
		}
		if sc.closed.contains(neighbor) {
			continue
		}

		g := sc.costs.StepCost(sc.arena.get(id), neighbor)

		if existingID, ok := sc.open.lookup(neighbor); !ok {
			h := sc.costs.Heuristic(neighbor, sc.goal)
			newID := sc.arena.alloc(neighbor, g, h, id)
			sc.open.push(sc.arena.get(newID), newID)
		} else if existing := sc.arena.get(existingID); g < existing.GCost {
			existing.GCost = g
			existing.Parent = id
			sc.open.update(existing)
		}

		// Every examined neighbour counts as a use, improved or not
		sc.costs.RecordUsage(neighbor)
	}
}

// path reconstructs the route by walking parent handles back from the goal.
// It returns an empty path unless the search succeeded.
func (sc *SearchContext) path() core.Path {
	if sc.state != Succeeded {
		return core.Path{}
	}

	goal := sc.arena.get(sc.current)
	var points []core.Point
	for id := sc.current; id != NoParent; id = sc.arena.get(id).Parent {
		points = append(points, sc.arena.get(id).Point)
	}
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}

	return core.Path{
		Points: points,
		Cost:   goal.GCost,
	}
}

// State returns the current driver state.
func (sc *SearchContext) State() State { return sc.state }

// Expansions returns how many nodes have been moved to the closed set.
func (sc *SearchContext) Expansions() int { return sc.expansions }

// Discovered returns how many distinct cells have been discovered.
func (sc *SearchContext) Discovered() int { return sc.arena.len() }
