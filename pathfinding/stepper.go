package pathfinding

import (
	"crowdpath/core"
	"sort"
)

// Snapshot exposes the per-iteration state of a search.
type Snapshot struct {
	Current    core.Point // Node selected by the last step
	HasCurrent bool       // False before the first step and after exhaustion
	Open       []core.Point
	Closed     []core.Point
	State      State
	Path       core.Path // Set once State is Succeeded
	StepIndex  int
	Expansions int
}

// Done reports whether the search has terminated.
func (s Snapshot) Done() bool {
	return s.State != Running
}

// Stepper runs a search one driver iteration at a time, for viewers and
// debugging tools. It produces exactly the same result as FindPath.
type Stepper struct {
	sc    *SearchContext
	steps int
}

// NewStepper prepares a step-by-step search from start to goal using the
// finder's cost model and usage counter.
func (a *AStarPathFinder) NewStepper(grid GridMap, start, goal core.Point) (*Stepper, error) {
	sc, err := a.newContext(grid, start, goal)
	if err != nil {
		return nil, err
	}
	return &Stepper{sc: sc}, nil
}

// Step advances the search by one iteration and returns a snapshot.
// Once the search has terminated, Step returns the final snapshot again.
func (s *Stepper) Step() Snapshot {
	if s.sc.State() == Running {
		s.steps++
		s.sc.step()
	}
	return s.Snapshot()
}

// Run steps until the search terminates and returns the final snapshot.
func (s *Stepper) Run() Snapshot {
	for !s.Step().Done() {
	}
	return s.Snapshot()
}

// Snapshot returns the current state without advancing.
func (s *Stepper) Snapshot() Snapshot {
	snap := Snapshot{
		Open:       sortPoints(s.sc.open.points()),
		Closed:     sortPoints(s.sc.closed.points()),
		State:      s.sc.State(),
		Path:       s.sc.path(),
		StepIndex:  s.steps,
		Expansions: s.sc.Expansions(),
	}
	if s.sc.current != NoParent {
		snap.Current = s.sc.arena.get(s.sc.current).Point
		snap.HasCurrent = true
	}
	return snap
}

// Result returns the search outcome so far.
func (s *Stepper) Result() Result {
	return Result{
		Path:       s.sc.path(),
		State:      s.sc.State(),
		Expansions: s.sc.Expansions(),
		Discovered: s.sc.Discovered(),
	}
}

// sortPoints orders points row-major.
func sortPoints(points []core.Point) []core.Point {
	sort.Slice(points, func(i, j int) bool {
		if points[i].Y != points[j].Y {
			return points[i].Y < points[j].Y
		}
		return points[i].X < points[j].X
	})
	return points
}
