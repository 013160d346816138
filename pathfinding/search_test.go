package pathfinding

import (
	"container/heap"
	"context"
	"crowdpath/core"
	"testing"
)

func TestCostModel_Heuristic(t *testing.T) {
	costs := NewCostModel(DefaultPathCost, NewUsageCounter())
	points := []core.Point{
		{X: 0, Y: 0}, {X: 9, Y: 9}, {X: 3, Y: 7}, {X: -2, Y: 4}, {X: 5, Y: 0},
	}

	for _, a := range points {
		for _, b := range points {
			if costs.Heuristic(a, b) != costs.Heuristic(b, a) {
				t.Errorf("Heuristic(%v, %v) = %d but Heuristic(%v, %v) = %d",
					a, b, costs.Heuristic(a, b), b, a, costs.Heuristic(b, a))
			}
		}
	}
	if got := costs.Heuristic(core.Point{X: 0, Y: 0}, core.Point{X: 9, Y: 9}); got != 18 {
		t.Errorf("Heuristic((0,0), (9,9)) = %d, want 18", got)
	}
}

func TestCostModel_StepCost(t *testing.T) {
	usage := NewUsageCounter()
	costs := NewCostModel(DefaultPathCost, usage)
	current := &SearchNode{Point: core.Point{X: 1, Y: 1}, GCost: 5}
	neighbor := core.Point{X: 2, Y: 1}

	if got := costs.StepCost(current, neighbor); got != 6 {
		t.Errorf("StepCost on unused cell = %d, want 6", got)
	}

	costs.RecordUsage(neighbor)
	costs.RecordUsage(neighbor)
	if got := costs.StepCost(current, neighbor); got != 8 {
		t.Errorf("StepCost after two uses = %d, want 8", got)
	}

	weighted := NewCostModel(PathCost{StepCost: 2, UsageWeight: 3}, usage)
	if got := weighted.StepCost(current, neighbor); got != 5+2+3*2 {
		t.Errorf("weighted StepCost = %d, want %d", got, 5+2+3*2)
	}
}

func TestUsageCounter(t *testing.T) {
	u := NewUsageCounter()
	a, b := core.Point{X: 0, Y: 1}, core.Point{X: 2, Y: 2}

	u.Record(a)
	u.Record(a)
	u.Record(b)

	if u.Count(a) != 2 || u.Count(b) != 1 {
		t.Errorf("counts = %d, %d, want 2, 1", u.Count(a), u.Count(b))
	}
	if u.Count(core.Point{X: 5, Y: 5}) != 0 {
		t.Error("unused cell should count 0")
	}
	if u.Total() != 3 || u.Len() != 2 {
		t.Errorf("Total=%d Len=%d, want 3, 2", u.Total(), u.Len())
	}

	snap := u.Snapshot()
	u.Record(a)
	if snap[a] != 2 {
		t.Error("Snapshot must not alias the live counts")
	}

	u.Reset()
	if u.Total() != 0 || u.Len() != 0 || u.Count(a) != 0 {
		t.Error("Reset did not clear counts")
	}
}

func TestSearch_RecordsUsageOncePerExaminedNeighbor(t *testing.T) {
	usage := NewUsageCounter()
	finder := NewAStarPathFinder(WithUsageCounter(usage))
	g := mustGrid(t, 3, 3)

	result, err := finder.FindPath(context.Background(), g, core.Point{X: 0, Y: 0}, core.Point{X: 2, Y: 2})
	if err != nil {
		t.Fatalf("FindPath failed: %v", err)
	}
	if result.Path.Cost != 4 || result.Expansions != 8 {
		t.Errorf("Cost=%d Expansions=%d, want 4, 8", result.Path.Cost, result.Expansions)
	}

	want := map[core.Point]int{
		{X: 1, Y: 0}: 1, {X: 2, Y: 0}: 1,
		{X: 0, Y: 1}: 1, {X: 1, Y: 1}: 2, {X: 2, Y: 1}: 2,
		{X: 0, Y: 2}: 1, {X: 1, Y: 2}: 2, {X: 2, Y: 2}: 2,
	}
	got := usage.Snapshot()
	if len(got) != len(want) {
		t.Fatalf("usage = %v, want %v", got, want)
	}
	for p, n := range want {
		if got[p] != n {
			t.Errorf("usage[%v] = %d, want %d", p, got[p], n)
		}
	}
	// The start is never discovered as anyone's neighbour
	if usage.Count(core.Point{X: 0, Y: 0}) != 0 {
		t.Error("start cell must not be counted")
	}
}

func TestSearch_Relaxation(t *testing.T) {
	// Prior congestion on (1,0) makes the first route to (1,1) expensive;
	// expanding (0,1) later finds a cheaper one.
	usage := NewUsageCounter()
	usage.Record(core.Point{X: 1, Y: 0})
	usage.Record(core.Point{X: 1, Y: 0})

	g := mustGrid(t, 3, 2)
	sc, err := newSearchContext(g, NewCostModel(DefaultPathCost, usage), core.Point{X: 0, Y: 0}, core.Point{X: 2, Y: 0})
	if err != nil {
		t.Fatalf("newSearchContext failed: %v", err)
	}

	if state := sc.run(); state != Succeeded {
		t.Fatalf("state = %v, want %v", state, Succeeded)
	}

	id, ok := sc.open.lookup(core.Point{X: 1, Y: 1})
	if !ok {
		t.Fatal("(1,1) should still be in the open set")
	}
	node := sc.arena.get(id)
	if node.GCost != 3 {
		t.Errorf("relaxed GCost = %d, want 3", node.GCost)
	}
	if parent := sc.arena.get(node.Parent).Point; parent != (core.Point{X: 0, Y: 1}) {
		t.Errorf("relaxed parent = %v, want (0, 1)", parent)
	}
	if node.HCost != 2 {
		t.Errorf("HCost changed to %d, want 2", node.HCost)
	}

	path := sc.path()
	if path.Cost != 4 || path.Length() != 3 {
		t.Errorf("path = %s, want cost 4 through (1,0)", PathToString(path))
	}
	if usage.Count(core.Point{X: 1, Y: 1}) != 2 {
		t.Errorf("usage(1,1) = %d, want 2", usage.Count(core.Point{X: 1, Y: 1}))
	}
}

func TestSearch_ClosedNodesAreFrozen(t *testing.T) {
	g := mustParse(t, originalBoard)
	usage := NewUsageCounter()
	// Pre-existing congestion makes costs uneven
	for x := 0; x < 10; x++ {
		for i := 0; i < x%3; i++ {
			usage.Record(core.Point{X: x, Y: 5})
		}
	}

	sc, err := newSearchContext(g, NewCostModel(DefaultPathCost, usage), core.Point{X: 0, Y: 0}, core.Point{X: 9, Y: 9})
	if err != nil {
		t.Fatalf("newSearchContext failed: %v", err)
	}

	type frozen struct {
		g      int
		parent NodeID
	}
	closedAt := make(map[core.Point]frozen)

	for sc.step() == Running {
		for p, id := range sc.closed {
			node := sc.arena.get(id)
			if prev, ok := closedAt[p]; ok {
				if prev.g != node.GCost || prev.parent != node.Parent {
					t.Fatalf("closed node %v changed from %+v to g=%d parent=%d", p, prev, node.GCost, node.Parent)
				}
			} else {
				closedAt[p] = frozen{g: node.GCost, parent: node.Parent}
			}
			if _, open := sc.open.lookup(p); open {
				t.Fatalf("%v is in both the open and closed set", p)
			}
		}
	}

	if sc.State() != Succeeded {
		t.Fatalf("state = %v, want %v", sc.State(), Succeeded)
	}
	if len(closedAt) != sc.Expansions() {
		t.Errorf("closed %d distinct cells but counted %d expansions", len(closedAt), sc.Expansions())
	}
}

func TestSearch_StepAfterTerminationIsNoop(t *testing.T) {
	g := mustGrid(t, 2, 1)
	sc, err := newSearchContext(g, NewCostModel(DefaultPathCost, NewUsageCounter()), core.Point{X: 0, Y: 0}, core.Point{X: 1, Y: 0})
	if err != nil {
		t.Fatalf("newSearchContext failed: %v", err)
	}
	sc.run()
	expansions := sc.Expansions()

	if state := sc.step(); state != Succeeded {
		t.Errorf("step after success = %v", state)
	}
	if sc.Expansions() != expansions {
		t.Error("step after success expanded again")
	}
}

func TestNodeQueue_TieBreaksByDiscoveryOrder(t *testing.T) {
	q := &nodeQueue{}
	heap.Init(q)
	heap.Push(q, &queueItem{id: 0, fCost: 5, seq: 2})
	heap.Push(q, &queueItem{id: 1, fCost: 4, seq: 3})
	heap.Push(q, &queueItem{id: 2, fCost: 5, seq: 0})
	heap.Push(q, &queueItem{id: 3, fCost: 4, seq: 1})

	want := []NodeID{3, 1, 2, 0}
	for i, id := range want {
		item := heap.Pop(q).(*queueItem)
		if item.id != id {
			t.Errorf("pop %d = node %d, want %d", i, item.id, id)
		}
		if item.index != -1 {
			t.Errorf("popped item keeps index %d", item.index)
		}
	}
}

func TestOpenSet_Update(t *testing.T) {
	var arena nodeArena
	open := newOpenSet()
	for i, g := range []int{3, 5, 7} {
		id := arena.alloc(core.Point{X: i, Y: 0}, g, 0, NoParent)
		open.push(arena.get(id), id)
	}

	id, ok := open.lookup(core.Point{X: 2, Y: 0})
	if !ok {
		t.Fatal("lookup failed")
	}
	arena.get(id).GCost = 1
	open.update(arena.get(id))

	if got := open.peek(); got != id {
		t.Errorf("peek = %d, want relaxed node %d", got, id)
	}
	if got := open.popMin(); got != id {
		t.Errorf("popMin = %d, want %d", got, id)
	}
	if _, ok := open.lookup(core.Point{X: 2, Y: 0}); ok {
		t.Error("popped node still a member")
	}
	if open.len() != 2 {
		t.Errorf("len = %d, want 2", open.len())
	}
}

func TestStepper_MatchesFindPath(t *testing.T) {
	g := mustParse(t, originalBoard)
	start, end := core.Point{X: 0, Y: 0}, core.Point{X: 9, Y: 9}

	want, err := NewAStarPathFinder().FindPath(context.Background(), g, start, end)
	if err != nil {
		t.Fatalf("FindPath failed: %v", err)
	}

	stepper, err := NewAStarPathFinder().NewStepper(g, start, end)
	if err != nil {
		t.Fatalf("NewStepper failed: %v", err)
	}

	first := stepper.Snapshot()
	if first.HasCurrent || first.StepIndex != 0 || len(first.Open) != 1 {
		t.Errorf("initial snapshot = %+v", first)
	}

	steps := 0
	var snap Snapshot
	for snap = stepper.Step(); !snap.Done(); snap = stepper.Step() {
		steps++
		if !snap.HasCurrent {
			t.Fatalf("step %d has no current node", snap.StepIndex)
		}
		if snap.Expansions != snap.StepIndex {
			t.Fatalf("step %d reports %d expansions", snap.StepIndex, snap.Expansions)
		}
	}

	if snap.State != Succeeded || snap.Current != end {
		t.Fatalf("final snapshot state=%v current=%v", snap.State, snap.Current)
	}
	if steps != want.Expansions {
		t.Errorf("stepped %d times before the goal, FindPath expanded %d", steps, want.Expansions)
	}
	got := stepper.Result()
	if got.Path.Cost != want.Path.Cost || got.Path.Length() != want.Path.Length() {
		t.Errorf("stepper path %s, FindPath %s", PathToString(got.Path), PathToString(want.Path))
	}
	for i := range want.Path.Points {
		if got.Path.Points[i] != want.Path.Points[i] {
			t.Fatalf("paths differ at %d: %v vs %v", i, got.Path.Points[i], want.Path.Points[i])
		}
	}

	// Further steps do not advance
	again := stepper.Step()
	if again.StepIndex != snap.StepIndex {
		t.Errorf("StepIndex advanced after termination: %d -> %d", snap.StepIndex, again.StepIndex)
	}
}

func TestStepper_Exhausted(t *testing.T) {
	g := mustParse(t, `
...
.X.
X.X`)
	stepper, err := NewAStarPathFinder().NewStepper(g, core.Point{X: 0, Y: 0}, core.Point{X: 1, Y: 2})
	if err != nil {
		t.Fatalf("NewStepper failed: %v", err)
	}

	snap := stepper.Run()
	if snap.State != Exhausted {
		t.Fatalf("state = %v, want %v", snap.State, Exhausted)
	}
	if snap.HasCurrent {
		t.Error("exhausted snapshot should have no current node")
	}
	if len(snap.Open) != 0 {
		t.Errorf("open = %v, want empty", snap.Open)
	}
	if len(snap.Closed) != 5 {
		t.Errorf("closed = %v, want the 5 reachable cells", snap.Closed)
	}
	if !snap.Path.IsEmpty() {
		t.Errorf("path = %s, want empty", PathToString(snap.Path))
	}
}

func TestStepper_RejectsBadEndpoints(t *testing.T) {
	g := mustGrid(t, 3, 3)
	if _, err := NewAStarPathFinder().NewStepper(g, core.Point{X: 0, Y: 0}, core.Point{X: 3, Y: 0}); err == nil {
		t.Error("expected an error for an out-of-bounds goal")
	}
}
