package pathfinding

import "crowdpath/core"

// UsageCounter counts how many times each cell has been discovered as a
// neighbour during expansion. Counts only grow until Reset is called.
//
// A UsageCounter passed to several searches carries congestion memory from
// one run to the next. It is not safe for concurrent use; searches sharing a
// counter must run one after another.
type UsageCounter struct {
	counts map[core.Point]int
	total  int
}

// NewUsageCounter creates an empty counter.
func NewUsageCounter() *UsageCounter {
	return &UsageCounter{counts: make(map[core.Point]int)}
}

// Count returns how many uses have been recorded for p.
func (u *UsageCounter) Count(p core.Point) int {
	return u.counts[p]
}

// Record adds one use of p.
func (u *UsageCounter) Record(p core.Point) {
	u.counts[p]++
	u.total++
}

// Total returns the number of uses recorded across all cells.
func (u *UsageCounter) Total() int {
	return u.total
}

// Len returns the number of distinct cells with at least one use.
func (u *UsageCounter) Len() int {
	return len(u.counts)
}

// Snapshot returns a copy of the per-cell counts.
func (u *UsageCounter) Snapshot() map[core.Point]int {
	c := make(map[core.Point]int, len(u.counts))
	for k, v := range u.counts {
		c[k] = v
	}
	return c
}

// Reset clears all counts.
func (u *UsageCounter) Reset() {
	u.counts = make(map[core.Point]int)
	u.total = 0
}
