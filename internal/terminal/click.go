package terminal

import "time"

// point is a screen cell.
type point struct {
	x, y int
}

// distance returns the Manhattan distance between two cells.
func (p point) distance(o point) int {
	return abs(p.x-o.x) + abs(p.y-o.y)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// clickTracker counts clicks in a sequence for dblclick detection.
type clickTracker struct {
	maxTime     time.Duration
	maxDistance int

	lastPos   point
	lastTime  time.Time
	lastCount int
}

func newClickTracker(maxTime time.Duration, maxDistance int) *clickTracker {
	return &clickTracker{
		maxTime:     maxTime,
		maxDistance: maxDistance,
	}
}

// recordClick records a click and returns its position in the sequence.
// The count wraps to 1 after a double click, so a third quick click starts
// a new pair. A zero timestamp means now.
func (t *clickTracker) recordClick(pos point, timestamp time.Time) int {
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	if t.isPartOfSequence(pos, timestamp) {
		t.lastCount++
		if t.lastCount > 2 {
			t.lastCount = 1
		}
	} else {
		t.lastCount = 1
	}

	t.lastPos = pos
	t.lastTime = timestamp
	return t.lastCount
}

func (t *clickTracker) isPartOfSequence(pos point, timestamp time.Time) bool {
	if t.lastCount == 0 || t.lastTime.IsZero() {
		return false
	}

	// Clock skew starts a new sequence.
	elapsed := timestamp.Sub(t.lastTime)
	if elapsed < 0 || elapsed > t.maxTime {
		return false
	}
	return pos.distance(t.lastPos) <= t.maxDistance
}

func (t *clickTracker) reset() {
	t.lastCount = 0
	t.lastTime = time.Time{}
	t.lastPos = point{}
}
