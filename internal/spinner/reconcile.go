// Package spinner implements an endless scroll wheel over a bounded
// integer range.
//
// The wheel behaves as if the range were repeated a few times end to end.
// Nothing is materialised: a slot index maps to a value by modulo, and
// after every settle the offset is moved to the same value in the middle
// repeat so the wheel never runs out of slots in either direction.
package spinner

import "math"

// DefaultReplicas is the number of logical repeats of the range.
const DefaultReplicas = 3

// Bounds is an inclusive integer range.
type Bounds struct {
	Min int
	Max int
}

// Len returns the number of values in the range.
func (b Bounds) Len() int {
	if b.Max < b.Min {
		return 1
	}
	return b.Max - b.Min + 1
}

// Clamp limits v to the range.
func (b Bounds) Clamp(v int) int {
	if v < b.Min || b.Max < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

// Wrap maps any integer onto the range circularly.
func (b Bounds) Wrap(v int) int {
	return b.Min + mod(v-b.Min, b.Len())
}

// Event is a boundary crossing raised by a settle.
type Event int

const (
	EventNone Event = iota
	// EventReachedMax fires when the selection rolls forward past Max.
	EventReachedMax
	// EventReachedMin fires when the selection rolls backward past Min.
	EventReachedMin
)

func (e Event) String() string {
	switch e {
	case EventReachedMax:
		return "reached-max"
	case EventReachedMin:
		return "reached-min"
	default:
		return "none"
	}
}

// Result is the outcome of reconciling a raw scroll offset.
type Result struct {
	Value  int
	Index  int
	Offset float64
	Event  Event
}

// Reconcile maps a raw scroll offset to a value, re-centres it into the
// middle repeat and decides which boundary event, if any, the move raises.
// prev is the value selected before the gesture; the gesture is assumed to
// have started from prev's slot in the middle repeat. The travel is reduced
// modulo the range length, so any finite offset lands inside the bounds and
// a non-finite one is treated as no travel.
func Reconcile(rawOffset float64, prev int, b Bounds, itemHeight float64, replicas int) Result {
	replicas = normalizeReplicas(replicas)
	if itemHeight <= 0 || math.IsNaN(itemHeight) || math.IsInf(itemHeight, 0) {
		itemHeight = 1
	}
	n := b.Len()
	prev = b.Clamp(prev)
	prevOffset := float64(middleSlot(prev, b, replicas)) * itemHeight

	steps := math.Round((rawOffset - prevOffset) / itemHeight)
	if math.IsNaN(steps) || math.IsInf(steps, 0) {
		steps = 0
	}
	// Mod keeps the magnitude below n before the int conversion.
	value := b.Wrap(prev + int(math.Mod(steps, float64(n))))

	event := EventNone
	switch {
	case prev == b.Max && value != b.Max && steps > 0:
		event = EventReachedMax
	case prev == b.Min && value != b.Min && steps < 0:
		event = EventReachedMin
	}

	center := middleSlot(value, b, replicas)
	return Result{
		Value:  value,
		Index:  center,
		Offset: float64(center) * itemHeight,
		Event:  event,
	}
}

// middleSlot is the index of v inside the middle repeat.
func middleSlot(v int, b Bounds, replicas int) int {
	return (replicas/2)*b.Len() + (v - b.Min)
}

func normalizeReplicas(r int) int {
	if r < DefaultReplicas {
		return DefaultReplicas
	}
	if r%2 == 0 {
		return r + 1
	}
	return r
}

func mod(a, n int) int {
	if n <= 0 {
		return 0
	}
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
