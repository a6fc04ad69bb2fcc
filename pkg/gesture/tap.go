package gesture

import (
	"math"
	"time"
)

// Filter action kinds emitted by TapFilter.
const (
	// ActionBegin starts a pan at Event.Position.
	ActionBegin = Action(iota)
	// ActionMove continues a pan.
	ActionMove
	// ActionEnd finishes a pan.
	ActionEnd
	// ActionDoubleTap reports a recognized double tap. No pan events were
	// emitted for either tap.
	ActionDoubleTap
)

// Action identifies what an Event asks the consumer to do.
type Action int

// Event is a filtered pointer event.
type Event struct {
	Action   Action
	Position Point
}

// Default tap recognition parameters.
const (
	DefaultTapWindow = 300 * time.Millisecond
	DefaultTapSlop   = 3.0 // dots
)

type filterState int

const (
	filterIdle filterState = iota
	filterFirstDown
	filterAwaitSecond
	filterSecondDown
	filterPanning
)

// TapFilter arbitrates between panning and double taps with an explicit
// priority: a press is held back while double-tap recognition is still
// possible, and a pan begins only once recognition has failed, either
// because the pointer moved past the slop distance or because the tap
// window elapsed. Two quick press/release pairs inside the window and slop
// produce a single ActionDoubleTap and no pan events at all.
type TapFilter struct {
	// Window is the maximum duration of each tap and of the gap between
	// the first release and the second press.
	Window time.Duration
	// Slop is the movement (in dots) a press may drift before it stops
	// being a tap and becomes a pan.
	Slop float64

	// now is injectable for tests; defaults to time.Now.
	now func() time.Time

	state   filterState
	downPos Point
	downAt  time.Time
	tapPos  Point
	tapAt   time.Time
}

// NewTapFilter returns a TapFilter with the default window and slop.
func NewTapFilter() *TapFilter {
	return &TapFilter{
		Window: DefaultTapWindow,
		Slop:   DefaultTapSlop,
		now:    time.Now,
	}
}

// Press feeds a pointer-down at p and returns the events to apply.
func (f *TapFilter) Press(p Point) []Event {
	t := f.clock()

	switch f.state {
	case filterAwaitSecond:
		if t.Sub(f.tapAt) <= f.window() && dist(p, f.tapPos) <= f.slop()*2 {
			f.state = filterSecondDown
			f.downPos, f.downAt = p, t
			return nil
		}
		// Too late or too far: this is a fresh first press.
		fallthrough
	case filterIdle:
		f.state = filterFirstDown
		f.downPos, f.downAt = p, t
		return nil
	default:
		// A press while one is already down should not happen with a
		// single pointer; start over.
		f.reset()
		f.state = filterFirstDown
		f.downPos, f.downAt = p, t
		return nil
	}
}

// Move feeds a pointer move at p (button held) and returns the events to
// apply. While a press is still a tap candidate the move is swallowed; the
// pan begins retroactively from the press position once the candidate fails.
func (f *TapFilter) Move(p Point) []Event {
	switch f.state {
	case filterFirstDown, filterSecondDown:
		if dist(p, f.downPos) <= f.slop() && f.clock().Sub(f.downAt) <= f.window() {
			return nil
		}
		f.state = filterPanning
		return []Event{
			{Action: ActionBegin, Position: f.downPos},
			{Action: ActionMove, Position: p},
		}
	case filterPanning:
		return []Event{{Action: ActionMove, Position: p}}
	default:
		return nil
	}
}

// Release feeds a pointer-up at p and returns the events to apply.
func (f *TapFilter) Release(p Point) []Event {
	t := f.clock()

	switch f.state {
	case filterFirstDown:
		if t.Sub(f.downAt) <= f.window() {
			f.state = filterAwaitSecond
			f.tapPos, f.tapAt = p, t
			return nil
		}
		// Held too long for a tap: deliver the press as a degenerate pan.
		f.state = filterIdle
		return []Event{
			{Action: ActionBegin, Position: f.downPos},
			{Action: ActionEnd, Position: p},
		}
	case filterSecondDown:
		f.state = filterIdle
		if t.Sub(f.downAt) <= f.window() {
			return []Event{{Action: ActionDoubleTap, Position: p}}
		}
		return []Event{
			{Action: ActionBegin, Position: f.downPos},
			{Action: ActionEnd, Position: p},
		}
	case filterPanning:
		f.state = filterIdle
		return []Event{{Action: ActionEnd, Position: p}}
	default:
		return nil
	}
}

// Engaged reports whether the filter currently owns the pointer: a press is
// pending classification or a pan is in flight. While engaged, the consumer
// should route all motion and release events to the filter regardless of
// where on screen they land.
func (f *TapFilter) Engaged() bool {
	switch f.state {
	case filterFirstDown, filterSecondDown, filterPanning:
		return true
	default:
		return false
	}
}

// Cancel drops all pending state. An in-flight pan ends; a pending tap is
// forgotten without emitting anything.
func (f *TapFilter) Cancel() []Event {
	panning := f.state == filterPanning
	f.reset()
	if panning {
		return []Event{{Action: ActionEnd}}
	}
	return nil
}

func (f *TapFilter) reset() {
	f.state = filterIdle
}

func (f *TapFilter) clock() time.Time {
	if f.now != nil {
		return f.now()
	}
	return time.Now()
}

func (f *TapFilter) window() time.Duration {
	if f.Window > 0 {
		return f.Window
	}
	return DefaultTapWindow
}

func (f *TapFilter) slop() float64 {
	if f.Slop > 0 {
		return f.Slop
	}
	return DefaultTapSlop
}

func dist(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
