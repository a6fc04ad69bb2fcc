// Package gesture turns a raw single-pointer event stream into the
// quantities a control widget actually wants: the pointer's angle around a
// center point and a smoothed incremental displacement.
package gesture

import "math"

// DefaultSlidingSensitivity scales raw pointer deltas (in braille dots)
// into displacement units. 0.005 means a 200-dot drag sweeps a full-range
// horizontal control once.
const DefaultSlidingSensitivity = 0.005

// historyCap bounds the smoothing buffer. Three samples is enough to kill
// single-event jitter without making the control feel laggy.
const historyCap = 3

// Point is a pointer position in braille-dot coordinates (y grows down).
type Point struct {
	X, Y float64
}

// Vec is a 2D displacement.
type Vec struct {
	X, Y float64
}

// Add returns v + w.
func (v Vec) Add(w Vec) Vec {
	return Vec{X: v.X + w.X, Y: v.Y + w.Y}
}

// Tracker follows one pointer across a begin -> move* -> end sequence.
// It exposes the pointer's angle relative to a fixed center and a
// recency-weighted moving average of the per-event displacement.
//
// Tracker has no dependency on control state; the zero value is usable
// after SetCenter (or via New).
type Tracker struct {
	center      Point
	sensitivity float64

	active       bool
	last         Point
	history      []Vec // oldest first, len <= historyCap
	displacement Vec
	angle        float64
}

// New creates a tracker centered on center with the default sliding
// sensitivity.
func New(center Point) *Tracker {
	return &Tracker{
		center:      center,
		sensitivity: DefaultSlidingSensitivity,
	}
}

// SetCenter moves the reference center used for angle computation.
func (t *Tracker) SetCenter(center Point) {
	t.center = center
}

// SetSensitivity overrides the sliding sensitivity. Values <= 0 are ignored.
func (t *Tracker) SetSensitivity(s float64) {
	if s > 0 {
		t.sensitivity = s
	}
}

// Active reports whether a pointer is currently down.
func (t *Tracker) Active() bool {
	return t.active
}

// Begin starts tracking at position. Any smoothing history from a previous
// gesture is discarded and the initial angle is computed immediately.
func (t *Tracker) Begin(position Point) {
	t.active = true
	t.last = position
	t.history = t.history[:0]
	t.displacement = Vec{}
	t.angle = t.angleTo(position)
}

// Move processes a pointer move. The raw delta since the last position is
// scaled by the sliding sensitivity, pushed into the smoothing buffer, and
// the exposed displacement becomes the weighted average of the buffer with
// linear weights (most recent sample weighted highest). A Move without a
// preceding Begin is a no-op: the tracker has no reference position yet.
func (t *Tracker) Move(position Point) {
	if !t.active {
		return
	}

	raw := Vec{
		X: (position.X - t.last.X) * t.sensitivity,
		Y: (position.Y - t.last.Y) * t.sensitivity,
	}

	if len(t.history) == historyCap {
		copy(t.history, t.history[1:])
		t.history = t.history[:historyCap-1]
	}
	t.history = append(t.history, raw)

	t.displacement = weightedAverage(t.history)
	t.last = position
	t.angle = t.angleTo(position)
}

// End stops tracking and clears the smoothing state.
func (t *Tracker) End() {
	t.active = false
	t.history = t.history[:0]
	t.displacement = Vec{}
}

// ResetDisplacement zeroes the smoothing history and the current
// displacement without ending the gesture. Callers use this to suppress the
// small pre-lock movement the instant an axis lock resolves, so the value
// does not visibly jump.
func (t *Tracker) ResetDisplacement() {
	t.history = t.history[:0]
	t.displacement = Vec{}
}

// Displacement returns the current smoothed displacement.
func (t *Tracker) Displacement() Vec {
	return t.displacement
}

// Angle returns the signed angle in radians, range (-pi, pi], of the vector
// from the center to the most recent pointer position.
func (t *Tracker) Angle() float64 {
	return t.angle
}

func (t *Tracker) angleTo(p Point) float64 {
	return math.Atan2(p.Y-t.center.Y, p.X-t.center.X)
}

// weightedAverage combines samples with linear weights 1..n, oldest first.
// An empty buffer averages to zero; a single sample passes through as-is.
func weightedAverage(samples []Vec) Vec {
	var sum Vec
	total := 0.0

	for i, s := range samples {
		w := float64(i + 1)
		sum.X += s.X * w
		sum.Y += s.Y * w
		total += w
	}

	if total == 0 {
		return Vec{}
	}

	return Vec{X: sum.X / total, Y: sum.Y / total}
}
