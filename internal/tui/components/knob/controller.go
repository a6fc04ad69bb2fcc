package knob

import (
	"math"

	"github.com/alkime/dials/pkg/gesture"
)

// Axis-lock detection constants, scaled by Config.DirectionSensitivity.
// A lock is considered only once the accumulated drag exceeds the base
// threshold on either axis, and resolves only when one axis dominates the
// other by the base ratio.
const (
	lockBaseThreshold = 0.01
	lockBaseRatio     = 2.0
)

type lockedAxis int

const (
	axisNone lockedAxis = iota
	axisHorizontal
	axisVertical
)

// controller is the per-gesture state machine behind a knob: it resolves
// the axis lock for the coarse/fine modes and applies the active mode's
// policy to turn tracker output into a new clamped value.
type controller struct {
	value       float64
	locked      lockedAxis
	accumulated gesture.Vec
}

// beginGesture resets the per-gesture state. The lock is decided at most
// once per gesture and holds until the next begin.
func (c *controller) beginGesture() {
	c.locked = axisNone
	c.accumulated = gesture.Vec{}
}

// endGesture mirrors beginGesture on the way out.
func (c *controller) endGesture() {
	c.locked = axisNone
}

// setValue writes a clamped value and reports whether it changed.
func (c *controller) setValue(cfg Config, v float64) bool {
	v = cfg.clamp(v)
	if v == c.value {
		return false
	}
	c.value = v
	return true
}

// update runs one tracker event through the two-step pipeline: axis-lock
// resolution, then the mode's value policy. Reports whether the value
// changed.
func (c *controller) update(cfg Config, tr *gesture.Tracker) bool {
	c.resolveAxisLock(cfg, tr)

	d := tr.Displacement()
	span := cfg.span()

	switch cfg.Mode {
	case Horizontal:
		return c.setValue(cfg, c.value+d.X*span)
	case Vertical:
		return c.setValue(cfg, c.value-d.Y*span)
	case HorizontalAndVertical:
		return c.setValue(cfg, c.value+d.X*span-d.Y*span)
	case CoarseVerticalFineHorizontal:
		switch c.locked {
		case axisHorizontal:
			return c.setValue(cfg, c.value+d.X*cfg.FineSensitivity*span)
		case axisVertical:
			return c.setValue(cfg, c.value-d.Y*span)
		}
		return false
	case FineVerticalCoarseHorizontal:
		switch c.locked {
		case axisHorizontal:
			return c.setValue(cfg, c.value+d.X*span)
		case axisVertical:
			return c.setValue(cfg, c.value-d.Y*cfg.FineSensitivity*span)
		}
		return false
	case Rotary:
		return c.setValue(cfg, cfg.ValueForAngle(cfg.unwrapAngle(tr.Angle())))
	}

	return false
}

// resolveAxisLock accumulates pre-lock movement and decides the drag axis
// for the coarse/fine modes. Once an axis dominates, the lock holds for the
// remainder of the gesture. If the decision lands while the accumulated
// movement is still tiny, the tracker's smoothing history is discarded so
// the pre-lock drift does not show up as a value jump.
func (c *controller) resolveAxisLock(cfg Config, tr *gesture.Tracker) {
	if cfg.Mode != CoarseVerticalFineHorizontal && cfg.Mode != FineVerticalCoarseHorizontal {
		return
	}
	if c.locked != axisNone {
		return
	}

	c.accumulated = c.accumulated.Add(tr.Displacement())

	threshold := lockBaseThreshold * cfg.DirectionSensitivity
	ratio := lockBaseRatio * cfg.DirectionSensitivity

	ax := math.Abs(c.accumulated.X)
	ay := math.Abs(c.accumulated.Y)

	if ax <= threshold && ay <= threshold {
		return
	}

	switch {
	case ax > ay*ratio:
		c.locked = axisHorizontal
	case ay > ax*ratio:
		c.locked = axisVertical
	default:
		// Ambiguous direction; wait for more movement.
		return
	}

	if ax < 2*threshold && ay < 2*threshold {
		tr.ResetDisplacement()
	}
}
