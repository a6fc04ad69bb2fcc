// Package knob provides a mouse-driven rotary knob component styled after
// hardware mixing-console knobs. A circular base ring, a progress arc and a
// pointer are drawn on a braille canvas; dragging (or rotating, depending on
// the control mode) moves a bounded scalar value.
package knob

import (
	"fmt"
	"math"
	"strings"
)

// Mode selects how pointer motion maps to value changes.
type Mode int

const (
	// Horizontal: dragging right increases the value.
	Horizontal Mode = iota
	// Vertical: dragging up increases the value.
	Vertical
	// CoarseVerticalFineHorizontal: the first decisive drag direction
	// locks the axis for the rest of the gesture; vertical drags move the
	// value at full speed, horizontal drags at the fine sensitivity.
	CoarseVerticalFineHorizontal
	// FineVerticalCoarseHorizontal: as above with the axes swapped.
	FineVerticalCoarseHorizontal
	// HorizontalAndVertical: both axes contribute at full speed.
	HorizontalAndVertical
	// Rotary: the value follows the pointer's angle around the knob
	// center, like turning a physical knob.
	Rotary
)

var modeNames = map[Mode]string{
	Horizontal:                   "horizontal",
	Vertical:                     "vertical",
	CoarseVerticalFineHorizontal: "coarse-vertical",
	FineVerticalCoarseHorizontal: "coarse-horizontal",
	HorizontalAndVertical:        "both",
	Rotary:                       "rotary",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode resolves a mode name as used on the command line.
func ParseMode(name string) (Mode, error) {
	for m, n := range modeNames {
		if n == strings.ToLower(name) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown control mode %q", name)
}

// Default angular span: the classic console-knob arc from bottom-left over
// the top to bottom-right. Screen coordinates, y down, angles grow
// clockwise, so the span runs 135 deg through 270 deg (up) to 405 deg.
const (
	DefaultStartAngle = 3 * math.Pi / 4
	DefaultEndAngle   = 9 * math.Pi / 4
)

// Config holds the value range, angular span and interaction settings of a
// knob. All fields may be changed between gestures via Model.SetConfig.
//
// Min < Max, FineSensitivity in (0, 1] and DirectionSensitivity > 0 are
// preconditions; the component does not validate them and behavior under a
// violated precondition is undefined.
type Config struct {
	// Min and Max bound the value.
	Min, Max float64
	// StartAngle and EndAngle define the ring span in radians, swept
	// clockwise. EndAngle may exceed 2 pi to express spans that wrap
	// through the positive x axis.
	StartAngle, EndAngle float64
	// Mode selects the gesture-to-value policy.
	Mode Mode
	// FineSensitivity multiplies displacement on the fine axis of the
	// coarse/fine modes.
	FineSensitivity float64
	// DirectionSensitivity scales the axis-lock detection thresholds.
	// Higher values demand a more decisive initial direction.
	DirectionSensitivity float64
	// ContinuousEvents emits a ChangedMsg on every update instead of only
	// when the gesture ends.
	ContinuousEvents bool
}

// DefaultConfig returns a unit-range knob over the default console span
// with both drag axes active and continuous events on.
func DefaultConfig() Config {
	return Config{
		Min:                  0,
		Max:                  1,
		StartAngle:           DefaultStartAngle,
		EndAngle:             DefaultEndAngle,
		Mode:                 HorizontalAndVertical,
		FineSensitivity:      0.25,
		DirectionSensitivity: 1.0,
		ContinuousEvents:     true,
	}
}

func (c Config) span() float64 {
	return c.Max - c.Min
}

func (c Config) clamp(v float64) float64 {
	if v < c.Min {
		return c.Min
	}
	if v > c.Max {
		return c.Max
	}
	return v
}

// ValueForAngle maps an angle on the ring span to a value. The mapping is
// linear and unclamped; it is the exact inverse of AngleForValue.
func (c Config) ValueForAngle(a float64) float64 {
	return (a-c.StartAngle)/(c.EndAngle-c.StartAngle)*c.span() + c.Min
}

// AngleForValue maps a value to its angle on the ring span. Linear,
// unclamped, exact inverse of ValueForAngle.
func (c Config) AngleForValue(v float64) float64 {
	return (v-c.Min)/c.span()*(c.EndAngle-c.StartAngle) + c.StartAngle
}

// unwrapAngle maps a raw touch angle in (-pi, pi] onto the continuous span
// [StartAngle, EndAngle] and clamps it to the span. The cut is placed at
// the midpoint of the excluded arc, diametrically opposite the center of
// the active arc, so the value never jumps at the span boundary.
func (c Config) unwrapAngle(a float64) float64 {
	mid := c.EndAngle + (2*math.Pi+c.StartAngle-c.EndAngle)/2

	if a > mid {
		a -= 2 * math.Pi
	} else if a < mid-2*math.Pi {
		a += 2 * math.Pi
	}

	if a < c.StartAngle {
		return c.StartAngle
	}
	if a > c.EndAngle {
		return c.EndAngle
	}
	return a
}
