package knob

import (
	"math"
	"testing"

	"github.com/alkime/dials/pkg/gesture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapping_RoundTrip(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Min, cfg.Max = -12, 36

	for v := cfg.Min; v <= cfg.Max; v += 0.5 {
		assert.InDelta(t, v, cfg.ValueForAngle(cfg.AngleForValue(v)), 1e-9)
	}
}

func TestMapping_Endpoints(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	assert.InDelta(t, cfg.StartAngle, cfg.AngleForValue(cfg.Min), 1e-12)
	assert.InDelta(t, cfg.EndAngle, cfg.AngleForValue(cfg.Max), 1e-12)
	assert.InDelta(t, cfg.Min, cfg.ValueForAngle(cfg.StartAngle), 1e-12)
	assert.InDelta(t, cfg.Max, cfg.ValueForAngle(cfg.EndAngle), 1e-12)
}

func TestUnwrapAngle_DefaultSpan(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig() // 135 deg .. 405 deg

	// Left of center (180 deg) lies inside the span untouched.
	assert.InDelta(t, math.Pi, cfg.unwrapAngle(math.Pi), 1e-12)

	// Straight up is -pi/2 raw and 270 deg on the span.
	assert.InDelta(t, 3*math.Pi/2, cfg.unwrapAngle(-math.Pi/2), 1e-12)

	// Right of center is 360 deg on the span.
	assert.InDelta(t, 2*math.Pi, cfg.unwrapAngle(0), 1e-12)

	// Angles inside the excluded arc clamp to the nearest span end: just
	// past straight down on the left clamps to the start, on the right to
	// the end.
	assert.InDelta(t, cfg.StartAngle, cfg.unwrapAngle(math.Pi/2+0.1), 1e-12)
	assert.InDelta(t, cfg.EndAngle, cfg.unwrapAngle(math.Pi/2-0.1), 1e-12)
}

func TestRotary_MonotonicAndBounded(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Mode = Rotary

	prev := math.Inf(-1)
	for sweep := 0.0; sweep <= 1.0; sweep += 0.01 {
		theta := cfg.StartAngle + sweep*(cfg.EndAngle-cfg.StartAngle)

		// Normalize to the raw atan2 range (-pi, pi] the tracker produces.
		raw := math.Mod(theta+math.Pi, 2*math.Pi) - math.Pi

		v := cfg.ValueForAngle(cfg.unwrapAngle(raw))
		assert.GreaterOrEqual(t, v, cfg.Min-1e-9)
		assert.LessOrEqual(t, v, cfg.Max+1e-9)
		assert.GreaterOrEqual(t, v, prev-1e-9, "value must not decrease along the sweep")
		prev = v
	}
}

func TestRotary_ControllerFollowsAngle(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Mode = Rotary

	tr := gesture.New(gesture.Point{X: 0, Y: 0})
	var ctl controller
	ctl.beginGesture()

	// Pointer straight up from the center: midpoint of the span.
	tr.Begin(gesture.Point{X: 0, Y: -10})
	require.True(t, ctl.update(cfg, tr))
	assert.InDelta(t, 0.5, ctl.value, 1e-9)

	// Pointer to the left: one sixth of the span.
	tr.Move(gesture.Point{X: -10, Y: 0})
	require.True(t, ctl.update(cfg, tr))
	assert.InDelta(t, 1.0/6.0, ctl.value, 1e-9)
}

func TestHorizontal_ExactIncrement(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Mode = Horizontal
	cfg.StartAngle, cfg.EndAngle = -math.Pi, 0

	tr := gesture.New(gesture.Point{})
	var ctl controller
	ctl.value = 0.3
	ctl.beginGesture()

	tr.Begin(gesture.Point{X: 0, Y: 0})
	tr.Move(gesture.Point{X: 20, Y: 0}) // 20 dots * 0.005 = 0.1

	require.True(t, ctl.update(cfg, tr))
	assert.InDelta(t, 0.4, ctl.value, 1e-12)
}

func TestHorizontal_ClampsAtMax(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Mode = Horizontal

	tr := gesture.New(gesture.Point{})
	var ctl controller
	ctl.value = 0.95
	ctl.beginGesture()

	tr.Begin(gesture.Point{X: 0, Y: 0})
	tr.Move(gesture.Point{X: 40, Y: 0}) // raw 0.2: new value 1.15 clamps to 1

	require.True(t, ctl.update(cfg, tr))
	assert.Equal(t, 1.0, ctl.value)

	// Further movement at the stop changes nothing.
	tr.Move(gesture.Point{X: 80, Y: 0})
	assert.False(t, ctl.update(cfg, tr))
	assert.Equal(t, 1.0, ctl.value)
}

func TestVertical_UpIncreases(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Mode = Vertical

	tr := gesture.New(gesture.Point{})
	var ctl controller
	ctl.value = 0.5
	ctl.beginGesture()

	tr.Begin(gesture.Point{X: 0, Y: 100})
	tr.Move(gesture.Point{X: 0, Y: 80}) // up 20 dots

	require.True(t, ctl.update(cfg, tr))
	assert.InDelta(t, 0.6, ctl.value, 1e-12)
}

func TestHorizontalAndVertical_BothAxesApply(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Mode = HorizontalAndVertical

	tr := gesture.New(gesture.Point{})
	var ctl controller
	ctl.value = 0.5
	ctl.beginGesture()

	// Right 20 and up 20: both contribute +0.1.
	tr.Begin(gesture.Point{X: 0, Y: 100})
	tr.Move(gesture.Point{X: 20, Y: 80})

	require.True(t, ctl.update(cfg, tr))
	assert.InDelta(t, 0.7, ctl.value, 1e-12)
}

func TestAxisLock_NoValueChangeWhileUnlocked(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Mode = CoarseVerticalFineHorizontal

	tr := gesture.New(gesture.Point{})
	var ctl controller
	ctl.value = 0.5
	ctl.beginGesture()

	// A perfectly diagonal drag never resolves an axis.
	tr.Begin(gesture.Point{X: 0, Y: 0})
	for i := 1; i <= 5; i++ {
		tr.Move(gesture.Point{X: float64(i * 10), Y: float64(i * 10)})
		assert.False(t, ctl.update(cfg, tr))
	}

	assert.Equal(t, axisNone, ctl.locked)
	assert.Equal(t, 0.5, ctl.value)
}

func TestAxisLock_HorizontalLocksAndHolds(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Mode = CoarseVerticalFineHorizontal

	tr := gesture.New(gesture.Point{})
	var ctl controller
	ctl.value = 0.5
	ctl.beginGesture()

	// One decisive horizontal move locks the horizontal axis.
	tr.Begin(gesture.Point{X: 0, Y: 0})
	tr.Move(gesture.Point{X: 10, Y: 0})
	ctl.update(cfg, tr)
	require.Equal(t, axisHorizontal, ctl.locked)

	// The lock holds even when the motion turns fully vertical, and value
	// changes keep flowing through the fine horizontal axis only.
	before := ctl.value
	tr.Move(gesture.Point{X: 10, Y: 40})
	ctl.update(cfg, tr)
	assert.Equal(t, axisHorizontal, ctl.locked)
	assert.InDelta(t, before+tr.Displacement().X*cfg.FineSensitivity*cfg.span(), ctl.value, 1e-12)
}

func TestAxisLock_VerticalIsCoarse(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Mode = CoarseVerticalFineHorizontal

	tr := gesture.New(gesture.Point{})
	var ctl controller
	ctl.value = 0.5
	ctl.beginGesture()

	tr.Begin(gesture.Point{X: 0, Y: 100})
	tr.Move(gesture.Point{X: 0, Y: 90}) // up 10 dots, decisive vertical
	ctl.update(cfg, tr)
	require.Equal(t, axisVertical, ctl.locked)

	// Vertical is the coarse axis in this mode: full-rate updates.
	before := ctl.value
	tr.Move(gesture.Point{X: 0, Y: 70})
	ctl.update(cfg, tr)
	assert.InDelta(t, before-tr.Displacement().Y*cfg.span(), ctl.value, 1e-12)
}

func TestAxisLock_FineVerticalCoarseHorizontal(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Mode = FineVerticalCoarseHorizontal

	tr := gesture.New(gesture.Point{})
	var ctl controller
	ctl.value = 0.5
	ctl.beginGesture()

	tr.Begin(gesture.Point{X: 0, Y: 100})
	tr.Move(gesture.Point{X: 0, Y: 90})
	ctl.update(cfg, tr)
	require.Equal(t, axisVertical, ctl.locked)

	before := ctl.value
	tr.Move(gesture.Point{X: 0, Y: 70})
	ctl.update(cfg, tr)
	assert.InDelta(t, before-tr.Displacement().Y*cfg.FineSensitivity*cfg.span(), ctl.value, 1e-12)
}

func TestAxisLock_TinyPreLockMovementIsDiscarded(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Mode = CoarseVerticalFineHorizontal

	tr := gesture.New(gesture.Point{})
	var ctl controller
	ctl.value = 0.5
	ctl.beginGesture()

	// Creep past the detection threshold in small steps. The moment the
	// lock lands the accumulated movement is still under twice the
	// threshold, so the tracker history is discarded and no jump occurs.
	tr.Begin(gesture.Point{X: 0, Y: 0})
	tr.Move(gesture.Point{X: 1.2, Y: 0})
	assert.False(t, ctl.update(cfg, tr))
	require.Equal(t, axisNone, ctl.locked)

	tr.Move(gesture.Point{X: 2.4, Y: 0})
	changed := ctl.update(cfg, tr)
	require.Equal(t, axisHorizontal, ctl.locked)
	assert.False(t, changed, "pre-lock drift must not move the value")
	assert.Zero(t, tr.Displacement())
	assert.Equal(t, 0.5, ctl.value)
}

func TestAxisLock_ResetsOnNewGesture(t *testing.T) {
	t.Parallel()

	var ctl controller
	ctl.locked = axisVertical
	ctl.accumulated = gesture.Vec{X: 1, Y: 1}

	ctl.beginGesture()
	assert.Equal(t, axisNone, ctl.locked)
	assert.Zero(t, ctl.accumulated)
}

func TestDirectionSensitivity_ScalesThresholds(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Mode = CoarseVerticalFineHorizontal
	cfg.DirectionSensitivity = 4 // threshold 0.04: a 6 dot move no longer locks

	tr := gesture.New(gesture.Point{})
	var ctl controller
	ctl.beginGesture()

	tr.Begin(gesture.Point{X: 0, Y: 0})
	tr.Move(gesture.Point{X: 6, Y: 0})
	ctl.update(cfg, tr)
	assert.Equal(t, axisNone, ctl.locked)

	tr.Move(gesture.Point{X: 26, Y: 0})
	ctl.update(cfg, tr)
	assert.Equal(t, axisHorizontal, ctl.locked)
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"horizontal", "vertical", "coarse-vertical", "coarse-horizontal", "both", "rotary"} {
		m, err := ParseMode(name)
		require.NoError(t, err)
		assert.Equal(t, name, m.String())
	}

	_, err := ParseMode("diagonal")
	assert.Error(t, err)
}
