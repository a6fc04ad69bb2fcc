// Package meter provides a one-line horizontal level bar showing where a
// bounded control sits within its range.
package meter

import (
	"github.com/alkime/dials/pkg/uictl"
	"github.com/charmbracelet/bubbles/progress"
)

// Model renders the position of a dial within its bounds as a progress bar.
// It has no behavior of its own; the dial is read fresh on every View.
type Model struct {
	dial uictl.BoundedDial[float64]
	bar  progress.Model
}

// New creates a meter of the given width in cells. A nil dial renders as an
// empty track.
func New(dial uictl.BoundedDial[float64], width int) Model {
	if width < 1 {
		width = 1
	}

	bar := progress.New(
		progress.WithSolidFill("205"),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)

	return Model{dial: dial, bar: bar}
}

// Width returns the bar width in cells.
func (m Model) Width() int {
	return m.bar.Width
}

// View renders the bar at the dial's current position.
func (m Model) View() string {
	return m.bar.ViewAs(m.fraction())
}

// fraction maps the dial's value to its position in the range, clamped to
// [0, 1]. Out-of-range values come from dials whose backing store moved
// outside the advertised bounds.
func (m Model) fraction() float64 {
	if m.dial == nil {
		return 0
	}

	lo, hi := m.dial.Bounds()
	if hi <= lo {
		return 0
	}

	frac := (m.dial.Read() - lo) / (hi - lo)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}

	return frac
}
