// Package uictl defines the small control-surface interfaces widgets are
// glued to, so a knob on screen and the thing it drives stay decoupled.
package uictl

import "golang.org/x/exp/constraints"

type Number interface {
	constraints.Integer | constraints.Float
}

// Dial is a control whose current value can be read.
type Dial[N Number] interface {
	Read() N
}

// Control is a Dial that can also be written.
type Control[N Number] interface {
	Dial[N]
	Set(N)
}

// BoundedDial is a Dial with a fixed value range.
type BoundedDial[N Number] interface {
	Dial[N]
	Bounds() (min, max N)
}

// BoundedControl is a Control with a fixed value range.
type BoundedControl[N Number] interface {
	Control[N]
	Bounds() (min, max N)
}

// Bounded is a plain in-memory BoundedControl. Writes clamp to the range.
type Bounded[N Number] struct {
	value    N
	min, max N
}

// NewBounded creates a Bounded control holding value within [min, max].
func NewBounded[N Number](value, min, max N) *Bounded[N] {
	b := &Bounded[N]{min: min, max: max}
	b.Set(value)
	return b
}

func (b *Bounded[N]) Read() N { return b.value }

func (b *Bounded[N]) Set(v N) {
	if v < b.min {
		v = b.min
	}
	if v > b.max {
		v = b.max
	}
	b.value = v
}

func (b *Bounded[N]) Bounds() (N, N) { return b.min, b.max }
