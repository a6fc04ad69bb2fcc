package knob

import "math"

// Marker is a decorative glyph placed on the ring circumference. Markers
// carry no angle of their own: position is derived entirely from a marker's
// index within the sequence and the ring span.
type Marker struct {
	// Glyph is the text drawn at the marker position. Empty picks a tick
	// rune oriented to the marker's angle.
	Glyph string
	// Offset is the radial distance in dots beyond the ring radius.
	Offset float64
}

// Ticks builds n plain tick markers at the given radial offset.
func Ticks(n int, offset float64) []Marker {
	markers := make([]Marker, n)
	for i := range markers {
		markers[i] = Marker{Offset: offset}
	}
	return markers
}

// placedMarker is a marker resolved to a terminal cell.
type placedMarker struct {
	col, row int
	glyph    string
}

// markerAngle interpolates marker i of n across the ring span, working in
// degrees and wrapping through 360 when the span crosses the positive x
// axis. A single marker sits at the start angle; callers guard n >= 1.
func markerAngle(cfg Config, i, n int) float64 {
	startDeg := cfg.StartAngle * 180 / math.Pi
	endDeg := cfg.EndAngle * 180 / math.Pi
	if endDeg <= startDeg {
		endDeg += 360
	}

	pct := 0.0
	if n > 1 {
		pct = float64(i) / float64(n-1)
	}

	return (startDeg + pct*(endDeg-startDeg)) * math.Pi / 180
}

// placeMarkers resolves the marker sequence to cells around a ring of the
// given radius centered at (cx, cy), all in dot coordinates.
func placeMarkers(markers []Marker, cfg Config, cx, cy, radius float64) []placedMarker {
	if len(markers) == 0 {
		return nil
	}

	placed := make([]placedMarker, 0, len(markers))
	for i, mk := range markers {
		theta := markerAngle(cfg, i, len(markers))

		r := radius + mk.Offset
		x := cx + math.Cos(theta)*r
		y := cy + math.Sin(theta)*r

		glyph := mk.Glyph
		if glyph == "" {
			glyph = tickGlyph(theta)
		}

		placed = append(placed, placedMarker{
			col:   int(math.Round(x)) / 2,
			row:   int(math.Round(y)) / 4,
			glyph: glyph,
		})
	}

	return placed
}

// tickGlyph picks a line rune whose slope matches a radial tick at theta.
// Screen coordinates, y down.
func tickGlyph(theta float64) string {
	deg := math.Mod(theta*180/math.Pi, 180)
	if deg < 0 {
		deg += 180
	}

	switch {
	case deg < 22.5 || deg >= 157.5:
		return "─"
	case deg < 67.5:
		return "╲"
	case deg < 112.5:
		return "│"
	default:
		return "╱"
	}
}
