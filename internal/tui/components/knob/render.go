package knob

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	drawille "github.com/exrook/drawille-go"
)

// Styles collects the lipgloss styles of the knob's visual elements.
type Styles struct {
	Ring     lipgloss.Style
	Progress lipgloss.Style
	Pointer  lipgloss.Style
	Marker   lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
}

// DefaultStyles returns the stock console-knob look.
func DefaultStyles() Styles {
	return Styles{
		Ring:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Progress: lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
		Pointer:  lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
		Marker:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Label:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
		Value:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

const (
	ringThickness = 2
	// markerMargin keeps dots of headroom between the ring and the edge of
	// the drawing area so markers at a small positive offset stay inside.
	markerMargin = 4

	// blankBraille is what drawille renders for an unset cell.
	blankBraille = '⠀'
)

// ringRadius derives the ring radius in dots from the drawing area.
func (m Model) ringRadius() float64 {
	w := float64(m.width * 2)
	h := float64(m.height * 4)
	return math.Min(w, h)/2 - markerMargin
}

// renderDial rasterizes the base ring, the progress arc and the pointer on
// separate braille canvases, composites them topmost-wins into styled cell
// rows and overlays the marker glyphs. Pure function of the model; calling
// it twice with unchanged state yields identical output.
func (m Model) renderDial() string {
	w := m.width * 2
	h := m.height * 4
	cx := float64(w) / 2
	cy := float64(h) / 2
	radius := m.ringRadius()

	valueAngle := m.cfg.AngleForValue(m.cfg.clamp(m.ctl.value))

	base := drawille.NewCanvas()
	drawArc(&base, cx, cy, radius, ringThickness, m.cfg.StartAngle, m.cfg.EndAngle)

	progress := drawille.NewCanvas()
	drawArc(&progress, cx, cy, radius, ringThickness, m.cfg.StartAngle, valueAngle)

	pointer := drawille.NewCanvas()
	drawRadial(&pointer, cx, cy, radius*0.25, radius*0.8, valueAngle)

	// Topmost layer first.
	layers := []layer{
		{pointer.Rows(0, 0, w-1, h-1), m.styles.Pointer},
		{progress.Rows(0, 0, w-1, h-1), m.styles.Progress},
		{base.Rows(0, 0, w-1, h-1), m.styles.Ring},
	}

	overlay := markerGrid(placeMarkers(m.markers, m.cfg, cx, cy, radius), m.width, m.height)

	var sb strings.Builder
	for row := 0; row < m.height; row++ {
		if row > 0 {
			sb.WriteString("\n")
		}
		m.renderRow(&sb, row, layers, overlay)
	}

	return sb.String()
}

// layer is one rasterized element of the dial with its style.
type layer struct {
	rows  []string
	style lipgloss.Style
}

// renderRow composites one cell row, grouping runs of equally-styled cells
// so each run is rendered once.
func (m Model) renderRow(sb *strings.Builder, row int, layers []layer, overlay map[[2]int]rune) {
	type cell struct {
		r     rune
		style int // index into layers; -1 marker, -2 empty
	}

	cells := make([]cell, m.width)
	lines := make([][]rune, len(layers))
	for i, l := range layers {
		if row < len(l.rows) {
			lines[i] = []rune(l.rows[row])
		}
	}

	for col := 0; col < m.width; col++ {
		cells[col] = cell{r: ' ', style: -2}

		for i := range layers {
			if col < len(lines[i]) && lines[i][col] != blankBraille {
				cells[col] = cell{r: lines[i][col], style: i}
				break
			}
		}

		if g, ok := overlay[[2]int{col, row}]; ok {
			cells[col] = cell{r: g, style: -1}
		}
	}

	for col := 0; col < m.width; {
		run := col
		var runSB strings.Builder
		for run < m.width && cells[run].style == cells[col].style {
			runSB.WriteRune(cells[run].r)
			run++
		}

		switch cells[col].style {
		case -2:
			sb.WriteString(runSB.String())
		case -1:
			sb.WriteString(m.styles.Marker.Render(runSB.String()))
		default:
			sb.WriteString(layers[cells[col].style].style.Render(runSB.String()))
		}
		col = run
	}
}

// markerGrid spreads marker glyph runes into a (col,row) -> rune overlay,
// letting multi-rune glyphs spill into the following columns.
func markerGrid(placed []placedMarker, width, height int) map[[2]int]rune {
	if len(placed) == 0 {
		return nil
	}

	overlay := make(map[[2]int]rune)
	for _, p := range placed {
		col := p.col
		for _, r := range p.glyph {
			if col >= 0 && col < width && p.row >= 0 && p.row < height {
				overlay[[2]int{col, p.row}] = r
			}
			col++
		}
	}
	return overlay
}

// drawArc draws a thick arc sweeping clockwise from start to end using the
// midpoint circle algorithm, one circle per dot of thickness working inward
// from radius.
func drawArc(c *drawille.Canvas, cx, cy, radius float64, thickness int, start, end float64) {
	for t := 0; t < thickness; t++ {
		r := int(radius) - t
		if r <= 0 {
			continue
		}
		midpointArc(c, int(cx), int(cy), r, start, end)
	}
}

// midpointArc rasterizes the circle of radius r around (cx, cy) with
// integer midpoint stepping, keeping only the points whose angle falls
// inside the sweep.
func midpointArc(c *drawille.Canvas, cx, cy, r int, start, end float64) {
	x, y := r, 0
	d := 1 - r

	for x >= y {
		points := [8][2]int{
			{cx + x, cy - y},
			{cx + y, cy - x},
			{cx - y, cy - x},
			{cx - x, cy - y},
			{cx - x, cy + y},
			{cx - y, cy + x},
			{cx + y, cy + x},
			{cx + x, cy + y},
		}
		for _, p := range points {
			if p[0] >= 0 && p[1] >= 0 && inSweep(cx, cy, p[0], p[1], start, end) {
				c.Set(p[0], p[1])
			}
		}

		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

// inSweep reports whether the point's angle from the center lies within the
// clockwise sweep [start, end]. The sweep may extend past 2 pi.
func inSweep(cx, cy, px, py int, start, end float64) bool {
	if end < start {
		return false
	}

	a := math.Atan2(float64(py-cy), float64(px-cx))
	for a < start {
		a += 2 * math.Pi
	}
	return a <= end
}

// drawRadial draws a dotted radial segment from radius r0 to r1 at theta.
func drawRadial(c *drawille.Canvas, cx, cy, r0, r1, theta float64) {
	sin, cos := math.Sincos(theta)
	for r := r0; r <= r1; r += 0.5 {
		x := int(math.Round(cx + cos*r))
		y := int(math.Round(cy + sin*r))
		if x >= 0 && y >= 0 {
			c.Set(x, y)
		}
	}
}
