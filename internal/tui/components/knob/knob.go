package knob

import (
	"fmt"
	"strings"
	"sync"

	"github.com/alkime/dials/pkg/gesture"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Knobs identify themselves in outgoing messages so several can share one
// program. Same scheme as the bubbles components.
var (
	lastID int
	idMtx  sync.Mutex
)

func nextID() int {
	idMtx.Lock()
	defer idMtx.Unlock()
	lastID++
	return lastID
}

// ChangedMsg reports a new knob value. With ContinuousEvents it is sent on
// every update during a drag, otherwise once when the gesture ends.
type ChangedMsg struct {
	ID    int
	Value float64
}

// EditStartMsg is sent when a drag gesture begins.
type EditStartMsg struct {
	ID int
}

// EditEndMsg is sent when a drag gesture ends or is cancelled.
type EditEndMsg struct {
	ID    int
	Value float64
}

// DoubleTappedMsg is sent when the knob is double-tapped. The knob itself
// does not react; the host binds whatever action it wants (typically a
// reset to a default value).
type DoubleTappedMsg struct {
	ID int
}

// Model is the knob widget. It is a regular value-type Bubble Tea
// component; the container positions it with SetPosition so mouse events
// can be hit-tested against the dial.
type Model struct {
	id      int
	cfg     Config
	styles  Styles
	markers []Marker
	label   string
	format  func(float64) string

	// Dial drawing area in cells, and its top-left position on screen.
	width, height int
	posX, posY    int

	ctl      controller
	tracker  *gesture.Tracker
	filter   *gesture.TapFilter
	dragging bool
}

// New creates a knob with the given label and configuration, sized
// 17x9 cells and showing the value with two decimals.
func New(label string, cfg Config) Model {
	m := Model{
		id:      nextID(),
		cfg:     cfg,
		styles:  DefaultStyles(),
		label:   label,
		format:  func(v float64) string { return fmt.Sprintf("%.2f", v) },
		width:   17,
		height:  9,
		tracker: gesture.New(gesture.Point{}),
		filter:  gesture.NewTapFilter(),
	}
	m.ctl.value = cfg.Min
	m.syncTracker()
	return m
}

// ID returns the identifier used in this knob's messages.
func (m Model) ID() int {
	return m.id
}

// Value returns the current value.
func (m Model) Value() float64 {
	return m.ctl.value
}

// SetValue writes a clamped value. Programmatic writes re-render on the
// next View but do not emit ChangedMsg; only gestures notify.
func (m Model) SetValue(v float64) Model {
	m.ctl.value = m.cfg.clamp(v)
	return m
}

// Label returns the knob's label.
func (m Model) Label() string {
	return m.label
}

// Config returns the active configuration.
func (m Model) Config() Config {
	return m.cfg
}

// SetConfig replaces the configuration and re-clamps the value to the new
// range. Safe to call between gestures at any time.
func (m Model) SetConfig(cfg Config) Model {
	m.cfg = cfg
	m.ctl.value = cfg.clamp(m.ctl.value)
	return m
}

// SetMarkers replaces the whole marker sequence. Positions are derived
// from index and count on the next render.
func (m Model) SetMarkers(markers []Marker) Model {
	m.markers = markers
	return m
}

// SetStyles replaces the visual styles.
func (m Model) SetStyles(s Styles) Model {
	m.styles = s
	return m
}

// SetFormat replaces the value formatter shown under the dial.
func (m Model) SetFormat(f func(float64) string) Model {
	m.format = f
	return m
}

// SetSize sets the dial drawing area in cells. Minimum 5x3.
func (m Model) SetSize(width, height int) Model {
	if width < 5 {
		width = 5
	}
	if height < 3 {
		height = 3
	}
	m.width = width
	m.height = height
	m.syncTracker()
	return m
}

// SetPosition tells the knob where its top-left cell sits on screen, for
// mouse hit testing.
func (m Model) SetPosition(x, y int) Model {
	m.posX = x
	m.posY = y
	return m
}

// Width returns the rendered width in cells.
func (m Model) Width() int {
	return m.width
}

// Height returns the rendered height in cells, including the label and
// value lines.
func (m Model) Height() int {
	h := m.height + 1 // value readout
	if m.label != "" {
		h++
	}
	return h
}

// Adjust nudges the value by frac of the range, clamped, and emits a
// ChangedMsg if the value moved. Used for keyboard control.
func (m Model) Adjust(frac float64) (Model, tea.Cmd) {
	if !m.ctl.setValue(m.cfg, m.ctl.value+frac*m.cfg.span()) {
		return m, nil
	}
	return m, changedCmd(m.id, m.ctl.value)
}

// Cancel aborts any in-flight gesture, treating it like a gesture end.
func (m Model) Cancel() (Model, tea.Cmd) {
	return m.applyFiltered(m.filter.Cancel())
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles mouse events. A left press inside the dial engages the
// knob; subsequent drag motion and the release are consumed wherever the
// pointer goes. All pointer events pass through the tap filter, so panning
// starts only once double-tap recognition has failed.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok {
		return m, nil
	}
	ev := tea.MouseEvent(mouse)

	switch {
	case ev.Action == tea.MouseActionPress && ev.Button == tea.MouseButtonLeft:
		p := m.localPoint(ev.X, ev.Y)
		if !m.hit(p) {
			return m, nil
		}
		return m.applyFiltered(m.filter.Press(p))

	case ev.Action == tea.MouseActionMotion:
		if !m.filter.Engaged() {
			return m, nil
		}
		return m.applyFiltered(m.filter.Move(m.localPoint(ev.X, ev.Y)))

	case ev.Action == tea.MouseActionRelease:
		if !m.filter.Engaged() {
			return m, nil
		}
		return m.applyFiltered(m.filter.Release(m.localPoint(ev.X, ev.Y)))
	}

	return m, nil
}

// applyFiltered runs filtered pointer events through the tracker and the
// controller, collecting the notification commands they produce.
func (m Model) applyFiltered(events []gesture.Event) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	for _, ev := range events {
		switch ev.Action {
		case gesture.ActionBegin:
			m.tracker.Begin(ev.Position)
			m.ctl.beginGesture()
			m.dragging = true
			cmds = append(cmds, editStartCmd(m.id))

		case gesture.ActionMove:
			if !m.dragging {
				break
			}
			m.tracker.Move(ev.Position)
			if m.ctl.update(m.cfg, m.tracker) && m.cfg.ContinuousEvents {
				cmds = append(cmds, changedCmd(m.id, m.ctl.value))
			}

		case gesture.ActionEnd:
			if !m.dragging {
				break
			}
			m.tracker.End()
			m.ctl.endGesture()
			m.dragging = false
			if !m.cfg.ContinuousEvents {
				cmds = append(cmds, changedCmd(m.id, m.ctl.value))
			}
			cmds = append(cmds, editEndCmd(m.id, m.ctl.value))

		case gesture.ActionDoubleTap:
			cmds = append(cmds, doubleTapCmd(m.id))
		}
	}

	if len(cmds) == 0 {
		return m, nil
	}
	return m, tea.Batch(cmds...)
}

// View renders the dial, the label and the value readout.
func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(m.renderDial())

	if m.label != "" {
		sb.WriteString("\n")
		sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center,
			m.styles.Label.Render(m.label)))
	}

	sb.WriteString("\n")
	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center,
		m.styles.Value.Render(m.format(m.ctl.value))))

	return sb.String()
}

// localPoint converts terminal cell coordinates to dial-local braille-dot
// coordinates, addressing the center of the cell.
func (m Model) localPoint(x, y int) gesture.Point {
	return gesture.Point{
		X: float64(x-m.posX)*2 + 1,
		Y: float64(y-m.posY)*4 + 2,
	}
}

// hit reports whether a local point lies inside the dial's circular hit
// area (the ring plus the marker margin).
func (m Model) hit(p gesture.Point) bool {
	cx := float64(m.width * 2 / 2)
	cy := float64(m.height * 4 / 2)
	r := m.ringRadius() + markerMargin
	dx := p.X - cx
	dy := p.Y - cy
	return dx*dx+dy*dy <= r*r
}

func (m *Model) syncTracker() {
	m.tracker.SetCenter(gesture.Point{
		X: float64(m.width * 2 / 2),
		Y: float64(m.height * 4 / 2),
	})
}

func changedCmd(id int, value float64) tea.Cmd {
	return func() tea.Msg { return ChangedMsg{ID: id, Value: value} }
}

func editStartCmd(id int) tea.Cmd {
	return func() tea.Msg { return EditStartMsg{ID: id} }
}

func editEndCmd(id int, value float64) tea.Cmd {
	return func() tea.Msg { return EditEndMsg{ID: id, Value: value} }
}

func doubleTapCmd(id int) tea.Cmd {
	return func() tea.Msg { return DoubleTappedMsg{ID: id} }
}
