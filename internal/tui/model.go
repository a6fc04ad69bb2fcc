// Package tui implements the mixer demo: a row of channel-strip knobs
// driven by mouse drags and keyboard nudges, each bound to an external
// control.
package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/alkime/dials/internal/tui/components/knob"
	"github.com/alkime/dials/internal/tui/components/meter"
	"github.com/alkime/dials/internal/tui/style"
	"github.com/alkime/dials/pkg/collections"
	"github.com/alkime/dials/pkg/uictl"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Layout constants, in cells.
const (
	knobGap    = 3
	headerRows = 2 // title + blank line
	leftMargin = 1
)

// Channel describes one strip of the mixer: a configured knob bound to an
// external control that receives value changes.
type Channel struct {
	Name    string
	Config  knob.Config
	Markers []knob.Marker
	Control uictl.BoundedControl[float64]
	// Default is the value a reset (double tap or the reset key) returns
	// the channel to.
	Default float64
	Format  func(float64) string
}

// strip is a Channel at runtime.
type strip struct {
	knob    knob.Model
	meter   meter.Model
	control uictl.BoundedControl[float64]
	def     float64
}

// Model is the mixer container.
type Model struct {
	keymap  KeyMap
	strips  []strip
	byID    map[int]int // knob ID -> strip index
	focus   int
	editing int // knob ID currently in a gesture, 0 if none
	width   int
}

// New builds the mixer from the channel descriptions. Knobs start at the
// channel defaults.
func New(channels []Channel) Model {
	m := Model{
		keymap: DefaultKeyMap(),
		byID:   make(map[int]int, len(channels)),
	}

	for i, ch := range channels {
		k := knob.New(ch.Name, ch.Config).
			SetMarkers(ch.Markers).
			SetValue(ch.Default)
		if ch.Format != nil {
			k = k.SetFormat(ch.Format)
		}

		if ch.Control != nil {
			ch.Control.Set(ch.Default)
		}

		m.strips = append(m.strips, strip{
			knob:    k,
			meter:   meter.New(ch.Control, k.Width()-4),
			control: ch.Control,
			def:     ch.Default,
		})
		m.byID[k.ID()] = i
	}

	m.applyLayout()
	m.applyFocus()
	return m
}

// applyLayout positions every knob for mouse hit testing. Knobs sit in a
// single row under the header.
func (m *Model) applyLayout() {
	x := leftMargin
	for i := range m.strips {
		m.strips[i].knob = m.strips[i].knob.SetPosition(x, headerRows)
		x += m.strips[i].knob.Width() + knobGap
	}
}

// applyFocus highlights the focused knob by swapping in brighter styles.
func (m *Model) applyFocus() {
	for i := range m.strips {
		s := knob.DefaultStyles()
		if i == m.focus {
			s.Pointer = style.Key
			s.Label = style.Key
		}
		m.strips[i].knob = m.strips[i].knob.SetStyles(s)
	}
}

// Value returns the current value of channel i. Used by tests.
func (m Model) Value(i int) float64 {
	return m.strips[i].knob.Value()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Next):
			m.focus = (m.focus + 1) % len(m.strips)
			m.applyFocus()
			return m, nil
		case key.Matches(msg, m.keymap.Prev):
			m.focus = (m.focus - 1 + len(m.strips)) % len(m.strips)
			m.applyFocus()
			return m, nil
		case key.Matches(msg, m.keymap.Increase):
			var cmd tea.Cmd
			m.strips[m.focus].knob, cmd = m.strips[m.focus].knob.Adjust(0.05)
			return m, cmd
		case key.Matches(msg, m.keymap.Decrease):
			var cmd tea.Cmd
			m.strips[m.focus].knob, cmd = m.strips[m.focus].knob.Adjust(-0.05)
			return m, cmd
		case key.Matches(msg, m.keymap.Reset):
			return m.resetStrip(m.focus), nil
		}

	case tea.MouseMsg:
		for i := range m.strips {
			var cmd tea.Cmd
			m.strips[i].knob, cmd = m.strips[i].knob.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case knob.ChangedMsg:
		if i, ok := m.byID[msg.ID]; ok && m.strips[i].control != nil {
			m.strips[i].control.Set(msg.Value)
		}
		return m, nil

	case knob.EditStartMsg:
		m.editing = msg.ID
		if i, ok := m.byID[msg.ID]; ok {
			m.focus = i
			m.applyFocus()
		}
		slog.Debug("edit began", "knob", msg.ID)
		return m, nil

	case knob.EditEndMsg:
		m.editing = 0
		slog.Debug("edit ended", "knob", msg.ID, "value", msg.Value)
		return m, nil

	case knob.DoubleTappedMsg:
		if i, ok := m.byID[msg.ID]; ok {
			return m.resetStrip(i), nil
		}
		return m, nil
	}

	return m, tea.Batch(cmds...)
}

// resetStrip returns channel i to its default value and pushes the value
// to the bound control.
func (m Model) resetStrip(i int) Model {
	m.strips[i].knob = m.strips[i].knob.SetValue(m.strips[i].def)
	if m.strips[i].control != nil {
		m.strips[i].control.Set(m.strips[i].def)
	}
	return m
}

// View implements tea.Model.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(" ")
	sb.WriteString(style.Title.Render("dials"))
	sb.WriteString(" ")
	sb.WriteString(style.Subtitle.Render("drag a knob, double-tap to reset"))
	sb.WriteString("\n\n")

	columns := collections.Apply(m.strips, func(s strip) string {
		bar := lipgloss.PlaceHorizontal(s.knob.Width(), lipgloss.Center, s.meter.View())
		return s.knob.View() + "\n" + bar
	})

	views := make([]string, 0, len(columns)*2)
	for i, col := range columns {
		if i > 0 {
			views = append(views, strings.Repeat(" ", knobGap))
		}
		views = append(views, col)
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, views...)
	sb.WriteString(lipgloss.NewStyle().MarginLeft(leftMargin).Render(row))
	sb.WriteString("\n\n")

	sb.WriteString(m.statusLine())
	sb.WriteString("\n")
	sb.WriteString(m.helpLine())

	return sb.String()
}

// statusLine shows the focused channel and its bound control's value,
// which trails the knob only when continuous events are off.
func (m Model) statusLine() string {
	s := m.strips[m.focus]
	line := fmt.Sprintf(" %s  knob %.3f", strings.ToLower(stripName(s)), s.knob.Value())
	if s.control != nil {
		line += fmt.Sprintf("  control %.3f", s.control.Read())
	}
	if m.editing != 0 {
		line += "  (editing)"
	}
	return style.Muted.Render(line)
}

func stripName(s strip) string {
	// The knob renders its own label; reuse it for the status line.
	return s.knob.Label()
}

// helpLine renders the short help the way the org's TUIs do.
func (m Model) helpLine() string {
	var sb strings.Builder
	sb.WriteString(" ")
	for _, b := range m.keymap.ShortHelp() {
		sb.WriteString(style.Help.Render("["))
		sb.WriteString(style.Key.Render(b.Help().Key))
		sb.WriteString(style.Help.Render("] "+b.Help().Desc+"  "))
	}
	return sb.String()
}
