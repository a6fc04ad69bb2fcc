package main

import (
	"fmt"
	"math"
	"os"

	"github.com/alecthomas/kong"
	"github.com/alkime/dials/internal/config"
	"github.com/alkime/dials/internal/logger"
	"github.com/alkime/dials/internal/tui"
	"github.com/alkime/dials/internal/tui/components/knob"
	"github.com/alkime/dials/pkg/uictl"
	tea "github.com/charmbracelet/bubbletea"
)

// CLI defines the dials command structure.
type CLI struct {
	// Default mixer command (runs when no subcommand given)
	Mixer MixerCmd `cmd:"" default:"withargs" help:"Launch the mixer demo"`

	// Subcommands
	Modes ModesCmd `cmd:"" help:"List the available control modes"`
}

// MixerCmd is the default command that runs the mixer TUI.
type MixerCmd struct {
	Mode       string  `flag:"" default:"coarse-vertical" help:"Control mode for the gain knob (horizontal, vertical, coarse-vertical, coarse-horizontal, both, rotary)"`
	Min        float64 `flag:"" default:"0" help:"Gain knob minimum value"`
	Max        float64 `flag:"" default:"1" help:"Gain knob maximum value"`
	StartDeg   float64 `flag:"" default:"135" help:"Ring start angle in degrees"`
	EndDeg     float64 `flag:"" default:"405" help:"Ring end angle in degrees (may exceed 360)"`
	Continuous *bool   `flag:"" help:"Emit value changes during the drag instead of only at the end"`
}

// Run executes the mixer command.
func (c *MixerCmd) Run(cfg *config.Config) error {
	mode, err := knob.ParseMode(c.Mode)
	if err != nil {
		return err
	}
	if c.Min >= c.Max {
		return fmt.Errorf("invalid range: min %v must be below max %v", c.Min, c.Max)
	}

	continuous := cfg.ContinuousEvents
	if c.Continuous != nil {
		continuous = *c.Continuous
	}

	base := knob.DefaultConfig()
	base.StartAngle = c.StartDeg * math.Pi / 180
	base.EndAngle = c.EndDeg * math.Pi / 180
	base.FineSensitivity = cfg.FineSensitivity
	base.DirectionSensitivity = cfg.DirectionSensitivity
	base.ContinuousEvents = continuous

	gain := base
	gain.Mode = mode
	gain.Min, gain.Max = c.Min, c.Max

	pan := base
	pan.Mode = knob.Horizontal
	pan.Min, pan.Max = -1, 1

	cutoff := base
	cutoff.Mode = knob.Rotary
	cutoff.Min, cutoff.Max = 20, 20000

	channels := []tui.Channel{
		{
			Name:    "gain",
			Config:  gain,
			Markers: knob.Ticks(11, 2),
			Control: uictl.NewBounded(0.0, gain.Min, gain.Max),
			Default: gain.Min + 0.8*(gain.Max-gain.Min),
		},
		{
			Name:    "pan",
			Config:  pan,
			Markers: knob.Ticks(3, 2),
			Control: uictl.NewBounded(0.0, -1.0, 1.0),
			Default: 0,
			Format:  func(v float64) string { return fmt.Sprintf("%+.2f", v) },
		},
		{
			Name:    "cutoff",
			Config:  cutoff,
			Markers: knob.Ticks(8, 2),
			Control: uictl.NewBounded(1000.0, 20.0, 20000.0),
			Default: 1000,
			Format:  func(v float64) string { return fmt.Sprintf("%.0f Hz", v) },
		},
	}

	p := tea.NewProgram(tui.New(channels),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run mixer TUI: %w", err)
	}

	return nil
}

// ModesCmd lists the control modes.
type ModesCmd struct{}

// Run executes the modes command.
//
//nolint:unparam // error return required by Kong interface
func (c *ModesCmd) Run(cfg *config.Config) error {
	modes := []struct {
		mode knob.Mode
		desc string
	}{
		{knob.Horizontal, "drag right to increase"},
		{knob.Vertical, "drag up to increase"},
		{knob.CoarseVerticalFineHorizontal, "first direction locks; vertical coarse, horizontal fine"},
		{knob.FineVerticalCoarseHorizontal, "first direction locks; horizontal coarse, vertical fine"},
		{knob.HorizontalAndVertical, "both axes move the value"},
		{knob.Rotary, "value follows the pointer angle around the knob"},
	}

	for _, m := range modes {
		fmt.Printf("%-18s %s\n", m.mode, m.desc)
	}

	return nil
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger.SetupLogger(cfg)

	cli := &CLI{} //nolint:exhaustruct // Kong fills in command fields
	ctx := kong.Parse(cli, kong.Bind(cfg))
	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}
