package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/timescope/pkg/timeutil"
	"tableflip.dev/timescope/pkg/tui"
)

// UIOptions configures the interactive viewer.
type UIOptions struct {
	DrawPlayhead bool
	RangeString  string
	Speed        float64
	Follow       bool
}

// AddUIArgs wires viewer flags on the provided command.
func AddUIArgs(cmd *cobra.Command, o *UIOptions) {
	cmd.Flags().BoolVar(&o.DrawPlayhead, "playhead", false,
		"Draw a playhead and enable playback commands.")
	cmd.Flags().StringVar(&o.RangeString, "range", "1m",
		`Visible window at 100% zoom, example: --range="1m30s".`)
	cmd.Flags().Float64Var(&o.Speed, "speed", 1,
		"Playback speed in time units per second.")
	cmd.Flags().BoolVar(&o.Follow, "follow", false,
		"Scroll the window along with playback.")
}

// Config resolves the options into a tui config.
func (o *UIOptions) Config() (tui.Config, error) {
	baseRange, err := timeutil.ParseTime(o.RangeString)
	if err != nil {
		return tui.Config{}, err
	}
	return tui.Config{
		DrawPlayhead: o.DrawPlayhead,
		BaseRange:    baseRange,
		PlaySpeed:    o.Speed,
		Follow:       o.Follow,
	}, nil
}
