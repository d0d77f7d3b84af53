package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/timescope/pkg/commands/options"
	"tableflip.dev/timescope/pkg/resolver"
	"tableflip.dev/timescope/pkg/timeline"
	"tableflip.dev/timescope/pkg/tui"
)

// demoObjects is a small schedule exercising every rendering path: bounded
// and open-ended instances, repeats, and several layers.
func demoObjects() []timeline.Object {
	return []timeline.Object{
		{
			ID:    "background",
			Layer: "video",
			Enable: []timeline.Enable{
				{Start: 0},
			},
		},
		{
			ID:    "intro",
			Layer: "video",
			Enable: []timeline.Enable{
				{Start: 5, Duration: timeline.EndAt(15)},
			},
		},
		{
			ID:    "lower-third",
			Layer: "graphics",
			Enable: []timeline.Enable{
				{Start: 10, Duration: timeline.EndAt(8), Repeat: 30},
			},
		},
		{
			ID:    "clock",
			Layer: "graphics",
			Enable: []timeline.Enable{
				{Start: 0, Duration: timeline.EndAt(2), Repeat: 10},
			},
		},
		{
			ID:    "bed",
			Layer: "audio",
			Enable: []timeline.Enable{
				{Start: 2, Duration: timeline.EndAt(50)},
			},
		},
	}
}

func addDemo(topLevel *cobra.Command) {
	uo := &options.UIOptions{}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Open the viewer on a built-in sample schedule.",
		Example: `
timescope demo --playhead --follow
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := uo.Config()
			if err != nil {
				return err
			}
			m, err := tui.New(resolver.Basic{}, nil, demoObjects(), cfg)
			if err != nil {
				return err
			}
			return tui.Run(m)
		},
	}

	options.AddUIArgs(cmd, uo)
	topLevel.AddCommand(cmd)
}
