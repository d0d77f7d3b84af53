package options

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/timescope/pkg/timeline"
	"tableflip.dev/timescope/pkg/timeutil"
)

// ObjectOptions captures the enable-condition flags for adding an object.
type ObjectOptions struct {
	Layer    string
	Start    string
	End      string
	Duration string
	Repeat   string
}

// AddObjectArgs wires object flags on the provided command.
func AddObjectArgs(cmd *cobra.Command, o *ObjectOptions) {
	cmd.Flags().StringVarP(&o.Layer, "layer", "l", "default",
		"Layer the object is placed on.")
	cmd.Flags().StringVar(&o.Start, "start", "0",
		`When the object becomes enabled, example: --start="1m30s".`)
	cmd.Flags().StringVar(&o.End, "end", "",
		"When the object stops; mutually exclusive with --duration.")
	cmd.Flags().StringVar(&o.Duration, "duration", "",
		"How long the object stays enabled.")
	cmd.Flags().StringVar(&o.Repeat, "repeat", "",
		"Repeat the enable window at this interval.")
}

// Enable resolves the flags into an enable condition.
func (o *ObjectOptions) Enable() (timeline.Enable, error) {
	if o.End != "" && o.Duration != "" {
		return timeline.Enable{}, errors.New("--end and --duration are mutually exclusive")
	}

	start, err := timeutil.ParseTime(o.Start)
	if err != nil {
		return timeline.Enable{}, err
	}
	en := timeline.Enable{Start: start}

	if o.End != "" {
		end, err := timeutil.ParseTime(o.End)
		if err != nil {
			return timeline.Enable{}, err
		}
		if end <= start {
			return timeline.Enable{}, errors.New("--end must come after --start")
		}
		en.End = timeline.EndAt(end)
	}
	if o.Duration != "" {
		d, err := timeutil.ParseTime(o.Duration)
		if err != nil {
			return timeline.Enable{}, err
		}
		en.Duration = timeline.EndAt(d)
	}
	if o.Repeat != "" {
		r, err := timeutil.ParseTime(o.Repeat)
		if err != nil {
			return timeline.Enable{}, err
		}
		en.Repeat = r
	}
	return en, nil
}
