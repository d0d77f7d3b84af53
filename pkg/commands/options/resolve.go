package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/timescope/pkg/resolver"
	"tableflip.dev/timescope/pkg/timeutil"
)

// ResolveOptions configures a one-shot resolution.
type ResolveOptions struct {
	Time    string
	Horizon string
}

// AddResolveArgs wires resolution flags on the provided command.
func AddResolveArgs(cmd *cobra.Command, o *ResolveOptions) {
	cmd.Flags().StringVarP(&o.Time, "time", "t", "0",
		"Reference time to resolve from.")
	cmd.Flags().StringVar(&o.Horizon, "horizon", "",
		"How far past the reference time repeats are expanded.")
}

// Options resolves the flags into resolver options.
func (o *ResolveOptions) Options() (resolver.Options, error) {
	t, err := timeutil.ParseTime(o.Time)
	if err != nil {
		return resolver.Options{}, err
	}
	opts := resolver.Options{Time: t}
	if o.Horizon != "" {
		h, err := timeutil.ParseTime(o.Horizon)
		if err != nil {
			return resolver.Options{}, err
		}
		opts.Horizon = h
	}
	return opts, nil
}
