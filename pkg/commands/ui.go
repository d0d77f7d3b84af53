package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/timescope/pkg/commands/options"
	"tableflip.dev/timescope/pkg/resolver"
	"tableflip.dev/timescope/pkg/store"
	"tableflip.dev/timescope/pkg/tui"
)

func addUI(topLevel *cobra.Command) {
	so := &options.StoreOptions{}
	uo := &options.UIOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive timeline viewer on the stored objects.",
		Example: `
timescope ui
timescope ui --playhead --follow --speed 2
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := so.Config()
			if err != nil {
				return err
			}
			persist, err := store.Load(cfg)
			if err != nil {
				return err
			}
			uiCfg, err := uo.Config()
			if err != nil {
				return err
			}

			objects := persist.List(context.Background())
			m, err := tui.New(resolver.Basic{}, persist, objects, uiCfg)
			if err != nil {
				return err
			}
			return tui.Run(m)
		},
	}

	options.AddStoreArgs(cmd, so)
	options.AddUIArgs(cmd, uo)
	topLevel.AddCommand(cmd)
}
