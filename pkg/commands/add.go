package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/timescope/pkg/commands/options"
	"tableflip.dev/timescope/pkg/store"
	"tableflip.dev/timescope/pkg/timeline"
)

func addAdd(topLevel *cobra.Command) {
	so := &options.StoreOptions{}
	obj := &options.ObjectOptions{}

	cmd := &cobra.Command{
		Use:   "add <object-id>",
		Short: "Add a timeline object to the store.",
		Example: `
timescope add intro --layer video --start 0 --duration 10s
timescope add clock --layer graphics --start 0 --duration 1s --repeat 1m
timescope add background --layer video --start 0
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires exactly one object id")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := so.Config()
			if err != nil {
				return err
			}
			persist, err := store.Load(cfg)
			if err != nil {
				return err
			}
			enable, err := obj.Enable()
			if err != nil {
				return err
			}

			o := &timeline.Object{
				ID:     args[0],
				Layer:  obj.Layer,
				Enable: []timeline.Enable{enable},
			}
			if err := persist.Store(o); err != nil {
				return err
			}
			fmt.Printf("added %s on layer %s\n", o.ID, o.Layer)
			return nil
		},
	}

	options.AddStoreArgs(cmd, so)
	options.AddObjectArgs(cmd, obj)
	topLevel.AddCommand(cmd)
}
