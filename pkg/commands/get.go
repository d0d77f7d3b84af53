package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/timescope/pkg/commands/options"
	"tableflip.dev/timescope/pkg/printers"
	"tableflip.dev/timescope/pkg/resolver"
	"tableflip.dev/timescope/pkg/store"
)

func addGet(topLevel *cobra.Command) {
	so := &options.StoreOptions{}
	ro := &options.ResolveOptions{}
	showIDs := false

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Resolve the stored objects and print the schedule.",
		Example: `
timescope get
timescope get --time 1m30s --ids
timescope get --json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := so.Config()
			if err != nil {
				return oo.HandleError(err)
			}
			persist, err := store.Load(cfg)
			if err != nil {
				return oo.HandleError(err)
			}
			opts, err := ro.Options()
			if err != nil {
				return oo.HandleError(err)
			}

			objects := persist.List(context.Background())
			resolved, err := resolver.Basic{}.Resolve(objects, opts)
			if err != nil {
				return oo.HandleError(err)
			}

			if oo.JSON {
				b, err := json.MarshalIndent(resolved, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(b))
				return nil
			}

			pp := &printers.PrettyPrint{ShowID: showIDs}
			pp.Title("Objects")
			pp.Objects(objects)
			pp.NewLine()
			pp.Title("Resolved schedule")
			pp.Schedule(resolved)
			return nil
		},
	}

	options.AddStoreArgs(cmd, so)
	options.AddResolveArgs(cmd, ro)
	base.AddOutputArg(cmd, oo)
	cmd.Flags().BoolVar(&showIDs, "ids", false, "Show instance ids.")

	topLevel.AddCommand(cmd)
}
