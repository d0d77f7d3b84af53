// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/timescope/pkg/store"
)

// StoreOptions selects where timeline object documents live.
type StoreOptions struct {
	Path string
}

// AddStoreArgs wires the store path flag on the provided command.
func AddStoreArgs(cmd *cobra.Command, o *StoreOptions) {
	cmd.Flags().StringVar(&o.Path, "path", "",
		"Object store path. Defaults to the configured path (~/.timescope.db).")
}

// Config resolves the options into a store config, falling back to the
// viper-loaded one when no path was given.
func (o *StoreOptions) Config() (store.Config, error) {
	if o.Path != "" {
		return store.StaticConfig(o.Path), nil
	}
	return store.LoadConfig()
}
