package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/milk9111/pathpaint/config"
	"github.com/milk9111/pathpaint/presets"
)

func newPresetsCmd(flags *config.Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.Load(cmd.Flags())
			if err != nil {
				return err
			}
			names, err := presets.NewLibrary(cfg.PresetsDir).Names()
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
}
