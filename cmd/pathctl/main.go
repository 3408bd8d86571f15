// Command pathctl works with pathpaint grids without a window: it solves and
// renders maps, lists presets and runs a terminal editor.
package main

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/milk9111/pathpaint/common"
	"github.com/milk9111/pathpaint/config"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		verbose bool
		flags   config.Flags
	)

	root := &cobra.Command{
		Use:          "pathctl",
		Short:        "Solve, render and edit pathpaint grids from the terminal",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := common.NewLogger(cmd.ErrOrStderr(), level)
			cmd.SetContext(common.WithLogger(cmd.Context(), logger))
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	flags.Register(root.PersistentFlags())

	root.AddCommand(newSolveCmd(&flags))
	root.AddCommand(newRenderCmd(&flags))
	root.AddCommand(newPresetsCmd(&flags))
	root.AddCommand(newTUICmd(&flags))
	return root
}
