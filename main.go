package main

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
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
		preset  string
		flags   config.Flags
	)

	root := &cobra.Command{
		Use:          "pathpaint",
		Short:        "Paint obstacles on a grid and watch the shortest path follow",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := common.SessionLogger(common.NewLogger(os.Stderr, level))
			cmd.SetContext(common.WithLogger(cmd.Context(), logger))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.Load(cmd.Flags())
			if err != nil {
				return err
			}
			game, err := NewGame(cmd.Context(), cfg, preset)
			if err != nil {
				return err
			}
			defer game.Close()

			ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
			ebiten.SetWindowSize(1280, 800)
			ebiten.SetWindowTitle("pathpaint")
			return ebiten.RunGame(game)
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.Flags().StringVar(&preset, "preset", "", "preset to load at startup")
	flags.Register(root.Flags())

	return root
}
