package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/milk9111/pathpaint/common"
	"github.com/milk9111/pathpaint/config"
	"github.com/milk9111/pathpaint/pathfind"
	"github.com/milk9111/pathpaint/render"
)

func newRenderCmd(flags *config.Flags) *cobra.Command {
	var (
		src      gridSource
		output   string
		viewport string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a grid and its path to PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.Load(cmd.Flags())
			if err != nil {
				return err
			}
			g, opts, err := src.build(cmd.Context(), cfg, cmd.InOrStdin())
			if err != nil {
				return err
			}
			r, err := cfg.Renderer()
			if err != nil {
				return err
			}

			logger := common.LoggerFromContext(cmd.Context())
			client := pathfind.NewClient(pathfind.NewSearcher(cfg.SearchBudget))
			path, err := client.ComputePath(cmd.Context(), g.Snapshot(), opts)
			if err != nil {
				logger.Warn("path computation failed, rendering without a path", "err", err)
				path = nil
			}

			var (
				layout render.Layout
				w, h   float64
			)
			if viewport != "" {
				if w, h, err = parseSize(viewport); err != nil {
					return err
				}
				layout = r.Fit(w, h, g)
			} else {
				layout = r.Native(g)
				w, h = layout.Size()
			}

			canvas := render.NewRasterCanvas(int(w), int(h))
			r.Draw(canvas, g, path, layout)

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("render: %w", err)
			}
			if err := canvas.EncodePNG(f); err != nil {
				f.Close()
				return fmt.Errorf("render: encode %s: %w", output, err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("render: %w", err)
			}
			logger.Info("rendered", "file", output, "width", int(w), "height", int(h), "waypoints", len(path))
			return nil
		},
	}

	src.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "pathpaint.png", "output PNG file")
	cmd.Flags().StringVar(&viewport, "viewport", "", "fit into a WxH viewport instead of rendering at native size")
	return cmd
}
