package main

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/milk9111/pathpaint/common"
	"github.com/milk9111/pathpaint/config"
	"github.com/milk9111/pathpaint/grid"
	"github.com/milk9111/pathpaint/pathfind"
	"github.com/milk9111/pathpaint/render"
)

func newSolveCmd(flags *config.Flags) *cobra.Command {
	var (
		src   gridSource
		cells bool
		draw  bool
	)

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Print the shortest path across a grid",
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

			logger := common.LoggerFromContext(cmd.Context())
			sw := common.StartStopwatch(logger)
			client := pathfind.NewClient(pathfind.NewSearcher(cfg.SearchBudget))
			path, err := client.ComputePath(cmd.Context(), g.Snapshot(), opts)
			if err != nil {
				return fmt.Errorf("solve: %w", err)
			}
			sw.Done("solved", "waypoints", len(path))

			out := cmd.OutOrStdout()
			if draw {
				pal, err := cfg.Palette.Resolve()
				if err != nil {
					return err
				}
				fmt.Fprint(out, drawGrid(g, pathfind.Expand(path), newCellStyles(pal)))
			}
			return printPath(out, path, cells)
		},
	}

	src.register(cmd)
	cmd.Flags().BoolVar(&cells, "cells", false, "print every traversed cell instead of waypoints")
	cmd.Flags().BoolVar(&draw, "draw", false, "draw the grid with the path before listing it")
	return cmd
}

func printPath(w io.Writer, path pathfind.Path, cells bool) error {
	if len(path) == 0 {
		_, err := fmt.Fprintln(w, "no path")
		return err
	}
	if cells {
		path = pathfind.Expand(path)
	}
	for _, p := range path {
		if _, err := fmt.Fprintf(w, "%d,%d\n", p.X, p.Y); err != nil {
			return err
		}
	}
	return nil
}

// cellStyles paints one grid cell as two terminal columns.
type cellStyles struct {
	free, obstacle, path, start, end lipgloss.Style
}

func newCellStyles(pal render.Palette) cellStyles {
	bg := func(c color.RGBA) lipgloss.Style {
		return lipgloss.NewStyle().Background(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)))
	}
	return cellStyles{
		free:     bg(pal.Background),
		obstacle: bg(pal.Obstacle),
		path:     bg(pal.Path),
		start:    bg(pal.Start),
		end:      bg(pal.End),
	}
}

func (s cellStyles) cell(src grid.Source, onPath map[grid.Point]bool, p grid.Point) string {
	switch {
	case p == src.End():
		return s.end.Render("  ")
	case p == src.Start():
		return s.start.Render("  ")
	case onPath[p]:
		return s.path.Render("::")
	case src.IsObstacle(p):
		return s.obstacle.Render("  ")
	default:
		return s.free.Render("  ")
	}
}

// drawGrid renders src with the given traversed cells highlighted.
func drawGrid(src grid.Source, cells pathfind.Path, styles cellStyles) string {
	return drawGridWindow(src, cells, styles, 0, 0)
}

// drawGridWindow is drawGrid limited to maxCols x maxRows cells; zero means
// no limit.
func drawGridWindow(src grid.Source, cells pathfind.Path, styles cellStyles, maxCols, maxRows int) string {
	onPath := make(map[grid.Point]bool, len(cells))
	for _, p := range cells {
		onPath[p] = true
	}

	w, h := src.Dimensions()
	if maxCols > 0 {
		w = common.Clamp(w, 1, maxCols)
	}
	if maxRows > 0 {
		h = common.Clamp(h, 1, maxRows)
	}

	var b strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			b.WriteString(styles.cell(src, onPath, grid.Point{X: x, Y: y}))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
