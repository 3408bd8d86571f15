package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/milk9111/pathpaint/config"
	"github.com/milk9111/pathpaint/grid"
	"github.com/milk9111/pathpaint/pathfind"
	"github.com/milk9111/pathpaint/presets"
)

// gridSource selects where a command's grid comes from: an ASCII map file, a
// preset, or an empty grid of the configured size.
type gridSource struct {
	mapFile string
	preset  string
	start   string
	end     string
}

func (s *gridSource) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.mapFile, "map", "", "ASCII map file of 0/1 rows, - for stdin")
	cmd.Flags().StringVar(&s.preset, "preset", "", "start from a preset")
	cmd.Flags().StringVar(&s.start, "start", "", "start cell as x,y")
	cmd.Flags().StringVar(&s.end, "end", "", "end cell as x,y")
}

func (s *gridSource) build(ctx context.Context, cfg config.Config, stdin io.Reader) (*grid.Grid, pathfind.Options, error) {
	opts := cfg.Options()
	g := grid.New(cfg.Width, cfg.Height)

	switch {
	case s.mapFile != "" && s.preset != "":
		return nil, opts, fmt.Errorf("--map and --preset are mutually exclusive")
	case s.mapFile != "":
		var data []byte
		var err error
		if s.mapFile == "-" {
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(s.mapFile)
		}
		if err != nil {
			return nil, opts, fmt.Errorf("read map: %w", err)
		}
		l, err := grid.DecodeMap(string(data))
		if err != nil {
			return nil, opts, fmt.Errorf("map %s: %w", s.mapFile, err)
		}
		g.ApplyLayout(l)
	case s.preset != "":
		p, err := presets.NewLibrary(cfg.PresetsDir).Load(ctx, s.preset, cfg.Width, cfg.Height)
		if err != nil {
			return nil, opts, err
		}
		p.Apply(g)
		if p.AllowDiagonal != nil {
			opts.AllowDiagonal = *p.AllowDiagonal
		}
	}

	if s.start != "" || s.end != "" {
		start, end := g.Start(), g.End()
		var err error
		if s.start != "" {
			if start, err = parsePoint(s.start); err != nil {
				return nil, opts, fmt.Errorf("--start: %w", err)
			}
		}
		if s.end != "" {
			if end, err = parsePoint(s.end); err != nil {
				return nil, opts, fmt.Errorf("--end: %w", err)
			}
		}
		if !g.SetEndpoints(start, end) {
			return nil, opts, fmt.Errorf("cannot place start %v and end %v: out of bounds, blocked or equal", start, end)
		}
	}
	return g, opts, nil
}

func parsePoint(s string) (grid.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return grid.Point{}, fmt.Errorf("invalid point %q: want x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return grid.Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return grid.Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return grid.Point{X: x, Y: y}, nil
}

func parseSize(s string) (float64, float64, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q: want WxH", s)
	}
	w, err := strconv.ParseFloat(ws, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	h, err := strconv.ParseFloat(hs, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q: must be positive", s)
	}
	return w, h, nil
}
