// Package config loads the optional TOML settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/milk9111/pathpaint/grid"
	"github.com/milk9111/pathpaint/pathfind"
	"github.com/milk9111/pathpaint/render"
)

const DefaultPath = "pathpaint.toml"

type Config struct {
	Width                int  `toml:"width"`
	Height               int  `toml:"height"`
	AllowDiagonal        bool `toml:"allow_diagonal"`
	PreventCornerCutting bool `toml:"prevent_corner_cutting"`

	Margin        float64 `toml:"margin"`
	CellUnits     float64 `toml:"cell_units"`
	LineWidth     float64 `toml:"line_width"`
	FillTraversed bool    `toml:"fill_traversed"`

	SearchBudget int `toml:"search_budget"`

	PresetsDir   string `toml:"presets_dir"`
	WatchPresets bool   `toml:"watch_presets"`

	Palette render.HexPalette `toml:"palette"`
}

func Default() Config {
	return Config{
		Width:                20,
		Height:               20,
		PreventCornerCutting: true,
		Margin:               render.DefaultMargin,
		CellUnits:            render.DefaultCellUnits,
		LineWidth:            render.DefaultLineWidth,
		PresetsDir:           "presets",
	}
}

// Load reads path over the defaults. A missing file is not an error; when
// optional is false it is.
func Load(path string, optional bool) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data, cfg)
}

// Parse decodes TOML data over base and validates the result.
func Parse(data []byte, base Config) (Config, error) {
	cfg := base
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return base, fmt.Errorf("config: decode: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return base, fmt.Errorf("config: unknown key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}

// Validate clamps the grid size and rejects settings that cannot be drawn.
func (c *Config) Validate() error {
	c.Width = grid.ClampDimension(float64(c.Width))
	c.Height = grid.ClampDimension(float64(c.Height))
	if c.Margin < 0 {
		return fmt.Errorf("config: margin must not be negative, got %v", c.Margin)
	}
	if c.CellUnits <= 0 {
		return fmt.Errorf("config: cell_units must be positive, got %v", c.CellUnits)
	}
	if c.LineWidth < 0 {
		return fmt.Errorf("config: line_width must not be negative, got %v", c.LineWidth)
	}
	if c.SearchBudget < 0 {
		return fmt.Errorf("config: search_budget must not be negative, got %d", c.SearchBudget)
	}
	if _, err := c.Palette.Resolve(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func (c Config) Options() pathfind.Options {
	return pathfind.Options{
		AllowDiagonal:        c.AllowDiagonal,
		PreventCornerCutting: c.PreventCornerCutting,
	}
}

// Renderer builds a renderer from the drawing settings.
func (c Config) Renderer() (*render.Renderer, error) {
	pal, err := c.Palette.Resolve()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	r := render.NewRenderer()
	r.Palette = pal
	r.Margin = c.Margin
	r.CellUnits = c.CellUnits
	r.LineWidth = c.LineWidth
	r.FillTraversed = c.FillTraversed
	return r, nil
}
