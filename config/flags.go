package config

import (
	"github.com/spf13/pflag"
)

// Flags are command-line overrides for the file settings. Only flags the user
// actually set replace file values.
type Flags struct {
	Path string

	width, height int
	diagonal      bool
	preventCorner bool
	fillTraversed bool
	budget        int
	presetsDir    string
	watchPresets  bool
}

func (f *Flags) Register(fs *pflag.FlagSet) {
	d := Default()
	fs.StringVar(&f.Path, "config", DefaultPath, "TOML settings file")
	fs.IntVar(&f.width, "width", d.Width, "grid width in cells (1-1000)")
	fs.IntVar(&f.height, "height", d.Height, "grid height in cells (1-1000)")
	fs.BoolVar(&f.diagonal, "diagonal", d.AllowDiagonal, "allow diagonal moves")
	fs.BoolVar(&f.preventCorner, "prevent-corner-cutting", d.PreventCornerCutting, "refuse diagonal moves between two blocked cells")
	fs.BoolVar(&f.fillTraversed, "fill-traversed", d.FillTraversed, "fill every cell the path crosses, not only waypoints")
	fs.IntVar(&f.budget, "budget", d.SearchBudget, "max search expansions, 0 for unbounded")
	fs.StringVar(&f.presetsDir, "presets-dir", d.PresetsDir, "directory of preset files")
	fs.BoolVar(&f.watchPresets, "watch", d.WatchPresets, "reload presets when their files change")
}

// Load reads the settings file named by --config and applies the flags that
// were set. The default file is optional; an explicit one must exist.
func (f *Flags) Load(fs *pflag.FlagSet) (Config, error) {
	cfg, err := Load(f.Path, !fs.Changed("config"))
	if err != nil {
		return cfg, err
	}

	if fs.Changed("width") {
		cfg.Width = f.width
	}
	if fs.Changed("height") {
		cfg.Height = f.height
	}
	if fs.Changed("diagonal") {
		cfg.AllowDiagonal = f.diagonal
	}
	if fs.Changed("prevent-corner-cutting") {
		cfg.PreventCornerCutting = f.preventCorner
	}
	if fs.Changed("fill-traversed") {
		cfg.FillTraversed = f.fillTraversed
	}
	if fs.Changed("budget") {
		cfg.SearchBudget = f.budget
	}
	if fs.Changed("presets-dir") {
		cfg.PresetsDir = f.presetsDir
	}
	if fs.Changed("watch") {
		cfg.WatchPresets = f.watchPresets
	}
	return cfg, cfg.Validate()
}
