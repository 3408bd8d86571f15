// Package presets provides ready-made starting layouts. A preset is either a
// YAML description or a tengo script that generates obstacles; presets on disk
// shadow the built-in ones of the same name.
package presets

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/pathpaint/grid"
)

var ErrUnknownPreset = errors.New("presets: unknown preset")

// Preset is a decoded layout ready to be applied to a grid.
type Preset struct {
	Name   string
	Layout grid.Layout
	// Start and End are optional; nil keeps the default corners.
	Start *grid.Point
	End   *grid.Point
	// AllowDiagonal overrides the session setting when set.
	AllowDiagonal *bool
	// Origin is the file the preset was read from, or "builtin:<file>".
	Origin string
}

// Apply replaces g's contents with the preset. Endpoints that cannot be placed
// fall back to the default corners; obstacles under an endpoint are dropped.
func (p Preset) Apply(g *grid.Grid) {
	w, h := g.Resize(float64(p.Layout.Width), float64(p.Layout.Height))
	start, end := g.Start(), g.End()
	if p.Start != nil {
		start = *p.Start
	}
	if p.End != nil {
		end = *p.End
	}
	g.SetEndpoints(start, end)

	for y := 0; y < h && y < p.Layout.Height; y++ {
		for x := 0; x < w && x < p.Layout.Width; x++ {
			i := y*p.Layout.Width + x
			if i < len(p.Layout.Cells) && p.Layout.Cells[i] != grid.Passable {
				g.SetObstacle(grid.Point{X: x, Y: y}, grid.Obstacle)
			}
		}
	}
}

type presetSpec struct {
	Name          string  `yaml:"name"`
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	Start         []int   `yaml:"start"`
	End           []int   `yaml:"end"`
	Map           string  `yaml:"map"`
	Obstacles     [][]int `yaml:"obstacles"`
	AllowDiagonal *bool   `yaml:"allow_diagonal"`
}

func parseYAML(name string, data []byte) (Preset, error) {
	var spec presetSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return Preset{}, fmt.Errorf("presets: unmarshal %s: %w", name, err)
	}
	if spec.Name == "" {
		spec.Name = name
	}
	p := Preset{Name: spec.Name, AllowDiagonal: spec.AllowDiagonal}

	switch {
	case spec.Map != "":
		l, err := grid.DecodeMap(spec.Map)
		if err != nil {
			return Preset{}, fmt.Errorf("presets: %s: %w", name, err)
		}
		if (spec.Width != 0 && spec.Width != l.Width) || (spec.Height != 0 && spec.Height != l.Height) {
			return Preset{}, fmt.Errorf("presets: %s: map is %dx%d but width/height say %dx%d", name, l.Width, l.Height, spec.Width, spec.Height)
		}
		p.Layout = l
	default:
		l, err := layoutFromPoints(spec.Width, spec.Height, spec.Obstacles)
		if err != nil {
			return Preset{}, fmt.Errorf("presets: %s: %w", name, err)
		}
		p.Layout = l
	}

	var err error
	if p.Start, err = optionalPoint("start", spec.Start); err != nil {
		return Preset{}, fmt.Errorf("presets: %s: %w", name, err)
	}
	if p.End, err = optionalPoint("end", spec.End); err != nil {
		return Preset{}, fmt.Errorf("presets: %s: %w", name, err)
	}
	return p, nil
}

func layoutFromPoints(width, height int, points [][]int) (grid.Layout, error) {
	w := grid.ClampDimension(float64(width))
	h := grid.ClampDimension(float64(height))
	l := grid.Layout{Width: w, Height: h, Cells: make([]grid.Cell, w*h)}
	for i, pt := range points {
		if len(pt) != 2 {
			return grid.Layout{}, fmt.Errorf("obstacle %d: want [x, y], got %v", i, pt)
		}
		x, y := pt[0], pt[1]
		if x < 0 || y < 0 || x >= w || y >= h {
			continue
		}
		l.Cells[y*w+x] = grid.Obstacle
	}
	return l, nil
}

func optionalPoint(field string, v []int) (*grid.Point, error) {
	if v == nil {
		return nil, nil
	}
	if len(v) != 2 {
		return nil, fmt.Errorf("%s: want [x, y], got %v", field, v)
	}
	return &grid.Point{X: v[0], Y: v[1]}, nil
}
