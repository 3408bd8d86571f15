// Package render draws a grid, its markers and a path onto a Canvas.
//
// Drawing is a pure function of the grid, the path and the layout. Layers are
// painted in a fixed order so later layers cover earlier ones: background,
// border, obstacles, path cells, start, end, then the path strokes.
package render

import (
	"image/color"

	"github.com/milk9111/pathpaint/grid"
	"github.com/milk9111/pathpaint/pathfind"
)

const (
	DefaultCellUnits = 30
	DefaultLineWidth = 3
	DefaultMargin    = 40
)

// Canvas is a drawing surface in viewport pixels.
type Canvas interface {
	Clear(c color.Color)
	FillRect(x, y, w, h float64, c color.Color)
	StrokeRect(x, y, w, h, width float64, c color.Color)
	StrokeLine(x0, y0, x1, y1, width float64, c color.Color)
}

type Renderer struct {
	Palette Palette
	// CellUnits is the unscaled size of one cell; LineWidth is measured in the
	// same units.
	CellUnits float64
	LineWidth float64
	Margin    float64
	// FillTraversed fills every cell a path segment crosses instead of only
	// the waypoints.
	FillTraversed bool
}

func NewRenderer() *Renderer {
	return &Renderer{
		Palette:   DefaultPalette(),
		CellUnits: DefaultCellUnits,
		LineWidth: DefaultLineWidth,
		Margin:    DefaultMargin,
	}
}

// Fit lays src out on a viewW x viewH viewport.
func (r *Renderer) Fit(viewW, viewH float64, src grid.Source) Layout {
	w, h := src.Dimensions()
	return Fit(viewW, viewH, w, h, r.Margin)
}

// Native lays src out at one pixel per unit.
func (r *Renderer) Native(src grid.Source) Layout {
	w, h := src.Dimensions()
	return Native(w, h, r.CellUnits)
}

func (r *Renderer) strokeWidth(l Layout) float64 {
	if r.CellUnits <= 0 {
		return r.LineWidth
	}
	return r.LineWidth * l.CellSize / r.CellUnits
}

// Draw paints one frame.
func (r *Renderer) Draw(c Canvas, src grid.Source, path pathfind.Path, l Layout) {
	pal := r.Palette
	c.Clear(pal.Background)
	if l.CellSize <= 0 {
		return
	}

	gw, gh := l.Size()
	c.StrokeRect(l.OriginX-1, l.OriginY-1, gw+2, gh+2, 1, pal.Border)

	cols, rows := src.Dimensions()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			p := grid.Point{X: x, Y: y}
			if src.IsObstacle(p) {
				fillCell(c, l, p, pal.Obstacle)
			}
		}
	}

	fills := path
	if r.FillTraversed {
		fills = pathfind.Expand(path)
	}
	for _, p := range fills {
		fillCell(c, l, p, pal.Path)
	}

	fillCell(c, l, src.Start(), pal.Start)
	fillCell(c, l, src.End(), pal.End)

	width := r.strokeWidth(l)
	for i := 1; i < len(path); i++ {
		x0, y0 := l.CellCenter(path[i-1])
		x1, y1 := l.CellCenter(path[i])
		c.StrokeLine(x0, y0, x1, y1, width, pal.Stroke)
	}
}

func fillCell(c Canvas, l Layout, p grid.Point, col color.Color) {
	x, y, s := l.CellRect(p)
	c.FillRect(x, y, s, s, col)
}
