package render

import (
	"math"

	"github.com/milk9111/pathpaint/grid"
)

// Layout places a grid on a viewport: the grid's top-left corner sits at
// (OriginX, OriginY) and every cell is CellSize pixels square.
type Layout struct {
	OriginX  float64
	OriginY  float64
	CellSize float64
	Columns  int
	Rows     int
}

// Fit scales a cols x rows grid uniformly into the viewport, leaving margin
// pixels of slack on each axis, and centers it.
func Fit(viewW, viewH float64, cols, rows int, margin float64) Layout {
	cols = max(cols, 1)
	rows = max(rows, 1)
	size := math.Min((viewW-margin)/float64(cols), (viewH-margin)/float64(rows))
	if math.IsNaN(size) || size < 0 {
		size = 0
	}
	l := Layout{CellSize: size, Columns: cols, Rows: rows}
	w, h := l.Size()
	l.OriginX = (viewW - w) / 2
	l.OriginY = (viewH - h) / 2
	return l
}

// Native lays the grid out unscaled at cellUnits pixels per cell.
func Native(cols, rows int, cellUnits float64) Layout {
	return Layout{CellSize: cellUnits, Columns: max(cols, 1), Rows: max(rows, 1)}
}

func (l Layout) Size() (float64, float64) {
	return l.CellSize * float64(l.Columns), l.CellSize * float64(l.Rows)
}

// Normalize maps a viewport pixel into the grid rectangle, where [0,1) on both
// axes is inside. A degenerate layout maps everything outside.
func (l Layout) Normalize(px, py float64) (float64, float64) {
	w, h := l.Size()
	if w <= 0 || h <= 0 {
		return -1, -1
	}
	return (px - l.OriginX) / w, (py - l.OriginY) / h
}

func (l Layout) CellRect(p grid.Point) (x, y, size float64) {
	return l.OriginX + float64(p.X)*l.CellSize, l.OriginY + float64(p.Y)*l.CellSize, l.CellSize
}

func (l Layout) CellCenter(p grid.Point) (float64, float64) {
	x, y, s := l.CellRect(p)
	return x + s/2, y + s/2
}
