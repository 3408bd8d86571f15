package grid

import (
	"errors"
	"fmt"
	"strings"
)

var ErrMalformedMap = errors.New("grid: malformed map")

// EncodeMap writes the occupancy of src as rows of '0' and '1'.
func EncodeMap(src Source) string {
	w, h := src.Dimensions()
	var b strings.Builder
	b.Grow((w + 1) * h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if src.IsObstacle(Point{X: x, Y: y}) {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// DecodeMap parses rows of '0' and '1'. Other characters are ignored, so maps
// pasted with spaces or indentation still decode. Blank rows are skipped.
func DecodeMap(s string) (Layout, error) {
	var rows [][]Cell
	for _, line := range strings.Split(s, "\n") {
		var row []Cell
		for _, r := range line {
			switch r {
			case '0':
				row = append(row, Passable)
			case '1':
				row = append(row, Obstacle)
			}
		}
		if len(row) == 0 {
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return Layout{}, fmt.Errorf("%w: no rows", ErrMalformedMap)
	}

	w := len(rows[0])
	h := len(rows)
	if w > MaxSize || h > MaxSize {
		return Layout{}, fmt.Errorf("%w: %dx%d exceeds %d", ErrMalformedMap, w, h, MaxSize)
	}

	cells := make([]Cell, 0, w*h)
	for y, row := range rows {
		if len(row) != w {
			return Layout{}, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformedMap, y, len(row), w)
		}
		cells = append(cells, row...)
	}
	return Layout{Width: w, Height: h, Cells: cells}, nil
}
