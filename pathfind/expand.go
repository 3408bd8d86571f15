package pathfind

import (
	"math"

	"github.com/milk9111/pathpaint/grid"
)

// Expand walks every segment of path and returns each cell it crosses, with
// no duplicates at segment joints.
func Expand(path Path) Path {
	if len(path) == 0 {
		return nil
	}
	out := make(Path, 0, len(path)*4)
	for i := 0; i+1 < len(path); i++ {
		out = append(out, segment(path[i], path[i+1])...)
	}
	return append(out, path[len(path)-1])
}

// segment returns the cells from a up to but not including b.
func segment(a, b grid.Point) []grid.Point {
	dx, dy := b.X-a.X, b.Y-a.Y
	steps := max(abs(dx), abs(dy))
	pts := make([]grid.Point, 0, steps)
	for i := 0; i < steps; i++ {
		pts = append(pts, grid.Point{
			X: a.X + roundDiv(dx*i, steps),
			Y: a.Y + roundDiv(dy*i, steps),
		})
	}
	return pts
}

func roundDiv(a, b int) int {
	return int(math.Round(float64(a) / float64(b)))
}
