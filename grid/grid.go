// Package grid holds the occupancy grid and the start/end markers.
//
// The Grid is the single owner of cell state and endpoint positions. Every
// mutation validates its coordinates and silently refuses anything that would
// break the grid invariants: endpoints never sit on an obstacle, never on each
// other, and never outside the grid.
package grid

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	MinSize = 1
	MaxSize = 1000
)

// Cell is the binary occupancy state of one grid cell.
type Cell uint8

const (
	Passable Cell = 0
	Obstacle Cell = 1
)

// Point is a cell coordinate.
type Point struct {
	X int
	Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Source is the read-only view of a grid used by renderers and encoders.
type Source interface {
	Dimensions() (int, int)
	IsObstacle(p Point) bool
	Start() Point
	End() Point
}

type Grid struct {
	width  int
	height int
	cells  []Cell
	start  Point
	end    Point
}

// New builds a grid of the given size with default corner endpoints.
func New(width, height int) *Grid {
	g := &Grid{}
	g.Resize(float64(width), float64(height))
	return g
}

// ClampDimension floors v and clamps it into [MinSize, MaxSize]. NaN, infinities
// and anything below one become MinSize.
func ClampDimension(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < MinSize {
		return MinSize
	}
	v = math.Floor(v)
	if v > MaxSize {
		return MaxSize
	}
	return int(v)
}

// ParseDimension reads a dimension from a text field. Non-numeric input is
// treated like any other out-of-range value.
func ParseDimension(s string) int {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return MinSize
	}
	return ClampDimension(v)
}

// Resize reallocates an empty grid and resets the endpoints to the top-left and
// bottom-right corners. It returns the clamped dimensions.
func (g *Grid) Resize(width, height float64) (int, int) {
	w := ClampDimension(width)
	h := ClampDimension(height)
	g.width = w
	g.height = h
	g.cells = make([]Cell, w*h)
	g.start = Point{X: 0, Y: 0}
	g.end = Point{X: w - 1, Y: h - 1}
	return w, h
}

func (g *Grid) Dimensions() (int, int) {
	return g.width, g.height
}

func (g *Grid) CellCount() int {
	return len(g.cells)
}

func (g *Grid) Start() Point { return g.start }
func (g *Grid) End() Point   { return g.end }

func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.width && p.Y < g.height
}

func (g *Grid) index(p Point) int {
	return p.Y*g.width + p.X
}

// At returns the cell at p. ok is false when p lies outside the grid.
func (g *Grid) At(p Point) (Cell, bool) {
	if !g.InBounds(p) {
		return Passable, false
	}
	return g.cells[g.index(p)], true
}

// IsObstacle reports whether p is an obstacle. Out-of-bounds cells report false.
func (g *Grid) IsObstacle(p Point) bool {
	c, ok := g.At(p)
	return ok && c == Obstacle
}

// IsEndpoint reports whether p is the start or the end marker.
func (g *Grid) IsEndpoint(p Point) bool {
	return p == g.start || p == g.end
}

func (g *Grid) paintable(p Point) bool {
	return g.InBounds(p) && !g.IsEndpoint(p)
}

// ToggleObstacle flips the cell at p and returns its new value. ok is false,
// and nothing changes, when p is out of bounds or is an endpoint.
func (g *Grid) ToggleObstacle(p Point) (Cell, bool) {
	if !g.paintable(p) {
		return Passable, false
	}
	i := g.index(p)
	g.cells[i] ^= 1
	return g.cells[i], true
}

// SetObstacle forces the cell at p to v under the same rules as
// ToggleObstacle. It reports whether the cell actually changed.
func (g *Grid) SetObstacle(p Point, v Cell) bool {
	if !g.paintable(p) {
		return false
	}
	if v != Passable {
		v = Obstacle
	}
	i := g.index(p)
	if g.cells[i] == v {
		return false
	}
	g.cells[i] = v
	return true
}

func (g *Grid) canHoldEndpoint(p, other Point) bool {
	return g.InBounds(p) && g.cells[g.index(p)] == Passable && p != other
}

// MoveStart relocates the start marker. It reports whether the marker moved;
// targets that are obstacles, the end marker or out of bounds are refused.
func (g *Grid) MoveStart(p Point) bool {
	if p == g.start || !g.canHoldEndpoint(p, g.end) {
		return false
	}
	g.start = p
	return true
}

// MoveEnd is MoveStart for the end marker.
func (g *Grid) MoveEnd(p Point) bool {
	if p == g.end || !g.canHoldEndpoint(p, g.start) {
		return false
	}
	g.end = p
	return true
}

// SetEndpoints places both markers at once, which allows swapping them. Both
// targets must be distinct, passable and in bounds.
func (g *Grid) SetEndpoints(start, end Point) bool {
	if !g.canHoldEndpoint(start, end) || !g.canHoldEndpoint(end, start) {
		return false
	}
	g.start = start
	g.end = end
	return true
}

// Snapshot copies the current state. The copy shares nothing with g.
func (g *Grid) Snapshot() Snapshot {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return Snapshot{
		Layout: Layout{Width: g.width, Height: g.height, Cells: cells},
		StartP: g.start,
		EndP:   g.end,
	}
}

// ApplyLayout replaces the grid with l and resets the endpoints to the default
// corners. Obstacles under the corners are cleared.
func (g *Grid) ApplyLayout(l Layout) {
	w, h := g.Resize(float64(l.Width), float64(l.Height))
	for y := 0; y < h && y < l.Height; y++ {
		for x := 0; x < w && x < l.Width; x++ {
			i := y*l.Width + x
			if i < len(l.Cells) && l.Cells[i] != Passable {
				g.SetObstacle(Point{X: x, Y: y}, Obstacle)
			}
		}
	}
}

// Layout is a bare occupancy table in row-major order.
type Layout struct {
	Width  int
	Height int
	Cells  []Cell
}

// Snapshot is an immutable copy of a grid, safe to hand to another goroutine.
type Snapshot struct {
	Layout
	StartP Point
	EndP   Point
}

func (s Snapshot) Dimensions() (int, int) { return s.Width, s.Height }
func (s Snapshot) Start() Point           { return s.StartP }
func (s Snapshot) End() Point             { return s.EndP }

func (s Snapshot) IsObstacle(p Point) bool {
	if p.X < 0 || p.Y < 0 || p.X >= s.Width || p.Y >= s.Height {
		return false
	}
	i := p.Y*s.Width + p.X
	return i < len(s.Cells) && s.Cells[i] == Obstacle
}
