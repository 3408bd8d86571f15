// Package interact interprets pointer and touch gestures over the grid.
//
// A gesture starts on pointer-down, continues while the pointer moves with the
// button or finger held, and ends on release. What a gesture does is decided
// once, from the cell under the initial press:
//
//   - the end marker: the gesture drags the end marker
//   - the start marker: the gesture drags the start marker
//   - any other cell: the cell is toggled, and the gesture paints every cell it
//     crosses with the toggled value
//
// The end marker is tested before the start marker.
package interact

import (
	"math"

	"github.com/milk9111/pathpaint/grid"
)

type Mode int

const (
	Idle Mode = iota
	Paint
	MoveStart
	MoveEnd
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "Idle"
	case Paint:
		return "Paint"
	case MoveStart:
		return "MoveStart"
	case MoveEnd:
		return "MoveEnd"
	default:
		return "Unknown"
	}
}

// Model is the part of grid.Grid a gesture can touch.
type Model interface {
	Start() grid.Point
	End() grid.Point
	ToggleObstacle(p grid.Point) (grid.Cell, bool)
	SetObstacle(p grid.Point, v grid.Cell) bool
	MoveStart(p grid.Point) bool
	MoveEnd(p grid.Point) bool
}

type Machine struct {
	model Model
	mode  Mode
	paint grid.Cell
}

func NewMachine(model Model) *Machine {
	return &Machine{model: model}
}

func (m *Machine) Mode() Mode { return m.mode }

// PaintValue is the value a Paint gesture writes. Meaningless in other modes.
func (m *Machine) PaintValue() grid.Cell { return m.paint }

func (m *Machine) Active() bool { return m.mode != Idle }

// Begin starts a gesture on p and reports whether the model changed.
func (m *Machine) Begin(p grid.Point) bool {
	switch {
	case p == m.model.End():
		m.mode = MoveEnd
		return false
	case p == m.model.Start():
		m.mode = MoveStart
		return false
	}

	v, ok := m.model.ToggleObstacle(p)
	if !ok {
		m.mode = Idle
		return false
	}
	m.mode = Paint
	m.paint = v
	return true
}

// Continue applies the active gesture to p and reports whether the model changed.
func (m *Machine) Continue(p grid.Point) bool {
	switch m.mode {
	case MoveStart:
		return m.model.MoveStart(p)
	case MoveEnd:
		return m.model.MoveEnd(p)
	case Paint:
		if p == m.model.Start() || p == m.model.End() {
			return false
		}
		return m.model.SetObstacle(p, m.paint)
	default:
		return false
	}
}

// End finishes the gesture. It never mutates the model.
func (m *Machine) End() {
	m.mode = Idle
	m.paint = grid.Passable
}

// CellAt maps a position normalized to the grid's on-screen rectangle onto a
// cell. ok is false outside [0,1)x[0,1).
func CellAt(nx, ny float64, width, height int) (grid.Point, bool) {
	if !(nx >= 0 && nx < 1 && ny >= 0 && ny < 1) {
		return grid.Point{}, false
	}
	x := int(math.Floor(nx * float64(width)))
	y := int(math.Floor(ny * float64(height)))
	if x >= width {
		x = width - 1
	}
	if y >= height {
		y = height - 1
	}
	return grid.Point{X: x, Y: y}, true
}
