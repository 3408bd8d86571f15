package interact

type EventKind int

const (
	PointerDown EventKind = iota
	PointerMove
	PointerUp
)

func (k EventKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	default:
		return "unknown"
	}
}

// Event is one pointer or touch sample. X and Y are normalized to the grid's
// on-screen rectangle. Leaving the window and touch-end arrive as PointerUp.
type Event struct {
	Kind EventKind
	X    float64
	Y    float64
}

// Handle feeds one event through the machine for a width x height grid and
// reports whether the model changed. Down and move events outside the grid
// are dropped without a transition.
func (m *Machine) Handle(ev Event, width, height int) bool {
	if ev.Kind == PointerUp {
		m.End()
		return false
	}
	p, ok := CellAt(ev.X, ev.Y, width, height)
	if !ok {
		return false
	}
	if ev.Kind == PointerDown {
		return m.Begin(p)
	}
	return m.Continue(p)
}

// Tracker turns per-frame polled pointer state into events. Frame-based input
// (ebiten) reports "is the button held" plus a just-pressed edge; the tracker
// starts a gesture only on that edge, derives move and up from consecutive
// samples and drops moves that stay inside the same position. A button that
// is merely held, for example after a press elsewhere or when the cursor
// comes back into the window, never starts a gesture.
type Tracker struct {
	down  bool
	lastX float64
	lastY float64
}

// Sample records this frame's state and returns the events it implies.
// pressed is true only on the frame the press happened.
func (t *Tracker) Sample(pressed, held bool, x, y float64) []Event {
	switch {
	case !t.down && pressed && held:
		t.down = true
		t.lastX, t.lastY = x, y
		return []Event{{Kind: PointerDown, X: x, Y: y}}
	case t.down && held:
		if x == t.lastX && y == t.lastY {
			return nil
		}
		t.lastX, t.lastY = x, y
		return []Event{{Kind: PointerMove, X: x, Y: y}}
	case t.down && !held:
		t.down = false
		return []Event{{Kind: PointerUp, X: t.lastX, Y: t.lastY}}
	}
	return nil
}

func (t *Tracker) Down() bool { return t.down }
