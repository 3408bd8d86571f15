// Package pathfind is the boundary to the shortest-path oracle.
//
// A Client turns a grid snapshot plus movement options into a Request, checks
// it, hands it to an Oracle and checks the answer. The oracle is replaceable;
// Searcher is the one bundled with the app.
package pathfind

import (
	"context"
	"errors"
	"fmt"

	"github.com/milk9111/pathpaint/grid"
)

var (
	ErrInvalidRequest = errors.New("pathfind: invalid request")
	ErrInvalidPath    = errors.New("pathfind: oracle returned an invalid path")
	ErrBudgetExceeded = errors.New("pathfind: search budget exceeded")
)

// Path is an ordered list of waypoints from start to end inclusive.
// Consecutive waypoints are not necessarily adjacent cells.
type Path []grid.Point

// Options are the movement rules sent with every request.
type Options struct {
	AllowDiagonal        bool
	PreventCornerCutting bool
}

// Request is everything the oracle sees. Cells is row-major, one entry per cell.
type Request struct {
	Cells  []grid.Cell
	Width  int
	Height int
	Start  grid.Point
	End    grid.Point
	Options
}

// NewRequest builds a request from a snapshot. The snapshot's cells are shared,
// not copied; snapshots are never mutated after creation.
func NewRequest(snap grid.Snapshot, opts Options) Request {
	return Request{
		Cells:   snap.Cells,
		Width:   snap.Width,
		Height:  snap.Height,
		Start:   snap.StartP,
		End:     snap.EndP,
		Options: opts,
	}
}

func (r Request) inBounds(p grid.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < r.Width && p.Y < r.Height
}

func (r Request) blocked(x, y int) bool {
	return r.Cells[y*r.Width+x] != grid.Passable
}

// Validate reports malformed input as ErrInvalidRequest.
func (r Request) Validate() error {
	if r.Width < grid.MinSize || r.Height < grid.MinSize {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidRequest, r.Width, r.Height)
	}
	if len(r.Cells) != r.Width*r.Height {
		return fmt.Errorf("%w: %d cells for %dx%d grid", ErrInvalidRequest, len(r.Cells), r.Width, r.Height)
	}
	if !r.inBounds(r.Start) {
		return fmt.Errorf("%w: start %v out of bounds", ErrInvalidRequest, r.Start)
	}
	if !r.inBounds(r.End) {
		return fmt.Errorf("%w: end %v out of bounds", ErrInvalidRequest, r.End)
	}
	for i, c := range r.Cells {
		if c != grid.Passable && c != grid.Obstacle {
			return fmt.Errorf("%w: cell %d has value %d", ErrInvalidRequest, i, c)
		}
	}
	return nil
}

// Oracle answers one request. It must not keep state between calls.
type Oracle interface {
	Find(ctx context.Context, req Request) (Path, error)
}

type Client struct {
	oracle Oracle
}

func NewClient(oracle Oracle) *Client {
	return &Client{oracle: oracle}
}

// ComputePath asks the oracle for a path over snap. An empty path with a nil
// error means no path exists.
func (c *Client) ComputePath(ctx context.Context, snap grid.Snapshot, opts Options) (Path, error) {
	req := NewRequest(snap, opts)
	if err := req.Validate(); err != nil {
		return nil, err
	}
	path, err := c.oracle.Find(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := checkPath(req, path); err != nil {
		return nil, err
	}
	return path, nil
}

func checkPath(req Request, path Path) error {
	if len(path) == 0 {
		return nil
	}
	if path[0] != req.Start || path[len(path)-1] != req.End {
		return fmt.Errorf("%w: runs %v..%v, want %v..%v", ErrInvalidPath, path[0], path[len(path)-1], req.Start, req.End)
	}
	for _, p := range path {
		if !req.inBounds(p) {
			return fmt.Errorf("%w: waypoint %v out of bounds", ErrInvalidPath, p)
		}
	}
	return nil
}
