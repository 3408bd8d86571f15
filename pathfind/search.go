package pathfind

import (
	"container/heap"
	"context"
	"fmt"

	"github.com/milk9111/pathpaint/grid"
)

const (
	costStraight = 10
	costDiagonal = 14

	cancelCheckInterval = 256
)

// Searcher is the bundled oracle: A* over the occupancy grid, reduced to the
// waypoints where the direction changes.
type Searcher struct {
	// MaxExpansions bounds the number of expanded cells. Zero means unbounded.
	MaxExpansions int
}

func NewSearcher(maxExpansions int) *Searcher {
	return &Searcher{MaxExpansions: maxExpansions}
}

type step struct {
	dx       int
	dy       int
	diagonal bool
}

var (
	straightSteps = []step{{1, 0, false}, {-1, 0, false}, {0, 1, false}, {0, -1, false}}
	diagonalSteps = []step{{1, 1, true}, {-1, 1, true}, {-1, -1, true}, {1, -1, true}}
)

func (s *Searcher) Find(ctx context.Context, req Request) (Path, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Start == req.End {
		return Path{req.Start}, nil
	}
	if req.blocked(req.Start.X, req.Start.Y) || req.blocked(req.End.X, req.End.Y) {
		return nil, nil
	}

	steps := straightSteps
	if req.AllowDiagonal {
		steps = append(append([]step{}, straightSteps...), diagonalSteps...)
	}

	w := req.Width
	n := w * req.Height
	cameFrom := make([]int32, n)
	for i := range cameFrom {
		cameFrom[i] = -1
	}
	gScore := make([]int, n)
	for i := range gScore {
		gScore[i] = -1
	}
	closed := make([]bool, n)

	startIdx := req.Start.Y*w + req.Start.X
	goalIdx := req.End.Y*w + req.End.X
	gScore[startIdx] = 0

	open := &openSet{}
	heap.Init(open)
	var seq uint64
	h0 := heuristic(req.Start, req.End, req.AllowDiagonal)
	heap.Push(open, &openItem{idx: startIdx, f: h0, h: h0, seq: seq})

	expansions := 0
	for open.Len() > 0 {
		current := heap.Pop(open).(*openItem)
		cur := current.idx
		if closed[cur] {
			continue
		}
		closed[cur] = true

		if cur == goalIdx {
			return waypoints(reconstructPath(cameFrom, w, startIdx, goalIdx)), nil
		}

		expansions++
		if expansions%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if s.MaxExpansions > 0 && expansions > s.MaxExpansions {
			return nil, fmt.Errorf("%w after %d cells", ErrBudgetExceeded, s.MaxExpansions)
		}

		cx, cy := cur%w, cur/w
		for _, st := range steps {
			nx, ny := cx+st.dx, cy+st.dy
			if nx < 0 || ny < 0 || nx >= w || ny >= req.Height {
				continue
			}
			if req.blocked(nx, ny) {
				continue
			}
			cost := costStraight
			if st.diagonal {
				if !diagonalAllowed(req, cx, cy, st) {
					continue
				}
				cost = costDiagonal
			}
			idx := ny*w + nx
			if closed[idx] {
				continue
			}
			tentative := gScore[cur] + cost
			if gScore[idx] >= 0 && tentative >= gScore[idx] {
				continue
			}
			cameFrom[idx] = int32(cur)
			gScore[idx] = tentative
			h := heuristic(grid.Point{X: nx, Y: ny}, req.End, req.AllowDiagonal)
			seq++
			heap.Push(open, &openItem{idx: idx, f: tentative + h, h: h, seq: seq})
		}
	}

	return nil, nil
}

// diagonalAllowed applies the corner-cutting rule. With prevention on, at
// least one of the two orthogonal cells the step squeezes between must be
// passable.
func diagonalAllowed(req Request, x, y int, st step) bool {
	if !req.PreventCornerCutting {
		return true
	}
	return !req.blocked(x+st.dx, y) || !req.blocked(x, y+st.dy)
}

func heuristic(a, b grid.Point, diagonal bool) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	if !diagonal {
		return costStraight * (dx + dy)
	}
	lo, hi := dx, dy
	if lo > hi {
		lo, hi = hi, lo
	}
	return costDiagonal*lo + costStraight*(hi-lo)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func reconstructPath(cameFrom []int32, w, startIdx, goalIdx int) Path {
	path := make(Path, 0, 32)
	cur := goalIdx
	for cur != -1 {
		path = append(path, grid.Point{X: cur % w, Y: cur / w})
		if cur == startIdx {
			break
		}
		cur = int(cameFrom[cur])
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// waypoints drops every cell that continues in the direction of the previous
// step, keeping start, end and turning points.
func waypoints(cells Path) Path {
	if len(cells) <= 2 {
		return cells
	}
	out := Path{cells[0]}
	for i := 1; i < len(cells)-1; i++ {
		inX, inY := cells[i].X-cells[i-1].X, cells[i].Y-cells[i-1].Y
		outX, outY := cells[i+1].X-cells[i].X, cells[i+1].Y-cells[i].Y
		if inX != outX || inY != outY {
			out = append(out, cells[i])
		}
	}
	return append(out, cells[len(cells)-1])
}

type openItem struct {
	idx   int
	f     int
	h     int
	seq   uint64
	index int
}

type openSet []*openItem

func (o openSet) Len() int { return len(o) }
func (o openSet) Less(i, j int) bool {
	if o[i].f != o[j].f {
		return o[i].f < o[j].f
	}
	if o[i].h != o[j].h {
		return o[i].h < o[j].h
	}
	return o[i].seq < o[j].seq
}
func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}
func (o *openSet) Push(x any) {
	item := x.(*openItem)
	item.index = len(*o)
	*o = append(*o, item)
}
func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*o = old[:n-1]
	return item
}
