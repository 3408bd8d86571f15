package session

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/pathpaint/common"
	"github.com/milk9111/pathpaint/grid"
	"github.com/milk9111/pathpaint/interact"
	"github.com/milk9111/pathpaint/pathfind"
	"github.com/milk9111/pathpaint/presets"
	"github.com/milk9111/pathpaint/render"
)

func newSession(t *testing.T, w, h int) (*Session, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	s := New(context.Background(), Config{
		Grid:   grid.New(w, h),
		Logger: common.NewLogger(&buf, log.DebugLevel),
	})
	return s, &buf
}

// cellPixel returns the viewport pixel at the center of p.
func cellPixel(s *Session, p grid.Point) (float64, float64) {
	return s.Layout().CellCenter(p)
}

func TestInitialPath(t *testing.T) {
	s, _ := newSession(t, 8, 1)
	require.Equal(t, pathfind.Path{{X: 0, Y: 0}, {X: 7, Y: 0}}, s.Path())
	assert.Equal(t, 1, s.Recomputes())
}

func TestPaintGestureRecomputes(t *testing.T) {
	s, _ := newSession(t, 5, 1)
	s.SetViewport(540, 140)

	s.PointerDown(cellPixel(s, grid.Point{X: 2, Y: 0}))
	assert.Equal(t, interact.Paint, s.Mode())
	assert.True(t, s.Grid().IsObstacle(grid.Point{X: 2, Y: 0}))
	assert.Empty(t, s.Path(), "wall across a 1-high grid")

	before := s.Recomputes()
	s.PointerMove(cellPixel(s, grid.Point{X: 2, Y: 0}))
	assert.Equal(t, before, s.Recomputes(), "no change, no recompute")

	s.PointerUp(0, 0)
	assert.Equal(t, interact.Idle, s.Mode())
}

func TestDragEndMarker(t *testing.T) {
	s, _ := newSession(t, 6, 6)
	s.SetViewport(400, 400)

	s.PointerDown(cellPixel(s, grid.Point{X: 5, Y: 5}))
	require.Equal(t, interact.MoveEnd, s.Mode())
	s.PointerMove(cellPixel(s, grid.Point{X: 3, Y: 0}))
	s.PointerUp(cellPixel(s, grid.Point{X: 3, Y: 0}))

	assert.Equal(t, grid.Point{X: 3, Y: 0}, s.Grid().End())
	path := s.Path()
	require.NotEmpty(t, path)
	assert.Equal(t, grid.Point{X: 3, Y: 0}, path[len(path)-1])
}

func TestPointerOutsideGridIgnored(t *testing.T) {
	s, _ := newSession(t, 4, 4)
	s.SetViewport(200, 200)
	s.PointerDown(1, 1)
	assert.Equal(t, interact.Idle, s.Mode())
	assert.Equal(t, 1, s.Recomputes())
}

func TestResizeDuringDragResets(t *testing.T) {
	s, _ := newSession(t, 10, 10)
	s.SetViewport(500, 500)

	s.PointerDown(cellPixel(s, grid.Point{X: 4, Y: 4}))
	s.PointerMove(cellPixel(s, grid.Point{X: 5, Y: 4}))
	require.Equal(t, interact.Paint, s.Mode())

	s.Resize(3, 2)
	assert.Equal(t, interact.Idle, s.Mode())
	w, h := s.Dimensions()
	assert.Equal(t, 3, w)
	assert.Equal(t, 2, h)
	assert.Equal(t, grid.Point{X: 0, Y: 0}, s.Grid().Start())
	assert.Equal(t, grid.Point{X: 2, Y: 1}, s.Grid().End())

	// The stale drag must not keep painting on the new grid.
	s.PointerMove(cellPixel(s, grid.Point{X: 1, Y: 0}))
	assert.False(t, s.Grid().IsObstacle(grid.Point{X: 1, Y: 0}))
}

func TestResizeText(t *testing.T) {
	s, _ := newSession(t, 10, 10)
	s.ResizeText("abc", "2000.7")
	w, h := s.Dimensions()
	assert.Equal(t, 1, w)
	assert.Equal(t, 1000, h)
}

func TestOptionToggles(t *testing.T) {
	s, _ := newSession(t, 5, 5)
	s.SetDiagonal(true)
	assert.True(t, s.Options().AllowDiagonal)
	assert.Equal(t, pathfind.Path{{X: 0, Y: 0}, {X: 4, Y: 4}}, s.Path())

	s.SetCornerCutting(true)
	assert.True(t, s.Options().PreventCornerCutting)
	assert.Equal(t, 3, s.Recomputes())
}

func TestViewportOnlyRedraws(t *testing.T) {
	s, _ := newSession(t, 5, 5)
	n := s.Recomputes()
	s.SetViewport(100, 100)
	s.SetViewport(800, 300)
	assert.Equal(t, n, s.Recomputes())

	rec := &render.Recorder{}
	s.Draw(rec)
	require.NotEmpty(t, rec.Ops)
	assert.Equal(t, 1, rec.Count("fill", s.Renderer().Palette.Start))
}

type failingOracle struct{}

func (failingOracle) Find(context.Context, pathfind.Request) (pathfind.Path, error) {
	return nil, errors.New("oracle exploded")
}

func TestOracleFailureDegrades(t *testing.T) {
	var buf bytes.Buffer
	s := New(context.Background(), Config{
		Client: pathfind.NewClient(failingOracle{}),
		Logger: common.NewLogger(&buf, log.InfoLevel),
	})
	assert.Empty(t, s.Path())
	assert.Equal(t, 1, s.Failures())
	assert.Contains(t, buf.String(), "oracle exploded")
}

func TestPresetAndPaste(t *testing.T) {
	s, _ := newSession(t, 3, 3)
	lib := presets.NewLibrary("")

	require.NoError(t, s.LoadPreset(lib, "corners"))
	assert.Equal(t, "corners", s.ActivePreset())
	assert.True(t, s.Options().AllowDiagonal)
	w, h := s.Dimensions()
	assert.Equal(t, 10, w)
	assert.Equal(t, 8, h)

	assert.ErrorIs(t, s.LoadPreset(lib, "nope"), presets.ErrUnknownPreset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tunnel.yaml"), []byte("name: Long Tunnel\nwidth: 4\nheight: 1\n"), 0o644))
	require.NoError(t, s.LoadPreset(presets.NewLibrary(dir), "tunnel"))
	assert.Equal(t, "tunnel", s.ActivePreset(), "file name, not the declared title")

	require.NoError(t, s.PasteMap("010\n010\n000\n"))
	assert.Equal(t, "", s.ActivePreset())
	assert.Equal(t, "010\n010\n000\n", s.ExportMap())

	err := s.PasteMap("hello")
	assert.ErrorIs(t, err, grid.ErrMalformedMap)
	assert.True(t, strings.HasPrefix(s.ExportMap(), "010"), "failed paste leaves the grid alone")
}

func TestAsyncLatestWins(t *testing.T) {
	s, _ := newSession(t, 8, 1)
	s.UseRecomputer(pathfind.NewRecomputer(pathfind.NewClient(pathfind.NewSearcher(0))))

	first, ok := s.TakeJob()
	require.True(t, ok)
	_, ok = s.TakeJob()
	require.False(t, ok, "a job is handed out once")

	s.PointerCell(interact.PointerDown, grid.Point{X: 4, Y: 0})
	s.PointerCell(interact.PointerUp, grid.Point{X: 4, Y: 0})
	second, ok := s.TakeJob()
	require.True(t, ok)

	if res, ok := first.Run(); ok {
		assert.False(t, s.Deliver(res))
	}
	res, ok := second.Run()
	require.True(t, ok)
	assert.True(t, s.Deliver(res))
	assert.Empty(t, s.Path(), "newest grid is walled off")
}
