package presets

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/pathpaint/grid"
	"github.com/milk9111/pathpaint/pathfind"
)

func TestBuiltinNames(t *testing.T) {
	names, err := NewLibrary("").Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"corners", "maze", "rooms", "scatter", "wall"}, names)
}

func TestLoadYAML(t *testing.T) {
	p, err := NewLibrary("").Load(context.Background(), "wall", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "wall", p.Name)
	assert.Equal(t, 12, p.Layout.Width)
	assert.Equal(t, 8, p.Layout.Height)
	require.NotNil(t, p.Start)
	assert.Equal(t, grid.Point{X: 1, Y: 3}, *p.Start)
	assert.Equal(t, "builtin:wall.yaml", p.Origin)

	g := grid.New(1, 1)
	p.Apply(g)
	assert.Equal(t, grid.Point{X: 10, Y: 3}, g.End())
	assert.True(t, g.IsObstacle(grid.Point{X: 5, Y: 6}))
	assert.False(t, g.IsObstacle(grid.Point{X: 5, Y: 7}))
}

func TestLoadMapPreset(t *testing.T) {
	p, err := NewLibrary("").Load(context.Background(), "corners", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 10, p.Layout.Width)
	assert.Equal(t, 8, p.Layout.Height)
	require.NotNil(t, p.AllowDiagonal)
	assert.True(t, *p.AllowDiagonal)
}

func TestMazeScript(t *testing.T) {
	lib := NewLibrary("")
	p, err := lib.Load(context.Background(), "maze", 20, 16)
	require.NoError(t, err)
	assert.Equal(t, 19, p.Layout.Width)
	assert.Equal(t, 15, p.Layout.Height)
	require.NotNil(t, p.Start)
	require.NotNil(t, p.End)
	assert.Equal(t, grid.Point{X: 17, Y: 13}, *p.End)

	again, err := lib.Load(context.Background(), "maze", 20, 16)
	require.NoError(t, err)
	assert.Equal(t, p.Layout, again.Layout, "scripts are deterministic")

	g := grid.New(1, 1)
	p.Apply(g)
	assert.Equal(t, grid.Point{X: 1, Y: 1}, g.Start())
	path, err := pathfind.NewClient(pathfind.NewSearcher(0)).ComputePath(context.Background(), g.Snapshot(), pathfind.Options{})
	require.NoError(t, err)
	assert.NotEmpty(t, path, "every maze cell is reachable")
}

func TestScatterScript(t *testing.T) {
	p, err := NewLibrary("").Load(context.Background(), "scatter", 30, 10)
	require.NoError(t, err)
	assert.Equal(t, 30, p.Layout.Width)
	blocked := 0
	for _, c := range p.Layout.Cells {
		if c == grid.Obstacle {
			blocked++
		}
	}
	assert.Greater(t, blocked, 0)
	assert.Less(t, blocked, len(p.Layout.Cells))
}

func TestDiskShadowsBuiltin(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wall.yaml"), []byte("width: 3\nheight: 2\nobstacles: [[1, 0]]\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra.tengo"), []byte("obstacles := [[0, 1]]\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	lib := NewLibrary(dir)
	p, err := lib.Load(context.Background(), "wall", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Layout.Width)
	assert.Equal(t, filepath.Join(dir, "wall.yaml"), p.Origin)

	names, err := lib.Names()
	require.NoError(t, err)
	assert.Contains(t, names, "extra")
	assert.NotContains(t, names, "notes")

	p, err = lib.Load(context.Background(), "extra", 4, 4)
	require.NoError(t, err)
	assert.Equal(t, grid.Obstacle, p.Layout.Cells[4])
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	write("noobs.tengo", "x := 1\n")
	write("broken.tengo", "obstacles := [[\n")
	write("badpair.tengo", "obstacles := [[1, 2, 3]]\n")
	write("badyaml.yaml", "width: [\n")
	write("ragged.yaml", "map: |\n  00\n  000\n")

	lib := NewLibrary(dir)
	for _, name := range []string{"noobs", "broken", "badpair", "badyaml", "ragged"} {
		t.Run(name, func(t *testing.T) {
			_, err := lib.Load(context.Background(), name, 5, 5)
			assert.Error(t, err)
		})
	}

	_, err := lib.Load(context.Background(), "missing", 5, 5)
	assert.ErrorIs(t, err, ErrUnknownPreset)
	_, err = lib.Load(context.Background(), "../wall", 5, 5)
	assert.ErrorIs(t, err, ErrUnknownPreset)
}

func TestApplyFallsBackToCorners(t *testing.T) {
	p := Preset{
		Layout: grid.Layout{Width: 4, Height: 4, Cells: make([]grid.Cell, 16)},
		Start:  &grid.Point{X: 9, Y: 9},
	}
	p.Layout.Cells[0] = grid.Obstacle
	g := grid.New(2, 2)
	p.Apply(g)
	assert.Equal(t, grid.Point{X: 0, Y: 0}, g.Start())
	assert.Equal(t, grid.Point{X: 3, Y: 3}, g.End())
	assert.False(t, g.IsObstacle(grid.Point{X: 0, Y: 0}), "obstacle under an endpoint is dropped")
}

func TestNameOf(t *testing.T) {
	n, ok := NameOf("/tmp/x/maze.tengo")
	assert.True(t, ok)
	assert.Equal(t, "maze", n)
	_, ok = NameOf("readme.md")
	assert.False(t, ok)
}

func TestWatcherReportsChangedPreset(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "live.yaml"), []byte("width: 2\nheight: 2\n"), 0o644))

	select {
	case name := <-w.Events:
		assert.Equal(t, "live", name)
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no event")
	}
	require.NoError(t, w.Close())
}

func TestWatcherReportsBurstOnceAfterLastWrite(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	file := filepath.Join(dir, "burst.yaml")
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(file, []byte("width: 2\nheight: 2\n"), 0o644))
		time.Sleep(debounce / 5)
	}
	lastWrite := time.Now()

	select {
	case name := <-w.Events:
		assert.Equal(t, "burst", name)
		assert.GreaterOrEqual(t, time.Since(lastWrite), debounce/2, "reported before the writes settled")
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no event")
	}

	select {
	case name := <-w.Events:
		t.Fatalf("burst reported twice, second time as %q", name)
	case <-time.After(3 * debounce):
	}
}
