// Package session owns one editing session: the grid, the gesture state
// machine, the current path and the viewport. Every change runs the same
// pipeline: mutate the grid, recompute the path, redraw.
package session

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/milk9111/pathpaint/common"
	"github.com/milk9111/pathpaint/grid"
	"github.com/milk9111/pathpaint/interact"
	"github.com/milk9111/pathpaint/pathfind"
	"github.com/milk9111/pathpaint/presets"
	"github.com/milk9111/pathpaint/render"
)

type Config struct {
	Grid     *grid.Grid
	Client   *pathfind.Client
	Renderer *render.Renderer
	Options  pathfind.Options
	Logger   *log.Logger
}

type Session struct {
	ctx      context.Context
	grid     *grid.Grid
	machine  *interact.Machine
	client   *pathfind.Client
	renderer *render.Renderer
	opts     pathfind.Options
	logger   *log.Logger

	path  pathfind.Path
	viewW float64
	viewH float64

	// async is set when recomputation runs off the event thread.
	async   *pathfind.Recomputer
	pending *pathfind.Job

	preset     string
	recomputes int
	failures   int
}

func New(ctx context.Context, cfg Config) *Session {
	if cfg.Grid == nil {
		cfg.Grid = grid.New(20, 20)
	}
	if cfg.Client == nil {
		cfg.Client = pathfind.NewClient(pathfind.NewSearcher(0))
	}
	if cfg.Renderer == nil {
		cfg.Renderer = render.NewRenderer()
	}
	if cfg.Logger == nil {
		cfg.Logger = common.LoggerFromContext(ctx)
	}
	s := &Session{
		ctx:      ctx,
		grid:     cfg.Grid,
		machine:  interact.NewMachine(cfg.Grid),
		client:   cfg.Client,
		renderer: cfg.Renderer,
		opts:     cfg.Options,
		logger:   cfg.Logger,
	}
	s.recompute()
	return s
}

// UseRecomputer moves path computation off the caller. Mutations then queue a
// job, see TakeJob and Deliver.
func (s *Session) UseRecomputer(r *pathfind.Recomputer) {
	s.async = r
	s.recompute()
}

func (s *Session) Grid() grid.Source          { return s.grid }
func (s *Session) Path() pathfind.Path        { return s.path }
func (s *Session) Options() pathfind.Options  { return s.opts }
func (s *Session) Mode() interact.Mode        { return s.machine.Mode() }
func (s *Session) Renderer() *render.Renderer { return s.renderer }
func (s *Session) ActivePreset() string       { return s.preset }
func (s *Session) Recomputes() int            { return s.recomputes }
func (s *Session) Failures() int              { return s.failures }
func (s *Session) Dimensions() (int, int)     { return s.grid.Dimensions() }
func (s *Session) Snapshot() grid.Snapshot    { return s.grid.Snapshot() }

func (s *Session) recompute() {
	s.recomputes++
	snap := s.grid.Snapshot()
	if s.async != nil {
		job := s.async.Request(s.ctx, snap, s.opts)
		s.pending = &job
		return
	}

	sw := common.StartStopwatch(s.logger)
	path, err := s.client.ComputePath(s.ctx, snap, s.opts)
	s.accept(path, err)
	sw.Done("path recomputed", "waypoints", len(s.path))
}

func (s *Session) accept(path pathfind.Path, err error) {
	if err != nil {
		s.failures++
		s.logger.Warn("path computation failed, showing no path", "err", err)
		path = nil
	}
	s.path = path
}

// TakeJob hands out the job queued by the last mutation, once.
func (s *Session) TakeJob() (pathfind.Job, bool) {
	if s.pending == nil {
		return pathfind.Job{}, false
	}
	job := *s.pending
	s.pending = nil
	return job, true
}

// Deliver applies an asynchronous result. Results for superseded jobs are
// dropped and Deliver reports false.
func (s *Session) Deliver(res pathfind.Result) bool {
	if s.async == nil || !s.async.Current(res.Seq) {
		return false
	}
	s.accept(res.Path, res.Err)
	return true
}

// Handle feeds one normalized pointer event through the gesture machine.
func (s *Session) Handle(ev interact.Event) {
	w, h := s.grid.Dimensions()
	if s.machine.Handle(ev, w, h) {
		s.recompute()
	}
}

// Pointer feeds a pointer event at a viewport pixel position.
func (s *Session) Pointer(kind interact.EventKind, px, py float64) {
	nx, ny := s.Layout().Normalize(px, py)
	s.Handle(interact.Event{Kind: kind, X: nx, Y: ny})
}

func (s *Session) PointerDown(px, py float64) { s.Pointer(interact.PointerDown, px, py) }
func (s *Session) PointerMove(px, py float64) { s.Pointer(interact.PointerMove, px, py) }
func (s *Session) PointerUp(px, py float64)   { s.Pointer(interact.PointerUp, px, py) }

// PointerCell drives the machine with a cell position directly, for front-ends
// that already work in cells.
func (s *Session) PointerCell(kind interact.EventKind, p grid.Point) {
	w, h := s.grid.Dimensions()
	s.Handle(interact.Event{
		Kind: kind,
		X:    (float64(p.X) + 0.5) / float64(w),
		Y:    (float64(p.Y) + 0.5) / float64(h),
	})
}

// CancelGesture drops any gesture in progress. Control changes call it first so
// a drag never survives a change of grid or options.
func (s *Session) CancelGesture() {
	if s.machine.Active() {
		s.logger.Debug("gesture reset", "mode", s.machine.Mode())
	}
	s.machine.End()
}

// Resize clamps the requested size, empties the grid and resets the endpoints
// to the corners.
func (s *Session) Resize(width, height float64) {
	s.CancelGesture()
	w, h := s.grid.Resize(width, height)
	s.preset = ""
	s.logger.Debug("grid resized", "width", w, "height", h)
	s.recompute()
}

// ResizeText is Resize for raw text field contents.
func (s *Session) ResizeText(width, height string) {
	s.Resize(float64(grid.ParseDimension(width)), float64(grid.ParseDimension(height)))
}

func (s *Session) SetDiagonal(on bool) {
	s.CancelGesture()
	s.opts.AllowDiagonal = on
	s.recompute()
}

func (s *Session) SetCornerCutting(prevent bool) {
	s.CancelGesture()
	s.opts.PreventCornerCutting = prevent
	s.recompute()
}

// LoadPreset loads name from lib, sized like the current grid, and applies it.
// ActivePreset then reports name, the file the preset came from, whatever
// display name the file declares.
func (s *Session) LoadPreset(lib *presets.Library, name string) error {
	w, h := s.grid.Dimensions()
	p, err := lib.Load(s.ctx, name, w, h)
	if err != nil {
		return err
	}
	s.CancelGesture()
	p.Apply(s.grid)
	if p.AllowDiagonal != nil {
		s.opts.AllowDiagonal = *p.AllowDiagonal
	}
	s.preset = name
	w, h = s.grid.Dimensions()
	s.logger.Info("preset applied", "preset", name, "title", p.Name, "origin", p.Origin, "width", w, "height", h)
	s.recompute()
	return nil
}

// PasteMap replaces the grid with an ASCII map.
func (s *Session) PasteMap(text string) error {
	l, err := grid.DecodeMap(text)
	if err != nil {
		return fmt.Errorf("session: paste: %w", err)
	}
	s.CancelGesture()
	s.grid.ApplyLayout(l)
	s.preset = ""
	s.recompute()
	return nil
}

func (s *Session) ExportMap() string {
	return grid.EncodeMap(s.grid)
}

// SetViewport records the drawing area. It only affects drawing.
func (s *Session) SetViewport(width, height float64) {
	s.viewW, s.viewH = width, height
}

func (s *Session) Layout() render.Layout {
	return s.renderer.Fit(s.viewW, s.viewH, s.grid)
}

func (s *Session) Draw(c render.Canvas) {
	s.renderer.Draw(c, s.grid, s.path, s.Layout())
}
