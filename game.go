package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.design/x/clipboard"

	"github.com/milk9111/pathpaint/common"
	"github.com/milk9111/pathpaint/config"
	"github.com/milk9111/pathpaint/grid"
	"github.com/milk9111/pathpaint/pathfind"
	"github.com/milk9111/pathpaint/presets"
	"github.com/milk9111/pathpaint/render"
	"github.com/milk9111/pathpaint/session"
)

const panelWidth = 220

type Game struct {
	logger  *log.Logger
	session *session.Session
	library *presets.Library
	watcher *presets.Watcher

	ui       *ebitenui.UI
	controls *Controls
	input    *PointerInput

	clipboard bool
	screen    Rect
	panel     Rect
}

func NewGame(ctx context.Context, cfg config.Config, preset string) (*Game, error) {
	logger := common.LoggerFromContext(ctx)

	renderer, err := cfg.Renderer()
	if err != nil {
		return nil, err
	}
	s := session.New(ctx, session.Config{
		Grid:     grid.New(cfg.Width, cfg.Height),
		Client:   pathfind.NewClient(pathfind.NewSearcher(cfg.SearchBudget)),
		Renderer: renderer,
		Options:  cfg.Options(),
		Logger:   logger,
	})

	g := &Game{
		logger:  logger,
		session: s,
		library: presets.NewLibrary(cfg.PresetsDir),
		input:   NewPointerInput(),
	}

	if preset != "" {
		if err := s.LoadPreset(g.library, preset); err != nil {
			return nil, err
		}
	}

	if cfg.WatchPresets {
		w, err := presets.NewWatcher(cfg.PresetsDir)
		if err != nil {
			logger.Warn("preset watching disabled", "dir", cfg.PresetsDir, "err", err)
		} else {
			g.watcher = w
		}
	}

	if err := clipboard.Init(); err != nil {
		logger.Warn("clipboard unavailable", "err", err)
	} else {
		g.clipboard = true
	}

	names, err := g.library.Names()
	if err != nil {
		logger.Warn("listing presets failed", "err", err)
	}
	g.ui, g.controls, err = newControls(g, names)
	if err != nil {
		return nil, err
	}
	g.controls.Sync(s)
	return g, nil
}

func (g *Game) Close() error {
	if g.watcher != nil {
		return g.watcher.Close()
	}
	return nil
}

func (g *Game) Update() error {
	g.ui.Update()

	// Hotkeys are off while a text field has focus.
	typing := false
	if fw := g.ui.GetFocusedWidget(); fw != nil {
		_, typing = fw.(*widget.TextInput)
	}
	if !typing {
		if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
			return ebiten.Termination
		}
		g.handleKeys()
	}

	g.pollWatcher()

	layout := g.session.Layout()
	normalize := func(x, y float64) (float64, float64) {
		return layout.Normalize(x-panelWidth, y)
	}
	for _, ev := range g.input.Update(g.screen, g.panel, normalize) {
		g.session.Handle(ev)
	}
	return nil
}

func (g *Game) handleKeys() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	switch {
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.copyMap()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyV):
		g.pasteMap()
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		g.setDiagonal(!g.session.Options().AllowDiagonal)
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.setCornerCutting(!g.session.Options().PreventCornerCutting)
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.session.CancelGesture()
	}
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.logger.Debug("preset file changed", "preset", name)
			if names, err := g.library.Names(); err == nil {
				g.controls.SetPresets(names)
			}
			if name == g.session.ActivePreset() {
				g.loadPreset(name)
			}
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.logger.Warn("preset watcher", "err", err)
		default:
			return
		}
	}
}

func (g *Game) resize(width, height string) {
	g.session.ResizeText(width, height)
	g.controls.Sync(g.session)
}

func (g *Game) setDiagonal(on bool) {
	g.session.SetDiagonal(on)
	g.controls.Sync(g.session)
}

func (g *Game) setCornerCutting(prevent bool) {
	g.session.SetCornerCutting(prevent)
	g.controls.Sync(g.session)
}

func (g *Game) loadPreset(name string) {
	if err := g.session.LoadPreset(g.library, name); err != nil {
		g.logger.Error("preset load failed", "preset", name, "err", err)
		return
	}
	g.controls.Sync(g.session)
}

func (g *Game) copyMap() {
	if !g.clipboard {
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(g.session.ExportMap()))
	w, h := g.session.Dimensions()
	g.logger.Info("map copied", "width", w, "height", h)
}

func (g *Game) pasteMap() {
	if !g.clipboard {
		return
	}
	data := clipboard.Read(clipboard.FmtText)
	if err := g.session.PasteMap(string(data)); err != nil {
		if errors.Is(err, grid.ErrMalformedMap) {
			g.logger.Warn("clipboard does not hold a map", "err", err)
		} else {
			g.logger.Error("paste failed", "err", err)
		}
		return
	}
	g.controls.Sync(g.session)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.session.Draw(render.EbitenCanvas{Dst: screen, OffsetX: panelWidth})
	g.ui.Draw(screen)
	ebitenutil.DebugPrintAt(screen, g.status(), panelWidth+8, 4)
}

func (g *Game) status() string {
	w, h := g.session.Dimensions()
	return fmt.Sprintf("%dx%d  %s  waypoints: %d  FPS: %.0f", w, h, g.session.Mode(), len(g.session.Path()), ebiten.ActualFPS())
}

// LayoutF keeps the logical screen equal to the window, so a window resize
// only changes the viewport and the next Draw rescales the grid.
func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	g.screen = Rect{Width: outsideWidth, Height: outsideHeight}
	g.panel = Rect{Width: panelWidth, Height: outsideHeight}
	g.session.SetViewport(max(outsideWidth-panelWidth, 0), outsideHeight)
	return outsideWidth, outsideHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
