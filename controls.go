package main

import (
	"bytes"
	"fmt"
	"image/color"
	"strconv"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/milk9111/pathpaint/session"
)

// solidNineSlice returns a solid color *image.NineSlice for widget backgrounds.
func solidNineSlice(c color.Color) *image.NineSlice {
	return image.NewNineSliceColor(c)
}

var (
	labelColor = &widget.LabelColor{Idle: color.White, Disabled: color.Gray{Y: 140}}
	buttonImg  = &widget.ButtonImage{
		Idle:    solidNineSlice(color.RGBA{180, 180, 180, 255}),
		Hover:   solidNineSlice(color.RGBA{200, 200, 200, 255}),
		Pressed: solidNineSlice(color.RGBA{160, 160, 160, 255}),
	}
	buttonTextColor = &widget.ButtonTextColor{
		Idle:     color.Black,
		Hover:    color.Black,
		Pressed:  color.RGBA{0, 0, 200, 255},
		Disabled: color.Gray{Y: 128},
	}
)

// Controls is the left-hand panel: grid size, movement options, presets and
// clipboard.
type Controls struct {
	face *text.Face

	widthInput  *widget.TextInput
	heightInput *widget.TextInput
	diagonalBtn *widget.Button
	cornerBtn   *widget.Button
	presetBox   *widget.Container
	onPreset    func(name string)
}

func newControls(g *Game, presetNames []string) (*ebitenui.UI, *Controls, error) {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, nil, fmt.Errorf("controls: load font: %w", err)
	}
	var face text.Face = &text.GoTextFace{Source: s, Size: 14}

	c := &Controls{face: &face, onPreset: g.loadPreset}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{40, 40, 40, 255})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(widget.Insets{Top: 12, Bottom: 12, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(panelWidth, 0),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
				StretchVertical:    true,
			}),
		),
	)

	submitSize := func(*widget.TextInputChangedEventArgs) {
		g.resize(c.widthInput.GetText(), c.heightInput.GetText())
	}
	panel.AddChild(c.label("Width"))
	c.widthInput = c.numberInput(submitSize)
	panel.AddChild(c.widthInput)
	panel.AddChild(c.label("Height"))
	c.heightInput = c.numberInput(submitSize)
	panel.AddChild(c.heightInput)
	panel.AddChild(c.button("Resize", func() {
		g.resize(c.widthInput.GetText(), c.heightInput.GetText())
	}))

	panel.AddChild(c.label("Movement"))
	c.diagonalBtn = c.button("Diagonal: Off", func() {
		g.setDiagonal(!g.session.Options().AllowDiagonal)
	})
	panel.AddChild(c.diagonalBtn)
	c.cornerBtn = c.button("Corner cutting: Off", func() {
		g.setCornerCutting(!g.session.Options().PreventCornerCutting)
	})
	panel.AddChild(c.cornerBtn)

	if g.clipboard {
		panel.AddChild(c.label("Map"))
		panel.AddChild(c.button("Copy", g.copyMap))
		panel.AddChild(c.button("Paste", g.pasteMap))
	}

	panel.AddChild(c.label("Presets"))
	c.presetBox = widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(4),
		)),
	)
	panel.AddChild(c.presetBox)
	c.SetPresets(presetNames)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}, c, nil
}

func (c *Controls) label(s string) *widget.Label {
	return widget.NewLabel(widget.LabelOpts.Text(s, *c.face, labelColor))
}

func (c *Controls) button(label string, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(buttonImg),
		widget.ButtonOpts.Text(label, *c.face, buttonTextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(panelWidth-24, 28)),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

func (c *Controls) numberInput(onSubmit func(*widget.TextInputChangedEventArgs)) *widget.TextInput {
	return widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(widget.WidgetOpts.MinSize(panelWidth-24, 28)),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     solidNineSlice(color.RGBA{245, 245, 245, 255}),
			Disabled: solidNineSlice(color.RGBA{200, 200, 200, 255}),
		}),
		widget.TextInputOpts.Color(&widget.TextInputColor{
			Idle:     color.Black,
			Disabled: color.Gray{Y: 120},
			Caret:    color.Black,
		}),
		widget.TextInputOpts.Face(*c.face),
		widget.TextInputOpts.SubmitOnEnter(true),
		widget.TextInputOpts.SubmitHandler(onSubmit),
	)
}

// SetPresets rebuilds the preset buttons.
func (c *Controls) SetPresets(names []string) {
	c.presetBox.RemoveChildren()
	for _, name := range names {
		c.presetBox.AddChild(c.button(name, func() { c.onPreset(name) }))
	}
}

// Sync shows the session's current size and options. Sizes are shown after
// clamping, so an out-of-range entry snaps to what was applied.
func (c *Controls) Sync(s *session.Session) {
	w, h := s.Dimensions()
	c.widthInput.SetText(strconv.Itoa(w))
	c.heightInput.SetText(strconv.Itoa(h))

	opts := s.Options()
	setLabel(c.diagonalBtn, "Diagonal", opts.AllowDiagonal)
	// The button names the behavior, so "on" means corners may be cut.
	setLabel(c.cornerBtn, "Corner cutting", !opts.PreventCornerCutting)
	c.cornerBtn.GetWidget().Disabled = !opts.AllowDiagonal
}

func setLabel(btn *widget.Button, name string, on bool) {
	state := "Off"
	if on {
		state = "On"
	}
	if t := btn.Text(); t != nil {
		t.Label = name + ": " + state
	}
}
