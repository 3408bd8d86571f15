package render

import (
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EbitenCanvas draws onto an ebiten image, usually the screen. Offset shifts
// every shape, so a viewport can sit beside other UI.
type EbitenCanvas struct {
	Dst     *ebiten.Image
	OffsetX float64
	OffsetY float64
}

func (e EbitenCanvas) Clear(c color.Color) {
	e.Dst.Fill(c)
}

func (e EbitenCanvas) FillRect(x, y, w, h float64, c color.Color) {
	vector.DrawFilledRect(e.Dst, float32(x+e.OffsetX), float32(y+e.OffsetY), float32(w), float32(h), c, false)
}

func (e EbitenCanvas) StrokeRect(x, y, w, h, width float64, c color.Color) {
	vector.StrokeRect(e.Dst, float32(x+e.OffsetX), float32(y+e.OffsetY), float32(w), float32(h), float32(width), c, false)
}

func (e EbitenCanvas) StrokeLine(x0, y0, x1, y1, width float64, c color.Color) {
	vector.StrokeLine(e.Dst, float32(x0+e.OffsetX), float32(y0+e.OffsetY), float32(x1+e.OffsetX), float32(y1+e.OffsetY), float32(width), c, true)
}

// RasterCanvas draws into an in-memory image. It needs no display, so the CLI
// and tests render through it.
type RasterCanvas struct {
	dc *gg.Context
}

func NewRasterCanvas(width, height int) *RasterCanvas {
	return &RasterCanvas{dc: gg.NewContext(max(width, 1), max(height, 1))}
}

func (r *RasterCanvas) Clear(c color.Color) {
	r.dc.SetColor(c)
	r.dc.Clear()
}

func (r *RasterCanvas) FillRect(x, y, w, h float64, c color.Color) {
	r.dc.SetColor(c)
	r.dc.DrawRectangle(x, y, w, h)
	r.dc.Fill()
}

func (r *RasterCanvas) StrokeRect(x, y, w, h, width float64, c color.Color) {
	r.dc.SetColor(c)
	r.dc.SetLineWidth(width)
	r.dc.DrawRectangle(x, y, w, h)
	r.dc.Stroke()
}

func (r *RasterCanvas) StrokeLine(x0, y0, x1, y1, width float64, c color.Color) {
	r.dc.SetColor(c)
	r.dc.SetLineWidth(width)
	r.dc.SetLineCap(gg.LineCapButt)
	r.dc.DrawLine(x0, y0, x1, y1)
	r.dc.Stroke()
}

func (r *RasterCanvas) Image() image.Image {
	return r.dc.Image()
}

func (r *RasterCanvas) EncodePNG(w io.Writer) error {
	return r.dc.EncodePNG(w)
}

// Op is one recorded drawing call.
type Op struct {
	Kind  string
	X, Y  float64
	W, H  float64
	Width float64
	Color color.Color
}

// Recorder is a Canvas that remembers what was drawn.
type Recorder struct {
	Ops []Op
}

func (r *Recorder) Clear(c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: "clear", Color: c})
}

func (r *Recorder) FillRect(x, y, w, h float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: "fill", X: x, Y: y, W: w, H: h, Color: c})
}

func (r *Recorder) StrokeRect(x, y, w, h, width float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: "rect", X: x, Y: y, W: w, H: h, Width: width, Color: c})
}

// StrokeLine stores the end point as W, H.
func (r *Recorder) StrokeLine(x0, y0, x1, y1, width float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: "line", X: x0, Y: y0, W: x1, H: y1, Width: width, Color: c})
}

// Count returns the number of recorded ops of kind drawn in color c.
func (r *Recorder) Count(kind string, c color.Color) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind && op.Color == c {
			n++
		}
	}
	return n
}

func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}
