package render

import (
	"bytes"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/milk9111/pathpaint/grid"
	"github.com/milk9111/pathpaint/pathfind"
)

func TestFit(t *testing.T) {
	tests := []struct {
		name         string
		vw, vh       float64
		cols, rows   int
		wantCell     float64
		wantX, wantY float64
	}{
		{name: "width bound", vw: 340, vh: 1000, cols: 10, rows: 10, wantCell: 30, wantX: 20, wantY: 350},
		{name: "height bound", vw: 1000, vh: 140, cols: 4, rows: 2, wantCell: 50, wantX: 400, wantY: 20},
		{name: "too small", vw: 20, vh: 20, cols: 4, rows: 4, wantCell: 0, wantX: 10, wantY: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Fit(tt.vw, tt.vh, tt.cols, tt.rows, 40)
			if l.CellSize != tt.wantCell || l.OriginX != tt.wantX || l.OriginY != tt.wantY {
				t.Fatalf("Fit = %+v, want cell %v origin (%v,%v)", l, tt.wantCell, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	l := Layout{OriginX: 10, OriginY: 20, CellSize: 5, Columns: 4, Rows: 2}
	nx, ny := l.Normalize(20, 25)
	if nx != 0.5 || ny != 0.5 {
		t.Fatalf("Normalize = %v,%v", nx, ny)
	}
	nx, _ = l.Normalize(5, 25)
	if nx >= 0 {
		t.Fatalf("left of grid normalized inside: %v", nx)
	}
	nx, ny = Layout{Columns: 3, Rows: 3}.Normalize(0, 0)
	if nx >= 0 || ny >= 0 {
		t.Fatalf("degenerate layout normalized inside: %v,%v", nx, ny)
	}
}

func TestDrawLayerOrder(t *testing.T) {
	g := grid.New(4, 3)
	g.SetObstacle(grid.Point{X: 2, Y: 0}, grid.Obstacle)
	g.SetObstacle(grid.Point{X: 2, Y: 1}, grid.Obstacle)
	path := pathfind.Path{{X: 0, Y: 0}, {X: 1, Y: 2}, {X: 3, Y: 2}}

	r := NewRenderer()
	rec := &Recorder{}
	r.Draw(rec, g, path, r.Native(g))

	pal := r.Palette
	var kinds []string
	for _, op := range rec.Ops {
		switch {
		case op.Kind == "clear":
			kinds = append(kinds, "clear")
		case op.Kind == "rect":
			kinds = append(kinds, "border")
		case op.Kind == "line":
			kinds = append(kinds, "stroke")
		case op.Color == pal.Obstacle:
			kinds = append(kinds, "obstacle")
		case op.Color == pal.Path:
			kinds = append(kinds, "path")
		case op.Color == pal.Start:
			kinds = append(kinds, "start")
		case op.Color == pal.End:
			kinds = append(kinds, "end")
		}
	}
	want := []string{"clear", "border", "obstacle", "obstacle", "path", "path", "path", "start", "end", "stroke", "stroke"}
	if len(kinds) != len(want) {
		t.Fatalf("ops = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("ops = %v, want %v", kinds, want)
		}
	}

	last := rec.Ops[len(rec.Ops)-1]
	if last.X != 45 || last.Y != 75 || last.W != 105 || last.H != 75 || last.Width != 3 {
		t.Fatalf("last stroke = %+v", last)
	}
}

func TestDrawFillTraversed(t *testing.T) {
	g := grid.New(6, 1)
	path := pathfind.Path{{X: 0, Y: 0}, {X: 5, Y: 0}}

	r := NewRenderer()
	rec := &Recorder{}
	r.Draw(rec, g, path, r.Native(g))
	if n := rec.Count("fill", r.Palette.Path); n != 2 {
		t.Fatalf("waypoint fills = %d, want 2", n)
	}

	r.FillTraversed = true
	rec.Reset()
	r.Draw(rec, g, path, r.Native(g))
	if n := rec.Count("fill", r.Palette.Path); n != 6 {
		t.Fatalf("traversed fills = %d, want 6", n)
	}
}

func TestStrokeWidthScales(t *testing.T) {
	g := grid.New(2, 1)
	r := NewRenderer()
	rec := &Recorder{}
	l := Layout{CellSize: 60, Columns: 2, Rows: 1}
	r.Draw(rec, g, pathfind.Path{{X: 0, Y: 0}, {X: 1, Y: 0}}, l)
	last := rec.Ops[len(rec.Ops)-1]
	if math.Abs(last.Width-6) > 1e-9 {
		t.Fatalf("stroke width = %v, want 6", last.Width)
	}
}

func TestRasterCanvasPixels(t *testing.T) {
	g := grid.New(3, 1)
	g.SetObstacle(grid.Point{X: 1, Y: 0}, grid.Obstacle)
	r := NewRenderer()
	l := r.Native(g)
	w, h := l.Size()

	c := NewRasterCanvas(int(w), int(h))
	r.Draw(c, g, nil, l)
	img := c.Image()

	check := func(x, y int, want color.RGBA) {
		t.Helper()
		got := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
		if got != want {
			t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
		}
	}
	check(15, 15, r.Palette.Start)
	check(45, 15, r.Palette.Obstacle)
	check(75, 15, r.Palette.End)

	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestPalette(t *testing.T) {
	p, err := HexPalette{Path: "#102030"}.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if p.Path != (color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}) {
		t.Fatalf("path = %v", p.Path)
	}
	if up, err := ParseHexColor("#D0d000"); err != nil || up != DefaultPalette().Path {
		t.Fatalf("ParseHexColor(#D0d000) = %v, %v", up, err)
	}
	if p.Obstacle != DefaultPalette().Obstacle {
		t.Fatalf("obstacle changed to %v", p.Obstacle)
	}

	for _, bad := range []string{"red", "#12345", "#gg0000", "#12345g", "#1234 5", "#-12345"} {
		if _, err := (HexPalette{Start: bad}).Resolve(); err == nil {
			t.Fatalf("Resolve(%q) succeeded", bad)
		}
	}
}
