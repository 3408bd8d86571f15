package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

type Palette struct {
	Background color.RGBA
	Obstacle   color.RGBA
	Path       color.RGBA
	Start      color.RGBA
	End        color.RGBA
	Stroke     color.RGBA
	Border     color.RGBA
}

func DefaultPalette() Palette {
	return Palette{
		Background: color.RGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff},
		Obstacle:   colornames.Black,
		Path:       color.RGBA{R: 0xd0, G: 0xd0, B: 0x00, A: 0xff},
		Start:      colornames.Red,
		End:        color.RGBA{R: 0x00, G: 0xd0, B: 0x00, A: 0xff},
		Stroke:     color.RGBA{R: 0x00, G: 0x00, B: 0xd0, A: 0xff},
		Border:     colornames.White,
	}
}

// HexPalette is the textual form of a palette, as found in config files.
// Empty entries keep the default color.
type HexPalette struct {
	Background string `toml:"background"`
	Obstacle   string `toml:"obstacle"`
	Path       string `toml:"path"`
	Start      string `toml:"start"`
	End        string `toml:"end"`
	Stroke     string `toml:"stroke"`
	Border     string `toml:"grid_border"`
}

// Resolve overlays the non-empty entries of h on the default palette.
func (h HexPalette) Resolve() (Palette, error) {
	p := DefaultPalette()
	entries := []struct {
		name string
		hex  string
		dst  *color.RGBA
	}{
		{"background", h.Background, &p.Background},
		{"obstacle", h.Obstacle, &p.Obstacle},
		{"path", h.Path, &p.Path},
		{"start", h.Start, &p.Start},
		{"end", h.End, &p.End},
		{"stroke", h.Stroke, &p.Stroke},
		{"grid_border", h.Border, &p.Border},
	}
	for _, e := range entries {
		if e.hex == "" {
			continue
		}
		c, err := ParseHexColor(e.hex)
		if err != nil {
			return Palette{}, fmt.Errorf("render: palette %s: %w", e.name, err)
		}
		*e.dst = c
	}
	return p, nil
}

// ParseHexColor parses an opaque color in the form #rrggbb.
func ParseHexColor(s string) (color.RGBA, error) {
	if len(s) != 7 || s[0] != '#' || strings.Trim(s[1:], hexDigits) != "" {
		return color.RGBA{}, fmt.Errorf("invalid color %q: want #rrggbb", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

const hexDigits = "0123456789abcdefABCDEF"
