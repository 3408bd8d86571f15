package presets

import (
	"context"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/pathpaint/grid"
)

// scriptModules are the stdlib modules a preset script may import. Nothing
// that touches the filesystem or the process.
var scriptModules = []string{"math", "rand", "text", "fmt", "enum"}

// runScript executes a preset script. The script sees the requested grid size
// as the globals width and height, may reassign them, and must define
// obstacles as an array of [x, y] pairs. start, end, name and allow_diagonal
// are optional.
func runScript(ctx context.Context, name string, src []byte, width, height int) (Preset, error) {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(scriptModules...))
	if err := script.Add("width", width); err != nil {
		return Preset{}, fmt.Errorf("presets: %s: %w", name, err)
	}
	if err := script.Add("height", height); err != nil {
		return Preset{}, fmt.Errorf("presets: %s: %w", name, err)
	}

	compiled, err := script.Compile()
	if err != nil {
		return Preset{}, fmt.Errorf("presets: compile %s: %w", name, err)
	}
	if err := compiled.RunContext(ctx); err != nil {
		return Preset{}, fmt.Errorf("presets: run %s: %w", name, err)
	}
	if !compiled.IsDefined("obstacles") {
		return Preset{}, fmt.Errorf("presets: %s: script does not define obstacles", name)
	}

	p := Preset{Name: name}
	if compiled.IsDefined("name") {
		if s := compiled.Get("name").String(); s != "" {
			p.Name = s
		}
	}
	if compiled.IsDefined("allow_diagonal") {
		v := compiled.Get("allow_diagonal").Bool()
		p.AllowDiagonal = &v
	}

	var points [][]int
	for i, item := range compiled.Get("obstacles").Array() {
		pt, ok := intPair(item)
		if !ok {
			return Preset{}, fmt.Errorf("presets: %s: obstacle %d: want [x, y], got %v", name, i, item)
		}
		points = append(points, pt)
	}
	p.Layout, err = layoutFromPoints(compiled.Get("width").Int(), compiled.Get("height").Int(), points)
	if err != nil {
		return Preset{}, fmt.Errorf("presets: %s: %w", name, err)
	}

	for _, field := range []struct {
		key string
		dst **grid.Point
	}{{"start", &p.Start}, {"end", &p.End}} {
		if !compiled.IsDefined(field.key) {
			continue
		}
		pt, ok := intPair(compiled.Get(field.key).Value())
		if !ok {
			return Preset{}, fmt.Errorf("presets: %s: %s: want [x, y]", name, field.key)
		}
		*field.dst = &grid.Point{X: pt[0], Y: pt[1]}
	}
	return p, nil
}

func intPair(v any) ([]int, bool) {
	arr, ok := v.([]any)
	if !ok || len(arr) != 2 {
		return nil, false
	}
	x, ok1 := toInt(arr[0])
	y, ok2 := toInt(arr[1])
	if !ok1 || !ok2 {
		return nil, false
	}
	return []int{x, y}, true
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int64:
		return int(n), true
	case int:
		return n, true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
