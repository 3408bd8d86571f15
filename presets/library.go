package presets

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

//go:embed builtin/*.yaml builtin/*.tengo
var builtinFS embed.FS

var extensions = []string{".yaml", ".yml", ".tengo"}

// Library finds presets in a directory on disk, falling back to the built-in
// set.
type Library struct {
	Dir string
}

func NewLibrary(dir string) *Library {
	return &Library{Dir: dir}
}

// NameOf returns the preset name a file provides. ok is false for files that
// are not presets.
func NameOf(file string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(file))
	if !slices.Contains(extensions, ext) {
		return "", false
	}
	return strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)), true
}

// Names lists every available preset, sorted.
func (l *Library) Names() ([]string, error) {
	var names []string
	add := func(entries []fs.DirEntry) {
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if n, ok := NameOf(e.Name()); ok && !slices.Contains(names, n) {
				names = append(names, n)
			}
		}
	}

	builtin, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, fmt.Errorf("presets: list builtin: %w", err)
	}
	add(builtin)

	if l.Dir != "" {
		disk, err := os.ReadDir(l.Dir)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("presets: list %s: %w", l.Dir, err)
		}
		add(disk)
	}

	slices.Sort(names)
	return names, nil
}

// Load reads and decodes the named preset. width and height are handed to
// scripted presets as their requested size.
func (l *Library) Load(ctx context.Context, name string, width, height int) (Preset, error) {
	data, file, origin, err := l.read(name)
	if err != nil {
		return Preset{}, err
	}

	var p Preset
	if strings.EqualFold(path.Ext(file), ".tengo") {
		p, err = runScript(ctx, name, data, width, height)
	} else {
		p, err = parseYAML(name, data)
	}
	if err != nil {
		return Preset{}, err
	}
	p.Origin = origin
	return p, nil
}

func (l *Library) read(name string) (data []byte, file, origin string, err error) {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return nil, "", "", fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	for _, ext := range extensions {
		file = name + ext
		if l.Dir != "" {
			disk := filepath.Join(l.Dir, file)
			if data, err = os.ReadFile(disk); err == nil {
				return data, file, disk, nil
			}
		}
	}
	for _, ext := range extensions {
		file = name + ext
		if data, err = builtinFS.ReadFile("builtin/" + file); err == nil {
			return data, file, "builtin:" + file, nil
		}
	}
	return nil, "", "", fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}
