// Package puzzles loads puzzle descriptions from YAML files.
//
// A file describes one puzzle of a given kind:
//
//	name: easy-eight
//	kind: slide
//	tiles:
//	  - [1, 2, 3]
//	  - [4, 0, 6]
//	  - [7, 5, 8]
//
//	name: corridor
//	kind: grid
//	map:
//	  - "S..#"
//	  - ".#.G"
//
//	name: trivial
//	kind: push
//	map:
//	  - "W W  W  W  W"
//	  - "W S  M0 G0 W"
//	  - "W W  W  W  W"
package puzzles

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Supported puzzle kinds.
const (
	KindSlide = "slide"
	KindGrid  = "grid"
	KindPush  = "push"
)

var (
	// ErrUnknownKind is returned for a kind other than slide, grid or push.
	ErrUnknownKind = errors.New("unknown puzzle kind")
	// ErrEmptyPuzzle is returned when a file carries no tiles or map.
	ErrEmptyPuzzle = errors.New("puzzle has no tiles or map")
)

// File is the on-disk description of a puzzle.
type File struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
	// Tiles is the initial board of a slide puzzle; 0 is the blank.
	Tiles [][]int `yaml:"tiles,omitempty"`
	// Goal is the target board of a slide puzzle. Empty means the canonical
	// order with the blank last.
	Goal [][]int `yaml:"goal,omitempty"`
	// Map is the layout of a grid or push puzzle.
	Map []string `yaml:"map,omitempty"`
	// Path is where the file was loaded from, if anywhere.
	Path string `yaml:"-"`
}

// Parse decodes and validates a puzzle description.
func Parse(data []byte) (*File, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse puzzle: %w", err)
	}
	if err := file.Validate(); err != nil {
		return nil, err
	}
	return &file, nil
}

// Validate checks that the file names a known kind and carries its layout.
func (f *File) Validate() error {
	switch f.Kind {
	case KindSlide:
		if len(f.Tiles) == 0 {
			return fmt.Errorf("%s puzzle %q: %w", f.Kind, f.Name, ErrEmptyPuzzle)
		}
	case KindGrid, KindPush:
		if len(f.Map) == 0 {
			return fmt.Errorf("%s puzzle %q: %w", f.Kind, f.Name, ErrEmptyPuzzle)
		}
	default:
		return fmt.Errorf("puzzle %q: %w: %q", f.Name, ErrUnknownKind, f.Kind)
	}
	return nil
}

// Load reads a puzzle file. A missing name defaults to the file's base name.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	file, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	file.Path = path
	if file.Name == "" {
		file.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return file, nil
}

// LoadDir loads every .yaml and .yml file in dir, sorted by file name.
func LoadDir(dir string) ([]*File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".yaml", ".yml":
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	slices.Sort(paths)

	files := make([]*File, 0, len(paths))
	for _, path := range paths {
		file, err := Load(path)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}
