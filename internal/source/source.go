// Package source discovers the SVG documents a run converts.
package source

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joshua23/animation-Build-hub/internal/diag"
)

type Source interface {
	// Root is the input directory, or the file's directory for a single file.
	Root() string
	Count() int
	Path(index int) string
	// Rel is the path relative to Root.
	Rel(index int) string
	Read(index int) ([]byte, error)
}

// SVGSource is a sorted list of SVG files under one root.
type SVGSource struct {
	root  string
	paths []string
	isDir bool
}

// NewSVGSource opens path as a single file or as a directory walked
// recursively.
func NewSVGSource(path string) (*SVGSource, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, diag.Wrap(diag.InputNotFound, path, err)
		}
		return nil, err
	}

	if !fi.IsDir() {
		return &SVGSource{root: filepath.Dir(path), paths: []string{path}}, nil
	}
	paths, err := Walk(path)
	if err != nil {
		return nil, err
	}
	return &SVGSource{root: path, paths: paths, isDir: true}, nil
}

// Walk collects files with an .svg extension (any case) under dir, sorted
// by path.
func Walk(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsSVG(p) {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// IsSVG reports whether name has an .svg extension.
func IsSVG(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".svg")
}

func (s *SVGSource) Root() string          { return s.root }
func (s *SVGSource) Count() int            { return len(s.paths) }
func (s *SVGSource) Path(index int) string { return s.paths[index] }
func (s *SVGSource) IsDir() bool           { return s.isDir }

func (s *SVGSource) Rel(index int) string {
	rel, err := filepath.Rel(s.root, s.paths[index])
	if err != nil {
		return filepath.Base(s.paths[index])
	}
	return rel
}

func (s *SVGSource) Read(index int) ([]byte, error) {
	data, err := os.ReadFile(s.paths[index])
	if err != nil {
		if os.IsNotExist(err) {
			return nil, diag.Wrap(diag.InputNotFound, s.paths[index], err)
		}
		return nil, err
	}
	return data, nil
}
