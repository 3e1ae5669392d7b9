// Package export writes the files produced for one converted document.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joshua23/animation-Build-hub/internal/diag"
	"github.com/joshua23/animation-Build-hub/internal/director"
	"github.com/joshua23/animation-Build-hub/internal/preview"
	"github.com/joshua23/animation-Build-hub/internal/renderer"
)

const (
	JSONExt    = ".json"
	HTMLExt    = ".html"
	PosterExt  = ".png"
	SVGPageExt = ".svg.html"
)

type Options struct {
	OutputDir string
	// Flatten drops the input's subdirectories, writing every document
	// straight into OutputDir.
	Flatten     bool
	Preview     bool
	SVGPage     bool
	Poster      bool
	PosterScale float64
	ShareURL    string
}

// Paths are the output files of one document. Empty entries are not
// written.
type Paths struct {
	JSON    string
	HTML    string
	Poster  string
	SVGPage string
}

// Files lists the non-empty paths, JSON first.
func (p Paths) Files() []string {
	var out []string
	for _, f := range []string{p.JSON, p.HTML, p.Poster, p.SVGPage} {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Layout maps input paths, relative to the input root, to output paths.
// It is safe for concurrent use.
type Layout struct {
	opts Options

	mu      sync.Mutex
	claimed map[string]string
}

func NewLayout(opts Options) *Layout {
	return &Layout{opts: opts, claimed: make(map[string]string)}
}

// Plan reserves the output paths for rel. Two inputs that would write the
// same JSON file make the second call fail with a SerializationError.
func (l *Layout) Plan(rel string) (Paths, error) {
	p := l.paths(rel)

	l.mu.Lock()
	defer l.mu.Unlock()
	if prev, ok := l.claimed[p.JSON]; ok && prev != rel {
		return Paths{}, diag.Wrap(diag.SerializationError, p.JSON,
			fmt.Errorf("output already claimed by %s", prev))
	}
	l.claimed[p.JSON] = rel
	return p, nil
}

func (l *Layout) paths(rel string) Paths {
	rel = filepath.Clean(rel)
	stem := strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))
	dir := l.opts.OutputDir
	if !l.opts.Flatten {
		dir = filepath.Join(dir, filepath.Dir(rel))
	}
	base := filepath.Join(dir, stem)

	p := Paths{JSON: base + JSONExt}
	if l.opts.Preview {
		p.HTML = base + HTMLExt
	}
	if l.opts.Poster {
		p.Poster = base + PosterExt
	}
	if l.opts.SVGPage {
		p.SVGPage = base + SVGPageExt
	}
	return p
}

// Writer persists an assembled document and its side files.
type Writer interface {
	Write(ctx context.Context, doc *director.Document, src []byte, p Paths) ([]string, error)
}

// FileWriter writes to the local filesystem.
type FileWriter struct {
	Options Options
}

func NewFileWriter(opts Options) *FileWriter {
	return &FileWriter{Options: opts}
}

// Write writes the files named in p and returns those written. Every
// failure is a SerializationError naming the file.
func (w *FileWriter) Write(ctx context.Context, doc *director.Document, src []byte, p Paths) ([]string, error) {
	if err := os.MkdirAll(filepath.Dir(p.JSON), 0755); err != nil {
		return nil, diag.Wrap(diag.SerializationError, filepath.Dir(p.JSON), err)
	}

	var written []string
	if err := director.WriteDocument(doc, p.JSON); err != nil {
		return nil, diag.Wrap(diag.SerializationError, p.JSON, err)
	}
	written = append(written, p.JSON)

	steps := []struct {
		path  string
		write func(string) error
	}{
		{p.HTML, func(path string) error { return w.writePreview(p.JSON, path) }},
		{p.Poster, func(path string) error { return renderer.WritePNG(doc, w.scale(), path) }},
		{p.SVGPage, func(path string) error { return writeSVGPage(doc.Name, src, path) }},
	}
	for _, s := range steps {
		if s.path == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return written, err
		}
		if err := s.write(s.path); err != nil {
			return written, diag.Wrap(diag.SerializationError, s.path, err)
		}
		written = append(written, s.path)
	}
	return written, nil
}

func (w *FileWriter) scale() float64 {
	if w.Options.PosterScale <= 0 {
		return 1
	}
	return w.Options.PosterScale
}

// writePreview references the JSON by basename; both files share a
// directory.
func (w *FileWriter) writePreview(jsonPath, path string) error {
	var opts preview.Options
	if w.Options.ShareURL != "" {
		opts.ShareURL = preview.ShareLink(w.Options.ShareURL, filepath.Base(path))
	}
	page, err := preview.EmitWithOptions(filepath.Base(jsonPath), opts)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(page), 0644)
}

func writeSVGPage(title string, src []byte, path string) error {
	page, err := preview.SVGPage(title, src)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(page), 0644)
}
