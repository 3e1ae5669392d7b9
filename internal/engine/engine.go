// Package engine runs the conversion pipeline over one document or a
// directory of documents.
package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/joshua23/animation-Build-hub/internal/analyzer"
	"github.com/joshua23/animation-Build-hub/internal/config"
	"github.com/joshua23/animation-Build-hub/internal/diag"
	"github.com/joshua23/animation-Build-hub/internal/director"
	"github.com/joshua23/animation-Build-hub/internal/export"
	"github.com/joshua23/animation-Build-hub/internal/scene"
	"github.com/joshua23/animation-Build-hub/internal/source"
)

// BatchDirName is the output directory created beside a batch input
// directory when none is configured.
const BatchDirName = "lottie_animations"

// Builder converts SVG documents to Lottie animations.
type Builder struct {
	Config config.Config
	Log    *zap.Logger
	// Resolve overrides colour resolution; nil uses the named-colour table.
	Resolve director.Resolver
	// NewWriter builds the output writer for a run.
	NewWriter func(export.Options) export.Writer
	// Stats, when set, collects stage timings.
	Stats *Stats
}

func NewBuilder(cfg config.Config, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{
		Config: cfg,
		Log:    log,
		NewWriter: func(opts export.Options) export.Writer {
			return export.NewFileWriter(opts)
		},
	}
}

func (b *Builder) exportOptions(outDir string) export.Options {
	return export.Options{
		OutputDir:   outDir,
		Flatten:     b.Config.Flatten,
		Preview:     b.Config.Preview,
		SVGPage:     b.Config.SVGPage,
		Poster:      b.Config.Poster,
		PosterScale: b.Config.PosterScale,
		ShareURL:    b.Config.ShareURL,
	}
}

func (b *Builder) workers(n int) int {
	w := b.Config.Workers
	if w <= 0 {
		w = runtime.NumCPU()
	}
	if w > n {
		w = n
	}
	return max(w, 1)
}

// ProcessFile converts a single document. Without an output directory the
// files are written next to the input; an output ending in .json names the
// animation file itself.
func (b *Builder) ProcessFile(ctx context.Context, path string) *Result {
	start := time.Now()
	defer b.Stats.finish(start)

	res := newResult(path)
	src, err := source.NewSVGSource(path)
	if err != nil {
		return res.fail(err)
	}
	if src.IsDir() {
		return res.fail(fmt.Errorf("%s is a directory", path))
	}

	outDir, rel := b.Config.OutputDir, filepath.Base(path)
	switch {
	case outDir == "":
		outDir = filepath.Dir(path)
	case strings.EqualFold(filepath.Ext(outDir), export.JSONExt):
		outDir, rel = filepath.Dir(outDir), filepath.Base(outDir)
	}

	opts := b.exportOptions(outDir)
	paths, err := export.NewLayout(opts).Plan(rel)
	if err != nil {
		return res.fail(err)
	}
	return b.convert(ctx, res, src, 0, b.NewWriter(opts), paths, b.Log.With(zap.String("file", path)))
}

// ProcessBatch converts every SVG under dir. One document's failure does
// not stop the others. The error return is reserved for an unusable input
// directory.
func (b *Builder) ProcessBatch(ctx context.Context, dir string) (*BatchResult, error) {
	start := time.Now()
	defer b.Stats.finish(start)

	src, err := source.NewSVGSource(dir)
	if err != nil {
		return nil, err
	}
	if !src.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	outDir := b.Config.OutputDir
	if outDir == "" {
		outDir = filepath.Join(filepath.Dir(filepath.Clean(dir)), BatchDirName)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, diag.Wrap(diag.SerializationError, outDir, err)
	}

	batch := &BatchResult{
		InputDir:  src.Root(),
		OutputDir: outDir,
		RunID:     uuid.NewString(),
		Results:   make([]*Result, src.Count()),
	}
	log := b.Log.With(zap.String("run_id", batch.RunID))
	log.Info("batch started", zap.String("input", dir), zap.Int("files", src.Count()))

	opts := b.exportOptions(outDir)
	layout := export.NewLayout(opts)
	writer := b.NewWriter(opts)

	// Paths are claimed in input order so a flat-mode collision always
	// fails the later document.
	plans := make([]export.Paths, src.Count())
	for i := range plans {
		plans[i], err = layout.Plan(src.Rel(i))
		if err != nil {
			batch.Results[i] = newResult(src.Path(i)).fail(err)
		}
	}

	var g errgroup.Group
	g.SetLimit(b.workers(src.Count()))
	for i := 0; i < src.Count(); i++ {
		if batch.Results[i] != nil {
			continue
		}
		i := i
		g.Go(func() error {
			path := src.Path(i)
			l := log.With(zap.String("file", path))
			l.Debug("processing", zap.Int("index", i+1), zap.Int("total", src.Count()))
			batch.Results[i] = b.convert(ctx, newResult(path), src, i, writer, plans[i], l)
			return nil
		})
	}
	_ = g.Wait()

	batch.tally()
	log.Info("batch finished",
		zap.Int("processed", batch.Processed),
		zap.Int("failed", batch.Failed),
		zap.Duration("elapsed", time.Since(start)))
	return batch, nil
}

// convert runs load, classify, assemble and write for document i of src.
// The per-document deadline is checked between stages.
func (b *Builder) convert(ctx context.Context, res *Result, src source.Source, i int, w export.Writer, paths export.Paths, log *zap.Logger) *Result {
	if b.Config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.Config.Timeout)
		defer cancel()
	}
	path := res.InputFile

	log.Debug("[1/3] parsing svg")
	t0 := time.Now()
	data, err := src.Read(i)
	if err != nil {
		return res.fail(fmt.Errorf("read %s: %w", path, err))
	}
	tree, err := scene.LoadBytes(data)
	if err != nil {
		return res.fail(diag.Wrap(scene.ErrorKind(err), path, err))
	}
	for _, warn := range tree.Warnings {
		log.Warn(warn)
	}
	if err := stageErr(ctx, path); err != nil {
		return res.fail(err)
	}

	log.Debug("[2/3] analysing structure")
	t1 := time.Now()
	cls := analyzer.Classify(tree)
	res.Structure = &Structure{
		IsFlat:     cls.IsFlat(),
		Groups:     len(cls.Groups),
		Paths:      len(cls.Paths),
		Shapes:     len(cls.Shapes),
		Dimensions: tree.Size().String(),
	}

	log.Debug("[3/3] building animation")
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	doc, diags := director.Assemble(b.Config.Settings(stem), tree, cls, b.Resolve)
	res.Diagnostics = diags
	for _, d := range diags {
		log.Debug("diagnostic", zap.String("id", d.ElementID), zap.Stringer("kind", d.Kind), zap.String("message", d.Message))
	}
	if err := stageErr(ctx, path); err != nil {
		return res.fail(err)
	}

	t2 := time.Now()
	files, err := w.Write(ctx, doc, data, paths)
	res.OutputFiles = append(res.OutputFiles, files...)
	if err != nil {
		if ctxErr := stageErr(ctx, path); ctxErr != nil {
			err = ctxErr
		}
		return res.fail(err)
	}
	b.Stats.add(t1.Sub(t0), t2.Sub(t1), time.Since(t2))

	res.Success = true
	for _, f := range files {
		if f != paths.JSON {
			res.addf("created %s", f)
		}
	}
	if n := diag.Failures(diags); n > 0 {
		res.addf("%d element(s) skipped", n)
		if b.Config.Strict {
			res.Success = false
			res.err = diag.Wrap(firstFailure(diags), path, fmt.Errorf("%d element(s) skipped", n))
		}
	}
	log.Debug("converted", zap.Strings("outputs", files), zap.Bool("success", res.Success))
	return res
}

// stageErr turns a finished context into a document-level error.
func stageErr(ctx context.Context, path string) error {
	err := ctx.Err()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return diag.Wrap(diag.Timeout, path, err)
	default:
		return err
	}
}

func firstFailure(ds []diag.Diagnostic) diag.Kind {
	for _, d := range ds {
		if !d.Kind.Substitution() {
			return d.Kind
		}
	}
	return diag.Unknown
}
