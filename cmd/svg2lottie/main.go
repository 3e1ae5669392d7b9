package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/joshua23/animation-Build-hub/internal/config"
	"github.com/joshua23/animation-Build-hub/internal/diag"
	"github.com/joshua23/animation-Build-hub/internal/engine"
	"github.com/joshua23/animation-Build-hub/internal/logging"
	"github.com/joshua23/animation-Build-hub/internal/system"
)

// buildVersion is set with -ldflags "-X main.buildVersion=...".
var buildVersion = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	output, configPath  string
	verbose             bool
	frames, workers     int
	fps, width, height  float64
	background          string
	noPreview, svgPage  bool
	poster              bool
	posterScale         float64
	shareURL            string
	strict, flat, stats bool
	timeout             time.Duration
	report              string
}

func newFlagSet(o *options, stderr io.Writer) *flag.FlagSet {
	d := config.Default()
	fs := flag.NewFlagSet("svg2lottie", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: svg2lottie [flags] [input.svg | input-dir]")
		fmt.Fprintf(stderr, "Without input, the newest .svg in %s is used.\n\n", system.DefaultInputDir)
		fs.PrintDefaults()
	}

	fs.StringVar(&o.output, "output", "", "Output directory, or .json file for a single input")
	fs.StringVar(&o.output, "o", "", "Shorthand for -output")
	fs.StringVar(&o.configPath, "config", "", "Animation config file (.json, .yaml)")
	fs.StringVar(&o.configPath, "c", "", "Shorthand for -config")
	fs.BoolVar(&o.verbose, "verbose", false, "Verbose logging")
	fs.BoolVar(&o.verbose, "v", false, "Shorthand for -verbose")

	fs.IntVar(&o.frames, "frames", d.Frames, "Frame count")
	fs.Float64Var(&o.fps, "fps", d.FrameRate, "Frame rate")
	fs.Float64Var(&o.width, "width", 0, "Width override (0: document width)")
	fs.Float64Var(&o.height, "height", 0, "Height override (0: document height)")
	fs.StringVar(&o.background, "background", d.Background, `Background colour; "none" omits the background layer`)

	fs.IntVar(&o.workers, "workers", d.Workers, "Documents converted in parallel (0: one per CPU)")
	fs.BoolVar(&o.noPreview, "no-preview", false, "Do not write the HTML preview")
	fs.BoolVar(&o.svgPage, "svg-page", false, "Also write <name>.svg.html with the source embedded")
	fs.BoolVar(&o.poster, "poster", false, "Also write <name>.png with the first frame")
	fs.Float64Var(&o.posterScale, "poster-scale", d.PosterScale, "Poster scale factor")
	fs.StringVar(&o.shareURL, "share-url", "", "Base URL; adds a QR code linking to the preview")
	fs.BoolVar(&o.strict, "strict", false, "Count documents with skipped elements as failed")
	fs.BoolVar(&o.flat, "flat", false, "Write batch output into one directory, ignoring subdirectories")
	fs.BoolVar(&o.stats, "stats", false, "Print a performance report and append to "+engine.BenchmarkLog)
	fs.DurationVar(&o.timeout, "timeout", 0, "Per-document timeout (0: none)")
	fs.StringVar(&o.report, "report", "", "Write the result as YAML to this file")
	return fs
}

// reorderArgs moves flags ahead of positional arguments so flags may follow
// the input path.
func reorderArgs(fs *flag.FlagSet, args []string) []string {
	var flags, positional []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}
		if len(a) < 2 || a[0] != '-' {
			positional = append(positional, a)
			continue
		}
		flags = append(flags, a)
		name := strings.TrimLeft(a, "-")
		if strings.Contains(name, "=") {
			continue
		}
		if f := fs.Lookup(name); f != nil && !isBoolFlag(f) && i+1 < len(args) {
			i++
			flags = append(flags, args[i])
		}
	}
	return append(append(flags, "--"), positional...)
}

func isBoolFlag(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

// buildConfig layers defaults, the config file, then flags given on the
// command line.
func buildConfig(fs *flag.FlagSet, o *options) (config.Config, error) {
	cfg := config.Default()
	cfg.BuildVersion = buildVersion

	if o.configPath != "" {
		a, err := config.LoadFile(o.configPath)
		if err != nil {
			return cfg, err
		}
		a.ApplyTo(&cfg)
		cfg.ConfigPath = o.configPath
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "output", "o":
			cfg.OutputDir = o.output
		case "verbose", "v":
			cfg.Verbose = o.verbose
		case "frames":
			cfg.Frames = o.frames
		case "fps":
			cfg.FrameRate = o.fps
		case "width":
			cfg.Width = o.width
		case "height":
			cfg.Height = o.height
		case "background":
			cfg.Background = o.background
		case "workers":
			cfg.Workers = o.workers
		case "no-preview":
			cfg.Preview = !o.noPreview
		case "svg-page":
			cfg.SVGPage = o.svgPage
		case "poster":
			cfg.Poster = o.poster
		case "poster-scale":
			cfg.PosterScale = o.posterScale
		case "share-url":
			cfg.ShareURL = o.shareURL
		case "strict":
			cfg.Strict = o.strict
		case "flat":
			cfg.Flatten = o.flat
		case "stats":
			cfg.ShowStats = o.stats
		case "timeout":
			cfg.Timeout = o.timeout
		case "report":
			cfg.ReportPath = o.report
		}
	})
	return cfg, cfg.Validate()
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var o options
	fs := newFlagSet(&o, stderr)
	if err := fs.Parse(reorderArgs(fs, args)); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}
	if fs.NArg() > 1 {
		fmt.Fprintf(stderr, "[!] Expected one input, got %d\n", fs.NArg())
		return 1
	}

	cfg, err := buildConfig(fs, &o)
	if err != nil {
		fmt.Fprintf(stderr, "[!] Config error: %v\n", err)
		return 1
	}

	log := logging.New(cfg.Verbose, stderr)
	defer log.Sync()
	system.InitResourceLimits(log)

	cfg.InputPath = fs.Arg(0)
	if cfg.InputPath == "" {
		latest, err := system.FindLatestSVG(system.DefaultInputDir)
		if err != nil {
			fmt.Fprintf(stderr, "[!] No input given and no SVG found: %v. Put an SVG into %s/\n", err, system.DefaultInputDir)
			return 1
		}
		cfg.InputPath = latest
		fmt.Fprintf(stdout, "[*] Selected file: %s\n", cfg.InputPath)
	}

	fi, err := os.Stat(cfg.InputPath)
	if err != nil {
		fmt.Fprintf(stderr, "[!] Input path does not exist: %s\n", cfg.InputPath)
		return 1
	}

	b := engine.NewBuilder(cfg, log)
	if cfg.ShowStats {
		b.Stats = &engine.Stats{}
	}

	var (
		report any
		ok     bool
	)
	if fi.IsDir() {
		batch, err := b.ProcessBatch(ctx, cfg.InputPath)
		if err != nil {
			fmt.Fprintf(stderr, "[!] %v\n", err)
			return 1
		}
		printBatch(stdout, batch)
		report, ok = batch, batch.Success
	} else {
		res := b.ProcessFile(ctx, cfg.InputPath)
		printResult(stdout, res)
		report, ok = res, res.Success
	}

	if cfg.ShowStats {
		fmt.Fprint(stdout, b.Stats.Report(cfg.BuildVersion, system.Snapshot()))
		if err := b.Stats.AppendLog(engine.BenchmarkLog, cfg.BuildVersion, cfg.InputPath); err != nil {
			log.Warn("cannot write benchmark log", zap.Error(err))
		}
	}
	if cfg.ReportPath != "" {
		if err := engine.WriteReport(report, cfg.ReportPath); err != nil {
			fmt.Fprintf(stderr, "[!] %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "[*] Report: %s\n", cfg.ReportPath)
	}

	if !ok {
		return 1
	}
	return 0
}

func printResult(w io.Writer, res *engine.Result) {
	if res.Success {
		fmt.Fprintln(w, "[+++] Success! Output files:")
		for _, f := range res.OutputFiles {
			fmt.Fprintf(w, "  - %s\n", f)
		}
		printDiagnostics(w, "  ", res.Diagnostics)
		return
	}
	fmt.Fprintln(w, "[!] Conversion failed:")
	for _, m := range res.Messages {
		fmt.Fprintf(w, "  - %s\n", m)
	}
	printDiagnostics(w, "  ", res.Diagnostics)
}

func printBatch(w io.Writer, batch *engine.BatchResult) {
	fmt.Fprintf(w, "[*] Batch finished: %d total, %d processed, %d failed (run %s)\n",
		batch.Total, batch.Processed, batch.Failed, batch.RunID)
	fmt.Fprintf(w, "[*] Output: %s\n", batch.OutputDir)

	failed := batch.FailedResults()
	if len(failed) == 0 {
		fmt.Fprintln(w, "[+++] Success!")
		return
	}
	fmt.Fprintln(w, "[!] Failed files:")
	for _, r := range failed {
		fmt.Fprintf(w, "  - %s\n", r.InputFile)
		for _, m := range r.Messages {
			fmt.Fprintf(w, "    %s\n", m)
		}
		printDiagnostics(w, "    ", r.Diagnostics)
	}
}

func printDiagnostics(w io.Writer, indent string, ds []diag.Diagnostic) {
	for _, d := range ds {
		fmt.Fprintf(w, "%s! %s\n", indent, d)
	}
}
