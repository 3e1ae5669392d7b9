package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const svgDoc = `<svg width="40" height="40"><rect width="10" height="10" fill="red"/></svg>`

func TestReorderArgs(t *testing.T) {
	var o options
	fs := newFlagSet(&o, io.Discard)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"flags first", []string{"-v", "-o", "out", "in.svg"}, []string{"-v", "-o", "out", "--", "in.svg"}},
		{"flags last", []string{"in.svg", "--frames", "10", "--strict"}, []string{"--frames", "10", "--strict", "--", "in.svg"}},
		{"equals form", []string{"in.svg", "-c=cfg.json"}, []string{"-c=cfg.json", "--", "in.svg"}},
		{"terminator", []string{"-v", "--", "-odd.svg"}, []string{"-v", "--", "-odd.svg"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reorderArgs(fs, tt.args))
		})
	}
}

func TestBuildConfigPrecedence(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "anim.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("n_frames: 40\nframerate: 24\nbackground_color: none\n"), 0644))

	var o options
	fs := newFlagSet(&o, io.Discard)
	require.NoError(t, fs.Parse(reorderArgs(fs, []string{"in.svg", "-c", cfgPath, "--frames", "12", "--no-preview"})))

	cfg, err := buildConfig(fs, &o)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Frames)
	assert.Equal(t, 24.0, cfg.FrameRate)
	assert.Equal(t, "none", cfg.Background)
	assert.False(t, cfg.Preview)
	assert.Equal(t, cfgPath, cfg.ConfigPath)
}

func TestBuildConfigInvalid(t *testing.T) {
	var o options
	fs := newFlagSet(&o, io.Discard)
	require.NoError(t, fs.Parse([]string{"--frames", "0"}))
	_, err := buildConfig(fs, &o)
	assert.ErrorContains(t, err, "frames must be at least 1")
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "logo.svg")
	require.NoError(t, os.WriteFile(in, []byte(svgDoc), 0644))
	report := filepath.Join(dir, "report.yaml")

	var stdout bytes.Buffer
	code := run(context.Background(), []string{in, "--poster", "--report", report}, &stdout, io.Discard)
	assert.Equal(t, 0, code, stdout.String())
	assert.Contains(t, stdout.String(), "[+++] Success!")

	for _, name := range []string{"logo.json", "logo.html", "logo.png", "report.yaml"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
}

func TestRunBatchExitCode(t *testing.T) {
	root := t.TempDir()
	in := filepath.Join(root, "svgs")
	require.NoError(t, os.MkdirAll(in, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(in, "ok.svg"), []byte(svgDoc), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "bad.svg"), []byte("<svg>"), 0644))

	var stdout bytes.Buffer
	code := run(context.Background(), []string{"-o", filepath.Join(root, "out"), in}, &stdout, io.Discard)
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout.String(), "2 total, 1 processed, 1 failed")
	assert.Contains(t, stdout.String(), filepath.Join(in, "bad.svg"))
	assert.FileExists(t, filepath.Join(root, "out", "ok.json"))
}

func TestRunMissingInput(t *testing.T) {
	var stderr bytes.Buffer
	code := run(context.Background(), []string{filepath.Join(t.TempDir(), "missing.svg")}, io.Discard, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "Input path does not exist")
}

func TestRunTimeoutFlag(t *testing.T) {
	var o options
	fs := newFlagSet(&o, io.Discard)
	require.NoError(t, fs.Parse([]string{"--timeout", "2s", "--workers", "4"}))
	cfg, err := buildConfig(fs, &o)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.Equal(t, 4, cfg.Workers)
}

func TestRunBackgroundNone(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "logo.svg")
	require.NoError(t, os.WriteFile(in, []byte(svgDoc), 0644))

	code := run(context.Background(), []string{in, "--background", "none", "--no-preview"}, io.Discard, io.Discard)
	require.Equal(t, 0, code)

	data, err := os.ReadFile(filepath.Join(dir, "logo.json"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"nm":"Background"`)
	assert.Contains(t, string(data), `"nm":"Main Elements"`)

	var usage bytes.Buffer
	var o options
	newFlagSet(&o, &usage).PrintDefaults()
	assert.Contains(t, usage.String(), `"none" omits the background layer`)
}
