package config

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/joshua23/animation-Build-hub/internal/diag"
)

// Animation is the config file schema. Nil fields were not present in the
// file; unknown fields are ignored.
type Animation struct {
	Frames             *int     `json:"n_frames" yaml:"n_frames"`
	FrameRate          *float64 `json:"framerate" yaml:"framerate"`
	Width              *float64 `json:"width" yaml:"width"`
	Height             *float64 `json:"height" yaml:"height"`
	Background         *string  `json:"background_color" yaml:"background_color"`
	RequireFullSuccess *bool    `json:"require_full_success" yaml:"require_full_success"`
	FlattenOutput      *bool    `json:"flatten_output" yaml:"flatten_output"`
	Workers            *int     `json:"workers" yaml:"workers"`
}

// FileLoader decodes one config file format.
type FileLoader interface {
	Load(reader io.Reader, target any) error
	Extension() string
}

type YAMLLoader struct{}

func (y *YAMLLoader) Load(reader io.Reader, target any) error {
	err := yaml.NewDecoder(reader).Decode(target)
	if err == io.EOF {
		return nil
	}
	return err
}

func (y *YAMLLoader) Extension() string { return "yaml" }

type JSONLoader struct{}

func (j *JSONLoader) Load(reader io.Reader, target any) error {
	return json.NewDecoder(reader).Decode(target)
}

func (j *JSONLoader) Extension() string { return "json" }

var fileLoaders = map[string]FileLoader{
	"yaml": &YAMLLoader{},
	"yml":  &YAMLLoader{},
	"json": &JSONLoader{},
}

// LoadFile reads an animation config. The format follows the extension;
// anything other than .yaml or .yml is read as JSON. Errors carry
// diag.ConfigLoadError.
func LoadFile(path string) (*Animation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, diag.Wrap(diag.ConfigLoadError, path, err)
	}
	defer f.Close()

	loader, ok := fileLoaders[strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")]
	if !ok {
		loader = fileLoaders["json"]
	}

	var a Animation
	if err := loader.Load(f, &a); err != nil {
		return nil, diag.Wrap(diag.ConfigLoadError, path, err)
	}
	return &a, nil
}

// ApplyTo copies the fields present in the file onto c.
func (a *Animation) ApplyTo(c *Config) {
	if a.Frames != nil {
		c.Frames = *a.Frames
	}
	if a.FrameRate != nil {
		c.FrameRate = *a.FrameRate
	}
	if a.Width != nil {
		c.Width = *a.Width
	}
	if a.Height != nil {
		c.Height = *a.Height
	}
	if a.Background != nil {
		c.Background = *a.Background
	}
	if a.RequireFullSuccess != nil {
		c.Strict = *a.RequireFullSuccess
	}
	if a.FlattenOutput != nil {
		c.Flatten = *a.FlattenOutput
	}
	if a.Workers != nil {
		c.Workers = *a.Workers
	}
}
