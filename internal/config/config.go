// Package config holds run settings and the animation config file format.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/joshua23/animation-Build-hub/internal/director"
)

type Config struct {
	InputPath    string
	OutputDir    string
	ConfigPath   string
	Frames       int     `validate:"min=1"`
	FrameRate    float64 `validate:"gt=0"`
	Width        float64 `validate:"gte=0"`
	Height       float64 `validate:"gte=0"`
	Background   string
	Workers      int  `validate:"gte=0"`
	Preview      bool
	SVGPage      bool
	Poster       bool
	PosterScale  float64 `validate:"gt=0,lte=8"`
	ShareURL     string  `validate:"omitempty,url"`
	Strict       bool
	Flatten      bool
	ShowStats    bool
	Timeout      time.Duration `validate:"gte=0"`
	ReportPath   string
	BuildVersion string
	Verbose      bool
}

// Default returns the settings used when neither a config file nor a flag
// says otherwise.
func Default() Config {
	d := director.DefaultSettings()
	return Config{
		Frames:      d.Frames,
		FrameRate:   d.FrameRate,
		Background:  d.Background,
		Workers:     1,
		Preview:     true,
		PosterScale: 1,
	}
}

// Settings returns the assembler settings for one document.
func (c Config) Settings(name string) director.Settings {
	return director.Settings{
		Name:       name,
		Frames:     c.Frames,
		FrameRate:  c.FrameRate,
		Width:      c.Width,
		Height:     c.Height,
		Background: c.Background,
	}
}

var validate = validator.New()

// Validate checks value ranges.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, formatFieldError(e))
		}
		return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
	}
	return err
}

func formatFieldError(e validator.FieldError) string {
	field := strings.ToLower(e.Field())

	switch e.Tag() {
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, e.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "url":
		return fmt.Sprintf("%s must be a URL", field)
	default:
		return fmt.Sprintf("%s failed %s", field, e.Tag())
	}
}
