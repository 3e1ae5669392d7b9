// Package color resolves SVG paint tokens into normalized RGBA values.
package color

import (
	"regexp"
	"strconv"
	"strings"
)

// Color holds four channels in [0,1].
type Color struct {
	R, G, B, A float64
}

var (
	Transparent = Color{0, 0, 0, 0}
	Black       = Color{0, 0, 0, 1}
)

var named = map[string]Color{
	"black":   {0, 0, 0, 1},
	"white":   {1, 1, 1, 1},
	"red":     {1, 0, 0, 1},
	"green":   {0, 1, 0, 1},
	"blue":    {0, 0, 1, 1},
	"yellow":  {1, 1, 0, 1},
	"cyan":    {0, 1, 1, 1},
	"magenta": {1, 0, 1, 1},
}

var (
	rgbRe  = regexp.MustCompile(`^rgb\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*\)`)
	rgbaRe = regexp.MustCompile(`^rgba\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*,\s*([\d.]+)\s*\)`)
)

// Resolve maps a paint token to a Color. It never fails: anything it cannot
// read becomes opaque black.
func Resolve(token string) Color {
	c, _ := ResolveDetailed(token)
	return c
}

// ResolveDetailed is Resolve that also reports whether the token was
// recognized. ok is false only when the opaque black default was used.
func ResolveDetailed(token string) (c Color, ok bool) {
	lower := strings.ToLower(token)
	if token == "" || lower == "none" {
		return Transparent, true
	}
	if c, found := named[lower]; found {
		return c, true
	}
	if strings.HasPrefix(token, "#") {
		if c, ok := parseHex(token[1:]); ok {
			return c, true
		}
		return Black, false
	}
	if m := rgbRe.FindStringSubmatch(token); m != nil {
		if c, ok := fromChannels(m[1], m[2], m[3], "1"); ok {
			return c, true
		}
	}
	if m := rgbaRe.FindStringSubmatch(token); m != nil {
		if c, ok := fromChannels(m[1], m[2], m[3], m[4]); ok {
			return c, true
		}
	}
	return Black, false
}

func parseHex(h string) (Color, bool) {
	var digits string
	switch len(h) {
	case 3:
		digits = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]}) + "ff"
	case 6:
		digits = h + "ff"
	case 8:
		digits = h
	default:
		return Color{}, false
	}
	var ch [4]float64
	for i := range ch {
		v, err := strconv.ParseUint(digits[i*2:i*2+2], 16, 8)
		if err != nil {
			return Color{}, false
		}
		ch[i] = float64(v) / 255
	}
	return Color{ch[0], ch[1], ch[2], ch[3]}, true
}

func fromChannels(r, g, b, a string) (Color, bool) {
	var ch [3]float64
	for i, s := range []string{r, g, b} {
		v, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return Color{}, false
		}
		ch[i] = clamp(float64(v) / 255)
	}
	alpha, err := strconv.ParseFloat(a, 64)
	if err != nil {
		return Color{}, false
	}
	return Color{ch[0], ch[1], ch[2], clamp(alpha)}, true
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Visible reports whether the color paints anything at all.
func (c Color) Visible() bool {
	return c.A > 0
}

// RGB returns the three color channels, as Lottie fill colors expect.
func (c Color) RGB() [3]float64 {
	return [3]float64{c.R, c.G, c.B}
}
