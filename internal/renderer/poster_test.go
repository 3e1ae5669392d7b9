package renderer

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	svgcolor "github.com/joshua23/animation-Build-hub/internal/color"
	"github.com/joshua23/animation-Build-hub/internal/director"
	"github.com/joshua23/animation-Build-hub/internal/geometry"
	"github.com/joshua23/animation-Build-hub/internal/system"
)

var (
	white = svgcolor.Color{R: 1, G: 1, B: 1, A: 1}
	red   = svgcolor.Color{R: 1, A: 1}
	blue  = svgcolor.Color{B: 1, A: 1}
)

func pt(x, y float64) geometry.Point { return geometry.Point{X: x, Y: y} }

func testDoc() *director.Document {
	tri, err := geometry.Translate("M12,12 L20,12 L20,20 Z")
	if err != nil {
		panic(err)
	}
	return &director.Document{
		Width:  20,
		Height: 20,
		Layers: []director.Layer{
			{Name: director.BackgroundLayer, Groups: []director.ShapeGroup{
				{Geometry: director.RectGeometry{Center: pt(10, 10), Size: pt(20, 20)}, Fill: white},
			}},
			{Name: director.MainLayer, Groups: []director.ShapeGroup{
				{Geometry: director.RectGeometry{Center: pt(4, 4), Size: pt(6, 6)}, Fill: red},
				{Geometry: director.EllipseGeometry{Center: pt(15, 5), Size: pt(8, 8)}, Fill: blue},
				{Geometry: director.PathGeometry{Contours: tri}, Fill: red},
				{Geometry: director.RectGeometry{Center: pt(10, 10), Size: pt(20, 20)}, Fill: svgcolor.Transparent},
			}},
		},
	}
}

func rgba(c color.Color) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

func TestRender(t *testing.T) {
	img, err := Render(testDoc(), 1)
	require.NoError(t, err)
	defer system.PutImage(img)

	assert.Equal(t, 20, img.Bounds().Dx())

	tests := []struct {
		name string
		x, y int
		want color.RGBA
	}{
		{"background", 1, 18, color.RGBA{255, 255, 255, 255}},
		{"rect", 4, 4, color.RGBA{255, 0, 0, 255}},
		{"ellipse center", 15, 5, color.RGBA{0, 0, 255, 255}},
		{"triangle inside", 18, 14, color.RGBA{255, 0, 0, 255}},
		{"triangle outside", 13, 18, color.RGBA{255, 255, 255, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rgba(img.At(tt.x, tt.y)))
		})
	}
}

func TestRenderScale(t *testing.T) {
	img, err := Render(testDoc(), 2.5)
	require.NoError(t, err)
	defer system.PutImage(img)
	assert.Equal(t, 50, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, rgba(img.At(10, 10)))
}

func TestRenderRejects(t *testing.T) {
	_, err := Render(testDoc(), 0)
	assert.Error(t, err)
	_, err = Render(testDoc(), MaxScale+1)
	assert.Error(t, err)
	_, err = Render(&director.Document{}, 1)
	assert.Error(t, err)
	_, err = Render(&director.Document{Width: 100000, Height: 100000}, 1)
	assert.ErrorContains(t, err, "exceeds")
	_, err = Render(&director.Document{Width: 4096, Height: 4096}, 4)
	assert.ErrorContains(t, err, "exceeds")
}

func TestRenderReusesPooledImageClean(t *testing.T) {
	first, err := Render(testDoc(), 1)
	require.NoError(t, err)
	system.PutImage(first)

	empty := &director.Document{Width: 20, Height: 20}
	img, err := Render(empty, 1)
	require.NoError(t, err)
	defer system.PutImage(img)
	assert.Equal(t, color.RGBA{}, rgba(img.At(4, 4)))
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "poster.png")
	require.NoError(t, WritePNG(testDoc(), 1, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 20, img.Bounds().Dx())
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, rgba(img.At(4, 4)))
}
