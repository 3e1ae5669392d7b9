package director

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshua23/animation-Build-hub/internal/analyzer"
	"github.com/joshua23/animation-Build-hub/internal/color"
	"github.com/joshua23/animation-Build-hub/internal/diag"
	"github.com/joshua23/animation-Build-hub/internal/geometry"
	"github.com/joshua23/animation-Build-hub/internal/scene"
)

func assemble(t *testing.T, s Settings, doc string) (*Document, []diag.Diagnostic) {
	t.Helper()
	tree, err := scene.LoadBytes([]byte(doc))
	require.NoError(t, err)
	return NewDirector(s).Assemble(tree, analyzer.Classify(tree))
}

func layerNames(doc *Document) []string {
	var names []string
	for _, l := range doc.Layers {
		names = append(names, l.Name)
	}
	return names
}

func TestAssembleTopLevelPaths(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<svg width="400" height="300">`)
	for i := 0; i < 5; i++ {
		fmt.Fprintf(&b, `<path d="M%d,0 L10,10"/>`, i)
	}
	b.WriteString(`</svg>`)

	doc, diags := assemble(t, DefaultSettings(), b.String())
	assert.Empty(t, diags)
	assert.Equal(t, []string{BackgroundLayer, MainLayer}, layerNames(doc))

	main, ok := doc.Layer(MainLayer)
	require.True(t, ok)
	assert.Len(t, main.Groups, 5)
	assert.Equal(t, 6, doc.ShapeCount())

	assert.Equal(t, 400.0, doc.Width)
	assert.Equal(t, 300.0, doc.Height)
	assert.Equal(t, 90, doc.Frames)
	assert.Equal(t, 30.0, doc.FrameRate)

	bg := doc.Layers[0].Groups[0]
	assert.Equal(t, RectGeometry{
		Center: geometry.Point{X: 200, Y: 150},
		Size:   geometry.Point{X: 400, Y: 300},
	}, bg.Geometry)
	assert.Equal(t, color.Color{R: 1, G: 1, B: 1, A: 1}, bg.Fill)
}

func TestAssembleLayerOrder(t *testing.T) {
	doc, _ := assemble(t, DefaultSettings(), `<svg>
  <g id="a"><rect id="r1"/><g><circle id="c1"/></g></g>
  <path id="p1" d="M0,0 L1,1"/>
  <g id="b"><ellipse id="e1"/></g>
  <rect id="r2"/>
</svg>`)

	assert.Equal(t, []string{BackgroundLayer, MainLayer, "Group 1", "Group 2"}, layerNames(doc))

	ids := func(l Layer) []string {
		var out []string
		for _, g := range l.Groups {
			out = append(out, g.ElementID)
		}
		return out
	}
	assert.Equal(t, []string{"p1", "r2"}, ids(doc.Layers[1]))
	assert.Equal(t, []string{"r1", "c1"}, ids(doc.Layers[2]))
	assert.Equal(t, []string{"e1"}, ids(doc.Layers[3]))
}

func TestAssembleSettings(t *testing.T) {
	tests := []struct {
		name       string
		settings   Settings
		wantLayers []string
		wantW      float64
		wantDiags  int
	}{
		{"transparent background", Settings{Frames: 10, FrameRate: 24, Background: "none"}, []string{MainLayer}, 800, 0},
		{"empty background", Settings{Frames: 10, FrameRate: 24}, []string{MainLayer}, 800, 0},
		{"zero alpha rgba", Settings{Frames: 10, FrameRate: 24, Background: "rgba(255,0,0,0)"}, []string{MainLayer}, 800, 0},
		{"width override", Settings{Frames: 10, FrameRate: 24, Width: 1920, Background: "red"}, []string{BackgroundLayer, MainLayer}, 1920, 0},
		{"unknown background", Settings{Frames: 10, FrameRate: 24, Background: "chartreuse"}, []string{BackgroundLayer, MainLayer}, 800, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, diags := assemble(t, tt.settings, `<svg/>`)
			assert.Equal(t, tt.wantLayers, layerNames(doc))
			assert.Equal(t, tt.wantW, doc.Width)
			assert.Equal(t, 600.0, doc.Height)
			assert.Len(t, diags, tt.wantDiags)
		})
	}
}

func TestAssemblePartialResult(t *testing.T) {
	doc, diags := assemble(t, DefaultSettings(), `<svg>
  <path id="bad" d="M0,0 L10"/>
  <rect id="ok" x="10" y="20" width="30" height="40" fill="#00ff00"/>
  <path id="odd" d="M0,0 Q1,1" fill="orange"/>
</svg>`)

	main, ok := doc.Layer(MainLayer)
	require.True(t, ok)
	require.Len(t, main.Groups, 1)
	assert.Equal(t, "ok", main.Groups[0].ElementID)
	assert.Equal(t, RectGeometry{
		Center: geometry.Point{X: 25, Y: 40},
		Size:   geometry.Point{X: 30, Y: 40},
	}, main.Groups[0].Geometry)
	assert.Equal(t, color.Color{G: 1, A: 1}, main.Groups[0].Fill)

	require.Len(t, diags, 2)
	assert.Equal(t, diag.PathSyntaxError, diags[0].Kind)
	assert.Equal(t, "bad", diags[0].ElementID)
	assert.Equal(t, 8, diags[0].Offset)
	assert.Equal(t, diag.PathSyntaxError, diags[1].Kind)
	assert.Equal(t, "odd", diags[1].ElementID)
	assert.Equal(t, 2, diag.Failures(diags))
}

func TestAssembleShapes(t *testing.T) {
	doc, diags := assemble(t, Settings{Frames: 1, FrameRate: 1}, `<svg>
  <circle id="c" cx="5" cy="6" r="2" fill="orange"/>
  <ellipse id="e" cx="1" cy="2" rx="3" ry="4"/>
  <polygon id="pg" points="0,0 10,0 10,10"/>
  <polyline id="pl" points="0,0 10,0"/>
  <polygon id="empty"/>
  <circle id="neg" r="-1"/>
</svg>`)

	main := doc.Layers[0]
	require.Len(t, main.Groups, 4)
	assert.Equal(t, EllipseGeometry{Center: geometry.Point{X: 5, Y: 6}, Size: geometry.Point{X: 4, Y: 4}}, main.Groups[0].Geometry)
	assert.Equal(t, color.Black, main.Groups[0].Fill)
	assert.Equal(t, EllipseGeometry{Center: geometry.Point{X: 1, Y: 2}, Size: geometry.Point{X: 6, Y: 8}}, main.Groups[1].Geometry)

	pg := main.Groups[2].Geometry.(PathGeometry)
	require.Len(t, pg.Contours, 1)
	assert.True(t, pg.Contours[0].Closed)
	assert.Equal(t, 3, pg.Contours[0].Len())

	pl := main.Groups[3].Geometry.(PathGeometry)
	assert.False(t, pl.Contours[0].Closed)

	kinds := map[diag.Kind]int{}
	for _, d := range diags {
		kinds[d.Kind]++
	}
	assert.Equal(t, map[diag.Kind]int{
		diag.ColorResolutionFallback: 1,
		diag.PathSyntaxError:         1,
		diag.UnsupportedGeometry:     1,
	}, kinds)
}

func TestAssembleCustomResolver(t *testing.T) {
	tree, err := scene.LoadBytes([]byte(`<svg><rect fill="brand"/></svg>`))
	require.NoError(t, err)

	brand := color.Color{R: 0.2, G: 0.4, B: 0.6, A: 1}
	resolve := func(tok string) (color.Color, bool) {
		if tok == "brand" {
			return brand, true
		}
		return color.ResolveDetailed(tok)
	}
	doc, diags := Assemble(Settings{Frames: 1, FrameRate: 1}, tree, analyzer.Classify(tree), resolve)
	assert.Empty(t, diags)
	assert.Equal(t, brand, doc.Layers[0].Groups[0].Fill)
}

func TestWriteDocument(t *testing.T) {
	s := DefaultSettings()
	s.Name = "demo"
	doc, _ := assemble(t, s, `<svg width="100" height="50">
  <path id="tri" d="M0,0 L10,0 L10,10 Z" fill="red"/>
  <rect id="box"/>
  <g><circle id="dot"/></g>
</svg>`)

	path := filepath.Join(t.TempDir(), "demo.json")
	require.NoError(t, WriteDocument(doc, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var out struct {
		V      string  `json:"v"`
		Fr     float64 `json:"fr"`
		Op     float64 `json:"op"`
		W      float64 `json:"w"`
		H      float64 `json:"h"`
		Nm     string  `json:"nm"`
		Layers []struct {
			Ind    int    `json:"ind"`
			Ty     int    `json:"ty"`
			Nm     string `json:"nm"`
			Shapes []struct {
				Ty string           `json:"ty"`
				Nm string           `json:"nm"`
				It []map[string]any `json:"it"`
			} `json:"shapes"`
		} `json:"layers"`
	}
	require.NoError(t, json.Unmarshal(data, &out))

	assert.Equal(t, "demo", out.Nm)
	assert.Equal(t, 30.0, out.Fr)
	assert.Equal(t, 90.0, out.Op)
	assert.Equal(t, 100.0, out.W)
	assert.Equal(t, 50.0, out.H)

	// top-most first
	require.Len(t, out.Layers, 3)
	assert.Equal(t, "Group 1", out.Layers[0].Nm)
	assert.Equal(t, MainLayer, out.Layers[1].Nm)
	assert.Equal(t, BackgroundLayer, out.Layers[2].Nm)
	assert.Equal(t, 1, out.Layers[0].Ind)
	assert.Equal(t, 4, out.Layers[0].Ty)

	main := out.Layers[1].Shapes
	require.Len(t, main, 2)
	assert.Equal(t, "box", main[0].Nm)
	assert.Equal(t, "tri", main[1].Nm)

	tri := main[1].It
	require.Len(t, tri, 3)
	assert.Equal(t, "sh", tri[0]["ty"])
	assert.Equal(t, "fl", tri[1]["ty"])
	assert.Equal(t, "tr", tri[2]["ty"])

	ks := tri[0]["ks"].(map[string]any)["k"].(map[string]any)
	assert.Equal(t, true, ks["c"])
	assert.Equal(t, []any{[]any{0.0, 0.0}, []any{10.0, 0.0}, []any{10.0, 10.0}}, ks["v"])

	fill := tri[1]["c"].(map[string]any)["k"]
	assert.Equal(t, []any{1.0, 0.0, 0.0, 1.0}, fill)
	assert.Equal(t, 100.0, tri[1]["o"].(map[string]any)["k"])

	box := main[0].It[0]
	assert.Equal(t, "rc", box["ty"])
	assert.Equal(t, []any{5.0, 5.0}, box["p"].(map[string]any)["k"])
}
