package analyzer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshua23/animation-Build-hub/internal/diag"
	"github.com/joshua23/animation-Build-hub/internal/scene"
)

func load(t *testing.T, doc string) *scene.Tree {
	t.Helper()
	tree, err := scene.LoadBytes([]byte(doc))
	require.NoError(t, err)
	return tree
}

const nested = `<svg>
  <path id="p0" d="M0,0 L1,1"/>
  <g id="g1">
    <rect id="r1"/>
    <g id="g2">
      <circle id="c1" r="3"/>
    </g>
  </g>
  <defs><polygon id="poly" points="0,0 1,0 1,1"/></defs>
  <g id="g3"><ellipse id="e1" rx="2" ry="1"/></g>
  <polyline id="pl" points="0,0 5,5"/>
</svg>`

func TestClassify(t *testing.T) {
	c := Classify(load(t, nested))

	assert.Equal(t, []string{"g1", "g2", "g3"}, c.Groups)
	assert.Equal(t, []string{"p0"}, c.Paths)
	assert.Equal(t, []string{"r1", "c1", "poly", "e1", "pl"}, c.Shapes)
	assert.Equal(t, []string{"p0", "poly", "pl"}, c.TopLevel)
	assert.Equal(t, []string{"g1", "g3"}, c.TopLevelGroups)
	assert.Equal(t, map[string][]string{
		"g1": {"r1", "c1"},
		"g3": {"e1"},
	}, c.Members)
	assert.False(t, c.IsFlat())
	assert.Empty(t, c.Diagnostics)
}

func TestByType(t *testing.T) {
	c := Classify(load(t, nested))

	tests := []struct {
		kind scene.NodeKind
		want []string
	}{
		{scene.Group, []string{"g1", "g2", "g3"}},
		{scene.Path, []string{"p0"}},
		{scene.Rect, []string{"r1"}},
		{scene.Circle, []string{"c1"}},
		{scene.Ellipse, []string{"e1"}},
		{scene.Polygon, []string{"poly"}},
		{scene.Polyline, []string{"pl"}},
		{scene.Other, nil},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, c.ByType(tt.kind))
		})
	}
}

func TestExtractDefaults(t *testing.T) {
	c := Classify(load(t, `<svg>
  <rect id="r"/>
  <circle id="c"/>
  <ellipse id="e"/>
  <path id="p"/>
  <polygon id="pg"/>
</svg>`))

	assert.Equal(t, RectRecord{Meta: Meta{"r", "black"}, W: 10, H: 10}, c.Primitives["r"])
	assert.Equal(t, CircleRecord{Meta: Meta{"c", "black"}, R: 5}, c.Primitives["c"])
	assert.Equal(t, EllipseRecord{Meta: Meta{"e", "black"}, RX: 5, RY: 5}, c.Primitives["e"])
	assert.Equal(t, PathRecord{Meta: Meta{"p", "black"}, D: "M0,0"}, c.Primitives["p"])
	assert.Equal(t, PolyRecord{Meta: Meta{"pg", "black"}, Closed: true}, c.Primitives["pg"])
	assert.Empty(t, c.Diagnostics)
}

func TestExtractValues(t *testing.T) {
	c := Classify(load(t, `<svg>
  <rect id="r" x="1" y="2.5" width="30px" height=" 40 " fill="#f00"/>
  <circle id="c" cx="7" cy="8" r="9" style="stroke: red; fill: blue"/>
  <path id="p" d="M1,2 L3,4" fill=" green "/>
</svg>`))

	assert.Equal(t, RectRecord{Meta: Meta{"r", "#f00"}, X: 1, Y: 2.5, W: 30, H: 40}, c.Primitives["r"])
	assert.Equal(t, CircleRecord{Meta: Meta{"c", "blue"}, CX: 7, CY: 8, R: 9}, c.Primitives["c"])
	assert.Equal(t, PathRecord{Meta: Meta{"p", "green"}, D: "M1,2 L3,4"}, c.Primitives["p"])
	assert.Equal(t, scene.Path, c.Primitives["p"].Kind())
}

func TestExtractFallbackDiagnostics(t *testing.T) {
	c := Classify(load(t, `<svg><circle id="c" r="big" cx="1e"/></svg>`))

	assert.Equal(t, CircleRecord{Meta: Meta{"c", "black"}, R: 5}, c.Primitives["c"])
	require.Len(t, c.Diagnostics, 2)
	for _, d := range c.Diagnostics {
		assert.Equal(t, diag.AttributeFallback, d.Kind)
		assert.Equal(t, "c", d.ElementID)
	}
	assert.Zero(t, diag.Failures(c.Diagnostics))
}

func TestIsFlat(t *testing.T) {
	doc := func(groups, paths int) string {
		var b strings.Builder
		b.WriteString("<svg>")
		for i := 0; i < groups; i++ {
			b.WriteString("<g/>")
		}
		for i := 0; i < paths; i++ {
			fmt.Fprintf(&b, `<path d="M%d,0"/>`, i)
		}
		b.WriteString("</svg>")
		return b.String()
	}

	tests := []struct {
		groups, paths int
		want          bool
	}{
		{0, 21, true},
		{2, 21, true},
		{3, 21, false},
		{0, 20, false},
		{0, 0, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%dg_%dp", tt.groups, tt.paths), func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(load(t, doc(tt.groups, tt.paths))).IsFlat())
		})
	}
}
