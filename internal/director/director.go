// Package director assembles classified scene primitives into an animation
// document and writes it out as Lottie JSON.
package director

import (
	"errors"
	"fmt"
	"slices"

	"github.com/joshua23/animation-Build-hub/internal/analyzer"
	"github.com/joshua23/animation-Build-hub/internal/color"
	"github.com/joshua23/animation-Build-hub/internal/diag"
	"github.com/joshua23/animation-Build-hub/internal/geometry"
	"github.com/joshua23/animation-Build-hub/internal/scene"
)

// Settings controls document-wide values. Zero Width or Height means the
// scene's own size.
type Settings struct {
	Name       string
	Frames     int
	FrameRate  float64
	Width      float64
	Height     float64
	Background string
}

// DefaultSettings returns 90 frames at 30 fps on a white background.
func DefaultSettings() Settings {
	return Settings{
		Frames:     90,
		FrameRate:  30,
		Background: "#ffffff",
	}
}

// Resolver maps a colour token to a colour; ok is false when the default
// was substituted.
type Resolver func(token string) (c color.Color, ok bool)

// Director builds animation documents from classified scenes
type Director struct {
	Settings Settings
	Resolve  Resolver
}

// NewDirector creates a Director using the standard colour resolver.
func NewDirector(s Settings) *Director {
	return &Director{Settings: s, Resolve: color.ResolveDetailed}
}

// Assemble builds the document for one scene. Primitives that cannot be
// converted are left out and reported; the rest are still assembled. The
// returned diagnostics include the classifier's.
func (d *Director) Assemble(tree *scene.Tree, cls *analyzer.Classification) (*Document, []diag.Diagnostic) {
	resolve := d.Resolve
	if resolve == nil {
		resolve = color.ResolveDetailed
	}
	a := &assembly{resolve: resolve, diags: slices.Clone(cls.Diagnostics)}

	size := tree.Size()
	doc := &Document{
		Name:      d.Settings.Name,
		Width:     size.Width,
		Height:    size.Height,
		Frames:    d.Settings.Frames,
		FrameRate: d.Settings.FrameRate,
	}
	if d.Settings.Width > 0 {
		doc.Width = d.Settings.Width
	}
	if d.Settings.Height > 0 {
		doc.Height = d.Settings.Height
	}

	if bg := a.fill(d.Settings.Background, BackgroundLayer); bg.Visible() {
		doc.Layers = append(doc.Layers, Layer{
			Name: BackgroundLayer,
			Groups: []ShapeGroup{{
				ElementID: BackgroundLayer,
				Geometry: RectGeometry{
					Center: geometry.Point{X: doc.Width / 2, Y: doc.Height / 2},
					Size:   geometry.Point{X: doc.Width, Y: doc.Height},
				},
				Fill: bg,
			}},
		})
	}

	doc.Layers = append(doc.Layers, Layer{Name: MainLayer, Groups: a.groups(cls, cls.TopLevel)})
	for i, gid := range cls.TopLevelGroups {
		doc.Layers = append(doc.Layers, Layer{
			Name:   fmt.Sprintf("Group %d", i+1),
			Groups: a.groups(cls, cls.Members[gid]),
		})
	}

	return doc, a.diags
}

// Assemble is a shorthand for NewDirector(s).Assemble with an explicit
// resolver.
func Assemble(s Settings, tree *scene.Tree, cls *analyzer.Classification, resolve Resolver) (*Document, []diag.Diagnostic) {
	d := NewDirector(s)
	if resolve != nil {
		d.Resolve = resolve
	}
	return d.Assemble(tree, cls)
}

// assembly carries per-document state.
type assembly struct {
	resolve Resolver
	diags   []diag.Diagnostic
}

func (a *assembly) fill(token, id string) color.Color {
	c, ok := a.resolve(token)
	if !ok {
		a.diags = append(a.diags, diag.New(diag.ColorResolutionFallback, id,
			"colour %q not recognised, using black", token))
	}
	return c
}

func (a *assembly) groups(cls *analyzer.Classification, ids []string) []ShapeGroup {
	var out []ShapeGroup
	for _, id := range ids {
		p, ok := cls.Primitive(id)
		if !ok {
			continue
		}
		g, err := buildGeometry(p)
		if err != nil {
			a.diags = append(a.diags, elementDiagnostic(id, err))
			continue
		}
		out = append(out, ShapeGroup{ElementID: id, Geometry: g, Fill: a.fill(p.FillToken(), id)})
	}
	return out
}

var errNoGeometry = errors.New("element has no drawable geometry")

func buildGeometry(p analyzer.Primitive) (Geometry, error) {
	switch r := p.(type) {
	case analyzer.PathRecord:
		contours, err := geometry.Translate(r.D)
		if err != nil {
			return nil, err
		}
		if len(contours) == 0 {
			return nil, errNoGeometry
		}
		return PathGeometry{Contours: contours}, nil
	case analyzer.RectRecord:
		if r.W < 0 || r.H < 0 {
			return nil, fmt.Errorf("negative rect size %gx%g", r.W, r.H)
		}
		return RectGeometry{
			Center: geometry.Point{X: r.X + r.W/2, Y: r.Y + r.H/2},
			Size:   geometry.Point{X: r.W, Y: r.H},
		}, nil
	case analyzer.CircleRecord:
		if r.R < 0 {
			return nil, fmt.Errorf("negative radius %g", r.R)
		}
		return EllipseGeometry{
			Center: geometry.Point{X: r.CX, Y: r.CY},
			Size:   geometry.Point{X: 2 * r.R, Y: 2 * r.R},
		}, nil
	case analyzer.EllipseRecord:
		if r.RX < 0 || r.RY < 0 {
			return nil, fmt.Errorf("negative radii %g,%g", r.RX, r.RY)
		}
		return EllipseGeometry{
			Center: geometry.Point{X: r.CX, Y: r.CY},
			Size:   geometry.Point{X: 2 * r.RX, Y: 2 * r.RY},
		}, nil
	case analyzer.PolyRecord:
		vp, err := geometry.ParsePoints(r.Points, r.Closed)
		if err != nil {
			return nil, err
		}
		return PathGeometry{Contours: []geometry.VertexPath{vp}}, nil
	}
	return nil, fmt.Errorf("unsupported primitive %T", p)
}

func elementDiagnostic(id string, err error) diag.Diagnostic {
	var pe *geometry.PathSyntaxError
	if errors.As(err, &pe) {
		d := diag.New(diag.PathSyntaxError, id, "%s", pe.Msg)
		d.Offset = pe.Offset
		return d
	}
	return diag.New(diag.UnsupportedGeometry, id, "%v", err)
}
