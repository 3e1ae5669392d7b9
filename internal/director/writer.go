package director

import (
	"encoding/json"
	"os"
	"slices"

	"github.com/joshua23/animation-Build-hub/internal/geometry"
	"github.com/joshua23/animation-Build-hub/internal/lottie"
)

// Encode converts doc to the Lottie wire model. Players draw the first
// layer on top, so layer and group order is reversed from paint order.
func Encode(doc *Document) *lottie.Animation {
	frames := float64(doc.Frames)
	an := &lottie.Animation{
		Version:   lottie.Version,
		FrameRate: doc.FrameRate,
		OutPoint:  frames,
		Width:     doc.Width,
		Height:    doc.Height,
		Name:      doc.Name,
		Assets:    []any{},
		Layers:    make([]lottie.Layer, 0, len(doc.Layers)),
	}

	layers := slices.Clone(doc.Layers)
	slices.Reverse(layers)
	for i, l := range layers {
		shapes := make([]lottie.Shape, 0, len(l.Groups))
		for j := len(l.Groups) - 1; j >= 0; j-- {
			shapes = append(shapes, encodeGroup(l.Groups[j]))
		}
		an.Layers = append(an.Layers, lottie.NewShapeLayer(i+1, l.Name, frames, shapes))
	}
	return an
}

func encodeGroup(g ShapeGroup) lottie.Group {
	var items []lottie.Shape
	switch geo := g.Geometry.(type) {
	case PathGeometry:
		for i, c := range geo.Contours {
			items = append(items, lottie.NewPath("Path", i, bezier(c)))
		}
	case RectGeometry:
		items = append(items, lottie.NewRect("Rect", geo.Center.X, geo.Center.Y, geo.Size.X, geo.Size.Y))
	case EllipseGeometry:
		items = append(items, lottie.NewEllipse("Ellipse", geo.Center.X, geo.Center.Y, geo.Size.X, geo.Size.Y))
	}
	items = append(items, lottie.NewFill(g.Fill.R, g.Fill.G, g.Fill.B, g.Fill.A))
	return lottie.NewGroup(g.ElementID, items...)
}

func bezier(vp geometry.VertexPath) lottie.Bezier {
	b := lottie.Bezier{
		Closed:   vp.Closed,
		Vertices: make([][2]float64, len(vp.Vertices)),
		In:       make([][2]float64, len(vp.Vertices)),
		Out:      make([][2]float64, len(vp.Vertices)),
	}
	for i, v := range vp.Vertices {
		b.Vertices[i] = [2]float64{v.Pos.X, v.Pos.Y}
		b.In[i] = [2]float64{v.In.X, v.In.Y}
		b.Out[i] = [2]float64{v.Out.X, v.Out.Y}
	}
	return b
}

// Marshal returns the Lottie JSON for doc.
func Marshal(doc *Document) ([]byte, error) {
	return json.Marshal(Encode(doc))
}

// WriteDocument writes doc as Lottie JSON to path.
func WriteDocument(doc *Document, path string) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
