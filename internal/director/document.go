package director

import (
	"github.com/joshua23/animation-Build-hub/internal/color"
	"github.com/joshua23/animation-Build-hub/internal/geometry"
)

// Layer names.
const (
	BackgroundLayer = "Background"
	MainLayer       = "Main Elements"
)

// Document is an assembled animation. Layers are in paint order: the first
// layer is drawn first. A Document is not modified after Assemble returns it.
type Document struct {
	Name      string
	Width     float64
	Height    float64
	Frames    int
	FrameRate float64
	Layers    []Layer
}

// Layer is a named, ordered list of shape groups.
type Layer struct {
	Name   string
	Groups []ShapeGroup
}

// ShapeGroup pairs one geometry with one fill.
type ShapeGroup struct {
	ElementID string
	Geometry  Geometry
	Fill      color.Color
}

// Geometry is one of PathGeometry, RectGeometry or EllipseGeometry.
type Geometry interface {
	geometry()
}

// PathGeometry holds translated contours.
type PathGeometry struct {
	Contours []geometry.VertexPath
}

// RectGeometry is an axis-aligned rectangle given by center and size.
type RectGeometry struct {
	Center geometry.Point
	Size   geometry.Point
}

// EllipseGeometry is given by center and full width and height.
type EllipseGeometry struct {
	Center geometry.Point
	Size   geometry.Point
}

func (PathGeometry) geometry()    {}
func (RectGeometry) geometry()    {}
func (EllipseGeometry) geometry() {}

// Layer returns the first layer with the given name.
func (d *Document) Layer(name string) (Layer, bool) {
	for _, l := range d.Layers {
		if l.Name == name {
			return l, true
		}
	}
	return Layer{}, false
}

// ShapeCount returns the number of shape groups across all layers.
func (d *Document) ShapeCount() int {
	n := 0
	for _, l := range d.Layers {
		n += len(l.Groups)
	}
	return n
}
