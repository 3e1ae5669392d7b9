package analyzer

import "github.com/joshua23/animation-Build-hub/internal/scene"

// DefaultFill is the paint used when an element names none.
const DefaultFill = "black"

// Primitive is the extracted payload of one drawable element. The set of
// implementations is closed: PathRecord, RectRecord, CircleRecord,
// EllipseRecord and PolyRecord.
type Primitive interface {
	ElementID() string
	Kind() scene.NodeKind
	FillToken() string
	primitive()
}

// Meta is shared by every record.
type Meta struct {
	ID   string
	Fill string
}

func (m Meta) ElementID() string { return m.ID }
func (m Meta) FillToken() string { return m.Fill }
func (Meta) primitive()          {}

// PathRecord holds raw path data.
type PathRecord struct {
	Meta
	D string
}

func (PathRecord) Kind() scene.NodeKind { return scene.Path }

type RectRecord struct {
	Meta
	X, Y, W, H float64
}

func (RectRecord) Kind() scene.NodeKind { return scene.Rect }

type CircleRecord struct {
	Meta
	CX, CY, R float64
}

func (CircleRecord) Kind() scene.NodeKind { return scene.Circle }

type EllipseRecord struct {
	Meta
	CX, CY, RX, RY float64
}

func (EllipseRecord) Kind() scene.NodeKind { return scene.Ellipse }

// PolyRecord is a polygon (Closed) or polyline.
type PolyRecord struct {
	Meta
	Points string
	Closed bool
}

func (r PolyRecord) Kind() scene.NodeKind {
	if r.Closed {
		return scene.Polygon
	}
	return scene.Polyline
}
