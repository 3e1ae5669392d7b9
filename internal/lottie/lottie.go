// Package lottie holds the JSON wire model of a Lottie animation, limited to
// static shape layers.
package lottie

// Version is the bodymovin schema version written into every animation.
const Version = "5.7.4"

// Layer and shape type tags.
const (
	LayerShape = 4

	TypeGroup     = "gr"
	TypePath      = "sh"
	TypeRect      = "rc"
	TypeEllipse   = "el"
	TypeFill      = "fl"
	TypeTransform = "tr"
)

// Animation is the top-level document. Layers are listed top-most first.
type Animation struct {
	Version   string  `json:"v"`
	FrameRate float64 `json:"fr"`
	InPoint   float64 `json:"ip"`
	OutPoint  float64 `json:"op"`
	Width     float64 `json:"w"`
	Height    float64 `json:"h"`
	Name      string  `json:"nm"`
	ThreeD    int     `json:"ddd"`
	Assets    []any   `json:"assets"`
	Layers    []Layer `json:"layers"`
}

type Layer struct {
	ThreeD     int       `json:"ddd"`
	Index      int       `json:"ind"`
	Type       int       `json:"ty"`
	Name       string    `json:"nm"`
	Stretch    float64   `json:"sr"`
	Transform  Transform `json:"ks"`
	AutoOrient int       `json:"ao"`
	Shapes     []Shape   `json:"shapes"`
	InPoint    float64   `json:"ip"`
	OutPoint   float64   `json:"op"`
	StartTime  float64   `json:"st"`
	BlendMode  int       `json:"bm"`
}

// Value is a static (non-animated) property.
type Value struct {
	Animated int `json:"a"`
	K        any `json:"k"`
}

// Static wraps k as a non-animated property.
func Static(k any) Value { return Value{K: k} }

// Transform is a layer transform.
type Transform struct {
	Opacity  Value `json:"o"`
	Rotation Value `json:"r"`
	Position Value `json:"p"`
	Anchor   Value `json:"a"`
	Scale    Value `json:"s"`
}

// IdentityTransform leaves the layer where it is.
func IdentityTransform() Transform {
	return Transform{
		Opacity:  Static(100),
		Rotation: Static(0),
		Position: Static([]float64{0, 0, 0}),
		Anchor:   Static([]float64{0, 0, 0}),
		Scale:    Static([]float64{100, 100, 100}),
	}
}

// Shape is any item of a layer's or group's shape list.
type Shape interface {
	ShapeType() string
}

type Group struct {
	Type     string  `json:"ty"`
	Name     string  `json:"nm"`
	NumProps int     `json:"np"`
	Items    []Shape `json:"it"`
}

func (g Group) ShapeType() string { return g.Type }

// NewGroup returns a group whose item list ends with a transform, as players
// expect.
func NewGroup(name string, items ...Shape) Group {
	items = append(items, NewGroupTransform())
	return Group{Type: TypeGroup, Name: name, NumProps: len(items), Items: items}
}

// Bezier is the vertex data of one contour. In and Out are tangent offsets
// relative to the matching vertex.
type Bezier struct {
	Closed   bool         `json:"c"`
	Vertices [][2]float64 `json:"v"`
	In       [][2]float64 `json:"i"`
	Out      [][2]float64 `json:"o"`
}

type PathShape struct {
	Type  string `json:"ty"`
	Name  string `json:"nm"`
	Index int    `json:"ind"`
	Data  struct {
		Animated int    `json:"a"`
		K        Bezier `json:"k"`
	} `json:"ks"`
}

func (p PathShape) ShapeType() string { return p.Type }

func NewPath(name string, index int, b Bezier) PathShape {
	p := PathShape{Type: TypePath, Name: name, Index: index}
	p.Data.K = b
	return p
}

type RectShape struct {
	Type      string `json:"ty"`
	Name      string `json:"nm"`
	Direction int    `json:"d"`
	Position  Value  `json:"p"`
	Size      Value  `json:"s"`
	Roundness Value  `json:"r"`
}

func (r RectShape) ShapeType() string { return r.Type }

// NewRect takes the rectangle's center, not its corner.
func NewRect(name string, cx, cy, w, h float64) RectShape {
	return RectShape{
		Type:      TypeRect,
		Name:      name,
		Direction: 1,
		Position:  Static([]float64{cx, cy}),
		Size:      Static([]float64{w, h}),
		Roundness: Static(0),
	}
}

type EllipseShape struct {
	Type      string `json:"ty"`
	Name      string `json:"nm"`
	Direction int    `json:"d"`
	Position  Value  `json:"p"`
	Size      Value  `json:"s"`
}

func (e EllipseShape) ShapeType() string { return e.Type }

// NewEllipse takes the center and the full width and height.
func NewEllipse(name string, cx, cy, w, h float64) EllipseShape {
	return EllipseShape{
		Type:      TypeEllipse,
		Name:      name,
		Direction: 1,
		Position:  Static([]float64{cx, cy}),
		Size:      Static([]float64{w, h}),
	}
}

type Fill struct {
	Type    string `json:"ty"`
	Name    string `json:"nm"`
	Color   Value  `json:"c"`
	Opacity Value  `json:"o"`
	Rule    int    `json:"r"`
}

func (f Fill) ShapeType() string { return f.Type }

// NewFill converts a [0,1] alpha into the 0..100 opacity players use.
func NewFill(r, g, b, a float64) Fill {
	return Fill{
		Type:    TypeFill,
		Name:    "Fill",
		Color:   Static([]float64{r, g, b, 1}),
		Opacity: Static(a * 100),
		Rule:    1,
	}
}

type GroupTransform struct {
	Type     string `json:"ty"`
	Name     string `json:"nm"`
	Position Value  `json:"p"`
	Anchor   Value  `json:"a"`
	Scale    Value  `json:"s"`
	Rotation Value  `json:"r"`
	Opacity  Value  `json:"o"`
	Skew     Value  `json:"sk"`
	SkewAxis Value  `json:"sa"`
}

func (t GroupTransform) ShapeType() string { return t.Type }

func NewGroupTransform() GroupTransform {
	return GroupTransform{
		Type:     TypeTransform,
		Name:     "Transform",
		Position: Static([]float64{0, 0}),
		Anchor:   Static([]float64{0, 0}),
		Scale:    Static([]float64{100, 100}),
		Rotation: Static(0),
		Opacity:  Static(100),
		Skew:     Static(0),
		SkewAxis: Static(0),
	}
}

// NewShapeLayer returns a shape layer visible for the whole animation.
func NewShapeLayer(index int, name string, frames float64, shapes []Shape) Layer {
	if shapes == nil {
		shapes = []Shape{}
	}
	return Layer{
		Index:     index,
		Type:      LayerShape,
		Name:      name,
		Stretch:   1,
		Transform: IdentityTransform(),
		Shapes:    shapes,
		OutPoint:  frames,
	}
}
