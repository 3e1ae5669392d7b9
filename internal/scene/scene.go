// Package scene loads SVG documents into an immutable node tree with stable
// element identifiers.
package scene

import (
	"fmt"
	"maps"
	"slices"
)

// NodeKind is the closed set of element kinds the pipeline distinguishes.
type NodeKind int

const (
	Other NodeKind = iota
	Group
	Path
	Rect
	Circle
	Ellipse
	Polygon
	Polyline
)

var kindByTag = map[string]NodeKind{
	"g":        Group,
	"path":     Path,
	"rect":     Rect,
	"circle":   Circle,
	"ellipse":  Ellipse,
	"polygon":  Polygon,
	"polyline": Polyline,
}

// KindOf maps an element's local tag name to its kind.
func KindOf(tag string) NodeKind {
	return kindByTag[tag]
}

func (k NodeKind) String() string {
	switch k {
	case Group:
		return "group"
	case Path:
		return "path"
	case Rect:
		return "rect"
	case Circle:
		return "circle"
	case Ellipse:
		return "ellipse"
	case Polygon:
		return "polygon"
	case Polyline:
		return "polyline"
	default:
		return "other"
	}
}

// IsShape reports whether k is one of the basic shapes.
func (k NodeKind) IsShape() bool {
	switch k {
	case Rect, Circle, Ellipse, Polygon, Polyline:
		return true
	}
	return false
}

// Node is one element. Parent is a lookup key into the same Tree, empty for
// the root.
type Node struct {
	ID       string
	Kind     NodeKind
	Tag      string
	Parent   string
	Children []string
	Attrs    map[string]string
}

// Attr returns the attribute value and whether it was present.
func (n Node) Attr(name string) (string, bool) {
	v, ok := n.Attrs[name]
	return v, ok
}

func (n Node) clone() Node {
	n.Children = slices.Clone(n.Children)
	n.Attrs = maps.Clone(n.Attrs)
	return n
}

// Size is the document canvas.
type Size struct {
	Width  float64
	Height float64
}

func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}

// Default canvas used when the root element has no width or height.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Tree is a loaded document. It is never modified after Load returns;
// accessors hand out copies.
type Tree struct {
	root  string
	nodes map[string]*Node
	order []string
	size  Size

	// Warnings lists identifier collisions that were renamed during load.
	Warnings []string
}

// Root returns the identifier of the document element.
func (t *Tree) Root() string { return t.root }

// Node returns a copy of the node with the given identifier.
func (t *Tree) Node(id string) (Node, bool) {
	n, ok := t.nodes[id]
	if !ok {
		return Node{}, false
	}
	return n.clone(), true
}

// Children returns the ordered child identifiers of id.
func (t *Tree) Children(id string) []string {
	if n, ok := t.nodes[id]; ok {
		return slices.Clone(n.Children)
	}
	return nil
}

// IDs returns every identifier in document (pre-order) order.
func (t *Tree) IDs() []string { return slices.Clone(t.order) }

// Len returns the number of elements.
func (t *Tree) Len() int { return len(t.order) }

// Size returns the canvas dimensions.
func (t *Tree) Size() Size { return t.size }

// Walk visits nodes depth-first in document order. Returning false from fn
// skips that node's children.
func (t *Tree) Walk(fn func(n Node, depth int) bool) {
	if t.root == "" {
		return
	}
	var visit func(id string, depth int)
	visit = func(id string, depth int) {
		n := t.nodes[id]
		if !fn(n.clone(), depth) {
			return
		}
		for _, c := range n.Children {
			visit(c, depth+1)
		}
	}
	visit(t.root, 0)
}
