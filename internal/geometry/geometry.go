// Package geometry translates SVG path data into vertex paths: anchor points
// with incoming and outgoing Bézier tangents, the form Lottie shapes use.
package geometry

import (
	"fmt"
	"math"
)

// Point is a 2D position or offset.
type Point struct {
	X, Y float64
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Mul scales p by f.
func (p Point) Mul(f float64) Point { return Point{p.X * f, p.Y * f} }

// IsZero reports whether p is the origin.
func (p Point) IsZero() bool { return p.X == 0 && p.Y == 0 }

// Equals compares with a small relative tolerance.
func (p Point) Equals(q Point) bool { return nearlyEqual(p.X, q.X) && nearlyEqual(p.Y, q.Y) }

const epsilon = 1e-9

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= epsilon*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

// Vertex is an anchor with tangent offsets relative to its position.
// A zero offset on both sides of a segment makes it straight.
type Vertex struct {
	Pos Point
	In  Point
	Out Point
}

// VertexPath is one contour. When Closed is set the segment from the last
// vertex back to the first is part of the shape; the first vertex is not
// repeated at the end.
type VertexPath struct {
	Vertices []Vertex
	Closed   bool
}

// Len returns the number of vertices.
func (vp VertexPath) Len() int { return len(vp.Vertices) }

// Segments calls fn for every drawn segment, including the closing one.
func (vp VertexPath) Segments(fn func(from, c1, c2, to Point)) {
	n := len(vp.Vertices)
	if n < 2 {
		return
	}
	last := n - 1
	if vp.Closed {
		last = n
	}
	for i := 0; i < last; i++ {
		a, b := vp.Vertices[i], vp.Vertices[(i+1)%n]
		fn(a.Pos, a.Pos.Add(a.Out), b.Pos.Add(b.In), b.Pos)
	}
}

// Straight reports whether every segment is a straight line.
func (vp VertexPath) Straight() bool {
	for _, v := range vp.Vertices {
		if !v.In.IsZero() || !v.Out.IsZero() {
			return false
		}
	}
	return true
}

// Bounds returns the box spanned by anchors and control points.
func (vp VertexPath) Bounds() (min, max Point) {
	if len(vp.Vertices) == 0 {
		return
	}
	min = vp.Vertices[0].Pos
	max = min
	grow := func(p Point) {
		min.X, min.Y = math.Min(min.X, p.X), math.Min(min.Y, p.Y)
		max.X, max.Y = math.Max(max.X, p.X), math.Max(max.Y, p.Y)
	}
	for _, v := range vp.Vertices {
		grow(v.Pos)
		grow(v.Pos.Add(v.In))
		grow(v.Pos.Add(v.Out))
	}
	return
}

// PathSyntaxError reports unparseable path data.
type PathSyntaxError struct {
	Offset int
	Msg    string
}

func (e *PathSyntaxError) Error() string {
	return fmt.Sprintf("bad path data at offset %d: %s", e.Offset, e.Msg)
}
