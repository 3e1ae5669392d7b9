package geometry

import (
	"fmt"
)

// argCount is the number of values one repetition of each command consumes.
var argCount = map[byte]int{
	'M': 2, 'L': 2, 'H': 1, 'V': 1, 'C': 6, 'S': 4, 'Q': 4, 'T': 2, 'A': 7, 'Z': 0,
}

func upper(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// Translate parses SVG path data into contours, one per subpath.
//
// Quadratic segments are degree-elevated and arcs approximated, so every
// curved segment comes out as a cubic expressed through vertex tangents.
// Empty data yields no contours and no error.
func Translate(d string) ([]VertexPath, error) {
	sc := &scanner{s: d}
	sc.skipSeparators()
	if sc.done() {
		return nil, nil
	}
	if c := sc.peek(); c != 'M' && c != 'm' {
		return nil, &PathSyntaxError{Offset: sc.i, Msg: fmt.Sprintf("path must start with a moveto, found %q", c)}
	}

	var (
		b        builder
		args     [7]float64
		prev     byte // last executed command
		repeat   byte // command implied by bare numbers
		lastC2   Point
		lastQuad Point
	)

	for {
		sc.skipSeparators()
		if sc.done() {
			break
		}

		var cmd byte
		c := sc.peek()
		switch {
		case isCommand(c):
			cmd = c
			sc.i++
		case sc.startsNumber() && repeat != 0:
			cmd = repeat
		case sc.startsNumber():
			return nil, &PathSyntaxError{Offset: sc.i, Msg: "number after closepath without a command"}
		default:
			return nil, &PathSyntaxError{Offset: sc.i, Msg: fmt.Sprintf("unknown command %q", c)}
		}

		CMD := upper(cmd)
		for j := 0; j < argCount[CMD]; j++ {
			sc.skipSeparators()
			if CMD == 'A' && (j == 3 || j == 4) {
				f, ok := sc.flag()
				if !ok {
					return nil, &PathSyntaxError{Offset: sc.i, Msg: fmt.Sprintf("arc flag must be 0 or 1 in command %q", cmd)}
				}
				args[j] = 0
				if f {
					args[j] = 1
				}
				continue
			}
			v, n := sc.number()
			if n == 0 {
				return nil, &PathSyntaxError{
					Offset: sc.i,
					Msg:    fmt.Sprintf("command %q needs %d numbers, got %d", cmd, argCount[CMD], j),
				}
			}
			args[j] = v
		}

		p0 := b.pos
		rel := cmd != CMD
		abs := func(x, y float64) Point {
			if rel {
				return Point{p0.X + x, p0.Y + y}
			}
			return Point{x, y}
		}

		switch CMD {
		case 'M':
			b.moveTo(abs(args[0], args[1]))
			if rel {
				repeat = 'l'
			} else {
				repeat = 'L'
			}
		case 'L':
			b.lineTo(abs(args[0], args[1]))
			repeat = cmd
		case 'H':
			x := args[0]
			if rel {
				x += p0.X
			}
			b.lineTo(Point{x, p0.Y})
			repeat = cmd
		case 'V':
			y := args[0]
			if rel {
				y += p0.Y
			}
			b.lineTo(Point{p0.X, y})
			repeat = cmd
		case 'C':
			c1, c2, p := abs(args[0], args[1]), abs(args[2], args[3]), abs(args[4], args[5])
			b.cubicTo(c1, c2, p)
			lastC2 = c2
			repeat = cmd
		case 'S':
			c1 := p0
			if u := upper(prev); u == 'C' || u == 'S' {
				c1 = p0.Mul(2).Sub(lastC2)
			}
			c2, p := abs(args[0], args[1]), abs(args[2], args[3])
			b.cubicTo(c1, c2, p)
			lastC2 = c2
			repeat = cmd
		case 'Q':
			q, p := abs(args[0], args[1]), abs(args[2], args[3])
			b.quadTo(q, p)
			lastQuad = q
			repeat = cmd
		case 'T':
			q := p0
			if u := upper(prev); u == 'Q' || u == 'T' {
				q = p0.Mul(2).Sub(lastQuad)
			}
			p := abs(args[0], args[1])
			b.quadTo(q, p)
			lastQuad = q
			repeat = cmd
		case 'A':
			p := abs(args[5], args[6])
			b.arcTo(args[0], args[1], args[2], args[3] == 1, args[4] == 1, p)
			repeat = cmd
		case 'Z':
			b.close()
			repeat = 0
		}
		prev = cmd
	}

	return b.finish(), nil
}

// builder accumulates contours while the command loop walks the data.
type builder struct {
	contours []VertexPath
	current  *VertexPath
	start    Point
	pos      Point
}

func (b *builder) moveTo(p Point) {
	b.flush()
	b.current = &VertexPath{Vertices: []Vertex{{Pos: p}}}
	b.start, b.pos = p, p
}

// ensure reopens a contour at the current point after a closepath.
func (b *builder) ensure() {
	if b.current == nil {
		b.current = &VertexPath{Vertices: []Vertex{{Pos: b.pos}}}
		b.start = b.pos
	}
}

func (b *builder) lineTo(p Point) {
	b.ensure()
	b.current.Vertices = append(b.current.Vertices, Vertex{Pos: p})
	b.pos = p
}

func (b *builder) cubicTo(c1, c2, p Point) {
	b.ensure()
	vs := b.current.Vertices
	last := &vs[len(vs)-1]
	last.Out = c1.Sub(last.Pos)
	b.current.Vertices = append(vs, Vertex{Pos: p, In: c2.Sub(p)})
	b.pos = p
}

// quadTo elevates a quadratic to the equivalent cubic.
func (b *builder) quadTo(q, p Point) {
	p0 := b.pos
	c1 := p0.Add(q.Sub(p0).Mul(2.0 / 3.0))
	c2 := p.Add(q.Sub(p).Mul(2.0 / 3.0))
	b.cubicTo(c1, c2, p)
}

func (b *builder) close() {
	if b.current == nil {
		return
	}
	vs := b.current.Vertices
	if n := len(vs); n > 1 && vs[n-1].Pos.Equals(vs[0].Pos) {
		vs[0].In = vs[n-1].In
		vs = vs[:n-1]
	}
	b.current.Vertices = vs
	b.current.Closed = true
	b.flush()
	b.pos = b.start
}

func (b *builder) flush() {
	if b.current != nil {
		b.contours = append(b.contours, *b.current)
		b.current = nil
	}
}

func (b *builder) finish() []VertexPath {
	b.flush()
	return b.contours
}

// ParsePoints reads a points attribute (polygon, polyline) into one contour.
// An odd trailing coordinate is an error.
func ParsePoints(points string, closed bool) (VertexPath, error) {
	sc := &scanner{s: points}
	var vp VertexPath
	for {
		sc.skipSeparators()
		if sc.done() {
			break
		}
		x, n := sc.number()
		if n == 0 {
			return VertexPath{}, &PathSyntaxError{Offset: sc.i, Msg: fmt.Sprintf("unexpected %q in points", sc.peek())}
		}
		sc.skipSeparators()
		y, n := sc.number()
		if n == 0 {
			return VertexPath{}, &PathSyntaxError{Offset: sc.i, Msg: "points need an even number of coordinates"}
		}
		vp.Vertices = append(vp.Vertices, Vertex{Pos: Point{x, y}})
	}
	if len(vp.Vertices) == 0 {
		return VertexPath{}, &PathSyntaxError{Offset: 0, Msg: "no points"}
	}
	if closed {
		if n := len(vp.Vertices); n > 1 && vp.Vertices[n-1].Pos.Equals(vp.Vertices[0].Pos) {
			vp.Vertices = vp.Vertices[:n-1]
		}
		vp.Closed = true
	}
	return vp, nil
}
