package geometry

import (
	"math"
)

// arcTo appends an elliptical arc from the current point to p as cubic
// segments of at most 90 degrees each. rot is in degrees.
func (b *builder) arcTo(rx, ry, rot float64, large, sweep bool, p Point) {
	p0 := b.pos
	if p0.Equals(p) {
		return
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		b.lineTo(p)
		return
	}

	cx, cy, rx, ry, phi, theta, delta := arcCenter(p0, p, rx, ry, rot, large, sweep)

	n := int(math.Ceil(math.Abs(delta) / (math.Pi / 2)))
	if n < 1 {
		n = 1
	}
	step := delta / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)

	sinPhi, cosPhi := math.Sincos(phi)
	at := func(t float64) (pos, deriv Point) {
		sin, cos := math.Sincos(t)
		pos = Point{
			cx + rx*cos*cosPhi - ry*sin*sinPhi,
			cy + rx*cos*sinPhi + ry*sin*cosPhi,
		}
		deriv = Point{
			-rx*sin*cosPhi - ry*cos*sinPhi,
			-rx*sin*sinPhi + ry*cos*cosPhi,
		}
		return
	}

	t1 := theta
	from, d1 := at(t1)
	for i := 0; i < n; i++ {
		t2 := t1 + step
		to, d2 := at(t2)
		if i == n-1 {
			// land exactly on the requested endpoint
			to = p
		}
		b.cubicTo(from.Add(d1.Mul(k)), to.Sub(d2.Mul(k)), to)
		t1, from, d1 = t2, to, d2
	}
}

// arcCenter converts endpoint arc parameters to center form. Radii that are
// too small to span the endpoints are scaled up. It returns the center, the
// corrected radii, the rotation in radians, the start angle and the sweep.
func arcCenter(p0, p Point, rx, ry, rot float64, large, sweep bool) (cx, cy, rxOut, ryOut, phi, theta, delta float64) {
	phi = rot * math.Pi / 180
	sinPhi, cosPhi := math.Sincos(phi)

	dx, dy := (p0.X-p.X)/2, (p0.Y-p.Y)/2
	x1 := cosPhi*dx + sinPhi*dy
	y1 := -sinPhi*dx + cosPhi*dy

	if lambda := x1*x1/(rx*rx) + y1*y1/(ry*ry); lambda > 1 {
		s := math.Sqrt(lambda)
		rx, ry = rx*s, ry*s
	}

	num := rx*rx*ry*ry - rx*rx*y1*y1 - ry*ry*x1*x1
	den := rx*rx*y1*y1 + ry*ry*x1*x1
	coef := 0.0
	if den != 0 && num > 0 {
		coef = math.Sqrt(num / den)
	}
	if large == sweep {
		coef = -coef
	}
	cx1 := coef * rx * y1 / ry
	cy1 := -coef * ry * x1 / rx

	cx = cosPhi*cx1 - sinPhi*cy1 + (p0.X+p.X)/2
	cy = sinPhi*cx1 + cosPhi*cy1 + (p0.Y+p.Y)/2

	ux, uy := (x1-cx1)/rx, (y1-cy1)/ry
	vx, vy := (-x1-cx1)/rx, (-y1-cy1)/ry
	theta = vectorAngle(1, 0, ux, uy)
	delta = vectorAngle(ux, uy, vx, vy)
	if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	} else if sweep && delta < 0 {
		delta += 2 * math.Pi
	}
	return cx, cy, rx, ry, phi, theta, delta
}

func vectorAngle(ux, uy, vx, vy float64) float64 {
	return math.Atan2(ux*vy-uy*vx, ux*vx+uy*vy)
}
