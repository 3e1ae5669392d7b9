// Package renderer rasterises an assembled document into a still poster
// image.
package renderer

import (
	"fmt"
	"image"
	stdcolor "image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/vector"

	"github.com/joshua23/animation-Build-hub/internal/color"
	"github.com/joshua23/animation-Build-hub/internal/director"
	"github.com/joshua23/animation-Build-hub/internal/geometry"
	"github.com/joshua23/animation-Build-hub/internal/system"
)

// MaxScale bounds the poster scale factor.
const MaxScale = 8

// MaxPixels bounds the poster area, 256 MiB of RGBA.
const MaxPixels = 1 << 26

// kappa places cubic control points for a quarter ellipse.
const kappa = 0.5522847498307936

// Render paints every layer of doc in order onto a fresh image. The image
// comes from the shared pool; hand it back with system.PutImage when done.
func Render(doc *director.Document, scale float64) (*image.RGBA, error) {
	if scale <= 0 || scale > MaxScale {
		return nil, fmt.Errorf("poster scale %g out of range (0, %d]", scale, MaxScale)
	}
	fw, fh := math.Ceil(doc.Width*scale), math.Ceil(doc.Height*scale)
	if fw*fh > MaxPixels {
		return nil, fmt.Errorf("poster %gx%g exceeds %d pixels", fw, fh, MaxPixels)
	}
	w, h := int(fw), int(fh)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("cannot render a %dx%d poster", w, h)
	}

	bounds := image.Rect(0, 0, w, h)
	img := system.GetImage(bounds)
	draw.Draw(img, bounds, image.Transparent, image.Point{}, draw.Src)

	r := vector.NewRasterizer(w, h)
	for _, l := range doc.Layers {
		for _, g := range l.Groups {
			if !g.Fill.Visible() {
				continue
			}
			r.Reset(w, h)
			p := pen{r: r, scale: float32(scale)}
			switch geo := g.Geometry.(type) {
			case director.PathGeometry:
				for _, c := range geo.Contours {
					p.contour(c)
				}
			case director.RectGeometry:
				p.rect(geo.Center, geo.Size)
			case director.EllipseGeometry:
				p.ellipse(geo.Center, geo.Size)
			}
			r.Draw(img, bounds, image.NewUniform(toNRGBA(g.Fill)), image.Point{})
		}
	}
	return img, nil
}

// WritePNG renders doc and encodes it to path.
func WritePNG(doc *director.Document, scale float64, path string) error {
	img, err := Render(doc, scale)
	if err != nil {
		return err
	}
	defer system.PutImage(img)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode poster: %w", err)
	}
	return f.Close()
}

func toNRGBA(c color.Color) stdcolor.NRGBA {
	ch := func(v float64) uint8 { return uint8(math.Round(v * 255)) }
	return stdcolor.NRGBA{R: ch(c.R), G: ch(c.G), B: ch(c.B), A: ch(c.A)}
}

// pen feeds scaled document coordinates to the rasterizer.
type pen struct {
	r     *vector.Rasterizer
	scale float32
}

func (p pen) pt(q geometry.Point) (float32, float32) {
	return float32(q.X) * p.scale, float32(q.Y) * p.scale
}

func (p pen) moveTo(q geometry.Point) { p.r.MoveTo(p.pt(q)) }
func (p pen) lineTo(q geometry.Point) { p.r.LineTo(p.pt(q)) }

func (p pen) cubeTo(c1, c2, to geometry.Point) {
	x1, y1 := p.pt(c1)
	x2, y2 := p.pt(c2)
	x3, y3 := p.pt(to)
	p.r.CubeTo(x1, y1, x2, y2, x3, y3)
}

// contour draws one vertex path. Open contours are closed implicitly, as a
// fill would be.
func (p pen) contour(vp geometry.VertexPath) {
	if vp.Len() < 2 {
		return
	}
	p.moveTo(vp.Vertices[0].Pos)
	closed := vp
	closed.Closed = true
	closed.Segments(func(from, c1, c2, to geometry.Point) {
		if c1 == from && c2 == to {
			p.lineTo(to)
			return
		}
		p.cubeTo(c1, c2, to)
	})
	p.r.ClosePath()
}

func (p pen) rect(center, size geometry.Point) {
	x0, y0 := center.X-size.X/2, center.Y-size.Y/2
	x1, y1 := x0+size.X, y0+size.Y
	p.moveTo(geometry.Point{X: x0, Y: y0})
	p.lineTo(geometry.Point{X: x1, Y: y0})
	p.lineTo(geometry.Point{X: x1, Y: y1})
	p.lineTo(geometry.Point{X: x0, Y: y1})
	p.r.ClosePath()
}

func (p pen) ellipse(center, size geometry.Point) {
	rx, ry := size.X/2, size.Y/2
	kx, ky := rx*kappa, ry*kappa
	cx, cy := center.X, center.Y
	pt := func(x, y float64) geometry.Point { return geometry.Point{X: x, Y: y} }

	p.moveTo(pt(cx+rx, cy))
	p.cubeTo(pt(cx+rx, cy+ky), pt(cx+kx, cy+ry), pt(cx, cy+ry))
	p.cubeTo(pt(cx-kx, cy+ry), pt(cx-rx, cy+ky), pt(cx-rx, cy))
	p.cubeTo(pt(cx-rx, cy-ky), pt(cx-kx, cy-ry), pt(cx, cy-ry))
	p.cubeTo(pt(cx+kx, cy-ry), pt(cx+rx, cy-ky), pt(cx+rx, cy))
	p.r.ClosePath()
}
