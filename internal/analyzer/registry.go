package analyzer

import (
	"strconv"
	"strings"

	"github.com/joshua23/animation-Build-hub/internal/diag"
	"github.com/joshua23/animation-Build-hub/internal/scene"
)

// extractor builds the record for one element kind.
type extractor func(a *attrReader) Primitive

var extractors = map[scene.NodeKind]extractor{
	scene.Path: func(a *attrReader) Primitive {
		return PathRecord{Meta: a.meta(), D: a.str("d", "M0,0")}
	},
	scene.Rect: func(a *attrReader) Primitive {
		return RectRecord{
			Meta: a.meta(),
			X:    a.num("x", 0),
			Y:    a.num("y", 0),
			W:    a.num("width", 10),
			H:    a.num("height", 10),
		}
	},
	scene.Circle: func(a *attrReader) Primitive {
		return CircleRecord{Meta: a.meta(), CX: a.num("cx", 0), CY: a.num("cy", 0), R: a.num("r", 5)}
	},
	scene.Ellipse: func(a *attrReader) Primitive {
		return EllipseRecord{
			Meta: a.meta(),
			CX:   a.num("cx", 0),
			CY:   a.num("cy", 0),
			RX:   a.num("rx", 5),
			RY:   a.num("ry", 5),
		}
	},
	scene.Polygon: func(a *attrReader) Primitive {
		return PolyRecord{Meta: a.meta(), Points: a.str("points", ""), Closed: true}
	},
	scene.Polyline: func(a *attrReader) Primitive {
		return PolyRecord{Meta: a.meta(), Points: a.str("points", "")}
	},
}

// Extract builds the primitive record for n. ok is false for kinds that do
// not draw. Unparseable numeric attributes fall back to their defaults and
// are reported in the returned diagnostics.
func Extract(n scene.Node) (p Primitive, ds []diag.Diagnostic, ok bool) {
	ex, found := extractors[n.Kind]
	if !found {
		return nil, nil, false
	}
	a := &attrReader{node: n}
	return ex(a), a.diags, true
}

type attrReader struct {
	node  scene.Node
	diags []diag.Diagnostic
}

func (a *attrReader) meta() Meta {
	return Meta{ID: a.node.ID, Fill: fillOf(a.node)}
}

func (a *attrReader) str(name, def string) string {
	if v, ok := a.node.Attr(name); ok && v != "" {
		return v
	}
	return def
}

func (a *attrReader) num(name string, def float64) float64 {
	raw, ok := a.node.Attr(name)
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(trimUnits(raw), 64)
	if err != nil {
		a.diags = append(a.diags, diag.New(diag.AttributeFallback, a.node.ID,
			"%s %q is not a number, using %g", name, raw, def))
		return def
	}
	return v
}

var unitSuffixes = []string{"px", "pt", "mm", "cm", "in"}

// trimUnits drops one trailing length unit.
func trimUnits(s string) string {
	for _, u := range unitSuffixes {
		if strings.HasSuffix(s, u) {
			return strings.TrimSpace(strings.TrimSuffix(s, u))
		}
	}
	return s
}

// fillOf reads the fill attribute, then a fill declaration in style.
func fillOf(n scene.Node) string {
	if v, ok := n.Attr("fill"); ok {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	if style, ok := n.Attr("style"); ok {
		for _, decl := range strings.Split(style, ";") {
			name, value, found := strings.Cut(decl, ":")
			if !found || strings.TrimSpace(name) != "fill" {
				continue
			}
			if value = strings.TrimSpace(value); value != "" {
				return value
			}
		}
	}
	return DefaultFill
}
