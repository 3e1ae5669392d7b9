package scene

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"maps"
	"regexp"
	"strconv"

	"golang.org/x/net/html/charset"

	"github.com/joshua23/animation-Build-hub/internal/diag"
)

// MalformedError reports a document that is not well-formed XML.
type MalformedError struct {
	Line   int
	Offset int64
	Err    error
}

func (e *MalformedError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed document at line %d (byte %d): %v", e.Line, e.Offset, e.Err)
	}
	return fmt.Sprintf("malformed document at byte %d: %v", e.Offset, e.Err)
}

func (e *MalformedError) Unwrap() error { return e.Err }

// DimensionError reports a width or height with no numeric content.
type DimensionError struct {
	Attr  string
	Value string
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Attr, e.Value)
}

var nonNumeric = regexp.MustCompile(`[^0-9.]`)

// parseDimension strips everything but digits and dots before parsing, so
// "100px" and "100%" both read as 100.
func parseDimension(attr, v string, def float64) (float64, error) {
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(nonNumeric.ReplaceAllString(v, ""), 64)
	if err != nil {
		return 0, &DimensionError{Attr: attr, Value: v}
	}
	return f, nil
}

// loader holds the per-document identifier state. A fresh one is used for
// every Load call.
type loader struct {
	tree    *Tree
	visited int
}

// Load parses an SVG document.
func Load(r io.Reader) (*Tree, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	dec.Entity = maps.Clone(xml.HTMLEntity)

	l := &loader{tree: &Tree{nodes: make(map[string]*Node)}}
	var stack []*Node

	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			me := &MalformedError{Offset: dec.InputOffset(), Err: err}
			var se *xml.SyntaxError
			if errors.As(err, &se) {
				me.Line = se.Line
			}
			return nil, me
		}

		switch se := tok.(type) {
		case xml.Directive:
			// Only the prolog may declare entities.
			if l.tree.root == "" {
				declareEntities(dec.Entity, se)
			}
		case xml.StartElement:
			if len(stack) == 0 && l.tree.root != "" {
				return nil, &MalformedError{Offset: dec.InputOffset(), Err: errors.New("more than one root element")}
			}
			n := l.add(se, stack)
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		}
	}

	if l.tree.root == "" {
		return nil, &MalformedError{Offset: dec.InputOffset(), Err: errors.New("no root element")}
	}

	root := l.tree.nodes[l.tree.root]
	w, err := parseDimension("width", root.Attrs["width"], DefaultWidth)
	if err != nil {
		return nil, err
	}
	h, err := parseDimension("height", root.Attrs["height"], DefaultHeight)
	if err != nil {
		return nil, err
	}
	l.tree.size = Size{Width: w, Height: h}
	return l.tree, nil
}

// entityDecl matches general internal entities. Parameter and external
// entities are left undeclared.
var entityDecl = regexp.MustCompile(`<!ENTITY\s+([^\s%"']+)\s+(?:"([^"]*)"|'([^']*)')\s*>`)

// declareEntities adds the internal entities of a DOCTYPE subset to m.
func declareEntities(m map[string]string, d xml.Directive) {
	if !bytes.HasPrefix(d, []byte("DOCTYPE")) {
		return
	}
	for _, e := range entityDecl.FindAllSubmatch(d, -1) {
		v := e[2]
		if v == nil {
			v = e[3]
		}
		m[string(e[1])] = string(v)
	}
}

func (l *loader) add(se xml.StartElement, stack []*Node) *Node {
	attrs := make(map[string]string, len(se.Attr))
	for _, a := range se.Attr {
		// namespaced duplicates (xlink:href next to href) keep the first value
		if _, dup := attrs[a.Name.Local]; dup && a.Name.Space != "" {
			continue
		}
		attrs[a.Name.Local] = a.Value
	}

	id := attrs["id"]
	if id == "" {
		id = fmt.Sprintf("element_%d", l.visited)
	}
	id = l.unique(id)
	l.visited++

	n := &Node{
		ID:    id,
		Kind:  KindOf(se.Name.Local),
		Tag:   se.Name.Local,
		Attrs: attrs,
	}
	if len(stack) > 0 {
		parent := stack[len(stack)-1]
		n.Parent = parent.ID
		parent.Children = append(parent.Children, id)
	} else {
		l.tree.root = id
	}
	l.tree.nodes[id] = n
	l.tree.order = append(l.tree.order, id)
	return n
}

// unique renames id with a numeric suffix when it is already taken.
func (l *loader) unique(id string) string {
	if _, taken := l.tree.nodes[id]; !taken {
		return id
	}
	for k := 1; ; k++ {
		alt := fmt.Sprintf("%s_%d", id, k)
		if _, taken := l.tree.nodes[alt]; !taken {
			l.tree.Warnings = append(l.tree.Warnings, fmt.Sprintf("duplicate id %q renamed to %q", id, alt))
			return alt
		}
	}
}

// LoadBytes parses an in-memory document.
func LoadBytes(b []byte) (*Tree, error) {
	return Load(bytes.NewReader(b))
}

// ErrorKind maps a Load error to its diagnostic kind.
func ErrorKind(err error) diag.Kind {
	var de *DimensionError
	if errors.As(err, &de) {
		return diag.InvalidDimension
	}
	return diag.MalformedDocument
}
