// Package analyzer classifies the elements of a loaded scene into groups,
// paths and basic shapes and extracts their drawable attributes.
package analyzer

import (
	"slices"

	"github.com/joshua23/animation-Build-hub/internal/diag"
	"github.com/joshua23/animation-Build-hub/internal/scene"
)

// Flatness thresholds.
const (
	flatMaxGroups = 3
	flatMinPaths  = 20
)

// Classification is the result of one Classify pass. All ID lists are in
// document order.
type Classification struct {
	Groups []string
	Paths  []string
	Shapes []string

	Primitives map[string]Primitive

	// TopLevel holds primitives outside any group.
	TopLevel []string
	// TopLevelGroups holds groups outside any other group.
	TopLevelGroups []string
	// Members maps a top-level group to every primitive beneath it, nested
	// groups included.
	Members map[string][]string

	Diagnostics []diag.Diagnostic

	kinds map[string]scene.NodeKind
}

// Classify walks tree depth-first in document order.
func Classify(tree *scene.Tree) *Classification {
	c := &Classification{
		Primitives: make(map[string]Primitive),
		Members:    make(map[string][]string),
		kinds:      make(map[string]scene.NodeKind),
	}

	// owners[depth] is the top-level group enclosing the node at that depth
	var owners []string
	tree.Walk(func(n scene.Node, depth int) bool {
		owners = owners[:depth]
		owner := ""
		if depth > 0 {
			owner = owners[depth-1]
		}

		switch {
		case n.Kind == scene.Group:
			c.Groups = append(c.Groups, n.ID)
			c.kinds[n.ID] = n.Kind
			if owner == "" {
				c.TopLevelGroups = append(c.TopLevelGroups, n.ID)
				c.Members[n.ID] = nil
				owner = n.ID
			}
		case n.Kind == scene.Path || n.Kind.IsShape():
			p, ds, _ := Extract(n)
			if n.Kind == scene.Path {
				c.Paths = append(c.Paths, n.ID)
			} else {
				c.Shapes = append(c.Shapes, n.ID)
			}
			c.kinds[n.ID] = n.Kind
			c.Primitives[n.ID] = p
			c.Diagnostics = append(c.Diagnostics, ds...)
			if owner == "" {
				c.TopLevel = append(c.TopLevel, n.ID)
			} else {
				c.Members[owner] = append(c.Members[owner], n.ID)
			}
		}

		owners = append(owners, owner)
		return true
	})
	return c
}

// IsFlat reports a document with few groups and many paths. It is
// descriptive only.
func (c *Classification) IsFlat() bool {
	return len(c.Groups) < flatMaxGroups && len(c.Paths) > flatMinPaths
}

// ByType returns the IDs of the given kind in document order.
func (c *Classification) ByType(kind scene.NodeKind) []string {
	var src []string
	switch {
	case kind == scene.Group:
		return slices.Clone(c.Groups)
	case kind == scene.Path:
		return slices.Clone(c.Paths)
	case kind.IsShape():
		src = c.Shapes
	}
	var out []string
	for _, id := range src {
		if c.kinds[id] == kind {
			out = append(out, id)
		}
	}
	return out
}

// Primitive returns the record for id.
func (c *Classification) Primitive(id string) (Primitive, bool) {
	p, ok := c.Primitives[id]
	return p, ok
}
