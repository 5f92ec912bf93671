// Package export renders a parsed unit's class hierarchy as a Mermaid
// diagram or a JSON document.
package export

import (
	"fmt"
	"strings"

	"github.com/mkears/pyscout/internal/inspect"
	"github.com/mkears/pyscout/internal/pysrc"
)

// edge is one in-unit inheritance relation.
type edge struct {
	Parent string
	Child  string
}

// hierarchy collects the unit's classes in source order and the
// inheritance edges whose base resolves to a class in the same unit.
func hierarchy(tree *pysrc.Tree) ([]*pysrc.Node, []edge) {
	ix := inspect.BuildClassIndex(tree.Root)

	var classes []*pysrc.Node
	var edges []edge
	pysrc.Walk(tree.Root, func(n *pysrc.Node) bool {
		if n.Kind != pysrc.KindClass {
			return true
		}
		classes = append(classes, n)
		for _, base := range n.Bases {
			if ix.Has(base) {
				edges = append(edges, edge{Parent: base, Child: n.Name})
			}
		}
		return true
	})
	return classes, edges
}

// Mermaid produces a Mermaid classDiagram of the unit's inheritance
// relations, in source order. Bases defined outside the unit (imported or
// built-in) do not appear; classes with no in-unit relations are still
// declared so the diagram shows them.
func Mermaid(tree *pysrc.Tree) string {
	classes, edges := hierarchy(tree)

	related := make(map[string]bool)
	for _, e := range edges {
		related[e.Parent] = true
		related[e.Child] = true
	}

	var sb strings.Builder
	sb.WriteString("classDiagram\n")
	for _, c := range classes {
		if !related[c.Name] {
			sb.WriteString(fmt.Sprintf("  class %s\n", c.Name))
		}
	}
	for _, e := range edges {
		sb.WriteString(fmt.Sprintf("  %s <|-- %s\n", e.Parent, e.Child))
	}
	return sb.String()
}
