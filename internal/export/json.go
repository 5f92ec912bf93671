package export

import (
	"time"

	"github.com/mkears/pyscout/internal/inspect"
	"github.com/mkears/pyscout/internal/pysrc"
)

// HierarchyExport is the top-level JSON document for one unit.
type HierarchyExport struct {
	File       string           `json:"file"`
	ExportedAt string           `json:"exportedAt"`
	Classes    []ClassExport    `json:"classes,omitempty"`
	Functions  []FunctionExport `json:"functions,omitempty"`
}

// ClassExport describes one class definition.
type ClassExport struct {
	Name      string   `json:"name"`
	StartLine int      `json:"startLine"`
	EndLine   int      `json:"endLine"`
	Bases     []string `json:"bases,omitempty"`     // as declared in the source
	Ancestors []string `json:"ancestors,omitempty"` // resolved in-unit chain, nearest first
	Methods   []string `json:"methods,omitempty"`
}

// FunctionExport describes one top-level function.
type FunctionExport struct {
	Name      string `json:"name"`
	Async     bool   `json:"async"`
	StartLine int    `json:"startLine"`
	EndLine   int    `json:"endLine"`
}

// Hierarchy builds the JSON document for one parsed unit. file only labels
// the output.
func Hierarchy(file string, tree *pysrc.Tree) *HierarchyExport {
	sess := inspect.NewSession(tree)
	out := &HierarchyExport{
		File:       file,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
	}

	classes, _ := hierarchy(tree)
	for _, c := range classes {
		ce := ClassExport{
			Name:      c.Name,
			StartLine: c.StartLine,
			EndLine:   c.EndLine,
			Bases:     c.Bases,
		}
		if chain, ok := sess.Ancestors(c.Name); ok {
			for _, a := range chain {
				ce.Ancestors = append(ce.Ancestors, a.Name)
			}
		}
		for _, m := range c.Children {
			if m.Kind.IsFunction() {
				ce.Methods = append(ce.Methods, m.Name)
			}
		}
		out.Classes = append(out.Classes, ce)
	}

	for _, f := range tree.Root.Children {
		if !f.Kind.IsFunction() {
			continue
		}
		out.Functions = append(out.Functions, FunctionExport{
			Name:      f.Name,
			Async:     f.Kind == pysrc.KindAsyncFunction,
			StartLine: f.StartLine,
			EndLine:   f.EndLine,
		})
	}

	return out
}
