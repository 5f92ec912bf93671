package inspect

import (
	"sort"

	"github.com/mkears/pyscout/internal/pysrc"
)

// ClassIndex maps class names to their defining nodes. Every class in the
// unit is indexed, nested ones included. When a name is defined more than
// once the last definition wins and the name is recorded as a duplicate so
// callers can warn about the shadowing.
type ClassIndex struct {
	byName map[string]*pysrc.Node
	dups   map[string]bool
}

// BuildClassIndex walks the whole tree and indexes every class definition.
func BuildClassIndex(root *pysrc.Node) *ClassIndex {
	ix := &ClassIndex{
		byName: make(map[string]*pysrc.Node),
		dups:   make(map[string]bool),
	}
	pysrc.Walk(root, func(n *pysrc.Node) bool {
		if n.Kind != pysrc.KindClass {
			return true
		}
		if _, exists := ix.byName[n.Name]; exists {
			ix.dups[n.Name] = true
		}
		ix.byName[n.Name] = n
		return true
	})
	return ix
}

// Lookup returns the node defining the named class.
func (ix *ClassIndex) Lookup(name string) (*pysrc.Node, bool) {
	n, ok := ix.byName[name]
	return n, ok
}

// Has reports whether the name is an indexed class.
func (ix *ClassIndex) Has(name string) bool {
	_, ok := ix.byName[name]
	return ok
}

// Duplicates returns the names defined more than once, sorted. Queries
// resolve such names to their last definition.
func (ix *ClassIndex) Duplicates() []string {
	if len(ix.dups) == 0 {
		return nil
	}
	names := make([]string, 0, len(ix.dups))
	for name := range ix.dups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
