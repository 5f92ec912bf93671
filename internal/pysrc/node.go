package pysrc

// Kind identifies the construct a Node represents.
type Kind string

const (
	KindModule        Kind = "module"
	KindClass         Kind = "class"
	KindFunction      Kind = "function"
	KindAsyncFunction Kind = "async_function"
)

// IsFunction reports whether the kind is a plain or async function.
func (k Kind) IsFunction() bool {
	return k == KindFunction || k == KindAsyncFunction
}

// Node is one construct in a parsed source unit. Nodes are built once by
// Parse and never modified afterwards, so they can be shared freely.
type Node struct {
	Kind      Kind
	Name      string   // empty for the module root
	StartLine int      // 1-based first line of the definition
	EndLine   int      // 1-based last line; as a 0-based slice bound it is exclusive
	Bases     []string // declared base-class names, classes only
	Children  []*Node  // nested constructs in source order
}

// Tree is the parsed form of one Python source unit.
type Tree struct {
	Root  *Node
	lines []string
}

// Lines returns the source split on newlines. The slice is shared with the
// tree; callers must not modify it.
func (t *Tree) Lines() []string {
	return t.lines
}

// Walk visits n and its descendants depth-first in source order, calling
// visit for each node. It stops early when visit returns false and reports
// whether the walk ran to completion.
func Walk(n *Node, visit func(*Node) bool) bool {
	if !visit(n) {
		return false
	}
	for _, child := range n.Children {
		if !Walk(child, visit) {
			return false
		}
	}
	return true
}
