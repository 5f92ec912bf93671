// Package pysrc parses Python source into an immutable construct tree:
// classes, functions and async functions with their line ranges, declared
// base classes, and nested definitions. It is the only package that touches
// tree-sitter; everything it returns is plain Go data.
package pysrc

import (
	"errors"
	"fmt"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// Parse parses one Python source unit and returns its construct tree. The
// tree-sitter parser and CST are released before returning; the result
// holds no CGo resources. Malformed Python still yields a best-effort tree
// because the grammar recovers from errors, though constructs inside
// unparsable regions may be missing.
func Parse(source []byte) (*Tree, error) {
	parser := tree_sitter.NewParser()
	defer parser.Close()

	lang := tree_sitter.NewLanguage(tree_sitter_python.Language())
	if err := parser.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("set python grammar: %w", err)
	}

	tsTree := parser.Parse(source, nil)
	if tsTree == nil {
		return nil, errors.New("tree-sitter returned nil tree")
	}
	defer tsTree.Close()

	root := tsTree.RootNode()
	b := &builder{source: source}

	mod := &Node{
		Kind:      KindModule,
		StartLine: int(root.StartPosition().Row) + 1,
		EndLine:   int(root.EndPosition().Row) + 1,
		Children:  b.collect(root),
	}

	return &Tree{
		Root:  mod,
		lines: strings.Split(string(source), "\n"),
	}, nil
}

// builder turns tree-sitter CST nodes into construct Nodes.
type builder struct {
	source []byte
}

// collect gathers the constructs rooted under n, in source order. Statements
// that merely wrap code (if/try/for/with blocks) are transparent: a
// definition nested under them belongs to the nearest enclosing construct.
func (b *builder) collect(n *tree_sitter.Node) []*Node {
	var out []*Node
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "function_definition":
			if fn := b.function(child); fn != nil {
				out = append(out, fn)
			}
		case "class_definition":
			if cls := b.class(child); cls != nil {
				out = append(out, cls)
			}
		case "decorated_definition":
			if def := b.decorated(child); def != nil {
				out = append(out, def)
			}
		default:
			out = append(out, b.collect(child)...)
		}
	}
	return out
}

func (b *builder) function(n *tree_sitter.Node) *Node {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}

	kind := KindFunction
	if first := n.Child(0); first != nil && first.Kind() == "async" {
		kind = KindAsyncFunction
	}

	return &Node{
		Kind:      kind,
		Name:      nameNode.Utf8Text(b.source),
		StartLine: int(n.StartPosition().Row) + 1,
		EndLine:   int(n.EndPosition().Row) + 1,
		Children:  b.body(n),
	}
}

func (b *builder) class(n *tree_sitter.Node) *Node {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}

	return &Node{
		Kind:      KindClass,
		Name:      nameNode.Utf8Text(b.source),
		StartLine: int(n.StartPosition().Row) + 1,
		EndLine:   int(n.EndPosition().Row) + 1,
		Bases:     b.bases(n),
		Children:  b.body(n),
	}
}

// decorated unwraps a decorated_definition. Callers see the inner
// definition's own line range; decorator lines are not part of it.
func (b *builder) decorated(n *tree_sitter.Node) *Node {
	def := n.ChildByFieldName("definition")
	if def == nil {
		return nil
	}
	switch def.Kind() {
	case "function_definition":
		return b.function(def)
	case "class_definition":
		return b.class(def)
	}
	return nil
}

func (b *builder) body(n *tree_sitter.Node) []*Node {
	block := n.ChildByFieldName("body")
	if block == nil {
		return nil
	}
	return b.collect(block)
}

// bases returns the declared base-class names of a class_definition, as
// written in the source (dotted attributes included). Keyword arguments
// such as metaclass= and subscripted generics are not base names.
func (b *builder) bases(n *tree_sitter.Node) []string {
	args := n.ChildByFieldName("superclasses")
	if args == nil {
		for i := uint(0); i < n.ChildCount(); i++ {
			child := n.Child(i)
			if child != nil && child.Kind() == "argument_list" {
				args = child
				break
			}
		}
	}
	if args == nil {
		return nil
	}

	var names []string
	for i := uint(0); i < args.ChildCount(); i++ {
		arg := args.Child(i)
		if arg == nil {
			continue
		}
		switch arg.Kind() {
		case "identifier", "attribute":
			names = append(names, arg.Utf8Text(b.source))
		}
	}
	return names
}
