package inspect

import (
	"strings"

	"github.com/mkears/pyscout/internal/pysrc"
)

// Match is one located construct: its byte-exact snippet and the 0-based
// offset of the snippet's first line within the searched view of the unit.
type Match struct {
	Text string
	Line int
}

// Options control a single query run.
type Options struct {
	// Limit bounds the number of matches; values below one mean one.
	Limit int
	// Ancestors extends class-scoped name queries to inherited methods.
	Ancestors bool
}

// DefaultOptions returns the defaults: a single match, ancestors followed.
func DefaultOptions() Options {
	return Options{Limit: 1, Ancestors: true}
}

// Session runs queries against one parsed unit. The class index and the
// normalized line view are built lazily, each at most once and only for
// the query mode that needs it; exact-line search never touches the index.
// A Session is not safe for concurrent use.
type Session struct {
	tree  *pysrc.Tree
	index *ClassIndex
	norm  []string
}

// NewSession wraps a parsed tree. Analyzing a different unit means parsing
// it and creating a new Session; sessions never reload.
func NewSession(tree *pysrc.Tree) *Session {
	return &Session{tree: tree}
}

func (s *Session) classIndex() *ClassIndex {
	if s.index == nil {
		s.index = BuildClassIndex(s.tree.Root)
	}
	return s.index
}

// normLines is the view exact-line search runs on: the whole source with
// surrounding whitespace trimmed, re-split into lines. When the file opens
// with blank lines the trim shifts construct ranges relative to this view;
// snippets then reflect the shifted window, matching how line numbers from
// the raw parse apply to the trimmed text.
func (s *Session) normLines() []string {
	if s.norm == nil {
		joined := strings.Join(s.tree.Lines(), "\n")
		s.norm = strings.Split(strings.TrimSpace(joined), "\n")
	}
	return s.norm
}

// Duplicates returns class names defined more than once in the unit.
func (s *Session) Duplicates() []string {
	return s.classIndex().Duplicates()
}

// Class returns the node defining the named class, honoring the same
// last-definition-wins rule as scoped queries.
func (s *Session) Class(name string) (*pysrc.Node, bool) {
	return s.classIndex().Lookup(name)
}

// Ancestors resolves the named class's inheritance chain, nearest first,
// excluding the class itself. The bool reports whether the class exists in
// the unit at all.
func (s *Session) Ancestors(class string) ([]*pysrc.Node, bool) {
	ix := s.classIndex()
	cls, ok := ix.Lookup(class)
	if !ok {
		return nil, false
	}
	return ancestorChain(ix, cls)[1:], true
}

// Run streams matches for q to emit in discovery order, stopping once
// opts.Limit matches have been emitted or emit returns false. The return
// value distinguishes an empty result from a missing scope: it is false
// only when a NameQuery names a class absent from the unit. True with no
// emissions means the scope existed but nothing in it matched.
func (s *Session) Run(q Query, opts Options, emit func(Match) bool) bool {
	limit := opts.Limit
	if limit < 1 {
		limit = 1
	}

	switch q := q.(type) {
	case ExactQuery:
		s.runExact(q, limit, emit)
		return true
	case NameQuery:
		if q.Class != "" {
			return s.runScoped(q, limit, opts.Ancestors, emit)
		}
		s.runGlobal(q, limit, emit)
		return true
	}
	return true
}

// Matches collects every match for q into a slice. The bool mirrors Run's
// scope result.
func (s *Session) Matches(q Query, opts Options) ([]Match, bool) {
	var out []Match
	ok := s.Run(q, opts, func(m Match) bool {
		out = append(out, m)
		return true
	})
	return out, ok
}

// First returns the first match for q, if any.
func (s *Session) First(q Query, opts Options) (Match, bool) {
	var first Match
	found := false
	s.Run(q, opts, func(m Match) bool {
		first, found = m, true
		return false
	})
	return first, found
}

// --- name search ---

func (s *Session) runGlobal(q NameQuery, limit int, emit func(Match) bool) {
	lines := s.tree.Lines()
	count := 0
	pysrc.Walk(s.tree.Root, func(n *pysrc.Node) bool {
		if n.Kind == pysrc.KindModule || n.Name != q.Target {
			return true
		}
		if !emit(matchFromLines(lines, n)) {
			return false
		}
		count++
		return count < limit
	})
}

func (s *Session) runScoped(q NameQuery, limit int, ancestors bool, emit func(Match) bool) bool {
	ix := s.classIndex()
	cls, ok := ix.Lookup(q.Class)
	if !ok {
		return false
	}

	chain := []*pysrc.Node{cls}
	if ancestors {
		chain = ancestorChain(ix, cls)
	}

	lines := s.tree.Lines()
	count := 0
	for _, class := range chain {
		for _, m := range class.Children {
			if !m.Kind.IsFunction() || m.Name != q.Target {
				continue
			}
			if !emit(matchFromLines(lines, m)) {
				return true
			}
			count++
			if count == limit {
				return true
			}
		}
	}
	return true
}

// --- exact-line search ---

// classHeaderPrefix marks queries that target a class statement itself;
// only then does a match inside a class yield the class node rather than
// widening to its methods.
const classHeaderPrefix = "class "

func (s *Session) runExact(q ExactQuery, limit int, emit func(Match) bool) {
	want := strings.TrimSpace(q.Line)
	lines := s.normLines()
	wantClass := strings.HasPrefix(want, classHeaderPrefix)

	seen := make(map[[2]int]bool)
	count := 0

	emitNode := func(n *pysrc.Node) bool {
		key := [2]int{n.StartLine, n.EndLine}
		if seen[key] {
			return true
		}
		seen[key] = true
		if !emit(matchFromLines(lines, n)) {
			return false
		}
		count++
		return count < limit
	}

	pysrc.Walk(s.tree.Root, func(n *pysrc.Node) bool {
		if n.Kind == pysrc.KindModule {
			return true
		}
		if !rangeContains(lines, n, want) {
			return true
		}
		if n.Kind == pysrc.KindClass && !wantClass {
			// The literal sits inside a class body: yield the methods that
			// contain it, never the class itself.
			for _, m := range n.Children {
				if !m.Kind.IsFunction() || !rangeContains(lines, m, want) {
					continue
				}
				if !emitNode(m) {
					return false
				}
			}
			return true
		}
		return emitNode(n)
	})
}

// rangeContains reports whether any line of n's range, read against the
// given view, equals want after trimming. Ranges that extend past the view
// are clamped.
func rangeContains(lines []string, n *pysrc.Node, want string) bool {
	end := n.EndLine
	if end > len(lines) {
		end = len(lines)
	}
	for i := n.StartLine - 1; i < end; i++ {
		if strings.TrimSpace(lines[i]) == want {
			return true
		}
	}
	return false
}

// matchFromLines builds the Match for n against the given line view.
func matchFromLines(lines []string, n *pysrc.Node) Match {
	end := n.EndLine
	if end > len(lines) {
		end = len(lines)
	}
	return Match{
		Text: strings.Join(lines[n.StartLine-1:end], "\n"),
		Line: n.StartLine - 1,
	}
}
