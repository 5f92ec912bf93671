// Package inspect locates constructs in a parsed Python source unit, either
// by name (optionally scoped to a class, optionally following the
// inheritance chain) or by literal source line. Matches carry byte-exact
// snippets and 0-based line offsets.
package inspect

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// nsPrefix is the root namespace segment dropped from dotted query paths:
// "discord.Client.close" and "Client.close" name the same thing.
const nsPrefix = "discord"

var (
	// ErrAmbiguousPath reports a dotted query path with more segments than
	// Class.function.
	ErrAmbiguousPath = errors.New("query path has too many segments")

	// ErrExactRef reports a structured reference combined with exact-line
	// search, which only accepts a literal line.
	ErrExactRef = errors.New("exact search takes a literal line, not a class/function reference")

	// ErrEmptyRef reports a structured reference with neither a class nor a
	// function.
	ErrEmptyRef = errors.New("reference names neither a class nor a function")
)

// Query selects constructs in a parsed unit. It is a closed type: the only
// implementations are NameQuery and ExactQuery.
type Query interface {
	query()
}

// NameQuery matches constructs by name. With Class set, the search is
// scoped to the direct methods of that class (and of its ancestors when
// the ancestor option is on); otherwise every class and function in the
// unit is a candidate.
type NameQuery struct {
	Target string
	Class  string
}

// ExactQuery matches constructs containing a source line whose text equals
// Line, ignoring leading and trailing whitespace on both sides.
type ExactQuery struct {
	Line string
}

func (NameQuery) query()  {}
func (ExactQuery) query() {}

// ParsePath parses the dotted query form: "target", "Class.target", or
// either prefixed with the namespace segment ("discord.Member.send"). A
// two-segment path treats the first segment as a class only when it starts
// upper-case; otherwise the qualifier is dropped ("message.reply" finds
// any "reply"). Trailing call-parentheses on the target are stripped.
func ParsePath(path string) (NameQuery, error) {
	segs := strings.Split(path, ".")
	if len(segs) > 1 && segs[0] == nsPrefix {
		segs = segs[1:]
	}

	var q NameQuery
	switch len(segs) {
	case 1:
		q.Target = segs[0]
	case 2:
		if startsUpper(segs[0]) {
			q.Class = segs[0]
		}
		q.Target = segs[1]
	default:
		return NameQuery{}, fmt.Errorf("parse %q: %w", path, ErrAmbiguousPath)
	}

	q.Target = strings.TrimRight(q.Target, "()")
	return q, nil
}

// ParseQuery turns a raw query string into a Query. In exact mode the
// string is taken verbatim as the line to find; otherwise it is parsed as
// a dotted path.
func ParseQuery(raw string, exact bool) (Query, error) {
	if exact {
		return ExactQuery{Line: raw}, nil
	}
	return ParsePath(raw)
}

// Ref is the structured form of a name query, for callers that already
// separate the class from the function.
type Ref struct {
	Class    string
	Function string
}

// FromRef turns a Ref into a Query. Function alone searches the whole
// unit; Function with Class scopes the search; Class alone locates the
// class definition itself. Exact mode is rejected because a literal line
// has no structured form.
func FromRef(r Ref, exact bool) (Query, error) {
	if exact {
		return nil, ErrExactRef
	}

	var q NameQuery
	switch {
	case r.Function != "" && r.Class != "":
		q = NameQuery{Target: r.Function, Class: r.Class}
	case r.Function != "":
		q = NameQuery{Target: r.Function}
	case r.Class != "":
		q = NameQuery{Target: r.Class}
	default:
		return nil, ErrEmptyRef
	}

	q.Target = strings.TrimRight(q.Target, "()")
	return q, nil
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}
