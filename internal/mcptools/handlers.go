package mcptools

import (
	"context"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mkears/pyscout/internal/inspect"
	"github.com/mkears/pyscout/internal/pysrc"
	"github.com/mkears/pyscout/internal/report"
	"github.com/mkears/pyscout/internal/rules"
)

// InspectorService backs the MCP tool handlers. Every call reads and parses
// the requested file fresh; nothing is cached between calls, so edits made
// by the client between calls are always picked up.
type InspectorService struct {
	catalog *rules.Catalog
}

// NewInspectorService creates an InspectorService checking files against the
// given catalogue. A nil catalogue means the built-in one.
func NewInspectorService(catalog *rules.Catalog) *InspectorService {
	if catalog == nil {
		catalog = rules.Default()
	}
	return &InspectorService{catalog: catalog}
}

// loadUnit reads and parses one Python file.
func (s *InspectorService) loadUnit(path string) (*pysrc.Tree, []byte, error) {
	if path == "" {
		return nil, nil, fmt.Errorf("path is required")
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read path: %w", err)
	}
	tree, err := pysrc.Parse(src)
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return tree, src, nil
}

// FindSource locates functions, methods, or classes in a file and returns
// their exact source snippets.
func (s *InspectorService) FindSource(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input FindSourceInput,
) (*mcp.CallToolResult, FindSourceOutput, error) {
	if input.Query == "" {
		return nil, FindSourceOutput{}, fmt.Errorf("query is required")
	}

	tree, _, err := s.loadUnit(input.Path)
	if err != nil {
		return nil, FindSourceOutput{}, err
	}

	q, err := inspect.ParseQuery(input.Query, input.Exact)
	if err != nil {
		return nil, FindSourceOutput{}, fmt.Errorf("parse query: %w", err)
	}

	count := input.Count
	if count <= 0 {
		count = 1
	}

	sess := inspect.NewSession(tree)
	matches, found := sess.Matches(q, inspect.Options{
		Limit:     count,
		Ancestors: !input.NoAncestors,
	})

	out := FindSourceOutput{
		Matches: make([]SourceMatch, 0, len(matches)),
		Total:   len(matches),
		Found:   found,
	}
	for _, m := range matches {
		out.Matches = append(out.Matches, SourceMatch{Text: m.Text, Line: m.Line})
	}
	return nil, out, nil
}

// CheckFile runs the rules catalogue against a file and returns the
// findings.
func (s *InspectorService) CheckFile(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input CheckFileInput,
) (*mcp.CallToolResult, CheckFileOutput, error) {
	tree, src, err := s.loadUnit(input.Path)
	if err != nil {
		return nil, CheckFileOutput{}, err
	}

	catalog := s.catalog
	if input.Rules != "" {
		catalog, err = rules.Load(input.Rules)
		if err != nil {
			return nil, CheckFileOutput{}, fmt.Errorf("load rules: %w", err)
		}
	}

	sess := inspect.NewSession(tree)
	findings := rules.CheckSource(input.Path, string(src), sess, catalog)
	if findings == nil {
		findings = []report.Finding{}
	}

	return nil, CheckFileOutput{
		Findings:   findings,
		Duplicates: sess.Duplicates(),
	}, nil
}

// ClassAncestors resolves a class's inheritance chain within one file.
func (s *InspectorService) ClassAncestors(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ClassAncestorsInput,
) (*mcp.CallToolResult, ClassAncestorsOutput, error) {
	if input.Class == "" {
		return nil, ClassAncestorsOutput{}, fmt.Errorf("class is required")
	}

	tree, _, err := s.loadUnit(input.Path)
	if err != nil {
		return nil, ClassAncestorsOutput{}, err
	}

	sess := inspect.NewSession(tree)
	cls, ok := sess.Class(input.Class)
	if !ok {
		// A class the file never defines is an empty result, not an error.
		return nil, ClassAncestorsOutput{}, nil
	}

	out := ClassAncestorsOutput{Found: true, Bases: cls.Bases}
	chain, _ := sess.Ancestors(input.Class)
	for _, a := range chain {
		out.Ancestors = append(out.Ancestors, AncestorClass{
			Name:      a.Name,
			StartLine: a.StartLine,
			EndLine:   a.EndLine,
		})
	}
	return nil, out, nil
}
