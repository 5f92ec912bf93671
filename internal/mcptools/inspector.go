package mcptools

import "github.com/mkears/pyscout/internal/report"

// --- MCP Tool Input Types ---
// These structs define the JSON schema for each MCP tool's input.
// The MCP Go SDK auto-generates JSON schemas from struct tags.

// FindSourceInput is the input for the find_source MCP tool.
type FindSourceInput struct {
	Path        string `json:"path" jsonschema:"the absolute path of the Python file to search"`
	Query       string `json:"query" jsonschema:"a dotted name like Class.method, or a literal source line when exact is set"`
	Exact       bool   `json:"exact,omitempty" jsonschema:"match the query as a literal line of source instead of a name"`
	Count       int    `json:"count,omitempty" jsonschema:"maximum number of matches to return (default: 1)"`
	NoAncestors bool   `json:"noAncestors,omitempty" jsonschema:"do not follow base classes when resolving a method on a class"`
}

// SourceMatch is one located construct.
type SourceMatch struct {
	Text string `json:"text"`
	Line int    `json:"line"` // 0-based first line of the snippet
}

// FindSourceOutput is the result of the find_source MCP tool.
type FindSourceOutput struct {
	Matches []SourceMatch `json:"matches"`
	Total   int           `json:"total"`
	// Found is false only when the query names a class the file does not
	// define. An existing scope with no matching members yields true with
	// an empty Matches.
	Found bool `json:"found"`
}

// CheckFileInput is the input for the check_file MCP tool.
type CheckFileInput struct {
	Path  string `json:"path" jsonschema:"the absolute path of the Python file to check"`
	Rules string `json:"rules,omitempty" jsonschema:"path of a YAML rules catalogue to use instead of the built-in one"`
}

// CheckFileOutput is the result of the check_file MCP tool.
type CheckFileOutput struct {
	Findings []report.Finding `json:"findings"`
	// Duplicates lists class names the file defines more than once; queries
	// against such a class resolve to its last definition.
	Duplicates []string `json:"duplicates,omitempty"`
}

// ClassAncestorsInput is the input for the class_ancestors MCP tool.
type ClassAncestorsInput struct {
	Path  string `json:"path" jsonschema:"the absolute path of the Python file"`
	Class string `json:"class" jsonschema:"name of the class whose inheritance chain to resolve"`
}

// AncestorClass is one class in a resolved inheritance chain.
type AncestorClass struct {
	Name      string `json:"name"`
	StartLine int    `json:"startLine"`
	EndLine   int    `json:"endLine"`
}

// ClassAncestorsOutput is the result of the class_ancestors MCP tool.
type ClassAncestorsOutput struct {
	Found bool `json:"found"`
	// Bases holds the base names exactly as declared, including ones the
	// file never defines.
	Bases []string `json:"bases,omitempty"`
	// Ancestors holds the chain resolved within the file, nearest first.
	Ancestors []AncestorClass `json:"ancestors,omitempty"`
}
