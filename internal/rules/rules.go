// Package rules holds the discord.py practice catalogue and applies it to
// parsed source files. The built-in catalogue is embedded; projects can
// replace it with their own YAML file.
package rules

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FunctionRule checks the body of one named function, located by name with
// inherited definitions included. Forbid entries report when present in
// the body; Require entries report when absent.
type FunctionRule struct {
	Function string   `yaml:"function"`
	Forbid   []string `yaml:"forbid,omitempty"`
	Require  []string `yaml:"require,omitempty"`
}

// LineRule reports every raw source line containing Pattern. With LoopHint
// set, a finding on a line directly under a for statement jumps to the
// loop line instead.
type LineRule struct {
	Pattern  string `yaml:"pattern"`
	LoopHint bool   `yaml:"loopHint,omitempty"`
}

// Catalog is a complete practice catalogue.
type Catalog struct {
	FunctionRules []FunctionRule    `yaml:"functionRules"`
	LineRules     []LineRule        `yaml:"lineRules"`
	Reasons       map[string]string `yaml:"reasons"`
}

// defaultReason is attached to findings whose pattern has no advisory in
// the catalogue.
const defaultReason = "- There are no suggested changes"

//go:embed catalog.yml
var defaultYAML []byte

var defaultCatalog = mustParse(defaultYAML)

func mustParse(data []byte) *Catalog {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		panic(fmt.Sprintf("rules: embedded catalogue: %v", err))
	}
	return &c
}

// Default returns the built-in catalogue. The returned value is shared;
// callers must not modify it.
func Default() *Catalog {
	return defaultCatalog
}

// Load reads a catalogue from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse rules %s: %w", path, err)
	}
	return &c, nil
}

// Reason returns the advisory text for a pattern.
func (c *Catalog) Reason(pattern string) string {
	if r, ok := c.Reasons[pattern]; ok {
		return r
	}
	return defaultReason
}
