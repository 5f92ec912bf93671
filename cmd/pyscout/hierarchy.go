package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/mkears/pyscout/internal/export"
	"github.com/mkears/pyscout/internal/pysrc"
)

func runHierarchy(args []string) error {
	fs := flag.NewFlagSet("hierarchy", flag.ContinueOnError)
	format := fs.String("format", "mermaid", "output format: mermaid or json")
	outPath := fs.String("o", "", "write to this file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) != 1 {
		return fmt.Errorf("usage: pyscout hierarchy [flags] <file.py>")
	}
	file := rest[0]

	src, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	tree, err := pysrc.Parse(src)
	if err != nil {
		return fmt.Errorf("parse %s: %w", file, err)
	}

	var out []byte
	switch *format {
	case "mermaid":
		out = []byte(export.Mermaid(tree))
	case "json":
		data, err := json.MarshalIndent(export.Hierarchy(file, tree), "", "  ")
		if err != nil {
			return fmt.Errorf("marshal JSON: %w", err)
		}
		out = append(data, '\n')
	default:
		return fmt.Errorf("unknown format %q (want mermaid or json)", *format)
	}

	if *outPath != "" {
		return os.WriteFile(*outPath, out, 0o644)
	}
	_, err = os.Stdout.Write(out)
	return err
}
