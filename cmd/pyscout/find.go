package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mkears/pyscout/internal/inspect"
	"github.com/mkears/pyscout/internal/pysrc"
)

func runFind(args []string) error {
	fs := flag.NewFlagSet("find", flag.ContinueOnError)
	exact := fs.Bool("exact", false, "treat the query as a literal line of source")
	count := fs.Int("count", 1, "maximum number of matches")
	noAncestors := fs.Bool("no-ancestors", false, "do not follow base classes when resolving a method")
	class := fs.String("class", "", "scope the search to methods of this class")
	asJSON := fs.Bool("json", false, "print matches as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) < 2 {
		return fmt.Errorf("usage: pyscout find [flags] <file.py> <query>")
	}
	file := rest[0]
	// Exact-line queries may contain spaces; take everything after the file.
	query := strings.Join(rest[1:], " ")

	src, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	tree, err := pysrc.Parse(src)
	if err != nil {
		return fmt.Errorf("parse %s: %w", file, err)
	}

	var q inspect.Query
	if *class != "" {
		q, err = inspect.FromRef(inspect.Ref{Class: *class, Function: query}, *exact)
	} else {
		q, err = inspect.ParseQuery(query, *exact)
	}
	if err != nil {
		return err
	}

	sess := inspect.NewSession(tree)
	matches, found := sess.Matches(q, inspect.Options{
		Limit:     *count,
		Ancestors: !*noAncestors,
	})
	if !found {
		name := *class
		if nq, ok := q.(inspect.NameQuery); ok && name == "" {
			name = nq.Class
		}
		return fmt.Errorf("class %q is not defined in %s", name, file)
	}

	if *asJSON {
		return printMatchesJSON(matches)
	}

	if len(matches) == 0 {
		return fmt.Errorf("no match for %q in %s", query, file)
	}
	for i, m := range matches {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("%s#%d\n", file, m.Line+1)
		fmt.Println(m.Text)
	}
	return nil
}

func printMatchesJSON(matches []inspect.Match) error {
	type jsonMatch struct {
		Text string `json:"text"`
		Line int    `json:"line"` // 0-based first line of the snippet
	}
	out := struct {
		Matches []jsonMatch `json:"matches"`
		Total   int         `json:"total"`
	}{Matches: make([]jsonMatch, 0, len(matches))}

	for _, m := range matches {
		out.Matches = append(out.Matches, jsonMatch{Text: m.Text, Line: m.Line})
	}
	out.Total = len(out.Matches)

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	_, err = os.Stdout.Write(append(data, '\n'))
	return err
}
