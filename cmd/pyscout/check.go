package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mkears/pyscout/internal/config"
	"github.com/mkears/pyscout/internal/report"
	"github.com/mkears/pyscout/internal/rules"
	"github.com/mkears/pyscout/internal/scan"
)

// errIssuesFound marks a run whose findings were already reported; it sets
// the exit code without adding an error line.
var errIssuesFound = errors.New("issues found")

// stringList collects repeated flag values.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func runCheck(args []string) error {
	// Project config supplies the defaults; flags override it.
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}

	var excludes stringList
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	rulesPath := fs.String("rules", cfg.Rules, "YAML rules catalogue replacing the built-in one")
	jobs := fs.Int("jobs", cfg.Jobs, "number of files checked concurrently")
	noColor := fs.Bool("no-color", cfg.NoColor, "disable colored output")
	verbose := fs.Bool("verbose", cfg.Verbose, "also warn about duplicate class definitions")
	fs.Var(&excludes, "exclude", "glob of files to skip, relative to each root (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	roots := fs.Args()
	if len(roots) == 0 {
		roots = []string{"."}
	}
	if len(excludes) == 0 {
		excludes = cfg.Exclude
	}

	catalog := rules.Default()
	if *rulesPath != "" {
		catalog, err = rules.Load(*rulesPath)
		if err != nil {
			return err
		}
	}

	scanner, err := scan.New(catalog, excludes, *jobs)
	if err != nil {
		return err
	}

	files, err := scanner.Discover(roots)
	if err != nil {
		return err
	}

	results, err := scanner.Run(context.Background(), files)
	if err != nil {
		return err
	}

	w := report.NewWriter(os.Stdout, !*noColor)
	total := 0
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "warning: %s: %v\n", res.File, res.Err)
			continue
		}
		if *verbose {
			for _, name := range res.Duplicates {
				fmt.Fprintf(os.Stderr, "warning: %s defines class %q more than once; queries resolve to the last definition\n", res.File, name)
			}
		}
		for _, f := range res.Findings {
			w.Finding(f)
			total++
		}
	}
	w.Summary(len(files), total)

	if total > 0 {
		return errIssuesFound
	}
	return nil
}
