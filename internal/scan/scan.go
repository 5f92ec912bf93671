// Package scan discovers Python files under one or more roots and runs the
// practice checker over them with bounded concurrency.
package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"golang.org/x/sync/errgroup"

	"github.com/mkears/pyscout/internal/inspect"
	"github.com/mkears/pyscout/internal/pysrc"
	"github.com/mkears/pyscout/internal/report"
	"github.com/mkears/pyscout/internal/rules"
)

// compiledPattern pairs an exclude pattern with its compiled glob.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Scanner discovers and checks Python source files.
type Scanner struct {
	catalog  *rules.Catalog
	excludes []compiledPattern
	jobs     int
}

// New builds a Scanner. Exclude patterns are slash-separated globs matched
// against paths relative to the walked root; write "vendor/**" to exclude a
// whole directory. jobs caps concurrent file checks, with values below one
// meaning one.
func New(catalog *rules.Catalog, excludes []string, jobs int) (*Scanner, error) {
	s := &Scanner{catalog: catalog, jobs: jobs}
	if s.jobs < 1 {
		s.jobs = 1
	}
	for _, pattern := range excludes {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("compile exclude %q: %w", pattern, err)
		}
		s.excludes = append(s.excludes, compiledPattern{pattern: pattern, glob: g})
	}
	return s, nil
}

// Discover walks each root and returns every .py file not excluded, in
// walk order. A root that is itself a file is taken as given; exclusions
// do not apply to explicitly named files.
func (s *Scanner) Discover(roots []string) ([]string, error) {
	var files []string
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}
		if !info.IsDir() {
			files = append(files, root)
			continue
		}

		err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() || !strings.HasSuffix(path, ".py") {
				return nil
			}
			relPath, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			if s.excluded(filepath.ToSlash(relPath)) {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}
	return files, nil
}

func (s *Scanner) excluded(relPath string) bool {
	for _, cp := range s.excludes {
		if cp.glob.Match(relPath) {
			return true
		}
	}
	return false
}

// FileResult is the outcome of checking one file.
type FileResult struct {
	File       string
	Findings   []report.Finding
	Duplicates []string // class names defined more than once in the file
	Err        error
}

// Run checks every file with at most jobs checks running at once. Results
// come back indexed by input position, so output order is deterministic
// regardless of scheduling. A file that cannot be read or parsed carries
// its error in its result; the run as a whole fails only when ctx is
// canceled.
func (s *Scanner) Run(ctx context.Context, files []string) ([]FileResult, error) {
	results := make([]FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.jobs)

	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = FileResult{File: file, Err: err}
				return err
			}
			results[i] = s.checkFile(file)
			return nil
		})
	}

	err := g.Wait()
	return results, err
}

func (s *Scanner) checkFile(file string) FileResult {
	data, err := os.ReadFile(file)
	if err != nil {
		return FileResult{File: file, Err: fmt.Errorf("read: %w", err)}
	}
	tree, err := pysrc.Parse(data)
	if err != nil {
		return FileResult{File: file, Err: fmt.Errorf("parse: %w", err)}
	}

	sess := inspect.NewSession(tree)
	return FileResult{
		File:       file,
		Findings:   rules.CheckSource(file, string(data), sess, s.catalog),
		Duplicates: sess.Duplicates(),
	}
}
