//go:build cgo

package mcptools

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkears/pyscout/internal/inspect"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// fixtureAbsPath returns the absolute path of a bot_project fixture file.
// Tests run from internal/mcptools/, so the relative path is
// ../../testdata/fixtures/bot_project.
func fixtureAbsPath(t *testing.T, name string) string {
	t.Helper()
	abs, err := filepath.Abs(filepath.Join("../../testdata/fixtures/bot_project", name))
	require.NoError(t, err)
	return abs
}

// writeTempPy writes content to a .py file in a fresh temp dir and returns
// its path.
func writeTempPy(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "unit.py")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestService(t *testing.T) *InspectorService {
	t.Helper()
	return NewInspectorService(nil)
}

// ---------------------------------------------------------------------------
// TestFindSource
// ---------------------------------------------------------------------------

func TestFindSource(t *testing.T) {
	ctx := context.Background()

	t.Run("function by name returns source and line", func(t *testing.T) {
		svc := newTestService(t)

		_, out, err := svc.FindSource(ctx, nil, FindSourceInput{
			Path:  fixtureAbsPath(t, "bot.py"),
			Query: "announce",
		})
		require.NoError(t, err)

		assert.True(t, out.Found)
		require.Equal(t, 1, out.Total)
		assert.Equal(t, 28, out.Matches[0].Line, "announce is defined on line 29, 0-based 28")
		assert.Contains(t, out.Matches[0].Text, "async def announce")
		assert.Contains(t, out.Matches[0].Text, "time.sleep(1)")
	})

	t.Run("method resolved through inheritance", func(t *testing.T) {
		svc := newTestService(t)

		_, out, err := svc.FindSource(ctx, nil, FindSourceInput{
			Path:  fixtureAbsPath(t, "cogs.py"),
			Query: "MusicCog.cog_load",
		})
		require.NoError(t, err)

		assert.True(t, out.Found)
		require.Equal(t, 1, out.Total)
		assert.Equal(t, 22, out.Matches[0].Line,
			"cog_load comes from TrackedCog on line 23, 0-based 22")
		assert.Contains(t, out.Matches[0].Text, "async def cog_load")
	})

	t.Run("noAncestors keeps the search in the class itself", func(t *testing.T) {
		svc := newTestService(t)

		_, out, err := svc.FindSource(ctx, nil, FindSourceInput{
			Path:        fixtureAbsPath(t, "cogs.py"),
			Query:       "MusicCog.cog_load",
			NoAncestors: true,
		})
		require.NoError(t, err)

		assert.True(t, out.Found, "the class exists even though the method does not")
		assert.Equal(t, 0, out.Total)
		assert.Empty(t, out.Matches)
	})

	t.Run("count raises the match limit", func(t *testing.T) {
		svc := newTestService(t)

		_, out, err := svc.FindSource(ctx, nil, FindSourceInput{
			Path:  fixtureAbsPath(t, "cogs.py"),
			Query: "describe",
			Count: 2,
		})
		require.NoError(t, err)

		require.Equal(t, 2, out.Total)
		assert.Equal(t, 12, out.Matches[0].Line, "BaseCog.describe first")
		assert.Equal(t, 34, out.Matches[1].Line, "MusicCog.describe second")
	})

	t.Run("unknown class sets found false", func(t *testing.T) {
		svc := newTestService(t)

		_, out, err := svc.FindSource(ctx, nil, FindSourceInput{
			Path:  fixtureAbsPath(t, "cogs.py"),
			Query: "GhostCog.play",
		})
		require.NoError(t, err)

		assert.False(t, out.Found)
		assert.Equal(t, 0, out.Total)
	})

	t.Run("exact mode matches a literal line", func(t *testing.T) {
		svc := newTestService(t)

		_, out, err := svc.FindSource(ctx, nil, FindSourceInput{
			Path:  fixtureAbsPath(t, "bot.py"),
			Query: `print(f"logged in as {bot.user} at {datetime.now()}")`,
			Exact: true,
		})
		require.NoError(t, err)

		assert.True(t, out.Found)
		require.Equal(t, 1, out.Total)
		assert.Equal(t, 12, out.Matches[0].Line,
			"the line sits inside on_ready, defined on line 13")
		assert.Contains(t, out.Matches[0].Text, "async def on_ready")
	})

	t.Run("empty query returns error", func(t *testing.T) {
		svc := newTestService(t)

		_, _, err := svc.FindSource(ctx, nil, FindSourceInput{
			Path: fixtureAbsPath(t, "bot.py"),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "query is required")
	})

	t.Run("empty path returns error", func(t *testing.T) {
		svc := newTestService(t)

		_, _, err := svc.FindSource(ctx, nil, FindSourceInput{Query: "announce"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "path is required")
	})

	t.Run("unreadable path returns error", func(t *testing.T) {
		svc := newTestService(t)

		_, _, err := svc.FindSource(ctx, nil, FindSourceInput{
			Path:  "/tmp/this-path-does-not-exist-at-all-12345.py",
			Query: "announce",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot read path")
	})

	t.Run("over-qualified query returns error", func(t *testing.T) {
		svc := newTestService(t)

		_, _, err := svc.FindSource(ctx, nil, FindSourceInput{
			Path:  fixtureAbsPath(t, "bot.py"),
			Query: "ext.commands.Bot.run",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, inspect.ErrAmbiguousPath)
	})
}

// ---------------------------------------------------------------------------
// TestCheckFile
// ---------------------------------------------------------------------------

func TestCheckFile(t *testing.T) {
	ctx := context.Background()

	t.Run("flags the bot fixture", func(t *testing.T) {
		svc := newTestService(t)
		path := fixtureAbsPath(t, "bot.py")

		_, out, err := svc.CheckFile(ctx, nil, CheckFileInput{Path: path})
		require.NoError(t, err)

		require.Len(t, out.Findings, 9)
		for _, f := range out.Findings {
			assert.Equal(t, path, f.File)
			assert.NotEmpty(t, f.Reason)
		}
		assert.Equal(t, 13, out.Findings[0].Line, "on_ready violations come first")
		assert.Empty(t, out.Duplicates)
	})

	t.Run("clean file yields no findings", func(t *testing.T) {
		svc := newTestService(t)
		path := writeTempPy(t, "def helper():\n    return 1\n")

		_, out, err := svc.CheckFile(ctx, nil, CheckFileInput{Path: path})
		require.NoError(t, err)

		assert.Empty(t, out.Findings)
		assert.Empty(t, out.Duplicates)
	})

	t.Run("custom catalogue replaces the default", func(t *testing.T) {
		svc := newTestService(t)
		path := writeTempPy(t, "def on_ready():\n    eval(data)\n")

		rulesPath := filepath.Join(t.TempDir(), "rules.yml")
		require.NoError(t, os.WriteFile(rulesPath, []byte(`
lineRules:
  - pattern: "eval("
reasons:
  "eval(": "- Never eval remote input"
`), 0o644))

		_, out, err := svc.CheckFile(ctx, nil, CheckFileInput{
			Path:  path,
			Rules: rulesPath,
		})
		require.NoError(t, err)

		require.Len(t, out.Findings, 1, "only the custom rule should fire")
		assert.Equal(t, 2, out.Findings[0].Line)
		assert.Equal(t, "- Never eval remote input", out.Findings[0].Reason)
	})

	t.Run("duplicate classes are reported", func(t *testing.T) {
		svc := newTestService(t)
		path := writeTempPy(t, "class Worker:\n    pass\n\nclass Worker:\n    pass\n")

		_, out, err := svc.CheckFile(ctx, nil, CheckFileInput{Path: path})
		require.NoError(t, err)

		assert.Equal(t, []string{"Worker"}, out.Duplicates)
	})

	t.Run("missing rules file returns error", func(t *testing.T) {
		svc := newTestService(t)
		path := writeTempPy(t, "x = 1\n")

		_, _, err := svc.CheckFile(ctx, nil, CheckFileInput{
			Path:  path,
			Rules: "/tmp/no-such-rules-file-12345.yml",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "load rules")
	})

	t.Run("empty path returns error", func(t *testing.T) {
		svc := newTestService(t)

		_, _, err := svc.CheckFile(ctx, nil, CheckFileInput{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "path is required")
	})
}

// ---------------------------------------------------------------------------
// TestClassAncestors
// ---------------------------------------------------------------------------

func TestClassAncestors(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves the chain nearest first", func(t *testing.T) {
		svc := newTestService(t)

		_, out, err := svc.ClassAncestors(ctx, nil, ClassAncestorsInput{
			Path:  fixtureAbsPath(t, "cogs.py"),
			Class: "MusicCog",
		})
		require.NoError(t, err)

		assert.True(t, out.Found)
		assert.Equal(t, []string{"TrackedCog"}, out.Bases)

		require.Len(t, out.Ancestors, 3)
		assert.Equal(t, "TrackedCog", out.Ancestors[0].Name)
		assert.Equal(t, 22, out.Ancestors[0].StartLine)
		assert.Equal(t, 27, out.Ancestors[0].EndLine)
		assert.Equal(t, "BaseCog", out.Ancestors[1].Name)
		assert.Equal(t, "LoggingMixin", out.Ancestors[2].Name)
	})

	t.Run("external bases stay declared but unresolved", func(t *testing.T) {
		svc := newTestService(t)

		_, out, err := svc.ClassAncestors(ctx, nil, ClassAncestorsInput{
			Path:  fixtureAbsPath(t, "cogs.py"),
			Class: "BaseCog",
		})
		require.NoError(t, err)

		assert.True(t, out.Found)
		assert.Equal(t, []string{"commands.Cog"}, out.Bases)
		assert.Empty(t, out.Ancestors, "commands.Cog is not defined in the file")
	})

	t.Run("unknown class sets found false", func(t *testing.T) {
		svc := newTestService(t)

		_, out, err := svc.ClassAncestors(ctx, nil, ClassAncestorsInput{
			Path:  fixtureAbsPath(t, "cogs.py"),
			Class: "GhostCog",
		})
		require.NoError(t, err)

		assert.False(t, out.Found)
		assert.Empty(t, out.Bases)
		assert.Empty(t, out.Ancestors)
	})

	t.Run("empty class returns error", func(t *testing.T) {
		svc := newTestService(t)

		_, _, err := svc.ClassAncestors(ctx, nil, ClassAncestorsInput{
			Path: fixtureAbsPath(t, "cogs.py"),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "class is required")
	})
}
