package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
)

// version is set by goreleaser at build time.
var version = "dev"

const usage = `pyscout inspects Python source files.

Usage:
  pyscout <command> [flags] [args]

Commands:
  check      check .py files against the practice catalogue
  find       locate a function, method, or class and print its source
  hierarchy  export the class hierarchy of one file
  mcp        run the MCP server (stdio by default)
  version    print the version

Run 'pyscout <command> -h' for command flags.
`

func main() {
	err := run(os.Args[1:])
	if err == nil {
		return
	}
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	// Findings already printed their own report; skip the error line.
	if !errors.Is(err, errIssuesFound) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	os.Exit(1)
}

func run(args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("no command given")
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "check":
		return runCheck(rest)
	case "find":
		return runFind(rest)
	case "hierarchy":
		return runHierarchy(rest)
	case "mcp":
		return runMCP(rest)
	case "version":
		fmt.Println(version)
		return nil
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}
