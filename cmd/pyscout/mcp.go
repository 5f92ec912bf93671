package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mkears/pyscout/internal/mcptools"
	"github.com/mkears/pyscout/internal/rules"
)

func runMCP(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	httpAddr := fs.String("http", "", "serve over HTTP on this address instead of stdio")
	rulesPath := fs.String("rules", "", "YAML rules catalogue replacing the built-in one")
	if err := fs.Parse(args); err != nil {
		return err
	}

	catalog := rules.Default()
	if *rulesPath != "" {
		var err error
		catalog, err = rules.Load(*rulesPath)
		if err != nil {
			return err
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	svc := mcptools.NewInspectorService(catalog)

	if *httpAddr != "" {
		fmt.Fprintf(os.Stderr, "pyscout MCP server listening on %s\n", *httpAddr)
		return mcptools.RunMCPServer(ctx, svc, *httpAddr)
	}
	return mcptools.RunMCPServerStdio(ctx, mcptools.NewInspectorMCPServer(svc))
}
