package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewInspectorMCPServer creates an MCP server with the 3 source inspection
// tools registered: find_source, check_file, and class_ancestors.
func NewInspectorMCPServer(svc *InspectorService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "pyscout",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_source",
		Description: "Locate a function, method, or class in a Python file and return its exact source with line numbers. Accepts a dotted name like Class.method (inheritance is followed) or, with exact, a literal line of source to search for.",
	}, svc.FindSource)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_file",
		Description: "Check a Python file against the discord.py practice catalogue. Returns advisory findings with line numbers and the reasoning behind each rule.",
	}, svc.CheckFile)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "class_ancestors",
		Description: "Resolve a class's inheritance chain within one Python file. Returns the declared bases and every ancestor defined in the same file, nearest first.",
	}, svc.ClassAncestors)

	return server
}

// RunMCPServerStdio runs the MCP server on stdio transport, blocking until
// stdin is closed or the context is cancelled.
func RunMCPServerStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

// RunMCPServer starts an HTTP server exposing the inspection MCP tools.
func RunMCPServer(ctx context.Context, svc *InspectorService, addr string) error {
	server := NewInspectorMCPServer(svc)

	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Shutdown gracefully when context is cancelled.
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
