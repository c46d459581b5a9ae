package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "vedetta/internal/adapters/mcp"
	"vedetta/internal/adapters/sqlite"
)

func main() {
	dbFlag := flag.String("db", sqlite.DefaultPath(), "path to the history database")
	flag.Parse()

	store := sqlite.NewHistory()
	if err := store.Open(*dbFlag); err != nil {
		log.Fatalf("vedetta-mcp: %v", err)
	}
	defer store.Close()

	mcpServer := server.NewMCPServer(
		"vedetta-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, store)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("vedetta-mcp: %v", err)
	}
}
