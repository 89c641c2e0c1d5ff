package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"audiorev/internal/adapters/aescli"
	"audiorev/internal/adapters/manifest"
	mcpadapter "audiorev/internal/adapters/mcp"
	"audiorev/internal/config"
)

func main() {
	datasetFlag := flag.String("dataset", config.DatasetRoot(), "path to the dataset root")
	flag.Parse()

	repo := manifest.NewRepository()
	scorer := aescli.NewScorer(aescli.WithCommand(config.AESCommand()))

	mcpServer := server.NewMCPServer(
		"audiorev-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check — returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, repo, *datasetFlag)
	mcpadapter.RegisterWriteTools(mcpServer, repo, scorer, *datasetFlag)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("audiorev-mcp: %v", err)
	}
}
