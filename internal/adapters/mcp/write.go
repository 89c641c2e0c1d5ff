package mcp

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"audiorev/internal/adapters/export"
	"audiorev/internal/application/commands"
	"audiorev/internal/ports"
)

// RegisterWriteTools adds the dataset tools that modify files on disk.
func RegisterWriteTools(s *server.MCPServer, repo ports.DatasetRepository, scorer ports.Scorer, root string) {
	s.AddTool(preprocessTool(), preprocessHandler(repo, scorer, root))
	s.AddTool(exportListTool(), exportListHandler(repo, root))
}

// --- preprocess ---

func preprocessTool() mcp.Tool {
	return mcp.NewTool("preprocess",
		mcp.WithDescription("Run the scoring command over the dataset's subdirectories, generating missing path manifests first. Directories that already have scores are skipped unless overwrite is set. One failing directory does not stop the run."),
		mcp.WithBoolean("overwrite",
			mcp.Description("Regenerate manifests and rescore every directory"),
		),
		mcp.WithNumber("batch_size",
			mcp.Description(fmt.Sprintf("Paths per scoring invocation (default %d)", commands.DefaultBatchSize)),
		),
	)
}

func preprocessHandler(repo ports.DatasetRepository, scorer ports.Scorer, root string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		opts := commands.PreprocessOptions{
			BatchSize:    req.GetInt("batch_size", commands.DefaultBatchSize),
			SkipExisting: true,
			Overwrite:    req.GetBool("overwrite", false),
		}

		summary, err := commands.NewPreprocessCommand(repo, scorer, root, opts).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "run %s: %d succeeded, %d skipped, %d failed, %d not attempted\n",
			summary.RunID, summary.Counts.Succeeded, summary.Counts.Skipped,
			summary.Counts.Failed, summary.Counts.NotAttempted)
		for _, f := range summary.Failures() {
			fmt.Fprintf(&sb, "failed %s: %s\n", f.Dir, f.Detail)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- export_list ---

func exportListTool() mcp.Tool {
	return mcp.NewTool("export_list",
		mcp.WithDescription("Export the paths of matching records to a txt or jsonl file."),
		mcp.WithString("out_path",
			mcp.Description("Destination file; extension picks the format (.txt or .jsonl)"),
			mcp.Required(),
		),
		mcp.WithString("name",
			mcp.Description("Case-insensitive filename substring"),
		),
		mcp.WithString("min",
			mcp.Description("Inclusive lower bounds as METRIC=VALUE, comma separated"),
		),
		mcp.WithString("max",
			mcp.Description("Inclusive upper bounds as METRIC=VALUE, comma separated"),
		),
	)
}

func exportListHandler(repo ports.DatasetRepository, root string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		outPath := req.GetString("out_path", "")
		if outPath == "" {
			return toolError(fmt.Errorf("out_path is required"))
		}
		format, err := export.ParseFormat(filepath.Ext(outPath))
		if err != nil {
			return toolError(err)
		}

		criteria, err := parseCriteria(
			req.GetString("name", ""),
			req.GetString("min", ""),
			req.GetString("max", ""),
		)
		if err != nil {
			return toolError(err)
		}

		result, err := commands.NewLoadCommand(repo, root).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		view := commands.ApplyQuery(result.Index, criteria, nil)

		if err := export.WriteList(outPath, format, view.Paths()); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("exported %d records to %s", view.Len(), outPath)), nil
	}
}
