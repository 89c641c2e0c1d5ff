package mcp

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"audiorev/internal/application/commands"
	"audiorev/internal/domain"
	"audiorev/internal/ports"
)

// RegisterReadTools adds all read-only dataset tools to the MCP server.
// Every tool rebuilds the index from the manifests, so results always
// reflect the files on disk.
func RegisterReadTools(s *server.MCPServer, repo ports.DatasetRepository, root string) {
	s.AddTool(loadSummaryTool(), loadSummaryHandler(repo, root))
	s.AddTool(queryTool(), queryHandler(repo, root))
	s.AddTool(diagnosticsTool(), diagnosticsHandler(repo, root))
}

// --- load_summary ---

func loadSummaryTool() mcp.Tool {
	return mcp.NewTool("load_summary",
		mcp.WithDescription("Rebuild the dataset index and report how many directories, records, and problems were found."),
	)
}

func loadSummaryHandler(repo ports.DatasetRepository, root string) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewLoadCommand(repo, root).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf(
			"%d directories scanned, %d records indexed, %d problems",
			result.DirsScanned, result.Index.Len(), len(result.Diagnostics),
		)), nil
	}
}

// --- query ---

func queryTool() mcp.Tool {
	return mcp.NewTool("query",
		mcp.WithDescription("Filter and sort dataset records. Returns one record per line with its metric scores."),
		mcp.WithString("name",
			mcp.Description("Case-insensitive filename substring"),
		),
		mcp.WithString("min",
			mcp.Description("Inclusive lower bounds as METRIC=VALUE, comma separated (e.g. PQ=3.5,CE=2)"),
		),
		mcp.WithString("max",
			mcp.Description("Inclusive upper bounds as METRIC=VALUE, comma separated"),
		),
		mcp.WithString("sort",
			mcp.Description("Sort column: filename, path, or a metric name. Records missing the metric sort last."),
		),
		mcp.WithBoolean("desc",
			mcp.Description("Sort descending"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum records to return (default 50)"),
		),
	)
}

func queryHandler(repo ports.DatasetRepository, root string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		criteria, err := parseCriteria(
			req.GetString("name", ""),
			req.GetString("min", ""),
			req.GetString("max", ""),
		)
		if err != nil {
			return toolError(err)
		}

		var spec *domain.SortSpec
		if column := req.GetString("sort", ""); column != "" {
			spec = &domain.SortSpec{Column: column, Descending: req.GetBool("desc", false)}
		}
		limit := req.GetInt("limit", 50)

		result, err := commands.NewLoadCommand(repo, root).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		view := commands.ApplyQuery(result.Index, criteria, spec)

		if view.Len() == 0 {
			return mcp.NewToolResultText("No matching records."), nil
		}

		var sb strings.Builder
		for i, r := range view.Records {
			if limit > 0 && i >= limit {
				fmt.Fprintf(&sb, "... %d more records\n", view.Len()-limit)
				break
			}
			fmt.Fprintf(&sb, "%s  %s\n", r.Path, formatScores(r.Scores))
		}
		fmt.Fprintf(&sb, "\n%d of %d records matched", view.Len(), result.Index.Len())
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- diagnostics ---

func diagnosticsTool() mcp.Tool {
	return mcp.NewTool("diagnostics",
		mcp.WithDescription("Report manifest problems: missing scores, count mismatches, malformed lines, duplicate paths."),
	)
}

func diagnosticsHandler(repo ports.DatasetRepository, root string) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewLoadCommand(repo, root).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(result.Diagnostics) == 0 {
			return mcp.NewToolResultText("No problems found."), nil
		}
		var sb strings.Builder
		for _, d := range result.Diagnostics {
			sb.WriteString(d.String())
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatScores(scores domain.Scores) string {
	if len(scores) == 0 {
		return "(unscored)"
	}
	parts := make([]string, 0, len(scores))
	for _, name := range domain.KnownMetrics {
		if v, ok := scores[name]; ok {
			parts = append(parts, fmt.Sprintf("%s=%.2f", name, v))
		}
	}
	for name, v := range scores {
		if !isKnownMetric(name) {
			parts = append(parts, fmt.Sprintf("%s=%.2f", name, v))
		}
	}
	return strings.Join(parts, " ")
}

func isKnownMetric(name string) bool {
	for _, known := range domain.KnownMetrics {
		if name == known {
			return true
		}
	}
	return false
}

// parseCriteria builds filter criteria from the tool's string arguments.
func parseCriteria(name, mins, maxs string) (domain.FilterCriteria, error) {
	criteria := domain.FilterCriteria{NameContains: name}
	bounds := map[string]domain.Bound{}

	if err := parseBounds(mins, func(metric string, value float64) {
		b := bounds[metric]
		b.Min = &value
		bounds[metric] = b
	}); err != nil {
		return criteria, err
	}
	if err := parseBounds(maxs, func(metric string, value float64) {
		b := bounds[metric]
		b.Max = &value
		bounds[metric] = b
	}); err != nil {
		return criteria, err
	}

	if len(bounds) > 0 {
		criteria.Bounds = bounds
	}
	return criteria, nil
}

func parseBounds(raw string, set func(string, float64)) error {
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		metric, valueStr, ok := strings.Cut(part, "=")
		if !ok || metric == "" {
			return fmt.Errorf("invalid bound %q (expected METRIC=VALUE)", part)
		}
		value, err := strconv.ParseFloat(valueStr, 64)
		if err != nil {
			return fmt.Errorf("invalid bound value in %q: %w", part, err)
		}
		set(metric, value)
	}
	return nil
}
