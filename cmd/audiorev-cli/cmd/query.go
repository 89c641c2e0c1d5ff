package cmd

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"audiorev/internal/application/commands"
	"audiorev/internal/domain"
)

var (
	queryName string
	queryMins []string
	queryMaxs []string
	querySort string
	queryDesc bool
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Filter and sort dataset records",
	Long: `Load the dataset and print the records matching the given filter.

Bounds are inclusive and take the form METRIC=VALUE; a record without the
metric never matches a bound on it. Sorting by a metric puts records
missing that metric last in either direction.

Examples:
  audiorev-cli query --name clean
  audiorev-cli query --min PQ=3.5 --max CE=7 --sort PQ --desc`,
	RunE: func(cmd *cobra.Command, args []string) error {
		criteria, err := buildCriteria(queryName, queryMins, queryMaxs)
		if err != nil {
			return err
		}
		spec := buildSortSpec(querySort, queryDesc)

		ctx := context.Background()
		result, err := commands.NewLoadCommand(GetRepo(), GetRoot()).Execute(ctx)
		if err != nil {
			return err
		}

		view := commands.ApplyQuery(result.Index, criteria, spec)
		printRecords(view.Records)
		fmt.Printf("\n%d of %d records", view.Len(), result.Index.Len())
		if n := len(result.Diagnostics); n > 0 {
			fmt.Printf(" (%d directories with problems, see diagnostics)", n)
		}
		fmt.Println()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVar(&queryName, "name", "", "case-insensitive filename substring")
	queryCmd.Flags().StringArrayVar(&queryMins, "min", nil, "inclusive lower bound, METRIC=VALUE (repeatable)")
	queryCmd.Flags().StringArrayVar(&queryMaxs, "max", nil, "inclusive upper bound, METRIC=VALUE (repeatable)")
	queryCmd.Flags().StringVar(&querySort, "sort", "", "sort column: filename, path, or a metric name")
	queryCmd.Flags().BoolVar(&queryDesc, "desc", false, "sort descending")
}

// buildCriteria assembles filter criteria from --name/--min/--max values.
func buildCriteria(name string, mins, maxs []string) (domain.FilterCriteria, error) {
	criteria := domain.FilterCriteria{NameContains: name}

	bounds := map[string]domain.Bound{}
	for _, raw := range mins {
		metric, value, err := parseBound(raw)
		if err != nil {
			return criteria, err
		}
		b := bounds[metric]
		b.Min = &value
		bounds[metric] = b
	}
	for _, raw := range maxs {
		metric, value, err := parseBound(raw)
		if err != nil {
			return criteria, err
		}
		b := bounds[metric]
		b.Max = &value
		bounds[metric] = b
	}
	if len(bounds) > 0 {
		criteria.Bounds = bounds
	}
	return criteria, nil
}

func parseBound(raw string) (string, float64, error) {
	metric, valueStr, ok := strings.Cut(raw, "=")
	if !ok || metric == "" {
		return "", 0, fmt.Errorf("invalid bound %q (want METRIC=VALUE)", raw)
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid bound value in %q: %w", raw, err)
	}
	return metric, value, nil
}

func buildSortSpec(column string, descending bool) *domain.SortSpec {
	if column == "" {
		return nil
	}
	return &domain.SortSpec{Column: column, Descending: descending}
}

func printRecords(records []domain.AudioRecord) {
	for _, r := range records {
		fmt.Printf("%-40s %s\n", r.Filename, formatScores(r.Scores))
	}
}

// formatScores renders metrics in stable alphabetical order.
func formatScores(scores domain.Scores) string {
	if len(scores) == 0 {
		return "(unscored)"
	}
	names := make([]string, 0, len(scores))
	for name := range scores {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%.2f", name, scores[name]))
	}
	return strings.Join(parts, " ")
}
