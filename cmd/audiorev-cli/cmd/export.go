package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"audiorev/internal/adapters/export"
	"audiorev/internal/application/commands"
)

var (
	exportName string
	exportMins []string
	exportMaxs []string
	exportSort string
	exportDesc bool
)

var exportCmd = &cobra.Command{
	Use:   "export <out-path>",
	Short: "Export matching records to a file list or SQLite database",
	Long: `Load the dataset, apply the same filter and sort flags as query,
and export the matching records. The output format follows the file
extension: .txt and .jsonl write a path list, .db writes a SQLite
database with one row per record.

Examples:
  audiorev-cli export selection.txt --min PQ=4
  audiorev-cli export dataset.db --sort PQ --desc`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath := args[0]
		criteria, err := buildCriteria(exportName, exportMins, exportMaxs)
		if err != nil {
			return err
		}
		spec := buildSortSpec(exportSort, exportDesc)

		ctx := context.Background()
		result, err := commands.NewLoadCommand(GetRepo(), GetRoot()).Execute(ctx)
		if err != nil {
			return err
		}
		view := commands.ApplyQuery(result.Index, criteria, spec)

		ext := strings.ToLower(filepath.Ext(outPath))
		switch ext {
		case ".db", ".sqlite", ".sqlite3":
			err = export.WriteSQLite(outPath, view.Records)
		default:
			var format export.Format
			format, err = export.ParseFormat(ext)
			if err != nil {
				return err
			}
			err = export.WriteList(outPath, format, view.Paths())
		}
		if err != nil {
			return err
		}

		fmt.Printf("exported %d records to %s\n", view.Len(), outPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportName, "name", "", "case-insensitive filename substring")
	exportCmd.Flags().StringArrayVar(&exportMins, "min", nil, "inclusive lower bound, METRIC=VALUE (repeatable)")
	exportCmd.Flags().StringArrayVar(&exportMaxs, "max", nil, "inclusive upper bound, METRIC=VALUE (repeatable)")
	exportCmd.Flags().StringVar(&exportSort, "sort", "", "sort column: filename, path, or a metric name")
	exportCmd.Flags().BoolVar(&exportDesc, "desc", false, "sort descending")
}
