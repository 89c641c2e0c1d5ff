package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"audiorev/internal/application/commands"
)

var diagnosticsCmd = &cobra.Command{
	Use:   "diagnostics",
	Short: "Report manifest problems in the dataset",
	Long: `Load the dataset and print every directory-level problem found:
missing score manifests, path/score count mismatches, malformed lines,
and duplicate audio paths across directories.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		result, err := commands.NewLoadCommand(GetRepo(), GetRoot()).Execute(ctx)
		if err != nil {
			return err
		}

		if len(result.Diagnostics) == 0 {
			fmt.Printf("%d directories scanned, no problems found\n", result.DirsScanned)
			return nil
		}

		for _, d := range result.Diagnostics {
			fmt.Println(d.String())
		}
		fmt.Printf("\n%d problems across %d directories scanned, %d records indexed\n",
			len(result.Diagnostics), result.DirsScanned, result.Index.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(diagnosticsCmd)
}
