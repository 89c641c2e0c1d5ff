package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"audiorev/internal/adapters/aescli"
	"audiorev/internal/application/commands"
	"audiorev/internal/config"
)

const summaryPrecision = 100 * time.Millisecond

var (
	preprocessBatchSize int
	preprocessOverwrite bool
	preprocessNoSkip    bool
)

var preprocessCmd = &cobra.Command{
	Use:   "preprocess",
	Short: "Score unprocessed dataset directories",
	Long: `Walk the immediate subdirectories of the dataset root, generate
missing path manifests, and run the scoring command over each directory.

Directories that already have a score manifest are skipped unless
--overwrite is set. A failing directory is reported and the run moves
on; Ctrl-C stops the run and leaves untouched directories unmodified.

Examples:
  audiorev-cli preprocess
  audiorev-cli preprocess --overwrite --batch-size 50`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		scorer := aescli.NewScorer(aescli.WithCommand(config.AESCommand()))
		opts := commands.PreprocessOptions{
			BatchSize:    preprocessBatchSize,
			SkipExisting: !preprocessNoSkip,
			Overwrite:    preprocessOverwrite,
			Progress: func(r commands.DirectoryResult, c commands.Counts) {
				done := c.Succeeded + c.Skipped + c.Failed + c.NotAttempted
				fmt.Printf("[%d/%d] %-13s %s", done, c.Total, r.Status, r.Dir)
				if r.Status == commands.StatusFailed {
					fmt.Printf(": %s", r.Detail)
				}
				fmt.Println()
			},
		}

		summary, err := commands.NewPreprocessCommand(GetRepo(), scorer, GetRoot(), opts).Execute(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("\nrun %s: %d succeeded, %d skipped, %d failed, %d not attempted (%s)\n",
			summary.RunID, summary.Counts.Succeeded, summary.Counts.Skipped,
			summary.Counts.Failed, summary.Counts.NotAttempted,
			summary.Elapsed.Round(summaryPrecision))
		if summary.Canceled {
			fmt.Println("run canceled before completion")
		}
		if len(summary.Failures()) > 0 {
			return fmt.Errorf("%d directories failed", summary.Counts.Failed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(preprocessCmd)
	preprocessCmd.Flags().IntVar(&preprocessBatchSize, "batch-size", commands.DefaultBatchSize, "paths per scoring invocation")
	preprocessCmd.Flags().BoolVar(&preprocessOverwrite, "overwrite", false, "regenerate manifests and rescore every directory")
	preprocessCmd.Flags().BoolVar(&preprocessNoSkip, "no-skip", false, "do not skip directories that already have scores")
}
