package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"audiorev/internal/adapters/manifest"
	"audiorev/internal/config"
	"audiorev/internal/ports"
)

var (
	datasetRoot string
	repo        ports.DatasetRepository
)

var rootCmd = &cobra.Command{
	Use:   "audiorev-cli",
	Short: "CLI for audio review datasets",
	Long: `audiorev-cli inspects and preprocesses audio review datasets.

A dataset is a tree of directories, each holding a paths.jsonl manifest
of audio files and a positionally aligned scores.jsonl manifest of
aesthetic metrics. The CLI lists manifest directories, queries records,
reports manifest problems, and drives the scoring command over
unprocessed directories.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		datasetRoot = expandHome(datasetRoot)
		repo = manifest.NewRepository()
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&datasetRoot, "dataset", "d", config.DatasetRoot(), "path to the dataset root")
}

// GetRepo returns the initialized repository
func GetRepo() ports.DatasetRepository {
	return repo
}

// GetRoot returns the dataset root after home expansion
func GetRoot() string {
	return datasetRoot
}

func expandHome(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
