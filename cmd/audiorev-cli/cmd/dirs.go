package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dirsUnscoredOnly bool

var dirsCmd = &cobra.Command{
	Use:   "dirs",
	Short: "List manifest directories in the dataset",
	Long: `List every directory under the dataset root that carries a path
manifest, marking directories that have not been scored yet.

Examples:
  audiorev-cli dirs
  audiorev-cli dirs --unscored`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dirs, err := GetRepo().Discover(GetRoot())
		if err != nil {
			return err
		}

		for _, dir := range dirs {
			scored := GetRepo().HasScoreManifest(dir)
			if dirsUnscoredOnly && scored {
				continue
			}
			marker := "scored"
			if !scored {
				marker = "unscored"
			}
			fmt.Printf("%-8s %s\n", marker, dir)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dirsCmd)
	dirsCmd.Flags().BoolVar(&dirsUnscoredOnly, "unscored", false, "only show directories without a score manifest")
}
