package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"audiorev/internal/adapters/aescli"
	"audiorev/internal/adapters/manifest"
	"audiorev/internal/adapters/player"
	"audiorev/internal/adapters/tui"
	"audiorev/internal/config"
)

func main() {
	root := expandHome(config.DatasetRoot())
	if len(os.Args) > 1 {
		root = os.Args[1]
	}

	// Initialize adapters
	repo := manifest.NewRepository()
	scorer := aescli.NewScorer(aescli.WithCommand(config.AESCommand()))
	pl := player.NewPlayer()

	// Create and run TUI app
	app := tui.NewApp(repo, scorer, pl, root)

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
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
