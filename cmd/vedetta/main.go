package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"vedetta/internal/adapters/sqlite"
	"vedetta/internal/adapters/tui"
	"vedetta/internal/config"
)

func main() {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	dbPath := cfg.DatabasePath
	if dbPath == "" {
		dbPath = sqlite.DefaultPath()
	}

	store := sqlite.NewHistory()
	if err := store.Open(dbPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	// Create and run TUI app
	app := tui.NewApp(store, cfg.DiscussionPrefix)

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
