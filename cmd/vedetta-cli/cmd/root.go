package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"vedetta/internal/adapters/sqlite"
	"vedetta/internal/config"
	"vedetta/internal/logging"
)

var (
	configPath string
	dbPath     string

	cfg      *config.Config
	logger   *slog.Logger
	logClose func() error
)

var rootCmd = &cobra.Command{
	Use:   "vedetta-cli",
	Short: "Triage your wiki watchlist from the command line",
	Long: `vedetta-cli logs into your wiki, finds watched pages with changes
you have not seen yet, opens a bounded batch of them in your browser,
and records every open so no page is ever offered twice.

It also answers questions about the accumulated history: how often and
how recently each page was opened.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if dbPath == "" {
			dbPath = cfg.DatabasePath
		}
		if dbPath == "" {
			dbPath = sqlite.DefaultPath()
		}
		logger, logClose = logging.Setup(cfg.Log)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logClose != nil {
			logClose()
		}
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
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath(), "path to the config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the history database (default from config)")
}

// openHistory opens the history store for a subcommand. The caller
// closes it.
func openHistory() (*sqlite.History, error) {
	store := sqlite.NewHistory()
	if err := store.Open(dbPath); err != nil {
		return nil, err
	}
	return store, nil
}
