package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"vedetta/internal/adapters/mediawiki"
	"vedetta/internal/adapters/sysbrowser"
	"vedetta/internal/application/commands"
	"vedetta/internal/config"
)

var triageCmd = &cobra.Command{
	Use:   "triage [count]",
	Short: "Open unseen watchlist pages in the browser",
	Long: `Log in, fetch the watchlist, and open up to count pages that have
unseen changes and were never opened by a previous run. Each open is
recorded immediately, so an interrupted run never loses track of what
it already showed you.

Without a count the configured batch size applies.

Examples:
  vedetta-cli triage
  vedetta-cli triage 3`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		batchSize := cfg.BatchSize
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				return fmt.Errorf("count must be a positive integer, got %q", args[0])
			}
			batchSize = n
		}

		creds, err := config.LoadCredentials(cfg.SecretsPath)
		if err != nil {
			return err
		}

		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		fetcher := mediawiki.NewFetcher(mediawiki.Config{
			BaseURL:  cfg.BaseURL,
			Headless: !cfg.Headful,
			Logger:   logger,
		})
		opener, err := sysbrowser.NewOpener(cfg.BaseURL)
		if err != nil {
			return err
		}

		triage := commands.NewTriageCommand(store, fetcher, opener, logger, creds, batchSize)
		summary, runErr := triage.Execute(context.Background())

		if summary != nil {
			fmt.Println(summary)
			for _, name := range summary.Failed {
				fmt.Printf("failed to open: %s\n", name)
			}
		}
		return runErr
	},
}

func init() {
	rootCmd.AddCommand(triageCmd)
}
