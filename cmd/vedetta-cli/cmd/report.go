package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"vedetta/internal/application"
	"vedetta/internal/application/commands"
)

var (
	reportMode string
	reportFold bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Aggregate the open history per page",
	Long: `Show how often each page has been opened: occurrence count, first and
last open, and a normalized opens-per-day rate.

Two rate modes exist. "since-first" divides by the days from the first
open until now and measures current interest; "first-to-last" divides
by the days between the first and last open and measures how intense
the interest was while it lasted.

Examples:
  vedetta-cli report
  vedetta-cli report --mode first-to-last --fold`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, ok := application.ParseRateMode(reportMode)
		if !ok {
			return fmt.Errorf("unknown rate mode %q (expected since-first or first-to-last)", reportMode)
		}

		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		report := commands.NewReportCommand(store, mode, reportFold, cfg.DiscussionPrefix)
		activities, err := report.Execute(context.Background())
		if err != nil {
			return err
		}

		for _, a := range activities {
			fmt.Printf("%-50s opens=%-4d first=%s last=%s per-day=%.3f\n",
				a.Name, a.Occurrences,
				a.First.Format(time.DateOnly), a.Last.Format(time.DateOnly),
				a.TimesPerDay)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVar(&reportMode, "mode", "since-first", "rate mode: since-first or first-to-last")
	reportCmd.Flags().BoolVar(&reportFold, "fold", false, "fold discussion pages into their main pages")
}
