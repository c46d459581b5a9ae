package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"vedetta/internal/application/commands"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent opens, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		list := commands.NewHistoryCommand(store, historyLimit)
		events, err := list.Execute(context.Background())
		if err != nil {
			return err
		}

		for _, e := range events {
			fmt.Printf("%s  %s\n", e.OpenedAt.Format(time.RFC3339), e.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of events to show")
}
