package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"vedetta/internal/adapters/mediawiki"
	"vedetta/internal/domain"
)

var (
	lastmodRelative bool
	lastmodFormat   string
	lastmodUTC      bool
)

var lastmodCmd = &cobra.Command{
	Use:   "lastmod <page>",
	Short: "Show when a page was last modified",
	Long: `Look up the latest revision of a page and print a human-readable
"last modified" label, either relative ("about 3 days ago") or
absolute in the configured date format.

Examples:
  vedetta-cli lastmod "Alan Turing"
  vedetta-cli lastmod --relative "Talk:Alan Turing"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format := lastmodFormat
		if format == "" {
			format = cfg.Label.Format
		}
		order, ok := domain.ParseDateOrder(format)
		if !ok {
			return fmt.Errorf("unknown date format %q (expected dmy, mdy, or iso)", format)
		}

		labels := mediawiki.NewLabelService(cfg.BaseURL, domain.LabelConfig{
			Order:    order,
			Relative: lastmodRelative || cfg.Label.Relative,
			UTC:      lastmodUTC || cfg.Label.UTC,
		})

		label, err := labels.Label(context.Background(), domain.PageName(args[0]))
		if err != nil {
			return err
		}
		fmt.Printf("%s: %s\n", args[0], label)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lastmodCmd)
	lastmodCmd.Flags().BoolVar(&lastmodRelative, "relative", false, "render a relative label (\"about 3 days ago\")")
	lastmodCmd.Flags().StringVar(&lastmodFormat, "format", "", "absolute date format: dmy, mdy, or iso")
	lastmodCmd.Flags().BoolVar(&lastmodUTC, "utc", false, "render absolute dates in UTC instead of local time")
}
