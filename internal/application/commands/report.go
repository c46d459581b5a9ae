package commands

import (
	"context"
	"fmt"
	"time"

	"vedetta/internal/application"
	"vedetta/internal/domain"
	"vedetta/internal/ports"
)

// ReportCommand runs the aggregated history view: per-page occurrence
// counts, first/last open times, and the per-day open rate.
type ReportCommand struct {
	history ports.HistoryStore

	Mode             domain.RateMode
	FoldDiscussion   bool
	DiscussionPrefix string
}

// NewReportCommand creates a new ReportCommand.
func NewReportCommand(history ports.HistoryStore, mode domain.RateMode, fold bool, prefix string) *ReportCommand {
	return &ReportCommand{
		history:          history,
		Mode:             mode,
		FoldDiscussion:   fold,
		DiscussionPrefix: prefix,
	}
}

// Validate checks the report parameters.
func (c *ReportCommand) Validate() error {
	if c.FoldDiscussion && c.DiscussionPrefix == "" {
		return fmt.Errorf("discussion folding requires a namespace prefix")
	}
	return nil
}

// Execute runs the aggregation query.
func (c *ReportCommand) Execute(ctx context.Context) ([]domain.PageActivity, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	activities, err := c.history.Aggregate(ports.AggregateOptions{
		Mode:             c.Mode,
		FoldDiscussion:   c.FoldDiscussion,
		DiscussionPrefix: c.DiscussionPrefix,
		Now:              time.Now(),
	})
	if err != nil {
		return nil, &application.StoreError{Op: "query", Err: err}
	}
	return activities, nil
}

// HistoryCommand lists the most recent open events, newest first.
type HistoryCommand struct {
	history ports.HistoryStore

	Limit int
}

// NewHistoryCommand creates a new HistoryCommand.
func NewHistoryCommand(history ports.HistoryStore, limit int) *HistoryCommand {
	return &HistoryCommand{history: history, Limit: limit}
}

// Validate checks the listing parameters.
func (c *HistoryCommand) Validate() error {
	if c.Limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", c.Limit)
	}
	return nil
}

// Execute returns the recent open events.
func (c *HistoryCommand) Execute(ctx context.Context) ([]domain.OpenEvent, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	events, err := c.history.RecentOpens(c.Limit)
	if err != nil {
		return nil, &application.StoreError{Op: "query", Err: err}
	}
	return events, nil
}
