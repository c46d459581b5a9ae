package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"vedetta/internal/application"
	"vedetta/internal/domain"
	"vedetta/internal/ports"
)

// RunSummary is the user-visible outcome of a triage run. A run never
// ends as a silent no-op: even zero opens come back with the counts
// explaining why.
type RunSummary struct {
	Fetched         int               // watchlist entries returned by the wiki
	Opened          []domain.PageName // pages opened and recorded, in order
	Failed          []domain.PageName // pages whose open failed and was skipped
	SkippedSeen     int               // unseen entries already in the history
	SkippedNoChange int               // entries without an unseen change
	LeftUnopened    int               // eligible entries beyond the batch bound
}

func (s *RunSummary) String() string {
	return fmt.Sprintf("fetched %d, opened %d, failed %d, already seen %d, no change %d, left for next run %d",
		s.Fetched, len(s.Opened), len(s.Failed), s.SkippedSeen, s.SkippedNoChange, s.LeftUnopened)
}

// TriageCommand drives one end-to-end run: authenticate, fetch the
// watchlist, filter against the history, open a bounded batch, and
// record each successful open before moving to the next.
type TriageCommand struct {
	history ports.HistoryStore
	fetcher ports.WatchlistFetcher
	opener  ports.PageOpener
	logger  *slog.Logger

	Credentials ports.Credentials
	BatchSize   int

	// now is swappable in tests
	now func() time.Time
}

// NewTriageCommand creates a new TriageCommand.
func NewTriageCommand(history ports.HistoryStore, fetcher ports.WatchlistFetcher, opener ports.PageOpener, logger *slog.Logger, creds ports.Credentials, batchSize int) *TriageCommand {
	if logger == nil {
		logger = slog.Default()
	}
	return &TriageCommand{
		history:     history,
		fetcher:     fetcher,
		opener:      opener,
		logger:      logger,
		Credentials: creds,
		BatchSize:   batchSize,
		now:         time.Now,
	}
}

// Validate checks the run parameters before anything touches the wiki.
func (c *TriageCommand) Validate() error {
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", c.BatchSize)
	}
	if c.Credentials.Username == "" {
		return fmt.Errorf("username is required")
	}
	return nil
}

// Execute runs the traversal. On a fatal mid-run error the returned
// summary still describes the prefix of work that completed; the
// recorded opens stand.
func (c *TriageCommand) Execute(ctx context.Context) (*RunSummary, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	summary := &RunSummary{}

	session, err := c.fetcher.Authenticate(ctx, c.Credentials)
	if err != nil {
		if errors.Is(err, application.ErrAuthFailed) {
			return summary, err
		}
		return summary, &application.AuthError{Username: c.Credentials.Username, Err: err}
	}
	defer session.Close()

	candidates, err := c.fetcher.ListWatched(ctx, session)
	if err != nil {
		if errors.Is(err, application.ErrFetchFailed) {
			return summary, err
		}
		return summary, &application.FetchError{Err: err}
	}
	summary.Fetched = len(candidates)

	// Filter to unseen entries not already in the history, preserving
	// the wiki's own ordering.
	var eligible []domain.WatchlistCandidate
	for _, cand := range candidates {
		if !cand.HasUnseenChange {
			summary.SkippedNoChange++
			continue
		}
		seen, err := c.history.HasBeenOpened(cand.Name)
		if err != nil {
			return summary, &application.StoreError{Op: "query", Page: string(cand.Name), Err: err}
		}
		if seen {
			summary.SkippedSeen++
			c.logger.Info("triage: skipped, already opened before", "page", cand.Name)
			continue
		}
		eligible = append(eligible, cand)
	}

	batch := eligible
	if len(batch) > c.BatchSize {
		batch = batch[:c.BatchSize]
	}
	summary.LeftUnopened = len(eligible) - len(batch)

	for _, cand := range batch {
		if err := c.opener.Open(ctx, cand); err != nil {
			var pageErr *application.PageOpenError
			if errors.As(err, &pageErr) {
				summary.Failed = append(summary.Failed, cand.Name)
				c.logger.Warn("triage: open failed, skipping page", "page", cand.Name, "error", pageErr.Err)
				continue
			}
			// The opener itself is gone; keep the recorded prefix.
			c.logger.Error("triage: browser unusable, aborting run", "page", cand.Name, "error", err)
			if errors.Is(err, application.ErrBrowserGone) {
				return summary, err
			}
			return summary, &application.BrowserError{Err: err}
		}

		// Record before touching the next candidate so a crash leaves a
		// correct prefix: never an opened-but-unrecorded page.
		openedAt := c.now().UTC()
		if err := c.history.RecordOpen(cand.Name, openedAt); err != nil {
			return summary, &application.StoreError{Op: "record", Page: string(cand.Name), Err: err}
		}
		summary.Opened = append(summary.Opened, cand.Name)
		c.logger.Info("triage: opened", "page", cand.Name, "url", cand.DiffURL)
	}

	c.logger.Info("triage: run complete",
		"fetched", summary.Fetched,
		"opened", len(summary.Opened),
		"failed", len(summary.Failed),
		"already_seen", summary.SkippedSeen,
		"left_unopened", summary.LeftUnopened)

	return summary, nil
}
