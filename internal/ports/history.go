package ports

import (
	"time"

	"vedetta/internal/domain"
)

// AggregateOptions controls the analytical history view.
type AggregateOptions struct {
	Mode domain.RateMode

	// FoldDiscussion merges discussion pages into their main pages.
	FoldDiscussion bool

	// DiscussionPrefix is the namespace prefix, colon included, that
	// identifies a discussion page (e.g. "Talk:").
	DiscussionPrefix string

	// Now anchors the since-first rate. Zero means time.Now().
	Now time.Time
}

// HistoryStore is the durable, append-only record of page opens.
// Events are never updated or deleted; retention is an external
// administrative concern.
type HistoryStore interface {
	// Lifecycle
	Open(path string) error
	Close() error

	// HasBeenOpened reports whether at least one open event exists for
	// the page.
	HasBeenOpened(name domain.PageName) (bool, error)

	// RecordOpen appends one open event. On error the event is not
	// durable and the caller must treat the run as failed.
	RecordOpen(name domain.PageName, at time.Time) error

	// Aggregate returns per-page occurrence counts, first/last open
	// times, and the per-day open rate for the requested mode.
	Aggregate(opts AggregateOptions) ([]domain.PageActivity, error)

	// RecentOpens returns the newest events first, at most limit.
	RecentOpens(limit int) ([]domain.OpenEvent, error)
}
