package ports

import (
	"context"

	"vedetta/internal/domain"
)

// PageOpener opens a watchlist entry in a visible browser tab.
//
// A failure scoped to one page is an application.PageOpenError: the
// caller skips the page and continues. A failure of the opener itself
// is an application.BrowserError and aborts the run.
type PageOpener interface {
	Open(ctx context.Context, candidate domain.WatchlistCandidate) error
}
