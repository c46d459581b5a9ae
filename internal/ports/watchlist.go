package ports

import (
	"context"

	"vedetta/internal/domain"
)

// Credentials for the wiki login form. Opaque to the core: only the
// fetcher interprets them.
type Credentials struct {
	Username string
	Password string
}

// Session is an authenticated wiki session. Close releases whatever
// resources back it (a headless browser, typically).
type Session interface {
	Close() error
}

// WatchlistFetcher retrieves the user's watchlist from the remote wiki.
type WatchlistFetcher interface {
	// Authenticate performs a single login attempt. A rejected login is
	// an application.AuthError; no retries are made.
	Authenticate(ctx context.Context, creds Credentials) (Session, error)

	// ListWatched returns the watchlist entries in the wiki's own
	// ordering. An empty watchlist is a valid, empty slice.
	ListWatched(ctx context.Context, session Session) ([]domain.WatchlistCandidate, error)
}
