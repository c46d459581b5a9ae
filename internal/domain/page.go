package domain

import (
	"strings"
	"time"
)

// PageName is the exact title of a watched wiki page, including any
// namespace prefix (e.g. "Talk:Alan Turing"). Equality is exact: no
// case folding or encoding normalization is performed.
type PageName string

// OpenEvent records that a page was opened at a specific time.
// Events are immutable: the history store only ever appends them.
type OpenEvent struct {
	Name     PageName
	OpenedAt time.Time // always UTC
}

// WatchlistCandidate is one entry of the current watchlist fetch.
// It lives only for the duration of a single run and is never persisted.
type WatchlistCandidate struct {
	Name PageName

	// DiffURL is the href of the entry's diff link, relative to the
	// wiki base URL.
	DiffURL string

	// HasUnseenChange is true when the watchlist marks the entry as
	// changed since the user last looked at it.
	HasUnseenChange bool

	// Editor is the user who made the latest change. Informational only.
	Editor string

	// ByteDiff is the rendered size delta of the change (e.g. "+1,204").
	ByteDiff string
}

// FoldDiscussion maps a discussion page onto its main page by stripping
// the namespace prefix. The prefix must include the trailing colon
// (e.g. "Talk:"). Names outside the discussion namespace are returned
// unchanged.
func FoldDiscussion(name PageName, prefix string) PageName {
	if prefix == "" {
		return name
	}
	if s, ok := strings.CutPrefix(string(name), prefix); ok && s != "" {
		return PageName(s)
	}
	return name
}
