package application

import "vedetta/internal/domain"

// Re-export domain types for use by adapters
type (
	PageName           = domain.PageName
	OpenEvent          = domain.OpenEvent
	WatchlistCandidate = domain.WatchlistCandidate
	PageActivity       = domain.PageActivity
	RateMode           = domain.RateMode
)

const (
	RateSinceFirstOpen = domain.RateSinceFirstOpen
	RateFirstToLast    = domain.RateFirstToLast
)

// ParseRateMode parses the config/CLI spelling of a rate mode.
func ParseRateMode(s string) (RateMode, bool) {
	return domain.ParseRateMode(s)
}
