package domain

import (
	"sort"
	"time"
)

// RateMode selects how the per-day open rate is normalized.
type RateMode int

const (
	// RateSinceFirstOpen divides occurrences by the days elapsed from
	// the first open until now: a current-activity rate that decays for
	// pages the user has stopped opening.
	RateSinceFirstOpen RateMode = iota

	// RateFirstToLast divides occurrences by the days between the first
	// and the last open: a historical-activity rate that stays stable
	// once interest has ended.
	RateFirstToLast
)

// String returns the mode's config/CLI spelling.
func (m RateMode) String() string {
	switch m {
	case RateFirstToLast:
		return "first-to-last"
	default:
		return "since-first"
	}
}

// ParseRateMode parses the config/CLI spelling of a rate mode.
func ParseRateMode(s string) (RateMode, bool) {
	switch s {
	case "since-first", "":
		return RateSinceFirstOpen, true
	case "first-to-last":
		return RateFirstToLast, true
	}
	return RateSinceFirstOpen, false
}

// minElapsedDays floors the elapsed interval so that a page opened once
// (first == last) still gets a finite rate.
const minElapsedDays = 1.0 / 24

// PageActivity is one row of the aggregated history view.
type PageActivity struct {
	Name        PageName
	Occurrences int
	First       time.Time
	Last        time.Time
	TimesPerDay float64
}

// OpenRate computes occurrences per day for the given mode. now is only
// consulted in RateSinceFirstOpen mode.
func OpenRate(occurrences int, first, last, now time.Time, mode RateMode) float64 {
	var elapsed time.Duration
	switch mode {
	case RateFirstToLast:
		elapsed = last.Sub(first)
	default:
		elapsed = now.Sub(first)
	}
	days := elapsed.Hours() / 24
	if days < minElapsedDays {
		days = minElapsedDays
	}
	return float64(occurrences) / days
}

// FoldActivities merges discussion pages into their main pages: the
// occurrence counts are summed and the first/last bounds widened. The
// result is sorted by name and the rates recomputed for the given mode.
func FoldActivities(activities []PageActivity, prefix string, now time.Time, mode RateMode) []PageActivity {
	merged := make(map[PageName]PageActivity, len(activities))
	for _, a := range activities {
		key := FoldDiscussion(a.Name, prefix)
		cur, ok := merged[key]
		if !ok {
			a.Name = key
			merged[key] = a
			continue
		}
		cur.Occurrences += a.Occurrences
		if a.First.Before(cur.First) {
			cur.First = a.First
		}
		if a.Last.After(cur.Last) {
			cur.Last = a.Last
		}
		merged[key] = cur
	}

	folded := make([]PageActivity, 0, len(merged))
	for _, a := range merged {
		a.TimesPerDay = OpenRate(a.Occurrences, a.First, a.Last, now, mode)
		folded = append(folded, a)
	}
	sort.Slice(folded, func(i, j int) bool { return folded[i].Name < folded[j].Name })
	return folded
}
