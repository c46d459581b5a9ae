package domain

import (
	"fmt"
	"time"
)

// DateOrder selects the absolute date layout of a last-modified label.
type DateOrder int

const (
	DateDayMonthYear DateOrder = iota
	DateMonthDayYear
	DateISO
)

// ParseDateOrder parses the config/CLI spelling of a date order.
func ParseDateOrder(s string) (DateOrder, bool) {
	switch s {
	case "dmy", "":
		return DateDayMonthYear, true
	case "mdy":
		return DateMonthDayYear, true
	case "iso":
		return DateISO, true
	}
	return DateDayMonthYear, false
}

// LabelConfig controls how a last-modified timestamp is rendered.
// It is passed explicitly at construction; there are no process-wide
// formatting globals.
type LabelConfig struct {
	Order    DateOrder
	Relative bool
	UTC      bool
}

// LastModifiedLabel renders a human-readable "last modified" label for
// the given revision time.
func LastModifiedLabel(revised, now time.Time, cfg LabelConfig) string {
	if cfg.Relative {
		return "last modified " + relativeAge(now.Sub(revised))
	}
	if cfg.UTC {
		revised = revised.UTC()
	} else {
		revised = revised.Local()
	}
	var layout string
	switch cfg.Order {
	case DateMonthDayYear:
		layout = "January 2, 2006"
	case DateISO:
		layout = "2006-01-02 15:04"
	default:
		layout = "2 January 2006"
	}
	return "last modified on " + revised.Format(layout)
}

// relativeAge buckets a duration into coarse human terms. Future
// timestamps (clock skew between wiki and client) read as "just now".
func relativeAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < 2*time.Minute:
		return "about a minute ago"
	case d < time.Hour:
		return fmt.Sprintf("about %d minutes ago", int(d.Minutes()))
	case d < 2*time.Hour:
		return "about an hour ago"
	case d < 24*time.Hour:
		return fmt.Sprintf("about %d hours ago", int(d.Hours()))
	case d < 48*time.Hour:
		return "about a day ago"
	case d < 30*24*time.Hour:
		return fmt.Sprintf("about %d days ago", int(d.Hours()/24))
	case d < 60*24*time.Hour:
		return "about a month ago"
	case d < 365*24*time.Hour:
		return fmt.Sprintf("about %d months ago", int(d.Hours()/(24*30)))
	default:
		years := int(d.Hours() / (24 * 365))
		if years <= 1 {
			return "about a year ago"
		}
		return fmt.Sprintf("about %d years ago", years)
	}
}
