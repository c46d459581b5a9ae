package domain

import (
	"testing"
	"time"
)

func TestLastModifiedLabel_Relative(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	cfg := LabelConfig{Relative: true}

	tests := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{name: "seconds", ago: 30 * time.Second, want: "last modified just now"},
		{name: "one minute", ago: 90 * time.Second, want: "last modified about a minute ago"},
		{name: "minutes", ago: 12 * time.Minute, want: "last modified about 12 minutes ago"},
		{name: "one hour", ago: 90 * time.Minute, want: "last modified about an hour ago"},
		{name: "hours", ago: 7 * time.Hour, want: "last modified about 7 hours ago"},
		{name: "one day", ago: 30 * time.Hour, want: "last modified about a day ago"},
		{name: "days", ago: 3 * 24 * time.Hour, want: "last modified about 3 days ago"},
		{name: "one month", ago: 40 * 24 * time.Hour, want: "last modified about a month ago"},
		{name: "months", ago: 100 * 24 * time.Hour, want: "last modified about 3 months ago"},
		{name: "years", ago: 3 * 365 * 24 * time.Hour, want: "last modified about 3 years ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LastModifiedLabel(now.Add(-tt.ago), now, cfg)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLastModifiedLabel_Absolute(t *testing.T) {
	revised := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		cfg  LabelConfig
		want string
	}{
		{
			name: "day month year",
			cfg:  LabelConfig{Order: DateDayMonthYear, UTC: true},
			want: "last modified on 2 June 2025",
		},
		{
			name: "month day year",
			cfg:  LabelConfig{Order: DateMonthDayYear, UTC: true},
			want: "last modified on June 2, 2025",
		},
		{
			name: "iso",
			cfg:  LabelConfig{Order: DateISO, UTC: true},
			want: "last modified on 2025-06-02 09:30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LastModifiedLabel(revised, now, tt.cfg)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseDateOrder(t *testing.T) {
	tests := []struct {
		in     string
		want   DateOrder
		wantOK bool
	}{
		{"dmy", DateDayMonthYear, true},
		{"mdy", DateMonthDayYear, true},
		{"iso", DateISO, true},
		{"", DateDayMonthYear, true},
		{"ymd", DateDayMonthYear, false},
	}

	for _, tt := range tests {
		got, ok := ParseDateOrder(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseDateOrder(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
