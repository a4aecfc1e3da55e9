package hb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFilterJournals(t *testing.T) {
	// A Wednesday.
	now := time.Date(2026, time.August, 26, 15, 4, 5, 0, time.UTC)
	journals := []Journal{
		{Date: "2026-08-26"},
		{Date: "2026-08-23"}, // Sunday of the current week
		{Date: "2026-08-16"}, // 10 days before now
		{Date: "2026-07-31"},
		{Date: "2025-12-31"},
		{Date: "not-a-date"},
	}

	dates := func(filter JournalFilter) []string {
		var out []string
		for _, journal := range FilterJournals(journals, filter, now) {
			out = append(out, journal.Date)
		}
		return out
	}

	assert.Equal(t, []string{"2026-08-26", "2026-08-23"}, dates(JournalFilter{Type: JournalThisWeek}))
	assert.Equal(t, []string{"2026-08-26", "2026-08-23", "2026-08-16"}, dates(JournalFilter{Type: JournalThisMonth}))
	assert.Equal(t, []string{"2026-07-31"}, dates(JournalFilter{Type: JournalLastMonth}))
	assert.Equal(t, []string{"2026-08-26", "2026-08-23", "2026-08-16", "2026-07-31"}, dates(JournalFilter{Type: JournalThisYear}))
	assert.Equal(t, []string{"2026-08-26", "2026-08-23"}, dates(JournalFilter{Type: JournalLastNDays, Days: 7}))
	assert.Empty(t, dates(JournalFilter{Type: "unknown"}))
}

func TestFilterJournalsCustomWindow(t *testing.T) {
	now := time.Date(2026, time.August, 26, 0, 0, 0, 0, time.UTC)
	journals := []Journal{
		{Date: "2026-08-01"},
		{Date: "2026-08-15"},
		{Date: "2026-08-25"},
	}

	start := time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC)

	got := FilterJournals(journals, JournalFilter{Type: JournalCustom, StartDate: &start, EndDate: &end}, now)
	assert.Len(t, got, 1)
	assert.Equal(t, "2026-08-15", got[0].Date)

	// Nil bounds are unbounded.
	got = FilterJournals(journals, JournalFilter{Type: JournalCustom, StartDate: &start}, now)
	assert.Len(t, got, 2)
	got = FilterJournals(journals, JournalFilter{Type: JournalCustom}, now)
	assert.Len(t, got, 3)
}

func TestFilterJournalsInclusiveBounds(t *testing.T) {
	now := time.Date(2026, time.August, 26, 23, 59, 59, 0, time.UTC)
	journals := []Journal{{Date: "2026-08-26"}, {Date: "2026-08-19"}, {Date: "2026-08-18"}}

	got := FilterJournals(journals, JournalFilter{Type: JournalLastNDays, Days: 7}, now)
	assert.Equal(t, []Journal{{Date: "2026-08-26"}, {Date: "2026-08-19"}}, got)
}
