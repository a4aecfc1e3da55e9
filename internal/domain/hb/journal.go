package hb

import "time"

// JournalFilter selects journals by a date window. Type is one of the
// presets below; StartDate/EndDate apply to "custom" only and a nil
// bound means unbounded on that side.
type JournalFilter struct {
	Type      string     `json:"type" toml:"type"`
	StartDate *time.Time `json:"startDate,omitempty" toml:"start_date"`
	EndDate   *time.Time `json:"endDate,omitempty" toml:"end_date"`
	Days      int        `json:"days,omitempty" toml:"days"`
}

const (
	JournalThisWeek  = "this-week"
	JournalThisMonth = "this-month"
	JournalLastMonth = "last-month"
	JournalThisYear  = "this-year"
	JournalCustom    = "custom"
	JournalLastNDays = "last-n-days"
)

// FilterJournals keeps journals whose date falls inside the window the
// filter describes, inclusive on both ends. The window is computed
// relative to now; weeks start on Sunday.
func FilterJournals(journals []Journal, filter JournalFilter, now time.Time) []Journal {
	today := truncateToDay(now)
	var start, end *time.Time

	switch filter.Type {
	case JournalThisWeek:
		weekStart := today.AddDate(0, 0, -int(today.Weekday()))
		weekEnd := weekStart.AddDate(0, 0, 6)
		start, end = &weekStart, &weekEnd
	case JournalThisMonth:
		monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		monthEnd := monthStart.AddDate(0, 1, -1)
		start, end = &monthStart, &monthEnd
	case JournalLastMonth:
		monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
		monthEnd := monthStart.AddDate(0, 1, -1)
		start, end = &monthStart, &monthEnd
	case JournalThisYear:
		yearStart := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		yearEnd := time.Date(today.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
		start, end = &yearStart, &yearEnd
	case JournalCustom:
		if filter.StartDate != nil {
			s := truncateToDay(*filter.StartDate)
			start = &s
		}
		if filter.EndDate != nil {
			e := truncateToDay(*filter.EndDate)
			end = &e
		}
	case JournalLastNDays:
		windowStart := today.AddDate(0, 0, -filter.Days)
		start, end = &windowStart, &today
	default:
		return nil
	}

	var out []Journal
	for _, journal := range journals {
		date, err := time.Parse("2006-01-02", journal.Date)
		if err != nil {
			continue
		}
		if start != nil && date.Before(*start) {
			continue
		}
		if end != nil && date.After(*end) {
			continue
		}
		out = append(out, journal)
	}
	return out
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
