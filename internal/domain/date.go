package domain

import "time"

const DateLayout = "2006-01-02"

// Day truncates t to its calendar date, expressed as midnight UTC.
// The calendar date is read in t's own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}

func FormatDay(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDay only accepts YYYY-MM-DD.
func ParseDay(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
