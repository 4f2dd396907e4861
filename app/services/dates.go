package services

import "time"

// DateString formats a moment as the caller-local YYYY-MM-DD key attendance
// records are bucketed by.
func DateString(t time.Time) string {
	return t.Format("2006-01-02")
}

// MonthKey formats a moment as the "January 2006" key the monthly views
// group by. Derived from the event timestamp, not its date string.
func MonthKey(t time.Time) string {
	return t.Format("January 2006")
}

// parseClock parses an HH:MM wall-clock value into minutes since midnight.
func parseClock(hhmm string) (int, bool) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}
