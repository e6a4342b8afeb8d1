package timeutil

import (
	"fmt"
	"time"
)

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// SeasonYear returns the football season year for a given instant.
// Seasons roll over on August 1: a game in January 2026 belongs to the
// 2025 season.
func SeasonYear(now time.Time) int {
	year := now.UTC().Year()
	if now.UTC().Month() < time.August {
		year--
	}
	return year
}

// SeasonWindow returns the upstream date-range parameter covering a full
// season schedule (Aug 1 through Mar 1 of the following year), in the
// YYYYMMDD-YYYYMMDD form the scoreboard API expects.
func SeasonWindow(now time.Time) string {
	year := SeasonYear(now)
	return fmt.Sprintf("%d0801-%d0301", year, year+1)
}
