// Package dateutil works with ISO date-only strings (YYYY-MM-DD) as used by
// all-day calendar events.
//
// All-day spans follow the Google convention internally: the start date is
// inclusive and the end date is exclusive (the first day NOT covered). The
// UI-facing request format carries an inclusive end date; the helpers here
// convert between the two.
package dateutil

import (
	"regexp"
	"time"
)

// Layout is the ISO date-only layout.
const Layout = "2006-01-02"

var dateOnlyRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsDateOnly reports whether s is a YYYY-MM-DD string.
func IsDateOnly(s string) bool {
	if !dateOnlyRe.MatchString(s) {
		return false
	}
	_, err := time.Parse(Layout, s)
	return err == nil
}

// AddDays shifts an ISO date by n days (n may be negative). The input must
// already be validated with IsDateOnly; an unparsable input is returned as-is.
func AddDays(isoDate string, n int) string {
	t, err := time.Parse(Layout, isoDate)
	if err != nil {
		return isoDate
	}
	return t.AddDate(0, 0, n).Format(Layout)
}

// InclusiveToExclusive converts a UI inclusive end date to the internal
// exclusive convention (day after the last covered day).
func InclusiveToExclusive(inclusiveEnd string) string {
	return AddDays(inclusiveEnd, 1)
}

// ExclusiveToInclusive converts an internal exclusive end date to the UI
// inclusive convention (last covered day).
func ExclusiveToInclusive(exclusiveEnd string) string {
	return AddDays(exclusiveEnd, -1)
}

// StartOfYearUTC returns Jan 1 of the year at midnight UTC.
func StartOfYearUTC(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// EndOfYearUTC returns Jan 1 of the following year at midnight UTC, i.e. the
// exclusive upper bound of the year window.
func EndOfYearUTC(year int) time.Time {
	return StartOfYearUTC(year + 1)
}
