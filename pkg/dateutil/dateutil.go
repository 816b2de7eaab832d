// Package dateutil holds the calendar arithmetic used to derive proration defaults.
package dateutil

import "time"

// CivilDate strips the clock and location from t, keeping only its calendar date in UTC.
// All comparisons in this package are made on civil dates so that a termination recorded
// at 23:00 in one zone is not counted as a different day elsewhere.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MonthsBetween returns the whole months elapsed from start to end. A remaining
// difference of 15 or more days in the day-of-month counts as one more month.
// The result is never negative.
func MonthsBetween(start, end time.Time) int {
	years := end.Year() - start.Year()
	months := int(end.Month()) - int(start.Month())
	days := end.Day() - start.Day()

	total := years*12 + months
	if days >= 15 {
		total++
	}
	if total < 0 {
		return 0
	}
	return total
}

// DaysBetween returns the inclusive number of calendar days from start to end, so the
// same date on both sides counts as one day. When end precedes start the result is
// zero or negative.
func DaysBetween(start, end time.Time) int {
	diff := CivilDate(end).Sub(CivilDate(start))
	return int(diff.Hours()/24) + 1
}

// CompletedYears returns how many full 365-day years fit in the given day count.
func CompletedYears(days int) int {
	if days <= 0 {
		return 0
	}
	return days / 365
}
