package calculation

import (
	"time"

	"github.com/rgehrsitz/rescisao/pkg/dateutil"
)

const (
	baseNoticeDays    = 30
	noticeDaysPerYear = 3
	maxNoticeDays     = 90
)

// DefaultNoticeDays is 30 days plus 3 for each full year of service beyond the first,
// capped at 90.
func DefaultNoticeDays(daysOfService int) int {
	years := dateutil.CompletedYears(daysOfService)
	extra := years - 1
	if extra < 0 {
		extra = 0
	}
	days := baseNoticeDays + extra*noticeDaysPerYear
	if days > maxNoticeDays {
		return maxNoticeDays
	}
	return days
}

// DefaultVacationFraction is the number of months in the open acquisition period
func DefaultVacationFraction(hire, termination time.Time) int {
	return dateutil.MonthsBetween(hire, termination) % 12
}

// DefaultThirteenthFraction is the 1-indexed calendar month of the termination date.
// It deliberately ignores the hire date, unlike the vacation fraction.
func DefaultThirteenthFraction(termination time.Time) int {
	return int(termination.Month())
}

// projectionMonths is the number of extra avos an indemnified notice of noticeDays adds
func projectionMonths(noticeDays int) int {
	if noticeDays <= 0 {
		return 0
	}
	return (noticeDays + 29) / 30
}
