package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected int
	}{
		{"same day", date(2024, 3, 10), date(2024, 3, 10), 0},
		{"day difference below 15 does not round", date(2023, 1, 10), date(2024, 7, 20), 18},
		{"day difference of exactly 15 rounds up", date(2023, 1, 10), date(2024, 7, 25), 19},
		{"negative day difference", date(2024, 1, 31), date(2024, 3, 1), 2},
		{"end before start floors at zero", date(2024, 5, 1), date(2024, 2, 1), 0},
		{"across several years", date(2015, 6, 1), date(2024, 6, 30), 109},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MonthsBetween(tt.start, tt.end))
		})
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected int
	}{
		{"same day counts once", date(2024, 7, 20), date(2024, 7, 20), 1},
		{"one full year", date(2023, 1, 1), date(2023, 12, 31), 365},
		{"leap year", date(2024, 1, 1), date(2024, 12, 31), 366},
		{"end before start", date(2024, 7, 20), date(2024, 7, 18), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DaysBetween(tt.start, tt.end))
		})
	}
}

func TestDaysBetween_IgnoresClockAndZone(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)
	start := time.Date(2024, 1, 1, 23, 30, 0, 0, saoPaulo)
	end := time.Date(2024, 1, 2, 0, 15, 0, 0, time.UTC)

	assert.Equal(t, 2, DaysBetween(start, end))
}

func TestCompletedYears(t *testing.T) {
	assert.Equal(t, 0, CompletedYears(0))
	assert.Equal(t, 0, CompletedYears(364))
	assert.Equal(t, 1, CompletedYears(365))
	assert.Equal(t, 2, CompletedYears(800))
	assert.Equal(t, 0, CompletedYears(-10))
}
