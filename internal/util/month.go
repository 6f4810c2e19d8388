package util

import (
	"fmt"
	"strconv"
	"time"
)

// ValidMonth reports whether month is a calendar month number.
func ValidMonth(month int) bool {
	return month >= 1 && month <= 12
}

// ValidYear bounds the year to the range the ledger accepts.
func ValidYear(year int) bool {
	return year >= 2000 && year <= 2100
}

// CurrentYearMonth returns the current UTC year and month.
func CurrentYearMonth() (int, int) {
	now := time.Now().UTC()
	return now.Year(), int(now.Month())
}

// ParseYearMonth parses year/month path parameters and validates ranges.
func ParseYearMonth(yearStr, monthStr string) (int, int, error) {
	year, err := strconv.Atoi(yearStr)
	if err != nil || !ValidYear(year) {
		return 0, 0, fmt.Errorf("invalid year %q", yearStr)
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil || !ValidMonth(month) {
		return 0, 0, fmt.Errorf("invalid month %q", monthStr)
	}
	return year, month, nil
}

// MonthStart returns midnight UTC on the first day of the month.
func MonthStart(year, month int) time.Time {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}
