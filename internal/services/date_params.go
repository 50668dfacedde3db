package services

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/rangepick/internal/selection"
)

var (
	ErrDateInvalid  = errors.New("invalid date")
	ErrMonthInvalid = errors.New("invalid month")
)

// ParseDayParam accepts a 2006-01-02 day.
func ParseDayParam(raw string) (selection.Date, error) {
	date, err := selection.ParseDate(raw)
	if err != nil {
		return selection.Date{}, ErrDateInvalid
	}
	return date, nil
}

// ParseMonthParam accepts 2006-01 or any day inside the month. An empty
// value resolves to the month of now in location.
func ParseMonthParam(raw string, now time.Time, location *time.Location) (selection.Date, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		today := selection.DateOf(now, location)
		return selection.NewDate(today.Year, today.Month, 1), nil
	}

	if parsed, err := time.ParseInLocation("2006-01", trimmed, time.UTC); err == nil {
		return selection.NewDate(parsed.Year(), parsed.Month(), 1), nil
	}
	date, err := selection.ParseDate(trimmed)
	if err != nil {
		return selection.Date{}, ErrMonthInvalid
	}
	return selection.NewDate(date.Year, date.Month, 1), nil
}
