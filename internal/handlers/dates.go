package handlers

import (
	"fmt"
	"time"

	"github.com/SscSPs/fuel_station_ledger/internal/apperrors"
)

// parseDate reads a YYYY-MM-DD calendar date as midnight in loc.
func parseDate(field, value string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(time.DateOnly, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid %s %q, use YYYY-MM-DD", apperrors.ErrValidation, field, value)
	}
	return d, nil
}

// parseDateRange parses a fromDate/toDate pair in loc.
func parseDateRange(from, to string, loc *time.Location) (time.Time, time.Time, error) {
	fromDate, err := parseDate("fromDate", from, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	toDate, err := parseDate("toDate", to, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if fromDate.After(toDate) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: fromDate must be before or equal to toDate", apperrors.ErrValidation)
	}
	return fromDate, toDate, nil
}

// today returns midnight of the current day in loc.
func today(now time.Time, loc *time.Location) time.Time {
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
