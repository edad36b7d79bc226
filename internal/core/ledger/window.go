package ledger

import (
	"fmt"
	"time"

	"github.com/SscSPs/fuel_station_ledger/internal/apperrors"
)

// Window is an inclusive reporting window. Start is 00:00:00.000 of the first day and
// End is 23:59:59.999 of the last day, both in the location of the dates it was built from.
type Window struct {
	Start time.Time
	End   time.Time
}

type bucket int

const (
	bucketBefore bucket = iota
	bucketInRange
	bucketAfter
)

// NewWindow normalizes a date-only range into a Window.
func NewWindow(from, to time.Time) (Window, error) {
	start := startOfDay(from)
	last := startOfDay(to)
	if start.After(last) {
		return Window{}, fmt.Errorf("%w: fromDate %s is after toDate %s",
			apperrors.ErrValidation, from.Format(time.DateOnly), to.Format(time.DateOnly))
	}
	return Window{
		Start: start,
		End:   last.AddDate(0, 0, 1).Add(-time.Millisecond),
	}, nil
}

// FromDate returns the first calendar day of the window.
func (w Window) FromDate() time.Time { return w.Start }

// ToDate returns the last calendar day of the window at midnight.
func (w Window) ToDate() time.Time { return startOfDay(w.End) }

// Contains reports whether t falls inside the window, boundaries included.
func (w Window) Contains(t time.Time) bool {
	return w.locate(t) == bucketInRange
}

// Key renders the window as a stable string, used in cache keys.
// The same calendar days in two zones cover different instants, so the bounds are part of the key.
func (w Window) Key() string {
	return fmt.Sprintf("%s..%s@%d-%d",
		w.Start.Format(time.DateOnly), w.ToDate().Format(time.DateOnly),
		w.Start.UnixMilli(), w.End.UnixMilli())
}

func (w Window) isZero() bool {
	return w.Start.IsZero() || w.End.IsZero()
}

func (w Window) locate(t time.Time) bucket {
	switch {
	case t.Before(w.Start):
		return bucketBefore
	case t.After(w.End):
		return bucketAfter
	default:
		return bucketInRange
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
