// Package ledger merges heterogeneous transaction streams into a single date-ordered,
// balance-annotated ledger with before / in-range / till-date summaries.
//
// The merge is pure: it never mutates its inputs, reads no clock and performs no I/O.
// Fetching the collections and rendering the result belong to the callers.
package ledger

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/SscSPs/fuel_station_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ErrInvalidTransaction is returned when a record cannot be placed on the ledger.
// It wraps apperrors.ErrValidation.
var ErrInvalidTransaction = fmt.Errorf("%w: invalid ledger transaction", apperrors.ErrValidation)

// Classifier tells the engine how to read one kind of transaction record.
type Classifier[T any] interface {
	// Kind returns the sub-kind tag (e.g. "BILL", "SALESMAN_BILL").
	Kind(tx T) string
	// IsCredit reports whether the record increases the balance.
	IsCredit(tx T) bool
	Amount(tx T) (decimal.Decimal, error)
	Date(tx T) (time.Time, error)
}

// KindSpec declares a kind up front so it gets a summary row even with no records.
type KindSpec struct {
	Kind   string
	Credit bool
}

// Input is everything a merge needs.
type Input[T any] struct {
	OpeningBalance decimal.Decimal
	Window         Window
	// Collections are merged in order; ties on date keep this order.
	Collections    [][]T
	Kinds          []KindSpec
}

// Entry is one in-range record with its running balance.
type Entry[T any] struct {
	Source        T
	Kind          string
	Credit        bool
	Amount        decimal.Decimal
	Date          time.Time
	BalanceAmount decimal.Decimal
	DebtAmount    decimal.Decimal
}

// SignedAmount is +Amount for credits and -Amount for debits.
func (e Entry[T]) SignedAmount() decimal.Decimal {
	if e.Credit {
		return e.Amount
	}
	return e.Amount.Neg()
}

// KindTotal holds the totals of one kind. TillDate is always Before + InRange.
type KindTotal struct {
	Kind     string
	Credit   bool
	Before   decimal.Decimal
	InRange  decimal.Decimal
	TillDate decimal.Decimal
}

// Summary aggregates the merge.
type Summary struct {
	OpeningBalance decimal.Decimal
	BalanceBefore  decimal.Decimal
	ClosingBalance decimal.Decimal

	CreditBefore   decimal.Decimal
	DebitBefore    decimal.Decimal
	CreditInRange  decimal.Decimal
	DebitInRange   decimal.Decimal
	CreditTillDate decimal.Decimal
	DebitTillDate  decimal.Decimal

	Kinds []KindTotal

	BeforeCount  int
	InRangeCount int
	AfterCount   int
}

// Result is the output of Merge.
type Result[T any] struct {
	Entries []Entry[T]
	Summary Summary
}

type kindKey struct {
	kind   string
	credit bool
}

// Merge partitions every record around the window, sums the totals per kind, merges the
// in-range records into one stable date order and walks it once to attach running balances.
// Any record with an unreadable date or amount fails the whole merge.
func Merge[T any](c Classifier[T], in Input[T]) (*Result[T], error) {
	if in.Window.isZero() {
		return nil, fmt.Errorf("%w: ledger window is not set", apperrors.ErrValidation)
	}

	kinds := make([]KindTotal, 0, len(in.Kinds))
	index := make(map[kindKey]int, len(in.Kinds))
	totalFor := func(kind string, credit bool) *KindTotal {
		k := kindKey{kind: kind, credit: credit}
		if i, ok := index[k]; ok {
			return &kinds[i]
		}
		kinds = append(kinds, KindTotal{Kind: kind, Credit: credit})
		index[k] = len(kinds) - 1
		return &kinds[len(kinds)-1]
	}
	for _, ks := range in.Kinds {
		totalFor(ks.Kind, ks.Credit)
	}

	summary := Summary{OpeningBalance: in.OpeningBalance}
	entries := make([]Entry[T], 0)

	for ci, collection := range in.Collections {
		for i, tx := range collection {
			date, err := c.Date(tx)
			if err == nil && date.IsZero() {
				err = errors.New("missing date")
			}
			if err != nil {
				return nil, fmt.Errorf("%w: collection %d, item %d: date: %w", ErrInvalidTransaction, ci, i, err)
			}
			amount, err := c.Amount(tx)
			if err == nil && amount.IsNegative() {
				err = fmt.Errorf("negative amount %s", amount)
			}
			if err != nil {
				return nil, fmt.Errorf("%w: collection %d, item %d: amount: %w", ErrInvalidTransaction, ci, i, err)
			}

			kind, credit := c.Kind(tx), c.IsCredit(tx)
			switch in.Window.locate(date) {
			case bucketBefore:
				t := totalFor(kind, credit)
				t.Before = t.Before.Add(amount)
				if credit {
					summary.CreditBefore = summary.CreditBefore.Add(amount)
				} else {
					summary.DebitBefore = summary.DebitBefore.Add(amount)
				}
				summary.BeforeCount++
			case bucketInRange:
				t := totalFor(kind, credit)
				t.InRange = t.InRange.Add(amount)
				if credit {
					summary.CreditInRange = summary.CreditInRange.Add(amount)
				} else {
					summary.DebitInRange = summary.DebitInRange.Add(amount)
				}
				summary.InRangeCount++
				entries = append(entries, Entry[T]{
					Source: tx,
					Kind:   kind,
					Credit: credit,
					Amount: amount,
					Date:   date,
				})
			default:
				summary.AfterCount++
			}
		}
	}

	summary.BalanceBefore = in.OpeningBalance.Add(summary.CreditBefore).Sub(summary.DebitBefore)

	slices.SortStableFunc(entries, func(a, b Entry[T]) int {
		return a.Date.Compare(b.Date)
	})

	running := summary.BalanceBefore
	for i := range entries {
		running = running.Add(entries[i].SignedAmount())
		entries[i].BalanceAmount = running
		entries[i].DebtAmount = running
	}

	summary.ClosingBalance = running
	summary.CreditTillDate = summary.CreditBefore.Add(summary.CreditInRange)
	summary.DebitTillDate = summary.DebitBefore.Add(summary.DebitInRange)
	for i := range kinds {
		kinds[i].TillDate = kinds[i].Before.Add(kinds[i].InRange)
	}
	summary.Kinds = kinds

	return &Result[T]{Entries: entries, Summary: summary}, nil
}
