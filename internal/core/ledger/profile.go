package ledger

import (
	"fmt"
	"time"

	"github.com/SscSPs/fuel_station_ledger/internal/apperrors"
	"github.com/SscSPs/fuel_station_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Unit names what a ledger's amounts measure.
type Unit string

const (
	UnitCurrency Unit = "CURRENCY"
	UnitLitres   Unit = "LITRES"
)

type rule struct {
	kind      domain.TransactionKind
	direction domain.Direction
}

// Profile adapts domain transactions of one ledger subject to the merge engine.
// The order of its kinds is the collection order used when merging.
type Profile struct {
	Subject    domain.LedgerSubject
	Unit       Unit
	rules      []rule
	directions map[domain.TransactionKind]domain.Direction
}

var _ Classifier[domain.Transaction] = Profile{}

func newProfile(subject domain.LedgerSubject, unit Unit, rules ...rule) Profile {
	p := Profile{
		Subject:    subject,
		Unit:       unit,
		rules:      rules,
		directions: make(map[domain.TransactionKind]domain.Direction, len(rules)),
	}
	for _, r := range rules {
		p.directions[r.kind] = r.direction
	}
	return p
}

func credit(kind domain.TransactionKind) rule { return rule{kind: kind, direction: domain.Credit} }
func debit(kind domain.TransactionKind) rule { return rule{kind: kind, direction: domain.Debit} }

var profiles = map[domain.LedgerSubject]Profile{
	domain.Customer: newProfile(domain.Customer, UnitCurrency,
		credit(domain.KindBill),
		credit(domain.KindSalesmanBill),
		debit(domain.KindPayment),
		debit(domain.KindSalesmanPayment),
	),
	domain.Supplier: newProfile(domain.Supplier, UnitCurrency,
		credit(domain.KindPurchase),
		debit(domain.KindSupplierPayment),
	),
	domain.BankAccount: newProfile(domain.BankAccount, UnitCurrency,
		credit(domain.KindDeposit),
		debit(domain.KindWithdrawal),
	),
	domain.Tank: newProfile(domain.Tank, UnitLitres,
		credit(domain.KindTankAddition),
		debit(domain.KindTankRemoval),
	),
	domain.Employee: newProfile(domain.Employee, UnitCurrency,
		credit(domain.KindSalary),
		debit(domain.KindSalaryPayment),
		debit(domain.KindAdvance),
	),
}

// ProfileFor returns the profile of a ledger subject.
func ProfileFor(subject domain.LedgerSubject) (Profile, error) {
	p, ok := profiles[subject]
	if !ok {
		return Profile{}, fmt.Errorf("%w: unknown ledger subject %q", apperrors.ErrValidation, subject)
	}
	return p, nil
}

// Kinds returns the transaction kinds of this ledger in collection order.
func (p Profile) Kinds() []domain.TransactionKind {
	kinds := make([]domain.TransactionKind, len(p.rules))
	for i, r := range p.rules {
		kinds[i] = r.kind
	}
	return kinds
}

// Specs returns the kinds in the form the merge engine seeds its summary with.
func (p Profile) Specs() []KindSpec {
	specs := make([]KindSpec, len(p.rules))
	for i, r := range p.rules {
		specs[i] = KindSpec{Kind: string(r.kind), Credit: r.direction == domain.Credit}
	}
	return specs
}

// Allows reports whether kind belongs on this ledger.
func (p Profile) Allows(kind domain.TransactionKind) bool {
	_, ok := p.directions[kind]
	return ok
}

// DirectionOf returns whether kind credits or debits this ledger.
func (p Profile) DirectionOf(kind domain.TransactionKind) (domain.Direction, bool) {
	d, ok := p.directions[kind]
	return d, ok
}

// Kind returns the transaction kind, which names its summary row.
func (p Profile) Kind(tx domain.Transaction) string { return string(tx.Kind) }

// IsCredit reports whether the transaction raises this ledger's balance.
func (p Profile) IsCredit(tx domain.Transaction) bool {
	return p.directions[tx.Kind] == domain.Credit
}

// Amount returns the transaction amount. Kinds outside the profile are rejected.
func (p Profile) Amount(tx domain.Transaction) (decimal.Decimal, error) {
	if !p.Allows(tx.Kind) {
		return decimal.Zero, fmt.Errorf("transaction %s: kind %q does not belong on a %s ledger", tx.TransactionID, tx.Kind, p.Subject)
	}
	return tx.Amount, nil
}

// Date returns the transaction date.
func (p Profile) Date(tx domain.Transaction) (time.Time, error) {
	return tx.TransactionDate, nil
}

// MergeAccount merges the collections of an account (one per kind, in Kinds order) over window.
func (p Profile) MergeAccount(account domain.Account, window Window, collections [][]domain.Transaction) (*Result[domain.Transaction], error) {
	if account.Subject != p.Subject {
		return nil, fmt.Errorf("%w: account %s is a %s, not a %s", apperrors.ErrValidation, account.AccountID, account.Subject, p.Subject)
	}
	return Merge[domain.Transaction](p, Input[domain.Transaction]{
		OpeningBalance: account.OpeningBalance,
		Window:         window,
		Collections:    collections,
		Kinds:          p.Specs(),
	})
}

// ToAccountLedger converts a merge result into the report returned to callers.
func ToAccountLedger(account domain.Account, window Window, res *Result[domain.Transaction], generatedAt time.Time) *domain.AccountLedger {
	entries := make([]domain.LedgerEntry, len(res.Entries))
	for i, e := range res.Entries {
		entries[i] = domain.LedgerEntry{
			Transaction:   e.Source,
			Direction:     directionOf(e.Credit),
			BalanceAmount: e.BalanceAmount,
			DebtAmount:    e.DebtAmount,
		}
	}

	s := res.Summary
	kinds := make([]domain.KindTotal, len(s.Kinds))
	for i, k := range s.Kinds {
		kinds[i] = domain.KindTotal{
			Kind:      domain.TransactionKind(k.Kind),
			Direction: directionOf(k.Credit),
			Before:    k.Before,
			InRange:   k.InRange,
			TillDate:  k.TillDate,
		}
	}

	return &domain.AccountLedger{
		Account:  account,
		FromDate: window.FromDate(),
		ToDate:   window.ToDate(),
		Entries:  entries,
		Summary: domain.LedgerSummary{
			OpeningBalance: s.OpeningBalance,
			BalanceBefore:  s.BalanceBefore,
			ClosingBalance: s.ClosingBalance,
			CreditBefore:   s.CreditBefore,
			DebitBefore:    s.DebitBefore,
			CreditInRange:  s.CreditInRange,
			DebitInRange:   s.DebitInRange,
			CreditTillDate: s.CreditTillDate,
			DebitTillDate:  s.DebitTillDate,
			Kinds:          kinds,
		},
		GeneratedAt: generatedAt,
	}
}

func directionOf(credit bool) domain.Direction {
	if credit {
		return domain.Credit
	}
	return domain.Debit
}
