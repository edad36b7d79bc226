// Package export renders ledger reports as spreadsheets.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/SscSPs/fuel_station_ledger/internal/core/domain"
	"github.com/SscSPs/fuel_station_ledger/internal/core/ledger"
	"github.com/SscSPs/fuel_station_ledger/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ContentTypeXLSX is the media type of the workbooks produced here.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	ledgerSheet   = "Ledger"
	summarySheet  = "Summary"
	balancesSheet = "Balances"
	dateLayout    = "2006-01-02"
	timeLayout    = "2006-01-02 15:04"
)

var ledgerColumns = []interface{}{"Date", "Kind", "Direction", "Reference", "Method", "Description", "Credit", "Debit", "Balance"}

// LedgerFilename returns the attachment name for an account ledger download.
func LedgerFilename(l *domain.AccountLedger) string {
	name := strings.ToLower(strings.Join(strings.Fields(l.Account.Name), "_"))
	return fmt.Sprintf("ledger_%s_%s_%s.xlsx", name, l.FromDate.Format(dateLayout), l.ToDate.Format(dateLayout))
}

// WriteLedger writes the ledger as a workbook with an entries sheet and a per-kind summary sheet.
func WriteLedger(w io.Writer, l *domain.AccountLedger) error {
	if l == nil {
		return fmt.Errorf("ledger is required")
	}
	unit := ledger.UnitCurrency
	if p, err := ledger.ProfileFor(l.Account.Subject); err == nil {
		unit = p.Unit
	}

	f := excelize.NewFile()
	defer f.Close()

	styles, err := newStyles(f, unit)
	if err != nil {
		return err
	}
	if err := f.SetSheetName("Sheet1", ledgerSheet); err != nil {
		return fmt.Errorf("failed to name ledger sheet: %w", err)
	}

	header := [][]interface{}{
		{"Account", l.Account.Name},
		{"Subject", string(l.Account.Subject)},
		{"Unit", string(unit)},
		{"Period", fmt.Sprintf("%s to %s", l.FromDate.Format(dateLayout), l.ToDate.Format(dateLayout))},
		{"Opening balance", amount(l.Summary.OpeningBalance, unit)},
		{"Balance before period", amount(l.Summary.BalanceBefore, unit)},
	}
	row := 1
	for _, values := range header {
		if err := setRow(f, ledgerSheet, row, values); err != nil {
			return err
		}
		if err := f.SetCellStyle(ledgerSheet, cell(1, row), cell(1, row), styles.bold); err != nil {
			return err
		}
		row++
	}
	if err := f.SetCellStyle(ledgerSheet, cell(2, 5), cell(2, 6), styles.amount); err != nil {
		return err
	}

	row++
	tableStart := row
	if err := setRow(f, ledgerSheet, row, ledgerColumns); err != nil {
		return err
	}
	if err := f.SetCellStyle(ledgerSheet, cell(1, row), cell(len(ledgerColumns), row), styles.bold); err != nil {
		return err
	}
	row++

	// Entry times are shown in the zone the report period was requested in.
	loc := l.FromDate.Location()
	for _, e := range l.Entries {
		var credit, debit interface{}
		if e.Direction == domain.Credit {
			credit = amount(e.Amount, unit)
		} else {
			debit = amount(e.Amount, unit)
		}
		values := []interface{}{
			e.TransactionDate.In(loc).Format(timeLayout),
			string(e.Kind),
			string(e.Direction),
			e.Reference,
			e.Method,
			e.Description,
			credit,
			debit,
			amount(e.BalanceAmount, unit),
		}
		if err := setRow(f, ledgerSheet, row, values); err != nil {
			return err
		}
		row++
	}

	totals := []interface{}{"Total", "", "", "", "", "",
		amount(l.Summary.CreditInRange, unit), amount(l.Summary.DebitInRange, unit), amount(l.Summary.ClosingBalance, unit)}
	if err := setRow(f, ledgerSheet, row, totals); err != nil {
		return err
	}
	if err := f.SetCellStyle(ledgerSheet, cell(1, row), cell(1, row), styles.bold); err != nil {
		return err
	}
	if err := f.SetCellStyle(ledgerSheet, cell(7, tableStart+1), cell(9, row), styles.amount); err != nil {
		return err
	}
	row += 2
	if err := setRow(f, ledgerSheet, row, []interface{}{"Closing balance", amount(l.Summary.ClosingBalance, unit)}); err != nil {
		return err
	}
	if err := f.SetCellStyle(ledgerSheet, cell(1, row), cell(1, row), styles.bold); err != nil {
		return err
	}
	if err := f.SetCellStyle(ledgerSheet, cell(2, row), cell(2, row), styles.amount); err != nil {
		return err
	}
	if err := f.SetColWidth(ledgerSheet, "A", "F", 18); err != nil {
		return err
	}

	if err := writeSummary(f, l.Summary, unit, styles); err != nil {
		return err
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write ledger workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, s domain.LedgerSummary, unit ledger.Unit, styles sheetStyles) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := setRow(f, summarySheet, 1, []interface{}{"Kind", "Direction", "Before", "In period", "Till date"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, "A1", "E1", styles.bold); err != nil {
		return err
	}
	row := 2
	for _, k := range s.Kinds {
		values := []interface{}{string(k.Kind), string(k.Direction),
			amount(k.Before, unit), amount(k.InRange, unit), amount(k.TillDate, unit)}
		if err := setRow(f, summarySheet, row, values); err != nil {
			return err
		}
		row++
	}
	rows := [][]interface{}{
		{"Credit", "", amount(s.CreditBefore, unit), amount(s.CreditInRange, unit), amount(s.CreditTillDate, unit)},
		{"Debit", "", amount(s.DebitBefore, unit), amount(s.DebitInRange, unit), amount(s.DebitTillDate, unit)},
	}
	for _, values := range rows {
		if err := setRow(f, summarySheet, row, values); err != nil {
			return err
		}
		if err := f.SetCellStyle(summarySheet, cell(1, row), cell(1, row), styles.bold); err != nil {
			return err
		}
		row++
	}
	return f.SetCellStyle(summarySheet, "C2", cell(5, row-1), styles.amount)
}

// WriteBalances writes the outstanding balances report as a single-sheet workbook.
func WriteBalances(w io.Writer, subject domain.LedgerSubject, asOf time.Time, balances []domain.AccountBalance) error {
	unit := ledger.UnitCurrency
	if p, err := ledger.ProfileFor(subject); err == nil {
		unit = p.Unit
	}

	f := excelize.NewFile()
	defer f.Close()

	styles, err := newStyles(f, unit)
	if err != nil {
		return err
	}
	if err := f.SetSheetName("Sheet1", balancesSheet); err != nil {
		return fmt.Errorf("failed to name balances sheet: %w", err)
	}
	if err := setRow(f, balancesSheet, 1, []interface{}{"Subject", string(subject), "As of", asOf.Format(dateLayout)}); err != nil {
		return err
	}
	if err := setRow(f, balancesSheet, 3, []interface{}{"Account", "Balance", "Total credit", "Total debit"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(balancesSheet, "A3", "D3", styles.bold); err != nil {
		return err
	}

	row := 4
	total, credit, debit := decimal.Zero, decimal.Zero, decimal.Zero
	for _, b := range balances {
		values := []interface{}{b.Name, amount(b.Balance, unit), amount(b.TotalCredit, unit), amount(b.TotalDebit, unit)}
		if err := setRow(f, balancesSheet, row, values); err != nil {
			return err
		}
		total = total.Add(b.Balance)
		credit = credit.Add(b.TotalCredit)
		debit = debit.Add(b.TotalDebit)
		row++
	}
	if err := setRow(f, balancesSheet, row, []interface{}{"Total", amount(total, unit), amount(credit, unit), amount(debit, unit)}); err != nil {
		return err
	}
	if err := f.SetCellStyle(balancesSheet, cell(1, row), cell(1, row), styles.bold); err != nil {
		return err
	}
	if err := setRow(f, balancesSheet, 2, []interface{}{"Net balance", utils.FormatLedgerAmount(total, unit), "Unit", string(unit)}); err != nil {
		return err
	}
	if err := f.SetCellStyle(balancesSheet, "A1", "A2", styles.bold); err != nil {
		return err
	}
	if err := f.SetCellStyle(balancesSheet, "C1", "C2", styles.bold); err != nil {
		return err
	}
	if err := f.SetCellStyle(balancesSheet, "B4", cell(4, row), styles.amount); err != nil {
		return err
	}
	if err := f.SetColWidth(balancesSheet, "A", "A", 30); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write balances workbook: %w", err)
	}
	return nil
}

type sheetStyles struct {
	bold   int
	amount int
}

func newStyles(f *excelize.File, unit ledger.Unit) (sheetStyles, error) {
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return sheetStyles{}, fmt.Errorf("failed to create header style: %w", err)
	}
	numFmt := "#,##0." + strings.Repeat("0", int(utils.PrecisionForUnit(unit)))
	amountStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return sheetStyles{}, fmt.Errorf("failed to create amount style: %w", err)
	}
	return sheetStyles{bold: bold, amount: amountStyle}, nil
}

// amount converts to a float cell value rounded to the unit's precision.
func amount(d decimal.Decimal, unit ledger.Unit) float64 {
	return d.Round(utils.PrecisionForUnit(unit)).InexactFloat64()
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	if err := f.SetSheetRow(sheet, cell(1, row), &values); err != nil {
		return fmt.Errorf("failed to write row %d of %s: %w", row, sheet, err)
	}
	return nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
