package reconciliation

import (
	"fmt"
	"time"

	"github.com/retailops/branch_backoffice/internal/apperrors"
	"github.com/retailops/branch_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Reconcile walks the ordered day grid and derives dayBalance and
// accumulatedBalance for every day:
//
//	dayBalance        = grossSales - credit - topUps - cardPayment - transfers - expenses
//	accumulatedBalance = previous accumulatedBalance + dayBalance - manualDeposit
//
// The accumulation is a strict left fold starting at zero on the first day of
// the month; no carry-in crosses month boundaries. creditRepayments enters
// neither term: the legacy system accumulates repayments nowhere, they are
// informational only.
//
// The input is not mutated; a reconciled copy is returned. A grid that is not
// strictly ascending by date fails with apperrors.ErrUnorderedGrid rather than
// accumulating in the wrong order.
func Reconcile(grid domain.MonthGrid) (domain.MonthGrid, error) {
	out := make(domain.MonthGrid, len(grid))
	accumulated := decimal.Zero
	var prevDate time.Time

	for i, day := range grid {
		if i > 0 && !day.Date.After(prevDate) {
			return nil, fmt.Errorf("%w: %s does not follow %s",
				apperrors.ErrUnorderedGrid,
				day.Date.Format("2006-01-02"),
				prevDate.Format("2006-01-02"))
		}
		prevDate = day.Date

		day.DayBalance = day.GrossSales.
			Sub(day.Credit).
			Sub(day.TopUps).
			Sub(day.CardPayment).
			Sub(day.Transfers).
			Sub(day.Expenses)
		accumulated = accumulated.Add(day.DayBalance).Sub(day.ManualDeposit)
		day.AccumulatedBalance = accumulated
		out[i] = day
	}
	return out, nil
}

// ReconcileMonth is the full pipeline for one (branch, month): aggregate the raw
// records per day, expand into the gap-filled calendar grid, run the balance
// fold, and total the categories. It is a pure function of its inputs; two calls
// with identical inputs yield identical results.
func ReconcileMonth(branchID string, year int, month time.Month, records []domain.MovementRecord) (*domain.ReconciledMonth, error) {
	grid, err := BuildMonthGrid(year, month, AggregateDaily(records))
	if err != nil {
		return nil, err
	}
	days, err := Reconcile(grid)
	if err != nil {
		return nil, err
	}

	totals := domain.MonthTotals{
		GrossSales:       decimal.Zero,
		Credit:           decimal.Zero,
		CreditRepayments: decimal.Zero,
		TopUps:           decimal.Zero,
		CardPayment:      decimal.Zero,
		Transfers:        decimal.Zero,
		Expenses:         decimal.Zero,
		ManualDeposit:    decimal.Zero,
	}
	for _, day := range days {
		totals.GrossSales = totals.GrossSales.Add(day.GrossSales)
		totals.Credit = totals.Credit.Add(day.Credit)
		totals.CreditRepayments = totals.CreditRepayments.Add(day.CreditRepayments)
		totals.TopUps = totals.TopUps.Add(day.TopUps)
		totals.CardPayment = totals.CardPayment.Add(day.CardPayment)
		totals.Transfers = totals.Transfers.Add(day.Transfers)
		totals.Expenses = totals.Expenses.Add(day.Expenses)
		totals.ManualDeposit = totals.ManualDeposit.Add(day.ManualDeposit)
	}
	totals.EndingAccumulatedBalance = days[len(days)-1].AccumulatedBalance

	return &domain.ReconciledMonth{
		BranchID: branchID,
		Year:     year,
		Month:    month,
		Days:     days,
		Totals:   totals,
	}, nil
}
