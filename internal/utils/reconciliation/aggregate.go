package reconciliation

import (
	"time"

	"github.com/retailops/branch_backoffice/internal/core/domain"
)

// AggregateDaily folds an unordered collection of movement records into one
// partial DaySummary per calendar date, summing each numeric field across all
// records of that date. Overlapping categories on the same day are summed, never
// de-duplicated. Dates with no records are not emitted here; gap-filling is
// BuildMonthGrid's job.
//
// Derived balances are left at zero; they belong to the reconciler.
func AggregateDaily(records []domain.MovementRecord) map[time.Time]domain.DaySummary {
	byDay := make(map[time.Time]domain.DaySummary, len(records))
	for _, rec := range records {
		day := domain.NormalizeDate(rec.Date)
		sum, ok := byDay[day]
		if !ok {
			sum = domain.ZeroDaySummary(day)
		}
		sum.GrossSales = sum.GrossSales.Add(rec.GrossSales)
		sum.Credit = sum.Credit.Add(rec.Credit)
		sum.CreditRepayments = sum.CreditRepayments.Add(rec.CreditRepayments)
		sum.TopUps = sum.TopUps.Add(rec.TopUps)
		sum.CardPayment = sum.CardPayment.Add(rec.CardPayment)
		sum.Transfers = sum.Transfers.Add(rec.Transfers)
		sum.Expenses = sum.Expenses.Add(rec.Expenses)
		sum.ManualDeposit = sum.ManualDeposit.Add(rec.ManualDeposit)
		byDay[day] = sum
	}
	return byDay
}
