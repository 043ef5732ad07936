package reconciliation

import (
	"github.com/retailops/branch_backoffice/internal/core/domain"
)

// displayPlaces is the rounding applied to exported figures. The fold itself
// runs unrounded so a 31-day accumulation chain cannot drift.
const displayPlaces = 2

// ProjectSummary derives the on-screen card totals from a reconciled month.
// Both projections read the same ReconciledMonth instance so the summary and
// the export can never disagree.
func ProjectSummary(rm *domain.ReconciledMonth) domain.MonthSummary {
	return domain.MonthSummary{
		TotalSales:                   rm.Totals.GrossSales,
		TotalExpenses:                rm.Totals.Expenses,
		NetBalance:                   rm.Totals.GrossSales.Sub(rm.Totals.Expenses),
		AccumulatedBalanceEndOfMonth: rm.Totals.EndingAccumulatedBalance,
		DayCount:                     len(rm.Days),
	}
}

// ProjectExportRows derives the flat exportable table, one row per day, with
// every figure rounded to 2 decimal places for display.
func ProjectExportRows(rm *domain.ReconciledMonth) []domain.ExportRow {
	rows := make([]domain.ExportRow, len(rm.Days))
	for i, day := range rm.Days {
		rows[i] = domain.ExportRow{
			Date:               day.Date.Format("2006-01-02"),
			GrossSales:         day.GrossSales.Round(displayPlaces),
			Credit:             day.Credit.Round(displayPlaces),
			CreditRepayments:   day.CreditRepayments.Round(displayPlaces),
			TopUps:             day.TopUps.Round(displayPlaces),
			CardPayment:        day.CardPayment.Round(displayPlaces),
			Transfers:          day.Transfers.Round(displayPlaces),
			Expenses:           day.Expenses.Round(displayPlaces),
			DayBalance:         day.DayBalance.Round(displayPlaces),
			ManualDeposit:      day.ManualDeposit.Round(displayPlaces),
			AccumulatedBalance: day.AccumulatedBalance.Round(displayPlaces),
		}
	}
	return rows
}
