package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DaySummary aggregates every MovementRecord of one branch for one calendar date.
// One exists for every day of a reconciled month, zero-filled when the day had no
// records. DayBalance and AccumulatedBalance are derived by the balance reconciler
// and are zero until then.
type DaySummary struct {
	Date time.Time `json:"date"`

	GrossSales       decimal.Decimal `json:"grossSales"`
	Credit           decimal.Decimal `json:"credit"`
	CreditRepayments decimal.Decimal `json:"creditRepayments"`
	TopUps           decimal.Decimal `json:"topUps"`
	CardPayment      decimal.Decimal `json:"cardPayment"`
	Transfers        decimal.Decimal `json:"transfers"`
	Expenses         decimal.Decimal `json:"expenses"`
	ManualDeposit    decimal.Decimal `json:"manualDeposit"`

	// DayBalance is the cash that should physically remain for the day after
	// netting out non-cash payment methods and till expenses.
	DayBalance decimal.Decimal `json:"dayBalance"`
	// AccumulatedBalance is the running total carried forward from the first day
	// of the month: previous day's accumulated + DayBalance - ManualDeposit.
	AccumulatedBalance decimal.Decimal `json:"accumulatedBalance"`
}

// ZeroDaySummary returns a gap-fill summary for a date with no recorded activity.
func ZeroDaySummary(date time.Time) DaySummary {
	return DaySummary{
		Date:               NormalizeDate(date),
		GrossSales:         decimal.Zero,
		Credit:             decimal.Zero,
		CreditRepayments:   decimal.Zero,
		TopUps:             decimal.Zero,
		CardPayment:        decimal.Zero,
		Transfers:          decimal.Zero,
		Expenses:           decimal.Zero,
		ManualDeposit:      decimal.Zero,
		DayBalance:         decimal.Zero,
		AccumulatedBalance: decimal.Zero,
	}
}

// MonthGrid is an ordered sequence of DaySummary, one per day of a target month,
// sorted ascending, covering day 1 through the month's last calendar day.
type MonthGrid []DaySummary

// MonthTotals holds the sum of each category across all days of a reconciled
// month, plus the accumulated balance at the end of the last day.
type MonthTotals struct {
	GrossSales       decimal.Decimal `json:"grossSales"`
	Credit           decimal.Decimal `json:"credit"`
	CreditRepayments decimal.Decimal `json:"creditRepayments"`
	TopUps           decimal.Decimal `json:"topUps"`
	CardPayment      decimal.Decimal `json:"cardPayment"`
	Transfers        decimal.Decimal `json:"transfers"`
	Expenses         decimal.Decimal `json:"expenses"`
	ManualDeposit    decimal.Decimal `json:"manualDeposit"`

	EndingAccumulatedBalance decimal.Decimal `json:"endingAccumulatedBalance"`
}

// ReconciledMonth is the result of reconciling one (branch, month): the fully
// gap-filled day grid with derived balances, plus month-level totals. It is
// derived, read-only data, recomputed on every query.
type ReconciledMonth struct {
	BranchID string      `json:"branchID"`
	Year     int         `json:"year"`
	Month    time.Month  `json:"month"`
	Days     MonthGrid   `json:"days"`
	Totals   MonthTotals `json:"totals"`
}

// MonthSummary carries the figures for the on-screen summary cards. It must be
// projected from a ReconciledMonth, never recomputed independently.
type MonthSummary struct {
	TotalSales                   decimal.Decimal `json:"totalSales"`
	TotalExpenses                decimal.Decimal `json:"totalExpenses"`
	NetBalance                   decimal.Decimal `json:"netBalance"`
	AccumulatedBalanceEndOfMonth decimal.Decimal `json:"accumulatedBalanceEndOfMonth"`
	DayCount                     int             `json:"dayCount"`
}

// ExportRow is one exportable table row per day. Values are rounded to 2 decimal
// places for display; the accumulation itself is done unrounded upstream.
type ExportRow struct {
	Date             string          `json:"date"` // ISO calendar date (YYYY-MM-DD)
	GrossSales       decimal.Decimal `json:"grossSales"`
	Credit           decimal.Decimal `json:"credit"`
	CreditRepayments decimal.Decimal `json:"creditRepayments"`
	TopUps           decimal.Decimal `json:"topUps"`
	CardPayment      decimal.Decimal `json:"cardPayment"`
	Transfers        decimal.Decimal `json:"transfers"`
	Expenses         decimal.Decimal `json:"expenses"`
	DayBalance       decimal.Decimal `json:"dayBalance"`
	ManualDeposit    decimal.Decimal `json:"manualDeposit"`

	AccumulatedBalance decimal.Decimal `json:"accumulatedBalance"`
}
