package dto

import (
	"github.com/retailops/branch_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DaySummaryResponse is one reconciled day in the month grid response.
type DaySummaryResponse struct {
	Date               string          `json:"date"` // YYYY-MM-DD
	GrossSales         decimal.Decimal `json:"grossSales"`
	Credit             decimal.Decimal `json:"credit"`
	CreditRepayments   decimal.Decimal `json:"creditRepayments"`
	TopUps             decimal.Decimal `json:"topUps"`
	CardPayment        decimal.Decimal `json:"cardPayment"`
	Transfers          decimal.Decimal `json:"transfers"`
	Expenses           decimal.Decimal `json:"expenses"`
	ManualDeposit      decimal.Decimal `json:"manualDeposit"`
	DayBalance         decimal.Decimal `json:"dayBalance"`
	AccumulatedBalance decimal.Decimal `json:"accumulatedBalance"`
}

// ReconciledMonthResponse is the full reconciled day grid with month totals.
type ReconciledMonthResponse struct {
	BranchID string               `json:"branchID"`
	Month    string               `json:"month"` // YYYY-MM
	Days     []DaySummaryResponse `json:"days"`
	Totals   struct {
		GrossSales               decimal.Decimal `json:"grossSales"`
		Credit                   decimal.Decimal `json:"credit"`
		CreditRepayments         decimal.Decimal `json:"creditRepayments"`
		TopUps                   decimal.Decimal `json:"topUps"`
		CardPayment              decimal.Decimal `json:"cardPayment"`
		Transfers                decimal.Decimal `json:"transfers"`
		Expenses                 decimal.Decimal `json:"expenses"`
		ManualDeposit            decimal.Decimal `json:"manualDeposit"`
		EndingAccumulatedBalance decimal.Decimal `json:"endingAccumulatedBalance"`
	} `json:"totals"`
}

// MonthSummaryResponse carries the on-screen card figures.
type MonthSummaryResponse struct {
	BranchID                     string          `json:"branchID"`
	Month                        string          `json:"month"` // YYYY-MM
	TotalSales                   decimal.Decimal `json:"totalSales"`
	TotalExpenses                decimal.Decimal `json:"totalExpenses"`
	NetBalance                   decimal.Decimal `json:"netBalance"`
	AccumulatedBalanceEndOfMonth decimal.Decimal `json:"accumulatedBalanceEndOfMonth"`
	DayCount                     int             `json:"dayCount"`
}

// ToReconciledMonthResponse converts a domain ReconciledMonth to its DTO.
func ToReconciledMonthResponse(rm *domain.ReconciledMonth) ReconciledMonthResponse {
	response := ReconciledMonthResponse{
		BranchID: rm.BranchID,
		Month:    monthKey(rm),
		Days:     make([]DaySummaryResponse, len(rm.Days)),
	}
	for i, day := range rm.Days {
		response.Days[i] = DaySummaryResponse{
			Date:               day.Date.Format("2006-01-02"),
			GrossSales:         day.GrossSales,
			Credit:             day.Credit,
			CreditRepayments:   day.CreditRepayments,
			TopUps:             day.TopUps,
			CardPayment:        day.CardPayment,
			Transfers:          day.Transfers,
			Expenses:           day.Expenses,
			ManualDeposit:      day.ManualDeposit,
			DayBalance:         day.DayBalance,
			AccumulatedBalance: day.AccumulatedBalance,
		}
	}
	response.Totals.GrossSales = rm.Totals.GrossSales
	response.Totals.Credit = rm.Totals.Credit
	response.Totals.CreditRepayments = rm.Totals.CreditRepayments
	response.Totals.TopUps = rm.Totals.TopUps
	response.Totals.CardPayment = rm.Totals.CardPayment
	response.Totals.Transfers = rm.Totals.Transfers
	response.Totals.Expenses = rm.Totals.Expenses
	response.Totals.ManualDeposit = rm.Totals.ManualDeposit
	response.Totals.EndingAccumulatedBalance = rm.Totals.EndingAccumulatedBalance
	return response
}

// ToMonthSummaryResponse converts a projected domain MonthSummary to its DTO.
func ToMonthSummaryResponse(rm *domain.ReconciledMonth, s domain.MonthSummary) MonthSummaryResponse {
	return MonthSummaryResponse{
		BranchID:                     rm.BranchID,
		Month:                        monthKey(rm),
		TotalSales:                   s.TotalSales,
		TotalExpenses:                s.TotalExpenses,
		NetBalance:                   s.NetBalance,
		AccumulatedBalanceEndOfMonth: s.AccumulatedBalanceEndOfMonth,
		DayCount:                     s.DayCount,
	}
}

func monthKey(rm *domain.ReconciledMonth) string {
	return rm.Days[0].Date.Format("2006-01")
}
