package domain

import (
	"fmt"
	"time"

	"github.com/retailops/branch_backoffice/internal/apperrors"
	"github.com/shopspring/decimal"
)

// MovementRecord is one financial event recorded for one branch on one calendar
// date: a sale, an expense, a manual deposit, or a payment-method amount. Amounts
// are non-negative and share a single implicit currency.
//
// The legacy input shape carried at most one non-zero payment category per record
// (a one-of-many dropdown); aggregation does not rely on that, several records per
// day may each contribute to different categories.
type MovementRecord struct {
	MovementID string `json:"movementID"` // Primary Key (UUID)
	BranchID   string `json:"branchID"`

	// Date is a calendar date. Time-of-day carries no meaning: two records on the
	// same date are same-day regardless of hour. Always normalized via NormalizeDate.
	Date time.Time `json:"date"`

	GrossSales       decimal.Decimal `json:"grossSales"`
	Credit           decimal.Decimal `json:"credit"`
	CreditRepayments decimal.Decimal `json:"creditRepayments"`
	TopUps           decimal.Decimal `json:"topUps"`
	CardPayment      decimal.Decimal `json:"cardPayment"`
	Transfers        decimal.Decimal `json:"transfers"`
	Expenses         decimal.Decimal `json:"expenses"`
	ManualDeposit    decimal.Decimal `json:"manualDeposit"`

	Notes string `json:"notes"`
	AuditFields
}

// NormalizeDate strips time-of-day and location so that records grouped by Date
// compare equal whenever they fall on the same calendar day.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Validate checks the record invariants: a real calendar date and every amount
// present and non-negative. The returned error wraps apperrors.ErrValidation and
// names the offending field.
func (m MovementRecord) Validate() error {
	if m.BranchID == "" {
		return fmt.Errorf("%w: branchID is required", apperrors.ErrValidation)
	}
	if m.Date.IsZero() {
		return fmt.Errorf("%w: date is required", apperrors.ErrValidation)
	}
	for _, f := range []struct {
		name   string
		amount decimal.Decimal
	}{
		{"grossSales", m.GrossSales},
		{"credit", m.Credit},
		{"creditRepayments", m.CreditRepayments},
		{"topUps", m.TopUps},
		{"cardPayment", m.CardPayment},
		{"transfers", m.Transfers},
		{"expenses", m.Expenses},
		{"manualDeposit", m.ManualDeposit},
	} {
		if f.amount.IsNegative() {
			return fmt.Errorf("%w: %s must be non-negative, got %s", apperrors.ErrValidation, f.name, f.amount)
		}
	}
	return nil
}
