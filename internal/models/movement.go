package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Movement represents one financial event row for a branch.
// Amount columns are NUMERIC(14,2), all non-negative.
type Movement struct {
	MovementID string    `db:"movement_id"`
	BranchID   string    `db:"branch_id"`
	Date       time.Time `db:"movement_date"`

	GrossSales       decimal.Decimal `db:"gross_sales"`
	Credit           decimal.Decimal `db:"credit"`
	CreditRepayments decimal.Decimal `db:"credit_repayments"`
	TopUps           decimal.Decimal `db:"top_ups"`
	CardPayment      decimal.Decimal `db:"card_payment"`
	Transfers        decimal.Decimal `db:"transfers"`
	Expenses         decimal.Decimal `db:"expenses"`
	ManualDeposit    decimal.Decimal `db:"manual_deposit"`

	Notes string `db:"notes"`
	AuditFields
}
