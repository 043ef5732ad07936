package dto

import (
	"time"

	"github.com/retailops/branch_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateMovementRequest defines the data needed to record a financial movement.
// Amounts default to zero; the legacy entry form fills exactly one payment
// category per record, but nothing here depends on that.
type CreateMovementRequest struct {
	Date             string          `json:"date" binding:"required,calendardate"` // YYYY-MM-DD
	GrossSales       decimal.Decimal `json:"grossSales"`
	Credit           decimal.Decimal `json:"credit"`
	CreditRepayments decimal.Decimal `json:"creditRepayments"`
	TopUps           decimal.Decimal `json:"topUps"`
	CardPayment      decimal.Decimal `json:"cardPayment"`
	Transfers        decimal.Decimal `json:"transfers"`
	Expenses         decimal.Decimal `json:"expenses"`
	ManualDeposit    decimal.Decimal `json:"manualDeposit"`
	Notes            string          `json:"notes"`
}

// UpdateMovementRequest defines the fields allowed for updating a movement.
type UpdateMovementRequest struct {
	GrossSales       *decimal.Decimal `json:"grossSales"`
	Credit           *decimal.Decimal `json:"credit"`
	CreditRepayments *decimal.Decimal `json:"creditRepayments"`
	TopUps           *decimal.Decimal `json:"topUps"`
	CardPayment      *decimal.Decimal `json:"cardPayment"`
	Transfers        *decimal.Decimal `json:"transfers"`
	Expenses         *decimal.Decimal `json:"expenses"`
	ManualDeposit    *decimal.Decimal `json:"manualDeposit"`
	Notes            *string          `json:"notes"`
}

// MovementResponse defines the data returned for a movement.
type MovementResponse struct {
	MovementID       string          `json:"movementID"`
	BranchID         string          `json:"branchID"`
	Date             string          `json:"date"` // YYYY-MM-DD
	GrossSales       decimal.Decimal `json:"grossSales"`
	Credit           decimal.Decimal `json:"credit"`
	CreditRepayments decimal.Decimal `json:"creditRepayments"`
	TopUps           decimal.Decimal `json:"topUps"`
	CardPayment      decimal.Decimal `json:"cardPayment"`
	Transfers        decimal.Decimal `json:"transfers"`
	Expenses         decimal.Decimal `json:"expenses"`
	ManualDeposit    decimal.Decimal `json:"manualDeposit"`
	Notes            string          `json:"notes"`
	CreatedAt        time.Time       `json:"createdAt"`
	CreatedBy        string          `json:"createdBy"`
}

// ListMovementsParams defines query parameters for listing movements.
// NextToken is an opaque cursor from a previous page.
type ListMovementsParams struct {
	Limit     int    `form:"limit,default=50"`
	NextToken string `form:"nextToken"`
}

// ListMovementsResponse wraps a page of movements with the cursor for the next page.
type ListMovementsResponse struct {
	Movements []MovementResponse `json:"movements"`
	NextToken string             `json:"nextToken,omitempty"`
}

// ToMovementResponse converts a domain.MovementRecord to a MovementResponse DTO
func ToMovementResponse(m *domain.MovementRecord) MovementResponse {
	return MovementResponse{
		MovementID:       m.MovementID,
		BranchID:         m.BranchID,
		Date:             m.Date.Format("2006-01-02"),
		GrossSales:       m.GrossSales,
		Credit:           m.Credit,
		CreditRepayments: m.CreditRepayments,
		TopUps:           m.TopUps,
		CardPayment:      m.CardPayment,
		Transfers:        m.Transfers,
		Expenses:         m.Expenses,
		ManualDeposit:    m.ManualDeposit,
		Notes:            m.Notes,
		CreatedAt:        m.CreatedAt,
		CreatedBy:        m.CreatedBy,
	}
}

// ToListMovementsResponse converts domain records and a cursor to the list DTO
func ToListMovementsResponse(movements []domain.MovementRecord, nextToken string) *ListMovementsResponse {
	res := &ListMovementsResponse{
		Movements: make([]MovementResponse, len(movements)),
		NextToken: nextToken,
	}
	for i, m := range movements {
		res.Movements[i] = ToMovementResponse(&m)
	}
	return res
}
