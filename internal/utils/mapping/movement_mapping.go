package mapping

import (
	"github.com/retailops/branch_backoffice/internal/core/domain"
	"github.com/retailops/branch_backoffice/internal/models"
)

// ToModelMovement converts a domain MovementRecord to a model Movement
func ToModelMovement(d domain.MovementRecord) models.Movement {
	return models.Movement{
		MovementID:       d.MovementID,
		BranchID:         d.BranchID,
		Date:             domain.NormalizeDate(d.Date),
		GrossSales:       d.GrossSales,
		Credit:           d.Credit,
		CreditRepayments: d.CreditRepayments,
		TopUps:           d.TopUps,
		CardPayment:      d.CardPayment,
		Transfers:        d.Transfers,
		Expenses:         d.Expenses,
		ManualDeposit:    d.ManualDeposit,
		Notes:            d.Notes,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainMovement converts a model Movement to a domain MovementRecord
func ToDomainMovement(m models.Movement) domain.MovementRecord {
	return domain.MovementRecord{
		MovementID:       m.MovementID,
		BranchID:         m.BranchID,
		Date:             domain.NormalizeDate(m.Date),
		GrossSales:       m.GrossSales,
		Credit:           m.Credit,
		CreditRepayments: m.CreditRepayments,
		TopUps:           m.TopUps,
		CardPayment:      m.CardPayment,
		Transfers:        m.Transfers,
		Expenses:         m.Expenses,
		ManualDeposit:    m.ManualDeposit,
		Notes:            m.Notes,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainMovementSlice converts a slice of model Movements to domain records
func ToDomainMovementSlice(ms []models.Movement) []domain.MovementRecord {
	ds := make([]domain.MovementRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainMovement(m)
	}
	return ds
}
