package domain_test

import (
	"testing"
	"time"

	"github.com/retailops/branch_backoffice/internal/apperrors"
	"github.com/retailops/branch_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validMovement() domain.MovementRecord {
	return domain.MovementRecord{
		MovementID:       "mov-1",
		BranchID:         "branch-1",
		Date:             time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		GrossSales:       decimal.NewFromInt(100),
		Credit:           decimal.Zero,
		CreditRepayments: decimal.Zero,
		TopUps:           decimal.Zero,
		CardPayment:      decimal.Zero,
		Transfers:        decimal.Zero,
		Expenses:         decimal.Zero,
		ManualDeposit:    decimal.Zero,
	}
}

func TestMovementRecord_Validate(t *testing.T) {
	t.Run("valid record passes", func(t *testing.T) {
		assert.NoError(t, validMovement().Validate())
	})

	t.Run("missing branch fails", func(t *testing.T) {
		rec := validMovement()
		rec.BranchID = ""
		err := rec.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Contains(t, err.Error(), "branchID")
	})

	t.Run("zero date fails", func(t *testing.T) {
		rec := validMovement()
		rec.Date = time.Time{}
		err := rec.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Contains(t, err.Error(), "date")
	})

	t.Run("negative amount names the field", func(t *testing.T) {
		rec := validMovement()
		rec.ManualDeposit = decimal.NewFromInt(-5)
		err := rec.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Contains(t, err.Error(), "manualDeposit")
	})
}

func TestNormalizeDate_IgnoresTimeOfDay(t *testing.T) {
	loc := time.FixedZone("X", -5*3600)
	morning := time.Date(2024, time.March, 5, 8, 30, 0, 0, time.UTC)
	evening := time.Date(2024, time.March, 5, 23, 59, 59, 0, loc)

	assert.Equal(t, domain.NormalizeDate(morning), domain.NormalizeDate(morning.Add(9*time.Hour)))
	assert.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), domain.NormalizeDate(evening))
}
