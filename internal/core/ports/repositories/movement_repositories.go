package repositories

import (
	"context"
	"time"

	"github.com/retailops/branch_backoffice/internal/core/domain"
)

// MovementReaderRepository defines read operations for movement data
type MovementReaderRepository interface {
	// FindMovementByID retrieves a movement by its ID within a branch.
	FindMovementByID(ctx context.Context, branchID, movementID string) (*domain.MovementRecord, error)

	// FindMovementsForMonth retrieves every raw movement record for exactly one
	// branch and one calendar month. May return an empty slice. This is the
	// data-access collaborator feeding the reconciliation engine.
	FindMovementsForMonth(ctx context.Context, branchID string, year int, month time.Month) ([]domain.MovementRecord, error)

	// ListMovements retrieves a page of movements for a branch ordered by date
	// descending then creation time, keyed by an opaque cursor. It returns the
	// page and the cursor for the next one ("" when exhausted).
	ListMovements(ctx context.Context, branchID string, limit int, nextToken string) ([]domain.MovementRecord, string, error)
}

// MovementWriterRepository defines write operations for movement data
type MovementWriterRepository interface {
	// SaveMovement inserts a new movement record.
	SaveMovement(ctx context.Context, movement domain.MovementRecord) error

	// UpdateMovement updates an existing movement record.
	UpdateMovement(ctx context.Context, movement domain.MovementRecord) error

	// DeleteMovement removes a movement record.
	DeleteMovement(ctx context.Context, branchID, movementID string) error
}

// MovementRepositoryFacade combines all movement-related repository interfaces
type MovementRepositoryFacade interface {
	MovementReaderRepository
	MovementWriterRepository
}
