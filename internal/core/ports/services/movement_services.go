package services

import (
	"context"

	"github.com/retailops/branch_backoffice/internal/core/domain"
	"github.com/retailops/branch_backoffice/internal/dto"
)

// MovementReaderSvc defines read operations for movement data
type MovementReaderSvc interface {
	// GetMovementByID retrieves a specific movement within a branch.
	GetMovementByID(ctx context.Context, branchID, movementID string, userID string) (*domain.MovementRecord, error)

	// ListMovements retrieves a cursor-paginated page of movements for a branch.
	ListMovements(ctx context.Context, branchID string, userID string, params dto.ListMovementsParams) (*dto.ListMovementsResponse, error)
}

// MovementWriterSvc defines write operations for movement data
type MovementWriterSvc interface {
	// CreateMovement validates and persists a new movement record.
	CreateMovement(ctx context.Context, branchID string, req dto.CreateMovementRequest, creatorUserID string) (*domain.MovementRecord, error)

	// UpdateMovement updates an existing movement record.
	UpdateMovement(ctx context.Context, branchID, movementID string, req dto.UpdateMovementRequest, userID string) (*domain.MovementRecord, error)

	// DeleteMovement removes a movement record.
	DeleteMovement(ctx context.Context, branchID, movementID string, userID string) error
}

// MovementSvcFacade combines all movement-related service interfaces
type MovementSvcFacade interface {
	MovementReaderSvc
	MovementWriterSvc
}
