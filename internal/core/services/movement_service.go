package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/retailops/branch_backoffice/internal/apperrors"
	"github.com/retailops/branch_backoffice/internal/core/domain"
	portsrepo "github.com/retailops/branch_backoffice/internal/core/ports/repositories"
	portssvc "github.com/retailops/branch_backoffice/internal/core/ports/services"
	"github.com/retailops/branch_backoffice/internal/dto"
)

const movementDateLayout = "2006-01-02"

// movementService implements the MovementSvcFacade interface
type movementService struct {
	BaseService
	movementRepo portsrepo.MovementRepositoryFacade
}

// MovementServiceOption defines a function signature for options
type MovementServiceOption func(*movementService)

// WithMovementAuthorizer sets the branch authorizer for the movement service
func WithMovementAuthorizer(authorizer portssvc.BranchAuthorizerSvc) MovementServiceOption {
	return func(s *movementService) {
		s.BranchAuthorizer = authorizer
	}
}

// NewMovementService creates a new movement service
func NewMovementService(repo portsrepo.MovementRepositoryFacade, opts ...MovementServiceOption) portssvc.MovementSvcFacade {
	svc := &movementService{movementRepo: repo}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Ensure movementService implements the MovementSvcFacade interface
var _ portssvc.MovementSvcFacade = (*movementService)(nil)

// parseMovementDate parses a YYYY-MM-DD string into a normalized calendar date.
func parseMovementDate(value string) (time.Time, error) {
	parsed, err := time.Parse(movementDateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be in YYYY-MM-DD format, got %q", apperrors.ErrValidation, value)
	}
	return domain.NormalizeDate(parsed), nil
}

// CreateMovement validates and persists a new movement record.
func (s *movementService) CreateMovement(ctx context.Context, branchID string, req dto.CreateMovementRequest, creatorUserID string) (*domain.MovementRecord, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, branchID, domain.RoleMember); err != nil {
		return nil, err
	}

	date, err := parseMovementDate(req.Date)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	movement := domain.MovementRecord{
		MovementID:       uuid.NewString(),
		BranchID:         branchID,
		Date:             date,
		GrossSales:       req.GrossSales,
		Credit:           req.Credit,
		CreditRepayments: req.CreditRepayments,
		TopUps:           req.TopUps,
		CardPayment:      req.CardPayment,
		Transfers:        req.Transfers,
		Expenses:         req.Expenses,
		ManualDeposit:    req.ManualDeposit,
		Notes:            req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := movement.Validate(); err != nil {
		return nil, err
	}

	if err := s.movementRepo.SaveMovement(ctx, movement); err != nil {
		s.LogError(ctx, err, "Failed to save movement",
			slog.String("branch_id", branchID), slog.String("date", req.Date))
		return nil, fmt.Errorf("failed to save movement: %w", err)
	}

	s.LogInfo(ctx, "Movement created",
		slog.String("movement_id", movement.MovementID),
		slog.String("branch_id", branchID),
		slog.String("date", req.Date))
	return &movement, nil
}

// GetMovementByID retrieves a specific movement within a branch.
func (s *movementService) GetMovementByID(ctx context.Context, branchID, movementID string, userID string) (*domain.MovementRecord, error) {
	if err := s.AuthorizeUser(ctx, userID, branchID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	movement, err := s.movementRepo.FindMovementByID(ctx, branchID, movementID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find movement",
				slog.String("branch_id", branchID), slog.String("movement_id", movementID))
		}
		return nil, err
	}
	return movement, nil
}

// ListMovements retrieves a cursor-paginated page of movements for a branch.
func (s *movementService) ListMovements(ctx context.Context, branchID string, userID string, params dto.ListMovementsParams) (*dto.ListMovementsResponse, error) {
	if err := s.AuthorizeUser(ctx, userID, branchID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	movements, nextToken, err := s.movementRepo.ListMovements(ctx, branchID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list movements", slog.String("branch_id", branchID))
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	return dto.ToListMovementsResponse(movements, nextToken), nil
}

// UpdateMovement updates an existing movement record.
func (s *movementService) UpdateMovement(ctx context.Context, branchID, movementID string, req dto.UpdateMovementRequest, userID string) (*domain.MovementRecord, error) {
	if err := s.AuthorizeUser(ctx, userID, branchID, domain.RoleMember); err != nil {
		return nil, err
	}

	movement, err := s.movementRepo.FindMovementByID(ctx, branchID, movementID)
	if err != nil {
		return nil, err
	}

	if req.GrossSales != nil {
		movement.GrossSales = *req.GrossSales
	}
	if req.Credit != nil {
		movement.Credit = *req.Credit
	}
	if req.CreditRepayments != nil {
		movement.CreditRepayments = *req.CreditRepayments
	}
	if req.TopUps != nil {
		movement.TopUps = *req.TopUps
	}
	if req.CardPayment != nil {
		movement.CardPayment = *req.CardPayment
	}
	if req.Transfers != nil {
		movement.Transfers = *req.Transfers
	}
	if req.Expenses != nil {
		movement.Expenses = *req.Expenses
	}
	if req.ManualDeposit != nil {
		movement.ManualDeposit = *req.ManualDeposit
	}
	if req.Notes != nil {
		movement.Notes = *req.Notes
	}
	movement.LastUpdatedAt = time.Now()
	movement.LastUpdatedBy = userID

	if err := movement.Validate(); err != nil {
		return nil, err
	}

	if err := s.movementRepo.UpdateMovement(ctx, *movement); err != nil {
		s.LogError(ctx, err, "Failed to update movement",
			slog.String("branch_id", branchID), slog.String("movement_id", movementID))
		return nil, fmt.Errorf("failed to update movement: %w", err)
	}
	return movement, nil
}

// DeleteMovement removes a movement record.
func (s *movementService) DeleteMovement(ctx context.Context, branchID, movementID string, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, branchID, domain.RoleMember); err != nil {
		return err
	}
	if err := s.movementRepo.DeleteMovement(ctx, branchID, movementID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete movement",
				slog.String("branch_id", branchID), slog.String("movement_id", movementID))
		}
		return err
	}
	s.LogInfo(ctx, "Movement deleted",
		slog.String("branch_id", branchID), slog.String("movement_id", movementID))
	return nil
}
