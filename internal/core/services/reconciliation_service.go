package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/retailops/branch_backoffice/internal/core/domain"
	portsrepo "github.com/retailops/branch_backoffice/internal/core/ports/repositories"
	portssvc "github.com/retailops/branch_backoffice/internal/core/ports/services"
	"github.com/retailops/branch_backoffice/internal/utils/reconciliation"
)

// reconciliationService implements the ReconciliationSvcFacade interface.
// It is stateless: every call recomputes the month from the raw movement
// records, so edits to past days are reflected immediately.
type reconciliationService struct {
	BaseService
	movementRepo portsrepo.MovementReaderRepository
}

// ReconciliationServiceOption defines a function signature for options
type ReconciliationServiceOption func(*reconciliationService)

// WithReconciliationAuthorizer sets the branch authorizer for the reconciliation service
func WithReconciliationAuthorizer(authorizer portssvc.BranchAuthorizerSvc) ReconciliationServiceOption {
	return func(s *reconciliationService) {
		s.BranchAuthorizer = authorizer
	}
}

// NewReconciliationService creates a new reconciliation service
func NewReconciliationService(repo portsrepo.MovementReaderRepository, opts ...ReconciliationServiceOption) portssvc.ReconciliationSvcFacade {
	svc := &reconciliationService{movementRepo: repo}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Ensure reconciliationService implements the ReconciliationSvcFacade interface
var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// ReconcileMonth fetches the branch's raw movements for the month and runs the
// full reconciliation pipeline over them.
func (s *reconciliationService) ReconcileMonth(ctx context.Context, branchID string, year int, month time.Month, userID string) (*domain.ReconciledMonth, error) {
	if err := s.AuthorizeUser(ctx, userID, branchID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	records, err := s.movementRepo.FindMovementsForMonth(ctx, branchID, year, month)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch movements for month",
			slog.String("branch_id", branchID),
			slog.Int("year", year),
			slog.String("month", month.String()))
		return nil, fmt.Errorf("failed to fetch movements for month: %w", err)
	}

	reconciled, err := reconciliation.ReconcileMonth(branchID, year, month, records)
	if err != nil {
		s.LogError(ctx, err, "Failed to reconcile month",
			slog.String("branch_id", branchID),
			slog.Int("year", year),
			slog.String("month", month.String()))
		return nil, err
	}

	s.LogDebug(ctx, "Month reconciled",
		slog.String("branch_id", branchID),
		slog.Int("year", year),
		slog.String("month", month.String()),
		slog.Int("record_count", len(records)))
	return reconciled, nil
}

// MonthSummary reconciles the month and projects the on-screen card totals.
// Both return values come from the same computation.
func (s *reconciliationService) MonthSummary(ctx context.Context, branchID string, year int, month time.Month, userID string) (*domain.ReconciledMonth, domain.MonthSummary, error) {
	reconciled, err := s.ReconcileMonth(ctx, branchID, year, month, userID)
	if err != nil {
		return nil, domain.MonthSummary{}, err
	}
	return reconciled, reconciliation.ProjectSummary(reconciled), nil
}

// MonthExportRows reconciles the month and projects the flat export table.
func (s *reconciliationService) MonthExportRows(ctx context.Context, branchID string, year int, month time.Month, userID string) ([]domain.ExportRow, error) {
	reconciled, err := s.ReconcileMonth(ctx, branchID, year, month, userID)
	if err != nil {
		return nil, err
	}
	return reconciliation.ProjectExportRows(reconciled), nil
}
