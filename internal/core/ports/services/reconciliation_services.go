package services

import (
	"context"
	"time"

	"github.com/retailops/branch_backoffice/internal/core/domain"
)

// ReconciliationSvcFacade exposes the daily financial reconciliation engine.
// All three views of a month derive from one ReconciledMonth computation, so
// the on-screen summary and the exported table can never disagree.
type ReconciliationSvcFacade interface {
	// ReconcileMonth fetches the branch's raw movements for the month and runs
	// the full reconciliation pipeline: per-day aggregation, calendar gap fill,
	// and the carry-forward balance fold.
	ReconcileMonth(ctx context.Context, branchID string, year int, month time.Month, userID string) (*domain.ReconciledMonth, error)

	// MonthSummary projects the on-screen card totals from a reconciled month.
	MonthSummary(ctx context.Context, branchID string, year int, month time.Month, userID string) (*domain.ReconciledMonth, domain.MonthSummary, error)

	// MonthExportRows projects the flat export table from a reconciled month.
	MonthExportRows(ctx context.Context, branchID string, year int, month time.Month, userID string) ([]domain.ExportRow, error)
}
