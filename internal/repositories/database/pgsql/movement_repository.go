package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/retailops/branch_backoffice/internal/apperrors"
	"github.com/retailops/branch_backoffice/internal/core/domain"
	portsrepo "github.com/retailops/branch_backoffice/internal/core/ports/repositories"
	"github.com/retailops/branch_backoffice/internal/models"
	"github.com/retailops/branch_backoffice/internal/utils/mapping"
	"github.com/retailops/branch_backoffice/internal/utils/pagination"
)

type PgxMovementRepository struct {
	BaseRepository
}

// newPgxMovementRepository creates a new repository for movement data.
func newPgxMovementRepository(pool *pgxpool.Pool) portsrepo.MovementRepositoryFacade {
	return &PgxMovementRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxMovementRepository implements portsrepo.MovementRepositoryFacade
var _ portsrepo.MovementRepositoryFacade = (*PgxMovementRepository)(nil)

const movementSelectColumns = `
	m.movement_id, m.branch_id, m.movement_date,
	m.gross_sales, m.credit, m.credit_repayments, m.top_ups,
	m.card_payment, m.transfers, m.expenses, m.manual_deposit,
	m.notes, m.created_at, m.created_by, m.last_updated_at, m.last_updated_by
`

func (r *PgxMovementRepository) getMovements(ctx context.Context, filterQuery string, args ...any) ([]domain.MovementRecord, error) {
	query := `SELECT ` + movementSelectColumns + ` FROM movements m ` + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query movements", err)
	}
	defer rows.Close()
	modelMovements, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Movement])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.MovementRecord{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect movement rows", err)
	}
	return mapping.ToDomainMovementSlice(modelMovements), nil
}

func (r *PgxMovementRepository) SaveMovement(ctx context.Context, movement domain.MovementRecord) error {
	model := mapping.ToModelMovement(movement)
	query := `
		INSERT INTO movements (
			movement_id, branch_id, movement_date,
			gross_sales, credit, credit_repayments, top_ups,
			card_payment, transfers, expenses, manual_deposit,
			notes, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		model.MovementID,
		model.BranchID,
		model.Date,
		model.GrossSales,
		model.Credit,
		model.CreditRepayments,
		model.TopUps,
		model.CardPayment,
		model.Transfers,
		model.Expenses,
		model.ManualDeposit,
		model.Notes,
		model.CreatedAt,
		model.CreatedBy,
		model.LastUpdatedAt,
		model.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return fmt.Errorf("%w: movement %s", apperrors.ErrDuplicate, movement.MovementID)
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return fmt.Errorf("%w: branch %s does not exist", apperrors.ErrValidation, movement.BranchID)
			}
			if pgErr.Code == "23514" { // check_violation, non-negative amount checks
				return fmt.Errorf("%w: amounts must be non-negative", apperrors.ErrValidation)
			}
		}
		return apperrors.NewAppError(500, "failed to save movement "+movement.MovementID, err)
	}
	return nil
}

func (r *PgxMovementRepository) FindMovementByID(ctx context.Context, branchID, movementID string) (*domain.MovementRecord, error) {
	movements, err := r.getMovements(ctx, `WHERE m.branch_id = $1 AND m.movement_id = $2`, branchID, movementID)
	if err != nil {
		return nil, err
	}
	if len(movements) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &movements[0], nil
}

// FindMovementsForMonth loads every raw record in [first of month, first of next
// month). The reconciliation engine consumes the result as-is.
func (r *PgxMovementRepository) FindMovementsForMonth(ctx context.Context, branchID string, year int, month time.Month) ([]domain.MovementRecord, error) {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	nextMonthStart := monthStart.AddDate(0, 1, 0)
	return r.getMovements(ctx,
		`WHERE m.branch_id = $1 AND m.movement_date >= $2 AND m.movement_date < $3 ORDER BY m.movement_date, m.created_at`,
		branchID, monthStart, nextMonthStart)
}

func (r *PgxMovementRepository) ListMovements(ctx context.Context, branchID string, limit int, nextToken string) ([]domain.MovementRecord, string, error) {
	filter := `WHERE m.branch_id = $1`
	args := []any{branchID}

	if nextToken != "" {
		movementDate, createdAt, err := pagination.DecodeToken(nextToken)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		filter += ` AND (m.movement_date, m.created_at) < ($2, $3)`
		args = append(args, movementDate, createdAt)
	}

	// Fetch one extra row to know whether another page exists.
	filter += fmt.Sprintf(` ORDER BY m.movement_date DESC, m.created_at DESC LIMIT $%d`, len(args)+1)
	args = append(args, limit+1)

	movements, err := r.getMovements(ctx, filter, args...)
	if err != nil {
		return nil, "", err
	}

	newNextToken := ""
	if len(movements) > limit {
		movements = movements[:limit]
		last := movements[limit-1]
		newNextToken = pagination.EncodeToken(last.Date, last.CreatedAt)
	}
	return movements, newNextToken, nil
}

func (r *PgxMovementRepository) UpdateMovement(ctx context.Context, movement domain.MovementRecord) error {
	model := mapping.ToModelMovement(movement)
	query := `
		UPDATE movements
		SET movement_date = $3,
			gross_sales = $4, credit = $5, credit_repayments = $6, top_ups = $7,
			card_payment = $8, transfers = $9, expenses = $10, manual_deposit = $11,
			notes = $12, last_updated_at = $13, last_updated_by = $14
		WHERE branch_id = $1 AND movement_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		model.BranchID,
		model.MovementID,
		model.Date,
		model.GrossSales,
		model.Credit,
		model.CreditRepayments,
		model.TopUps,
		model.CardPayment,
		model.Transfers,
		model.Expenses,
		model.ManualDeposit,
		model.Notes,
		model.LastUpdatedAt,
		model.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update movement "+movement.MovementID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxMovementRepository) DeleteMovement(ctx context.Context, branchID, movementID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM movements WHERE branch_id = $1 AND movement_id = $2`, branchID, movementID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete movement "+movementID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
