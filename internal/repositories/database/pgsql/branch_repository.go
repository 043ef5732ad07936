package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/retailops/branch_backoffice/internal/apperrors"
	"github.com/retailops/branch_backoffice/internal/core/domain"
	portsrepo "github.com/retailops/branch_backoffice/internal/core/ports/repositories"
	"github.com/retailops/branch_backoffice/internal/models"
	"github.com/retailops/branch_backoffice/internal/utils/mapping"
)

type PgxBranchRepository struct {
	BaseRepository
}

// newPgxBranchRepository creates a new repository for branch data.
func newPgxBranchRepository(pool *pgxpool.Pool) portsrepo.BranchRepositoryFacade {
	return &PgxBranchRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxBranchRepository implements portsrepo.BranchRepositoryFacade
var _ portsrepo.BranchRepositoryFacade = (*PgxBranchRepository)(nil)

const branchSelectColumns = `
	b.branch_id, b.name, b.address, b.is_active,
	b.created_at, b.created_by, b.last_updated_at, b.last_updated_by
`

func (r *PgxBranchRepository) getBranches(ctx context.Context, filterQuery string, args ...any) ([]domain.Branch, error) {
	query := `SELECT ` + branchSelectColumns + ` FROM branches b ` + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query branches", err)
	}
	defer rows.Close()
	modelBranches, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Branch])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Branch{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect branch rows", err)
	}
	return mapping.ToDomainBranchSlice(modelBranches), nil
}

func (r *PgxBranchRepository) SaveBranch(ctx context.Context, branch domain.Branch) error {
	model := mapping.ToModelBranch(branch)
	query := `
		INSERT INTO branches (
			branch_id, name, address, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		model.BranchID,
		model.Name,
		model.Address,
		model.IsActive,
		model.CreatedAt,
		model.CreatedBy,
		model.LastUpdatedAt,
		model.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: branch %s", apperrors.ErrDuplicate, branch.BranchID)
		}
		return apperrors.NewAppError(500, "failed to save branch "+branch.BranchID, err)
	}
	return nil
}

func (r *PgxBranchRepository) FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	branches, err := r.getBranches(ctx, `WHERE b.branch_id = $1`, branchID)
	if err != nil {
		return nil, err
	}
	if len(branches) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &branches[0], nil
}

func (r *PgxBranchRepository) ListBranches(ctx context.Context, limit, offset int) ([]domain.Branch, error) {
	return r.getBranches(ctx, `ORDER BY b.name LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *PgxBranchRepository) UpdateBranch(ctx context.Context, branch domain.Branch) error {
	model := mapping.ToModelBranch(branch)
	query := `
		UPDATE branches
		SET name = $2, address = $3, is_active = $4,
			last_updated_at = $5, last_updated_by = $6
		WHERE branch_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		model.BranchID,
		model.Name,
		model.Address,
		model.IsActive,
		model.LastUpdatedAt,
		model.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update branch "+branch.BranchID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxBranchRepository) AddUserToBranch(ctx context.Context, membership domain.UserBranch) error {
	// Upsert: add the user or update their role if they already belong.
	query := `
		INSERT INTO user_branches (user_id, branch_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, branch_id) DO UPDATE SET role = EXCLUDED.role;
	`
	_, err := r.Pool.Exec(ctx, query,
		membership.UserID,
		membership.BranchID,
		string(membership.Role),
		membership.JoinedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to add/update user "+membership.UserID+" in branch "+membership.BranchID, err)
	}
	return nil
}

func (r *PgxBranchRepository) FindUserBranchRole(ctx context.Context, userID, branchID string) (*domain.UserBranch, error) {
	query := `
		SELECT user_id, branch_id, role, joined_at
		FROM user_branches
		WHERE user_id = $1 AND branch_id = $2;
	`
	var ub domain.UserBranch
	err := r.Pool.QueryRow(ctx, query, userID, branchID).Scan(
		&ub.UserID,
		&ub.BranchID,
		&ub.Role,
		&ub.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find user "+userID+" branch role in "+branchID, err)
	}
	return &ub, nil
}

func (r *PgxBranchRepository) ListUserBranches(ctx context.Context, userID string) ([]domain.UserBranch, error) {
	query := `
		SELECT ub.user_id, u.name AS user_name, ub.branch_id, ub.role, ub.joined_at
		FROM user_branches ub
		JOIN users u ON u.user_id = ub.user_id
		WHERE ub.user_id = $1 AND ub.role != $2
		ORDER BY ub.joined_at;
	`
	rows, err := r.Pool.Query(ctx, query, userID, string(domain.RoleRemoved))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query user branches", err)
	}
	defer rows.Close()

	var memberships []domain.UserBranch
	for rows.Next() {
		var ub domain.UserBranch
		if err := rows.Scan(&ub.UserID, &ub.UserName, &ub.BranchID, &ub.Role, &ub.JoinedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan user branch row", err)
		}
		memberships = append(memberships, ub)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read user branch rows", err)
	}
	return memberships, nil
}
