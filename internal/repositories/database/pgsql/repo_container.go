package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/retailops/branch_backoffice/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		BranchRepo:   newPgxBranchRepository(dbPool),
		MovementRepo: newPgxMovementRepository(dbPool),
		UserRepo:     newPgxUserRepository(dbPool),
	}
}
