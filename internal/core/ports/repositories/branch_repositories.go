package repositories

import (
	"context"

	"github.com/retailops/branch_backoffice/internal/core/domain"
)

// BranchReaderRepository defines read operations for branch data
type BranchReaderRepository interface {
	// FindBranchByID retrieves a branch by its ID.
	FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error)

	// ListBranches retrieves a paginated list of branches.
	ListBranches(ctx context.Context, limit, offset int) ([]domain.Branch, error)
}

// BranchWriterRepository defines write operations for branch data
type BranchWriterRepository interface {
	// SaveBranch inserts a new branch.
	SaveBranch(ctx context.Context, branch domain.Branch) error

	// UpdateBranch updates an existing branch.
	UpdateBranch(ctx context.Context, branch domain.Branch) error
}

// BranchMembershipRepository defines operations on user-branch memberships
type BranchMembershipRepository interface {
	// AddUserToBranch stores a membership with a role; upserts on conflict.
	AddUserToBranch(ctx context.Context, membership domain.UserBranch) error

	// FindUserBranchRole returns the role a user holds in a branch.
	FindUserBranchRole(ctx context.Context, userID, branchID string) (*domain.UserBranch, error)

	// ListUserBranches lists the branches a user belongs to.
	ListUserBranches(ctx context.Context, userID string) ([]domain.UserBranch, error)
}

// BranchRepositoryFacade combines all branch-related repository interfaces
type BranchRepositoryFacade interface {
	BranchReaderRepository
	BranchWriterRepository
	BranchMembershipRepository
}
