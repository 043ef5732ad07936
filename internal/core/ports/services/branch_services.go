package services

import (
	"context"

	"github.com/retailops/branch_backoffice/internal/core/domain"
	"github.com/retailops/branch_backoffice/internal/dto"
)

// BranchReaderSvc defines read operations for branch data
type BranchReaderSvc interface {
	// GetBranchByID retrieves a branch by its ID.
	GetBranchByID(ctx context.Context, branchID string, userID string) (*domain.Branch, error)

	// ListBranches retrieves a paginated list of branches.
	ListBranches(ctx context.Context, limit, offset int) ([]domain.Branch, error)
}

// BranchWriterSvc defines write operations for branch data
type BranchWriterSvc interface {
	// CreateBranch persists a new branch; the creator becomes its admin.
	CreateBranch(ctx context.Context, req dto.CreateBranchRequest, creatorUserID string) (*domain.Branch, error)

	// UpdateBranch updates an existing branch's details.
	UpdateBranch(ctx context.Context, branchID string, req dto.UpdateBranchRequest, userID string) (*domain.Branch, error)

	// DeactivateBranch marks a branch as inactive.
	DeactivateBranch(ctx context.Context, branchID string, userID string) error
}

// BranchMembershipSvc defines operations on branch membership
type BranchMembershipSvc interface {
	// AddUserToBranch assigns a user to a branch with a role.
	AddUserToBranch(ctx context.Context, branchID string, req dto.AddUserToBranchRequest, actingUserID string) error
}

// BranchAuthorizerSvc checks whether a user may act on a branch.
type BranchAuthorizerSvc interface {
	// AuthorizeUserAction returns nil when the user holds at least requiredRole
	// in the branch, apperrors.ErrForbidden otherwise.
	AuthorizeUserAction(ctx context.Context, userID, branchID string, requiredRole domain.UserBranchRole) error
}

// BranchSvcFacade combines all branch-related service interfaces
type BranchSvcFacade interface {
	BranchReaderSvc
	BranchWriterSvc
	BranchMembershipSvc
	BranchAuthorizerSvc
}
