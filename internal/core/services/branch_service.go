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

// branchService implements the BranchSvcFacade interface
type branchService struct {
	BaseService
	branchRepo portsrepo.BranchRepositoryFacade
}

// NewBranchService creates a new branch service
func NewBranchService(repo portsrepo.BranchRepositoryFacade) portssvc.BranchSvcFacade {
	return &branchService{branchRepo: repo}
}

// Ensure branchService implements the BranchSvcFacade interface
var _ portssvc.BranchSvcFacade = (*branchService)(nil)

// roleRank orders branch roles by privilege for authorization checks.
var roleRank = map[domain.UserBranchRole]int{
	domain.RoleReadOnly: 1,
	domain.RoleMember:   2,
	domain.RoleAdmin:    3,
}

// CreateBranch persists a new branch and makes the creator its admin.
func (s *branchService) CreateBranch(ctx context.Context, req dto.CreateBranchRequest, creatorUserID string) (*domain.Branch, error) {
	now := time.Now()
	branch := domain.Branch{
		BranchID: uuid.NewString(),
		Name:     req.Name,
		Address:  req.Address,
		IsActive: true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.branchRepo.SaveBranch(ctx, branch); err != nil {
		s.LogError(ctx, err, "Failed to save branch", slog.String("branch_name", req.Name))
		return nil, fmt.Errorf("failed to save branch: %w", err)
	}

	membership := domain.UserBranch{
		UserID:   creatorUserID,
		BranchID: branch.BranchID,
		Role:     domain.RoleAdmin,
		JoinedAt: now,
	}
	if err := s.branchRepo.AddUserToBranch(ctx, membership); err != nil {
		s.LogError(ctx, err, "Failed to add creator as branch admin", slog.String("branch_id", branch.BranchID))
		return nil, fmt.Errorf("failed to add creator to branch: %w", err)
	}

	s.LogInfo(ctx, "Branch created", slog.String("branch_id", branch.BranchID), slog.String("name", branch.Name))
	return &branch, nil
}

// GetBranchByID retrieves a branch after checking the user belongs to it.
func (s *branchService) GetBranchByID(ctx context.Context, branchID string, userID string) (*domain.Branch, error) {
	if err := s.AuthorizeUserAction(ctx, userID, branchID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	branch, err := s.branchRepo.FindBranchByID(ctx, branchID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find branch", slog.String("branch_id", branchID))
		}
		return nil, err
	}
	return branch, nil
}

// ListBranches retrieves a paginated list of branches.
func (s *branchService) ListBranches(ctx context.Context, limit, offset int) ([]domain.Branch, error) {
	if limit <= 0 {
		limit = 20
	}
	branches, err := s.branchRepo.ListBranches(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list branches")
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	return branches, nil
}

// UpdateBranch updates branch details; requires admin role.
func (s *branchService) UpdateBranch(ctx context.Context, branchID string, req dto.UpdateBranchRequest, userID string) (*domain.Branch, error) {
	if err := s.AuthorizeUserAction(ctx, userID, branchID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	branch, err := s.branchRepo.FindBranchByID(ctx, branchID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		branch.Name = *req.Name
	}
	if req.Address != nil {
		branch.Address = *req.Address
	}
	if req.IsActive != nil {
		branch.IsActive = *req.IsActive
	}
	branch.LastUpdatedAt = time.Now()
	branch.LastUpdatedBy = userID

	if err := s.branchRepo.UpdateBranch(ctx, *branch); err != nil {
		s.LogError(ctx, err, "Failed to update branch", slog.String("branch_id", branchID))
		return nil, fmt.Errorf("failed to update branch: %w", err)
	}
	return branch, nil
}

// DeactivateBranch marks a branch inactive; requires admin role.
func (s *branchService) DeactivateBranch(ctx context.Context, branchID string, userID string) error {
	inactive := false
	_, err := s.UpdateBranch(ctx, branchID, dto.UpdateBranchRequest{IsActive: &inactive}, userID)
	return err
}

// AddUserToBranch assigns a user to a branch; requires admin role.
func (s *branchService) AddUserToBranch(ctx context.Context, branchID string, req dto.AddUserToBranchRequest, actingUserID string) error {
	if err := s.AuthorizeUserAction(ctx, actingUserID, branchID, domain.RoleAdmin); err != nil {
		return err
	}
	membership := domain.UserBranch{
		UserID:   req.UserID,
		BranchID: branchID,
		Role:     req.Role,
		JoinedAt: time.Now(),
	}
	if err := s.branchRepo.AddUserToBranch(ctx, membership); err != nil {
		s.LogError(ctx, err, "Failed to add user to branch",
			slog.String("branch_id", branchID), slog.String("user_id", req.UserID))
		return fmt.Errorf("failed to add user to branch: %w", err)
	}
	s.LogInfo(ctx, "User added to branch",
		slog.String("branch_id", branchID),
		slog.String("user_id", req.UserID),
		slog.String("role", string(req.Role)))
	return nil
}

// AuthorizeUserAction returns nil when the user holds at least requiredRole in
// the branch, apperrors.ErrForbidden otherwise.
func (s *branchService) AuthorizeUserAction(ctx context.Context, userID, branchID string, requiredRole domain.UserBranchRole) error {
	membership, err := s.branchRepo.FindUserBranchRole(ctx, userID, branchID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: user %s is not a member of branch %s", apperrors.ErrForbidden, userID, branchID)
		}
		return fmt.Errorf("failed to check branch membership: %w", err)
	}
	if roleRank[membership.Role] < roleRank[requiredRole] {
		return fmt.Errorf("%w: role %s does not satisfy %s", apperrors.ErrForbidden, membership.Role, requiredRole)
	}
	return nil
}
