package dto

import (
	"time"

	"github.com/retailops/branch_backoffice/internal/core/domain"
)

// CreateBranchRequest defines the data needed to create a new branch.
type CreateBranchRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}

// UpdateBranchRequest defines the data allowed for updating a branch.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateBranchRequest struct {
	Name     *string `json:"name"`
	Address  *string `json:"address"`
	IsActive *bool   `json:"isActive"`
}

// AddUserToBranchRequest assigns a user to a branch with a role.
type AddUserToBranchRequest struct {
	UserID string                `json:"userID" binding:"required"`
	Role   domain.UserBranchRole `json:"role" binding:"required,oneof=ADMIN MEMBER READONLY"`
}

// BranchResponse defines the data returned for a branch.
type BranchResponse struct {
	BranchID      string    `json:"branchID"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ListBranchesResponse wraps the list of branches.
type ListBranchesResponse struct {
	Branches []BranchResponse `json:"branches"`
}

// ToBranchResponse converts a domain.Branch to a BranchResponse DTO
func ToBranchResponse(b *domain.Branch) BranchResponse {
	return BranchResponse{
		BranchID:      b.BranchID,
		Name:          b.Name,
		Address:       b.Address,
		IsActive:      b.IsActive,
		CreatedAt:     b.CreatedAt,
		CreatedBy:     b.CreatedBy,
		LastUpdatedAt: b.LastUpdatedAt,
		LastUpdatedBy: b.LastUpdatedBy,
	}
}

// ToListBranchesResponse converts a slice of domain.Branch to the list DTO
func ToListBranchesResponse(branches []domain.Branch) ListBranchesResponse {
	res := ListBranchesResponse{Branches: make([]BranchResponse, len(branches))}
	for i, b := range branches {
		res.Branches[i] = ToBranchResponse(&b)
	}
	return res
}
