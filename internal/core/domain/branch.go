package domain

import "time"

// Branch represents a physical store location. All financial data is scoped to
// exactly one branch.
type Branch struct {
	BranchID    string `json:"branchID"` // Primary Key (UUID)
	Name        string `json:"name"`
	Address     string `json:"address"`
	IsActive    bool   `json:"isActive"`
	AuditFields        // Embed common audit fields
}

// UserBranchRole defines the possible roles a user can have within a branch.
type UserBranchRole string

const (
	RoleAdmin    UserBranchRole = "ADMIN"
	RoleMember   UserBranchRole = "MEMBER"
	RoleReadOnly UserBranchRole = "READONLY"
	RoleRemoved  UserBranchRole = "REMOVED" // For users who have been removed from the branch
)

// UserBranch represents the membership of a User in a Branch.
type UserBranch struct {
	UserID   string         `json:"userID"`
	UserName string         `json:"userName"`
	BranchID string         `json:"branchID"`
	Role     UserBranchRole `json:"role"`
	JoinedAt time.Time      `json:"joinedAt"`
}
