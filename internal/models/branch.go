package models

// Branch represents a store branch row.
type Branch struct {
	BranchID string `db:"branch_id"`
	Name     string `db:"name"`
	Address  string `db:"address"`
	IsActive bool   `db:"is_active"`
	AuditFields
}

// UserBranch represents a user's membership row in a branch.
type UserBranch struct {
	UserID   string `db:"user_id"`
	BranchID string `db:"branch_id"`
	Role     string `db:"role"`
}
