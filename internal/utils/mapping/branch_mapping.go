package mapping

import (
	"github.com/retailops/branch_backoffice/internal/core/domain"
	"github.com/retailops/branch_backoffice/internal/models"
)

// ToModelBranch converts a domain Branch to a model Branch
func ToModelBranch(d domain.Branch) models.Branch {
	return models.Branch{
		BranchID:    d.BranchID,
		Name:        d.Name,
		Address:     d.Address,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBranch converts a model Branch to a domain Branch
func ToDomainBranch(m models.Branch) domain.Branch {
	return domain.Branch{
		BranchID:    m.BranchID,
		Name:        m.Name,
		Address:     m.Address,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBranchSlice converts a slice of model Branches to domain Branches
func ToDomainBranchSlice(ms []models.Branch) []domain.Branch {
	ds := make([]domain.Branch, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBranch(m)
	}
	return ds
}
