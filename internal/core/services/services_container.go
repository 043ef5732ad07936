package services

import (
	portsrepo "github.com/retailops/branch_backoffice/internal/core/ports/repositories"
	portssvc "github.com/retailops/branch_backoffice/internal/core/ports/services"
	"github.com/retailops/branch_backoffice/internal/platform/config"
)

// NewServiceContainer wires the repositories into the full service graph.
// The branch service doubles as the authorizer for every branch-scoped
// service, so membership checks have a single implementation.
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	branchSvc := NewBranchService(repos.BranchRepo)

	return &portssvc.ServiceContainer{
		Branch: branchSvc,
		Movement: NewMovementService(repos.MovementRepo,
			WithMovementAuthorizer(branchSvc)),
		Reconciliation: NewReconciliationService(repos.MovementRepo,
			WithReconciliationAuthorizer(branchSvc)),
		User:               NewUserService(repos.UserRepo),
		TokenService:       NewTokenService(cfg, repos.UserRepo),
		GoogleOAuthHandler: NewGoogleOAuthHandlerService(cfg),
	}
}
