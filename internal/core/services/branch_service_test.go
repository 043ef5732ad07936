package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/retailops/branch_backoffice/internal/apperrors"
	"github.com/retailops/branch_backoffice/internal/core/domain"
	portssvc "github.com/retailops/branch_backoffice/internal/core/ports/services"
	"github.com/retailops/branch_backoffice/internal/core/services"
	"github.com/retailops/branch_backoffice/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock BranchRepository ---
type MockBranchRepository struct {
	mock.Mock
}

func (m *MockBranchRepository) FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Branch), args.Error(1)
}

func (m *MockBranchRepository) ListBranches(ctx context.Context, limit, offset int) ([]domain.Branch, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Branch), args.Error(1)
}

func (m *MockBranchRepository) SaveBranch(ctx context.Context, branch domain.Branch) error {
	args := m.Called(ctx, branch)
	return args.Error(0)
}

func (m *MockBranchRepository) UpdateBranch(ctx context.Context, branch domain.Branch) error {
	args := m.Called(ctx, branch)
	return args.Error(0)
}

func (m *MockBranchRepository) AddUserToBranch(ctx context.Context, membership domain.UserBranch) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockBranchRepository) FindUserBranchRole(ctx context.Context, userID, branchID string) (*domain.UserBranch, error) {
	args := m.Called(ctx, userID, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserBranch), args.Error(1)
}

func (m *MockBranchRepository) ListUserBranches(ctx context.Context, userID string) ([]domain.UserBranch, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserBranch), args.Error(1)
}

// --- Test Suite ---
type BranchServiceTestSuite struct {
	suite.Suite
	mockRepo *MockBranchRepository
	service  portssvc.BranchSvcFacade
}

func (suite *BranchServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockBranchRepository)
	suite.service = services.NewBranchService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *BranchServiceTestSuite) TestCreateBranch_CreatorBecomesAdmin() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateBranchRequest{Name: "Downtown", Address: "1 Main St"}

	suite.mockRepo.On("SaveBranch", ctx, mock.MatchedBy(func(b domain.Branch) bool {
		return b.Name == req.Name && b.IsActive && b.CreatedBy == creatorUserID
	})).Return(nil).Once()
	suite.mockRepo.On("AddUserToBranch", ctx, mock.MatchedBy(func(ub domain.UserBranch) bool {
		return ub.UserID == creatorUserID && ub.Role == domain.RoleAdmin
	})).Return(nil).Once()

	branch, err := suite.service.CreateBranch(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(branch)
	suite.NotEmpty(branch.BranchID)
	suite.Equal("Downtown", branch.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BranchServiceTestSuite) TestAuthorizeUserAction_RoleHierarchy() {
	ctx := context.Background()
	userID := uuid.NewString()
	branchID := uuid.NewString()

	membership := &domain.UserBranch{UserID: userID, BranchID: branchID, Role: domain.RoleMember}
	suite.mockRepo.On("FindUserBranchRole", ctx, userID, branchID).Return(membership, nil)

	suite.NoError(suite.service.AuthorizeUserAction(ctx, userID, branchID, domain.RoleReadOnly))
	suite.NoError(suite.service.AuthorizeUserAction(ctx, userID, branchID, domain.RoleMember))

	err := suite.service.AuthorizeUserAction(ctx, userID, branchID, domain.RoleAdmin)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *BranchServiceTestSuite) TestAuthorizeUserAction_NonMember() {
	ctx := context.Background()
	userID := uuid.NewString()
	branchID := uuid.NewString()

	suite.mockRepo.On("FindUserBranchRole", ctx, userID, branchID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.AuthorizeUserAction(ctx, userID, branchID, domain.RoleReadOnly)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *BranchServiceTestSuite) TestUpdateBranch_RequiresAdmin() {
	ctx := context.Background()
	userID := uuid.NewString()
	branchID := uuid.NewString()
	newName := "Renamed"

	membership := &domain.UserBranch{UserID: userID, BranchID: branchID, Role: domain.RoleReadOnly}
	suite.mockRepo.On("FindUserBranchRole", ctx, userID, branchID).Return(membership, nil).Once()

	branch, err := suite.service.UpdateBranch(ctx, branchID, dto.UpdateBranchRequest{Name: &newName}, userID)

	suite.Require().Error(err)
	suite.Nil(branch)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateBranch")
}

func (suite *BranchServiceTestSuite) TestDeactivateBranch_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	branchID := uuid.NewString()

	membership := &domain.UserBranch{UserID: userID, BranchID: branchID, Role: domain.RoleAdmin}
	existing := &domain.Branch{BranchID: branchID, Name: "Downtown", IsActive: true}

	suite.mockRepo.On("FindUserBranchRole", ctx, userID, branchID).Return(membership, nil).Once()
	suite.mockRepo.On("FindBranchByID", ctx, branchID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateBranch", ctx, mock.MatchedBy(func(b domain.Branch) bool {
		return b.BranchID == branchID && !b.IsActive
	})).Return(nil).Once()

	err := suite.service.DeactivateBranch(ctx, branchID, userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestBranchServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BranchServiceTestSuite))
}
