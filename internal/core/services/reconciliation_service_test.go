package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/retailops/branch_backoffice/internal/apperrors"
	"github.com/retailops/branch_backoffice/internal/core/domain"
	portssvc "github.com/retailops/branch_backoffice/internal/core/ports/services"
	"github.com/retailops/branch_backoffice/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock MovementReaderRepository ---
type MockMovementReaderRepository struct {
	mock.Mock
}

func (m *MockMovementReaderRepository) FindMovementByID(ctx context.Context, branchID, movementID string) (*domain.MovementRecord, error) {
	args := m.Called(ctx, branchID, movementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MovementRecord), args.Error(1)
}

func (m *MockMovementReaderRepository) FindMovementsForMonth(ctx context.Context, branchID string, year int, month time.Month) ([]domain.MovementRecord, error) {
	args := m.Called(ctx, branchID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MovementRecord), args.Error(1)
}

func (m *MockMovementReaderRepository) ListMovements(ctx context.Context, branchID string, limit int, nextToken string) ([]domain.MovementRecord, string, error) {
	args := m.Called(ctx, branchID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]domain.MovementRecord), args.String(1), args.Error(2)
}

// --- Mock BranchAuthorizer ---
type MockBranchAuthorizer struct {
	mock.Mock
}

func (m *MockBranchAuthorizer) AuthorizeUserAction(ctx context.Context, userID, branchID string, requiredRole domain.UserBranchRole) error {
	args := m.Called(ctx, userID, branchID, requiredRole)
	return args.Error(0)
}

// --- Test Suite ---
type ReconciliationServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockMovementReaderRepository
	mockAuthorizer *MockBranchAuthorizer
	service        portssvc.ReconciliationSvcFacade
}

func (suite *ReconciliationServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockMovementReaderRepository)
	suite.mockAuthorizer = new(MockBranchAuthorizer)
	suite.service = services.NewReconciliationService(suite.mockRepo,
		services.WithReconciliationAuthorizer(suite.mockAuthorizer))
}

func movementOn(branchID string, date time.Time, mutate func(*domain.MovementRecord)) domain.MovementRecord {
	m := domain.MovementRecord{
		MovementID: uuid.NewString(),
		BranchID:   branchID,
		Date:       domain.NormalizeDate(date),
	}
	if mutate != nil {
		mutate(&m)
	}
	return m
}

// --- Test Cases ---

func (suite *ReconciliationServiceTestSuite) TestReconcileMonth_Success() {
	ctx := context.Background()
	branchID := uuid.NewString()
	userID := uuid.NewString()

	records := []domain.MovementRecord{
		movementOn(branchID, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), func(m *domain.MovementRecord) {
			m.GrossSales = decimal.NewFromInt(700)
			m.Expenses = decimal.NewFromInt(300)
		}),
		movementOn(branchID, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), func(m *domain.MovementRecord) {
			m.Credit = decimal.NewFromInt(100)
		}),
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, userID, branchID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockRepo.On("FindMovementsForMonth", ctx, branchID, 2024, time.March).Return(records, nil).Once()

	reconciled, err := suite.service.ReconcileMonth(ctx, branchID, 2024, time.March, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(reconciled)
	suite.Equal(branchID, reconciled.BranchID)
	suite.Len(reconciled.Days, 31)
	suite.True(reconciled.Days[0].DayBalance.Equal(decimal.NewFromInt(400)))
	suite.True(reconciled.Days[4].DayBalance.Equal(decimal.NewFromInt(-100)))
	suite.True(reconciled.Days[30].AccumulatedBalance.Equal(decimal.NewFromInt(300)))
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockAuthorizer.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestReconcileMonth_EmptyMonth() {
	ctx := context.Background()
	branchID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, userID, branchID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockRepo.On("FindMovementsForMonth", ctx, branchID, 2023, time.February).Return([]domain.MovementRecord{}, nil).Once()

	reconciled, err := suite.service.ReconcileMonth(ctx, branchID, 2023, time.February, userID)

	suite.Require().NoError(err)
	suite.Len(reconciled.Days, 28)
	for _, day := range reconciled.Days {
		suite.True(day.AccumulatedBalance.IsZero())
	}
}

func (suite *ReconciliationServiceTestSuite) TestReconcileMonth_Forbidden() {
	ctx := context.Background()
	branchID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, userID, branchID, domain.RoleReadOnly).
		Return(apperrors.ErrForbidden).Once()

	reconciled, err := suite.service.ReconcileMonth(ctx, branchID, 2024, time.March, userID)

	suite.Require().Error(err)
	suite.Nil(reconciled)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindMovementsForMonth")
}

func (suite *ReconciliationServiceTestSuite) TestReconcileMonth_RepoError() {
	ctx := context.Background()
	branchID := uuid.NewString()
	userID := uuid.NewString()
	expectedErr := assert.AnError

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, userID, branchID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockRepo.On("FindMovementsForMonth", ctx, branchID, 2024, time.March).Return(nil, expectedErr).Once()

	reconciled, err := suite.service.ReconcileMonth(ctx, branchID, 2024, time.March, userID)

	suite.Require().Error(err)
	suite.Nil(reconciled)
	suite.ErrorIs(err, expectedErr)
}

func (suite *ReconciliationServiceTestSuite) TestReconcileMonth_InvalidMonth() {
	ctx := context.Background()
	branchID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, userID, branchID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockRepo.On("FindMovementsForMonth", ctx, branchID, 2024, time.Month(13)).Return([]domain.MovementRecord{}, nil).Once()

	reconciled, err := suite.service.ReconcileMonth(ctx, branchID, 2024, time.Month(13), userID)

	suite.Require().Error(err)
	suite.Nil(reconciled)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReconciliationServiceTestSuite) TestMonthSummary_MatchesReconciledMonth() {
	ctx := context.Background()
	branchID := uuid.NewString()
	userID := uuid.NewString()

	records := []domain.MovementRecord{
		movementOn(branchID, time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC), func(m *domain.MovementRecord) {
			m.GrossSales = decimal.NewFromInt(1000)
			m.Expenses = decimal.NewFromInt(250)
		}),
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, userID, branchID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockRepo.On("FindMovementsForMonth", ctx, branchID, 2024, time.April).Return(records, nil).Once()

	reconciled, summary, err := suite.service.MonthSummary(ctx, branchID, 2024, time.April, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(reconciled)
	suite.True(summary.TotalSales.Equal(decimal.NewFromInt(1000)))
	suite.True(summary.TotalExpenses.Equal(decimal.NewFromInt(250)))
	suite.True(summary.NetBalance.Equal(decimal.NewFromInt(750)))
	suite.True(summary.AccumulatedBalanceEndOfMonth.Equal(reconciled.Totals.EndingAccumulatedBalance))
	suite.Equal(30, summary.DayCount)
}

func (suite *ReconciliationServiceTestSuite) TestMonthExportRows_OneRowPerDay() {
	ctx := context.Background()
	branchID := uuid.NewString()
	userID := uuid.NewString()

	records := []domain.MovementRecord{
		movementOn(branchID, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), func(m *domain.MovementRecord) {
			m.GrossSales = decimal.NewFromFloat(123.456)
		}),
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, userID, branchID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockRepo.On("FindMovementsForMonth", ctx, branchID, 2024, time.February).Return(records, nil).Once()

	rows, err := suite.service.MonthExportRows(ctx, branchID, 2024, time.February, userID)

	suite.Require().NoError(err)
	suite.Len(rows, 29)
	suite.Equal("2024-02-01", rows[0].Date)
	suite.Equal("2024-02-29", rows[28].Date)
	suite.True(rows[28].GrossSales.Equal(decimal.NewFromFloat(123.46)))
}

func TestReconciliationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}
