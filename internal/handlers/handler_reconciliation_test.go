package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/retailops/branch_backoffice/internal/apperrors"
	"github.com/retailops/branch_backoffice/internal/core/domain"
	portssvc "github.com/retailops/branch_backoffice/internal/core/ports/services"
	"github.com/retailops/branch_backoffice/internal/dto"
	"github.com/retailops/branch_backoffice/internal/handlers"
	"github.com/retailops/branch_backoffice/internal/middleware"
)

// --- Mock ReconciliationService ---
type MockReconciliationService struct {
	mock.Mock
}

func (m *MockReconciliationService) ReconcileMonth(ctx context.Context, branchID string, year int, month time.Month, userID string) (*domain.ReconciledMonth, error) {
	args := m.Called(ctx, branchID, year, month, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconciledMonth), args.Error(1)
}

func (m *MockReconciliationService) MonthSummary(ctx context.Context, branchID string, year int, month time.Month, userID string) (*domain.ReconciledMonth, domain.MonthSummary, error) {
	args := m.Called(ctx, branchID, year, month, userID)
	if args.Get(0) == nil {
		return nil, domain.MonthSummary{}, args.Error(2)
	}
	return args.Get(0).(*domain.ReconciledMonth), args.Get(1).(domain.MonthSummary), args.Error(2)
}

func (m *MockReconciliationService) MonthExportRows(ctx context.Context, branchID string, year int, month time.Month, userID string) ([]domain.ExportRow, error) {
	args := m.Called(ctx, branchID, year, month, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExportRow), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.ReconciliationSvcFacade = (*MockReconciliationService)(nil)

// --- Test Suite ---
type ReconciliationHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockReconciliationService
	jwtSecret   string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *ReconciliationHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "backoffice-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signedString
}

func (suite *ReconciliationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockService = new(MockReconciliationService)

	branchGroup := suite.router.Group("/api/v1/branches/:branch_id")
	handlers.RegisterReconciliationRoutes(branchGroup, suite.mockService)
}

// reconciledMarch builds a minimal but internally consistent reconciled month
// for March of the given year.
func reconciledMarch(branchID string, year int) *domain.ReconciledMonth {
	days := make(domain.MonthGrid, 0, 31)
	accumulated := decimal.Zero
	for d := 1; d <= 31; d++ {
		day := domain.ZeroDaySummary(time.Date(year, time.March, d, 0, 0, 0, 0, time.UTC))
		if d == 1 {
			day.GrossSales = decimal.NewFromInt(500)
			day.Expenses = decimal.NewFromInt(120)
			day.DayBalance = decimal.NewFromInt(380)
		}
		accumulated = accumulated.Add(day.DayBalance).Sub(day.ManualDeposit)
		day.AccumulatedBalance = accumulated
		days = append(days, day)
	}
	return &domain.ReconciledMonth{
		BranchID: branchID,
		Year:     year,
		Month:    time.March,
		Days:     days,
		Totals: domain.MonthTotals{
			GrossSales:               decimal.NewFromInt(500),
			Expenses:                 decimal.NewFromInt(120),
			EndingAccumulatedBalance: decimal.NewFromInt(380),
		},
	}
}

// --- Test Cases ---

func (suite *ReconciliationHandlerTestSuite) TestGetMonthGrid_Success() {
	branchID := uuid.NewString()
	userID := uuid.NewString()
	expected := reconciledMarch(branchID, 2024)

	suite.mockService.On("ReconcileMonth",
		mock.Anything, branchID, 2024, time.March, userID,
	).Return(expected, nil).Once()

	url := fmt.Sprintf("/api/v1/branches/%s/reconciliation/2024-03", branchID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Accept", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var responseBody dto.ReconciledMonthResponse
	err := json.Unmarshal(w.Body.Bytes(), &responseBody)
	suite.NoError(err, "Failed to unmarshal response body")
	suite.Equal(branchID, responseBody.BranchID)
	suite.Equal("2024-03", responseBody.Month)
	suite.Len(responseBody.Days, 31)
	suite.Equal("2024-03-01", responseBody.Days[0].Date)
	suite.True(responseBody.Days[0].DayBalance.Equal(decimal.NewFromInt(380)))
	suite.True(responseBody.Days[30].AccumulatedBalance.Equal(decimal.NewFromInt(380)),
		"carried balance should survive the empty tail of the month")
	suite.True(responseBody.Totals.EndingAccumulatedBalance.Equal(decimal.NewFromInt(380)))

	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ReconciliationHandlerTestSuite) TestGetMonthGrid_BadMonthParam() {
	branchID := uuid.NewString()
	userID := uuid.NewString()

	url := fmt.Sprintf("/api/v1/branches/%s/reconciliation/03-2024", branchID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "ReconcileMonth")
}

func (suite *ReconciliationHandlerTestSuite) TestGetMonthGrid_Forbidden() {
	branchID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockService.On("ReconcileMonth",
		mock.Anything, branchID, 2024, time.March, userID,
	).Return(nil, fmt.Errorf("%w: user is not a member", apperrors.ErrForbidden)).Once()

	url := fmt.Sprintf("/api/v1/branches/%s/reconciliation/2024-03", branchID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ReconciliationHandlerTestSuite) TestGetMonthGrid_MissingToken() {
	branchID := uuid.NewString()

	url := fmt.Sprintf("/api/v1/branches/%s/reconciliation/2024-03", branchID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "ReconcileMonth")
}

func (suite *ReconciliationHandlerTestSuite) TestGetMonthSummary_Success() {
	branchID := uuid.NewString()
	userID := uuid.NewString()
	reconciled := reconciledMarch(branchID, 2024)
	summary := domain.MonthSummary{
		TotalSales:                   decimal.NewFromInt(500),
		TotalExpenses:                decimal.NewFromInt(120),
		NetBalance:                   decimal.NewFromInt(380),
		AccumulatedBalanceEndOfMonth: decimal.NewFromInt(380),
		DayCount:                     31,
	}

	suite.mockService.On("MonthSummary",
		mock.Anything, branchID, 2024, time.March, userID,
	).Return(reconciled, summary, nil).Once()

	url := fmt.Sprintf("/api/v1/branches/%s/reconciliation/2024-03/summary", branchID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var responseBody dto.MonthSummaryResponse
	err := json.Unmarshal(w.Body.Bytes(), &responseBody)
	suite.NoError(err, "Failed to unmarshal response body")
	suite.Equal("2024-03", responseBody.Month)
	suite.True(responseBody.TotalSales.Equal(decimal.NewFromInt(500)))
	suite.True(responseBody.NetBalance.Equal(decimal.NewFromInt(380)))
	suite.Equal(31, responseBody.DayCount)

	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ReconciliationHandlerTestSuite) TestExportMonth_Success() {
	branchID := uuid.NewString()
	userID := uuid.NewString()
	rows := []domain.ExportRow{
		{
			Date:               "2024-03-01",
			GrossSales:         decimal.NewFromInt(500),
			Expenses:           decimal.NewFromInt(120),
			DayBalance:         decimal.NewFromInt(380),
			AccumulatedBalance: decimal.NewFromInt(380),
		},
	}

	suite.mockService.On("MonthExportRows",
		mock.Anything, branchID, 2024, time.March, userID,
	).Return(rows, nil).Once()

	url := fmt.Sprintf("/api/v1/branches/%s/reconciliation/2024-03/export", branchID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	suite.Contains(w.Header().Get("Content-Disposition"), "reconciliation-"+branchID+"-2024-03.xlsx")
	suite.NotZero(w.Body.Len(), "workbook body should not be empty")

	suite.mockService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestReconciliationHandler(t *testing.T) {
	suite.Run(t, new(ReconciliationHandlerTestSuite))
}
