package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/retailops/branch_backoffice/internal/apperrors"
	portssvc "github.com/retailops/branch_backoffice/internal/core/ports/services"
	"github.com/retailops/branch_backoffice/internal/dto"
	"github.com/retailops/branch_backoffice/internal/middleware"
	"github.com/retailops/branch_backoffice/internal/utils/export"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// reconciliationHandler handles HTTP requests for reconciled month views.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
}

// newReconciliationHandler creates a new reconciliationHandler.
func newReconciliationHandler(rs portssvc.ReconciliationSvcFacade) *reconciliationHandler {
	return &reconciliationHandler{reconciliationService: rs}
}

// RegisterReconciliationRoutes registers reconciliation routes nested under a branch.
func RegisterReconciliationRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := newReconciliationHandler(reconciliationService)

	reconciliation := rg.Group("/reconciliation/:month")
	{
		reconciliation.GET("", h.getMonthGrid)
		reconciliation.GET("/summary", h.getMonthSummary)
		reconciliation.GET("/export", h.exportMonth)
	}
}

// parseMonthParam parses the :month path parameter in YYYY-MM format.
func parseMonthParam(value string) (int, time.Month, error) {
	parsed, err := time.Parse("2006-01", value)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: month must be in YYYY-MM format, got %q", apperrors.ErrValidation, value)
	}
	return parsed.Year(), parsed.Month(), nil
}

// getMonthGrid godoc
// @Summary Get the reconciled month grid
// @Description Returns every calendar day of the month with per-day and carried-forward balances. Days without movements appear with zero amounts.
// @Tags reconciliation
// @Produce json
// @Param branch_id path string true "Branch ID"
// @Param month path string true "Month (YYYY-MM)"
// @Success 200 {object} dto.ReconciledMonthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /branches/{branch_id}/reconciliation/{month} [get]
func (h *reconciliationHandler) getMonthGrid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.Param("branch_id")

	year, month, err := parseMonthParam(c.Param("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	reconciled, err := h.reconciliationService.ReconcileMonth(c.Request.Context(), branchID, year, month, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Not a member of this branch"})
		default:
			logger.Error("Failed to reconcile month", slog.String("error", err.Error()), slog.String("branch_id", branchID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to reconcile month"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToReconciledMonthResponse(reconciled))
}

// getMonthSummary godoc
// @Summary Get the month summary cards
// @Description Returns the on-screen totals (sales, expenses, net, end-of-month accumulated balance) for a reconciled month.
// @Tags reconciliation
// @Produce json
// @Param branch_id path string true "Branch ID"
// @Param month path string true "Month (YYYY-MM)"
// @Success 200 {object} dto.MonthSummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /branches/{branch_id}/reconciliation/{month}/summary [get]
func (h *reconciliationHandler) getMonthSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.Param("branch_id")

	year, month, err := parseMonthParam(c.Param("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	reconciled, summary, err := h.reconciliationService.MonthSummary(c.Request.Context(), branchID, year, month, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Not a member of this branch"})
		default:
			logger.Error("Failed to build month summary", slog.String("error", err.Error()), slog.String("branch_id", branchID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build month summary"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToMonthSummaryResponse(reconciled, summary))
}

// exportMonth godoc
// @Summary Export the reconciled month
// @Description Streams the reconciled month as an xlsx workbook, one row per day with display-rounded figures.
// @Tags reconciliation
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param branch_id path string true "Branch ID"
// @Param month path string true "Month (YYYY-MM)"
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /branches/{branch_id}/reconciliation/{month}/export [get]
func (h *reconciliationHandler) exportMonth(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.Param("branch_id")
	monthParam := c.Param("month")

	year, month, err := parseMonthParam(monthParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	rows, err := h.reconciliationService.MonthExportRows(c.Request.Context(), branchID, year, month, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Not a member of this branch"})
		default:
			logger.Error("Failed to build month export", slog.String("error", err.Error()), slog.String("branch_id", branchID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build month export"})
		}
		return
	}

	filename := fmt.Sprintf("reconciliation-%s-%s.xlsx", branchID, monthParam)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", xlsxContentType)

	if err := export.WriteMonthWorkbook(c.Writer, rows); err != nil {
		logger.Error("Failed to stream month workbook", slog.String("error", err.Error()), slog.String("branch_id", branchID))
	}
}
