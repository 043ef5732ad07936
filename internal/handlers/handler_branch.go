package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/retailops/branch_backoffice/internal/apperrors"
	portssvc "github.com/retailops/branch_backoffice/internal/core/ports/services"
	"github.com/retailops/branch_backoffice/internal/dto"
	"github.com/retailops/branch_backoffice/internal/middleware"
)

// branchHandler handles HTTP requests related to branches.
type branchHandler struct {
	branchService portssvc.BranchSvcFacade
}

// newBranchHandler creates a new branchHandler.
func newBranchHandler(bs portssvc.BranchSvcFacade) *branchHandler {
	return &branchHandler{branchService: bs}
}

// registerBranchRoutes registers routes related to branches and their members.
// Movement and reconciliation routes are nested under a specific branch.
func registerBranchRoutes(rg *gin.RouterGroup, branchService portssvc.BranchSvcFacade, movementService portssvc.MovementSvcFacade, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := newBranchHandler(branchService)

	branchesTopLevel := rg.Group("/branches")
	{
		branchesTopLevel.POST("", h.createBranch)
		branchesTopLevel.GET("", h.listBranches)
	}

	branchSpecific := rg.Group("/branches/:branch_id")
	{
		branchSpecific.GET("", h.getBranchByID)
		branchSpecific.PUT("", h.updateBranch)
		branchSpecific.DELETE("", h.deactivateBranch)

		branchUsers := branchSpecific.Group("/users")
		{
			branchUsers.POST("", h.addUserToBranch)
		}

		registerMovementRoutes(branchSpecific, movementService)
		RegisterReconciliationRoutes(branchSpecific, reconciliationService)
	}
}

// createBranch godoc
// @Summary Create a new branch
// @Description Creates a new branch and assigns the creator as admin.
// @Tags branches
// @Accept json
// @Produce json
// @Param branch body dto.CreateBranchRequest true "Branch details"
// @Success 201 {object} dto.BranchResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /branches [post]
func (h *branchHandler) createBranch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createBranch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	branch, err := h.branchService.CreateBranch(c.Request.Context(), req, creatorUserID)
	if err != nil {
		logger.Error("Failed to create branch", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create branch"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToBranchResponse(branch))
}

// listBranches godoc
// @Summary List branches
// @Description Retrieves a paginated list of branches.
// @Tags branches
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListBranchesResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /branches [get]
func (h *branchHandler) listBranches(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	branches, err := h.branchService.ListBranches(c.Request.Context(), limit, offset)
	if err != nil {
		logger.Error("Failed to list branches", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list branches"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListBranchesResponse(branches))
}

// getBranchByID godoc
// @Summary Get a branch
// @Description Retrieves a branch the calling user belongs to.
// @Tags branches
// @Produce json
// @Param branch_id path string true "Branch ID"
// @Success 200 {object} dto.BranchResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /branches/{branch_id} [get]
func (h *branchHandler) getBranchByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.Param("branch_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	branch, err := h.branchService.GetBranchByID(c.Request.Context(), branchID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Not a member of this branch"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Branch not found"})
		default:
			logger.Error("Failed to get branch", slog.String("error", err.Error()), slog.String("branch_id", branchID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get branch"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToBranchResponse(branch))
}

// updateBranch godoc
// @Summary Update a branch
// @Description Updates branch details; requires admin role in the branch.
// @Tags branches
// @Accept json
// @Produce json
// @Param branch_id path string true "Branch ID"
// @Param branch body dto.UpdateBranchRequest true "Fields to update"
// @Success 200 {object} dto.BranchResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /branches/{branch_id} [put]
func (h *branchHandler) updateBranch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.Param("branch_id")

	var req dto.UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	branch, err := h.branchService.UpdateBranch(c.Request.Context(), branchID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Admin role required"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Branch not found"})
		default:
			logger.Error("Failed to update branch", slog.String("error", err.Error()), slog.String("branch_id", branchID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update branch"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToBranchResponse(branch))
}

// deactivateBranch godoc
// @Summary Deactivate a branch
// @Description Marks a branch inactive; requires admin role in the branch.
// @Tags branches
// @Produce json
// @Param branch_id path string true "Branch ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /branches/{branch_id} [delete]
func (h *branchHandler) deactivateBranch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.Param("branch_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.branchService.DeactivateBranch(c.Request.Context(), branchID, userID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Admin role required"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Branch not found"})
		default:
			logger.Error("Failed to deactivate branch", slog.String("error", err.Error()), slog.String("branch_id", branchID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to deactivate branch"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// addUserToBranch godoc
// @Summary Add a user to a branch
// @Description Adds a user to a branch with a role (requires admin role in the branch).
// @Tags branches
// @Accept json
// @Produce json
// @Param branch_id path string true "Branch ID"
// @Param membership body dto.AddUserToBranchRequest true "User ID and Role"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /branches/{branch_id}/users [post]
func (h *branchHandler) addUserToBranch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.Param("branch_id")

	var req dto.AddUserToBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.branchService.AddUserToBranch(c.Request.Context(), branchID, req, actingUserID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Admin role required"})
		default:
			logger.Error("Failed to add user to branch", slog.String("error", err.Error()),
				slog.String("branch_id", branchID), slog.String("target_user_id", req.UserID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to add user to branch"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}
