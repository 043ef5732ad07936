package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/retailops/branch_backoffice/internal/apperrors"
	portssvc "github.com/retailops/branch_backoffice/internal/core/ports/services"
	"github.com/retailops/branch_backoffice/internal/dto"
	"github.com/retailops/branch_backoffice/internal/middleware"
)

// movementHandler handles HTTP requests related to movement records.
type movementHandler struct {
	movementService portssvc.MovementSvcFacade
}

// newMovementHandler creates a new movementHandler.
func newMovementHandler(ms portssvc.MovementSvcFacade) *movementHandler {
	return &movementHandler{movementService: ms}
}

// registerMovementRoutes registers movement routes nested under a branch.
func registerMovementRoutes(rg *gin.RouterGroup, movementService portssvc.MovementSvcFacade) {
	h := newMovementHandler(movementService)

	movements := rg.Group("/movements")
	{
		movements.POST("", h.createMovement)
		movements.GET("", h.listMovements)
		movements.GET("/:movement_id", h.getMovementByID)
		movements.PUT("/:movement_id", h.updateMovement)
		movements.DELETE("/:movement_id", h.deleteMovement)
	}
}

// createMovement godoc
// @Summary Record a financial movement
// @Description Records a financial movement for a branch on a calendar date.
// @Tags movements
// @Accept json
// @Produce json
// @Param branch_id path string true "Branch ID"
// @Param movement body dto.CreateMovementRequest true "Movement details"
// @Success 201 {object} dto.MovementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /branches/{branch_id}/movements [post]
func (h *movementHandler) createMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.Param("branch_id")

	var req dto.CreateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createMovement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	movement, err := h.movementService.CreateMovement(c.Request.Context(), branchID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Member role required"})
		default:
			logger.Error("Failed to create movement", slog.String("error", err.Error()), slog.String("branch_id", branchID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create movement"})
		}
		return
	}
	c.JSON(http.StatusCreated, dto.ToMovementResponse(movement))
}

// listMovements godoc
// @Summary List movements
// @Description Retrieves a cursor-paginated page of movements for a branch, newest first.
// @Tags movements
// @Produce json
// @Param branch_id path string true "Branch ID"
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Cursor from a previous page"
// @Success 200 {object} dto.ListMovementsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /branches/{branch_id}/movements [get]
func (h *movementHandler) listMovements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.Param("branch_id")

	var params dto.ListMovementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	res, err := h.movementService.ListMovements(c.Request.Context(), branchID, userID, params)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid pagination token"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Not a member of this branch"})
		default:
			logger.Error("Failed to list movements", slog.String("error", err.Error()), slog.String("branch_id", branchID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list movements"})
		}
		return
	}
	c.JSON(http.StatusOK, res)
}

// getMovementByID godoc
// @Summary Get a movement
// @Description Retrieves a single movement record within a branch.
// @Tags movements
// @Produce json
// @Param branch_id path string true "Branch ID"
// @Param movement_id path string true "Movement ID"
// @Success 200 {object} dto.MovementResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /branches/{branch_id}/movements/{movement_id} [get]
func (h *movementHandler) getMovementByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.Param("branch_id")
	movementID := c.Param("movement_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	movement, err := h.movementService.GetMovementByID(c.Request.Context(), branchID, movementID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Not a member of this branch"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Movement not found"})
		default:
			logger.Error("Failed to get movement", slog.String("error", err.Error()), slog.String("movement_id", movementID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get movement"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToMovementResponse(movement))
}

// updateMovement godoc
// @Summary Update a movement
// @Description Updates fields of an existing movement record.
// @Tags movements
// @Accept json
// @Produce json
// @Param branch_id path string true "Branch ID"
// @Param movement_id path string true "Movement ID"
// @Param movement body dto.UpdateMovementRequest true "Fields to update"
// @Success 200 {object} dto.MovementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /branches/{branch_id}/movements/{movement_id} [put]
func (h *movementHandler) updateMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.Param("branch_id")
	movementID := c.Param("movement_id")

	var req dto.UpdateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	movement, err := h.movementService.UpdateMovement(c.Request.Context(), branchID, movementID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Member role required"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Movement not found"})
		default:
			logger.Error("Failed to update movement", slog.String("error", err.Error()), slog.String("movement_id", movementID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update movement"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToMovementResponse(movement))
}

// deleteMovement godoc
// @Summary Delete a movement
// @Description Removes a movement record from a branch.
// @Tags movements
// @Produce json
// @Param branch_id path string true "Branch ID"
// @Param movement_id path string true "Movement ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /branches/{branch_id}/movements/{movement_id} [delete]
func (h *movementHandler) deleteMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.Param("branch_id")
	movementID := c.Param("movement_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.movementService.DeleteMovement(c.Request.Context(), branchID, movementID, userID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Member role required"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Movement not found"})
		default:
			logger.Error("Failed to delete movement", slog.String("error", err.Error()), slog.String("movement_id", movementID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete movement"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}
