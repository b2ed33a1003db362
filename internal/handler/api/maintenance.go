package api

import (
	"errors"
	"net/http"

	"courtside/internal/domain/maintenance"
	reqdto "courtside/internal/handler/dto/request"
	resdto "courtside/internal/handler/dto/response"
	"courtside/internal/handler/middleware"
	"courtside/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MaintenanceHandler struct {
	maintenanceCommands commands.MaintenanceCommands
}

func NewMaintenanceHandler(maintenanceCommands commands.MaintenanceCommands) *MaintenanceHandler {
	return &MaintenanceHandler{
		maintenanceCommands: maintenanceCommands,
	}
}

// @Summary Schedule maintenance
// @Description Block a court for a datetime span; overlapping confirmed reservations are reported as warnings
// @Tags maintenance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Court ID"
// @Param request body reqdto.ScheduleMaintenanceRequest true "Maintenance window"
// @Success 201 {object} resdto.ScheduleMaintenanceResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /courts/{id}/maintenance [post]
func (h *MaintenanceHandler) ScheduleMaintenance(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	courtID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid court ID format",
		})
		return
	}

	var req reqdto.ScheduleMaintenanceRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.maintenanceCommands.ScheduleMaintenance(
		c.Request.Context(), actor, courtID, req.Kind, req.Description, req.StartAt, req.EndAt,
	)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrCourtNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Court not found",
			})
		case errors.Is(err, commands.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Not allowed to manage this court",
			})
		case errors.Is(err, commands.ErrInvalidWindow):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Invalid maintenance window",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromScheduleMaintenanceResult(result))
}

// @Summary Update maintenance status
// @Description Advance a maintenance window (scheduled -> in_progress -> completed)
// @Tags maintenance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Maintenance window ID"
// @Param request body reqdto.UpdateMaintenanceStatusRequest true "New status"
// @Success 200 {object} resdto.MaintenanceWindowResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /maintenance/{id} [patch]
func (h *MaintenanceHandler) UpdateStatus(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	windowID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid maintenance window ID format",
		})
		return
	}

	var req reqdto.UpdateMaintenanceStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	window, err := h.maintenanceCommands.UpdateStatus(
		c.Request.Context(), actor, windowID, maintenance.Status(req.Status),
	)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrWindowNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Maintenance window not found",
			})
		case errors.Is(err, commands.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Not allowed to manage maintenance",
			})
		case errors.Is(err, commands.ErrInvalidStatusChange):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Maintenance status can only move forward",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromMaintenanceWindow(window))
}
