package api

import (
	"errors"
	"net/http"
	"time"

	"courtside/internal/domain/court"
	reqdto "courtside/internal/handler/dto/request"
	"courtside/internal/handler/middleware"
	"courtside/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ScheduleHandler struct {
	scheduleCommands commands.ScheduleCommands
}

func NewScheduleHandler(scheduleCommands commands.ScheduleCommands) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleCommands: scheduleCommands,
	}
}

// @Summary Replace week schedule
// @Description Replace the whole weekly operating calendar of a court
// @Tags schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Court ID"
// @Param request body reqdto.ReplaceScheduleRequest true "Weekly schedule"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /courts/{id}/schedule [put]
func (h *ScheduleHandler) ReplaceWeekSchedule(c *gin.Context) {
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

	var req reqdto.ReplaceScheduleRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	entries, err := toScheduleEntries(req.Entries)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid time format in schedule entry, expected HH:MM",
		})
		return
	}

	err = h.scheduleCommands.ReplaceWeekSchedule(c.Request.Context(), actor, courtID, entries)
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
		case errors.Is(err, commands.ErrInvalidScheduleEntry):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Invalid schedule entry",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func toScheduleEntries(reqs []reqdto.ScheduleEntryRequest) ([]commands.ScheduleEntryRow, error) {
	entries := make([]commands.ScheduleEntryRow, 0, len(reqs))
	for _, r := range reqs {
		entry := commands.ScheduleEntryRow{
			Weekday: time.Weekday(r.DayOfWeek),
			Closed:  r.Closed,
		}
		if !r.Closed {
			open, err := court.ParseTimeOfDay(r.Open)
			if err != nil {
				return nil, err
			}
			closeAt, err := court.ParseTimeOfDay(r.Close)
			if err != nil {
				return nil, err
			}
			entry.Open, entry.Close = open, closeAt
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
