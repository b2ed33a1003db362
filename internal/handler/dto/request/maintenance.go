package request

import (
	"time"
)

type ScheduleMaintenanceRequest struct {
	Kind        string    `json:"kind" binding:"required" example:"resurfacing"`
	Description string    `json:"description"`
	StartAt     time.Time `json:"start_at" binding:"required"`
	EndAt       time.Time `json:"end_at" binding:"required"`
}

type UpdateMaintenanceStatusRequest struct {
	Status string `json:"status" binding:"required" example:"in_progress"`
}
