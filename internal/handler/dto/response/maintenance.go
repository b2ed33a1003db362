package response

import (
	"time"

	"courtside/internal/domain/maintenance"
	"courtside/internal/usecase/commands"

	"github.com/google/uuid"
)

type MaintenanceWindowResponse struct {
	ID          uuid.UUID `json:"id"`
	CourtID     uuid.UUID `json:"court_id"`
	Kind        string    `json:"kind"`
	Description string    `json:"description,omitempty"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
	Status      string    `json:"status"`
}

func FromMaintenanceWindow(w *maintenance.Window) *MaintenanceWindowResponse {
	return &MaintenanceWindowResponse{
		ID:          w.ID(),
		CourtID:     w.CourtID(),
		Kind:        w.Kind(),
		Description: w.Description(),
		StartAt:     w.StartAt(),
		EndAt:       w.EndAt(),
		Status:      w.Status().String(),
	}
}

type ConflictWarningResponse struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	Date          string    `json:"date"`
	Slot          string    `json:"slot"`
}

type ScheduleMaintenanceResponse struct {
	Window   *MaintenanceWindowResponse `json:"window"`
	Warnings []ConflictWarningResponse  `json:"warnings"`
}

func FromScheduleMaintenanceResult(result *commands.ScheduleMaintenanceResult) *ScheduleMaintenanceResponse {
	warnings := make([]ConflictWarningResponse, 0, len(result.Warnings))
	for _, w := range result.Warnings {
		warnings = append(warnings, ConflictWarningResponse{
			ReservationID: w.ReservationID,
			Date:          w.Date.String(),
			Slot:          w.Slot.String(),
		})
	}
	return &ScheduleMaintenanceResponse{
		Window:   FromMaintenanceWindow(result.Window),
		Warnings: warnings,
	}
}
