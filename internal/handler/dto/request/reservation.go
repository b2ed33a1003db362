package request

import (
	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	CourtID     uuid.UUID `json:"court_id" binding:"required"`
	Date        string    `json:"date" binding:"required" example:"2026-06-15"`
	StartTime   string    `json:"start_time" binding:"required" example:"10:00"`
	EndTime     string    `json:"end_time" binding:"required" example:"11:00"`
	AmountCents int64     `json:"amount_cents" binding:"min=0"`
}
