package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type SlotView struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Available bool   `json:"available"`
}

type DayAvailabilityView struct {
	CourtID uuid.UUID  `json:"court_id"`
	Date    string     `json:"date"`
	Slots   []SlotView `json:"slots"`
}

type ReservationView struct {
	ID            uuid.UUID `json:"id"`
	CourtID       uuid.UUID `json:"court_id"`
	CourtName     string    `json:"court_name"`
	UserID        uuid.UUID `json:"user_id"`
	Date          string    `json:"date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	AmountCents   int64     `json:"amount_cents"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ReservationListItem struct {
	ID        uuid.UUID `json:"id"`
	CourtID   uuid.UUID `json:"court_id"`
	CourtName string    `json:"court_name"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
