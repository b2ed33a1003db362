package response

import (
	"time"

	"courtside/internal/domain/reservation"
	"courtside/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID            uuid.UUID `json:"id"`
	CourtID       uuid.UUID `json:"court_id"`
	CourtName     string    `json:"court_name,omitempty"`
	UserID        uuid.UUID `json:"user_id"`
	Date          string    `json:"date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	AmountCents   int64     `json:"amount_cents"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
	UpdatedAt     time.Time `json:"updated_at,omitempty"`
}

func FromReservation(r *reservation.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:            r.ID(),
		CourtID:       r.CourtID(),
		UserID:        r.UserID(),
		Date:          r.Date().String(),
		StartTime:     r.Slot().Start().String(),
		EndTime:       r.Slot().End().String(),
		Status:        r.Status().String(),
		PaymentStatus: r.PaymentStatus().String(),
		AmountCents:   r.Amount().Cents(),
		CreatedAt:     r.CreatedAt(),
		UpdatedAt:     r.UpdatedAt(),
	}
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:            v.ID,
		CourtID:       v.CourtID,
		CourtName:     v.CourtName,
		UserID:        v.UserID,
		Date:          v.Date,
		StartTime:     v.StartTime,
		EndTime:       v.EndTime,
		Status:        v.Status,
		PaymentStatus: v.PaymentStatus,
		AmountCents:   v.AmountCents,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

type ReservationListResponse struct {
	ID        uuid.UUID `json:"id"`
	CourtID   uuid.UUID `json:"court_id"`
	CourtName string    `json:"court_name"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func FromReservationListItem(item queries.ReservationListItem) *ReservationListResponse {
	return &ReservationListResponse{
		ID:        item.ID,
		CourtID:   item.CourtID,
		CourtName: item.CourtName,
		Date:      item.Date,
		StartTime: item.StartTime,
		EndTime:   item.EndTime,
		Status:    item.Status,
		CreatedAt: item.CreatedAt,
	}
}
