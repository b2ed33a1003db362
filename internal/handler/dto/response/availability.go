package response

import (
	"courtside/internal/usecase/queries"

	"github.com/google/uuid"
)

type SlotResponse struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Available bool   `json:"available"`
}

type AvailabilityResponse struct {
	CourtID uuid.UUID      `json:"court_id"`
	Date    string         `json:"date"`
	Slots   []SlotResponse `json:"slots"`
}

func FromDayAvailability(v *queries.DayAvailabilityView) *AvailabilityResponse {
	slots := make([]SlotResponse, 0, len(v.Slots))
	for _, s := range v.Slots {
		slots = append(slots, SlotResponse{
			Start:     s.Start,
			End:       s.End,
			Available: s.Available,
		})
	}
	return &AvailabilityResponse{
		CourtID: v.CourtID,
		Date:    v.Date,
		Slots:   slots,
	}
}
