//go:build unit || e2e

package builder

import (
	"time"

	"courtside/internal/domain/court"
	"courtside/internal/domain/reservation"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	courtID     uuid.UUID
	userID      uuid.UUID
	date        reservation.Date
	startHour   int
	startMinute int
	endHour     int
	endMinute   int
	amountCents int64
}

func NewReservationBuilder() *ReservationBuilder {
	date, _ := reservation.NewDate(2026, time.June, 15)
	return &ReservationBuilder{
		courtID:     uuid.New(),
		userID:      uuid.New(),
		date:        date,
		startHour:   10,
		endHour:     11,
		amountCents: 2000,
	}
}

func (b *ReservationBuilder) WithCourtID(id uuid.UUID) *ReservationBuilder {
	b.courtID = id
	return b
}

func (b *ReservationBuilder) WithUserID(id uuid.UUID) *ReservationBuilder {
	b.userID = id
	return b
}

func (b *ReservationBuilder) WithDate(date reservation.Date) *ReservationBuilder {
	b.date = date
	return b
}

func (b *ReservationBuilder) WithSlotHours(startHour, endHour int) *ReservationBuilder {
	b.startHour, b.startMinute = startHour, 0
	b.endHour, b.endMinute = endHour, 0
	return b
}

func (b *ReservationBuilder) WithAmountCents(cents int64) *ReservationBuilder {
	b.amountCents = cents
	return b
}

func (b *ReservationBuilder) Slot() (reservation.TimeSlot, error) {
	start, err := court.NewTimeOfDay(b.startHour, b.startMinute)
	if err != nil {
		return reservation.TimeSlot{}, err
	}
	end, err := court.NewTimeOfDay(b.endHour, b.endMinute)
	if err != nil {
		return reservation.TimeSlot{}, err
	}
	return reservation.NewTimeSlot(start, end)
}

func (b *ReservationBuilder) BuildDomain() (*reservation.Reservation, error) {
	slot, err := b.Slot()
	if err != nil {
		return nil, err
	}
	amount, err := reservation.NewMoney(b.amountCents)
	if err != nil {
		return nil, err
	}
	return reservation.NewReservation(b.courtID, b.userID, b.date, slot, amount), nil
}
