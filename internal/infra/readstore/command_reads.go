package readstore

import (
	"context"
	"time"

	"courtside/internal/domain/court"
	"courtside/internal/domain/maintenance"
	"courtside/internal/domain/reservation"
	"courtside/internal/infra/db"

	"github.com/google/uuid"
)

// CommandReadStore bundles the per-aggregate readstores into the read
// surface the command side consults before writing. The same bundle
// serves the availability query, so both sides derive slots from
// identical inputs.
type CommandReadStore struct {
	courts       *CourtReadStore
	schedules    *ScheduleReadStore
	reservations *ReservationReadStore
	windows      *MaintenanceReadStore
}

func NewCommandReadStore(dbtx db.DBTX) *CommandReadStore {
	return &CommandReadStore{
		courts:       NewCourtReadStore(dbtx),
		schedules:    NewScheduleReadStore(dbtx),
		reservations: NewReservationReadStore(dbtx),
		windows:      NewMaintenanceReadStore(dbtx),
	}
}

func (s *CommandReadStore) CourtByID(ctx context.Context, id uuid.UUID) (*court.Court, error) {
	return s.courts.FindByID(ctx, id)
}

func (s *CommandReadStore) WeekScheduleByCourt(ctx context.Context, courtID uuid.UUID) (court.WeekSchedule, error) {
	return s.schedules.FindWeekByCourt(ctx, courtID)
}

func (s *CommandReadStore) BlockingReservations(ctx context.Context, courtID uuid.UUID, date reservation.Date) ([]*reservation.Reservation, error) {
	return s.reservations.FindBlockingByDate(ctx, courtID, date)
}

func (s *CommandReadStore) WindowsIntersecting(ctx context.Context, courtID uuid.UUID, date reservation.Date) ([]*maintenance.Window, error) {
	return s.windows.FindIntersectingDate(ctx, courtID, date)
}

func (s *CommandReadStore) ReservationByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	return s.reservations.FindByID(ctx, id)
}

func (s *CommandReadStore) WindowByID(ctx context.Context, id uuid.UUID) (*maintenance.Window, error) {
	return s.windows.FindByID(ctx, id)
}

func (s *CommandReadStore) ConfirmedReservationsBetween(ctx context.Context, courtID uuid.UUID, startAt, endAt time.Time) ([]*reservation.Reservation, error) {
	return s.reservations.FindConfirmedBetween(ctx, courtID, startAt, endAt)
}
