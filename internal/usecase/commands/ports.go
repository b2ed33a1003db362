package commands

import (
	"context"
	"time"

	"courtside/internal/domain/court"
	"courtside/internal/domain/maintenance"
	"courtside/internal/domain/reservation"
	"courtside/internal/domain/user"

	"github.com/google/uuid"
)

// Actor is the caller identity supplied by the calling context; the
// engine never authenticates.
type Actor struct {
	UserID uuid.UUID
	Role   user.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == user.RoleAdmin
}

// UnitOfWork runs fn inside a transaction; repositories obtained from
// the Tx are bound to it. Transient serialization failures are retried
// a bounded number of times by the implementation.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Reservations() ReservationRepository
	Maintenance() MaintenanceRepository
	Schedules() ScheduleRepository
	Events() EventRepository
}

type ReservationRepository interface {
	Create(ctx context.Context, res *reservation.Reservation) error
	UpdateStatus(ctx context.Context, res *reservation.Reservation) error
	// SettlePayment persists a payment transition only while the row
	// still has the status the transition was decided on; a concurrent
	// cancellation makes it fail with a conflict instead of being
	// overwritten.
	SettlePayment(ctx context.Context, res *reservation.Reservation, expected reservation.Status) error
}

type MaintenanceRepository interface {
	Create(ctx context.Context, w *maintenance.Window) error
	UpdateStatus(ctx context.Context, w *maintenance.Window) error
}

// ScheduleEntryRow is one weekday's operating hours as persisted.
type ScheduleEntryRow struct {
	Weekday time.Weekday
	Open    court.TimeOfDay
	Close   court.TimeOfDay
	Closed  bool
}

type ScheduleRepository interface {
	Replace(ctx context.Context, courtID uuid.UUID, entries []ScheduleEntryRow) error
}

// EventRepository appends to the transactional outbox; an external
// notifier drains it. Delivery never rolls back the mutation.
type EventRepository interface {
	Append(ctx context.Context, topic string, payload []byte) error
}

// CommandReads is the read side commands consult before deciding to
// write. All reads used for a commit decision happen under the
// per-(court,date) lock.
type CommandReads interface {
	CourtByID(ctx context.Context, id uuid.UUID) (*court.Court, error)
	WeekScheduleByCourt(ctx context.Context, courtID uuid.UUID) (court.WeekSchedule, error)
	BlockingReservations(ctx context.Context, courtID uuid.UUID, date reservation.Date) ([]*reservation.Reservation, error)
	WindowsIntersecting(ctx context.Context, courtID uuid.UUID, date reservation.Date) ([]*maintenance.Window, error)
	ReservationByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	WindowByID(ctx context.Context, id uuid.UUID) (*maintenance.Window, error)
	ConfirmedReservationsBetween(ctx context.Context, courtID uuid.UUID, startAt, endAt time.Time) ([]*reservation.Reservation, error)
}
