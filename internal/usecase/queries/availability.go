package queries

import (
	"context"

	"courtside/internal/domain/availability"
	"courtside/internal/domain/court"
	"courtside/internal/domain/maintenance"
	"courtside/internal/domain/reservation"
	"courtside/internal/infra"
	"courtside/internal/pkg/config"
	"courtside/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrCourtNotFound = errs.New("court not found")
	ErrQueryFailed   = errs.New("availability query failed")
)

// AvailabilityReadStore supplies the inputs the slot calculator needs.
type AvailabilityReadStore interface {
	CourtByID(ctx context.Context, id uuid.UUID) (*court.Court, error)
	WeekScheduleByCourt(ctx context.Context, courtID uuid.UUID) (court.WeekSchedule, error)
	BlockingReservations(ctx context.Context, courtID uuid.UUID, date reservation.Date) ([]*reservation.Reservation, error)
	WindowsIntersecting(ctx context.Context, courtID uuid.UUID, date reservation.Date) ([]*maintenance.Window, error)
}

type AvailabilityQueries interface {
	GetDayAvailability(ctx context.Context, courtID uuid.UUID, date reservation.Date) (*DayAvailabilityView, error)
}

type availabilityQueriesImpl struct {
	store AvailabilityReadStore
	cfg   config.EngineConfig
}

func NewAvailabilityQueries(store AvailabilityReadStore, cfg config.EngineConfig) AvailabilityQueries {
	return &availabilityQueriesImpl{
		store: store,
		cfg:   cfg,
	}
}

// GetDayAvailability recomputes slots from scratch on every call. "No
// availability" is an empty slot list, never an error; only an unknown
// court fails.
func (a *availabilityQueriesImpl) GetDayAvailability(
	ctx context.Context,
	courtID uuid.UUID,
	date reservation.Date,
) (*DayAvailabilityView, error) {
	courtEntity, err := a.store.CourtByID(ctx, courtID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}

	schedule, err := a.store.WeekScheduleByCourt(ctx, courtID)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	blocking, err := a.store.BlockingReservations(ctx, courtID, date)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	windows, err := a.store.WindowsIntersecting(ctx, courtID, date)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}

	slots := availability.ComputeSlots(courtEntity, schedule, date, a.cfg.SlotDuration, blocking, windows)

	view := &DayAvailabilityView{
		CourtID: courtID,
		Date:    date.String(),
		Slots:   make([]SlotView, 0, len(slots)),
	}
	for _, s := range slots {
		view.Slots = append(view.Slots, SlotView{
			Start:     s.Start.String(),
			End:       s.End.String(),
			Available: s.Available,
		})
	}
	return view, nil
}
