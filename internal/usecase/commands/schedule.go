package commands

import (
	"context"

	"courtside/internal/domain/court"
	"courtside/internal/infra"
	"courtside/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrInvalidScheduleEntry = errs.New("invalid schedule entry")

type ScheduleCommands interface {
	ReplaceWeekSchedule(ctx context.Context, actor Actor, courtID uuid.UUID, entries []ScheduleEntryRow) error
}

type scheduleCommandsImpl struct {
	uow   UnitOfWork
	reads CommandReads
}

func NewScheduleCommands(uow UnitOfWork, reads CommandReads) ScheduleCommands {
	return &scheduleCommandsImpl{
		uow:   uow,
		reads: reads,
	}
}

// ReplaceWeekSchedule swaps the whole weekly calendar in one write.
// Schedule changes are rare administrative operations; last writer
// wins, which is acceptable because booking conflicts are guarded at
// commit time, not here.
func (s *scheduleCommandsImpl) ReplaceWeekSchedule(
	ctx context.Context,
	actor Actor,
	courtID uuid.UUID,
	entries []ScheduleEntryRow,
) error {
	courtEntity, err := s.reads.CourtByID(ctx, courtID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrCourtNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if !actor.Role.CanManageCourts() {
		return ErrForbidden
	}
	if !actor.IsAdmin() && !courtEntity.IsOwnedBy(actor.UserID) {
		return ErrForbidden
	}

	// Building the domain schedule validates weekday uniqueness and
	// open < close before anything is written.
	schedule := court.NewWeekSchedule()
	for _, entry := range entries {
		hours := court.NewClosedDay()
		if !entry.Closed {
			hours, err = court.NewDayHours(entry.Open, entry.Close)
			if err != nil {
				return errs.Mark(err, ErrInvalidScheduleEntry)
			}
		}
		if err := schedule.Set(entry.Weekday, hours); err != nil {
			return errs.Mark(err, ErrInvalidScheduleEntry)
		}
	}

	err = s.uow.Within(ctx, func(ctx context.Context, tx Tx) error {
		return tx.Schedules().Replace(ctx, courtID, entries)
	})
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}
