package readstore

import (
	"context"
	"time"

	"courtside/internal/domain/court"
	"courtside/internal/infra"
	"courtside/internal/infra/converter"
	"courtside/internal/infra/db"

	"github.com/google/uuid"
)

type ScheduleReadStore struct {
	db db.DBTX
}

func NewScheduleReadStore(dbtx db.DBTX) *ScheduleReadStore {
	return &ScheduleReadStore{db: dbtx}
}

const findWeekScheduleQuery = `
SELECT day_of_week, open_min, close_min, closed
FROM court_schedules
WHERE court_id = $1
ORDER BY day_of_week
`

// FindWeekByCourt returns the stored weekly calendar. Weekdays without
// a row are simply absent from the schedule, which the calculator
// treats as closed.
func (s *ScheduleReadStore) FindWeekByCourt(ctx context.Context, courtID uuid.UUID) (court.WeekSchedule, error) {
	rows, err := s.db.Query(ctx, findWeekScheduleQuery, courtID)
	if err != nil {
		return court.WeekSchedule{}, infra.WrapRepoErr("failed to find court schedule", err)
	}
	defer rows.Close()

	schedule := court.NewWeekSchedule()
	for rows.Next() {
		var (
			dayOfWeek         int16
			openMin, closeMin *int16
			closed            bool
		)
		if err := rows.Scan(&dayOfWeek, &openMin, &closeMin, &closed); err != nil {
			return court.WeekSchedule{}, infra.WrapRepoErr("failed to scan schedule entry", err)
		}

		hours := court.NewClosedDay()
		if !closed && openMin != nil && closeMin != nil {
			open, err := converter.TimeOfDayFromMinutes(*openMin)
			if err != nil {
				return court.WeekSchedule{}, infra.WrapRepoErr("corrupt schedule entry", err)
			}
			closeAt, err := converter.TimeOfDayFromMinutes(*closeMin)
			if err != nil {
				return court.WeekSchedule{}, infra.WrapRepoErr("corrupt schedule entry", err)
			}
			hours, err = court.NewDayHours(open, closeAt)
			if err != nil {
				return court.WeekSchedule{}, infra.WrapRepoErr("corrupt schedule entry", err)
			}
		}

		if err := schedule.Set(time.Weekday(dayOfWeek), hours); err != nil {
			return court.WeekSchedule{}, infra.WrapRepoErr("corrupt schedule entry", err)
		}
	}
	if err := rows.Err(); err != nil {
		return court.WeekSchedule{}, infra.WrapRepoErr("failed to read schedule entries", err)
	}
	return schedule, nil
}
