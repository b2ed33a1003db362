package repository

import (
	"context"

	"courtside/internal/infra"
	"courtside/internal/infra/converter"
	"courtside/internal/infra/db"
	"courtside/internal/usecase/commands"

	"github.com/google/uuid"
)

type ScheduleRepository struct {
	db db.DBTX
}

func NewScheduleRepository(dbtx db.DBTX) *ScheduleRepository {
	return &ScheduleRepository{db: dbtx}
}

const deleteScheduleQuery = `
DELETE FROM court_schedules WHERE court_id = $1
`

const insertScheduleEntryQuery = `
INSERT INTO court_schedules (court_id, day_of_week, open_min, close_min, closed)
VALUES ($1, $2, $3, $4, $5)
`

// Replace swaps the whole weekly calendar atomically; callers run it
// inside a unit of work.
func (r *ScheduleRepository) Replace(ctx context.Context, courtID uuid.UUID, entries []commands.ScheduleEntryRow) error {
	if _, err := r.db.Exec(ctx, deleteScheduleQuery, courtID); err != nil {
		return infra.WrapRepoErr("failed to clear court schedule", err)
	}

	for _, entry := range entries {
		var openMin, closeMin *int16
		if !entry.Closed {
			o := converter.MinutesFromTimeOfDay(entry.Open)
			c := converter.MinutesFromTimeOfDay(entry.Close)
			openMin, closeMin = &o, &c
		}
		_, err := r.db.Exec(ctx, insertScheduleEntryQuery,
			courtID,
			int16(entry.Weekday),
			openMin,
			closeMin,
			entry.Closed,
		)
		if err != nil {
			return infra.WrapRepoErr("failed to insert schedule entry", err)
		}
	}
	return nil
}
