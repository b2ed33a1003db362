package readstore

import (
	"context"
	"errors"
	"time"

	"courtside/internal/domain/maintenance"
	"courtside/internal/domain/reservation"
	"courtside/internal/infra"
	"courtside/internal/infra/converter"
	"courtside/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type MaintenanceReadStore struct {
	db db.DBTX
}

func NewMaintenanceReadStore(dbtx db.DBTX) *MaintenanceReadStore {
	return &MaintenanceReadStore{db: dbtx}
}

const maintenanceColumns = `
id, court_id, kind, description, start_at, end_at, status, created_by, created_at, updated_at
`

const findWindowByIDQuery = `
SELECT ` + maintenanceColumns + `
FROM maintenance_windows
WHERE id = $1
`

func (s *MaintenanceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*maintenance.Window, error) {
	row := s.db.QueryRow(ctx, findWindowByIDQuery, id)
	w, err := scanWindow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("maintenance window not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find maintenance window", err)
	}
	return w, nil
}

const findIntersectingQuery = `
SELECT ` + maintenanceColumns + `
FROM maintenance_windows
WHERE court_id = $1
  AND status <> 'completed'
  AND start_at < $3
  AND $2 < end_at
ORDER BY start_at
`

// FindIntersectingDate returns windows that still block time (completed
// windows do not) and touch the date's midnight-to-midnight span.
func (s *MaintenanceReadStore) FindIntersectingDate(ctx context.Context, courtID uuid.UUID, date reservation.Date) ([]*maintenance.Window, error) {
	dayStart := converter.DateToTime(date)
	dayEnd := dayStart.AddDate(0, 0, 1)

	rows, err := s.db.Query(ctx, findIntersectingQuery, courtID, dayStart, dayEnd)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find maintenance windows", err)
	}
	defer rows.Close()

	var result []*maintenance.Window
	for rows.Next() {
		w, err := scanWindow(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan maintenance window", err)
		}
		result = append(result, w)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read maintenance windows", err)
	}
	return result, nil
}

func scanWindow(row pgx.Row) (*maintenance.Window, error) {
	var (
		id, courtID, createdBy uuid.UUID
		kind, description      string
		startAt, endAt         time.Time
		status                 string
		createdAt, updatedAt   time.Time
	)
	err := row.Scan(&id, &courtID, &kind, &description, &startAt, &endAt,
		&status, &createdBy, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	return maintenance.ReconstructWindow(
		id, courtID, kind, description, startAt, endAt,
		maintenance.Status(status), createdBy, createdAt, updatedAt,
	), nil
}
