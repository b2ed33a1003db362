package repository

import (
	"context"

	"courtside/internal/domain/maintenance"
	"courtside/internal/infra"
	"courtside/internal/infra/db"
)

type MaintenanceRepository struct {
	db db.DBTX
}

func NewMaintenanceRepository(dbtx db.DBTX) *MaintenanceRepository {
	return &MaintenanceRepository{db: dbtx}
}

const createWindowQuery = `
INSERT INTO maintenance_windows (id, court_id, kind, description, start_at, end_at, status, created_by)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

func (r *MaintenanceRepository) Create(ctx context.Context, w *maintenance.Window) error {
	_, err := r.db.Exec(ctx, createWindowQuery,
		w.ID(),
		w.CourtID(),
		w.Kind(),
		w.Description(),
		w.StartAt(),
		w.EndAt(),
		w.Status().String(),
		w.CreatedBy(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create maintenance window", err)
	}
	return nil
}

const updateWindowStatusQuery = `
UPDATE maintenance_windows
SET status = $2, updated_at = now()
WHERE id = $1
`

func (r *MaintenanceRepository) UpdateStatus(ctx context.Context, w *maintenance.Window) error {
	tag, err := r.db.Exec(ctx, updateWindowStatusQuery, w.ID(), w.Status().String())
	if err != nil {
		return infra.WrapRepoErr("failed to update maintenance window status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("maintenance window not found", nil, infra.KindNotFound)
	}
	return nil
}
