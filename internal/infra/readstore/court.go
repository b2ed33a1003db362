package readstore

import (
	"context"
	"errors"
	"time"

	"courtside/internal/domain/court"
	"courtside/internal/infra"
	"courtside/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CourtReadStore struct {
	db db.DBTX
}

func NewCourtReadStore(dbtx db.DBTX) *CourtReadStore {
	return &CourtReadStore{db: dbtx}
}

const findCourtByIDQuery = `
SELECT id, owner_id, name, court_count, indoor, lighting, surface, status, created_at, updated_at
FROM courts
WHERE id = $1
`

func (s *CourtReadStore) FindByID(ctx context.Context, id uuid.UUID) (*court.Court, error) {
	var (
		courtID, ownerID     uuid.UUID
		name                 string
		courtCount           int
		indoor, lighting     bool
		surface, status      string
		createdAt, updatedAt time.Time
	)
	err := s.db.QueryRow(ctx, findCourtByIDQuery, id).Scan(
		&courtID, &ownerID, &name, &courtCount, &indoor, &lighting,
		&surface, &status, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("court not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find court by ID", err)
	}

	return court.ReconstructCourt(
		courtID, ownerID, name, courtCount, indoor, lighting,
		court.Surface(surface), court.Status(status), createdAt, updatedAt,
	), nil
}
