package repository

import (
	"context"

	"courtside/internal/infra"
	"courtside/internal/infra/db"
)

// EventRepository appends to the domain_events outbox table. Rows are
// written in the same transaction as the mutation they describe; a
// separate notifier process drains them.
type EventRepository struct {
	db db.DBTX
}

func NewEventRepository(dbtx db.DBTX) *EventRepository {
	return &EventRepository{db: dbtx}
}

const appendEventQuery = `
INSERT INTO domain_events (topic, payload)
VALUES ($1, $2)
`

func (r *EventRepository) Append(ctx context.Context, topic string, payload []byte) error {
	if _, err := r.db.Exec(ctx, appendEventQuery, topic, payload); err != nil {
		return infra.WrapRepoErr("failed to append domain event", err)
	}
	return nil
}
