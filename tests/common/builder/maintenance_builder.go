//go:build unit || e2e

package builder

import (
	"time"

	"courtside/internal/domain/maintenance"

	"github.com/google/uuid"
)

type MaintenanceBuilder struct {
	courtID     uuid.UUID
	kind        string
	description string
	startAt     time.Time
	endAt       time.Time
	createdBy   uuid.UUID
}

func NewMaintenanceBuilder() *MaintenanceBuilder {
	start := time.Date(2026, time.June, 20, 8, 0, 0, 0, time.UTC)
	return &MaintenanceBuilder{
		courtID:     uuid.New(),
		kind:        "resurfacing",
		description: "annual resurfacing",
		startAt:     start,
		endAt:       start.Add(6 * time.Hour),
		createdBy:   uuid.New(),
	}
}

func (b *MaintenanceBuilder) WithCourtID(id uuid.UUID) *MaintenanceBuilder {
	b.courtID = id
	return b
}

func (b *MaintenanceBuilder) WithKind(kind string) *MaintenanceBuilder {
	b.kind = kind
	return b
}

func (b *MaintenanceBuilder) WithSpan(startAt, endAt time.Time) *MaintenanceBuilder {
	b.startAt, b.endAt = startAt, endAt
	return b
}

func (b *MaintenanceBuilder) BuildDomain() (*maintenance.Window, error) {
	return maintenance.NewWindow(b.courtID, b.kind, b.description, b.startAt, b.endAt, b.createdBy)
}
