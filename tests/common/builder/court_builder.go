//go:build unit || e2e

package builder

import (
	"courtside/internal/domain/court"

	"github.com/google/uuid"
)

type CourtBuilder struct {
	ownerID    uuid.UUID
	name       string
	courtCount int
	indoor     bool
	lighting   bool
	surface    court.Surface
	status     court.Status
}

func NewCourtBuilder() *CourtBuilder {
	return &CourtBuilder{
		ownerID:    uuid.New(),
		name:       "Center Court",
		courtCount: 1,
		indoor:     false,
		lighting:   true,
		surface:    court.SurfaceHard,
		status:     court.StatusActive,
	}
}

func (b *CourtBuilder) WithOwnerID(id uuid.UUID) *CourtBuilder {
	b.ownerID = id
	return b
}

func (b *CourtBuilder) WithName(name string) *CourtBuilder {
	b.name = name
	return b
}

func (b *CourtBuilder) WithCourtCount(count int) *CourtBuilder {
	b.courtCount = count
	return b
}

func (b *CourtBuilder) WithSurface(surface court.Surface) *CourtBuilder {
	b.surface = surface
	return b
}

func (b *CourtBuilder) WithStatus(status court.Status) *CourtBuilder {
	b.status = status
	return b
}

func (b *CourtBuilder) BuildDomain() (*court.Court, error) {
	c, err := court.NewCourt(b.ownerID, b.name, b.courtCount, b.indoor, b.lighting, b.surface)
	if err != nil {
		return nil, err
	}
	if b.status != court.StatusActive {
		if err := c.ChangeStatus(b.status); err != nil {
			return nil, err
		}
	}
	return c, nil
}
