package court

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidCourtCount = errors.New("court count must be at least 1")
	ErrInvalidStatus     = errors.New("invalid court status")
	ErrInvalidSurface    = errors.New("invalid court surface")
	ErrEmptyName         = errors.New("court name cannot be empty")
)

// Court is a bookable facility group. court_count sibling courts share
// one schedule and one reservation pool; the facility is booked as a
// single unit (the count never multiplies capacity).
type Court struct {
	id         uuid.UUID
	ownerID    uuid.UUID
	name       string
	courtCount int
	indoor     bool
	lighting   bool
	surface    Surface
	status     Status
	createdAt  time.Time
	updatedAt  time.Time
}

func NewCourt(
	ownerID uuid.UUID,
	name string,
	courtCount int,
	indoor, lighting bool,
	surface Surface,
) (*Court, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if courtCount < 1 {
		return nil, ErrInvalidCourtCount
	}
	if !surface.IsValid() {
		return nil, ErrInvalidSurface
	}

	return &Court{
		id:         uuid.New(),
		ownerID:    ownerID,
		name:       name,
		courtCount: courtCount,
		indoor:     indoor,
		lighting:   lighting,
		surface:    surface,
		status:     StatusActive,
	}, nil
}

func ReconstructCourt(
	id, ownerID uuid.UUID,
	name string,
	courtCount int,
	indoor, lighting bool,
	surface Surface,
	status Status,
	createdAt, updatedAt time.Time,
) *Court {
	return &Court{
		id:         id,
		ownerID:    ownerID,
		name:       name,
		courtCount: courtCount,
		indoor:     indoor,
		lighting:   lighting,
		surface:    surface,
		status:     status,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// ChangeStatus is the only status mutation; courts are never deleted.
func (c *Court) ChangeStatus(next Status) error {
	if !next.IsValid() {
		return ErrInvalidStatus
	}
	c.status = next
	return nil
}

func (c *Court) IsBookable() bool {
	return c.status.IsBookable()
}

func (c *Court) IsOwnedBy(userID uuid.UUID) bool {
	return c.ownerID == userID
}

func (c *Court) ID() uuid.UUID      { return c.id }
func (c *Court) OwnerID() uuid.UUID { return c.ownerID }
func (c *Court) Name() string       { return c.name }
func (c *Court) CourtCount() int    { return c.courtCount }
func (c *Court) Indoor() bool       { return c.indoor }
func (c *Court) Lighting() bool     { return c.lighting }
func (c *Court) Surface() Surface   { return c.surface }
func (c *Court) Status() Status     { return c.status }
func (c *Court) CreatedAt() time.Time { return c.createdAt }
func (c *Court) UpdatedAt() time.Time { return c.updatedAt }
