package maintenance

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidSpan  = errors.New("maintenance start must be before end")
	ErrEmptyKind    = errors.New("maintenance kind cannot be empty")
	ErrInvalidState = errors.New("invalid maintenance status")
)

// Window takes a court offline for an arbitrary datetime span,
// independent of the weekly schedule. Windows may overlap each other;
// blocked time is their set union. Times are naive wall-clock values.
type Window struct {
	id          uuid.UUID
	courtID     uuid.UUID
	kind        string
	description string
	startAt     time.Time
	endAt       time.Time
	status      Status
	createdBy   uuid.UUID
	createdAt   time.Time
	updatedAt   time.Time
}

func NewWindow(
	courtID uuid.UUID,
	kind, description string,
	startAt, endAt time.Time,
	createdBy uuid.UUID,
) (*Window, error) {
	if kind == "" {
		return nil, ErrEmptyKind
	}
	if !startAt.Before(endAt) {
		return nil, ErrInvalidSpan
	}

	return &Window{
		id:          uuid.New(),
		courtID:     courtID,
		kind:        kind,
		description: description,
		startAt:     startAt,
		endAt:       endAt,
		status:      StatusScheduled,
		createdBy:   createdBy,
	}, nil
}

func ReconstructWindow(
	id, courtID uuid.UUID,
	kind, description string,
	startAt, endAt time.Time,
	status Status,
	createdBy uuid.UUID,
	createdAt, updatedAt time.Time,
) *Window {
	return &Window{
		id:          id,
		courtID:     courtID,
		kind:        kind,
		description: description,
		startAt:     startAt,
		endAt:       endAt,
		status:      status,
		createdBy:   createdBy,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Advance moves the lifecycle forward; backward transitions are
// rejected.
func (w *Window) Advance(next Status) error {
	if !next.IsValid() {
		return ErrInvalidState
	}
	if !w.status.CanAdvanceTo(next) {
		return ErrBackwardTransition
	}
	w.status = next
	return nil
}

func (w *Window) ID() uuid.UUID        { return w.id }
func (w *Window) CourtID() uuid.UUID   { return w.courtID }
func (w *Window) Kind() string         { return w.kind }
func (w *Window) Description() string  { return w.description }
func (w *Window) StartAt() time.Time   { return w.startAt }
func (w *Window) EndAt() time.Time     { return w.endAt }
func (w *Window) Status() Status       { return w.status }
func (w *Window) CreatedBy() uuid.UUID { return w.createdBy }
func (w *Window) CreatedAt() time.Time { return w.createdAt }
func (w *Window) UpdatedAt() time.Time { return w.updatedAt }
