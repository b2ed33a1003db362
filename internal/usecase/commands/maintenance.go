package commands

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"courtside/internal/domain/maintenance"
	"courtside/internal/domain/reservation"
	"courtside/internal/infra"
	"courtside/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrWindowNotFound      = errs.New("maintenance window not found")
	ErrInvalidWindow       = errs.New("invalid maintenance window")
	ErrInvalidStatusChange = errs.New("invalid maintenance status change")
)

const TopicMaintenanceScheduled = "maintenance_scheduled"

// ConflictWarning names a confirmed reservation a new maintenance
// window overlaps. The engine surfaces these to the operator instead
// of deciding a policy (no auto-cancel, no auto-reject).
type ConflictWarning struct {
	ReservationID uuid.UUID
	Date          reservation.Date
	Slot          reservation.TimeSlot
}

type ScheduleMaintenanceResult struct {
	Window   *maintenance.Window
	Warnings []ConflictWarning
}

type MaintenanceCommands interface {
	ScheduleMaintenance(ctx context.Context, actor Actor, courtID uuid.UUID, kind, description string, startAt, endAt time.Time) (*ScheduleMaintenanceResult, error)
	UpdateStatus(ctx context.Context, actor Actor, windowID uuid.UUID, next maintenance.Status) (*maintenance.Window, error)
}

type maintenanceCommandsImpl struct {
	uow   UnitOfWork
	reads CommandReads
}

func NewMaintenanceCommands(uow UnitOfWork, reads CommandReads) MaintenanceCommands {
	return &maintenanceCommandsImpl{
		uow:   uow,
		reads: reads,
	}
}

func (m *maintenanceCommandsImpl) ScheduleMaintenance(
	ctx context.Context,
	actor Actor,
	courtID uuid.UUID,
	kind, description string,
	startAt, endAt time.Time,
) (*ScheduleMaintenanceResult, error) {
	courtEntity, err := m.reads.CourtByID(ctx, courtID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if !actor.Role.CanManageCourts() {
		return nil, ErrForbidden
	}
	if !actor.IsAdmin() && !courtEntity.IsOwnedBy(actor.UserID) {
		return nil, ErrForbidden
	}

	window, err := maintenance.NewWindow(courtID, kind, description, startAt, endAt, actor.UserID)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidWindow)
	}

	// Warnings come from reservations that already exist, so they are
	// read before the insert. A read failure must not surface after the
	// window is durable, where the caller would retry and duplicate it.
	warnings, err := m.collectWarnings(ctx, courtID, startAt, endAt)
	if err != nil {
		return nil, err
	}

	err = m.uow.Within(ctx, func(ctx context.Context, tx Tx) error {
		if err := tx.Maintenance().Create(ctx, window); err != nil {
			return err
		}
		payload, _ := json.Marshal(map[string]any{
			"window_id": window.ID(),
			"court_id":  window.CourtID(),
			"kind":      window.Kind(),
			"start_at":  window.StartAt(),
			"end_at":    window.EndAt(),
		})
		return tx.Events().Append(ctx, TopicMaintenanceScheduled, payload)
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &ScheduleMaintenanceResult{
		Window:   window,
		Warnings: warnings,
	}, nil
}

func (m *maintenanceCommandsImpl) collectWarnings(
	ctx context.Context,
	courtID uuid.UUID,
	startAt, endAt time.Time,
) ([]ConflictWarning, error) {
	overlapping, err := m.reads.ConfirmedReservationsBetween(ctx, courtID, startAt, endAt)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	warnings := make([]ConflictWarning, 0, len(overlapping))
	for _, res := range overlapping {
		warnings = append(warnings, ConflictWarning{
			ReservationID: res.ID(),
			Date:          res.Date(),
			Slot:          res.Slot(),
		})
	}
	return warnings, nil
}

func (m *maintenanceCommandsImpl) UpdateStatus(
	ctx context.Context,
	actor Actor,
	windowID uuid.UUID,
	next maintenance.Status,
) (*maintenance.Window, error) {
	if !actor.Role.CanManageCourts() {
		return nil, ErrForbidden
	}

	window, err := m.reads.WindowByID(ctx, windowID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrWindowNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	// Same ownership rule as scheduling: an owner only manages windows
	// on their own courts.
	if !actor.IsAdmin() {
		courtEntity, err := m.reads.CourtByID(ctx, window.CourtID())
		if err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !courtEntity.IsOwnedBy(actor.UserID) {
			return nil, ErrForbidden
		}
	}

	if err := window.Advance(next); err != nil {
		if errors.Is(err, maintenance.ErrBackwardTransition) {
			return nil, ErrInvalidStatusChange
		}
		return nil, errs.Mark(err, ErrInvalidStatusChange)
	}

	err = m.uow.Within(ctx, func(ctx context.Context, tx Tx) error {
		return tx.Maintenance().UpdateStatus(ctx, window)
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return window, nil
}
