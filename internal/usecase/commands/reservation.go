package commands

import (
	"context"
	"encoding/json"
	"errors"

	"courtside/internal/domain/availability"
	"courtside/internal/domain/reservation"
	"courtside/internal/infra"
	"courtside/internal/pkg/clock"
	"courtside/internal/pkg/config"
	"courtside/internal/pkg/errs"
	"courtside/internal/pkg/lockmap"

	"github.com/google/uuid"
)

var (
	ErrCourtNotFound       = errs.New("court not found")
	ErrReservationNotFound = errs.New("reservation not found")
	ErrCourtNotBookable    = errs.New("court is not bookable")
	ErrInvalidSlot         = errs.New("invalid time slot")
	ErrIrregularDuration   = errs.New("slot duration does not match the configured slot length")
	ErrInvalidAmount       = errs.New("invalid amount")
	ErrSlotConflict        = errs.New("slot is no longer available")
	ErrForbidden           = errs.New("actor is not allowed to perform this operation")
	ErrCancellationTooLate = errs.New("cancellation is only possible before the slot starts")
	ErrAlreadyCanceled     = errs.New("reservation is already canceled")
	ErrPaymentState        = errs.New("invalid payment state")

	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

const (
	TopicReservationCreated  = "reservation_created"
	TopicReservationCanceled = "reservation_canceled"
)

type ReservationCommands interface {
	CreateReservation(ctx context.Context, actor Actor, courtID uuid.UUID, date reservation.Date, slot reservation.TimeSlot, amountCents int64) (*reservation.Reservation, error)
	CancelReservation(ctx context.Context, actor Actor, id uuid.UUID) (*reservation.Reservation, error)
	ConfirmPayment(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	RefundPayment(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
}

type reservationCommandsImpl struct {
	uow   UnitOfWork
	reads CommandReads
	locks *lockmap.LockMap
	cfg   config.EngineConfig
	clock clock.Clock
}

func NewReservationCommands(
	uow UnitOfWork,
	reads CommandReads,
	locks *lockmap.LockMap,
	cfg config.EngineConfig,
	clock clock.Clock,
) ReservationCommands {
	return &reservationCommandsImpl{
		uow:   uow,
		reads: reads,
		locks: locks,
		cfg:   cfg,
		clock: clock,
	}
}

// lockKey scopes commit serialization to one court-day. Different
// keys proceed fully in parallel.
func lockKey(courtID uuid.UUID, date reservation.Date) string {
	return courtID.String() + "@" + date.String()
}

// CreateReservation is the only write path for new bookings. The
// availability re-check and the insert are serialized per (court,date)
// via the lock map; the storage-level exclusion constraint backs the
// same invariant, so a lost race is reported as ErrSlotConflict from
// either layer.
func (r *reservationCommandsImpl) CreateReservation(
	ctx context.Context,
	actor Actor,
	courtID uuid.UUID,
	date reservation.Date,
	slot reservation.TimeSlot,
	amountCents int64,
) (*reservation.Reservation, error) {
	amount, err := reservation.NewMoney(amountCents)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidAmount)
	}
	if slot.Duration() != r.cfg.SlotDuration {
		return nil, ErrIrregularDuration
	}

	// Bounded wait: a stuck lock surfaces as a conflict, never as an
	// unbounded hang.
	lockCtx, cancel := context.WithTimeout(ctx, r.cfg.CommitWait)
	defer cancel()
	release, err := r.locks.Acquire(lockCtx, lockKey(courtID, date))
	if err != nil {
		return nil, errs.Mark(err, ErrSlotConflict)
	}
	defer release()

	if err := r.checkAvailability(ctx, courtID, date, slot); err != nil {
		return nil, err
	}

	entity := reservation.NewReservation(courtID, actor.UserID, date, slot, amount)

	err = r.uow.Within(ctx, func(ctx context.Context, tx Tx) error {
		if err := tx.Reservations().Create(ctx, entity); err != nil {
			return err
		}
		return tx.Events().Append(ctx, TopicReservationCreated, r.reservationPayload(entity))
	})
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, ErrSlotConflict
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return entity, nil
}

func (r *reservationCommandsImpl) checkAvailability(
	ctx context.Context,
	courtID uuid.UUID,
	date reservation.Date,
	slot reservation.TimeSlot,
) error {
	courtEntity, err := r.reads.CourtByID(ctx, courtID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrCourtNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !courtEntity.IsBookable() {
		return ErrCourtNotBookable
	}

	schedule, err := r.reads.WeekScheduleByCourt(ctx, courtID)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	blocking, err := r.reads.BlockingReservations(ctx, courtID, date)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	windows, err := r.reads.WindowsIntersecting(ctx, courtID, date)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	slots := availability.ComputeSlots(courtEntity, schedule, date, r.cfg.SlotDuration, blocking, windows)
	if !availability.IsIntervalAvailable(slots, slot.Start(), slot.End()) {
		return ErrSlotConflict
	}
	return nil
}

// CancelReservation takes the same (court,date) lock as commit so a
// cancel and a racing booking for the freed interval serialize.
func (r *reservationCommandsImpl) CancelReservation(
	ctx context.Context,
	actor Actor,
	id uuid.UUID,
) (*reservation.Reservation, error) {
	entity, err := r.findReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	if !entity.IsBookedBy(actor.UserID) && !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	lockCtx, cancel := context.WithTimeout(ctx, r.cfg.CommitWait)
	defer cancel()
	release, err := r.locks.Acquire(lockCtx, lockKey(entity.CourtID(), entity.Date()))
	if err != nil {
		return nil, errs.Mark(err, ErrSlotConflict)
	}
	defer release()

	// Re-read under the lock; the first read only served the authz
	// check and may be stale by now.
	entity, err = r.findReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := entity.Cancel(r.clock.Now()); err != nil {
		switch {
		case errors.Is(err, reservation.ErrTooLateToCancel):
			return nil, ErrCancellationTooLate
		case errors.Is(err, reservation.ErrAlreadyCanceled):
			return nil, ErrAlreadyCanceled
		default:
			return nil, errs.Mark(err, ErrInvalidSlot)
		}
	}

	err = r.uow.Within(ctx, func(ctx context.Context, tx Tx) error {
		if err := tx.Reservations().UpdateStatus(ctx, entity); err != nil {
			return err
		}
		return tx.Events().Append(ctx, TopicReservationCanceled, r.reservationPayload(entity))
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return entity, nil
}

// ConfirmPayment is called by the external payment collaborator after
// capture. Idempotent: webhook retries must converge on the same end
// state without duplicate side effects. The write is guarded on the
// status read above, so a webhook racing a cancellation cannot flip a
// canceled reservation back to confirmed.
func (r *reservationCommandsImpl) ConfirmPayment(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	entity, err := r.findReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	alreadyConfirmed := entity.Status() == reservation.StatusConfirmed
	statusAtRead := entity.Status()

	if err := entity.ConfirmPayment(); err != nil {
		return nil, errs.Mark(err, ErrPaymentState)
	}
	if alreadyConfirmed {
		return entity, nil
	}

	err = r.uow.Within(ctx, func(ctx context.Context, tx Tx) error {
		return tx.Reservations().SettlePayment(ctx, entity, statusAtRead)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, errs.Mark(err, ErrPaymentState)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return entity, nil
}

func (r *reservationCommandsImpl) RefundPayment(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	entity, err := r.findReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	alreadyRefunded := entity.PaymentStatus() == reservation.PaymentRefunded
	statusAtRead := entity.Status()

	if err := entity.RefundPayment(); err != nil {
		return nil, errs.Mark(err, ErrPaymentState)
	}
	if alreadyRefunded {
		return entity, nil
	}

	err = r.uow.Within(ctx, func(ctx context.Context, tx Tx) error {
		return tx.Reservations().SettlePayment(ctx, entity, statusAtRead)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, errs.Mark(err, ErrPaymentState)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return entity, nil
}

func (r *reservationCommandsImpl) findReservation(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	entity, err := r.reads.ReservationByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return entity, nil
}

func (r *reservationCommandsImpl) reservationPayload(entity *reservation.Reservation) []byte {
	payload, _ := json.Marshal(map[string]any{
		"reservation_id": entity.ID(),
		"court_id":       entity.CourtID(),
		"user_id":        entity.UserID(),
		"date":           entity.Date().String(),
		"slot":           entity.Slot().String(),
		"status":         entity.Status().String(),
	})
	return payload
}
