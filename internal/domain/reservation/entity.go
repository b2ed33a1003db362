package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyCanceled    = errors.New("reservation is already canceled")
	ErrCanceledNotPayable = errors.New("canceled reservation cannot be confirmed")
	ErrNotPaid            = errors.New("reservation has not been paid")
	ErrTooLateToCancel    = errors.New("reservation can no longer be canceled after its start time")
	ErrInvalidStatus      = errors.New("invalid reservation status")
)

// Reservation is a single-date, single-slot booking. It is created
// pending/unpaid by the committer; payment capture and cancellation
// arrive later through the lifecycle methods below.
type Reservation struct {
	id            uuid.UUID
	courtID       uuid.UUID
	userID        uuid.UUID
	date          Date
	slot          TimeSlot
	status        Status
	paymentStatus PaymentStatus
	amount        Money
	createdAt     time.Time
	updatedAt     time.Time
}

func NewReservation(
	courtID, userID uuid.UUID,
	date Date,
	slot TimeSlot,
	amount Money,
) *Reservation {
	return &Reservation{
		id:            uuid.New(),
		courtID:       courtID,
		userID:        userID,
		date:          date,
		slot:          slot,
		status:        StatusPending,
		paymentStatus: PaymentPending,
		amount:        amount,
	}
}

func ReconstructReservation(
	id, courtID, userID uuid.UUID,
	date Date,
	slot TimeSlot,
	status Status,
	paymentStatus PaymentStatus,
	amount Money,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:            id,
		courtID:       courtID,
		userID:        userID,
		date:          date,
		slot:          slot,
		status:        status,
		paymentStatus: paymentStatus,
		amount:        amount,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// HasStarted compares wall-clock fields only; the location attached to
// now is ignored on purpose.
func (r *Reservation) HasStarted(now time.Time) bool {
	today := DateOf(now)
	if r.date.Before(today) {
		return true
	}
	if !r.date.Equal(today) {
		return false
	}
	nowMinutes := now.Hour()*60 + now.Minute()
	return nowMinutes >= r.slot.Start().MinutesFromMidnight()
}

// Cancel releases the interval back to availability. Rejected once the
// slot's start time has passed; canceled is terminal.
func (r *Reservation) Cancel(now time.Time) error {
	if r.status == StatusCanceled {
		return ErrAlreadyCanceled
	}
	if r.HasStarted(now) {
		return ErrTooLateToCancel
	}
	r.status = StatusCanceled
	return nil
}

// ConfirmPayment is idempotent: payment webhooks may retry, so a
// second confirmation of the same reservation is a no-op success.
func (r *Reservation) ConfirmPayment() error {
	if r.status == StatusCanceled {
		return ErrCanceledNotPayable
	}
	if r.status == StatusConfirmed && r.paymentStatus == PaymentPaid {
		return nil
	}
	r.status = StatusConfirmed
	r.paymentStatus = PaymentPaid
	return nil
}

// RefundPayment is idempotent like ConfirmPayment.
func (r *Reservation) RefundPayment() error {
	if r.paymentStatus == PaymentRefunded {
		return nil
	}
	if r.paymentStatus != PaymentPaid {
		return ErrNotPaid
	}
	r.paymentStatus = PaymentRefunded
	return nil
}

// Blocks reports whether this reservation currently removes its
// interval from availability.
func (r *Reservation) Blocks() bool {
	return r.status.Blocks()
}

func (r *Reservation) IsBookedBy(userID uuid.UUID) bool {
	return r.userID == userID
}

func (r *Reservation) ID() uuid.UUID                { return r.id }
func (r *Reservation) CourtID() uuid.UUID           { return r.courtID }
func (r *Reservation) UserID() uuid.UUID            { return r.userID }
func (r *Reservation) Date() Date                   { return r.date }
func (r *Reservation) Slot() TimeSlot               { return r.slot }
func (r *Reservation) Status() Status               { return r.status }
func (r *Reservation) PaymentStatus() PaymentStatus { return r.paymentStatus }
func (r *Reservation) Amount() Money                { return r.amount }
func (r *Reservation) CreatedAt() time.Time         { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time         { return r.updatedAt }
