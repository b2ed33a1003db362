package repository

import (
	"context"
	"errors"

	"courtside/internal/domain/reservation"
	"courtside/internal/infra"
	"courtside/internal/infra/converter"
	"courtside/internal/infra/db"

	"github.com/jackc/pgx/v5/pgconn"
)

type ReservationRepository struct {
	db db.DBTX
}

func NewReservationRepository(dbtx db.DBTX) *ReservationRepository {
	return &ReservationRepository{db: dbtx}
}

const createReservationQuery = `
INSERT INTO reservations (id, court_id, user_id, date, start_min, end_min, status, payment_status, amount_cents)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

// Create relies on the exclusion constraint over (court_id, date,
// minute range) as the storage-level double-booking guard; a violation
// surfaces as KindConflict.
func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	_, err := r.db.Exec(ctx, createReservationQuery,
		res.ID(),
		res.CourtID(),
		res.UserID(),
		converter.DateToTime(res.Date()),
		converter.MinutesFromTimeOfDay(res.Slot().Start()),
		converter.MinutesFromTimeOfDay(res.Slot().End()),
		res.Status().String(),
		res.PaymentStatus().String(),
		res.Amount().Cents(),
	)
	if err != nil {
		if isOverlapViolation(err) {
			return infra.WrapRepoErr("reservation overlaps an existing booking", err, infra.KindConflict)
		}
		return infra.WrapRepoErr("failed to create reservation", err)
	}
	return nil
}

const updateReservationStatusQuery = `
UPDATE reservations
SET status = $2, payment_status = $3, updated_at = now()
WHERE id = $1
`

func (r *ReservationRepository) UpdateStatus(ctx context.Context, res *reservation.Reservation) error {
	tag, err := r.db.Exec(ctx, updateReservationStatusQuery,
		res.ID(),
		res.Status().String(),
		res.PaymentStatus().String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

const settlePaymentQuery = `
UPDATE reservations
SET status = $2, payment_status = $3, updated_at = now()
WHERE id = $1 AND status = $4
`

// SettlePayment is a compare-and-swap on the status column. The
// in-process lock cannot see writes from other replicas, so the guard
// lives in the row itself: if a cancellation landed after the caller's
// read, zero rows match and the transition is reported as a conflict
// rather than resurrecting the reservation.
func (r *ReservationRepository) SettlePayment(ctx context.Context, res *reservation.Reservation, expected reservation.Status) error {
	tag, err := r.db.Exec(ctx, settlePaymentQuery,
		res.ID(),
		res.Status().String(),
		res.PaymentStatus().String(),
		expected.String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to settle payment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation status changed since read", nil, infra.KindConflict)
	}
	return nil
}

// isOverlapViolation covers both the gist exclusion constraint and the
// primary key, either of which means the write lost a race.
func isOverlapViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "23P01" || pgErr.Code == "23505"
}
