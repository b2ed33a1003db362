package readstore

import (
	"context"
	"errors"
	"time"

	"courtside/internal/domain/reservation"
	"courtside/internal/infra"
	"courtside/internal/infra/converter"
	"courtside/internal/infra/db"
	"courtside/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(dbtx db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: dbtx}
}

const reservationColumns = `
id, court_id, user_id, date, start_min, end_min, status, payment_status, amount_cents, created_at, updated_at
`

const findReservationByIDQuery = `
SELECT ` + reservationColumns + `
FROM reservations
WHERE id = $1
`

func (s *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row := s.db.QueryRow(ctx, findReservationByIDQuery, id)
	res, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return res, nil
}

const findBlockingQuery = `
SELECT ` + reservationColumns + `
FROM reservations
WHERE court_id = $1
  AND date = $2
  AND status IN ('pending', 'confirmed')
ORDER BY start_min
`

// FindBlockingByDate returns the reservations that currently remove
// time from the given court-day.
func (s *ReservationReadStore) FindBlockingByDate(ctx context.Context, courtID uuid.UUID, date reservation.Date) ([]*reservation.Reservation, error) {
	rows, err := s.db.Query(ctx, findBlockingQuery, courtID, converter.DateToTime(date))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find blocking reservations", err)
	}
	defer rows.Close()
	return collectReservations(rows)
}

const findConfirmedBetweenQuery = `
SELECT ` + reservationColumns + `
FROM reservations
WHERE court_id = $1
  AND status = 'confirmed'
  AND (date + make_interval(mins => start_min::int)) < $3
  AND $2 < (date + make_interval(mins => end_min::int))
ORDER BY date, start_min
`

// FindConfirmedBetween matches confirmed reservations whose wall-clock
// span intersects [startAt, endAt); used for maintenance conflict
// warnings.
func (s *ReservationReadStore) FindConfirmedBetween(ctx context.Context, courtID uuid.UUID, startAt, endAt time.Time) ([]*reservation.Reservation, error) {
	rows, err := s.db.Query(ctx, findConfirmedBetweenQuery, courtID, startAt, endAt)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find confirmed reservations in range", err)
	}
	defer rows.Close()
	return collectReservations(rows)
}

const reservationViewQuery = `
SELECT r.id, r.court_id, c.name, r.user_id, r.date, r.start_min, r.end_min,
       r.status, r.payment_status, r.amount_cents, r.created_at, r.updated_at
FROM reservations r
JOIN courts c ON c.id = r.court_id
WHERE r.id = $1
`

func (s *ReservationReadStore) ViewByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	var (
		view             queries.ReservationView
		date             time.Time
		startMin, endMin int16
	)
	err := s.db.QueryRow(ctx, reservationViewQuery, id).Scan(
		&view.ID, &view.CourtID, &view.CourtName, &view.UserID, &date,
		&startMin, &endMin, &view.Status, &view.PaymentStatus,
		&view.AmountCents, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation view", err)
	}

	view.Date = reservation.DateOf(date).String()
	view.StartTime, view.EndTime = formatSpan(startMin, endMin)
	return &view, nil
}

const listByUserQuery = `
SELECT r.id, r.court_id, c.name, r.date, r.start_min, r.end_min, r.status, r.created_at
FROM reservations r
JOIN courts c ON c.id = r.court_id
WHERE r.user_id = $1
ORDER BY r.date DESC, r.start_min DESC
LIMIT $2
`

func (s *ReservationReadStore) ListByUser(ctx context.Context, userID uuid.UUID, limit int32) ([]queries.ReservationListItem, error) {
	rows, err := s.db.Query(ctx, listByUserQuery, userID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations by user", err)
	}
	defer rows.Close()

	items := make([]queries.ReservationListItem, 0)
	for rows.Next() {
		var (
			item             queries.ReservationListItem
			date             time.Time
			startMin, endMin int16
		)
		err := rows.Scan(&item.ID, &item.CourtID, &item.CourtName, &date,
			&startMin, &endMin, &item.Status, &item.CreatedAt)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation row", err)
		}
		item.Date = reservation.DateOf(date).String()
		item.StartTime, item.EndTime = formatSpan(startMin, endMin)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation rows", err)
	}
	return items, nil
}

func formatSpan(startMin, endMin int16) (string, string) {
	start, err := converter.TimeOfDayFromMinutes(startMin)
	if err != nil {
		return "", ""
	}
	end, err := converter.TimeOfDayFromMinutes(endMin)
	if err != nil {
		return "", ""
	}
	return start.String(), end.String()
}

func scanReservation(row pgx.Row) (*reservation.Reservation, error) {
	var (
		id, courtID, userID  uuid.UUID
		date                 time.Time
		startMin, endMin     int16
		status, payment      string
		amountCents          int64
		createdAt, updatedAt time.Time
	)
	err := row.Scan(&id, &courtID, &userID, &date, &startMin, &endMin,
		&status, &payment, &amountCents, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	slot, err := converter.SlotFromMinutes(startMin, endMin)
	if err != nil {
		return nil, err
	}
	amount, err := reservation.NewMoney(amountCents)
	if err != nil {
		return nil, err
	}

	return reservation.ReconstructReservation(
		id, courtID, userID,
		reservation.DateOf(date),
		slot,
		reservation.Status(status),
		reservation.PaymentStatus(payment),
		amount,
		createdAt, updatedAt,
	), nil
}

func collectReservations(rows pgx.Rows) ([]*reservation.Reservation, error) {
	var result []*reservation.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation row", err)
		}
		result = append(result, res)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation rows", err)
	}
	return result, nil
}
