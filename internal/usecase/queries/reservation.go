package queries

import (
	"context"

	"courtside/internal/infra"
	"courtside/internal/pkg/errs"
	"courtside/internal/usecase/commands"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound = errs.New("reservation not found")
	ErrForbidden           = errs.New("actor is not allowed to view this reservation")
)

const defaultListLimit = 50

type ReservationReadStore interface {
	ViewByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int32) ([]ReservationListItem, error)
}

type ReservationQueries interface {
	GetByID(ctx context.Context, actor commands.Actor, id uuid.UUID) (*ReservationView, error)
	ListOwn(ctx context.Context, userID uuid.UUID) ([]ReservationListItem, error)
}

type reservationQueriesImpl struct {
	store ReservationReadStore
}

func NewReservationQueries(store ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{store: store}
}

// Non-admin callers can only see their own bookings.
func (q *reservationQueriesImpl) GetByID(ctx context.Context, actor commands.Actor, id uuid.UUID) (*ReservationView, error) {
	view, err := q.store.ViewByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}

	if view.UserID != actor.UserID && !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	return view, nil
}

func (q *reservationQueriesImpl) ListOwn(ctx context.Context, userID uuid.UUID) ([]ReservationListItem, error) {
	items, err := q.store.ListByUser(ctx, userID, defaultListLimit)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return items, nil
}
