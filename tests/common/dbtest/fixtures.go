//go:build unit || e2e

package dbtest

import (
	"context"
	"testing"
	"time"

	"courtside/internal/domain/court"
	"courtside/internal/domain/reservation"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// CreateTestCourt inserts an active outdoor hard court and returns its ID.
func CreateTestCourt(t *testing.T, db DBLike, ownerID uuid.UUID, name string) uuid.UUID {
	t.Helper()

	courtID := uuid.New()
	_, err := db.Exec(context.Background(),
		`INSERT INTO courts (id, owner_id, name, court_count, indoor, lighting, surface, status)
		 VALUES ($1, $2, $3, 1, false, true, 'hard', 'active')`,
		courtID, ownerID, name)
	require.NoError(t, err)

	return courtID
}

func SetCourtStatus(t *testing.T, db DBLike, courtID uuid.UUID, status court.Status) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"UPDATE courts SET status = $2, updated_at = now() WHERE id = $1",
		courtID, status.String())
	require.NoError(t, err)
}

// CreateFullWeekSchedule opens the court every day of the week with the
// given hours.
func CreateFullWeekSchedule(t *testing.T, db DBLike, courtID uuid.UUID, openHour, closeHour int) {
	t.Helper()

	for day := 0; day <= 6; day++ {
		_, err := db.Exec(context.Background(),
			`INSERT INTO court_schedules (court_id, day_of_week, open_min, close_min, closed)
			 VALUES ($1, $2, $3, $4, false)`,
			courtID, day, openHour*60, closeHour*60)
		require.NoError(t, err)
	}
}

func CloseWeekday(t *testing.T, db DBLike, courtID uuid.UUID, day time.Weekday) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		`INSERT INTO court_schedules (court_id, day_of_week, open_min, close_min, closed)
		 VALUES ($1, $2, NULL, NULL, true)
		 ON CONFLICT (court_id, day_of_week)
		 DO UPDATE SET open_min = NULL, close_min = NULL, closed = true`,
		courtID, int(day))
	require.NoError(t, err)
}

// CreateTestReservation seeds a pending reservation occupying
// [startHour, endHour) on the date.
func CreateTestReservation(t *testing.T, db DBLike, courtID, userID uuid.UUID, date reservation.Date, startHour, endHour int) uuid.UUID {
	t.Helper()

	id := uuid.New()
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	_, err := db.Exec(context.Background(),
		`INSERT INTO reservations (id, court_id, user_id, date, start_min, end_min, status, payment_status, amount_cents)
		 VALUES ($1, $2, $3, $4, $5, $6, 'pending', 'pending', 2000)`,
		id, courtID, userID, day, startHour*60, endHour*60)
	require.NoError(t, err)

	return id
}

// ResetDB truncates all mutable tables between subtests.
func ResetDB(pool *pgxpool.Pool) error {
	_, err := pool.Exec(context.Background(),
		"TRUNCATE reservations, maintenance_windows, court_schedules, courts, domain_events CASCADE")
	return err
}
