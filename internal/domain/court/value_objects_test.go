//go:build unit

package court_test

import (
	"testing"
	"time"

	"courtside/internal/domain/court"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeOfDay(t *testing.T) {
	t.Run("valid construction", func(t *testing.T) {
		tod, err := court.NewTimeOfDay(9, 30)
		require.NoError(t, err)
		assert.Equal(t, 9, tod.Hour())
		assert.Equal(t, 30, tod.Minute())
		assert.Equal(t, 570, tod.MinutesFromMidnight())
		assert.Equal(t, "09:30", tod.String())
	})

	t.Run("rejects out-of-range values", func(t *testing.T) {
		cases := []struct {
			name         string
			hour, minute int
		}{
			{"negative hour", -1, 0},
			{"hour 24", 24, 0},
			{"negative minute", 10, -1},
			{"minute 60", 10, 60},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := court.NewTimeOfDay(tc.hour, tc.minute)
				assert.ErrorIs(t, err, court.ErrInvalidTimeOfDay)
			})
		}
	})

	t.Run("parse wall-clock strings", func(t *testing.T) {
		tod, err := court.ParseTimeOfDay("21:05")
		require.NoError(t, err)
		assert.Equal(t, 21*60+5, tod.MinutesFromMidnight())

		_, err = court.ParseTimeOfDay("25:00")
		assert.ErrorIs(t, err, court.ErrInvalidTimeOfDay)

		_, err = court.ParseTimeOfDay("not a time")
		assert.ErrorIs(t, err, court.ErrInvalidTimeOfDay)
	})

	t.Run("ordering and arithmetic", func(t *testing.T) {
		nine, _ := court.NewTimeOfDay(9, 0)
		ten, _ := court.NewTimeOfDay(10, 0)

		assert.True(t, nine.Before(ten))
		assert.True(t, ten.After(nine))
		assert.False(t, nine.Equal(ten))
		assert.Equal(t, time.Hour, ten.Sub(nine))
		assert.True(t, nine.Add(time.Hour).Equal(ten))
	})
}

func TestDayHours(t *testing.T) {
	nine, _ := court.NewTimeOfDay(9, 0)
	ten, _ := court.NewTimeOfDay(10, 0)

	t.Run("open must precede close", func(t *testing.T) {
		_, err := court.NewDayHours(ten, nine)
		assert.ErrorIs(t, err, court.ErrInvalidOperatingSpan)

		_, err = court.NewDayHours(nine, nine)
		assert.ErrorIs(t, err, court.ErrInvalidOperatingSpan)
	})

	t.Run("closed day has no hours", func(t *testing.T) {
		closed := court.NewClosedDay()
		assert.True(t, closed.IsClosed())
	})
}

func TestWeekSchedule(t *testing.T) {
	nine, _ := court.NewTimeOfDay(9, 0)
	ten, _ := court.NewTimeOfDay(10, 0)
	hours, _ := court.NewDayHours(nine, ten)

	t.Run("rejects duplicate weekday", func(t *testing.T) {
		schedule := court.NewWeekSchedule()
		require.NoError(t, schedule.Set(time.Monday, hours))
		assert.ErrorIs(t, schedule.Set(time.Monday, hours), court.ErrDuplicateWeekday)
	})

	t.Run("missing weekday reads as closed", func(t *testing.T) {
		schedule := court.NewWeekSchedule()
		require.NoError(t, schedule.Set(time.Monday, hours))

		_, ok := schedule.HoursFor(time.Tuesday)
		assert.False(t, ok)

		got, ok := schedule.HoursFor(time.Monday)
		require.True(t, ok)
		assert.False(t, got.IsClosed())
	})
}
