// Package converter translates between storage scalars and domain
// value objects. Times of day are persisted as minutes since midnight,
// calendar dates as DATE columns with the time part ignored.
package converter

import (
	"time"

	"courtside/internal/domain/court"
	"courtside/internal/domain/reservation"

	"courtside/internal/pkg/errs"
)

var errMinutesOutOfRange = errs.New("minutes value outside a single day")

func DateToTime(d reservation.Date) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

func DateFromTime(t time.Time) reservation.Date {
	return reservation.DateOf(t)
}

func MinutesFromTimeOfDay(t court.TimeOfDay) int16 {
	return int16(t.MinutesFromMidnight())
}

func TimeOfDayFromMinutes(m int16) (court.TimeOfDay, error) {
	t, err := court.NewTimeOfDay(int(m)/60, int(m)%60)
	if err != nil {
		return court.TimeOfDay{}, errs.Mark(err, errMinutesOutOfRange)
	}
	return t, nil
}

func SlotFromMinutes(startMin, endMin int16) (reservation.TimeSlot, error) {
	start, err := TimeOfDayFromMinutes(startMin)
	if err != nil {
		return reservation.TimeSlot{}, err
	}
	end, err := TimeOfDayFromMinutes(endMin)
	if err != nil {
		return reservation.TimeSlot{}, err
	}
	return reservation.NewTimeSlot(start, end)
}
