package reservation

import (
	"errors"
	"fmt"
	"time"

	"courtside/internal/domain/court"
)

var (
	ErrInvalidDate     = errors.New("invalid calendar date")
	ErrInvalidTimeSlot = errors.New("start time must be before end time")
	ErrNegativeAmount  = errors.New("amount cannot be negative")
)

// Date is a facility-local calendar day. Like TimeOfDay it carries no
// timezone; the engine compares wall-clock fields only.
type Date struct {
	year  int
	month time.Month
	day   int
}

func NewDate(year int, month time.Month, day int) (Date, error) {
	if year < 1 || month < time.January || month > time.December || day < 1 {
		return Date{}, ErrInvalidDate
	}
	// Normalization shifting the day means the input was out of range.
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return Date{}, ErrInvalidDate
	}
	return Date{year: year, month: month, day: day}, nil
}

// ParseDate accepts "2006-01-02" formatted dates.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}, nil
}

func DateOf(t time.Time) Date {
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}
}

func (d Date) Year() int         { return d.year }
func (d Date) Month() time.Month { return d.month }
func (d Date) Day() int          { return d.day }

func (d Date) Weekday() time.Weekday {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC).Weekday()
}

func (d Date) Equal(other Date) bool {
	return d == other
}

func (d Date) Before(other Date) bool {
	if d.year != other.year {
		return d.year < other.year
	}
	if d.month != other.month {
		return d.month < other.month
	}
	return d.day < other.day
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

// TimeSlot is a half-open [start,end) wall-clock interval within a
// single day.
type TimeSlot struct {
	start court.TimeOfDay
	end   court.TimeOfDay
}

func NewTimeSlot(start, end court.TimeOfDay) (TimeSlot, error) {
	if !start.Before(end) {
		return TimeSlot{}, ErrInvalidTimeSlot
	}
	return TimeSlot{start: start, end: end}, nil
}

func (s TimeSlot) Start() court.TimeOfDay { return s.start }
func (s TimeSlot) End() court.TimeOfDay   { return s.end }

func (s TimeSlot) Duration() time.Duration {
	return s.end.Sub(s.start)
}

// Overlaps uses half-open interval intersection: touching endpoints do
// not conflict.
func (s TimeSlot) Overlaps(other TimeSlot) bool {
	return s.start.Before(other.end) && other.start.Before(s.end)
}

func (s TimeSlot) String() string {
	return s.start.String() + "-" + s.end.String()
}

// Money is a flat per-booking amount in cents.
type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}
