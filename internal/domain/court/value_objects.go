package court

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidTimeOfDay     = errors.New("invalid time of day")
	ErrInvalidOperatingSpan = errors.New("open time must be before close time")
	ErrInvalidWeekday       = errors.New("day of week must be between 0 and 6")
	ErrDuplicateWeekday     = errors.New("duplicate day of week entry")
)

// TimeOfDay is a facility-local wall-clock time with minute precision.
// The engine carries no timezone anywhere; times are compared and
// stored exactly as the facility writes them.
type TimeOfDay struct {
	minutes int
}

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, ErrInvalidTimeOfDay
	}
	return TimeOfDay{minutes: hour*60 + minute}, nil
}

// ParseTimeOfDay accepts "15:04" formatted wall-clock strings.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return TimeOfDay{}, ErrInvalidTimeOfDay
	}
	return NewTimeOfDay(hour, minute)
}

func (t TimeOfDay) Hour() int   { return t.minutes / 60 }
func (t TimeOfDay) Minute() int { return t.minutes % 60 }

func (t TimeOfDay) MinutesFromMidnight() int {
	return t.minutes
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.minutes < other.minutes
}

func (t TimeOfDay) After(other TimeOfDay) bool {
	return t.minutes > other.minutes
}

func (t TimeOfDay) Equal(other TimeOfDay) bool {
	return t.minutes == other.minutes
}

// Add returns the time d later, capped at end of day. A fixed-length
// slot never rolls over midnight because partition stops at close time.
func (t TimeOfDay) Add(d time.Duration) TimeOfDay {
	m := t.minutes + int(d.Minutes())
	if m > 24*60 {
		m = 24 * 60
	}
	return TimeOfDay{minutes: m}
}

func (t TimeOfDay) Sub(other TimeOfDay) time.Duration {
	return time.Duration(t.minutes-other.minutes) * time.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// DayHours is the operating span for one weekday. A closed entry (or a
// missing one) contributes no bookable time.
type DayHours struct {
	open   TimeOfDay
	close  TimeOfDay
	closed bool
}

func NewDayHours(open, close TimeOfDay) (DayHours, error) {
	if !open.Before(close) {
		return DayHours{}, ErrInvalidOperatingSpan
	}
	return DayHours{open: open, close: close}, nil
}

func NewClosedDay() DayHours {
	return DayHours{closed: true}
}

func (d DayHours) Open() TimeOfDay  { return d.open }
func (d DayHours) Close() TimeOfDay { return d.close }
func (d DayHours) IsClosed() bool   { return d.closed }

// WeekSchedule maps weekday (time.Sunday..time.Saturday) to operating
// hours. Absent weekdays are closed.
type WeekSchedule struct {
	days map[time.Weekday]DayHours
}

func NewWeekSchedule() WeekSchedule {
	return WeekSchedule{days: make(map[time.Weekday]DayHours)}
}

func (w WeekSchedule) Set(day time.Weekday, hours DayHours) error {
	if day < time.Sunday || day > time.Saturday {
		return ErrInvalidWeekday
	}
	if _, exists := w.days[day]; exists {
		return ErrDuplicateWeekday
	}
	w.days[day] = hours
	return nil
}

// HoursFor returns the operating hours for the weekday; ok is false
// when the day has no entry, which callers treat as closed.
func (w WeekSchedule) HoursFor(day time.Weekday) (DayHours, bool) {
	if w.days == nil {
		return DayHours{}, false
	}
	h, ok := w.days[day]
	return h, ok
}
