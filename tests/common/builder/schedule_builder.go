//go:build unit || e2e

package builder

import (
	"time"

	"courtside/internal/domain/court"
)

// WeekScheduleBuilder defaults to 09:00-21:00 every day; individual
// days can be overridden or closed.
type WeekScheduleBuilder struct {
	hours map[time.Weekday]court.DayHours
}

func NewWeekScheduleBuilder() *WeekScheduleBuilder {
	open, _ := court.NewTimeOfDay(9, 0)
	closeAt, _ := court.NewTimeOfDay(21, 0)
	hours, _ := court.NewDayHours(open, closeAt)

	days := make(map[time.Weekday]court.DayHours, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		days[d] = hours
	}
	return &WeekScheduleBuilder{hours: days}
}

func (b *WeekScheduleBuilder) WithDayHours(day time.Weekday, openHour, closeHour int) *WeekScheduleBuilder {
	open, _ := court.NewTimeOfDay(openHour, 0)
	closeAt, _ := court.NewTimeOfDay(closeHour, 0)
	hours, _ := court.NewDayHours(open, closeAt)
	b.hours[day] = hours
	return b
}

func (b *WeekScheduleBuilder) WithClosedDay(day time.Weekday) *WeekScheduleBuilder {
	b.hours[day] = court.NewClosedDay()
	return b
}

func (b *WeekScheduleBuilder) Build() court.WeekSchedule {
	schedule := court.NewWeekSchedule()
	for day, hours := range b.hours {
		_ = schedule.Set(day, hours)
	}
	return schedule
}
