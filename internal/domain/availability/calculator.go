// Package availability derives bookable slots from a court's weekly
// schedule and its current blocks. Results are computed fresh on every
// query and never cached or persisted.
package availability

import (
	"time"

	"courtside/internal/domain/court"
	"courtside/internal/domain/maintenance"
	"courtside/internal/domain/reservation"
)

// Slot is a fixed-duration candidate booking window. It has no
// identity and no storage.
type Slot struct {
	Start     court.TimeOfDay
	End       court.TimeOfDay
	Available bool
}

const minutesPerDay = 24 * 60

// block is a half-open [start,end) minute interval within the day.
type block struct {
	start int
	end   int
}

// ComputeSlots partitions the day's operating hours into consecutive
// slotLen windows (a trailing remainder shorter than slotLen is
// dropped) and marks each one unavailable when it intersects a
// blocking reservation or a maintenance window clipped to the date.
// The returned slice is always in chronological order.
//
// An empty result is a valid answer, not an error: courts that are not
// active, closed days and days without a schedule entry all yield nil.
func ComputeSlots(
	c *court.Court,
	schedule court.WeekSchedule,
	date reservation.Date,
	slotLen time.Duration,
	reservations []*reservation.Reservation,
	windows []*maintenance.Window,
) []Slot {
	if c == nil || !c.IsBookable() || slotLen <= 0 {
		return nil
	}

	hours, ok := schedule.HoursFor(date.Weekday())
	if !ok || hours.IsClosed() {
		return nil
	}

	blocks := gatherBlocks(date, reservations, windows)

	step := int(slotLen.Minutes())
	open := hours.Open().MinutesFromMidnight()
	close := hours.Close().MinutesFromMidnight()

	var slots []Slot
	for start := open; start+step <= close; start += step {
		end := start + step
		slots = append(slots, Slot{
			Start:     timeOfDay(start),
			End:       timeOfDay(end),
			Available: !intersectsAny(start, end, blocks),
		})
	}
	return slots
}

// IsIntervalAvailable re-derives the day's slots and reports whether
// the requested interval matches a bookable slot exactly. This is the
// check the committer runs under the per-(court,date) lock.
func IsIntervalAvailable(slots []Slot, start, end court.TimeOfDay) bool {
	for _, s := range slots {
		if s.Start.Equal(start) && s.End.Equal(end) {
			return s.Available
		}
	}
	return false
}

func gatherBlocks(
	date reservation.Date,
	reservations []*reservation.Reservation,
	windows []*maintenance.Window,
) []block {
	var blocks []block

	for _, r := range reservations {
		if r == nil || !r.Blocks() || !r.Date().Equal(date) {
			continue
		}
		blocks = append(blocks, block{
			start: r.Slot().Start().MinutesFromMidnight(),
			end:   r.Slot().End().MinutesFromMidnight(),
		})
	}

	for _, w := range windows {
		if w == nil {
			continue
		}
		if b, ok := clipWindow(w, date); ok {
			blocks = append(blocks, b)
		}
	}

	return blocks
}

// clipWindow intersects a maintenance span with the date's
// midnight-to-midnight range, comparing wall-clock fields only.
func clipWindow(w *maintenance.Window, date reservation.Date) (block, bool) {
	startDate := reservation.DateOf(w.StartAt())
	endDate := reservation.DateOf(w.EndAt())

	if date.Before(startDate) || endDate.Before(date) {
		return block{}, false
	}

	start := 0
	if startDate.Equal(date) {
		start = w.StartAt().Hour()*60 + w.StartAt().Minute()
	}

	end := minutesPerDay
	if endDate.Equal(date) {
		end = w.EndAt().Hour()*60 + w.EndAt().Minute()
	}

	if start >= end {
		return block{}, false
	}
	return block{start: start, end: end}, true
}

func intersectsAny(start, end int, blocks []block) bool {
	for _, b := range blocks {
		if start < b.end && b.start < end {
			return true
		}
	}
	return false
}

func timeOfDay(minutes int) court.TimeOfDay {
	t, _ := court.NewTimeOfDay(minutes/60, minutes%60)
	return t
}
