package scheduling

import (
	"time"

	"github.com/google/uuid"
)

// WorkingInterval is a half-open working window [Start, End) within one day.
type WorkingInterval struct {
	Start TimeOfDay
	End   TimeOfDay
}

// WeeklySchedule maps a weekday to a doctor's working interval. A missing
// entry means the doctor does not work that day.
type WeeklySchedule map[time.Weekday]WorkingInterval

// OccupiedSet is the set of grid ticks already taken for one doctor on one
// date.
type OccupiedSet map[TimeOfDay]struct{}

// BookedRange is the slice of an existing booking the engine cares about.
type BookedRange struct {
	Start           TimeOfDay
	DurationMinutes int
}

// DoctorDay bundles everything known about one doctor for one date. A nil
// Schedule means the schedule could not be loaded; such doctors are treated
// as ineligible rather than unconditionally available.
type DoctorDay struct {
	ID       uuid.UUID
	Schedule WeeklySchedule
	Occupied OccupiedSet
}

// OccupiedSlots expands a doctor's bookings for a date into the union of
// grid ticks they cover. Bookings whose start is no longer a tick on the
// current grid (the granularity may have changed since they were written)
// are skipped.
func OccupiedSlots(grid *Grid, bookings []BookedRange) OccupiedSet {
	occupied := make(OccupiedSet)
	for _, b := range bookings {
		slots, ok := grid.RequiredSlots(b.Start, b.DurationMinutes)
		if !ok {
			continue
		}
		for _, s := range slots {
			occupied[s] = struct{}{}
		}
	}
	return occupied
}

// fits reports whether every required tick lies inside the working interval:
// the first tick must start at or after Start, and the tick after the last
// required one must end at or before End.
func fits(grid *Grid, interval WorkingInterval, required []TimeOfDay) bool {
	if len(required) == 0 {
		return false
	}
	first := required[0]
	lastEnd := required[len(required)-1] + TimeOfDay(grid.Granularity())
	return first >= interval.Start && lastEnd <= interval.End
}

// EligibleDoctors returns the doctors able to serve a visit of the given
// duration starting at start on the given weekday: the visit must fit the
// grid, fit the doctor's working interval for that weekday, and claim no
// tick the doctor already has booked.
func EligibleDoctors(grid *Grid, doctors []DoctorDay, weekday time.Weekday, start TimeOfDay, durationMinutes int) []uuid.UUID {
	required, ok := grid.RequiredSlots(start, durationMinutes)
	if !ok {
		return nil
	}

	var eligible []uuid.UUID
	for _, d := range doctors {
		if d.Schedule == nil {
			continue
		}
		interval, works := d.Schedule[weekday]
		if !works {
			continue
		}
		if !fits(grid, interval, required) {
			continue
		}
		if overlapsOccupied(required, d.Occupied) {
			continue
		}
		eligible = append(eligible, d.ID)
	}
	return eligible
}

func overlapsOccupied(required []TimeOfDay, occupied OccupiedSet) bool {
	for _, s := range required {
		if _, taken := occupied[s]; taken {
			return true
		}
	}
	return false
}

// AnyDoctorFree reports whether the candidate slot should be offered for
// date: at least one doctor must be eligible, and when date is today, slots
// whose start time has already passed are never offered regardless of
// schedules or occupancy.
func AnyDoctorFree(grid *Grid, doctors []DoctorDay, date, now time.Time, slot TimeOfDay, durationMinutes int) bool {
	if SlotInPast(date, now, slot) {
		return false
	}
	return len(EligibleDoctors(grid, doctors, date.Weekday(), slot, durationMinutes)) > 0
}

// SlotInPast reports whether slot on date lies strictly before now.
func SlotInPast(date, now time.Time, slot TimeOfDay) bool {
	if DateInPast(date, now) {
		return true
	}
	return SameDay(date, now) && slot < TimeOfDayOf(now)
}
