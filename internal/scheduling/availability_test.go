package scheduling

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mondayGrid(t *testing.T) *Grid {
	t.Helper()
	grid, err := NewGrid(MustTimeOfDay("08:00"), MustTimeOfDay("18:00"), 20)
	require.NoError(t, err)
	return grid
}

func mondayEightToThree() WeeklySchedule {
	return WeeklySchedule{
		time.Monday: {Start: MustTimeOfDay("08:00"), End: MustTimeOfDay("15:00")},
	}
}

func TestEligibleDoctorsScheduleFit(t *testing.T) {
	grid := mondayGrid(t)
	doc := DoctorDay{ID: uuid.New(), Schedule: mondayEightToThree(), Occupied: OccupiedSet{}}

	// Works Monday 08:00-15:00, empty day, 20-minute visit at 08:00.
	got := EligibleDoctors(grid, []DoctorDay{doc}, time.Monday, MustTimeOfDay("08:00"), 20)
	assert.Equal(t, []uuid.UUID{doc.ID}, got)

	// 40-minute visit at 14:40 would end 15:20, past the 15:00 end.
	got = EligibleDoctors(grid, []DoctorDay{doc}, time.Monday, MustTimeOfDay("14:40"), 40)
	assert.Empty(t, got)

	// Last tick that still fits: 14:20 for 40 minutes ends exactly at 15:00.
	got = EligibleDoctors(grid, []DoctorDay{doc}, time.Monday, MustTimeOfDay("14:20"), 40)
	assert.Equal(t, []uuid.UUID{doc.ID}, got)

	// Doctor has no entry for Tuesday.
	got = EligibleDoctors(grid, []DoctorDay{doc}, time.Tuesday, MustTimeOfDay("08:00"), 20)
	assert.Empty(t, got)
}

func TestEligibleDoctorsOccupancy(t *testing.T) {
	grid := mondayGrid(t)
	occupied := OccupiedSlots(grid, []BookedRange{
		{Start: MustTimeOfDay("09:00"), DurationMinutes: 40}, // 09:00 and 09:20
	})
	doc := DoctorDay{ID: uuid.New(), Schedule: mondayEightToThree(), Occupied: occupied}

	// 09:20 falls inside the occupied span.
	got := EligibleDoctors(grid, []DoctorDay{doc}, time.Monday, MustTimeOfDay("09:20"), 20)
	assert.Empty(t, got)

	// 09:40 starts right after the occupied span ends.
	got = EligibleDoctors(grid, []DoctorDay{doc}, time.Monday, MustTimeOfDay("09:40"), 20)
	assert.Equal(t, []uuid.UUID{doc.ID}, got)

	// A longer visit at 08:40 would claim the occupied 09:00 tick.
	got = EligibleDoctors(grid, []DoctorDay{doc}, time.Monday, MustTimeOfDay("08:40"), 40)
	assert.Empty(t, got)
}

// Eligibility is sound in both directions: a returned doctor always has the
// required ticks inside their working interval and outside their occupied
// set, and a doctor violating either condition is never returned.
func TestEligibleDoctorsSoundness(t *testing.T) {
	grid := mondayGrid(t)
	free := DoctorDay{ID: uuid.New(), Schedule: mondayEightToThree(), Occupied: OccupiedSet{}}
	busy := DoctorDay{
		ID:       uuid.New(),
		Schedule: mondayEightToThree(),
		Occupied: OccupiedSlots(grid, []BookedRange{{Start: MustTimeOfDay("10:00"), DurationMinutes: 120}}),
	}
	offToday := DoctorDay{ID: uuid.New(), Schedule: WeeklySchedule{}, Occupied: OccupiedSet{}}
	unloaded := DoctorDay{ID: uuid.New(), Schedule: nil, Occupied: OccupiedSet{}}
	doctors := []DoctorDay{free, busy, offToday, unloaded}

	for _, slot := range grid.Slots() {
		eligible := EligibleDoctors(grid, doctors, time.Monday, slot, 20)
		required, ok := grid.RequiredSlots(slot, 20)
		for _, id := range eligible {
			require.True(t, ok)
			var doc DoctorDay
			for _, d := range doctors {
				if d.ID == id {
					doc = d
				}
			}
			interval, works := doc.Schedule[time.Monday]
			require.True(t, works, "eligible doctor must work that weekday")
			assert.True(t, fits(grid, interval, required))
			assert.False(t, overlapsOccupied(required, doc.Occupied))
		}
		// A doctor with no schedule entry or with a claimed tick never shows up.
		assert.NotContains(t, eligible, offToday.ID)
		assert.NotContains(t, eligible, unloaded.ID)
		if overlapsOccupied(required, busy.Occupied) {
			assert.NotContains(t, eligible, busy.ID)
		}
	}
}

func TestAnyDoctorFreePastSlotSuppression(t *testing.T) {
	grid := mondayGrid(t)
	doc := DoctorDay{ID: uuid.New(), Schedule: mondayEightToThree(), Occupied: OccupiedSet{}}
	doctors := []DoctorDay{doc}

	// Monday 2026-09-07, "now" is that day 10:05.
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 7, 10, 5, 0, 0, time.UTC)

	assert.False(t, AnyDoctorFree(grid, doctors, date, now, MustTimeOfDay("09:40"), 20))
	assert.False(t, AnyDoctorFree(grid, doctors, date, now, MustTimeOfDay("10:00"), 20))
	assert.True(t, AnyDoctorFree(grid, doctors, date, now, MustTimeOfDay("10:20"), 20))

	// A different (future) day is unaffected by the clock.
	nextWeek := date.AddDate(0, 0, 7)
	assert.True(t, AnyDoctorFree(grid, doctors, nextWeek, now, MustTimeOfDay("08:00"), 20))

	// Days fully in the past are never offered.
	lastWeek := date.AddDate(0, 0, -7)
	assert.False(t, AnyDoctorFree(grid, doctors, lastWeek, now, MustTimeOfDay("08:00"), 20))
}

func TestOccupiedSlotsSkipsOffGridBookings(t *testing.T) {
	grid := mondayGrid(t)
	occupied := OccupiedSlots(grid, []BookedRange{
		{Start: MustTimeOfDay("09:00"), DurationMinutes: 20},
		// Written under an older 15-minute grid; no longer a tick.
		{Start: MustTimeOfDay("09:15"), DurationMinutes: 20},
	})

	assert.Len(t, occupied, 1)
	_, taken := occupied[MustTimeOfDay("09:00")]
	assert.True(t, taken)
}

// Committed bookings for one doctor and date never share a tick once each
// new booking is checked against the occupied set built from the others.
func TestNoOverlapInvariant(t *testing.T) {
	grid := mondayGrid(t)
	var committed []BookedRange

	tryBook := func(start TimeOfDay, duration int) bool {
		occupied := OccupiedSlots(grid, committed)
		required, ok := grid.RequiredSlots(start, duration)
		if !ok || overlapsOccupied(required, occupied) {
			return false
		}
		committed = append(committed, BookedRange{Start: start, DurationMinutes: duration})
		return true
	}

	assert.True(t, tryBook(MustTimeOfDay("09:00"), 40))
	assert.False(t, tryBook(MustTimeOfDay("09:20"), 20))
	assert.True(t, tryBook(MustTimeOfDay("09:40"), 120))
	assert.False(t, tryBook(MustTimeOfDay("10:00"), 20))

	// The union of all committed ticks has no duplicates.
	seen := make(map[TimeOfDay]int)
	for _, b := range committed {
		slots, ok := grid.RequiredSlots(b.Start, b.DurationMinutes)
		require.True(t, ok)
		for _, s := range slots {
			seen[s]++
		}
	}
	for slot, count := range seen {
		assert.Equal(t, 1, count, "slot %s booked more than once", slot)
	}
}
