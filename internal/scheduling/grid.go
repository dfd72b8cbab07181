package scheduling

import "errors"

var (
	ErrInvalidWindow      = errors.New("opening time must be before closing time")
	ErrInvalidGranularity = errors.New("slot granularity must be positive")
	ErrSlotOffGrid        = errors.New("time is not a slot on the grid")
)

// Grid is the canonical ordered sequence of appointment start times for one
// clinic day: fixed-width ticks from the opening time up to the last tick
// whose end does not pass the closing time. A Grid is immutable once built.
type Grid struct {
	slots       []TimeOfDay
	index       map[TimeOfDay]int
	granularity int
}

// NewGrid builds the slot grid for an opening window. The last generated
// slot is the last one whose full tick fits before close, so
// NewGrid(08:00, 20:00, 20) ends at 19:40.
func NewGrid(open, close TimeOfDay, granularityMinutes int) (*Grid, error) {
	if granularityMinutes <= 0 {
		return nil, ErrInvalidGranularity
	}
	if open >= close {
		return nil, ErrInvalidWindow
	}

	g := &Grid{
		index:       make(map[TimeOfDay]int),
		granularity: granularityMinutes,
	}
	for cur := open; cur+TimeOfDay(granularityMinutes) <= close; cur += TimeOfDay(granularityMinutes) {
		g.index[cur] = len(g.slots)
		g.slots = append(g.slots, cur)
	}
	return g, nil
}

// Slots returns the ascending slot sequence. Callers must not mutate it.
func (g *Grid) Slots() []TimeOfDay {
	return g.slots
}

func (g *Grid) Granularity() int {
	return g.granularity
}

// Contains reports whether t is exactly one of the grid's ticks.
func (g *Grid) Contains(t TimeOfDay) bool {
	_, ok := g.index[t]
	return ok
}

// TicksFor returns how many consecutive grid ticks a visit of the given
// duration occupies (duration rounded up to whole ticks).
func (g *Grid) TicksFor(durationMinutes int) int {
	return (durationMinutes + g.granularity - 1) / g.granularity
}

// RequiredSlots returns the consecutive ticks a visit starting at start
// would occupy. ok is false when start is off the grid or the visit would
// run past the end of the grid; that case must never be booked.
func (g *Grid) RequiredSlots(start TimeOfDay, durationMinutes int) ([]TimeOfDay, bool) {
	first, onGrid := g.index[start]
	if !onGrid || durationMinutes <= 0 {
		return nil, false
	}
	ticks := g.TicksFor(durationMinutes)
	if first+ticks > len(g.slots) {
		return nil, false
	}
	return g.slots[first : first+ticks], true
}
