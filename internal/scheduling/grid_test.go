package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	got, err := ParseTimeOfDay("08:00")
	require.NoError(t, err)
	assert.Equal(t, 480, got.Minutes())
	assert.Equal(t, "08:00", got.String())

	_, err = ParseTimeOfDay("8 am")
	assert.ErrorIs(t, err, ErrInvalidTimeOfDay)

	_, err = TimeOfDayFromMinutes(1440)
	assert.ErrorIs(t, err, ErrInvalidTimeOfDay)
}

func TestNewGridFullDay(t *testing.T) {
	grid, err := NewGrid(MustTimeOfDay("08:00"), MustTimeOfDay("20:00"), 20)
	require.NoError(t, err)

	slots := grid.Slots()
	require.Len(t, slots, 37)
	assert.Equal(t, "08:00", slots[0].String())
	assert.Equal(t, "19:40", slots[36].String())

	// Strictly ascending, all on 20-minute boundaries from opening.
	for i := 1; i < len(slots); i++ {
		assert.Equal(t, 20, slots[i].Minutes()-slots[i-1].Minutes())
	}

	// Deterministic: a second build yields the identical sequence.
	again, err := NewGrid(MustTimeOfDay("08:00"), MustTimeOfDay("20:00"), 20)
	require.NoError(t, err)
	assert.Equal(t, slots, again.Slots())
}

func TestNewGridTruncation(t *testing.T) {
	// Window not evenly divisible: last slot is the last one whose tick
	// still ends at or before close.
	grid, err := NewGrid(MustTimeOfDay("08:00"), MustTimeOfDay("17:50"), 20)
	require.NoError(t, err)

	slots := grid.Slots()
	assert.Equal(t, "17:20", slots[len(slots)-1].String())
}

func TestNewGridRejectsBadInput(t *testing.T) {
	_, err := NewGrid(MustTimeOfDay("18:00"), MustTimeOfDay("08:00"), 20)
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = NewGrid(MustTimeOfDay("08:00"), MustTimeOfDay("18:00"), 0)
	assert.ErrorIs(t, err, ErrInvalidGranularity)
}

func TestRequiredSlots(t *testing.T) {
	grid, err := NewGrid(MustTimeOfDay("08:00"), MustTimeOfDay("18:00"), 20)
	require.NoError(t, err)

	slots, ok := grid.RequiredSlots(MustTimeOfDay("09:00"), 40)
	require.True(t, ok)
	require.Len(t, slots, 2)
	assert.Equal(t, "09:00", slots[0].String())
	assert.Equal(t, "09:20", slots[1].String())

	// Duration is rounded up to whole ticks.
	slots, ok = grid.RequiredSlots(MustTimeOfDay("09:00"), 30)
	require.True(t, ok)
	assert.Len(t, slots, 2)

	// Start off the grid.
	_, ok = grid.RequiredSlots(MustTimeOfDay("09:10"), 20)
	assert.False(t, ok)

	// Visit would run past the end of the grid.
	_, ok = grid.RequiredSlots(MustTimeOfDay("17:40"), 40)
	assert.False(t, ok)
}
