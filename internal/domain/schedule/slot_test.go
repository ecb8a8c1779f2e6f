//go:build unit

package schedule_test

import (
	"testing"

	"sparkwash-api/internal/domain/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSlot(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		wantMin int
		wantErr error
	}{
		{name: "opening slot", input: "08:00", wantMin: 480},
		{name: "quarter past", input: "09:15", wantMin: 555},
		{name: "midnight", input: "00:00", wantMin: 0},
		{name: "last slot of day", input: "23:45", wantMin: 1425},
		{name: "off-grid minute", input: "08:05", wantErr: schedule.ErrInvalidSlot},
		{name: "garbage", input: "morning", wantErr: schedule.ErrInvalidSlot},
		{name: "empty", input: "", wantErr: schedule.ErrInvalidSlot},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := schedule.ParseSlot(tc.input)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantMin, s.Minutes())
			assert.Equal(t, tc.input, s.String())
		})
	}
}

func TestNewDuration(t *testing.T) {
	d, err := schedule.NewDuration(30)
	require.NoError(t, err)
	assert.Equal(t, 2, d.SubSlots())

	_, err = schedule.NewDuration(0)
	assert.ErrorIs(t, err, schedule.ErrInvalidDuration)

	_, err = schedule.NewDuration(20)
	assert.ErrorIs(t, err, schedule.ErrInvalidDuration)

	_, err = schedule.NewDuration(-15)
	assert.ErrorIs(t, err, schedule.ErrInvalidDuration)
}

func TestIntervalCoversAndOverlaps(t *testing.T) {
	start := mustSlot(t, "09:00")
	dur30 := mustDuration(t, 30)
	iv := schedule.NewInterval(start, dur30)

	assert.True(t, iv.Covers(mustSlot(t, "09:00")))
	assert.True(t, iv.Covers(mustSlot(t, "09:15")))
	assert.False(t, iv.Covers(mustSlot(t, "09:30")), "interval is half-open")
	assert.False(t, iv.Covers(mustSlot(t, "08:45")))

	other := schedule.NewInterval(mustSlot(t, "09:15"), dur30)
	assert.True(t, iv.Overlaps(other))

	adjacent := schedule.NewInterval(mustSlot(t, "09:30"), dur30)
	assert.False(t, iv.Overlaps(adjacent), "back-to-back intervals do not overlap")
}

func TestParseDate(t *testing.T) {
	d, err := schedule.ParseDate("2025-07-14")
	require.NoError(t, err)
	assert.Equal(t, "2025-07-14", d.String())

	_, err = schedule.ParseDate("14-07-2025")
	assert.ErrorIs(t, err, schedule.ErrInvalidDate)

	_, err = schedule.ParseDate("2025-7-14")
	assert.ErrorIs(t, err, schedule.ErrInvalidDate)
}

func TestOperatingHoursSlots(t *testing.T) {
	hours := mustHours(t, "08:00", "16:00")
	slots := hours.Slots()

	require.Len(t, slots, 32)
	assert.Equal(t, "08:00", slots[0].String())
	assert.Equal(t, "08:15", slots[1].String())
	assert.Equal(t, "15:45", slots[31].String())
}

func TestOperatingHoursValidation(t *testing.T) {
	open := mustSlot(t, "16:00")
	close := mustSlot(t, "08:00")

	_, err := schedule.NewOperatingHours(open, close, schedule.SlotIntervalMin)
	assert.ErrorIs(t, err, schedule.ErrInvalidOperatingHours)

	_, err = schedule.NewOperatingHours(close, close, schedule.SlotIntervalMin)
	assert.ErrorIs(t, err, schedule.ErrInvalidOperatingHours, "open == close is empty window")

	_, err = schedule.NewOperatingHours(close, open, 0)
	assert.ErrorIs(t, err, schedule.ErrInvalidOperatingHours)
}

func mustSlot(t *testing.T, s string) schedule.Slot {
	t.Helper()
	slot, err := schedule.ParseSlot(s)
	require.NoError(t, err)
	return slot
}

func mustDuration(t *testing.T, minutes int) schedule.Duration {
	t.Helper()
	d, err := schedule.NewDuration(minutes)
	require.NoError(t, err)
	return d
}

func mustHours(t *testing.T, open, close string) schedule.OperatingHours {
	t.Helper()
	h, err := schedule.NewOperatingHours(mustSlot(t, open), mustSlot(t, close), schedule.SlotIntervalMin)
	require.NoError(t, err)
	return h
}
