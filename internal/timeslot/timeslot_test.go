package timeslot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSlotLabel(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{"08:00 AM", 480},
		{"12:00 AM", 0},
		{"12:30 AM", 30},
		{"01:00 PM", 780},
		{"12:00 PM", 720},
		{"11:59 PM", 1439},
		{"09:15 AM", 555},

		{"8:00 AM", NoMatch},
		{"08:00AM", NoMatch},
		{"08:00 am", NoMatch},
		{"13:00 PM", NoMatch},
		{"00:00 AM", NoMatch},
		{"08:60 AM", NoMatch},
		{"08-00 AM", NoMatch},
		{"", NoMatch},
		{"08:00 XM", NoMatch},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseSlotLabel(tt.label), "label %q", tt.label)
	}
}

// Every label in the default slot list maps onto its declared minute mark,
// and no two labels collide.
func TestDefaultSlotsBijection(t *testing.T) {
	require.NoError(t, DefaultSlots.Validate())

	want := []int{480, 540, 600, 660, 720, 780, 840, 900, 960}
	assert.Equal(t, want, DefaultSlots.Minutes())

	seen := make(map[int]string)
	for _, label := range DefaultSlots {
		mins := ParseSlotLabel(label)
		require.NotEqual(t, NoMatch, mins)
		_, dup := seen[mins]
		require.False(t, dup, "minute mark %d claimed twice", mins)
		seen[mins] = label
	}
}

func TestMinutesOfDay(t *testing.T) {
	assert.Equal(t, 0, MinutesOfDay("00:00"))
	assert.Equal(t, 480, MinutesOfDay("08:00"))
	assert.Equal(t, 1439, MinutesOfDay("23:59"))
	assert.Equal(t, NoMatch, MinutesOfDay("24:00"))
	assert.Equal(t, NoMatch, MinutesOfDay("8:00"))
	assert.Equal(t, NoMatch, MinutesOfDay("08:0"))
	assert.Equal(t, NoMatch, MinutesOfDay("0800"))
}

func TestTo24Hour(t *testing.T) {
	assert.Equal(t, "08:00", To24Hour("08:00 AM"))
	assert.Equal(t, "13:00", To24Hour("01:00 PM"))
	assert.Equal(t, "00:00", To24Hour("12:00 AM"))
	assert.Equal(t, "12:00", To24Hour("12:00 PM"))
	assert.Equal(t, "", To24Hour("nonsense"))
}

func TestResolveSlotMinutes(t *testing.T) {
	// A timestamp built in the local zone resolves to its wall clock on the
	// local branch; the UTC branch shifts by the zone offset.
	ts := time.Date(2000, time.January, 2, 8, 0, 0, 0, time.Local)
	local, utc := ResolveSlotMinutes(ts)
	assert.Equal(t, 480, local)

	_, offset := ts.Zone()
	wantUTC := ((480-offset/60)%1440 + 1440) % 1440
	assert.Equal(t, wantUTC, utc)
}

// Round-trip: a slot label converted to 24-hour form, combined onto the
// reference date and resolved through the local branch reproduces the
// label's own minute mark.
func TestLabelCombineRoundTrip(t *testing.T) {
	for _, label := range DefaultSlots {
		ts, err := Combine(To24Hour(label))
		require.NoError(t, err)

		local, _ := ResolveSlotMinutes(ts)
		assert.Equal(t, ParseSlotLabel(label), local, "label %q", label)
	}
}

func TestCombine(t *testing.T) {
	start, err := Combine("08:00")
	require.NoError(t, err)
	end, err := Combine("09:00")
	require.NoError(t, err)

	// Same reference date for both ends, so end never rolls past midnight
	// of a different day than start.
	assert.Equal(t, start.YearDay(), end.YearDay())
	assert.Equal(t, time.Hour, end.Sub(start))
	assert.Equal(t, "08:00", FormatLocal(start))

	_, err = Combine("25:00")
	assert.Error(t, err)
}

func TestSlotsValidate(t *testing.T) {
	assert.Error(t, Slots{}.Validate())
	assert.Error(t, Slots{"08:00 AM", "bogus"}.Validate())
	assert.Error(t, Slots{"09:00 AM", "08:00 AM"}.Validate())
	assert.Error(t, Slots{"08:00 AM", "08:00 AM"}.Validate())
	assert.NoError(t, Slots{"08:00 AM", "09:30 AM", "01:00 PM"}.Validate())
}
