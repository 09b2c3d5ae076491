package grid

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolgrid/timetable/internal/model"
	"github.com/schoolgrid/timetable/internal/timeslot"
)

func localPeriod(t *testing.T, weekday int, start, end string) *model.Period {
	t.Helper()
	st, err := timeslot.Combine(start)
	require.NoError(t, err)
	et, err := timeslot.Combine(end)
	require.NoError(t, err)
	return &model.Period{
		ID:          uuid.New(),
		Weekday:     weekday,
		StartTime:   st,
		EndTime:     et,
		SubjectName: "Mathematics",
	}
}

// Two Monday periods land in the Monday 08:00 and 09:00 cells and every
// other Monday cell stays empty.
func TestPlacePeriodsMondayScenario(t *testing.T) {
	periods := []*model.Period{
		localPeriod(t, 1, "08:00", "09:00"),
		localPeriod(t, 1, "09:00", "10:00"),
	}

	g := PlacePeriods(periods, DefaultDays, timeslot.DefaultSlots)

	assert.Same(t, periods[0], g.Cell(0, 0))
	assert.Same(t, periods[1], g.Cell(0, 1))
	for slot := 2; slot < len(g.Slots); slot++ {
		assert.Nil(t, g.Cell(0, slot), "Monday slot %d should be empty", slot)
	}
	for day := 1; day < len(g.Days); day++ {
		for slot := range g.Slots {
			assert.Nil(t, g.Cell(day, slot))
		}
	}
}

// A period appears in at most one cell, and in exactly one cell when either
// interpretation of its start time hits a slot on its weekday.
func TestPlacePeriodsAtMostOnce(t *testing.T) {
	periods := []*model.Period{
		localPeriod(t, 2, "10:00", "11:00"),
		localPeriod(t, 3, "13:00", "14:00"),
		localPeriod(t, 1, "06:30", "07:30"), // before the grid, never placed
	}

	g := PlacePeriods(periods, DefaultDays, timeslot.DefaultSlots)

	counts := make(map[*model.Period]int)
	for day := range g.Days {
		for slot := range g.Slots {
			if p := g.Cell(day, slot); p != nil {
				counts[p]++
			}
		}
	}
	assert.Equal(t, 1, counts[periods[0]])
	assert.Equal(t, 1, counts[periods[1]])
	assert.Equal(t, 0, counts[periods[2]])
	assert.Same(t, periods[0], g.Cell(1, earliestMatchingSlot(t, periods[0])))
	assert.Same(t, periods[1], g.Cell(2, earliestMatchingSlot(t, periods[1])))
}

// earliestMatchingSlot mirrors the placement rule: the first slot whose
// minute mark equals either interpretation of the period's start time. The
// UTC branch can land on an earlier slot than the local one depending on
// the host zone, so position assertions go through this.
func earliestMatchingSlot(t *testing.T, p *model.Period) int {
	t.Helper()
	local, utc := timeslot.ResolveSlotMinutes(p.StartTime)
	for i, mark := range timeslot.DefaultSlots.Minutes() {
		if mark == local || mark == utc {
			return i
		}
	}
	t.Fatalf("period start %v matches no slot", p.StartTime)
	return -1
}

// Two periods matching the same cell resolve to the first one in input
// order, every time.
func TestPlacePeriodsTieBreak(t *testing.T) {
	first := localPeriod(t, 1, "08:00", "09:00")
	second := localPeriod(t, 1, "08:00", "09:00")
	periods := []*model.Period{first, second}

	for i := 0; i < 5; i++ {
		g := PlacePeriods(periods, DefaultDays, timeslot.DefaultSlots)
		assert.Same(t, first, g.Cell(0, 0))
	}
}

// A period whose stored timestamp is UTC wall-clock still matches through
// the UTC branch of the resolver.
func TestPlacePeriodsUTCBranch(t *testing.T) {
	st := time.Date(2000, time.January, 2, 10, 0, 0, 0, time.UTC)
	p := &model.Period{
		ID:        uuid.New(),
		Weekday:   4,
		StartTime: st,
		EndTime:   st.Add(time.Hour),
	}

	g := PlacePeriods([]*model.Period{p}, DefaultDays, timeslot.DefaultSlots)

	// The earliest slot hit by either interpretation wins; depending on the
	// host zone the local branch may also hit a mark, but the UTC branch
	// guarantees at least one placement.
	local, utc := timeslot.ResolveSlotMinutes(st)
	wantSlot := -1
	for i, mark := range timeslot.DefaultSlots.Minutes() {
		if mark == local || mark == utc {
			wantSlot = i
			break
		}
	}
	require.NotEqual(t, -1, wantSlot)
	assert.Same(t, p, g.Cell(3, wantSlot))
}

func TestPlacePeriodsWeekdayOutOfGrid(t *testing.T) {
	p := localPeriod(t, 7, "08:00", "09:00") // Sunday, grid ends Saturday
	g := PlacePeriods([]*model.Period{p}, DefaultDays, timeslot.DefaultSlots)
	for day := range g.Days {
		for slot := range g.Slots {
			assert.Nil(t, g.Cell(day, slot))
		}
	}
}

func TestCellOutOfRange(t *testing.T) {
	g := PlacePeriods(nil, DefaultDays, timeslot.DefaultSlots)
	assert.Nil(t, g.Cell(-1, 0))
	assert.Nil(t, g.Cell(0, 99))
	assert.Nil(t, g.Cell(99, 0))
}

func TestRenderPNG(t *testing.T) {
	room := "Room 12"
	p := localPeriod(t, 1, "08:00", "09:00")
	p.TeacherName = "A. Karimova"
	p.RoomName = &room

	g := PlacePeriods([]*model.Period{p}, DefaultDays, timeslot.DefaultSlots)
	png, err := RenderPNG(g)
	require.NoError(t, err)
	assert.True(t, len(png) > 0)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}
