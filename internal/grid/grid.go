// Package grid places weekly periods into the fixed (weekday, slot) grid
// used by the timetable views.
package grid

import (
	"github.com/schoolgrid/timetable/internal/model"
	"github.com/schoolgrid/timetable/internal/timeslot"
)

// DefaultDays is the display order of the weekly grid. The day index is
// 0-based; stored weekdays are 1-based in the same order, so Monday = 1.
var DefaultDays = []string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}

// Grid is the placed weekly timetable: for every (day, slot) cell either
// one period or nothing. Empty cells stay addressable so the dashboard can
// open the "add period here" flow with the cell's weekday and slot label.
type Grid struct {
	Days  []string          `json:"days"`
	Slots timeslot.Slots    `json:"slots"`
	Cells [][]*model.Period `json:"cells"` // [dayIndex][slotIndex]
}

// Cell returns the period placed at (day, slot), or nil.
func (g *Grid) Cell(day, slot int) *model.Period {
	if day < 0 || day >= len(g.Cells) || slot < 0 || slot >= len(g.Cells[day]) {
		return nil
	}
	return g.Cells[day][slot]
}

// PlacePeriods assigns each period to at most one cell.
//
// A period belongs to cell (day, slot) when its stored weekday equals
// day+1 and either its local or its UTC minutes-since-midnight equals the
// slot's minute mark. The OR is deliberate tolerance for the mixed
// timestamp conventions of historical write paths; see package timeslot.
//
// Cells scan the period list in input order and take the first match, and a
// period already placed is skipped by later cells, so duplicate or
// ambiguous data renders deterministically instead of flickering between
// candidates on re-render. Periods per section stay small, so the plain
// O(periods x days x slots) scan is fine.
func PlacePeriods(periods []*model.Period, days []string, slots timeslot.Slots) *Grid {
	g := &Grid{
		Days:  days,
		Slots: slots,
		Cells: make([][]*model.Period, len(days)),
	}
	marks := slots.Minutes()
	placed := make(map[*model.Period]bool, len(periods))

	for day := range days {
		g.Cells[day] = make([]*model.Period, len(slots))
		for slot, want := range marks {
			for _, p := range periods {
				if placed[p] || p.Weekday != day+1 {
					continue
				}
				local, utc := timeslot.ResolveSlotMinutes(p.StartTime)
				if local == want || utc == want {
					g.Cells[day][slot] = p
					placed[p] = true
					break
				}
			}
		}
	}
	return g
}
