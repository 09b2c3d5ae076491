package timeslot

import "fmt"

// Slots is an ordered list of 12-hour slot labels making up the grid rows.
// The list comes from configuration, not code, so schools with different
// period counts or lengths can adjust it.
type Slots []string

// DefaultSlots covers a standard school day, hourly from 08:00 to 16:00.
var DefaultSlots = Slots{
	"08:00 AM",
	"09:00 AM",
	"10:00 AM",
	"11:00 AM",
	"12:00 PM",
	"01:00 PM",
	"02:00 PM",
	"03:00 PM",
	"04:00 PM",
}

// Validate checks that every label parses and that the list is strictly
// increasing, so each minute mark maps back to exactly one label.
func (s Slots) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("slot list is empty")
	}
	prev := NoMatch
	for i, label := range s {
		mins := ParseSlotLabel(label)
		if mins == NoMatch {
			return fmt.Errorf("slot %d: invalid label %q", i, label)
		}
		if mins <= prev {
			return fmt.Errorf("slot %d: label %q is not after the previous slot", i, label)
		}
		prev = mins
	}
	return nil
}

// Minutes returns the minute marks of every slot, in list order.
func (s Slots) Minutes() []int {
	out := make([]int, len(s))
	for i, label := range s {
		out[i] = ParseSlotLabel(label)
	}
	return out
}
