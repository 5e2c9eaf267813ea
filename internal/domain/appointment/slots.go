package appointment

import (
	"fmt"
	"time"
)

const (
	// SlotsPerDay is the size of the daily booking grid.
	SlotsPerDay  = 16
	SlotInterval = 30 * time.Minute
	firstSlotMin = 9 * 60
)

var slotGrid = buildGrid()

func buildGrid() []string {
	out := make([]string, 0, SlotsPerDay)
	for i := 0; i < SlotsPerDay; i++ {
		m := firstSlotMin + i*int(SlotInterval/time.Minute)
		out = append(out, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return out
}

// Slots returns the grid 09:00 ... 16:30.
func Slots() []string {
	out := make([]string, len(slotGrid))
	copy(out, slotGrid)
	return out
}

func IsValidSlot(slot string) bool {
	for _, s := range slotGrid {
		if s == slot {
			return true
		}
	}
	return false
}

// SlotStart combines a calendar day and a grid slot in loc.
func SlotStart(day time.Time, slot string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse("15:04", slot)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, loc), nil
}
