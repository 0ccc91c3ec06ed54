package schedule

import (
	"errors"
	"time"
)

// The clubhouse runs four fixed daily sessions. The first three last four and
// a half hours; the 23:00 "owl" session runs eight hours and spills into the
// next calendar date.
const (
	MorningStart   TimeOfDay = 8 * 60
	AfternoonStart TimeOfDay = 13 * 60
	EveningStart   TimeOfDay = 18 * 60
	OwlStart       TimeOfDay = 23 * 60

	regularSlotDuration = 4*time.Hour + 30*time.Minute
	owlSlotDuration     = 8 * time.Hour
)

var CanonicalStarts = [4]TimeOfDay{MorningStart, AfternoonStart, EveningStart, OwlStart}

var ErrNotCanonicalStart = errors.New("not a canonical slot start")

func IsCanonicalStart(t TimeOfDay) bool {
	for _, s := range CanonicalStarts {
		if s == t {
			return true
		}
	}
	return false
}

// SlotDuration returns the fixed duration of the canonical slot beginning at
// start. The duration is a property of the schedule, not of any room.
func SlotDuration(start TimeOfDay) time.Duration {
	if start == OwlStart {
		return owlSlotDuration
	}
	return regularSlotDuration
}

// SlotEnd returns the end of the canonical slot beginning at start on date.
// The owl slot ends on the following calendar date.
func SlotEnd(date Date, start TimeOfDay) (Date, TimeOfDay) {
	end, carry := start.Add(SlotDuration(start))
	return date.AddDays(carry), end
}

// SlotIsOwl reports whether start is the late-night slot.
func SlotIsOwl(start TimeOfDay) bool {
	return start == OwlStart
}
