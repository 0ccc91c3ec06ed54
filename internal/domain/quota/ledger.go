package quota

import (
	"fmt"

	"guildhall/internal/domain/schedule"

	"github.com/google/uuid"
)

// Entry is the slice of a booking the ledger cares about: who organized it,
// when, and how many guests came along. Cancelled bookings never count.
type Entry struct {
	Organizer uuid.UUID
	Date      schedule.Date
	Start     schedule.TimeOfDay
	Guests    int
	Cancelled bool
}

// Limits caps how many sessions a member may organize. Zero means unlimited;
// the sentinel comes from the plan model, not from here.
type Limits struct {
	Weekly  int
	Monthly int
	Owl     int
}

type Scope string

const (
	ScopeWeekly  Scope = "weekly"
	ScopeMonthly Scope = "monthly"
	ScopeOwl     Scope = "late-night"
)

// ExceededError names the violated cap so the caller can tell the member
// exactly which quota ran out.
type ExceededError struct {
	Scope Scope
	Limit int
}

func (e *ExceededError) Error() string {
	return fmt.Sprintf("%s quota exceeded (limit %d)", e.Scope, e.Limit)
}

func counts(organizer uuid.UUID, entries []Entry, match func(Entry) bool) int {
	n := 0
	for _, e := range entries {
		if e.Cancelled || e.Organizer != organizer {
			continue
		}
		if match(e) {
			n++
		}
	}
	return n
}

// CountInWeek counts the organizer's bookings in the ISO week (Mon-Sun)
// containing date.
func CountInWeek(organizer uuid.UUID, date schedule.Date, entries []Entry) int {
	return counts(organizer, entries, func(e Entry) bool {
		return e.Date.SameISOWeek(date)
	})
}

// CountInMonth counts the organizer's bookings in the calendar month
// containing date.
func CountInMonth(organizer uuid.UUID, date schedule.Date, entries []Entry) int {
	return counts(organizer, entries, func(e Entry) bool {
		return e.Date.SameMonth(date)
	})
}

// CountOwlInMonth counts the organizer's late-night bookings in the calendar
// month containing date.
func CountOwlInMonth(organizer uuid.UUID, date schedule.Date, entries []Entry) int {
	return counts(organizer, entries, func(e Entry) bool {
		return e.Date.SameMonth(date) && schedule.SlotIsOwl(e.Start)
	})
}

// Validate checks a prospective booking at (date, start) against the plan
// limits, given the organizer's existing bookings. The owl cap applies only
// when the new booking itself starts at the late-night slot.
func Validate(limits Limits, organizer uuid.UUID, date schedule.Date, start schedule.TimeOfDay, entries []Entry) error {
	if limits.Weekly > 0 && CountInWeek(organizer, date, entries) >= limits.Weekly {
		return &ExceededError{Scope: ScopeWeekly, Limit: limits.Weekly}
	}
	if limits.Monthly > 0 && CountInMonth(organizer, date, entries) >= limits.Monthly {
		return &ExceededError{Scope: ScopeMonthly, Limit: limits.Monthly}
	}
	if schedule.SlotIsOwl(start) && limits.Owl > 0 && CountOwlInMonth(organizer, date, entries) >= limits.Owl {
		return &ExceededError{Scope: ScopeOwl, Limit: limits.Owl}
	}
	return nil
}

// ExtraGuestsToCharge computes how many guests of the current booking must be
// billed, given the free-invite allowance and the guests already brought
// earlier in the billing cycle. Guests over the allowance are charged
// incrementally, exactly once, no matter how bookings are split or edited
// within the cycle.
func ExtraGuestsToCharge(invites, priorGuests, newGuests int) int {
	total := priorGuests + newGuests
	previouslyCharged := max(0, priorGuests-invites)
	return max(0, (total-invites)-previouslyCharged)
}
