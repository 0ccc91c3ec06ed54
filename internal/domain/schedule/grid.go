package schedule

import (
	"errors"
	"time"
)

var (
	// ErrInconsistentOccupancy signals that two non-cancelled bookings already
	// overlap in the store. The calendar never repairs this; callers surface
	// it as a generic failure and someone goes digging.
	ErrInconsistentOccupancy = errors.New("overlapping bookings found in occupancy data")

	ErrInvalidSpan = errors.New("invalid booking span")
)

// Span is the occupied time range of one booking. End at or before Start
// means the span crosses midnight and ends on the following date.
type Span struct {
	Date  Date
	Start TimeOfDay
	End   TimeOfDay
}

// Units returns the number of half-hour units the span covers.
func (s Span) Units() (int, error) {
	if !s.Start.IsAligned() || !s.End.IsAligned() {
		return 0, ErrUnalignedTime
	}
	minutes := (int(s.End) - int(s.Start) + 24*60) % (24 * 60)
	if minutes == 0 {
		return 0, ErrInvalidSpan
	}
	return minutes / UnitMinutes, nil
}

// EndDate returns the calendar date the span ends on.
func (s Span) EndDate() Date {
	if s.End <= s.Start {
		return s.Date.Next()
	}
	return s.Date
}

// Unit identifies one half-hour cell of the calendar grid.
type Unit struct {
	Date  Date
	Index int
}

// Occupancy is the set of half-hour units taken by existing bookings on a
// single room. Build it from every non-cancelled booking on the queried date
// and its neighbors, so owl sessions started the previous evening are seen.
type Occupancy struct {
	units map[Unit]struct{}
}

func BuildOccupancy(spans []Span) (Occupancy, error) {
	occ := Occupancy{units: make(map[Unit]struct{})}
	for _, span := range spans {
		n, err := span.Units()
		if err != nil {
			return Occupancy{}, err
		}
		cursor := Unit{Date: span.Date, Index: span.Start.UnitIndex()}
		for range n {
			if _, taken := occ.units[cursor]; taken {
				return Occupancy{}, ErrInconsistentOccupancy
			}
			occ.units[cursor] = struct{}{}
			cursor = cursor.next()
		}
	}
	return occ, nil
}

func (u Unit) next() Unit {
	u.Index++
	if u.Index == UnitsPerDay {
		return Unit{Date: u.Date.Next(), Index: 0}
	}
	return u
}

func (o Occupancy) Taken(u Unit) bool {
	_, ok := o.units[u]
	return ok
}

// SpanFree reports whether every unit covered by the span is free.
func (o Occupancy) SpanFree(span Span) bool {
	n, err := span.Units()
	if err != nil {
		return false
	}
	cursor := Unit{Date: span.Date, Index: span.Start.UnitIndex()}
	for range n {
		if o.Taken(cursor) {
			return false
		}
		cursor = cursor.next()
	}
	return true
}

// AvailableStartSlots returns the canonical slots on date whose units are all
// free.
func AvailableStartSlots(occ Occupancy, date Date) []TimeOfDay {
	var free []TimeOfDay
	for _, start := range CanonicalStarts {
		_, end := SlotEnd(date, start)
		if occ.SpanFree(Span{Date: date, Start: start, End: end}) {
			free = append(free, start)
		}
	}
	return free
}

// SlotEndOption is one legal end for a booking starting at a chosen slot.
type SlotEndOption struct {
	Date Date
	Time TimeOfDay
}

// AvailableEndSlots returns the legal end times for a booking starting at
// start on date: the natural ends of the chosen slot and of each further
// canonical slot reachable without touching an occupied unit. Chaining
// absorbs the half-hour gaps between sessions, so a 13:00 start may end at
// 17:30, 22:30 or 07:00 the next day, never in between.
func AvailableEndSlots(occ Occupancy, date Date, start TimeOfDay) ([]SlotEndOption, error) {
	if !IsCanonicalStart(start) {
		return nil, ErrNotCanonicalStart
	}
	var options []SlotEndOption
	for _, candidate := range CanonicalStarts {
		if candidate < start {
			continue
		}
		endDate, endTime := SlotEnd(date, candidate)
		span := Span{Date: date, Start: start, End: endTime}
		if !occ.SpanFree(span) {
			break
		}
		options = append(options, SlotEndOption{Date: endDate, Time: endTime})
	}
	return options, nil
}

// SessionGap returns the time between the end of a and the start of b, for
// grouping adjacent bookings by the same organizer into one visual block.
func SessionGap(a Span, b Span) time.Duration {
	endOfA := a.EndDate().At(a.End, time.UTC)
	startOfB := b.Date.At(b.Start, time.UTC)
	return startOfB.Sub(endOfA)
}
