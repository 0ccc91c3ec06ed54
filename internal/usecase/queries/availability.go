package queries

import (
	"context"
	"sort"
	"time"

	"guildhall/internal/domain/schedule"
	"guildhall/internal/pkg/errs"

	"github.com/google/uuid"
)

// groupingGap is the largest pause between two bookings by the same
// organizer that still reads as one continuous session on the grid.
const groupingGap = 30 * time.Minute

type AvailabilityReadStore interface {
	// DayBookings returns non-cancelled bookings for the room dated between
	// from and to inclusive.
	DayBookings(ctx context.Context, roomID uuid.UUID, from, to schedule.Date) ([]DayBooking, error)
}

type AvailabilityQueries interface {
	DaySchedule(ctx context.Context, roomID uuid.UUID, date schedule.Date) (*DayScheduleView, error)
	EndOptions(ctx context.Context, roomID uuid.UUID, date schedule.Date, start schedule.TimeOfDay) ([]EndOptionView, error)
}

type availabilityQueriesImpl struct {
	store AvailabilityReadStore
}

func NewAvailabilityQueries(store AvailabilityReadStore) AvailabilityQueries {
	return &availabilityQueriesImpl{store: store}
}

// occupancyFor rebuilds the half-hour grid around date. The previous date is
// included so an owl session still running at midnight blocks the morning.
func (q *availabilityQueriesImpl) occupancyFor(ctx context.Context, roomID uuid.UUID, date schedule.Date) (schedule.Occupancy, []DayBooking, error) {
	rows, err := q.store.DayBookings(ctx, roomID, date.Prev(), date.Next())
	if err != nil {
		return schedule.Occupancy{}, nil, err
	}

	spans := make([]schedule.Span, len(rows))
	for i, row := range rows {
		spans[i] = schedule.Span{Date: row.Date, Start: row.Start, End: row.End}
	}

	occ, err := schedule.BuildOccupancy(spans)
	if err != nil {
		return schedule.Occupancy{}, nil, errs.Mark(err, errs.ErrInconsistentData)
	}
	return occ, rows, nil
}

func (q *availabilityQueriesImpl) DaySchedule(ctx context.Context, roomID uuid.UUID, date schedule.Date) (*DayScheduleView, error) {
	occ, rows, err := q.occupancyFor(ctx, roomID, date)
	if err != nil {
		return nil, err
	}

	view := &DayScheduleView{
		RoomID: roomID,
		Date:   date.String(),
		Slots:  make([]SlotStatusView, 0, len(schedule.CanonicalStarts)),
		Blocks: buildBlocks(date, rows),
	}

	for _, start := range schedule.AvailableStartSlots(occ, date) {
		view.AvailableStarts = append(view.AvailableStarts, start.String())
	}

	for _, start := range schedule.CanonicalStarts {
		endDate, endTime := schedule.SlotEnd(date, start)
		view.Slots = append(view.Slots, SlotStatusView{
			StartTime: start.String(),
			EndTime:   endTime.String(),
			EndDate:   endDate.String(),
			Status:    slotStatus(occ, date, start, endTime),
		})
	}

	return view, nil
}

func (q *availabilityQueriesImpl) EndOptions(ctx context.Context, roomID uuid.UUID, date schedule.Date, start schedule.TimeOfDay) ([]EndOptionView, error) {
	occ, _, err := q.occupancyFor(ctx, roomID, date)
	if err != nil {
		return nil, err
	}

	options, err := schedule.AvailableEndSlots(occ, date, start)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidSlot)
	}

	views := make([]EndOptionView, len(options))
	for i, opt := range options {
		views[i] = EndOptionView{EndTime: opt.Time.String(), EndDate: opt.Date.String()}
	}
	return views, nil
}

func slotStatus(occ schedule.Occupancy, date schedule.Date, start, end schedule.TimeOfDay) SlotStatus {
	span := schedule.Span{Date: date, Start: start, End: end}
	n, err := span.Units()
	if err != nil {
		return SlotOccupied
	}

	taken := 0
	cursor := schedule.Unit{Date: date, Index: start.UnitIndex()}
	for range n {
		if occ.Taken(cursor) {
			taken++
		}
		cursor = nextUnit(cursor)
	}

	switch taken {
	case 0:
		return SlotFree
	case n:
		return SlotOccupied
	default:
		return SlotPartial
	}
}

func nextUnit(u schedule.Unit) schedule.Unit {
	u.Index++
	if u.Index == schedule.UnitsPerDay {
		return schedule.Unit{Date: u.Date.Next(), Index: 0}
	}
	return u
}

// buildBlocks merges the date's bookings into organizer session blocks.
// Bookings on neighboring dates are dropped first; the grid shows one day.
func buildBlocks(date schedule.Date, rows []DayBooking) []SessionBlockView {
	var day []DayBooking
	for _, row := range rows {
		if row.Date.Equal(date) {
			day = append(day, row)
		}
	}
	sort.Slice(day, func(i, j int) bool { return day[i].Start < day[j].Start })

	var blocks []SessionBlockView
	for _, b := range day {
		endDate, _ := endOf(b)
		if n := len(blocks); n > 0 && blocks[n-1].OrganizerID == b.OrganizerID {
			prev := &blocks[n-1]
			prevSpan := schedule.Span{Date: date, Start: mustTime(prev.StartTime), End: mustTime(prev.EndTime)}
			gap := schedule.SessionGap(prevSpan, schedule.Span{Date: b.Date, Start: b.Start, End: b.End})
			if gap >= 0 && gap <= groupingGap {
				prev.EndTime = b.End.String()
				prev.EndDate = endDate.String()
				prev.BookingIDs = append(prev.BookingIDs, b.ID)
				continue
			}
		}
		blocks = append(blocks, SessionBlockView{
			OrganizerID:   b.OrganizerID,
			OrganizerName: b.OrganizerName,
			Title:         b.Title,
			StartTime:     b.Start.String(),
			EndTime:       b.End.String(),
			EndDate:       endDate.String(),
			BookingIDs:    []uuid.UUID{b.ID},
		})
	}
	return blocks
}

func endOf(b DayBooking) (schedule.Date, schedule.TimeOfDay) {
	span := schedule.Span{Date: b.Date, Start: b.Start, End: b.End}
	return span.EndDate(), b.End
}

func mustTime(s string) schedule.TimeOfDay {
	t, _ := schedule.ParseTimeOfDay(s)
	return t
}
