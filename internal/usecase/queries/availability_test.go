//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"guildhall/internal/domain/schedule"
	"guildhall/internal/pkg/errs"
	"guildhall/internal/usecase/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAvailabilityStore struct {
	rows []queries.DayBooking
	err  error
}

func (s *stubAvailabilityStore) DayBookings(_ context.Context, _ uuid.UUID, _, _ schedule.Date) ([]queries.DayBooking, error) {
	return s.rows, s.err
}

func dayBooking(organizerID uuid.UUID, name, title string, d schedule.Date, start schedule.TimeOfDay) queries.DayBooking {
	_, end := schedule.SlotEnd(d, start)
	return queries.DayBooking{
		ID:            uuid.New(),
		OrganizerID:   organizerID,
		OrganizerName: name,
		Title:         title,
		Date:          d,
		Start:         start,
		End:           end,
	}
}

func TestDaySchedule(t *testing.T) {
	roomID := uuid.New()
	date := schedule.NewDate(2026, time.March, 10)

	t.Run("empty day is fully free", func(t *testing.T) {
		q := queries.NewAvailabilityQueries(&stubAvailabilityStore{})

		view, err := q.DaySchedule(context.Background(), roomID, date)
		require.NoError(t, err)

		assert.Equal(t, []string{"08:00", "13:00", "18:00", "23:00"}, view.AvailableStarts)
		require.Len(t, view.Slots, 4)
		for _, slot := range view.Slots {
			assert.Equal(t, queries.SlotFree, slot.Status)
		}
		assert.Empty(t, view.Blocks)
	})

	t.Run("booked slot shows occupied and drops from starts", func(t *testing.T) {
		organizer := uuid.New()
		q := queries.NewAvailabilityQueries(&stubAvailabilityStore{rows: []queries.DayBooking{
			dayBooking(organizer, "Marta", "Catan night", date, schedule.EveningStart),
		}})

		view, err := q.DaySchedule(context.Background(), roomID, date)
		require.NoError(t, err)

		assert.Equal(t, []string{"08:00", "13:00", "23:00"}, view.AvailableStarts)
		assert.Equal(t, queries.SlotOccupied, view.Slots[2].Status)
		assert.Equal(t, queries.SlotFree, view.Slots[3].Status)
	})

	t.Run("previous day's owl session does not block this day", func(t *testing.T) {
		organizer := uuid.New()
		q := queries.NewAvailabilityQueries(&stubAvailabilityStore{rows: []queries.DayBooking{
			dayBooking(organizer, "Marta", "All-nighter", date.Prev(), schedule.OwlStart),
		}})

		view, err := q.DaySchedule(context.Background(), roomID, date)
		require.NoError(t, err)

		// owl runs to 07:00, before the 08:00 slot, so all starts stay free
		assert.Len(t, view.AvailableStarts, 4)
		// the neighbor-day booking produces no block on this day's grid
		assert.Empty(t, view.Blocks)
	})

	t.Run("adjacent bookings by one organizer merge into a block", func(t *testing.T) {
		organizer := uuid.New()
		first := dayBooking(organizer, "Marta", "Campaign", date, schedule.AfternoonStart)
		second := dayBooking(organizer, "Marta", "Campaign", date, schedule.EveningStart)

		q := queries.NewAvailabilityQueries(&stubAvailabilityStore{rows: []queries.DayBooking{first, second}})

		view, err := q.DaySchedule(context.Background(), roomID, date)
		require.NoError(t, err)

		want := []queries.SessionBlockView{{
			OrganizerID:   organizer,
			OrganizerName: "Marta",
			Title:         "Campaign",
			StartTime:     "13:00",
			EndTime:       "22:30",
			EndDate:       date.String(),
			BookingIDs:    []uuid.UUID{first.ID, second.ID},
		}}
		if diff := cmp.Diff(want, view.Blocks); diff != "" {
			t.Errorf("blocks mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("different organizers never merge", func(t *testing.T) {
		q := queries.NewAvailabilityQueries(&stubAvailabilityStore{rows: []queries.DayBooking{
			dayBooking(uuid.New(), "Marta", "Campaign", date, schedule.AfternoonStart),
			dayBooking(uuid.New(), "Jonas", "One-shot", date, schedule.EveningStart),
		}})

		view, err := q.DaySchedule(context.Background(), roomID, date)
		require.NoError(t, err)
		assert.Len(t, view.Blocks, 2)
	})

	t.Run("overlapping store rows surface as inconsistent data", func(t *testing.T) {
		organizer := uuid.New()
		q := queries.NewAvailabilityQueries(&stubAvailabilityStore{rows: []queries.DayBooking{
			dayBooking(organizer, "Marta", "Campaign", date, schedule.AfternoonStart),
			dayBooking(organizer, "Marta", "Campaign again", date, schedule.AfternoonStart),
		}})

		_, err := q.DaySchedule(context.Background(), roomID, date)
		assert.ErrorIs(t, err, errs.ErrInconsistentData)
	})
}

func TestEndOptions(t *testing.T) {
	roomID := uuid.New()
	date := schedule.NewDate(2026, time.March, 10)

	t.Run("chained ends on an empty day", func(t *testing.T) {
		q := queries.NewAvailabilityQueries(&stubAvailabilityStore{})

		views, err := q.EndOptions(context.Background(), roomID, date, schedule.AfternoonStart)
		require.NoError(t, err)

		want := []queries.EndOptionView{
			{EndTime: "17:30", EndDate: "2026-03-10"},
			{EndTime: "22:30", EndDate: "2026-03-10"},
			{EndTime: "07:00", EndDate: "2026-03-11"},
		}
		if diff := cmp.Diff(want, views); diff != "" {
			t.Errorf("end options mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("non-canonical start is an invalid slot", func(t *testing.T) {
		q := queries.NewAvailabilityQueries(&stubAvailabilityStore{})

		nine, _ := schedule.NewTimeOfDay(9, 0)
		_, err := q.EndOptions(context.Background(), roomID, date, nine)
		assert.ErrorIs(t, err, errs.ErrInvalidSlot)
	})
}
