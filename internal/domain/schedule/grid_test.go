//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"guildhall/internal/domain/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) schedule.Date {
	return schedule.NewDate(2026, time.March, d)
}

func slotSpan(d schedule.Date, start schedule.TimeOfDay) schedule.Span {
	_, end := schedule.SlotEnd(d, start)
	return schedule.Span{Date: d, Start: start, End: end}
}

func TestSpanUnits(t *testing.T) {
	t.Run("regular slot covers nine units", func(t *testing.T) {
		n, err := slotSpan(day(10), schedule.MorningStart).Units()
		require.NoError(t, err)
		assert.Equal(t, 9, n)
	})

	t.Run("owl slot covers sixteen units across midnight", func(t *testing.T) {
		span := slotSpan(day(10), schedule.OwlStart)
		n, err := span.Units()
		require.NoError(t, err)
		assert.Equal(t, 16, n)
		assert.Equal(t, day(11), span.EndDate())
	})

	t.Run("unaligned times are rejected", func(t *testing.T) {
		quarter, _ := schedule.NewTimeOfDay(8, 15)
		_, err := schedule.Span{Date: day(10), Start: quarter, End: schedule.AfternoonStart}.Units()
		assert.ErrorIs(t, err, schedule.ErrUnalignedTime)
	})
}

func TestBuildOccupancy(t *testing.T) {
	t.Run("disjoint spans build cleanly", func(t *testing.T) {
		occ, err := schedule.BuildOccupancy([]schedule.Span{
			slotSpan(day(10), schedule.MorningStart),
			slotSpan(day(10), schedule.EveningStart),
		})
		require.NoError(t, err)

		assert.True(t, occ.Taken(schedule.Unit{Date: day(10), Index: schedule.MorningStart.UnitIndex()}))
		assert.False(t, occ.SpanFree(slotSpan(day(10), schedule.EveningStart)))
		assert.True(t, occ.SpanFree(slotSpan(day(10), schedule.AfternoonStart)))
	})

	t.Run("overlapping spans are reported, not repaired", func(t *testing.T) {
		half, _ := schedule.NewTimeOfDay(10, 0)
		noon, _ := schedule.NewTimeOfDay(12, 0)
		_, err := schedule.BuildOccupancy([]schedule.Span{
			slotSpan(day(10), schedule.MorningStart),
			{Date: day(10), Start: half, End: noon},
		})
		assert.ErrorIs(t, err, schedule.ErrInconsistentOccupancy)
	})

	t.Run("owl session blocks the following morning grid units", func(t *testing.T) {
		occ, err := schedule.BuildOccupancy([]schedule.Span{
			slotSpan(day(10), schedule.OwlStart),
		})
		require.NoError(t, err)

		// 06:30-07:00 of the next date is the owl session's last unit
		assert.True(t, occ.Taken(schedule.Unit{Date: day(11), Index: 13}))
		assert.False(t, occ.Taken(schedule.Unit{Date: day(11), Index: 14}))
	})
}

func TestAvailableStartSlots(t *testing.T) {
	t.Run("all four slots free on an empty day", func(t *testing.T) {
		occ, err := schedule.BuildOccupancy(nil)
		require.NoError(t, err)

		free := schedule.AvailableStartSlots(occ, day(10))
		assert.Equal(t, []schedule.TimeOfDay{
			schedule.MorningStart, schedule.AfternoonStart, schedule.EveningStart, schedule.OwlStart,
		}, free)
	})

	t.Run("a booked slot disappears from the free list", func(t *testing.T) {
		occ, err := schedule.BuildOccupancy([]schedule.Span{
			slotSpan(day(10), schedule.EveningStart),
		})
		require.NoError(t, err)

		free := schedule.AvailableStartSlots(occ, day(10))
		assert.Equal(t, []schedule.TimeOfDay{
			schedule.MorningStart, schedule.AfternoonStart, schedule.OwlStart,
		}, free)
	})

	t.Run("yesterday's owl session blocks nothing from 08:00 on", func(t *testing.T) {
		occ, err := schedule.BuildOccupancy([]schedule.Span{
			slotSpan(day(9), schedule.OwlStart),
		})
		require.NoError(t, err)

		free := schedule.AvailableStartSlots(occ, day(10))
		assert.Len(t, free, 4)
	})
}

func TestAvailableEndSlots(t *testing.T) {
	t.Run("rejects non-canonical starts", func(t *testing.T) {
		occ, _ := schedule.BuildOccupancy(nil)
		nine, _ := schedule.NewTimeOfDay(9, 0)
		_, err := schedule.AvailableEndSlots(occ, day(10), nine)
		assert.ErrorIs(t, err, schedule.ErrNotCanonicalStart)
	})

	t.Run("empty day chains through every later slot", func(t *testing.T) {
		occ, _ := schedule.BuildOccupancy(nil)

		options, err := schedule.AvailableEndSlots(occ, day(10), schedule.AfternoonStart)
		require.NoError(t, err)

		want := []schedule.SlotEndOption{
			{Date: day(10), Time: mustTime(t, "17:30")},
			{Date: day(10), Time: mustTime(t, "22:30")},
			{Date: day(11), Time: mustTime(t, "07:00")},
		}
		assert.Equal(t, want, options)
	})

	t.Run("chain stops at the first occupied slot", func(t *testing.T) {
		occ, err := schedule.BuildOccupancy([]schedule.Span{
			slotSpan(day(10), schedule.EveningStart),
		})
		require.NoError(t, err)

		options, err := schedule.AvailableEndSlots(occ, day(10), schedule.AfternoonStart)
		require.NoError(t, err)

		assert.Equal(t, []schedule.SlotEndOption{
			{Date: day(10), Time: mustTime(t, "17:30")},
		}, options)
	})

	t.Run("owl start offers a single end past midnight", func(t *testing.T) {
		occ, _ := schedule.BuildOccupancy(nil)

		options, err := schedule.AvailableEndSlots(occ, day(10), schedule.OwlStart)
		require.NoError(t, err)

		assert.Equal(t, []schedule.SlotEndOption{
			{Date: day(11), Time: mustTime(t, "07:00")},
		}, options)
	})
}

func mustTime(t *testing.T, s string) schedule.TimeOfDay {
	t.Helper()
	tod, err := schedule.ParseTimeOfDay(s)
	require.NoError(t, err)
	return tod
}
