//go:build unit

package quota_test

import (
	"testing"
	"time"

	"guildhall/internal/domain/quota"
	"guildhall/internal/domain/schedule"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var (
	organizer = uuid.New()
	other     = uuid.New()
)

func entry(organizerID uuid.UUID, d schedule.Date, start schedule.TimeOfDay) quota.Entry {
	return quota.Entry{Organizer: organizerID, Date: d, Start: start}
}

func TestCounting(t *testing.T) {
	march := func(d int) schedule.Date { return schedule.NewDate(2026, time.March, d) }

	entries := []quota.Entry{
		entry(organizer, march(9), schedule.MorningStart),   // Mon, week of 9-15
		entry(organizer, march(14), schedule.OwlStart),      // Sat, same week
		entry(organizer, march(16), schedule.EveningStart),  // next week, same month
		entry(organizer, march(20), schedule.OwlStart),      // next week, same month
		entry(other, march(10), schedule.MorningStart),      // someone else
		{Organizer: organizer, Date: march(11), Start: schedule.MorningStart, Cancelled: true},
	}

	t.Run("week count ignores other organizers and cancellations", func(t *testing.T) {
		assert.Equal(t, 2, quota.CountInWeek(organizer, march(12), entries))
	})

	t.Run("month count spans all weeks of the month", func(t *testing.T) {
		assert.Equal(t, 4, quota.CountInMonth(organizer, march(12), entries))
	})

	t.Run("owl count only sees late-night starts", func(t *testing.T) {
		assert.Equal(t, 2, quota.CountOwlInMonth(organizer, march(12), entries))
	})
}

func TestValidate(t *testing.T) {
	date := schedule.NewDate(2026, time.March, 12)

	weekFull := []quota.Entry{
		entry(organizer, date.Prev(), schedule.MorningStart),
		entry(organizer, date.Prev(), schedule.EveningStart),
	}

	t.Run("zero limits mean unlimited", func(t *testing.T) {
		err := quota.Validate(quota.Limits{}, organizer, date, schedule.MorningStart, weekFull)
		assert.NoError(t, err)
	})

	t.Run("weekly cap", func(t *testing.T) {
		err := quota.Validate(quota.Limits{Weekly: 2}, organizer, date, schedule.MorningStart, weekFull)

		var exceeded *quota.ExceededError
		assert.ErrorAs(t, err, &exceeded)
		assert.Equal(t, quota.ScopeWeekly, exceeded.Scope)
		assert.Equal(t, 2, exceeded.Limit)
	})

	t.Run("under the weekly cap", func(t *testing.T) {
		err := quota.Validate(quota.Limits{Weekly: 3}, organizer, date, schedule.MorningStart, weekFull)
		assert.NoError(t, err)
	})

	t.Run("monthly cap", func(t *testing.T) {
		err := quota.Validate(quota.Limits{Monthly: 2}, organizer, date, schedule.MorningStart, weekFull)

		var exceeded *quota.ExceededError
		assert.ErrorAs(t, err, &exceeded)
		assert.Equal(t, quota.ScopeMonthly, exceeded.Scope)
	})

	t.Run("owl cap applies only to late-night bookings", func(t *testing.T) {
		owlTaken := []quota.Entry{entry(organizer, date.Prev(), schedule.OwlStart)}
		limits := quota.Limits{Owl: 1}

		err := quota.Validate(limits, organizer, date, schedule.OwlStart, owlTaken)
		var exceeded *quota.ExceededError
		assert.ErrorAs(t, err, &exceeded)
		assert.Equal(t, quota.ScopeOwl, exceeded.Scope)

		assert.NoError(t, quota.Validate(limits, organizer, date, schedule.EveningStart, owlTaken))
	})
}

func TestExtraGuestsToCharge(t *testing.T) {
	tests := []struct {
		name                          string
		invites, prior, newGuests, want int
	}{
		{"within the allowance", 2, 0, 2, 0},
		{"first booking over the allowance", 2, 0, 3, 1},
		{"allowance already partly used", 2, 1, 3, 2},
		{"prior guests already charged once", 2, 3, 2, 2},
		{"no guests, no charge", 2, 5, 0, 0},
		{"no allowance charges everyone", 0, 1, 4, 4},
		{"exactly at the allowance boundary", 3, 1, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, quota.ExtraGuestsToCharge(tt.invites, tt.prior, tt.newGuests))
		})
	}
}
