//go:build unit

package billing_test

import (
	"testing"
	"time"

	"guildhall/internal/domain/billing"
	"guildhall/internal/domain/schedule"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMonthlyInvoice(t *testing.T) {
	userID := uuid.New()
	due := schedule.NewDate(2026, time.April, 15)

	t.Run("carries plan name, month and due date", func(t *testing.T) {
		tx, err := billing.NewMonthlyInvoice(userID, "Gamer", 4500, due)
		require.NoError(t, err)

		assert.Equal(t, "Gamer plan - April 2026", tx.Description())
		assert.Equal(t, int64(4500), tx.AmountCents())
		assert.Equal(t, billing.TypeMonthly, tx.Type())
		assert.Equal(t, billing.StatusPending, tx.Status())
		require.NotNil(t, tx.DueDate())
		assert.Equal(t, due, *tx.DueDate())
		assert.Nil(t, tx.ChargeKey())
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := billing.NewMonthlyInvoice(userID, "Gamer", -1, due)
		assert.ErrorIs(t, err, billing.ErrNegativeAmount)
	})
}

func TestNewGuestCharge(t *testing.T) {
	bookingID := uuid.New()
	userID := uuid.New()

	t.Run("amount is guests times unit price under the booking's key", func(t *testing.T) {
		tx, err := billing.NewGuestCharge(bookingID, userID, 3, 500)
		require.NoError(t, err)

		assert.Equal(t, int64(1500), tx.AmountCents())
		assert.Equal(t, billing.TypeOneOff, tx.Type())
		require.NotNil(t, tx.ChargeKey())
		assert.Equal(t, billing.ChargeKey(bookingID), *tx.ChargeKey())
		assert.Nil(t, tx.DueDate())
	})

	t.Run("needs at least one guest and a positive price", func(t *testing.T) {
		_, err := billing.NewGuestCharge(bookingID, userID, 0, 500)
		assert.ErrorIs(t, err, billing.ErrNegativeAmount)

		_, err = billing.NewGuestCharge(bookingID, userID, 2, 0)
		assert.ErrorIs(t, err, billing.ErrNegativeAmount)
	})
}

func TestMarkPaid(t *testing.T) {
	now := time.Date(2026, time.March, 20, 10, 0, 0, 0, time.UTC)

	t.Run("settles a pending transaction", func(t *testing.T) {
		tx, err := billing.NewManualCharge(uuid.New(), "Replacement key", 2000, billing.TypeOneOff, nil)
		require.NoError(t, err)

		require.NoError(t, tx.MarkPaid(now))
		assert.Equal(t, billing.StatusPaid, tx.Status())
		require.NotNil(t, tx.PaidAt())
		assert.Equal(t, now, *tx.PaidAt())
	})

	t.Run("paid is terminal", func(t *testing.T) {
		tx, err := billing.NewManualCharge(uuid.New(), "Replacement key", 2000, billing.TypeOneOff, nil)
		require.NoError(t, err)
		require.NoError(t, tx.MarkPaid(now))

		assert.ErrorIs(t, tx.MarkPaid(now.Add(time.Hour)), billing.ErrAlreadyPaid)
	})

	t.Run("an overdue transaction can still be paid", func(t *testing.T) {
		tx, err := billing.NewManualCharge(uuid.New(), "Late invoice", 4500, billing.TypeMonthly, nil)
		require.NoError(t, err)
		require.NoError(t, tx.MarkOverdue())

		assert.NoError(t, tx.MarkPaid(now))
	})
}

func TestMarkOverdue(t *testing.T) {
	t.Run("only pending transactions go overdue", func(t *testing.T) {
		tx, err := billing.NewManualCharge(uuid.New(), "Late invoice", 4500, billing.TypeMonthly, nil)
		require.NoError(t, err)

		require.NoError(t, tx.MarkOverdue())
		assert.Equal(t, billing.StatusOverdue, tx.Status())

		assert.ErrorIs(t, tx.MarkOverdue(), billing.ErrNotPending)
	})
}
