package billing

import (
	"errors"
	"fmt"
	"time"

	"guildhall/internal/domain/schedule"

	"github.com/google/uuid"
)

var (
	ErrNegativeAmount = errors.New("transaction amount cannot be negative")
	ErrAlreadyPaid    = errors.New("transaction is already paid")
	ErrNotPending     = errors.New("transaction is not pending")
)

// Transaction is a charge or invoice owed by a member. ChargeKey is set only
// for reactive extra-guest charges; everything else gets an opaque id.
type Transaction struct {
	id          uuid.UUID
	chargeKey   *string
	userID      uuid.UUID
	description string
	amountCents int64
	status      Status
	typ         Type
	dueDate     *schedule.Date
	paidAt      *time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

// NewMonthlyInvoice creates the recurring plan invoice for one member.
func NewMonthlyInvoice(userID uuid.UUID, planName string, priceCents int64, due schedule.Date) (*Transaction, error) {
	if priceCents < 0 {
		return nil, ErrNegativeAmount
	}
	return &Transaction{
		id:          uuid.New(),
		userID:      userID,
		description: fmt.Sprintf("%s plan - %s", planName, MonthLabel(due)),
		amountCents: priceCents,
		status:      StatusPending,
		typ:         TypeMonthly,
		dueDate:     &due,
	}, nil
}

// NewGuestCharge creates the idempotent extra-guest charge for a booking.
func NewGuestCharge(bookingID, userID uuid.UUID, guestCount int, unitPriceCents int64) (*Transaction, error) {
	if guestCount <= 0 || unitPriceCents <= 0 {
		return nil, ErrNegativeAmount
	}
	key := ChargeKey(bookingID)
	return &Transaction{
		id:          uuid.New(),
		chargeKey:   &key,
		userID:      userID,
		description: fmt.Sprintf("Extra guests (%d)", guestCount),
		amountCents: int64(guestCount) * unitPriceCents,
		status:      StatusPending,
		typ:         TypeOneOff,
	}, nil
}

// NewManualCharge is the administrator-entered one-off transaction.
func NewManualCharge(userID uuid.UUID, description string, amountCents int64, typ Type, due *schedule.Date) (*Transaction, error) {
	if amountCents < 0 {
		return nil, ErrNegativeAmount
	}
	return &Transaction{
		id:          uuid.New(),
		userID:      userID,
		description: description,
		amountCents: amountCents,
		status:      StatusPending,
		typ:         typ,
		dueDate:     due,
	}, nil
}

func Reconstruct(
	id uuid.UUID,
	chargeKey *string,
	userID uuid.UUID,
	description string,
	amountCents int64,
	status Status,
	typ Type,
	dueDate *schedule.Date,
	paidAt *time.Time,
	createdAt, updatedAt time.Time,
) *Transaction {
	return &Transaction{
		id:          id,
		chargeKey:   chargeKey,
		userID:      userID,
		description: description,
		amountCents: amountCents,
		status:      status,
		typ:         typ,
		dueDate:     dueDate,
		paidAt:      paidAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (t *Transaction) ID() uuid.UUID            { return t.id }
func (t *Transaction) ChargeKey() *string       { return t.chargeKey }
func (t *Transaction) UserID() uuid.UUID        { return t.userID }
func (t *Transaction) Description() string      { return t.description }
func (t *Transaction) AmountCents() int64       { return t.amountCents }
func (t *Transaction) Status() Status           { return t.status }
func (t *Transaction) Type() Type               { return t.typ }
func (t *Transaction) DueDate() *schedule.Date  { return t.dueDate }
func (t *Transaction) PaidAt() *time.Time       { return t.paidAt }
func (t *Transaction) CreatedAt() time.Time     { return t.createdAt }
func (t *Transaction) UpdatedAt() time.Time     { return t.updatedAt }

func (t *Transaction) IsPending() bool {
	return t.status == StatusPending
}

// MarkPaid settles the transaction. Paid is terminal.
func (t *Transaction) MarkPaid(now time.Time) error {
	if t.status == StatusPaid {
		return ErrAlreadyPaid
	}
	t.status = StatusPaid
	t.paidAt = &now
	return nil
}

// MarkOverdue flags an unpaid transaction past its due date.
func (t *Transaction) MarkOverdue() error {
	if t.status != StatusPending {
		return ErrNotPending
	}
	t.status = StatusOverdue
	return nil
}
