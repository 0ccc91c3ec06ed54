package shared

import (
	"context"
	"time"

	"guildhall/internal/domain/billing"
	"guildhall/internal/domain/booking"
	"guildhall/internal/domain/member"
	"guildhall/internal/domain/plan"
	"guildhall/internal/domain/quota"
	"guildhall/internal/domain/room"
	"guildhall/internal/domain/schedule"
	"guildhall/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Transactions() TransactionRepository
	Users() UserRepository
	Rooms() RoomRepository
	Plans() PlanRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	UserByID(ctx context.Context, id uuid.UUID) (*UserSnapshot, error)
	PlanByID(ctx context.Context, id uuid.UUID) (*PlanSnapshot, error)
	PlanByName(ctx context.Context, name string) (*PlanSnapshot, error)
	RoomByID(ctx context.Context, id uuid.UUID) (*RoomSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	TransactionByID(ctx context.Context, id uuid.UUID) (*TransactionSnapshot, error)

	// RoomSpans returns the occupied spans of every non-cancelled booking on
	// the room between from and to inclusive, for occupancy rebuilds.
	RoomSpans(ctx context.Context, roomID uuid.UUID, from, to schedule.Date) ([]schedule.Span, error)

	// QuotaEntries returns the organizer's non-cancelled bookings dated
	// between from and to inclusive, as ledger entries.
	QuotaEntries(ctx context.Context, organizerID uuid.UUID, from, to schedule.Date) ([]quota.Entry, error)

	// GuestTotalInCycle sums guests over the organizer's non-cancelled
	// bookings in [from, to], excluding one booking (the one being written).
	GuestTotalInCycle(ctx context.Context, organizerID uuid.UUID, from, to schedule.Date, excludeBookingID uuid.UUID) (int, error)

	// PendingMonthlyCount counts the user's monthly transactions not yet paid.
	PendingMonthlyCount(ctx context.Context, userID uuid.UUID) (int, error)

	// MonthlyInvoiceExists reports whether the user already has a monthly
	// invoice due on the given date, so re-running the batch cannot duplicate.
	MonthlyInvoiceExists(ctx context.Context, userID uuid.UUID, due schedule.Date) (bool, error)

	// BillableMembers lists active non-visitor members with their plan price.
	BillableMembers(ctx context.Context) ([]BillableMember, error)

	// DelinquencyCandidates lists non-visitor members holding pending
	// transactions due strictly before asOf.
	DelinquencyCandidates(ctx context.Context, asOf schedule.Date) ([]DelinquencyCandidate, error)
}

type BookingRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, b *booking.Booking) (uuid.UUID, error)
	Update(ctx context.Context, dbtx db.DBTX, b *booking.Booking) error
	Delete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error
	// LockRoomDate serializes writers on one room/date pair for the duration
	// of the transaction, so availability re-validation cannot race.
	LockRoomDate(ctx context.Context, dbtx db.DBTX, roomID uuid.UUID, date schedule.Date) error
}

type TransactionRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, t *billing.Transaction) (uuid.UUID, error)
	// UpsertByChargeKey creates or replaces the charge stored under the
	// transaction's deterministic charge key.
	UpsertByChargeKey(ctx context.Context, dbtx db.DBTX, t *billing.Transaction) (uuid.UUID, error)
	MarkPaid(ctx context.Context, dbtx db.DBTX, id uuid.UUID, paidAt time.Time) error
	// MarkOverdueBefore flips the user's pending transactions due strictly
	// before the date to overdue, returning how many changed.
	MarkOverdueBefore(ctx context.Context, dbtx db.DBTX, userID uuid.UUID, before schedule.Date) (int64, error)
}

type UserRepository interface {
	SetStatus(ctx context.Context, dbtx db.DBTX, userID uuid.UUID, status member.Status) error
	UpdateLastLogin(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) error
}

type RoomRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, r *room.Room) (uuid.UUID, error)
}

type PlanRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, p *plan.Plan) (uuid.UUID, error)
}
