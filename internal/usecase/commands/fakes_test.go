//go:build unit

package commands_test

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
	"guildhall/internal/infra"
	"guildhall/internal/infra/db"
	"guildhall/internal/usecase/shared"

	"github.com/google/uuid"
)

// In-memory stand-ins for the unit of work. Each write repo records the
// calls it received so assertions can inspect them after the command runs.

type fakeReads struct {
	users        map[uuid.UUID]*shared.UserSnapshot
	plans        map[uuid.UUID]*shared.PlanSnapshot
	rooms        map[uuid.UUID]*shared.RoomSnapshot
	bookings     map[uuid.UUID]*shared.BookingSnapshot
	transactions map[uuid.UUID]*shared.TransactionSnapshot

	spans          []schedule.Span
	quotaEntries   []quota.Entry
	guestTotal     int
	guestLedger    []guestEntry
	pendingMonthly map[uuid.UUID]int
	invoiceExists  map[string]bool
	billable       []shared.BillableMember
	delinquents    []shared.DelinquencyCandidate
}

func newFakeReads() *fakeReads {
	return &fakeReads{
		users:          map[uuid.UUID]*shared.UserSnapshot{},
		plans:          map[uuid.UUID]*shared.PlanSnapshot{},
		rooms:          map[uuid.UUID]*shared.RoomSnapshot{},
		bookings:       map[uuid.UUID]*shared.BookingSnapshot{},
		transactions:   map[uuid.UUID]*shared.TransactionSnapshot{},
		pendingMonthly: map[uuid.UUID]int{},
		invoiceExists:  map[string]bool{},
	}
}

func notFound() error {
	return infra.WrapRepoErr("no rows", nil, infra.KindNotFound)
}

func (f *fakeReads) UserByID(_ context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, notFound()
}

func (f *fakeReads) PlanByID(_ context.Context, id uuid.UUID) (*shared.PlanSnapshot, error) {
	if p, ok := f.plans[id]; ok {
		return p, nil
	}
	return nil, notFound()
}

func (f *fakeReads) PlanByName(_ context.Context, name string) (*shared.PlanSnapshot, error) {
	for _, p := range f.plans {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, notFound()
}

func (f *fakeReads) RoomByID(_ context.Context, id uuid.UUID) (*shared.RoomSnapshot, error) {
	if r, ok := f.rooms[id]; ok {
		return r, nil
	}
	return nil, notFound()
}

func (f *fakeReads) BookingByID(_ context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	if b, ok := f.bookings[id]; ok {
		return b, nil
	}
	return nil, notFound()
}

func (f *fakeReads) TransactionByID(_ context.Context, id uuid.UUID) (*shared.TransactionSnapshot, error) {
	if t, ok := f.transactions[id]; ok {
		return t, nil
	}
	return nil, notFound()
}

func (f *fakeReads) RoomSpans(_ context.Context, _ uuid.UUID, _, _ schedule.Date) ([]schedule.Span, error) {
	return f.spans, nil
}

func (f *fakeReads) QuotaEntries(_ context.Context, _ uuid.UUID, _, _ schedule.Date) ([]quota.Entry, error) {
	return f.quotaEntries, nil
}

type guestEntry struct {
	bookingID uuid.UUID
	organizer uuid.UUID
	date      schedule.Date
	guests    int
}

func (f *fakeReads) GuestTotalInCycle(_ context.Context, organizerID uuid.UUID, from, to schedule.Date, exclude uuid.UUID) (int, error) {
	if len(f.guestLedger) == 0 {
		return f.guestTotal, nil
	}
	total := 0
	for _, g := range f.guestLedger {
		if g.organizer != organizerID || g.bookingID == exclude {
			continue
		}
		if g.date.Before(from) || g.date.After(to) {
			continue
		}
		total += g.guests
	}
	return total, nil
}

func (f *fakeReads) PendingMonthlyCount(_ context.Context, userID uuid.UUID) (int, error) {
	return f.pendingMonthly[userID], nil
}

func (f *fakeReads) MonthlyInvoiceExists(_ context.Context, userID uuid.UUID, due schedule.Date) (bool, error) {
	return f.invoiceExists[userID.String()+"/"+due.String()], nil
}

func (f *fakeReads) BillableMembers(_ context.Context) ([]shared.BillableMember, error) {
	return f.billable, nil
}

func (f *fakeReads) DelinquencyCandidates(_ context.Context, _ schedule.Date) ([]shared.DelinquencyCandidate, error) {
	return f.delinquents, nil
}

type statusChange struct {
	userID uuid.UUID
	status member.Status
}

type fakeTransactionRepo struct {
	created      []*billing.Transaction
	upserted     []*billing.Transaction
	paid         []uuid.UUID
	overdueUsers []uuid.UUID
	overdueCount int64

	failCreateFor map[uuid.UUID]error
}

func (r *fakeTransactionRepo) Create(_ context.Context, _ db.DBTX, t *billing.Transaction) (uuid.UUID, error) {
	if err, ok := r.failCreateFor[t.UserID()]; ok {
		return uuid.Nil, err
	}
	r.created = append(r.created, t)
	return t.ID(), nil
}

func (r *fakeTransactionRepo) UpsertByChargeKey(_ context.Context, _ db.DBTX, t *billing.Transaction) (uuid.UUID, error) {
	if key := t.ChargeKey(); key != nil {
		for i, prev := range r.upserted {
			if prev.ChargeKey() != nil && *prev.ChargeKey() == *key {
				r.upserted[i] = t
				return prev.ID(), nil
			}
		}
	}
	r.upserted = append(r.upserted, t)
	return t.ID(), nil
}

func (r *fakeTransactionRepo) MarkPaid(_ context.Context, _ db.DBTX, id uuid.UUID, _ time.Time) error {
	r.paid = append(r.paid, id)
	return nil
}

func (r *fakeTransactionRepo) MarkOverdueBefore(_ context.Context, _ db.DBTX, userID uuid.UUID, _ schedule.Date) (int64, error) {
	r.overdueUsers = append(r.overdueUsers, userID)
	return r.overdueCount, nil
}

type fakeUserRepo struct {
	statusChanges []statusChange
	lastLogins    []uuid.UUID
	setStatusErr  error
}

func (r *fakeUserRepo) SetStatus(_ context.Context, _ db.DBTX, userID uuid.UUID, status member.Status) error {
	if r.setStatusErr != nil {
		return r.setStatusErr
	}
	r.statusChanges = append(r.statusChanges, statusChange{userID: userID, status: status})
	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, _ db.DBTX, userID uuid.UUID) error {
	r.lastLogins = append(r.lastLogins, userID)
	return nil
}

type fakeBookingRepo struct {
	created []*booking.Booking
	updated []*booking.Booking
	deleted []uuid.UUID
	locked  []string
}

func (r *fakeBookingRepo) Create(_ context.Context, _ db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	r.created = append(r.created, b)
	return b.ID(), nil
}

func (r *fakeBookingRepo) Update(_ context.Context, _ db.DBTX, b *booking.Booking) error {
	r.updated = append(r.updated, b)
	return nil
}

func (r *fakeBookingRepo) Delete(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeBookingRepo) LockRoomDate(_ context.Context, _ db.DBTX, roomID uuid.UUID, date schedule.Date) error {
	r.locked = append(r.locked, roomID.String()+"/"+date.String())
	return nil
}

type fakeRoomRepo struct {
	created []*room.Room
}

func (r *fakeRoomRepo) Create(_ context.Context, _ db.DBTX, rm *room.Room) (uuid.UUID, error) {
	r.created = append(r.created, rm)
	return rm.ID(), nil
}

type fakePlanRepo struct {
	created []*plan.Plan
}

func (r *fakePlanRepo) Create(_ context.Context, _ db.DBTX, p *plan.Plan) (uuid.UUID, error) {
	r.created = append(r.created, p)
	return p.ID(), nil
}

type fakeUoW struct {
	reads       *fakeReads
	bookingRepo *fakeBookingRepo
	txRepo      *fakeTransactionRepo
	userRepo    *fakeUserRepo
	roomRepo    *fakeRoomRepo
	planRepo    *fakePlanRepo
}

func newFakeUoW() *fakeUoW {
	return &fakeUoW{
		reads:       newFakeReads(),
		bookingRepo: &fakeBookingRepo{},
		txRepo:      &fakeTransactionRepo{},
		userRepo:    &fakeUserRepo{},
		roomRepo:    &fakeRoomRepo{},
		planRepo:    &fakePlanRepo{},
	}
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &fakeTx{uow: u})
}

func (u *fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) CommandReads() shared.CommandReads {
	return u.reads
}

type fakeTx struct {
	uow *fakeUoW
}

func (t *fakeTx) Bookings() shared.BookingRepository         { return t.uow.bookingRepo }
func (t *fakeTx) Transactions() shared.TransactionRepository { return t.uow.txRepo }
func (t *fakeTx) Users() shared.UserRepository               { return t.uow.userRepo }
func (t *fakeTx) Rooms() shared.RoomRepository               { return t.uow.roomRepo }
func (t *fakeTx) Plans() shared.PlanRepository               { return t.uow.planRepo }
func (t *fakeTx) Reads() shared.CommandReads                 { return t.uow.reads }
func (t *fakeTx) DB() db.DBTX                                { return nil }
