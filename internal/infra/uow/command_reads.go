package uow

import (
	"context"

	"guildhall/internal/domain/billing"
	"guildhall/internal/domain/booking"
	"guildhall/internal/domain/member"
	"guildhall/internal/domain/quota"
	"guildhall/internal/domain/room"
	"guildhall/internal/domain/schedule"
	"guildhall/internal/infra"
	"guildhall/internal/infra/db"
	"guildhall/internal/pkg/pgconv"
	"guildhall/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// commandReads serves the write side's validation reads. It runs against the
// pool outside transactions and against the open tx inside Within.
type commandReads struct {
	dbtx db.DBTX
}

func (r *commandReads) UserByID(ctx context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	var (
		snap   shared.UserSnapshot
		planID pgtype.UUID
		status string
		role   string
	)
	err := r.dbtx.QueryRow(ctx,
		`SELECT id, name, email, category, plan_id, status, role FROM users WHERE id = $1`,
		id,
	).Scan(&snap.ID, &snap.Name, &snap.Email, &snap.Category, &planID, &status, &role)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load user snapshot", err)
	}
	snap.PlanID = pgconv.UUIDPtrFromPgtype(planID)
	snap.Status = member.Status(status)
	snap.Role = member.Role(role)
	return &snap, nil
}

const planSnapshotColumns = `id, name, price_cents, weekly_quota, monthly_quota, owl_quota, invites, extra_invite_price_cents`

func (r *commandReads) PlanByID(ctx context.Context, id uuid.UUID) (*shared.PlanSnapshot, error) {
	return r.scanPlan(r.dbtx.QueryRow(ctx,
		`SELECT `+planSnapshotColumns+` FROM plans WHERE id = $1`, id))
}

func (r *commandReads) PlanByName(ctx context.Context, name string) (*shared.PlanSnapshot, error) {
	return r.scanPlan(r.dbtx.QueryRow(ctx,
		`SELECT `+planSnapshotColumns+` FROM plans WHERE name = $1`, name))
}

func (r *commandReads) scanPlan(row interface{ Scan(dest ...any) error }) (*shared.PlanSnapshot, error) {
	var snap shared.PlanSnapshot
	err := row.Scan(
		&snap.ID, &snap.Name, &snap.PriceCents,
		&snap.WeeklyQuota, &snap.MonthlyQuota, &snap.OwlQuota,
		&snap.Invites, &snap.ExtraInvitePriceCents,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("plan not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load plan snapshot", err)
	}
	return &snap, nil
}

func (r *commandReads) RoomByID(ctx context.Context, id uuid.UUID) (*shared.RoomSnapshot, error) {
	var (
		snap   shared.RoomSnapshot
		status string
	)
	err := r.dbtx.QueryRow(ctx,
		`SELECT id, name, capacity, status FROM rooms WHERE id = $1`, id,
	).Scan(&snap.ID, &snap.Name, &snap.Capacity, &status)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load room snapshot", err)
	}
	snap.Status = room.Status(status)
	return &snap, nil
}

const bookingSnapshotSQL = `
SELECT id, room_id, organizer_id, date, start_minutes, end_minutes,
	title, description, participants, guests, status, created_at, updated_at
FROM bookings
WHERE id = $1`

func (r *commandReads) BookingByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	var (
		snap       shared.BookingSnapshot
		date       pgtype.Date
		start, end int32
		status     string
		createdAt  pgtype.Timestamptz
		updatedAt  pgtype.Timestamptz
	)
	err := r.dbtx.QueryRow(ctx, bookingSnapshotSQL, id).Scan(
		&snap.ID, &snap.RoomID, &snap.OrganizerID,
		&date, &start, &end,
		&snap.Title, &snap.Description, &snap.Participants, &snap.Guests,
		&status, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load booking snapshot", err)
	}
	snap.Date = schedule.DateOf(date.Time)
	snap.Start = schedule.TimeOfDay(start)
	snap.End = schedule.TimeOfDay(end)
	snap.Status = booking.Status(status)
	snap.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	snap.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &snap, nil
}

func (r *commandReads) TransactionByID(ctx context.Context, id uuid.UUID) (*shared.TransactionSnapshot, error) {
	var (
		snap      shared.TransactionSnapshot
		chargeKey pgtype.Text
		status    string
		typ       string
	)
	err := r.dbtx.QueryRow(ctx,
		`SELECT id, charge_key, user_id, description, amount_cents, status, type FROM transactions WHERE id = $1`,
		id,
	).Scan(&snap.ID, &chargeKey, &snap.UserID, &snap.Description, &snap.AmountCents, &status, &typ)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("transaction not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load transaction snapshot", err)
	}
	snap.ChargeKey = pgconv.StringPtrFromPgtype(chargeKey)
	snap.Status = billing.Status(status)
	snap.Type = billing.Type(typ)
	return &snap, nil
}

const roomSpansSQL = `
SELECT date, start_minutes, end_minutes
FROM bookings
WHERE room_id = $1
	AND date BETWEEN $2 AND $3
	AND status <> 'cancelled'`

func (r *commandReads) RoomSpans(ctx context.Context, roomID uuid.UUID, from, to schedule.Date) ([]schedule.Span, error) {
	rows, err := r.dbtx.Query(ctx, roomSpansSQL,
		roomID, pgconv.DateToPgtype(from.Time()), pgconv.DateToPgtype(to.Time()))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load room spans", err)
	}
	defer rows.Close()

	var spans []schedule.Span
	for rows.Next() {
		var (
			date       pgtype.Date
			start, end int32
		)
		if err := rows.Scan(&date, &start, &end); err != nil {
			return nil, infra.WrapRepoErr("failed to scan span row", err)
		}
		spans = append(spans, schedule.Span{
			Date:  schedule.DateOf(date.Time),
			Start: schedule.TimeOfDay(start),
			End:   schedule.TimeOfDay(end),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate span rows", err)
	}
	return spans, nil
}

const quotaEntriesSQL = `
SELECT organizer_id, date, start_minutes, COALESCE(array_length(guests, 1), 0)
FROM bookings
WHERE organizer_id = $1
	AND date BETWEEN $2 AND $3
	AND status <> 'cancelled'`

func (r *commandReads) QuotaEntries(ctx context.Context, organizerID uuid.UUID, from, to schedule.Date) ([]quota.Entry, error) {
	rows, err := r.dbtx.Query(ctx, quotaEntriesSQL,
		organizerID, pgconv.DateToPgtype(from.Time()), pgconv.DateToPgtype(to.Time()))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load quota entries", err)
	}
	defer rows.Close()

	var entries []quota.Entry
	for rows.Next() {
		var (
			entry  quota.Entry
			date   pgtype.Date
			start  int32
			guests int32
		)
		if err := rows.Scan(&entry.Organizer, &date, &start, &guests); err != nil {
			return nil, infra.WrapRepoErr("failed to scan quota entry row", err)
		}
		entry.Date = schedule.DateOf(date.Time)
		entry.Start = schedule.TimeOfDay(start)
		entry.Guests = int(guests)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate quota entry rows", err)
	}
	return entries, nil
}

const guestTotalSQL = `
SELECT COALESCE(SUM(COALESCE(array_length(guests, 1), 0)), 0)
FROM bookings
WHERE organizer_id = $1
	AND date BETWEEN $2 AND $3
	AND status <> 'cancelled'
	AND id <> $4`

func (r *commandReads) GuestTotalInCycle(ctx context.Context, organizerID uuid.UUID, from, to schedule.Date, excludeBookingID uuid.UUID) (int, error) {
	var total int64
	err := r.dbtx.QueryRow(ctx, guestTotalSQL,
		organizerID, pgconv.DateToPgtype(from.Time()), pgconv.DateToPgtype(to.Time()), excludeBookingID,
	).Scan(&total)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to sum cycle guests", err)
	}
	return int(total), nil
}

func (r *commandReads) PendingMonthlyCount(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int64
	err := r.dbtx.QueryRow(ctx,
		`SELECT COUNT(*) FROM transactions WHERE user_id = $1 AND type = 'monthly' AND status <> 'paid'`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count pending monthly transactions", err)
	}
	return int(count), nil
}

func (r *commandReads) MonthlyInvoiceExists(ctx context.Context, userID uuid.UUID, due schedule.Date) (bool, error) {
	var exists bool
	err := r.dbtx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM transactions WHERE user_id = $1 AND type = 'monthly' AND due_date = $2)`,
		userID, pgconv.DateToPgtype(due.Time()),
	).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check monthly invoice", err)
	}
	return exists, nil
}

const billableMembersSQL = `
SELECT u.id, u.name, p.name, p.price_cents
FROM users u
JOIN plans p ON p.id = u.plan_id
WHERE u.status = 'active' AND u.category <> $1
ORDER BY u.name`

func (r *commandReads) BillableMembers(ctx context.Context) ([]shared.BillableMember, error) {
	rows, err := r.dbtx.Query(ctx, billableMembersSQL, member.CategoryVisitor)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list billable members", err)
	}
	defer rows.Close()

	var members []shared.BillableMember
	for rows.Next() {
		var m shared.BillableMember
		if err := rows.Scan(&m.ID, &m.Name, &m.PlanName, &m.PriceCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan billable member row", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate billable member rows", err)
	}
	return members, nil
}

// Only monthly invoices make a member delinquent; past-due one-off charges
// never change anyone's status.
const delinquencyCandidatesSQL = `
SELECT DISTINCT u.id, u.status
FROM users u
JOIN transactions t ON t.user_id = u.id
WHERE u.category <> $1
	AND t.type = 'monthly'
	AND t.status = 'pending'
	AND (t.due_date IS NULL OR t.due_date < $2)`

func (r *commandReads) DelinquencyCandidates(ctx context.Context, asOf schedule.Date) ([]shared.DelinquencyCandidate, error) {
	rows, err := r.dbtx.Query(ctx, delinquencyCandidatesSQL,
		member.CategoryVisitor, pgconv.DateToPgtype(asOf.Time()))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list delinquency candidates", err)
	}
	defer rows.Close()

	var candidates []shared.DelinquencyCandidate
	for rows.Next() {
		var (
			c      shared.DelinquencyCandidate
			status string
		)
		if err := rows.Scan(&c.ID, &status); err != nil {
			return nil, infra.WrapRepoErr("failed to scan delinquency candidate row", err)
		}
		c.Status = member.Status(status)
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate delinquency candidate rows", err)
	}
	return candidates, nil
}
