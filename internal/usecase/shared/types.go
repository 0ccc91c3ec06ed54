package shared

import (
	"time"

	"guildhall/internal/domain/billing"
	"guildhall/internal/domain/booking"
	"guildhall/internal/domain/member"
	"guildhall/internal/domain/quota"
	"guildhall/internal/domain/room"
	"guildhall/internal/domain/schedule"

	"github.com/google/uuid"
)

// Write-side snapshots keep commands off the read-model query types.

type UserSnapshot struct {
	ID       uuid.UUID
	Name     string
	Email    string
	Category string
	PlanID   *uuid.UUID
	Status   member.Status
	Role     member.Role
}

// Eligible reports whether the member may organize bookings and be billed.
func (u *UserSnapshot) Eligible() bool {
	return u.Status == member.StatusActive && u.Category != member.CategoryVisitor
}

type PlanSnapshot struct {
	ID                    uuid.UUID
	Name                  string
	PriceCents            int64
	WeeklyQuota           int
	MonthlyQuota          int
	OwlQuota              int
	Invites               int
	ExtraInvitePriceCents int64
}

func (p *PlanSnapshot) Limits() quota.Limits {
	return quota.Limits{Weekly: p.WeeklyQuota, Monthly: p.MonthlyQuota, Owl: p.OwlQuota}
}

type RoomSnapshot struct {
	ID       uuid.UUID
	Name     string
	Capacity int
	Status   room.Status
}

type BookingSnapshot struct {
	ID           uuid.UUID
	RoomID       uuid.UUID
	OrganizerID  uuid.UUID
	Date         schedule.Date
	Start        schedule.TimeOfDay
	End          schedule.TimeOfDay
	Title        string
	Description  string
	Participants []uuid.UUID
	Guests       []string
	Status       booking.Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (b *BookingSnapshot) Entity() *booking.Booking {
	return booking.Reconstruct(
		b.ID, b.RoomID, b.OrganizerID,
		b.Date, b.Start, b.End,
		b.Title, b.Description,
		b.Participants, b.Guests,
		b.Status,
		b.CreatedAt, b.UpdatedAt,
	)
}

type TransactionSnapshot struct {
	ID          uuid.UUID
	ChargeKey   *string
	UserID      uuid.UUID
	Description string
	AmountCents int64
	Status      billing.Status
	Type        billing.Type
}

// BillableMember is one row of the monthly invoice run: an active,
// non-visitor member joined to their plan.
type BillableMember struct {
	ID         uuid.UUID
	Name       string
	PlanName   string
	PriceCents int64
}

// DelinquencyCandidate is one row of the overdue scan.
type DelinquencyCandidate struct {
	ID     uuid.UUID
	Status member.Status
}
