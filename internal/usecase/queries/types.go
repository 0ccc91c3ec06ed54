package queries

import (
	"time"

	"guildhall/internal/domain/schedule"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type BookingView struct {
	ID            uuid.UUID   `json:"id"`
	RoomID        uuid.UUID   `json:"room_id"`
	RoomName      string      `json:"room_name"`
	OrganizerID   uuid.UUID   `json:"organizer_id"`
	OrganizerName string      `json:"organizer_name"`
	Date          string      `json:"date"`
	StartTime     string      `json:"start_time"`
	EndTime       string      `json:"end_time"`
	Title         string      `json:"title"`
	Description   *string     `json:"description,omitempty"`
	Participants  []uuid.UUID `json:"participants"`
	Guests        []string    `json:"guests"`
	Status        string      `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

type BookingListItem struct {
	ID        uuid.UUID `json:"id"`
	RoomID    uuid.UUID `json:"room_id"`
	RoomName  string    `json:"room_name"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// DayBooking is the typed row availability computations run on.
type DayBooking struct {
	ID            uuid.UUID
	OrganizerID   uuid.UUID
	OrganizerName string
	Title         string
	Date          schedule.Date
	Start         schedule.TimeOfDay
	End           schedule.TimeOfDay
}

type SlotStatus string

const (
	SlotFree     SlotStatus = "free"
	SlotPartial  SlotStatus = "partial"
	SlotOccupied SlotStatus = "occupied"
)

type SlotStatusView struct {
	StartTime string     `json:"start_time"`
	EndTime   string     `json:"end_time"`
	EndDate   string     `json:"end_date"`
	Status    SlotStatus `json:"status"`
}

// SessionBlockView groups adjacent bookings by the same organizer (gap of at
// most 30 minutes) into one visual block on the day grid.
type SessionBlockView struct {
	OrganizerID   uuid.UUID   `json:"organizer_id"`
	OrganizerName string      `json:"organizer_name"`
	Title         string      `json:"title"`
	StartTime     string      `json:"start_time"`
	EndTime       string      `json:"end_time"`
	EndDate       string      `json:"end_date"`
	BookingIDs    []uuid.UUID `json:"booking_ids"`
}

type DayScheduleView struct {
	RoomID          uuid.UUID          `json:"room_id"`
	Date            string             `json:"date"`
	AvailableStarts []string           `json:"available_starts"`
	Slots           []SlotStatusView   `json:"slots"`
	Blocks          []SessionBlockView `json:"blocks"`
}

type EndOptionView struct {
	EndTime string `json:"end_time"`
	EndDate string `json:"end_date"`
}

type TransactionView struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Description string     `json:"description"`
	AmountCents int64      `json:"amount_cents"`
	Status      string     `json:"status"`
	Type        string     `json:"type"`
	DueDate     *string    `json:"due_date,omitempty"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type UserView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Category  string    `json:"category"`
	Status    string    `json:"status"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Category string    `json:"category"`
	Status   string    `json:"status"`
	Role     string    `json:"role"`
}

type RoomView struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Capacity int       `json:"capacity"`
	Status   string    `json:"status"`
}

type PlanView struct {
	ID                    uuid.UUID `json:"id"`
	Name                  string    `json:"name"`
	PriceCents            int64     `json:"price_cents"`
	WeeklyQuota           int       `json:"weekly_quota"`
	MonthlyQuota          int       `json:"monthly_quota"`
	OwlQuota              int       `json:"owl_quota"`
	Invites               int       `json:"invites"`
	ExtraInvitePriceCents int64     `json:"extra_invite_price_cents"`
	VotingWeight          int       `json:"voting_weight"`
}
