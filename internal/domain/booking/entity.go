package booking

import (
	"errors"
	"slices"
	"strings"
	"time"

	"guildhall/internal/domain/schedule"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle           = errors.New("booking title cannot be empty")
	ErrNotCanonicalStart    = errors.New("booking must start at a canonical slot")
	ErrInvalidEnd           = errors.New("booking end is not a canonical slot end")
	ErrCapacityExceeded     = errors.New("attendees exceed room capacity")
	ErrAlreadyCancelled     = errors.New("booking is already cancelled")
	ErrCancelTooLate        = errors.New("bookings can only be cancelled up to 5 hours before start")
	ErrOrganizerNotAttendee = errors.New("organizer must be a participant")
)

// CancelLeadTime is the minimum notice an organizer must give to cancel.
// Administrators are not bound by it.
const CancelLeadTime = 5 * time.Hour

type Booking struct {
	id           uuid.UUID
	roomID       uuid.UUID
	organizerID  uuid.UUID
	date         schedule.Date
	start        schedule.TimeOfDay
	end          schedule.TimeOfDay
	title        string
	description  string
	participants []uuid.UUID
	guests       []string
	status       Status
	createdAt    time.Time
	updatedAt    time.Time
}

// New builds a confirmed booking. The date is the calendar date the start
// slot belongs to; for owl sessions the end time is past midnight and the
// span walker treats end <= start as a day rollover.
func New(
	roomID, organizerID uuid.UUID,
	date schedule.Date,
	start, end schedule.TimeOfDay,
	title, description string,
	participants []uuid.UUID,
	guests []string,
	roomCapacity int,
) (*Booking, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}
	if !schedule.IsCanonicalStart(start) {
		return nil, ErrNotCanonicalStart
	}
	if !validEnd(date, start, end) {
		return nil, ErrInvalidEnd
	}

	attendees := withOrganizer(organizerID, participants)
	if len(attendees)+len(guests) > roomCapacity {
		return nil, ErrCapacityExceeded
	}

	return &Booking{
		id:           uuid.New(),
		roomID:       roomID,
		organizerID:  organizerID,
		date:         date,
		start:        start,
		end:          end,
		title:        strings.TrimSpace(title),
		description:  strings.TrimSpace(description),
		participants: attendees,
		guests:       slices.Clone(guests),
		status:       StatusConfirmed,
	}, nil
}

func Reconstruct(
	id, roomID, organizerID uuid.UUID,
	date schedule.Date,
	start, end schedule.TimeOfDay,
	title, description string,
	participants []uuid.UUID,
	guests []string,
	status Status,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:           id,
		roomID:       roomID,
		organizerID:  organizerID,
		date:         date,
		start:        start,
		end:          end,
		title:        title,
		description:  description,
		participants: participants,
		guests:       guests,
		status:       status,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// validEnd accepts only the natural end of some canonical slot at or after
// start, so a booking always covers whole sessions.
func validEnd(date schedule.Date, start, end schedule.TimeOfDay) bool {
	for _, s := range schedule.CanonicalStarts {
		if s < start {
			continue
		}
		if _, slotEnd := schedule.SlotEnd(date, s); slotEnd == end {
			return true
		}
	}
	return false
}

func withOrganizer(organizerID uuid.UUID, participants []uuid.UUID) []uuid.UUID {
	if slices.Contains(participants, organizerID) {
		return slices.Clone(participants)
	}
	return append([]uuid.UUID{organizerID}, participants...)
}

func (b *Booking) ID() uuid.UUID              { return b.id }
func (b *Booking) RoomID() uuid.UUID          { return b.roomID }
func (b *Booking) OrganizerID() uuid.UUID     { return b.organizerID }
func (b *Booking) Date() schedule.Date        { return b.date }
func (b *Booking) Start() schedule.TimeOfDay  { return b.start }
func (b *Booking) End() schedule.TimeOfDay    { return b.end }
func (b *Booking) Title() string              { return b.title }
func (b *Booking) Description() string        { return b.description }
func (b *Booking) Participants() []uuid.UUID  { return slices.Clone(b.participants) }
func (b *Booking) Guests() []string           { return slices.Clone(b.guests) }
func (b *Booking) Status() Status             { return b.status }
func (b *Booking) CreatedAt() time.Time       { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time       { return b.updatedAt }

func (b *Booking) IsCancelled() bool {
	return b.status == StatusCancelled
}

func (b *Booking) IsOwl() bool {
	return schedule.SlotIsOwl(b.start)
}

// Span returns the occupied range for the occupancy grid.
func (b *Booking) Span() schedule.Span {
	return schedule.Span{Date: b.date, Start: b.start, End: b.end}
}

// StartsAt resolves the booking start to an instant in loc.
func (b *Booking) StartsAt(loc *time.Location) time.Time {
	return b.date.At(b.start, loc)
}

// Rename and SetDescription are the only content edits allowed after
// creation; room, date and slot are frozen once a booking exists.
func (b *Booking) Rename(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	b.title = strings.TrimSpace(title)
	return nil
}

func (b *Booking) SetDescription(description string) {
	b.description = strings.TrimSpace(description)
}

// ReplaceAttendees swaps the participant and guest lists, keeping the
// organizer present and the capacity invariant intact. An empty participant
// list is legal here; the caller deletes such bookings.
func (b *Booking) ReplaceAttendees(participants []uuid.UUID, guests []string, roomCapacity int) error {
	if len(participants) > 0 && !slices.Contains(participants, b.organizerID) {
		return ErrOrganizerNotAttendee
	}
	if len(participants)+len(guests) > roomCapacity {
		return ErrCapacityExceeded
	}
	b.participants = slices.Clone(participants)
	b.guests = slices.Clone(guests)
	return nil
}

func (b *Booking) HasParticipants() bool {
	return len(b.participants) > 0
}

// Cancel marks the booking cancelled. Organizers must respect the lead time;
// force bypasses it for administrators.
func (b *Booking) Cancel(now time.Time, loc *time.Location, force bool) error {
	if b.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	if !force && now.After(b.StartsAt(loc).Add(-CancelLeadTime)) {
		return ErrCancelTooLate
	}
	b.status = StatusCancelled
	return nil
}
