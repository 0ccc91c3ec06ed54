package readstore

import (
	"context"

	"guildhall/internal/domain/schedule"
	"guildhall/internal/infra"
	"guildhall/internal/infra/db"
	"guildhall/internal/pkg/pgconv"
	"guildhall/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

const findBookingByIDSQL = `
SELECT b.id, b.room_id, r.name, b.organizer_id, u.name,
	b.date, b.start_minutes, b.end_minutes,
	b.title, b.description, b.participants, b.guests, b.status,
	b.created_at, b.updated_at
FROM bookings b
JOIN rooms r ON r.id = b.room_id
JOIN users u ON u.id = b.organizer_id
WHERE b.id = $1`

func (s *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	var (
		view        queries.BookingView
		date        pgtype.Date
		start, end  int32
		description string
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)
	err := s.db.QueryRow(ctx, findBookingByIDSQL, id).Scan(
		&view.ID, &view.RoomID, &view.RoomName, &view.OrganizerID, &view.OrganizerName,
		&date, &start, &end,
		&view.Title, &description, &view.Participants, &view.Guests, &view.Status,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	view.Date = schedule.DateOf(date.Time).String()
	view.StartTime = schedule.TimeOfDay(start).String()
	view.EndTime = schedule.TimeOfDay(end).String()
	if description != "" {
		view.Description = &description
	}
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &view, nil
}

const listBookingsByOrganizerSQL = `
SELECT b.id, b.room_id, r.name, b.date, b.start_minutes, b.end_minutes,
	b.title, b.status, b.created_at
FROM bookings b
JOIN rooms r ON r.id = b.room_id
WHERE b.organizer_id = $1
ORDER BY b.date DESC, b.start_minutes DESC`

func (s *BookingReadStore) FindByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]*queries.BookingListItem, error) {
	rows, err := s.db.Query(ctx, listBookingsByOrganizerSQL, organizerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by organizer", err)
	}
	defer rows.Close()
	return scanBookingListItems(rows)
}

const listBookingsForRoomDaySQL = `
SELECT b.id, b.room_id, r.name, b.date, b.start_minutes, b.end_minutes,
	b.title, b.status, b.created_at
FROM bookings b
JOIN rooms r ON r.id = b.room_id
WHERE b.room_id = $1 AND b.date = $2
ORDER BY b.start_minutes`

func (s *BookingReadStore) FindForRoomDay(ctx context.Context, roomID uuid.UUID, date schedule.Date) ([]*queries.BookingListItem, error) {
	rows, err := s.db.Query(ctx, listBookingsForRoomDaySQL, roomID, pgconv.DateToPgtype(date.Time()))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings for room day", err)
	}
	defer rows.Close()
	return scanBookingListItems(rows)
}

type bookingRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanBookingListItems(rows bookingRows) ([]*queries.BookingListItem, error) {
	var items []*queries.BookingListItem
	for rows.Next() {
		var (
			item       queries.BookingListItem
			date       pgtype.Date
			start, end int32
			createdAt  pgtype.Timestamptz
		)
		if err := rows.Scan(
			&item.ID, &item.RoomID, &item.RoomName,
			&date, &start, &end,
			&item.Title, &item.Status, &createdAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		item.Date = schedule.DateOf(date.Time).String()
		item.StartTime = schedule.TimeOfDay(start).String()
		item.EndTime = schedule.TimeOfDay(end).String()
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}
	return items, nil
}

const dayBookingsSQL = `
SELECT b.id, b.organizer_id, u.name, b.title, b.date, b.start_minutes, b.end_minutes
FROM bookings b
JOIN users u ON u.id = b.organizer_id
WHERE b.room_id = $1
	AND b.date BETWEEN $2 AND $3
	AND b.status <> 'cancelled'
ORDER BY b.date, b.start_minutes`

// DayBookings feeds the occupancy grid: every non-cancelled booking on the
// room dated between from and to inclusive.
func (s *BookingReadStore) DayBookings(ctx context.Context, roomID uuid.UUID, from, to schedule.Date) ([]queries.DayBooking, error) {
	rows, err := s.db.Query(ctx, dayBookingsSQL,
		roomID, pgconv.DateToPgtype(from.Time()), pgconv.DateToPgtype(to.Time()))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load day bookings", err)
	}
	defer rows.Close()

	var result []queries.DayBooking
	for rows.Next() {
		var (
			b          queries.DayBooking
			date       pgtype.Date
			start, end int32
		)
		if err := rows.Scan(&b.ID, &b.OrganizerID, &b.OrganizerName, &b.Title, &date, &start, &end); err != nil {
			return nil, infra.WrapRepoErr("failed to scan day booking row", err)
		}
		b.Date = schedule.DateOf(date.Time)
		b.Start = schedule.TimeOfDay(start)
		b.End = schedule.TimeOfDay(end)
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate day booking rows", err)
	}
	return result, nil
}
