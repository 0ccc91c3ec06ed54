package repository

import (
	"context"

	"guildhall/internal/domain/booking"
	"guildhall/internal/domain/schedule"
	"guildhall/internal/infra"
	"guildhall/internal/infra/db"
	"guildhall/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

const createBookingSQL = `
INSERT INTO bookings (
	id, room_id, organizer_id, date, start_minutes, end_minutes,
	title, description, participants, guests, status, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())
RETURNING id`

func (r *BookingRepository) Create(ctx context.Context, dbtx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	var id uuid.UUID
	err := dbtx.QueryRow(ctx, createBookingSQL,
		b.ID(),
		b.RoomID(),
		b.OrganizerID(),
		pgconv.DateToPgtype(b.Date().Time()),
		int32(b.Start()),
		int32(b.End()),
		b.Title(),
		b.Description(),
		b.Participants(),
		b.Guests(),
		b.Status().String(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapWriteErr("failed to create booking", err)
	}
	return id, nil
}

const updateBookingSQL = `
UPDATE bookings
SET title = $2,
	description = $3,
	participants = $4,
	guests = $5,
	status = $6,
	updated_at = now()
WHERE id = $1`

func (r *BookingRepository) Update(ctx context.Context, dbtx db.DBTX, b *booking.Booking) error {
	tag, err := dbtx.Exec(ctx, updateBookingSQL,
		b.ID(),
		b.Title(),
		b.Description(),
		b.Participants(),
		b.Guests(),
		b.Status().String(),
	)
	if err != nil {
		return wrapWriteErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	tag, err := dbtx.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return wrapWriteErr("failed to delete booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

// LockRoomDate takes a transaction-scoped advisory lock on the room/date pair.
// Released automatically at commit or rollback.
func (r *BookingRepository) LockRoomDate(ctx context.Context, dbtx db.DBTX, roomID uuid.UUID, date schedule.Date) error {
	_, err := dbtx.Exec(ctx,
		`SELECT pg_advisory_xact_lock(hashtext($1), hashtext($2))`,
		roomID.String(), date.String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to lock room date", err)
	}
	return nil
}
