package repository

import (
	"context"

	"guildhall/internal/domain/room"
	"guildhall/internal/infra/db"

	"github.com/google/uuid"
)

type RoomRepository struct{}

func NewRoomRepository() *RoomRepository {
	return &RoomRepository{}
}

const createRoomSQL = `
INSERT INTO rooms (id, name, capacity, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, now(), now())
RETURNING id`

func (r *RoomRepository) Create(ctx context.Context, dbtx db.DBTX, rm *room.Room) (uuid.UUID, error) {
	var id uuid.UUID
	err := dbtx.QueryRow(ctx, createRoomSQL,
		rm.ID(), rm.Name(), int32(rm.Capacity()), rm.Status().String(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapWriteErr("failed to create room", err)
	}
	return id, nil
}
