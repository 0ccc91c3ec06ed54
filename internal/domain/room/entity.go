package room

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInvalidCapacity = errors.New("room capacity must be at least 1")
	ErrInvalidStatus   = errors.New("invalid room status")
	ErrEmptyName       = errors.New("room name cannot be empty")
)

type Status string

const (
	StatusAvailable   Status = "available"
	StatusMaintenance Status = "maintenance"
	StatusOccupied    Status = "occupied"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusMaintenance, StatusOccupied:
		return true
	default:
		return false
	}
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

type Room struct {
	id       uuid.UUID
	name     string
	capacity int
	status   Status
}

func NewRoom(name string, capacity int) (*Room, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	return &Room{
		id:       uuid.New(),
		name:     name,
		capacity: capacity,
		status:   StatusAvailable,
	}, nil
}

func ReconstructRoom(id uuid.UUID, name string, capacity int, status Status) *Room {
	return &Room{id: id, name: name, capacity: capacity, status: status}
}

func (r *Room) ID() uuid.UUID  { return r.id }
func (r *Room) Name() string   { return r.name }
func (r *Room) Capacity() int  { return r.capacity }
func (r *Room) Status() Status { return r.status }

// Bookable reports whether new bookings may be placed on the room.
func (r *Room) Bookable() bool {
	return r.status == StatusAvailable
}
