package request

import (
	"strings"

	"guildhall/internal/domain/schedule"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	RoomID       uuid.UUID   `json:"room_id" binding:"required"`
	Date         string      `json:"date" binding:"required"`
	StartTime    string      `json:"start_time" binding:"required"`
	EndTime      string      `json:"end_time" binding:"required"`
	Title        string      `json:"title" binding:"required,max=120"`
	Description  *string     `json:"description,omitempty" binding:"omitempty,max=1000"`
	Participants []uuid.UUID `json:"participants,omitempty"`
	Guests       []string    `json:"guests,omitempty" binding:"omitempty,dive,max=80"`
}

// SlotChoice is the parsed (date, start, end) triple of the request.
type SlotChoice struct {
	Date  schedule.Date
	Start schedule.TimeOfDay
	End   schedule.TimeOfDay
}

func (r CreateBookingRequest) ParseSlot() (SlotChoice, error) {
	date, err := schedule.ParseDate(r.Date)
	if err != nil {
		return SlotChoice{}, err
	}
	start, err := schedule.ParseTimeOfDay(r.StartTime)
	if err != nil {
		return SlotChoice{}, err
	}
	end, err := schedule.ParseTimeOfDay(r.EndTime)
	if err != nil {
		return SlotChoice{}, err
	}
	return SlotChoice{Date: date, Start: start, End: end}, nil
}

func (r CreateBookingRequest) GetDescription() string {
	if r.Description == nil {
		return ""
	}
	return strings.TrimSpace(*r.Description)
}

type UpdateBookingRequest struct {
	Title        *string      `json:"title,omitempty" binding:"omitempty,max=120"`
	Description  *string      `json:"description,omitempty" binding:"omitempty,max=1000"`
	Participants *[]uuid.UUID `json:"participants,omitempty"`
	Guests       *[]string    `json:"guests,omitempty" binding:"omitempty,dive,max=80"`
}
