package api

import (
	"errors"
	"net/http"

	"guildhall/internal/domain/schedule"
	"guildhall/internal/pkg/errs"
	"guildhall/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	availabilityQueries queries.AvailabilityQueries
}

func NewAvailabilityHandler(availabilityQueries queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityQueries: availabilityQueries,
	}
}

// @Summary Day schedule
// @Description Slot statuses, free starts and session blocks for a room day
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} queries.DayScheduleView
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /rooms/{id}/schedule [get]
func (h *AvailabilityHandler) GetDaySchedule(c *gin.Context) {
	roomID, date, ok := h.roomDayParams(c)
	if !ok {
		return
	}

	view, err := h.availabilityQueries.DaySchedule(c.Request.Context(), roomID, date)
	if err != nil {
		h.respondAvailabilityError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary End options
// @Description Legal end times for a booking starting at the given slot
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param start query string true "Start time (HH:MM)"
// @Success 200 {array} queries.EndOptionView
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /rooms/{id}/end-options [get]
func (h *AvailabilityHandler) GetEndOptions(c *gin.Context) {
	roomID, date, ok := h.roomDayParams(c)
	if !ok {
		return
	}

	start, err := schedule.ParseTimeOfDay(c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid start time format",
		})
		return
	}

	views, err := h.availabilityQueries.EndOptions(c.Request.Context(), roomID, date, start)
	if err != nil {
		h.respondAvailabilityError(c, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

func (h *AvailabilityHandler) roomDayParams(c *gin.Context) (uuid.UUID, schedule.Date, bool) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid room ID format",
		})
		return uuid.Nil, schedule.Date{}, false
	}

	date, err := schedule.ParseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date format",
		})
		return uuid.Nil, schedule.Date{}, false
	}

	return roomID, date, true
}

func (h *AvailabilityHandler) respondAvailabilityError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrInvalidSlot):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slot choice"})
	case errors.Is(err, errs.ErrInconsistentData):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
