package api

import (
	"net/http"

	"lodge-booking/internal/domain/availability"
	"lodge-booking/internal/domain/calendar"
	"lodge-booking/internal/domain/room"
	fsm "lodge-booking/internal/domain/selection"
	"lodge-booking/internal/pkg/errs"
	"lodge-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	q queries.AvailabilityQueries
}

func NewAvailabilityHandler(q queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{q: q}
}

// @Summary Room day status
// @Description Status of one room on one day: available, edge, proposed, booked or blocked
// @Tags availability
// @Produce json
// @Param id path string true "Room ID"
// @Param date query string true "Day (YYYY-MM-DD)"
// @Param exclude_booking query string false "Booking being edited"
// @Param session query string false "Booking session whose holds are ignored"
// @Success 200 {object} queries.DayStatusView
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/rooms/{id}/availability [get]
func (h *AvailabilityHandler) RoomDay(c *gin.Context) {
	date, err := calendar.ParseDate(c.Query("date"))
	if err != nil {
		badRequest(c, err)
		return
	}
	excl, err := exclusionFromQuery(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	view, err := h.q.RoomDay(c.Request.Context(), room.ID(c.Param("id")), date, excl)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Property day status
// @Description Whole-property status of a day with the per-room statuses behind it
// @Tags availability
// @Produce json
// @Param date query string true "Day (YYYY-MM-DD)"
// @Param exclude_booking query string false "Booking being edited"
// @Param session query string false "Booking session whose holds are ignored"
// @Success 200 {object} queries.PropertyDayView
// @Failure 400 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/availability [get]
func (h *AvailabilityHandler) PropertyDay(c *gin.Context) {
	date, err := calendar.ParseDate(c.Query("date"))
	if err != nil {
		badRequest(c, err)
		return
	}
	excl, err := exclusionFromQuery(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	view, err := h.q.PropertyDay(c.Request.Context(), date, excl)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Month calendar
// @Description Day statuses of a month for one room, or for the whole property without room
// @Tags availability
// @Produce json
// @Param month query string true "Month (YYYY-MM)"
// @Param room query string false "Room ID"
// @Param exclude_booking query string false "Booking being edited"
// @Param session query string false "Booking session whose holds are ignored"
// @Success 200 {object} queries.MonthView
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/calendar [get]
func (h *AvailabilityHandler) Month(c *gin.Context) {
	month, err := calendar.ParseMonth(c.Query("month"))
	if err != nil {
		badRequest(c, err)
		return
	}
	excl, err := exclusionFromQuery(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	view, err := h.q.Month(c.Request.Context(), fsm.Surface{
		Room:      room.ID(c.Query("room")),
		Month:     month,
		Exclusion: excl,
	})
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func exclusionFromQuery(c *gin.Context) (availability.Exclusion, error) {
	var excl availability.Exclusion
	var err error
	if excl.BookingID, err = optionalUUID(c.Query("exclude_booking")); err != nil {
		return availability.Exclusion{}, errs.Wrap(err, "exclude_booking")
	}
	if excl.SessionToken, err = optionalUUID(c.Query("session")); err != nil {
		return availability.Exclusion{}, errs.Wrap(err, "session")
	}
	return excl, nil
}

func optionalUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(s)
}
