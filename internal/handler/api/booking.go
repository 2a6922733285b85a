package api

import (
	"errors"
	"net/http"

	"lodge-booking/internal/domain/booking"
	reqdto "lodge-booking/internal/handler/dto/request"
	resdto "lodge-booking/internal/handler/dto/response"
	"lodge-booking/internal/handler/httperr"
	"lodge-booking/internal/pkg/jwt"
	"lodge-booking/internal/usecase/commands"
	"lodge-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type HoldTokenService interface {
	IssueHoldToken(hold *booking.Booking) (string, error)
	VerifyHoldToken(token string) (*jwt.Claims, error)
}

type BookingHandler struct {
	cmds   commands.BookingCommands
	q      queries.ConflictQueries
	tokens HoldTokenService
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.ConflictQueries, tokens HoldTokenService) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q, tokens: tokens}
}

// @Summary Check for a conflict
// @Description Report the first stored booking sharing a night with the candidate stay
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body reqdto.ConflictRequest true "Candidate stay"
// @Success 200 {object} queries.ConflictView
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/conflicts [post]
func (h *BookingHandler) CheckConflict(c *gin.Context) {
	var req reqdto.ConflictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		badRequest(c, err)
		return
	}

	view, err := h.q.Check(c.Request.Context(), in)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Prepare a booking
// @Description Re-read bookings, price the stay and hold it for the session
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body reqdto.PrepareRequest true "Stay to hold"
// @Success 201 {object} resdto.DraftResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/bookings/prepare [post]
func (h *BookingHandler) Prepare(c *gin.Context) {
	var req reqdto.PrepareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		badRequest(c, err)
		return
	}

	draft, err := h.cmds.Prepare(c.Request.Context(), in)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	resp, err := resdto.FromDraft(draft)
	if err != nil {
		httperr.AbortWithError(c, httperr.KindInternal, err, nil)
		return
	}
	if resp.HoldToken, err = h.tokens.IssueHoldToken(draft.Booking); err != nil {
		httperr.AbortWithError(c, httperr.KindInternal, err, nil)
		return
	}

	c.Header("Location", "/api/bookings/"+draft.Booking.ID().String()+"/price")
	c.JSON(http.StatusCreated, resp)
}

// @Summary Verify a hold token
// @Description Check a hold receipt's signature and expiry and return what it holds
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body reqdto.VerifyHoldRequest true "Hold token"
// @Success 200 {object} resdto.HoldReceiptResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /api/holds/verify [post]
func (h *BookingHandler) VerifyHold(c *gin.Context) {
	var req reqdto.VerifyHoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	claims, err := h.tokens.VerifyHoldToken(req.Token)
	if err != nil {
		kind := httperr.KindInvalidHoldToken
		if errors.Is(err, jwt.ErrExpiredToken) {
			kind = httperr.KindHoldTokenExpired
		}
		httperr.AbortWithError(c, kind, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromHoldClaims(claims))
}
