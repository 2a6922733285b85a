package api

import (
	"net/http"

	reqdto "lodge-booking/internal/handler/dto/request"
	resdto "lodge-booking/internal/handler/dto/response"
	"lodge-booking/internal/handler/httperr"
	"lodge-booking/internal/usecase/commands"
	"lodge-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PricingHandler struct {
	cmds commands.QuoteCommands
	q    queries.PriceQueries
}

func NewPricingHandler(cmds commands.QuoteCommands, q queries.PriceQueries) *PricingHandler {
	return &PricingHandler{cmds: cmds, q: q}
}

// @Summary Quote a stay
// @Description Price a stay in aggregate, roster or bulk mode without holding it
// @Tags pricing
// @Accept json
// @Produce json
// @Param request body reqdto.QuoteRequest true "Stay to price"
// @Success 200 {object} resdto.QuoteResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /api/quotes [post]
func (h *PricingHandler) Quote(c *gin.Context) {
	var req reqdto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		badRequest(c, err)
		return
	}

	quote, err := h.cmds.Quote(c.Request.Context(), in)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	resp, err := resdto.FromQuote(*quote)
	if err != nil {
		httperr.AbortWithError(c, httperr.KindInternal, err, nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Booking price breakdown
// @Description Recompute a stored booking's breakdown, reconciled to its stored total
// @Tags pricing
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.PriceBreakdownResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/{id}/price [get]
func (h *PricingHandler) BookingPrice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, httperr.KindInvalidID, err, nil)
		return
	}

	view, err := h.q.BookingPrice(c.Request.Context(), id)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	resp, err := resdto.FromPriceBreakdownView(view)
	if err != nil {
		httperr.AbortWithError(c, httperr.KindInternal, err, nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}
