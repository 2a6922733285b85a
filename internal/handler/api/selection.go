package api

import (
	"context"
	"net/http"

	"lodge-booking/internal/domain/calendar"
	fsm "lodge-booking/internal/domain/selection"
	reqdto "lodge-booking/internal/handler/dto/request"
	resdto "lodge-booking/internal/handler/dto/response"
	"lodge-booking/internal/handler/httperr"
	"lodge-booking/internal/usecase/selection"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SelectionSessions interface {
	Open(ctx context.Context, surface fsm.Surface) *selection.Session
	Get(id uuid.UUID) (*selection.Session, error)
	Close(id uuid.UUID)
}

// SelectionHandler drives server-side selection sessions. A click that completes a span
// answers once its validation has settled; a rejected span comes back idle with the reason.
type SelectionHandler struct {
	sessions SelectionSessions
}

func NewSelectionHandler(sessions SelectionSessions) *SelectionHandler {
	return &SelectionHandler{sessions: sessions}
}

// @Summary Open a selection
// @Tags selections
// @Accept json
// @Produce json
// @Param request body reqdto.OpenSelectionRequest true "Calendar to select on"
// @Success 201 {object} resdto.SelectionResponse
// @Failure 400 {object} httperr.Response
// @Router /api/selections [post]
func (h *SelectionHandler) Open(c *gin.Context) {
	var req reqdto.OpenSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	surface, err := req.ToSurface()
	if err != nil {
		badRequest(c, err)
		return
	}

	s := h.sessions.Open(c.Request.Context(), surface)
	c.Header("Location", "/api/selections/"+s.ID().String())
	c.JSON(http.StatusCreated, resdto.FromSnapshot(s.Snapshot()))
}

// @Summary Get a selection
// @Tags selections
// @Produce json
// @Param id path string true "Selection ID"
// @Success 200 {object} resdto.SelectionResponse
// @Failure 404 {object} httperr.Response
// @Router /api/selections/{id} [get]
func (h *SelectionHandler) Get(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resdto.FromSnapshot(s.Snapshot()))
}

// @Summary Click a day
// @Tags selections
// @Accept json
// @Produce json
// @Param id path string true "Selection ID"
// @Param request body reqdto.ClickRequest true "Clicked day"
// @Success 200 {object} resdto.SelectionResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/selections/{id}/click [post]
func (h *SelectionHandler) Click(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req reqdto.ClickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	day, err := calendar.ParseDate(req.Date)
	if err != nil {
		badRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromSnapshot(s.Click(c.Request.Context(), day)))
}

// @Summary Preview a span
// @Tags selections
// @Produce json
// @Param id path string true "Selection ID"
// @Param date query string true "Hovered day (YYYY-MM-DD)"
// @Success 200 {object} resdto.HoverResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/selections/{id}/hover [get]
func (h *SelectionHandler) Hover(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	day, err := calendar.ParseDate(c.Query("date"))
	if err != nil {
		badRequest(c, err)
		return
	}

	var resp resdto.HoverResponse
	if preview, ok := s.Hover(day); ok {
		resp.Preview = &preview
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Show another month
// @Tags selections
// @Accept json
// @Produce json
// @Param id path string true "Selection ID"
// @Param request body reqdto.NavigateRequest true "Month to show"
// @Success 200 {object} resdto.SelectionResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/selections/{id}/navigate [post]
func (h *SelectionHandler) Navigate(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req reqdto.NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	month, err := calendar.ParseMonth(req.Month)
	if err != nil {
		badRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromSnapshot(s.Navigate(c.Request.Context(), month)))
}

// @Summary Reset a selection
// @Tags selections
// @Produce json
// @Param id path string true "Selection ID"
// @Success 200 {object} resdto.SelectionResponse
// @Failure 404 {object} httperr.Response
// @Router /api/selections/{id}/reset [post]
func (h *SelectionHandler) Reset(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resdto.FromSnapshot(s.Reset()))
}

// @Summary Close a selection
// @Tags selections
// @Param id path string true "Selection ID"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Router /api/selections/{id} [delete]
func (h *SelectionHandler) Close(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, httperr.KindInvalidID, err, nil)
		return
	}
	h.sessions.Close(id)
	c.Status(http.StatusNoContent)
}

func (h *SelectionHandler) session(c *gin.Context) (*selection.Session, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, httperr.KindInvalidID, err, nil)
		return nil, false
	}
	s, err := h.sessions.Get(id)
	if err != nil {
		abortWithUsecaseError(c, err)
		return nil, false
	}
	return s, true
}
