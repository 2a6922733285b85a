//go:build unit

package api_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"lodge-booking/internal/domain/availability"
	"lodge-booking/internal/domain/calendar"
	fsm "lodge-booking/internal/domain/selection"
	"lodge-booking/internal/handler/api"
	reqdto "lodge-booking/internal/handler/dto/request"
	resdto "lodge-booking/internal/handler/dto/response"
	"lodge-booking/internal/pkg/clock"
	"lodge-booking/internal/pkg/errs"
	"lodge-booking/internal/usecase/queries"
	"lodge-booking/internal/usecase/selection"
	"lodge-booking/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// blockedDays rejects any span that contains one of its days.
type blockedDays []calendar.Date

func (b blockedDays) Validate(_ context.Context, surface fsm.Surface, span calendar.DateRange) error {
	for _, d := range b {
		if span.Contains(d) {
			return &fsm.RejectedError{Day: d, Room: surface.Room, Status: availability.StatusBlocked}
		}
	}
	return nil
}

type SelectionHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	clock    *clock.MockClock
	registry *selection.Registry
	handler  *api.SelectionHandler
}

func (s *SelectionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.clock = clock.NewMockClock(handlerNow)
	blocked := blockedDays{calendar.MustParseDate("2025-07-10")}
	s.registry = selection.NewRegistry(blocked, nil, s.clock, 30*time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.handler = api.NewSelectionHandler(s.registry)

	s.router.POST("/selections", s.handler.Open)
	s.router.GET("/selections/:id", s.handler.Get)
	s.router.DELETE("/selections/:id", s.handler.Close)
	s.router.POST("/selections/:id/click", s.handler.Click)
	s.router.GET("/selections/:id/hover", s.handler.Hover)
	s.router.POST("/selections/:id/navigate", s.handler.Navigate)
	s.router.POST("/selections/:id/reset", s.handler.Reset)
}

func TestSelectionHandlerSuite(t *testing.T) {
	suite.Run(t, new(SelectionHandlerTestSuite))
}

func (s *SelectionHandlerTestSuite) open() resdto.SelectionResponse {
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/selections",
		reqdto.OpenSelectionRequest{Room: "r1", Month: "2025-07"})

	var body resdto.SelectionResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
	return body
}

func (s *SelectionHandlerTestSuite) click(id uuid.UUID, date string) resdto.SelectionResponse {
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/selections/"+id.String()+"/click",
		reqdto.ClickRequest{Date: date})

	var body resdto.SelectionResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	return body
}

func (s *SelectionHandlerTestSuite) TestOpen() {
	s.Run("success: opens an idle selection", func() {
		body := s.open()
		s.NotEqual(uuid.Nil, body.ID)
		s.Equal("r1", string(body.Room))
		s.Equal("2025-07", body.Month)
		s.Equal("idle", body.State)
		s.Nil(body.Selection)
		s.Equal(1, s.registry.Len())
	})

	s.Run("error: 400 Bad Request on a bad month", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/selections",
			reqdto.OpenSelectionRequest{Month: "2025/07"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 400 Bad Request without a month", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/selections", map[string]any{"room": "r1"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

func (s *SelectionHandlerTestSuite) TestClick() {
	s.Run("success: two clicks commit the span", func() {
		sel := s.open()

		anchored := s.click(sel.ID, "2025-07-01")
		s.Equal("anchored", anchored.State)
		s.Require().NotNil(anchored.Anchor)
		s.Equal("2025-07-01", anchored.Anchor.String())

		committed := s.click(sel.ID, "2025-07-04")
		s.Equal("committed", committed.State)
		s.Require().NotNil(committed.Selection)
		s.Equal(calendar.MustRange("2025-07-01", "2025-07-04"), *committed.Selection)
		s.Empty(committed.Error)
	})

	s.Run("success: a rejected span comes back idle with the reason", func() {
		sel := s.open()
		s.click(sel.ID, "2025-07-08")

		rejected := s.click(sel.ID, "2025-07-12")
		s.Equal("idle", rejected.State)
		s.Nil(rejected.Selection)
		s.Contains(rejected.Error, "2025-07-10")

		// the failure is reported once
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/selections/"+sel.ID.String(), nil)
		var again resdto.SelectionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &again)
		s.Empty(again.Error)
	})

	s.Run("error: 400 Bad Request on a bad date", func() {
		sel := s.open()
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/selections/"+sel.ID.String()+"/click",
			reqdto.ClickRequest{Date: "tomorrow"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 404 Not Found for an unknown selection", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/selections/"+uuid.NewString()+"/click",
			reqdto.ClickRequest{Date: "2025-07-01"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Not found")
	})

	s.Run("error: 400 Bad Request on a malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/selections/abc/click",
			reqdto.ClickRequest{Date: "2025-07-01"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})
}

func (s *SelectionHandlerTestSuite) TestHover() {
	sel := s.open()
	url := "/selections/" + sel.ID.String() + "/hover?date=2025-07-05"

	s.Run("no preview before an anchor", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil)
		var body resdto.HoverResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Nil(body.Preview)
	})

	s.Run("preview spans the anchor and the hovered day", func() {
		s.click(sel.ID, "2025-07-02")

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil)
		var body resdto.HoverResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().NotNil(body.Preview)
		s.Equal(calendar.MustRange("2025-07-02", "2025-07-05"), *body.Preview)
	})

	s.Run("error: 400 Bad Request without a date", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/selections/"+sel.ID.String()+"/hover", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

func (s *SelectionHandlerTestSuite) TestNavigateResetClose() {
	sel := s.open()
	s.click(sel.ID, "2025-07-01")
	s.click(sel.ID, "2025-07-03")
	base := "/selections/" + sel.ID.String()

	s.Run("navigate keeps the selection", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/navigate", reqdto.NavigateRequest{Month: "2025-08"})
		var body resdto.SelectionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("2025-08", body.Month)
		s.Equal("committed", body.State)
		s.Require().NotNil(body.Selection)
	})

	s.Run("reset clears it", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/reset", nil)
		var body resdto.SelectionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("idle", body.State)
		s.Nil(body.Selection)
	})

	s.Run("close removes it", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, base, nil)
		s.Equal(http.StatusNoContent, rec.Code)

		rec = httptest.PerformRequest(s.T(), s.router, http.MethodGet, base, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Not found")
	})
}

func (s *SelectionHandlerTestSuite) TestMonthRender() {
	source := monthSource(func(_ context.Context, surface fsm.Surface) (*queries.MonthView, error) {
		if surface.Month.Month == time.August {
			return nil, errs.New("calendar read timed out")
		}
		days := []queries.DayStatusView{{Date: surface.Month.First(), Room: surface.Room, Status: availability.StatusAvailable, Selectable: true}}
		return &queries.MonthView{Room: surface.Room, Month: surface.Month.String(), Days: days}, nil
	})
	registry := selection.NewRegistry(blockedDays{}, source, s.clock, 30*time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))
	handler := api.NewSelectionHandler(registry)
	router := gin.New()
	router.POST("/selections", handler.Open)
	router.POST("/selections/:id/navigate", handler.Navigate)

	rec := httptest.PerformRequest(s.T(), router, http.MethodPost, "/selections",
		reqdto.OpenSelectionRequest{Room: "r1", Month: "2025-07"})
	var opened resdto.SelectionResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &opened)
	s.Len(opened.Days, 1)
	s.Empty(opened.RenderError)

	s.Run("a failed render reports why the days are missing", func() {
		rec := httptest.PerformRequest(s.T(), router, http.MethodPost, "/selections/"+opened.ID.String()+"/navigate",
			reqdto.NavigateRequest{Month: "2025-08"})
		var body resdto.SelectionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Empty(body.Days)
		s.Contains(body.RenderError, "calendar read timed out")
		s.Empty(body.Error)
	})

	s.Run("the next successful render clears it", func() {
		rec := httptest.PerformRequest(s.T(), router, http.MethodPost, "/selections/"+opened.ID.String()+"/navigate",
			reqdto.NavigateRequest{Month: "2025-09"})
		var body resdto.SelectionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Days, 1)
		s.Empty(body.RenderError)
	})
}

type monthSource func(ctx context.Context, surface fsm.Surface) (*queries.MonthView, error)

func (f monthSource) Month(ctx context.Context, surface fsm.Surface) (*queries.MonthView, error) {
	return f(ctx, surface)
}

func (s *SelectionHandlerTestSuite) TestIdleExpiry() {
	sel := s.open()
	s.clock.Add(31 * time.Minute)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/selections/"+sel.ID.String(), nil)
	httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Not found")
}
