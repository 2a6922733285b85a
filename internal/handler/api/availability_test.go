//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"lodge-booking/internal/domain/availability"
	"lodge-booking/internal/domain/calendar"
	"lodge-booking/internal/domain/room"
	fsm "lodge-booking/internal/domain/selection"
	"lodge-booking/internal/handler/api"
	"lodge-booking/internal/infra"
	"lodge-booking/internal/pkg/errs"
	"lodge-booking/internal/usecase"
	"lodge-booking/internal/usecase/queries"
	"lodge-booking/tests/common/httptest"
	queriesmock "lodge-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AvailabilityHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockAvailabilityQueries
	handler     *api.AvailabilityHandler
}

func (s *AvailabilityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	s.handler = api.NewAvailabilityHandler(s.mockQueries)

	s.router.GET("/rooms/:id/availability", s.handler.RoomDay)
	s.router.GET("/availability", s.handler.PropertyDay)
	s.router.GET("/calendar", s.handler.Month)
}

func (s *AvailabilityHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAvailabilityHandlerSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityHandlerTestSuite))
}

// ================================================================================
// TestRoomDay
// ================================================================================

func (s *AvailabilityHandlerTestSuite) TestRoomDay() {
	date := calendar.MustParseDate("2025-07-02")

	s.Run("success: passes the exclusion through and returns the status", func() {
		bookingID, session := uuid.New(), uuid.New()
		excl := availability.Exclusion{BookingID: bookingID, SessionToken: session}
		view := &queries.DayStatusView{Date: date, Room: "r1", Status: availability.StatusEdge, Selectable: true}

		s.mockQueries.EXPECT().RoomDay(gomock.Any(), room.ID("r1"), date, excl).Return(view, nil).Times(1)

		path := "/rooms/r1/availability?date=2025-07-02&exclude_booking=" + bookingID.String() + "&session=" + session.String()
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, path, nil)

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("edge", body["status"])
		s.Equal("2025-07-02", body["date"])
		s.Equal(true, body["selectable"])
	})

	s.Run("error: 400 Bad Request on malformed input", func() {
		testCases := []struct {
			name string
			path string
		}{
			{name: "missing date", path: "/rooms/r1/availability"},
			{name: "bad date", path: "/rooms/r1/availability?date=2025-13-01"},
			{name: "bad exclude_booking", path: "/rooms/r1/availability?date=2025-07-02&exclude_booking=nope"},
			{name: "bad session", path: "/rooms/r1/availability?date=2025-07-02&session=nope"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, tc.path, nil)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			queriesError   error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "unknown room",
				queriesError:   errs.Mark(errs.New("room r9"), usecase.ErrRoomNotFound),
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Not found",
			},
			{
				name:           "store down",
				queriesError:   errs.Mark(infra.WrapRepoErr("list bookings", errs.New("connection refused")), usecase.ErrRepositoryFailed),
				expectedStatus: http.StatusServiceUnavailable,
				expectedMsg:    "Storage unavailable",
			},
			{
				name:           "unexpected",
				queriesError:   errs.New("boom"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal error",
			},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockQueries.EXPECT().RoomDay(gomock.Any(), room.ID("r9"), date, availability.Exclusion{}).
					Return(nil, tc.queriesError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/rooms/r9/availability?date=2025-07-02", nil)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestPropertyDay
// ================================================================================

func (s *AvailabilityHandlerTestSuite) TestPropertyDay() {
	date := calendar.MustParseDate("2025-07-02")

	s.Run("success: returns the property status with rooms", func() {
		view := &queries.PropertyDayView{
			DayStatusView: queries.DayStatusView{Date: date, Status: availability.StatusOccupied},
			Rooms: []queries.DayStatusView{
				{Date: date, Room: "r1", Status: availability.StatusOccupied},
				{Date: date, Room: "r2", Status: availability.StatusAvailable, Selectable: true},
			},
		}
		s.mockQueries.EXPECT().PropertyDay(gomock.Any(), date, availability.Exclusion{}).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/availability?date=2025-07-02", nil)

		var body struct {
			Status string `json:"status"`
			Rooms  []struct {
				Room   string `json:"room"`
				Status string `json:"status"`
			} `json:"rooms"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("occupied", body.Status)
		s.Len(body.Rooms, 2)
		s.Equal("available", body.Rooms[1].Status)
	})

	s.Run("error: 400 Bad Request without a date", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/availability", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

// ================================================================================
// TestMonth
// ================================================================================

func (s *AvailabilityHandlerTestSuite) TestMonth() {
	month := calendar.Month{Year: 2025, Month: 7}

	s.Run("success: builds the surface from the query", func() {
		bookingID := uuid.New()
		surface := fsm.Surface{
			Room:      "r2",
			Month:     month,
			Exclusion: availability.Exclusion{BookingID: bookingID},
		}
		view := &queries.MonthView{Room: "r2", Month: "2025-07", Days: []queries.DayStatusView{}}
		s.mockQueries.EXPECT().Month(gomock.Any(), surface).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/calendar?month=2025-07&room=r2&exclude_booking="+bookingID.String(), nil)

		var body queries.MonthView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("2025-07", body.Month)
		s.Equal(room.ID("r2"), body.Room)
	})

	s.Run("error: 400 Bad Request on a bad month", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/calendar?month=July", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}
