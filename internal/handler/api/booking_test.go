//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"lodge-booking/internal/domain/availability"
	"lodge-booking/internal/domain/booking"
	"lodge-booking/internal/domain/calendar"
	"lodge-booking/internal/domain/conflict"
	"lodge-booking/internal/domain/room"
	fsm "lodge-booking/internal/domain/selection"
	"lodge-booking/internal/handler/api"
	"lodge-booking/internal/handler/httperr"
	reqdto "lodge-booking/internal/handler/dto/request"
	resdto "lodge-booking/internal/handler/dto/response"
	"lodge-booking/internal/pkg/clock"
	"lodge-booking/internal/pkg/errs"
	"lodge-booking/internal/pkg/jwt"
	"lodge-booking/internal/usecase/commands"
	"lodge-booking/internal/usecase/queries"
	"lodge-booking/tests/common/builder"
	"lodge-booking/tests/common/httptest"
	"lodge-booking/tests/common/testutil"
	commandsmock "lodge-booking/tests/mock/commands"
	queriesmock "lodge-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var handlerNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockConflictQueries
	clock        *clock.MockClock
	tokens       *jwt.Service
	handler      *api.BookingHandler
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockConflictQueries(s.mockCtrl)
	s.clock = clock.NewMockClock(handlerNow)
	s.tokens = jwt.NewService("handler-test-secret", s.clock)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries, s.tokens)

	s.router.POST("/conflicts", s.handler.CheckConflict)
	s.router.POST("/bookings/prepare", s.handler.Prepare)
	s.router.POST("/holds/verify", s.handler.VerifyHold)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) draft(session uuid.UUID) *commands.Draft {
	expires := handlerNow.Add(15 * time.Minute)
	hold := builder.NewBookingBuilder().
		WithID(uuid.New()).
		WithRooms("r1").
		WithDates("2025-07-01", "2025-07-03").
		WithTotalPrice(750).
		AsProposed(session, &expires).
		MustBuild(s.T())
	return &commands.Draft{Booking: hold, Quote: *sampleQuote()}
}

// ================================================================================
// TestCheckConflict
// ================================================================================

func (s *BookingHandlerTestSuite) TestCheckConflict() {
	url := "/conflicts"
	session := uuid.New()
	reqBody := reqdto.ConflictRequest{
		RangeRequest: reqdto.RangeRequest{CheckIn: "2025-07-01", CheckOut: "2025-07-03"},
		Rooms:        []string{"r1", "r2"},
		SessionToken: &session,
	}

	s.Run("success: reports the first conflict", func() {
		existing := calendar.MustRange("2025-07-02", "2025-07-04")
		bookingID := uuid.New()
		expected := queries.ConflictCheckInput{
			Range:        calendar.MustRange("2025-07-01", "2025-07-03"),
			Rooms:        []room.ID{"r1", "r2"},
			SessionToken: session,
		}
		s.mockQueries.EXPECT().Check(gomock.Any(), expected).Return(&queries.ConflictView{
			Conflict:  true,
			Room:      "r2",
			BookingID: &bookingID,
			Status:    booking.StatusConfirmed.String(),
			Existing:  &existing,
		}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)

		var body queries.ConflictView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Conflict)
		s.Equal(room.ID("r2"), body.Room)
		s.Equal(&bookingID, body.BookingID)
		s.Equal(&existing, body.Existing)
	})

	s.Run("success: no conflict", func() {
		s.mockQueries.EXPECT().Check(gomock.Any(), gomock.Any()).Return(&queries.ConflictView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(false, body["conflict"])
		s.NotContains(body, "booking_id")
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing field: check_in (required)", mutate: testutil.Field("check_in", nil)},
			{name: "bad session token", mutate: testutil.Field("session_token", "nope")},
			{name: "inverted range", mutate: testutil.Field("check_out", "2025-06-01")},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("error: 400 Bad Request when no room is named", func() {
		s.mockQueries.EXPECT().Check(gomock.Any(), gomock.Any()).Return(nil, conflict.ErrEmptyCandidate).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, testutil.DtoMap(s.T(), reqBody, testutil.Field("rooms", nil)))
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

// ================================================================================
// TestPrepare
// ================================================================================

func (s *BookingHandlerTestSuite) TestPrepare() {
	url := "/bookings/prepare"
	session := uuid.New()
	reqBody := reqdto.PrepareRequest{
		StayRequest: quoteRequest().StayRequest,
		SessionToken: &session,
	}

	s.Run("success: returns the draft with a verifiable hold token", func() {
		draft := s.draft(session)
		s.mockCommands.EXPECT().Prepare(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in commands.PrepareInput) (*commands.Draft, error) {
				s.Equal(session, in.SessionToken)
				s.Equal(calendar.MustRange("2025-07-01", "2025-07-03"), in.Range)
				return draft, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)

		var body resdto.DraftResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(draft.Booking.ID(), body.ID)
		s.Equal("proposed", body.Status)
		s.Equal(int64(750), body.TotalPrice)
		s.Equal(session, body.SessionToken)
		s.Require().NotNil(body.ExpiresAt)
		s.True(handlerNow.Add(15 * time.Minute).Equal(*body.ExpiresAt))
		httptest.AssertPriceLocation(s.T(), rec, draft.Booking.ID())

		claims, err := s.tokens.VerifyHoldToken(body.HoldToken)
		s.Require().NoError(err)
		id, err := claims.BookingID()
		s.Require().NoError(err)
		s.Equal(draft.Booking.ID(), id)
		s.Equal(int64(750), claims.Total)
	})

	s.Run("error: 409 Conflict with the clashing booking", func() {
		bookingID := uuid.New()
		s.mockCommands.EXPECT().Prepare(gomock.Any(), gomock.Any()).Return(nil, &conflict.ConflictError{
			BookingID: bookingID,
			Room:      "r1",
			Existing:  calendar.MustRange("2025-07-02", "2025-07-05"),
		}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Booking conflict")
		var body struct {
			Detail struct {
				Room      string    `json:"room"`
				BookingID uuid.UUID `json:"booking_id"`
			} `json:"detail"`
		}
		httptest.DecodeResponseBody(s.T(), rec.Body, &body)
		s.Equal("r1", body.Detail.Room)
		s.Equal(bookingID, body.Detail.BookingID)
	})

	s.Run("error: 409 Conflict when a fresh read rejects the dates", func() {
		cause := &conflict.ConflictError{BookingID: uuid.New(), Room: "r1", Existing: calendar.MustRange("2025-07-02", "2025-07-05")}
		s.mockCommands.EXPECT().Prepare(gomock.Any(), gomock.Any()).Return(nil, &fsm.RejectedError{
			Day:    calendar.MustParseDate("2025-07-02"),
			Room:   "r1",
			Status: availability.StatusOccupied,
			Cause:  cause,
		}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Booking conflict")
	})

	s.Run("error: 422 Unprocessable Entity for unavailable days", func() {
		s.mockCommands.EXPECT().Prepare(gomock.Any(), gomock.Any()).Return(nil, &fsm.RejectedError{
			Day:    calendar.MustParseDate("2025-07-02"),
			Room:   "r1",
			Status: availability.StatusBlocked,
		}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Dates not available")
	})

	s.Run("error: 400 Bad Request on a malformed exclusion", func() {
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("exclude_booking_id", "123"))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 400 Bad Request on bad guests", func() {
		for name, mutate := range map[string]func(map[string]any){
			"negative adults":     testutil.GuestField("adults", -1),
			"unknown affiliation": testutil.GuestField("affiliation", "vip"),
		} {
			s.Run(name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, testutil.DtoMap(s.T(), reqBody, mutate))
				httptest.AssertErrorKind(s.T(), rec, httperr.KindInvalidRequest)
			})
		}
	})

	s.Run("error: 400 Bad Request for a span beyond the night cap", func() {
		s.mockCommands.EXPECT().Prepare(gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errs.New("2025-07-01..2026-07-03 spans 367 nights"), calendar.ErrRangeTooLong)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)
		httptest.AssertErrorKind(s.T(), rec, httperr.KindInvalidRequest)
	})
}

// ================================================================================
// TestVerifyHold
// ================================================================================

func (s *BookingHandlerTestSuite) TestVerifyHold() {
	url := "/holds/verify"
	session := uuid.New()

	s.Run("success: returns the receipt", func() {
		d := s.draft(session)
		token, err := s.tokens.IssueHoldToken(d.Booking)
		s.Require().NoError(err)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqdto.VerifyHoldRequest{Token: token})

		var body resdto.HoldReceiptResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(d.Booking.ID(), body.BookingID)
		s.Equal(session, body.SessionToken)
		s.Equal([]room.ID{"r1"}, body.Rooms)
		s.Equal("2025-07-01", body.CheckIn)
		s.Equal("2025-07-03", body.CheckOut)
	})

	s.Run("error: 401 Unauthorized once the hold lapsed", func() {
		d := s.draft(session)
		token, err := s.tokens.IssueHoldToken(d.Booking)
		s.Require().NoError(err)
		s.clock.Add(time.Hour)
		defer s.clock.Set(handlerNow)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqdto.VerifyHoldRequest{Token: token})
		httptest.AssertErrorKind(s.T(), rec, httperr.KindHoldTokenExpired)
	})

	s.Run("error: 401 Unauthorized for a forged token", func() {
		d := s.draft(session)
		token, err := jwt.NewService("someone-else", s.clock).IssueHoldToken(d.Booking)
		s.Require().NoError(err)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqdto.VerifyHoldRequest{Token: token})
		httptest.AssertErrorKind(s.T(), rec, httperr.KindInvalidHoldToken)
	})

	s.Run("error: 400 Bad Request without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}
