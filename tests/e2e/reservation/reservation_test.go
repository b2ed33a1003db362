//go:build e2e

package reservation_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"courtside/internal/domain/reservation"
	"courtside/internal/domain/user"
	"courtside/internal/handler/dto/request"
	"courtside/internal/handler/dto/response"
	"courtside/tests/common/authtest"
	"courtside/tests/common/dbtest"
	"courtside/tests/common/httptest"
	"courtside/tests/common/testutil"
	"courtside/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	reservationsURL = "/api/reservations"
	availabilityURL = "/api/courts/%s/availability?date=%s"
)

type ReservationSuite struct {
	e2e.SharedSuite
}

func (s *ReservationSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestReservationSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ReservationSuite))
}

// bookingDate is a week out so cancellation is always before the slot
// starts regardless of when the suite runs.
func bookingDate() reservation.Date {
	return reservation.DateOf(time.Now().AddDate(0, 0, 7))
}

func (s *ReservationSuite) memberToken(t *testing.T, userID uuid.UUID) string {
	return authtest.NewJWTHelper(s.Config.JWT).GenerateToken(t, userID, user.RoleMember)
}

func (s *ReservationSuite) adminToken(t *testing.T) string {
	return authtest.NewJWTHelper(s.Config.JWT).GenerateToken(t, uuid.New(), user.RoleAdmin)
}

// seedBookableCourt creates an active court open 09:00-21:00 all week.
func (s *ReservationSuite) seedBookableCourt(t *testing.T) uuid.UUID {
	courtID := dbtest.CreateTestCourt(t, s.DB, uuid.New(), "Center Court")
	dbtest.CreateFullWeekSchedule(t, s.DB, courtID, 9, 21)
	return courtID
}

func createRequest(courtID uuid.UUID, date reservation.Date, start, end string) *request.CreateReservationRequest {
	return &request.CreateReservationRequest{
		CourtID:     courtID,
		Date:        date.String(),
		StartTime:   start,
		EndTime:     end,
		AmountCents: 2000,
	}
}

func (s *ReservationSuite) fetchAvailability(t *testing.T, courtID uuid.UUID, date reservation.Date) response.AvailabilityResponse {
	url := fmt.Sprintf(availabilityURL, courtID, date.String())
	w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, "")
	require.Equal(t, http.StatusOK, w.Code, "availability query failed: %s", w.Body.String())

	var res response.AvailabilityResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
	return res
}

func slotAvailable(res response.AvailabilityResponse, start string) (bool, bool) {
	for _, slot := range res.Slots {
		if slot.Start == start {
			return slot.Available, true
		}
	}
	return false, false
}

// =============================================================================
// TestCreateReservation
// =============================================================================

func (s *ReservationSuite) TestCreateReservation() {
	s.Run("Normal case: member books a free slot", func() {
		t := s.T()
		courtID := s.seedBookableCourt(t)
		userID := uuid.New()
		token := s.memberToken(t, userID)
		date := bookingDate()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			createRequest(courtID, date, "10:00", "11:00"), token)
		require.Equal(t, http.StatusCreated, w.Code, "Should create reservation: %s", w.Body.String())

		var created response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		require.Equal(t, courtID, created.CourtID)
		require.Equal(t, userID, created.UserID)
		require.Equal(t, "pending", created.Status)
		require.Equal(t, "pending", created.PaymentStatus)
		require.Equal(t, int64(2000), created.AmountCents)

		// The booked slot is gone from availability.
		availability := s.fetchAvailability(t, courtID, date)
		available, found := slotAvailable(availability, "10:00")
		require.True(t, found, "10:00 slot should exist in the day partition")
		require.False(t, available, "booked slot must show unavailable")
	})

	s.Run("Error case: double booking the same slot fails", func() {
		t := s.T()
		courtID := s.seedBookableCourt(t)
		date := bookingDate()

		first := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			createRequest(courtID, date, "10:00", "11:00"), s.memberToken(t, uuid.New()))
		require.Equal(t, http.StatusCreated, first.Code)

		second := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			createRequest(courtID, date, "10:00", "11:00"), s.memberToken(t, uuid.New()))
		httptest.AssertErrorResponse(t, second, http.StatusConflict, "no longer available")
	})

	s.Run("Error case: overlapping slot fails even with different times", func() {
		t := s.T()
		courtID := s.seedBookableCourt(t)
		date := bookingDate()

		dbtest.CreateTestReservation(t, s.DB, courtID, uuid.New(), date, 10, 11)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			createRequest(courtID, date, "10:00", "11:00"), s.memberToken(t, uuid.New()))
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "")
	})

	s.Run("Error case: slot outside operating hours fails", func() {
		t := s.T()
		courtID := s.seedBookableCourt(t)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			createRequest(courtID, bookingDate(), "07:00", "08:00"), s.memberToken(t, uuid.New()))
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "")
	})

	s.Run("Error case: irregular duration fails", func() {
		t := s.T()
		courtID := s.seedBookableCourt(t)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			createRequest(courtID, bookingDate(), "10:00", "12:00"), s.memberToken(t, uuid.New()))
		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "duration")
	})

	s.Run("Error case: unknown court fails", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			createRequest(uuid.New(), bookingDate(), "10:00", "11:00"), s.memberToken(t, uuid.New()))
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Court not found")
	})

	s.Run("Error case: inactive court fails", func() {
		t := s.T()
		courtID := s.seedBookableCourt(t)
		dbtest.SetCourtStatus(t, s.DB, courtID, "inactive")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			createRequest(courtID, bookingDate(), "10:00", "11:00"), s.memberToken(t, uuid.New()))
		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "not bookable")
	})

	s.Run("Error case: malformed date fails", func() {
		t := s.T()
		courtID := s.seedBookableCourt(t)

		body := createRequest(courtID, bookingDate(), "10:00", "11:00")
		body.Date = "06/15/2026"
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, body, s.memberToken(t, uuid.New()))
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "")
	})

	s.Run("Error case: missing required fields fail", func() {
		t := s.T()
		courtID := s.seedBookableCourt(t)
		token := s.memberToken(t, uuid.New())

		for _, field := range []string{"court_id", "date", "start_time", "end_time"} {
			body := testutil.DtoMap(t, createRequest(courtID, bookingDate(), "10:00", "11:00"),
				testutil.Field(field, nil))
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, body, token)
			httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "")
		}
	})

	s.Run("Error case: unauthenticated request fails", func() {
		t := s.T()
		courtID := s.seedBookableCourt(t)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			createRequest(courtID, bookingDate(), "10:00", "11:00"), "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	s.Run("Error case: expired token is rejected", func() {
		t := s.T()
		courtID := s.seedBookableCourt(t)
		expired := authtest.NewJWTHelper(s.Config.JWT).CreateExpiredToken(t, uuid.New(), user.RoleMember)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			createRequest(courtID, bookingDate(), "10:00", "11:00"), expired)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// =============================================================================
// TestAvailability
// =============================================================================

func (s *ReservationSuite) TestAvailability() {
	s.Run("Normal case: open day partitions into hourly slots", func() {
		t := s.T()
		courtID := s.seedBookableCourt(t)

		availability := s.fetchAvailability(t, courtID, bookingDate())
		require.Len(t, availability.Slots, 12, "09:00-21:00 should yield 12 hourly slots")
		for _, slot := range availability.Slots {
			require.True(t, slot.Available)
		}
	})

	s.Run("Normal case: closed day yields no slots", func() {
		t := s.T()
		courtID := dbtest.CreateTestCourt(t, s.DB, uuid.New(), "Closed Court")
		date := bookingDate()
		dbtest.CloseWeekday(t, s.DB, courtID, date.Weekday())

		availability := s.fetchAvailability(t, courtID, date)
		require.Empty(t, availability.Slots)
	})

	s.Run("Error case: unknown court returns 404", func() {
		t := s.T()
		url := fmt.Sprintf(availabilityURL, uuid.New(), bookingDate().String())
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "")
	})
}

// =============================================================================
// TestCancelReservation
// =============================================================================

func (s *ReservationSuite) TestCancelReservation() {
	s.Run("Normal case: cancel frees the slot for rebooking", func() {
		t := s.T()
		courtID := s.seedBookableCourt(t)
		userID := uuid.New()
		token := s.memberToken(t, userID)
		date := bookingDate()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			createRequest(courtID, date, "10:00", "11:00"), token)
		require.Equal(t, http.StatusCreated, w.Code)
		var created response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		cw := httptest.PerformRequest(t, s.Router, http.MethodDelete,
			reservationsURL+"/"+created.ID.String(), nil, token)
		require.Equal(t, http.StatusOK, cw.Code, "cancel failed: %s", cw.Body.String())

		var canceled response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, cw.Body, &canceled))
		require.Equal(t, "canceled", canceled.Status)

		// The interval is bookable again.
		availability := s.fetchAvailability(t, courtID, date)
		available, found := slotAvailable(availability, "10:00")
		require.True(t, found)
		require.True(t, available, "canceled slot must be free again")

		rw := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			createRequest(courtID, date, "10:00", "11:00"), s.memberToken(t, uuid.New()))
		require.Equal(t, http.StatusCreated, rw.Code, "rebooking a freed slot should succeed")
	})

	s.Run("Error case: another member cannot cancel", func() {
		t := s.T()
		courtID := s.seedBookableCourt(t)
		id := dbtest.CreateTestReservation(t, s.DB, courtID, uuid.New(), bookingDate(), 10, 11)

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete,
			reservationsURL+"/"+id.String(), nil, s.memberToken(t, uuid.New()))
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "")
	})

	s.Run("Normal case: admin can cancel any reservation", func() {
		t := s.T()
		courtID := s.seedBookableCourt(t)
		id := dbtest.CreateTestReservation(t, s.DB, courtID, uuid.New(), bookingDate(), 10, 11)

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete,
			reservationsURL+"/"+id.String(), nil, s.adminToken(t))
		require.Equal(t, http.StatusOK, w.Code)
	})

	s.Run("Error case: second cancel conflicts", func() {
		t := s.T()
		courtID := s.seedBookableCourt(t)
		userID := uuid.New()
		token := s.memberToken(t, userID)
		id := dbtest.CreateTestReservation(t, s.DB, courtID, userID, bookingDate(), 10, 11)

		first := httptest.PerformRequest(t, s.Router, http.MethodDelete,
			reservationsURL+"/"+id.String(), nil, token)
		require.Equal(t, http.StatusOK, first.Code)

		second := httptest.PerformRequest(t, s.Router, http.MethodDelete,
			reservationsURL+"/"+id.String(), nil, token)
		httptest.AssertErrorResponse(t, second, http.StatusConflict, "already canceled")
	})

	s.Run("Error case: unknown reservation returns 404", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete,
			reservationsURL+"/"+uuid.NewString(), nil, s.memberToken(t, uuid.New()))
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "")
	})
}

// =============================================================================
// TestPaymentTransitions
// =============================================================================

func (s *ReservationSuite) TestPaymentTransitions() {
	s.Run("Normal case: confirm then refund, both idempotent", func() {
		t := s.T()
		courtID := s.seedBookableCourt(t)
		id := dbtest.CreateTestReservation(t, s.DB, courtID, uuid.New(), bookingDate(), 10, 11)
		admin := s.adminToken(t)

		confirmURL := reservationsURL + "/" + id.String() + "/payment/confirm"
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, confirmURL, nil, admin)
		require.Equal(t, http.StatusOK, w.Code, "confirm failed: %s", w.Body.String())

		var confirmed response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &confirmed))
		require.Equal(t, "confirmed", confirmed.Status)
		require.Equal(t, "paid", confirmed.PaymentStatus)

		// Webhook retry converges on the same state.
		retry := httptest.PerformRequest(t, s.Router, http.MethodPost, confirmURL, nil, admin)
		require.Equal(t, http.StatusOK, retry.Code)

		refundURL := reservationsURL + "/" + id.String() + "/payment/refund"
		rw := httptest.PerformRequest(t, s.Router, http.MethodPost, refundURL, nil, admin)
		require.Equal(t, http.StatusOK, rw.Code)

		var refunded response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, rw.Body, &refunded))
		require.Equal(t, "refunded", refunded.PaymentStatus)
	})

	s.Run("Error case: refund before payment conflicts", func() {
		t := s.T()
		courtID := s.seedBookableCourt(t)
		id := dbtest.CreateTestReservation(t, s.DB, courtID, uuid.New(), bookingDate(), 10, 11)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			reservationsURL+"/"+id.String()+"/payment/refund", nil, s.adminToken(t))
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "")
	})

	s.Run("Error case: member token cannot drive payment transitions", func() {
		t := s.T()
		courtID := s.seedBookableCourt(t)
		userID := uuid.New()
		id := dbtest.CreateTestReservation(t, s.DB, courtID, userID, bookingDate(), 10, 11)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			reservationsURL+"/"+id.String()+"/payment/confirm", nil, s.memberToken(t, userID))
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "admin")
	})
}

// =============================================================================
// TestGetReservations
// =============================================================================

func (s *ReservationSuite) TestGetReservations() {
	s.Run("Normal case: booker sees own reservation detail with court name", func() {
		t := s.T()
		courtID := s.seedBookableCourt(t)
		userID := uuid.New()
		id := dbtest.CreateTestReservation(t, s.DB, courtID, userID, bookingDate(), 10, 11)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			reservationsURL+"/"+id.String(), nil, s.memberToken(t, userID))
		require.Equal(t, http.StatusOK, w.Code)

		var view response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &view))
		require.Equal(t, "Center Court", view.CourtName)
		require.Equal(t, "10:00", view.StartTime)
		require.Equal(t, "11:00", view.EndTime)
	})

	s.Run("Error case: another member cannot view the detail", func() {
		t := s.T()
		courtID := s.seedBookableCourt(t)
		id := dbtest.CreateTestReservation(t, s.DB, courtID, uuid.New(), bookingDate(), 10, 11)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			reservationsURL+"/"+id.String(), nil, s.memberToken(t, uuid.New()))
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "")
	})

	s.Run("Normal case: list returns own bookings newest first", func() {
		t := s.T()
		courtID := s.seedBookableCourt(t)
		userID := uuid.New()
		date := bookingDate()
		dbtest.CreateTestReservation(t, s.DB, courtID, userID, date, 10, 11)
		dbtest.CreateTestReservation(t, s.DB, courtID, userID, date, 12, 13)
		dbtest.CreateTestReservation(t, s.DB, courtID, uuid.New(), date, 14, 15)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL, nil, s.memberToken(t, userID))
		require.Equal(t, http.StatusOK, w.Code)

		var items []response.ReservationListResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &items))
		require.Len(t, items, 2, "only the caller's bookings are listed")
		for _, item := range items {
			require.Equal(t, "Center Court", item.CourtName)
		}
	})
}
