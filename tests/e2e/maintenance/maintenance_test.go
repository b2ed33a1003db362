//go:build e2e

package maintenance_test

import (
	"context"
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
	"courtside/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	courtMaintenanceURL = "/api/courts/%s/maintenance"
	maintenanceURL      = "/api/maintenance/%s"
	courtScheduleURL    = "/api/courts/%s/schedule"
	availabilityURL     = "/api/courts/%s/availability?date=%s"
)

type MaintenanceSuite struct {
	e2e.SharedSuite
}

func (s *MaintenanceSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestMaintenanceSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(MaintenanceSuite))
}

func (s *MaintenanceSuite) token(t *testing.T, userID uuid.UUID, role user.Role) string {
	return authtest.NewJWTHelper(s.Config.JWT).GenerateToken(t, userID, role)
}

// targetDate is a week out so windows always land on a bookable day.
func targetDate() reservation.Date {
	return reservation.DateOf(time.Now().AddDate(0, 0, 7))
}

func windowRequest(date reservation.Date, startHour, endHour int) *request.ScheduleMaintenanceRequest {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return &request.ScheduleMaintenanceRequest{
		Kind:        "resurfacing",
		Description: "annual resurfacing",
		StartAt:     day.Add(time.Duration(startHour) * time.Hour),
		EndAt:       day.Add(time.Duration(endHour) * time.Hour),
	}
}

func (s *MaintenanceSuite) markConfirmed(t *testing.T, reservationID uuid.UUID) {
	_, err := s.DB.Exec(context.Background(),
		"UPDATE reservations SET status = 'confirmed', payment_status = 'paid' WHERE id = $1",
		reservationID)
	require.NoError(t, err)
}

// =============================================================================
// TestScheduleMaintenance
// =============================================================================

func (s *MaintenanceSuite) TestScheduleMaintenance() {
	s.Run("Normal case: owner blocks a span and availability reflects it", func() {
		t := s.T()
		ownerID := uuid.New()
		courtID := dbtest.CreateTestCourt(t, s.DB, ownerID, "Center Court")
		dbtest.CreateFullWeekSchedule(t, s.DB, courtID, 9, 21)
		date := targetDate()

		url := fmt.Sprintf(courtMaintenanceURL, courtID)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, url,
			windowRequest(date, 10, 12), s.token(t, ownerID, user.RoleOwner))
		require.Equal(t, http.StatusCreated, w.Code, "schedule maintenance failed: %s", w.Body.String())

		var created response.ScheduleMaintenanceResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		require.Equal(t, "scheduled", created.Window.Status)
		require.Empty(t, created.Warnings)

		availability := s.fetchAvailability(t, courtID, date)
		for _, slot := range availability.Slots {
			switch slot.Start {
			case "10:00", "11:00":
				require.False(t, slot.Available, "slot %s should be blocked", slot.Start)
			case "09:00", "12:00":
				require.True(t, slot.Available, "slot %s should stay free", slot.Start)
			}
		}
	})

	s.Run("Normal case: overlapping confirmed reservations come back as warnings", func() {
		t := s.T()
		ownerID := uuid.New()
		courtID := dbtest.CreateTestCourt(t, s.DB, ownerID, "Center Court")
		dbtest.CreateFullWeekSchedule(t, s.DB, courtID, 9, 21)
		date := targetDate()

		confirmedID := dbtest.CreateTestReservation(t, s.DB, courtID, uuid.New(), date, 10, 11)
		s.markConfirmed(t, confirmedID)
		// Pending bookings are not warned about.
		dbtest.CreateTestReservation(t, s.DB, courtID, uuid.New(), date, 13, 14)

		url := fmt.Sprintf(courtMaintenanceURL, courtID)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, url,
			windowRequest(date, 9, 15), s.token(t, ownerID, user.RoleOwner))
		require.Equal(t, http.StatusCreated, w.Code)

		var created response.ScheduleMaintenanceResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		require.Len(t, created.Warnings, 1)
		require.Equal(t, confirmedID, created.Warnings[0].ReservationID)
		require.Equal(t, "10:00-11:00", created.Warnings[0].Slot)
	})

	s.Run("Error case: member cannot schedule maintenance", func() {
		t := s.T()
		courtID := dbtest.CreateTestCourt(t, s.DB, uuid.New(), "Center Court")

		url := fmt.Sprintf(courtMaintenanceURL, courtID)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, url,
			windowRequest(targetDate(), 10, 12), s.token(t, uuid.New(), user.RoleMember))
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "")
	})

	s.Run("Error case: owner of a different court is forbidden", func() {
		t := s.T()
		courtID := dbtest.CreateTestCourt(t, s.DB, uuid.New(), "Center Court")

		url := fmt.Sprintf(courtMaintenanceURL, courtID)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, url,
			windowRequest(targetDate(), 10, 12), s.token(t, uuid.New(), user.RoleOwner))
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "")
	})

	s.Run("Error case: inverted span is rejected", func() {
		t := s.T()
		ownerID := uuid.New()
		courtID := dbtest.CreateTestCourt(t, s.DB, ownerID, "Center Court")

		url := fmt.Sprintf(courtMaintenanceURL, courtID)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, url,
			windowRequest(targetDate(), 12, 10), s.token(t, ownerID, user.RoleOwner))
		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "")
	})
}

// =============================================================================
// TestUpdateMaintenanceStatus
// =============================================================================

func (s *MaintenanceSuite) TestUpdateMaintenanceStatus() {
	createWindow := func(t *testing.T, courtID uuid.UUID, token string) uuid.UUID {
		url := fmt.Sprintf(courtMaintenanceURL, courtID)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, url,
			windowRequest(targetDate(), 10, 12), token)
		require.Equal(t, http.StatusCreated, w.Code)

		var created response.ScheduleMaintenanceResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		return created.Window.ID
	}

	s.Run("Normal case: window advances and completed windows stop blocking", func() {
		t := s.T()
		ownerID := uuid.New()
		courtID := dbtest.CreateTestCourt(t, s.DB, ownerID, "Center Court")
		dbtest.CreateFullWeekSchedule(t, s.DB, courtID, 9, 21)
		token := s.token(t, ownerID, user.RoleOwner)
		date := targetDate()
		windowID := createWindow(t, courtID, token)

		url := fmt.Sprintf(maintenanceURL, windowID)
		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, url,
			&request.UpdateMaintenanceStatusRequest{Status: "in_progress"}, token)
		require.Equal(t, http.StatusOK, w.Code)

		var updated response.MaintenanceWindowResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &updated))
		require.Equal(t, "in_progress", updated.Status)

		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, url,
			&request.UpdateMaintenanceStatusRequest{Status: "completed"}, token)
		require.Equal(t, http.StatusOK, w.Code)

		availability := s.fetchAvailability(t, courtID, date)
		for _, slot := range availability.Slots {
			require.True(t, slot.Available, "completed window must not block %s", slot.Start)
		}
	})

	s.Run("Error case: backward transition is rejected", func() {
		t := s.T()
		ownerID := uuid.New()
		courtID := dbtest.CreateTestCourt(t, s.DB, ownerID, "Center Court")
		token := s.token(t, ownerID, user.RoleOwner)
		windowID := createWindow(t, courtID, token)

		url := fmt.Sprintf(maintenanceURL, windowID)
		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, url,
			&request.UpdateMaintenanceStatusRequest{Status: "completed"}, token)
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, url,
			&request.UpdateMaintenanceStatusRequest{Status: "scheduled"}, token)
		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "move forward")
	})

	s.Run("Error case: owner of another court cannot advance", func() {
		t := s.T()
		ownerID := uuid.New()
		courtID := dbtest.CreateTestCourt(t, s.DB, ownerID, "Center Court")
		windowID := createWindow(t, courtID, s.token(t, ownerID, user.RoleOwner))

		url := fmt.Sprintf(maintenanceURL, windowID)
		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, url,
			&request.UpdateMaintenanceStatusRequest{Status: "in_progress"}, s.token(t, uuid.New(), user.RoleOwner))
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "")
	})

	s.Run("Error case: unknown window returns 404", func() {
		t := s.T()

		url := fmt.Sprintf(maintenanceURL, uuid.New())
		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, url,
			&request.UpdateMaintenanceStatusRequest{Status: "in_progress"}, s.token(t, uuid.New(), user.RoleAdmin))
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "")
	})
}

// =============================================================================
// TestReplaceWeekSchedule
// =============================================================================

func (s *MaintenanceSuite) TestReplaceWeekSchedule() {
	s.Run("Normal case: replacing the calendar reshapes availability", func() {
		t := s.T()
		ownerID := uuid.New()
		courtID := dbtest.CreateTestCourt(t, s.DB, ownerID, "Center Court")
		dbtest.CreateFullWeekSchedule(t, s.DB, courtID, 9, 21)
		date := targetDate()

		entries := make([]request.ScheduleEntryRequest, 0, 7)
		for day := 0; day <= 6; day++ {
			entries = append(entries, request.ScheduleEntryRequest{
				DayOfWeek: day,
				Open:      "08:00",
				Close:     "10:00",
			})
		}

		url := fmt.Sprintf(courtScheduleURL, courtID)
		w := httptest.PerformRequest(t, s.Router, http.MethodPut, url,
			&request.ReplaceScheduleRequest{Entries: entries}, s.token(t, ownerID, user.RoleOwner))
		require.Equal(t, http.StatusNoContent, w.Code, "replace schedule failed: %s", w.Body.String())

		availability := s.fetchAvailability(t, courtID, date)
		require.Len(t, availability.Slots, 2, "08:00-10:00 should yield 2 hourly slots")
		require.Equal(t, "08:00", availability.Slots[0].Start)
	})

	s.Run("Normal case: closing a day empties it", func() {
		t := s.T()
		ownerID := uuid.New()
		courtID := dbtest.CreateTestCourt(t, s.DB, ownerID, "Center Court")
		dbtest.CreateFullWeekSchedule(t, s.DB, courtID, 9, 21)
		date := targetDate()

		entries := []request.ScheduleEntryRequest{
			{DayOfWeek: int(date.Weekday()), Closed: true},
		}

		url := fmt.Sprintf(courtScheduleURL, courtID)
		w := httptest.PerformRequest(t, s.Router, http.MethodPut, url,
			&request.ReplaceScheduleRequest{Entries: entries}, s.token(t, ownerID, user.RoleOwner))
		require.Equal(t, http.StatusNoContent, w.Code)

		availability := s.fetchAvailability(t, courtID, date)
		require.Empty(t, availability.Slots)
	})

	s.Run("Error case: duplicate weekday is rejected", func() {
		t := s.T()
		ownerID := uuid.New()
		courtID := dbtest.CreateTestCourt(t, s.DB, ownerID, "Center Court")

		entries := []request.ScheduleEntryRequest{
			{DayOfWeek: 1, Open: "09:00", Close: "21:00"},
			{DayOfWeek: 1, Open: "10:00", Close: "20:00"},
		}

		url := fmt.Sprintf(courtScheduleURL, courtID)
		w := httptest.PerformRequest(t, s.Router, http.MethodPut, url,
			&request.ReplaceScheduleRequest{Entries: entries}, s.token(t, ownerID, user.RoleOwner))
		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "")
	})

	s.Run("Error case: member cannot replace the schedule", func() {
		t := s.T()
		courtID := dbtest.CreateTestCourt(t, s.DB, uuid.New(), "Center Court")

		entries := []request.ScheduleEntryRequest{
			{DayOfWeek: 1, Open: "09:00", Close: "21:00"},
		}

		url := fmt.Sprintf(courtScheduleURL, courtID)
		w := httptest.PerformRequest(t, s.Router, http.MethodPut, url,
			&request.ReplaceScheduleRequest{Entries: entries}, s.token(t, uuid.New(), user.RoleMember))
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "")
	})
}

func (s *MaintenanceSuite) fetchAvailability(t *testing.T, courtID uuid.UUID, date reservation.Date) response.AvailabilityResponse {
	url := fmt.Sprintf(availabilityURL, courtID, date.String())
	w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, "")
	require.Equal(t, http.StatusOK, w.Code, "availability query failed: %s", w.Body.String())

	var res response.AvailabilityResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
	return res
}
