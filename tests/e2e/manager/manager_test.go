//go:build e2e

package manager_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"sparkwash-api/internal/handler/dto/response"
	"sparkwash-api/internal/pkg/jwt"
	"sparkwash-api/tests/common/authtest"
	"sparkwash-api/tests/common/dbtest"
	"sparkwash-api/tests/common/httptest"
	"sparkwash-api/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	settingsURL     = "/api/manager/settings"
	blockedSlotsURL = "/api/manager/blocked-slots"
	daySchedURL     = "/api/manager/bookings?locationId=%s&date=%s"
	summaryURL      = "/api/manager/bookings/summary?locationId=%s&year=%d&month=%d"
	summaryPDFURL   = "/api/manager/bookings/summary/pdf?locationId=%s&year=%d&month=%d"
	availabilityURL = "/api/availability?locationId=%s&date=%s"

	testDate = "2027-04-20"
)

type ManagerSuite struct {
	e2e.SharedSuite
	jwtHelper *authtest.JWTHelper
}

func (s *ManagerSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwtHelper = authtest.NewJWTHelper(s.Config.JWT)
}

func (s *ManagerSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestManagerSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ManagerSuite))
}

func (s *ManagerSuite) managerToken() string {
	return s.jwtHelper.GenerateToken(s.T(), uuid.New(), jwt.RoleManager)
}

// =============================================================================
// TestRoleGate - Manager endpoints reject non-managers
// =============================================================================

func (s *ManagerSuite) TestRoleGate() {
	s.Run("Error case: client tokens are rejected with 403", func() {
		t := s.T()

		clientToken := s.jwtHelper.GenerateToken(t, uuid.New(), jwt.RoleClient)
		url := fmt.Sprintf(daySchedURL, dbtest.DefaultLocationID, testDate)
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, clientToken)
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	s.Run("Error case: missing token is rejected with 401", func() {
		t := s.T()

		url := fmt.Sprintf(daySchedURL, dbtest.DefaultLocationID, testDate)
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// =============================================================================
// TestDaySettings - Active bay management
// =============================================================================

func (s *ManagerSuite) TestDaySettings() {
	s.Run("Normal case: unset day falls back to the location default", func() {
		t := s.T()

		url := fmt.Sprintf("%s?locationId=%s&date=%s", settingsURL, dbtest.DefaultLocationID, testDate)
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, s.managerToken())
		require.Equal(t, http.StatusOK, w.Code, "settings read should succeed: %s", w.Body.String())

		var res response.DaySettingsResponse
		err := httptest.DecodeResponseBody(t, w.Body, &res)
		require.NoError(t, err)
		require.Equal(t, 2, res.ActiveBays)
	})

	s.Run("Normal case: setting active bays persists for the day", func() {
		t := s.T()

		reqBody := map[string]any{
			"location_id": dbtest.DefaultLocationID,
			"date":        testDate,
			"active_bays": 3,
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, settingsURL, reqBody, s.managerToken())
		require.Equal(t, http.StatusOK, w.Code, "settings write should succeed: %s", w.Body.String())

		var res response.ActiveBaysResponse
		err := httptest.DecodeResponseBody(t, w.Body, &res)
		require.NoError(t, err)
		require.Equal(t, 3, res.ActiveBays)

		url := fmt.Sprintf("%s?locationId=%s&date=%s", settingsURL, dbtest.DefaultLocationID, testDate)
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, s.managerToken())
		require.Equal(t, http.StatusOK, w.Code)

		var read response.DaySettingsResponse
		err = httptest.DecodeResponseBody(t, w.Body, &read)
		require.NoError(t, err)
		require.Equal(t, 3, read.ActiveBays)
	})

	s.Run("Error case: a zero-bay override is refused by the schema", func() {
		t := s.T()

		_, err := s.DB.Exec(context.Background(), `
			INSERT INTO day_settings (location_id, date, active_bays)
			VALUES ($1, $2, 0)`, dbtest.DefaultLocationID, testDate)
		require.ErrorContains(t, err, "day_settings_bays_check")
	})

	s.Run("Error case: shrinking below the committed peak needs override", func() {
		t := s.T()

		// Two overlapping committed bookings make the peak 2
		dbtest.CreateTestBooking(t, s.DB, uuid.New(), dbtest.DefaultLocationID, dbtest.BasicWashID, testDate, 540, 30, 1)
		dbtest.CreateTestBooking(t, s.DB, uuid.New(), dbtest.DefaultLocationID, dbtest.BasicWashID, testDate, 540, 30, 2)

		reqBody := map[string]any{
			"location_id": dbtest.DefaultLocationID,
			"date":        testDate,
			"active_bays": 1,
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, settingsURL, reqBody, s.managerToken())
		require.Equal(t, http.StatusConflict, w.Code, "shrink below peak should conflict: %s", w.Body.String())

		var conflict struct {
			Error  string                          `json:"error"`
			Detail response.CapacityConflictDetail `json:"detail"`
		}
		err := httptest.DecodeResponseBody(t, w.Body, &conflict)
		require.NoError(t, err)
		require.Equal(t, 2, conflict.Detail.PeakCommitted)

		// Acknowledging the peak lets the shrink through
		reqBody["override"] = true
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, settingsURL, reqBody, s.managerToken())
		require.Equal(t, http.StatusOK, w.Code, "override should succeed: %s", w.Body.String())

		var res response.ActiveBaysResponse
		err = httptest.DecodeResponseBody(t, w.Body, &res)
		require.NoError(t, err)
		require.True(t, res.Overridden)
		require.Equal(t, 1, res.ActiveBays)
	})
}

// =============================================================================
// TestBlockedSlots - Manual slot blocking
// =============================================================================

func (s *ManagerSuite) TestBlockedSlots() {
	s.Run("Normal case: blocked slot disappears from availability", func() {
		t := s.T()

		reqBody := map[string]any{
			"location_id": dbtest.DefaultLocationID,
			"date":        testDate,
			"slot":        "09:00",
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, blockedSlotsURL, reqBody, s.managerToken())
		require.Equal(t, http.StatusNoContent, w.Code, "block should succeed: %s", w.Body.String())

		url := fmt.Sprintf("%s?locationId=%s&date=%s", blockedSlotsURL, dbtest.DefaultLocationID, testDate)
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, s.managerToken())
		require.Equal(t, http.StatusOK, w.Code)

		var blocked []*response.BlockedSlotResponse
		err := httptest.DecodeResponseBody(t, w.Body, &blocked)
		require.NoError(t, err)
		require.Len(t, blocked, 1)
		require.Equal(t, "09:00", blocked[0].Slot)

		availURL := fmt.Sprintf(availabilityURL, dbtest.DefaultLocationID, testDate)
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, availURL, nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		var avail response.AvailabilityResponse
		err = httptest.DecodeResponseBody(t, w.Body, &avail)
		require.NoError(t, err)
		require.NotContains(t, avail.Slots, "09:00")
		require.Contains(t, avail.Slots, "09:30")

		// Unblock restores the slot
		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, blockedSlotsURL, reqBody, s.managerToken())
		require.Equal(t, http.StatusNoContent, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, availURL, nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		err = httptest.DecodeResponseBody(t, w.Body, &avail)
		require.NoError(t, err)
		require.Contains(t, avail.Slots, "09:00")
	})

	s.Run("Error case: blocking over a committed booking conflicts", func() {
		t := s.T()

		dbtest.CreateTestBooking(t, s.DB, uuid.New(), dbtest.DefaultLocationID, dbtest.BasicWashID, testDate, 540, 30, 1)
		dbtest.CreateTestBooking(t, s.DB, uuid.New(), dbtest.DefaultLocationID, dbtest.BasicWashID, testDate, 540, 30, 2)

		reqBody := map[string]any{
			"location_id": dbtest.DefaultLocationID,
			"date":        testDate,
			"slot":        "09:00",
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, blockedSlotsURL, reqBody, s.managerToken())
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "committed booking")
	})
}

// =============================================================================
// TestDaySchedule - Manager day view
// =============================================================================

func (s *ManagerSuite) TestDaySchedule() {
	s.Run("Normal case: committed bookings are listed in slot order", func() {
		t := s.T()

		dbtest.CreateTestBooking(t, s.DB, uuid.New(), dbtest.DefaultLocationID, dbtest.FullValetID, testDate, 600, 90, 1)
		dbtest.CreateTestBooking(t, s.DB, uuid.New(), dbtest.DefaultLocationID, dbtest.BasicWashID, testDate, 540, 30, 1)

		url := fmt.Sprintf(daySchedURL, dbtest.DefaultLocationID, testDate)
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, s.managerToken())
		require.Equal(t, http.StatusOK, w.Code, "day schedule should succeed: %s", w.Body.String())

		var items []*response.ManagerBookingResponse
		err := httptest.DecodeResponseBody(t, w.Body, &items)
		require.NoError(t, err)
		require.Len(t, items, 2)
		require.Equal(t, "09:00", items[0].StartTime)
		require.Equal(t, "Basic Wash", items[0].ServiceName)
		require.Equal(t, "10:00", items[1].StartTime)
		require.Equal(t, "11:30", items[1].EndTime)
	})
}

// =============================================================================
// TestMonthlySummary - Per-service counts and PDF export
// =============================================================================

func (s *ManagerSuite) TestMonthlySummary() {
	s.Run("Normal case: summary counts committed bookings per service", func() {
		t := s.T()

		dbtest.CreateTestBooking(t, s.DB, uuid.New(), dbtest.DefaultLocationID, dbtest.BasicWashID, "2027-04-05", 540, 30, 1)
		dbtest.CreateTestBooking(t, s.DB, uuid.New(), dbtest.DefaultLocationID, dbtest.BasicWashID, "2027-04-12", 540, 30, 1)
		dbtest.CreateTestBooking(t, s.DB, uuid.New(), dbtest.DefaultLocationID, dbtest.FullValetID, "2027-04-12", 600, 90, 2)
		// Outside the requested month
		dbtest.CreateTestBooking(t, s.DB, uuid.New(), dbtest.DefaultLocationID, dbtest.BasicWashID, "2027-05-01", 540, 30, 1)

		url := fmt.Sprintf(summaryURL, dbtest.DefaultLocationID, 2027, 4)
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, s.managerToken())
		require.Equal(t, http.StatusOK, w.Code, "summary should succeed: %s", w.Body.String())

		var rows []*response.ServiceSummaryResponse
		err := httptest.DecodeResponseBody(t, w.Body, &rows)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		require.Equal(t, "Basic Wash", rows[0].ServiceName)
		require.Equal(t, 2, rows[0].Bookings)
		require.Equal(t, "Full Valet", rows[1].ServiceName)
		require.Equal(t, 1, rows[1].Bookings)
	})

	s.Run("Normal case: PDF export downloads a document", func() {
		t := s.T()

		dbtest.CreateTestBooking(t, s.DB, uuid.New(), dbtest.DefaultLocationID, dbtest.BasicWashID, "2027-04-05", 540, 30, 1)

		url := fmt.Sprintf(summaryPDFURL, dbtest.DefaultLocationID, 2027, 4)
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, s.managerToken())
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		require.Contains(t, w.Header().Get("Content-Disposition"), "summary_2027-04.pdf")
		require.True(t, len(w.Body.Bytes()) > 4 && string(w.Body.Bytes()[:4]) == "%PDF")
	})

	s.Run("Error case: month out of range is rejected", func() {
		t := s.T()

		url := fmt.Sprintf(summaryURL, dbtest.DefaultLocationID, 2027, 13)
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, s.managerToken())
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "")
	})
}
