//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"sparkwash-api/internal/domain/payment"
	"sparkwash-api/internal/handler/api"
	resdto "sparkwash-api/internal/handler/dto/response"
	"sparkwash-api/internal/pkg/config"
	"sparkwash-api/internal/usecase/commands"
	"sparkwash-api/internal/usecase/queries"
	"sparkwash-api/internal/worker"
	"sparkwash-api/tests/common/builder"
	"sparkwash-api/tests/common/httptest"
	"sparkwash-api/tests/common/testutil"
	commandsmock "sparkwash-api/tests/mock/commands"
	queriesmock "sparkwash-api/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PaymentHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockPayments *commandsmock.MockPaymentCommands
	mockQueries  *queriesmock.MockPaymentQueries
	poller       *worker.Poller
	handler      *api.PaymentHandler
	userID       uuid.UUID
}

func (s *PaymentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.userID = uuid.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockPayments = commandsmock.NewMockPaymentCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockPaymentQueries(s.mockCtrl)
	// Interval far beyond the test's lifetime so the poller never fires and
	// the mock only sees the handler's own calls.
	s.poller = worker.NewPoller(s.mockPayments, config.PaymentsConfig{
		PollInterval: time.Hour,
		PollDeadline: time.Hour,
	})
	s.handler = api.NewPaymentHandler(s.mockPayments, s.mockQueries, s.poller)

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}
		c.Set("user_id", s.userID)
		c.Set("user_role", "client")
		c.Next()
	}

	s.router.POST("/payments/checkout", authMiddleware, s.handler.Checkout)
	s.router.GET("/payments/verify/:reference", authMiddleware, s.handler.Verify)
	s.router.POST("/payments/cancel/:reference", authMiddleware, s.handler.Cancel)
}

func (s *PaymentHandlerTestSuite) TearDownTest() {
	s.Require().NoError(s.poller.Shutdown(context.Background()))
	s.mockCtrl.Finish()
}

func TestPaymentHandlerSuite(t *testing.T) {
	suite.Run(t, new(PaymentHandlerTestSuite))
}

// ================================================================================
// TestCheckout
// ================================================================================

func (s *PaymentHandlerTestSuite) TestCheckout() {
	url := "/payments/checkout"

	reqBody := builder.NewBookingBuilder().BuildCheckoutRequestDTO()

	s.Run("success: returns 201 with the hosted checkout session", func() {
		s.mockPayments.EXPECT().StartCheckout(gomock.Any(), gomock.Any(), s.userID).
			Return(&commands.StartCheckoutResult{
				AuthorizationURL: "https://checkout.paystack.com/abc123",
				Reference:        "ps_test_000042",
				AmountCents:      15000,
			}, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body resdto.CheckoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal("ps_test_000042", body.Reference)
		s.Equal("https://checkout.paystack.com/abc123", body.AuthorizationURL)
		s.Equal(int64(15000), body.AmountCents)
	})

	s.Run("error: 401 without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
	})

	s.Run("error: 400 on invalid email", func() {
		body := testutil.DtoMap(s.T(), reqBody, testutil.Field("email", "not-an-email"))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: checkout failures map to status codes", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
			expectMsg  string
		}{
			{"slot taken", commands.ErrSlotUnavailable, http.StatusConflict, "Slot unavailable"},
			{"service missing", commands.ErrServiceNotFound, http.StatusNotFound, "Service not found"},
			{"gateway down", commands.ErrGatewayUnavailable, http.StatusBadGateway, "Payment gateway unavailable"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockPayments.EXPECT().StartCheckout(gomock.Any(), gomock.Any(), s.userID).
					Return(nil, tc.err).Times(1)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectMsg)
			})
		}
	})
}

// ================================================================================
// TestVerify
// ================================================================================

func (s *PaymentHandlerTestSuite) TestVerify() {
	s.Run("success: returns the recorded reconciliation state", func() {
		bookingID := uuid.New()
		s.mockQueries.EXPECT().Status(gomock.Any(), "ps_test_000042").
			Return(&queries.PaymentStatusView{
				Reference: "ps_test_000042",
				Status:    "committed",
				BookingID: &bookingID,
			}, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/payments/verify/ps_test_000042", nil, "bearer-token")

		var body resdto.PaymentStatusResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("committed", body.Status)
		s.Require().NotNil(body.BookingID)
		s.Equal(bookingID, *body.BookingID)
	})

	s.Run("error: 404 on unknown reference", func() {
		s.mockQueries.EXPECT().Status(gomock.Any(), "ps_test_999999").
			Return(nil, queries.ErrIntentNotFound).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/payments/verify/ps_test_999999", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Payment reference not found")
	})
}

// ================================================================================
// TestCancel
// ================================================================================

func (s *PaymentHandlerTestSuite) TestCancel() {
	url := "/payments/cancel/ps_test_000042"

	s.Run("success: cancels the awaiting checkout", func() {
		s.mockPayments.EXPECT().Cancel(gomock.Any(), "ps_test_000042", s.userID).
			Return(nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var body map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("Checkout cancelled", body["message"])
	})

	s.Run("error: cancellation failures map to status codes", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
			expectMsg  string
		}{
			{"unknown reference", commands.ErrIntentNotFound, http.StatusNotFound, "Payment reference not found"},
			{"someone else's checkout", commands.ErrNotIntentOwner, http.StatusForbidden, "Checkout belongs to another user"},
			{"already settled", payment.ErrCancelNotAllowed, http.StatusConflict, "no longer be cancelled"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockPayments.EXPECT().Cancel(gomock.Any(), "ps_test_000042", s.userID).
					Return(tc.err).Times(1)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectMsg)
			})
		}
	})
}
