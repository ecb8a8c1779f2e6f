package api

import (
	"errors"
	"net/http"

	reqdto "sparkwash-api/internal/handler/dto/request"
	resdto "sparkwash-api/internal/handler/dto/response"
	"sparkwash-api/internal/handler/middleware"
	"sparkwash-api/internal/usecase/commands"
	"sparkwash-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	reservationCommands commands.ReservationCommands
	paymentCommands     commands.PaymentCommands
	bookingQueries      queries.BookingQueries
}

func NewBookingHandler(
	reservationCommands commands.ReservationCommands,
	paymentCommands commands.PaymentCommands,
	bookingQueries queries.BookingQueries,
) *BookingHandler {
	return &BookingHandler{
		reservationCommands: reservationCommands,
		paymentCommands:     paymentCommands,
		bookingQueries:      bookingQueries,
	}
}

// @Summary Verify slot
// @Description Re-check a slot's availability right before checkout
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ReserveSlotRequest true "Slot to verify"
// @Success 200 {object} resdto.VerifySlotResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/verify-slot [post]
func (h *BookingHandler) VerifySlot(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.ReserveSlotRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	reserved, err := h.reservationCommands.Reserve(c.Request.Context(), req, userID)
	if err != nil {
		h.abortReserveError(c, err)
		return
	}

	iv := reserved.Draft.Interval()
	c.JSON(http.StatusOK, resdto.VerifySlotResponse{
		Available:  true,
		StartTime:  iv.Start().String(),
		EndTime:    iv.End().String(),
		PriceCents: reserved.PriceCents,
	})
}

// @Summary Confirm booking
// @Description Convert a confirmed payment reference into a committed booking; idempotent
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ConfirmBookingRequest true "Payment reference"
// @Success 201 {object} resdto.ConfirmBookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	var req reqdto.ConfirmBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.paymentCommands.Confirm(c.Request.Context(), req.Reference)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrIntentNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Payment reference not found",
			})
		case errors.Is(err, commands.ErrPaymentPending):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Payment not confirmed yet",
			})
		case errors.Is(err, commands.ErrConfirmInProgress):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Confirmation already in progress",
			})
		case errors.Is(err, commands.ErrPaymentFailed):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Payment failed, no booking created",
			})
		case errors.Is(err, commands.ErrCommitAfterPaymentFailed):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Payment received but the slot is no longer available; flagged for manual resolution",
			})
		case errors.Is(err, commands.ErrGatewayUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "Payment gateway unavailable",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.ConfirmBookingResponse{
		BookingID: result.BookingID,
		Replayed:  result.IsReplayed,
	})
}

// @Summary Get booking
// @Description Get a booking by ID; clients see only their own
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), userID, middleware.IsManager(c), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		case errors.Is(err, queries.ErrNotBookingOwner):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Booking belongs to another user",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

func (h *BookingHandler) abortReserveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrLocationNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Location not found",
		})
	case errors.Is(err, commands.ErrServiceNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Service not found",
		})
	case errors.Is(err, commands.ErrServiceInactive):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Service is not offered",
		})
	case errors.Is(err, commands.ErrInvalidTimeSlot):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid time slot",
		})
	case errors.Is(err, commands.ErrSlotUnavailable):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Slot unavailable",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
