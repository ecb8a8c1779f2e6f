package api

import (
	"errors"
	"net/http"

	"sparkwash-api/internal/domain/payment"
	reqdto "sparkwash-api/internal/handler/dto/request"
	resdto "sparkwash-api/internal/handler/dto/response"
	"sparkwash-api/internal/handler/middleware"
	"sparkwash-api/internal/usecase/commands"
	"sparkwash-api/internal/usecase/queries"
	"sparkwash-api/internal/worker"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentCommands commands.PaymentCommands
	paymentQueries  queries.PaymentQueries
	poller          *worker.Poller
}

func NewPaymentHandler(
	paymentCommands commands.PaymentCommands,
	paymentQueries queries.PaymentQueries,
	poller *worker.Poller,
) *PaymentHandler {
	return &PaymentHandler{
		paymentCommands: paymentCommands,
		paymentQueries:  paymentQueries,
		poller:          poller,
	}
}

// @Summary Start checkout
// @Description Reserve a slot and initialize a hosted payment checkout
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.StartCheckoutRequest true "Checkout request"
// @Success 201 {object} resdto.CheckoutResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /payments/checkout [post]
func (h *PaymentHandler) Checkout(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.StartCheckoutRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.paymentCommands.StartCheckout(c.Request.Context(), req, userID)
	if err != nil {
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

	// Poll the gateway in the background so confirmation lands even if the
	// client never calls back.
	h.poller.Watch(result.Reference)

	c.JSON(http.StatusCreated, resdto.CheckoutResponse{
		AuthorizationURL: result.AuthorizationURL,
		Reference:        result.Reference,
		AmountCents:      result.AmountCents,
	})
}

// @Summary Verify payment
// @Description Get the recorded reconciliation status for a payment reference
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param reference path string true "Payment reference"
// @Success 200 {object} resdto.PaymentStatusResponse
// @Failure 404 {object} map[string]string
// @Router /payments/verify/{reference} [get]
func (h *PaymentHandler) Verify(c *gin.Context) {
	view, err := h.paymentQueries.Status(c.Request.Context(), c.Param("reference"))
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrIntentNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Payment reference not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromPaymentStatusView(view))
}

// @Summary Cancel checkout
// @Description Stop polling and cancel an awaiting checkout; a payment that already moved still commits later
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param reference path string true "Payment reference"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /payments/cancel/{reference} [post]
func (h *PaymentHandler) Cancel(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	reference := c.Param("reference")
	if err := h.paymentCommands.Cancel(c.Request.Context(), reference, userID); err != nil {
		switch {
		case errors.Is(err, commands.ErrIntentNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Payment reference not found",
			})
		case errors.Is(err, commands.ErrNotIntentOwner):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Checkout belongs to another user",
			})
		case errors.Is(err, payment.ErrCancelNotAllowed):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Checkout can no longer be cancelled",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	h.poller.Cancel(reference)

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout cancelled",
	})
}
