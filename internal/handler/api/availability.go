package api

import (
	"errors"
	"net/http"

	resdto "sparkwash-api/internal/handler/dto/response"
	"sparkwash-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	availabilityQueries queries.AvailabilityQueries
}

func NewAvailabilityHandler(availabilityQueries queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityQueries: availabilityQueries,
	}
}

// @Summary List available slots
// @Description List bookable start slots for a location and date, duration-filtered by service
// @Tags availability
// @Produce json
// @Param locationId query string true "Location ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param serviceId query string false "Service ID for duration-aware filtering"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /availability [get]
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	locationID, err := uuid.Parse(c.Query("locationId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid location ID format",
		})
		return
	}
	date := c.Query("date")

	var serviceID *uuid.UUID
	if raw := c.Query("serviceId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid service ID format",
			})
			return
		}
		serviceID = &id
	}

	slots, err := h.availabilityQueries.AvailableSlots(c.Request.Context(), locationID, date, serviceID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidDate):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid date format",
			})
		case errors.Is(err, queries.ErrLocationNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Location not found",
			})
		case errors.Is(err, queries.ErrServiceNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Service not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.AvailabilityResponse{
		Date:  date,
		Slots: slots,
	})
}
