package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	reqdto "sparkwash-api/internal/handler/dto/request"
	resdto "sparkwash-api/internal/handler/dto/response"
	"sparkwash-api/internal/infra/report"
	"sparkwash-api/internal/usecase/commands"
	"sparkwash-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ManagerHandler struct {
	capacityCommands    commands.CapacityCommands
	blockedSlotCommands commands.BlockedSlotCommands
	scheduleQueries     queries.ManagerScheduleQueries
	bookingQueries      queries.BookingQueries
	catalogQueries      queries.CatalogQueries
	pdfRenderer         *report.SummaryPDFRenderer
}

func NewManagerHandler(
	capacityCommands commands.CapacityCommands,
	blockedSlotCommands commands.BlockedSlotCommands,
	scheduleQueries queries.ManagerScheduleQueries,
	bookingQueries queries.BookingQueries,
	catalogQueries queries.CatalogQueries,
	pdfRenderer *report.SummaryPDFRenderer,
) *ManagerHandler {
	return &ManagerHandler{
		capacityCommands:    capacityCommands,
		blockedSlotCommands: blockedSlotCommands,
		scheduleQueries:     scheduleQueries,
		bookingQueries:      bookingQueries,
		catalogQueries:      catalogQueries,
		pdfRenderer:         pdfRenderer,
	}
}

// @Summary Get day settings
// @Description Get the active bay count for a location and date
// @Tags manager
// @Produce json
// @Security BearerAuth
// @Param locationId query string true "Location ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} resdto.DaySettingsResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /manager/settings [get]
func (h *ManagerHandler) GetSettings(c *gin.Context) {
	locationID, err := uuid.Parse(c.Query("locationId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid location ID format",
		})
		return
	}

	view, err := h.scheduleQueries.DaySettings(c.Request.Context(), locationID, c.Query("date"))
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
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromDaySettingsView(view))
}

// @Summary Set active bays
// @Description Set the active bay count for a date; shrinking below the committed peak requires override
// @Tags manager
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.SetActiveBaysRequest true "Bay count request"
// @Success 200 {object} resdto.ActiveBaysResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /manager/settings [post]
func (h *ManagerHandler) SetActiveBays(c *gin.Context) {
	var req reqdto.SetActiveBaysRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.capacityCommands.SetActiveBays(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrCapacityConflict):
			c.JSON(http.StatusConflict, gin.H{
				"error":  "Bay count is below the day's committed peak; retry with override",
				"detail": resdto.CapacityConflictDetail{PeakCommitted: result.PeakCommitted},
			})
		case errors.Is(err, commands.ErrInvalidBayCount):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid bay count",
			})
		case errors.Is(err, commands.ErrInvalidTimeSlot):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid date format",
			})
		case errors.Is(err, commands.ErrLocationNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Location not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromSetActiveBaysResult(result))
}

// @Summary List blocked slots
// @Description List manager-blocked slots for a location and date
// @Tags manager
// @Produce json
// @Security BearerAuth
// @Param locationId query string true "Location ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {array} resdto.BlockedSlotResponse
// @Failure 400 {object} map[string]string
// @Router /manager/blocked-slots [get]
func (h *ManagerHandler) GetBlockedSlots(c *gin.Context) {
	locationID, err := uuid.Parse(c.Query("locationId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid location ID format",
		})
		return
	}

	views, err := h.scheduleQueries.BlockedSlots(c.Request.Context(), locationID, c.Query("date"))
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidDate):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid date format",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBlockedSlotViews(views))
}

// @Summary Block slot
// @Description Block a slot; fails when a committed booking overlaps it
// @Tags manager
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.BlockSlotRequest true "Slot to block"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /manager/blocked-slots [post]
func (h *ManagerHandler) BlockSlot(c *gin.Context) {
	var req reqdto.BlockSlotRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.blockedSlotCommands.Block(c.Request.Context(), req); err != nil {
		h.abortBlockedSlotError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Unblock slot
// @Description Remove a slot block; idempotent
// @Tags manager
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.BlockSlotRequest true "Slot to unblock"
// @Success 204
// @Failure 400 {object} map[string]string
// @Router /manager/blocked-slots [delete]
func (h *ManagerHandler) UnblockSlot(c *gin.Context) {
	var req reqdto.BlockSlotRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.blockedSlotCommands.Unblock(c.Request.Context(), req); err != nil {
		h.abortBlockedSlotError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Day schedule
// @Description List committed bookings for a location and date, ordered by slot and bay
// @Tags manager
// @Produce json
// @Security BearerAuth
// @Param locationId query string true "Location ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {array} resdto.ManagerBookingResponse
// @Failure 400 {object} map[string]string
// @Router /manager/bookings [get]
func (h *ManagerHandler) GetDaySchedule(c *gin.Context) {
	locationID, err := uuid.Parse(c.Query("locationId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid location ID format",
		})
		return
	}

	items, err := h.bookingQueries.ManagerDay(c.Request.Context(), locationID, c.Query("date"))
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidDate):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid date format",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromManagerBookingItems(items))
}

// @Summary Monthly summary
// @Description Per-service committed booking counts for a month
// @Tags manager
// @Produce json
// @Security BearerAuth
// @Param locationId query string true "Location ID"
// @Param month query int true "Month (1-12)"
// @Param year query int true "Year"
// @Success 200 {array} resdto.ServiceSummaryResponse
// @Failure 400 {object} map[string]string
// @Router /manager/bookings/summary [get]
func (h *ManagerHandler) GetMonthlySummary(c *gin.Context) {
	locationID, year, month, ok := h.summaryParams(c)
	if !ok {
		return
	}

	rows, err := h.bookingQueries.MonthlySummary(c.Request.Context(), locationID, year, month)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidDate):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid month or year",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromServiceSummaryRows(rows))
}

// @Summary Monthly summary PDF
// @Description Download the monthly per-service summary as a PDF
// @Tags manager
// @Produce application/pdf
// @Security BearerAuth
// @Param locationId query string true "Location ID"
// @Param month query int true "Month (1-12)"
// @Param year query int true "Year"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /manager/bookings/summary/pdf [get]
func (h *ManagerHandler) GetMonthlySummaryPDF(c *gin.Context) {
	locationID, year, month, ok := h.summaryParams(c)
	if !ok {
		return
	}

	location, err := h.catalogQueries.GetLocation(c.Request.Context(), locationID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrLocationNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Location not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	rows, err := h.bookingQueries.MonthlySummary(c.Request.Context(), locationID, year, month)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidDate):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid month or year",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	data, filename, err := h.pdfRenderer.Render(location.Name, year, month, rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h *ManagerHandler) summaryParams(c *gin.Context) (uuid.UUID, int, int, bool) {
	locationID, err := uuid.Parse(c.Query("locationId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid location ID format",
		})
		return uuid.Nil, 0, 0, false
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid month",
		})
		return uuid.Nil, 0, 0, false
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid year",
		})
		return uuid.Nil, 0, 0, false
	}
	return locationID, year, month, true
}

func (h *ManagerHandler) abortBlockedSlotError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrBlockedSlotConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Slot overlaps a committed booking",
		})
	case errors.Is(err, commands.ErrInvalidTimeSlot):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date or slot format",
		})
	case errors.Is(err, commands.ErrLocationNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Location not found",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
