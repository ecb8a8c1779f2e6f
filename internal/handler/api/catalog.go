package api

import (
	"net/http"

	resdto "sparkwash-api/internal/handler/dto/response"
	"sparkwash-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	catalogQueries queries.CatalogQueries
}

func NewCatalogHandler(catalogQueries queries.CatalogQueries) *CatalogHandler {
	return &CatalogHandler{
		catalogQueries: catalogQueries,
	}
}

// @Summary List locations
// @Description List all car-wash locations
// @Tags catalog
// @Produce json
// @Success 200 {array} resdto.LocationResponse
// @Router /locations [get]
func (h *CatalogHandler) ListLocations(c *gin.Context) {
	views, err := h.catalogQueries.ListLocations(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromLocationViews(views))
}

// @Summary List services
// @Description List active services offered at a location
// @Tags catalog
// @Produce json
// @Param locationId query string true "Location ID"
// @Success 200 {array} resdto.ServiceResponse
// @Failure 400 {object} map[string]string
// @Router /services [get]
func (h *CatalogHandler) ListServices(c *gin.Context) {
	locationID, err := uuid.Parse(c.Query("locationId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid location ID format",
		})
		return
	}

	views, err := h.catalogQueries.ListServices(c.Request.Context(), locationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromServiceViews(views))
}
