package response

import (
	"sparkwash-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type LocationResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	OpenTime    string    `json:"openTime"`
	CloseTime   string    `json:"closeTime"`
	DefaultBays int       `json:"defaultBays"`
}

type ServiceResponse struct {
	ID          uuid.UUID `json:"id"`
	LocationID  uuid.UUID `json:"locationId"`
	Name        string    `json:"name"`
	PriceCents  int64     `json:"priceCents"`
	DurationMin int       `json:"durationMinutes"`
}

type AvailabilityResponse struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

func FromLocationViews(views []*queries.LocationView) []*LocationResponse {
	out := make([]*LocationResponse, len(views))
	for i, v := range views {
		var resp LocationResponse
		_ = copier.Copy(&resp, v)
		out[i] = &resp
	}
	return out
}

func FromServiceViews(views []*queries.ServiceView) []*ServiceResponse {
	out := make([]*ServiceResponse, len(views))
	for i, v := range views {
		var resp ServiceResponse
		_ = copier.Copy(&resp, v)
		out[i] = &resp
	}
	return out
}
