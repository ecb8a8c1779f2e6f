package response

import (
	"sparkwash-api/internal/usecase/commands"
	"sparkwash-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ManagerBookingResponse struct {
	ID          uuid.UUID `json:"id"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	Bay         int       `json:"bay"`
	ServiceName string    `json:"serviceName"`
	ClientEmail string    `json:"clientEmail"`
	Status      string    `json:"status"`
}

type ServiceSummaryResponse struct {
	ServiceID   uuid.UUID `json:"serviceId"`
	ServiceName string    `json:"serviceName"`
	Bookings    int       `json:"bookings"`
}

type ActiveBaysResponse struct {
	ActiveBays    int  `json:"activeBays"`
	PeakCommitted int  `json:"peakCommitted"`
	Overridden    bool `json:"overridden"`
}

type DaySettingsResponse struct {
	LocationID uuid.UUID `json:"locationId"`
	Date       string    `json:"date"`
	ActiveBays int       `json:"activeBays"`
}

type BlockedSlotResponse struct {
	LocationID uuid.UUID `json:"locationId"`
	Date       string    `json:"date"`
	Slot       string    `json:"slot"`
}

// CapacityConflictDetail rides along the 409 so the manager UI can render the
// override confirmation with the actual committed peak.
type CapacityConflictDetail struct {
	PeakCommitted int `json:"peakCommitted"`
}

func FromManagerBookingItems(items []*queries.ManagerBookingItem) []*ManagerBookingResponse {
	out := make([]*ManagerBookingResponse, len(items))
	for i, item := range items {
		var resp ManagerBookingResponse
		_ = copier.Copy(&resp, item)
		out[i] = &resp
	}
	return out
}

func FromServiceSummaryRows(rows []*queries.ServiceSummaryRow) []*ServiceSummaryResponse {
	out := make([]*ServiceSummaryResponse, len(rows))
	for i, row := range rows {
		var resp ServiceSummaryResponse
		_ = copier.Copy(&resp, row)
		out[i] = &resp
	}
	return out
}

func FromSetActiveBaysResult(result *commands.SetActiveBaysResult) *ActiveBaysResponse {
	return &ActiveBaysResponse{
		ActiveBays:    result.ActiveBays,
		PeakCommitted: result.PeakCommitted,
		Overridden:    result.Overridden,
	}
}

func FromDaySettingsView(view *queries.DaySettingsView) *DaySettingsResponse {
	var resp DaySettingsResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromBlockedSlotViews(views []*queries.BlockedSlotView) []*BlockedSlotResponse {
	out := make([]*BlockedSlotResponse, len(views))
	for i, v := range views {
		var resp BlockedSlotResponse
		_ = copier.Copy(&resp, v)
		out[i] = &resp
	}
	return out
}
