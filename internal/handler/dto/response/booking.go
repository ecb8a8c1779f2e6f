package response

import (
	"time"

	"sparkwash-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type VerifySlotResponse struct {
	Available  bool   `json:"available"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	PriceCents int64  `json:"priceCents"`
}

type BookingResponse struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"userId"`
	LocationID       uuid.UUID `json:"locationId"`
	LocationName     string    `json:"locationName"`
	ServiceID        uuid.UUID `json:"serviceId"`
	ServiceName      string    `json:"serviceName"`
	Date             string    `json:"date"`
	StartTime        string    `json:"startTime"`
	EndTime          string    `json:"endTime"`
	Bay              int       `json:"bay"`
	Status           string    `json:"status"`
	PaymentReference string    `json:"paymentReference"`
	CreatedAt        time.Time `json:"createdAt"`
}

type ConfirmBookingResponse struct {
	BookingID uuid.UUID `json:"bookingId"`
	Replayed  bool      `json:"replayed"`
}

func FromBookingView(view *queries.BookingView) *BookingResponse {
	var resp BookingResponse
	_ = copier.Copy(&resp, view)
	return &resp
}
