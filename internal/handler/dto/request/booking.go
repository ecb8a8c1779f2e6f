package request

import (
	"sparkwash-api/internal/domain/booking"
	"sparkwash-api/internal/domain/schedule"

	"github.com/google/uuid"
)

type ReserveSlotRequest struct {
	ServiceID  uuid.UUID `json:"service_id" binding:"required"`
	LocationID uuid.UUID `json:"location_id" binding:"required"`
	Date       string    `json:"date" binding:"required"`
	StartTime  string    `json:"start_time" binding:"required"`
}

func (r ReserveSlotRequest) ToDraft(userID uuid.UUID, duration schedule.Duration) (booking.Draft, error) {
	date, err := schedule.ParseDate(r.Date)
	if err != nil {
		return booking.Draft{}, err
	}
	slot, err := schedule.ParseSlot(r.StartTime)
	if err != nil {
		return booking.Draft{}, err
	}
	return booking.NewDraft(userID, r.LocationID, r.ServiceID, date, slot, duration)
}

type StartCheckoutRequest struct {
	ServiceID  uuid.UUID `json:"service_id" binding:"required"`
	LocationID uuid.UUID `json:"location_id" binding:"required"`
	Date       string    `json:"date" binding:"required"`
	StartTime  string    `json:"start_time" binding:"required"`
	Email      string    `json:"email" binding:"required,email"`
}

func (r StartCheckoutRequest) Reserve() ReserveSlotRequest {
	return ReserveSlotRequest{
		ServiceID:  r.ServiceID,
		LocationID: r.LocationID,
		Date:       r.Date,
		StartTime:  r.StartTime,
	}
}

// ConfirmBookingRequest is the idempotent client-facing face of payment
// confirmation: the server re-verifies the reference with the gateway before
// committing anything.
type ConfirmBookingRequest struct {
	Reference string `json:"reference" binding:"required"`
}
