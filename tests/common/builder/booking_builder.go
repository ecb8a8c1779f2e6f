//go:build unit || e2e

package builder

import (
	"time"

	reqdto "sparkwash-api/internal/handler/dto/request"
	"sparkwash-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	UserID       uuid.UUID
	LocationID   uuid.UUID
	LocationName string
	ServiceID    uuid.UUID
	ServiceName  string
	Date         string
	StartTime    string
	EndTime      string
	Bay          int
	Email        string
	Reference    string
	CreatedAt    time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		UserID:       uuid.New(),
		LocationID:   uuid.New(),
		LocationName: "Spark Sandton",
		ServiceID:    uuid.New(),
		ServiceName:  "Basic Wash",
		Date:         "2026-09-15",
		StartTime:    "09:00",
		EndTime:      "09:30",
		Bay:          1,
		Email:        "driver@example.com",
		Reference:    "ref_" + uuid.NewString()[:8],
		CreatedAt:    time.Now(),
	}
}

func (b *BookingBuilder) BuildReserveRequestDTO() reqdto.ReserveSlotRequest {
	return reqdto.ReserveSlotRequest{
		ServiceID:  b.ServiceID,
		LocationID: b.LocationID,
		Date:       b.Date,
		StartTime:  b.StartTime,
	}
}

func (b *BookingBuilder) BuildCheckoutRequestDTO() reqdto.StartCheckoutRequest {
	return reqdto.StartCheckoutRequest{
		ServiceID:  b.ServiceID,
		LocationID: b.LocationID,
		Date:       b.Date,
		StartTime:  b.StartTime,
		Email:      b.Email,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:               uuid.New(),
		UserID:           b.UserID,
		LocationID:       b.LocationID,
		LocationName:     b.LocationName,
		ServiceID:        b.ServiceID,
		ServiceName:      b.ServiceName,
		Date:             b.Date,
		StartTime:        b.StartTime,
		EndTime:          b.EndTime,
		Bay:              b.Bay,
		Status:           "committed",
		PaymentReference: b.Reference,
		CreatedAt:        b.CreatedAt,
	}
}

// Fluent builder methods
func (b *BookingBuilder) WithUserID(userID uuid.UUID) *BookingBuilder {
	b.UserID = userID
	return b
}

func (b *BookingBuilder) WithLocationID(locationID uuid.UUID) *BookingBuilder {
	b.LocationID = locationID
	return b
}

func (b *BookingBuilder) WithServiceID(serviceID uuid.UUID) *BookingBuilder {
	b.ServiceID = serviceID
	return b
}

func (b *BookingBuilder) WithDate(date string) *BookingBuilder {
	b.Date = date
	return b
}

func (b *BookingBuilder) WithStartTime(startTime string) *BookingBuilder {
	b.StartTime = startTime
	return b
}

func (b *BookingBuilder) WithEmail(email string) *BookingBuilder {
	b.Email = email
	return b
}

func (b *BookingBuilder) WithReference(reference string) *BookingBuilder {
	b.Reference = reference
	return b
}
