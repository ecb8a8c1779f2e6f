package repository

import (
	"context"

	"sparkwash-api/internal/domain/booking"
	"sparkwash-api/internal/infra"
	"sparkwash-api/internal/infra/db"
	"sparkwash-api/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const createBookingSQL = `
INSERT INTO bookings (
    id, user_id, location_id, service_id,
    date, start_min, duration_min, bay,
    status, payment_reference, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id`

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createBookingSQL,
		b.ID(),
		b.UserID(),
		b.LocationID(),
		b.ServiceID(),
		b.Date().Time(),
		b.StartSlot().Minutes(),
		b.Duration().Minutes(),
		b.Bay(),
		string(b.Status()),
		b.PaymentReference(),
		b.CreatedAt(),
	).Scan(&id)
	if err != nil {
		if pgconv.IsUniqueViolation(err) {
			return uuid.Nil, infra.WrapRepoErr("booking already recorded for payment reference", err, infra.KindDuplicateKey)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}
	return id, nil
}
