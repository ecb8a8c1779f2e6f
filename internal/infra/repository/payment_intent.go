package repository

import (
	"context"
	"time"

	"sparkwash-api/internal/domain/booking"
	"sparkwash-api/internal/domain/payment"
	"sparkwash-api/internal/domain/schedule"
	"sparkwash-api/internal/infra"
	"sparkwash-api/internal/infra/db"
	"sparkwash-api/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const (
	createIntentSQL = `
INSERT INTO payment_intents (
    reference, amount_cents, email, status,
    user_id, location_id, service_id, date, start_min, duration_min,
    booking_id, failure_reason, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	updateIntentSQL = `
UPDATE payment_intents
SET status = $2, booking_id = $3, failure_reason = $4, updated_at = $5
WHERE reference = $1`

	findIntentSQL = `
SELECT reference, amount_cents, email, status,
       user_id, location_id, service_id, date, start_min, duration_min,
       booking_id, failure_reason, created_at, updated_at
FROM payment_intents
WHERE reference = $1`

	findIntentForUpdateSQL = findIntentSQL + `
FOR UPDATE`

	// Mirrors Intent.Claimable: cancelled stays claimable because money that
	// already moved cannot be retracted by cancellation.
	claimConfirmSQL = `
UPDATE payment_intents
SET status = $1, updated_at = $2
WHERE reference = $3 AND status = ANY($4)`
)

type PaymentIntentRepository struct{}

func NewPaymentIntentRepository() *PaymentIntentRepository {
	return &PaymentIntentRepository{}
}

func (r *PaymentIntentRepository) Create(ctx context.Context, tx db.DBTX, intent *payment.Intent) error {
	draft := intent.Draft()
	_, err := tx.Exec(ctx, createIntentSQL,
		intent.Reference(),
		intent.AmountCents(),
		intent.Email(),
		string(intent.Status()),
		draft.UserID,
		draft.LocationID,
		draft.ServiceID,
		draft.Date.Time(),
		draft.StartSlot.Minutes(),
		draft.Duration.Minutes(),
		intent.BookingID(),
		intent.FailureReason(),
		intent.CreatedAt(),
		intent.UpdatedAt(),
	)
	if err != nil {
		if pgconv.IsUniqueViolation(err) {
			return infra.WrapRepoErr("payment intent already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create payment intent", err)
	}
	return nil
}

func (r *PaymentIntentRepository) Update(ctx context.Context, tx db.DBTX, intent *payment.Intent) error {
	tag, err := tx.Exec(ctx, updateIntentSQL,
		intent.Reference(),
		string(intent.Status()),
		intent.BookingID(),
		intent.FailureReason(),
		intent.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update payment intent", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("payment intent not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *PaymentIntentRepository) FindByReference(ctx context.Context, tx db.DBTX, reference string) (*payment.Intent, error) {
	return r.findIntent(ctx, tx, findIntentSQL, reference)
}

// FindByReferenceForUpdate locks the row until the transaction ends so a
// concurrent confirmation cannot flip the status between read and write.
func (r *PaymentIntentRepository) FindByReferenceForUpdate(ctx context.Context, tx db.DBTX, reference string) (*payment.Intent, error) {
	return r.findIntent(ctx, tx, findIntentForUpdateSQL, reference)
}

func (r *PaymentIntentRepository) findIntent(ctx context.Context, tx db.DBTX, sql string, reference string) (*payment.Intent, error) {
	var (
		ref           string
		amountCents   int64
		email         string
		status        string
		userID        uuid.UUID
		locationID    uuid.UUID
		serviceID     uuid.UUID
		date          time.Time
		startMin      int
		durationMin   int
		bookingID     *uuid.UUID
		failureReason string
		createdAt     time.Time
		updatedAt     time.Time
	)
	err := tx.QueryRow(ctx, sql, reference).Scan(
		&ref, &amountCents, &email, &status,
		&userID, &locationID, &serviceID, &date, &startMin, &durationMin,
		&bookingID, &failureReason, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment intent not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find payment intent", err)
	}

	slot, err := schedule.NewSlot(startMin)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt start slot on payment intent", err)
	}
	duration, err := schedule.NewDuration(durationMin)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt duration on payment intent", err)
	}

	draft := booking.Draft{
		UserID:     userID,
		LocationID: locationID,
		ServiceID:  serviceID,
		Date:       schedule.DateOf(date),
		StartSlot:  slot,
		Duration:   duration,
	}
	return payment.Reconstruct(ref, amountCents, email, draft, payment.Status(status), bookingID, failureReason, createdAt, updatedAt), nil
}

func (r *PaymentIntentRepository) ClaimConfirm(ctx context.Context, tx db.DBTX, reference string, now time.Time) (bool, error) {
	claimable := []string{
		string(payment.StatusCreated),
		string(payment.StatusAwaiting),
		string(payment.StatusCancelled),
	}
	tag, err := tx.Exec(ctx, claimConfirmSQL, string(payment.StatusConfirmed), now, reference, claimable)
	if err != nil {
		return false, infra.WrapRepoErr("failed to claim payment confirmation", err)
	}
	return tag.RowsAffected() == 1, nil
}
