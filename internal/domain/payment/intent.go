package payment

import (
	"errors"
	"time"

	"sparkwash-api/internal/domain/booking"

	"github.com/google/uuid"
)

var (
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrMissingEmail     = errors.New("payer email required")
	ErrMissingReference = errors.New("gateway reference required")
	ErrNotClaimable     = errors.New("intent is not awaiting confirmation")
	ErrAlreadyTerminal  = errors.New("intent is already terminal")
	ErrLateConfirmation = errors.New("confirmation arrived after expiry")
	ErrCancelNotAllowed = errors.New("intent can no longer be cancelled")
)

type Status string

const (
	// StatusCreated: intent issued to the gateway, redirect not yet followed.
	StatusCreated Status = "created"
	// StatusAwaiting: customer is on the hosted payment page; poller running.
	StatusAwaiting Status = "awaiting_confirmation"
	// StatusConfirmed: gateway reported success; commit claimed but not done.
	StatusConfirmed Status = "confirmed"
	// StatusCommitted: terminal success, booking written.
	StatusCommitted Status = "committed"
	StatusFailed    Status = "failed"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
	// StatusNeedsReview: money may have moved but no booking exists
	// (commit lost a race, or success arrived after expiry). Escalated to a
	// human, never silently dropped.
	StatusNeedsReview Status = "needs_review"
)

func (s Status) IsTerminal() bool {
	switch s {
	case StatusCommitted, StatusFailed, StatusNeedsReview:
		return true
	}
	return false
}

// Intent bridges one gateway checkout to at most one booking commit. The
// booking draft is captured verbatim at creation so a later confirmation is
// self-contained.
type Intent struct {
	reference     string
	amountCents   int64
	email         string
	draft         booking.Draft
	status        Status
	bookingID     *uuid.UUID
	failureReason string
	createdAt     time.Time
	updatedAt     time.Time
}

func NewIntent(reference string, amountCents int64, email string, draft booking.Draft, now time.Time) (*Intent, error) {
	if reference == "" {
		return nil, ErrMissingReference
	}
	if amountCents <= 0 {
		return nil, ErrInvalidAmount
	}
	if email == "" {
		return nil, ErrMissingEmail
	}
	return &Intent{
		reference:   reference,
		amountCents: amountCents,
		email:       email,
		draft:       draft,
		status:      StatusCreated,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// MarkAwaiting records that the customer was handed the hosted payment page
// and the confirmation poller is running.
func (i *Intent) MarkAwaiting(now time.Time) error {
	if i.status != StatusCreated {
		return ErrNotClaimable
	}
	i.status = StatusAwaiting
	i.updatedAt = now
	return nil
}

func Reconstruct(reference string, amountCents int64, email string, draft booking.Draft, status Status, bookingID *uuid.UUID, failureReason string, createdAt, updatedAt time.Time) *Intent {
	return &Intent{
		reference:     reference,
		amountCents:   amountCents,
		email:         email,
		draft:         draft,
		status:        status,
		bookingID:     bookingID,
		failureReason: failureReason,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (i *Intent) Reference() string     { return i.reference }
func (i *Intent) AmountCents() int64    { return i.amountCents }
func (i *Intent) Email() string         { return i.email }
func (i *Intent) Draft() booking.Draft  { return i.draft }
func (i *Intent) Status() Status        { return i.status }
func (i *Intent) BookingID() *uuid.UUID { return i.bookingID }
func (i *Intent) FailureReason() string { return i.failureReason }
func (i *Intent) CreatedAt() time.Time  { return i.createdAt }
func (i *Intent) UpdatedAt() time.Time  { return i.updatedAt }

// Claimable reports whether a gateway success may proceed to commit.
// Cancelled intents stay claimable: cancellation stops the poller but cannot
// retract money that already moved.
func (i *Intent) Claimable() bool {
	return i.status == StatusCreated || i.status == StatusAwaiting || i.status == StatusCancelled
}

// Confirm transitions to Confirmed on the first observed gateway success.
// Duplicate confirmations and late signals are rejected here; the storage
// layer enforces the same guard with a conditional update.
func (i *Intent) Confirm(now time.Time) error {
	switch {
	case i.Claimable():
		i.status = StatusConfirmed
		i.updatedAt = now
		return nil
	case i.status == StatusConfirmed, i.status == StatusCommitted:
		return ErrAlreadyTerminal
	case i.status == StatusExpired:
		return ErrLateConfirmation
	default:
		return ErrNotClaimable
	}
}

func (i *Intent) MarkCommitted(bookingID uuid.UUID, now time.Time) error {
	if i.status != StatusConfirmed {
		return ErrNotClaimable
	}
	i.status = StatusCommitted
	i.bookingID = &bookingID
	i.updatedAt = now
	return nil
}

func (i *Intent) MarkFailed(reason string, now time.Time) {
	i.status = StatusFailed
	i.failureReason = reason
	i.updatedAt = now
}

// Expire is called by the poller at its deadline. The payment page may still
// complete later; a success signal after this lands in NeedsReview.
func (i *Intent) Expire(now time.Time) error {
	if !i.Claimable() {
		return ErrNotClaimable
	}
	i.status = StatusExpired
	i.updatedAt = now
	return nil
}

func (i *Intent) Cancel(now time.Time) error {
	if i.status != StatusCreated && i.status != StatusAwaiting {
		return ErrCancelNotAllowed
	}
	i.status = StatusCancelled
	i.updatedAt = now
	return nil
}

// MarkNeedsReview records a confirmed payment that could not be converted
// into a booking. Escalation, not retry: retrying a payment is not
// idempotent from the customer's perspective.
func (i *Intent) MarkNeedsReview(reason string, now time.Time) {
	i.status = StatusNeedsReview
	i.failureReason = reason
	i.updatedAt = now
}
