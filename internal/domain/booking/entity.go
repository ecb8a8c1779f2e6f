package booking

import (
	"errors"
	"time"

	"sparkwash-api/internal/domain/schedule"

	"github.com/google/uuid"
)

var (
	ErrInvalidBay   = errors.New("invalid bay assignment")
	ErrNotPending   = errors.New("booking is not pending")
	ErrMissingUser  = errors.New("booking requires a user")
	ErrMissingDraft = errors.New("booking draft is incomplete")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCommitted Status = "committed"
	StatusCancelled Status = "cancelled"
)

// Draft is the advisory booking intent captured at checkout start. It holds
// no capacity; it only records what should be committed once the payment
// confirms. The draft travels inside the PaymentIntent so confirmation is
// self-contained.
type Draft struct {
	UserID     uuid.UUID
	LocationID uuid.UUID
	ServiceID  uuid.UUID
	Date       schedule.Date
	StartSlot  schedule.Slot
	Duration   schedule.Duration
}

func NewDraft(userID, locationID, serviceID uuid.UUID, date schedule.Date, start schedule.Slot, d schedule.Duration) (Draft, error) {
	if userID == uuid.Nil {
		return Draft{}, ErrMissingUser
	}
	if locationID == uuid.Nil || serviceID == uuid.Nil || date.IsZero() {
		return Draft{}, ErrMissingDraft
	}
	return Draft{
		UserID:     userID,
		LocationID: locationID,
		ServiceID:  serviceID,
		Date:       date,
		StartSlot:  start,
		Duration:   d,
	}, nil
}

func (d Draft) Interval() schedule.Interval {
	return schedule.NewInterval(d.StartSlot, d.Duration)
}

// Booking is a committed ledger entry. Only committed bookings are persisted;
// failed or expired checkouts never reach the ledger.
type Booking struct {
	id        uuid.UUID
	draft     Draft
	bay       int
	status    Status
	reference string
	createdAt time.Time
}

// Commit turns a draft into a committed booking on the given bay. The caller
// has already re-validated availability under the schedule lock.
func Commit(draft Draft, bay int, paymentReference string, now time.Time) (*Booking, error) {
	if bay < 1 {
		return nil, ErrInvalidBay
	}
	if paymentReference == "" {
		return nil, ErrMissingDraft
	}
	return &Booking{
		id:        uuid.New(),
		draft:     draft,
		bay:       bay,
		status:    StatusCommitted,
		reference: paymentReference,
		createdAt: now,
	}, nil
}

func Reconstruct(id uuid.UUID, draft Draft, bay int, status Status, reference string, createdAt time.Time) *Booking {
	return &Booking{
		id:        id,
		draft:     draft,
		bay:       bay,
		status:    status,
		reference: reference,
		createdAt: createdAt,
	}
}

func (b *Booking) ID() uuid.UUID               { return b.id }
func (b *Booking) UserID() uuid.UUID           { return b.draft.UserID }
func (b *Booking) LocationID() uuid.UUID       { return b.draft.LocationID }
func (b *Booking) ServiceID() uuid.UUID        { return b.draft.ServiceID }
func (b *Booking) Date() schedule.Date         { return b.draft.Date }
func (b *Booking) StartSlot() schedule.Slot    { return b.draft.StartSlot }
func (b *Booking) Duration() schedule.Duration { return b.draft.Duration }
func (b *Booking) Interval() schedule.Interval { return b.draft.Interval() }
func (b *Booking) Bay() int                    { return b.bay }
func (b *Booking) Status() Status              { return b.status }
func (b *Booking) PaymentReference() string    { return b.reference }
func (b *Booking) CreatedAt() time.Time        { return b.createdAt }

func (b *Booking) IsCommitted() bool {
	return b.status == StatusCommitted
}
