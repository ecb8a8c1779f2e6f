package queries

import (
	"context"

	"sparkwash-api/internal/domain/schedule"
	"sparkwash-api/internal/infra"
	"sparkwash-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrIntentNotFound = errs.New("payment intent not found")

type PaymentStatusView struct {
	Reference string     `json:"reference"`
	Status    string     `json:"status"`
	BookingID *uuid.UUID `json:"booking_id,omitempty"`
}

type BlockedSlotView struct {
	LocationID uuid.UUID `json:"location_id"`
	Date       string    `json:"date"`
	Slot       string    `json:"slot"`
}

type DaySettingsView struct {
	LocationID uuid.UUID `json:"location_id"`
	Date       string    `json:"date"`
	ActiveBays int       `json:"active_bays"`
}

// PaymentQueries serves the client's confirmation polling: the recorded
// reconciler state, not a live gateway call.
type PaymentQueries interface {
	Status(ctx context.Context, reference string) (*PaymentStatusView, error)
}

type ManagerScheduleQueries interface {
	BlockedSlots(ctx context.Context, locationID uuid.UUID, date string) ([]*BlockedSlotView, error)
	DaySettings(ctx context.Context, locationID uuid.UUID, date string) (*DaySettingsView, error)
}

type PaymentViewRepo interface {
	FindStatusByReference(ctx context.Context, reference string) (*PaymentStatusView, error)
}

type ManagerScheduleViewRepo interface {
	FindBlockedSlots(ctx context.Context, locationID uuid.UUID, date schedule.Date) ([]*BlockedSlotView, error)
	FindActiveBays(ctx context.Context, locationID uuid.UUID, date schedule.Date) (int, error)
}

type paymentQueriesImpl struct {
	repo PaymentViewRepo
}

func NewPaymentQueries(repo PaymentViewRepo) PaymentQueries {
	return &paymentQueriesImpl{repo: repo}
}

func (q *paymentQueriesImpl) Status(ctx context.Context, reference string) (*PaymentStatusView, error) {
	view, err := q.repo.FindStatusByReference(ctx, reference)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrIntentNotFound
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return view, nil
}

type managerScheduleQueriesImpl struct {
	repo ManagerScheduleViewRepo
}

func NewManagerScheduleQueries(repo ManagerScheduleViewRepo) ManagerScheduleQueries {
	return &managerScheduleQueriesImpl{repo: repo}
}

func (q *managerScheduleQueriesImpl) BlockedSlots(ctx context.Context, locationID uuid.UUID, date string) ([]*BlockedSlotView, error) {
	day, err := schedule.ParseDate(date)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidDate)
	}
	rows, err := q.repo.FindBlockedSlots(ctx, locationID, day)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return rows, nil
}

func (q *managerScheduleQueriesImpl) DaySettings(ctx context.Context, locationID uuid.UUID, date string) (*DaySettingsView, error) {
	day, err := schedule.ParseDate(date)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidDate)
	}
	bays, err := q.repo.FindActiveBays(ctx, locationID, day)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return &DaySettingsView{
		LocationID: locationID,
		Date:       date,
		ActiveBays: bays,
	}, nil
}
