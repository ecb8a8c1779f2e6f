package queries

import (
	"context"
	"time"

	"sparkwash-api/internal/domain/schedule"
	"sparkwash-api/internal/infra"
	"sparkwash-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrNotBookingOwner = errs.New("booking belongs to another user")
)

// Read models (DTO for read side)
type BookingView struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"user_id"`
	LocationID       uuid.UUID `json:"location_id"`
	LocationName     string    `json:"location_name"`
	ServiceID        uuid.UUID `json:"service_id"`
	ServiceName      string    `json:"service_name"`
	Date             string    `json:"date"`
	StartTime        string    `json:"start_time"`
	EndTime          string    `json:"end_time"`
	Bay              int       `json:"bay"`
	Status           string    `json:"status"`
	PaymentReference string    `json:"payment_reference"`
	CreatedAt        time.Time `json:"created_at"`
}

type ManagerBookingItem struct {
	ID          uuid.UUID `json:"id"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	Bay         int       `json:"bay"`
	ServiceName string    `json:"service_name"`
	ClientEmail string    `json:"client_email"`
	Status      string    `json:"status"`
}

type ServiceSummaryRow struct {
	ServiceID   uuid.UUID `json:"service_id"`
	ServiceName string    `json:"service_name"`
	Bookings    int       `json:"bookings"`
}

type BookingQueries interface {
	GetByID(ctx context.Context, actor uuid.UUID, isManager bool, id uuid.UUID) (*BookingView, error)
	// GetByIDSystem bypasses ownership checks for internal read-after-write.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ManagerDay(ctx context.Context, locationID uuid.UUID, date string) ([]*ManagerBookingItem, error)
	MonthlySummary(ctx context.Context, locationID uuid.UUID, year, month int) ([]*ServiceSummaryRow, error)
}

type BookingViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByLocationDate(ctx context.Context, locationID uuid.UUID, date schedule.Date) ([]*ManagerBookingItem, error)
	SummarizeMonth(ctx context.Context, locationID uuid.UUID, year, month int) ([]*ServiceSummaryRow, error)
}

type bookingQueriesImpl struct {
	repo BookingViewRepo
}

func NewBookingQueries(repo BookingViewRepo) BookingQueries {
	return &bookingQueriesImpl{repo: repo}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actor uuid.UUID, isManager bool, id uuid.UUID) (*BookingView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	if !isManager && view.UserID != actor {
		return nil, ErrNotBookingOwner
	}
	return view, nil
}

func (q *bookingQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return view, nil
}

func (q *bookingQueriesImpl) ManagerDay(ctx context.Context, locationID uuid.UUID, date string) ([]*ManagerBookingItem, error) {
	day, err := schedule.ParseDate(date)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidDate)
	}
	rows, err := q.repo.FindByLocationDate(ctx, locationID, day)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return rows, nil
}

func (q *bookingQueriesImpl) MonthlySummary(ctx context.Context, locationID uuid.UUID, year, month int) ([]*ServiceSummaryRow, error) {
	if month < 1 || month > 12 || year < 2000 {
		return nil, ErrInvalidDate
	}
	rows, err := q.repo.SummarizeMonth(ctx, locationID, year, month)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return rows, nil
}
