package commands

import (
	"context"

	"sparkwash-api/internal/domain/booking"
	reqdto "sparkwash-api/internal/handler/dto/request"
	"sparkwash-api/internal/infra"
	"sparkwash-api/internal/pkg/clock"
	"sparkwash-api/internal/pkg/errs"
	"sparkwash-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrLocationNotFound        = errs.New("location not found")
	ErrServiceNotFound         = errs.New("service not found")
	ErrServiceInactive         = errs.New("service is not offered")
	ErrInvalidTimeSlot         = errs.New("invalid time slot")
	ErrSlotUnavailable         = errs.New("slot unavailable")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type ReserveResult struct {
	Draft      booking.Draft
	PriceCents int64
}

// ReservationCommands coordinates slot reservation. Reserve re-validates
// availability at call time and returns an advisory draft that consumes no
// capacity; Commit is the single ledger mutation point, invoked only by the
// payment reconciler inside its claiming transaction.
type ReservationCommands interface {
	Reserve(ctx context.Context, req reqdto.ReserveSlotRequest, userID uuid.UUID) (*ReserveResult, error)
	Commit(ctx context.Context, tx shared.Tx, draft booking.Draft, paymentReference string) (uuid.UUID, error)
}

type reservationUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewReservationUseCase(uow shared.UnitOfWork, clock clock.Clock) ReservationCommands {
	return &reservationUseCaseImpl{
		uow:   uow,
		clock: clock,
	}
}

// Reserve closes the render-to-request race window by re-running the
// availability predicate against a fresh snapshot. The snapshot may still go
// stale before payment confirms; Commit re-validates under the schedule lock.
func (r *reservationUseCaseImpl) Reserve(
	ctx context.Context,
	req reqdto.ReserveSlotRequest,
	userID uuid.UUID,
) (*ReserveResult, error) {
	reads := r.uow.CommandReads()

	svc, err := r.validateService(ctx, reads, req.ServiceID, req.LocationID)
	if err != nil {
		return nil, err
	}

	draft, err := req.ToDraft(userID, svc.Duration)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidTimeSlot)
	}

	snap, err := reads.ScheduleSnapshot(ctx, draft.LocationID, draft.Date)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if !snap.CanFit(draft.StartSlot, draft.Duration) {
		return nil, ErrSlotUnavailable
	}

	return &ReserveResult{
		Draft:      draft,
		PriceCents: svc.PriceCents,
	}, nil
}

// Commit performs the atomic re-check-and-write: under the per-(location,
// date) schedule lock it re-validates availability against the current
// ledger, assigns the lowest free bay over the whole interval and inserts the
// committed booking. A lost race surfaces as ErrSlotUnavailable; the caller
// escalates and never retries the write.
func (r *reservationUseCaseImpl) Commit(
	ctx context.Context,
	tx shared.Tx,
	draft booking.Draft,
	paymentReference string,
) (uuid.UUID, error) {
	if err := tx.LockSchedule(ctx, draft.LocationID, draft.Date); err != nil {
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	snap, err := tx.Reads().ScheduleSnapshot(ctx, draft.LocationID, draft.Date)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if !snap.CanFit(draft.StartSlot, draft.Duration) {
		return uuid.Nil, ErrSlotUnavailable
	}

	bay, ok := snap.AssignBay(draft.Interval())
	if !ok {
		return uuid.Nil, ErrSlotUnavailable
	}

	entity, err := booking.Commit(draft, bay, paymentReference, r.clock.Now())
	if err != nil {
		return uuid.Nil, err
	}

	bookingID, err := tx.Bookings().Create(ctx, tx.DB(), entity)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return bookingID, nil
}

func (r *reservationUseCaseImpl) validateService(
	ctx context.Context,
	reads shared.CommandReads,
	serviceID, locationID uuid.UUID,
) (*shared.ServiceSnapshot, error) {
	svc, err := reads.ServiceByID(ctx, serviceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if svc.LocationID != locationID {
		return nil, ErrServiceNotFound
	}
	if !svc.Active {
		return nil, ErrServiceInactive
	}
	return svc, nil
}
