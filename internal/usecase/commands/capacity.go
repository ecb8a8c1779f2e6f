package commands

import (
	"context"

	"sparkwash-api/internal/domain/schedule"
	reqdto "sparkwash-api/internal/handler/dto/request"
	"sparkwash-api/internal/infra"
	"sparkwash-api/internal/pkg/errs"
	"sparkwash-api/internal/usecase/shared"
)

var (
	ErrInvalidBayCount  = errs.New("invalid bay count")
	ErrCapacityConflict = errs.New("bay count below committed peak")
)

type SetActiveBaysResult struct {
	ActiveBays    int
	PeakCommitted int
	Overridden    bool
}

// CapacityCommands manages the per-day active bay count. Shrinking below the
// day's committed peak needs an explicit override; the override leaves prior
// commitments untouched and only constrains new bookings.
type CapacityCommands interface {
	SetActiveBays(ctx context.Context, req reqdto.SetActiveBaysRequest) (*SetActiveBaysResult, error)
}

type capacityUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewCapacityUseCase(uow shared.UnitOfWork) CapacityCommands {
	return &capacityUseCaseImpl{uow: uow}
}

func (c *capacityUseCaseImpl) SetActiveBays(
	ctx context.Context,
	req reqdto.SetActiveBaysRequest,
) (*SetActiveBaysResult, error) {
	if req.ActiveBays < 1 {
		return nil, ErrInvalidBayCount
	}
	date, err := req.ParsedDate()
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidTimeSlot)
	}

	var result *SetActiveBaysResult
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.LockSchedule(ctx, req.LocationID, date); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		snap, err := tx.Reads().ScheduleSnapshot(ctx, req.LocationID, date)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrLocationNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		peak := schedule.PeakConcurrent(snap.Hours, snap.Booked)
		if req.ActiveBays < peak && !req.Override {
			result = &SetActiveBaysResult{PeakCommitted: peak}
			return ErrCapacityConflict
		}

		if err := tx.DaySettings().SetActiveBays(ctx, tx.DB(), req.LocationID, date, req.ActiveBays); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		result = &SetActiveBaysResult{
			ActiveBays:    req.ActiveBays,
			PeakCommitted: peak,
			Overridden:    req.ActiveBays < peak,
		}
		return nil
	})
	if err != nil {
		// The conflict result carries the peak so the caller can render the
		// override confirmation.
		return result, err
	}
	return result, nil
}
