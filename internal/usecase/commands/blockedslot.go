package commands

import (
	"context"

	reqdto "sparkwash-api/internal/handler/dto/request"
	"sparkwash-api/internal/infra"
	"sparkwash-api/internal/pkg/errs"
	"sparkwash-api/internal/usecase/shared"
)

var ErrBlockedSlotConflict = errs.New("slot overlaps a committed booking")

// BlockedSlotCommands maintains manager slot exclusions. Both operations are
// idempotent and serialize through the schedule lock so a block can never
// slip past a concurrent commit.
type BlockedSlotCommands interface {
	Block(ctx context.Context, req reqdto.BlockSlotRequest) error
	Unblock(ctx context.Context, req reqdto.BlockSlotRequest) error
}

type blockedSlotUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewBlockedSlotUseCase(uow shared.UnitOfWork) BlockedSlotCommands {
	return &blockedSlotUseCaseImpl{uow: uow}
}

func (b *blockedSlotUseCaseImpl) Block(ctx context.Context, req reqdto.BlockSlotRequest) error {
	date, slot, err := req.Parsed()
	if err != nil {
		return errs.Mark(err, ErrInvalidTimeSlot)
	}

	return b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
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

		for _, committed := range snap.Booked {
			if committed.Interval.Covers(slot) {
				return ErrBlockedSlotConflict
			}
		}

		if err := tx.BlockedSlots().Block(ctx, tx.DB(), req.LocationID, date, slot); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (b *blockedSlotUseCaseImpl) Unblock(ctx context.Context, req reqdto.BlockSlotRequest) error {
	date, slot, err := req.Parsed()
	if err != nil {
		return errs.Mark(err, ErrInvalidTimeSlot)
	}

	return b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.LockSchedule(ctx, req.LocationID, date); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := tx.BlockedSlots().Unblock(ctx, tx.DB(), req.LocationID, date, slot); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}
