package queries

import (
	"context"

	"sparkwash-api/internal/domain/schedule"
	"sparkwash-api/internal/infra"
	"sparkwash-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrLocationNotFound = errs.New("location not found")
	ErrServiceNotFound  = errs.New("service not found")
	ErrInvalidDate      = errs.New("invalid date")
	ErrQueryFailed      = errs.New("query failed")
)

// AvailabilityQueries lists bookable start slots. The single availability
// predicate also guards reserve and commit; this read path only differs in
// running lock-free against a possibly stale snapshot.
type AvailabilityQueries interface {
	AvailableSlots(ctx context.Context, locationID uuid.UUID, date string, serviceID *uuid.UUID) ([]string, error)
}

type ScheduleViewRepo interface {
	Snapshot(ctx context.Context, locationID uuid.UUID, date schedule.Date) (*schedule.Snapshot, error)
	ServiceDuration(ctx context.Context, serviceID uuid.UUID) (schedule.Duration, error)
}

type availabilityQueriesImpl struct {
	repo ScheduleViewRepo
}

func NewAvailabilityQueries(repo ScheduleViewRepo) AvailabilityQueries {
	return &availabilityQueriesImpl{repo: repo}
}

// AvailableSlots recomputes availability on every call; staleness across
// mutations directly causes double bookings, so nothing here is cached.
// Without a service the base interval duration is assumed, matching the
// client's unfiltered day view.
func (q *availabilityQueriesImpl) AvailableSlots(
	ctx context.Context,
	locationID uuid.UUID,
	date string,
	serviceID *uuid.UUID,
) ([]string, error) {
	day, err := schedule.ParseDate(date)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidDate)
	}

	duration, err := schedule.NewDuration(schedule.SlotIntervalMin)
	if err != nil {
		return nil, err
	}
	if serviceID != nil {
		duration, err = q.repo.ServiceDuration(ctx, *serviceID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, ErrServiceNotFound
			}
			return nil, errs.Mark(err, ErrQueryFailed)
		}
	}

	snap, err := q.repo.Snapshot(ctx, locationID, day)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}

	slots := snap.AvailableStartSlots(duration)
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.String()
	}
	return out, nil
}
