package readstore

import (
	"context"

	"sparkwash-api/internal/domain/schedule"
	"sparkwash-api/internal/infra"
	"sparkwash-api/internal/infra/db"
	"sparkwash-api/internal/pkg/pgconv"
	"sparkwash-api/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	findLocationSQL = `
SELECT id, name, timezone, open_min, close_min, slot_interval_min, default_bays
FROM locations
WHERE id = $1`

	findServiceSQL = `
SELECT id, location_id, name, price_cents, duration_min, active
FROM services
WHERE id = $1`

	findActiveBaysSQL = `
SELECT active_bays
FROM day_settings
WHERE location_id = $1 AND date = $2`

	findBlockedMinutesSQL = `
SELECT slot_min
FROM blocked_slots
WHERE location_id = $1 AND date = $2`

	findCommittedIntervalsSQL = `
SELECT start_min, duration_min, bay
FROM bookings
WHERE location_id = $1 AND date = $2 AND status = 'committed'`
)

// ScheduleReadStore assembles the availability snapshot and the reference
// lookups both command validation and the availability query run on.
type ScheduleReadStore struct {
	db db.DBTX
}

func NewScheduleReadStore(dbtx db.DBTX) *ScheduleReadStore {
	return &ScheduleReadStore{db: dbtx}
}

func (r *ScheduleReadStore) LocationByID(ctx context.Context, id uuid.UUID) (*shared.LocationSnapshot, error) {
	var (
		name        string
		timezone    string
		openMin     int
		closeMin    int
		intervalMin int
		defaultBays int
	)
	err := r.db.QueryRow(ctx, findLocationSQL, id).Scan(&id, &name, &timezone, &openMin, &closeMin, &intervalMin, &defaultBays)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("location not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find location", err)
	}

	hours, err := operatingHours(openMin, closeMin, intervalMin)
	if err != nil {
		return nil, err
	}
	return &shared.LocationSnapshot{
		ID:          id,
		Name:        name,
		Timezone:    timezone,
		Hours:       hours,
		DefaultBays: defaultBays,
	}, nil
}

func (r *ScheduleReadStore) ServiceByID(ctx context.Context, id uuid.UUID) (*shared.ServiceSnapshot, error) {
	var (
		locationID  uuid.UUID
		name        string
		priceCents  int64
		durationMin int
		active      bool
	)
	err := r.db.QueryRow(ctx, findServiceSQL, id).Scan(&id, &locationID, &name, &priceCents, &durationMin, &active)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("service not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find service", err)
	}

	duration, err := schedule.NewDuration(durationMin)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt service duration", err)
	}
	return &shared.ServiceSnapshot{
		ID:         id,
		LocationID: locationID,
		Name:       name,
		Duration:   duration,
		PriceCents: priceCents,
		Active:     active,
	}, nil
}

func (r *ScheduleReadStore) ServiceDuration(ctx context.Context, serviceID uuid.UUID) (schedule.Duration, error) {
	svc, err := r.ServiceByID(ctx, serviceID)
	if err != nil {
		return schedule.Duration{}, err
	}
	return svc.Duration, nil
}

// Snapshot reads hours, active bays, blocked slots and committed bookings in
// that order. Inside a transaction holding the schedule lock the result is
// authoritative; on the lock-free read path it is advisory.
func (r *ScheduleReadStore) Snapshot(ctx context.Context, locationID uuid.UUID, date schedule.Date) (*schedule.Snapshot, error) {
	loc, err := r.LocationByID(ctx, locationID)
	if err != nil {
		return nil, err
	}

	bays := loc.DefaultBays
	err = r.db.QueryRow(ctx, findActiveBaysSQL, locationID, date.Time()).Scan(&bays)
	if err != nil && !pgconv.IsNoRows(err) {
		return nil, infra.WrapRepoErr("failed to read day settings", err)
	}

	blocked, err := r.blockedSet(ctx, locationID, date)
	if err != nil {
		return nil, err
	}

	booked, err := r.committedIntervals(ctx, locationID, date)
	if err != nil {
		return nil, err
	}

	return &schedule.Snapshot{
		Hours:      loc.Hours,
		ActiveBays: bays,
		Blocked:    blocked,
		Booked:     booked,
	}, nil
}

func (r *ScheduleReadStore) blockedSet(ctx context.Context, locationID uuid.UUID, date schedule.Date) (map[schedule.Slot]struct{}, error) {
	rows, err := r.db.Query(ctx, findBlockedMinutesSQL, locationID, date.Time())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read blocked slots", err)
	}
	defer rows.Close()

	blocked := make(map[schedule.Slot]struct{})
	for rows.Next() {
		var slotMin int
		if err := rows.Scan(&slotMin); err != nil {
			return nil, infra.WrapRepoErr("failed to scan blocked slot", err)
		}
		slot, err := schedule.NewSlot(slotMin)
		if err != nil {
			return nil, infra.WrapRepoErr("corrupt blocked slot", err)
		}
		blocked[slot] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read blocked slots", err)
	}
	return blocked, nil
}

func (r *ScheduleReadStore) committedIntervals(ctx context.Context, locationID uuid.UUID, date schedule.Date) ([]schedule.BookedInterval, error) {
	rows, err := r.db.Query(ctx, findCommittedIntervalsSQL, locationID, date.Time())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read committed bookings", err)
	}
	defer rows.Close()

	var booked []schedule.BookedInterval
	for rows.Next() {
		var startMin, durationMin, bay int
		if err := rows.Scan(&startMin, &durationMin, &bay); err != nil {
			return nil, infra.WrapRepoErr("failed to scan committed booking", err)
		}
		slot, err := schedule.NewSlot(startMin)
		if err != nil {
			return nil, infra.WrapRepoErr("corrupt booking start slot", err)
		}
		duration, err := schedule.NewDuration(durationMin)
		if err != nil {
			return nil, infra.WrapRepoErr("corrupt booking duration", err)
		}
		booked = append(booked, schedule.BookedInterval{
			Interval: schedule.NewInterval(slot, duration),
			Bay:      bay,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read committed bookings", err)
	}
	return booked, nil
}

func operatingHours(openMin, closeMin, intervalMin int) (schedule.OperatingHours, error) {
	open, err := schedule.NewSlot(openMin)
	if err != nil {
		return schedule.OperatingHours{}, infra.WrapRepoErr("corrupt location open time", err)
	}
	closeAt, err := schedule.NewSlot(closeMin)
	if err != nil {
		return schedule.OperatingHours{}, infra.WrapRepoErr("corrupt location close time", err)
	}
	hours, err := schedule.NewOperatingHours(open, closeAt, intervalMin)
	if err != nil {
		return schedule.OperatingHours{}, infra.WrapRepoErr("corrupt operating hours", err)
	}
	return hours, nil
}
