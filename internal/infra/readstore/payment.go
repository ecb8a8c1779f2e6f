package readstore

import (
	"context"

	"sparkwash-api/internal/domain/schedule"
	"sparkwash-api/internal/infra"
	"sparkwash-api/internal/infra/db"
	"sparkwash-api/internal/pkg/pgconv"
	"sparkwash-api/internal/usecase/queries"

	"github.com/google/uuid"
)

const (
	findIntentStatusSQL = `
SELECT reference, status, booking_id
FROM payment_intents
WHERE reference = $1`

	listBlockedSlotsSQL = `
SELECT slot_min
FROM blocked_slots
WHERE location_id = $1 AND date = $2
ORDER BY slot_min`

	findDayBaysSQL = `
SELECT COALESCE(ds.active_bays, l.default_bays)
FROM locations l
LEFT JOIN day_settings ds ON ds.location_id = l.id AND ds.date = $2
WHERE l.id = $1`
)

type PaymentReadStore struct {
	db db.DBTX
}

func NewPaymentReadStore(dbtx db.DBTX) *PaymentReadStore {
	return &PaymentReadStore{db: dbtx}
}

func (r *PaymentReadStore) FindStatusByReference(ctx context.Context, reference string) (*queries.PaymentStatusView, error) {
	var view queries.PaymentStatusView
	err := r.db.QueryRow(ctx, findIntentStatusSQL, reference).Scan(&view.Reference, &view.Status, &view.BookingID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment intent not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read payment status", err)
	}
	return &view, nil
}

type ManagerScheduleReadStore struct {
	db db.DBTX
}

func NewManagerScheduleReadStore(dbtx db.DBTX) *ManagerScheduleReadStore {
	return &ManagerScheduleReadStore{db: dbtx}
}

func (r *ManagerScheduleReadStore) FindBlockedSlots(ctx context.Context, locationID uuid.UUID, date schedule.Date) ([]*queries.BlockedSlotView, error) {
	rows, err := r.db.Query(ctx, listBlockedSlotsSQL, locationID, date.Time())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list blocked slots", err)
	}
	defer rows.Close()

	out := make([]*queries.BlockedSlotView, 0)
	for rows.Next() {
		var slotMin int
		if err := rows.Scan(&slotMin); err != nil {
			return nil, infra.WrapRepoErr("failed to scan blocked slot", err)
		}
		slot, err := schedule.NewSlot(slotMin)
		if err != nil {
			return nil, infra.WrapRepoErr("corrupt blocked slot", err)
		}
		out = append(out, &queries.BlockedSlotView{
			LocationID: locationID,
			Date:       date.String(),
			Slot:       slot.String(),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list blocked slots", err)
	}
	return out, nil
}

func (r *ManagerScheduleReadStore) FindActiveBays(ctx context.Context, locationID uuid.UUID, date schedule.Date) (int, error) {
	var bays int
	err := r.db.QueryRow(ctx, findDayBaysSQL, locationID, date.Time()).Scan(&bays)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return 0, infra.WrapRepoErr("location not found", err, infra.KindNotFound)
		}
		return 0, infra.WrapRepoErr("failed to read day settings", err)
	}
	return bays, nil
}
