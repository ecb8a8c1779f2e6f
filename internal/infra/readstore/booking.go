package readstore

import (
	"context"
	"time"

	"sparkwash-api/internal/domain/schedule"
	"sparkwash-api/internal/infra"
	"sparkwash-api/internal/infra/db"
	"sparkwash-api/internal/pkg/pgconv"
	"sparkwash-api/internal/usecase/queries"

	"github.com/google/uuid"
)

const (
	findBookingViewSQL = `
SELECT b.id, b.user_id, b.location_id, l.name, b.service_id, s.name,
       b.date, b.start_min, b.duration_min, b.bay, b.status,
       b.payment_reference, b.created_at
FROM bookings b
JOIN locations l ON l.id = b.location_id
JOIN services s ON s.id = b.service_id
WHERE b.id = $1`

	findDayScheduleSQL = `
SELECT b.id, b.start_min, b.duration_min, b.bay, s.name,
       COALESCE(pi.email, ''), b.status
FROM bookings b
JOIN services s ON s.id = b.service_id
LEFT JOIN payment_intents pi ON pi.reference = b.payment_reference
WHERE b.location_id = $1 AND b.date = $2 AND b.status = 'committed'
ORDER BY b.start_min, b.bay`

	summarizeMonthSQL = `
SELECT s.id, s.name, COUNT(*)
FROM bookings b
JOIN services s ON s.id = b.service_id
WHERE b.location_id = $1
  AND b.status = 'committed'
  AND date_part('year', b.date) = $2
  AND date_part('month', b.date) = $3
GROUP BY s.id, s.name
ORDER BY s.name`
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	var (
		view        queries.BookingView
		date        time.Time
		startMin    int
		durationMin int
	)
	err := r.db.QueryRow(ctx, findBookingViewSQL, id).Scan(
		&view.ID, &view.UserID, &view.LocationID, &view.LocationName,
		&view.ServiceID, &view.ServiceName,
		&date, &startMin, &durationMin, &view.Bay, &view.Status,
		&view.PaymentReference, &view.CreatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}

	start, end, err := slotRange(startMin, durationMin)
	if err != nil {
		return nil, err
	}
	view.Date = schedule.DateOf(date).String()
	view.StartTime = start
	view.EndTime = end
	return &view, nil
}

func (r *BookingReadStore) FindByLocationDate(ctx context.Context, locationID uuid.UUID, date schedule.Date) ([]*queries.ManagerBookingItem, error) {
	rows, err := r.db.Query(ctx, findDayScheduleSQL, locationID, date.Time())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read day schedule", err)
	}
	defer rows.Close()

	items := make([]*queries.ManagerBookingItem, 0)
	for rows.Next() {
		var (
			item        queries.ManagerBookingItem
			startMin    int
			durationMin int
		)
		if err := rows.Scan(&item.ID, &startMin, &durationMin, &item.Bay, &item.ServiceName, &item.ClientEmail, &item.Status); err != nil {
			return nil, infra.WrapRepoErr("failed to scan day schedule row", err)
		}
		start, end, err := slotRange(startMin, durationMin)
		if err != nil {
			return nil, err
		}
		item.StartTime = start
		item.EndTime = end
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read day schedule", err)
	}
	return items, nil
}

func (r *BookingReadStore) SummarizeMonth(ctx context.Context, locationID uuid.UUID, year, month int) ([]*queries.ServiceSummaryRow, error) {
	rows, err := r.db.Query(ctx, summarizeMonthSQL, locationID, year, month)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to summarize month", err)
	}
	defer rows.Close()

	out := make([]*queries.ServiceSummaryRow, 0)
	for rows.Next() {
		var row queries.ServiceSummaryRow
		if err := rows.Scan(&row.ServiceID, &row.ServiceName, &row.Bookings); err != nil {
			return nil, infra.WrapRepoErr("failed to scan summary row", err)
		}
		out = append(out, &row)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to summarize month", err)
	}
	return out, nil
}

func slotRange(startMin, durationMin int) (string, string, error) {
	slot, err := schedule.NewSlot(startMin)
	if err != nil {
		return "", "", infra.WrapRepoErr("corrupt booking start slot", err)
	}
	duration, err := schedule.NewDuration(durationMin)
	if err != nil {
		return "", "", infra.WrapRepoErr("corrupt booking duration", err)
	}
	iv := schedule.NewInterval(slot, duration)
	return iv.Start().String(), iv.End().String(), nil
}
