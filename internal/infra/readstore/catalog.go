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
	listLocationsSQL = `
SELECT id, name, address, open_min, close_min, default_bays
FROM locations
ORDER BY name`

	findLocationViewSQL = `
SELECT id, name, address, open_min, close_min, default_bays
FROM locations
WHERE id = $1`

	listServicesSQL = `
SELECT id, location_id, name, price_cents, duration_min
FROM services
WHERE location_id = $1 AND active
ORDER BY name`
)

type CatalogReadStore struct {
	db db.DBTX
}

func NewCatalogReadStore(dbtx db.DBTX) *CatalogReadStore {
	return &CatalogReadStore{db: dbtx}
}

func (r *CatalogReadStore) FindLocations(ctx context.Context) ([]*queries.LocationView, error) {
	rows, err := r.db.Query(ctx, listLocationsSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list locations", err)
	}
	defer rows.Close()

	out := make([]*queries.LocationView, 0)
	for rows.Next() {
		var (
			view     queries.LocationView
			openMin  int
			closeMin int
		)
		if err := rows.Scan(&view.ID, &view.Name, &view.Address, &openMin, &closeMin, &view.DefaultBays); err != nil {
			return nil, infra.WrapRepoErr("failed to scan location", err)
		}
		open, err := schedule.NewSlot(openMin)
		if err != nil {
			return nil, infra.WrapRepoErr("corrupt location open time", err)
		}
		closeAt, err := schedule.NewSlot(closeMin)
		if err != nil {
			return nil, infra.WrapRepoErr("corrupt location close time", err)
		}
		view.OpenTime = open.String()
		view.CloseTime = closeAt.String()
		out = append(out, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list locations", err)
	}
	return out, nil
}

func (r *CatalogReadStore) FindLocationByID(ctx context.Context, id uuid.UUID) (*queries.LocationView, error) {
	var (
		view     queries.LocationView
		openMin  int
		closeMin int
	)
	err := r.db.QueryRow(ctx, findLocationViewSQL, id).Scan(
		&view.ID, &view.Name, &view.Address, &openMin, &closeMin, &view.DefaultBays,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("location not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find location", err)
	}
	open, err := schedule.NewSlot(openMin)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt location open time", err)
	}
	closeAt, err := schedule.NewSlot(closeMin)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt location close time", err)
	}
	view.OpenTime = open.String()
	view.CloseTime = closeAt.String()
	return &view, nil
}

func (r *CatalogReadStore) FindServicesByLocation(ctx context.Context, locationID uuid.UUID) ([]*queries.ServiceView, error) {
	rows, err := r.db.Query(ctx, listServicesSQL, locationID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list services", err)
	}
	defer rows.Close()

	out := make([]*queries.ServiceView, 0)
	for rows.Next() {
		var view queries.ServiceView
		if err := rows.Scan(&view.ID, &view.LocationID, &view.Name, &view.PriceCents, &view.DurationMin); err != nil {
			return nil, infra.WrapRepoErr("failed to scan service", err)
		}
		out = append(out, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list services", err)
	}
	return out, nil
}
