package queries

import (
	"context"

	"sparkwash-api/internal/infra"
	"sparkwash-api/internal/pkg/errs"

	"github.com/google/uuid"
)

type LocationView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	OpenTime    string    `json:"open_time"`
	CloseTime   string    `json:"close_time"`
	DefaultBays int       `json:"default_bays"`
}

type ServiceView struct {
	ID          uuid.UUID `json:"id"`
	LocationID  uuid.UUID `json:"location_id"`
	Name        string    `json:"name"`
	PriceCents  int64     `json:"price_cents"`
	DurationMin int       `json:"duration_min"`
}

type CatalogQueries interface {
	ListLocations(ctx context.Context) ([]*LocationView, error)
	GetLocation(ctx context.Context, id uuid.UUID) (*LocationView, error)
	ListServices(ctx context.Context, locationID uuid.UUID) ([]*ServiceView, error)
}

type CatalogViewRepo interface {
	FindLocations(ctx context.Context) ([]*LocationView, error)
	FindLocationByID(ctx context.Context, id uuid.UUID) (*LocationView, error)
	FindServicesByLocation(ctx context.Context, locationID uuid.UUID) ([]*ServiceView, error)
}

type catalogQueriesImpl struct {
	repo CatalogViewRepo
}

func NewCatalogQueries(repo CatalogViewRepo) CatalogQueries {
	return &catalogQueriesImpl{repo: repo}
}

func (q *catalogQueriesImpl) ListLocations(ctx context.Context) ([]*LocationView, error) {
	rows, err := q.repo.FindLocations(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return rows, nil
}

func (q *catalogQueriesImpl) GetLocation(ctx context.Context, id uuid.UUID) (*LocationView, error) {
	view, err := q.repo.FindLocationByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return view, nil
}

func (q *catalogQueriesImpl) ListServices(ctx context.Context, locationID uuid.UUID) ([]*ServiceView, error) {
	rows, err := q.repo.FindServicesByLocation(ctx, locationID)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return rows, nil
}
