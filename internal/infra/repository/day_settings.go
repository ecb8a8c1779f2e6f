package repository

import (
	"context"

	"sparkwash-api/internal/domain/schedule"
	"sparkwash-api/internal/infra"
	"sparkwash-api/internal/infra/db"

	"github.com/google/uuid"
)

const setActiveBaysSQL = `
INSERT INTO day_settings (location_id, date, active_bays)
VALUES ($1, $2, $3)
ON CONFLICT (location_id, date) DO UPDATE SET active_bays = EXCLUDED.active_bays`

type DaySettingsRepository struct{}

func NewDaySettingsRepository() *DaySettingsRepository {
	return &DaySettingsRepository{}
}

func (r *DaySettingsRepository) SetActiveBays(ctx context.Context, tx db.DBTX, locationID uuid.UUID, date schedule.Date, bays int) error {
	if _, err := tx.Exec(ctx, setActiveBaysSQL, locationID, date.Time(), bays); err != nil {
		return infra.WrapRepoErr("failed to set active bays", err)
	}
	return nil
}
