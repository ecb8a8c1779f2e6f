package repository

import (
	"context"

	"sparkwash-api/internal/domain/schedule"
	"sparkwash-api/internal/infra"
	"sparkwash-api/internal/infra/db"

	"github.com/google/uuid"
)

const (
	blockSlotSQL = `
INSERT INTO blocked_slots (location_id, date, slot_min)
VALUES ($1, $2, $3)
ON CONFLICT (location_id, date, slot_min) DO NOTHING`

	unblockSlotSQL = `
DELETE FROM blocked_slots
WHERE location_id = $1 AND date = $2 AND slot_min = $3`
)

type BlockedSlotRepository struct{}

func NewBlockedSlotRepository() *BlockedSlotRepository {
	return &BlockedSlotRepository{}
}

func (r *BlockedSlotRepository) Block(ctx context.Context, tx db.DBTX, locationID uuid.UUID, date schedule.Date, slot schedule.Slot) error {
	if _, err := tx.Exec(ctx, blockSlotSQL, locationID, date.Time(), slot.Minutes()); err != nil {
		return infra.WrapRepoErr("failed to block slot", err)
	}
	return nil
}

func (r *BlockedSlotRepository) Unblock(ctx context.Context, tx db.DBTX, locationID uuid.UUID, date schedule.Date, slot schedule.Slot) error {
	if _, err := tx.Exec(ctx, unblockSlotSQL, locationID, date.Time(), slot.Minutes()); err != nil {
		return infra.WrapRepoErr("failed to unblock slot", err)
	}
	return nil
}
