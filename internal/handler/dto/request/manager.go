package request

import (
	"sparkwash-api/internal/domain/schedule"

	"github.com/google/uuid"
)

type SetActiveBaysRequest struct {
	LocationID uuid.UUID `json:"location_id" binding:"required"`
	Date       string    `json:"date" binding:"required"`
	ActiveBays int       `json:"active_bays" binding:"required"`
	// Override acknowledges shrinking below the day's committed peak.
	Override bool `json:"override"`
}

func (r SetActiveBaysRequest) ParsedDate() (schedule.Date, error) {
	return schedule.ParseDate(r.Date)
}

type BlockSlotRequest struct {
	LocationID uuid.UUID `json:"location_id" binding:"required"`
	Date       string    `json:"date" binding:"required"`
	Slot       string    `json:"slot" binding:"required"`
}

func (r BlockSlotRequest) Parsed() (schedule.Date, schedule.Slot, error) {
	date, err := schedule.ParseDate(r.Date)
	if err != nil {
		return schedule.Date{}, schedule.Slot{}, err
	}
	slot, err := schedule.ParseSlot(r.Slot)
	if err != nil {
		return schedule.Date{}, schedule.Slot{}, err
	}
	return date, slot, nil
}
