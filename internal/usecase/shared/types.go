package shared

import (
	"sparkwash-api/internal/domain/schedule"

	"github.com/google/uuid"
)

type LocationSnapshot struct {
	ID          uuid.UUID
	Name        string
	Timezone    string
	Hours       schedule.OperatingHours
	DefaultBays int
}

type ServiceSnapshot struct {
	ID         uuid.UUID
	LocationID uuid.UUID
	Name       string
	Duration   schedule.Duration
	PriceCents int64
	Active     bool
}
