package entities

import (
	"time"

	"github.com/google/uuid"
)

// EventStats is the per-event read model fed by the domain events the
// projection emits. Applied holds the idempotency keys already folded
// in, so redelivered events don't double count.
type EventStats struct {
	EventID uuid.UUID `json:"event_id"`

	TicketsMinted      int    `json:"tickets_minted"`
	TransfersConfirmed int    `json:"transfers_confirmed"`
	ResaleVolume       uint64 `json:"resale_volume"`
	TicketsVoided      int    `json:"tickets_voided"`

	Applied map[string]bool `json:"applied_keys"`

	LastUpdate time.Time `json:"last_update"`
}
