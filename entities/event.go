package entities

import (
	"time"

	"github.com/google/uuid"
)

type EventStatus string

const (
	EventStatusDraft  EventStatus = "draft"
	EventStatusActive EventStatus = "active"
	EventStatusClosed EventStatus = "closed"
)

// Event is an organizer-created event tickets are minted against.
// Immutable once tickets exist, except for status transitions.
type Event struct {
	EventID         uuid.UUID   `json:"event_id" db:"event_id"`
	Name            string      `json:"name" db:"name"`
	Description     *string     `json:"description,omitempty" db:"description"`
	Venue           *string     `json:"venue,omitempty" db:"venue"`
	EventDate       *time.Time  `json:"event_date,omitempty" db:"event_date"`
	TotalSeats      int         `json:"total_seats" db:"total_seats"`
	MaxResalePrice  uint64      `json:"max_resale_price" db:"max_resale_price"`
	OrganizerWallet string      `json:"organizer_wallet" db:"organizer_wallet"`
	AppID           uint64      `json:"app_id" db:"app_id"`
	Status          EventStatus `json:"status" db:"status"`
	CreatedAt       time.Time   `json:"created_at" db:"created_at"`
}
