package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type EventHeader struct {
	ID             string    `json:"id"`
	PublishedAt    time.Time `json:"published_at"`
	IdempotencyKey string    `json:"idempotency_key"`
}

func NewEventHeader() EventHeader {
	return EventHeader{
		ID:             uuid.NewString(),
		PublishedAt:    time.Now().UTC(),
		IdempotencyKey: uuid.NewString(),
	}
}

// NewEventHeaderWithIdempotencyKey keys the header by a natural id, for
// events derived from ledger transactions the key is the txn id.
func NewEventHeaderWithIdempotencyKey(idempotencyKey string) EventHeader {
	return EventHeader{
		ID:             uuid.NewString(),
		PublishedAt:    time.Now().UTC(),
		IdempotencyKey: idempotencyKey,
	}
}

type IEvent interface {
	IsInternal() bool
}

// TicketMinted is emitted after a confirmed mint transaction has been
// applied to the local store.
type TicketMinted struct {
	Header EventHeader `json:"header"`

	TicketID   uuid.UUID  `json:"ticket_id"`
	EventID    *uuid.UUID `json:"event_id,omitempty"`
	AsaID      uint64     `json:"asa_id"`
	SeatNumber string     `json:"seat_number"`
	Price      uint64     `json:"price"`
	Owner      string     `json:"owner"`
	TxnID      string     `json:"txn_id"`
	Round      uint64     `json:"round"`
}

func (TicketMinted) IsInternal() bool { return false }

// TicketTransferred is emitted after a confirmed transfer transaction
// has been applied to the local store.
type TicketTransferred struct {
	Header EventHeader `json:"header"`

	TicketID   uuid.UUID  `json:"ticket_id"`
	EventID    *uuid.UUID `json:"event_id,omitempty"`
	AsaID      uint64     `json:"asa_id"`
	FromWallet string     `json:"from_wallet"`
	ToWallet   string     `json:"to_wallet"`
	Price      uint64     `json:"price"`
	TxnID      string     `json:"txn_id"`
	Round      uint64     `json:"round"`
}

func (TicketTransferred) IsInternal() bool { return false }

// TicketVoided is emitted when an organizer voids a ticket locally.
type TicketVoided struct {
	Header EventHeader `json:"header"`

	AsaID   uint64     `json:"asa_id"`
	EventID *uuid.UUID `json:"event_id,omitempty"`
	Reason  string     `json:"reason"`
}

func (TicketVoided) IsInternal() bool { return false }

// DataLakeEvent is the raw envelope stored in the ledger_events table.
type DataLakeEvent struct {
	EventID      string          `json:"event_id" db:"event_id"`
	PublishedAt  time.Time       `json:"published_at" db:"published_at"`
	EventName    string          `json:"event_name" db:"event_name"`
	EventPayload json.RawMessage `json:"event_payload" db:"event_payload"`
}
