package entities

import (
	"time"

	"github.com/google/uuid"
)

type TicketStatus string

const (
	// TicketStatusPending is the provisional row written by the mint
	// endpoint before the chain subscriber confirms the transaction.
	TicketStatusPending     TicketStatus = "pending"
	TicketStatusMinted      TicketStatus = "minted"
	TicketStatusTransferred TicketStatus = "transferred"
	TicketStatusVoid        TicketStatus = "void"
)

// Ticket is the local projection of one on-ledger asset. AsaID is the
// join key between ledger truth and this row; it never changes once
// minted. Ownership changes only through confirmed transfers applied by
// the chain subscriber.
type Ticket struct {
	TicketID           uuid.UUID    `json:"ticket_id" db:"ticket_id"`
	EventID            *uuid.UUID   `json:"event_id,omitempty" db:"event_id"`
	SeatNumber         string       `json:"seat_number" db:"seat_number"`
	AsaID              uint64       `json:"asa_id" db:"asa_id"`
	TicketPrice        uint64       `json:"ticket_price" db:"ticket_price"`
	Status             TicketStatus `json:"status" db:"status"`
	CurrentOwnerWallet string       `json:"current_owner_wallet" db:"current_owner_wallet"`
	TxnID              *string      `json:"txn_id,omitempty" db:"txn_id"`
	MintedAt           time.Time    `json:"minted_at" db:"minted_at"`
}
