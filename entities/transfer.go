package entities

import (
	"time"

	"github.com/google/uuid"
)

// Transfer is one confirmed ownership change. Rows are append-only and
// form the audit trail: replaying them in ledger order reconstructs the
// full ownership history of a ticket.
type Transfer struct {
	TransferID  uuid.UUID `json:"transfer_id" db:"transfer_id"`
	TicketID    uuid.UUID `json:"ticket_id" db:"ticket_id"`
	FromWallet  string    `json:"from_wallet" db:"from_wallet"`
	ToWallet    string    `json:"to_wallet" db:"to_wallet"`
	Price       uint64    `json:"price" db:"price"`
	TxnID       string    `json:"txn_id" db:"txn_id"`
	ConfirmedAt time.Time `json:"confirmed_at" db:"confirmed_at"`
}
