package http

import (
	"context"
	"ticketchain/db"
	"ticketchain/entities"
	"ticketchain/ledger"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/google/uuid"
)

type Handler struct {
	eventBus *cqrs.EventBus
	cmdBus   *cqrs.CommandBus

	ledger       Ledger
	eventRepo    EventRepository
	ticketRepo   TicketRepository
	transferRepo TransferRepository
	userRepo     UserRepository
	statsRepo    EventStatsRepository
}

// Ledger is the write and global-state surface of the chain node the
// command endpoints talk to.
type Ledger interface {
	SubmitMintTicket(ctx context.Context, sender string, seat string, price uint64) (ledger.MintResult, error)
	SubmitTransferTicket(ctx context.Context, buyer string, assetID uint64, payment uint64) (ledger.TransferResult, error)
	GlobalState(ctx context.Context) (ledger.State, error)
}

type EventRepository interface {
	Create(ctx context.Context, event entities.Event) (entities.Event, error)
	GetAll(ctx context.Context) ([]entities.Event, error)
	ByID(ctx context.Context, eventID uuid.UUID) (entities.Event, error)
}

type TicketRepository interface {
	CreatePending(ctx context.Context, ticket entities.Ticket) error
	GetAll(ctx context.Context, filter db.TicketFilter) ([]entities.Ticket, error)
	ByAsaID(ctx context.Context, asaID uint64) (entities.Ticket, error)
}

type TransferRepository interface {
	GetAll(ctx context.Context, ticketID *uuid.UUID) ([]entities.Transfer, error)
}

type UserRepository interface {
	CreateOrGet(ctx context.Context, user entities.User) (entities.User, error)
	ByWallet(ctx context.Context, walletAddress string) (entities.User, error)
}

type EventStatsRepository interface {
	ByEventID(ctx context.Context, eventID uuid.UUID) (entities.EventStats, error)
}
