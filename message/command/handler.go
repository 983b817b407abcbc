package command

import (
	"context"
	"ticketchain/entities"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"
)

type TicketRepository interface {
	ByAsaID(ctx context.Context, asaID uint64) (entities.Ticket, error)
	Void(ctx context.Context, asaID uint64) (entities.Ticket, error)
}

type Handler struct {
	ticketRepo TicketRepository

	eventBus *cqrs.EventBus
}

func NewHandler(eventBus *cqrs.EventBus, ticketRepo TicketRepository) Handler {
	if eventBus == nil {
		panic("eventBus is required")
	}
	if ticketRepo == nil {
		panic("ticketRepo is required")
	}

	return Handler{
		ticketRepo: ticketRepo,
		eventBus:   eventBus,
	}
}
