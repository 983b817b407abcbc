package event

import (
	"context"
	"ticketchain/entities"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
)

func (h Handler) CountTicketMinted(ctx context.Context, event *entities.TicketMinted) error {
	log.FromContext(ctx).Info("Counting minted ticket in event stats")

	return h.statsReadModel.OnTicketMinted(ctx, event)
}

func (h Handler) CountTicketTransferred(ctx context.Context, event *entities.TicketTransferred) error {
	log.FromContext(ctx).Info("Counting transfer in event stats")

	return h.statsReadModel.OnTicketTransferred(ctx, event)
}

func (h Handler) CountTicketVoided(ctx context.Context, event *entities.TicketVoided) error {
	log.FromContext(ctx).Info("Counting voided ticket in event stats")

	return h.statsReadModel.OnTicketVoided(ctx, event)
}
