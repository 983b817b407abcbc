package command

import (
	"context"
	"errors"
	"fmt"
	"ticketchain/db"
	"ticketchain/entities"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
)

func (h Handler) VoidTicket(ctx context.Context, command *entities.VoidTicket) error {
	log.FromContext(ctx).WithField("asa_id", command.AsaID).Info("Voiding ticket")

	ticket, err := h.ticketRepo.Void(ctx, command.AsaID)
	if errors.Is(err, db.ErrNotFound) {
		// the ticket may not be projected yet, retry middleware will redrive
		return fmt.Errorf("ticket for asa %d not in store yet: %w", command.AsaID, err)
	}
	if err != nil {
		return fmt.Errorf("could not void ticket: %w", err)
	}

	err = h.eventBus.Publish(ctx, entities.TicketVoided{
		Header:  entities.NewEventHeaderWithIdempotencyKey(command.Header.IdempotencyKey),
		AsaID:   command.AsaID,
		EventID: ticket.EventID,
		Reason:  command.Reason,
	})
	if err != nil {
		return fmt.Errorf("failed to publish TicketVoided event: %w", err)
	}

	return nil
}
