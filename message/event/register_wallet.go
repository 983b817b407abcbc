package event

import (
	"context"
	"fmt"
	"ticketchain/entities"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
)

// RegisterBuyerWallet makes sure every wallet seen on the buy side of a
// confirmed transfer exists as a user, so lookups by wallet never miss.
func (h Handler) RegisterBuyerWallet(ctx context.Context, event *entities.TicketTransferred) error {
	log.FromContext(ctx).Info("Registering buyer wallet")

	_, err := h.userRepo.CreateOrGet(ctx, entities.User{
		WalletAddress: event.ToWallet,
		Role:          entities.UserRoleBuyer,
	})
	if err != nil {
		return fmt.Errorf("could not register buyer wallet: %w", err)
	}

	return nil
}
