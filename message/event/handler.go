package event

import (
	"context"
	"ticketchain/entities"
)

type EventStatsReadModel interface {
	OnTicketMinted(ctx context.Context, event *entities.TicketMinted) error
	OnTicketTransferred(ctx context.Context, event *entities.TicketTransferred) error
	OnTicketVoided(ctx context.Context, event *entities.TicketVoided) error
}

type UserRepository interface {
	CreateOrGet(ctx context.Context, user entities.User) (entities.User, error)
}

type Handler struct {
	statsReadModel EventStatsReadModel
	userRepo       UserRepository
}

func NewHandler(statsReadModel EventStatsReadModel, userRepo UserRepository) Handler {
	if statsReadModel == nil {
		panic("missing statsReadModel")
	}
	if userRepo == nil {
		panic("missing userRepo")
	}
	return Handler{
		statsReadModel: statsReadModel,
		userRepo:       userRepo,
	}
}
