package message

import (
	"ticketchain/message/command"
	"ticketchain/message/event"
	"ticketchain/message/outbox"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"
)

func NewWatermillRouter(
	pgSubscriber message.Subscriber,
	redisSubscriber message.Subscriber,
	commandProcessorConfig cqrs.CommandProcessorConfig,
	publisher message.Publisher,
	eventProcessorConfig cqrs.EventProcessorConfig,
	commandHandler command.Handler,
	eventHandler event.Handler,
	dataLakeRepo event.DataLakeRepository,
	watermillLogger watermill.LoggerAdapter) *message.Router {
	router, err := message.NewRouter(message.RouterConfig{}, watermillLogger)
	if err != nil {
		panic(err)
	}

	useMiddlewares(router, watermillLogger)

	_, err = outbox.NewForwarder(pgSubscriber, publisher, watermillLogger, router)
	if err != nil {
		panic(err)
	}

	eventProcessor, err := cqrs.NewEventProcessorWithConfig(router, eventProcessorConfig)
	if err != nil {
		panic(err)
	}

	commandProcessor, err := cqrs.NewCommandProcessorWithConfig(router, commandProcessorConfig)
	if err != nil {
		panic(err)
	}

	commandProcessor.AddHandlers(
		cqrs.NewCommandHandler(
			"VoidTicket",
			commandHandler.VoidTicket,
		),
	)

	eventProcessor.AddHandlers(
		cqrs.NewEventHandler(
			"CountTicketMinted",
			eventHandler.CountTicketMinted,
		),
		cqrs.NewEventHandler(
			"CountTicketTransferred",
			eventHandler.CountTicketTransferred,
		),
		cqrs.NewEventHandler(
			"CountTicketVoided",
			eventHandler.CountTicketVoided,
		),
		cqrs.NewEventHandler(
			"RegisterBuyerWallet",
			eventHandler.RegisterBuyerWallet,
		),
	)

	router.AddNoPublisherHandler(
		"events_to_data_lake",
		"events",
		redisSubscriber,
		event.NewDataLakeHandler(dataLakeRepo),
	)

	return router
}
