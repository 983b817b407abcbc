package service

import (
	"context"
	"ticketchain/db"
	ticketchainHttp "ticketchain/http"
	"ticketchain/ledger"
	"ticketchain/message"
	"ticketchain/message/command"
	"ticketchain/message/event"
	"ticketchain/message/outbox"
	"ticketchain/subscriber"
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	watermillMessage "github.com/ThreeDotsLabs/watermill/message"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func init() {
	log.Init(logrus.InfoLevel)
}

type Service struct {
	watermillRouter *watermillMessage.Router
	echoRouter      *echo.Echo
	chainSubscriber subscriber.Subscriber
}

func New(
	redisClient *redis.Client,
	chainLedger *ledger.InMemoryLedger,
	appID uint64,
	pollInterval time.Duration,
	conn db.DB,
) Service {
	watermillLogger := log.NewWatermill(log.FromContext(context.Background()))

	var redisPublisher watermillMessage.Publisher
	redisPublisher = message.NewRedisPublisher(redisClient, watermillLogger)
	redisPublisher = log.CorrelationPublisherDecorator{Publisher: redisPublisher}

	eventBus := event.NewBus(redisPublisher)
	commandBus := command.NewCommandBus(redisPublisher)

	eventRepo := db.NewEventRepository(&conn)
	ticketRepo := db.NewTicketRepo(&conn)
	transferRepo := db.NewTransferRepository(&conn)
	userRepo := db.NewUserRepository(&conn)
	dataLakeRepo := db.NewDataLakeRepository(&conn)
	statsReadModel := db.NewEventStatsReadModel(&conn)

	eventsHandler := event.NewHandler(statsReadModel, userRepo)
	commandsHandler := command.NewHandler(eventBus, ticketRepo)

	redisSubscriber := message.NewRedisSubscriber(redisClient, watermillLogger)
	eventProcessorConfig := event.NewProcessorConfig(redisClient, watermillLogger)
	commandProcessorConfig := command.NewCommandProcessorConfig(redisClient, watermillLogger)

	pgSubscriber := outbox.SubscribeForPGMessages(conn.Conn, watermillLogger)
	watermillRouter := message.NewWatermillRouter(
		pgSubscriber,
		redisSubscriber,
		commandProcessorConfig,
		redisPublisher,
		eventProcessorConfig,
		commandsHandler,
		eventsHandler,
		dataLakeRepo,
		watermillLogger,
	)

	projection := db.NewProjection(&conn, appID)
	chainSubscriber := subscriber.New(chainLedger, projection, pollInterval)

	echoRouter := ticketchainHttp.NewHttpRouter(
		eventBus,
		commandBus,
		chainLedger,
		eventRepo,
		ticketRepo,
		transferRepo,
		userRepo,
		statsReadModel,
	)

	return Service{
		watermillRouter: watermillRouter,
		echoRouter:      echoRouter,
		chainSubscriber: chainSubscriber,
	}
}

func (s Service) Run(
	ctx context.Context,
) error {
	errgrp, ctx := errgroup.WithContext(ctx)

	errgrp.Go(func() error {
		return s.watermillRouter.Run(ctx)
	})

	errgrp.Go(func() error {
		// reconciliation starts once the router forwards outbox messages,
		// otherwise applied rounds would pile up unpublished
		<-s.watermillRouter.Running()

		return s.chainSubscriber.Run(ctx)
	})

	errgrp.Go(func() error {
		// we don't want to start HTTP server before Watermill router (so service won't be healthy before it's ready)
		<-s.watermillRouter.Running()

		err := s.echoRouter.Start(":8080")

		if err != nil {
			return err
		}

		return nil
	})

	errgrp.Go(func() error {
		<-ctx.Done()
		return s.echoRouter.Shutdown(context.Background())
	})

	return errgrp.Wait()
}
