package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"ticketchain/db"
	"ticketchain/ledger"
	"ticketchain/service"
	observability "ticketchain/trace"
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const defaultAppID = 1

func main() {
	log.Init(logrus.InfoLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	tp := observability.ConfigureTraceProvider()
	defer func() {
		_ = tp.Shutdown(context.Background())
	}()

	conn, err := db.NewDBConn(os.Getenv("POSTGRES_URL"))
	if err != nil {
		logrus.WithError(err).Fatal("could not connect to postgres")
	}
	defer conn.Close()
	conn.MigrateSchema()

	redisClient := redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
	})
	defer redisClient.Close()

	organizerWallet := os.Getenv("ORGANIZER_WALLET")
	if organizerWallet == "" {
		logrus.Fatal("ORGANIZER_WALLET is required")
	}

	pollInterval := time.Second
	if raw := os.Getenv("POLL_INTERVAL_SECONDS"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil {
			logrus.WithError(err).Fatal("invalid POLL_INTERVAL_SECONDS")
		}
		pollInterval = time.Duration(seconds) * time.Second
	}

	chainLedger := ledger.NewInMemoryLedger(defaultAppID, organizerWallet)

	svc := service.New(
		redisClient,
		chainLedger,
		defaultAppID,
		pollInterval,
		conn,
	)

	err = svc.Run(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("service stopped with error")
	}
}
