package migrations

import (
	"context"
	"encoding/json"
	"fmt"
	"ticketchain/db"
	"ticketchain/entities"
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/sirupsen/logrus"
)

// RebuildEventStats replays every envelope from the data lake through
// the stats read model. Safe to run against a live service: the read
// model's idempotency keys absorb events it already counted.
func RebuildEventStats(ctx context.Context, dl db.IDataLakeRepository, rm db.EventStatsReadModel) error {
	var events []entities.DataLakeEvent

	logger := log.FromContext(ctx)
	logger.Info("Rebuilding event stats read model")

	timeout := time.Now().Add(time.Second * 10)

	// events are not immediately available in the data lake, so we need to wait for them
	for {
		var err error
		events, err = dl.GetAll(ctx)
		if err != nil {
			return fmt.Errorf("could not get events from data lake: %w", err)
		}
		if len(events) > 0 {
			break
		}

		if time.Now().After(timeout) {
			return fmt.Errorf("timeout while waiting for events in data lake")
		}

		time.Sleep(time.Millisecond * 100)
	}

	logger.WithField("events_count", len(events)).Info("Has events to replay")

	for _, event := range events {
		start := time.Now()

		logger.WithFields(logrus.Fields{
			"event_name": event.EventName,
			"event_id":   event.EventID,
		}).Info("Replaying event")

		err := replayEvent(ctx, event, rm)
		if err != nil {
			return fmt.Errorf("could not replay event %s (%s): %w", event.EventID, event.EventName, err)
		}

		logger.WithField("duration", time.Since(start)).Info("Event replayed")
	}

	return nil
}

func replayEvent(ctx context.Context, event entities.DataLakeEvent, rm db.EventStatsReadModel) error {
	switch event.EventName {
	case "entities.TicketMinted":
		minted, err := unmarshalDataLakeEvent[entities.TicketMinted](event)
		if err != nil {
			return err
		}

		return rm.OnTicketMinted(ctx, minted)
	case "entities.TicketTransferred":
		transferred, err := unmarshalDataLakeEvent[entities.TicketTransferred](event)
		if err != nil {
			return err
		}

		return rm.OnTicketTransferred(ctx, transferred)
	case "entities.TicketVoided":
		voided, err := unmarshalDataLakeEvent[entities.TicketVoided](event)
		if err != nil {
			return err
		}

		return rm.OnTicketVoided(ctx, voided)
	default:
		// the lake holds every envelope, not all of them feed the stats
		return nil
	}
}

func unmarshalDataLakeEvent[T any](event entities.DataLakeEvent) (*T, error) {
	eventInstance := new(T)

	err := json.Unmarshal(event.EventPayload, &eventInstance)
	if err != nil {
		return nil, fmt.Errorf("could not unmarshal event %s: %w", event.EventName, err)
	}

	return eventInstance, nil
}
