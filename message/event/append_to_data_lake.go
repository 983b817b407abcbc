package event

import (
	"context"
	"encoding/json"
	"fmt"
	"ticketchain/entities"

	"github.com/ThreeDotsLabs/watermill/message"
)

type DataLakeRepository interface {
	Create(ctx context.Context, event entities.DataLakeEvent) error
}

// NewDataLakeHandler stores every published event envelope as-is. It is
// wired as a raw handler on the events topic because it must not care
// about event types, the payload stays opaque.
func NewDataLakeHandler(dataLakeRepo DataLakeRepository) message.NoPublishHandlerFunc {
	return func(msg *message.Message) error {
		var header struct {
			Header entities.EventHeader `json:"header"`
		}
		if err := json.Unmarshal(msg.Payload, &header); err != nil {
			return fmt.Errorf("could not decode event header: %w", err)
		}

		return dataLakeRepo.Create(msg.Context(), entities.DataLakeEvent{
			EventID:      header.Header.ID,
			PublishedAt:  header.Header.PublishedAt,
			EventName:    msg.Metadata.Get("name"),
			EventPayload: json.RawMessage(msg.Payload),
		})
	}
}
