package db

import (
	"context"
	"fmt"
	"ticketchain/entities"
)

type IDataLakeRepository interface {
	Create(ctx context.Context, event entities.DataLakeEvent) error
	GetAll(ctx context.Context) ([]entities.DataLakeEvent, error)
}

type DataLakeRepository struct {
	db *DB
}

func NewDataLakeRepository(db *DB) DataLakeRepository {
	if db == nil {
		panic("db is nil")
	}
	return DataLakeRepository{
		db: db,
	}
}

// Create stores the raw event envelope. Insert-once by event id, so
// redelivered events do not duplicate rows.
func (dl DataLakeRepository) Create(ctx context.Context, event entities.DataLakeEvent) error {
	_, err := dl.db.Conn.ExecContext(ctx, `
		INSERT INTO
			ledger_events (event_id, published_at, event_name, event_payload)
		VALUES
			($1, $2, $3, $4)
		ON CONFLICT (event_id) DO NOTHING;
`, event.EventID, event.PublishedAt, event.EventName, []byte(event.EventPayload))

	if err != nil {
		return fmt.Errorf("could not store event in data lake: %w", err)
	}

	return nil
}

func (dl DataLakeRepository) GetAll(ctx context.Context) ([]entities.DataLakeEvent, error) {
	var events []entities.DataLakeEvent
	err := dl.db.Conn.SelectContext(ctx, &events, `
		SELECT
			event_id, published_at, event_name, event_payload
		FROM
			ledger_events
		ORDER BY published_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("could not get data lake events: %w", err)
	}

	return events, nil
}
