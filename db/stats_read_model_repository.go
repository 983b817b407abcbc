package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"ticketchain/entities"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type EventStatsReadModel struct {
	conn *DB
}

func NewEventStatsReadModel(db *DB) EventStatsReadModel {
	if db == nil {
		panic("db is nil")
	}
	return EventStatsReadModel{
		conn: db,
	}
}

func (r EventStatsReadModel) OnTicketMinted(ctx context.Context, event *entities.TicketMinted) error {
	if event.EventID == nil {
		// gap-healed tickets have no known event, nothing to count against
		return nil
	}

	return r.update(ctx, *event.EventID, event.Header.IdempotencyKey,
		func(stats entities.EventStats) entities.EventStats {
			stats.TicketsMinted++
			return stats
		},
	)
}

func (r EventStatsReadModel) OnTicketTransferred(ctx context.Context, event *entities.TicketTransferred) error {
	if event.EventID == nil {
		return nil
	}

	return r.update(ctx, *event.EventID, event.Header.IdempotencyKey,
		func(stats entities.EventStats) entities.EventStats {
			stats.TransfersConfirmed++
			stats.ResaleVolume += event.Price
			return stats
		},
	)
}

func (r EventStatsReadModel) OnTicketVoided(ctx context.Context, event *entities.TicketVoided) error {
	if event.EventID == nil {
		return nil
	}

	return r.update(ctx, *event.EventID, event.Header.IdempotencyKey,
		func(stats entities.EventStats) entities.EventStats {
			stats.TicketsVoided++
			return stats
		},
	)
}

func (r EventStatsReadModel) ByEventID(ctx context.Context, eventID uuid.UUID) (entities.EventStats, error) {
	var payload []byte

	err := r.conn.Conn.QueryRowContext(
		ctx,
		"SELECT payload FROM read_model_event_stats WHERE event_id = $1",
		eventID,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.EventStats{}, ErrNotFound
	}
	if err != nil {
		return entities.EventStats{}, fmt.Errorf("could not get event stats: %w", err)
	}

	return unmarshalStatsFromDB(payload)
}

func (r EventStatsReadModel) update(
	ctx context.Context,
	eventID uuid.UUID,
	idempotencyKey string,
	updateFunc func(stats entities.EventStats) entities.EventStats,
) error {
	return updateInTx(
		ctx,
		r.conn.Conn,
		sql.LevelRepeatableRead,
		func(ctx context.Context, tx *sqlx.Tx) error {
			stats := entities.EventStats{EventID: eventID, Applied: map[string]bool{}}

			var payload []byte
			err := tx.QueryRowContext(
				ctx,
				"SELECT payload FROM read_model_event_stats WHERE event_id = $1 FOR UPDATE",
				eventID,
			).Scan(&payload)
			if err != nil && !errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("could not find event stats: %w", err)
			}
			if err == nil {
				stats, err = unmarshalStatsFromDB(payload)
				if err != nil {
					return err
				}
			}

			if stats.Applied[idempotencyKey] {
				// redelivered event, already folded in
				return nil
			}

			stats = updateFunc(stats)
			stats.Applied[idempotencyKey] = true
			stats.LastUpdate = time.Now().UTC()

			updated, err := json.Marshal(stats)
			if err != nil {
				return err
			}

			_, err = tx.ExecContext(ctx, `
				INSERT INTO
					read_model_event_stats (event_id, payload)
				VALUES
					($1, $2)
				ON CONFLICT (event_id) DO UPDATE SET payload = excluded.payload;
				`, eventID, updated)
			if err != nil {
				return fmt.Errorf("could not update event stats: %w", err)
			}

			return nil
		},
	)
}

func unmarshalStatsFromDB(payload []byte) (entities.EventStats, error) {
	var stats entities.EventStats

	err := json.Unmarshal(payload, &stats)
	if err != nil {
		return entities.EventStats{}, err
	}

	if stats.Applied == nil {
		stats.Applied = map[string]bool{}
	}
	return stats, nil
}
