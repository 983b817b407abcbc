package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"ticketchain/entities"

	"github.com/google/uuid"
)

type IEventRepository interface {
	Create(ctx context.Context, event entities.Event) (entities.Event, error)
	GetAll(ctx context.Context) ([]entities.Event, error)
	ByID(ctx context.Context, eventID uuid.UUID) (entities.Event, error)
}

type EventRepository struct {
	db *DB
}

func NewEventRepository(db *DB) EventRepository {
	if db == nil {
		panic("db is nil")
	}
	return EventRepository{
		db: db,
	}
}

func (er EventRepository) Create(ctx context.Context, event entities.Event) (entities.Event, error) {
	event.EventID = uuid.New()
	event.Status = entities.EventStatusActive

	_, err := er.db.Conn.NamedExecContext(
		ctx,
		`
		INSERT INTO
			events (event_id, name, description, venue, event_date, total_seats, max_resale_price, organizer_wallet, app_id, status)
		VALUES
			(:event_id, :name, :description, :venue, :event_date, :total_seats, :max_resale_price, :organizer_wallet, :app_id, :status)`,
		event,
	)
	if err != nil {
		return entities.Event{}, fmt.Errorf("could not save event: %w", err)
	}

	return er.ByID(ctx, event.EventID)
}

func (er EventRepository) GetAll(ctx context.Context) ([]entities.Event, error) {
	var events []entities.Event
	err := er.db.Conn.SelectContext(ctx, &events, `
		SELECT
			*
		FROM
			events
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("could not get all the events: %w", err)
	}

	return events, nil
}

func (er EventRepository) ByID(ctx context.Context, eventID uuid.UUID) (entities.Event, error) {
	var event entities.Event
	err := er.db.Conn.GetContext(ctx, &event, `
		SELECT
			*
		FROM
			events
		WHERE
			event_id = $1`, eventID)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Event{}, ErrNotFound
	}
	if err != nil {
		return entities.Event{}, fmt.Errorf("could not get event: %w", err)
	}

	return event, nil
}
