package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"ticketchain/entities"

	"github.com/google/uuid"
)

type ITicketRepository interface {
	CreatePending(ctx context.Context, ticket entities.Ticket) error
	GetAll(ctx context.Context, filter TicketFilter) ([]entities.Ticket, error)
	ByAsaID(ctx context.Context, asaID uint64) (entities.Ticket, error)
	Void(ctx context.Context, asaID uint64) (entities.Ticket, error)
}

type TicketFilter struct {
	Owner   string
	EventID *uuid.UUID
	Status  string
}

type TicketRepository struct {
	db *DB
}

func NewTicketRepo(db *DB) TicketRepository {
	if db == nil {
		panic("db is nil")
	}
	return TicketRepository{
		db: db,
	}
}

// CreatePending writes the provisional row for a just-submitted mint.
// The row shares the asa_id natural key with the subscriber's confirmed
// apply, so whichever writer lands second is a no-op or an overwrite of
// the pending state - never a duplicate.
func (tr TicketRepository) CreatePending(ctx context.Context, ticket entities.Ticket) error {
	_, err := tr.db.Conn.NamedExecContext(
		ctx,
		`
		INSERT INTO
			tickets (ticket_id, event_id, seat_number, asa_id, ticket_price, status, current_owner_wallet, txn_id)
		VALUES
			(:ticket_id, :event_id, :seat_number, :asa_id, :ticket_price, :status, :current_owner_wallet, :txn_id)
		ON CONFLICT (asa_id) DO NOTHING`,
		ticket,
	)
	if err != nil {
		return fmt.Errorf("could not save pending ticket: %w", err)
	}
	return nil
}

func (tr TicketRepository) GetAll(ctx context.Context, filter TicketFilter) ([]entities.Ticket, error) {
	query := `
		SELECT
			*
		FROM
			tickets
		WHERE 1=1`
	args := []any{}

	if filter.Owner != "" {
		args = append(args, filter.Owner)
		query += fmt.Sprintf(" AND current_owner_wallet = $%d", len(args))
	}
	if filter.EventID != nil {
		args = append(args, *filter.EventID)
		query += fmt.Sprintf(" AND event_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY minted_at DESC"

	var tickets []entities.Ticket
	err := tr.db.Conn.SelectContext(ctx, &tickets, query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not get tickets: %w", err)
	}

	return tickets, nil
}

func (tr TicketRepository) ByAsaID(ctx context.Context, asaID uint64) (entities.Ticket, error) {
	var ticket entities.Ticket
	err := tr.db.Conn.GetContext(ctx, &ticket, `
		SELECT
			*
		FROM
			tickets
		WHERE
			asa_id = $1`, asaID)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Ticket{}, ErrNotFound
	}
	if err != nil {
		return entities.Ticket{}, fmt.Errorf("could not get ticket: %w", err)
	}

	return ticket, nil
}

func (tr TicketRepository) Void(ctx context.Context, asaID uint64) (entities.Ticket, error) {
	res, err := tr.db.Conn.ExecContext(ctx, `
		UPDATE tickets SET status = $1 WHERE asa_id = $2`,
		entities.TicketStatusVoid, asaID)
	if err != nil {
		return entities.Ticket{}, fmt.Errorf("could not void ticket: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return entities.Ticket{}, fmt.Errorf("could not void ticket: %w", err)
	}
	if rows == 0 {
		return entities.Ticket{}, ErrNotFound
	}

	return tr.ByAsaID(ctx, asaID)
}
