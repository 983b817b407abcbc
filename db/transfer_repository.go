package db

import (
	"context"
	"fmt"
	"ticketchain/entities"

	"github.com/google/uuid"
)

type ITransferRepository interface {
	GetAll(ctx context.Context, ticketID *uuid.UUID) ([]entities.Transfer, error)
}

type TransferRepository struct {
	db *DB
}

func NewTransferRepository(db *DB) TransferRepository {
	if db == nil {
		panic("db is nil")
	}
	return TransferRepository{
		db: db,
	}
}

// GetAll returns the append-only transfer audit trail, newest first,
// optionally scoped to one ticket.
func (tr TransferRepository) GetAll(ctx context.Context, ticketID *uuid.UUID) ([]entities.Transfer, error) {
	query := `
		SELECT
			*
		FROM
			transfers`
	args := []any{}

	if ticketID != nil {
		query += " WHERE ticket_id = $1"
		args = append(args, *ticketID)
	}
	query += " ORDER BY confirmed_at DESC"

	var transfers []entities.Transfer
	err := tr.db.Conn.SelectContext(ctx, &transfers, query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not get transfers: %w", err)
	}

	return transfers, nil
}
