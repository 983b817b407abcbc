package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"ticketchain/entities"
	"ticketchain/ledger"
	"ticketchain/message/event"
	"ticketchain/message/outbox"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
)

var gapHealsCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "ticketchain_reconciliation_gap_heals_total",
	Help: "Transfers observed without a prior mint, healed by synthesizing the ticket row.",
})

// Projection applies confirmed ledger transactions to the local store.
// One call covers one ledger round: every transaction of the round, the
// cursor advance and the outgoing domain events commit in a single local
// transaction, so partial application is impossible and the cursor can
// never run ahead of applied state.
type Projection struct {
	db        *DB
	programID uint64
}

func NewProjection(db *DB, programID uint64) Projection {
	if db == nil {
		panic("db is nil")
	}
	return Projection{
		db:        db,
		programID: programID,
	}
}

// LastPosition returns the highest fully reconciled round, zero when the
// store has never synced.
func (p Projection) LastPosition(ctx context.Context) (uint64, error) {
	var position uint64
	err := p.db.Conn.GetContext(ctx, &position, `
		SELECT position FROM sync_cursor WHERE program_id = $1`, p.programID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("could not read sync cursor: %w", err)
	}

	return position, nil
}

func (p Projection) ApplyRound(ctx context.Context, round uint64, txns []ledger.Transaction) error {
	return updateInTx(
		ctx,
		p.db.Conn,
		sql.LevelRepeatableRead,
		func(ctx context.Context, tx *sqlx.Tx) error {
			outboxPublisher, err := outbox.NewPublisherForDb(ctx, tx)
			if err != nil {
				return fmt.Errorf("could not create outbox publisher: %w", err)
			}
			eventBus := event.NewBus(outboxPublisher)

			for _, txn := range txns {
				switch txn.Method {
				case ledger.MethodMintTicket:
					err = p.applyMint(ctx, tx, eventBus, txn)
				case ledger.MethodTransferTicket:
					err = p.applyTransfer(ctx, tx, eventBus, txn)
				default:
					log.FromContext(ctx).
						WithField("method", txn.Method).
						Warn("Skipping transaction with unknown method")
				}
				if err != nil {
					return err
				}
			}

			return p.advanceCursor(ctx, tx, round)
		},
	)
}

// applyMint upserts the confirmed ticket keyed by asa_id. A provisional
// pending row from the mint endpoint is superseded; a row already
// confirmed by an earlier pass means duplicate delivery and is left
// untouched.
func (p Projection) applyMint(ctx context.Context, tx *sqlx.Tx, eventBus *cqrs.EventBus, txn ledger.Transaction) error {
	res, err := tx.ExecContext(ctx, `
		INSERT INTO
			tickets (ticket_id, seat_number, asa_id, ticket_price, status, current_owner_wallet, txn_id)
		VALUES
			($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (asa_id) DO UPDATE
		SET seat_number = excluded.seat_number,
			ticket_price = excluded.ticket_price,
			status = excluded.status,
			current_owner_wallet = excluded.current_owner_wallet,
			txn_id = excluded.txn_id
		WHERE tickets.status = $8`,
		uuid.New(), txn.Seat, txn.AssetID, txn.Price, entities.TicketStatusMinted, txn.Sender, txn.ID,
		entities.TicketStatusPending,
	)
	if err != nil {
		return fmt.Errorf("could not apply mint %s: %w", txn.ID, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not apply mint %s: %w", txn.ID, err)
	}
	if rows == 0 {
		log.FromContext(ctx).
			WithField("txn_id", txn.ID).
			Debug("Mint already applied, skipping")
		return nil
	}

	ticket, err := ticketByAsaID(ctx, tx, txn.AssetID)
	if err != nil {
		return err
	}

	return eventBus.Publish(ctx, entities.TicketMinted{
		Header:     entities.NewEventHeaderWithIdempotencyKey(txn.ID),
		TicketID:   ticket.TicketID,
		EventID:    ticket.EventID,
		AsaID:      txn.AssetID,
		SeatNumber: txn.Seat,
		Price:      txn.Price,
		Owner:      txn.Sender,
		TxnID:      txn.ID,
		Round:      txn.Round,
	})
}

// applyTransfer records the transfer and moves ownership. The transfer
// row is the idempotency guard: when the txn_id already exists the whole
// effect is absorbed as a duplicate. A transfer whose asset was minted
// before our sync history started is healed by synthesizing the ticket
// from the transfer's own metadata.
func (p Projection) applyTransfer(ctx context.Context, tx *sqlx.Tx, eventBus *cqrs.EventBus, txn ledger.Transaction) error {
	ticket, err := ticketByAsaID(ctx, tx, txn.AssetID)
	fromWallet := ticket.CurrentOwnerWallet
	if errors.Is(err, sql.ErrNoRows) {
		ticket, err = p.healMissingTicket(ctx, tx, txn)
		fromWallet = "UNKNOWN"
	}
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO
			transfers (transfer_id, ticket_id, from_wallet, to_wallet, price, txn_id)
		VALUES
			($1, $2, $3, $4, $5, $6)
		ON CONFLICT (txn_id) DO NOTHING`,
		uuid.New(), ticket.TicketID, fromWallet, txn.Sender, txn.Payment, txn.ID,
	)
	if err != nil {
		return fmt.Errorf("could not apply transfer %s: %w", txn.ID, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not apply transfer %s: %w", txn.ID, err)
	}
	if rows == 0 {
		log.FromContext(ctx).
			WithField("txn_id", txn.ID).
			Debug("Transfer already applied, skipping")
		return nil
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE tickets
		SET current_owner_wallet = $1, ticket_price = $2, status = $3
		WHERE asa_id = $4`,
		txn.Sender, txn.Payment, entities.TicketStatusTransferred, txn.AssetID,
	)
	if err != nil {
		return fmt.Errorf("could not update ticket ownership for asa %d: %w", txn.AssetID, err)
	}

	return eventBus.Publish(ctx, entities.TicketTransferred{
		Header:     entities.NewEventHeaderWithIdempotencyKey(txn.ID),
		TicketID:   ticket.TicketID,
		EventID:    ticket.EventID,
		AsaID:      txn.AssetID,
		FromWallet: fromWallet,
		ToWallet:   txn.Sender,
		Price:      txn.Payment,
		TxnID:      txn.ID,
		Round:      txn.Round,
	})
}

func (p Projection) healMissingTicket(ctx context.Context, tx *sqlx.Tx, txn ledger.Transaction) (entities.Ticket, error) {
	log.FromContext(ctx).WithFields(logrus.Fields{
		"asa_id": txn.AssetID,
		"txn_id": txn.ID,
	}).Warn("Reconciliation gap: transfer without prior mint, synthesizing ticket")
	gapHealsCounter.Inc()

	_, err := tx.ExecContext(ctx, `
		INSERT INTO
			tickets (ticket_id, seat_number, asa_id, ticket_price, status, current_owner_wallet)
		VALUES
			($1, $2, $3, $4, $5, $6)
		ON CONFLICT (asa_id) DO NOTHING`,
		uuid.New(), "UNKNOWN", txn.AssetID, txn.Payment, entities.TicketStatusTransferred, txn.Sender,
	)
	if err != nil {
		return entities.Ticket{}, fmt.Errorf("could not synthesize ticket for asa %d: %w", txn.AssetID, err)
	}

	return ticketByAsaID(ctx, tx, txn.AssetID)
}

// advanceCursor moves the cursor forward, never back.
func (p Projection) advanceCursor(ctx context.Context, tx *sqlx.Tx, position uint64) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO
			sync_cursor (program_id, position)
		VALUES
			($1, $2)
		ON CONFLICT (program_id) DO UPDATE
		SET position = excluded.position, updated_at = now()
		WHERE sync_cursor.position < excluded.position`,
		p.programID, position,
	)
	if err != nil {
		return fmt.Errorf("could not advance sync cursor: %w", err)
	}

	return nil
}

func ticketByAsaID(ctx context.Context, tx *sqlx.Tx, asaID uint64) (entities.Ticket, error) {
	var ticket entities.Ticket
	err := tx.GetContext(ctx, &ticket, `
		SELECT * FROM tickets WHERE asa_id = $1 FOR UPDATE`, asaID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return entities.Ticket{}, fmt.Errorf("could not get ticket for asa %d: %w", asaID, err)
	}

	return ticket, err
}
