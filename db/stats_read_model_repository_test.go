package db

import (
	"context"
	"testing"
	"ticketchain/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventStats_RedeliveredEventCountsOnce(t *testing.T) {
	db := &DB{Conn: getDb()}
	readModel := NewEventStatsReadModel(db)
	ctx := context.Background()

	eventID := uuid.New()
	minted := &entities.TicketMinted{
		Header:  entities.NewEventHeaderWithIdempotencyKey("txn-mint-1-" + eventID.String()),
		EventID: &eventID,
		AsaID:   1,
	}

	require.NoError(t, readModel.OnTicketMinted(ctx, minted))
	require.NoError(t, readModel.OnTicketMinted(ctx, minted))

	stats, err := readModel.ByEventID(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TicketsMinted)
}

func TestEventStats_TransferAddsResaleVolume(t *testing.T) {
	db := &DB{Conn: getDb()}
	readModel := NewEventStatsReadModel(db)
	ctx := context.Background()

	eventID := uuid.New()

	err := readModel.OnTicketTransferred(ctx, &entities.TicketTransferred{
		Header:  entities.NewEventHeaderWithIdempotencyKey("txn-transfer-1-" + eventID.String()),
		EventID: &eventID,
		Price:   120,
	})
	require.NoError(t, err)

	err = readModel.OnTicketTransferred(ctx, &entities.TicketTransferred{
		Header:  entities.NewEventHeaderWithIdempotencyKey("txn-transfer-2-" + eventID.String()),
		EventID: &eventID,
		Price:   130,
	})
	require.NoError(t, err)

	stats, err := readModel.ByEventID(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TransfersConfirmed)
	assert.EqualValues(t, 250, stats.ResaleVolume)
}

func TestEventStats_GapHealedEventWithoutEventIDIsSkipped(t *testing.T) {
	db := &DB{Conn: getDb()}
	readModel := NewEventStatsReadModel(db)
	ctx := context.Background()

	err := readModel.OnTicketTransferred(ctx, &entities.TicketTransferred{
		Header: entities.NewEventHeaderWithIdempotencyKey("txn-orphan-1"),
		Price:  50,
	})
	require.NoError(t, err)
}
