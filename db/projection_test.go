package db

import (
	"context"
	"math/rand"
	"os"
	"sync"
	"testing"
	"ticketchain/entities"
	"ticketchain/ledger"
	"ticketchain/message/outbox"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDb *sqlx.DB
var getDbOnce sync.Once

func getDb() *sqlx.DB {
	getDbOnce.Do(func() {
		var err error
		testDb, err = sqlx.Open("postgres", os.Getenv("POSTGRES_URL"))
		if err != nil {
			panic(err)
		}

		db := DB{Conn: testDb}
		db.MigrateSchema()

		// creates the outbox tables ApplyRound publishes into
		outbox.SubscribeForPGMessages(testDb, log.NewWatermill(log.FromContext(context.Background())))
	})
	return testDb
}

func newTestProjection(t *testing.T) (Projection, *DB) {
	t.Helper()

	db := &DB{Conn: getDb()}

	// each test gets its own program id, so cursors don't collide
	return NewProjection(db, uint64(rand.Int63())), db
}

func TestProjection_MintSupersedesPending(t *testing.T) {
	projection, db := newTestProjection(t)
	ticketRepo := NewTicketRepo(db)
	ctx := context.Background()

	asaID := uint64(rand.Int63())
	txnID := uuid.NewString()

	pendingTxnID := uuid.NewString()
	err := ticketRepo.CreatePending(ctx, entities.Ticket{
		TicketID:           uuid.New(),
		SeatNumber:         "B-7",
		AsaID:              asaID,
		TicketPrice:        90,
		Status:             entities.TicketStatusPending,
		CurrentOwnerWallet: "ORG",
		TxnID:              &pendingTxnID,
	})
	require.NoError(t, err)

	mint := ledger.Transaction{
		ID:      txnID,
		Round:   1,
		Sender:  "ORG",
		Method:  ledger.MethodMintTicket,
		AssetID: asaID,
		Seat:    "B-7",
		Price:   90,
	}

	err = projection.ApplyRound(ctx, 1, []ledger.Transaction{mint})
	require.NoError(t, err)

	ticket, err := ticketRepo.ByAsaID(ctx, asaID)
	require.NoError(t, err)
	assert.Equal(t, entities.TicketStatusMinted, ticket.Status)
	assert.Equal(t, "ORG", ticket.CurrentOwnerWallet)
	require.NotNil(t, ticket.TxnID)
	assert.Equal(t, txnID, *ticket.TxnID)

	// redelivery of the same round is absorbed
	err = projection.ApplyRound(ctx, 1, []ledger.Transaction{mint})
	require.NoError(t, err)

	again, err := ticketRepo.ByAsaID(ctx, asaID)
	require.NoError(t, err)
	assert.Equal(t, ticket.TicketID, again.TicketID)
	assert.Equal(t, entities.TicketStatusMinted, again.Status)
}

func TestProjection_TransferMovesOwnershipOnce(t *testing.T) {
	projection, db := newTestProjection(t)
	ticketRepo := NewTicketRepo(db)
	transferRepo := NewTransferRepository(db)
	ctx := context.Background()

	asaID := uint64(rand.Int63())

	err := projection.ApplyRound(ctx, 1, []ledger.Transaction{{
		ID:      uuid.NewString(),
		Round:   1,
		Sender:  "ORG",
		Method:  ledger.MethodMintTicket,
		AssetID: asaID,
		Seat:    "C-1",
		Price:   100,
	}})
	require.NoError(t, err)

	transfer := ledger.Transaction{
		ID:      uuid.NewString(),
		Round:   2,
		Sender:  "BUYER",
		Method:  ledger.MethodTransferTicket,
		AssetID: asaID,
		Payment: 120,
	}

	err = projection.ApplyRound(ctx, 2, []ledger.Transaction{transfer})
	require.NoError(t, err)

	// duplicate delivery must not double the audit trail
	err = projection.ApplyRound(ctx, 2, []ledger.Transaction{transfer})
	require.NoError(t, err)

	ticket, err := ticketRepo.ByAsaID(ctx, asaID)
	require.NoError(t, err)
	assert.Equal(t, entities.TicketStatusTransferred, ticket.Status)
	assert.Equal(t, "BUYER", ticket.CurrentOwnerWallet)
	assert.EqualValues(t, 120, ticket.TicketPrice)

	transfers, err := transferRepo.GetAll(ctx, &ticket.TicketID)
	require.NoError(t, err)
	require.Len(t, transfers, 1)
	assert.Equal(t, "ORG", transfers[0].FromWallet)
	assert.Equal(t, "BUYER", transfers[0].ToWallet)
}

func TestProjection_TransferWithoutMintIsHealed(t *testing.T) {
	projection, db := newTestProjection(t)
	ticketRepo := NewTicketRepo(db)
	ctx := context.Background()

	asaID := uint64(rand.Int63())

	err := projection.ApplyRound(ctx, 7, []ledger.Transaction{{
		ID:      uuid.NewString(),
		Round:   7,
		Sender:  "BUYER",
		Method:  ledger.MethodTransferTicket,
		AssetID: asaID,
		Payment: 80,
	}})
	require.NoError(t, err)

	ticket, err := ticketRepo.ByAsaID(ctx, asaID)
	require.NoError(t, err)
	assert.Equal(t, "UNKNOWN", ticket.SeatNumber)
	assert.Equal(t, entities.TicketStatusTransferred, ticket.Status)
	assert.Equal(t, "BUYER", ticket.CurrentOwnerWallet)

	transfers, err := NewTransferRepository(db).GetAll(ctx, &ticket.TicketID)
	require.NoError(t, err)
	require.Len(t, transfers, 1)
	assert.Equal(t, "UNKNOWN", transfers[0].FromWallet)
}

func TestProjection_CursorNeverMovesBack(t *testing.T) {
	projection, _ := newTestProjection(t)
	ctx := context.Background()

	err := projection.ApplyRound(ctx, 5, nil)
	require.NoError(t, err)

	position, err := projection.LastPosition(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 5, position)

	err = projection.ApplyRound(ctx, 3, nil)
	require.NoError(t, err)

	position, err = projection.LastPosition(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 5, position)
}

func TestProjection_FreshStoreStartsAtZero(t *testing.T) {
	projection, _ := newTestProjection(t)

	position, err := projection.LastPosition(context.Background())
	require.NoError(t, err)
	assert.Zero(t, position)
}
