package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerCommitsInOrder(t *testing.T) {
	ctx := context.Background()
	l := NewInMemoryLedger(1, organizer)

	mint, err := l.SubmitMintTicket(ctx, organizer, "A12", 50)
	require.NoError(t, err)

	_, err = l.SubmitTransferTicket(ctx, "BUYER-WALLET", mint.AssetID, 40)
	require.NoError(t, err)

	txns, err := l.Search(ctx, 0, 100)
	require.NoError(t, err)
	require.Len(t, txns, 2)

	assert.Equal(t, MethodMintTicket, txns[0].Method)
	assert.Equal(t, MethodTransferTicket, txns[1].Method)
	assert.Less(t, txns[0].Round, txns[1].Round)
	assert.Equal(t, mint.AssetID, txns[1].AssetID)
}

func TestLedgerRejectedTransactionsAreNotIndexed(t *testing.T) {
	ctx := context.Background()
	l := NewInMemoryLedger(1, organizer)

	mint, err := l.SubmitMintTicket(ctx, organizer, "A12", 60)
	require.NoError(t, err)

	_, err = l.SubmitTransferTicket(ctx, "BUYER-WALLET", mint.AssetID, 80)
	require.Error(t, err)
	assert.IsType(t, PriceCapExceededError{}, err)

	txns, err := l.Search(ctx, 0, 100)
	require.NoError(t, err)
	assert.Len(t, txns, 1, "only committed transactions are visible to the index")

	state, err := l.GlobalState(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(60), state.MaxResalePrice)
}

func TestLedgerSearchPagination(t *testing.T) {
	ctx := context.Background()
	l := NewInMemoryLedger(1, organizer)

	for i := 0; i < 5; i++ {
		_, err := l.SubmitMintTicket(ctx, organizer, "A1", 10)
		require.NoError(t, err)
	}

	page, err := l.Search(ctx, 0, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)

	next, err := l.Search(ctx, page[1].Round+1, 100)
	require.NoError(t, err)
	assert.Len(t, next, 3)

	// lower bound is inclusive
	again, err := l.Search(ctx, page[1].Round, 1)
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.Equal(t, page[1].ID, again[0].ID)
}
