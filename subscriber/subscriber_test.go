package subscriber_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"ticketchain/ledger"
	"ticketchain/subscriber"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIndex struct {
	txns []ledger.Transaction
}

func (f *fakeIndex) Search(ctx context.Context, minRound uint64, limit int) ([]ledger.Transaction, error) {
	var page []ledger.Transaction
	for _, txn := range f.txns {
		if txn.Round < minRound {
			continue
		}
		page = append(page, txn)
		if len(page) == limit {
			break
		}
	}
	return page, nil
}

type fakeProjection struct {
	cursor  uint64
	applied [][]ledger.Transaction

	failOnRound uint64
}

func (f *fakeProjection) LastPosition(ctx context.Context) (uint64, error) {
	return f.cursor, nil
}

func (f *fakeProjection) ApplyRound(ctx context.Context, round uint64, txns []ledger.Transaction) error {
	if f.failOnRound != 0 && round == f.failOnRound {
		return errors.New("apply failed")
	}
	f.applied = append(f.applied, txns)
	f.cursor = round
	return nil
}

func (f *fakeProjection) appliedIDs() []string {
	var ids []string
	for _, txns := range f.applied {
		for _, txn := range txns {
			ids = append(ids, txn.ID)
		}
	}
	return ids
}

func TestRunOnce_AppliesInLedgerOrder(t *testing.T) {
	index := &fakeIndex{txns: []ledger.Transaction{
		{ID: "t1", Round: 1, Intra: 0, Method: ledger.MethodMintTicket},
		{ID: "t2", Round: 2, Intra: 0, Method: ledger.MethodMintTicket},
		{ID: "t3", Round: 2, Intra: 1, Method: ledger.MethodTransferTicket},
		{ID: "t4", Round: 3, Intra: 0, Method: ledger.MethodTransferTicket},
	}}
	projection := &fakeProjection{}

	sub := subscriber.New(index, projection, time.Millisecond)

	err := sub.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"t1", "t2", "t3", "t4"}, projection.appliedIDs())
	assert.EqualValues(t, 3, projection.cursor)
}

func TestRunOnce_ResumesPastCursor(t *testing.T) {
	index := &fakeIndex{txns: []ledger.Transaction{
		{ID: "t1", Round: 1},
		{ID: "t2", Round: 2},
		{ID: "t3", Round: 3},
	}}
	projection := &fakeProjection{cursor: 2}

	sub := subscriber.New(index, projection, time.Millisecond)

	err := sub.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"t3"}, projection.appliedIDs())
}

func TestRunOnce_FailedRoundHaltsPassAndIsRetried(t *testing.T) {
	index := &fakeIndex{txns: []ledger.Transaction{
		{ID: "t1", Round: 1},
		{ID: "t2", Round: 2},
		{ID: "t3", Round: 3},
	}}
	projection := &fakeProjection{failOnRound: 2}

	sub := subscriber.New(index, projection, time.Millisecond)

	err := sub.RunOnce(context.Background())
	require.Error(t, err)

	// round 1 landed, rounds 2 and 3 did not
	assert.Equal(t, []string{"t1"}, projection.appliedIDs())
	assert.EqualValues(t, 1, projection.cursor)

	// next pass picks up where the failure left off
	projection.failOnRound = 0
	err = sub.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"t1", "t2", "t3"}, projection.appliedIDs())
	assert.EqualValues(t, 3, projection.cursor)
}

func TestRunOnce_RoundLargerThanPageIsAppliedWhole(t *testing.T) {
	// one round with more transactions than a single index page holds
	var txns []ledger.Transaction
	for i := 0; i < 150; i++ {
		txns = append(txns, ledger.Transaction{
			ID:     fmt.Sprintf("r1-t%03d", i),
			Round:  1,
			Intra:  i,
			Method: ledger.MethodMintTicket,
		})
	}
	txns = append(txns, ledger.Transaction{ID: "r2-t000", Round: 2, Intra: 0})

	index := &fakeIndex{txns: txns}
	projection := &fakeProjection{}

	sub := subscriber.New(index, projection, time.Millisecond)

	err := sub.RunOnce(context.Background())
	require.NoError(t, err)

	applied := projection.appliedIDs()
	require.Len(t, applied, 151)
	for i := 0; i < 150; i++ {
		assert.Equal(t, fmt.Sprintf("r1-t%03d", i), applied[i])
	}
	assert.Equal(t, "r2-t000", applied[150])
	assert.EqualValues(t, 2, projection.cursor)

	// nothing left behind for the next pass to pick up
	err = sub.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Len(t, projection.appliedIDs(), 151)
}

func TestRunOnce_EmptyIndexIsANoop(t *testing.T) {
	index := &fakeIndex{}
	projection := &fakeProjection{}

	sub := subscriber.New(index, projection, time.Millisecond)

	err := sub.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Empty(t, projection.applied)
	assert.EqualValues(t, 0, projection.cursor)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	index := &fakeIndex{}
	projection := &fakeProjection{}

	sub := subscriber.New(index, projection, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- sub.Run(ctx)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("subscriber did not stop after cancel")
	}
}
