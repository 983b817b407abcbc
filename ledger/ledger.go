package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Transaction is one committed program invocation as returned by the
// transaction index: decoded method, arguments, sender and its immutable
// position in ledger order. Rejected invocations never appear here.
type Transaction struct {
	ID     string `json:"id"`
	Round  uint64 `json:"round"`
	Intra  int    `json:"intra"`
	Sender string `json:"sender"`
	Method string `json:"method"`

	// Decoded arguments and effects.
	AssetID uint64 `json:"asset_id"`
	Seat    string `json:"seat,omitempty"`
	Price   uint64 `json:"price,omitempty"`
	Payment uint64 `json:"payment,omitempty"`
}

type MintResult struct {
	AssetID    uint64
	TxnID      string
	Round      uint64
	AppAddress string
}

type TransferResult struct {
	TxnID string
	Round uint64
}

// State is the program's global state as read from the ledger.
type State struct {
	AppID          uint64 `json:"app_id"`
	AppAddress     string `json:"app_address"`
	MaxResalePrice uint64 `json:"max_resale_price"`
	LastRound      uint64 `json:"last_round"`
}

// InMemoryLedger hosts a Program behind an append-only committed
// transaction log, assigning each committed invocation a round. It
// stands in for a real node plus indexer: the submitter and the chain
// subscriber only ever see its Submit*/Search surfaces, so a network
// implementation can replace it without touching either.
type InMemoryLedger struct {
	mu      sync.Mutex
	appID   uint64
	program *Program
	round   uint64
	txns    []Transaction
}

func NewInMemoryLedger(appID uint64, organizer string) *InMemoryLedger {
	appAddress := fmt.Sprintf("PROGRAM-%d", appID)
	return &InMemoryLedger{
		appID:   appID,
		program: NewProgram(organizer, appAddress),
	}
}

func (l *InMemoryLedger) AppAddress() string {
	return l.program.appAddress
}

// SubmitMintTicket submits a mint invocation. On rejection nothing is
// committed and the program error is returned as-is.
func (l *InMemoryLedger) SubmitMintTicket(ctx context.Context, sender string, seat string, price uint64) (MintResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	assetID, err := l.program.MintTicket(sender, seat, price)
	if err != nil {
		return MintResult{}, err
	}

	txn := Transaction{
		ID:      uuid.NewString(),
		Round:   l.nextRound(),
		Sender:  sender,
		Method:  MethodMintTicket,
		AssetID: assetID,
		Seat:    seat,
		Price:   price,
	}
	l.txns = append(l.txns, txn)

	return MintResult{
		AssetID:    assetID,
		TxnID:      txn.ID,
		Round:      txn.Round,
		AppAddress: l.program.appAddress,
	}, nil
}

// SubmitTransferTicket submits a transfer invocation grouped with a
// payment from the buyer to the program address.
func (l *InMemoryLedger) SubmitTransferTicket(ctx context.Context, buyer string, assetID uint64, payment uint64) (TransferResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, err := l.program.TransferTicket(buyer, assetID, Payment{
		From:     buyer,
		Receiver: l.program.appAddress,
		Amount:   payment,
	})
	if err != nil {
		return TransferResult{}, err
	}

	txn := Transaction{
		ID:      uuid.NewString(),
		Round:   l.nextRound(),
		Sender:  buyer,
		Method:  MethodTransferTicket,
		AssetID: assetID,
		Payment: payment,
	}
	l.txns = append(l.txns, txn)

	return TransferResult{TxnID: txn.ID, Round: txn.Round}, nil
}

// Search returns committed transactions with round >= minRound, ordered
// ascending by (round, intra), at most limit per page. Callers follow
// pagination by passing the last seen round + 1 once a page comes back
// shorter than limit.
func (l *InMemoryLedger) Search(ctx context.Context, minRound uint64, limit int) ([]Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var page []Transaction
	for _, txn := range l.txns {
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

func (l *InMemoryLedger) GlobalState(ctx context.Context) (State, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return State{
		AppID:          l.appID,
		AppAddress:     l.program.appAddress,
		MaxResalePrice: l.program.MaxResalePrice(),
		LastRound:      l.round,
	}, nil
}

func (l *InMemoryLedger) nextRound() uint64 {
	l.round++
	return l.round
}
