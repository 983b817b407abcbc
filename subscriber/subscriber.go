package subscriber

import (
	"context"
	"fmt"
	"sort"
	"ticketchain/ledger"
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/sirupsen/logrus"
)

const defaultPageLimit = 100

// TransactionIndex is the read side of the ledger: committed program
// invocations ordered by (round, intra), paginated.
type TransactionIndex interface {
	Search(ctx context.Context, minRound uint64, limit int) ([]ledger.Transaction, error)
}

// Projection is the local store surface the subscriber drives. ApplyRound
// must be atomic per round and idempotent per transaction, the subscriber
// redelivers freely.
type Projection interface {
	LastPosition(ctx context.Context) (uint64, error)
	ApplyRound(ctx context.Context, round uint64, txns []ledger.Transaction) error
}

// Subscriber reconciles the local store with the ledger by polling the
// transaction index. Each pass resumes from the stored cursor, so
// restarts and failed passes replay the same range until it applies.
type Subscriber struct {
	index      TransactionIndex
	projection Projection
	interval   time.Duration
	pageLimit  int
}

func New(index TransactionIndex, projection Projection, interval time.Duration) Subscriber {
	if index == nil {
		panic("index is nil")
	}
	if projection == nil {
		panic("projection is nil")
	}

	return Subscriber{
		index:      index,
		projection: projection,
		interval:   interval,
		pageLimit:  defaultPageLimit,
	}
}

// Run polls until the context is canceled. A failing pass is retried on
// the next tick with the interval doubled up to one minute, the cursor
// guarantees nothing is lost in between.
func (s Subscriber) Run(ctx context.Context) error {
	logger := log.FromContext(ctx)
	logger.WithField("interval", s.interval).Info("Starting chain subscriber")

	backoff := s.interval

	for {
		select {
		case <-ctx.Done():
			logger.Info("Chain subscriber stopped")
			return nil
		case <-time.After(backoff):
		}

		err := s.RunOnce(ctx)
		if err != nil {
			pollFailuresCounter.Inc()
			logger.WithError(err).Error("Reconciliation pass failed")

			backoff *= 2
			if backoff > time.Minute {
				backoff = time.Minute
			}
			continue
		}

		backoff = s.interval
	}
}

// RunOnce performs a single reconciliation pass: read the cursor, fetch
// everything the index has past it, apply round by round in ledger
// order. A mid-pass failure leaves the cursor on the last fully applied
// round, the next pass resumes there.
func (s Subscriber) RunOnce(ctx context.Context) error {
	passesCounter.Inc()

	cursor, err := s.projection.LastPosition(ctx)
	if err != nil {
		return fmt.Errorf("could not read cursor: %w", err)
	}

	txns, err := s.fetchSince(ctx, cursor+1)
	if err != nil {
		return fmt.Errorf("could not fetch transactions: %w", err)
	}
	if len(txns) == 0 {
		return nil
	}

	for _, round := range groupByRound(txns) {
		err := s.projection.ApplyRound(ctx, round.round, round.txns)
		if err != nil {
			return fmt.Errorf("could not apply round %d: %w", round.round, err)
		}

		roundsAppliedCounter.Inc()
		transactionsAppliedCounter.Add(float64(len(round.txns)))
		cursorPositionGauge.Set(float64(round.round))

		log.FromContext(ctx).WithFields(logrus.Fields{
			"round": round.round,
			"txns":  len(round.txns),
		}).Info("Applied ledger round")
	}

	return nil
}

// fetchSince follows pagination until the index runs dry. Pages are
// requested by round lower bound, so a round split across a page
// boundary is re-requested whole on the next page; the seen set drops
// the duplicated prefix. A round is never left behind partially
// fetched: when a full page yields nothing new, the window is widened
// until the round fits, instead of skipping past it.
func (s Subscriber) fetchSince(ctx context.Context, minRound uint64) ([]ledger.Transaction, error) {
	var all []ledger.Transaction
	seen := map[string]bool{}
	limit := s.pageLimit

	for {
		page, err := s.index.Search(ctx, minRound, limit)
		if err != nil {
			return nil, err
		}

		fresh := 0
		for _, txn := range page {
			if seen[txn.ID] {
				continue
			}
			seen[txn.ID] = true
			all = append(all, txn)
			fresh++
		}

		if len(page) < limit {
			return all, nil
		}

		if fresh == 0 {
			// one round larger than the page, grow until it fits whole
			limit *= 2
			continue
		}
		minRound = page[len(page)-1].Round
	}
}

type roundGroup struct {
	round uint64
	txns  []ledger.Transaction
}

func groupByRound(txns []ledger.Transaction) []roundGroup {
	byRound := map[uint64][]ledger.Transaction{}
	for _, txn := range txns {
		byRound[txn.Round] = append(byRound[txn.Round], txn)
	}

	groups := make([]roundGroup, 0, len(byRound))
	for round, roundTxns := range byRound {
		sort.Slice(roundTxns, func(i, j int) bool {
			return roundTxns[i].Intra < roundTxns[j].Intra
		})
		groups = append(groups, roundGroup{round: round, txns: roundTxns})
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].round < groups[j].round
	})

	return groups
}
