package trade

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"tradeledger/internal/domain"

	"github.com/sirupsen/logrus"
)

const numWorkers = 5
const perRequestTimeout = 5 * time.Second

// Ledger is the part of the trade ledger cache the poll job needs.
type Ledger interface {
	ListTrades() ([]domain.Trade, error)
	ModifyTrade(ctx context.Context, orderID string, modify func(domain.Trade) (domain.Trade, bool)) (bool, error)
}

type StatusSource interface {
	GetTradeStatus(ctx context.Context, address string) (domain.TradeStatusResponse, error)
}

type statusUpdate struct {
	Address string
	Status  domain.TradeStatusResponse
}

// PollPendingTrades refreshes the status of every non-terminal trade from the exchange
// and writes changed trades back through the ledger.
func PollPendingTrades(ctx context.Context, execID string, ledger Ledger, statuses StatusSource) error {
	trades, err := ledger.ListTrades()
	if err != nil {
		return fmt.Errorf("failed to list trades: %w", err)
	}

	pending := getPendingTrades(trades)
	if len(pending) == 0 {
		logrus.Infof("No pending trades this time; execID: %s", execID)
		return nil
	}

	logrus.Infof("%d pending trades were found, start polling; execID: %s", len(pending), execID)

	statusByAddress := fetchInParallel(ctx, statuses, getUniqueAddresses(pending))

	countUpdated, err := applyStatusChanges(ctx, ledger, pending, statusByAddress)
	if err != nil {
		return err
	}

	logrus.Infof("%d trades changed status; execID: %s", countUpdated, execID)
	return nil
}

func getPendingTrades(trades []domain.Trade) []domain.Trade {
	pending := make([]domain.Trade, 0, len(trades))
	for _, t := range trades {
		if t.Status.Terminal() || t.DepositAddress() == "" {
			continue
		}
		pending = append(pending, t)
	}
	return pending
}

func getUniqueAddresses(trades []domain.Trade) []string {
	seen := make(map[string]struct{}, len(trades))
	addresses := make([]string, 0, len(trades))
	for _, t := range trades {
		if _, ok := seen[t.DepositAddress()]; ok {
			continue
		}
		seen[t.DepositAddress()] = struct{}{}
		addresses = append(addresses, t.DepositAddress())
	}
	return addresses
}

// fetchInParallel asks the exchange for each address on a bounded worker pool.
// Addresses whose lookup failed are missing from the result.
func fetchInParallel(ctx context.Context, statuses StatusSource, addresses []string) map[string]domain.TradeStatusResponse {
	workQueue := make(chan string, len(addresses))
	for _, address := range addresses {
		workQueue <- address
	}
	close(workQueue)

	updatesCh := make(chan statusUpdate, len(addresses))

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			runWorker(ctx, workerID, workQueue, statuses, updatesCh)
		}(i)
	}

	wg.Wait()
	close(updatesCh)

	result := make(map[string]domain.TradeStatusResponse, len(addresses))
	for upd := range updatesCh {
		result[upd.Address] = upd.Status
	}
	return result
}

func runWorker(ctx context.Context, workerID int, workQueue <-chan string, statuses StatusSource, updatesCh chan<- statusUpdate) {
	for {
		select {
		case <-ctx.Done():
			return
		case address, ok := <-workQueue:
			if !ok {
				return
			}
			processAddress(ctx, workerID, address, statuses, updatesCh)
		}
	}
}

func processAddress(ctx context.Context, workerID int, address string, statuses StatusSource, updatesCh chan<- statusUpdate) {
	// a slow exchange answer is picked up on the next run instead
	reqCtx, cancel := context.WithTimeout(ctx, perRequestTimeout)
	defer cancel()

	status, err := statuses.GetTradeStatus(reqCtx, address)
	if err != nil {
		logrus.Warnf("Address '%s' wasn't processed by Worker %d as status call returned error: %s", address, workerID, err)
		return
	}
	if !status.Status.Known() {
		logrus.Warnf("Address '%s' returned unknown status '%s', skipping", address, status.Status)
		return
	}
	updatesCh <- statusUpdate{Address: address, Status: status}
}

// applyStatusChanges writes back every trade whose status or hashes moved. The status is
// merged onto the ledger's current copy of the trade, not the one read before polling.
func applyStatusChanges(ctx context.Context, ledger Ledger, pending []domain.Trade, statusByAddress map[string]domain.TradeStatusResponse) (int, error) {
	var errs []error
	updated := 0
	for _, t := range pending {
		status, ok := statusByAddress[t.DepositAddress()]
		if !ok {
			continue
		}
		changed, err := ledger.ModifyTrade(ctx, t.OrderID(), func(current domain.Trade) (domain.Trade, bool) {
			return withStatus(current, status)
		})
		switch {
		case errors.Is(err, domain.ErrTradeNotFound):
			// ledger was replaced by a bootstrap while polling
			logrus.Warnf("Trade '%s' disappeared from the ledger, skipping", t.OrderID())
		case err != nil:
			errs = append(errs, fmt.Errorf("failed to update trade %q: %w", t.OrderID(), err))
		case changed:
			updated++
		}
	}
	return updated, errors.Join(errs...)
}

func withStatus(t domain.Trade, status domain.TradeStatusResponse) (domain.Trade, bool) {
	next := t
	next.Status = status.Status
	if status.Transaction != "" {
		next.HashOut = status.Transaction
	}
	if status.OutgoingType != "" {
		next.AcquiredCoinType = status.OutgoingType
	}
	return next, next.Status != t.Status || next.HashOut != t.HashOut || next.AcquiredCoinType != t.AcquiredCoinType
}
