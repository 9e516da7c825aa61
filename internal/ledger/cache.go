// Package ledger holds the in-process view of the wallet's trade ledger and keeps
// it consistent with the keyed metadata store.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"tradeledger/internal/adapters"
	"tradeledger/internal/domain"
	"tradeledger/internal/gate"

	"github.com/sirupsen/logrus"
)

var errUnchanged = errors.New("trade unchanged")

type state int

const (
	stateUninitialized state = iota
	stateLoading
	stateReady
	stateFailed
)

// Cache owns the session's ledger. Reads are served from memory; mutations are
// applied optimistically and rolled back when the store rejects them.
type Cache struct {
	store adapters.KeyedMetadataStore
	gate  *gate.Gate

	mu     sync.RWMutex
	state  state
	ledger domain.Ledger
	err    error
}

// Bootstrap loads the ledger for key, creating and persisting an empty one when the
// store has none. Concurrent calls for the same key share one load.
func (c *Cache) Bootstrap(ctx context.Context, key domain.MetadataKey) (domain.Ledger, error) {
	ledger, err := gate.Do(ctx, c.gate, gate.LedgerLoad, key.Address(), func(ctx context.Context) (domain.Ledger, error) {
		var loaded domain.Ledger
		// wait for in-flight mutations so the replaced ledger is never rolled back into place
		err := c.gate.Serialize(ctx, gate.LedgerSave, func(ctx context.Context) error {
			c.setState(stateLoading, domain.Ledger{}, nil)
			l, loadErr := c.loadOrCreate(ctx, key)
			if loadErr != nil {
				loadErr = fmt.Errorf("%w: %w", domain.ErrBootstrapFailure, loadErr)
				c.setState(stateFailed, domain.Ledger{}, loadErr)
				return loadErr
			}
			c.setState(stateReady, l, nil)
			loaded = l
			return nil
		})
		return loaded, err
	})
	if err != nil {
		logrus.WithError(err).WithField("key", shortAddress(key)).Error("Trade ledger bootstrap failed")
		return domain.Ledger{}, err
	}
	logrus.WithFields(logrus.Fields{"key": shortAddress(key), "trades": len(ledger.Trades)}).Info("Trade ledger ready")
	return copyLedger(ledger), nil
}

func (c *Cache) loadOrCreate(ctx context.Context, key domain.MetadataKey) (domain.Ledger, error) {
	loaded, err := c.store.Load(ctx, key)
	if err == nil {
		if loaded == nil {
			return domain.Ledger{}, errors.New("store returned no ledger")
		}
		trades := make([]domain.Trade, len(loaded.Trades))
		copy(trades, loaded.Trades)
		return domain.Ledger{Key: slices.Clone(key), Trades: trades}, nil
	}
	if !errors.Is(err, domain.ErrLedgerAbsent) {
		return domain.Ledger{}, fmt.Errorf("failed to load trade ledger: %w", err)
	}

	created := domain.NewLedger(key)
	if err = c.store.Save(ctx, created); err != nil {
		return domain.Ledger{}, fmt.Errorf("failed to persist new trade ledger: %w", err)
	}
	logrus.WithField("key", shortAddress(key)).Info("No trade ledger found, created an empty one")
	return created, nil
}

// ListTrades returns the cached trades in ledger order.
func (c *Cache) ListTrades() ([]domain.Trade, error) {
	trades, err := c.snapshot()
	if err != nil {
		return nil, err
	}
	out := make([]domain.Trade, len(trades))
	copy(out, trades)
	return out, nil
}

// FindTradeByDeposit returns the first trade whose quote deposit address equals address.
func (c *Cache) FindTradeByDeposit(address string) (domain.Trade, error) {
	return c.find(func(t domain.Trade) bool { return t.DepositAddress() == address })
}

// FindTradeByOrderID returns the trade with the given exchange order id.
func (c *Cache) FindTradeByOrderID(orderID string) (domain.Trade, error) {
	return c.find(func(t domain.Trade) bool { return t.OrderID() == orderID })
}

func (c *Cache) find(match func(domain.Trade) bool) (domain.Trade, error) {
	trades, err := c.snapshot()
	if err != nil {
		return domain.Trade{}, err
	}
	i := slices.IndexFunc(trades, match)
	if i < 0 {
		return domain.Trade{}, domain.ErrTradeNotFound
	}
	return trades[i], nil
}

// AddTrade appends trade and persists the ledger. Nothing is kept if the save fails.
func (c *Cache) AddTrade(ctx context.Context, trade domain.Trade) error {
	return c.apply(ctx, "add", func(trades []domain.Trade) ([]domain.Trade, error) {
		if slices.ContainsFunc(trades, func(t domain.Trade) bool { return t.OrderID() == trade.OrderID() }) {
			return nil, fmt.Errorf("%w: %q", domain.ErrDuplicateOrderID, trade.OrderID())
		}
		next := make([]domain.Trade, len(trades), len(trades)+1)
		copy(next, trades)
		return append(next, trade), nil
	})
}

// UpdateTrade replaces the trade with the same order id, keeping its position.
func (c *Cache) UpdateTrade(ctx context.Context, trade domain.Trade) error {
	return c.apply(ctx, "update", func(trades []domain.Trade) ([]domain.Trade, error) {
		i := slices.IndexFunc(trades, func(t domain.Trade) bool { return t.OrderID() == trade.OrderID() })
		if i < 0 {
			return nil, domain.ErrTradeNotFound
		}
		next := slices.Clone(trades)
		next[i] = trade
		return next, nil
	})
}

// ModifyTrade applies modify to the current trade with orderID on the save lane and
// persists the result. A false from modify leaves the ledger untouched.
func (c *Cache) ModifyTrade(ctx context.Context, orderID string, modify func(domain.Trade) (domain.Trade, bool)) (bool, error) {
	err := c.apply(ctx, "modify", func(trades []domain.Trade) ([]domain.Trade, error) {
		i := slices.IndexFunc(trades, func(t domain.Trade) bool { return t.OrderID() == orderID })
		if i < 0 {
			return nil, domain.ErrTradeNotFound
		}
		next, changed := modify(trades[i])
		if !changed {
			return nil, errUnchanged
		}
		next.Quote.OrderID = orderID
		out := slices.Clone(trades)
		out[i] = next
		return out, nil
	})
	if errors.Is(err, errUnchanged) {
		return false, nil
	}
	return err == nil, err
}

// apply runs one mutation as a unit: the new trade list replaces the visible one in a
// single step, and the captured previous list is restored if persisting fails.
func (c *Cache) apply(ctx context.Context, op string, mutate func([]domain.Trade) ([]domain.Trade, error)) error {
	return c.gate.Serialize(ctx, gate.LedgerSave, func(ctx context.Context) error {
		c.mu.Lock()
		if c.state != stateReady {
			c.mu.Unlock()
			return domain.ErrNotInitialized
		}
		previous := c.ledger
		next, err := mutate(previous.Trades)
		if err != nil {
			c.mu.Unlock()
			return err
		}
		c.ledger = previous.WithTrades(next)
		c.mu.Unlock()

		if err = c.store.Save(ctx, previous.WithTrades(next)); err != nil {
			c.mu.Lock()
			c.ledger = previous
			c.mu.Unlock()
			logrus.WithError(err).WithFields(logrus.Fields{"op": op, "key": shortAddress(previous.Key)}).
				Warn("Trade ledger save failed, mutation rolled back")
			return fmt.Errorf("%w: %w", domain.ErrPersistenceFailure, err)
		}
		return nil
	})
}

func (c *Cache) snapshot() ([]domain.Trade, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state != stateReady {
		return nil, domain.ErrNotInitialized
	}
	return c.ledger.Trades, nil
}

func (c *Cache) setState(s state, ledger domain.Ledger, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = s
	c.ledger = ledger
	c.err = err
}

// Err returns the cause of the last failed bootstrap, if the cache is in the failed state.
func (c *Cache) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state != stateFailed {
		return nil
	}
	return c.err
}

// Ready reports whether reads and mutations can be served.
func (c *Cache) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state == stateReady
}

func copyLedger(l domain.Ledger) domain.Ledger {
	return domain.Ledger{Key: slices.Clone(l.Key), Trades: slices.Clone(l.Trades)}
}

func shortAddress(key domain.MetadataKey) string {
	return key.Address()[:12]
}

func NewCache(store adapters.KeyedMetadataStore, g *gate.Gate) *Cache {
	return &Cache{store: store, gate: g}
}
