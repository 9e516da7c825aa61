package ledger

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"tradeledger/internal/domain"
)

// memoryStore is a KeyedMetadataStore fake recording every write, used where
// testify expectations would have to predict concurrent call order.
type memoryStore struct {
	mu        sync.Mutex
	ledgers   map[string][]domain.Trade
	saves     [][]domain.Trade
	loads     int
	fail      bool
	loadDelay time.Duration
	saveDelay time.Duration
	inSave    int
	overlap   bool
}

var errInjected = errors.New("injected save failure")

func newMemoryStore() *memoryStore {
	return &memoryStore{ledgers: make(map[string][]domain.Trade)}
}

func (s *memoryStore) Load(ctx context.Context, key domain.MetadataKey) (*domain.Ledger, error) {
	time.Sleep(s.loadDelay)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	trades, ok := s.ledgers[key.Address()]
	if !ok {
		return nil, domain.ErrLedgerAbsent
	}
	return &domain.Ledger{Key: key, Trades: slices.Clone(trades)}, nil
}

func (s *memoryStore) Save(ctx context.Context, ledger domain.Ledger) error {
	s.mu.Lock()
	s.inSave++
	if s.inSave > 1 {
		s.overlap = true
	}
	s.mu.Unlock()

	time.Sleep(s.saveDelay)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inSave--
	if s.fail {
		s.fail = false
		return errInjected
	}
	s.ledgers[ledger.Key.Address()] = slices.Clone(ledger.Trades)
	s.saves = append(s.saves, slices.Clone(ledger.Trades))
	return nil
}

func (s *memoryStore) failNext(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = fail
}

func (s *memoryStore) persisted(key domain.MetadataKey) []domain.Trade {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.ledgers[key.Address()])
}

func (s *memoryStore) loadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads
}

func (s *memoryStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saves)
}

func (s *memoryStore) savedSnapshots() [][]domain.Trade {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.saves)
}

func (s *memoryStore) sawOverlap() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overlap
}
