package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"tradeledger/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *MetadataStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "wallet.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestMetadataStore_Load_Absent(t *testing.T) {
	s := openStore(t)

	_, err := s.Load(context.Background(), domain.MetadataKey("unknown"))
	require.ErrorIs(t, err, domain.ErrLedgerAbsent)
}

func TestMetadataStore_SaveThenLoad(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	key := domain.MetadataKey("metadata-node")
	trade := domain.Trade{
		Status: domain.StatusNoDeposits,
		Quote: domain.Quote{
			OrderID:       "ord-1",
			Deposit:       "3J98t1Wp",
			DepositAmount: decimal.RequireFromString("1.5"),
		},
		Timestamp: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	require.NoError(t, s.Save(ctx, domain.NewLedger(key)))
	require.NoError(t, s.Save(ctx, domain.Ledger{Key: key, Trades: []domain.Trade{trade}}))

	loaded, err := s.Load(ctx, key)
	require.NoError(t, err)
	require.Len(t, loaded.Trades, 1)
	require.Equal(t, "ord-1", loaded.Trades[0].OrderID())
	require.Equal(t, domain.StatusNoDeposits, loaded.Trades[0].Status)
	require.True(t, decimal.RequireFromString("1.5").Equal(loaded.Trades[0].Quote.DepositAmount))
}

func TestMetadataStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.db")
	key := domain.MetadataKey("metadata-node")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, domain.Ledger{Key: key, Trades: []domain.Trade{{Quote: domain.Quote{OrderID: "A"}}}}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	loaded, err := s.Load(ctx, key)
	require.NoError(t, err)
	require.Len(t, loaded.Trades, 1)
	require.Equal(t, "A", loaded.Trades[0].OrderID())
}

func TestMetadataStore_CanceledContext(t *testing.T) {
	s := openStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Load(ctx, domain.MetadataKey("k"))
	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrLedgerAbsent)
}
