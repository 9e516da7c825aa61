package adapters

import (
	"context"
	"time"

	"tradeledger/internal/domain"
)

// KeyedMetadataStore persists the serialized ledger addressed by a derived key.
// Load returns domain.ErrLedgerAbsent when nothing was stored for the key yet.
type KeyedMetadataStore interface {
	Load(ctx context.Context, key domain.MetadataKey) (*domain.Ledger, error)
	Save(ctx context.Context, ledger domain.Ledger) error
}

type QuoteGateway interface {
	GetQuote(ctx context.Context, req domain.QuoteRequest) (domain.QuoteResponse, error)
	GetApproximateQuote(ctx context.Context, req domain.QuoteRequest) (domain.QuoteResponse, error)
	GetMarketInfo(ctx context.Context, pairing domain.CoinPairing) (domain.MarketInfo, error)
	GetTradeStatus(ctx context.Context, address string) (domain.TradeStatusResponse, error)
}

type MarketInfoCache interface {
	Get(pairing domain.CoinPairing) (domain.MarketInfo, bool)
	Set(pairing domain.CoinPairing, info domain.MarketInfo, ttl time.Duration)
}
