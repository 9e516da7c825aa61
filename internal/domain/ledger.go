package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"slices"
)

// MetadataKey is derived key material addressing a persisted ledger. It is opaque here.
type MetadataKey []byte

// Address is the storage address of the ledger bound to the key.
func (k MetadataKey) Address() string {
	sum := sha256.Sum256(k)
	return hex.EncodeToString(sum[:])
}

type Ledger struct {
	Key    MetadataKey
	Trades []Trade
}

func NewLedger(key MetadataKey) Ledger {
	return Ledger{Key: slices.Clone(key), Trades: []Trade{}}
}

// WithTrades returns a ledger bound to the same key holding trades.
func (l Ledger) WithTrades(trades []Trade) Ledger {
	return Ledger{Key: l.Key, Trades: trades}
}

type ledgerPayload struct {
	Trades []Trade `json:"trades"`
}

// MarshalPayload encodes the persisted part of the ledger. Key material is never written.
func (l Ledger) MarshalPayload() ([]byte, error) {
	trades := l.Trades
	if trades == nil {
		trades = []Trade{}
	}
	b, err := json.Marshal(ledgerPayload{Trades: trades})
	if err != nil {
		return nil, fmt.Errorf("failed to encode trade ledger: %w", err)
	}
	return b, nil
}

func UnmarshalLedger(key MetadataKey, payload []byte) (*Ledger, error) {
	var p ledgerPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("failed to decode trade ledger: %w", err)
	}
	if p.Trades == nil {
		p.Trades = []Trade{}
	}
	return &Ledger{Key: slices.Clone(key), Trades: p.Trades}, nil
}
