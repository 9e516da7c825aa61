package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type CoinPairing struct {
	From string
	To   string
	code string
}

var (
	BTCToETH = CoinPairing{From: "BTC", To: "ETH", code: "btc_eth"}
	ETHToBTC = CoinPairing{From: "ETH", To: "BTC", code: "eth_btc"}
	BTCToBCH = CoinPairing{From: "BTC", To: "BCH", code: "btc_bch"}
	BCHToBTC = CoinPairing{From: "BCH", To: "BTC", code: "bch_btc"}
	ETHToBCH = CoinPairing{From: "ETH", To: "BCH", code: "eth_bch"}
	BCHToETH = CoinPairing{From: "BCH", To: "ETH", code: "bch_eth"}
)

var pairings = map[string]CoinPairing{
	BTCToETH.code: BTCToETH,
	ETHToBTC.code: ETHToBTC,
	BTCToBCH.code: BTCToBCH,
	BCHToBTC.code: BCHToBTC,
	ETHToBCH.code: ETHToBCH,
	BCHToETH.code: BCHToETH,
}

// Code is the gateway pair code, e.g. "btc_eth".
func (p CoinPairing) Code() string { return p.code }

func (p CoinPairing) String() string { return p.code }

func ParsePairing(code string) (CoinPairing, error) {
	p, ok := pairings[strings.ToLower(strings.TrimSpace(code))]
	if !ok {
		return CoinPairing{}, fmt.Errorf("%w: %q", ErrUnsupportedPairing, code)
	}
	return p, nil
}

func Pairings() []CoinPairing {
	out := make([]CoinPairing, 0, len(pairings))
	for _, p := range pairings {
		out = append(out, p)
	}
	return out
}

type QuoteRequest struct {
	Pairing           CoinPairing
	DepositAmount     decimal.Decimal
	WithdrawalAmount  decimal.Decimal
	WithdrawalAddress string
	ReturnAddress     string
	APIKey            string
}

// Fingerprint identifies requests that would produce the same quote. A per-request
// API key is part of it, hashed so the key itself never ends up in the gate.
func (r QuoteRequest) Fingerprint() string {
	apiKey := ""
	if r.APIKey != "" {
		sum := sha256.Sum256([]byte(r.APIKey))
		apiKey = hex.EncodeToString(sum[:8])
	}
	return strings.Join([]string{
		r.Pairing.Code(),
		r.DepositAmount.String(),
		r.WithdrawalAmount.String(),
		r.WithdrawalAddress,
		r.ReturnAddress,
		apiKey,
	}, "|")
}

// QuoteResponse is the raw gateway answer: either Success or Error is populated.
type QuoteResponse struct {
	Success *Quote `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
}

type MarketInfo struct {
	Pair     string          `json:"pair"`
	Rate     decimal.Decimal `json:"rate"`
	Limit    decimal.Decimal `json:"limit"`
	Minimum  decimal.Decimal `json:"minimum"`
	MinerFee decimal.Decimal `json:"minerFee"`
	MaxLimit decimal.Decimal `json:"maxLimit"`
}

type TradeStatusResponse struct {
	Status       TradeStatus     `json:"status"`
	Address      string          `json:"address"`
	Withdraw     string          `json:"withdraw,omitempty"`
	IncomingCoin decimal.Decimal `json:"incomingCoin"`
	IncomingType string          `json:"incomingType,omitempty"`
	OutgoingCoin decimal.Decimal `json:"outgoingCoin"`
	OutgoingType string          `json:"outgoingType,omitempty"`
	Transaction  string          `json:"transaction,omitempty"`
	Error        string          `json:"error,omitempty"`
}
