package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestMetadataKey_Address(t *testing.T) {
	a := MetadataKey("wallet-key").Address()

	require.Len(t, a, 64)
	require.Equal(t, a, MetadataKey("wallet-key").Address())
	require.NotEqual(t, a, MetadataKey("other-key").Address())
	require.NotContains(t, a, "wallet-key")
}

func TestLedger_PayloadOmitsKey(t *testing.T) {
	key := MetadataKey("secret-key-material")
	ledger := NewLedger(key).WithTrades([]Trade{{
		Status:    StatusReceived,
		Quote:     Quote{OrderID: "A", Deposit: "dep-a", QuotedRate: decimal.RequireFromString("31.24")},
		Timestamp: time.Date(2024, 5, 2, 9, 30, 0, 0, time.UTC),
	}})

	payload, err := ledger.MarshalPayload()
	require.NoError(t, err)
	require.NotContains(t, string(payload), "secret-key-material")

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(payload, &raw))
	require.Len(t, raw, 1)
	require.Contains(t, raw, "trades")

	decoded, err := UnmarshalLedger(key, payload)
	require.NoError(t, err)
	require.Equal(t, key, decoded.Key)
	require.Len(t, decoded.Trades, 1)
	require.Equal(t, "A", decoded.Trades[0].OrderID())
	require.True(t, decimal.RequireFromString("31.24").Equal(decoded.Trades[0].Quote.QuotedRate))
}

func TestLedger_EmptyPayload(t *testing.T) {
	payload, err := Ledger{}.MarshalPayload()
	require.NoError(t, err)
	require.JSONEq(t, `{"trades":[]}`, string(payload))

	decoded, err := UnmarshalLedger(MetadataKey("k"), []byte(`{}`))
	require.NoError(t, err)
	require.NotNil(t, decoded.Trades)
	require.Empty(t, decoded.Trades)

	_, err = UnmarshalLedger(MetadataKey("k"), []byte(`{`))
	require.ErrorContains(t, err, "failed to decode trade ledger")
}

func TestNewLedger_CopiesKey(t *testing.T) {
	key := MetadataKey("abc")
	ledger := NewLedger(key)
	key[0] = 'x'
	require.Equal(t, MetadataKey("abc"), ledger.Key)
}

func TestTradeStatus(t *testing.T) {
	cases := []struct {
		status   TradeStatus
		terminal bool
		known    bool
	}{
		{StatusNoDeposits, false, true},
		{StatusReceived, false, true},
		{StatusComplete, true, true},
		{StatusFailed, true, true},
		{StatusResolved, true, true},
		{"", false, false},
		{"lost", false, false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.terminal, tc.status.Terminal(), string(tc.status))
		require.Equal(t, tc.known, tc.status.Known(), string(tc.status))
	}
}

func TestParsePairing(t *testing.T) {
	p, err := ParsePairing(" ETH_BCH ")
	require.NoError(t, err)
	require.Equal(t, ETHToBCH, p)
	require.Equal(t, "ETH", p.From)
	require.Equal(t, "BCH", p.To)
	require.Equal(t, "eth_bch", p.String())

	_, err = ParsePairing("btc_doge")
	require.ErrorIs(t, err, ErrUnsupportedPairing)
}

func TestPairings_AllParse(t *testing.T) {
	all := Pairings()
	require.Len(t, all, 6)
	for _, p := range all {
		got, err := ParsePairing(p.Code())
		require.NoError(t, err)
		require.Equal(t, p, got)
	}
}

func TestQuoteRequest_Fingerprint(t *testing.T) {
	base := QuoteRequest{Pairing: BTCToETH, DepositAmount: decimal.RequireFromString("0.5"), WithdrawalAddress: "0xabc"}

	same := base
	require.Equal(t, base.Fingerprint(), same.Fingerprint())

	keyed := base
	keyed.APIKey = "partner-key"
	require.NotEqual(t, base.Fingerprint(), keyed.Fingerprint())
	require.NotContains(t, keyed.Fingerprint(), "partner-key")
	otherKey := base
	otherKey.APIKey = "other-key"
	require.NotEqual(t, keyed.Fingerprint(), otherKey.Fingerprint())

	other := base
	other.Pairing = ETHToBTC
	require.NotEqual(t, base.Fingerprint(), other.Fingerprint())

	other = base
	other.DepositAmount = decimal.RequireFromString("0.6")
	require.NotEqual(t, base.Fingerprint(), other.Fingerprint())
}
