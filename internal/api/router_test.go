package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tradeledger/internal/domain"
	"tradeledger/internal/trade"
	"tradeledger/internal/trade/handler"

	"github.com/stretchr/testify/require"
)

func newTestRouter() http.Handler {
	validator := trade.NewValidator([]domain.CoinPairing{domain.BTCToETH, domain.ETHToBTC})
	return NewRouter(handler.NewTradeHandler(validator, nil, nil, nil, time.Second))
}

func TestRouter_Healthz(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestRouter_Pairings(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/pairings", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var body handler.GetSupportedPairingsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Equal(t, []string{"btc_eth", "eth_btc"}, body.Pairings)
}

func TestRouter_RatePatternRejectsMalformedPair(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/rates/bitcoin", nil))
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRouter_UnsupportedPairIsBadRequest(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/rates/bch_btc", nil))
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/v1/trades", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
