package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"tradeledger/internal/adapters"
	"tradeledger/internal/domain"
	"tradeledger/internal/quote"

	"github.com/sirupsen/logrus"
)

type Validator interface {
	ParsePairing(code string) (domain.CoinPairing, error)
	ValidateQuote(req domain.QuoteRequest, precise bool) error
	SupportedPairings() []string
}

type LedgerService interface {
	ListTrades() ([]domain.Trade, error)
	FindTradeByDeposit(address string) (domain.Trade, error)
	FindTradeByOrderID(orderID string) (domain.Trade, error)
	AddTrade(ctx context.Context, trade domain.Trade) error
	UpdateTrade(ctx context.Context, trade domain.Trade) error
}

type QuoteService interface {
	GetQuote(ctx context.Context, req domain.QuoteRequest) (quote.Result, error)
	GetApproximateQuote(ctx context.Context, req domain.QuoteRequest) (quote.Result, error)
	GetRate(ctx context.Context, pairing domain.CoinPairing) (domain.MarketInfo, error)
	GetTradeStatus(ctx context.Context, address string) (domain.TradeStatusResponse, error)
}

type Handler struct {
	validator Validator
	ledger    LedgerService
	quotes    QuoteService
	rates     adapters.MarketInfoCache
	rateTTL   time.Duration
}

func NewTradeHandler(validator Validator, ledger LedgerService, quotes QuoteService, rates adapters.MarketInfoCache, rateTTL time.Duration) *Handler {
	return &Handler{validator: validator, ledger: ledger, quotes: quotes, rates: rates, rateTTL: rateTTL}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error: errorMsg,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// writeServiceError maps ledger and gateway sentinels onto HTTP statuses.
// Anything unexpected is logged with fields and answered with fallback.
func writeServiceError(w http.ResponseWriter, err error, fields logrus.Fields, fallback string) {
	switch {
	case errors.Is(err, domain.ErrNotInitialized):
		writeError(w, http.StatusServiceUnavailable, "trade ledger is not initialized")
	case errors.Is(err, domain.ErrTradeNotFound):
		writeError(w, http.StatusNotFound, "trade not found")
	case errors.Is(err, domain.ErrDuplicateOrderID):
		writeError(w, http.StatusConflict, "trade with this order id already exists")
	case errors.Is(err, domain.ErrPersistenceFailure):
		logrus.WithError(err).WithFields(fields).Error("trade ledger wasn't persisted")
		writeError(w, http.StatusBadGateway, "ups, couldn't persist trade ledger this time")
	case errors.Is(err, domain.ErrGatewayFailure):
		logrus.WithError(err).WithFields(fields).Error("exchange call failed")
		writeError(w, http.StatusBadGateway, "ups, exchange is unavailable this time")
	default:
		logrus.WithError(err).WithFields(fields).Error(fallback)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}
