package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"tradeledger/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

const maxTradeBodyBytes = 8 << 10

type ListTradesResponse struct {
	Trades []domain.Trade `json:"trades"`
}

// ListTrades godoc
// @Summary List trades
// @Description Returns the wallet's trade ledger in insertion order
// @Tags Trades
// @Produce json
// @Success 200 {object} ListTradesResponse
// @Failure 503 {object} errorResponse
// @Router /trades [get]
func (h *Handler) ListTrades(w http.ResponseWriter, _ *http.Request) {
	trades, err := h.ledger.ListTrades()
	if err != nil {
		writeServiceError(w, err, logrus.Fields{"handler": "ListTrades"}, "ups, couldn't list trades this time")
		return
	}
	writeJSON(w, http.StatusOK, ListTradesResponse{Trades: trades})
}

// AddTrade godoc
// @Summary Record a trade
// @Description Appends a trade to the ledger and persists it
// @Tags Trades
// @Accept json
// @Produce json
// @Param request body domain.Trade true "Trade"
// @Success 201 {object} domain.Trade
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Failure 503 {object} errorResponse
// @Router /trades [post]
func (h *Handler) AddTrade(w http.ResponseWriter, r *http.Request) {
	trade, ok := decodeTrade(w, r)
	if !ok {
		return
	}
	if trade.OrderID() == "" {
		writeError(w, http.StatusBadRequest, "quote.orderId is required")
		return
	}

	if err := h.ledger.AddTrade(r.Context(), trade); err != nil {
		writeServiceError(w, err, logrus.Fields{"handler": "AddTrade", "orderId": trade.OrderID()}, "ups, couldn't add trade this time")
		return
	}
	writeJSON(w, http.StatusCreated, trade)
}

// UpdateTrade godoc
// @Summary Replace a trade
// @Description Replaces the trade with the given order id, keeping its position in the ledger
// @Tags Trades
// @Accept json
// @Produce json
// @Param orderId path string true "Order ID"
// @Param request body domain.Trade true "Trade"
// @Success 200 {object} domain.Trade
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Failure 503 {object} errorResponse
// @Router /trades/{orderId} [put]
func (h *Handler) UpdateTrade(w http.ResponseWriter, r *http.Request) {
	orderID := strings.TrimSpace(chi.URLParam(r, "orderId"))
	if orderID == "" {
		writeError(w, http.StatusBadRequest, "order id is required")
		return
	}
	trade, ok := decodeTrade(w, r)
	if !ok {
		return
	}
	if trade.OrderID() != "" && trade.OrderID() != orderID {
		writeError(w, http.StatusBadRequest, "order id in body doesn't match path")
		return
	}
	trade.Quote.OrderID = orderID

	if err := h.ledger.UpdateTrade(r.Context(), trade); err != nil {
		writeServiceError(w, err, logrus.Fields{"handler": "UpdateTrade", "orderId": orderID}, "ups, couldn't update trade this time")
		return
	}
	writeJSON(w, http.StatusOK, trade)
}

// GetByOrderID godoc
// @Summary Find trade by order id
// @Tags Trades
// @Produce json
// @Param orderId path string true "Order ID"
// @Success 200 {object} domain.Trade
// @Failure 404 {object} errorResponse
// @Failure 503 {object} errorResponse
// @Router /trades/{orderId} [get]
func (h *Handler) GetByOrderID(w http.ResponseWriter, r *http.Request) {
	orderID := strings.TrimSpace(chi.URLParam(r, "orderId"))
	if orderID == "" {
		writeError(w, http.StatusBadRequest, "order id is required")
		return
	}

	trade, err := h.ledger.FindTradeByOrderID(orderID)
	if err != nil {
		writeServiceError(w, err, logrus.Fields{"handler": "GetByOrderID", "orderId": orderID}, "ups, couldn't find trade this time")
		return
	}
	writeJSON(w, http.StatusOK, trade)
}

// GetByDeposit godoc
// @Summary Find trade by deposit address
// @Tags Trades
// @Produce json
// @Param address path string true "Deposit address"
// @Success 200 {object} domain.Trade
// @Failure 404 {object} errorResponse
// @Failure 503 {object} errorResponse
// @Router /trades/deposit/{address} [get]
func (h *Handler) GetByDeposit(w http.ResponseWriter, r *http.Request) {
	address := strings.TrimSpace(chi.URLParam(r, "address"))
	if address == "" {
		writeError(w, http.StatusBadRequest, "deposit address is required")
		return
	}

	trade, err := h.ledger.FindTradeByDeposit(address)
	if err != nil {
		writeServiceError(w, err, logrus.Fields{"handler": "GetByDeposit", "address": address}, "ups, couldn't find trade this time")
		return
	}
	writeJSON(w, http.StatusOK, trade)
}

// GetTradeStatus godoc
// @Summary Exchange status of a deposit address
// @Description Asks the exchange for the current status of the trade behind a deposit address
// @Tags Trades
// @Produce json
// @Param address path string true "Deposit address"
// @Success 200 {object} domain.TradeStatusResponse
// @Failure 502 {object} errorResponse
// @Router /trades/status/{address} [get]
func (h *Handler) GetTradeStatus(w http.ResponseWriter, r *http.Request) {
	address := strings.TrimSpace(chi.URLParam(r, "address"))
	if address == "" {
		writeError(w, http.StatusBadRequest, "deposit address is required")
		return
	}

	status, err := h.quotes.GetTradeStatus(r.Context(), address)
	if err != nil {
		writeServiceError(w, err, logrus.Fields{"handler": "GetTradeStatus", "address": address}, "ups, couldn't get trade status this time")
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func decodeTrade(w http.ResponseWriter, r *http.Request) (domain.Trade, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxTradeBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var trade domain.Trade
	if err := dec.Decode(&trade); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return domain.Trade{}, false
	}
	trade.Quote.OrderID = strings.TrimSpace(trade.Quote.OrderID)

	if trade.Status == "" {
		trade.Status = domain.StatusNoDeposits
	}
	if !trade.Status.Known() {
		writeError(w, http.StatusBadRequest, "unknown trade status")
		return domain.Trade{}, false
	}
	if trade.Timestamp.IsZero() {
		trade.Timestamp = time.Now().UTC()
	}
	return trade, true
}
