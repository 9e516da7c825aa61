package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"tradeledger/internal/domain"
	"tradeledger/internal/quote"
	"tradeledger/internal/trade"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type QuoteRequest struct {
	Pair              string          `json:"pair" example:"btc_eth"`
	DepositAmount     decimal.Decimal `json:"depositAmount" swaggertype:"string" example:"0.25"`
	WithdrawalAmount  decimal.Decimal `json:"withdrawalAmount" swaggertype:"string" example:"0"`
	WithdrawalAddress string          `json:"withdrawalAddress"`
	ReturnAddress     string          `json:"returnAddress"`
}

// GetQuote godoc
// @Summary Precise quote
// @Description Requests a precise quote, reserving a deposit address at the exchange
// @Tags Quotes
// @Accept json
// @Produce json
// @Param request body QuoteRequest true "Quote request"
// @Success 200 {object} domain.Quote
// @Failure 400 {object} errorResponse
// @Failure 422 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /quotes [post]
func (h *Handler) GetQuote(w http.ResponseWriter, r *http.Request) {
	h.handleQuote(w, r, true)
}

// GetApproximateQuote godoc
// @Summary Approximate quote
// @Description Requests an indicative quote without reserving anything at the exchange
// @Tags Quotes
// @Accept json
// @Produce json
// @Param request body QuoteRequest true "Quote request"
// @Success 200 {object} domain.Quote
// @Failure 400 {object} errorResponse
// @Failure 422 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /quotes/approximate [post]
func (h *Handler) GetApproximateQuote(w http.ResponseWriter, r *http.Request) {
	h.handleQuote(w, r, false)
}

func (h *Handler) handleQuote(w http.ResponseWriter, r *http.Request, precise bool) {
	r.Body = http.MaxBytesReader(w, r.Body, 1024)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var body QuoteRequest
	if err := dec.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pairing, err := h.validator.ParsePairing(body.Pair)
	if err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}
	req := domain.QuoteRequest{
		Pairing:           pairing,
		DepositAmount:     body.DepositAmount,
		WithdrawalAmount:  body.WithdrawalAmount,
		WithdrawalAddress: strings.TrimSpace(body.WithdrawalAddress),
		ReturnAddress:     strings.TrimSpace(body.ReturnAddress),
	}
	if err = h.validator.ValidateQuote(req, precise); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	var res quote.Result
	if precise {
		res, err = h.quotes.GetQuote(r.Context(), req)
	} else {
		res, err = h.quotes.GetApproximateQuote(r.Context(), req)
	}
	if err != nil {
		writeServiceError(w, err, logrus.Fields{"handler": "GetQuote", "pair": pairing.Code(), "precise": precise}, "ups, couldn't get quote this time")
		return
	}

	if msg, isErr := res.ErrorMessage(); isErr {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	q, _ := res.Quote()
	writeJSON(w, http.StatusOK, q)
}

func validationMessage(err error) string {
	if errors.Is(err, domain.ErrUnsupportedPairing) {
		return domain.ErrUnsupportedPairing.Error()
	}
	switch {
	case errors.Is(err, trade.ErrPairingRequired),
		errors.Is(err, trade.ErrAmountRequired),
		errors.Is(err, trade.ErrAmountAmbiguous),
		errors.Is(err, trade.ErrAmountNegative),
		errors.Is(err, trade.ErrWithdrawalRequired):
		return err.Error()
	}
	return "invalid request"
}
