package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type GetSupportedPairingsResponse struct {
	Pairings []string `json:"pairings" example:"btc_eth,eth_btc"`
}

// GetRate godoc
// @Summary Market info for a pairing
// @Description Rate, limits and miner fee for a coin pairing; answers are cached briefly
// @Tags Rates
// @Produce json
// @Param pair path string true "Pair code" example(btc_eth)
// @Success 200 {object} domain.MarketInfo
// @Failure 400 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /rates/{pair} [get]
func (h *Handler) GetRate(w http.ResponseWriter, r *http.Request) {
	pairing, err := h.validator.ParsePairing(chi.URLParam(r, "pair"))
	if err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	if info, ok := h.rates.Get(pairing); ok {
		writeJSON(w, http.StatusOK, info)
		return
	}

	info, err := h.quotes.GetRate(r.Context(), pairing)
	if err != nil {
		writeServiceError(w, err, logrus.Fields{"handler": "GetRate", "pair": pairing.Code()}, "ups, couldn't get rate this time")
		return
	}
	h.rates.Set(pairing, info, h.rateTTL)
	writeJSON(w, http.StatusOK, info)
}

// GetSupportedPairings godoc
// @Summary List supported pairings
// @Description Pair codes accepted by quote and rate endpoints
// @Tags Rates
// @Produce json
// @Success 200 {object} GetSupportedPairingsResponse
// @Router /pairings [get]
func (h *Handler) GetSupportedPairings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, GetSupportedPairingsResponse{
		Pairings: h.validator.SupportedPairings(),
	})
}

