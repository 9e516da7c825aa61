package api

import (
	_ "tradeledger/docs"
	"tradeledger/internal/trade/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	swagger "github.com/swaggo/http-swagger"
)

func NewRouter(tradeHandler *handler.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/trades", tradeHandler.ListTrades)
		r.Post("/trades", tradeHandler.AddTrade)
		r.Get("/trades/{orderId}", tradeHandler.GetByOrderID)
		r.Put("/trades/{orderId}", tradeHandler.UpdateTrade)
		r.Get("/trades/deposit/{address}", tradeHandler.GetByDeposit)
		r.Get("/trades/status/{address}", tradeHandler.GetTradeStatus)

		r.Post("/quotes", tradeHandler.GetQuote)
		r.Post("/quotes/approximate", tradeHandler.GetApproximateQuote)

		r.Get("/rates/{pair:[A-Za-z]{3}_[A-Za-z]{3}}", tradeHandler.GetRate)
		r.Get("/pairings", tradeHandler.GetSupportedPairings)
	})
	return router
}
