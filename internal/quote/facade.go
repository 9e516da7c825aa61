// Package quote normalizes exchange gateway answers for quotes, rates and trade status.
package quote

import (
	"context"
	"fmt"

	"tradeledger/internal/adapters"
	"tradeledger/internal/domain"
	"tradeledger/internal/gate"
)

type Facade struct {
	gateway adapters.QuoteGateway
	gate    *gate.Gate
}

// GetQuote asks the exchange for a fixed quote. Business refusals come back as an
// error Result; transport failures come back as err.
func (f *Facade) GetQuote(ctx context.Context, req domain.QuoteRequest) (Result, error) {
	return f.quote(ctx, gate.Quote, req, f.gateway.GetQuote)
}

func (f *Facade) GetApproximateQuote(ctx context.Context, req domain.QuoteRequest) (Result, error) {
	return f.quote(ctx, gate.ApproximateQuote, req, f.gateway.GetApproximateQuote)
}

func (f *Facade) GetTradeStatus(ctx context.Context, address string) (domain.TradeStatusResponse, error) {
	return gate.Do(ctx, f.gate, gate.TradeStatus, address, func(ctx context.Context) (domain.TradeStatusResponse, error) {
		return f.gateway.GetTradeStatus(ctx, address)
	})
}

func (f *Facade) GetRate(ctx context.Context, pairing domain.CoinPairing) (domain.MarketInfo, error) {
	return gate.Do(ctx, f.gate, gate.Rate, pairing.Code(), func(ctx context.Context) (domain.MarketInfo, error) {
		return f.gateway.GetMarketInfo(ctx, pairing)
	})
}

func (f *Facade) quote(ctx context.Context, category gate.Category, req domain.QuoteRequest,
	call func(context.Context, domain.QuoteRequest) (domain.QuoteResponse, error)) (Result, error) {
	resp, err := gate.Do(ctx, f.gate, category, req.Fingerprint(), func(ctx context.Context) (domain.QuoteResponse, error) {
		return call(ctx, req)
	})
	if err != nil {
		return Result{}, err
	}
	if resp.Error != "" {
		return ErrorResult(resp.Error), nil
	}
	if resp.Success == nil {
		return Result{}, fmt.Errorf("%w: %s response carried neither quote nor error", domain.ErrGatewayFailure, category)
	}
	return QuoteResult(*resp.Success), nil
}

func NewFacade(gateway adapters.QuoteGateway, g *gate.Gate) *Facade {
	return &Facade{gateway: gateway, gate: g}
}
