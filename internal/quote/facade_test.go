package quote

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tradeledger/internal/domain"
	"tradeledger/internal/gate"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Testify mocks ---

type MockQuoteGateway struct{ mock.Mock }

func (m *MockQuoteGateway) GetQuote(ctx context.Context, req domain.QuoteRequest) (domain.QuoteResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(domain.QuoteResponse)
	return resp, args.Error(1)
}

func (m *MockQuoteGateway) GetApproximateQuote(ctx context.Context, req domain.QuoteRequest) (domain.QuoteResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(domain.QuoteResponse)
	return resp, args.Error(1)
}

func (m *MockQuoteGateway) GetMarketInfo(ctx context.Context, pairing domain.CoinPairing) (domain.MarketInfo, error) {
	args := m.Called(ctx, pairing)
	info, _ := args.Get(0).(domain.MarketInfo)
	return info, args.Error(1)
}

func (m *MockQuoteGateway) GetTradeStatus(ctx context.Context, address string) (domain.TradeStatusResponse, error) {
	args := m.Called(ctx, address)
	resp, _ := args.Get(0).(domain.TradeStatusResponse)
	return resp, args.Error(1)
}

func quoteRequest() domain.QuoteRequest {
	return domain.QuoteRequest{
		Pairing:           domain.BTCToETH,
		DepositAmount:     decimal.RequireFromString("0.1"),
		WithdrawalAddress: "0x3b3c4f7d9a1f",
		ReturnAddress:     "1BoatSLRHtKNngkdXEeobR76b53LETtpyT",
	}
}

// --- GetQuote ---

func TestFacade_GetQuote_Success(t *testing.T) {
	gw := new(MockQuoteGateway)
	f := NewFacade(gw, gate.New())
	req := quoteRequest()
	q := domain.Quote{OrderID: "ord-1", Deposit: "3J98t1Wp", QuotedRate: decimal.RequireFromString("31.5")}

	gw.On("GetQuote", mock.Anything, req).Return(domain.QuoteResponse{Success: &q}, nil).Once()

	res, err := f.GetQuote(context.Background(), req)

	require.NoError(t, err)
	require.False(t, res.IsError())
	got, ok := res.Quote()
	require.True(t, ok)
	require.Equal(t, q, got)
	_, ok = res.ErrorMessage()
	require.False(t, ok)
	gw.AssertExpectations(t)
}

func TestFacade_GetQuote_BusinessError(t *testing.T) {
	gw := new(MockQuoteGateway)
	f := NewFacade(gw, gate.New())
	req := quoteRequest()

	gw.On("GetQuote", mock.Anything, req).Return(domain.QuoteResponse{Error: "Invalid withdrawal address"}, nil).Once()

	res, err := f.GetQuote(context.Background(), req)

	require.NoError(t, err)
	require.True(t, res.IsError())
	msg, ok := res.ErrorMessage()
	require.True(t, ok)
	require.Equal(t, "Invalid withdrawal address", msg)
	_, ok = res.Quote()
	require.False(t, ok)
}

func TestFacade_GetQuote_TransportErrorPropagatesAsIs(t *testing.T) {
	gw := new(MockQuoteGateway)
	f := NewFacade(gw, gate.New())
	req := quoteRequest()
	wantErr := errors.New("connection reset")

	gw.On("GetQuote", mock.Anything, req).Return(domain.QuoteResponse{}, wantErr).Once()

	_, err := f.GetQuote(context.Background(), req)

	require.Equal(t, wantErr, err)
}

func TestFacade_GetQuote_EmptyResponseIsGatewayFailure(t *testing.T) {
	gw := new(MockQuoteGateway)
	f := NewFacade(gw, gate.New())
	req := quoteRequest()

	gw.On("GetQuote", mock.Anything, req).Return(domain.QuoteResponse{}, nil).Once()

	_, err := f.GetQuote(context.Background(), req)

	require.ErrorIs(t, err, domain.ErrGatewayFailure)
}

func TestFacade_GetQuote_ConcurrentIdenticalRequestsShareCall(t *testing.T) {
	gw := new(MockQuoteGateway)
	f := NewFacade(gw, gate.New())
	req := quoteRequest()
	q := domain.Quote{OrderID: "ord-shared"}

	gw.On("GetQuote", mock.Anything, req).
		After(50*time.Millisecond).
		Return(domain.QuoteResponse{Success: &q}, nil).Once()

	var wg sync.WaitGroup
	results := make([]Result, 3)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := f.GetQuote(context.Background(), req)
			require.NoError(t, err)
			results[i] = res
		}(i)
	}
	wg.Wait()

	for _, res := range results {
		got, ok := res.Quote()
		require.True(t, ok)
		require.Equal(t, "ord-shared", got.OrderID)
	}
	gw.AssertNumberOfCalls(t, "GetQuote", 1)
}

func TestFacade_GetQuote_DifferentAPIKeysDoNotShareCall(t *testing.T) {
	gw := new(MockQuoteGateway)
	f := NewFacade(gw, gate.New())
	first, second := quoteRequest(), quoteRequest()
	first.APIKey = "partner-a"
	second.APIKey = "partner-b"
	qa, qb := domain.Quote{OrderID: "ord-a"}, domain.Quote{OrderID: "ord-b"}

	gw.On("GetQuote", mock.Anything, first).After(50*time.Millisecond).Return(domain.QuoteResponse{Success: &qa}, nil).Once()
	gw.On("GetQuote", mock.Anything, second).After(50*time.Millisecond).Return(domain.QuoteResponse{Success: &qb}, nil).Once()

	var wg sync.WaitGroup
	results := make([]Result, 2)
	errs := make([]error, 2)
	for i, req := range []domain.QuoteRequest{first, second} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = f.GetQuote(context.Background(), req)
		}()
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	got, ok := results[0].Quote()
	require.True(t, ok)
	require.Equal(t, "ord-a", got.OrderID)
	got, ok = results[1].Quote()
	require.True(t, ok)
	require.Equal(t, "ord-b", got.OrderID)
	gw.AssertNumberOfCalls(t, "GetQuote", 2)
}

// --- GetApproximateQuote ---

func TestFacade_GetApproximateQuote(t *testing.T) {
	gw := new(MockQuoteGateway)
	f := NewFacade(gw, gate.New())
	req := domain.QuoteRequest{Pairing: domain.ETHToBTC, WithdrawalAmount: decimal.RequireFromString("0.01")}
	q := domain.Quote{Pair: "eth_btc", QuotedRate: decimal.RequireFromString("0.032")}

	gw.On("GetApproximateQuote", mock.Anything, req).Return(domain.QuoteResponse{Success: &q}, nil).Once()
	gw.On("GetApproximateQuote", mock.Anything, req).Return(domain.QuoteResponse{Error: "amount below minimum"}, nil).Once()

	res, err := f.GetApproximateQuote(context.Background(), req)
	require.NoError(t, err)
	got, ok := res.Quote()
	require.True(t, ok)
	require.Equal(t, q, got)

	res, err = f.GetApproximateQuote(context.Background(), req)
	require.NoError(t, err)
	msg, ok := res.ErrorMessage()
	require.True(t, ok)
	require.Equal(t, "amount below minimum", msg)
	gw.AssertNotCalled(t, "GetQuote", mock.Anything, mock.Anything)
}

// --- Pass-through ---

func TestFacade_GetRate(t *testing.T) {
	gw := new(MockQuoteGateway)
	f := NewFacade(gw, gate.New())
	info := domain.MarketInfo{Pair: "btc_eth", Rate: decimal.RequireFromString("31.7")}

	gw.On("GetMarketInfo", mock.Anything, domain.BTCToETH).Return(info, nil).Once()

	got, err := f.GetRate(context.Background(), domain.BTCToETH)
	require.NoError(t, err)
	require.Equal(t, info, got)
	gw.AssertExpectations(t)
}

func TestFacade_GetTradeStatus(t *testing.T) {
	gw := new(MockQuoteGateway)
	f := NewFacade(gw, gate.New())
	status := domain.TradeStatusResponse{Status: domain.StatusComplete, Address: "dep-1", Transaction: "0xabc"}
	wantErr := errors.New("gateway down")

	gw.On("GetTradeStatus", mock.Anything, "dep-1").Return(status, nil).Once()
	gw.On("GetTradeStatus", mock.Anything, "dep-2").Return(domain.TradeStatusResponse{}, wantErr).Once()

	got, err := f.GetTradeStatus(context.Background(), "dep-1")
	require.NoError(t, err)
	require.Equal(t, status, got)

	_, err = f.GetTradeStatus(context.Background(), "dep-2")
	require.ErrorIs(t, err, wantErr)
}
