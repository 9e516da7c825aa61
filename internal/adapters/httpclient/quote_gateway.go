package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"tradeledger/internal/domain"

	"github.com/shopspring/decimal"
)

const maxErrorBody = 512

type QuoteGatewayClient struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

type sendAmountRequest struct {
	Pair          string           `json:"pair"`
	DepositAmount *decimal.Decimal `json:"depositAmount,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Withdrawal    string           `json:"withdrawal,omitempty"`
	ReturnAddress string           `json:"returnAddress,omitempty"`
	APIKey        string           `json:"apiKey,omitempty"`
}

func (c *QuoteGatewayClient) GetQuote(ctx context.Context, req domain.QuoteRequest) (domain.QuoteResponse, error) {
	return c.sendAmount(ctx, c.sendAmountBody(req, true))
}

// GetApproximateQuote prices the request without reserving a deposit address.
func (c *QuoteGatewayClient) GetApproximateQuote(ctx context.Context, req domain.QuoteRequest) (domain.QuoteResponse, error) {
	return c.sendAmount(ctx, c.sendAmountBody(req, false))
}

func (c *QuoteGatewayClient) GetMarketInfo(ctx context.Context, pairing domain.CoinPairing) (domain.MarketInfo, error) {
	var info domain.MarketInfo
	if err := c.getJSON(ctx, "marketinfo/"+pairing.Code(), &info); err != nil {
		return domain.MarketInfo{}, err
	}
	return info, nil
}

func (c *QuoteGatewayClient) GetTradeStatus(ctx context.Context, address string) (domain.TradeStatusResponse, error) {
	var status domain.TradeStatusResponse
	if err := c.getJSON(ctx, "txStat/"+address, &status); err != nil {
		return domain.TradeStatusResponse{}, err
	}
	return status, nil
}

func (c *QuoteGatewayClient) sendAmountBody(req domain.QuoteRequest, withAddresses bool) sendAmountRequest {
	body := sendAmountRequest{Pair: req.Pairing.Code(), APIKey: c.apiKey}
	if req.APIKey != "" {
		body.APIKey = req.APIKey
	}
	if req.DepositAmount.IsPositive() {
		d := req.DepositAmount
		body.DepositAmount = &d
	}
	if req.WithdrawalAmount.IsPositive() {
		w := req.WithdrawalAmount
		body.Amount = &w
	}
	if withAddresses {
		body.Withdrawal = req.WithdrawalAddress
		body.ReturnAddress = req.ReturnAddress
	}
	return body
}

func (c *QuoteGatewayClient) sendAmount(ctx context.Context, body sendAmountRequest) (domain.QuoteResponse, error) {
	u, err := c.endpoint("sendamount")
	if err != nil {
		return domain.QuoteResponse{}, err
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return domain.QuoteResponse{}, fmt.Errorf("%w: failed to encode quote request for pair %q: %w", domain.ErrGatewayFailure, body.Pair, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return domain.QuoteResponse{}, fmt.Errorf("%w: failed to create quote request for pair %q: %w", domain.ErrGatewayFailure, body.Pair, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.QuoteResponse{}, fmt.Errorf("%w: failed to execute quote request for pair %q: %w", domain.ErrGatewayFailure, body.Pair, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return domain.QuoteResponse{}, unexpectedStatus(resp, body.Pair)
	}

	var out domain.QuoteResponse
	if err = json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.QuoteResponse{}, fmt.Errorf("%w: failed to decode quote response for pair %q: %w", domain.ErrGatewayFailure, body.Pair, err)
	}
	// 4xx answers still count as business refusals when the exchange explains them
	if (resp.StatusCode < 200 || resp.StatusCode >= 300) && out.Error == "" {
		return domain.QuoteResponse{}, fmt.Errorf("%w: unexpected status code %d for pair %q", domain.ErrGatewayFailure, resp.StatusCode, body.Pair)
	}
	return out, nil
}

func (c *QuoteGatewayClient) getJSON(ctx context.Context, path string, out any) error {
	u, err := c.endpoint(path)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request %q: %w", domain.ErrGatewayFailure, path, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request %q: %w", domain.ErrGatewayFailure, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return unexpectedStatus(resp, path)
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response %q: %w", domain.ErrGatewayFailure, path, err)
	}
	return nil
}

func (c *QuoteGatewayClient) endpoint(path string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("%w: failed to parse base URL: %w", domain.ErrGatewayFailure, err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + path
	return u.String(), nil
}

func unexpectedStatus(resp *http.Response, what string) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return fmt.Errorf("%w: unexpected status code %d for %q: %s", domain.ErrGatewayFailure, resp.StatusCode, what, strings.TrimSpace(string(snippet)))
}

func NewQuoteGatewayClient(httpClient *http.Client, baseURL string, apiKey string) *QuoteGatewayClient {
	return &QuoteGatewayClient{http: httpClient, baseURL: baseURL, apiKey: apiKey}
}
