package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TradeStatus string

const (
	StatusNoDeposits TradeStatus = "no_deposits"
	StatusReceived   TradeStatus = "received"
	StatusComplete   TradeStatus = "complete"
	StatusFailed     TradeStatus = "failed"
	StatusResolved   TradeStatus = "resolved"
)

// Terminal reports whether the exchange will not move the trade any further.
func (s TradeStatus) Terminal() bool {
	switch s {
	case StatusComplete, StatusFailed, StatusResolved:
		return true
	}
	return false
}

// Known reports whether s is one of the statuses the exchange reports.
func (s TradeStatus) Known() bool {
	switch s {
	case StatusNoDeposits, StatusReceived, StatusComplete, StatusFailed, StatusResolved:
		return true
	}
	return false
}

type Quote struct {
	OrderID          string          `json:"orderId"`
	Pair             string          `json:"pair"`
	Deposit          string          `json:"deposit"`
	DepositAmount    decimal.Decimal `json:"depositAmount"`
	Withdrawal       string          `json:"withdrawal,omitempty"`
	WithdrawalAmount decimal.Decimal `json:"withdrawalAmount"`
	ReturnAddress    string          `json:"returnAddress,omitempty"`
	QuotedRate       decimal.Decimal `json:"quotedRate"`
	MinerFee         decimal.Decimal `json:"minerFee"`
	Minimum          decimal.Decimal `json:"minimum"`
	MaxLimit         decimal.Decimal `json:"maxLimit"`
	Expiration       int64           `json:"expiration,omitempty"`
}

type Trade struct {
	Status           TradeStatus `json:"status"`
	HashIn           string      `json:"hashIn,omitempty"`
	HashOut          string      `json:"hashOut,omitempty"`
	Quote            Quote       `json:"quote"`
	Timestamp        time.Time   `json:"timestamp"`
	AcquiredCoinType string      `json:"acquiredCoinType,omitempty"`
}

func (t Trade) OrderID() string { return t.Quote.OrderID }

func (t Trade) DepositAddress() string { return t.Quote.Deposit }
