package domain

import "errors"

var (
	ErrNotInitialized     = errors.New("trade ledger not initialized")
	ErrBootstrapFailure   = errors.New("trade ledger bootstrap failed")
	ErrTradeNotFound      = errors.New("trade not found")
	ErrPersistenceFailure = errors.New("trade ledger not persisted")
	ErrGatewayFailure     = errors.New("quote gateway request failed")

	ErrLedgerAbsent       = errors.New("trade ledger absent")
	ErrDuplicateOrderID   = errors.New("trade with this order id already exists")
	ErrUnsupportedPairing = errors.New("coin pairing not supported")
)
