package trade

import (
	"errors"
	"slices"

	"tradeledger/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	ErrPairingRequired    = errors.New("pairing is required")
	ErrAmountRequired     = errors.New("deposit or withdrawal amount is required")
	ErrAmountAmbiguous    = errors.New("only one of deposit and withdrawal amount may be set")
	ErrAmountNegative     = errors.New("amount must not be negative")
	ErrWithdrawalRequired = errors.New("withdrawal address is required")
)

type RequestValidator struct {
	supported map[string]domain.CoinPairing // read only copy
	codes     []string                      // read only copy
}

func (v *RequestValidator) ParsePairing(code string) (domain.CoinPairing, error) {
	if code == "" {
		return domain.CoinPairing{}, ErrPairingRequired
	}
	p, err := domain.ParsePairing(code)
	if err != nil {
		return domain.CoinPairing{}, err
	}
	if _, ok := v.supported[p.Code()]; !ok {
		return domain.CoinPairing{}, domain.ErrUnsupportedPairing
	}
	return p, nil
}

// ValidateQuote checks a quote request; precise quotes reserve a deposit address
// and so need somewhere to send the exchanged coins.
func (v *RequestValidator) ValidateQuote(req domain.QuoteRequest, precise bool) error {
	if _, ok := v.supported[req.Pairing.Code()]; !ok {
		if req.Pairing.Code() == "" {
			return ErrPairingRequired
		}
		return domain.ErrUnsupportedPairing
	}
	if req.DepositAmount.IsNegative() || req.WithdrawalAmount.IsNegative() {
		return ErrAmountNegative
	}
	hasDeposit := req.DepositAmount.GreaterThan(decimal.Zero)
	hasWithdrawal := req.WithdrawalAmount.GreaterThan(decimal.Zero)
	if !hasDeposit && !hasWithdrawal {
		return ErrAmountRequired
	}
	if hasDeposit && hasWithdrawal {
		return ErrAmountAmbiguous
	}
	if precise && req.WithdrawalAddress == "" {
		return ErrWithdrawalRequired
	}
	return nil
}

func (v *RequestValidator) SupportedPairings() []string {
	return slices.Clone(v.codes)
}

func NewValidator(pairings []domain.CoinPairing) *RequestValidator {
	supported := make(map[string]domain.CoinPairing, len(pairings))
	for _, p := range pairings {
		supported[p.Code()] = p
	}
	codes := make([]string, 0, len(supported))
	for code := range supported {
		codes = append(codes, code)
	}
	slices.Sort(codes)

	return &RequestValidator{supported: supported, codes: codes}
}
