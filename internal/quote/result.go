package quote

import "tradeledger/internal/domain"

// Result is either a quote or the message the exchange gave for refusing one.
type Result struct {
	quote  domain.Quote
	errMsg string
	isErr  bool
}

func QuoteResult(q domain.Quote) Result {
	return Result{quote: q}
}

func ErrorResult(msg string) Result {
	return Result{errMsg: msg, isErr: true}
}

func (r Result) IsError() bool { return r.isErr }

func (r Result) Quote() (domain.Quote, bool) {
	if r.isErr {
		return domain.Quote{}, false
	}
	return r.quote, true
}

func (r Result) ErrorMessage() (string, bool) {
	return r.errMsg, r.isErr
}
