// Package gate keeps at most one operation per category in flight against the
// wallet's collaborators. Do shares one execution between concurrent callers;
// Serialize queues callers behind the running one.
package gate

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

type Category string

const (
	LedgerLoad       Category = "ledger-load"
	LedgerSave       Category = "ledger-save"
	Quote            Category = "quote"
	ApproximateQuote Category = "approximate-quote"
	Rate             Category = "rate"
	TradeStatus      Category = "trade-status"
)

type Gate struct {
	group singleflight.Group

	mu    sync.Mutex
	lanes map[Category]chan struct{}
}

func New() *Gate {
	return &Gate{lanes: make(map[Category]chan struct{})}
}

// Do runs fn once for all concurrent callers sharing category and key. The shared
// execution is detached from the cancellation of any single caller; a caller whose
// ctx is done stops waiting and gets ctx.Err().
func Do[T any](ctx context.Context, g *Gate, category Category, key string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	execCtx := context.WithoutCancel(ctx)
	ch := g.group.DoChan(flightKey(category, key), func() (any, error) {
		return fn(execCtx)
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		if res.Val == nil {
			return zero, nil
		}
		v, ok := res.Val.(T)
		if !ok {
			return zero, fmt.Errorf("gate %s: unexpected result type %T", category, res.Val)
		}
		return v, nil
	}
}

// Serialize runs fn once no other Serialize call for the category is running.
func (g *Gate) Serialize(ctx context.Context, category Category, fn func(context.Context) error) error {
	lane := g.lane(category)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case lane <- struct{}{}:
	}
	defer func() { <-lane }()
	return fn(ctx)
}

func (g *Gate) lane(category Category) chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	l, ok := g.lanes[category]
	if !ok {
		l = make(chan struct{}, 1)
		g.lanes[category] = l
	}
	return l
}

func flightKey(category Category, key string) string {
	return string(category) + ":" + key
}
