package tui

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SubID identifies a running subscription, handed back by SpawnSub's
// caller so it can later be targeted by StopSub. Backed by a UUID so
// Models can generate ids without coordinating with the runtime or each
// other over a shared counter.
type SubID string

// NewSubID mints a fresh subscription id.
func NewSubID() SubID { return SubID(uuid.NewString()) }

// Subscription is a long-lived source of Msgs: Run is started on its own
// goroutine by the runtime and must send zero or more Msgs to out until
// ctx is cancelled (on StopSub or runtime shutdown), then return.
type Subscription interface {
	Run(ctx context.Context, out chan<- Msg)
}

// SubscriptionFunc adapts a plain function to the Subscription interface.
type SubscriptionFunc func(ctx context.Context, out chan<- Msg)

func (f SubscriptionFunc) Run(ctx context.Context, out chan<- Msg) { f(ctx, out) }

// TickEvery returns a Subscription that sends msg() on every tick the
// runtime's clock produces at the given interval, until stopped. Used for
// animation-style Models that need a steady Msg heartbeat independent of
// input/resize activity.
func TickEvery(clock Clock, interval time.Duration, msg func() Msg) Subscription {
	return SubscriptionFunc(func(ctx context.Context, out chan<- Msg) {
		for {
			select {
			case <-ctx.Done():
				return
			case <-clock.After(interval):
				select {
				case out <- msg():
				case <-ctx.Done():
					return
				}
			}
		}
	})
}
