// Package greeter schedules the removal of greeting messages. Removal is
// cosmetic: failures are logged and dropped, nothing is retried or
// persisted, and pending removals are abandoned when the context ends.
package greeter

import (
	"context"
	"log"
	"sync/atomic"
	"time"
)

// DefaultTTL is how long a greeting stays in the chat.
const DefaultTTL = 15 * time.Minute

type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// DeleteFunc removes a message from a chat.
type DeleteFunc func(chatID int64, messageID int) error

type Timer struct {
	ttl     time.Duration
	del     DeleteFunc
	clock   Clock
	pending atomic.Int64
}

// New returns a Timer; a nil clock means wall-clock time.
func New(ttl time.Duration, del DeleteFunc, clock Clock) *Timer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clock == nil {
		clock = realClock{}
	}
	return &Timer{ttl: ttl, del: del, clock: clock}
}

// Schedule deletes the message after the TTL without blocking the caller.
func (t *Timer) Schedule(ctx context.Context, chatID int64, messageID int) {
	t.pending.Add(1)
	wait := t.clock.After(t.ttl)
	go func() {
		defer t.pending.Add(-1)
		select {
		case <-ctx.Done():
			return
		case <-wait:
		}
		if err := t.del(chatID, messageID); err != nil {
			log.Printf("failed to delete greeting %d in chat %d: %v", messageID, chatID, err)
		}
	}()
}

// Pending is the number of greetings still waiting for removal.
func (t *Timer) Pending() int { return int(t.pending.Load()) }
