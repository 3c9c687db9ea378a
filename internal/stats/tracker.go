// Package stats reports repository counters with a per-channel memory of the
// previously reported value.
package stats

import (
	"context"
	"fmt"
	"sync"

	"github.com/spiffcs/refbot/internal/log"
	"github.com/spiffcs/refbot/internal/model"
)

// Counter fetches repository counters.
type Counter interface {
	StarCount(ctx context.Context) (int, error)
	ForkCount(ctx context.Context) (int, error)
}

// Tracker formats counter messages and remembers the last value reported in
// each channel.
type Tracker struct {
	counter Counter
	store   *Store

	mu    sync.Mutex
	locks map[Key]*sync.Mutex
}

// NewTracker creates a Tracker. If store is nil an empty one is created.
func NewTracker(counter Counter, store *Store) *Tracker {
	if store == nil {
		store = NewStore()
	}
	return &Tracker{
		counter: counter,
		store:   store,
		locks:   make(map[Key]*sync.Mutex),
	}
}

// Store returns the tracker's store.
func (t *Tracker) Store() *Store {
	return t.store
}

// keyLock returns the mutex serializing requests for key.
func (t *Tracker) keyLock(key Key) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()

	l, ok := t.locks[key]
	if !ok {
		l = &sync.Mutex{}
		t.locks[key] = l
	}
	return l
}

func (t *Tracker) fetch(ctx context.Context, kind model.MetricKind) (int, error) {
	switch kind {
	case model.MetricStars:
		return t.counter.StarCount(ctx)
	case model.MetricForks:
		return t.counter.ForkCount(ctx)
	default:
		return 0, fmt.Errorf("unknown metric kind: %q", kind)
	}
}

// MetricMessage fetches the current value of kind and returns the chat reply
// for channel. The reply carries a signed delta when a different value was
// reported in the same channel before. A failed fetch returns an error
// message and leaves the channel's memory untouched.
func (t *Tracker) MetricMessage(ctx context.Context, kind model.MetricKind, channel string) string {
	key := Key{Kind: kind, Channel: channel}

	l := t.keyLock(key)
	l.Lock()
	defer l.Unlock()

	value, err := t.fetch(ctx, kind)
	if err != nil {
		log.Warn("failed to fetch metric", "metric", kind, "channel", channel, "error", err)
		return FailureMessage(kind)
	}

	prev, seen := t.store.Get(key)
	t.store.Set(key, value)

	log.Debug("metric observed", "metric", kind, "channel", channel, "value", value, "previous", prev, "seen", seen)

	if !seen {
		return Message(kind, value, 0)
	}
	return Message(kind, value, value-prev)
}

// Message formats a counter reply. A zero delta is not shown.
func Message(kind model.MetricKind, value, delta int) string {
	if delta == 0 {
		return fmt.Sprintf("%s: %d", kind.Label(), value)
	}
	return fmt.Sprintf("%s: %d (%+d %s since the last call in this channel)", kind.Label(), value, delta, kind.Unit())
}

// FailureMessage is the reply when the counter cannot be fetched.
func FailureMessage(kind model.MetricKind) string {
	return fmt.Sprintf("Could not fetch %s from the GitHub API", kind.Unit())
}
