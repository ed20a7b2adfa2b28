// Package feed is the in-process change feed: every confirmed task mutation
// is published here and fanned out to the owner's live subscribers (websocket
// connections, mostly).
package feed

import (
	"sync"

	"taskledger/internal/domain"

	"github.com/google/uuid"
)

type EventType string

const (
	EventInsert EventType = "insert"
	EventUpdate EventType = "update"
	EventDelete EventType = "delete"
)

// Event is one row-level change. Delete events carry only the row id and
// owner.
type Event struct {
	Type EventType      `json:"type"`
	Task domain.TaskRow `json:"task"`
}

// CancelFunc tears down a subscription. Safe to call more than once; after
// the first call returns, the callback will not fire again.
type CancelFunc func()

type subscriber struct {
	mu     sync.Mutex
	fn     func(Event)
	closed bool
}

// deliver invokes the callback unless the subscription was cancelled. The
// per-subscriber mutex is what makes the cancel guarantee hold: cancel takes
// it too, so once cancel returns no delivery can be in flight.
func (s *subscriber) deliver(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.fn(e)
	}
}

// Broker keys subscribers by owner id. Events for one owner never reach
// another owner's subscribers.
type Broker struct {
	mu   sync.RWMutex
	subs map[int64]map[uuid.UUID]*subscriber
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[int64]map[uuid.UUID]*subscriber)}
}

// Subscribe registers fn for every change to the owner's rows, in arrival
// order. The returned cancel is idempotent.
func (b *Broker) Subscribe(ownerID int64, fn func(Event)) CancelFunc {
	sub := &subscriber{fn: fn}
	id := uuid.New()

	b.mu.Lock()
	if b.subs[ownerID] == nil {
		b.subs[ownerID] = make(map[uuid.UUID]*subscriber)
	}
	b.subs[ownerID][id] = sub
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			if m := b.subs[ownerID]; m != nil {
				delete(m, id)
				if len(m) == 0 {
					delete(b.subs, ownerID)
				}
			}
			b.mu.Unlock()

			sub.mu.Lock()
			sub.closed = true
			sub.mu.Unlock()
		})
	}
}

// Publish fans an event out to the owner's current subscribers. Delivery is
// synchronous; this layer does no buffering or reordering.
func (b *Broker) Publish(ownerID int64, e Event) {
	b.mu.RLock()
	targets := make([]*subscriber, 0, len(b.subs[ownerID]))
	for _, s := range b.subs[ownerID] {
		targets = append(targets, s)
	}
	b.mu.RUnlock()

	for _, s := range targets {
		s.deliver(e)
	}
}

// SubscriberCount is used by tests and the readiness probe.
func (b *Broker) SubscriberCount(ownerID int64) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[ownerID])
}
