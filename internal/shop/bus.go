package shop

import (
	"sync"
	"time"
)

// Topic identifies which collection or lifecycle event changed.
type Topic string

const (
	TopicProducts     Topic = "products"
	TopicCart         Topic = "cart"
	TopicOrders       Topic = "orders"
	TopicCategories   Topic = "categories"
	TopicOrderCreated Topic = "order-created"
	TopicStockClamped Topic = "stock-clamped"
	TopicSession      Topic = "admin-session"
)

// Event is a change notification.
type Event struct {
	Topic  Topic
	Detail string // operation name or affected id, for display/metrics
	At     time.Time
}

// Bus fans change events out to subscribers.
//
// Delivery is synchronous, in subscription order, and fire-and-forget:
// subscribers cannot fail a shop operation, and no ordering is guaranteed
// between events observed by different subscribers. Events are purely
// observational - correctness never depends on them.
type Bus struct {
	mu   sync.RWMutex
	subs []func(Event)
}

// NewBus creates a bus with no subscribers.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn to receive all future events.
// Subscriptions cannot be removed; the bus lives as long as the process.
func (b *Bus) Subscribe(fn func(Event)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, fn)
}

// Publish delivers e to every subscriber. Safe to call on a bus with no
// subscribers.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	subs := b.subs
	b.mu.RUnlock()

	for _, fn := range subs {
		fn(e)
	}
}
