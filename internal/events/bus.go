package events

import (
	"sync"
	"time"

	"PortfolioSentinel/internal/model"
)

// AlertFired is the transient signal emitted once per alert firing.
type AlertFired struct {
	NotificationID string
	AlertID        string
	Symbol         string
	Kind           model.AlertKind
	CurrentPrice   float64
	Threshold      float64
	Timestamp      time.Time
}

// Handler receives fired events. Handlers run synchronously on the
// publishing goroutine.
type Handler func(AlertFired)

// Bus fans AlertFired events out to subscribers in subscription order.
type Bus struct {
	mu       sync.RWMutex
	nextID   int
	handlers []subscription
}

type subscription struct {
	id int
	fn Handler
}

// NewBus creates a Bus with no subscribers.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn and returns a function that removes it.
func (b *Bus) Subscribe(fn Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.handlers = append(b.handlers, subscription{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Bus) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.handlers {
		if s.id == id {
			b.handlers = append(b.handlers[:i:i], b.handlers[i+1:]...)
			return
		}
	}
}

// Publish delivers evt to every current subscriber.
func (b *Bus) Publish(evt AlertFired) {
	b.mu.RLock()
	handlers := make([]subscription, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	for _, s := range handlers {
		s.fn(evt)
	}
}

// Len returns the number of subscribers.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers)
}
