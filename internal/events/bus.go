// Package events is an in-process publish/subscribe bus for UI observers.
package events

import (
	"fmt"
	"sync"

	applog "shopfront/internal/log"
)

// Topic is a closed set of notification names.
type Topic int

const (
	// FavoritesChanged carries no payload.
	FavoritesChanged Topic = iota
	// CartBadgeChanged carries the cart count as an int.
	CartBadgeChanged
)

func (t Topic) String() string {
	switch t {
	case FavoritesChanged:
		return "updateFavorites"
	case CartBadgeChanged:
		return "updateCartBadge"
	}
	return fmt.Sprintf("Topic(%d)", int(t))
}

// Handler must not block; slow work belongs in its own goroutine.
type Handler func(payload any)

type subscription struct {
	id int
	fn Handler
}

type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[Topic][]subscription
}

func NewBus() *Bus {
	return &Bus{subs: make(map[Topic][]subscription)}
}

// Subscribe registers fn for topic and returns a func that removes it.
func (b *Bus) Subscribe(topic Topic, fn Handler) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[topic] = append(b.subs[topic], subscription{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(topic, id) })
	}
}

func (b *Bus) remove(topic Topic, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	cur := b.subs[topic]
	next := make([]subscription, 0, len(cur))
	for _, s := range cur {
		if s.id != id {
			next = append(next, s)
		}
	}
	b.subs[topic] = next
}

// Publish runs the handlers registered when the call starts, in order.
func (b *Bus) Publish(topic Topic, payload any) {
	b.mu.Lock()
	snapshot := append([]subscription(nil), b.subs[topic]...)
	b.mu.Unlock()

	for _, s := range snapshot {
		b.deliver(topic, s, payload)
	}
}

func (b *Bus) deliver(topic Topic, s subscription, payload any) {
	defer func() {
		if r := recover(); r != nil {
			applog.Error(nil, "events.handler.panic", fmt.Errorf("%v", r), map[string]any{"topic": topic.String()})
		}
	}()
	s.fn(payload)
}

// Count reports how many handlers are registered for topic.
func (b *Bus) Count(topic Topic) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[topic])
}
