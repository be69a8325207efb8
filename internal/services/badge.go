package services

import (
	"sync"

	"shopfront/internal/events"
)

// BadgeCounter mirrors the latest cart count published on the bus.
type BadgeCounter struct {
	mu    sync.Mutex
	count int
	stop  func()
}

func NewBadgeCounter(bus *events.Bus, initial int) *BadgeCounter {
	b := &BadgeCounter{count: initial}
	b.stop = bus.Subscribe(events.CartBadgeChanged, func(payload any) {
		n, ok := payload.(int)
		if !ok {
			return
		}
		b.mu.Lock()
		b.count = n
		b.mu.Unlock()
	})
	return b
}

func (b *BadgeCounter) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

func (b *BadgeCounter) Close() { b.stop() }
