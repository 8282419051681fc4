// Package events carries the process-wide "navigation configuration
// changed" signal. Every mutation in the overlay and powerbi stores
// publishes here; every mounted navigation view subscribes and
// re-resolves its menu on each tick.
package events

import "sync"

// Bus is a broadcast channel with no payload. Publish never blocks:
// each subscription holds a buffered channel of size one, so ticks
// arriving faster than a subscriber drains them coalesce into a single
// pending notification.
type Bus struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

// Subscription receives change ticks on C until Unsubscribe is called.
type Subscription struct {
	C   <-chan struct{}
	c   chan struct{}
	bus *Bus
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: map[*Subscription]struct{}{}}
}

// Subscribe registers a new listener.
func (b *Bus) Subscribe() *Subscription {
	c := make(chan struct{}, 1)
	sub := &Subscription{C: c, c: c, bus: b}

	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()
	return sub
}

// Unsubscribe removes the listener and closes its channel. Safe to call
// more than once.
func (s *Subscription) Unsubscribe() {
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()
	if _, ok := s.bus.subs[s]; !ok {
		return
	}
	delete(s.bus.subs, s)
	close(s.c)
}

// Publish notifies every subscriber that something changed.
func (b *Bus) Publish() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for sub := range b.subs {
		select {
		case sub.c <- struct{}{}:
		default: // a tick is already pending; coalesce
		}
	}
}
