package events

import (
	"testing"
	"time"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	bus := NewBus()
	a := bus.Subscribe()
	b := bus.Subscribe()
	defer a.Unsubscribe()
	defer b.Unsubscribe()

	bus.Publish()

	for name, sub := range map[string]*Subscription{"a": a, "b": b} {
		select {
		case <-sub.C:
		case <-time.After(time.Second):
			t.Fatalf("subscriber %s did not receive tick", name)
		}
	}
}

func TestPublishCoalesces(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe()
	defer sub.Unsubscribe()

	// Rapid publishes with no reader must not block and must leave at
	// least one pending tick.
	for i := 0; i < 10; i++ {
		bus.Publish()
	}

	select {
	case <-sub.C:
	case <-time.After(time.Second):
		t.Fatal("expected a pending tick")
	}

	// All ten publishes coalesced into the single consumed tick.
	select {
	case <-sub.C:
		t.Fatal("expected no second pending tick")
	default:
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe()

	sub.Unsubscribe()
	sub.Unsubscribe() // second call is a no-op

	if _, ok := <-sub.C; ok {
		t.Fatal("expected closed channel after Unsubscribe")
	}

	// Publishing after unsubscribe must not panic.
	bus.Publish()
}

func TestPublishAfterSubscriberGone(t *testing.T) {
	bus := NewBus()
	a := bus.Subscribe()
	b := bus.Subscribe()
	a.Unsubscribe()

	bus.Publish()

	select {
	case <-b.C:
	case <-time.After(time.Second):
		t.Fatal("remaining subscriber did not receive tick")
	}
	b.Unsubscribe()
}
