package nav

import (
	"context"
	"testing"
	"time"

	"github.com/agroconsult/painel/internal/db"
	"github.com/agroconsult/painel/internal/events"
	"github.com/agroconsult/painel/internal/overlay"
)

func setupView(t *testing.T) (*Resolver, *overlay.Store, *events.Bus) {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	bus := events.NewBus()
	store := overlay.NewStore(database, bus)
	return NewResolver(store, ""), store, bus
}

func waitItems(t *testing.T, ch <-chan []Item) []Item {
	t.Helper()
	select {
	case items := <-ch:
		return items
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for items")
		return nil
	}
}

func TestViewDeliversOnSetSector(t *testing.T) {
	resolver, _, bus := setupView(t)

	deliveries := make(chan []Item, 16)
	view := NewView(resolver, bus, func(items []Item) { deliveries <- items })
	defer view.Close()

	view.SetSector("financeiro")

	items := waitItems(t, deliveries)
	if len(items) != 4 || items[0].Path != "/app/financeiro" {
		t.Errorf("unexpected items: %+v", items)
	}
}

func TestViewRefreshesOnBusTick(t *testing.T) {
	resolver, store, bus := setupView(t)

	deliveries := make(chan []Item, 16)
	view := NewView(resolver, bus, func(items []Item) { deliveries <- items })
	defer view.Close()

	view.SetSector("financeiro")
	first := waitItems(t, deliveries)

	// A store mutation publishes on the bus; the mounted view re-resolves.
	if err := store.HideBaseline(context.Background(), "financeiro", "/app/financeiro", "Painel Financeiro"); err != nil {
		t.Fatalf("HideBaseline: %v", err)
	}

	second := waitItems(t, deliveries)
	if len(second) != len(first)-1 {
		t.Errorf("expected %d items after hide, got %d", len(first)-1, len(second))
	}
}

func TestViewIgnoresTicksBeforeFirstSector(t *testing.T) {
	resolver, store, bus := setupView(t)

	deliveries := make(chan []Item, 16)
	view := NewView(resolver, bus, func(items []Item) { deliveries <- items })
	defer view.Close()

	store.AddCustom(context.Background(), "financeiro", "Extra")

	select {
	case items := <-deliveries:
		t.Errorf("unexpected delivery before SetSector: %+v", items)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestViewLatestSectorWins(t *testing.T) {
	resolver, _, bus := setupView(t)

	deliveries := make(chan []Item, 64)
	view := NewView(resolver, bus, func(items []Item) { deliveries <- items })
	defer view.Close()

	sectors := []string{"consultoria", "projetos", "comunicacao", "financeiro"}
	for _, s := range sectors {
		view.SetSector(s)
	}

	// Intermediate sectors may be skipped entirely; the last delivery
	// must be for the final sector.
	var last []Item
	deadline := time.After(2 * time.Second)
	for {
		select {
		case items := <-deliveries:
			last = items
		case <-deadline:
			t.Fatal("no deliveries")
		case <-time.After(200 * time.Millisecond):
			if last == nil {
				continue
			}
			if last[0].Path != "/app/financeiro" {
				t.Errorf("last delivery is not the newest sector: %+v", last[0])
			}
			return
		}
	}
}

func TestViewCloseStopsDeliveries(t *testing.T) {
	resolver, store, bus := setupView(t)

	deliveries := make(chan []Item, 16)
	view := NewView(resolver, bus, func(items []Item) { deliveries <- items })

	view.SetSector("financeiro")
	waitItems(t, deliveries)

	view.Close()
	// Close is idempotent.
	view.Close()

	// SetSector after close is a no-op.
	view.SetSector("projetos")
	store.AddCustom(context.Background(), "financeiro", "Extra")

	select {
	case items := <-deliveries:
		t.Errorf("delivery after close: %+v", items)
	case <-time.After(100 * time.Millisecond):
	}
}
