package nav

import (
	"context"
	"sync"

	"github.com/agroconsult/painel/internal/events"
)

// View is the handle one mounted navigation component holds. It
// re-resolves its sector whenever the bus signals a change, and it
// serializes deliveries so the callback only ever sees the result of
// the newest request: a resolution superseded by a later SetSector (or
// by Close) is discarded on arrival instead of updating stale UI.
type View struct {
	resolver *Resolver
	sub      *events.Subscription
	onItems  func([]Item)

	// reqs coalesces pending sector switches; only the newest matters.
	reqs chan string

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

// NewView mounts a view. onItems runs on the view's own goroutine, once
// per non-superseded resolution. Call Close when the view unmounts.
func NewView(resolver *Resolver, bus *events.Bus, onItems func([]Item)) *View {
	ctx, cancel := context.WithCancel(context.Background())
	v := &View{
		resolver: resolver,
		sub:      bus.Subscribe(),
		onItems:  onItems,
		reqs:     make(chan string, 1),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	go v.loop()
	return v
}

// SetSector requests resolution for a sector. Never blocks: a pending
// unprocessed request is replaced by the newer one.
func (v *View) SetSector(sector string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	select {
	case v.reqs <- sector:
	default:
		// Drop the stale pending request, then queue the new one.
		select {
		case <-v.reqs:
		default:
		}
		v.reqs <- sector
	}
}

// Close unmounts the view. In-flight resolutions are discarded.
func (v *View) Close() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	v.mu.Unlock()

	v.cancel()
	v.sub.Unsubscribe()
	<-v.done
}

func (v *View) loop() {
	defer close(v.done)

	var sector string
	var mounted bool
	for {
		select {
		case <-v.ctx.Done():
			return
		case s := <-v.reqs:
			sector, mounted = s, true
			sector = v.refresh(sector)
		case _, ok := <-v.sub.C:
			if !ok {
				return
			}
			if mounted {
				sector = v.refresh(sector)
			}
		}
	}
}

// refresh resolves the sector and delivers the result unless a newer
// request arrived while the resolution was in flight, in which case the
// result is dropped and the newer sector resolved instead. Returns the
// sector whose result was delivered.
func (v *View) refresh(sector string) string {
	for {
		items := v.resolver.Resolve(v.ctx, sector)

		select {
		case <-v.ctx.Done():
			return sector
		case s := <-v.reqs:
			sector = s
			continue
		default:
		}

		v.onItems(items)
		return sector
	}
}
