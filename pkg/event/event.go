// Package event is a small in-process dispatcher for domain events. The HTTP
// layer fires one event per committed mutation; listeners keep derived state
// (cached reports, audit logs) in step.
package event

import (
	"context"
	"sync"

	"github.com/shashiranjanraj/storehub/pkg/logger"
)

const (
	OrderCreated       = "order.created"
	OrderUpdated       = "order.updated"
	OrderDeleted       = "order.deleted"
	OrderStatusChanged = "order.status_changed"
	ProductCreated     = "product.created"
	ProductDeleted     = "product.deleted"
	StoreCreated       = "store.created"
	StoreDeleted       = "store.deleted"
)

// Event names what happened to which entity of which store.
type Event struct {
	Name     string
	StoreID  string
	EntityID string
}

type Handler func(ctx context.Context, e Event)

// Bus routes events to listeners by name. "*" listeners receive everything.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

func New() *Bus {
	return &Bus{handlers: map[string][]Handler{}}
}

// Listen registers h for the named events; pass "*" for all of them.
func (b *Bus) Listen(h Handler, names ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, n := range names {
		b.handlers[n] = append(b.handlers[n], h)
	}
}

// Fire runs every matching listener synchronously, in registration order.
// A panicking listener is logged and skipped.
func (b *Bus) Fire(ctx context.Context, e Event) {
	b.mu.RLock()
	hs := append(append([]Handler(nil), b.handlers[e.Name]...), b.handlers["*"]...)
	b.mu.RUnlock()

	for _, h := range hs {
		call(ctx, h, e)
	}
}

func call(ctx context.Context, h Handler, e Event) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithCtx(ctx).Error("event: listener panicked", "event", e.Name, "panic", r)
		}
	}()
	h(ctx, e)
}
