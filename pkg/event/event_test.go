package event

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFireRoutesByName(t *testing.T) {
	b := New()
	var named, all []string
	b.Listen(func(_ context.Context, e Event) { named = append(named, e.EntityID) }, OrderCreated, OrderDeleted)
	b.Listen(func(_ context.Context, e Event) { all = append(all, e.Name) }, "*")

	ctx := context.Background()
	b.Fire(ctx, Event{Name: OrderCreated, StoreID: "s1", EntityID: "o1"})
	b.Fire(ctx, Event{Name: OrderUpdated, StoreID: "s1", EntityID: "o1"})
	b.Fire(ctx, Event{Name: OrderDeleted, StoreID: "s1", EntityID: "o2"})

	assert.Equal(t, []string{"o1", "o2"}, named)
	assert.Equal(t, []string{OrderCreated, OrderUpdated, OrderDeleted}, all)
}

func TestPanickingListenerIsSkipped(t *testing.T) {
	b := New()
	reached := false
	b.Listen(func(context.Context, Event) { panic("boom") }, StoreDeleted)
	b.Listen(func(context.Context, Event) { reached = true }, StoreDeleted)

	assert.NotPanics(t, func() { b.Fire(context.Background(), Event{Name: StoreDeleted}) })
	assert.True(t, reached)
}
