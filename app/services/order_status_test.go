package services

import (
	"context"
	"testing"

	"github.com/shashiranjanraj/storehub/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateStatusTouchesOnlyStatus(t *testing.T) {
	h := newHarness(t, true)
	s := newShop(h, "status")
	ctx := context.Background()

	order, err := h.orders.Create(ctx, s.caller, OrderInput{
		CustomerID: s.customer.ID,
		Items:      []OrderItemInput{item(s.p1.ID, 2, "10.00")},
		PaidAmount: dec("4"),
	})
	require.NoError(t, err)

	// Any status may follow any other, including moving backwards.
	for _, st := range []models.Status{models.StatusDelivered, models.StatusQuoted, models.StatusShipped, models.StatusShipped} {
		got, err := h.orders.UpdateStatus(ctx, s.caller, order.ID, st)
		require.NoError(t, err)
		assert.Equal(t, st, got.Status)
	}

	stored, err := h.orders.Get(ctx, s.caller, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusShipped, stored.Status)
	assert.True(t, stored.TotalAmount.Equal(dec("20")))
	assert.True(t, stored.PaidAmount.Equal(dec("4")))
	assert.Len(t, stored.Items, 1)
	assert.Equal(t, 8, h.fx.Stock(s.p1.ID))
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	h := newHarness(t, true)
	s := newShop(h, "badstatus")
	ctx := context.Background()

	order, err := h.orders.Create(ctx, s.caller, OrderInput{
		CustomerID: s.customer.ID,
		Items:      []OrderItemInput{item(s.p1.ID, 1, "10.00")},
	})
	require.NoError(t, err)

	_, err = h.orders.UpdateStatus(ctx, s.caller, order.ID, "TEKLIF")
	assert.True(t, IsValidation(err))

	_, err = h.orders.UpdateStatus(ctx, rootCaller(), order.ID, models.StatusDelivered)
	require.NoError(t, err, "ROOT may move any store's order")
}
