package services

import (
	"context"
	"testing"

	"github.com/shashiranjanraj/storehub/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCustomer(t *testing.T) {
	h := newHarness(t, true)
	a, _ := h.fx.Store("a")
	ctx := context.Background()

	email := "ada@example.com"
	c, err := h.customers.CreateCustomer(ctx, storeCaller(a), CustomerInput{FullName: "Ada", Email: &email})
	require.NoError(t, err)
	assert.Equal(t, a.ID, c.StoreID)
	require.NotNil(t, c.Email)

	blank := " "
	c, err = h.customers.CreateCustomer(ctx, storeCaller(a), CustomerInput{FullName: "Grace", Email: &blank})
	require.NoError(t, err)
	assert.Nil(t, c.Email)

	bad := "nope"
	_, err = h.customers.CreateCustomer(ctx, storeCaller(a), CustomerInput{FullName: "G", Email: &bad})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "full_name")
	assert.Contains(t, verr.Fields, "email")

	list, _, err := h.customers.ListCustomers(ctx, storeCaller(a), "", 1, 20)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, "Ada", list[0].FullName)
}

func TestDeleteCustomerWithOrdersFails(t *testing.T) {
	h := newHarness(t, true)
	s := newShop(h, "cust")
	ctx := context.Background()

	_, err := h.orders.Create(ctx, s.caller, OrderInput{
		CustomerID: s.customer.ID,
		Items:      []OrderItemInput{item(s.p1.ID, 1, "10.00")},
	})
	require.NoError(t, err)

	err = h.customers.DeleteCustomer(ctx, s.caller, s.customer.ID)
	require.ErrorIs(t, err, ErrInUse)
	assert.Equal(t, int64(1), h.fx.Count(&models.Customer{}, "id = ?", s.customer.ID))

	spare := h.fx.Customer(s.store.ID, "No Orders")
	require.NoError(t, h.customers.DeleteCustomer(ctx, s.caller, spare.ID))
	assert.Zero(t, h.fx.Count(&models.Customer{}, "id = ?", spare.ID))

	_, err = h.customers.GetCustomer(ctx, s.caller, spare.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
