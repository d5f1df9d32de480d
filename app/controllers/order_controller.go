package controllers

import (
	"github.com/shashiranjanraj/storehub/app/models"
	"github.com/shashiranjanraj/storehub/app/services"
	"github.com/shashiranjanraj/storehub/pkg/ctx"
	"github.com/shashiranjanraj/storehub/pkg/event"
)

type OrderController struct {
	base
	orders *services.OrderService
}

func NewOrderController(s *Services) *OrderController {
	return &OrderController{base: newBase(s), orders: s.Orders}
}

// Store POST /api/orders
func (c *OrderController) Store(x *ctx.Context) {
	caller, ok := c.caller(x)
	if !ok {
		return
	}
	var in services.OrderInput
	if !x.BindJSON(&in) {
		return
	}

	order, err := c.orders.Create(x.Context(), caller, in)
	if err != nil {
		x.Fail(err)
		return
	}
	c.publish(x, event.OrderCreated, order.StoreID, order.ID)
	x.Created(map[string]string{"id": order.ID})
}

// Index GET /api/orders?status=&store_id=&page=&limit=
func (c *OrderController) Index(x *ctx.Context) {
	caller, ok := c.caller(x)
	if !ok {
		return
	}
	page, limit := x.Page()
	f := services.OrderFilter{
		StoreID: x.Query("store_id"),
		Status:  models.Status(x.Query("status")),
		Page:    page,
		Limit:   limit,
	}
	if f.Status != "" && !f.Status.Valid() {
		x.Fail(services.NewValidationError(map[string]string{"status": "The status is invalid."}))
		return
	}

	orders, p, err := c.orders.List(x.Context(), caller, f)
	if err != nil {
		x.Fail(err)
		return
	}
	x.Paginated(orders, p)
}

// Show GET /api/orders/{id}
func (c *OrderController) Show(x *ctx.Context) {
	caller, ok := c.caller(x)
	if !ok {
		return
	}
	order, err := c.orders.Get(x.Context(), caller, x.Param("id"))
	if err != nil {
		x.Fail(err)
		return
	}
	x.Success(order)
}

// Update PUT /api/orders/{id}
func (c *OrderController) Update(x *ctx.Context) {
	caller, ok := c.caller(x)
	if !ok {
		return
	}
	var in services.OrderInput
	if !x.BindJSON(&in) {
		return
	}

	order, err := c.orders.Update(x.Context(), caller, x.Param("id"), in)
	if err != nil {
		x.Fail(err)
		return
	}
	c.publish(x, event.OrderUpdated, order.StoreID, order.ID)
	x.Success(order)
}

// Destroy DELETE /api/orders/{id}
func (c *OrderController) Destroy(x *ctx.Context) {
	caller, ok := c.caller(x)
	if !ok {
		return
	}
	id := x.Param("id")
	order, err := c.orders.Get(x.Context(), caller, id)
	if err != nil {
		x.Fail(err)
		return
	}
	if err := c.orders.Delete(x.Context(), caller, id); err != nil {
		x.Fail(err)
		return
	}
	c.publish(x, event.OrderDeleted, order.StoreID, id)
	x.Message("Order deleted")
}

type statusInput struct {
	Status models.Status `json:"status" validate:"required,in=RECEIVED|QUOTED|PREPARING|SHIPPED|DELIVERED"`
}

// UpdateStatus PATCH /api/orders/{id}/status
func (c *OrderController) UpdateStatus(x *ctx.Context) {
	caller, ok := c.caller(x)
	if !ok {
		return
	}
	var in statusInput
	if !x.BindJSON(&in) {
		return
	}

	order, err := c.orders.UpdateStatus(x.Context(), caller, x.Param("id"), in.Status)
	if err != nil {
		x.Fail(err)
		return
	}
	c.publish(x, event.OrderStatusChanged, order.StoreID, order.ID)
	x.Success(order)
}
