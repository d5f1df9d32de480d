package controllers

import (
	"github.com/shashiranjanraj/storehub/app/services"
	"github.com/shashiranjanraj/storehub/pkg/ctx"
)

type CustomerController struct {
	base
	customers *services.CustomerService
}

func NewCustomerController(s *Services) *CustomerController {
	return &CustomerController{base: newBase(s), customers: s.Customers}
}

// Index GET /api/customers?store_id=&page=&limit=
func (c *CustomerController) Index(x *ctx.Context) {
	caller, ok := c.caller(x)
	if !ok {
		return
	}
	page, limit := x.Page()
	list, p, err := c.customers.ListCustomers(x.Context(), caller, x.Query("store_id"), page, limit)
	if err != nil {
		x.Fail(err)
		return
	}
	x.Paginated(list, p)
}

// Store POST /api/customers
func (c *CustomerController) Store(x *ctx.Context) {
	caller, ok := c.caller(x)
	if !ok {
		return
	}
	var in services.CustomerInput
	if !x.BindJSON(&in) {
		return
	}
	customer, err := c.customers.CreateCustomer(x.Context(), caller, in)
	if err != nil {
		x.Fail(err)
		return
	}
	x.Created(customer)
}

// Show GET /api/customers/{id}
func (c *CustomerController) Show(x *ctx.Context) {
	caller, ok := c.caller(x)
	if !ok {
		return
	}
	customer, err := c.customers.GetCustomer(x.Context(), caller, x.Param("id"))
	if err != nil {
		x.Fail(err)
		return
	}
	x.Success(customer)
}

// Destroy DELETE /api/customers/{id}
func (c *CustomerController) Destroy(x *ctx.Context) {
	caller, ok := c.caller(x)
	if !ok {
		return
	}
	if err := c.customers.DeleteCustomer(x.Context(), caller, x.Param("id")); err != nil {
		x.Fail(err)
		return
	}
	x.Message("Customer deleted")
}
