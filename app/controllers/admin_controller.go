package controllers

import (
	"github.com/shashiranjanraj/storehub/app/services"
	"github.com/shashiranjanraj/storehub/pkg/ctx"
	"github.com/shashiranjanraj/storehub/pkg/event"
)

// AdminController holds the ROOT-only tenant and account operations.
type AdminController struct {
	base
	stores *services.StoreService
}

func NewAdminController(s *Services) *AdminController {
	return &AdminController{base: newBase(s), stores: s.Stores}
}

// Stores GET /api/admin/stores
func (c *AdminController) Stores(x *ctx.Context) {
	caller, ok := c.caller(x)
	if !ok {
		return
	}
	page, limit := x.Page()
	list, p, err := c.stores.ListStores(x.Context(), caller, page, limit)
	if err != nil {
		x.Fail(err)
		return
	}
	x.Paginated(list, p)
}

// CreateStore POST /api/admin/stores
func (c *AdminController) CreateStore(x *ctx.Context) {
	caller, ok := c.caller(x)
	if !ok {
		return
	}
	var in services.StoreInput
	if !x.BindJSON(&in) {
		return
	}
	store, err := c.stores.CreateStore(x.Context(), caller, in)
	if err != nil {
		x.Fail(err)
		return
	}
	c.publish(x, event.StoreCreated, store.ID, store.ID)
	x.Created(store)
}

// DeleteStore DELETE /api/admin/stores/{id}
func (c *AdminController) DeleteStore(x *ctx.Context) {
	caller, ok := c.caller(x)
	if !ok {
		return
	}
	id := x.Param("id")
	if err := c.stores.DeleteStore(x.Context(), caller, id); err != nil {
		x.Fail(err)
		return
	}
	c.publish(x, event.StoreDeleted, id, id)
	x.Message("Store deleted")
}

// CreateUser POST /api/admin/users
func (c *AdminController) CreateUser(x *ctx.Context) {
	caller, ok := c.caller(x)
	if !ok {
		return
	}
	var in services.UserInput
	if !x.BindJSON(&in) {
		return
	}
	user, err := c.stores.CreateRootUser(x.Context(), caller, in)
	if err != nil {
		x.Fail(err)
		return
	}
	x.Created(user)
}
