package controllers

import (
	"github.com/shashiranjanraj/storehub/app/services"
	"github.com/shashiranjanraj/storehub/pkg/ctx"
	"github.com/shashiranjanraj/storehub/pkg/event"
)

type ProductController struct {
	base
	catalog *services.CatalogService
}

func NewProductController(s *Services) *ProductController {
	return &ProductController{base: newBase(s), catalog: s.Catalog}
}

// Index GET /api/products?store_id=&page=&limit=
func (c *ProductController) Index(x *ctx.Context) {
	caller, ok := c.caller(x)
	if !ok {
		return
	}
	page, limit := x.Page()
	list, p, err := c.catalog.ListProducts(x.Context(), caller, x.Query("store_id"), page, limit)
	if err != nil {
		x.Fail(err)
		return
	}
	x.Paginated(list, p)
}

// Store POST /api/products
func (c *ProductController) Store(x *ctx.Context) {
	caller, ok := c.caller(x)
	if !ok {
		return
	}
	var in services.ProductInput
	if !x.BindJSON(&in) {
		return
	}
	product, err := c.catalog.CreateProduct(x.Context(), caller, in)
	if err != nil {
		x.Fail(err)
		return
	}
	c.publish(x, event.ProductCreated, product.StoreID, product.ID)
	x.Created(product)
}

// Show GET /api/products/{id}
func (c *ProductController) Show(x *ctx.Context) {
	caller, ok := c.caller(x)
	if !ok {
		return
	}
	product, err := c.catalog.GetProduct(x.Context(), caller, x.Param("id"))
	if err != nil {
		x.Fail(err)
		return
	}
	x.Success(product)
}

// Destroy DELETE /api/products/{id}
func (c *ProductController) Destroy(x *ctx.Context) {
	caller, ok := c.caller(x)
	if !ok {
		return
	}
	id := x.Param("id")
	product, err := c.catalog.GetProduct(x.Context(), caller, id)
	if err != nil {
		x.Fail(err)
		return
	}
	if err := c.catalog.DeleteProduct(x.Context(), caller, id); err != nil {
		x.Fail(err)
		return
	}
	c.publish(x, event.ProductDeleted, product.StoreID, id)
	x.Message("Product deleted")
}
