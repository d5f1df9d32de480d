package routes

import (
	"github.com/shashiranjanraj/storehub/app/controllers"
	"github.com/shashiranjanraj/storehub/app/models"
	"github.com/shashiranjanraj/storehub/pkg/ctx"
	"github.com/shashiranjanraj/storehub/pkg/middleware"
	"github.com/shashiranjanraj/storehub/pkg/rbac"
	"github.com/shashiranjanraj/storehub/pkg/router"
)

// RegisterAPI mounts every application endpoint on r.
func RegisterAPI(r *router.Router, s *controllers.Services) error {
	authController := controllers.NewAuthController(s)
	orderController := controllers.NewOrderController(s)
	customerController := controllers.NewCustomerController(s)
	productController := controllers.NewProductController(s)
	storeController := controllers.NewStoreController(s)
	adminController := controllers.NewAdminController(s)
	dashboardController, err := controllers.NewDashboardController(s)
	if err != nil {
		return err
	}

	api := r.Group("/api")
	api.Post("/login", "auth.login", ctx.Wrap(authController.Login))

	protected := api.Group("", middleware.Auth)
	protected.Get("/me", "auth.me", ctx.Wrap(authController.Me))

	orders := protected.Group("/orders")
	orders.Get("", "orders.index", ctx.Wrap(orderController.Index))
	orders.Post("", "orders.store", ctx.Wrap(orderController.Store))
	orders.Get("/{id}", "orders.show", ctx.Wrap(orderController.Show))
	orders.Put("/{id}", "orders.update", ctx.Wrap(orderController.Update))
	orders.Delete("/{id}", "orders.destroy", ctx.Wrap(orderController.Destroy))
	orders.Patch("/{id}/status", "orders.status", ctx.Wrap(orderController.UpdateStatus))

	customers := protected.Group("/customers")
	customers.Get("", "customers.index", ctx.Wrap(customerController.Index))
	customers.Post("", "customers.store", ctx.Wrap(customerController.Store))
	customers.Get("/{id}", "customers.show", ctx.Wrap(customerController.Show))
	customers.Delete("/{id}", "customers.destroy", ctx.Wrap(customerController.Destroy))

	products := protected.Group("/products")
	products.Get("", "products.index", ctx.Wrap(productController.Index))
	products.Post("", "products.store", ctx.Wrap(productController.Store))
	products.Get("/{id}", "products.show", ctx.Wrap(productController.Show))
	products.Delete("/{id}", "products.destroy", ctx.Wrap(productController.Destroy))

	protected.Put("/store/settings", "store.settings", ctx.Wrap(storeController.UpdateSettings))
	protected.Get("/dashboard", "dashboard.show", ctx.Wrap(dashboardController.Show))

	admin := protected.Group("/admin", rbac.HasRole(string(models.RoleRoot)))
	admin.Get("/stores", "admin.stores.index", ctx.Wrap(adminController.Stores))
	admin.Post("/stores", "admin.stores.store", ctx.Wrap(adminController.CreateStore))
	admin.Delete("/stores/{id}", "admin.stores.destroy", ctx.Wrap(adminController.DeleteStore))
	admin.Post("/users", "admin.users.store", ctx.Wrap(adminController.CreateUser))

	r.HandleFunc("/graphql", "graphql", dashboardController.GraphQL, middleware.Auth)
	return nil
}
