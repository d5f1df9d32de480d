// Package controllers adapts HTTP requests to service calls. Controllers
// resolve the caller, bind input, call one service operation and answer with
// the response envelope. After a successful mutation they fire an event; the
// listeners drop the cached dashboards of the affected store.
package controllers

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storehub/app/services"
	"github.com/shashiranjanraj/storehub/pkg/auth"
	"github.com/shashiranjanraj/storehub/pkg/ctx"
	"github.com/shashiranjanraj/storehub/pkg/event"
	"github.com/shashiranjanraj/storehub/pkg/logger"
)

// Options tunes the services behind the controllers.
type Options struct {
	AllowOversell  bool
	ReportCacheTTL time.Duration
}

// Services is every service the HTTP layer calls, built over one database.
type Services struct {
	Auth      *services.AuthService
	Catalog   *services.CatalogService
	Customers *services.CustomerService
	Orders    *services.OrderService
	Stores    *services.StoreService
	Reports   *services.ReportService
	Events    *event.Bus
}

func NewServices(db *gorm.DB, opts Options) (*Services, error) {
	catalog := services.NewCatalogService(db)
	customers := services.NewCustomerService(db)
	orders, err := services.NewOrderService(services.OrderServiceDeps{
		DB:            db,
		Catalog:       catalog,
		Customers:     customers,
		AllowOversell: opts.AllowOversell,
	})
	if err != nil {
		return nil, err
	}
	s := &Services{
		Auth:      services.NewAuthService(db),
		Catalog:   catalog,
		Customers: customers,
		Orders:    orders,
		Stores:    services.NewStoreService(db),
		Reports:   services.NewReportService(db, opts.ReportCacheTTL),
		Events:    event.New(),
	}
	s.Events.Listen(s.invalidateReports,
		event.OrderCreated, event.OrderUpdated, event.OrderDeleted, event.OrderStatusChanged,
		event.ProductCreated, event.ProductDeleted, event.StoreCreated, event.StoreDeleted,
	)
	s.Events.Listen(audit, "*")
	return s, nil
}

func (s *Services) invalidateReports(ctx context.Context, e event.Event) {
	s.Reports.Invalidate(ctx, e.StoreID)
}

func audit(ctx context.Context, e event.Event) {
	logger.WithCtx(ctx).Info("audit", "event", e.Name, "store_id", e.StoreID, "id", e.EntityID)
}

// base is embedded by every authenticated controller.
type base struct {
	auth    *services.AuthService
	reports *services.ReportService
	events  *event.Bus
}

func newBase(s *Services) base {
	return base{auth: s.Auth, reports: s.Reports, events: s.Events}
}

// caller resolves the token identity placed by middleware.Auth. On failure
// the error response has been written and ok is false.
func (b base) caller(x *ctx.Context) (services.Caller, bool) {
	c, err := b.auth.Resolve(x.Context(), auth.FromContext(x.Context()))
	if err != nil {
		x.Fail(err)
		return services.Caller{}, false
	}
	return c, true
}

// publish fires name for the entity id of storeID.
func (b base) publish(x *ctx.Context, name, storeID, id string) {
	b.events.Fire(x.Context(), event.Event{Name: name, StoreID: storeID, EntityID: id})
}
