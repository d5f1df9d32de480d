package services

import (
	"testing"

	"github.com/shashiranjanraj/storehub/app/models"
	"github.com/shashiranjanraj/storehub/internal/testkit"
	"github.com/shashiranjanraj/storehub/pkg/cache"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type harness struct {
	db        *gorm.DB
	fx        *testkit.Fixtures
	orders    *OrderService
	catalog   *CatalogService
	customers *CustomerService
	stores    *StoreService
	reports   *ReportService
	auth      *AuthService
}

func newHarness(t *testing.T, allowOversell bool) *harness {
	t.Helper()
	db := testkit.DB(t)
	cache.Use(cache.NewMemory())

	catalog := NewCatalogService(db)
	customers := NewCustomerService(db)
	orders, err := NewOrderService(OrderServiceDeps{
		DB:            db,
		Catalog:       catalog,
		Customers:     customers,
		AllowOversell: allowOversell,
	})
	require.NoError(t, err)

	return &harness{
		db:        db,
		fx:        testkit.NewFixtures(t, db),
		orders:    orders,
		catalog:   catalog,
		customers: customers,
		stores:    NewStoreService(db),
		reports:   NewReportService(db, 0),
		auth:      NewAuthService(db),
	}
}

func storeCaller(s models.Store) Caller {
	return Caller{UserID: s.UserID, Role: models.RoleStore, StoreID: s.ID}
}

func rootCaller() Caller {
	return Caller{UserID: "root", Role: models.RoleRoot}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func item(productID string, qty int, price string) OrderItemInput {
	return OrderItemInput{ProductID: productID, Quantity: qty, Price: dec(price)}
}
