package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storehub/app/controllers"
	"github.com/shashiranjanraj/storehub/app/models"
	"github.com/shashiranjanraj/storehub/app/services"
	"github.com/shashiranjanraj/storehub/internal/kernel"
	"github.com/shashiranjanraj/storehub/internal/testkit"
	"github.com/shashiranjanraj/storehub/pkg/auth"
	"github.com/shashiranjanraj/storehub/pkg/cache"
	"github.com/shashiranjanraj/storehub/pkg/middleware"
)

type app struct {
	h  http.Handler
	db *gorm.DB
	fx *testkit.Fixtures
}

func newApp(t *testing.T) *app {
	t.Helper()
	db := testkit.DB(t)
	cache.Use(cache.NewMemory())

	stop := make(chan struct{})
	t.Cleanup(func() { close(stop) })
	k, err := kernel.NewHTTPKernel(db, kernel.Options{
		Services: controllers.Options{AllowOversell: true, ReportCacheTTL: time.Minute},
		CORS:     middleware.DefaultCORSOptions(),
		Stop:     stop,
	})
	require.NoError(t, err)

	return &app{h: k.Handler(), db: db, fx: testkit.NewFixtures(t, db)}
}

func token(t *testing.T, u models.User) string {
	t.Helper()
	tok, err := auth.GenerateToken(u.ID, string(u.Role))
	require.NoError(t, err)
	return tok
}

func TestLogin(t *testing.T) {
	a := newApp(t)
	store, owner := a.fx.Store("Shop")

	rec := testkit.Request(t, a.h, http.MethodPost, "/api/login", "", map[string]string{
		"username": owner.Username,
		"password": testkit.Password,
	})
	env := testkit.Decode(t, rec, http.StatusOK)

	var res services.LoginResult
	testkit.Data(t, env, &res)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, models.RoleStore, res.Role)
	assert.Equal(t, store.ID, res.StoreID)

	rec = testkit.Request(t, a.h, http.MethodGet, "/api/me", res.Token, nil)
	testkit.Decode(t, rec, http.StatusOK)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	a := newApp(t)
	_, owner := a.fx.Store("Shop")

	rec := testkit.Request(t, a.h, http.MethodPost, "/api/login", "", map[string]string{
		"username": owner.Username,
		"password": "wrong-password",
	})
	testkit.Decode(t, rec, http.StatusUnauthorized)

	rec = testkit.Request(t, a.h, http.MethodPost, "/api/login", "", map[string]string{})
	env := testkit.Decode(t, rec, http.StatusUnprocessableEntity)
	assert.Contains(t, env.Errors, "username")
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	a := newApp(t)

	for _, path := range []string{"/api/orders", "/api/dashboard", "/api/admin/stores", "/graphql"} {
		rec := testkit.Request(t, a.h, http.MethodGet, path, "", nil)
		testkit.Decode(t, rec, http.StatusUnauthorized)
	}
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	a := newApp(t)
	store, owner := a.fx.Store("Shop")
	tok := token(t, owner)
	customer := a.fx.Customer(store.ID, "Ada")
	p1 := a.fx.Product(store.ID, "Widget", "10.00", 10)
	p2 := a.fx.Product(store.ID, "Gadget", "5.00", 3)

	// create
	rec := testkit.Request(t, a.h, http.MethodPost, "/api/orders", tok, map[string]interface{}{
		"customer_id": customer.ID,
		"items": []map[string]interface{}{
			{"product_id": p1.ID, "quantity": 2, "price": "10.00"},
			{"product_id": p2.ID, "quantity": 1, "price": "5.00"},
		},
	})
	env := testkit.Decode(t, rec, http.StatusCreated)
	var created struct {
		ID string `json:"id"`
	}
	testkit.Data(t, env, &created)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, 8, a.fx.Stock(p1.ID))
	assert.Equal(t, 2, a.fx.Stock(p2.ID))

	// show
	rec = testkit.Request(t, a.h, http.MethodGet, "/api/orders/"+created.ID, tok, nil)
	env = testkit.Decode(t, rec, http.StatusOK)
	var order models.Order
	testkit.Data(t, env, &order)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("25")))
	assert.Equal(t, models.StatusReceived, order.Status)
	assert.Len(t, order.Items, 2)

	// update
	rec = testkit.Request(t, a.h, http.MethodPut, "/api/orders/"+created.ID, tok, map[string]interface{}{
		"customer_id": customer.ID,
		"items": []map[string]interface{}{
			{"product_id": p1.ID, "quantity": 1, "price": "10.00"},
		},
	})
	env = testkit.Decode(t, rec, http.StatusOK)
	testkit.Data(t, env, &order)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("10")))
	assert.Equal(t, 9, a.fx.Stock(p1.ID))
	assert.Equal(t, 3, a.fx.Stock(p2.ID))

	// status
	rec = testkit.Request(t, a.h, http.MethodPatch, "/api/orders/"+created.ID+"/status", tok, map[string]string{"status": "SHIPPED"})
	env = testkit.Decode(t, rec, http.StatusOK)
	testkit.Data(t, env, &order)
	assert.Equal(t, models.StatusShipped, order.Status)

	// list
	rec = testkit.Request(t, a.h, http.MethodGet, "/api/orders?status=SHIPPED", tok, nil)
	env = testkit.Decode(t, rec, http.StatusOK)
	var page struct {
		Items      []models.Order `json:"items"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	testkit.Data(t, env, &page)
	assert.Equal(t, int64(1), page.Pagination.Total)

	// delete
	rec = testkit.Request(t, a.h, http.MethodDelete, "/api/orders/"+created.ID, tok, nil)
	testkit.Decode(t, rec, http.StatusOK)
	assert.Equal(t, 10, a.fx.Stock(p1.ID))

	rec = testkit.Request(t, a.h, http.MethodGet, "/api/orders/"+created.ID, tok, nil)
	testkit.Decode(t, rec, http.StatusNotFound)
}

func TestOrderErrorsOverHTTP(t *testing.T) {
	a := newApp(t)
	storeA, ownerA := a.fx.Store("A")
	_, ownerB := a.fx.Store("B")
	customer := a.fx.Customer(storeA.ID, "Ada")
	p1 := a.fx.Product(storeA.ID, "Widget", "10.00", 10)

	rec := testkit.Request(t, a.h, http.MethodPost, "/api/orders", token(t, ownerA), map[string]interface{}{
		"customer_id": customer.ID,
		"items":       []map[string]interface{}{{"product_id": p1.ID, "quantity": 1, "price": "10.00"}},
	})
	env := testkit.Decode(t, rec, http.StatusCreated)
	var created struct {
		ID string `json:"id"`
	}
	testkit.Data(t, env, &created)

	t.Run("cross store is forbidden", func(t *testing.T) {
		rec := testkit.Request(t, a.h, http.MethodDelete, "/api/orders/"+created.ID, token(t, ownerB), nil)
		env := testkit.Decode(t, rec, http.StatusForbidden)
		assert.Equal(t, "Forbidden", env.Message)
		assert.Equal(t, 9, a.fx.Stock(p1.ID))
	})

	t.Run("item validation is field addressed", func(t *testing.T) {
		rec := testkit.Request(t, a.h, http.MethodPost, "/api/orders", token(t, ownerA), map[string]interface{}{
			"customer_id": customer.ID,
			"items":       []map[string]interface{}{{"product_id": p1.ID, "quantity": 0, "price": "10.00"}},
		})
		env := testkit.Decode(t, rec, http.StatusUnprocessableEntity)
		assert.Contains(t, env.Errors, "items.0.quantity")
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := testkit.Request(t, a.h, http.MethodPost, "/api/orders", token(t, ownerA), `{"items":`)
		testkit.Decode(t, rec, http.StatusBadRequest)
	})

	t.Run("invalid status", func(t *testing.T) {
		rec := testkit.Request(t, a.h, http.MethodPatch, "/api/orders/"+created.ID+"/status", token(t, ownerA), map[string]string{"status": "LOST"})
		testkit.Decode(t, rec, http.StatusUnprocessableEntity)
	})

	t.Run("root cannot create", func(t *testing.T) {
		rec := testkit.Request(t, a.h, http.MethodPost, "/api/orders", token(t, a.fx.Root()), map[string]interface{}{
			"customer_id": customer.ID,
			"items":       []map[string]interface{}{{"product_id": p1.ID, "quantity": 1, "price": "10.00"}},
		})
		testkit.Decode(t, rec, http.StatusForbidden)
	})
}

func TestGuardedDeletes(t *testing.T) {
	a := newApp(t)
	store, owner := a.fx.Store("Shop")
	tok := token(t, owner)
	customer := a.fx.Customer(store.ID, "Ada")
	p1 := a.fx.Product(store.ID, "Widget", "10.00", 10)
	unused := a.fx.Product(store.ID, "Spare", "1.00", 1)

	rec := testkit.Request(t, a.h, http.MethodPost, "/api/orders", tok, map[string]interface{}{
		"customer_id": customer.ID,
		"items":       []map[string]interface{}{{"product_id": p1.ID, "quantity": 1, "price": "10.00"}},
	})
	testkit.Decode(t, rec, http.StatusCreated)

	rec = testkit.Request(t, a.h, http.MethodDelete, "/api/customers/"+customer.ID, tok, nil)
	env := testkit.Decode(t, rec, http.StatusConflict)
	assert.Contains(t, env.Message, "customer has 1 orders")

	rec = testkit.Request(t, a.h, http.MethodDelete, "/api/products/"+p1.ID, tok, nil)
	testkit.Decode(t, rec, http.StatusConflict)

	rec = testkit.Request(t, a.h, http.MethodDelete, "/api/products/"+unused.ID, tok, nil)
	testkit.Decode(t, rec, http.StatusOK)
	assert.Zero(t, a.fx.Count(&models.Product{}, "id = ?", unused.ID))
}

func TestCatalogEndpoints(t *testing.T) {
	a := newApp(t)
	_, owner := a.fx.Store("Shop")
	tok := token(t, owner)

	rec := testkit.Request(t, a.h, http.MethodPost, "/api/customers", tok, map[string]interface{}{
		"full_name": "Grace Hopper",
		"email":     "grace@example.com",
	})
	env := testkit.Decode(t, rec, http.StatusCreated)
	var customer models.Customer
	testkit.Data(t, env, &customer)
	assert.Equal(t, "Grace Hopper", customer.FullName)

	rec = testkit.Request(t, a.h, http.MethodPost, "/api/products", tok, map[string]interface{}{
		"name":   "Lamp",
		"price":  "19.90",
		"stock":  4,
		"images": []map[string]string{{"url": "https://cdn.example/lamp.png"}},
	})
	env = testkit.Decode(t, rec, http.StatusCreated)
	var product models.Product
	testkit.Data(t, env, &product)

	rec = testkit.Request(t, a.h, http.MethodGet, "/api/products/"+product.ID, tok, nil)
	env = testkit.Decode(t, rec, http.StatusOK)
	testkit.Data(t, env, &product)
	assert.Len(t, product.Images, 1)

	rec = testkit.Request(t, a.h, http.MethodGet, "/api/customers", tok, nil)
	testkit.Decode(t, rec, http.StatusOK)

	rec = testkit.Request(t, a.h, http.MethodPost, "/api/products", tok, map[string]interface{}{"name": "x", "price": "-1"})
	env = testkit.Decode(t, rec, http.StatusUnprocessableEntity)
	assert.Contains(t, env.Errors, "price")
}

func TestStoreSettings(t *testing.T) {
	a := newApp(t)
	_, owner := a.fx.Store("Shop")

	rec := testkit.Request(t, a.h, http.MethodPut, "/api/store/settings", token(t, owner), map[string]string{
		"contract_text": "Terms",
		"bank_info":     "IBAN TR00",
	})
	env := testkit.Decode(t, rec, http.StatusOK)
	var store models.Store
	testkit.Data(t, env, &store)
	assert.Equal(t, "Terms", store.ContractText)
	assert.Equal(t, "IBAN TR00", store.BankInfo)

	rec = testkit.Request(t, a.h, http.MethodPut, "/api/store/settings", token(t, a.fx.Root()), map[string]string{})
	testkit.Decode(t, rec, http.StatusForbidden)
}

func TestAdminEndpoints(t *testing.T) {
	a := newApp(t)
	rootTok := token(t, a.fx.Root())
	_, owner := a.fx.Store("Existing")

	rec := testkit.Request(t, a.h, http.MethodPost, "/api/admin/stores", token(t, owner), map[string]string{})
	testkit.Decode(t, rec, http.StatusForbidden)

	rec = testkit.Request(t, a.h, http.MethodPost, "/api/admin/stores", rootTok, map[string]string{
		"name":     "New Shop",
		"username": "newshop",
		"password": "secret123",
	})
	env := testkit.Decode(t, rec, http.StatusCreated)
	var store models.Store
	testkit.Data(t, env, &store)
	require.NotEmpty(t, store.ID)

	rec = testkit.Request(t, a.h, http.MethodPost, "/api/admin/stores", rootTok, map[string]string{
		"name":     "Dup Shop",
		"username": "newshop",
		"password": "secret123",
	})
	env = testkit.Decode(t, rec, http.StatusUnprocessableEntity)
	assert.Contains(t, env.Errors, "username")

	rec = testkit.Request(t, a.h, http.MethodGet, "/api/admin/stores", rootTok, nil)
	env = testkit.Decode(t, rec, http.StatusOK)
	var page struct {
		Items []models.Store `json:"items"`
	}
	testkit.Data(t, env, &page)
	assert.Len(t, page.Items, 2)

	rec = testkit.Request(t, a.h, http.MethodPost, "/api/admin/users", rootTok, map[string]string{
		"username": "root-two",
		"password": "secret123",
	})
	testkit.Decode(t, rec, http.StatusCreated)

	rec = testkit.Request(t, a.h, http.MethodDelete, "/api/admin/stores/"+store.ID, rootTok, nil)
	testkit.Decode(t, rec, http.StatusOK)
	assert.Zero(t, a.fx.Count(&models.Store{}, "id = ?", store.ID))
	assert.Zero(t, a.fx.Count(&models.User{}, "username = ?", "newshop"))
}

func TestDashboardInvalidatedAfterMutation(t *testing.T) {
	a := newApp(t)
	store, owner := a.fx.Store("Shop")
	tok := token(t, owner)
	customer := a.fx.Customer(store.ID, "Ada")
	p1 := a.fx.Product(store.ID, "Widget", "10.00", 10)

	read := func() services.Dashboard {
		rec := testkit.Request(t, a.h, http.MethodGet, "/api/dashboard", tok, nil)
		env := testkit.Decode(t, rec, http.StatusOK)
		var d services.Dashboard
		testkit.Data(t, env, &d)
		return d
	}

	assert.Zero(t, read().OrderCount)

	rec := testkit.Request(t, a.h, http.MethodPost, "/api/orders", tok, map[string]interface{}{
		"customer_id": customer.ID,
		"paid_amount": "5.00",
		"items":       []map[string]interface{}{{"product_id": p1.ID, "quantity": 2, "price": "10.00"}},
	})
	testkit.Decode(t, rec, http.StatusCreated)

	d := read()
	assert.Equal(t, int64(1), d.OrderCount)
	assert.True(t, d.TotalSales.Equal(decimal.RequireFromString("20")))
	assert.True(t, d.Outstanding.Equal(decimal.RequireFromString("15")))
	assert.Equal(t, 25.0, d.PaymentRatio)
}

func TestGraphQLDashboard(t *testing.T) {
	a := newApp(t)
	_, owner := a.fx.Store("Shop")

	rec := testkit.Request(t, a.h, http.MethodPost, "/graphql", token(t, owner), map[string]string{
		"query": "{ dashboard { orderCount totalSales statuses { status count } } }",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"totalSales":"0.00"`)
	assert.Contains(t, rec.Body.String(), `"status":"DELIVERED"`)
}

func TestHealthz(t *testing.T) {
	a := newApp(t)
	rec := testkit.Request(t, a.h, http.MethodGet, "/healthz", "", nil)
	testkit.Decode(t, rec, http.StatusOK)

	rec = testkit.Request(t, a.h, http.MethodGet, "/nope", "", nil)
	testkit.Decode(t, rec, http.StatusNotFound)
}
