package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shashiranjanraj/storehub/app/models"
	"github.com/shashiranjanraj/storehub/app/repositories"
	"github.com/shashiranjanraj/storehub/pkg/database"
	"github.com/shashiranjanraj/storehub/pkg/logger"
	"github.com/shashiranjanraj/storehub/pkg/metrics"
	"github.com/shashiranjanraj/storehub/pkg/orm"
	"github.com/shashiranjanraj/storehub/pkg/validate"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderItemInput struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity"   validate:"required,gte=1,lte=1000000"`
	Price     decimal.Decimal `json:"price"      validate:"gte=0,lte=9999999999.99"`
}

// OrderInput is the payload of Create and Update. There is deliberately no
// total field: the total is always computed from Items.
type OrderInput struct {
	CustomerID    string           `json:"customer_id"    validate:"required"`
	Items         []OrderItemInput `json:"items"          validate:"required,min=1,dive"`
	PaymentMethod string           `json:"payment_method" validate:"max=100"`
	Notes         string           `json:"notes"          validate:"max=5000"`
	PaidAmount    decimal.Decimal  `json:"paid_amount"    validate:"gte=0,lte=9999999999.99"`
	Status        models.Status    `json:"status"         validate:"nullable,in=RECEIVED|QUOTED|PREPARING|SHIPPED|DELIVERED"`
}

// OrderFilter narrows List. StoreID is honoured for ROOT callers only.
type OrderFilter struct {
	StoreID string
	Status  models.Status
	Page    int
	Limit   int
}

// OrderServiceDeps bundles the collaborators of an OrderService.
type OrderServiceDeps struct {
	DB        *gorm.DB
	Catalog   *CatalogService
	Customers *CustomerService
	// AllowOversell lets stock go negative. When false a decrement below zero
	// fails the whole operation.
	AllowOversell bool
}

// OrderService creates, edits and deletes order aggregates, keeping product
// stock consistent. Every mutation runs in one transaction.
type OrderService struct {
	db            *gorm.DB
	orders        *repositories.OrderRepository
	catalog       *CatalogService
	customers     *CustomerService
	allowOversell bool
}

func NewOrderService(deps OrderServiceDeps) (*OrderService, error) {
	if deps.DB == nil {
		return nil, errors.New("order service: database is required")
	}
	catalog := deps.Catalog
	if catalog == nil {
		catalog = NewCatalogService(deps.DB)
	}
	customers := deps.Customers
	if customers == nil {
		customers = NewCustomerService(deps.DB)
	}
	return &OrderService{
		db:            deps.DB,
		orders:        repositories.NewOrderRepository(),
		catalog:       catalog,
		customers:     customers,
		allowOversell: deps.AllowOversell,
	}, nil
}

// Create inserts a new order for the caller's store and decrements stock.
func (s *OrderService) Create(ctx context.Context, caller Caller, in OrderInput) (models.Order, error) {
	start := time.Now()
	order, err := s.create(ctx, caller, in)
	s.finish(ctx, "create", start, err, order)
	return order, err
}

func (s *OrderService) create(ctx context.Context, caller Caller, in OrderInput) (models.Order, error) {
	if err := caller.requireStore(); err != nil {
		return models.Order{}, err
	}
	if err := validateOrder(in); err != nil {
		return models.Order{}, err
	}

	var order models.Order
	err := database.Transaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := s.checkReferences(ctx, tx, caller.StoreID, in); err != nil {
			return err
		}

		items := buildItems(in.Items)
		status := in.Status
		if status == "" {
			status = models.StatusReceived
		}
		order = models.Order{
			StoreID:       caller.StoreID,
			CustomerID:    in.CustomerID,
			Status:        status,
			TotalAmount:   models.SumItems(items),
			PaidAmount:    in.PaidAmount.Round(2),
			PaymentMethod: in.PaymentMethod,
			Notes:         in.Notes,
		}
		if err := s.orders.Create(ctx, tx, &order); err != nil {
			return fmt.Errorf("orders: insert header: %w", err)
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := s.orders.CreateItems(ctx, tx, items); err != nil {
			return fmt.Errorf("orders: insert items: %w", err)
		}
		order.Items = items

		return s.moveStock(ctx, tx, items, -1)
	})
	if err != nil {
		return models.Order{}, err
	}
	recordStock(order.Items, -1)
	return order, nil
}

// Update replaces the order's header and item set. Stock for the old items is
// restored before stock for the new items is taken.
func (s *OrderService) Update(ctx context.Context, caller Caller, orderID string, in OrderInput) (models.Order, error) {
	start := time.Now()
	order, err := s.update(ctx, caller, orderID, in)
	s.finish(ctx, "update", start, err, order)
	return order, err
}

func (s *OrderService) update(ctx context.Context, caller Caller, orderID string, in OrderInput) (models.Order, error) {
	if err := validateOrder(in); err != nil {
		return models.Order{}, err
	}

	var (
		order    models.Order
		oldItems []models.OrderItem
	)
	err := database.Transaction(ctx, s.db, func(tx *gorm.DB) error {
		existing, err := s.lockOrder(ctx, tx, caller, orderID)
		if err != nil {
			return err
		}
		if err := s.checkReferences(ctx, tx, existing.StoreID, in); err != nil {
			return err
		}

		if err := s.moveStock(ctx, tx, existing.Items, +1); err != nil {
			return err
		}
		if _, err := s.orders.DeleteItems(ctx, tx, existing.ID); err != nil {
			return fmt.Errorf("orders: delete items: %w", err)
		}

		items := buildItems(in.Items)
		for i := range items {
			items[i].OrderID = existing.ID
		}

		order = existing
		order.CustomerID = in.CustomerID
		order.TotalAmount = models.SumItems(items)
		order.PaidAmount = in.PaidAmount.Round(2)
		order.PaymentMethod = in.PaymentMethod
		order.Notes = in.Notes
		if in.Status != "" {
			order.Status = in.Status
		}

		if _, err := s.orders.UpdateHeader(ctx, tx, existing.ID, map[string]interface{}{
			"customer_id":    order.CustomerID,
			"status":         order.Status,
			"total_amount":   order.TotalAmount,
			"paid_amount":    order.PaidAmount,
			"payment_method": order.PaymentMethod,
			"notes":          order.Notes,
		}); err != nil {
			return fmt.Errorf("orders: update header: %w", err)
		}
		if err := s.orders.CreateItems(ctx, tx, items); err != nil {
			return fmt.Errorf("orders: insert items: %w", err)
		}
		order.Items = items
		oldItems = existing.Items

		return s.moveStock(ctx, tx, items, -1)
	})
	if err != nil {
		return models.Order{}, err
	}
	recordStock(oldItems, +1)
	recordStock(order.Items, -1)
	return order, nil
}

// Delete removes the order and its items and restores their stock.
func (s *OrderService) Delete(ctx context.Context, caller Caller, orderID string) error {
	start := time.Now()
	var existing models.Order
	err := database.Transaction(ctx, s.db, func(tx *gorm.DB) error {
		var err error
		existing, err = s.lockOrder(ctx, tx, caller, orderID)
		if err != nil {
			return err
		}
		if err := s.moveStock(ctx, tx, existing.Items, +1); err != nil {
			return err
		}
		if _, err := s.orders.DeleteItems(ctx, tx, existing.ID); err != nil {
			return fmt.Errorf("orders: delete items: %w", err)
		}
		if _, err := s.orders.Delete(ctx, tx, existing.ID); err != nil {
			return fmt.Errorf("orders: delete header: %w", err)
		}
		return nil
	})
	if err == nil {
		recordStock(existing.Items, +1)
	}
	s.finish(ctx, "delete", start, err, existing)
	return err
}

// Get returns the order with its customer and items.
func (s *OrderService) Get(ctx context.Context, caller Caller, orderID string) (models.Order, error) {
	o, err := s.orders.Find(ctx, s.db, orderID)
	if err != nil {
		return models.Order{}, notFoundOr(err, "order")
	}
	if !caller.CanAccess(o.StoreID) {
		return models.Order{}, ErrForbidden
	}
	return o, nil
}

// List pages orders newest first. STORE callers only ever see their store.
func (s *OrderService) List(ctx context.Context, caller Caller, f OrderFilter) ([]models.Order, orm.Pagination, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, orm.Pagination{}, fieldError("status", "The selected status is invalid.", nil)
	}
	return s.orders.List(ctx, s.db, repositories.OrderFilter{
		StoreID: caller.scope(f.StoreID),
		Status:  f.Status,
		Page:    f.Page,
		Limit:   f.Limit,
	})
}

// lockOrder loads the order and its items under a row lock and checks that
// the caller may modify it.
func (s *OrderService) lockOrder(ctx context.Context, tx *gorm.DB, caller Caller, orderID string) (models.Order, error) {
	o, err := s.orders.FindForUpdate(ctx, tx, orderID)
	if err != nil {
		return models.Order{}, notFoundOr(err, "order")
	}
	if !caller.CanAccess(o.StoreID) {
		return models.Order{}, ErrForbidden
	}
	return o, nil
}

// checkReferences requires the customer and every product to live in storeID.
func (s *OrderService) checkReferences(ctx context.Context, tx *gorm.DB, storeID string, in OrderInput) error {
	if _, err := s.customers.customerInStore(ctx, tx, storeID, in.CustomerID); err != nil {
		return err
	}
	ids := make([]string, 0, len(in.Items))
	seen := make(map[string]bool, len(in.Items))
	for _, it := range in.Items {
		if !seen[it.ProductID] {
			seen[it.ProductID] = true
			ids = append(ids, it.ProductID)
		}
	}
	_, err := s.catalog.productsInStore(ctx, tx, storeID, ids)
	return err
}

// moveStock applies sign × quantity for every item. Products are touched in
// id order so concurrent transactions take row locks in the same sequence.
func (s *OrderService) moveStock(ctx context.Context, tx *gorm.DB, items []models.OrderItem, sign int) error {
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return items[idx[a]].ProductID < items[idx[b]].ProductID })

	guard := !s.allowOversell && sign < 0
	for _, i := range idx {
		it := items[i]
		err := s.catalog.adjustStock(ctx, tx, it.ProductID, sign*it.Quantity, guard)
		if errors.Is(err, ErrInsufficientStock) {
			return fieldError(fmt.Sprintf("items.%d.quantity", i), "Insufficient stock for this product.", ErrInsufficientStock)
		}
		if err != nil {
			return fmt.Errorf("orders: adjust stock of %s: %w", it.ProductID, err)
		}
	}
	return nil
}

func (s *OrderService) finish(ctx context.Context, op string, start time.Time, err error, o models.Order) {
	outcome := outcomeOf(err)
	metrics.RecordOrderOperation(op, outcome, start)

	log := logger.WithCtx(ctx)
	switch outcome {
	case "ok":
		log.Info("orders: "+op, "order_id", o.ID, "store_id", o.StoreID, "items", len(o.Items), "total", o.TotalAmount.StringFixed(2))
	case "error":
		log.Error("orders: "+op+" failed", "order_id", o.ID, "error", err)
	default:
		log.Warn("orders: "+op+" rejected", "outcome", outcome, "error", err)
	}
}

func validateOrder(in OrderInput) error {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return NewValidationError(errs)
	}
	if models.SumItems(buildItems(in.Items)).GreaterThan(models.MaxAmount) {
		return NewValidationError(map[string]string{
			"items": "The order total must not be greater than " + models.MaxAmount.StringFixed(2) + ".",
		})
	}
	return nil
}

func buildItems(in []OrderItemInput) []models.OrderItem {
	items := make([]models.OrderItem, len(in))
	for i, it := range in {
		items[i] = models.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price.Round(2),
		}
	}
	return items
}

func recordStock(items []models.OrderItem, sign int) {
	for _, it := range items {
		metrics.RecordStock(sign * it.Quantity)
	}
}

// outcomeOf classifies err for metrics and logging.
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case IsValidation(err):
		return "validation"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}
