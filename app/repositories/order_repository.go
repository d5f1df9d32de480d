package repositories

import (
	"context"

	"github.com/shashiranjanraj/storehub/app/models"
	"github.com/shashiranjanraj/storehub/pkg/orm"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// OrderFilter narrows List. Empty fields match everything.
type OrderFilter struct {
	StoreID string
	Status  models.Status
	Page    int
	Limit   int
}

// FindForUpdate loads the order header under a row lock plus its items.
func (r *OrderRepository) FindForUpdate(ctx context.Context, db *gorm.DB, id string) (models.Order, error) {
	var o models.Order
	if err := orm.New(ctx, db).Model(&models.Order{}).Where("id = ?", id).ForUpdate().First(&o); err != nil {
		return o, err
	}
	items, err := r.items(ctx, db, id)
	if err != nil {
		return o, err
	}
	o.Items = items
	return o, nil
}

// Find loads the order with customer, items and the items' products.
func (r *OrderRepository) Find(ctx context.Context, db *gorm.DB, id string) (models.Order, error) {
	var o models.Order
	err := orm.New(ctx, db).
		Model(&models.Order{}).
		Where("id = ?", id).
		Preload("Customer").
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("id asc") }).
		Preload("Items.Product").
		First(&o)
	return o, err
}

func (r *OrderRepository) items(ctx context.Context, db *gorm.DB, orderID string) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := orm.New(ctx, db).Model(&models.OrderItem{}).Where("order_id = ?", orderID).Order("id asc").Get(&items)
	return items, err
}

// List pages orders newest first.
func (r *OrderRepository) List(ctx context.Context, db *gorm.DB, f OrderFilter) ([]models.Order, orm.Pagination, error) {
	var out []models.Order
	p, err := orm.New(ctx, db).
		Model(&models.Order{}).
		WhereIf(f.StoreID != "", "store_id = ?", f.StoreID).
		WhereIf(f.Status != "", "status = ?", f.Status).
		Order("created_at desc, id desc").
		Paginate(&out, f.Page, f.Limit, "Customer")
	return out, p, err
}

// Create inserts the header only; items go through CreateItems.
func (r *OrderRepository) Create(ctx context.Context, db *gorm.DB, o *models.Order) error {
	return orm.New(ctx, db).Omit(clause.Associations).Create(o)
}

func (r *OrderRepository) CreateItems(ctx context.Context, db *gorm.DB, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return orm.New(ctx, db).Omit(clause.Associations).Create(&items)
}

// UpdateHeader writes the given header columns.
func (r *OrderRepository) UpdateHeader(ctx context.Context, db *gorm.DB, id string, fields map[string]interface{}) (int64, error) {
	return orm.New(ctx, db).Model(&models.Order{}).Where("id = ?", id).Updates(fields)
}

func (r *OrderRepository) DeleteItems(ctx context.Context, db *gorm.DB, orderID string) (int64, error) {
	return orm.New(ctx, db).Where("order_id = ?", orderID).Delete(&models.OrderItem{})
}

func (r *OrderRepository) Delete(ctx context.Context, db *gorm.DB, id string) (int64, error) {
	return orm.New(ctx, db).Where("id = ?", id).Delete(&models.Order{})
}

func (r *OrderRepository) DeleteItemsByStore(ctx context.Context, db *gorm.DB, storeID string) (int64, error) {
	ids := db.Model(&models.Order{}).Select("id").Where("store_id = ?", storeID)
	return orm.New(ctx, db).Where("order_id IN (?)", ids).Delete(&models.OrderItem{})
}

func (r *OrderRepository) DeleteByStore(ctx context.Context, db *gorm.DB, storeID string) (int64, error) {
	return orm.New(ctx, db).Where("store_id = ?", storeID).Delete(&models.Order{})
}

// Figures is the slice of an order the reports aggregate over.
type Figures struct {
	Status      models.Status
	TotalAmount decimal.Decimal
	PaidAmount  decimal.Decimal
}

// Figures returns status and amounts of every order in storeID (all stores
// when empty).
func (r *OrderRepository) Figures(ctx context.Context, db *gorm.DB, storeID string) ([]Figures, error) {
	var out []Figures
	err := orm.New(ctx, db).
		Model(&models.Order{}).
		Select("status", "total_amount", "paid_amount").
		WhereIf(storeID != "", "store_id = ?", storeID).
		Scan(&out)
	return out, err
}
