package repositories

import (
	"context"

	"github.com/shashiranjanraj/storehub/app/models"
	"github.com/shashiranjanraj/storehub/pkg/orm"
	"gorm.io/gorm"
)

type CustomerRepository struct{}

func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{}
}

func (r *CustomerRepository) FindByID(ctx context.Context, db *gorm.DB, id string) (models.Customer, error) {
	var c models.Customer
	err := orm.New(ctx, db).Model(&models.Customer{}).Where("id = ?", id).First(&c)
	return c, err
}

// List pages customers, alphabetically. An empty storeID lists every store.
func (r *CustomerRepository) List(ctx context.Context, db *gorm.DB, storeID string, page, limit int) ([]models.Customer, orm.Pagination, error) {
	var out []models.Customer
	p, err := orm.New(ctx, db).
		Model(&models.Customer{}).
		WhereIf(storeID != "", "store_id = ?", storeID).
		Order("full_name asc").
		Paginate(&out, page, limit)
	return out, p, err
}

func (r *CustomerRepository) Create(ctx context.Context, db *gorm.DB, c *models.Customer) error {
	return orm.New(ctx, db).Omit("Store").Create(c)
}

// CountOrders reports how many orders bill this customer.
func (r *CustomerRepository) CountOrders(ctx context.Context, db *gorm.DB, id string) (int64, error) {
	return orm.New(ctx, db).Model(&models.Order{}).Where("customer_id = ?", id).Count()
}

func (r *CustomerRepository) Delete(ctx context.Context, db *gorm.DB, id string) (int64, error) {
	return orm.New(ctx, db).Where("id = ?", id).Delete(&models.Customer{})
}

func (r *CustomerRepository) DeleteByStore(ctx context.Context, db *gorm.DB, storeID string) (int64, error) {
	return orm.New(ctx, db).Where("store_id = ?", storeID).Delete(&models.Customer{})
}
