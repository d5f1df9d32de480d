package repositories

import (
	"context"

	"github.com/shashiranjanraj/storehub/app/models"
	"github.com/shashiranjanraj/storehub/pkg/orm"
	"gorm.io/gorm"
)

type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

func (r *ProductRepository) FindByID(ctx context.Context, db *gorm.DB, id string) (models.Product, error) {
	var p models.Product
	err := orm.New(ctx, db).Model(&models.Product{}).Where("id = ?", id).Preload("Images").First(&p)
	return p, err
}

// FindMany loads the given products keyed by id. Missing ids are simply absent.
func (r *ProductRepository) FindMany(ctx context.Context, db *gorm.DB, ids []string) (map[string]models.Product, error) {
	out := make(map[string]models.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []models.Product
	if err := orm.New(ctx, db).Model(&models.Product{}).Where("id IN ?", ids).Get(&rows); err != nil {
		return nil, err
	}
	for _, p := range rows {
		out[p.ID] = p
	}
	return out, nil
}

// List pages products, alphabetically. An empty storeID lists every store.
func (r *ProductRepository) List(ctx context.Context, db *gorm.DB, storeID string, page, limit int) ([]models.Product, orm.Pagination, error) {
	var out []models.Product
	p, err := orm.New(ctx, db).
		Model(&models.Product{}).
		WhereIf(storeID != "", "store_id = ?", storeID).
		Order("name asc").
		Paginate(&out, page, limit, "Images")
	return out, p, err
}

// Create inserts the product together with its image references.
func (r *ProductRepository) Create(ctx context.Context, db *gorm.DB, p *models.Product) error {
	return orm.New(ctx, db).Omit("Store").Create(p)
}

// AdjustStock adds delta to the product's stock in a single statement. With
// guard set, a decrement that would take stock below zero matches no row and
// ErrNoRows is returned.
func (r *ProductRepository) AdjustStock(ctx context.Context, db *gorm.DB, id string, delta int, guard bool) error {
	n, err := orm.New(ctx, db).
		Model(&models.Product{}).
		Where("id = ?", id).
		WhereIf(guard && delta < 0, "stock >= ?", -delta).
		Updates(map[string]interface{}{"stock": gorm.Expr("stock + ?", delta)})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNoRows
	}
	return nil
}

// CountOrderItems reports how many order lines reference the product.
func (r *ProductRepository) CountOrderItems(ctx context.Context, db *gorm.DB, id string) (int64, error) {
	return orm.New(ctx, db).Model(&models.OrderItem{}).Where("product_id = ?", id).Count()
}

func (r *ProductRepository) Count(ctx context.Context, db *gorm.DB, storeID string) (int64, error) {
	return orm.New(ctx, db).Model(&models.Product{}).WhereIf(storeID != "", "store_id = ?", storeID).Count()
}

// Delete removes the product and its image references.
func (r *ProductRepository) Delete(ctx context.Context, db *gorm.DB, id string) (int64, error) {
	if _, err := orm.New(ctx, db).Where("product_id = ?", id).Delete(&models.ProductImage{}); err != nil {
		return 0, err
	}
	return orm.New(ctx, db).Where("id = ?", id).Delete(&models.Product{})
}

func (r *ProductRepository) DeleteImagesByStore(ctx context.Context, db *gorm.DB, storeID string) (int64, error) {
	ids := db.Model(&models.Product{}).Select("id").Where("store_id = ?", storeID)
	return orm.New(ctx, db).Where("product_id IN (?)", ids).Delete(&models.ProductImage{})
}

func (r *ProductRepository) DeleteByStore(ctx context.Context, db *gorm.DB, storeID string) (int64, error) {
	return orm.New(ctx, db).Where("store_id = ?", storeID).Delete(&models.Product{})
}
