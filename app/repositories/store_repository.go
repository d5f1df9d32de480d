package repositories

import (
	"context"

	"github.com/shashiranjanraj/storehub/app/models"
	"github.com/shashiranjanraj/storehub/pkg/orm"
	"gorm.io/gorm"
)

type StoreRepository struct{}

func NewStoreRepository() *StoreRepository {
	return &StoreRepository{}
}

// FindByUserID returns the store owned by userID.
func (r *StoreRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID string) (models.Store, error) {
	var store models.Store
	err := orm.New(ctx, db).Model(&models.Store{}).Where("user_id = ?", userID).First(&store)
	return store, err
}

func (r *StoreRepository) FindByID(ctx context.Context, db *gorm.DB, id string) (models.Store, error) {
	var store models.Store
	err := orm.New(ctx, db).Model(&models.Store{}).Where("id = ?", id).First(&store)
	return store, err
}

func (r *StoreRepository) Create(ctx context.Context, db *gorm.DB, store *models.Store) error {
	return orm.New(ctx, db).Omit("User").Create(store)
}

// UpdateSettings writes the free-text columns of a store.
func (r *StoreRepository) UpdateSettings(ctx context.Context, db *gorm.DB, id string, contract, note, bank string) (int64, error) {
	return orm.New(ctx, db).Model(&models.Store{}).Where("id = ?", id).Updates(map[string]interface{}{
		"contract_text": contract,
		"note_text":     note,
		"bank_info":     bank,
	})
}

func (r *StoreRepository) Delete(ctx context.Context, db *gorm.DB, id string) (int64, error) {
	return orm.New(ctx, db).Where("id = ?", id).Delete(&models.Store{})
}

func (r *StoreRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	return orm.New(ctx, db).Model(&models.Store{}).Count()
}

func (r *StoreRepository) List(ctx context.Context, db *gorm.DB, page, limit int) ([]models.Store, orm.Pagination, error) {
	var stores []models.Store
	p, err := orm.New(ctx, db).Model(&models.Store{}).Order("name asc").Paginate(&stores, page, limit, "User")
	return stores, p, err
}
