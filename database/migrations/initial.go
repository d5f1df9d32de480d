package migrations

import (
	"github.com/shashiranjanraj/storehub/app/models"
	"github.com/shashiranjanraj/storehub/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260101000000_create_users_and_stores", usersAndStores{})
	migration.Register("20260101000001_create_catalog", catalog{})
	migration.Register("20260101000002_create_orders", orders{})
}

type usersAndStores struct{}

func (usersAndStores) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Store{})
}

func (usersAndStores) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.Store{}, &models.User{})
}

type catalog struct{}

func (catalog) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Customer{}, &models.Product{}, &models.ProductImage{})
}

func (catalog) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.ProductImage{}, &models.Product{}, &models.Customer{})
}

type orders struct{}

func (orders) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{}, &models.OrderItem{})
}

func (orders) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.OrderItem{}, &models.Order{})
}
