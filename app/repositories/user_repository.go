package repositories

import (
	"context"

	"github.com/shashiranjanraj/storehub/app/models"
	"github.com/shashiranjanraj/storehub/pkg/orm"
	"gorm.io/gorm"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) FindByUsername(ctx context.Context, db *gorm.DB, username string) (models.User, error) {
	var user models.User
	err := orm.New(ctx, db).Model(&models.User{}).Where("username = ?", username).First(&user)
	return user, err
}

func (r *UserRepository) FindByID(ctx context.Context, db *gorm.DB, id string) (models.User, error) {
	var user models.User
	err := orm.New(ctx, db).Model(&models.User{}).Where("id = ?", id).First(&user)
	return user, err
}

func (r *UserRepository) UsernameTaken(ctx context.Context, db *gorm.DB, username string) (bool, error) {
	n, err := orm.New(ctx, db).Model(&models.User{}).Where("username = ?", username).Count()
	return n > 0, err
}

func (r *UserRepository) Create(ctx context.Context, db *gorm.DB, user *models.User) error {
	return orm.New(ctx, db).Create(user)
}

func (r *UserRepository) Delete(ctx context.Context, db *gorm.DB, id string) (int64, error) {
	return orm.New(ctx, db).Where("id = ?", id).Delete(&models.User{})
}
