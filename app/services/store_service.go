package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shashiranjanraj/storehub/app/models"
	"github.com/shashiranjanraj/storehub/app/repositories"
	"github.com/shashiranjanraj/storehub/pkg/auth"
	"github.com/shashiranjanraj/storehub/pkg/database"
	"github.com/shashiranjanraj/storehub/pkg/logger"
	"github.com/shashiranjanraj/storehub/pkg/orm"
	"github.com/shashiranjanraj/storehub/pkg/validate"
	"gorm.io/gorm"
)

type StoreInput struct {
	Name     string `json:"name"     validate:"required,min=3,max=255"`
	Username string `json:"username" validate:"required,min=3,max=100,alpha_dash"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type UserInput struct {
	Username string `json:"username" validate:"required,min=3,max=100,alpha_dash"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type SettingsInput struct {
	ContractText string `json:"contract_text" validate:"max=20000"`
	NoteText     string `json:"note_text"     validate:"max=20000"`
	BankInfo     string `json:"bank_info"     validate:"max=5000"`
}

// StoreService manages tenants and login accounts.
type StoreService struct {
	db        *gorm.DB
	users     *repositories.UserRepository
	stores    *repositories.StoreRepository
	orders    *repositories.OrderRepository
	products  *repositories.ProductRepository
	customers *repositories.CustomerRepository
}

func NewStoreService(db *gorm.DB) *StoreService {
	return &StoreService{
		db:        db,
		users:     repositories.NewUserRepository(),
		stores:    repositories.NewStoreRepository(),
		orders:    repositories.NewOrderRepository(),
		products:  repositories.NewProductRepository(),
		customers: repositories.NewCustomerRepository(),
	}
}

// CreateStore creates a STORE user and the store it owns in one transaction.
func (s *StoreService) CreateStore(ctx context.Context, caller Caller, in StoreInput) (models.Store, error) {
	if err := caller.requireRoot(); err != nil {
		return models.Store{}, err
	}
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return models.Store{}, NewValidationError(errs)
	}

	var store models.Store
	err := database.Transaction(ctx, s.db, func(tx *gorm.DB) error {
		user, err := s.newUser(ctx, tx, in.Username, in.Password, models.RoleStore)
		if err != nil {
			return err
		}
		store = models.Store{Name: strings.TrimSpace(in.Name), UserID: user.ID}
		if err := s.stores.Create(ctx, tx, &store); err != nil {
			return fmt.Errorf("stores: create: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Store{}, err
	}
	logger.WithCtx(ctx).Info("stores: created", "store_id", store.ID, "user_id", store.UserID)
	return store, nil
}

func (s *StoreService) ListStores(ctx context.Context, caller Caller, page, limit int) ([]models.Store, orm.Pagination, error) {
	if err := caller.requireRoot(); err != nil {
		return nil, orm.Pagination{}, err
	}
	return s.stores.List(ctx, s.db, page, limit)
}

// DeleteStore removes the store and everything it owns, then its owner
// account, in one transaction: order items, orders, product images, products,
// customers, the store, the user.
func (s *StoreService) DeleteStore(ctx context.Context, caller Caller, storeID string) error {
	if err := caller.requireRoot(); err != nil {
		return err
	}

	var removed map[string]int64
	err := database.Transaction(ctx, s.db, func(tx *gorm.DB) error {
		store, err := s.stores.FindByID(ctx, tx, storeID)
		if err != nil {
			return notFoundOr(err, "store")
		}

		removed = make(map[string]int64)
		steps := []struct {
			name string
			run  func(context.Context, *gorm.DB, string) (int64, error)
			arg  string
		}{
			{"order_items", s.orders.DeleteItemsByStore, store.ID},
			{"orders", s.orders.DeleteByStore, store.ID},
			{"product_images", s.products.DeleteImagesByStore, store.ID},
			{"products", s.products.DeleteByStore, store.ID},
			{"customers", s.customers.DeleteByStore, store.ID},
			{"stores", s.stores.Delete, store.ID},
			{"users", s.users.Delete, store.UserID},
		}
		for _, step := range steps {
			n, err := step.run(ctx, tx, step.arg)
			if err != nil {
				return fmt.Errorf("stores: cascade %s: %w", step.name, err)
			}
			removed[step.name] = n
		}
		return nil
	})
	if err != nil {
		return err
	}
	logger.WithCtx(ctx).Info("stores: deleted", "store_id", storeID,
		"orders", removed["orders"], "products", removed["products"], "customers", removed["customers"])
	return nil
}

// UpdateSettings writes the caller's store contract, note and bank texts.
func (s *StoreService) UpdateSettings(ctx context.Context, caller Caller, in SettingsInput) (models.Store, error) {
	if err := caller.requireStore(); err != nil {
		return models.Store{}, err
	}
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return models.Store{}, NewValidationError(errs)
	}
	// MySQL reports changed rows, so an unchanged save affects zero rows;
	// FindByID decides whether the store exists.
	if _, err := s.stores.UpdateSettings(ctx, s.db, caller.StoreID, in.ContractText, in.NoteText, in.BankInfo); err != nil {
		return models.Store{}, fmt.Errorf("stores: update settings: %w", err)
	}
	store, err := s.stores.FindByID(ctx, s.db, caller.StoreID)
	return store, notFoundOr(err, "store")
}

// CreateRootUser adds another ROOT account.
func (s *StoreService) CreateRootUser(ctx context.Context, caller Caller, in UserInput) (models.User, error) {
	if err := caller.requireRoot(); err != nil {
		return models.User{}, err
	}
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return models.User{}, NewValidationError(errs)
	}
	var user models.User
	err := database.Transaction(ctx, s.db, func(tx *gorm.DB) error {
		var err error
		user, err = s.newUser(ctx, tx, in.Username, in.Password, models.RoleRoot)
		return err
	})
	return user, err
}

// EnsureRootUser creates the ROOT account username unless it already exists.
// It is the bootstrap path used by the seeder and the CLI.
func (s *StoreService) EnsureRootUser(ctx context.Context, username, password string) (bool, error) {
	in := UserInput{Username: username, Password: password}
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return false, NewValidationError(errs)
	}
	existing, err := s.users.FindByUsername(ctx, s.db, in.Username)
	if err == nil {
		if existing.Role != models.RoleRoot {
			return false, fieldError("username", "The username belongs to a store account.", nil)
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	err = database.Transaction(ctx, s.db, func(tx *gorm.DB) error {
		_, err := s.newUser(ctx, tx, in.Username, in.Password, models.RoleRoot)
		return err
	})
	return err == nil, err
}

func (s *StoreService) newUser(ctx context.Context, tx *gorm.DB, username, password string, role models.Role) (models.User, error) {
	username = strings.TrimSpace(username)
	taken, err := s.users.UsernameTaken(ctx, tx, username)
	if err != nil {
		return models.User{}, err
	}
	if taken {
		return models.User{}, fieldError("username", "The username has already been taken.", nil)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("users: hash password: %w", err)
	}
	user := models.User{Username: username, Password: hash, Role: role}
	if err := s.users.Create(ctx, tx, &user); err != nil {
		return models.User{}, fmt.Errorf("users: create: %w", err)
	}
	return user, nil
}
