package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shashiranjanraj/storehub/app/models"
	"github.com/shashiranjanraj/storehub/app/repositories"
	"github.com/shashiranjanraj/storehub/pkg/database"
	"github.com/shashiranjanraj/storehub/pkg/logger"
	"github.com/shashiranjanraj/storehub/pkg/orm"
	"github.com/shashiranjanraj/storehub/pkg/validate"
	"gorm.io/gorm"
)

type CustomerInput struct {
	FullName    string  `json:"full_name"    validate:"required,min=2,max=255"`
	TC          string  `json:"tc"           validate:"max=20"`
	Email       *string `json:"email"        validate:"nullable,email"`
	Phone       string  `json:"phone"        validate:"max=50"`
	Address     string  `json:"address"`
	CompanyName string  `json:"company_name" validate:"max=255"`
	TaxNo       string  `json:"tax_no"       validate:"max=50"`
	TaxOffice   string  `json:"tax_office"   validate:"max=255"`
}

type CustomerService struct {
	db        *gorm.DB
	customers *repositories.CustomerRepository
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{db: db, customers: repositories.NewCustomerRepository()}
}

// CreateCustomer adds a customer to the caller's store.
func (s *CustomerService) CreateCustomer(ctx context.Context, caller Caller, in CustomerInput) (models.Customer, error) {
	if err := caller.requireStore(); err != nil {
		return models.Customer{}, err
	}
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return models.Customer{}, NewValidationError(errs)
	}

	c := models.Customer{
		StoreID:     caller.StoreID,
		FullName:    strings.TrimSpace(in.FullName),
		TC:          in.TC,
		Phone:       in.Phone,
		Address:     in.Address,
		CompanyName: in.CompanyName,
		TaxNo:       in.TaxNo,
		TaxOffice:   in.TaxOffice,
	}
	if in.Email != nil && strings.TrimSpace(*in.Email) != "" {
		email := strings.TrimSpace(*in.Email)
		c.Email = &email
	}

	if err := s.customers.Create(ctx, s.db, &c); err != nil {
		return models.Customer{}, fmt.Errorf("customers: create: %w", err)
	}
	logger.WithCtx(ctx).Info("customers: created", "customer_id", c.ID, "store_id", c.StoreID)
	return c, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, caller Caller, id string) (models.Customer, error) {
	c, err := s.customers.FindByID(ctx, s.db, id)
	if err != nil {
		return models.Customer{}, notFoundOr(err, "customer")
	}
	if !caller.CanAccess(c.StoreID) {
		return models.Customer{}, ErrForbidden
	}
	return c, nil
}

func (s *CustomerService) ListCustomers(ctx context.Context, caller Caller, storeID string, page, limit int) ([]models.Customer, orm.Pagination, error) {
	return s.customers.List(ctx, s.db, caller.scope(storeID), page, limit)
}

// DeleteCustomer removes a customer that no order bills. The customer is left
// untouched when orders exist.
func (s *CustomerService) DeleteCustomer(ctx context.Context, caller Caller, id string) error {
	return database.Transaction(ctx, s.db, func(tx *gorm.DB) error {
		c, err := s.customers.FindByID(ctx, tx, id)
		if err != nil {
			return notFoundOr(err, "customer")
		}
		if !caller.CanAccess(c.StoreID) {
			return ErrForbidden
		}
		n, err := s.customers.CountOrders(ctx, tx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("customer has %d orders: %w", n, ErrInUse)
		}
		if _, err := s.customers.Delete(ctx, tx, id); err != nil {
			return fmt.Errorf("customers: delete: %w", err)
		}
		return nil
	})
}

// customerInStore loads id on tx and fails with NotFound("customer") when it
// is missing or belongs to another store.
func (s *CustomerService) customerInStore(ctx context.Context, tx *gorm.DB, storeID, id string) (models.Customer, error) {
	c, err := s.customers.FindByID(ctx, tx, id)
	if err != nil {
		return models.Customer{}, notFoundOr(err, "customer")
	}
	if c.StoreID != storeID {
		return models.Customer{}, NotFound("customer")
	}
	return c, nil
}
