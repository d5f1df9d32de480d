package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shashiranjanraj/storehub/app/models"
	"github.com/shashiranjanraj/storehub/app/repositories"
	"github.com/shashiranjanraj/storehub/pkg/database"
	"github.com/shashiranjanraj/storehub/pkg/logger"
	"github.com/shashiranjanraj/storehub/pkg/orm"
	"github.com/shashiranjanraj/storehub/pkg/validate"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductImageInput struct {
	URL string `json:"url" validate:"required,url"`
}

type ProductInput struct {
	Name        string              `json:"name"        validate:"required,min=2,max=255"`
	Description string              `json:"description" validate:"max=5000"`
	Price       decimal.Decimal     `json:"price"       validate:"gte=0,lte=9999999999.99"`
	Stock       int                 `json:"stock"       validate:"gte=0"`
	Images      []ProductImageInput `json:"images"      validate:"dive"`
}

// CatalogService reads and writes products and owns every stock movement.
type CatalogService struct {
	db       *gorm.DB
	products *repositories.ProductRepository
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db, products: repositories.NewProductRepository()}
}

// CreateProduct adds a product to the caller's store.
func (s *CatalogService) CreateProduct(ctx context.Context, caller Caller, in ProductInput) (models.Product, error) {
	if err := caller.requireStore(); err != nil {
		return models.Product{}, err
	}
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return models.Product{}, NewValidationError(errs)
	}

	p := models.Product{
		StoreID:     caller.StoreID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price.Round(2),
		Stock:       in.Stock,
	}
	for _, img := range in.Images {
		p.Images = append(p.Images, models.ProductImage{URL: img.URL})
	}

	if err := s.products.Create(ctx, s.db, &p); err != nil {
		return models.Product{}, fmt.Errorf("catalog: create product: %w", err)
	}
	logger.WithCtx(ctx).Info("catalog: product created", "product_id", p.ID, "store_id", p.StoreID)
	return p, nil
}

// GetProduct returns one product visible to the caller.
func (s *CatalogService) GetProduct(ctx context.Context, caller Caller, id string) (models.Product, error) {
	p, err := s.products.FindByID(ctx, s.db, id)
	if err != nil {
		return models.Product{}, notFoundOr(err, "product")
	}
	if !caller.CanAccess(p.StoreID) {
		return models.Product{}, ErrForbidden
	}
	return p, nil
}

// ListProducts pages the caller's products. ROOT may pass storeID to narrow
// the listing or leave it empty for every store.
func (s *CatalogService) ListProducts(ctx context.Context, caller Caller, storeID string, page, limit int) ([]models.Product, orm.Pagination, error) {
	return s.products.List(ctx, s.db, caller.scope(storeID), page, limit)
}

// DeleteProduct removes a product that no order line references.
func (s *CatalogService) DeleteProduct(ctx context.Context, caller Caller, id string) error {
	return database.Transaction(ctx, s.db, func(tx *gorm.DB) error {
		p, err := s.products.FindByID(ctx, tx, id)
		if err != nil {
			return notFoundOr(err, "product")
		}
		if !caller.CanAccess(p.StoreID) {
			return ErrForbidden
		}
		n, err := s.products.CountOrderItems(ctx, tx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("product is used in %d order items: %w", n, ErrInUse)
		}
		if _, err := s.products.Delete(ctx, tx, id); err != nil {
			return fmt.Errorf("catalog: delete product: %w", err)
		}
		return nil
	})
}

// productsInStore loads ids on tx and fails with NotFound("product") when any
// is missing or belongs to another store.
func (s *CatalogService) productsInStore(ctx context.Context, tx *gorm.DB, storeID string, ids []string) (map[string]models.Product, error) {
	found, err := s.products.FindMany(ctx, tx, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		p, ok := found[id]
		if !ok || p.StoreID != storeID {
			return nil, NotFound("product")
		}
	}
	return found, nil
}

// adjustStock moves stock by delta on tx. With guard set a decrement below
// zero fails with ErrInsufficientStock.
func (s *CatalogService) adjustStock(ctx context.Context, tx *gorm.DB, productID string, delta int, guard bool) error {
	err := s.products.AdjustStock(ctx, tx, productID, delta, guard)
	if errors.Is(err, repositories.ErrNoRows) {
		if guard && delta < 0 {
			return ErrInsufficientStock
		}
		return NotFound("product")
	}
	return err
}
