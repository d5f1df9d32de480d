package services

import (
	"context"
	"time"

	"github.com/shashiranjanraj/storehub/app/models"
	"github.com/shashiranjanraj/storehub/app/repositories"
	"github.com/shashiranjanraj/storehub/pkg/cache"
	"github.com/shashiranjanraj/storehub/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const reportKeyPrefix = "report:dashboard:"

// StatusShare is the count and percentage of orders in one status.
type StatusShare struct {
	Status  models.Status `json:"status"`
	Count   int64         `json:"count"`
	Percent float64       `json:"percent"`
}

// Dashboard aggregates committed orders of one store, or of every store.
type Dashboard struct {
	StoreID        string          `json:"store_id,omitempty"`
	OrderCount     int64           `json:"order_count"`
	TotalSales     decimal.Decimal `json:"total_sales"`
	TotalCollected decimal.Decimal `json:"total_collected"`
	Outstanding    decimal.Decimal `json:"outstanding"`
	PaymentRatio   float64         `json:"payment_ratio"`
	Statuses       []StatusShare   `json:"statuses"`
	ProductCount   int64           `json:"product_count"`
	StoreCount     int64           `json:"store_count,omitempty"`
}

type ReportService struct {
	db       *gorm.DB
	orders   *repositories.OrderRepository
	products *repositories.ProductRepository
	stores   *repositories.StoreRepository
	ttl      time.Duration
}

// NewReportService caches dashboards for ttl; zero disables caching.
func NewReportService(db *gorm.DB, ttl time.Duration) *ReportService {
	return &ReportService{
		db:       db,
		orders:   repositories.NewOrderRepository(),
		products: repositories.NewProductRepository(),
		stores:   repositories.NewStoreRepository(),
		ttl:      ttl,
	}
}

// Dashboard returns totals and the status distribution. STORE callers always
// get their own store; ROOT may pass a store id or "" for every store.
func (s *ReportService) Dashboard(ctx context.Context, caller Caller, storeID string) (Dashboard, error) {
	if caller.Role != models.RoleRoot && caller.Role != models.RoleStore {
		return Dashboard{}, ErrUnauthorized
	}
	scope := caller.scope(storeID)
	if caller.IsRoot() && scope != "" {
		if _, err := s.stores.FindByID(ctx, s.db, scope); err != nil {
			return Dashboard{}, notFoundOr(err, "store")
		}
	}

	key := reportKey(scope)
	var d Dashboard
	if s.ttl > 0 && cache.Get(ctx, key, &d) {
		return d, nil
	}

	d, err := s.compute(ctx, scope)
	if err != nil {
		return Dashboard{}, err
	}
	if s.ttl > 0 {
		if err := cache.Set(ctx, key, d, s.ttl); err != nil {
			logger.WithCtx(ctx).Warn("reports: cache set failed", "key", key, "error", err)
		}
	}
	return d, nil
}

func (s *ReportService) compute(ctx context.Context, storeID string) (Dashboard, error) {
	figures, err := s.orders.Figures(ctx, s.db, storeID)
	if err != nil {
		return Dashboard{}, err
	}
	products, err := s.products.Count(ctx, s.db, storeID)
	if err != nil {
		return Dashboard{}, err
	}

	d := summarize(figures)
	d.StoreID = storeID
	d.ProductCount = products

	if storeID == "" {
		if d.StoreCount, err = s.stores.Count(ctx, s.db); err != nil {
			return Dashboard{}, err
		}
	}
	return d, nil
}

// summarize folds order figures into totals and a distribution over every
// known status, in workflow order.
func summarize(figures []repositories.Figures) Dashboard {
	d := Dashboard{
		OrderCount:     int64(len(figures)),
		TotalSales:     decimal.Zero,
		TotalCollected: decimal.Zero,
	}
	counts := make(map[models.Status]int64, len(models.Statuses))
	for _, f := range figures {
		d.TotalSales = d.TotalSales.Add(f.TotalAmount)
		d.TotalCollected = d.TotalCollected.Add(f.PaidAmount)
		counts[f.Status]++
	}
	d.Outstanding = d.TotalSales.Sub(d.TotalCollected)

	if d.TotalSales.IsPositive() {
		d.PaymentRatio = d.TotalCollected.Div(d.TotalSales).Mul(decimal.NewFromInt(100)).Round(1).InexactFloat64()
	}

	d.Statuses = make([]StatusShare, 0, len(models.Statuses))
	for _, st := range models.Statuses {
		share := StatusShare{Status: st, Count: counts[st]}
		if d.OrderCount > 0 {
			share.Percent = decimal.NewFromInt(share.Count).
				Div(decimal.NewFromInt(d.OrderCount)).
				Mul(decimal.NewFromInt(100)).
				Round(1).
				InexactFloat64()
		}
		d.Statuses = append(d.Statuses, share)
	}
	return d
}

// Invalidate drops the cached dashboards that include storeID.
func (s *ReportService) Invalidate(ctx context.Context, storeID string) {
	keys := []string{reportKey("")}
	if storeID != "" {
		keys = append(keys, reportKey(storeID))
	}
	if err := cache.Del(ctx, keys...); err != nil {
		logger.WithCtx(ctx).Warn("reports: cache invalidation failed", "store_id", storeID, "error", err)
	}
}

func reportKey(storeID string) string {
	if storeID == "" {
		return reportKeyPrefix + "all"
	}
	return reportKeyPrefix + storeID
}
