package models

import "github.com/shopspring/decimal"

// Order is the aggregate root: header plus its full item set. TotalAmount is
// always derived from Items and never written independently.
type Order struct {
	Base
	StoreID       string          `gorm:"size:26;not null;index:idx_orders_store_created,priority:1" json:"store_id"`
	Store         *Store          `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	CustomerID    string          `gorm:"size:26;not null;index" json:"customer_id"`
	Customer      *Customer       `gorm:"constraint:OnDelete:RESTRICT" json:"customer,omitempty"`
	Status        Status          `gorm:"size:20;not null;index" json:"status"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	PaidAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"paid_amount"`
	PaymentMethod string          `gorm:"size:100" json:"payment_method"`
	Notes         string          `gorm:"type:text" json:"notes"`
	Items         []OrderItem     `gorm:"constraint:OnDelete:RESTRICT" json:"items,omitempty"`
}

// OrderItem is one line of an order. Price is the snapshot taken when the
// line was written, not the product's current price.
type OrderItem struct {
	Base
	OrderID   string          `gorm:"size:26;not null;index" json:"order_id"`
	ProductID string          `gorm:"size:26;not null;index" json:"product_id"`
	Product   *Product        `gorm:"constraint:OnDelete:RESTRICT" json:"product,omitempty"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
}

// MaxAmount is the largest value a decimal(12,2) money column holds.
var MaxAmount = decimal.RequireFromString("9999999999.99")

// LineTotal is Price × Quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// SumItems returns Σ price × quantity over items.
func SumItems(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total
}
