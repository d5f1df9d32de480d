package models

import "github.com/shopspring/decimal"

// Product is a catalogue entry of one store. Stock only moves inside order
// transactions.
type Product struct {
	Base
	StoreID     string          `gorm:"size:26;not null;index" json:"store_id"`
	Store       *Store          `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Stock       int             `gorm:"not null;default:0" json:"stock"`
	Images      []ProductImage  `gorm:"constraint:OnDelete:CASCADE" json:"images,omitempty"`
}

// ProductImage references an externally stored image.
type ProductImage struct {
	Base
	ProductID string `gorm:"size:26;not null;index" json:"product_id"`
	URL       string `gorm:"size:1024;not null" json:"url"`
}
