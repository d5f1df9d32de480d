package models

// Customer is the billing party of an order. StoreID never changes after insert.
type Customer struct {
	Base
	StoreID     string  `gorm:"size:26;not null;index" json:"store_id"`
	Store       *Store  `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	FullName    string  `gorm:"size:255;not null" json:"full_name"`
	TC          string  `gorm:"size:20" json:"tc"`
	Email       *string `gorm:"size:255" json:"email"`
	Phone       string  `gorm:"size:50" json:"phone"`
	Address     string  `gorm:"type:text" json:"address"`
	CompanyName string  `gorm:"size:255" json:"company_name"`
	TaxNo       string  `gorm:"size:50" json:"tax_no"`
	TaxOffice   string  `gorm:"size:255" json:"tax_office"`
}
