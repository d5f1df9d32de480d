package models

// Store is the tenant boundary. Customers, products and orders all carry its ID.
type Store struct {
	Base
	Name         string `gorm:"size:255;not null" json:"name"`
	UserID       string `gorm:"size:26;uniqueIndex;not null" json:"user_id"`
	User         *User  `gorm:"constraint:OnDelete:RESTRICT" json:"user,omitempty"`
	ContractText string `gorm:"type:text" json:"contract_text"`
	NoteText     string `gorm:"type:text" json:"note_text"`
	BankInfo     string `gorm:"type:text" json:"bank_info"`
}
