package models

// Role is the platform role of a login account.
type Role string

const (
	RoleRoot  Role = "ROOT"
	RoleStore Role = "STORE"
)

func (r Role) Valid() bool {
	return r == RoleRoot || r == RoleStore
}

// User is a login account. A STORE user owns exactly one Store.
type User struct {
	Base
	Username string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt hash
	Role     Role   `gorm:"size:10;not null;index" json:"role"`
}
