package services

import "github.com/shashiranjanraj/storehub/app/models"

// Caller is the resolved authorization context of one request. It is passed
// explicitly into every operation.
type Caller struct {
	UserID  string
	Role    models.Role
	StoreID string // set only for STORE callers
}

func (c Caller) IsRoot() bool { return c.Role == models.RoleRoot }

// CanAccess reports whether the caller may touch rows of storeID.
func (c Caller) CanAccess(storeID string) bool {
	if c.IsRoot() {
		return true
	}
	return c.Role == models.RoleStore && c.StoreID != "" && c.StoreID == storeID
}

// scope returns the store a listing must be restricted to. ROOT callers get
// requested (possibly empty: all stores); STORE callers always get their own.
func (c Caller) scope(requested string) string {
	if c.IsRoot() {
		return requested
	}
	return c.StoreID
}

func (c Caller) requireStore() error {
	if c.Role != models.RoleStore || c.StoreID == "" {
		return ErrForbidden
	}
	return nil
}

func (c Caller) requireRoot() error {
	if !c.IsRoot() {
		return ErrForbidden
	}
	return nil
}
