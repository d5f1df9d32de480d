package testkit

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storehub/app/models"
)

// Password is the plain-text password of every fixture user.
const Password = "secret1"

var seq atomic.Int64

// Fixtures inserts rows directly, bypassing the services.
type Fixtures struct {
	t  testing.TB
	db *gorm.DB
}

func NewFixtures(t testing.TB, db *gorm.DB) *Fixtures {
	return &Fixtures{t: t, db: db}
}

func (f *Fixtures) create(v interface{}) {
	f.t.Helper()
	require.NoError(f.t, f.db.Create(v).Error, "testkit: insert %T", v)
}

// User inserts a login account with Password.
func (f *Fixtures) User(role models.Role, username string) models.User {
	f.t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(f.t, err)
	u := models.User{Username: username, Password: string(hash), Role: role}
	f.create(&u)
	return u
}

// Root inserts a ROOT user.
func (f *Fixtures) Root() models.User {
	return f.User(models.RoleRoot, fmt.Sprintf("root%d", seq.Add(1)))
}

// Store inserts a STORE user and the store it owns.
func (f *Fixtures) Store(name string) (models.Store, models.User) {
	f.t.Helper()
	u := f.User(models.RoleStore, fmt.Sprintf("store%d", seq.Add(1)))
	s := models.Store{Name: name, UserID: u.ID}
	f.create(&s)
	return s, u
}

func (f *Fixtures) Customer(storeID, fullName string) models.Customer {
	f.t.Helper()
	c := models.Customer{StoreID: storeID, FullName: fullName}
	f.create(&c)
	return c
}

// Product inserts a product priced price (a decimal string) with stock units.
func (f *Fixtures) Product(storeID, name, price string, stock int) models.Product {
	f.t.Helper()
	p := models.Product{
		StoreID: storeID,
		Name:    name,
		Price:   decimal.RequireFromString(price),
		Stock:   stock,
		Images:  []models.ProductImage{{URL: "https://img.example.com/" + name + ".png"}},
	}
	f.create(&p)
	return p
}

// Stock reads the committed stock of productID.
func (f *Fixtures) Stock(productID string) int {
	f.t.Helper()
	var p models.Product
	require.NoError(f.t, f.db.Select("stock").Where("id = ?", productID).First(&p).Error)
	return p.Stock
}

// Count counts rows of model matching the optional condition.
func (f *Fixtures) Count(model interface{}, query string, args ...interface{}) int64 {
	f.t.Helper()
	var n int64
	q := f.db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(f.t, q.Count(&n).Error)
	return n
}
