package orm

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type widget struct {
	ID    uint `gorm:"primaryKey"`
	Shelf string
	Parts []part
}

type part struct {
	ID       uint `gorm:"primaryKey"`
	WidgetID uint
	Name     string
}

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&widget{}, &part{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seed(t *testing.T, db *gorm.DB, n int, shelf string) {
	t.Helper()
	for i := 0; i < n; i++ {
		w := widget{Shelf: shelf, Parts: []part{{Name: "bolt"}}}
		require.NoError(t, db.Create(&w).Error)
	}
}

func TestPaginate(t *testing.T) {
	db := openDB(t)
	seed(t, db, 5, "a")
	seed(t, db, 2, "b")
	ctx := context.Background()

	var page []widget
	p, err := New(ctx, db).Model(&widget{}).Where("shelf = ?", "a").Order("id desc").Paginate(&page, 2, 2, "Parts")
	require.NoError(t, err)

	assert.Equal(t, Pagination{Page: 2, Limit: 2, Total: 5, TotalPages: 3}, p)
	require.Len(t, page, 2)
	assert.Greater(t, page[0].ID, page[1].ID)
	assert.Len(t, page[0].Parts, 1)
}

func TestPaginateClampsLimit(t *testing.T) {
	db := openDB(t)
	seed(t, db, 1, "a")

	var out []widget
	p, err := New(context.Background(), db).Model(&widget{}).Paginate(&out, 0, 1000)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, maxLimit, p.Limit)

	p, err = New(context.Background(), db).Model(&widget{}).Paginate(&out, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, defaultLimit, p.Limit)
}

func TestWhereIfAndDelete(t *testing.T) {
	db := openDB(t)
	seed(t, db, 3, "a")
	seed(t, db, 1, "b")
	ctx := context.Background()

	n, err := New(ctx, db).Model(&widget{}).WhereIf(false, "shelf = ?", "b").Count()
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	deleted, err := New(ctx, db).Where("shelf = ?", "a").Delete(&widget{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
}
