// Package orm is a thin fluent wrapper over *gorm.DB used by repositories.
package orm

import (
	"context"
	"math"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Pagination describes one page of a listing.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Query chains conditions over a *gorm.DB and exposes terminal helpers that
// return plain errors and counts.
type Query struct {
	db *gorm.DB
}

// New wraps db (which may be a transaction handle).
func New(ctx context.Context, db *gorm.DB) *Query {
	return &Query{db: db.WithContext(ctx)}
}

func (q *Query) next(db *gorm.DB) *Query {
	return &Query{db: db}
}

func (q *Query) Model(v interface{}) *Query {
	return q.next(q.db.Model(v))
}

func (q *Query) Where(query interface{}, args ...interface{}) *Query {
	return q.next(q.db.Where(query, args...))
}

// WhereIf applies the condition only when cond is true.
func (q *Query) WhereIf(cond bool, query interface{}, args ...interface{}) *Query {
	if !cond {
		return q
	}
	return q.Where(query, args...)
}

func (q *Query) Select(query interface{}, args ...interface{}) *Query {
	return q.next(q.db.Select(query, args...))
}

// Omit skips columns or associations (clause.Associations) on writes.
func (q *Query) Omit(columns ...string) *Query {
	return q.next(q.db.Omit(columns...))
}

func (q *Query) Preload(assoc string, args ...interface{}) *Query {
	return q.next(q.db.Preload(assoc, args...))
}

func (q *Query) Order(value interface{}) *Query {
	return q.next(q.db.Order(value))
}

// ForUpdate locks the selected rows until the surrounding transaction ends.
// Dialects without row locks (sqlite) ignore it.
func (q *Query) ForUpdate() *Query {
	return q.next(q.db.Clauses(clause.Locking{Strength: "UPDATE"}))
}

func (q *Query) Get(dest interface{}) error {
	return q.db.Find(dest).Error
}

func (q *Query) First(dest interface{}) error {
	return q.db.First(dest).Error
}

// Scan runs a raw-result query (Select + aggregates) into dest.
func (q *Query) Scan(dest interface{}) error {
	return q.db.Scan(dest).Error
}

// DB exposes the underlying handle, e.g. to build a subquery.
func (q *Query) DB() *gorm.DB { return q.db }

func (q *Query) Count() (int64, error) {
	var n int64
	err := q.db.Count(&n).Error
	return n, err
}

func (q *Query) Create(v interface{}) error {
	return q.db.Create(v).Error
}

// Delete removes rows matching the current conditions and returns how many went.
func (q *Query) Delete(v interface{}) (int64, error) {
	res := q.db.Delete(v)
	return res.RowsAffected, res.Error
}

// Updates applies column values to rows matching the current conditions.
func (q *Query) Updates(values interface{}) (int64, error) {
	res := q.db.Updates(values)
	return res.RowsAffected, res.Error
}

// Paginate loads one page into dest. page is 1-based; limit is clamped to
// [1, 100] and defaults to 20. preloads are applied to the page query only,
// never to the count.
func (q *Query) Paginate(dest interface{}, page, limit int, preloads ...string) (Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	var total int64
	if err := q.db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return Pagination{}, err
	}

	find := q.db.Session(&gorm.Session{})
	for _, p := range preloads {
		find = find.Preload(p)
	}
	if err := find.Offset((page - 1) * limit).Limit(limit).Find(dest).Error; err != nil {
		return Pagination{}, err
	}

	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}
