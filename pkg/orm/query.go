// Package orm is a thin chainable wrapper over *gorm.DB used by the
// relational repositories, plus the pagination math shared with the
// document-store repositories.
package orm

import (
	"context"

	"gorm.io/gorm"
)

type Query struct {
	db *gorm.DB
}

// New starts a query bound to ctx.
func New(ctx context.Context, db *gorm.DB) *Query {
	return &Query{db: db.WithContext(ctx)}
}

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query interface{}, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

func (q *Query) Order(value interface{}) *Query {
	return &Query{db: q.db.Order(value)}
}

func (q *Query) Get(dest interface{}) error {
	return q.db.Find(dest).Error
}

func (q *Query) First(dest interface{}) error {
	return q.db.First(dest).Error
}

func (q *Query) Count() (int64, error) {
	var n int64
	err := q.db.Count(&n).Error
	return n, err
}

func (q *Query) Create(v interface{}) error {
	return q.db.Create(v).Error
}

func (q *Query) Save(v interface{}) error {
	return q.db.Save(v).Error
}

// Delete removes v and reports how many rows were affected.
func (q *Query) Delete(v interface{}) (int64, error) {
	res := q.db.Delete(v)
	return res.RowsAffected, res.Error
}

// Paginate counts the matching rows, then loads one page of them into dest.
// Model must have been called so the count has a table.
func (q *Query) Paginate(page, limit int, dest interface{}) (Pagination, error) {
	base := q.db.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return Pagination{}, err
	}
	p := NewPagination(total, page, limit)
	if err := base.Offset(p.Offset()).Limit(p.Limit).Find(dest).Error; err != nil {
		return Pagination{}, err
	}
	return p, nil
}

// DB exposes the underlying handle for queries the builder does not cover.
func (q *Query) DB() *gorm.DB { return q.db }
