package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Condition is a composable predicate applied to a query.
type Condition func(tx *gorm.DB) *gorm.DB

// Where builds a condition from a GORM where clause.
func Where(query string, args ...interface{}) Condition {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where(query, args...)
	}
}

// And composes conditions left to right.
func And(conds ...Condition) Condition {
	return func(tx *gorm.DB) *gorm.DB {
		for _, c := range conds {
			if c != nil {
				tx = c(tx)
			}
		}
		return tx
	}
}

// NotDeleted excludes soft-deleted rows.
func NotDeleted() Condition {
	return Where("is_deleted = ?", false)
}

// ForUpdate takes a row lock held until the surrounding transaction ends, so
// the read is a current read, not a snapshot. Only meaningful inside a
// transaction; drivers without row locks (sqlite) drop the clause.
func ForUpdate() Condition {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
}

// Query is the typed query spec for listing calls: predicate, ordering,
// eager-load hints and a 1-based page window. Applied in that order.
type Query struct {
	Filter   Condition
	OrderBy  string
	Includes []string
	Page     int
	PageSize int
}

// DefaultPageSize caps unpaginated listing calls.
const DefaultPageSize = 20

// window normalizes the page parameters: page is 1-based and
// skip = (page-1) * pageSize.
func (q Query) window() (offset, limit int) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	size := q.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	return (page - 1) * size, size
}

// PagedResult carries one page of items plus the filtered total.
type PagedResult[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}
