package repository

import (
	"context"
	"errors"
	"fmt"

	"real-estate-backend/internal/database"

	"gorm.io/gorm"
)

// SoftDeletable is implemented by models that are flagged instead of removed.
type SoftDeletable interface {
	MarkDeleted()
}

// Repository gives uniform data access over one aggregate type. Mutations
// execute against whatever handle the repository is bound to: the shared
// connection for single-aggregate operations, or an open transaction after
// WithTx for multi-aggregate commits.
type Repository[T any] struct {
	db *gorm.DB
}

// New creates a repository bound to the catalogue database.
func New[T any](gdb *database.GormDB) *Repository[T] {
	return &Repository[T]{db: gdb.DB()}
}

// WithTx returns a repository bound to an open unit of work. Everything it
// stages becomes durable only when the handle commits.
func (r *Repository[T]) WithTx(h *database.TxHandle) *Repository[T] {
	return &Repository[T]{db: h.Tx()}
}

// GetByID returns the aggregate or nil on miss; a miss is not an error.
func (r *Repository[T]) GetByID(ctx context.Context, id string, includes ...string) (*T, error) {
	tx := r.db.WithContext(ctx)
	for _, inc := range includes {
		tx = tx.Preload(inc)
	}

	var entity T
	err := tx.Where("id = ?", id).First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetching by id: %w", err)
	}
	return &entity, nil
}

// First returns the first aggregate matching the condition, or nil on miss.
func (r *Repository[T]) First(ctx context.Context, filter Condition, includes ...string) (*T, error) {
	tx := r.db.WithContext(ctx)
	if filter != nil {
		tx = filter(tx)
	}
	for _, inc := range includes {
		tx = tx.Preload(inc)
	}

	var entity T
	err := tx.First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetching first match: %w", err)
	}
	return &entity, nil
}

// Add inserts the aggregate.
func (r *Repository[T]) Add(ctx context.Context, entity *T) error {
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("inserting: %w", err)
	}
	return nil
}

// Update persists the aggregate's current field values and reports how many
// rows were touched. Zero rows after an update of an existing id means the
// row is gone; callers treat that as a miss.
func (r *Repository[T]) Update(ctx context.Context, entity *T) (int64, error) {
	res := r.db.WithContext(ctx).Save(entity)
	if res.Error != nil {
		return 0, fmt.Errorf("updating: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// Delete soft-deletes when the model supports it, otherwise removes the row.
func (r *Repository[T]) Delete(ctx context.Context, entity *T) error {
	if sd, ok := any(entity).(SoftDeletable); ok {
		sd.MarkDeleted()
		if _, err := r.Update(ctx, entity); err != nil {
			return err
		}
		return nil
	}
	if err := r.db.WithContext(ctx).Delete(entity).Error; err != nil {
		return fmt.Errorf("deleting: %w", err)
	}
	return nil
}

// HardDelete bypasses the soft-delete path. Used by cleanup only.
func (r *Repository[T]) HardDelete(ctx context.Context, entity *T) error {
	if err := r.db.WithContext(ctx).Delete(entity).Error; err != nil {
		return fmt.Errorf("hard-deleting: %w", err)
	}
	return nil
}

// Count counts rows after the filter, ignoring pagination.
func (r *Repository[T]) Count(ctx context.Context, filter Condition) (int64, error) {
	var entity T
	tx := r.db.WithContext(ctx).Model(&entity)
	if filter != nil {
		tx = filter(tx)
	}

	var n int64
	if err := tx.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("counting: %w", err)
	}
	return n, nil
}

// Exists reports whether any row matches the filter.
func (r *Repository[T]) Exists(ctx context.Context, filter Condition) (bool, error) {
	n, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// List applies filter, order, includes and the page window, in that order.
// Without an explicit order the store decides; callers needing a stable
// sequence must supply one.
func (r *Repository[T]) List(ctx context.Context, q Query) ([]T, error) {
	tx := r.db.WithContext(ctx)
	if q.Filter != nil {
		tx = q.Filter(tx)
	}
	if q.OrderBy != "" {
		tx = tx.Order(q.OrderBy)
	}
	for _, inc := range q.Includes {
		tx = tx.Preload(inc)
	}

	offset, limit := q.window()
	tx = tx.Offset(offset).Limit(limit)

	var items []T
	if err := tx.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("listing: %w", err)
	}
	return items, nil
}

// ListPaged runs List plus a filtered Count and packages both as one page.
func (r *Repository[T]) ListPaged(ctx context.Context, q Query) (*PagedResult[T], error) {
	items, err := r.List(ctx, q)
	if err != nil {
		return nil, err
	}
	total, err := r.Count(ctx, q.Filter)
	if err != nil {
		return nil, err
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	size := q.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	return &PagedResult[T]{Items: items, Total: total, Page: page, PageSize: size}, nil
}
