package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

const DefaultLimit = 100

// Page selects a window of a list ordered by id. A zero Limit selects no rows;
// use DefaultPage when the caller did not ask for anything specific.
type Page struct {
	Offset int
	Limit  int
}

func DefaultPage() Page {
	return Page{Offset: 0, Limit: DefaultLimit}
}

// Store is the single entry point to persisted fitness data. It is safe for
// concurrent use; every method runs in its own transaction bound to ctx.
type Store struct {
	db *gorm.DB
}

func NewStore(conn *gorm.DB) *Store {
	return &Store{db: conn}
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return translate(s.db.WithContext(ctx).Transaction(fn))
}

// find loads the row with the given id into dest.
func find(tx *gorm.DB, dest any, id uint) error {
	res := tx.Limit(1).Find(dest, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// requireParent fails with ErrParentNotFound unless a row of model's table has id.
func requireParent(tx *gorm.DB, model any, id uint) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrParentNotFound
	}
	return nil
}

func getByID[T any](ctx context.Context, s *Store, id uint) (*T, error) {
	var row T
	if err := find(s.db.WithContext(ctx), &row, id); err != nil {
		return nil, translate(err)
	}
	return &row, nil
}

// listFiltered returns a page of rows, optionally restricted to those whose
// column equals *filter.
func listFiltered[T any](ctx context.Context, s *Store, column string, filter *uint, page Page) ([]T, error) {
	rows := []T{}
	if page.Limit <= 0 {
		return rows, nil
	}

	q := s.db.WithContext(ctx).Order("id")
	if filter != nil {
		q = q.Where(fmt.Sprintf("%s = ?", column), *filter)
	}
	if err := q.Offset(page.Offset).Limit(page.Limit).Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

// deleteByID removes one row. Dependent rows go with it through the
// ON DELETE CASCADE constraints, in the same statement.
func deleteByID[T any](ctx context.Context, s *Store, id uint) error {
	var model T
	res := s.db.WithContext(ctx).Delete(&model, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
