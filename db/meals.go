package db

import (
	"context"

	"gorm.io/gorm"
)

func (s *Store) CreateMeal(ctx context.Context, m *Meal) error {
	return s.transaction(ctx, func(tx *gorm.DB) error {
		if err := requireParent(tx, &User{}, m.UserID); err != nil {
			return err
		}
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		return find(tx, m, m.ID)
	})
}

func (s *Store) GetMeal(ctx context.Context, id uint) (*Meal, error) {
	return getByID[Meal](ctx, s, id)
}

// ListMeals pages through meals, restricted to one user when userID is set.
func (s *Store) ListMeals(ctx context.Context, userID *uint, page Page) ([]Meal, error) {
	return listFiltered[Meal](ctx, s, "user_id", userID, page)
}

func (s *Store) DeleteMeal(ctx context.Context, id uint) error {
	return deleteByID[Meal](ctx, s, id)
}
