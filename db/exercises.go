package db

import (
	"context"

	"gorm.io/gorm"
)

func (s *Store) CreateExercise(ctx context.Context, e *Exercise) error {
	return s.transaction(ctx, func(tx *gorm.DB) error {
		if err := requireParent(tx, &Workout{}, e.WorkoutID); err != nil {
			return err
		}
		if err := tx.Create(e).Error; err != nil {
			return err
		}
		return find(tx, e, e.ID)
	})
}

func (s *Store) GetExercise(ctx context.Context, id uint) (*Exercise, error) {
	return getByID[Exercise](ctx, s, id)
}

func (s *Store) ListExercises(ctx context.Context, workoutID *uint, page Page) ([]Exercise, error) {
	return listFiltered[Exercise](ctx, s, "workout_id", workoutID, page)
}

func (s *Store) DeleteExercise(ctx context.Context, id uint) error {
	return deleteByID[Exercise](ctx, s, id)
}
