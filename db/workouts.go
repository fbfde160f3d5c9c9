package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrInvalidPatch = errors.New("invalid workout update")

// WorkoutPatch lists every updatable workout column. Fields left unset keep
// their stored value; distance_km and avg_pace may be cleared with null.
type WorkoutPatch struct {
	Type        Optional[string]          `json:"type"`
	DurationMin Optional[int]             `json:"duration_min"`
	DistanceKm  Optional[decimal.Decimal] `json:"distance_km"`
	AvgPace     Optional[decimal.Decimal] `json:"avg_pace"`
	Date        Optional[Date]            `json:"date"`
	IsStarred   Optional[bool]            `json:"is_starred"`
}

func (p WorkoutPatch) Validate() error {
	required := []struct {
		name string
		null bool
	}{
		{"type", p.Type.Null},
		{"duration_min", p.DurationMin.Null},
		{"date", p.Date.Null},
		{"is_starred", p.IsStarred.Null},
	}
	for _, f := range required {
		if f.null {
			return fmt.Errorf("%w: %s cannot be null", ErrInvalidPatch, f.name)
		}
	}
	return nil
}

// Columns returns the column assignments the patch asks for.
func (p WorkoutPatch) Columns() map[string]any {
	cols := make(map[string]any)
	if p.Type.Set {
		cols["type"] = p.Type.Value
	}
	if p.DurationMin.Set {
		cols["duration_min"] = p.DurationMin.Value
	}
	if p.DistanceKm.Set {
		cols["distance_km"] = nullableDecimal(p.DistanceKm)
	}
	if p.AvgPace.Set {
		cols["avg_pace"] = nullableDecimal(p.AvgPace)
	}
	if p.Date.Set {
		cols["date"] = p.Date.Value
	}
	if p.IsStarred.Set {
		cols["is_starred"] = p.IsStarred.Value
	}
	return cols
}

func nullableDecimal(o Optional[decimal.Decimal]) decimal.NullDecimal {
	if o.Null {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(o.Value)
}

// CreateWorkout inserts w after checking that its user exists.
func (s *Store) CreateWorkout(ctx context.Context, w *Workout) error {
	return s.transaction(ctx, func(tx *gorm.DB) error {
		if err := requireParent(tx, &User{}, w.UserID); err != nil {
			return err
		}
		if err := tx.Create(w).Error; err != nil {
			return err
		}
		return find(tx, w, w.ID)
	})
}

func (s *Store) GetWorkout(ctx context.Context, id uint) (*Workout, error) {
	return getByID[Workout](ctx, s, id)
}

// ListWorkouts pages through workouts, restricted to one user when userID is set.
func (s *Store) ListWorkouts(ctx context.Context, userID *uint, page Page) ([]Workout, error) {
	return listFiltered[Workout](ctx, s, "user_id", userID, page)
}

// UpdateWorkout applies the supplied fields of p and returns the stored row.
func (s *Store) UpdateWorkout(ctx context.Context, id uint, p WorkoutPatch) (*Workout, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	var w Workout
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := find(tx, &w, id); err != nil {
			return err
		}
		cols := p.Columns()
		if len(cols) == 0 {
			return nil
		}
		if err := tx.Model(&Workout{}).Where("id = ?", id).Updates(cols).Error; err != nil {
			return err
		}
		w = Workout{}
		return find(tx, &w, id)
	})
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// DeleteWorkout removes the workout and its exercises.
func (s *Store) DeleteWorkout(ctx context.Context, id uint) error {
	return deleteByID[Workout](ctx, s, id)
}
