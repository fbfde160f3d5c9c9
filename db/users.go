package db

import (
	"context"

	"gorm.io/gorm"
)

// CreateUser inserts u and fills in its id and created_at.
func (s *Store) CreateUser(ctx context.Context, u *User) error {
	return s.transaction(ctx, func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&User{}).Where("email = ?", u.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateEmail
		}

		if u.GoogleID != nil {
			if err := tx.Model(&User{}).Where("google_id = ?", *u.GoogleID).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrDuplicateGoogleID
			}
		}

		if err := tx.Create(u).Error; err != nil {
			return err
		}
		return find(tx, u, u.ID)
	})
}

func (s *Store) GetUser(ctx context.Context, id uint) (*User, error) {
	return getByID[User](ctx, s, id)
}

func (s *Store) ListUsers(ctx context.Context, page Page) ([]User, error) {
	return listFiltered[User](ctx, s, "", nil, page)
}

// DeleteUser removes the user together with their workouts, those workouts'
// exercises, and their meals.
func (s *Store) DeleteUser(ctx context.Context, id uint) error {
	return deleteByID[User](ctx, s, id)
}
