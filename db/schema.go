package db

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	GoogleID  *string   `json:"google_id" gorm:"uniqueIndex"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	Workouts  []Workout `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Meals     []Meal    `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

type Workout struct {
	ID          uint                `json:"id" gorm:"primaryKey"`
	UserID      uint                `json:"user_id" gorm:"not null;index"`
	Type        string              `json:"type" gorm:"not null"`
	DurationMin int                 `json:"duration_min" gorm:"not null"`
	DistanceKm  decimal.NullDecimal `json:"distance_km" gorm:"type:numeric"`
	AvgPace     decimal.NullDecimal `json:"avg_pace" gorm:"type:numeric"`
	Date        Date                `json:"date" gorm:"not null"`
	IsStarred   bool                `json:"is_starred" gorm:"not null;default:false"`
	Exercises   []Exercise          `json:"-" gorm:"foreignKey:WorkoutID;constraint:OnDelete:CASCADE"`
}

type Exercise struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	WorkoutID uint            `json:"workout_id" gorm:"not null;index"`
	Name      string          `json:"name" gorm:"not null"`
	Sets      int             `json:"sets" gorm:"not null"`
	Reps      int             `json:"reps" gorm:"not null"`
	Weight    decimal.Decimal `json:"weight" gorm:"type:numeric;not null"`
}

// Meal macros are independent of each other and of Calories.
type Meal struct {
	ID       uint            `json:"id" gorm:"primaryKey"`
	UserID   uint            `json:"user_id" gorm:"not null;index"`
	Name     string          `json:"name" gorm:"not null"`
	Calories int             `json:"calories" gorm:"not null"`
	Protein  decimal.Decimal `json:"protein" gorm:"type:numeric;not null"`
	Carbs    decimal.Decimal `json:"carbs" gorm:"type:numeric;not null"`
	Fat      decimal.Decimal `json:"fat" gorm:"type:numeric;not null"`
	Date     Date            `json:"date" gorm:"not null"`
}

// Models lists every table in dependency order.
func Models() []any {
	return []any{&User{}, &Workout{}, &Exercise{}, &Meal{}}
}
